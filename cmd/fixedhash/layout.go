// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/fixedhash"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type layoutCmd struct {
	out      io.Writer
	logger   *slog.Logger
	capacity int
	deletes  []string
	args     []string
}

func newLayoutCmd() *cobra.Command {
	var hasher string
	var c layoutCmd
	cmd := &cobra.Command{
		Use:   "layout [--hasher NAME] [--capacity C] [--delete KEY]... KEY[=VALUE]...",
		Short: "print the buckets of a map after inserting and deleting keys",
		Long: `
Inserts each KEY[=VALUE] pair into an empty map of the given capacity, in
order, then deletes every --delete key, in order, and prints every bucket
with the key it holds, the key's home bucket and its displacement from home.
Errors reported by the map are logged to stderr and counted.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkCapacity(c.capacity); err != nil {
				return err
			}
			c.out = cmd.OutOrStdout()
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			c.args = args
			return withHasher(hasher, &c)
		},
	}
	addTableFlags(cmd, &hasher, &c.capacity)
	cmd.Flags().StringArrayVar(&c.deletes, "delete", nil, "key to delete after all insertions")
	return cmd
}

func (c *layoutCmd) runUint(h fixedhash.Hasher[uint64], parse keyParser[uint64]) error {
	return runLayout(c, h, parse)
}

func (c *layoutCmd) runString(h fixedhash.Hasher[string], parse keyParser[string]) error {
	return runLayout(c, h, parse)
}

func runLayout[K any](c *layoutCmd, h fixedhash.Hasher[K], parse keyParser[K]) error {
	var op string
	var numErrors int
	handler := func(kind fixedhash.ErrorKind) {
		numErrors++
		c.logger.Warn("collection error", slog.String("op", op), slog.Any("kind", kind))
	}
	m := fixedhash.NewMap(c.capacity, h, fixedhash.WithErrorHandler[K, string](handler))
	defer m.Close()

	for _, arg := range c.args {
		k, v, _ := strings.Cut(arg, "=")
		key, err := parse(k)
		if err != nil {
			return err
		}
		op = "add " + k
		m.Add(key, v)
	}
	for _, k := range c.deletes {
		key, err := parse(k)
		if err != nil {
			return err
		}
		op = "delete " + k
		if !m.Delete(key) {
			c.logger.Info("key not present", slog.String("op", op))
		}
	}

	table := tablewriter.NewWriter(c.out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"bucket", "state", "key", "value", "home", "displacement"})
	for i := 0; i < m.Capacity(); i++ {
		key, value, ok := m.Bucket(i)
		if !ok {
			table.Append([]string{strconv.Itoa(i), "empty", "", "", "", ""})
			continue
		}
		home := m.Home(key)
		displacement := i - home
		if displacement < 0 {
			displacement += m.Capacity()
		}
		table.Append([]string{
			strconv.Itoa(i), "occupied", fmt.Sprint(key), value,
			strconv.Itoa(home), strconv.Itoa(displacement),
		})
	}
	table.Render()
	fmt.Fprintf(c.out, "len=%d capacity=%d errors=%d\n", m.Len(), m.Capacity(), numErrors)
	return nil
}
