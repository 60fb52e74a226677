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
	"strconv"

	"github.com/cockroachdb/fixedhash"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type hashCmd struct {
	out      io.Writer
	capacity int
	args     []string
}

func newHashCmd() *cobra.Command {
	var hasher string
	var c hashCmd
	cmd := &cobra.Command{
		Use:   "hash [--hasher NAME] [--capacity C] KEY...",
		Short: "print the hash and home bucket of each key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkCapacity(c.capacity); err != nil {
				return err
			}
			c.out = cmd.OutOrStdout()
			c.args = args
			return withHasher(hasher, &c)
		},
	}
	addTableFlags(cmd, &hasher, &c.capacity)
	return cmd
}

func (c *hashCmd) runUint(h fixedhash.Hasher[uint64], parse keyParser[uint64]) error {
	return printHashes(c.out, c.capacity, h, parse, c.args)
}

func (c *hashCmd) runString(h fixedhash.Hasher[string], parse keyParser[string]) error {
	return printHashes(c.out, c.capacity, h, parse, c.args)
}

func printHashes[K any](
	w io.Writer, capacity int, h fixedhash.Hasher[K], parse keyParser[K], args []string,
) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"key", "hash", "home"})
	for _, arg := range args {
		key, err := parse(arg)
		if err != nil {
			return err
		}
		hash := h.Hash(key)
		table.Append([]string{
			fmt.Sprint(key),
			strconv.FormatUint(uint64(hash), 10),
			strconv.FormatUint(uint64(hash%uint32(capacity)), 10),
		})
	}
	table.Render()
	return nil
}
