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

// fixedhash is a diagnostic tool for the fixedhash containers. It prints the
// hash and home bucket of keys and the bucket layout produced by a sequence
// of insertions and deletions.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	defaultHasher   = "string"
	defaultCapacity = 16
)

// newRootCmd returns a fresh command tree so that flag state does not leak
// between invocations.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fixedhash [command]",
		Short: "inspect fixed-capacity hash containers",
		Long: `
Inspects how keys are hashed and laid out in a fixed-capacity, linearly
probed hash map.
`,
		SilenceUsage: true,
	}
	root.AddCommand(newHashCmd(), newLayoutCmd())
	return root
}

func addTableFlags(cmd *cobra.Command, hasher *string, capacity *int) {
	f := cmd.Flags()
	f.StringVar(hasher, "hasher", defaultHasher,
		"hash strategy: identity, string, fold or xxhash")
	f.IntVar(capacity, "capacity", defaultCapacity, "number of buckets")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
