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
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/fixedhash"
)

// keyParser converts a command-line argument into a key.
type keyParser[K any] func(s string) (K, error)

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing key %q", s)
	}
	return v, nil
}

func parseString(s string) (string, error) {
	return s, nil
}

// keyRunner receives a hasher and the matching key parser. It is implemented
// by each subcommand so that the hasher name is resolved in one place.
type keyRunner interface {
	runUint(h fixedhash.Hasher[uint64], parse keyParser[uint64]) error
	runString(h fixedhash.Hasher[string], parse keyParser[string]) error
}

func withHasher(name string, r keyRunner) error {
	switch name {
	case "identity":
		return r.runUint(fixedhash.IdentityHasher[uint64]{}, parseUint)
	case "string":
		return r.runString(fixedhash.StringHasher{}, parseString)
	case "fold":
		return r.runString(fixedhash.FoldStringHasher{}, parseString)
	case "xxhash":
		return r.runString(fixedhash.XXStringHasher{}, parseString)
	default:
		return errors.Newf("unknown hasher %q", name)
	}
}

func checkCapacity(capacity int) error {
	if capacity < 1 || uint64(capacity) > math.MaxUint32 {
		return errors.Newf("capacity must be in [1, %d], got %d", uint64(math.MaxUint32), capacity)
	}
	return nil
}
