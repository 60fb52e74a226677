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

package fixedhash

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityHasher(t *testing.T) {
	require.EqualValues(t, 3, IdentityHasher[int]{}.Hash(3))
	require.EqualValues(t, 11, IdentityHasher[uint8]{}.Hash(11))
	require.EqualValues(t, math.MaxUint32, IdentityHasher[int32]{}.Hash(-1))
	require.EqualValues(t, 1, IdentityHasher[uint64]{}.Hash(1<<32+1))
	require.True(t, IdentityHasher[int]{}.Equal(7, 7))
	require.False(t, IdentityHasher[int]{}.Equal(7, 15))

	type bucketID uint16
	require.EqualValues(t, 42, IdentityHasher[bucketID]{}.Hash(42))
}

func TestStringHasher(t *testing.T) {
	// These vectors pin the exact hash values so that bucket indices remain
	// stable across implementations.
	testCases := []struct {
		s        string
		hash     uint32
		foldHash uint32
	}{
		{"", 37, 37},
		{"a", 7302388, 5427284},
		{"A", 5427284, 5427284},
		{"abc", 3095945159, 3274462695},
		{"ABC", 3274462695, 3274462695},
		{"hello", 934119523, 4178597955},
		{"Hello", 931342211, 4178597955},
		{"HELLO", 4178597955, 4178597955},
		{"abcdefghijklmnopqrstuvwxyz012345", 2009059321, 1500918265},
		// Only the first 32 bytes are hashed.
		{"abcdefghijklmnopqrstuvwxyz0123456789", 2009059321, 1500918265},
		// Bytes are unsigned: 0xC3 0xA9 contribute 195 and 169, not -61 and
		// -87 as a signed char would.
		{"é", 4103177933, 250742829},
		{"café", 1136653373, 3511451965},
		{"CAFÉ", 3511451965, 3511451965},
	}
	for _, c := range testCases {
		t.Run(c.s, func(t *testing.T) {
			require.EqualValues(t, c.hash, StringHasher{}.Hash(c.s))
			require.EqualValues(t, c.foldHash, FoldStringHasher{}.Hash(c.s))
		})
	}
}

func TestStringHasherEqual(t *testing.T) {
	require.True(t, StringHasher{}.Equal("abc", "abc"))
	require.False(t, StringHasher{}.Equal("abc", "ABC"))
	require.False(t, StringHasher{}.Equal("abc", "abcd"))

	f := FoldStringHasher{}
	testCases := []struct {
		a, b  string
		equal bool
	}{
		{"", "", true},
		{"abc", "ABC", true},
		{"Hello, World", "hELLO, wORLD", true},
		{"abc", "abd", false},
		{"abc", "ab", false},
		// '@' and '`' share a hash under the 0xDF mask but are not equal.
		{"@", "`", false},
		{"[", "{", false},
		{"héllo", "HéLLO", true},
	}
	for _, c := range testCases {
		t.Run(c.a+"/"+c.b, func(t *testing.T) {
			require.Equal(t, c.equal, f.Equal(c.a, c.b))
			if c.equal {
				require.Equal(t, f.Hash(c.a), f.Hash(c.b))
			}
		})
	}
	require.Equal(t, f.Hash("@"), f.Hash("`"))
}

func TestXXHashers(t *testing.T) {
	s := strings.Repeat("x", 100)
	require.Equal(t, XXStringHasher{}.Hash(s), XXStringHasher{}.Hash(strings.Clone(s)))
	// Unlike StringHasher, bytes past the first 32 participate.
	require.NotEqual(t, XXStringHasher{}.Hash(s+"a"), XXStringHasher{}.Hash(s+"b"))
	require.True(t, XXStringHasher{}.Equal(s, strings.Clone(s)))

	require.Equal(t, XXStringHasher{}.Hash("key"), BytesHasher{}.Hash([]byte("key")))
	require.True(t, BytesHasher{}.Equal([]byte("key"), []byte("key")))
	require.False(t, BytesHasher{}.Equal([]byte("key"), []byte("kez")))
	require.True(t, BytesHasher{}.Equal(nil, []byte{}))
}
