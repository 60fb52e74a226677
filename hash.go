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
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Hasher supplies the hash and equality functions used by a container.
// Implementations must guarantee that Equal(a, b) implies
// Hash(a) == Hash(b). The container reduces the hash modulo its capacity to
// find a key's home bucket.
//
// Hashers are expected to be stateless values (typically empty structs) so
// that calling them never allocates.
type Hasher[K any] interface {
	Hash(key K) uint32
	Equal(a, b K) bool
}

// Integer is the set of key types accepted by IdentityHasher.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IdentityHasher hashes an integer key to itself, truncated to 32 bits.
// Keys that are equal modulo the capacity collide, which makes it the
// hasher of choice for tests that need predictable bucket placement.
type IdentityHasher[K Integer] struct{}

// Hash implements Hasher.
func (IdentityHasher[K]) Hash(key K) uint32 {
	return uint32(key)
}

// Equal implements Hasher.
func (IdentityHasher[K]) Equal(a, b K) bool {
	return a == b
}

const (
	stringHashSeed = 37
	stringHashMulH = 54059
	stringHashMulC = 76963
	// Only the first stringHashSpan bytes of a string are hashed.
	stringHashSpan = 32
)

// StringHasher hashes at most the first 32 bytes of a string, walking from
// the last of those bytes back to the first:
//
//	h = 37
//	h = h*54059 ^ s[i]*76963   for i = min(31, len-1) down to 0
//
// All arithmetic wraps at 32 bits. Bytes are treated as unsigned. Equal is
// exact byte equality.
type StringHasher struct{}

// Hash implements Hasher.
func (StringHasher) Hash(s string) uint32 {
	h := uint32(stringHashSeed)
	for i := min(stringHashSpan, len(s)) - 1; i >= 0; i-- {
		h = (h * stringHashMulH) ^ (uint32(s[i]) * stringHashMulC)
	}
	return h
}

// Equal implements Hasher.
func (StringHasher) Equal(a, b string) bool {
	return a == b
}

// FoldStringHasher is the case-insensitive variant of StringHasher. Each
// byte is masked with 0xDF before it is mixed in, which maps ASCII lower
// case letters onto upper case. The mask also merges a handful of
// punctuation pairs (for example '@' and '`'); those only cost a collision.
// Equal compares ASCII letters without regard to case and every other byte
// exactly, so that Equal(a, b) implies Hash(a) == Hash(b).
type FoldStringHasher struct{}

// Hash implements Hasher.
func (FoldStringHasher) Hash(s string) uint32 {
	h := uint32(stringHashSeed)
	for i := min(stringHashSpan, len(s)) - 1; i >= 0; i-- {
		h = (h * stringHashMulH) ^ (uint32(s[i]&0xDF) * stringHashMulC)
	}
	return h
}

// Equal implements Hasher.
func (FoldStringHasher) Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] && lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// XXStringHasher hashes the whole string with xxhash and keeps the low 32
// bits. It distributes far better than StringHasher but its values are not
// compatible with any other implementation.
type XXStringHasher struct{}

// Hash implements Hasher.
func (XXStringHasher) Hash(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// Equal implements Hasher.
func (XXStringHasher) Equal(a, b string) bool {
	return a == b
}

// BytesHasher is the []byte counterpart of XXStringHasher. Keys stored in a
// container must not be modified while they are present.
type BytesHasher struct{}

// Hash implements Hasher.
func (BytesHasher) Hash(b []byte) uint32 {
	return uint32(xxhash.Sum64(b))
}

// Equal implements Hasher.
func (BytesHasher) Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}
