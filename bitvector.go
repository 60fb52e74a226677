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
	"math/bits"
	"strings"
)

const (
	wordBits  = 64
	wordShift = 6
	wordMask  = wordBits - 1
)

// BitVector is a packed, fixed-length array of bits. Bit i lives in word
// i/64 at position i%64. Indices outside [0, Len()) are reported as
// OutOfBound and treated as unset.
//
// A BitVector is NOT goroutine-safe.
type BitVector struct {
	words   []uint64
	n       int
	handler ErrorHandler
}

// NewBitVector returns a BitVector of n bits, all unset. A nil handler
// ignores errors.
func NewBitVector(n int, handler ErrorHandler) *BitVector {
	b := &BitVector{}
	b.init(make([]uint64, wordsFor(n)), n, handler)
	return b
}

// wordsFor returns the number of words needed to hold n bits.
func wordsFor(n int) int {
	return (n + wordMask) >> wordShift
}

// init sets up b over words, which must hold at least n bits. The words are
// cleared.
func (b *BitVector) init(words []uint64, n int, handler ErrorHandler) {
	b.words = words
	b.n = n
	b.handler = defaultErrorHandler(handler)
	b.Clear()
}

// Len returns the number of bits in the vector.
func (b *BitVector) Len() int {
	return b.n
}

func (b *BitVector) checkIndex(i int) bool {
	if uint(i) < uint(b.n) {
		return true
	}
	b.handler(OutOfBound)
	return false
}

// Get returns whether bit i is set.
func (b *BitVector) Get(i int) bool {
	if !b.checkIndex(i) {
		return false
	}
	return b.words[i>>wordShift]&(1<<(uint(i)&wordMask)) != 0
}

// Set sets bit i.
func (b *BitVector) Set(i int) {
	if b.checkIndex(i) {
		b.words[i>>wordShift] |= 1 << (uint(i) & wordMask)
	}
}

// Unset clears bit i.
func (b *BitVector) Unset(i int) {
	if b.checkIndex(i) {
		b.words[i>>wordShift] &^= 1 << (uint(i) & wordMask)
	}
}

// Clear unsets every bit.
func (b *BitVector) Clear() {
	clear(b.words)
}

// Count returns the number of set bits.
func (b *BitVector) Count() int {
	var n int
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// NextSet returns the index of the first set bit at or after i, or -1 if
// there is none. Negative i starts the search at 0.
func (b *BitVector) NextSet(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= b.n {
		return -1
	}
	w := i >> wordShift
	word := b.words[w] >> (uint(i) & wordMask)
	if word != 0 {
		return i + bits.TrailingZeros64(word)
	}
	for w++; w < len(b.words); w++ {
		if b.words[w] != 0 {
			// Bits past n are never set, so no bound check is needed.
			return w<<wordShift + bits.TrailingZeros64(b.words[w])
		}
	}
	return -1
}

// String renders the vector as a string of 0s and 1s, lowest index first.
func (b *BitVector) String() string {
	var buf strings.Builder
	buf.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.words[i>>wordShift]&(1<<(uint(i)&wordMask)) != 0 {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	return buf.String()
}
