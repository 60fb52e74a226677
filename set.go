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

// Set is an unordered set of keys with a capacity fixed at construction. It
// shares its bucket mechanics with Map; the value type is struct{} and takes
// no space.
//
// A Set is NOT goroutine-safe.
type Set[K any] struct {
	table[K, struct{}]
}

// NewSet constructs a Set with room for exactly capacity keys. It panics if
// capacity is not positive or hasher is nil.
func NewSet[K any](capacity int, hasher Hasher[K], options ...option[K, struct{}]) *Set[K] {
	s := &Set[K]{}
	s.init(capacity, hasher, options)
	return s
}

// Close releases the set's storage back to its configured allocator.
func (s *Set[K]) Close() {
	s.close()
}

// Capacity returns the fixed number of buckets.
func (s *Set[K]) Capacity() int {
	return s.capacity
}

// Len returns the number of keys in the set.
func (s *Set[K]) Len() int {
	return s.used
}

// IsFull returns true if no further keys can be added.
func (s *Set[K]) IsFull() bool {
	return s.used >= s.capacity
}

// Contains returns true if key is present.
func (s *Set[K]) Contains(key K) bool {
	return s.contains(key)
}

// Add inserts key and returns true. A full set reports OutOfSpace and a key
// that is already present reports DuplicateKey; in both cases Add returns
// false and the set is unchanged.
func (s *Set[K]) Add(key K) bool {
	return s.add(key, struct{}{})
}

// Delete removes key and reports whether it was present.
func (s *Set[K]) Delete(key K) bool {
	return s.remove(key)
}

// Clear removes all keys.
func (s *Set[K]) Clear() {
	s.clear()
}

// All calls yield sequentially for each key in bucket order until yield
// returns false. It can be ranged over as an iter.Seq.
func (s *Set[K]) All(yield func(key K) bool) {
	s.all(func(key K, _ struct{}) bool {
		return yield(key)
	})
}

// Bucket returns the key stored in bucket i without hashing. An index
// outside [0, Capacity()) reports OutOfBound.
func (s *Set[K]) Bucket(i int) (key K, ok bool) {
	key, _, ok = s.bucket(i)
	return key, ok
}
