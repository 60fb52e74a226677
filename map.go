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

// Map is an unordered map from keys to values with a capacity fixed at
// construction. Keys are hashed and compared with the Hasher supplied to
// NewMap. Unlike Go's builtin map[K]V a Map never grows: once Len() ==
// Capacity() every insertion of a new key reports OutOfSpace.
//
// A Map is NOT goroutine-safe.
type Map[K any, V any] struct {
	table[K, V]
}

// NewMap constructs a Map with room for exactly capacity entries. It panics
// if capacity is not positive or hasher is nil.
func NewMap[K any, V any](capacity int, hasher Hasher[K], options ...option[K, V]) *Map[K, V] {
	m := &Map[K, V]{}
	m.init(capacity, hasher, options)
	return m
}

// Close releases the map's storage back to its configured allocator. It is
// unnecessary to close a map using the default allocator. It is invalid to
// use a Map after it has been closed, though Close itself is idempotent.
func (m *Map[K, V]) Close() {
	m.close()
}

// Capacity returns the fixed number of buckets.
func (m *Map[K, V]) Capacity() int {
	return m.capacity
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.used
}

// IsFull returns true if no further keys can be added.
func (m *Map[K, V]) IsFull() bool {
	return m.used >= m.capacity
}

// Contains returns true if key is present.
func (m *Map[K, V]) Contains(key K) bool {
	return m.contains(key)
}

// Get retrieves the value from the map for the specified key, return
// ok=false if the key is not present.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	return m.get(key)
}

// Index returns the value for key. A missing key reports KeyNotFound and
// returns the zero value.
func (m *Map[K, V]) Index(key K) V {
	v, ok := m.get(key)
	if !ok {
		m.handler(KeyNotFound)
	}
	return v
}

// Add inserts a new entry and returns true. If the map is full (OutOfSpace)
// or already holds key (DuplicateKey) the error is reported, the existing
// value is kept, and Add returns false.
func (m *Map[K, V]) Add(key K, value V) bool {
	return m.add(key, value)
}

// Put inserts an entry into the map, overwriting the existing value if an
// entry with the same key already exists. If the key is new and no bucket is
// free, OutOfSpace is reported and the map is unchanged.
func (m *Map[K, V]) Put(key K, value V) {
	m.put(key, value)
}

// Delete deletes the entry corresponding to the specified key from the map
// and reports whether it was present. It is a noop to delete a non-existent
// key.
func (m *Map[K, V]) Delete(key K) bool {
	return m.remove(key)
}

// Clear deletes all entries from the map. The capacity is unchanged.
func (m *Map[K, V]) Clear() {
	m.clear()
}

// All calls yield sequentially for each key and value present in the map,
// in bucket order. If yield returns false, iteration stops. The map must not
// be mutated during iteration. All has the signature of an iter.Seq2 and can
// be ranged over:
//
//	for k, v := range m.All {
//	  fmt.Printf("%v: %v\n", k, v)
//	}
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	m.all(yield)
}

// Keys calls yield sequentially for each key present in the map, in bucket
// order. If yield returns false, iteration stops.
func (m *Map[K, V]) Keys(yield func(key K) bool) {
	m.all(func(key K, _ V) bool {
		return yield(key)
	})
}

// Bucket returns the entry stored in bucket i without hashing. It returns
// ok=false for an empty bucket. An index outside [0, Capacity()) reports
// OutOfBound.
func (m *Map[K, V]) Bucket(i int) (key K, value V, ok bool) {
	return m.bucket(i)
}

// Home returns the bucket at which the probe sequence for key starts.
func (m *Map[K, V]) Home(key K) int {
	return m.home(key)
}
