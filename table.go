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

// Package fixedhash provides a hash set and a hash map whose capacity is
// fixed when they are constructed. All storage is allocated by the
// constructor; no operation allocates, grows, or rehashes afterwards, which
// makes the containers suitable for memory-constrained or latency-sensitive
// code that must bound its footprint up front.
//
// # Layout
//
// A container of capacity C owns C buckets. Each bucket is a Slot holding a
// key and (for a Map) a value. A separate BitVector of C bits records which
// buckets are occupied. There are no tombstones and no sentinel buckets:
// every bucket is either empty or holds a live entry.
//
// # Probing
//
// Collisions are resolved with linear probing. A key's home bucket is
// Hash(key) mod C and its probe sequence visits home, home+1, ... wrapping
// at C. Lookups stop at the first empty bucket or after visiting all C
// buckets. The container maintains the following invariant for every live
// key k stored at bucket b:
//
//	every bucket on the cyclic path from home(k) up to (not including) b
//	is occupied.
//
// # Deletion
//
// Vacating a bucket would break the invariant for any key further along the
// same run that probed past it. Delete therefore performs backward-shift
// deletion: after emptying bucket i it walks forward through the run and
// moves each entry j whose home does not lie cyclically in (i, j] back into
// the hole, which then moves to j. The walk ends at the first empty bucket.
// Deletion never leaves markers behind, so a table that sees heavy churn
// never degrades and never needs compaction. See DeletionPolicy.
//
// # Errors
//
// Operations never return errors and never panic on their own. A violated
// precondition (full table, duplicate key, bucket index out of range,
// missing key in Map.Index) is passed to the container's ErrorHandler as an
// ErrorKind and the operation then returns a benign default. Whether a
// violation is fatal is entirely up to the handler; see IgnoreErrors and
// PanicOnError.
//
// Containers are NOT goroutine-safe.
package fixedhash

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

const debug = false

// DeletionPolicy names the strategy used to keep probe sequences intact
// when an entry is removed.
const DeletionPolicy = "backward-shift"

// Slot holds a key and value.
type Slot[K any, V any] struct {
	key   K
	value V
}

// table implements the bucket mechanics shared by Set and Map.
type table[K any, V any] struct {
	hasher    Hasher[K]
	handler   ErrorHandler
	allocator Allocator[K, V]
	// occupied has capacity bits. Bit i is set iff slots[i] holds a live
	// entry.
	occupied BitVector
	// slots is capacity in length. Unoccupied slots always hold the zero
	// Slot so that they do not retain references to removed keys or values.
	slots []Slot[K, V]
	// The number of buckets. Never changes after init.
	capacity int
	// The number of occupied buckets (i.e. the number of elements).
	used int
}

func (t *table[K, V]) init(capacity int, hasher Hasher[K], options []option[K, V]) {
	if capacity < 1 || uint64(capacity) > math.MaxUint32 {
		panic(errors.Newf("fixedhash: invalid capacity %d", capacity))
	}
	if hasher == nil {
		panic(errors.New("fixedhash: nil hasher"))
	}

	*t = table[K, V]{
		hasher:    hasher,
		handler:   IgnoreErrors,
		allocator: defaultAllocator[K, V]{},
		capacity:  capacity,
	}

	for _, op := range options {
		op.apply(t)
	}

	t.slots = t.allocator.AllocSlots(capacity)[:capacity]
	t.occupied.init(t.allocator.AllocWords(wordsFor(capacity)), capacity, t.handler)
	clear(t.slots)

	t.checkInvariants()
}

// close releases the storage back to the allocator. Close is idempotent.
func (t *table[K, V]) close() {
	if t.slots != nil {
		t.allocator.FreeSlots(t.slots)
		t.allocator.FreeWords(t.occupied.words)
	}
	t.slots = nil
	t.occupied = BitVector{}
	t.capacity = 0
	t.used = 0
}

// home returns the first bucket of key's probe sequence.
func (t *table[K, V]) home(key K) int {
	return int(t.hasher.Hash(key) % uint32(t.capacity))
}

// next returns the bucket after i, wrapping at capacity.
func (t *table[K, V]) next(i int) int {
	i++
	if i == t.capacity {
		return 0
	}
	return i
}

// distance returns the number of probe steps from bucket a forward to
// bucket b.
func (t *table[K, V]) distance(a, b int) int {
	if b >= a {
		return b - a
	}
	return b + t.capacity - a
}

// find walks key's probe sequence. If key is present it returns its bucket
// and true. Otherwise it returns the first empty bucket on the sequence and
// false, or, when every bucket is occupied, key's home bucket and false.
func (t *table[K, V]) find(key K) (int, bool) {
	i := t.home(key)
	for n := 0; n < t.capacity; n++ {
		if !t.occupied.Get(i) {
			return i, false
		}
		if t.hasher.Equal(key, t.slots[i].key) {
			return i, true
		}
		i = t.next(i)
	}
	return i, false
}

func (t *table[K, V]) get(key K) (value V, ok bool) {
	if t.used == 0 {
		return value, false
	}
	i, ok := t.find(key)
	if !ok {
		return value, false
	}
	return t.slots[i].value, true
}

func (t *table[K, V]) contains(key K) bool {
	if t.used == 0 {
		return false
	}
	_, ok := t.find(key)
	return ok
}

// add inserts key if it is not already present. A full table reports
// OutOfSpace and a present key reports DuplicateKey; neither mutates the
// table.
func (t *table[K, V]) add(key K, value V) bool {
	if t.used >= t.capacity {
		t.handler(OutOfSpace)
		return false
	}
	i, ok := t.find(key)
	if ok {
		t.handler(DuplicateKey)
		return false
	}
	// The table has at least one empty bucket, so find stopped at one.
	t.insertAt(i, key, value)
	t.checkInvariants()
	return true
}

// put inserts key or overwrites the value of the existing entry. If the key
// is absent and its probe sequence wraps around without finding an empty
// bucket, OutOfSpace is reported and the table is unchanged.
func (t *table[K, V]) put(key K, value V) bool {
	i, ok := t.find(key)
	if ok {
		t.slots[i].value = value
		return true
	}
	if t.occupied.Get(i) {
		t.handler(OutOfSpace)
		return false
	}
	t.insertAt(i, key, value)
	t.checkInvariants()
	return true
}

func (t *table[K, V]) insertAt(i int, key K, value V) {
	if debug {
		fmt.Printf("insert(%v): index=%d home=%d used=%d\n", key, i, t.home(key), t.used+1)
	}
	t.occupied.Set(i)
	t.slots[i] = Slot[K, V]{key: key, value: value}
	t.used++
}

// remove deletes key and reports whether it was present.
func (t *table[K, V]) remove(key K) bool {
	if t.used == 0 {
		return false
	}
	i, ok := t.find(key)
	if !ok {
		return false
	}
	t.removeAt(i)
	t.used--
	t.checkInvariants()
	return true
}

// removeAt vacates bucket hole and closes the gap with backward shifts.
//
// The entry at bucket j (reached by walking forward from the hole through
// occupied buckets) was placed by a probe that started at its home h and
// passed over every bucket in [h, j). If h lies cyclically in (hole, j] the
// probe never touched the hole, so the entry must stay. Otherwise the probe
// passed through the hole and the entry can move into it, turning j into
// the new hole. The walk always terminates: the hole itself is empty.
func (t *table[K, V]) removeAt(hole int) {
	t.occupied.Unset(hole)
	for j := t.next(hole); t.occupied.Get(j); j = t.next(j) {
		h := t.home(t.slots[j].key)
		if t.distance(h, j) < t.distance(hole, j) {
			continue
		}
		if debug {
			fmt.Printf("remove(shifting): key=%v from=%d to=%d home=%d\n",
				t.slots[j].key, j, hole, h)
		}
		t.slots[hole] = t.slots[j]
		t.occupied.Set(hole)
		t.occupied.Unset(j)
		hole = j
	}
	t.slots[hole] = Slot[K, V]{}
}

// clear removes every entry. The capacity is unchanged.
func (t *table[K, V]) clear() {
	for i := t.occupied.NextSet(0); i >= 0; i = t.occupied.NextSet(i + 1) {
		t.slots[i] = Slot[K, V]{}
	}
	t.occupied.Clear()
	t.used = 0
	t.checkInvariants()
}

// all calls yield for each occupied bucket in index order until yield
// returns false.
func (t *table[K, V]) all(yield func(key K, value V) bool) {
	for i := t.occupied.NextSet(0); i >= 0; i = t.occupied.NextSet(i + 1) {
		s := &t.slots[i]
		if !yield(s.key, s.value) {
			return
		}
	}
}

// bucket returns the entry stored at bucket i, if any. An index outside
// [0, capacity) reports OutOfBound.
func (t *table[K, V]) bucket(i int) (key K, value V, ok bool) {
	if !t.occupied.Get(i) {
		return key, value, false
	}
	s := &t.slots[i]
	return s.key, s.value, true
}

func (t *table[K, V]) checkInvariants() {
	if invariants {
		if err := t.verify(); err != nil {
			panic(err)
		}
	}
}

// verify checks that the element count matches the occupancy bits and that
// every stored key is found at its own bucket by a lookup, which fails if a
// probe chain is broken or a key is stored twice.
func (t *table[K, V]) verify() error {
	if n := t.occupied.Count(); n != t.used {
		return errors.AssertionFailedf("found %d occupied buckets, but used count is %d\n%s",
			n, t.used, t.debugString())
	}
	for i := 0; i < t.capacity; i++ {
		if !t.occupied.Get(i) {
			continue
		}
		j, ok := t.find(t.slots[i].key)
		if !ok {
			return errors.AssertionFailedf("bucket(%d): %v not found [home=%d]\n%s",
				i, t.slots[i].key, t.home(t.slots[i].key), t.debugString())
		}
		if j != i {
			return errors.AssertionFailedf("bucket(%d): %v found at bucket %d\n%s",
				i, t.slots[i].key, j, t.debugString())
		}
	}
	return nil
}

func (t *table[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  used=%d\n", t.capacity, t.used)
	for i := 0; i < t.capacity; i++ {
		if !t.occupied.Get(i) {
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
			continue
		}
		s := &t.slots[i]
		fmt.Fprintf(&buf, "  %4d: %v=%v [home=%d]\n", i, s.key, s.value, t.home(s.key))
	}
	return buf.String()
}
