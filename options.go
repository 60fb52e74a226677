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

// option provide an interface to do work on a container while it is being
// created. A Set[K] takes options of type option[K, struct{}].
type option[K any, V any] interface {
	apply(t *table[K, V])
}

type errorHandlerOption[K any, V any] struct {
	handler ErrorHandler
}

func (op errorHandlerOption[K, V]) apply(t *table[K, V]) {
	t.handler = defaultErrorHandler(op.handler)
}

// WithErrorHandler is an option to specify the ErrorHandler that receives
// contract violations. The default is IgnoreErrors.
func WithErrorHandler[K any, V any](handler ErrorHandler) option[K, V] {
	return errorHandlerOption[K, V]{handler}
}

// Allocator specifies an interface for allocating and releasing the storage
// used by a container. All storage is requested once, by the constructor;
// no operation allocates afterwards. The default allocator utilizes Go's
// builtin make() and allows the GC to reclaim memory.
//
// An allocator backed by static buffers or an arena must be paired with a
// call to Close so that FreeSlots and FreeWords are called.
type Allocator[K any, V any] interface {
	// AllocSlots should return a slice equivalent to make([]Slot[K,V], n).
	AllocSlots(n int) []Slot[K, V]

	// AllocWords should return a slice equivalent to make([]uint64, n). It
	// backs the occupancy bit vector.
	AllocWords(n int) []uint64

	// FreeSlots can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocSlots.
	FreeSlots(v []Slot[K, V])

	// FreeWords can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocWords.
	FreeWords(v []uint64)
}

type defaultAllocator[K any, V any] struct{}

func (defaultAllocator[K, V]) AllocSlots(n int) []Slot[K, V] {
	return make([]Slot[K, V], n)
}

func (defaultAllocator[K, V]) AllocWords(n int) []uint64 {
	return make([]uint64, n)
}

func (defaultAllocator[K, V]) FreeSlots(v []Slot[K, V]) {
}

func (defaultAllocator[K, V]) FreeWords(v []uint64) {
}

type allocatorOption[K any, V any] struct {
	allocator Allocator[K, V]
}

func (op allocatorOption[K, V]) apply(t *table[K, V]) {
	t.allocator = op.allocator
}

// WithAllocator is an option for specify the Allocator to use for a
// container.
func WithAllocator[K any, V any](allocator Allocator[K, V]) option[K, V] {
	return allocatorOption[K, V]{allocator}
}
