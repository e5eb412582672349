// Copyright 2026 The chainmap Authors
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

package chainmap

// option provides an interface to do work on a Map while it is being
// created.
type option[K, V any] interface {
	apply(m *Map[K, V])
}

type releaseKeyOption[K, V any] struct {
	release ReleaseFunc[K]
}

func (op releaseKeyOption[K, V]) apply(m *Map[K, V]) {
	m.releaseKey = op.release
}

// WithReleaseKey makes the table the owner of every key it stores. The
// supplied hook is invoked exactly once per stored key: when the key's
// entry is replaced by Put, or when the table's last reference is
// dropped. The hook must not call back into the same table.
func WithReleaseKey[K, V any](release ReleaseFunc[K]) option[K, V] {
	return releaseKeyOption[K, V]{release}
}

type releaseValueOption[K, V any] struct {
	release ReleaseFunc[V]
}

func (op releaseValueOption[K, V]) apply(m *Map[K, V]) {
	m.releaseValue = op.release
}

// WithReleaseValue makes the table the owner of every value it stores.
// The supplied hook is invoked exactly once per stored value: when the
// value is replaced by Put, or when the table's last reference is
// dropped. The hook must not call back into the same table.
func WithReleaseValue[K, V any](release ReleaseFunc[V]) option[K, V] {
	return releaseValueOption[K, V]{release}
}

type bucketCountOption[K, V any] struct {
	n int
}

func (op bucketCountOption[K, V]) apply(m *Map[K, V]) {
	m.bucketCount = op.n
}

// WithBucketCount sets the number of buckets allocated at construction.
// This is sizing, not resizing: the count never changes afterwards, and a
// table holding many more entries than buckets degrades to linear chain
// scans.
func WithBucketCount[K, V any](n int) option[K, V] {
	return bucketCountOption[K, V]{n}
}

// Allocator specifies an interface for allocating and releasing the
// memory used by a Map: its chain nodes and its bucket array. The default
// allocator uses Go's builtin new() and make() and lets the GC reclaim
// memory, and never fails. A custom allocator may fail an allocation by
// returning an error, which the Map surfaces from New or Put with no
// partial mutation left behind.
type Allocator[K, V any] interface {
	// AllocNode returns a zeroed chain node.
	AllocNode() (*Node[K, V], error)

	// AllocBuckets returns a slice equivalent to make([]*Node[K,V], n).
	AllocBuckets(n int) ([]*Node[K, V], error)

	// FreeNode can optionally release a node that is guaranteed to have
	// been returned by AllocNode.
	FreeNode(n *Node[K, V])

	// FreeBuckets can optionally release the slice that is guaranteed to
	// have been returned by AllocBuckets.
	FreeBuckets(buckets []*Node[K, V])
}

type runtimeAllocator[K, V any] struct{}

func (runtimeAllocator[K, V]) AllocNode() (*Node[K, V], error) {
	return &Node[K, V]{}, nil
}

func (runtimeAllocator[K, V]) AllocBuckets(n int) ([]*Node[K, V], error) {
	return make([]*Node[K, V], n), nil
}

func (runtimeAllocator[K, V]) FreeNode(n *Node[K, V]) {
}

func (runtimeAllocator[K, V]) FreeBuckets(buckets []*Node[K, V]) {
}

type allocatorOption[K, V any] struct {
	allocator Allocator[K, V]
}

func (op allocatorOption[K, V]) apply(m *Map[K, V]) {
	m.alloc = op.allocator
}

// WithAllocator is an option to specify the Allocator to use for a
// Map[K,V].
func WithAllocator[K, V any](allocator Allocator[K, V]) option[K, V] {
	return allocatorOption[K, V]{allocator}
}
