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

// Package chainmap provides a small, embeddable hash table with chained
// buckets, designed for libraries that need a key/value store with
// explicit lifetime control rather than the builtin map type.
//
// A Map routes every operation through a caller-supplied hash function and
// equality function, so keys do not need to be comparable in the Go sense:
// keys can be matched by byte content, by identity, or by whatever notion
// of sameness the caller encodes. Two ready-made pairs are provided:
// DirectHash/DirectEqual for address-identity keys and
// StringHash/StringEqual for content-compared string keys.
//
// The table's lifetime is reference counted. A Map starts with a single
// reference; Ref adds holders and Unref drops them, and the table is torn
// down when the last reference is dropped. By default the table borrows
// its keys and values and teardown releases nothing beyond the table's own
// memory. When a release hook is configured with WithReleaseKey or
// WithReleaseValue the table owns that slot's contents: the hook fires
// exactly once per stored key or value, either when an entry is replaced
// or when the final reference is dropped, and never during Get.
//
// All memory used by a Map is obtained through an Allocator. The default
// allocator never fails; a custom allocator may fail, and every operation
// that allocates reports that failure through its error result, leaving
// the table exactly as it was. In particular, replacing the value of an
// existing key performs no allocation and cannot fail.
//
// The bucket count is fixed at construction. There is no rehashing: a
// bucket's chain is scanned linearly, so lookups degrade to O(n) within a
// bucket as the table grows past its sizing. Callers that know their
// population can size the table with WithBucketCount.
//
// A Map is NOT goroutine-safe.
package chainmap

import (
	"errors"
	"fmt"
)

// ErrNilFunc is returned by New when the hash or equality function is
// absent. Both are required; there is no usable default for an opaque key
// type.
var ErrNilFunc = errors.New("chainmap: hash and equal functions are required")

// defaultBucketCount is a small prime; the table is built for modest
// populations (tens of entries) and never rehashes.
const defaultBucketCount = 11

// Hasher maps a key to a 32-bit hash value. A Hasher must be pure: equal
// keys (per the table's Equaler) must produce equal hash values.
type Hasher[K any] func(key K) uint32

// Equaler reports whether two keys are the same logical key.
type Equaler[K any] func(a, b K) bool

// ReleaseFunc releases a key or value that a Map owns. See WithReleaseKey
// and WithReleaseValue.
type ReleaseFunc[T any] func(T)

// Node is a single entry in a bucket chain, holding one key/value pair. A
// Node is created and freed through the table's Allocator and is owned
// exclusively by the Map that allocated it.
type Node[K, V any] struct {
	key   K
	value V
	next  *Node[K, V]
}

// Map is a reference counted hash table with a fixed number of chained
// buckets. The zero value is not usable; construct with New.
type Map[K, V any] struct {
	hash  Hasher[K]
	equal Equaler[K]

	// Ownership hooks. A nil hook means the table borrows that slot's
	// contents and teardown leaves them alone.
	releaseKey   ReleaseFunc[K]
	releaseValue ReleaseFunc[V]

	alloc       Allocator[K, V]
	bucketCount int
	buckets     []*Node[K, V]
	used        int
	refs        int
}

// New constructs a Map keyed through the supplied hash and equality
// functions. Both functions are required. Construction fails if the
// configured Allocator cannot provide the bucket array; any partially
// constructed state is released before the error is returned.
func New[K, V any](hash Hasher[K], equal Equaler[K], options ...option[K, V]) (*Map[K, V], error) {
	if hash == nil || equal == nil {
		return nil, ErrNilFunc
	}

	m := &Map[K, V]{
		hash:        hash,
		equal:       equal,
		alloc:       runtimeAllocator[K, V]{},
		bucketCount: defaultBucketCount,
		refs:        1,
	}
	for _, op := range options {
		op.apply(m)
	}

	if m.bucketCount < 1 {
		return nil, fmt.Errorf("chainmap: bucket count %d out of range", m.bucketCount)
	}

	buckets, err := m.alloc.AllocBuckets(m.bucketCount)
	if err != nil {
		// Tear down through the usual release path so a partially
		// constructed table cannot leak.
		m.Unref()
		return nil, err
	}
	m.buckets = buckets
	return m, nil
}

// Ref adds a reference to the table and returns the same handle.
func (m *Map[K, V]) Ref() *Map[K, V] {
	m.refs++
	return m
}

// Unref drops a reference to the table. When the last reference is
// dropped the table is torn down: for every entry the key release hook
// fires, then the value release hook, then the node is freed; finally the
// bucket array itself is freed. Unref is safe on a table whose bucket
// array was never allocated.
func (m *Map[K, V]) Unref() {
	if m.refs <= 0 {
		panic("chainmap: Unref of a released Map")
	}
	m.refs--
	if m.refs > 0 {
		return
	}

	for i, n := range m.buckets {
		for n != nil {
			next := n.next
			if m.releaseKey != nil {
				m.releaseKey(n.key)
			}
			if m.releaseValue != nil {
				m.releaseValue(n.value)
			}
			m.alloc.FreeNode(n)
			n = next
		}
		m.buckets[i] = nil
	}
	if m.buckets != nil {
		m.alloc.FreeBuckets(m.buckets)
		m.buckets = nil
	}
	m.used = 0
}

// Put inserts an entry into the table. If a key equal to key is already
// present its entry is replaced: the old key and old value are handed to
// their release hooks and the entry is updated in place. The replace path
// performs no allocation and cannot fail.
//
// If the key is not present a new node is allocated and appended to its
// bucket's chain. If that allocation fails the table is left exactly as
// it was and ownership of key and value stays with the caller.
func (m *Map[K, V]) Put(key K, value V) error {
	b := m.hash(key) % uint32(len(m.buckets))

	nodep := &m.buckets[b]
	for n := *nodep; n != nil; n = *nodep {
		if m.equal(key, n.key) {
			if m.releaseKey != nil {
				m.releaseKey(n.key)
			}
			if m.releaseValue != nil {
				m.releaseValue(n.value)
			}
			n.key = key
			n.value = value
			return nil
		}
		nodep = &n.next
	}

	n, err := m.alloc.AllocNode()
	if err != nil {
		return err
	}
	n.key = key
	n.value = value
	n.next = nil
	*nodep = n
	m.used++
	return nil
}

// Get retrieves the value stored for key, returning ok=false if the key
// is not present. Get never mutates the table and never invokes release
// hooks; the returned value remains owned by the table and must not be
// released by the caller.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	b := m.hash(key) % uint32(len(m.buckets))

	for n := m.buckets[b]; n != nil; n = n.next {
		if m.equal(key, n.key) {
			return n.value, true
		}
	}
	return value, false
}

// Len returns the number of distinct keys in the table.
func (m *Map[K, V]) Len() int {
	return m.used
}
