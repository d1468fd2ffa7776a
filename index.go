// index.go: Read/write index cells for single- and multi-goroutine use
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import (
	"sync/atomic"
)

// cacheLineSize is the typical CPU cache line size. The two shared indices
// are padded to separate lines so the producer and the consumer never write
// to the same line (false sharing).
const cacheLineSize = 64

// Index is a single ring buffer position cell in range 0..2*capacity,
// mutated by exactly one end and read by both.
//
// The index has no knowledge of capacity; it stores raw positions. Modulo
// arithmetic is done by the ring buffer.
type Index interface {
	// Get reads the current position. The shared implementation performs an
	// acquire load: it synchronizes with the Set that published the value.
	Get() int
	// Set publishes a new position. The shared implementation performs a
	// release store: slot writes staged before Set become visible to the
	// peer's next Get.
	Set(value int)
}

// LocalIndex is a plain position cell without synchronization.
//
// Use it only when producer and consumer run on the same goroutine (or are
// otherwise externally serialized). Sharing a LocalIndex buffer between
// goroutines is a data race.
type LocalIndex struct {
	value int
}

// Get returns the current position.
func (x *LocalIndex) Get() int { return x.value }

// Set stores a new position.
func (x *LocalIndex) Set(value int) { x.value = value }

// SharedIndex is an atomic position cell on its own cache line.
//
// The acquire/release pairing on Get/Set is load-bearing: the release store
// of the write index after staging an item publishes the slot contents to
// the consumer's acquire load, and symmetrically for the read index.
type SharedIndex struct {
	_     [cacheLineSize]byte
	value atomic.Int64
	_     [cacheLineSize - 8]byte
}

// Get returns the current position (acquire).
func (x *SharedIndex) Get() int { return int(x.value.Load()) }

// Set publishes a new position (release).
func (x *SharedIndex) Set(value int) { x.value.Store(int64(value)) }
