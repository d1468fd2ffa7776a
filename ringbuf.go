// ringbuf.go: SPSC lock-free ring buffer core
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// RingBuffer is a single-producer single-consumer lock-free ring buffer.
//
// Capacity is fixed at construction. The read and write indices are kept
// modulo 2*capacity, which is what distinguishes full from empty without
// sacrificing a slot: the buffer is empty iff the indices are equal and
// full iff their distance equals capacity.
//
// The full API is available on the buffer itself for unsplit use. For the
// producer/consumer pattern, Split hands out one handle per end; each end
// then owns exactly one index and the atomic index store is the single
// point where slot ownership transfers between them.
//
// Design rationale: wait-free in the classic SPSC sense. Every operation
// completes in a bounded number of steps independent of the peer. No mutex,
// no CAS loop; the multi-goroutine variant uses only acquire/release atomic
// load/store on the two indices.
type RingBuffer[T any] struct {
	storage storage[T]
	read    Index
	write   Index

	readHeld  atomic.Bool
	writeHeld atomic.Bool

	// Waiters registered by blocking wrappers. prodWaiter is woken by
	// consumer-side progress (read index store, consumer departure),
	// consWaiter by producer-side progress.
	prodWaiter atomic.Pointer[waiter]
	consWaiter atomic.Pointer[waiter]
}

// New creates a ring buffer with a heap-allocated slot array, safe to share
// between one producer goroutine and one consumer goroutine.
//
// Panics if capacity is not positive.
func New[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		panic("euros: capacity must be positive")
	}
	return &RingBuffer[T]{
		storage: storage[T]{slots: make([]T, capacity)},
		read:    &SharedIndex{},
		write:   &SharedIndex{},
	}
}

// NewLocal creates a ring buffer for single-goroutine use only. It uses
// plain index cells with no synchronization, so it is slightly faster than
// New but must never be shared between goroutines.
//
// Panics if capacity is not positive.
func NewLocal[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		panic("euros: capacity must be positive")
	}
	return &RingBuffer[T]{
		storage: storage[T]{slots: make([]T, capacity)},
		read:    &LocalIndex{},
		write:   &LocalIndex{},
	}
}

// FromSlice creates a ring buffer over caller-supplied memory. The first
// initialized slots are treated as already-occupied items (read index 0,
// write index initialized); the rest must be zero values.
//
// The caller must not touch slots through the original slice afterwards.
//
// Panics if slots is empty or initialized is out of range.
func FromSlice[T any](slots []T, initialized int) *RingBuffer[T] {
	if len(slots) < 1 {
		panic("euros: capacity must be positive")
	}
	if initialized < 0 || initialized > len(slots) {
		panic(fmt.Sprintf("euros: initialized prefix %d out of range 0..%d", initialized, len(slots)))
	}
	rb := &RingBuffer[T]{
		storage: storage[T]{slots: slots},
		read:    &SharedIndex{},
		write:   &SharedIndex{},
	}
	rb.write.Set(initialized)
	return rb
}

// FromRawParts reassembles a ring buffer from a slot array and explicit
// read/write indices, e.g. ones previously observed on another buffer. The
// caller asserts the invariants: both indices in 0..2*len(slots), distance
// at most len(slots), and exactly the slots in [read, write) hold items.
//
// Panics if the indices are out of range or their distance exceeds the
// capacity.
func FromRawParts[T any](slots []T, readIndex, writeIndex int) *RingBuffer[T] {
	capacity := len(slots)
	if capacity < 1 {
		panic("euros: capacity must be positive")
	}
	modulus := 2 * capacity
	if readIndex < 0 || readIndex >= modulus || writeIndex < 0 || writeIndex >= modulus {
		panic(fmt.Sprintf("euros: index out of range 0..%d", modulus))
	}
	if (modulus+writeIndex-readIndex)%modulus > capacity {
		panic("euros: occupied length exceeds capacity")
	}
	rb := &RingBuffer[T]{
		storage: storage[T]{slots: slots},
		read:    &SharedIndex{},
		write:   &SharedIndex{},
	}
	rb.read.Set(readIndex)
	rb.write.Set(writeIndex)
	return rb
}

// modulus for index arithmetic, 2*capacity.
func (rb *RingBuffer[T]) modulus() int { return 2 * rb.storage.capacity() }

// setWriteIndex is the producer-side commit point: it publishes staged
// slots and wakes a waiting consumer.
func (rb *RingBuffer[T]) setWriteIndex(value int) {
	rb.write.Set(value)
	if w := rb.consWaiter.Load(); w != nil {
		w.wake()
	}
}

// setReadIndex is the consumer-side commit point: it releases slots back to
// the producer and wakes a waiting producer.
func (rb *RingBuffer[T]) setReadIndex(value int) {
	rb.read.Set(value)
	if w := rb.prodWaiter.Load(); w != nil {
		w.wake()
	}
}

// Observer operations.
//
// All are O(1) and may be called from either end at any time. Every value
// except Capacity may be stale by the time it is inspected.

// Capacity returns the fixed maximum number of simultaneously stored items.
func (rb *RingBuffer[T]) Capacity() int { return rb.storage.capacity() }

// ReadIndex returns the consumer position, in range 0..2*capacity.
func (rb *RingBuffer[T]) ReadIndex() int { return rb.read.Get() }

// WriteIndex returns the producer position, in range 0..2*capacity.
func (rb *RingBuffer[T]) WriteIndex() int { return rb.write.Get() }

// OccupiedLen returns the number of stored items.
func (rb *RingBuffer[T]) OccupiedLen() int {
	m := rb.modulus()
	return (m + rb.write.Get() - rb.read.Get()) % m
}

// VacantLen returns the number of free slots.
func (rb *RingBuffer[T]) VacantLen() int {
	return (rb.storage.capacity() + rb.read.Get() - rb.write.Get()) % rb.modulus()
}

// IsEmpty reports whether the buffer holds no items.
func (rb *RingBuffer[T]) IsEmpty() bool { return rb.read.Get() == rb.write.Get() }

// IsFull reports whether the buffer has no vacant slots.
func (rb *RingBuffer[T]) IsFull() bool { return rb.VacantLen() == 0 }

// ReadIsHeld reports whether a consumer handle is currently alive.
func (rb *RingBuffer[T]) ReadIsHeld() bool { return rb.readHeld.Load() }

// WriteIsHeld reports whether a producer handle is currently alive.
func (rb *RingBuffer[T]) WriteIsHeld() bool { return rb.writeHeld.Load() }

// Stats returns a point-in-time snapshot for telemetry and monitoring.
// Safe to call concurrently from any goroutine on shared buffers.
func (rb *RingBuffer[T]) Stats() Stats {
	r, w := rb.read.Get(), rb.write.Get()
	capacity := rb.storage.capacity()
	m := 2 * capacity
	occupied := (m + w - r) % m
	return Stats{
		Capacity:   capacity,
		Occupied:   occupied,
		Vacant:     capacity - occupied,
		ReadIndex:  r,
		WriteIndex: w,
		ReadHeld:   rb.readHeld.Load(),
		WriteHeld:  rb.writeHeld.Load(),
	}
}

// Stats is a snapshot of ring buffer state for telemetry and monitoring.
type Stats struct {
	Capacity   int  `json:"capacity"`
	Occupied   int  `json:"occupied"`
	Vacant     int  `json:"vacant"`
	ReadIndex  int  `json:"read_index"`
	WriteIndex int  `json:"write_index"`
	ReadHeld   bool `json:"read_held"`
	WriteHeld  bool `json:"write_held"`
}

// Producer operations.

// TryPush appends an item. Returns ErrFull if there is no vacant slot; the
// item stays with the caller.
func (rb *RingBuffer[T]) TryPush(item T) error {
	r, w := rb.read.Get(), rb.write.Get()
	capacity := rb.storage.capacity()
	if (capacity+r-w)%(2*capacity) == 0 {
		return ErrFull
	}
	first, _ := rb.storage.slices(w, r+capacity)
	first[0] = item
	rb.setWriteIndex((w + 1) % (2 * capacity))
	return nil
}

// VacantSlices returns the vacant region split across the wrap point.
// Either slice may be empty. The caller may fill a prefix of the region
// (first slice first) and then call AdvanceWriteIndex with the number of
// slots filled. No other mutating call is allowed in between.
func (rb *RingBuffer[T]) VacantSlices() ([]T, []T) {
	r, w := rb.read.Get(), rb.write.Get()
	return rb.storage.slices(w, r+rb.storage.capacity())
}

// AdvanceWriteIndex publishes count previously filled vacant slots. This is
// the producer's commit point.
//
// Panics if count exceeds the vacant length: that is a caller-contract
// violation, not a runtime condition.
func (rb *RingBuffer[T]) AdvanceWriteIndex(count int) {
	if vacant := rb.VacantLen(); count < 0 || count > vacant {
		panic(fmt.Sprintf("euros: advance write by %d exceeds vacant length %d", count, vacant))
	}
	rb.setWriteIndex((rb.write.Get() + count) % rb.modulus())
}

// PushSlice appends items from elems until the buffer is full or the slice
// is exhausted. Returns the number of items appended.
func (rb *RingBuffer[T]) PushSlice(elems []T) int {
	first, second := rb.VacantSlices()
	n := copyToPair(first, second, elems)
	if n > 0 {
		rb.setWriteIndex((rb.write.Get() + n) % rb.modulus())
	}
	return n
}

// PushIter appends items pulled from seq until the buffer is full or the
// sequence ends. Items are pulled only when a slot is available, so an
// unconsumed remainder stays in the sequence. Returns the number appended.
//
// Items are committed all at once at the end.
func (rb *RingBuffer[T]) PushIter(seq iter.Seq[T]) int {
	first, second := rb.VacantSlices()
	next, stop := iter.Pull(seq)
	defer stop()
	n := 0
	for _, slot := range [2][]T{first, second} {
		for i := range slot {
			item, ok := next()
			if !ok {
				goto done
			}
			slot[i] = item
			n++
		}
	}
done:
	if n > 0 {
		rb.setWriteIndex((rb.write.Get() + n) % rb.modulus())
	}
	return n
}

// PushOverwrite appends an item, popping the oldest one first when the
// buffer is full. Returns the popped item and true if overwriting took
// place. The new item always lands.
func (rb *RingBuffer[T]) PushOverwrite(item T) (T, bool) {
	var popped T
	overwrote := false
	if rb.IsFull() {
		popped, overwrote = rb.TryPop()
	}
	_ = rb.TryPush(item)
	return popped, overwrote
}

// PushSliceOverwrite appends all items of elems, skipping the oldest stored
// items as needed. If elems is longer than the capacity only its last
// capacity items end up stored.
func (rb *RingBuffer[T]) PushSliceOverwrite(elems []T) {
	if excess := len(elems) - rb.VacantLen(); excess > 0 {
		rb.Skip(min(excess, rb.OccupiedLen()))
	}
	if vacant := rb.VacantLen(); len(elems) > vacant {
		elems = elems[len(elems)-vacant:]
	}
	rb.PushSlice(elems)
}

// PushIterOverwrite appends every item of seq, overwriting the oldest
// stored items as needed. After the call the buffer holds the last
// min(sequence length, capacity) items of the sequence in order.
func (rb *RingBuffer[T]) PushIterOverwrite(seq iter.Seq[T]) {
	for item := range seq {
		rb.PushOverwrite(item)
	}
}

// Consumer operations.

// TryPop removes and returns the oldest item. Returns false if the buffer
// is empty.
func (rb *RingBuffer[T]) TryPop() (T, bool) {
	r, w := rb.read.Get(), rb.write.Get()
	if r == w {
		var zero T
		return zero, false
	}
	first, _ := rb.storage.slices(r, w)
	item := first[0]
	var zero T
	first[0] = zero
	rb.setReadIndex((r + 1) % rb.modulus())
	return item, true
}

// AsSlices returns the occupied region split across the wrap point, oldest
// items first. Either slice may be empty. Items may be inspected or mutated
// in place; removing them requires AdvanceReadIndex.
func (rb *RingBuffer[T]) AsSlices() ([]T, []T) {
	r, w := rb.read.Get(), rb.write.Get()
	return rb.storage.slices(r, w)
}

// AdvanceReadIndex releases the first count occupied slots back to the
// producer, zeroing them so the GC can reclaim whatever the items
// referenced. This is the consumer's commit point; callers must have copied
// out any items they still need.
//
// Panics if count exceeds the occupied length: that is a caller-contract
// violation, not a runtime condition.
func (rb *RingBuffer[T]) AdvanceReadIndex(count int) {
	if occupied := rb.OccupiedLen(); count < 0 || count > occupied {
		panic(fmt.Sprintf("euros: advance read by %d exceeds occupied length %d", count, occupied))
	}
	first, second := rb.AsSlices()
	zeroPair(first, second, count)
	rb.setReadIndex((rb.read.Get() + count) % rb.modulus())
}

// PopSlice removes items into elems. Returns the number of items removed.
func (rb *RingBuffer[T]) PopSlice(elems []T) int {
	first, second := rb.AsSlices()
	n := copyFromPair(elems, first, second)
	if n > 0 {
		zeroPair(first, second, n)
		rb.setReadIndex((rb.read.Get() + n) % rb.modulus())
	}
	return n
}

// PopIter returns an iterator that removes items one by one, committing
// each removal immediately. Stopping early leaves the remaining items in
// the buffer.
func (rb *RingBuffer[T]) PopIter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := rb.TryPop()
			if !ok {
				return
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Iter returns a front-to-back iterator over the stored items without
// removing them.
func (rb *RingBuffer[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		first, second := rb.AsSlices()
		for _, slot := range [2][]T{first, second} {
			for i := range slot {
				if !yield(slot[i]) {
					return
				}
			}
		}
	}
}

// Skip drops up to count items without returning them. Returns the number
// actually dropped: min(count, occupied length at the time of the call).
func (rb *RingBuffer[T]) Skip(count int) int {
	first, second := rb.AsSlices()
	n := zeroPair(first, second, count)
	if n > 0 {
		rb.setReadIndex((rb.read.Get() + n) % rb.modulus())
	}
	return n
}

// Clear drops all stored items. Returns the number dropped.
func (rb *RingBuffer[T]) Clear() int {
	return rb.Skip(rb.OccupiedLen())
}

// Close tears the buffer down: every remaining item is dropped exactly once
// and its slot zeroed; vacant slots are untouched. Call it after both
// handles have been released (or on a never-split buffer) when stored items
// hold resources the GC should reclaim promptly.
func (rb *RingBuffer[T]) Close() {
	rb.Clear()
}

// Role-primitive hold operations. Protected by assertion: at most one
// holder of each role exists at a time.

func (rb *RingBuffer[T]) holdRead(held bool) {
	if held {
		if rb.readHeld.Swap(true) {
			panic("euros: consumer role is already held")
		}
		return
	}
	rb.readHeld.Store(false)
	// Departure is observable progress for a blocked producer.
	if w := rb.prodWaiter.Load(); w != nil {
		w.wake()
	}
}

func (rb *RingBuffer[T]) holdWrite(held bool) {
	if held {
		if rb.writeHeld.Swap(true) {
			panic("euros: producer role is already held")
		}
		return
	}
	rb.writeHeld.Store(false)
	if w := rb.consWaiter.Load(); w != nil {
		w.wake()
	}
}
