// handles.go: Observer, Producer and Consumer views onto a shared buffer
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import "iter"

// Observer is a read-only companion view onto a ring buffer. Any number may
// exist; an observer never touches data and holds no role.
type Observer[T any] struct {
	rb *RingBuffer[T]
}

// Observe creates a read-only view onto the buffer.
func (rb *RingBuffer[T]) Observe() *Observer[T] { return &Observer[T]{rb: rb} }

// Capacity returns the fixed buffer capacity.
func (o *Observer[T]) Capacity() int { return o.rb.Capacity() }

// ReadIndex returns the consumer position, in range 0..2*capacity.
func (o *Observer[T]) ReadIndex() int { return o.rb.ReadIndex() }

// WriteIndex returns the producer position, in range 0..2*capacity.
func (o *Observer[T]) WriteIndex() int { return o.rb.WriteIndex() }

// OccupiedLen returns the number of stored items.
func (o *Observer[T]) OccupiedLen() int { return o.rb.OccupiedLen() }

// VacantLen returns the number of free slots.
func (o *Observer[T]) VacantLen() int { return o.rb.VacantLen() }

// IsEmpty reports whether the buffer holds no items.
func (o *Observer[T]) IsEmpty() bool { return o.rb.IsEmpty() }

// IsFull reports whether the buffer has no vacant slots.
func (o *Observer[T]) IsFull() bool { return o.rb.IsFull() }

// ReadIsHeld reports whether a consumer handle is currently alive.
func (o *Observer[T]) ReadIsHeld() bool { return o.rb.ReadIsHeld() }

// WriteIsHeld reports whether a producer handle is currently alive.
func (o *Observer[T]) WriteIsHeld() bool { return o.rb.WriteIsHeld() }

// Stats returns a point-in-time snapshot of the buffer state.
func (o *Observer[T]) Stats() Stats { return o.rb.Stats() }

// Producer is the direct write end of a ring buffer. At most one producer
// role exists at a time; creating it sets the write hold flag, Close clears
// it (observable by the consumer as end of stream).
//
// Every mutation is immediately visible to the consumer. For batched
// publishing wrap it with Freeze; for the shadow-index fast path with
// automatic visibility use Split, which returns a CachingProducer.
type Producer[T any] struct {
	Observer[T]
	closed bool
}

// Consumer is the direct read end of a ring buffer. At most one consumer
// role exists at a time; creating it sets the read hold flag, Close clears
// it (observable by the producer as "pushes will never be read").
type Consumer[T any] struct {
	Observer[T]
	closed bool
}

// SplitDirect hands out the direct producer/consumer pair.
//
// Panics if either role is already held.
func (rb *RingBuffer[T]) SplitDirect() (*Producer[T], *Consumer[T]) {
	rb.holdWrite(true)
	rb.holdRead(true)
	return &Producer[T]{Observer: Observer[T]{rb: rb}}, &Consumer[T]{Observer: Observer[T]{rb: rb}}
}

// Split hands out the default producer/consumer pair: caching wrappers that
// keep a private shadow of the far-side index and touch the shared atomics
// only when publishing or observing progress.
//
// Panics if either role is already held.
func (rb *RingBuffer[T]) Split() (*CachingProducer[T], *CachingConsumer[T]) {
	p, c := rb.SplitDirect()
	return p.Caching(), c.Caching()
}

// Producer methods.

// TryPush appends an item. Returns ErrFull when there is no vacant slot and
// ErrClosed once the consumer has gone away; either way the item stays with
// the caller.
func (p *Producer[T]) TryPush(item T) error {
	if !p.rb.ReadIsHeld() {
		return ErrClosed
	}
	return p.rb.TryPush(item)
}

// VacantSlices returns the vacant region split across the wrap point. Fill
// a prefix, then commit it with AdvanceWriteIndex.
func (p *Producer[T]) VacantSlices() ([]T, []T) { return p.rb.VacantSlices() }

// AdvanceWriteIndex publishes count previously filled vacant slots.
func (p *Producer[T]) AdvanceWriteIndex(count int) { p.rb.AdvanceWriteIndex(count) }

// PushSlice appends items from elems until the buffer is full or the slice
// is exhausted. Returns the number appended; 0 once the consumer is gone.
func (p *Producer[T]) PushSlice(elems []T) int {
	if !p.rb.ReadIsHeld() {
		return 0
	}
	return p.rb.PushSlice(elems)
}

// PushIter appends items pulled from seq until the buffer is full or the
// sequence ends. Returns the number appended; 0 once the consumer is gone.
func (p *Producer[T]) PushIter(seq iter.Seq[T]) int {
	if !p.rb.ReadIsHeld() {
		return 0
	}
	return p.rb.PushIter(seq)
}

// Freeze converts the producer into its frozen form, transferring the write
// hold. The producer must not be used afterwards.
func (p *Producer[T]) Freeze() *FrozenProducer[T] {
	if p.closed {
		panic("euros: producer handle is closed")
	}
	p.closed = true
	return newFrozenProducer(p.rb)
}

// Caching converts the producer into its caching form, transferring the
// write hold. The producer must not be used afterwards.
func (p *Producer[T]) Caching() *CachingProducer[T] {
	return &CachingProducer[T]{frozen: p.Freeze()}
}

// Observe creates a read-only view onto the same buffer.
func (p *Producer[T]) Observe() *Observer[T] { return p.rb.Observe() }

// Close releases the producer role. The consumer observes the departure as
// end of stream once the buffer drains. Idempotent.
func (p *Producer[T]) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.rb.holdWrite(false)
}

// Consumer methods.

// TryPop removes and returns the oldest item. Returns false if the buffer
// is empty.
func (c *Consumer[T]) TryPop() (T, bool) { return c.rb.TryPop() }

// AsSlices returns the occupied region split across the wrap point, oldest
// items first.
func (c *Consumer[T]) AsSlices() ([]T, []T) { return c.rb.AsSlices() }

// AdvanceReadIndex releases the first count occupied slots back to the
// producer.
func (c *Consumer[T]) AdvanceReadIndex(count int) { c.rb.AdvanceReadIndex(count) }

// PopSlice removes items into elems. Returns the number removed.
func (c *Consumer[T]) PopSlice(elems []T) int { return c.rb.PopSlice(elems) }

// PopIter returns an iterator that removes items one by one.
func (c *Consumer[T]) PopIter() iter.Seq[T] { return c.rb.PopIter() }

// Iter returns a non-removing front-to-back iterator.
func (c *Consumer[T]) Iter() iter.Seq[T] { return c.rb.Iter() }

// Skip drops up to count items. Returns the number actually dropped.
func (c *Consumer[T]) Skip(count int) int { return c.rb.Skip(count) }

// Clear drops all stored items. Returns the number dropped.
func (c *Consumer[T]) Clear() int { return c.rb.Clear() }

// IsClosed reports end of stream: the producer has gone away and the buffer
// is drained. No more items will ever arrive.
func (c *Consumer[T]) IsClosed() bool {
	return !c.rb.WriteIsHeld() && c.rb.IsEmpty()
}

// Freeze converts the consumer into its frozen form, transferring the read
// hold. The consumer must not be used afterwards.
func (c *Consumer[T]) Freeze() *FrozenConsumer[T] {
	if c.closed {
		panic("euros: consumer handle is closed")
	}
	c.closed = true
	return newFrozenConsumer(c.rb)
}

// Caching converts the consumer into its caching form, transferring the
// read hold. The consumer must not be used afterwards.
func (c *Consumer[T]) Caching() *CachingConsumer[T] {
	return &CachingConsumer[T]{frozen: c.Freeze()}
}

// Observe creates a read-only view onto the same buffer.
func (c *Consumer[T]) Observe() *Observer[T] { return c.rb.Observe() }

// Close releases the consumer role. The producer observes the departure and
// its subsequent pushes fail with ErrClosed. Idempotent.
func (c *Consumer[T]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.rb.holdRead(false)
}
