// caching.go: Frozen wrappers with automatic commit and fetch-on-miss
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import "iter"

// CachingProducer is the default write end handed out by Split: a frozen
// wrapper with automatic policy. Every mutation commits immediately, and a
// push that finds the shadow full fetches the far-side index once and
// retries, so every operation is visible immediately while repeated TryPush
// calls into a non-full buffer never re-read the consumer's index.
// VacantSlices, PushSlice, PushIter and the observer methods fetch it on
// every call.
type CachingProducer[T any] struct {
	frozen *FrozenProducer[T]
}

// Capacity returns the fixed buffer capacity.
func (p *CachingProducer[T]) Capacity() int { return p.frozen.Capacity() }

// ReadIndex returns the consumer position, freshly fetched.
func (p *CachingProducer[T]) ReadIndex() int {
	p.frozen.Fetch()
	return p.frozen.ReadIndex()
}

// WriteIndex returns the producer position.
func (p *CachingProducer[T]) WriteIndex() int { return p.frozen.WriteIndex() }

// OccupiedLen returns the number of stored items, freshly fetched.
func (p *CachingProducer[T]) OccupiedLen() int {
	p.frozen.Fetch()
	return p.frozen.OccupiedLen()
}

// VacantLen returns the number of free slots, freshly fetched.
func (p *CachingProducer[T]) VacantLen() int {
	p.frozen.Fetch()
	return p.frozen.VacantLen()
}

// IsEmpty reports whether the buffer holds no items, freshly fetched.
func (p *CachingProducer[T]) IsEmpty() bool {
	p.frozen.Fetch()
	return p.frozen.IsEmpty()
}

// IsFull reports whether the buffer has no vacant slots, freshly fetched.
func (p *CachingProducer[T]) IsFull() bool {
	p.frozen.Fetch()
	return p.frozen.IsFull()
}

// ReadIsHeld reports whether the consumer handle is currently alive.
func (p *CachingProducer[T]) ReadIsHeld() bool { return p.frozen.ReadIsHeld() }

// WriteIsHeld reports whether a producer handle is currently alive.
func (p *CachingProducer[T]) WriteIsHeld() bool { return p.frozen.WriteIsHeld() }

// TryPush appends an item and commits it. When the shadow shows a full
// buffer the far-side index is fetched once and the push retried. Returns
// ErrFull if the buffer is really full and ErrClosed once the consumer has
// gone away.
func (p *CachingProducer[T]) TryPush(item T) error {
	if p.frozen.IsFull() {
		p.frozen.Fetch()
	}
	err := p.frozen.TryPush(item)
	if err == nil {
		p.frozen.Commit()
	}
	return err
}

// VacantSlices returns the vacant region, freshly fetched. Fill a prefix,
// then commit it with AdvanceWriteIndex.
func (p *CachingProducer[T]) VacantSlices() ([]T, []T) {
	p.frozen.Fetch()
	return p.frozen.VacantSlices()
}

// AdvanceWriteIndex publishes count previously filled vacant slots
// immediately.
func (p *CachingProducer[T]) AdvanceWriteIndex(count int) {
	p.frozen.AdvanceWriteIndex(count)
	p.frozen.Commit()
}

// PushSlice appends items from elems and commits them. Returns the number
// appended; 0 once the consumer is gone.
func (p *CachingProducer[T]) PushSlice(elems []T) int {
	p.frozen.Fetch()
	n := p.frozen.PushSlice(elems)
	if n > 0 {
		p.frozen.Commit()
	}
	return n
}

// PushIter appends items pulled from seq and commits them. Returns the
// number appended; 0 once the consumer is gone.
func (p *CachingProducer[T]) PushIter(seq iter.Seq[T]) int {
	p.frozen.Fetch()
	n := p.frozen.PushIter(seq)
	if n > 0 {
		p.frozen.Commit()
	}
	return n
}

// Freeze strips the automatic policy and returns the underlying frozen
// wrapper. The caching wrapper must not be used afterwards.
func (p *CachingProducer[T]) Freeze() *FrozenProducer[T] { return p.frozen }

// Observe creates a read-only view onto the same buffer.
func (p *CachingProducer[T]) Observe() *Observer[T] { return p.frozen.Observe() }

// Close releases the producer role. Idempotent.
func (p *CachingProducer[T]) Close() { p.frozen.Close() }

// CachingConsumer is the default read end handed out by Split: a frozen
// wrapper with automatic policy. Every removal commits immediately, and a
// pop that finds the shadow empty fetches the far-side index once and
// retries, so repeated TryPop calls from a non-empty buffer never re-read
// the producer's index. AsSlices, PopSlice, Iter, Skip, Clear and the
// observer methods fetch it on every call.
type CachingConsumer[T any] struct {
	frozen *FrozenConsumer[T]
}

// Capacity returns the fixed buffer capacity.
func (c *CachingConsumer[T]) Capacity() int { return c.frozen.Capacity() }

// ReadIndex returns the consumer position.
func (c *CachingConsumer[T]) ReadIndex() int { return c.frozen.ReadIndex() }

// WriteIndex returns the producer position, freshly fetched.
func (c *CachingConsumer[T]) WriteIndex() int {
	c.frozen.Fetch()
	return c.frozen.WriteIndex()
}

// OccupiedLen returns the number of stored items, freshly fetched.
func (c *CachingConsumer[T]) OccupiedLen() int {
	c.frozen.Fetch()
	return c.frozen.OccupiedLen()
}

// VacantLen returns the number of free slots, freshly fetched.
func (c *CachingConsumer[T]) VacantLen() int {
	c.frozen.Fetch()
	return c.frozen.VacantLen()
}

// IsEmpty reports whether the buffer holds no items, freshly fetched.
func (c *CachingConsumer[T]) IsEmpty() bool {
	c.frozen.Fetch()
	return c.frozen.IsEmpty()
}

// IsFull reports whether the buffer has no vacant slots, freshly fetched.
func (c *CachingConsumer[T]) IsFull() bool {
	c.frozen.Fetch()
	return c.frozen.IsFull()
}

// ReadIsHeld reports whether a consumer handle is currently alive.
func (c *CachingConsumer[T]) ReadIsHeld() bool { return c.frozen.ReadIsHeld() }

// WriteIsHeld reports whether the producer handle is currently alive.
func (c *CachingConsumer[T]) WriteIsHeld() bool { return c.frozen.WriteIsHeld() }

// TryPop removes the oldest item and commits the removal. When the shadow
// shows an empty buffer the far-side index is fetched once and the pop
// retried. Returns false if the buffer is really empty.
func (c *CachingConsumer[T]) TryPop() (T, bool) {
	if c.frozen.IsEmpty() {
		c.frozen.Fetch()
	}
	item, ok := c.frozen.TryPop()
	if ok {
		c.frozen.Commit()
	}
	return item, ok
}

// AsSlices returns the occupied region, freshly fetched, oldest items
// first.
func (c *CachingConsumer[T]) AsSlices() ([]T, []T) {
	c.frozen.Fetch()
	return c.frozen.AsSlices()
}

// AdvanceReadIndex releases the first count occupied slots back to the
// producer immediately.
func (c *CachingConsumer[T]) AdvanceReadIndex(count int) {
	c.frozen.AdvanceReadIndex(count)
	c.frozen.Commit()
}

// PopSlice removes items into elems and commits the removal. Returns the
// number removed.
func (c *CachingConsumer[T]) PopSlice(elems []T) int {
	c.frozen.Fetch()
	n := c.frozen.PopSlice(elems)
	if n > 0 {
		c.frozen.Commit()
	}
	return n
}

// PopIter returns an iterator that removes items one by one, committing
// each removal immediately.
func (c *CachingConsumer[T]) PopIter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := c.TryPop()
			if !ok {
				return
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Iter returns a non-removing front-to-back iterator over the occupied
// region, freshly fetched.
func (c *CachingConsumer[T]) Iter() iter.Seq[T] {
	c.frozen.Fetch()
	return c.frozen.Iter()
}

// Skip drops up to count items and commits the removal. Returns the number
// dropped.
func (c *CachingConsumer[T]) Skip(count int) int {
	c.frozen.Fetch()
	n := c.frozen.Skip(count)
	if n > 0 {
		c.frozen.Commit()
	}
	return n
}

// Clear drops all stored items and commits the removal. Returns the number
// dropped.
func (c *CachingConsumer[T]) Clear() int {
	c.frozen.Fetch()
	n := c.frozen.Clear()
	if n > 0 {
		c.frozen.Commit()
	}
	return n
}

// IsClosed reports end of stream: the producer has gone away and the
// buffer is drained.
func (c *CachingConsumer[T]) IsClosed() bool {
	if c.frozen.WriteIsHeld() {
		return false
	}
	c.frozen.Fetch()
	return c.frozen.IsEmpty()
}

// Freeze strips the automatic policy and returns the underlying frozen
// wrapper. The caching wrapper must not be used afterwards.
func (c *CachingConsumer[T]) Freeze() *FrozenConsumer[T] { return c.frozen }

// Observe creates a read-only view onto the same buffer.
func (c *CachingConsumer[T]) Observe() *Observer[T] { return c.frozen.Observe() }

// Close releases the consumer role. Idempotent.
func (c *CachingConsumer[T]) Close() { c.frozen.Close() }
