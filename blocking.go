// blocking.go: Thread-blocking producer and consumer wrappers
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import (
	"context"
	"errors"
	"time"

	"github.com/agilira/go-timecache"
)

// BlockingProducer is a write end whose operations park the calling
// goroutine instead of failing when the buffer is full. It is woken by the
// consumer's next index store and by consumer departure.
//
// The core never suspends; this wrapper consumes the close/wake hooks and
// translates "full" into suspension, "consumer gone" into ErrClosed and a
// spent deadline into ErrTimeout. Deadline checks inside the retry loop use
// the cached time source to stay cheap.
type BlockingProducer[T any] struct {
	p         *CachingProducer[T]
	w         *waiter
	timeCache *timecache.TimeCache
}

// BlockingConsumer is the mirror read end: operations park when the buffer
// is empty and are woken by the producer's next index store and by producer
// departure.
type BlockingConsumer[T any] struct {
	c         *CachingConsumer[T]
	w         *waiter
	timeCache *timecache.TimeCache
}

// SplitBlocking hands out a blocking producer/consumer pair. The wrappers
// register one waiter per side with the ring buffer; every commit-point
// index store and every hold-flag drop wakes the opposite side.
//
// Panics if either role is already held.
func (rb *RingBuffer[T]) SplitBlocking() (*BlockingProducer[T], *BlockingConsumer[T]) {
	p, c := rb.Split()
	bp := &BlockingProducer[T]{
		p:         p,
		w:         rb.registerProdWaiter(),
		timeCache: timecache.NewWithResolution(time.Millisecond),
	}
	bc := &BlockingConsumer[T]{
		c:         c,
		w:         rb.registerConsWaiter(),
		timeCache: timecache.NewWithResolution(time.Millisecond),
	}
	return bp, bc
}

// Producer side.

// Push appends an item, parking while the buffer is full. Returns ErrClosed
// once the consumer has gone away; the item stays with the caller.
func (bp *BlockingProducer[T]) Push(item T) error {
	return bp.push(item, time.Time{})
}

// PushTimeout is Push bounded by a deadline. Returns ErrTimeout if the
// deadline elapses before a slot frees up.
func (bp *BlockingProducer[T]) PushTimeout(item T, timeout time.Duration) error {
	return bp.push(item, bp.timeCache.CachedTime().Add(timeout))
}

func (bp *BlockingProducer[T]) push(item T, deadline time.Time) error {
	for {
		err := bp.p.TryPush(item)
		if err == nil || errors.Is(err, ErrClosed) {
			return err
		}
		if !bp.park(deadline) {
			return ErrTimeout
		}
	}
}

// PushContext appends an item, parking while the buffer is full, until ctx
// is done. Returns ctx.Err() on cancellation and ErrClosed once the
// consumer has gone away.
func (bp *BlockingProducer[T]) PushContext(ctx context.Context, item T) error {
	for {
		err := bp.p.TryPush(item)
		if err == nil || errors.Is(err, ErrClosed) {
			return err
		}
		if err := bp.w.waitContext(ctx); err != nil {
			return err
		}
	}
}

// PushSlice appends every item of elems, parking as needed. Returns the
// number appended; short on ErrClosed or ErrTimeout.
func (bp *BlockingProducer[T]) PushSlice(elems []T, timeout time.Duration) (int, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = bp.timeCache.CachedTime().Add(timeout)
	}
	total := 0
	for total < len(elems) {
		n := bp.p.PushSlice(elems[total:])
		total += n
		if total == len(elems) {
			break
		}
		if !bp.p.ReadIsHeld() {
			return total, ErrClosed
		}
		if n == 0 && !bp.park(deadline) {
			return total, ErrTimeout
		}
	}
	return total, nil
}

// WaitVacant parks until at least count slots are vacant. Returns false if
// the deadline elapses or the consumer is gone before that.
func (bp *BlockingProducer[T]) WaitVacant(count int, timeout time.Duration) bool {
	var deadline time.Time
	if timeout > 0 {
		deadline = bp.timeCache.CachedTime().Add(timeout)
	}
	for bp.p.VacantLen() < count {
		if !bp.p.ReadIsHeld() {
			return false
		}
		if !bp.park(deadline) {
			return false
		}
	}
	return true
}

// IsClosed reports whether the consumer has gone away.
func (bp *BlockingProducer[T]) IsClosed() bool { return !bp.p.ReadIsHeld() }

// Observe creates a read-only view onto the same buffer.
func (bp *BlockingProducer[T]) Observe() *Observer[T] { return bp.p.Observe() }

// Close releases the producer role and wakes a parked consumer. Idempotent.
func (bp *BlockingProducer[T]) Close() {
	bp.p.Close()
	bp.timeCache.Stop()
}

// park waits for consumer-side progress. A zero deadline parks
// indefinitely. Returns false on timeout.
func (bp *BlockingProducer[T]) park(deadline time.Time) bool {
	if deadline.IsZero() {
		return bp.w.wait(0)
	}
	remaining := deadline.Sub(bp.timeCache.CachedTime())
	if remaining <= 0 {
		return false
	}
	return bp.w.wait(remaining)
}

// Consumer side.

// Pop removes and returns the oldest item, parking while the buffer is
// empty. Returns ErrClosed once the producer has gone away and the buffer
// is drained.
func (bc *BlockingConsumer[T]) Pop() (T, error) {
	return bc.pop(time.Time{})
}

// PopTimeout is Pop bounded by a deadline. Returns ErrTimeout if the
// deadline elapses before an item arrives.
func (bc *BlockingConsumer[T]) PopTimeout(timeout time.Duration) (T, error) {
	return bc.pop(bc.timeCache.CachedTime().Add(timeout))
}

func (bc *BlockingConsumer[T]) pop(deadline time.Time) (T, error) {
	for {
		if item, ok := bc.c.TryPop(); ok {
			return item, nil
		}
		// The producer publishes before it departs, so re-check the buffer
		// after observing the hold flag down.
		if !bc.c.WriteIsHeld() {
			if item, ok := bc.c.TryPop(); ok {
				return item, nil
			}
			var zero T
			return zero, ErrClosed
		}
		if !bc.park(deadline) {
			var zero T
			return zero, ErrTimeout
		}
	}
}

// PopContext removes and returns the oldest item, parking while the buffer
// is empty, until ctx is done. Returns ctx.Err() on cancellation and
// ErrClosed at end of stream.
func (bc *BlockingConsumer[T]) PopContext(ctx context.Context) (T, error) {
	for {
		if item, ok := bc.c.TryPop(); ok {
			return item, nil
		}
		if !bc.c.WriteIsHeld() {
			if item, ok := bc.c.TryPop(); ok {
				return item, nil
			}
			var zero T
			return zero, ErrClosed
		}
		if err := bc.w.waitContext(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
}

// PopSlice fills elems completely, parking as needed. Returns the number
// removed; short on ErrClosed or ErrTimeout.
func (bc *BlockingConsumer[T]) PopSlice(elems []T, timeout time.Duration) (int, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = bc.timeCache.CachedTime().Add(timeout)
	}
	total := 0
	for total < len(elems) {
		n := bc.c.PopSlice(elems[total:])
		total += n
		if total == len(elems) {
			break
		}
		if !bc.c.WriteIsHeld() {
			if n := bc.c.PopSlice(elems[total:]); n > 0 {
				total += n
				continue
			}
			return total, ErrClosed
		}
		if n == 0 && !bc.park(deadline) {
			return total, ErrTimeout
		}
	}
	return total, nil
}

// WaitOccupied parks until at least count items are stored. Returns false
// if the deadline elapses or the producer is gone before that.
func (bc *BlockingConsumer[T]) WaitOccupied(count int, timeout time.Duration) bool {
	var deadline time.Time
	if timeout > 0 {
		deadline = bc.timeCache.CachedTime().Add(timeout)
	}
	for bc.c.OccupiedLen() < count {
		if !bc.c.WriteIsHeld() {
			return bc.c.OccupiedLen() >= count
		}
		if !bc.park(deadline) {
			return false
		}
	}
	return true
}

// IsClosed reports end of stream: the producer has gone away and the
// buffer is drained.
func (bc *BlockingConsumer[T]) IsClosed() bool { return bc.c.IsClosed() }

// Observe creates a read-only view onto the same buffer.
func (bc *BlockingConsumer[T]) Observe() *Observer[T] { return bc.c.Observe() }

// Close releases the consumer role and wakes a parked producer. Idempotent.
func (bc *BlockingConsumer[T]) Close() {
	bc.c.Close()
	bc.timeCache.Stop()
}

// park waits for producer-side progress. A zero deadline parks
// indefinitely. Returns false on timeout.
func (bc *BlockingConsumer[T]) park(deadline time.Time) bool {
	if deadline.IsZero() {
		return bc.w.wait(0)
	}
	remaining := deadline.Sub(bc.timeCache.CachedTime())
	if remaining <= 0 {
		return false
	}
	return bc.w.wait(remaining)
}
