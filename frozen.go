// frozen.go: Shadow-index wrappers that batch index publication
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import (
	"fmt"
	"iter"
)

// FrozenProducer is a write end that batches index updates. Pushes land in
// the slot array immediately but update only a local shadow of the write
// index; the consumer cannot see them until Commit (or Close). The far-side
// read index is re-read only on Fetch.
//
// One atomic store per batch instead of per item roughly doubles throughput
// on bursty workloads; the wrapper exists entirely for that purpose.
//
// Constructed from a Producer via Freeze; the write hold travels with it.
type FrozenProducer[T any] struct {
	rb *RingBuffer[T]
	// Shadows of the live indices. read is refreshed on Fetch; write is
	// advanced by pushes and published on Commit.
	read  int
	write int
}

func newFrozenProducer[T any](rb *RingBuffer[T]) *FrozenProducer[T] {
	return &FrozenProducer[T]{rb: rb, read: rb.ReadIndex(), write: rb.WriteIndex()}
}

// Capacity returns the fixed buffer capacity.
func (p *FrozenProducer[T]) Capacity() int { return p.rb.Capacity() }

// ReadIndex returns the shadow of the consumer position (as of the last
// Fetch).
func (p *FrozenProducer[T]) ReadIndex() int { return p.read }

// WriteIndex returns the local producer position, including uncommitted
// pushes.
func (p *FrozenProducer[T]) WriteIndex() int { return p.write }

// OccupiedLen returns the number of stored items as seen through the
// shadows.
func (p *FrozenProducer[T]) OccupiedLen() int {
	m := p.rb.modulus()
	return (m + p.write - p.read) % m
}

// VacantLen returns the number of free slots as seen through the shadows.
func (p *FrozenProducer[T]) VacantLen() int {
	return (p.rb.Capacity() + p.read - p.write) % p.rb.modulus()
}

// IsEmpty reports emptiness as seen through the shadows.
func (p *FrozenProducer[T]) IsEmpty() bool { return p.read == p.write }

// IsFull reports fullness as seen through the shadows. Fetch may reveal
// slots freed by the consumer since the last fetch.
func (p *FrozenProducer[T]) IsFull() bool { return p.VacantLen() == 0 }

// ReadIsHeld reports whether the consumer handle is currently alive.
func (p *FrozenProducer[T]) ReadIsHeld() bool { return p.rb.ReadIsHeld() }

// WriteIsHeld reports whether a producer handle is currently alive.
func (p *FrozenProducer[T]) WriteIsHeld() bool { return p.rb.WriteIsHeld() }

// Commit publishes the local write index to the live one, making all
// staged pushes visible to the consumer at once.
func (p *FrozenProducer[T]) Commit() { p.rb.setWriteIndex(p.write) }

// Fetch refreshes the read shadow from the live index, making slots freed
// by the consumer available for pushing.
func (p *FrozenProducer[T]) Fetch() { p.read = p.rb.ReadIndex() }

// Sync commits and then fetches.
func (p *FrozenProducer[T]) Sync() {
	p.Commit()
	p.Fetch()
}

// Discard reverts all uncommitted pushes: every item staged since the last
// Commit is dropped in place (its slot zeroed) and the local write index is
// rewound to the live one.
func (p *FrozenProducer[T]) Discard() int {
	liveWrite := p.rb.WriteIndex()
	m := p.rb.modulus()
	staged := (m + p.write - liveWrite) % m
	if staged > 0 {
		first, second := p.rb.storage.slices(liveWrite, p.write)
		zeroPair(first, second, staged)
		p.write = liveWrite
	}
	return staged
}

// TryPush stages an item. Returns ErrFull when the shadows show no vacant
// slot and ErrClosed once the consumer has gone away. The item is not
// visible to the consumer until Commit.
func (p *FrozenProducer[T]) TryPush(item T) error {
	if !p.rb.ReadIsHeld() {
		return ErrClosed
	}
	if p.IsFull() {
		return ErrFull
	}
	first, _ := p.rb.storage.slices(p.write, p.read+p.rb.Capacity())
	first[0] = item
	p.write = (p.write + 1) % p.rb.modulus()
	return nil
}

// VacantSlices returns the vacant region as seen through the shadows.
func (p *FrozenProducer[T]) VacantSlices() ([]T, []T) {
	return p.rb.storage.slices(p.write, p.read+p.rb.Capacity())
}

// AdvanceWriteIndex stages count previously filled vacant slots. Commit
// publishes them.
//
// Panics if count exceeds the shadow vacant length.
func (p *FrozenProducer[T]) AdvanceWriteIndex(count int) {
	if vacant := p.VacantLen(); count < 0 || count > vacant {
		panic(fmt.Sprintf("euros: advance write by %d exceeds vacant length %d", count, vacant))
	}
	p.write = (p.write + count) % p.rb.modulus()
}

// PushSlice stages items from elems until the shadows show a full buffer or
// the slice is exhausted. Returns the number staged; 0 once the consumer is
// gone.
func (p *FrozenProducer[T]) PushSlice(elems []T) int {
	if !p.rb.ReadIsHeld() {
		return 0
	}
	first, second := p.VacantSlices()
	n := copyToPair(first, second, elems)
	p.write = (p.write + n) % p.rb.modulus()
	return n
}

// PushIter stages items pulled from seq until the shadows show a full
// buffer or the sequence ends. Returns the number staged; 0 once the
// consumer is gone.
func (p *FrozenProducer[T]) PushIter(seq iter.Seq[T]) int {
	if !p.rb.ReadIsHeld() {
		return 0
	}
	first, second := p.VacantSlices()
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
	p.write = (p.write + n) % p.rb.modulus()
	return n
}

// Observe creates a read-only view onto the same buffer. It sees committed
// state only.
func (p *FrozenProducer[T]) Observe() *Observer[T] { return p.rb.Observe() }

// Close commits staged pushes and releases the producer role. Idempotent.
func (p *FrozenProducer[T]) Close() {
	if p.rb == nil {
		return
	}
	p.Commit()
	p.rb.holdWrite(false)
	p.rb = nil
}

// FrozenConsumer is a read end that batches index updates. Pops take items
// out immediately but update only a local shadow of the read index; the
// freed slots are not returned to the producer until Commit (or Close).
// Items pushed by the producer become visible only on Fetch.
//
// There is no Discard analog: a pop physically moves the item out and
// cannot be undone.
//
// Constructed from a Consumer via Freeze; the read hold travels with it.
type FrozenConsumer[T any] struct {
	rb    *RingBuffer[T]
	read  int
	write int
}

func newFrozenConsumer[T any](rb *RingBuffer[T]) *FrozenConsumer[T] {
	return &FrozenConsumer[T]{rb: rb, read: rb.ReadIndex(), write: rb.WriteIndex()}
}

// Capacity returns the fixed buffer capacity.
func (c *FrozenConsumer[T]) Capacity() int { return c.rb.Capacity() }

// ReadIndex returns the local consumer position, including uncommitted
// pops.
func (c *FrozenConsumer[T]) ReadIndex() int { return c.read }

// WriteIndex returns the shadow of the producer position (as of the last
// Fetch).
func (c *FrozenConsumer[T]) WriteIndex() int { return c.write }

// OccupiedLen returns the number of stored items as seen through the
// shadows.
func (c *FrozenConsumer[T]) OccupiedLen() int {
	m := c.rb.modulus()
	return (m + c.write - c.read) % m
}

// VacantLen returns the number of free slots as seen through the shadows.
func (c *FrozenConsumer[T]) VacantLen() int {
	return (c.rb.Capacity() + c.read - c.write) % c.rb.modulus()
}

// IsEmpty reports emptiness as seen through the shadows. Fetch may reveal
// items pushed since the last fetch.
func (c *FrozenConsumer[T]) IsEmpty() bool { return c.read == c.write }

// IsFull reports fullness as seen through the shadows.
func (c *FrozenConsumer[T]) IsFull() bool { return c.VacantLen() == 0 }

// ReadIsHeld reports whether a consumer handle is currently alive.
func (c *FrozenConsumer[T]) ReadIsHeld() bool { return c.rb.ReadIsHeld() }

// WriteIsHeld reports whether the producer handle is currently alive.
func (c *FrozenConsumer[T]) WriteIsHeld() bool { return c.rb.WriteIsHeld() }

// Commit publishes the local read index to the live one, returning all
// popped slots to the producer at once.
func (c *FrozenConsumer[T]) Commit() { c.rb.setReadIndex(c.read) }

// Fetch refreshes the write shadow from the live index, making items
// pushed by the producer visible.
func (c *FrozenConsumer[T]) Fetch() { c.write = c.rb.WriteIndex() }

// Sync commits and then fetches.
func (c *FrozenConsumer[T]) Sync() {
	c.Commit()
	c.Fetch()
}

// TryPop removes and returns the oldest item as seen through the shadows.
// Returns false if the shadows show an empty buffer.
func (c *FrozenConsumer[T]) TryPop() (T, bool) {
	if c.IsEmpty() {
		var zero T
		return zero, false
	}
	first, _ := c.rb.storage.slices(c.read, c.write)
	item := first[0]
	var zero T
	first[0] = zero
	c.read = (c.read + 1) % c.rb.modulus()
	return item, true
}

// AsSlices returns the occupied region as seen through the shadows, oldest
// items first.
func (c *FrozenConsumer[T]) AsSlices() ([]T, []T) {
	return c.rb.storage.slices(c.read, c.write)
}

// AdvanceReadIndex stages the release of the first count occupied slots,
// zeroing them. Commit returns them to the producer.
//
// Panics if count exceeds the shadow occupied length.
func (c *FrozenConsumer[T]) AdvanceReadIndex(count int) {
	if occupied := c.OccupiedLen(); count < 0 || count > occupied {
		panic(fmt.Sprintf("euros: advance read by %d exceeds occupied length %d", count, occupied))
	}
	first, second := c.AsSlices()
	zeroPair(first, second, count)
	c.read = (c.read + count) % c.rb.modulus()
}

// PopSlice removes items into elems. Returns the number removed.
func (c *FrozenConsumer[T]) PopSlice(elems []T) int {
	first, second := c.AsSlices()
	n := copyFromPair(elems, first, second)
	zeroPair(first, second, n)
	c.read = (c.read + n) % c.rb.modulus()
	return n
}

// PopIter returns an iterator that removes items one by one from the
// shadow-occupied region. Removals are staged, not committed.
func (c *FrozenConsumer[T]) PopIter() iter.Seq[T] {
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

// Iter returns a non-removing front-to-back iterator over the
// shadow-occupied region.
func (c *FrozenConsumer[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		first, second := c.AsSlices()
		for _, slot := range [2][]T{first, second} {
			for i := range slot {
				if !yield(slot[i]) {
					return
				}
			}
		}
	}
}

// Skip stages the drop of up to count items. Returns the number dropped.
func (c *FrozenConsumer[T]) Skip(count int) int {
	first, second := c.AsSlices()
	n := zeroPair(first, second, count)
	c.read = (c.read + n) % c.rb.modulus()
	return n
}

// Clear stages the drop of all shadow-occupied items. Returns the number
// dropped.
func (c *FrozenConsumer[T]) Clear() int {
	return c.Skip(c.OccupiedLen())
}

// IsClosed reports end of stream as seen through the shadows: the producer
// has gone away and no unfetched or shadow-occupied items remain.
func (c *FrozenConsumer[T]) IsClosed() bool {
	if c.rb.WriteIsHeld() {
		return false
	}
	c.Fetch()
	return c.IsEmpty()
}

// Observe creates a read-only view onto the same buffer. It sees committed
// state only.
func (c *FrozenConsumer[T]) Observe() *Observer[T] { return c.rb.Observe() }

// Close commits staged pops and releases the consumer role. Idempotent.
func (c *FrozenConsumer[T]) Close() {
	if c.rb == nil {
		return
	}
	c.Commit()
	c.rb.holdRead(false)
	c.rb = nil
}
