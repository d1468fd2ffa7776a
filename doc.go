// Package euros provides a wait-free single-producer single-consumer ring
// buffer with batched index publication.
//
// Euros offers superior performance through zero locks, zero allocations in
// the hot path, and a layered handle design: direct handles for immediate
// visibility, frozen wrappers that batch index updates, and caching
// wrappers that combine the shadow-index fast path with per-operation
// visibility. Capacity is fixed at construction; items leave in the order
// they entered.
//
// # Quick Start
//
// Split a buffer and move items between two goroutines:
//
//	rb := euros.New[int](256)
//	prod, cons := rb.Split()
//
//	go func() {
//		defer prod.Close()
//		for i := 0; i < 100; i++ {
//			for prod.TryPush(i) != nil {
//				runtime.Gosched()
//			}
//		}
//	}()
//
//	for {
//		if v, ok := cons.TryPop(); ok {
//			fmt.Println(v)
//		} else if cons.IsClosed() {
//			break
//		}
//	}
//
// # Constructors
//
// Euros provides multiple constructor functions for different use cases:
//
//	// Heap-allocated, safe to share between two goroutines
//	rb := euros.New[string](1024)
//
//	// Single-goroutine variant without synchronization
//	rb := euros.NewLocal[string](64)
//
//	// Caller-supplied memory with an already-initialized prefix
//	rb := euros.FromSlice(buf, 3)
//
//	// Explicit read/write indices (caller asserts the invariants)
//	rb := euros.FromRawParts(buf, read, write)
//
// # Index Algebra
//
// The read and write indices are kept modulo 2*capacity rather than
// capacity. The extra bit of range is what distinguishes a full buffer
// from an empty one without sacrificing a slot: empty is "indices equal",
// full is "distance equals capacity". The physical slot for a position is
// the position modulo capacity.
//
// # Handles
//
// Split hands out one handle per end; at most one producer role and one
// consumer role exist at a time. Each handle sets its hold flag on
// creation and clears it on Close, and either end can observe the peer's
// flag: a consumer seeing write unheld on a drained buffer knows no more
// items will arrive, and a producer seeing read unheld gets ErrClosed from
// its pushes. Any number of read-only Observers may exist alongside.
//
// # Frozen and Caching Wrappers
//
// A frozen wrapper keeps private shadows of both indices. Mutations touch
// only the shadows; Commit publishes them with a single atomic store and
// Fetch pulls the far side in. One store per batch instead of per item
// roughly doubles throughput on bursty workloads:
//
//	fp := prod.Freeze()
//	for _, v := range batch {
//		fp.TryPush(v) // invisible to the consumer so far
//	}
//	fp.Commit() // the whole batch appears at once
//
// Caching wrappers (what Split returns) automate the policy: commit after
// every mutation, fetch once and retry when a push sees full or a pop sees
// empty. Repeated TryPush calls into a non-full buffer never re-read the
// far-side index; PushSlice, PushIter and PopSlice fetch it on every call.
//
// # Blocking Mode
//
// For goroutine pipelines, SplitBlocking returns ends whose operations park
// instead of failing, with timeout and context forms:
//
//	bp, bc := rb.SplitBlocking()
//	go func() {
//		defer bp.Close()
//		for _, v := range work {
//			bp.Push(v)
//		}
//	}()
//	for {
//		v, err := bc.PopTimeout(time.Second)
//		if err != nil {
//			break // euros.ErrClosed at end of stream
//		}
//		handle(v)
//	}
//
// # Byte Streams
//
// Byte buffers adapt to the standard stream interfaces:
//
//	rb := euros.New[byte](4096)
//	prod, cons := rb.Split()
//	w, r := euros.NewWriter(prod), euros.NewReader(cons)
//
//	w.WriteString("hello")
//	n, _ := r.Read(buf) // "hello"
//
// Read returns io.EOF once the writer is closed and the buffer drained;
// operations that cannot make progress against a live peer return
// ErrWouldBlock.
//
// # Error Handling
//
// Push and pop never fail silently and never lose items: a failed TryPush
// leaves the item with the caller, slice operations report exactly how far
// they got, and blocking operations end with ErrClosed or ErrTimeout.
// Caller-contract violations (zero capacity, a second handle for a held
// role, advancing an index past the available region) panic: they are
// program bugs, not runtime conditions.
//
// # Thread Safety
//
// Buffers built with New may be shared by exactly one producer goroutine
// and one consumer goroutine; both ends are wait-free and synchronize only
// through acquire/release stores of the two indices, each padded to its
// own cache line. Observers are safe from any goroutine. NewLocal buffers
// must stay on one goroutine.
//
// # Performance Tips
//
//  1. Use Split (caching handles) as the default.
//  2. Freeze an end to batch bursts; Commit once per burst.
//  3. Prefer PushSlice/PopSlice over per-item calls for bulk data.
//  4. Size the capacity so the producer rarely sees a full buffer.
//  5. Use NewLocal when everything runs on one goroutine.
package euros
