// euros_bench_test.go: Performance benchmarks
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import (
	"testing"
	"time"

	"github.com/agilira/go-timecache"
)

// BenchmarkLocalPushPop measures the single-goroutine hot path with no
// synchronization at all.
func BenchmarkLocalPushPop(b *testing.B) {
	rb := NewLocal[int](1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rb.TryPush(i)
		rb.TryPop()
	}
}

// BenchmarkSharedPushPop measures the shared (atomic index) variant from a
// single goroutine: the cost of the acquire/release pair without contention.
func BenchmarkSharedPushPop(b *testing.B) {
	rb := New[int](1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rb.TryPush(i)
		rb.TryPop()
	}
}

// BenchmarkCachingPushPop measures the default split handles: shadow
// indices with automatic commit.
func BenchmarkCachingPushPop(b *testing.B) {
	rb := New[int](1024)
	p, c := rb.Split()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.TryPush(i)
		c.TryPop()
	}
}

// BenchmarkFrozenBatch measures batched publication: one atomic store per
// 64-item burst instead of per item.
func BenchmarkFrozenBatch(b *testing.B) {
	const batch = 64
	rb := New[int](1024)
	p, c := rb.SplitDirect()
	fp, fc := p.Freeze(), c.Freeze()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < batch; j++ {
			fp.TryPush(j)
		}
		fp.Commit()
		fc.Fetch()
		for j := 0; j < batch; j++ {
			fc.TryPop()
		}
		fc.Commit()
	}
}

// BenchmarkPushPopSlice measures bulk slice transfer.
func BenchmarkPushPopSlice(b *testing.B) {
	rb := New[byte](4096)
	src := make([]byte, 1024)
	dst := make([]byte, 1024)
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rb.PushSlice(src)
		rb.PopSlice(dst)
	}
}

// BenchmarkConcurrentThroughput measures producer and consumer goroutines
// streaming through the caching handles.
func BenchmarkConcurrentThroughput(b *testing.B) {
	rb := New[int](4096)
	p, c := rb.Split()
	done := make(chan struct{})

	go func() {
		defer close(done)
		remaining := b.N
		for remaining > 0 {
			if _, ok := c.TryPop(); ok {
				remaining--
			}
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for p.TryPush(i) != nil {
		}
	}
	<-done
}

// BenchmarkDeadlineSource compares the cached time source used by the
// blocking wrappers with the system clock.
func BenchmarkDeadlineSource(b *testing.B) {
	b.Run("TimeNow", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = time.Now()
		}
	})

	b.Run("TimeCache", func(b *testing.B) {
		cache := timecache.NewWithResolution(time.Millisecond)
		defer cache.Stop()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = cache.CachedTime()
		}
	})
}
