// transfer_test.go: Buffer-to-buffer transfer tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import (
	"slices"
	"testing"
)

func TestTransferBetweenBuffers(t *testing.T) {
	src := New[int](8)
	dst := New[int](8)
	src.PushSlice([]int{1, 2, 3, 4, 5})

	if n := Transfer[int](src, dst, -1); n != 5 {
		t.Fatalf("transfer: got %d, want 5", n)
	}
	if !src.IsEmpty() {
		t.Fatal("source not drained")
	}
	first, second := dst.AsSlices()
	got := append(slices.Clone(first), second...)
	if !slices.Equal(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("destination contents: %v", got)
	}
}

func TestTransferBoundedByCount(t *testing.T) {
	src := New[int](8)
	dst := New[int](8)
	src.PushSlice([]int{1, 2, 3, 4})

	if n := Transfer[int](src, dst, 2); n != 2 {
		t.Fatalf("transfer: got %d, want 2", n)
	}
	if src.OccupiedLen() != 2 || dst.OccupiedLen() != 2 {
		t.Fatalf("occupied: src %d dst %d", src.OccupiedLen(), dst.OccupiedLen())
	}
}

func TestTransferBoundedByRoom(t *testing.T) {
	src := New[int](8)
	dst := New[int](2)
	src.PushSlice([]int{1, 2, 3, 4})

	if n := Transfer[int](src, dst, -1); n != 2 {
		t.Fatalf("transfer into capacity 2: got %d, want 2", n)
	}
	if v, _ := dst.TryPop(); v != 1 {
		t.Fatal("destination order broken")
	}
}

func TestTransferAcrossWrapPoints(t *testing.T) {
	src := New[int](4)
	dst := New[int](4)

	// Rotate both buffers so their occupied/vacant regions wrap.
	src.PushSlice([]int{0, 0, 0})
	src.Skip(3)
	dst.PushSlice([]int{0, 0})
	dst.Skip(2)

	src.PushSlice([]int{1, 2, 3, 4})
	if n := Transfer[int](src, dst, -1); n != 4 {
		t.Fatalf("wrapping transfer: got %d, want 4", n)
	}

	first, second := dst.AsSlices()
	got := append(slices.Clone(first), second...)
	if !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Fatalf("destination contents after wrap: %v", got)
	}
}

func TestTransferBetweenHandles(t *testing.T) {
	srcRb := New[string](4)
	dstRb := New[string](4)
	srcProd, srcCons := srcRb.Split()
	dstProd, dstCons := dstRb.Split()

	srcProd.PushSlice([]string{"a", "b", "c"})
	if n := Transfer[string](srcCons, dstProd, -1); n != 3 {
		t.Fatalf("handle transfer: got %d, want 3", n)
	}

	var got []string
	for v := range dstCons.PopIter() {
		got = append(got, v)
	}
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("destination contents: %v", got)
	}
}

func TestTransferEmptySource(t *testing.T) {
	src := New[int](4)
	dst := New[int](4)
	if n := Transfer[int](src, dst, -1); n != 0 {
		t.Fatalf("transfer from empty source: got %d", n)
	}
}
