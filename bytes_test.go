// bytes_test.go: Byte-stream adapter tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	rb := New[byte](16)
	p, c := rb.Split()
	w, r := NewWriter(p), NewReader(c)

	if n, err := w.Write([]byte("hello")); n != 5 || err != nil {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	buf := make([]byte, 16)
	if n, err := r.Read(buf); n != 5 || err != nil || string(buf[:5]) != "hello" {
		t.Fatalf("read: n=%d err=%v buf=%q", n, err, buf[:n])
	}
}

func TestWriterPartialOnFull(t *testing.T) {
	rb := New[byte](4)
	p, c := rb.Split()
	w, r := NewWriter(p), NewReader(c)

	if n, err := w.Write([]byte("abcdef")); n != 4 || err != nil {
		t.Fatalf("write into capacity 4: n=%d err=%v", n, err)
	}
	if _, err := w.Write([]byte("x")); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("write on full: got %v, want ErrWouldBlock", err)
	}

	buf := make([]byte, 4)
	r.Read(buf)
	if !bytes.Equal(buf, []byte("abcd")) {
		t.Fatalf("read: %q", buf)
	}
}

func TestReaderWouldBlockThenEOF(t *testing.T) {
	rb := New[byte](8)
	p, c := rb.Split()
	w, r := NewWriter(p), NewReader(c)

	buf := make([]byte, 4)
	if _, err := r.Read(buf); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("read on empty with live writer: got %v, want ErrWouldBlock", err)
	}

	w.Write([]byte("zz"))
	w.Close()

	if n, err := r.Read(buf); n != 2 || err != nil {
		t.Fatalf("read buffered tail: n=%d err=%v", n, err)
	}
	if _, err := r.Read(buf); err != io.EOF {
		t.Fatalf("read on drained closed stream: got %v, want io.EOF", err)
	}
}

func TestWriterClosedAfterReaderGone(t *testing.T) {
	rb := New[byte](8)
	p, c := rb.Split()
	w, r := NewWriter(p), NewReader(c)

	r.Close()
	if _, err := w.Write([]byte("a")); !errors.Is(err, ErrClosed) {
		t.Fatalf("write after reader close: got %v, want ErrClosed", err)
	}
	if _, err := w.WriteString("a"); !errors.Is(err, ErrClosed) {
		t.Fatalf("write string after reader close: got %v, want ErrClosed", err)
	}
}

func TestWriteStringWrapAround(t *testing.T) {
	rb := New[byte](8)
	p, c := rb.Split()
	w, r := NewWriter(p), NewReader(c)

	w.WriteString("abcdef")
	buf := make([]byte, 4)
	r.Read(buf) // read index advances to 4; next write wraps

	if n, err := w.WriteString("ghijkl"); n != 6 || err != nil {
		t.Fatalf("wrapping write string: n=%d err=%v", n, err)
	}

	out := make([]byte, 8)
	if n, _ := r.Read(out); string(out[:n]) != "efghijkl" {
		t.Fatalf("read after wrap: %q", out[:n])
	}
}

func TestFillFromAndDrainTo(t *testing.T) {
	rb := New[byte](8)
	p, c := rb.Split()
	w, r := NewWriter(p), NewReader(c)

	src := bytes.NewBufferString("abcdefghij")
	moved := 0
	for moved < 8 {
		n, err := w.FillFrom(src)
		if err != nil {
			t.Fatalf("fill: %v", err)
		}
		if n == 0 {
			break
		}
		moved += n
	}
	if moved != 8 {
		t.Fatalf("filled %d bytes into capacity 8", moved)
	}

	var dst bytes.Buffer
	for {
		n, err := r.DrainTo(&dst)
		if err != nil {
			t.Fatalf("drain: %v", err)
		}
		if n == 0 {
			break
		}
	}
	if dst.String() != "abcdefgh" {
		t.Fatalf("drained %q", dst.String())
	}
	if src.String() != "ij" {
		t.Fatalf("source remainder %q, want \"ij\"", src.String())
	}
}

func TestWriteStringPartial(t *testing.T) {
	rb := New[byte](4)
	p, _ := rb.Split()
	w := NewWriter(p)

	if n, err := w.WriteString("hello"); n != 4 || err != nil {
		t.Fatalf("write string into capacity 4: n=%d err=%v", n, err)
	}
	if _, err := w.WriteString("x"); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("write string on full: got %v, want ErrWouldBlock", err)
	}
}
