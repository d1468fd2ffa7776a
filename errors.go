// errors.go: Error taxonomy for ring buffer operations
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package euros

import (
	goerrors "github.com/agilira/go-errors"
)

// Pre-allocated errors to avoid allocations in hot paths.
// All of them are sentinel values: compare with errors.Is.
var (
	// ErrFull is returned by push operations when the buffer has no vacant
	// slots. The item stays with the caller; retry, drop or route elsewhere.
	ErrFull = goerrors.New("EUROS_BUFFER_FULL", "ring buffer is full")

	// ErrEmpty describes a buffer with no occupied slots. No operation in
	// this package returns it: TryPop reports emptiness through its boolean
	// result, and blocking pops park, then end with ErrTimeout or ErrClosed.
	ErrEmpty = goerrors.New("EUROS_BUFFER_EMPTY", "ring buffer is empty")

	// ErrClosed is returned once the peer handle is gone: pushes when the
	// consumer released its hold, pops when the producer released its hold
	// and the buffer is drained. Terminal.
	ErrClosed = goerrors.New("EUROS_PEER_CLOSED", "peer handle is closed")

	// ErrTimeout is returned by blocking operations when the deadline
	// elapses before the buffer state allows progress.
	ErrTimeout = goerrors.New("EUROS_WAIT_TIMEOUT", "wait timed out")

	// ErrWouldBlock is returned by the byte-stream adapters when a Read or
	// Write cannot make progress while the peer is still alive.
	ErrWouldBlock = goerrors.New("EUROS_WOULD_BLOCK", "operation would block")
)
