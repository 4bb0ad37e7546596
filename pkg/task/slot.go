// Package task runs one blocking operation on a background goroutine and
// lets a render loop poll for its result without ever blocking on it.
package task

import (
	"errors"
	"fmt"
	"time"
)

// DefaultReceiveTimeout bounds the receive from a worker that has already
// finished. It only guards against a worker that exits without sending.
const DefaultReceiveTimeout = time.Second

var (
	// ErrSlotBusy is returned by Start while an earlier result is unconsumed.
	ErrSlotBusy = errors.New("a background task is already running")
	// ErrWorkerFault wraps a panic raised by the operation.
	ErrWorkerFault = errors.New("background task failed")
	// ErrNoResult means the worker exited without sending a result.
	ErrNoResult = errors.New("background task finished without a result")
)

// State is what a Slot holds at the moment it is polled.
type State int

const (
	Empty State = iota
	Pending
	Ready
	Failed
)

func (s State) String() string {
	return [...]string{"empty", "pending", "ready", "failed"}[s]
}

// Result is what Poll observed.
type Result[T any] struct {
	State State
	Value T
	Err   error
}

type outcome[T any] struct {
	value T
	err   error
}

// worker is the join handle of a running operation. fault is written
// before done is closed and only read after it.
type worker[T any] struct {
	done   chan struct{}
	result chan outcome[T]
	fault  error
}

// Slot holds at most one outstanding operation. The zero value is an
// empty slot ready for use. A Slot is not safe for concurrent use; it
// belongs to the goroutine driving the UI.
type Slot[T any] struct {
	// ReceiveTimeout overrides DefaultReceiveTimeout when non-zero.
	ReceiveTimeout time.Duration

	w *worker[T]
}

// Start runs op on a new goroutine. It fails with ErrSlotBusy when an
// earlier operation has not been consumed by Poll yet.
func (s *Slot[T]) Start(op func() (T, error)) error {
	if s.w != nil {
		return ErrSlotBusy
	}

	w := &worker[T]{
		done:   make(chan struct{}),
		result: make(chan outcome[T], 1),
	}
	s.w = w

	go func() {
		defer close(w.done)
		defer func() {
			if r := recover(); r != nil {
				w.fault = fmt.Errorf("%w: %v", ErrWorkerFault, r)
			}
		}()

		v, err := op()
		w.result <- outcome[T]{value: v, err: err}
	}()

	return nil
}

// Busy reports whether an operation is outstanding.
func (s *Slot[T]) Busy() bool {
	return s.w != nil
}

// Poll never blocks on a running operation. Once the worker has exited it
// returns Ready or Failed exactly once and the slot becomes empty again.
func (s *Slot[T]) Poll() Result[T] {
	if s.w == nil {
		return Result[T]{State: Empty}
	}

	select {
	case <-s.w.done:
	default:
		return Result[T]{State: Pending}
	}

	w := s.w
	s.w = nil

	if w.fault != nil {
		return Result[T]{State: Failed, Err: w.fault}
	}

	timeout := s.ReceiveTimeout
	if timeout == 0 {
		timeout = DefaultReceiveTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-w.result:
		if out.err != nil {
			return Result[T]{State: Failed, Err: out.err}
		}
		return Result[T]{State: Ready, Value: out.value}
	case <-timer.C:
		return Result[T]{State: Failed, Err: ErrNoResult}
	}
}
