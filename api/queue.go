// Package api
// Author: momentics <momentics@gmail.com>
//
// Unbounded FIFO queue contract for cross-goroutine producer/consumer.

package api

// Queue is an unbounded multi-producer/multi-consumer FIFO contract.
//
// Implementations transfer ownership of a value into the structure on Push
// and back out on Pop. An empty queue is a normal condition, not an error.
type Queue[T any] interface {
	// Push appends a value. It fails only when the implementation cannot
	// allocate a new slot (ErrResourceExhausted).
	Push(v T) error

	// Pop removes the oldest value. ok is false when the queue is empty.
	Pop() (v T, ok bool)
}
