// File: queue/twolock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TwoLock is the simpler queue variant: a sentinel-terminated linked list
// guarded by two spin locks, one for each end, so pushers and poppers only
// contend with their own kind.

package queue

import (
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/pool"
	"github.com/momentics/hioload-conc/spin"
)

// Compile-time interface compliance.
var _ api.Queue[any] = (*TwoLock[any])(nil)

type twoNode[T any] struct {
	data *T
	next *twoNode[T]
}

// TwoLock is an unbounded FIFO queue protected by separate head and tail
// spin locks. It blocks briefly under contention; use MPMC when lock-free
// progress is required.
type TwoLock[T any] struct {
	noCopy noCopy

	headMu spin.Lock
	_      [60]byte // keep the two locks on separate cache lines
	tailMu spin.Lock
	_      [60]byte

	head *twoNode[T]
	tail *twoNode[T]

	nodes *pool.SyncPool[*twoNode[T]]
}

// NewTwoLock creates an empty queue with a single sentinel node.
func NewTwoLock[T any]() *TwoLock[T] {
	nodes := pool.NewSyncPool(func() *twoNode[T] { return &twoNode[T]{} })
	sentinel := nodes.Get()
	return &TwoLock[T]{head: sentinel, tail: sentinel, nodes: nodes}
}

// Push appends v. The new sentinel comes from the node pool outside the
// critical section; the tail lock covers only the three link writes. The
// error is always nil and exists for api.Queue compatibility.
func (q *TwoLock[T]) Push(v T) error {
	n := q.nodes.Get()
	data := &v
	q.tailMu.Lock()
	q.tail.data = data
	q.tail.next = n
	q.tail = n
	q.tailMu.Unlock()
	return nil
}

// getTail takes the tail lock just long enough to observe the current
// sentinel for the emptiness check.
func (q *TwoLock[T]) getTail() *twoNode[T] {
	q.tailMu.Lock()
	t := q.tail
	q.tailMu.Unlock()
	return t
}

// Pop removes the oldest value; ok is false when the queue is empty. The
// detached node goes back to the pool once it is unreachable: only the
// popper that advanced head past it still holds a reference.
func (q *TwoLock[T]) Pop() (v T, ok bool) {
	q.headMu.Lock()
	if q.head == q.getTail() {
		q.headMu.Unlock()
		return v, false
	}
	old := q.head
	q.head = old.next
	q.headMu.Unlock()

	v = *old.data
	old.data = nil
	old.next = nil
	q.nodes.Put(old)
	return v, true
}
