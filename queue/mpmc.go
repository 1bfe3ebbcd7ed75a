// File: queue/mpmc.go
// Package queue implements the lock-free MPMC queue.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// MPMC is an unbounded multi-producer/multi-consumer FIFO linked list with
// split reference counting for node reclamation. Push installs the payload
// into the current tail sentinel and links a new sentinel behind it; Pop
// advances head past the oldest populated node. All coordination is CAS
// retry loops; no operation blocks.

package queue

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-conc/api"
)

// Compile-time interface compliance.
var _ api.Queue[any] = (*MPMC[any])(nil)
var _ api.StatsProvider = (*MPMC[any])(nil)

// MPMC is an unbounded lock-free FIFO queue.
// An MPMC must be created with NewMPMC and must not be copied.
type MPMC[T any] struct {
	noCopy noCopy

	arena *arena[T]

	head atomic.Uint64
	_    [56]byte // padding to keep head and tail on separate cache lines
	tail atomic.Uint64
	_    [56]byte
}

// NewMPMC creates an empty queue: a single payload-less sentinel with
// head == tail.
func NewMPMC[T any]() *MPMC[T] {
	q := &MPMC[T]{arena: newArena[T]()}
	idx, err := q.arena.alloc()
	if err != nil {
		panic("queue: cannot allocate initial sentinel")
	}
	q.head.Store(packRef(1, idx))
	q.tail.Store(packRef(1, idx))
	return q
}

// Push transfers ownership of v into the queue. It fails only with
// api.ErrResourceExhausted when the node arena is out of index space; the
// queue remains structurally valid in that case.
func (q *MPMC[T]) Push(v T) error {
	newIdx, err := q.arena.alloc()
	if err != nil {
		return err
	}
	newTail := packRef(1, newIdx)
	data := &v
	for {
		ref := acquireRef(&q.tail)
		nd := q.arena.node(refIdx(ref))
		if nd.data.CompareAndSwap(nil, data) {
			// Won the payload slot: only this thread reaches the link
			// step for this node.
			nd.next.Store(newTail)
			q.swingTail(ref, newTail)
			return nil
		}
		// Another pusher populated this node first.
		q.arena.release(ref)
		runtime.Gosched()
	}
}

// swingTail advances the shared tail slot from the remembered snapshot to
// the freshly linked sentinel. The loop compares node identity, not the
// whole snapshot: the external count may keep changing under concurrent
// checkouts while the node stays the same. Whichever thread performs the
// swap retires the old snapshot; a thread that finds the tail already
// advanced merely releases its checkout.
func (q *MPMC[T]) swingTail(old, repl uint64) {
	want := refIdx(old)
	cur := old
	for !q.tail.CompareAndSwap(cur, repl) {
		cur = q.tail.Load()
		if refIdx(cur) != want {
			q.arena.release(old)
			return
		}
	}
	q.arena.retire(cur)
}

// Pop removes the oldest value. ok is false when the queue is empty; empty
// is a normal result, never an error, and Pop never blocks.
func (q *MPMC[T]) Pop() (v T, ok bool) {
	for {
		ref := acquireRef(&q.head)
		idx := refIdx(ref)
		nd := q.arena.node(idx)
		if idx == refIdx(q.tail.Load()) {
			// head == tail: nothing but the sentinel.
			q.arena.release(ref)
			return v, false
		}
		next := nd.next.Load()
		if q.head.CompareAndSwap(ref, next) {
			// Read only: resetting the slot to nil would re-arm the
			// pushers' install CAS on a node that already left the list.
			data := nd.data.Load()
			if data == nil {
				panic("queue: popped node without payload")
			}
			q.arena.retire(ref)
			return *data, true
		}
		q.arena.release(ref)
	}
}

// Drain destroys the queue: it walks head to tail, disposes every remaining
// payload exactly once and reclaims every node including the trailing
// sentinel. It returns the number of payloads disposed.
//
// Drain must not run concurrently with Push or Pop; that is the caller's
// obligation. The queue is unusable afterwards.
func (q *MPMC[T]) Drain(dispose func(T)) int {
	count := 0
	h := refIdx(q.head.Load())
	t := refIdx(q.tail.Load())
	for h != t {
		nd := q.arena.node(h)
		next := refIdx(nd.next.Load())
		if d := nd.data.Swap(nil); d != nil {
			if dispose != nil {
				dispose(*d)
			}
			count++
		}
		q.arena.reclaim(h)
		h = next
	}
	q.arena.reclaim(t)
	q.head.Store(packRef(0, nilIdx))
	q.tail.Store(packRef(0, nilIdx))
	return count
}

// Move transfers the queue's contents into a new instance and leaves the
// source empty with a fresh sentinel. Like Drain it is only valid while no
// concurrent Push or Pop is in flight.
func (q *MPMC[T]) Move() *MPMC[T] {
	dst := &MPMC[T]{arena: q.arena}
	dst.head.Store(q.head.Load())
	dst.tail.Store(q.tail.Load())

	q.arena = newArena[T]()
	idx, err := q.arena.alloc()
	if err != nil {
		panic("queue: cannot allocate sentinel")
	}
	q.head.Store(packRef(1, idx))
	q.tail.Store(packRef(1, idx))
	return dst
}

// Stats reports node allocation counters for the queue's arena.
func (q *MPMC[T]) Stats() map[string]int64 {
	return q.arena.stats()
}

// noCopy triggers go vet's copylocks check on value copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
