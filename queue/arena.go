// File: queue/arena.go
// Package queue implements slab allocation of queue nodes.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// arena hands out nodes addressed by stable 32-bit indices. Slabs are
// claimed with CAS, recycled indices go through a version-counted Treiber
// freelist, and every deallocation is checked so a node can die exactly
// once. Returning indices instead of pointers keeps the counted head/tail
// words CAS-able as plain uint64 values.

package queue

import (
	"sync/atomic"

	"github.com/momentics/hioload-conc/api"
)

const (
	slabBits = 12
	slabSize = 1 << slabBits // nodes per slab
	slabMask = slabSize - 1
	maxSlabs = 1 << 10 // 4M nodes per queue instance
)

// node is one linked-list cell. All three fields are CAS targets.
type node[T any] struct {
	// data is the exclusively-owned payload slot, installed exactly once
	// per node life (nil -> populated). Pop only reads it; alloc resets it
	// when the node is reborn. While pushers and poppers run, the slot
	// never returns to nil within a life, so the install CAS cannot
	// succeed twice on the same node.
	data atomic.Pointer[T]

	// refs packs internal count (high 32 bits, modular) with the owning
	// role count (low 32 bits, starts at 2).
	refs atomic.Uint64

	// next is the counted reference to the following node, written once
	// per life by the pusher that wins the payload slot. Between lives it
	// doubles as the freelist link.
	next atomic.Uint64
}

type slab[T any] []node[T]

// arena allocates and reclaims nodes for one queue instance.
type arena[T any] struct {
	slabs    [maxSlabs]atomic.Pointer[slab[T]]
	nextIdx  atomic.Uint32 // next never-used index
	freeHead atomic.Uint64 // version-counted freelist head: ver<<32 | idx

	allocs atomic.Int64
	frees  atomic.Int64
}

func newArena[T any]() *arena[T] {
	a := &arena[T]{}
	a.freeHead.Store(packRef(0, nilIdx))
	return a
}

// node resolves an index to its cell. Panics on the null index, which only
// happens when a queue is used after Drain.
func (a *arena[T]) node(idx uint32) *node[T] {
	if idx == nilIdx {
		panic("queue: operation on drained queue")
	}
	s := a.slabs[idx>>slabBits].Load()
	return &(*s)[idx&slabMask]
}

// alloc returns a fresh node: internal count 0, two owning roles, empty
// payload, null next. Fails only when the index space is exhausted.
func (a *arena[T]) alloc() (uint32, error) {
	idx, ok := a.popFree()
	if !ok {
		n := a.nextIdx.Add(1) - 1
		if n >= maxSlabs*slabSize {
			return nilIdx, api.NewError(api.ErrCodeResourceExhausted, "queue node arena exhausted").
				WithContext("capacity", maxSlabs*slabSize).
				Wrap(api.ErrResourceExhausted)
		}
		idx = n
		s := idx >> slabBits
		if a.slabs[s].Load() == nil {
			fresh := make(slab[T], slabSize)
			a.slabs[s].CompareAndSwap(nil, &fresh)
		}
	}
	nd := a.node(idx)
	nd.data.Store(nil)
	nd.refs.Store(initialRefs)
	nd.next.Store(packRef(0, nilIdx))
	a.allocs.Add(1)
	return idx, nil
}

func (a *arena[T]) popFree() (uint32, bool) {
	for {
		head := a.freeHead.Load()
		idx := refIdx(head)
		if idx == nilIdx {
			return 0, false
		}
		next := refIdx(a.node(idx).next.Load())
		if a.freeHead.CompareAndSwap(head, packRef(refExt(head)+1, next)) {
			return idx, true
		}
	}
}

func (a *arena[T]) pushFree(idx uint32) {
	nd := a.node(idx)
	for {
		head := a.freeHead.Load()
		nd.next.Store(packRef(0, refIdx(head)))
		if a.freeHead.CompareAndSwap(head, packRef(refExt(head)+1, idx)) {
			return
		}
	}
}

// free is the protocol deallocation step: it may only run when both packed
// counters have reached zero, and runs once per node life.
func (a *arena[T]) free(idx uint32) {
	if !a.node(idx).refs.CompareAndSwap(0, refsPoison) {
		panic("queue: node freed while referenced or freed twice")
	}
	a.frees.Add(1)
	a.pushFree(idx)
}

// reclaim deallocates a node regardless of its counters. Only the
// quiescent destruction walk may use it.
func (a *arena[T]) reclaim(idx uint32) {
	if a.node(idx).refs.Swap(refsPoison) == refsPoison {
		panic("queue: node reclaimed twice")
	}
	a.frees.Add(1)
	a.pushFree(idx)
}

// release relinquishes one checkout that did not win the slot advance:
// internal count drops by one; whoever drives both counters to zero frees.
func (a *arena[T]) release(ref uint64) {
	nd := a.node(refIdx(ref))
	for {
		old := nd.refs.Load()
		if old == refsPoison {
			panic("queue: release of freed node")
		}
		upd := old - refsInternalUnit
		if nd.refs.CompareAndSwap(old, upd) {
			if upd == 0 {
				a.free(refIdx(ref))
			}
			return
		}
	}
}

// retire is called by exactly the thread that replaced a shared slot's
// snapshot. It folds the snapshot's remaining external checkouts into the
// internal count and surrenders one owning role, in a single CAS.
//
// The -2 correction subtracts the retiring thread's own checkout and the
// implicit starting allowance every node carries for its two roles.
func (a *arena[T]) retire(ref uint64) {
	nd := a.node(refIdx(ref))
	correction := int64(refExt(ref)) - 2
	delta := uint64(correction) << 32 // two's complement wrap inside the internal field
	for {
		old := nd.refs.Load()
		if old == refsPoison {
			panic("queue: retire of freed node")
		}
		if old&rolesMask == 0 {
			panic("queue: retire with no owning role left")
		}
		upd := old + delta - 1
		if nd.refs.CompareAndSwap(old, upd) {
			if upd == 0 {
				a.free(refIdx(ref))
			}
			return
		}
	}
}

// stats reports allocation counters.
func (a *arena[T]) stats() map[string]int64 {
	allocs := a.allocs.Load()
	frees := a.frees.Load()
	return map[string]int64{
		"nodes_alloc": allocs,
		"nodes_freed": frees,
		"nodes_live":  allocs - frees,
	}
}
