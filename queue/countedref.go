// File: queue/countedref.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Packed word layouts for the lock-free queue. Go has no double-word
// compare-and-swap, so both the shared head/tail slots and the per-node
// reference count are packed into single uint64 words and updated with
// sync/atomic CAS loops.

package queue

import "sync/atomic"

const (
	// nilIdx is the null node index.
	nilIdx = ^uint32(0)

	// refExtUnit adds 1 to the external checkout count of a counted
	// reference without touching the index field.
	refExtUnit = uint64(1) << 32

	// refsInternalUnit adds 1 to the internal count of a packed refcount
	// word without touching the owning-role field.
	refsInternalUnit = uint64(1) << 32

	// initialRefs is the refcount word of a freshly allocated node:
	// internal count 0, two owning roles (head-reachable, tail-reachable).
	initialRefs = uint64(2)

	// refsPoison marks a freed node. Any refcount operation observing it
	// is a use-after-free.
	refsPoison = ^uint64(0)

	rolesMask = uint64(1)<<32 - 1
)

// A counted reference packs an external checkout count (high 32 bits) with
// a node index (low 32 bits). The count grows on every checkout from a
// shared slot, so the full word also acts as the ABA tag: two observations
// of the same index at different times almost never compare equal.
func packRef(ext, idx uint32) uint64 {
	return uint64(ext)<<32 | uint64(idx)
}

func refIdx(ref uint64) uint32 { return uint32(ref) }

func refExt(ref uint64) uint32 { return uint32(ref >> 32) }

// acquireRef checks out whatever counted reference currently occupies slot:
// it raises the external count by one in a CAS retry loop and returns the
// updated word. The returned reference is safe to dereference until handed
// back through release or retire. Note that the node designated by the slot
// may change between retries; the caller gets the one it managed to tag.
func acquireRef(slot *atomic.Uint64) uint64 {
	old := slot.Load()
	for {
		if slot.CompareAndSwap(old, old+refExtUnit) {
			return old + refExtUnit
		}
		old = slot.Load()
	}
}
