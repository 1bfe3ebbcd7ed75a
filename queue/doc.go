// File: queue/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package queue provides unbounded FIFO queues for many producers and many
// consumers: the lock-free MPMC and the lock-based TwoLock variant.
//
// MPMC reclaims node memory with a split reference count, the technique
// from Joe Seigh's Atomic Ptr Plus project. Each shared slot (head, tail)
// holds a counted reference: a node index packed with an external count of
// how many threads have checked that exact snapshot out. Each node packs a
// second word: an internal count plus the number of owning roles, which
// starts at 2 because every node begins life reachable from both the head
// position and the tail position before any thread touches it.
//
// A thread checks a node out by raising the slot's external count (acquire).
// If it loses the subsequent race it lowers the node's internal count by one
// (release). The single thread that replaces the slot's snapshot reconciles
// instead (retire): it folds external−2 into the internal count and drops
// one owning role in a single CAS. The −2 removes the retirer's own checkout
// and the node's starting allowance for the role being surrendered. Whichever
// update drives both packed counters to zero frees the node, so deallocation
// happens exactly once no matter how the threads interleave.
//
// Nodes live in a per-queue slab arena and are addressed by index rather
// than pointer, which keeps every shared word a single uint64: Go offers no
// double-word compare-and-swap, and the growing external count doubles as
// the ABA tag the index reuse would otherwise require.
//
// MPMC is lock-free, not wait-free: some thread always completes its step,
// but an individual Push or Pop can be delayed arbitrarily by contention.
// Neither operation blocks, takes a timeout, or accepts a cancellation
// token; callers that need deadlines layer them outside.
package queue
