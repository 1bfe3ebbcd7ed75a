// File: spin/spin.go
// Package spin implements a busy-wait mutual exclusion lock.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock is a test-and-set spin lock intended for short critical sections.
// It satisfies sync.Locker and therefore works with sync.Cond.

package spin

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-conc/api"
)

// Compile-time interface compliance.
var _ api.TryLocker = (*Lock)(nil)

// spinBatch is the number of acquisition attempts between scheduler yields.
const spinBatch = 100

// Lock is a busy-wait lock. The zero value is an unlocked lock.
// A Lock must not be copied after first use.
type Lock struct {
	state atomic.Uint32
}

// Lock spins until the lock is acquired, yielding the processor to the
// scheduler after every spinBatch failed attempts.
func (l *Lock) Lock() {
	attempts := spinBatch
	for !l.TryLock() {
		attempts--
		if attempts == 0 {
			runtime.Gosched()
			attempts = spinBatch
		}
	}
}

// TryLock acquires the lock without blocking; reports success.
func (l *Lock) TryLock() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Unlock releases the lock. It must only be called by the holder.
func (l *Lock) Unlock() {
	l.state.Store(0)
}
