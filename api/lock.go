// Package api
// Author: momentics <momentics@gmail.com>
//
// Lock contracts for short-critical-section primitives.

package api

import "sync"

// TryLocker is a sync.Locker with a non-blocking acquisition attempt.
type TryLocker interface {
	sync.Locker

	// TryLock acquires the lock without blocking; reports success.
	TryLock() bool
}
