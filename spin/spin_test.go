// File: spin/spin_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spin

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_TryLock(t *testing.T) {
	var l Lock
	require.True(t, l.TryLock(), "fresh lock should be acquirable")
	assert.False(t, l.TryLock(), "held lock must reject TryLock")
	l.Unlock()
	assert.True(t, l.TryLock(), "released lock should be acquirable again")
	l.Unlock()
}

func TestLock_MutualExclusion(t *testing.T) {
	var l Lock
	counter := 0
	workers := 8
	increments := 10000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*increments, counter)
}

// TestLock_WithCond verifies Lock works as the locker of a sync.Cond, which
// is how the worker pool uses it.
func TestLock_WithCond(t *testing.T) {
	var l Lock
	cond := sync.NewCond(&l)
	ready := false

	done := make(chan struct{})
	go func() {
		l.Lock()
		for !ready {
			cond.Wait()
		}
		l.Unlock()
		close(done)
	}()

	l.Lock()
	ready = true
	l.Unlock()
	cond.Broadcast()

	<-done
}
