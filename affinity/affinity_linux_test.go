//go:build linux

// File: affinity/affinity_linux_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package affinity

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSetAffinity_AllowedCPU(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var orig unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &orig))
	defer unix.SchedSetaffinity(0, &orig)

	// Pin to some CPU the process is actually allowed to run on.
	for cpu := 0; cpu < runtime.NumCPU()*2; cpu++ {
		if orig.IsSet(cpu) {
			require.NoError(t, SetAffinity(cpu))
			return
		}
	}
	t.Skip("no allowed CPU found in current affinity mask")
}

func TestSetAffinity_InvalidCPU(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var orig unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &orig))
	defer unix.SchedSetaffinity(0, &orig)

	require.Error(t, SetAffinity(1 << 16))
}
