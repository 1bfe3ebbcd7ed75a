// File: workerpool/pin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package workerpool

import (
	"runtime"

	"github.com/momentics/hioload-conc/affinity"
)

// pinWorker binds the calling goroutine's OS thread to one CPU core,
// spreading workers round-robin over the available cores. Best effort: an
// unprivileged or unsupported-platform failure leaves the worker unpinned.
func pinWorker(id int) {
	runtime.LockOSThread()
	_ = affinity.SetAffinity(id % runtime.NumCPU())
}
