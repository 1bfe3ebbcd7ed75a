// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// live in separate files guarded by build tags.

package affinity

// SetAffinity pins the current OS thread to a given logical CPU on supported
// platforms. Callers should hold runtime.LockOSThread for the pin to stick to
// the intended goroutine. On unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}
