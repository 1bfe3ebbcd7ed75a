// File: registry/default.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package registry

import "sync"

var (
	defaultOnce sync.Once
	defaultReg  *Registry[any]
)

// Default returns a process-wide untyped registry so all components share
// one namespace instead of fragmenting instances.
func Default() *Registry[any] {
	defaultOnce.Do(func() {
		defaultReg = New[any]()
	})
	return defaultReg
}
