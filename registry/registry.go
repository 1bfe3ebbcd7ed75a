// File: registry/registry.go
// Package registry provides process-wide named sharing of primitives.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Registry lets components publish queues, pools or executors under a
// name so the rest of the process reuses one instance instead of
// fragmenting them per call site.

package registry

import (
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/momentics/hioload-conc/api"
)

// Registry is a concurrent name-to-instance map.
type Registry[T any] struct {
	items cmap.ConcurrentMap[string, T]
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{items: cmap.New[T]()}
}

// Register publishes v under name. Fails with api.ErrAlreadyExists when the
// name is taken.
func (r *Registry[T]) Register(name string, v T) error {
	if !r.items.SetIfAbsent(name, v) {
		return api.ErrAlreadyExists
	}
	return nil
}

// Lookup returns the instance registered under name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	return r.items.Get(name)
}

// Unregister removes name. Removing an unknown name is a no-op.
func (r *Registry[T]) Unregister(name string) {
	r.items.Remove(name)
}

// Range calls fn for every registered instance.
func (r *Registry[T]) Range(fn func(name string, v T)) {
	r.items.IterCb(fn)
}

// Len returns the number of registered instances.
func (r *Registry[T]) Len() int {
	return r.items.Count()
}

// Resolve fetches a component from an untyped registry and asserts its
// type. It fails with api.ErrNotFound for an unknown name and with
// api.ErrNotSupported when the registered component does not satisfy T.
func Resolve[T any](r *Registry[any], name string) (T, error) {
	var zero T
	v, ok := r.Lookup(name)
	if !ok {
		return zero, api.NewError(api.ErrCodeNotFound, "no component registered").
			WithContext("name", name).
			Wrap(api.ErrNotFound)
	}
	t, ok := v.(T)
	if !ok {
		return zero, api.NewError(api.ErrCodeInternal, "registered component has a different type").
			WithContext("name", name).
			Wrap(api.ErrNotSupported)
	}
	return t, nil
}
