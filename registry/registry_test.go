// File: registry/registry_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/queue"
)

func TestRegistry_RegisterLookup(t *testing.T) {
	r := New[api.Queue[int]]()

	q := queue.NewMPMC[int]()
	require.NoError(t, r.Register("orders", q))

	got, ok := r.Lookup("orders")
	require.True(t, ok)
	assert.Same(t, q, got)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := New[int]()
	require.NoError(t, r.Register("a", 1))
	assert.ErrorIs(t, r.Register("a", 2), api.ErrAlreadyExists)

	v, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 1, v, "duplicate registration must not overwrite")
}

func TestRegistry_UnregisterRange(t *testing.T) {
	r := New[string]()
	require.NoError(t, r.Register("a", "x"))
	require.NoError(t, r.Register("b", "y"))
	assert.Equal(t, 2, r.Len())

	r.Unregister("a")
	r.Unregister("a") // no-op
	assert.Equal(t, 1, r.Len())

	seen := map[string]string{}
	r.Range(func(name, v string) { seen[name] = v })
	assert.Equal(t, map[string]string{"b": "y"}, seen)
}

func TestResolve_TypedLookup(t *testing.T) {
	r := New[any]()
	q := queue.NewMPMC[int]()
	require.NoError(t, r.Register("orders", q))

	got, err := Resolve[api.Queue[int]](r, "orders")
	require.NoError(t, err)
	assert.Same(t, q, got)
}

func TestResolve_NotFound(t *testing.T) {
	r := New[any]()
	_, err := Resolve[api.Queue[int]](r, "missing")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestResolve_WrongType(t *testing.T) {
	r := New[any]()
	require.NoError(t, r.Register("orders", "not a queue"))

	_, err := Resolve[api.Queue[int]](r, "orders")
	assert.ErrorIs(t, err, api.ErrNotSupported)
}

func TestDefault_SharedInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}
