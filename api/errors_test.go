// File: api/errors_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := NewError(ErrCodeInvalidArgument, "bad size")
	assert.Equal(t, "bad size", err.Error())

	err.WithContext("size", -1)
	assert.Contains(t, err.Error(), "bad size")
	assert.Contains(t, err.Error(), "size")
}

func TestError_WrapSentinel(t *testing.T) {
	err := NewError(ErrCodeResourceExhausted, "arena exhausted").
		WithContext("capacity", 4096).
		Wrap(ErrResourceExhausted)

	require.ErrorIs(t, err, ErrResourceExhausted)
	assert.NotErrorIs(t, err, ErrNotFound)

	var structured *Error
	require.ErrorAs(t, fmt.Errorf("push: %w", err), &structured)
	assert.Equal(t, ErrCodeResourceExhausted, structured.Code)
	assert.Equal(t, 4096, structured.Context["capacity"])
}

func TestError_UnwrappedHasNoCause(t *testing.T) {
	err := NewError(ErrCodeInternal, "oops")
	assert.Nil(t, errors.Unwrap(err))
}
