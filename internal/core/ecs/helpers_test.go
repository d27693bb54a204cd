package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float32 }

type velocity struct{ DX, DY float32 }

type health struct{ HP int }

type tag struct{}

// requirePanicsWith fails unless fn panics with an error matching target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.ErrorIs(t, err, target)
	}()
	fn()
}
