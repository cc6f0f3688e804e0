package gate_test

import (
	"testing"

	"gatehouse/internal/gate"

	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	_, ok := gate.Identity(ctx)
	require.False(t, ok, "expected no identity on a fresh context")

	ctx = gate.WithIdentity(ctx, "admin")

	user, ok := gate.Identity(ctx)
	require.True(t, ok, "expected identity after attachment")
	require.Equal(t, "admin", user, "expected the attached username")
}
