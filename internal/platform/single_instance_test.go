package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleInstanceGuard(t *testing.T) {
	first, err := AcquireSingleInstance("respite-test")
	require.NoError(t, err)

	_, err = AcquireSingleInstance("respite-test")
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())

	second, err := AcquireSingleInstance("respite-test")
	require.NoError(t, err)
	require.NotEmpty(t, second.Address())
	require.NoError(t, second.Release())
}

func TestNilGuardIsSafe(t *testing.T) {
	var guard *InstanceGuard
	require.NoError(t, guard.Release())
	require.Empty(t, guard.Address())
}

func TestPortDerivationIsStable(t *testing.T) {
	require.Equal(t, portFromName("respite"), portFromName("respite"))
	require.GreaterOrEqual(t, portFromName("respite"), 20000)
	require.LessOrEqual(t, portFromName("respite"), 39999)
}
