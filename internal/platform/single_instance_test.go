package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFor_StableAndInRange(t *testing.T) {
	port := PortFor("IntervalCoach")
	assert.Equal(t, port, PortFor("IntervalCoach"))
	assert.GreaterOrEqual(t, port, minPort)
	assert.LessOrEqual(t, port, maxPort)
}

func TestAcquireSingleInstance(t *testing.T) {
	name := fmt.Sprintf("intervalcoach-test-%d", time.Now().UnixNano())

	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port for %q unavailable: %v", name, err)
	}
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrInstanceRunning)

	require.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	assert.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestRelease_NilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
