package idle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeProbe struct {
	duration time.Duration
	err      error
}

func (probe *fakeProbe) IdleDuration() (time.Duration, error) {
	return probe.duration, probe.err
}

type recorder struct {
	idle   int
	active int
}

func (record *recorder) callbacks() Callbacks {
	return Callbacks{
		OnIdle:   func() { record.idle++ },
		OnActive: func() { record.active++ },
	}
}

func TestPollFlipsOnceOnCrossing(t *testing.T) {
	probe := &fakeProbe{}
	record := &recorder{}
	monitor := NewMonitor(probe, time.Minute, time.Second, record.callbacks())

	probe.duration = 30 * time.Second
	monitor.poll()
	require.False(t, monitor.IsIdle())
	require.Zero(t, record.idle)

	probe.duration = 2 * time.Minute
	monitor.poll()
	monitor.poll()
	require.True(t, monitor.IsIdle())
	require.Equal(t, 1, record.idle, "idle transition must be edge-triggered")

	probe.duration = time.Second
	monitor.poll()
	monitor.poll()
	require.False(t, monitor.IsIdle())
	require.Equal(t, 1, record.active)
}

func TestProbeErrorAssumesActive(t *testing.T) {
	probe := &fakeProbe{duration: 10 * time.Minute}
	record := &recorder{}
	monitor := NewMonitor(probe, time.Minute, time.Second, record.callbacks())

	monitor.poll()
	require.True(t, monitor.IsIdle())

	probe.err = errors.New("probe broken")
	monitor.poll()
	require.False(t, monitor.IsIdle())
	require.Equal(t, 1, record.active)
}

func TestUnsupportedProbeStopsMonitoring(t *testing.T) {
	probe := &fakeProbe{err: ErrUnsupported}
	record := &recorder{}
	monitor := NewMonitor(probe, time.Minute, time.Second, record.callbacks())

	monitor.Start()
	monitor.poll()
	require.False(t, monitor.IsIdle())

	monitor.mu.Lock()
	running := monitor.running
	unsupported := monitor.unsupported
	monitor.mu.Unlock()
	require.False(t, running)
	require.True(t, unsupported)

	// Restart attempts stay no-ops once unsupported.
	monitor.Start()
	monitor.mu.Lock()
	running = monitor.running
	monitor.mu.Unlock()
	require.False(t, running)
}

func TestUpdateThresholdReclassifiesImmediately(t *testing.T) {
	probe := &fakeProbe{duration: 90 * time.Second}
	record := &recorder{}
	monitor := NewMonitor(probe, 2*time.Minute, time.Second, record.callbacks())

	monitor.poll()
	require.False(t, monitor.IsIdle())

	monitor.UpdateThreshold(time.Minute)
	require.True(t, monitor.IsIdle())
	require.Equal(t, 1, record.idle)

	monitor.UpdateThreshold(5 * time.Minute)
	require.False(t, monitor.IsIdle())
	require.Equal(t, 1, record.active)
}

func TestZeroThresholdNeverIdles(t *testing.T) {
	probe := &fakeProbe{duration: time.Hour}
	record := &recorder{}
	monitor := NewMonitor(probe, 0, time.Second, record.callbacks())

	monitor.poll()
	require.False(t, monitor.IsIdle())
	require.Zero(t, record.idle)
}

func TestStopAndRestart(t *testing.T) {
	probe := &fakeProbe{}
	monitor := NewMonitor(probe, time.Minute, 10*time.Millisecond, Callbacks{})

	monitor.Start()
	monitor.Stop()
	monitor.Start()
	monitor.Stop()
	// Double stop is harmless.
	monitor.Stop()
}
