package sysevents

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeConsumer struct {
	inactive int
	active   int
}

func (consumer *fakeConsumer) SystemInactive() { consumer.inactive++ }
func (consumer *fakeConsumer) SystemActive()   { consumer.active++ }

func TestSleepAndWakeNormalize(t *testing.T) {
	consumer := &fakeConsumer{}
	bridge := NewBridge(consumer)

	bridge.Handle(SignalWillSleep)
	require.True(t, bridge.Inactive())
	require.Equal(t, 1, consumer.inactive)

	bridge.Handle(SignalDidWake)
	require.False(t, bridge.Inactive())
	require.Equal(t, 1, consumer.active)
}

func TestLockCountsAsInactive(t *testing.T) {
	consumer := &fakeConsumer{}
	bridge := NewBridge(consumer)

	bridge.Handle(SignalDisplaySleep)
	require.Equal(t, 1, consumer.inactive)
	bridge.Handle(SignalDisplayWake)
	require.Equal(t, 1, consumer.active)
}

func TestRepeatedSignalsAreDeduplicated(t *testing.T) {
	consumer := &fakeConsumer{}
	bridge := NewBridge(consumer)

	bridge.Handle(SignalWillSleep)
	bridge.Handle(SignalDisplaySleep)
	bridge.Handle(SignalWillSleep)
	require.Equal(t, 1, consumer.inactive)

	bridge.Handle(SignalDidWake)
	bridge.Handle(SignalDisplayWake)
	require.Equal(t, 1, consumer.active)
}

func TestInitialWakeIsDropped(t *testing.T) {
	consumer := &fakeConsumer{}
	bridge := NewBridge(consumer)

	// Already active at start: a stray wake changes nothing.
	bridge.Handle(SignalDidWake)
	require.Zero(t, consumer.active)
}

func TestRunConsumesChannel(t *testing.T) {
	consumer := &fakeConsumer{}
	bridge := NewBridge(consumer)

	signals := make(chan Signal, 4)
	signals <- SignalDisplaySleep
	signals <- SignalDisplayWake
	signals <- SignalWillSleep
	close(signals)

	bridge.Run(signals)
	require.Equal(t, 2, consumer.inactive)
	require.Equal(t, 1, consumer.active)
}

func TestNilConsumerIsSafe(t *testing.T) {
	bridge := NewBridge(nil)
	bridge.Handle(SignalWillSleep)
	require.True(t, bridge.Inactive())
}
