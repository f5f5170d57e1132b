package stepper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

func TestShortPressFiresTap(t *testing.T) {
	t.Parallel()

	m := New(0)
	m.Press(t0)
	require.Equal(t, Armed, m.State(t0))

	out := m.Release(t0.Add(150 * time.Millisecond))
	require.Equal(t, OutcomeTap, out)
	require.Equal(t, Idle, m.State(t0.Add(time.Second)))
}

func TestHoldOpensEditor(t *testing.T) {
	t.Parallel()

	m := New(0)
	m.Press(t0)

	// threshold elapses while still held
	require.Equal(t, EditOpened, m.State(t0.Add(DefaultHoldThreshold)))

	out := m.Release(t0.Add(700 * time.Millisecond))
	require.Equal(t, OutcomeEdit, out)
	require.Equal(t, Idle, m.State(t0.Add(time.Second)))
}

func TestReleaseExactlyAtThresholdOpensEditor(t *testing.T) {
	t.Parallel()

	m := New(200 * time.Millisecond)
	m.Press(t0)
	require.Equal(t, OutcomeEdit, m.Release(t0.Add(200*time.Millisecond)))
}

func TestReleaseWithoutPressIsNoop(t *testing.T) {
	t.Parallel()

	m := New(0)
	require.Equal(t, OutcomeNone, m.Release(t0))
}

func TestCancelDropsPendingPress(t *testing.T) {
	t.Parallel()

	m := New(0)
	m.Press(t0)
	m.Cancel()
	require.Equal(t, OutcomeNone, m.Release(t0.Add(50*time.Millisecond)))
}

func TestRepeatedPressKeepsOriginalTimestamp(t *testing.T) {
	t.Parallel()

	m := New(0)
	m.Press(t0)
	m.Press(t0.Add(500 * time.Millisecond)) // duplicate event, ignored
	require.Equal(t, OutcomeEdit, m.Release(t0.Add(650*time.Millisecond)))
}

func TestStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "armed", Armed.String())
	require.Equal(t, "tap_fired", TapFired.String())
	require.Equal(t, "edit_opened", EditOpened.String())
	require.Equal(t, "unknown", State(99).String())
}
