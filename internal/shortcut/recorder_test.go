package shortcut_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/typozero/internal/shortcut"
	"github.com/jask/typozero/internal/shortcut/shortcuttest"
)

type recorderHarness struct {
	rec    *shortcut.Recorder
	clock  *shortcuttest.ManualScheduler
	events []shortcut.State
}

func newHarness(t *testing.T, current string) *recorderHarness {
	t.Helper()
	h := &recorderHarness{clock: shortcuttest.NewManualScheduler(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))}
	var b shortcut.Binding
	if current != "" {
		b = shortcut.MustParse(current)
	}
	h.rec = shortcut.NewRecorder(b, shortcut.DefaultReserved(),
		shortcut.WithTimeout(2*time.Second),
		shortcut.WithScheduler(h.clock),
		shortcut.WithClock(h.clock.Now),
		shortcut.WithObserver(func(s shortcut.State) { h.events = append(h.events, s) }),
	)
	return h
}

func (h *recorderHarness) phases() []shortcut.Phase {
	out := make([]shortcut.Phase, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.Phase)
	}
	return out
}

func TestRecorderStartsIdleWithCurrentBinding(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	st := h.rec.State()
	require.Equal(t, shortcut.PhaseIdle, st.Phase)
	require.Equal(t, "Shift + ⌘ + P", st.Display())
	require.Empty(t, h.events)
}

func TestStartClearsDisplayButKeepsFallback(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	st := h.rec.Start()
	require.Equal(t, shortcut.PhaseRecording, st.Phase)
	require.Equal(t, shortcut.RecordingIndicator, st.Display())
	require.Equal(t, shortcut.MustParse("Cmd+Shift+P"), st.Current)
	require.NotEmpty(t, st.Session)
	require.Equal(t, 1, h.clock.Pending())
}

func TestCancelRestoresCommittedBinding(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	h.rec.Start()
	st := h.rec.Cancel()

	require.Equal(t, shortcut.PhaseIdle, st.Phase)
	require.Equal(t, shortcut.MustParse("Cmd+Shift+P").Label(), st.Display())
	require.Equal(t, shortcut.MustParse("Cmd+Shift+P"), h.rec.Current())
	require.Equal(t, 0, h.clock.Pending())
	require.Equal(t, []shortcut.Phase{shortcut.PhaseRecording, shortcut.PhaseIdle}, h.phases())
}

func TestModifierOnlyCaptureIsIncomplete(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	h.rec.Start()
	st, err := h.rec.Capture("cmd")

	var rej *shortcut.RejectionError
	require.ErrorAs(t, err, &rej)
	require.Equal(t, shortcut.ReasonIncomplete, rej.Reason)
	require.ErrorIs(t, err, shortcut.ErrIncomplete)
	require.Equal(t, shortcut.PhaseRecording, st.Phase)
	require.Equal(t, shortcut.PhaseRecording, h.rec.State().Phase)
	require.Equal(t, []shortcut.Phase{shortcut.PhaseRecording, shortcut.PhaseRejected, shortcut.PhaseRecording}, h.phases())
	require.Equal(t, shortcut.ReasonIncomplete, h.events[1].Reason)
}

func TestIncompleteForEveryModifierSubset(t *testing.T) {
	mods := []string{"ctrl", "option", "shift", "cmd"}
	for mask := 0; mask < 1<<len(mods); mask++ {
		var tokens []string
		for i, m := range mods {
			if mask&(1<<i) != 0 {
				tokens = append(tokens, m)
			}
		}
		h := newHarness(t, "")
		h.rec.Start()
		st, err := h.rec.Capture(tokens...)
		require.ErrorIs(t, err, shortcut.ErrIncomplete, tokens)
		require.Equal(t, shortcut.PhaseRecording, st.Phase, tokens)
	}
}

func TestReservedBindingsAreRejected(t *testing.T) {
	for _, b := range shortcut.DefaultReserved().Bindings() {
		h := newHarness(t, "Cmd+Shift+P")
		h.rec.Start()
		tokens := []string{b.Key()}
		for _, m := range b.Modifiers() {
			tokens = append(tokens, m.String())
		}
		st, err := h.rec.Capture(tokens...)
		require.ErrorIs(t, err, shortcut.ErrReserved, b.String())
		require.Equal(t, shortcut.PhaseRecording, st.Phase)
		require.Equal(t, b, st.Pending)
		require.Contains(t, st.Display(), b.Label())
		require.Equal(t, shortcut.MustParse("Cmd+Shift+P"), h.rec.Current())
	}
}

func TestValidCaptureCommitsNormalized(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	h.rec.Start()
	st, err := h.rec.Capture("shift", "command", "k")
	require.NoError(t, err)
	require.Equal(t, shortcut.PhaseCommitted, st.Phase)
	require.Equal(t, "Shift+Cmd+K", st.Current.String())
	require.Equal(t, "Shift + ⌘ + K", st.Display())
	require.Equal(t, 0, h.clock.Pending())

	other := newHarness(t, "Cmd+Shift+P")
	other.rec.Start()
	st2, err := other.rec.Capture("command", "shift", "K")
	require.NoError(t, err)
	require.Equal(t, st.Current, st2.Current)
	require.Equal(t, st.Display(), st2.Display())
}

func TestRejectionThenRetryCommits(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	h.rec.Start()
	_, err := h.rec.Capture("cmd", "q")
	require.ErrorIs(t, err, shortcut.ErrReserved)

	h.clock.Advance(time.Second)
	st, err := h.rec.Capture("ctrl", "option", "p")
	require.NoError(t, err)
	require.Equal(t, shortcut.PhaseCommitted, st.Phase)
	require.Equal(t, shortcut.ReasonNone, st.Reason)
	require.Equal(t, "Ctrl+Option+P", h.rec.Current().String())
}

func TestAmbiguousCapture(t *testing.T) {
	h := newHarness(t, "")
	h.rec.Start()
	st, err := h.rec.Capture("cmd", "a", "b")
	require.ErrorIs(t, err, shortcut.ErrAmbiguous)
	require.Equal(t, shortcut.PhaseRecording, st.Phase)
	require.Equal(t, shortcut.ReasonAmbiguous, st.Reason)
}

func TestTimeoutRestoresPreviousBinding(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	before := h.rec.Current()
	h.rec.Start()

	h.clock.Advance(1999 * time.Millisecond)
	require.Equal(t, shortcut.PhaseRecording, h.rec.State().Phase)

	h.clock.Advance(time.Millisecond)
	st := h.rec.State()
	require.Equal(t, shortcut.PhaseIdle, st.Phase)
	require.Equal(t, before, st.Current)
	require.Equal(t, before.Label(), st.Display())
	require.Equal(t, []shortcut.Phase{shortcut.PhaseRecording, shortcut.PhaseIdle}, h.phases())
}

func TestTimeoutAfterRejectionReturnsToIdle(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	h.rec.Start()
	_, err := h.rec.Capture("shift")
	require.Error(t, err)

	h.clock.Advance(2 * time.Second)
	st := h.rec.State()
	require.Equal(t, shortcut.PhaseIdle, st.Phase)
	require.Equal(t, shortcut.ReasonNone, st.Reason)
	require.Equal(t, shortcut.MustParse("Cmd+Shift+P"), st.Current)
}

func TestCaptureAfterDeadlineTimesOut(t *testing.T) {
	// the timeout callback never runs; only the clock moves
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	rec := shortcut.NewRecorder(shortcut.MustParse("Cmd+Shift+P"), shortcut.DefaultReserved(),
		shortcut.WithTimeout(2*time.Second),
		shortcut.WithScheduler(shortcuttest.NewManualScheduler(now)),
		shortcut.WithClock(func() time.Time { return now }),
	)
	rec.Start()
	now = now.Add(2 * time.Second)

	st, err := rec.Capture("cmd", "k")
	require.ErrorIs(t, err, shortcut.ErrTimedOut)
	require.Equal(t, shortcut.PhaseIdle, st.Phase)
	require.Equal(t, shortcut.MustParse("Cmd+Shift+P"), rec.Current())
}

func TestRestartReplacesOutstandingTimer(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	first := h.rec.Start()
	h.clock.Advance(1500 * time.Millisecond)
	second := h.rec.Start()
	require.NotEqual(t, first.Session, second.Session)
	require.Equal(t, 1, h.clock.Pending())

	// The first session's deadline passes; the second is still live.
	h.clock.Advance(time.Second)
	require.Equal(t, shortcut.PhaseRecording, h.rec.State().Phase)

	h.clock.Advance(time.Second)
	require.Equal(t, shortcut.PhaseIdle, h.rec.State().Phase)
}

func TestCommittedIsRestingState(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	h.rec.Start()
	_, err := h.rec.Capture("cmd", "option", "p")
	require.NoError(t, err)

	st := h.rec.Start()
	require.Equal(t, shortcut.PhaseRecording, st.Phase)
	st = h.rec.Cancel()
	require.Equal(t, shortcut.PhaseIdle, st.Phase)
	require.Equal(t, "Option+Cmd+P", st.Current.String())
}

func TestCaptureOutsideRecording(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	st, err := h.rec.Capture("cmd", "k")
	require.ErrorIs(t, err, shortcut.ErrNotRecording)
	require.Equal(t, shortcut.PhaseIdle, st.Phase)
	require.Empty(t, h.events)

	st = h.rec.Cancel()
	require.Equal(t, shortcut.PhaseIdle, st.Phase)
	require.Empty(t, h.events)
}

func TestCloseStopsTimerAndObserver(t *testing.T) {
	h := newHarness(t, "Cmd+Shift+P")
	h.rec.Start()
	h.rec.Close()
	require.Equal(t, 0, h.clock.Pending())
	require.Equal(t, shortcut.PhaseIdle, h.rec.State().Phase)

	h.rec.Start()
	require.Equal(t, shortcut.PhaseIdle, h.rec.State().Phase)
	require.Len(t, h.events, 1)
}

func TestObserverMayReadRecorder(t *testing.T) {
	var seen []shortcut.Phase
	var rec *shortcut.Recorder
	rec = shortcut.NewRecorder(shortcut.MustParse("Cmd+Shift+P"), shortcut.DefaultReserved(),
		shortcut.WithScheduler(shortcuttest.NewManualScheduler(time.Now())),
		shortcut.WithObserver(func(shortcut.State) { seen = append(seen, rec.State().Phase) }),
	)
	rec.Start()
	rec.Cancel()
	require.Equal(t, []shortcut.Phase{shortcut.PhaseRecording, shortcut.PhaseIdle}, seen)
}
