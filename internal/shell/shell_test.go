package shell

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/typozero/internal/navigation"
	"github.com/jask/typozero/internal/panels"
	"github.com/jask/typozero/internal/shortcut"
	"github.com/jask/typozero/internal/shortcut/shortcuttest"
	"github.com/jask/typozero/internal/theme"
)

type saved struct {
	key, value string
}

type recordingSaver struct {
	mu    sync.Mutex
	calls []saved
}

func (r *recordingSaver) Save(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, saved{key, value})
}

func (r *recordingSaver) all() []saved {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]saved(nil), r.calls...)
}

type fixture struct {
	shell *Shell
	clock *shortcuttest.ManualScheduler
	saver *recordingSaver
}

func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	t.Helper()
	clock := shortcuttest.NewManualScheduler(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	saver := &recordingSaver{}
	opts := Options{
		Theme:     theme.Light,
		Shortcut:  shortcut.MustParse("Cmd+Shift+P"),
		Reserved:  shortcut.DefaultReserved(),
		Scheduler: clock,
		Clock:     clock.Now,
		Saver:     saver,
	}
	if mutate != nil {
		mutate(&opts)
	}
	s, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return &fixture{shell: s, clock: clock, saver: saver}
}

func TestStartsOnFirstItem(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	require.Equal(t, panels.IDGeneral, f.shell.ActiveID())
	p, err := f.shell.ActivePanel()
	require.NoError(t, err)
	require.Equal(t, panels.IDGeneral, p.ID())
	require.NotNil(t, f.shell.Recorder())
}

func TestStartScreen(t *testing.T) {
	t.Parallel()
	f := newFixture(t, func(o *Options) { o.StartID = panels.IDAbout })
	require.Equal(t, panels.IDAbout, f.shell.ActiveID())
	require.Nil(t, f.shell.Recorder())

	f = newFixture(t, func(o *Options) { o.StartID = "nope" })
	require.Equal(t, panels.IDGeneral, f.shell.ActiveID())
}

func TestSelectAboutThenGeneral(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	require.NoError(t, f.shell.Select(panels.IDAbout))
	p, err := f.shell.ActivePanel()
	require.NoError(t, err)
	require.Equal(t, panels.IDAbout, p.ID())

	require.NoError(t, f.shell.Select(panels.IDGeneral))
	p, err = f.shell.ActivePanel()
	require.NoError(t, err)
	require.Equal(t, panels.IDGeneral, p.ID())
}

func TestSelectEveryItem(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	for _, id := range f.shell.ItemIDs() {
		require.NoError(t, f.shell.Select(id))
		p, err := f.shell.ActivePanel()
		require.NoError(t, err)
		require.Equal(t, id, p.ID())
	}
}

func TestSelectInvalidKeepsState(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	require.NoError(t, f.shell.Select(panels.IDShortcuts))
	before, _ := f.shell.ActivePanel()

	err := f.shell.Select("shortcut")
	var selErr *navigation.SelectionError
	require.ErrorAs(t, err, &selErr)
	require.Equal(t, panels.IDShortcuts, selErr.Suggestion)

	require.Error(t, f.shell.Select("拡張設定"))

	after, err := f.shell.ActivePanel()
	require.NoError(t, err)
	require.Same(t, before, after)
	require.Equal(t, panels.IDShortcuts, f.shell.ActiveID())
}

func TestSelectActiveIsNoop(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	rec := f.shell.Recorder()
	f.shell.StartRecording()
	require.NoError(t, f.shell.Select(panels.IDGeneral))
	require.Same(t, rec, f.shell.Recorder())
	require.True(t, f.shell.Recording())
}

func TestMissingPanelReverts(t *testing.T) {
	t.Parallel()
	factories := panels.Factories()
	delete(factories, panels.IDDictionary)
	f := newFixture(t, func(o *Options) { o.Panels = factories })

	err := f.shell.Select(panels.IDDictionary)
	require.ErrorIs(t, err, ErrPanelNotFound)
	var pe *PanelError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, panels.IDDictionary, pe.ID)

	require.Equal(t, panels.IDGeneral, f.shell.ActiveID())
	_, err = f.shell.ActivePanel()
	require.NoError(t, err)
}

func TestMissingStartPanelFails(t *testing.T) {
	t.Parallel()
	_, err := New(Options{Panels: map[string]panels.Factory{}})
	require.ErrorIs(t, err, ErrPanelNotFound)
}

func TestThemeToggleSavesAndNotifies(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	var seen []theme.Mode
	unsub := f.shell.SubscribeTheme(func(m theme.Mode) { seen = append(seen, m) })

	require.Equal(t, theme.Dark, f.shell.ToggleTheme())
	require.Equal(t, theme.Dark, f.shell.Theme())
	require.Equal(t, theme.Dark, f.shell.Props(80).Theme)
	require.Equal(t, theme.Light, f.shell.ToggleTheme())
	unsub()
	f.shell.SetTheme(theme.Light)

	require.Equal(t, []theme.Mode{theme.Dark, theme.Light}, seen)
	require.Equal(t, []saved{{KeyTheme, "dark"}, {KeyTheme, "light"}}, f.saver.all())
}

func TestThemeSurvivesNavigation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	f.shell.ToggleTheme()
	require.NoError(t, f.shell.Select(panels.IDAbout))
	require.Equal(t, theme.Dark, f.shell.Theme())
}

func TestCommitSavesShortcut(t *testing.T) {
	t.Parallel()
	var changes []shortcut.State
	f := newFixture(t, func(o *Options) {
		o.OnRecorderChange = func(st shortcut.State) { changes = append(changes, st) }
	})

	_, ok := f.shell.StartRecording()
	require.True(t, ok)
	require.Equal(t, shortcut.RecordingIndicator, f.shell.ShortcutDisplay())

	_, err := f.shell.Capture("option", "cmd", "k")
	require.NoError(t, err)
	require.Equal(t, "Option+Cmd+K", f.shell.Shortcut().String())
	require.Equal(t, "Option + ⌘ + K", f.shell.ShortcutDisplay())
	require.Equal(t, []saved{{KeyShortcut, "Option+Cmd+K"}}, f.saver.all())
	require.Equal(t, shortcut.PhaseCommitted, changes[len(changes)-1].Phase)

	// the new binding seeds the next mounted recorder
	require.NoError(t, f.shell.Select(panels.IDShortcuts))
	require.Equal(t, "Option+Cmd+K", f.shell.Recorder().Current().String())
}

func TestReservedCaptureDoesNotSave(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	f.shell.StartRecording()
	_, err := f.shell.Capture("cmd", "q")
	require.ErrorIs(t, err, shortcut.ErrReserved)
	require.True(t, f.shell.Recording())
	require.Contains(t, f.shell.ShortcutDisplay(), "reserved")
	require.Empty(t, f.saver.all())
	require.Equal(t, "Shift+Cmd+P", f.shell.Shortcut().String())
}

func TestTimeoutRestores(t *testing.T) {
	t.Parallel()
	f := newFixture(t, func(o *Options) { o.RecordTimeout = time.Second })
	f.shell.StartRecording()
	f.clock.Advance(time.Second)
	require.False(t, f.shell.Recording())
	require.Equal(t, "Shift + ⌘ + P", f.shell.ShortcutDisplay())
	require.Empty(t, f.saver.all())
}

func TestUnmountClosesRecorder(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	rec := f.shell.Recorder()
	f.shell.StartRecording()
	require.Equal(t, 1, f.clock.Pending())

	require.NoError(t, f.shell.Select(panels.IDAbout))
	require.Nil(t, f.shell.Recorder())
	require.Equal(t, 0, f.clock.Pending())
	require.Equal(t, shortcut.PhaseIdle, rec.State().Phase)
	require.Equal(t, shortcut.PhaseIdle, rec.Start().Phase)

	require.Equal(t, "Shift + ⌘ + P", f.shell.ShortcutDisplay())
	_, err := f.shell.Capture("cmd", "k")
	require.ErrorIs(t, err, shortcut.ErrNotRecording)
	_, ok := f.shell.StartRecording()
	require.False(t, ok)
}
