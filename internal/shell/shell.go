// Package shell composes navigation, theme and the mounted panel into the
// settings window state.
package shell

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jask/typozero/internal/navigation"
	"github.com/jask/typozero/internal/panels"
	"github.com/jask/typozero/internal/shortcut"
	"github.com/jask/typozero/internal/theme"
)

// Keys passed to Saver.
const (
	KeyTheme    = "ui.theme"
	KeyShortcut = "shortcut.binding"
)

var ErrPanelNotFound = errors.New("panel not found")

// PanelError reports a navigation id with no registered panel.
type PanelError struct {
	ID string
}

func (e *PanelError) Error() string { return fmt.Sprintf("%s: %q", ErrPanelNotFound, e.ID) }
func (e *PanelError) Unwrap() error { return ErrPanelNotFound }

// Saver persists a setting. Save must not block; failures are the
// saver's concern.
type Saver interface {
	Save(key, value string)
}

// SaverFunc adapts a func to Saver.
type SaverFunc func(key, value string)

func (f SaverFunc) Save(key, value string) { f(key, value) }

type nopSaver struct{}

func (nopSaver) Save(string, string) {}

// Options configure a Shell. Entries and Panels default to the built-in
// settings window.
type Options struct {
	Entries       []navigation.Entry
	Panels        map[string]panels.Factory
	StartID       string
	Theme         theme.Mode
	Shortcut      shortcut.Binding
	Reserved      shortcut.ReservedSet
	RecordTimeout time.Duration
	Scheduler     shortcut.Scheduler
	Clock         func() time.Time
	Saver         Saver
	Logger        *zap.Logger
	History       func() []panels.HistoryEntry
	Version       string

	// OnRecorderChange runs after every recorder transition. Timeouts fire
	// on the scheduler's goroutine, so it must be safe to call from there.
	OnRecorderChange func(shortcut.State)
}

// Shell owns the navigation and theme state and the mounted panel.
type Shell struct {
	nav      *navigation.Registry
	theme    *theme.State
	panels   map[string]panels.Factory
	opts     Options
	saver    Saver
	log      *zap.Logger
	shortcut shortcut.Binding

	mounted  panels.Panel
	recorder *shortcut.Recorder
}

// New builds the shell and mounts the start panel. An unknown StartID falls
// back to the first item; a start panel with no factory fails with
// ErrPanelNotFound.
func New(opts Options) (*Shell, error) {
	if opts.Entries == nil {
		opts.Entries = panels.DefaultEntries()
	}
	if opts.Panels == nil {
		opts.Panels = panels.Factories()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Saver == nil {
		opts.Saver = nopSaver{}
	}
	if opts.RecordTimeout <= 0 {
		opts.RecordTimeout = shortcut.DefaultTimeout
	}

	nav, err := navigation.NewRegistry(opts.Entries)
	if err != nil {
		return nil, err
	}
	s := &Shell{
		nav:      nav,
		theme:    theme.NewState(opts.Theme),
		panels:   opts.Panels,
		opts:     opts,
		saver:    opts.Saver,
		log:      opts.Logger,
		shortcut: opts.Shortcut,
	}
	if opts.StartID != "" {
		if _, err := nav.Select(opts.StartID); err != nil {
			s.log.Warn("unknown start screen, using default", zap.String("id", opts.StartID), zap.Error(err))
		}
	}
	if err := s.mount(nav.ActiveID()); err != nil {
		return nil, err
	}
	s.theme.Subscribe(s.onTheme)
	return s, nil
}

// Select switches the active panel. Selecting the active id is a no-op.
// On error the previous panel stays mounted.
func (s *Shell) Select(id string) error {
	prev := s.nav.ActiveID()
	if id == prev && s.nav.Contains(id) {
		return nil
	}
	if _, err := s.nav.Select(id); err != nil {
		return err
	}
	if _, ok := s.panels[id]; !ok {
		_, _ = s.nav.Select(prev)
		return &PanelError{ID: id}
	}
	s.unmount()
	if err := s.mount(id); err != nil {
		return err
	}
	s.log.Debug("navigate", zap.String("from", prev), zap.String("to", id))
	return nil
}

func (s *Shell) ActiveID() string { return s.nav.ActiveID() }

// ActivePanel returns the mounted panel for the active id.
func (s *Shell) ActivePanel() (panels.Panel, error) {
	if s.mounted == nil || s.mounted.ID() != s.nav.ActiveID() {
		return nil, &PanelError{ID: s.nav.ActiveID()}
	}
	return s.mounted, nil
}

// Entries returns the sidebar entries in configured order.
func (s *Shell) Entries() []navigation.Entry { return s.nav.Entries() }

// ItemIDs returns the selectable ids in sidebar order.
func (s *Shell) ItemIDs() []string { return s.nav.ItemIDs() }

// Neighbor returns the item delta positions from the active one.
func (s *Shell) Neighbor(delta int) string { return s.nav.Offset(delta) }

func (s *Shell) Theme() theme.Mode { return s.theme.Mode() }

func (s *Shell) ToggleTheme() theme.Mode { return s.theme.Toggle() }

func (s *Shell) SetTheme(m theme.Mode) { s.theme.Set(m) }

// SubscribeTheme registers fn for theme changes; call the result to stop.
func (s *Shell) SubscribeTheme(fn func(theme.Mode)) func() { return s.theme.Subscribe(fn) }

// Props returns the render props for the current theme.
func (s *Shell) Props(width int) panels.Props { return panels.PropsFor(s.theme.Mode(), width) }

// Shortcut is the committed shortcut, independent of any recording session.
func (s *Shell) Shortcut() shortcut.Binding { return s.shortcut }

// Recorder returns the mounted panel's recorder, or nil.
func (s *Shell) Recorder() *shortcut.Recorder { return s.recorder }

// ShortcutDisplay is what the window shows for the shortcut right now:
// the live recorder display when one is mounted, else the committed binding.
func (s *Shell) ShortcutDisplay() string {
	if s.recorder != nil {
		return s.recorder.State().Display()
	}
	return shortcut.State{Current: s.shortcut}.Display()
}

// StartRecording begins a capture session on the mounted panel.
func (s *Shell) StartRecording() (shortcut.State, bool) {
	if s.recorder == nil {
		return shortcut.State{}, false
	}
	return s.recorder.Start(), true
}

// CancelRecording abandons the mounted panel's capture session.
func (s *Shell) CancelRecording() (shortcut.State, bool) {
	if s.recorder == nil {
		return shortcut.State{}, false
	}
	return s.recorder.Cancel(), true
}

// Capture offers a key combination to the mounted recorder.
func (s *Shell) Capture(tokens ...string) (shortcut.State, error) {
	if s.recorder == nil {
		return shortcut.State{}, shortcut.ErrNotRecording
	}
	return s.recorder.Capture(tokens...)
}

// Recording reports whether a capture session is open.
func (s *Shell) Recording() bool {
	return s.recorder != nil && s.recorder.State().Phase == shortcut.PhaseRecording
}

// Close unmounts the active panel.
func (s *Shell) Close() { s.unmount() }

func (s *Shell) mount(id string) error {
	factory, ok := s.panels[id]
	if !ok {
		return &PanelError{ID: id}
	}
	s.mounted = factory(panels.Deps{
		NewRecorder: s.newRecorder,
		History:     s.opts.History,
		Version:     s.opts.Version,
	})
	return nil
}

func (s *Shell) unmount() {
	if s.recorder != nil {
		s.recorder.Close()
		s.recorder = nil
	}
	s.mounted = nil
}

func (s *Shell) newRecorder() *shortcut.Recorder {
	if s.recorder != nil {
		s.recorder.Close()
	}
	s.recorder = shortcut.NewRecorder(s.shortcut, s.opts.Reserved,
		shortcut.WithTimeout(s.opts.RecordTimeout),
		shortcut.WithScheduler(s.opts.Scheduler),
		shortcut.WithClock(s.opts.Clock),
		shortcut.WithObserver(s.onRecorder),
	)
	return s.recorder
}

func (s *Shell) onRecorder(st shortcut.State) {
	fields := []zap.Field{
		zap.Stringer("phase", st.Phase),
		zap.String("session", st.Session),
		zap.String("display", st.Display()),
	}
	if st.Reason != shortcut.ReasonNone {
		fields = append(fields, zap.Stringer("reason", st.Reason))
	}
	s.log.Debug("shortcut recorder", fields...)

	if st.Phase == shortcut.PhaseCommitted && st.Current != s.shortcut {
		s.shortcut = st.Current
		s.log.Info("shortcut committed", zap.Stringer("binding", st.Current))
		s.saver.Save(KeyShortcut, st.Current.String())
	}
	if s.opts.OnRecorderChange != nil {
		s.opts.OnRecorderChange(st)
	}
}

func (s *Shell) onTheme(m theme.Mode) {
	s.log.Info("theme changed", zap.Stringer("theme", m))
	s.saver.Save(KeyTheme, m.String())
}
