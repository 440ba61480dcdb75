package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/typozero/internal/database/repository"
	"github.com/jask/typozero/internal/panels"
	"github.com/jask/typozero/internal/shell"
	"github.com/jask/typozero/internal/shortcut"
)

const (
	historyLimit  = 50
	defaultWidth  = 100
	defaultHeight = 32
)

// HistoryLoader fetches recent setting changes, newest first.
type HistoryLoader func(ctx context.Context, n int) ([]repository.Change, error)

// HistoryFeed holds the rows the History panel renders. The model fills it
// from a Cmd; the panel reads it during View.
type HistoryFeed struct {
	mu      sync.Mutex
	entries []panels.HistoryEntry
}

func (f *HistoryFeed) Entries() []panels.HistoryEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]panels.HistoryEntry(nil), f.entries...)
}

func (f *HistoryFeed) set(changes []repository.Change) {
	entries := make([]panels.HistoryEntry, 0, len(changes))
	for _, c := range changes {
		entries = append(entries, panels.HistoryEntry{Key: c.Key, OldValue: c.OldValue, NewValue: c.NewValue, At: c.ChangedAt})
	}
	f.mu.Lock()
	f.entries = entries
	f.mu.Unlock()
}

// Bridge forwards events raised off the UI goroutine into the program.
// Sends are asynchronous so a callback fired from inside Update never
// blocks on the event loop.
type Bridge struct {
	mu sync.Mutex
	p  *tea.Program
}

func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	b.p = p
	b.mu.Unlock()
}

func (b *Bridge) Send(msg tea.Msg) {
	b.mu.Lock()
	p := b.p
	b.mu.Unlock()
	if p != nil {
		go p.Send(msg)
	}
}

// RecorderChanged is a shell.Options.OnRecorderChange callback.
func (b *Bridge) RecorderChanged(st shortcut.State) { b.Send(recorderMsg{state: st}) }

// Saved is a service.Preferences.OnSaved callback.
func (b *Bridge) Saved(c repository.Change) { b.Send(savedMsg{change: c}) }

type recorderMsg struct{ state shortcut.State }

type savedMsg struct{ change repository.Change }

type historyMsg []repository.Change

type resetMsg struct{}

type errMsg struct{ error }

type Options struct {
	Shell   *shell.Shell
	History *HistoryFeed
	Load    HistoryLoader
	// Reset clears saved settings and the change journal.
	Reset  func(ctx context.Context) error
	Logger *zap.Logger
}

// Model is the bubbletea model for the settings window.
type Model struct {
	ctx     context.Context
	shell   *shell.Shell
	keys    *KeyRegistry
	help    help.Model
	log     *zap.Logger
	history *HistoryFeed
	load    HistoryLoader
	reset   func(ctx context.Context) error

	confirmReset bool

	cursor    int
	width     int
	height    int
	status    string
	statusErr bool
}

func New(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.History == nil {
		opts.History = &HistoryFeed{}
	}
	m := &Model{
		ctx:     ctx,
		shell:   opts.Shell,
		keys:    NewKeyRegistry(),
		help:    help.New(),
		log:     opts.Logger,
		history: opts.History,
		load:    opts.Load,
		reset:   opts.Reset,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.syncCursor()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.loadHistory()
}

func (m *Model) loadHistory() tea.Cmd {
	if m.load == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, 2*time.Second)
		defer cancel()
		list, err := m.load(ctx, historyLimit)
		if err != nil {
			return errMsg{fmt.Errorf("load history: %w", err)}
		}
		return historyMsg(list)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	case recorderMsg:
		// state is re-read from the shell in View; a timeout only needs a
		// redraw. Sends are async, so an Idle from an expired session can
		// arrive after a new Start.
		if msg.state.Phase == shortcut.PhaseIdle && m.status == statusRecording && !m.shell.Recording() {
			m.setStatus("")
		}
	case savedMsg:
		return m, m.loadHistory()
	case resetMsg:
		m.setStatus("saved settings cleared; config defaults apply on next start")
		return m, m.loadHistory()
	case historyMsg:
		m.history.set(msg)
	case errMsg:
		m.log.Error("tui command failed", zap.Error(msg.error))
		m.setError(msg.error)
	}
	return m, nil
}

const (
	statusRecording    = "recording: press a key combination"
	statusConfirmReset = "clear saved settings and history? press y to confirm"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shell.Recording() {
		return m.handleRecordingKey(msg)
	}

	name := msg.String()
	if m.confirmReset {
		m.confirmReset = false
		if name == "y" {
			return m, m.resetCmd()
		}
		m.setStatus("reset cancelled")
		return m, nil
	}
	b := m.keys.Lookup(name, m.scope())
	if b == nil {
		return m, nil
	}
	switch b.Action {
	case actionQuit:
		return m, tea.Quit
	case actionUp:
		m.moveCursor(-1)
	case actionDown:
		m.moveCursor(1)
	case actionNext:
		return m, m.selectID(m.shell.Neighbor(1))
	case actionPrev:
		return m, m.selectID(m.shell.Neighbor(-1))
	case actionSelect:
		return m, m.selectID(m.cursorID())
	case actionJump:
		n, _ := strconv.Atoi(name)
		ids := m.shell.ItemIDs()
		if n >= 1 && n <= len(ids) {
			return m, m.selectID(ids[n-1])
		}
	case actionTheme:
		mode := m.shell.ToggleTheme()
		m.setStatus("theme: " + mode.String())
	case actionRecord:
		if _, ok := m.shell.StartRecording(); ok {
			m.setStatus(statusRecording)
		}
	case actionReset:
		if m.reset != nil {
			m.confirmReset = true
			m.setStatus(statusConfirmReset)
		}
	case actionLevel, actionLang, actionCopy:
		if p, err := m.shell.ActivePanel(); err == nil {
			if h, ok := p.(panels.KeyHandler); ok {
				h.HandleKey(name)
			}
		}
	}
	return m, nil
}

// handleRecordingKey sends every key but esc to the recorder, so quit keys
// are captured like any other combination.
func (m *Model) handleRecordingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := m.keys.Lookup(msg.String(), scopeRecording); b != nil && b.Action == actionCancel {
		m.shell.CancelRecording()
		m.setStatus("recording cancelled")
		return m, nil
	}
	st, err := m.shell.Capture(tokensFromKey(msg)...)
	switch {
	case err == nil:
		m.setStatus("shortcut set: " + st.Current.Label())
	case errors.Is(err, shortcut.ErrTimedOut):
		m.setStatus("recording timed out")
	default:
		m.setError(err)
	}
	return m, nil
}

func (m *Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, 5*time.Second)
		defer cancel()
		if err := m.reset(ctx); err != nil {
			return errMsg{fmt.Errorf("reset: %w", err)}
		}
		return resetMsg{}
	}
}

func (m *Model) selectID(id string) tea.Cmd {
	if err := m.shell.Select(id); err != nil {
		m.log.Warn("navigation failed", zap.String("id", id), zap.Error(err))
		m.setError(err)
		m.syncCursor()
		return nil
	}
	m.setStatus("")
	m.syncCursor()
	if id == panels.IDHistory {
		return m.loadHistory()
	}
	return nil
}

func (m *Model) scope() string {
	switch m.shell.ActiveID() {
	case panels.IDGeneral:
		return scopeGeneral
	case panels.IDShortcuts:
		return scopeRecorder
	case panels.IDHistory:
		return scopeHistory
	default:
		return scopeGlobal
	}
}

func (m *Model) helpScope() string {
	if m.shell.Recording() {
		return scopeRecording
	}
	return m.scope()
}

func (m *Model) moveCursor(delta int) {
	ids := m.shell.ItemIDs()
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(ids) {
		m.cursor = len(ids) - 1
	}
}

func (m *Model) cursorID() string {
	ids := m.shell.ItemIDs()
	if m.cursor < 0 || m.cursor >= len(ids) {
		return ""
	}
	return ids[m.cursor]
}

func (m *Model) syncCursor() {
	for i, id := range m.shell.ItemIDs() {
		if id == m.shell.ActiveID() {
			m.cursor = i
			return
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}
