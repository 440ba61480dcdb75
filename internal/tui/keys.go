package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

// Binding maps one or more key names to an action within a scope.
type Binding struct {
	Action Action
	Keys   []string
	Help   string
}

const (
	scopeGlobal    = "global"
	scopeRecorder  = "recorder"
	scopeGeneral   = "general"
	scopeHistory   = "history"
	scopeRecording = "recording"
)

const (
	actionQuit   Action = "quit"
	actionUp     Action = "up"
	actionDown   Action = "down"
	actionNext   Action = "next_panel"
	actionPrev   Action = "prev_panel"
	actionSelect Action = "select"
	actionJump   Action = "jump"
	actionTheme  Action = "theme"
	actionRecord Action = "record"
	actionCancel Action = "cancel"
	actionLevel  Action = "level"
	actionLang   Action = "language"
	actionCopy   Action = "auto_copy"
	actionReset  Action = "reset"
)

// keyScope keeps bindings in registration order for help and indexes them
// by normalized key name.
type keyScope struct {
	bindings []*Binding
	byKey    map[string]*Binding
}

// KeyRegistry resolves key names to actions per scope.
type KeyRegistry struct {
	scopes map[string]*keyScope
}

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{scopes: make(map[string]*keyScope)}

	r.bind(scopeGlobal, actionUp, "up", "up", "k")
	r.bind(scopeGlobal, actionDown, "down", "down", "j")
	r.bind(scopeGlobal, actionNext, "next", "tab")
	r.bind(scopeGlobal, actionPrev, "prev", "shift+tab")
	r.bind(scopeGlobal, actionSelect, "open", "enter")
	r.bind(scopeGlobal, actionJump, "jump", "1", "2", "3", "4", "5", "6", "7")
	r.bind(scopeGlobal, actionTheme, "theme", "T")
	r.bind(scopeGlobal, actionQuit, "quit", "q", "ctrl+c")

	r.bind(scopeRecorder, actionRecord, "record shortcut", "r")

	// level, language and auto-copy are applied by the General panel
	r.bind(scopeGeneral, actionRecord, "record shortcut", "r")
	r.bind(scopeGeneral, actionLevel, "level", "l", "L")
	r.bind(scopeGeneral, actionLang, "language", "g", "G")
	r.bind(scopeGeneral, actionCopy, "auto-copy", "a")

	r.bind(scopeHistory, actionReset, "clear history", "D")

	r.bind(scopeRecording, actionCancel, "cancel", "esc")

	return r
}

// bind adds a binding to scope. Keys already taken in the scope are
// skipped; a binding left without keys is dropped.
func (r *KeyRegistry) bind(scope string, action Action, help string, keys ...string) {
	sc := r.scopes[scope]
	if sc == nil {
		sc = &keyScope{byKey: make(map[string]*Binding)}
		r.scopes[scope] = sc
	}
	b := &Binding{Action: action, Help: help}
	for _, k := range keys {
		k = normalizeKeyName(k)
		if k == "" {
			continue
		}
		if _, taken := sc.byKey[k]; taken {
			continue
		}
		sc.byKey[k] = b
		b.Keys = append(b.Keys, k)
	}
	if len(b.Keys) > 0 {
		sc.bindings = append(sc.bindings, b)
	}
}

// chain lists the scopes consulted for scope, most specific first. The
// recording scope stands alone so navigation keys reach the recorder.
func chain(scope string) []string {
	if scope == scopeGlobal || scope == scopeRecording {
		return []string{scope}
	}
	return []string{scope, scopeGlobal}
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	k := normalizeKeyName(keyName)
	if r == nil || k == "" {
		return nil
	}
	for _, name := range chain(scope) {
		if sc := r.scopes[name]; sc != nil {
			if b := sc.byKey[k]; b != nil {
				return b
			}
		}
	}
	return nil
}

// HelpBindings lists the bindings reachable from scope, most specific
// scope first.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	var out []key.Binding
	for _, name := range chain(scope) {
		sc := r.scopes[name]
		if sc == nil {
			continue
		}
		for _, b := range sc.bindings {
			helpKey := b.Keys[0]
			if b.Action == actionJump {
				helpKey += "-" + b.Keys[len(b.Keys)-1]
			}
			out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey, b.Help)))
		}
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// T and t are different actions
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "escape", "esc")
	return s
}
