// Package shortcut models keyboard shortcut bindings and the recorder that
// captures a new binding from user input.
package shortcut

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Modifier is a bit in a binding's modifier set.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModOption
	ModShift
	ModCmd
)

// modifierOrder is the canonical display order.
var modifierOrder = []Modifier{ModCtrl, ModOption, ModShift, ModCmd}

func (m Modifier) String() string {
	switch m {
	case ModCtrl:
		return "Ctrl"
	case ModOption:
		return "Option"
	case ModShift:
		return "Shift"
	case ModCmd:
		return "Cmd"
	default:
		return "Modifier(" + strconv.Itoa(int(m)) + ")"
	}
}

// Symbol returns the macOS glyph for the modifier.
func (m Modifier) Symbol() string {
	switch m {
	case ModCtrl:
		return "⌃"
	case ModOption:
		return "⌥"
	case ModShift:
		return "⇧"
	case ModCmd:
		return "⌘"
	default:
		return "?"
	}
}

var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"⌃":       ModCtrl,
	"option":  ModOption,
	"opt":     ModOption,
	"alt":     ModOption,
	"⌥":       ModOption,
	"shift":   ModShift,
	"⇧":       ModShift,
	"cmd":     ModCmd,
	"command": ModCmd,
	"super":   ModCmd,
	"meta":    ModCmd,
	"⌘":       ModCmd,
}

var namedKeys = map[string]string{
	"space":     "Space",
	"enter":     "Enter",
	"return":    "Enter",
	"tab":       "Tab",
	"esc":       "Esc",
	"escape":    "Esc",
	"backspace": "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pageup":    "PageUp",
	"pgdown":    "PageDown",
	"pagedown":  "PageDown",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
}

var (
	ErrIncomplete = errors.New("shortcut needs a non-modifier key")
	ErrAmbiguous  = errors.New("shortcut has more than one non-modifier key")
)

// Binding is a normalized modifier set plus exactly one primary key.
// Bindings are comparable and may be used as map keys.
type Binding struct {
	mods Modifier
	key  string
}

// NewBinding builds a binding from a primary key and modifiers. Modifier
// order does not matter.
func NewBinding(key string, mods ...Modifier) Binding {
	var b Binding
	for _, m := range mods {
		b.mods |= m
	}
	b.key = canonicalKey(key)
	return b
}

// FromTokens normalizes a captured key combination. Tokens may be given in
// any order. When the combination is invalid the returned binding still
// carries whatever was recognised, for display.
func FromTokens(tokens []string) (Binding, error) {
	var b Binding
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			if raw == " " {
				tok = "space"
			} else {
				continue
			}
		}
		if mod, ok := modifierAliases[strings.ToLower(tok)]; ok {
			b.mods |= mod
			continue
		}
		key := canonicalKey(tok)
		if b.key != "" && b.key != key {
			return b, ErrAmbiguous
		}
		b.key = key
	}
	if b.key == "" {
		return b, ErrIncomplete
	}
	return b, nil
}

// Parse reads a binding written as "+"-separated tokens, for example
// "Cmd+Shift+P" or "⌘ + Shift + P".
func Parse(s string) (Binding, error) {
	tokens := splitTokens(s)
	if len(tokens) == 0 {
		return Binding{}, fmt.Errorf("parse shortcut %q: %w", s, ErrIncomplete)
	}
	b, err := FromTokens(tokens)
	if err != nil {
		return b, fmt.Errorf("parse shortcut %q: %w", s, err)
	}
	return b, nil
}

// MustParse is Parse for static tables.
func MustParse(s string) Binding {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

func splitTokens(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if s == "+" {
		return []string{"+"}
	}
	var key string
	if strings.HasSuffix(s, "++") {
		key = "+"
		s = strings.TrimSuffix(s, "++")
	}
	parts := strings.Split(s, "+")
	out := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if key != "" {
		out = append(out, key)
	}
	return out
}

func canonicalKey(tok string) string {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return ""
	}
	lower := strings.ToLower(tok)
	if name, ok := namedKeys[lower]; ok {
		return name
	}
	if n, ok := functionKey(lower); ok {
		return "F" + strconv.Itoa(n)
	}
	if utf8.RuneCountInString(tok) == 1 {
		return strings.ToUpper(tok)
	}
	r, size := utf8.DecodeRuneInString(lower)
	return strings.ToUpper(string(r)) + lower[size:]
}

func functionKey(lower string) (int, bool) {
	if len(lower) < 2 || lower[0] != 'f' {
		return 0, false
	}
	n, err := strconv.Atoi(lower[1:])
	if err != nil || n < 1 || n > 24 {
		return 0, false
	}
	return n, true
}

// Key returns the primary key, or "" for the zero binding.
func (b Binding) Key() string { return b.key }

// Has reports whether m is part of the binding.
func (b Binding) Has(m Modifier) bool { return b.mods&m != 0 }

// IsZero reports whether nothing has been bound.
func (b Binding) IsZero() bool { return b.mods == 0 && b.key == "" }

// Modifiers returns the binding's modifiers in canonical order.
func (b Binding) Modifiers() []Modifier {
	out := make([]Modifier, 0, len(modifierOrder))
	for _, m := range modifierOrder {
		if b.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// String is the canonical form, e.g. "Shift+Cmd+P". Parse(b.String())
// returns b.
func (b Binding) String() string {
	parts := make([]string, 0, len(modifierOrder)+1)
	for _, m := range b.Modifiers() {
		parts = append(parts, m.String())
	}
	if b.key != "" {
		parts = append(parts, b.key)
	}
	return strings.Join(parts, "+")
}

// Symbols renders the compact glyph form, e.g. "⇧⌘P".
func (b Binding) Symbols() string {
	var sb strings.Builder
	for _, m := range b.Modifiers() {
		sb.WriteString(m.Symbol())
	}
	sb.WriteString(b.key)
	return sb.String()
}

// Label renders the settings-window form, e.g. "Shift + ⌘ + P".
func (b Binding) Label() string {
	parts := make([]string, 0, len(modifierOrder)+1)
	for _, m := range b.Modifiers() {
		switch m {
		case ModCtrl, ModCmd:
			parts = append(parts, m.Symbol())
		default:
			parts = append(parts, m.String())
		}
	}
	if b.key != "" {
		parts = append(parts, b.key)
	}
	return strings.Join(parts, " + ")
}
