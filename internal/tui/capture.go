package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// terminal modifier prefixes and the recorder tokens they map to; a
// terminal never reports Cmd
var keyModifiers = []struct {
	prefix string
	token  string
}{
	{"ctrl+", "ctrl"},
	{"alt+", "option"},
	{"shift+", "shift"},
}

// tokensFromKey turns a terminal key press into recorder tokens.
func tokensFromKey(msg tea.KeyMsg) []string {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		// pasted text: every rune is a separate key
		tokens := make([]string, 0, len(msg.Runes)+1)
		if msg.Alt {
			tokens = append(tokens, "option")
		}
		for _, r := range msg.Runes {
			tokens = append(tokens, string(r))
		}
		return tokens
	}

	name := msg.String()
	var tokens []string
	for {
		matched := false
		for _, m := range keyModifiers {
			if strings.HasPrefix(name, m.prefix) && len(name) > len(m.prefix) {
				tokens = append(tokens, m.token)
				name = name[len(m.prefix):]
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}

	switch {
	case name == " ":
		name = "space"
	case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
		tokens = append(tokens, "shift")
	}
	return append(tokens, name)
}
