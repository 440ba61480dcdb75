// Package panels contains the settings screens. The set is closed: every
// panel is registered under a navigation id in Factories, and the shell
// looks panels up by id rather than dispatching on type.
package panels

import (
	"time"

	"github.com/jask/typozero/internal/navigation"
	"github.com/jask/typozero/internal/shortcut"
	"github.com/jask/typozero/internal/theme"
)

const (
	IDGeneral      = "general"
	IDShortcuts    = "shortcuts"
	IDLocalAI      = "local-ai"
	IDCustomPrompt = "custom-prompt"
	IDDictionary   = "dictionary"
	IDHistory      = "history"
	IDAbout        = "about"
)

// Props is everything a panel needs to render.
type Props struct {
	Theme  theme.Mode
	Styles theme.Styles
	Width  int
}

// PropsFor builds Props for a content area width wide.
func PropsFor(mode theme.Mode, width int) Props {
	return Props{Theme: mode, Styles: theme.StylesFor(mode), Width: width}
}

// Panel renders one settings screen. View must not mutate shared state.
type Panel interface {
	ID() string
	Title() string
	View(p Props) string
}

// KeyHandler is implemented by panels with local controls. HandleKey
// reports whether the key was consumed.
type KeyHandler interface {
	HandleKey(key string) bool
}

// RecorderPanel is implemented by panels that embed the shortcut recorder.
type RecorderPanel interface {
	Panel
	Recorder() *shortcut.Recorder
}

// HistoryEntry is one saved setting change shown on the History panel.
type HistoryEntry struct {
	Key      string
	OldValue string
	NewValue string
	At       time.Time
}

// Deps are handed to a Factory when its panel is mounted.
type Deps struct {
	// NewRecorder returns a recorder seeded with the current shortcut. The
	// shell closes it when the panel unmounts.
	NewRecorder func() *shortcut.Recorder
	History     func() []HistoryEntry
	Version     string
}

// Factory creates a panel on mount.
type Factory func(Deps) Panel

// DefaultEntries is the settings window sidebar.
func DefaultEntries() []navigation.Entry {
	return []navigation.Entry{
		navigation.Item(IDGeneral, "一般", "General"),
		navigation.Item(IDShortcuts, "ショートカット", "Shortcuts"),
		navigation.Header("拡張設定"),
		navigation.Item(IDLocalAI, "ローカルAI", "Local AI"),
		navigation.Item(IDCustomPrompt, "カスタムプロンプト", "Custom Prompt"),
		navigation.Item(IDDictionary, "辞書・置換", "Dictionary"),
		navigation.Item(IDHistory, "履歴", "History"),
		navigation.Header("TypZeroについて"),
		navigation.Item(IDAbout, "このアプリについて", "About"),
	}
}

// Factories maps every default navigation id to its panel.
func Factories() map[string]Factory {
	return map[string]Factory{
		IDGeneral:      func(d Deps) Panel { return NewGeneral(d.NewRecorder()) },
		IDShortcuts:    func(d Deps) Panel { return NewShortcuts(d.NewRecorder()) },
		IDLocalAI:      func(Deps) Panel { return localAIPanel() },
		IDCustomPrompt: func(Deps) Panel { return customPromptPanel() },
		IDDictionary:   func(Deps) Panel { return dictionaryPanel() },
		IDHistory:      func(d Deps) Panel { return NewHistory(d.History) },
		IDAbout:        func(d Deps) Panel { return NewAbout(d.Version) },
	}
}
