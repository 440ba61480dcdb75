package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/typozero/internal/shortcut"
)

const conflictWarningJA = "他のアプリケーションと競合するショートカットは避けてください。システムショートカットとの重複は動作しない場合があります。"
const conflictWarningEN = "Avoid shortcuts that conflict with other applications. Overlapping with system shortcuts may not work properly."

// Shortcuts is the dedicated shortcut screen.
type Shortcuts struct {
	rec *shortcut.Recorder
}

func NewShortcuts(rec *shortcut.Recorder) *Shortcuts {
	return &Shortcuts{rec: rec}
}

func (s *Shortcuts) ID() string                    { return IDShortcuts }
func (s *Shortcuts) Title() string                 { return "ショートカット" }
func (s *Shortcuts) Recorder() *shortcut.Recorder { return s.rec }

func (s *Shortcuts) View(p Props) string {
	st := s.rec.State()
	return lipgloss.JoinVertical(lipgloss.Left,
		header(p, "ショートカット", "Keyboard shortcut settings"),
		currentShortcutCard(p, st, "Current Shortcut Key"),
		recordCard(p, st, true),
		suggestionsCard(p, "Recommended"),
		note(p.Styles.Warning, p, "⚠", conflictWarningJA, conflictWarningEN),
	)
}

func currentShortcutCard(p Props, st shortcut.State, subtitle string) string {
	s := p.Styles
	display := s.Shortcut.Width(cardWidth(p) - 4)
	if st.Reason != shortcut.ReasonNone {
		display = display.Foreground(s.Palette.Error)
	}
	return card(p, "現在のショートカット", subtitle, display.Render("⌨  "+st.Display()))
}

func recordCard(p Props, st shortcut.State, bilingual bool) string {
	s := p.Styles
	var button string
	if st.Phase == shortcut.PhaseRecording {
		label := "記録中... キーの組み合わせを押してください"
		if bilingual {
			label = "記録中... Press any key combination"
		}
		button = s.ButtonBusy.Render(label)
	} else {
		label := "ショートカットを記録 (r)"
		if bilingual {
			label = "ショートカットを記録 / Record Shortcut (r)"
		}
		button = s.Button.Render(label)
	}
	hint := "ボタンをクリックして、希望のキーの組み合わせを押してください (esc でキャンセル)"
	if bilingual {
		hint = "Press r, then your desired key combination (esc cancels)"
	}
	subtitle := ""
	if bilingual {
		subtitle = "Record New Shortcut"
	}
	return card(p, "ショートカットを変更", subtitle, button, s.Muted.Render(paragraph(hint, cardWidth(p)-4)))
}

func suggestionsCard(p Props, subtitle string) string {
	s := p.Styles
	inner := cardWidth(p) - 4
	rows := make([]string, 0, len(shortcut.Suggestions()))
	for _, sug := range shortcut.Suggestions() {
		keys := sug.Binding.Label()
		gap := inner - lipgloss.Width(sug.Description) - lipgloss.Width(keys)
		if gap < 1 {
			gap = 1
		}
		rows = append(rows, s.Muted.Render(sug.Description)+strings.Repeat(" ", gap)+s.Body.Render(keys))
	}
	return card(p, "推奨ショートカット", subtitle, strings.Join(rows, "\n"))
}
