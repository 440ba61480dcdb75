package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const historyTimeLayout = "2006-01-02 15:04"

// History lists recently saved setting changes, newest first.
type History struct {
	entries func() []HistoryEntry
}

func NewHistory(entries func() []HistoryEntry) *History {
	return &History{entries: entries}
}

func (h *History) ID() string    { return IDHistory }
func (h *History) Title() string { return "履歴" }

func (h *History) View(p Props) string {
	s := p.Styles
	var list []HistoryEntry
	if h.entries != nil {
		list = h.entries()
	}
	if len(list) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			header(p, "履歴", "Settings history"),
			card(p, "変更履歴", "", s.Muted.Render("まだ変更はありません / No changes yet")),
		)
	}

	rows := make([]string, 0, len(list))
	for _, e := range list {
		old := e.OldValue
		if old == "" {
			old = "-"
		}
		line := fmt.Sprintf("%s  %-16s %s → %s", e.At.Local().Format(historyTimeLayout), e.Key, old, e.NewValue)
		rows = append(rows, s.Body.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header(p, "履歴", "Settings history"),
		card(p, "変更履歴", fmt.Sprintf("%d件", len(list)), strings.Join(rows, "\n")),
	)
}
