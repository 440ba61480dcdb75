package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/typozero/internal/navigation"
	"github.com/jask/typozero/internal/panels"
	"github.com/jask/typozero/internal/theme"
)

const (
	sidebarWidth    = 26
	minContentWidth = 40
)

func (m *Model) View() string {
	s := theme.StylesFor(m.shell.Theme())
	inner := m.width - 2
	if inner < sidebarWidth+minContentWidth {
		inner = sidebarWidth + minContentWidth
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(s),
		m.renderContent(s, inner-sidebarWidth-1),
	)
	window := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(s, inner),
		body,
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Window.Width(inner).Render(window),
		m.renderFooter(s, inner),
	)
}

func (m *Model) renderTitleBar(s theme.Styles, width int) string {
	dots := make([]string, 0, 3)
	for _, c := range theme.TrafficLights() {
		dots = append(dots, lipgloss.NewStyle().Foreground(c).Render("●"))
	}
	left := strings.Join(dots, " ")
	title := s.WindowTitle.Render(panels.AppName)
	control := s.ThemeControl.Render(themeLabel(m.shell.Theme()) + " (T)")

	inner := width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(title) - lipgloss.Width(control)
	if gap < 2 {
		gap = 2
	}
	lead := gap / 2
	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		left, strings.Repeat(" ", lead), title, strings.Repeat(" ", gap-lead), control)
	return s.TitleBar.Width(width).Render(bar)
}

func themeLabel(mode theme.Mode) string {
	if mode == theme.Dark {
		return "☾ Dark"
	}
	return "☀ Light"
}

// visibleEntries is the sidebar in configured order.
func (m *Model) visibleEntries() []navigation.Entry {
	return m.shell.Entries()
}

func (m *Model) renderSidebar(s theme.Styles) string {
	width := sidebarWidth - 3
	active := m.shell.ActiveID()
	cursor := m.cursorID()

	lines := make([]string, 0, len(m.visibleEntries())+1)
	lines = append(lines, s.NavHeader.MarginTop(0).Render("設定"))
	for _, e := range m.visibleEntries() {
		if e.IsHeader() {
			lines = append(lines, s.NavHeader.Render(ansi.Truncate(e.Label, width, "…")))
			continue
		}
		marker := "  "
		if e.ID == cursor {
			marker = s.NavCursor.Render("› ")
		}
		label := ansi.Truncate(e.Label, width-3, "…")
		style := s.NavItem
		if e.ID == active {
			style = s.NavActive
		}
		lines = append(lines, marker+style.Render(label))
	}
	return s.Sidebar.Width(sidebarWidth).Height(m.bodyHeight()).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderContent(s theme.Styles, width int) string {
	var out string
	p, err := m.shell.ActivePanel()
	if err != nil {
		out = s.Error.Render(err.Error())
	} else {
		out = p.View(m.shell.Props(width - 4))
	}
	return s.Content.Width(width).Render(out)
}

func (m *Model) renderFooter(s theme.Styles, width int) string {
	status := ""
	if m.status != "" {
		style := s.Muted
		if m.statusErr {
			style = s.StatusError
		}
		status = style.Render(ansi.Truncate(m.status, width, "…"))
	}
	m.help.Width = width
	helpLine := m.help.ShortHelpView(m.keys.HelpBindings(m.helpScope()))
	if status == "" {
		return s.Footer.Render(helpLine)
	}
	return s.Footer.Render(status + "\n" + helpLine)
}

func (m *Model) bodyHeight() int {
	h := m.height - 8
	if h < 12 {
		h = 12
	}
	return h
}
