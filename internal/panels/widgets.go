package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jask/typozero/internal/theme"
)

const minCardWidth = 24

func cardWidth(p Props) int {
	// rounded border takes one column on each side
	w := p.Width - 2
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

func paragraph(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

func card(p Props, title, subtitle string, body ...string) string {
	s := p.Styles
	inner := cardWidth(p) - 2
	lines := []string{s.CardTitle.Render(title)}
	if subtitle != "" {
		lines = append(lines, s.Muted.Render(paragraph(subtitle, inner)))
	}
	for _, b := range body {
		if b != "" {
			lines = append(lines, b)
		}
	}
	return s.Card.Width(cardWidth(p)).Render(strings.Join(lines, "\n"))
}

func header(p Props, title, subtitle string) string {
	s := p.Styles
	if subtitle == "" {
		return s.Heading.Render(title)
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.Heading.Render(title), s.Subheading.Render(subtitle))
}

func segmented(s theme.Styles, options []string, selected int) string {
	parts := make([]string, 0, len(options))
	for i, o := range options {
		if i == selected {
			parts = append(parts, s.SegmentOn.Render(o))
		} else {
			parts = append(parts, s.SegmentOff.Render(o))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func toggle(s theme.Styles, on bool) string {
	if on {
		return s.ToggleOn.Render("[ ●] ON")
	}
	return s.ToggleOff.Render("[● ] OFF")
}

func note(style lipgloss.Style, p Props, icon string, lines ...string) string {
	inner := cardWidth(p) - 4
	wrapped := make([]string, 0, len(lines))
	for _, l := range lines {
		wrapped = append(wrapped, paragraph(l, inner))
	}
	return style.Width(cardWidth(p)).Render(icon + " " + strings.Join(wrapped, "\n\n"))
}

func comingSoon(p Props, title, subtitle, badge, message string) string {
	s := p.Styles
	body := lipgloss.JoinVertical(lipgloss.Center,
		s.CardTitle.Render(badge),
		s.Muted.Render(paragraph(message, cardWidth(p)-4)),
	)
	placeholder := s.Card.Width(cardWidth(p)).Align(lipgloss.Center).Padding(1, 1).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header(p, title, subtitle), placeholder)
}
