package panels

import (
	"runtime"

	"github.com/charmbracelet/lipgloss"
)

// AppName is shown in the title bar and on the About screen.
const AppName = "TypoZero"

type About struct {
	version string
}

func NewAbout(version string) *About {
	if version == "" {
		version = "dev"
	}
	return &About{version: version}
}

func (a *About) ID() string    { return IDAbout }
func (a *About) Title() string { return "このアプリについて" }

func (a *About) View(p Props) string {
	s := p.Styles
	body := lipgloss.JoinVertical(lipgloss.Left,
		s.Heading.Render(AppName),
		s.Muted.Render("Version "+a.version),
		s.Muted.Render(runtime.Version()+" "+runtime.GOOS+"/"+runtime.GOARCH),
		"",
		s.Body.Render(paragraph("選択したテキストをショートカット一つで校正します。", cardWidth(p)-4)),
		s.Muted.Render(paragraph("Proofread any selected text with a single shortcut.", cardWidth(p)-4)),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		header(p, "このアプリについて", "About"),
		card(p, AppName, "", body),
	)
}
