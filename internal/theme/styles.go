package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles shared by the chrome and every panel.
type Styles struct {
	Mode    Mode
	Palette Palette

	Window       lipgloss.Style
	TitleBar     lipgloss.Style
	WindowTitle  lipgloss.Style
	Sidebar      lipgloss.Style
	NavHeader    lipgloss.Style
	NavItem      lipgloss.Style
	NavActive    lipgloss.Style
	NavCursor    lipgloss.Style
	NavSublabel  lipgloss.Style
	Content      lipgloss.Style
	Heading      lipgloss.Style
	Subheading   lipgloss.Style
	Section      lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	Body         lipgloss.Style
	Muted        lipgloss.Style
	Shortcut     lipgloss.Style
	Button       lipgloss.Style
	ButtonBusy   lipgloss.Style
	SegmentOn    lipgloss.Style
	SegmentOff   lipgloss.Style
	ToggleOn     lipgloss.Style
	ToggleOff    lipgloss.Style
	Warning      lipgloss.Style
	Info         lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	Footer       lipgloss.Style
	StatusError  lipgloss.Style
	ThemeControl lipgloss.Style
}

// StylesFor builds the style set for m.
func StylesFor(m Mode) Styles {
	p := PaletteFor(m)
	base := lipgloss.NewStyle().Foreground(p.Text)

	return Styles{
		Mode:    m,
		Palette: p,

		Window:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border),
		TitleBar:    lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(p.Border),
		WindowTitle: base.Bold(true),
		Sidebar:     lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(p.Border),
		NavHeader:   lipgloss.NewStyle().Foreground(p.Muted).Bold(true).MarginTop(1),
		NavItem:     lipgloss.NewStyle().Foreground(p.Muted).PaddingLeft(1),
		NavActive:   lipgloss.NewStyle().Foreground(p.Text).Bold(true).PaddingLeft(1),
		NavCursor:   lipgloss.NewStyle().Foreground(p.Primary),
		NavSublabel: lipgloss.NewStyle().Foreground(p.Muted).Faint(true).PaddingLeft(1),
		Content:     lipgloss.NewStyle().Padding(1, 2),
		Heading:     base.Bold(true),
		Subheading:  lipgloss.NewStyle().Foreground(p.Muted),
		Section:     base.Bold(true).MarginTop(1),
		Card:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1).MarginTop(1),
		CardTitle:   base.Bold(true),
		Body:        base,
		Muted:       lipgloss.NewStyle().Foreground(p.Muted),
		Shortcut:    base.Bold(true).Padding(1, 4).Align(lipgloss.Center),
		Button:      lipgloss.NewStyle().Foreground(colorSurface).Background(p.Primary).Padding(0, 2),
		ButtonBusy:  lipgloss.NewStyle().Foreground(colorSurface).Background(p.Muted).Padding(0, 2),
		SegmentOn:   lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface).Bold(true).Padding(0, 2),
		SegmentOff:  lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 2),
		ToggleOn:    lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		ToggleOff:   lipgloss.NewStyle().Foreground(p.Muted),
		Warning:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Warning).Foreground(p.Warning).Padding(0, 1).MarginTop(1),
		Info:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Foreground(p.Primary).Padding(0, 1).MarginTop(1),
		Error:       lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Success:     lipgloss.NewStyle().Foreground(p.Success),
		Footer:      lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		StatusError: lipgloss.NewStyle().Foreground(p.Error),
		ThemeControl: lipgloss.NewStyle().Foreground(p.Text).Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).Padding(0, 1),
	}
}
