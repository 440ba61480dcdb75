package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Design tokens (component library, light appearance)
// ---------------------------------------------------------------------------

const (
	colorPrimary    lipgloss.Color = "#3A6FF7"
	colorPrimaryAlt lipgloss.Color = "#6B5BFF"
	colorBackground lipgloss.Color = "#F5F6F7"
	colorSurface    lipgloss.Color = "#FFFFFF"
	colorText       lipgloss.Color = "#2B2D31"
	colorTextMuted  lipgloss.Color = "#4B4F56"
	colorBorder     lipgloss.Color = "#D9DCE1"
	colorSuccess    lipgloss.Color = "#35C27F"
	colorWarning    lipgloss.Color = "#F6A53B"
	colorError      lipgloss.Color = "#E66A6A"
)

// ---------------------------------------------------------------------------
// Dark appearance
// ---------------------------------------------------------------------------

const (
	colorDarkBackground lipgloss.Color = "#0E0F14"
	colorDarkSurface    lipgloss.Color = "#1E2029"
	colorDarkText       lipgloss.Color = "#FFFFFF"
	colorDarkTextMuted  lipgloss.Color = "#A3A7B3"
	colorDarkBorder     lipgloss.Color = "#2E313C"
)

// Window chrome traffic lights.
const (
	colorClose    lipgloss.Color = "#FF5F57"
	colorMinimize lipgloss.Color = "#FEBC2E"
	colorZoom     lipgloss.Color = "#28C840"
)

// Palette is the resolved set of colors for one mode.
type Palette struct {
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// PaletteFor returns the colors for m.
func PaletteFor(m Mode) Palette {
	p := Palette{
		Primary:    colorPrimary,
		Accent:     colorPrimaryAlt,
		Background: colorBackground,
		Surface:    colorSurface,
		Text:       colorText,
		Muted:      colorTextMuted,
		Border:     colorBorder,
		Success:    colorSuccess,
		Warning:    colorWarning,
		Error:      colorError,
	}
	if m == Dark {
		p.Background = colorDarkBackground
		p.Surface = colorDarkSurface
		p.Text = colorDarkText
		p.Muted = colorDarkTextMuted
		p.Border = colorDarkBorder
	}
	return p
}

// TrafficLights returns the close, minimize and zoom colors in order.
func TrafficLights() []lipgloss.Color {
	return []lipgloss.Color{colorClose, colorMinimize, colorZoom}
}
