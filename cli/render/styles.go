package render

import "github.com/charmbracelet/lipgloss"

// Color palette for table output.
var (
	headerColor = lipgloss.Color("#7C3AED") // Purple
	labelColor  = lipgloss.Color("#6B7280") // Gray
)

// Styles for table output.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(headerColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(labelColor)
)

func (r *Renderer) styleHeader(s string) string {
	if r.noColor {
		return s
	}
	return headerStyle.Render(s)
}

func (r *Renderer) styleLabel(s string) string {
	if r.noColor {
		return s
	}
	return labelStyle.Render(s)
}
