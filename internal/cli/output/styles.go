package output

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1F4E8C", Dark: "#7AA2F7"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#8BC34A"}
	colorError   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFC107"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

// Styles are the text styles used by commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	// Code styles patterns and label text.
	Code lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer, so color output
// follows that renderer's color profile.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header1: r.NewStyle().Bold(true).Foreground(colorPrimary).Underline(true),
		Header2: r.NewStyle().Bold(true).Foreground(colorPrimary),
		Bold:    r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(colorSuccess),
		Error:   r.NewStyle().Foreground(colorError).Bold(true),
		Warning: r.NewStyle().Foreground(colorWarning),
		Muted:   r.NewStyle().Foreground(colorMuted),
		Code:    r.NewStyle().Foreground(colorPrimary),
	}
}
