// Package tui renders the dashboard in the terminal.
//
// It polls the published view cell and shows the current reading, its
// timestamp, the history window and the fitted trend.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary  = lipgloss.Color("#2563EB") // Blue
	colorAccent   = lipgloss.Color("#FACC15") // Yellow
	colorWarm     = lipgloss.Color("#EF4444") // Red
	colorCold     = lipgloss.Color("#06B6D4") // Cyan
	colorText     = lipgloss.Color("#E5E7EB")
	colorMuted    = lipgloss.Color("#9CA3AF")
	colorBorder   = lipgloss.Color("#374151")
	colorSelected = lipgloss.Color("#1F2937")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)

	warmStyle   = lipgloss.NewStyle().Foreground(colorWarm)
	coldStyle   = lipgloss.NewStyle().Foreground(colorCold)
	steadyStyle = lipgloss.NewStyle().Foreground(colorText)
)

// tableStyles keeps the history table static: nothing is focused or selected.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorText).
		Background(colorSelected).
		Bold(false)
	return s
}

// captionStyle colours the trend caption by slope direction.
func captionStyle(slope float64) lipgloss.Style {
	switch {
	case slope > 0:
		return warmStyle
	case slope < 0:
		return coldStyle
	default:
		return steadyStyle
	}
}
