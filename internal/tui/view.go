package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"AntarcticExplorer/internal/view"
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	v := m.current
	if v == nil || v.Latest == nil {
		b.WriteString(mutedStyle.Render("Waiting for the first reading..."))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("q: quit"))
		return b.String()
	}

	current := boxStyle.Render(
		mutedStyle.Render("Current Temperature") + "\n" +
			valueStyle.Render(view.DisplayValue(v.Latest.Value)) + "\n" +
			m.renderCaption(),
	)
	stamp := boxStyle.Render(
		mutedStyle.Render("Current Date and Time") + "\n" +
			v.Latest.Timestamp + "\n" +
			mutedStyle.Render(fmt.Sprintf("tick %d, updated %s", v.Tick, humanize.Time(v.BuiltAt))),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, current, " ", stamp))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Most Recent Readings"))
	b.WriteString("\n")
	b.WriteString(m.history.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderTrend())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"window min %.1f  mean %.2f  max %.1f", v.Stats.Min, v.Stats.Mean, v.Stats.Max)))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("q: quit"))
	return b.String()
}

func (m Model) renderCaption() string {
	caption := view.Caption(m.current)
	if !m.current.HasTrend() {
		return mutedStyle.Render(caption)
	}
	return captionStyle(m.current.Trend.Slope).Render(caption)
}

func (m Model) renderTrend() string {
	t := m.current.Trend
	if t == nil {
		return mutedStyle.Render("trend line appears after two readings")
	}
	return captionStyle(t.Slope).Render(fmt.Sprintf(
		"trend %+.3f °C per reading, intercept %.2f °C", t.Slope, t.Intercept))
}
