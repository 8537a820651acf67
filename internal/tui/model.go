package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"AntarcticExplorer/internal/model"
	"AntarcticExplorer/internal/view"
)

// DefaultRefresh is how often the model re-reads the published view.
const DefaultRefresh = 250 * time.Millisecond

// TickMsg is sent periodically to re-read the published view.
type TickMsg time.Time

// ViewSource provides the most recently published view, or nil before the
// first tick.
type ViewSource interface {
	Load() *model.DerivedView
}

// Config holds TUI configuration.
type Config struct {
	Title    string
	Capacity int
	Refresh  time.Duration
	Source   ViewSource
}

// Model is the bubbletea model for the terminal dashboard.
type Model struct {
	title    string
	refresh  time.Duration
	source   ViewSource
	current  *model.DerivedView
	history  table.Model
	width    int
	height   int
	quitting bool
}

// New creates a terminal dashboard reading from cfg.Source.
func New(cfg Config) Model {
	refresh := cfg.Refresh
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 5
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Timestamp", Width: 21},
			{Title: "Temp (°C)", Width: 10},
			{Title: "Trend", Width: 8},
		}),
		table.WithHeight(capacity+3),
		table.WithFocused(false),
		table.WithStyles(tableStyles()),
	)
	return Model{
		title:   cfg.Title,
		refresh: refresh,
		source:  cfg.Source,
		history: t,
		width:   80,
		height:  24,
	}
}

// Init starts polling.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if m.source != nil {
			if v := m.source.Load(); v != nil && v != m.current {
				m.current = v
				m.history.SetRows(historyRows(v))
			}
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// historyRows lists the window oldest first, with the fitted value beside
// each reading when a trend exists.
func historyRows(v *model.DerivedView) []table.Row {
	rows := make([]table.Row, len(v.Rows))
	for i, s := range v.Rows {
		fitted := "-"
		if v.HasTrend() {
			fitted = fmt.Sprintf("%.2f", v.Fitted[i])
		}
		rows[i] = table.Row{s.Timestamp, fmt.Sprintf("%.1f", s.Value), fitted}
	}
	return rows
}

// Current returns the view the model last rendered from.
func (m Model) Current() *model.DerivedView {
	return m.current
}

var _ ViewSource = (*view.Cell)(nil)
