package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/leaderboard"
)

// ScoreboardKeyMap defines the key bindings for the leaderboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "tab", "b"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the leaderboard as a table. It runs either inside the
// game model or as its own program.
type ScoreboardModel struct {
	entries    []leaderboard.Entry
	best       int
	highlight  int // index of the entry just submitted, or -1
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	standalone bool
	closed     bool
	quitting   bool
}

// NewScoreboardModel creates a leaderboard view.
func NewScoreboardModel(entries []leaderboard.Entry, best, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		best:      best,
		highlight: -1,
		help:      h,
		keys:      DefaultScoreboardKeyMap(),
		width:     width,
		height:    height,
	}
	m.table = m.createTable()
	m.SetEntries(entries, -1)
	return m
}

// createTable creates a table sized for the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: leaderboard.MaxNameLength},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 12},
	}

	// Shrink the name column on narrow terminals.
	avail := m.width - 8
	if fixed := 6 + 10 + 12 + 8; avail-fixed < columns[1].Width {
		columns[1].Width = max(avail-fixed, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(min(m.height-8, leaderboard.Capacity+1), 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// SetEntries replaces the rows. highlight selects the row of a fresh
// submission; -1 puts the cursor on the top score.
func (m *ScoreboardModel) SetEntries(entries []leaderboard.Entry, highlight int) {
	m.entries = append([]leaderboard.Entry(nil), entries...)
	m.highlight = highlight
	m.updateTableRows()
}

// SetBest updates the best score shown under the table.
func (m *ScoreboardModel) SetBest(best int) {
	m.best = best
}

// updateTableRows updates the table with current entries.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			strconv.Itoa(e.Score),
			e.Date,
		}
	}
	m.table.SetRows(rows)

	if m.highlight >= 0 && m.highlight < len(rows) {
		m.table.SetCursor(m.highlight)
		return
	}
	m.table.GotoTop()
}

// Open resets the closed flag so an embedded view can be shown again.
func (m *ScoreboardModel) Open() {
	m.closed = false
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.closed = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Resize rebuilds the table for a new window size.
func (m *ScoreboardModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table = m.createTable()
	m.updateTableRows()
	m.help.Width = width
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))
	b.WriteString("\n")

	bestStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	b.WriteString(centerText(bestStyle.Render(fmt.Sprintf("Best: %d", m.best)), m.width))
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nFinish a game to set a high score!")
	}

	return m.table.View()
}

// Closed reports whether the user left the view.
func (m ScoreboardModel) Closed() bool {
	return m.closed
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the leaderboard as its own program.
func RunScoreboard(entries []leaderboard.Entry, best, width, height int) error {
	model := NewScoreboardModel(entries, best, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
