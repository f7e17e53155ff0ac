package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/leaderboard"
)

// namePrompt asks for a leaderboard name after a qualifying game.
type namePrompt struct {
	input textinput.Model
	score int
	rank  int
	err   string
}

func newNamePrompt() namePrompt {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "your name"
	ti.CharLimit = leaderboard.MaxNameLength
	ti.Width = leaderboard.MaxNameLength
	return namePrompt{input: ti}
}

// open clears the prompt for a new score and focuses the input.
func (p *namePrompt) open(score, rank int) tea.Cmd {
	p.input.Reset()
	p.score = score
	p.rank = rank
	p.err = ""
	return p.input.Focus()
}

func (p *namePrompt) close() {
	p.input.Blur()
}

func (p *namePrompt) value() string {
	return p.input.Value()
}

func (p *namePrompt) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

var (
	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("13")).
			Padding(1, 3)
	promptTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	promptErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (p namePrompt) view(width, height int) string {
	lines := []string{
		promptTitleStyle.Render("GAME OVER"),
		"",
		fmt.Sprintf("Score: %d  Rank: #%d", p.score, p.rank),
		"New high score! Enter your name:",
		"",
		p.input.View(),
	}
	if p.err != "" {
		lines = append(lines, promptErrStyle.Render(p.err))
	}
	lines = append(lines, "", promptHintStyle.Render("Enter: submit  Esc: skip"))

	box := promptBoxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
