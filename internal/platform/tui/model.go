package tui

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/leaderboard"
	"github.com/vovakirdan/t2048/internal/session"
)

type mode int

const (
	modeGame mode = iota
	modePrompt
	modeScores
)

// Options configures the front end.
type Options struct {
	Runtime        core.RuntimeConfig
	SwipeThreshold int
	Logger         *log.Logger
}

// Model is the Bubble Tea model for playing 2048.
type Model struct {
	game       *game.Game
	sess       *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	swipe      *SwipeTracker
	log        *log.Logger
	inputFrame core.InputFrame

	mode    mode
	prompt  namePrompt
	scores  ScoreboardModel
	skipped uuid.UUID // game whose name prompt was dismissed

	quitting bool
}

// NewModel creates a Bubble Tea model for g.
func NewModel(g *game.Game, opts Options) Model {
	cfg := opts.Runtime
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sess := g.Session()
	g.Reset(cfg)

	return Model{
		game:       g,
		sess:       sess,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       NewKeyMapper(),
		swipe:      NewSwipeTracker(opts.SwipeThreshold),
		log:        logger,
		inputFrame: core.NewInputFrame(),
		prompt:     newNamePrompt(),
		scores:     NewScoreboardModel(sess.Leaderboard(), sess.State().Best, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.mode == modeGame {
			if a := m.swipe.Mouse(msg); a != core.ActionNone {
				m.inputFrame.Set(a)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.mode == modePrompt {
		return m, m.prompt.update(msg)
	}
	return m, nil
}

// handleKey routes a key to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modePrompt:
		return m.handlePromptKey(msg)
	case modeScores:
		return m.handleScoresKey(msg)
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		return m.quit()
	}
	switch action {
	case core.ActionNone:
	case core.ActionScores:
		m.openScores(-1)
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handlePromptKey sends typing to the name input. Only ctrl+c quits here so
// names may contain q.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	switch action, _ := m.keys.MapKey(msg); action {
	case core.ActionBack:
		m.skipped = m.sess.GameID()
		m.prompt.close()
		m.mode = modeGame
		return m, nil
	case core.ActionConfirm:
		return m.submit()
	}
	return m, m.prompt.update(msg)
}

// submit sends the prompt's name to the leaderboard and shows the result.
func (m Model) submit() (tea.Model, tea.Cmd) {
	entry, err := m.sess.SubmitScore(m.prompt.value())
	switch {
	case errors.Is(err, session.ErrEmptyName):
		m.prompt.err = "Name cannot be empty"
		return m, nil
	case err != nil:
		m.log.Warn("score not submitted", "err", err)
		m.prompt.close()
		m.mode = modeGame
		return m, nil
	}

	m.prompt.close()
	m.openScores(indexOf(m.sess.Leaderboard(), entry))
	return m, nil
}

// indexOf finds a fresh entry. Equal scores keep insertion order, so the
// newest match is the last one.
func indexOf(entries []leaderboard.Entry, e leaderboard.Entry) int {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i] == e {
			return i
		}
	}
	return -1
}

func (m Model) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	updated, cmd := m.scores.Update(msg)
	m.scores = updated.(ScoreboardModel)
	if m.scores.IsQuitting() {
		return m.quit()
	}
	if m.scores.Closed() {
		m.mode = modeGame
	}
	return m, cmd
}

func (m *Model) openScores(highlight int) {
	m.scores.SetEntries(m.sess.Leaderboard(), highlight)
	m.scores.SetBest(m.sess.State().Best)
	m.scores.Open()
	m.swipe.Cancel()
	m.mode = modeScores
}

// quit stops the program after committing any move still sliding.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.game.Flush()
	m.quitting = true
	return m, tea.Quit
}

// handleResize processes window resize events. The game keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	m.scores.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	if result.Quit {
		return m.quit()
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.wantsName(result.State) {
		m.mode = modePrompt
		m.swipe.Cancel()
		cmds = append(cmds, m.prompt.open(result.State.Score, m.sess.Rank()))
	}
	return m, tea.Batch(cmds...)
}

// wantsName reports whether a finished game should ask for a name.
func (m Model) wantsName(st core.GameState) bool {
	return m.mode == modeGame &&
		st.GameOver &&
		st.Score > 0 &&
		!m.sess.Submitted() &&
		m.sess.Qualifies() &&
		m.skipped != m.sess.GameID()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modePrompt:
		return m.prompt.view(m.config.ScreenW, m.config.ScreenH)
	case modeScores:
		return m.scores.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for g.
func Run(g *game.Game, opts Options) error {
	model := NewModel(g, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
