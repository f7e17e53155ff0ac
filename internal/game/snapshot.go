package game

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Score   int
	Best    int
	Board   [][]int
	MaxTile int
	Moves   int
	CanUndo bool
	Phase   string // "none", "slide" or "pop"
	State   GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.sess.State()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case st.GameOver:
		state = StateGameOver
	case g.anim.phase == phaseSlide:
		state = StateAnimating
	}

	return Snapshot{
		Tick:    g.tick,
		Score:   st.Score,
		Best:    st.Best,
		Board:   st.Grid.Rows(),
		MaxTile: st.Grid.MaxTile(),
		Moves:   g.sess.Moves(),
		CanUndo: st.CanUndo(),
		Phase:   g.anim.phase.String(),
		State:   state,
	}
}
