// Package game drives a session from per-tick input frames. It owns the
// slide and pop animations that run between the two phases of a move and
// renders the board into a core.Screen.
package game

import (
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/session"
)

// Options configures a Game.
type Options struct {
	SlideTicks int // 0 commits every move on the tick it is accepted
	PopTicks   int
}

// Game implements the interactive 2048 loop on top of a session.
type Game struct {
	sess *session.Session
	tick uint64

	slideTicks int
	popTicks   int

	// Screen dimensions
	screenW int
	screenH int

	anim      animation
	lastDelta int
	newBest   bool
	status    string
	tooSmall  bool
}

// New creates a game for sess.
func New(sess *session.Session, opts Options) *Game {
	if opts.SlideTicks < 0 {
		opts.SlideTicks = 0
	}
	if opts.PopTicks < 0 {
		opts.PopTicks = 0
	}
	return &Game{
		sess:       sess,
		slideTicks: opts.SlideTicks,
		popTicks:   opts.PopTicks,
	}
}

// Session returns the underlying session.
func (g *Game) Session() *session.Session {
	return g.sess
}

// Reset applies the runtime configuration without touching the session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.anim = animation{}
	g.status = ""
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	bw, bh := g.boardSize()
	g.tooSmall = g.screenW < bw+2 || g.screenH < hudHeight+bh+1
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionQuit) {
		g.Flush()
		return core.StepResult{State: g.State(), Quit: true}
	}

	g.advance()

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionNewGame) && g.sess.NewGame() {
		g.anim = animation{}
		g.lastDelta = 0
		g.newBest = false
		g.status = "New game"
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUndo) {
		if g.sess.Undo() {
			g.anim = animation{}
			g.lastDelta = 0
			g.status = "Move undone"
		} else if !g.sess.Pending() {
			g.status = "Nothing to undo"
		}
		return core.StepResult{State: g.State()}
	}

	if dir, ok := directionOf(in); ok {
		g.tryMove(dir)
	}

	return core.StepResult{State: g.State()}
}

// directionOf returns the first move action in the frame.
func directionOf(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

// tryMove asks the session for a move. While a slide is running the session
// rejects it, which is how input is ignored mid-animation.
func (g *Game) tryMove(dir engine.Direction) {
	p, ok := g.sess.Begin(dir)
	if !ok {
		return
	}
	g.status = ""
	g.lastDelta = p.Result.ScoreDelta

	if g.slideTicks == 0 {
		g.commit()
		return
	}
	g.anim.startSlide(p.Moves, g.slideTicks)
}

// advance moves the running animation one tick forward and commits the
// pending move when its slide ends.
func (g *Game) advance() {
	if g.anim.step() {
		return
	}
	if g.anim.phase == phaseSlide {
		g.commit()
		return
	}
	g.anim = animation{}
}

// Flush commits a move whose slide is still running. Call it before the
// loop stops so an accepted move is never lost.
func (g *Game) Flush() {
	if g.sess.Pending() {
		g.commit()
	}
}

// commit runs the second phase of the pending move.
func (g *Game) commit() {
	c, ok := g.sess.Commit()
	if !ok {
		g.anim = animation{}
		return
	}
	g.newBest = c.NewBest
	if c.GameOver {
		g.status = ""
	}
	if g.popTicks > 0 && (len(c.Spawned) > 0 || len(c.Merged) > 0) {
		g.anim.startPop(c.Spawned, c.Merged, g.popTicks)
		return
	}
	g.anim = animation{}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.sess.State()
	return core.GameState{
		Score:     st.Score,
		Best:      st.Best,
		GameOver:  st.GameOver,
		Animating: g.anim.phase == phaseSlide,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | Drag: Swipe | U: Undo | N: New | Tab: Scores | Q: Quit"
}
