package game

import (
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/grid"
)

// phase represents the current phase of animation.
type phase int

const (
	phaseNone phase = iota
	phaseSlide
	phasePop
)

// String returns the phase name used in snapshots.
func (p phase) String() string {
	switch p {
	case phaseSlide:
		return "slide"
	case phasePop:
		return "pop"
	default:
		return "none"
	}
}

// tileAnimation is one tile travelling during a slide.
type tileAnimation struct {
	Value  int
	From   grid.Cell
	To     grid.Cell
	Merged bool
}

// animation tracks the running slide or pop.
type animation struct {
	phase    phase
	ticks    int
	duration int

	tiles   []tileAnimation // slide
	spawned []grid.Cell     // pop
	merged  []grid.Cell     // pop
}

// startSlide initializes slide animations from the move's target map.
func (a *animation) startSlide(moves []engine.TileMove, duration int) {
	*a = animation{phase: phaseSlide, duration: duration}
	for _, m := range moves {
		a.tiles = append(a.tiles, tileAnimation{
			Value:  m.Value,
			From:   m.From,
			To:     m.To,
			Merged: m.Merged,
		})
	}
}

// startPop highlights the tiles a committed move spawned or merged.
func (a *animation) startPop(spawned, merged []grid.Cell, duration int) {
	*a = animation{
		phase:    phasePop,
		duration: duration,
		spawned:  append([]grid.Cell(nil), spawned...),
		merged:   append([]grid.Cell(nil), merged...),
	}
}

// step advances the animation by one tick.
// Returns true if the animation is still in progress.
func (a *animation) step() bool {
	if a.phase == phaseNone {
		return false
	}
	a.ticks++
	return a.ticks < a.duration
}

// progress returns how far the current phase is, from 0 to 1.
func (a *animation) progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	p := float64(a.ticks) / float64(a.duration)
	if p > 1 {
		p = 1
	}
	return p
}

// isSpawned reports whether c is a tile popping in.
func (a *animation) isSpawned(c grid.Cell) bool {
	for _, s := range a.spawned {
		if s == c {
			return true
		}
	}
	return false
}

// isMerged reports whether c holds a freshly merged tile.
func (a *animation) isMerged(c grid.Cell) bool {
	for _, m := range a.merged {
		if m == c {
			return true
		}
	}
	return false
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
