package engine

import "github.com/vovakirdan/t2048/internal/grid"

// Rand is the random source the spawner draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// SpawnConfig holds the spawn probabilities.
type SpawnConfig struct {
	FourProbability       float64 // chance a new tile is 4 instead of 2
	SecondTileProbability float64 // chance a move spawns two tiles instead of one
	StartMin              int     // fewest tiles on a fresh board
	StartMax              int     // most tiles on a fresh board
}

// DefaultSpawnConfig returns the classic 90/10 policy with 1-3 starting tiles.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		FourProbability:       0.10,
		SecondTileProbability: 0.10,
		StartMin:              1,
		StartMax:              3,
	}
}

// Spawner decides how many tiles appear and where.
type Spawner struct {
	cfg SpawnConfig
	rng Rand
}

// NewSpawner creates a spawner. StartMin below 1 or StartMax below StartMin
// are clamped.
func NewSpawner(cfg SpawnConfig, rng Rand) *Spawner {
	if cfg.StartMin < 1 {
		cfg.StartMin = 1
	}
	if cfg.StartMax < cfg.StartMin {
		cfg.StartMax = cfg.StartMin
	}
	return &Spawner{cfg: cfg, rng: rng}
}

// MoveCount returns how many tiles to add after an accepted move.
func (s *Spawner) MoveCount() int {
	if s.rng.Float64() < s.cfg.SecondTileProbability {
		return 2
	}
	return 1
}

// StartCount returns how many tiles a fresh board starts with, uniform over
// [StartMin, StartMax].
func (s *Spawner) StartCount() int {
	return s.cfg.StartMin + s.rng.Intn(s.cfg.StartMax-s.cfg.StartMin+1)
}

// Value returns 4 with FourProbability, otherwise 2.
func (s *Spawner) Value() int {
	if s.rng.Float64() < s.cfg.FourProbability {
		return 4
	}
	return 2
}

// Place puts up to count new tiles on distinct empty cells of g and returns
// the cells it filled. It never touches an occupied cell and places fewer
// tiles when the board runs out of room.
func (s *Spawner) Place(g *grid.Grid, count int) []grid.Cell {
	empty := g.EmptyCells()
	if count > len(empty) {
		count = len(empty)
	}

	placed := make([]grid.Cell, 0, count)
	for range count {
		idx := s.rng.Intn(len(empty))
		cell := empty[idx]
		g.Set(cell.Row, cell.Col, s.Value())
		placed = append(placed, cell)

		empty[idx] = empty[len(empty)-1]
		empty = empty[:len(empty)-1]
	}
	return placed
}
