// Package engine implements the 2048 move rules: the line reducer, the move
// engine built on it, animation target mapping, terminal-state detection and
// the tile spawn policy. Everything here is pure except Spawner, which draws
// from an injected random source.
package engine

import (
	"strings"

	"github.com/vovakirdan/t2048/internal/grid"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all four directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection maps "up", "down", "left" or "right" (any case) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	case "left", "l":
		return DirLeft, true
	case "right", "r":
		return DirRight, true
	default:
		return 0, false
	}
}

// lineCells returns the cells of line i in travel order: index 0 is the edge
// tiles slide toward. Rows are lines for left/right, columns for up/down.
func lineCells(n int, dir Direction, i int) []grid.Cell {
	cells := make([]grid.Cell, n)
	for k := range n {
		switch dir {
		case DirLeft:
			cells[k] = grid.Cell{Row: i, Col: k}
		case DirRight:
			cells[k] = grid.Cell{Row: i, Col: n - 1 - k}
		case DirUp:
			cells[k] = grid.Cell{Row: k, Col: i}
		case DirDown:
			cells[k] = grid.Cell{Row: n - 1 - k, Col: i}
		}
	}
	return cells
}
