package engine

import "github.com/vovakirdan/t2048/internal/grid"

// LineResult is the outcome of reducing one line.
type LineResult struct {
	Line   []int // compacted line, same length as the input
	Points int   // sum of merged tile values
	Merged []int // result indices that hold a freshly merged tile
}

// ReduceLine slides and merges a single line toward index 0.
// Equal neighbours merge left-first and a tile merges at most once, so
// [2,2,2,2] becomes [4,4,0,0]. The input is not modified.
func ReduceLine(line []int) LineResult {
	tiles := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	result := LineResult{Line: make([]int, len(line))}
	writePos := 0

	for i := 0; i < len(tiles); i++ {
		if i+1 < len(tiles) && tiles[i] == tiles[i+1] {
			merged := tiles[i] * 2
			result.Line[writePos] = merged
			result.Points += merged
			result.Merged = append(result.Merged, writePos)
			i++ // the partner is consumed
		} else {
			result.Line[writePos] = tiles[i]
		}
		writePos++
	}

	return result
}

// MoveResult is the outcome of one move attempt.
type MoveResult struct {
	Changed    bool
	ScoreDelta int
	Merged     []grid.Cell // cells holding a merged tile, line by line in travel order
	Grid       grid.Grid   // post-move grid; equal to the input when !Changed
}

// Move slides every line of g in the given direction.
// g is never modified. A move that changes no line reports Changed=false with
// zero score and no merges.
func Move(g grid.Grid, dir Direction) MoveResult {
	if !dir.Valid() {
		return MoveResult{Grid: g.Clone()}
	}

	n := g.Size()
	next := g.Clone()
	res := MoveResult{}

	for i := range n {
		cells := lineCells(n, dir, i)

		line := make([]int, n)
		for k, c := range cells {
			line[k] = g.At(c)
		}

		reduced := ReduceLine(line)
		for k, c := range cells {
			if reduced.Line[k] != line[k] {
				res.Changed = true
			}
			next.Set(c.Row, c.Col, reduced.Line[k])
		}

		res.ScoreDelta += reduced.Points
		for _, k := range reduced.Merged {
			res.Merged = append(res.Merged, cells[k])
		}
	}

	res.Grid = next
	return res
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(g grid.Grid) bool {
	n := g.Size()
	for r := range n {
		for c := range n {
			if g.Get(r, c) == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any horizontally or vertically adjacent
// tiles hold the same non-zero value.
func HasPossibleMerge(g grid.Grid) bool {
	n := g.Size()
	for r := range n {
		for c := range n {
			val := g.Get(r, c)
			if val == 0 {
				continue
			}
			if c < n-1 && g.Get(r, c+1) == val {
				return true
			}
			if r < n-1 && g.Get(r+1, c) == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if some direction would change the grid.
func CanMove(g grid.Grid) bool {
	return HasEmptyCell(g) || HasPossibleMerge(g)
}

// IsTerminal reports whether no move can ever change g: every cell is
// occupied and no cell equals its right or bottom neighbour.
func IsTerminal(g grid.Grid) bool {
	return !CanMove(g)
}
