package engine

import "github.com/vovakirdan/t2048/internal/grid"

// TileMove describes where one pre-move tile travels during the slide.
type TileMove struct {
	From   grid.Cell
	To     grid.Cell
	Value  int  // value before the move
	Merged bool // this tile and one other converge on To
}

// Targets maps every occupied cell of the pre-move grid to the cell it slides
// to. Both tiles of a merge share the same destination. Entries are ordered
// row-major by source cell regardless of direction, which is the order a
// renderer enumerates the old board in.
func Targets(g grid.Grid, dir Direction) []TileMove {
	if !dir.Valid() {
		return nil
	}

	n := g.Size()
	dest := make(map[grid.Cell]TileMove, n*n)

	for i := range n {
		cells := lineCells(n, dir, i)

		var occupied []grid.Cell
		for _, c := range cells {
			if g.At(c) != 0 {
				occupied = append(occupied, c)
			}
		}

		slot := 0
		for j := 0; j < len(occupied); j++ {
			src := occupied[j]
			to := cells[slot]
			if j+1 < len(occupied) && g.At(src) == g.At(occupied[j+1]) {
				partner := occupied[j+1]
				dest[src] = TileMove{From: src, To: to, Value: g.At(src), Merged: true}
				dest[partner] = TileMove{From: partner, To: to, Value: g.At(partner), Merged: true}
				j++
			} else {
				dest[src] = TileMove{From: src, To: to, Value: g.At(src)}
			}
			slot++
		}
	}

	moves := make([]TileMove, 0, len(dest))
	for r := range n {
		for c := range n {
			if m, ok := dest[grid.Cell{Row: r, Col: c}]; ok {
				moves = append(moves, m)
			}
		}
	}
	return moves
}
