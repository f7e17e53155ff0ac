// Package grid holds the N×N tile matrix the game is played on.
// It is pure data: construction, copy, compare and a few read-only queries.
package grid

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSize is the board dimension used by the game.
const DefaultSize = 4

var (
	ErrEmpty       = errors.New("grid: no rows")
	ErrNotSquare   = errors.New("grid: rows are not square")
	ErrInvalidTile = errors.New("grid: tile is not a power of two")
)

// Cell is a 0-indexed (row, column) coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is an N×N matrix of tile values, 0 meaning empty.
// Copies of a Grid value share storage; use Clone to snapshot.
type Grid struct {
	n     int
	cells []int // row-major
}

// New returns an empty n×n grid.
func New(n int) Grid {
	if n < 1 {
		n = DefaultSize
	}
	return Grid{n: n, cells: make([]int, n*n)}
}

// FromRows builds a grid from a square matrix, validating every tile.
func FromRows(rows [][]int) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, ErrEmpty
	}
	n := len(rows)
	g := New(n)
	for r, row := range rows {
		if len(row) != n {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, r, len(row), n)
		}
		for c, v := range row {
			if !ValidTile(v) {
				return Grid{}, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTile, v, r, c)
			}
			g.cells[r*n+c] = v
		}
	}
	return g, nil
}

// MustFromRows is FromRows for literals known to be valid.
func MustFromRows(rows [][]int) Grid {
	g, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// ValidTile reports whether v may appear on a board: 0 or a power of two >= 2.
func ValidTile(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// Size returns N.
func (g Grid) Size() int {
	return g.n
}

// Contains reports whether c lies on the board.
func (g Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.n && c.Col >= 0 && c.Col < g.n
}

// Get returns the value at (row, col), or 0 outside the board.
func (g Grid) Get(row, col int) int {
	if !g.Contains(Cell{Row: row, Col: col}) {
		return 0
	}
	return g.cells[row*g.n+col]
}

// At is Get for a Cell.
func (g Grid) At(c Cell) int {
	return g.Get(c.Row, c.Col)
}

// Set writes v at (row, col). Out-of-range coordinates are ignored.
func (g *Grid) Set(row, col, v int) {
	if !g.Contains(Cell{Row: row, Col: col}) {
		return
	}
	g.cells[row*g.n+col] = v
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return Grid{n: g.n, cells: cells}
}

// Equal reports whether both grids have the same size and values.
func (g Grid) Equal(o Grid) bool {
	if g.n != o.n {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the grid as a freshly allocated matrix.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.n)
	for r := range g.n {
		rows[r] = make([]int, g.n)
		copy(rows[r], g.cells[r*g.n:(r+1)*g.n])
	}
	return rows
}

// EmptyCells returns the empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range g.n {
		for c := range g.n {
			if g.cells[r*g.n+c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Sum returns the total of all tile values.
func (g Grid) Sum() int {
	total := 0
	for _, v := range g.cells {
		total += v
	}
	return total
}

// MaxTile returns the highest tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, v := range g.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// String renders the grid as right-aligned rows, '.' for empty cells.
func (g Grid) String() string {
	width := len(strconv.Itoa(g.MaxTile()))
	var sb strings.Builder
	for r := range g.n {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.n {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := g.cells[r*g.n+c]
			s := "."
			if v != 0 {
				s = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(s)))
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// MarshalJSON encodes the grid as an N×N integer matrix.
func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

// UnmarshalJSON decodes an N×N matrix, applying FromRows validation.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := FromRows(rows)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
