package grid

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromRowsValidation(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]int
		wantErr error
	}{
		{name: "valid", rows: [][]int{{2, 0}, {0, 4}}},
		{name: "no rows", rows: nil, wantErr: ErrEmpty},
		{name: "ragged", rows: [][]int{{2, 0}, {0}}, wantErr: ErrNotSquare},
		{name: "not square", rows: [][]int{{2, 0, 0}, {0, 4, 0}}, wantErr: ErrNotSquare},
		{name: "odd value", rows: [][]int{{3, 0}, {0, 0}}, wantErr: ErrInvalidTile},
		{name: "one", rows: [][]int{{1, 0}, {0, 0}}, wantErr: ErrInvalidTile},
		{name: "negative", rows: [][]int{{-2, 0}, {0, 0}}, wantErr: ErrInvalidTile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.rows)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("FromRows() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("FromRows() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	g := MustFromRows([][]int{{2, 0}, {0, 0}})
	c := g.Clone()
	c.Set(1, 1, 4)

	if g.Get(1, 1) != 0 {
		t.Error("Set on clone changed the original")
	}
	if g.Equal(c) {
		t.Error("grids should differ after Set on clone")
	}
}

func TestRowsIsCopy(t *testing.T) {
	g := MustFromRows([][]int{{2, 4}, {8, 16}})
	rows := g.Rows()
	rows[0][0] = 1024

	if g.Get(0, 0) != 2 {
		t.Error("mutating Rows() output changed the grid")
	}
}

func TestQueries(t *testing.T) {
	g := MustFromRows([][]int{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	})

	if got := len(g.EmptyCells()); got != 8 {
		t.Errorf("EmptyCells count = %d, want 8", got)
	}
	if got := g.EmptyCells()[0]; got != (Cell{Row: 0, Col: 1}) {
		t.Errorf("first empty cell = %v, want (0,1)", got)
	}
	if got := g.MaxTile(); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
	if got := g.Sum(); got != 2+8+64+256+512+2048+16+64 {
		t.Errorf("Sum = %d", got)
	}
	if g.Get(-1, 0) != 0 || g.Get(0, 4) != 0 {
		t.Error("out-of-range Get should return 0")
	}

	for _, c := range []Cell{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if g.Contains(c) {
			t.Errorf("Contains(%v) = true, want false", c)
		}
		before := g.Clone()
		g.Set(c.Row, c.Col, 2)
		if !g.Equal(before) {
			t.Errorf("Set(%v) outside the board changed it", c)
		}
	}
	if !g.Contains(Cell{Row: 3, Col: 3}) {
		t.Error("Contains(3,3) = false on a 4x4 board")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := MustFromRows([][]int{{2, 2, 0, 0}, {0, 0, 0, 0}, {0, 0, 4, 0}, {0, 0, 0, 2048}})

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[[2,2,0,0],[0,0,0,0],[0,0,4,0],[0,0,0,2048]]" {
		t.Errorf("Marshal = %s", data)
	}

	var back Grid
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(g) {
		t.Errorf("round trip mismatch:\n%s\nvs\n%s", back, g)
	}

	if err := json.Unmarshal([]byte("[[2,3],[0,0]]"), &back); !errors.Is(err, ErrInvalidTile) {
		t.Errorf("Unmarshal invalid tile error = %v", err)
	}
}

func TestString(t *testing.T) {
	g := MustFromRows([][]int{{2, 0}, {128, 4}})
	want := "  2   .\n128   4"
	if diff := cmp.Diff(want, g.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}
