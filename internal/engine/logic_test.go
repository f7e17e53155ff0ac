package engine

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vovakirdan/t2048/internal/grid"
)

func TestReduceLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		points   int
		merged   []int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			points:   4,
			merged:   []int{0},
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			points:   4,
			merged:   []int{0},
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			points:   8,
			merged:   []int{0, 1},
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			points:   4,
			merged:   []int{0},
		},
		{
			name:     "merge across gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			points:   4,
			merged:   []int{0},
		},
		{
			name:     "second pair merges into slot one",
			input:    []int{4, 2, 2, 0},
			expected: []int{4, 4, 0, 0},
			points:   4,
			merged:   []int{1},
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
		},
		{
			name:     "three tiles short line",
			input:    []int{2, 2, 2},
			expected: []int{4, 2, 0},
			points:   4,
			merged:   []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReduceLine(tt.input)
			if diff := cmp.Diff(tt.expected, got.Line); diff != "" {
				t.Errorf("ReduceLine(%v) line mismatch (-want +got):\n%s", tt.input, diff)
			}
			if got.Points != tt.points {
				t.Errorf("ReduceLine(%v) points = %d, want %d", tt.input, got.Points, tt.points)
			}
			if diff := cmp.Diff(tt.merged, got.Merged, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ReduceLine(%v) merged mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestReduceLineDoesNotMutateInput(t *testing.T) {
	in := []int{2, 2, 0, 4}
	ReduceLine(in)
	if diff := cmp.Diff([]int{2, 2, 0, 4}, in); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestOneMergePerTilePerMove(t *testing.T) {
	first := ReduceLine([]int{2, 2, 2, 2})
	if diff := cmp.Diff([]int{4, 4, 0, 0}, first.Line); diff != "" {
		t.Fatalf("first pass mismatch (-want +got):\n%s", diff)
	}

	second := ReduceLine(first.Line)
	if diff := cmp.Diff([]int{8, 0, 0, 0}, second.Line); diff != "" {
		t.Errorf("second pass mismatch (-want +got):\n%s", diff)
	}

	row := ReduceLine([]int{4, 4, 4, 4})
	if row.Points != 16 {
		t.Errorf("[4 4 4 4] points = %d, want 16 (not 24)", row.Points)
	}
}

func TestMoveLeft(t *testing.T) {
	board := grid.MustFromRows([][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
	expected := grid.MustFromRows([][]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	})

	res := Move(board, DirLeft)

	if !res.Grid.Equal(expected) {
		t.Errorf("Move left: got\n%s\nwant\n%s", res.Grid, expected)
	}
	if !res.Changed {
		t.Error("Move left should indicate board changed")
	}
	if res.ScoreDelta != 4+8+8 {
		t.Errorf("Move left score = %d, want 20", res.ScoreDelta)
	}
	wantMerged := []grid.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 2, Col: 1}}
	if diff := cmp.Diff(wantMerged, res.Merged); diff != "" {
		t.Errorf("merged mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveRight(t *testing.T) {
	board := grid.MustFromRows([][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
	expected := grid.MustFromRows([][]int{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	})

	res := Move(board, DirRight)

	if !res.Grid.Equal(expected) {
		t.Errorf("Move right: got\n%s\nwant\n%s", res.Grid, expected)
	}
	wantMerged := []grid.Cell{{Row: 0, Col: 3}, {Row: 1, Col: 3}, {Row: 2, Col: 3}, {Row: 2, Col: 2}}
	if diff := cmp.Diff(wantMerged, res.Merged); diff != "" {
		t.Errorf("merged mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveUp(t *testing.T) {
	board := grid.MustFromRows([][]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})
	expected := grid.MustFromRows([][]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Move(board, DirUp)

	if !res.Grid.Equal(expected) {
		t.Errorf("Move up: got\n%s\nwant\n%s", res.Grid, expected)
	}
	if !res.Changed {
		t.Error("Move up should indicate board changed")
	}
}

func TestMoveDown(t *testing.T) {
	board := grid.MustFromRows([][]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})
	expected := grid.MustFromRows([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	})

	res := Move(board, DirDown)

	if !res.Grid.Equal(expected) {
		t.Errorf("Move down: got\n%s\nwant\n%s", res.Grid, expected)
	}
	wantMerged := []grid.Cell{{Row: 3, Col: 0}, {Row: 3, Col: 1}, {Row: 3, Col: 2}, {Row: 2, Col: 2}}
	if diff := cmp.Diff(wantMerged, res.Merged); diff != "" {
		t.Errorf("merged mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveEndToEnd(t *testing.T) {
	t.Run("left merge at origin", func(t *testing.T) {
		board := grid.MustFromRows([][]int{
			{2, 2, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		})
		res := Move(board, DirLeft)

		if !res.Changed {
			t.Fatal("expected changed=true")
		}
		if diff := cmp.Diff([]int{4, 0, 0, 0}, res.Grid.Rows()[0]); diff != "" {
			t.Errorf("row 0 mismatch (-want +got):\n%s", diff)
		}
		if res.ScoreDelta != 4 {
			t.Errorf("ScoreDelta = %d, want 4", res.ScoreDelta)
		}
		if diff := cmp.Diff([]grid.Cell{{Row: 0, Col: 0}}, res.Merged); diff != "" {
			t.Errorf("merged mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("right merge mirrors index", func(t *testing.T) {
		board := grid.MustFromRows([][]int{
			{2, 0, 0, 2},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		})
		res := Move(board, DirRight)

		if diff := cmp.Diff([]int{0, 0, 0, 4}, res.Grid.Rows()[0]); diff != "" {
			t.Errorf("row 0 mismatch (-want +got):\n%s", diff)
		}
		if res.ScoreDelta != 4 {
			t.Errorf("ScoreDelta = %d, want 4", res.ScoreDelta)
		}
		if diff := cmp.Diff([]grid.Cell{{Row: 0, Col: 3}}, res.Merged); diff != "" {
			t.Errorf("merged mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("locked board rejects every direction", func(t *testing.T) {
		board := grid.MustFromRows([][]int{
			{2, 4, 8, 16},
			{32, 64, 128, 256},
			{512, 1024, 2048, 4096},
			{8192, 16384, 32768, 65536},
		})
		for _, dir := range Directions {
			res := Move(board, dir)
			if res.Changed {
				t.Errorf("%s: expected changed=false", dir)
			}
		}
	})
}

func TestNoChangeLeavesGridIdentical(t *testing.T) {
	board := grid.MustFromRows([][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := board.Clone()

	res := Move(board, DirLeft)

	if res.Changed {
		t.Error("left on left-aligned tiles should not change the board")
	}
	if res.ScoreDelta != 0 || len(res.Merged) != 0 {
		t.Errorf("no-op move reported score %d, merges %v", res.ScoreDelta, res.Merged)
	}
	if !res.Grid.Equal(before) || !board.Equal(before) {
		t.Error("no-op move altered the grid")
	}
}

func TestMoveDoesNotMutateInput(t *testing.T) {
	board := grid.MustFromRows([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := board.Clone()
	Move(board, DirLeft)
	if !board.Equal(before) {
		t.Errorf("Move mutated its input:\n%s", board)
	}
}

func TestMoveConservesTileMass(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 200 {
		board := randomGrid(rng, 4)
		for _, dir := range Directions {
			res := Move(board, dir)
			if res.Grid.Sum() != board.Sum() {
				t.Fatalf("%s changed tile sum %d -> %d on\n%s", dir, board.Sum(), res.Grid.Sum(), board)
			}
			merged := 0
			for _, c := range res.Merged {
				merged += res.Grid.At(c)
			}
			if merged != res.ScoreDelta {
				t.Fatalf("%s: score delta %d != merged tile total %d", dir, res.ScoreDelta, merged)
			}
		}
	}
}

func TestInvalidDirection(t *testing.T) {
	board := grid.MustFromRows([][]int{{2, 2}, {0, 0}})
	res := Move(board, Direction(42))
	if res.Changed || !res.Grid.Equal(board) {
		t.Error("invalid direction should be a no-op")
	}
	if Targets(board, Direction(-1)) != nil {
		t.Error("invalid direction should have no targets")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"up", DirUp, true},
		{"DOWN", DirDown, true},
		{" left ", DirLeft, true},
		{"r", DirRight, true},
		{"north", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		want bool
	}{
		{
			name: "full board without pairs",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: true,
		},
		{
			name: "horizontal pair",
			rows: [][]int{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
		},
		{
			name: "vertical pair in last column",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 4096},
			},
		},
		{
			name: "one empty cell",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4096},
				{8192, 16384, 32768, 65536},
			},
		},
		{
			name: "checkerboard",
			rows: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.MustFromRows(tt.rows)
			if got := IsTerminal(g); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
			anyChange := false
			for _, dir := range Directions {
				if Move(g, dir).Changed {
					anyChange = true
				}
			}
			if anyChange == tt.want {
				t.Errorf("IsTerminal() = %v but some move changed = %v", tt.want, anyChange)
			}
		})
	}
}

// randomGrid fills an n×n grid with a mix of empty cells and small tiles.
func randomGrid(rng *rand.Rand, n int) grid.Grid {
	values := []int{0, 0, 0, 2, 2, 4, 4, 8}
	g := grid.New(n)
	for r := range n {
		for c := range n {
			g.Set(r, c, values[rng.Intn(len(values))])
		}
	}
	return g
}
