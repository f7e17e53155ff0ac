package game

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/grid"
)

const (
	cellWidth  = 7 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 4
)

// boardSize returns the board's width and height in screen cells.
func (g *Game) boardSize() (int, int) {
	n := g.sess.State().Grid.Size()
	return n*cellWidth + 1, n*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	st := g.sess.State()
	n := st.Grid.Size()
	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)
	g.renderGridLines(dst, boardX, boardY, n)

	if g.anim.phase == phaseSlide {
		g.renderSlide(dst, boardX, boardY)
	} else {
		g.renderTiles(dst, boardX, boardY, st.Grid)
	}

	if st.GameOver {
		cx, cy := core.NewRect(boardX, boardY, boardW, boardH).Center()
		drawOverlay(dst, cx, cy,
			"GAME OVER",
			fmt.Sprintf("Score: %d  Max tile: %d", st.Score, st.Grid.MaxTile()),
			"N: new game")
	}

	if y := boardY + boardH + 1; y < g.screenH {
		controls := g.Controls()
		dst.DrawTextColored(max((g.screenW-len(controls))/2, 0), y, controls, core.ColorGray)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, scores and the status line.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	st := g.sess.State()

	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightMagenta)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", st.Score))
	best := fmt.Sprintf("Best: %d", st.Best)
	dst.DrawTextColored(boardX+boardW-len(best), 1, best, core.ColorBrightYellow)

	switch {
	case g.status != "":
		dst.DrawTextColored(boardX, 2, g.status, core.ColorGray)
	case g.anim.phase != phaseNone && g.lastDelta > 0:
		dst.DrawTextColored(boardX, 2, "+"+strconv.Itoa(g.lastDelta), core.ColorBrightGreen)
	}
	if g.newBest && !st.GameOver {
		msg := "New best!"
		dst.DrawTextColored(boardX+(boardW-len(msg))/2, 2, msg, core.ColorBrightYellow)
	}
	if st.CanUndo() && !st.GameOver {
		undo := "U: undo"
		dst.DrawTextColored(boardX+boardW-len(undo), 2, undo, core.ColorGray)
	}
}

// renderGridLines draws the n×n cell borders.
func (g *Game) renderGridLines(dst *core.Screen, boardX, boardY, n int) {
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < n {
				dst.DrawHLine(px+1, py, cellWidth-1, '─', core.ColorGray)
			}
			if y < n {
				dst.DrawVLine(px, py+1, cellHeight-1, '│', core.ColorGray)
			}
		}
	}
}

// cellOrigin returns the screen position of a cell's interior.
func cellOrigin(boardX, boardY int, c grid.Cell) (int, int) {
	return boardX + c.Col*cellWidth + 1, boardY + c.Row*cellHeight + 1
}

// renderTiles draws the committed grid, highlighting a running pop.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int, gr grid.Grid) {
	popping := g.anim.phase == phasePop
	for r := range gr.Size() {
		for c := range gr.Size() {
			cell := grid.Cell{Row: r, Col: c}
			val := gr.At(cell)
			if val == 0 {
				continue
			}
			x, y := cellOrigin(boardX, boardY, cell)

			switch {
			case popping && g.anim.isSpawned(cell) && g.anim.progress() < 0.5:
				drawCentered(dst, x, y, "·", core.TileColor(val))
			case popping && g.anim.isMerged(cell):
				label := strconv.Itoa(val)
				if len(label)+2 <= cellWidth-1 {
					label = "[" + label + "]"
				}
				drawCentered(dst, x, y, label, core.ColorBrightWhite)
			default:
				drawCentered(dst, x, y, strconv.Itoa(val), core.TileColor(val))
			}
		}
	}
}

// renderSlide draws every pre-move tile part of the way to its target.
func (g *Game) renderSlide(dst *core.Screen, boardX, boardY int) {
	t := easeOutQuad(g.anim.progress())
	for _, tile := range g.anim.tiles {
		fx, fy := cellOrigin(boardX, boardY, tile.From)
		tx, ty := cellOrigin(boardX, boardY, tile.To)
		drawCentered(dst, core.Lerp(fx, tx, t), core.Lerp(fy, ty, t), strconv.Itoa(tile.Value), core.TileColor(tile.Value))
	}
}

// drawCentered writes label centered in the cell interior starting at x.
func drawCentered(dst *core.Screen, x, y int, label string, color core.Color) {
	width := len([]rune(label))
	padLeft := max((cellWidth-1-width)/2, 0)
	dst.DrawTextColored(x+padLeft, y, label, color)
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightRed)
	}
}
