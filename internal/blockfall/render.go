package blockfall

import (
	"fmt"

	"github.com/vovakirdan/tui-blockfall/internal/blockfall/core"
	platformcore "github.com/vovakirdan/tui-blockfall/internal/core"
)

// Board cells render two characters wide so the playfield looks square
// in a terminal.
const cellWidth = 2

// tagColor maps the engine's color tags to platform colors.
func tagColor(tag string) platformcore.Color {
	switch tag {
	case "cyan":
		return platformcore.ColorCyan
	case "yellow":
		return platformcore.ColorYellow
	case "magenta":
		return platformcore.ColorMagenta
	case "green":
		return platformcore.ColorGreen
	case "red":
		return platformcore.ColorRed
	case "blue":
		return platformcore.ColorBlue
	case "orange":
		return platformcore.ColorOrange
	default:
		return platformcore.ColorWhite
	}
}

// Render draws the playfield, side panel and HUD.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.session == nil {
		return
	}

	boardW := core.Width*cellWidth + 2
	boardH := core.VisibleHeight + 2
	panelW := 16

	boardX := (dst.Width() - boardW - panelW) / 2
	if boardX < 0 {
		boardX = 0
	}
	boardY := 1

	dst.DrawBox(platformcore.Rect{X: boardX, Y: boardY, W: boardW, H: boardH})
	g.renderBoard(dst, boardX+1, boardY+1)
	g.renderPanel(dst, boardX+boardW+2, boardY)

	if g.announcement != "" {
		y := boardY + boardH
		x := boardX + (boardW-len(g.announcement))/2
		dst.DrawTextColored(x, y, g.announcement, platformcore.ColorBrightYellow)
	}

	switch {
	case g.session.Over():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderBoard draws the visible playfield rows: settled cells, the
// ghost outline at the drop target, then the active piece on top.
func (g *Game) renderBoard(dst *platformcore.Screen, ox, oy int) {
	grid := g.session.Grid()

	for y := 0; y < core.VisibleHeight; y++ {
		for x := 0; x < core.Width; x++ {
			cell, _ := grid.CellAt(x, y+core.BufferRows)
			sx := ox + x*cellWidth
			if cell.Filled {
				c := tagColor(cell.Color)
				dst.SetColored(sx, oy+y, '█', c)
				dst.SetColored(sx+1, oy+y, '█', c)
			} else {
				dst.SetColored(sx, oy+y, '·', platformcore.ColorGray)
				dst.Set(sx+1, oy+y, ' ')
			}
		}
	}

	if ghost := g.session.Ghost(); g.opts.Ghost && ghost != nil {
		for _, c := range ghost.Cells() {
			if c.Y < core.BufferRows {
				continue
			}
			sx := ox + c.X*cellWidth
			sy := oy + c.Y - core.BufferRows
			dst.SetColored(sx, sy, '░', platformcore.ColorGray)
			dst.SetColored(sx+1, sy, '░', platformcore.ColorGray)
		}
	}

	if active := g.session.Active(); active != nil {
		color := tagColor(active.Kind.ColorTag())
		for _, c := range active.Cells() {
			if c.Y < core.BufferRows {
				continue
			}
			sx := ox + c.X*cellWidth
			sy := oy + c.Y - core.BufferRows
			dst.SetColored(sx, sy, '█', color)
			dst.SetColored(sx+1, sy, '█', color)
		}
	}
}

// renderPanel draws the hold slot, the upcoming pieces and the streak
// readouts to the right of the board.
func (g *Game) renderPanel(dst *platformcore.Screen, px, py int) {
	dst.DrawTextColored(px, py, "HOLD", platformcore.ColorGray)
	if kind, ok := g.session.Held(); ok {
		color := platformcore.ColorGray
		if !g.session.HoldUsed() {
			color = tagColor(kind.ColorTag())
		}
		g.renderMini(dst, px, py+1, kind, color)
	}

	nextY := py + 4
	dst.DrawTextColored(px, nextY, "NEXT", platformcore.ColorGray)
	for i, kind := range g.session.Bag().Peek(g.opts.Previews) {
		g.renderMini(dst, px, nextY+1+i*3, kind, tagColor(kind.ColorTag()))
	}

	scores := g.session.Scores()
	statY := nextY + 2 + g.opts.Previews*3
	if scores.Combo > 0 {
		dst.DrawTextColored(px, statY, fmt.Sprintf("Combo x%d", scores.Combo), platformcore.ColorBrightCyan)
	}
	if scores.BackToBack {
		dst.DrawTextColored(px, statY+1, "Back-to-Back", platformcore.ColorBrightMagenta)
	}

	if g.playback != nil {
		label := fmt.Sprintf("REPLAY %3.0f%%", g.playback.Progress())
		dst.DrawTextColored(px, statY+3, label, platformcore.ColorBrightYellow)
		if g.speed != 1 {
			dst.DrawTextColored(px, statY+4, fmt.Sprintf("x%.2g", g.speed), platformcore.ColorBrightYellow)
		}
	}
}

// renderMini draws a piece's spawn-state shape in a small preview box.
func (g *Game) renderMini(dst *platformcore.Screen, px, py int, kind core.Kind, color platformcore.Color) {
	for _, c := range core.ShapeCells(kind, 0) {
		sx := px + c.X*cellWidth
		sy := py + c.Y
		dst.SetColored(sx, sy, '█', color)
		dst.SetColored(sx+1, sy, '█', color)
	}
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	st := g.State()
	hud := fmt.Sprintf(" Blockfall | Score: %d | Level: %d | Lines: %d", st.Score, st.Level, st.Lines)
	dst.DrawTextColored(0, 0, hud, platformcore.ColorCyan)
}

// renderOverlay draws a centered two-line message box over the board.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(platformcore.Rect{X: boxX, Y: boxY, W: boxW, H: boxH}, ' ')
	dst.DrawBox(platformcore.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})
	dst.DrawText(boxX+(boxW-len(line1))/2, boxY+1, line1)
	dst.DrawText(boxX+(boxW-len(line2))/2, boxY+3, line2)
}
