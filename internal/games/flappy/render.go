package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar = '●'
	PlayerBeak = '▶'
	PipeChar   = '█'
	CloudChar  = '░'
	CoinChar   = '◉'
)

// Render projects the play field onto the screen. The field is stretched
// to the whole screen; row 0 carries the score.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	snap := g.Snapshot()
	proj := newProjection(snap.Field.Width, snap.Field.Height, dst.Width(), dst.Height())

	for _, c := range snap.Clouds {
		x, y, w, h := proj.cells(c.Rect)
		dst.FillRect(x, y, w, h, CloudChar, core.ColorGray)
	}
	for _, p := range snap.Pipes {
		x, y, w, h := proj.cells(p.Rect)
		dst.FillRect(x, y, w, h, PipeChar, core.ColorGreen)
	}
	for _, c := range snap.Coins {
		x, y, w, h := proj.cells(c.Rect)
		dst.FillRect(x, y, w, h, CoinChar, core.ColorBrightYellow)
	}

	px, py, pw, ph := proj.cells(snap.Player)
	dst.FillRect(px, py, pw, ph, PlayerChar, core.ColorYellow)
	dst.SetColored(px+pw-1, py, PlayerBeak, core.ColorOrange)

	// Draw HUD
	dst.DrawTextColored(1, 0, fmt.Sprintf(" Score: %g ", snap.Score), core.ColorBrightWhite)

	if snap.State == StateOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %g  |  Space to restart", snap.Score))
	}
}

// projection maps field units to screen cells.
type projection struct {
	sx, sy float64
}

func newProjection(fieldW, fieldH float64, screenW, screenH int) projection {
	return projection{
		sx: float64(screenW) / fieldW,
		sy: float64(screenH) / fieldH,
	}
}

// cells returns the cell rectangle covering r; every visible body gets at
// least one cell.
func (p projection) cells(r core.Rect) (x, y, w, h int) {
	x0 := int(math.Floor(r.X * p.sx))
	y0 := int(math.Floor(r.Y * p.sy))
	x1 := int(math.Ceil(r.Right() * p.sx))
	y1 := int(math.Ceil(r.Bottom() * p.sy))
	return x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	// Draw text
	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
