// Package window runs flappy in a desktop window using Ebitengine. The
// field is drawn at its native resolution and scaled by the window.
package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/runner"
)

var (
	skyColor    = color.RGBA{R: 112, G: 197, B: 206, A: 255}
	cloudColor  = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	pipeColor   = color.RGBA{R: 92, G: 184, B: 64, A: 255}
	pipeEdge    = color.RGBA{R: 48, G: 112, B: 32, A: 255}
	coinColor   = color.RGBA{R: 250, G: 204, B: 21, A: 255}
	playerColor = color.RGBA{R: 245, G: 158, B: 11, A: 255}
	overlayTint = color.RGBA{A: 140}
)

// jumpKeys all flap, like the terminal frontend.
var jumpKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyX, ebiten.KeyW}

// Input reports the inputs the window reacts to during one update.
type Input interface {
	JumpPressed() bool
	QuitPressed() bool
}

// keyboardInput polls Ebitengine for just-pressed keys and clicks.
type keyboardInput struct{}

func (keyboardInput) JumpPressed() bool {
	for _, k := range jumpKeys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (keyboardInput) QuitPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

// Game implements ebiten.Game on top of a runner.
type Game struct {
	runner *runner.Runner
	input  Input
	width  int
	height int
}

// New creates a window game driving r.
func New(r *runner.Runner) *Game {
	field := r.Game().Snapshot().Field
	return &Game{
		runner: r,
		input:  keyboardInput{},
		width:  int(field.Width),
		height: int(field.Height),
	}
}

// Update polls input and advances the runner by one frame.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.input.QuitPressed() {
		return ebiten.Termination
	}
	if g.input.JumpPressed() {
		g.runner.Jump()
	}
	g.runner.Frame()
	return nil
}

// Draw renders the field at native resolution.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	snap := g.runner.Game().Snapshot()

	for _, c := range snap.Clouds {
		vector.DrawFilledRect(screen, f32(c.X), f32(c.Y), f32(c.W), f32(c.H), cloudColor, false)
	}
	for _, p := range snap.Pipes {
		vector.DrawFilledRect(screen, f32(p.X), f32(p.Y), f32(p.W), f32(p.H), pipeColor, false)
		vector.StrokeRect(screen, f32(p.X), f32(p.Y), f32(p.W), f32(p.H), 3, pipeEdge, false)
	}
	for _, c := range snap.Coins {
		r := f32(c.W) / 2
		vector.DrawFilledCircle(screen, f32(c.X)+r, f32(c.Y)+r, r, coinColor, true)
	}

	pl := snap.Player
	vector.DrawFilledRect(screen, f32(pl.X), f32(pl.Y), f32(pl.W), f32(pl.H), playerColor, false)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %g", snap.Score), 8, 8)

	if snap.State == flappy.StateOver {
		vector.DrawFilledRect(screen, 0, 0, float32(g.width), float32(g.height), overlayTint, false)
		ebitenutil.DebugPrintAt(screen, "GAME OVER", g.width/2-27, g.height/2-16)
		ebitenutil.DebugPrintAt(screen, "Space or click to restart", g.width/2-75, g.height/2+4)
	}
}

// Layout returns the field's logical dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Options configures the window.
type Options struct {
	TPS   int     // Display ticks per second
	Scale float64 // Window size relative to the field
	Title string
}

// Run opens the window and blocks until it is closed.
func Run(r *runner.Runner, opts Options) error {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Title == "" {
		opts.Title = r.Game().Title()
	}

	g := New(r)
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(int(float64(g.width)*opts.Scale), int(float64(g.height)*opts.Scale))
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	r.Start()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func f32(v float64) float32 {
	return float32(v)
}
