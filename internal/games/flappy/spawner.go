package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Spawner creates new pipes, clouds and coins at the right edge of the field.
// Each generator is inert while the world is over.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// Reseed resets the RNG so placements repeat for the same seed.
func (s *Spawner) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// SpawnObstacle appends a top and bottom pipe sharing x at the right edge.
// The top pipe's y is drawn uniformly from [-3h/4, -h/4] for pipe height h,
// and the bottom pipe starts one opening space below the top pipe's end.
func (s *Spawner) SpawnObstacle(w *World) bool {
	if w.Over() {
		return false
	}

	cfg := w.cfg
	h := cfg.Obstacles.Height
	topY := -h/4 - s.rng.Float64()*(h/2)
	x := cfg.Field.Width

	w.Pipes = append(w.Pipes,
		Body{
			Rect: core.NewRect(x, topY, cfg.Obstacles.Width, h),
			Kind: KindPipeTop,
		},
		Body{
			Rect: core.NewRect(x, topY+h+cfg.OpeningSpace(), cfg.Obstacles.Width, h),
			Kind: KindPipeBottom,
		},
	)
	return true
}

// SpawnDecoration appends a cloud somewhere in the top half of the field.
func (s *Spawner) SpawnDecoration(w *World) bool {
	if w.Over() {
		return false
	}
	w.Clouds = append(w.Clouds, s.upperHalfBody(w, KindCloud, w.cfg.Decorations.Width, w.cfg.Decorations.Height))
	return true
}

// SpawnCollectible appends a coin somewhere in the top half of the field.
func (s *Spawner) SpawnCollectible(w *World) bool {
	if w.Over() {
		return false
	}
	w.Coins = append(w.Coins, s.upperHalfBody(w, KindCoin, w.cfg.Collectibles.Width, w.cfg.Collectibles.Height))
	return true
}

func (s *Spawner) upperHalfBody(w *World, kind Kind, width, height float64) Body {
	y := s.rng.Float64() * (w.cfg.Field.Height / 2)
	return Body{
		Rect: core.NewRect(w.cfg.Field.Width, y, width, height),
		Kind: kind,
	}
}
