package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Kind discriminates the bodies that share the scroll/prune logic.
type Kind int

const (
	KindPipeTop Kind = iota
	KindPipeBottom
	KindCloud
	KindCoin
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPipeTop:
		return "pipe-top"
	case KindPipeBottom:
		return "pipe-bottom"
	case KindCloud:
		return "cloud"
	case KindCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// Body is a positioned, sized entity that scrolls with the field.
type Body struct {
	core.Rect
	Kind   Kind
	Passed bool // Pipes only: the half point for this body was awarded
}

// Offscreen reports whether the body has fully left the field on the left.
func (b Body) Offscreen() bool {
	return b.X <= -b.W
}

// Player is the controllable character. Its x never changes after creation.
type Player struct {
	core.Rect
	VelocityY float64
}

// scroll moves every body by dx.
func scroll(bodies []Body, dx float64) {
	for i := range bodies {
		bodies[i].X += dx
	}
}

// prune drops bodies that have scrolled off the left edge, in place.
func prune(bodies []Body) []Body {
	kept := bodies[:0]
	for _, b := range bodies {
		if !b.Offscreen() {
			kept = append(kept, b)
		}
	}
	// Clear the tail so dropped bodies don't linger in the backing array
	for i := len(kept); i < len(bodies); i++ {
		bodies[i] = Body{}
	}
	return kept
}
