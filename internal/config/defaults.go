package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration:
// a 360x640 field, pipes every 3s, clouds every 4s and coins every 5s.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FlappyField{
			Width:  360,
			Height: 640,
		},
		Physics: FlappyPhysics{
			Gravity:     0.2,
			ScrollSpeed: -1,
			JumpImpulse: -4,
		},
		Player: FlappyPlayer{
			Width:     34,
			Height:    24,
			XFraction: 0.125,
			YFraction: 0.5,
		},
		Obstacles: FlappyObstacles{
			Width:       64,
			Height:      512,
			GapFraction: 1.0 / 3.0,
			Period:      3 * time.Second,
		},
		Decorations: SpawnConfig{
			Width:  128,
			Height: 64,
			Period: 4 * time.Second,
		},
		Collectibles: SpawnConfig{
			Width:  32,
			Height: 32,
			Period: 5 * time.Second,
		},
	}
}

// DefaultYAML returns the embedded default YAML, used by `config dump`.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
