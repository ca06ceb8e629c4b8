// Package config provides YAML-based game configuration loading for the
// arcade: play-field geometry, physics constants, entity sizes and spawn
// periods.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	Field        FlappyField     `yaml:"field"`
	Physics      FlappyPhysics   `yaml:"physics"`
	Player       FlappyPlayer    `yaml:"player"`
	Obstacles    FlappyObstacles `yaml:"obstacles"`
	Decorations  SpawnConfig     `yaml:"decorations"`
	Collectibles SpawnConfig     `yaml:"collectibles"`
}

// FlappyField defines the play-field dimensions in world units.
type FlappyField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyPhysics defines physics parameters, all expressed per tick.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`      // Added to vertical velocity every tick
	ScrollSpeed float64 `yaml:"scroll_speed"` // Horizontal velocity of everything but the player (negative = left)
	JumpImpulse float64 `yaml:"jump_impulse"` // Velocity set by a jump (negative = up)
}

// FlappyPlayer defines player parameters for Flappy Bird.
type FlappyPlayer struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	XFraction float64 `yaml:"x_fraction"` // Fixed x as a fraction of field width
	YFraction float64 `yaml:"y_fraction"` // Start y as a fraction of field height
}

// FlappyObstacles defines pipe parameters.
type FlappyObstacles struct {
	Width       float64       `yaml:"width"`
	Height      float64       `yaml:"height"`
	GapFraction float64       `yaml:"gap_fraction"` // Opening space as a fraction of field height
	Period      time.Duration `yaml:"period"`
}

// SpawnConfig defines size and spawn period for clouds and coins.
type SpawnConfig struct {
	Width  float64       `yaml:"width"`
	Height float64       `yaml:"height"`
	Period time.Duration `yaml:"period"`
}

// OpeningSpace returns the vertical gap between a top and bottom pipe.
func (c FlappyConfig) OpeningSpace() float64 {
	return c.Field.Height * c.Obstacles.GapFraction
}

// PlayerStart returns the player's fixed x and initial y.
func (c FlappyConfig) PlayerStart() (x, y float64) {
	return c.Field.Width * c.Player.XFraction, c.Field.Height * c.Player.YFraction
}

// Validate reports every field that would make the simulation meaningless.
func (c FlappyConfig) Validate() error {
	var errs []error

	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", name, v))
		}
	}
	period := func(name string, d time.Duration) {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	positive("field.width", c.Field.Width)
	positive("field.height", c.Field.Height)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("obstacles.width", c.Obstacles.Width)
	positive("obstacles.height", c.Obstacles.Height)
	positive("decorations.width", c.Decorations.Width)
	positive("decorations.height", c.Decorations.Height)
	positive("collectibles.width", c.Collectibles.Width)
	positive("collectibles.height", c.Collectibles.Height)

	period("obstacles.period", c.Obstacles.Period)
	period("decorations.period", c.Decorations.Period)
	period("collectibles.period", c.Collectibles.Period)

	if c.Obstacles.GapFraction <= 0 || c.Obstacles.GapFraction >= 1 {
		errs = append(errs, fmt.Errorf("obstacles.gap_fraction must be in (0, 1), got %g", c.Obstacles.GapFraction))
	}
	if c.Player.XFraction < 0 || c.Player.XFraction >= 1 {
		errs = append(errs, fmt.Errorf("player.x_fraction must be in [0, 1), got %g", c.Player.XFraction))
	}
	if c.Player.YFraction < 0 || c.Player.YFraction >= 1 {
		errs = append(errs, fmt.Errorf("player.y_fraction must be in [0, 1), got %g", c.Player.YFraction))
	}
	if c.Physics.ScrollSpeed >= 0 {
		errs = append(errs, fmt.Errorf("physics.scroll_speed must be negative, got %g", c.Physics.ScrollSpeed))
	}

	return errors.Join(errs...)
}
