// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a loaded configuration cannot drive a simulation.
var ErrInvalidConfig = errors.New("invalid runner config")

// RunnerConfig contains all configuration for the giraffe runner.
// Distances are in world units; the play field is Field.Width x Field.Height.
type RunnerConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Player     PlayerConfig     `yaml:"player"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Polish     PolishConfig     `yaml:"polish"`
}

// FieldConfig defines the size of the play field.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the giraffe.
type PlayerConfig struct {
	X    float64 `yaml:"x"`    // Fixed horizontal slot
	Size float64 `yaml:"size"` // Square sprite size
}

// PhysicsConfig defines jump and walk parameters at level zero.
type PhysicsConfig struct {
	JumpHeight float64 `yaml:"jump_height"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	WalkSpeed  float64 `yaml:"walk_speed"`
}

// DifficultyConfig defines the stepped difficulty ramp.
type DifficultyConfig struct {
	InitialLevel  int     `yaml:"initial_level"`
	MaxLevel      int     `yaml:"max_level"`
	RampEvery     int     `yaml:"ramp_every"`      // Ticks between level-ups
	JumpSpeedCoef float64 `yaml:"jump_speed_coef"` // Added to jump speed per level
	WalkSpeedCoef float64 `yaml:"walk_speed_coef"` // Added to walk speed per level
}

// ObstacleConfig defines bush spawning, collision and culling.
type ObstacleConfig struct {
	Size              float64 `yaml:"size"`
	SpawnEvery        int     `yaml:"spawn_every"`        // Base spawn interval in ticks
	SpawnStep         int     `yaml:"spawn_step"`         // Interval reduction per level
	MinSpawnEvery     int     `yaml:"min_spawn_every"`    // Lower bound on the interval
	MinGap            float64 `yaml:"min_gap"`            // Lower bound of the random gap multiplier
	MaxGap            float64 `yaml:"max_gap"`            // Upper bound of the random gap multiplier
	GapUnits          float64 `yaml:"gap_units"`          // Gap multiplier is scaled by player size times this
	CollisionMargin   float64 `yaml:"collision_margin"`   // Altitude below Size-margin counts as near ground
	CollisionFraction float64 `yaml:"collision_fraction"` // Collision window as a fraction of player size
	CullX             float64 `yaml:"cull_x"`             // Obstacles at or left of this are removed
}

// ScoringConfig defines score accrual.
type ScoringConfig struct {
	Every int `yaml:"every"` // Score one point every N ticks
}

// PolishConfig defines the cosmetic features of later variants.
type PolishConfig struct {
	Parallax       bool    `yaml:"parallax"`
	ParallaxFactor float64 `yaml:"parallax_factor"` // Background speed relative to walk speed
	Animated       bool    `yaml:"animated"`
	FrameCount     int     `yaml:"frame_count"` // Frames in the run sprite sheet
	FrameWidth     int     `yaml:"frame_width"` // Nominal sprite frame width in pixels
	FrameHeight    int     `yaml:"frame_height"`
	FrameEvery     int     `yaml:"frame_every"` // Ticks between frame advances
	Screenshot     bool    `yaml:"screenshot"`
}

// GroundY returns the player's resting vertical position.
func (c RunnerConfig) GroundY() float64 {
	return c.Field.Height - c.Player.Size
}

// Apex returns the highest vertical position a jump reaches.
func (c RunnerConfig) Apex() float64 {
	return c.GroundY() - c.Physics.JumpHeight
}

// Validate checks that the configuration can drive a simulation without
// undefined arithmetic.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must have a positive size", ErrInvalidConfig)
	case c.Player.Size <= 0 || c.Player.Size > c.Field.Height:
		return fmt.Errorf("%w: player size must be in (0, field height]", ErrInvalidConfig)
	case c.Physics.JumpHeight <= 0 || c.Physics.JumpHeight > c.GroundY():
		return fmt.Errorf("%w: jump height must be in (0, %g]", ErrInvalidConfig, c.GroundY())
	case c.Physics.JumpSpeed <= 0 || c.Physics.WalkSpeed <= 0:
		return fmt.Errorf("%w: jump and walk speeds must be positive", ErrInvalidConfig)
	case c.Difficulty.InitialLevel < 1 || c.Difficulty.MaxLevel < c.Difficulty.InitialLevel:
		return fmt.Errorf("%w: levels must satisfy 1 <= initial <= max", ErrInvalidConfig)
	case c.Difficulty.RampEvery <= 0:
		return fmt.Errorf("%w: ramp_every must be positive", ErrInvalidConfig)
	case c.Difficulty.JumpSpeedCoef < 0 || c.Difficulty.WalkSpeedCoef < 0:
		return fmt.Errorf("%w: speed coefficients must not be negative", ErrInvalidConfig)
	case c.Obstacles.SpawnEvery <= 0 || c.Obstacles.MinSpawnEvery <= 0:
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalidConfig)
	case c.Obstacles.MinGap < 0 || c.Obstacles.MaxGap < c.Obstacles.MinGap:
		return fmt.Errorf("%w: gap range must satisfy 0 <= min <= max", ErrInvalidConfig)
	case c.Obstacles.CullX >= 0:
		return fmt.Errorf("%w: cull_x must be negative", ErrInvalidConfig)
	case c.Scoring.Every <= 0:
		return fmt.Errorf("%w: scoring.every must be positive", ErrInvalidConfig)
	case c.Polish.Animated && (c.Polish.FrameCount <= 0 || c.Polish.FrameEvery <= 0):
		return fmt.Errorf("%w: animation needs positive frame_count and frame_every", ErrInvalidConfig)
	}
	return nil
}

// Variant names a preset of cadence and polish settings.
type Variant string

const (
	VariantClassic  Variant = "classic"
	VariantParallax Variant = "parallax"
	VariantSprite   Variant = "sprite"
)

// Variants lists all variants in release order.
func Variants() []Variant {
	return []Variant{VariantClassic, VariantParallax, VariantSprite}
}

// Title returns the display name of the variant.
func (v Variant) Title() string {
	switch v {
	case VariantClassic:
		return "Giraffe Run"
	case VariantParallax:
		return "Giraffe Run: Savanna"
	case VariantSprite:
		return "Giraffe Run: Deluxe"
	default:
		return string(v)
	}
}

// Tagline describes what sets the variant apart.
func (v Variant) Tagline() string {
	switch v {
	case VariantClassic:
		return "The original: a bush every 100 ticks, slow ramp"
	case VariantParallax:
		return "Sliding savanna backdrop, bushes come quicker"
	case VariantSprite:
		return "Animated giraffe, bushes bunch up as levels rise"
	default:
		return ""
	}
}
