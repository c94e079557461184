package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration.
// It mirrors defaults/runner.yaml and matches the Sprite variant.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Field: FieldConfig{
			Width:  900,
			Height: 450,
		},
		Player: PlayerConfig{
			X:    10,
			Size: 120,
		},
		Physics: PhysicsConfig{
			JumpHeight: 240,
			JumpSpeed:  10,
			WalkSpeed:  6,
		},
		Difficulty: DifficultyConfig{
			InitialLevel:  1,
			MaxLevel:      10,
			RampEvery:     500,
			JumpSpeedCoef: 0,
			WalkSpeedCoef: 1,
		},
		Obstacles: ObstacleConfig{
			Size:              60,
			SpawnEvery:        75,
			SpawnStep:         3,
			MinSpawnEvery:     30,
			MinGap:            0.6,
			MaxGap:            1.0,
			GapUnits:          15,
			CollisionMargin:   20,
			CollisionFraction: 0.69,
			CullX:             -100,
		},
		Scoring: ScoringConfig{
			Every: 3,
		},
		Polish: PolishConfig{
			Parallax:       true,
			ParallaxFactor: 0.5,
			Animated:       true,
			FrameCount:     4,
			FrameWidth:     120,
			FrameHeight:    120,
			FrameEvery:     6,
			Screenshot:     true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultRunnerYAML
}
