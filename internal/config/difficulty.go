package config

// Speeds returns the jump and walk speeds for a difficulty level.
// Both grow linearly from the level-zero physics by their per-level coefficient.
func (c RunnerConfig) Speeds(level int) (jump, walk float64) {
	l := float64(level)
	jump = c.Physics.JumpSpeed + l*c.Difficulty.JumpSpeedCoef
	walk = c.Physics.WalkSpeed + l*c.Difficulty.WalkSpeedCoef
	return jump, walk
}

// SpawnInterval returns the number of ticks between bush spawns at a level.
// The interval shrinks by SpawnStep per level and never drops below
// MinSpawnEvery, or below one tick if that is misconfigured.
func (c RunnerConfig) SpawnInterval(level int) int {
	interval := c.Obstacles.SpawnEvery - c.Obstacles.SpawnStep*level
	if interval < c.Obstacles.MinSpawnEvery {
		interval = c.Obstacles.MinSpawnEvery
	}
	if interval < 1 {
		interval = 1
	}
	return interval
}

// ClampLevel restricts a level to [1, MaxLevel].
func (c RunnerConfig) ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if c.Difficulty.MaxLevel > 0 && level > c.Difficulty.MaxLevel {
		return c.Difficulty.MaxLevel
	}
	return level
}
