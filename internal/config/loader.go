package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.giraffe/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only needs the keys it changes.
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "runner.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	embedded := DefaultRunnerConfig()
	if err := yaml.Unmarshal(defaultRunnerYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// LoadVariant loads the runner configuration and applies the variant preset.
// A preset can switch on settings a file left unusable (animation with a zero
// frame_every, say), so the result is validated again. On any error the
// defaults with the preset are returned alongside it.
func LoadVariant(customPath string, v Variant) (RunnerConfig, error) {
	cfg, err := LoadRunner(customPath)
	if err == nil {
		ApplyVariant(&cfg, v)
		if verr := cfg.Validate(); verr != nil {
			err = fmt.Errorf("config for variant %s: %w", v, verr)
		}
	}
	if err != nil {
		cfg = DefaultRunnerConfig()
		ApplyVariant(&cfg, v)
	}
	return cfg, err
}

// tryLoad reads an optional config file. Missing or broken files are skipped.
func tryLoad(path string) (RunnerConfig, bool) {
	cfg := DefaultRunnerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".giraffe", "configs", filename)
}

// ApplyVariant modifies the config to match a released variant.
// Unknown variants leave the config unchanged.
func ApplyVariant(cfg *RunnerConfig, v Variant) {
	switch v {
	case VariantClassic:
		cfg.Difficulty.RampEvery = 1000
		cfg.Obstacles.SpawnEvery = 100
		cfg.Obstacles.SpawnStep = 0
		cfg.Polish.Parallax = false
		cfg.Polish.Animated = false
		cfg.Polish.Screenshot = false
	case VariantParallax:
		cfg.Difficulty.RampEvery = 500
		cfg.Obstacles.SpawnEvery = 75
		cfg.Obstacles.SpawnStep = 0
		cfg.Polish.Parallax = true
		cfg.Polish.Animated = false
		cfg.Polish.Screenshot = false
	case VariantSprite:
		cfg.Difficulty.RampEvery = 500
		cfg.Obstacles.SpawnEvery = 75
		cfg.Obstacles.SpawnStep = 3
		cfg.Polish.Parallax = true
		cfg.Polish.Animated = true
		cfg.Polish.Screenshot = true
	}
}
