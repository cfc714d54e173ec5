package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFPV loads the FPV simulator configuration.
// Search order: customPath -> ~/.fpv/configs/fpv.yaml -> ./configs/fpv.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadFPV(customPath string) (FPVConfig, error) {
	cfg := DefaultFPVConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("fpv.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultFPVConfig()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "fpv.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultFPVConfig()
	}

	if err := yaml.Unmarshal(defaultFPVYAML, &cfg); err != nil {
		return DefaultFPVConfig(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fpv", "configs", filename)
}

// ApplyFPVPreset modifies the config based on a difficulty preset.
// Presets scale how hard each ratchet step bites; fixed disables the ratchet.
func ApplyFPVPreset(cfg *FPVConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.SpeedIncrement *= 0.5
		cfg.Obstacles.GapSize += 20
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.BaseSpeed *= 1.25
		cfg.Difficulty.SpeedIncrement *= 1.5
		cfg.Obstacles.GapSize -= 20
	}
}
