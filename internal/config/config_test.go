package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML FPVConfig
	if err := yaml.Unmarshal(GetDefaultYAML("fpv"), &fromYAML); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if fromYAML != DefaultFPVConfig() {
		t.Errorf("embedded defaults drifted from DefaultFPVConfig:\nyaml: %+v\ncode: %+v", fromYAML, DefaultFPVConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultFPVConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsDegenerateGap(t *testing.T) {
	cfg := DefaultFPVConfig()
	cfg.Obstacles.GapSize = cfg.Surface.Height

	err := cfg.Validate()
	if err == nil {
		t.Fatal("gap as tall as the surface should be rejected")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("validation errors should wrap ErrInvalid, got %v", err)
	}
}

func TestValidateRejectsGreedyCollectibles(t *testing.T) {
	cfg := DefaultFPVConfig()
	cfg.Collectibles.BatteryChance = 0.4
	cfg.Collectibles.ShieldChance = 0.2

	if err := cfg.Validate(); err == nil {
		t.Fatal("collectible chances summing past one half should be rejected")
	}
}

func TestValidateRejectsMaxSpeedBelowBase(t *testing.T) {
	cfg := DefaultFPVConfig()
	cfg.Difficulty.MaxSpeed = cfg.Difficulty.BaseSpeed / 2

	if err := cfg.Validate(); err == nil {
		t.Fatal("a speed cap below the base speed should be rejected")
	}

	cfg.Difficulty.MaxSpeed = cfg.Difficulty.BaseSpeed
	if err := cfg.Validate(); err != nil {
		t.Errorf("a cap equal to the base speed should validate: %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := DefaultFPVConfig()
	cfg.Obstacles.PoleWidth = 0
	cfg.Difficulty.BaseSpeed = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected a joined error, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 2 {
		t.Errorf("expected 2 problems, got %d: %v", n, err)
	}
}

func TestLoadFPVCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fpv.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 0.7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFPV(path)
	if err != nil {
		t.Fatalf("LoadFPV() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.7 {
		t.Errorf("gravity = %v, expected 0.7", cfg.Physics.Gravity)
	}
	if cfg.Physics.Thrust != DefaultFPVConfig().Physics.Thrust {
		t.Errorf("unset fields should keep defaults, thrust = %v", cfg.Physics.Thrust)
	}
}

func TestLoadFPVMissingCustomPath(t *testing.T) {
	if _, err := LoadFPV(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should be rejected")
	}
}

func TestApplyPresetsKeepConfigValid(t *testing.T) {
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
		cfg := DefaultFPVConfig()
		ApplyFPVPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produced an invalid config: %v", p, err)
		}
	}

	cfg := DefaultFPVConfig()
	ApplyFPVPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable the ratchet")
	}
}
