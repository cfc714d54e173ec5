package config

import (
	_ "embed"
)

//go:embed defaults/fpv.yaml
var defaultFPVYAML []byte

// DefaultFPVConfig returns the default FPV simulator configuration.
// It mirrors defaults/fpv.yaml and is used when the embedded file cannot be parsed.
func DefaultFPVConfig() FPVConfig {
	return FPVConfig{
		Surface: FPVSurface{
			Width:  800,
			Height: 500,
		},
		Physics: FPVPhysics{
			Gravity:       0.4,
			Thrust:        -7,
			TiltFactor:    0.05,
			TiltLimit:     0.6,
			TiltSmoothing: 0.1,
		},
		Player: FPVPlayer{
			X:            150,
			Y:            240,
			Width:        40,
			Height:       20,
			HitboxMargin: 5,
		},
		Obstacles: FPVObstacles{
			GapSize:       170,
			MinHeight:     50,
			PoleWidth:     60,
			SpawnInterval: 90, // 1.5s at 60fps
		},
		Collectibles: FPVCollectibles{
			Size:          20,
			BatteryChance: 0.25,
			ShieldChance:  0.05,
			BatteryPoints: 5,
		},
		Particles: FPVParticles{
			Max:          512,
			ThrustCount:  5,
			PickupCount:  12,
			ShieldCount:  24,
			ExplodeCount: 40,
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			BaseSpeed:      3,
			ScoreStep:      5,
			SpeedIncrement: 0.5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "fpv":
		return defaultFPVYAML
	default:
		return nil
	}
}
