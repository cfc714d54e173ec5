package fpv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dronehub/fpv-mini/internal/config"
)

func newTestSpawner(cfg *config.FPVConfig, seed int64) *Spawner {
	return NewSpawner(cfg, config.NewDifficultyManager(cfg.Difficulty), NewRNG(seed))
}

func TestSpawnerFirstGateAfterInterval(t *testing.T) {
	cfg := config.DefaultFPVConfig()
	s := newTestSpawner(&cfg, 1)

	ticks := 0
	for {
		ticks++
		if _, _, ok := s.Tick(0); ok {
			break
		}
	}
	if ticks != cfg.Obstacles.SpawnInterval+1 {
		t.Errorf("first gate after %d ticks, expected %d", ticks, cfg.Obstacles.SpawnInterval+1)
	}
}

func TestSpawnerIntervalShrinksWithScore(t *testing.T) {
	cfg := config.DefaultFPVConfig()
	s := newTestSpawner(&cfg, 1)

	base := s.Interval(0)
	faster := s.Interval(5)
	assert.InDelta(t, 90, base, 1e-9)
	assert.InDelta(t, 90/(3.5/3.0), faster, 1e-9)
	assert.Less(t, s.Interval(50), faster)
}

func TestSpawnerGateHeightInRange(t *testing.T) {
	cfg := config.DefaultFPVConfig()
	lo := cfg.Obstacles.MinHeight
	hi := cfg.Surface.Height - cfg.Obstacles.GapSize - cfg.Obstacles.MinHeight

	for seed := int64(0); seed < 50; seed++ {
		s := newTestSpawner(&cfg, seed)
		for i := 0; i < 20; i++ {
			g := s.spawnGate()
			if g.TopHeight < lo || g.TopHeight > hi {
				t.Fatalf("seed %d: topHeight %v outside [%v, %v]", seed, g.TopHeight, lo, hi)
			}
			if g.X != cfg.Surface.Width {
				t.Fatalf("gate should spawn at the right edge, got x=%v", g.X)
			}
			if g.Passed {
				t.Fatal("new gate should not be passed")
			}
		}
	}
}

func TestSpawnerCollectibleCentredInGap(t *testing.T) {
	cfg := config.DefaultFPVConfig()
	cfg.Collectibles.BatteryChance = 0.3
	cfg.Collectibles.ShieldChance = 0.15
	s := newTestSpawner(&cfg, 7)

	seen := 0
	for i := 0; i < 200; i++ {
		g := s.spawnGate()
		c := s.spawnCollectible(g)
		if c == nil {
			continue
		}
		seen++
		assert.Equal(t, g.TopHeight+cfg.Obstacles.GapSize/2, c.Y)
		assert.Equal(t, g.X+cfg.Obstacles.PoleWidth/2, c.X)
		assert.False(t, c.Collected)
	}
	if seen == 0 {
		t.Fatal("expected some collectibles in 200 spawns")
	}
}

func TestSpawnerCollectibleBands(t *testing.T) {
	cfg := config.DefaultFPVConfig()
	s := newTestSpawner(&cfg, 99)

	const n = 20000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		c := s.spawnCollectible(Gate{TopHeight: 100})
		switch {
		case c == nil:
			counts["none"]++
		default:
			counts[c.Kind.String()]++
		}
	}

	assert.InDelta(t, cfg.Collectibles.ShieldChance, float64(counts["shield"])/n, 0.02)
	assert.InDelta(t, cfg.Collectibles.BatteryChance, float64(counts["battery"])/n, 0.02)
	assert.Greater(t, counts["none"], n/2, "empty spawns must be the majority")
}

func TestSpawnerResetRestartsClock(t *testing.T) {
	cfg := config.DefaultFPVConfig()
	s := newTestSpawner(&cfg, 1)
	for i := 0; i < 80; i++ {
		s.Tick(0)
	}
	s.Reset()
	for i := 0; i < cfg.Obstacles.SpawnInterval; i++ {
		if _, _, ok := s.Tick(0); ok {
			t.Fatalf("spawned %d ticks after reset", i+1)
		}
	}
}
