// Package fpv implements FPV Simulator Mini, a side-scrolling drone flyer.
// The player taps to thrust through gates; batteries add points and a
// shield absorbs one hit. All simulation runs inside frames scheduled on
// a FrameQueue, one per display refresh.
package fpv

import (
	"time"

	"github.com/dronehub/fpv-mini/internal/audio"
	"github.com/dronehub/fpv-mini/internal/config"
	"github.com/dronehub/fpv-mini/internal/core"
	"github.com/dronehub/fpv-mini/internal/registry"
)

// cosmetic stream is offset from the spawn seed so the two never correlate
const cosmeticSeedOffset = 0x5eed

// Game implements the simulator and its idle/playing/game-over state machine.
type Game struct {
	cfg        config.FPVConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	spawner    *Spawner
	spawnRNG   *RNG
	fxRNG      *RNG
	particles  *ParticleSystem

	audio audio.Player
	clock Clock

	frames  FrameQueue
	pending FrameHandle
	canvas  core.Canvas

	listeners    map[int]func(HUD)
	nextListener int
	hud          HUD
	stepping     bool
	hudDirty     bool

	phase        Phase
	paused       bool
	player       Player
	gates        []Gate
	collectibles []Collectible
	score        int
	highScore    int
	shield       bool
	speed        float64
	frame        uint64
}

// Option customises a Game at construction.
type Option func(*Game)

// WithAudio routes cues to p instead of discarding them.
func WithAudio(p audio.Player) Option {
	return func(g *Game) {
		if p != nil {
			g.audio = p
		}
	}
}

// WithClock replaces the wall clock used for cosmetic animation.
func WithClock(c Clock) Option {
	return func(g *Game) {
		if c != nil {
			g.clock = c
		}
	}
}

// New validates cfg and creates an idle game.
func New(cfg config.FPVConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		audio:     audio.Silent{},
		clock:     time.Now,
		listeners: make(map[int]func(HUD)),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.Reset(core.DefaultConfig())
	return g, nil
}

// Load reads the config from path (or the default search order), applies
// preset, and creates a game from it.
func Load(path string, preset config.DifficultyPreset, opts ...Option) (*Game, error) {
	cfg, err := config.LoadFPV(path)
	if err != nil {
		return nil, err
	}
	if preset != "" {
		config.ApplyFPVPreset(&cfg, preset)
	}
	return New(cfg, opts...)
}

// configPath and difficultyPreset are set from the CLI before registry.Create.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for registry-created games.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset for registry-created games.
// Unknown names fall back to the config file's own settings.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "fpv"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "FPV Simulator Mini"
}

// Reset reseeds the generators and returns to idle. The high score survives.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.spawnRNG = NewRNG(runtime.Seed)
	g.fxRNG = NewRNG(runtime.Seed + cosmeticSeedOffset)
	g.spawner = NewSpawner(&g.cfg, g.difficulty, g.spawnRNG)
	g.particles = NewParticleSystem(g.cfg.Particles.Max, g.fxRNG)

	g.cancelFrame()
	g.clearRun()
	g.phase = PhaseIdle
	g.paused = false
	g.publish()
}

// Start begins a fresh run from any phase.
func (g *Game) Start() {
	g.cancelFrame()
	g.clearRun()
	g.phase = PhasePlaying
	g.paused = false
	g.requestFrame()
	g.changed()
}

// clearRun puts every per-run value back to its initial state.
func (g *Game) clearRun() {
	p := g.cfg.Player
	g.player = Player{
		X:      p.X,
		Y:      p.Y,
		Width:  p.Width,
		Height: p.Height,
	}
	g.gates = g.gates[:0]
	g.collectibles = g.collectibles[:0]
	g.particles.Clear()
	g.spawner.Reset()
	g.score = 0
	g.shield = false
	g.speed = g.difficulty.BaseSpeed()
	g.frame = 0
}

// Close detaches the game from its host. No frame runs after Close.
func (g *Game) Close() {
	g.cancelFrame()
	g.canvas = nil
	g.listeners = make(map[int]func(HUD))
}

// Mount attaches the surface every frame renders to. Nil unmounts.
func (g *Game) Mount(c core.Canvas) {
	g.canvas = c
}

// Step is called once per display refresh: apply input, then run the
// pending frame. Outside of play nothing is simulated, but the explosion
// keeps fading after a crash.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.stepping = true
	g.HandleInput(in)

	if !g.frames.Fire() {
		if g.phase == PhaseGameOver {
			g.particles.Update()
		}
		g.render()
	}

	g.stepping = false
	if g.hudDirty {
		g.publish()
	}

	return core.StepResult{State: g.State()}
}

// FramePending reports whether the loop is scheduled to run.
func (g *Game) FramePending() bool {
	return g.frames.Pending()
}

func (g *Game) requestFrame() {
	g.cancelFrame()
	g.pending = g.frames.Request(g.runFrame)
}

func (g *Game) cancelFrame() {
	g.frames.Cancel(g.pending)
	g.pending = 0
}

// runFrame is one tick of the loop, in fixed order.
func (g *Game) runFrame() {
	g.pending = 0
	g.frame++

	g.update()
	g.render()
	g.publish()

	if g.phase == PhasePlaying && !g.paused {
		g.requestFrame()
	}
}

// update advances the simulation. A crash ends the update early; the
// explosion stays where it spawned until the next refresh.
func (g *Game) update() {
	ph := g.cfg.Physics
	Integrate(&g.player, ph.Gravity)
	Tilt(&g.player, ph.TiltFactor, ph.TiltLimit, ph.TiltSmoothing)

	if OutOfBounds(g.player, g.cfg.Surface.Height) {
		g.crash()
		return
	}

	g.speed = g.difficulty.Speed(g.score)
	if gate, c, ok := g.spawner.Tick(g.score); ok {
		g.gates = append(g.gates, gate)
		if c != nil {
			g.collectibles = append(g.collectibles, *c)
		}
	}

	for i := range g.gates {
		g.gates[i].X -= g.speed
	}
	for i := range g.collectibles {
		g.collectibles[i].X -= g.speed
	}
	g.prune()

	if g.collideGates() {
		return
	}
	g.collideCollectibles()

	g.particles.Update()
}

// prune drops gates and pickups that are fully off the left edge, and
// pickups already collected.
func (g *Game) prune() {
	pole := g.cfg.Obstacles.PoleWidth
	gates := g.gates[:0]
	for _, gt := range g.gates {
		if gt.X+pole > 0 {
			gates = append(gates, gt)
		}
	}
	g.gates = gates

	half := g.cfg.Collectibles.Size / 2
	items := g.collectibles[:0]
	for _, c := range g.collectibles {
		if !c.Collected && c.X+half > 0 {
			items = append(items, c)
		}
	}
	g.collectibles = items
}

// crash ends the run.
func (g *Game) crash() {
	g.cancelFrame()
	g.phase = PhaseGameOver
	g.highScore = max(g.highScore, g.score)

	cx, cy := g.player.Center()
	g.particles.Emit(BurstExplosion, cx, cy, g.cfg.Particles.ExplodeCount)
	g.audio.Play(audio.CueCrash)
}

func (g *Game) render() {
	if g.canvas != nil {
		g.Draw(g.canvas)
	}
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Player returns a copy of the drone.
func (g *Game) Player() Player {
	return g.player
}

// Gates returns the live gates. Do not modify.
func (g *Game) Gates() []Gate {
	return g.gates
}

// Collectibles returns the live pickups. Do not modify.
func (g *Game) Collectibles() []Collectible {
	return g.collectibles
}

// Particles returns the live particles. Do not modify.
func (g *Game) Particles() []Particle {
	return g.particles.Particles()
}

// Config returns the validated config the game runs with.
func (g *Game) Config() config.FPVConfig {
	return g.cfg
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		Playing:   g.phase == PhasePlaying,
		GameOver:  g.phase == PhaseGameOver,
		Paused:    g.paused,
		Shield:    g.shield,
		Speed:     g.speed,
	}
}

// Register the game with the registry
func init() {
	registry.Register("fpv", func() registry.Game {
		g, err := Load(configPath, difficultyPreset)
		if err != nil {
			g, _ = New(config.DefaultFPVConfig())
		}
		return g
	})
}
