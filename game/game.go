package game

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/ui"
)

// schedMode identifies which scheduling structure currently owns the boids.
type schedMode int

const (
	schedAll schedMode = iota
	schedWheel
	schedHierarchy
)

// Options holds game initialization options.
type Options struct {
	Seed           int64
	Headless       bool
	OutputDir      string
	StepsPerUpdate int
	LogStats       bool
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	boidMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Boid,
	]
	boidFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Boid,
	]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	accMap  *ecs.Map1[components.Acceleration]
	boidMap *ecs.Map1[components.Boid]

	// byIndex maps Boid.Index to its entity; index i is always byIndex[i].
	byIndex []ecs.Entity

	// Optimization dimensions
	grid       *systems.Grid
	cacheOrder *systems.CacheOrder
	wheel      *systems.Wheel
	hierarchy  *systems.Hierarchy
	dirFilter  *systems.DirectionalFilter
	falloff    *systems.InfluenceFalloff
	field      *systems.ForceField
	batcher    *systems.BatchClassifier

	arena *systems.Arena
	panel *ui.Panel

	// Telemetry
	tracker       *telemetry.Tracker
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	// Sync-point change detection
	mode         schedMode
	wheelSlots   int
	lastFieldCfg config.FieldConfig
	fieldLoaded  bool

	// Interaction state
	pointerActive bool
	pointerX      float32
	pointerY      float32
	blastX        float32
	blastY        float32
	blastTicks    int

	// State
	tick           int64
	paused         bool
	stepsPerUpdate int
	logStats       bool
	headless       bool
	showPanel      bool

	// Per-tick scratch
	active []ecs.Entity
}

// NewGame creates a game with default options.
func NewGame(cfg *config.Config) *Game {
	return NewGameWithOptions(cfg, Options{Seed: 42, StepsPerUpdate: 1})
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(cfg *config.Config, opts Options) *Game {
	world := ecs.NewWorld()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		boidMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Acceleration,
			components.Boid,
		](world),
		boidFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Acceleration,
			components.Boid,
		](world),
		posMap:         ecs.NewMap1[components.Position](world),
		velMap:         ecs.NewMap1[components.Velocity](world),
		accMap:         ecs.NewMap1[components.Acceleration](world),
		boidMap:        ecs.NewMap1[components.Boid](world),
		stepsPerUpdate: opts.StepsPerUpdate,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
	}

	d := &cfg.Derived

	g.grid = systems.NewGrid(float32(cfg.Optimizations.Spatial.CellSize), d.WorldW32, d.WorldH32)
	g.cacheOrder = systems.NewCacheOrder()
	g.wheelSlots = cfg.Optimizations.Scheduler.Slots
	g.wheel = systems.NewWheel(g.wheelSlots)
	g.hierarchy = systems.NewHierarchy()
	g.dirFilter = systems.NewDirectionalFilter(d.FOVRad, d.BlindRad)
	g.falloff = systems.NewInfluenceFalloff(float32(cfg.Optimizations.Influence.Steepness))
	g.field = systems.NewForceField(cfg.Optimizations.Field.Cols, cfg.Optimizations.Field.Rows, d.WorldW32, d.WorldH32)
	g.batcher = systems.NewBatchClassifier()
	g.arena = systems.NewArena(components.NeighborCap * 4)

	if !opts.Headless {
		g.panel = ui.NewPanel(float32(cfg.Screen.Width)-300, 10, 290)
	}

	g.tracker = telemetry.NewTracker(cfg.Telemetry.MetricsWindow)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		logOutputError("creating output manager", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			logOutputError("writing config snapshot", err)
		}
	}

	g.spawnInitialPopulation()
	g.syncDimensions()

	return g
}

// Update runs input handling plus one or more simulation steps.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs simulation steps without any input handling.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.tick
}

// Population returns the current boid count.
func (g *Game) Population() int {
	return len(g.byIndex)
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// PerfStats returns the aggregated timing window; the benchmark harness
// reads it after a run.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Config returns the live configuration. The UI panel mutates it; the next
// sync point picks the changes up.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// PointAttract aims the pointer attractor at a world position. The force
// applies each tick until PointRelease is called.
func (g *Game) PointAttract(x, y float32) {
	g.pointerActive = true
	g.pointerX, g.pointerY = x, y
}

// PointRelease turns the pointer attractor off.
func (g *Game) PointRelease() {
	g.pointerActive = false
}

// Explode triggers a radial blast at a world position. Boids inside the
// radius are promoted to full update rate so the shockwave reads instantly.
func (g *Game) Explode(x, y float32) {
	g.blastX, g.blastY = x, y
	g.blastTicks = g.cfg.Interaction.ExplosionTicks
	if g.blastTicks < 1 {
		g.blastTicks = 1
	}

	radiusSq := float32(g.cfg.Interaction.ExplosionRadius)
	radiusSq *= radiusSq

	for _, e := range g.byIndex {
		pos := g.posMap.Get(e)
		if systems.DistanceSq(pos.X, pos.Y, x, y) > radiusSq {
			continue
		}
		b := g.boidMap.Get(e)
		switch g.mode {
		case schedHierarchy:
			g.hierarchy.Promote(e, b.Index)
		case schedWheel:
			g.wheel.Promote(e)
		}
	}
}

// panelContains reports whether a screen position lies over the open panel.
func (g *Game) panelContains(x, y float32) bool {
	return g.panel != nil && g.panel.Contains(x, y)
}

// randomHeadingVelocity returns a velocity with random direction and a speed
// drawn uniformly from the configured band.
func (g *Game) randomHeadingVelocity() components.Velocity {
	d := &g.cfg.Derived
	angle := g.rng.Float64() * 2 * math.Pi
	speed := d.MinSpeed + g.rng.Float32()*(d.MaxSpeed-d.MinSpeed)
	return components.Velocity{
		X: float32(math.Cos(angle)) * speed,
		Y: float32(math.Sin(angle)) * speed,
	}
}

// Unload releases resources. The simulation itself holds nothing external,
// so this only flushes the output files.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			logOutputError("closing output", err)
		}
	}
}
