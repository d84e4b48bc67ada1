// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen        ScreenConfig        `yaml:"screen"`
	World         WorldConfig         `yaml:"world"`
	Physics       PhysicsConfig       `yaml:"physics"`
	Flock         FlockConfig         `yaml:"flock"`
	Optimizations OptimizationsConfig `yaml:"optimizations"`
	Interaction   InteractionConfig   `yaml:"interaction"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// World can be larger than the screen; zero means "use screen size".
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT       float64 `yaml:"dt"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
	Drag     float64 `yaml:"drag"`
	Boundary string  `yaml:"boundary"` // "wrap" or "bounce"
}

// FlockConfig holds the flocking rule parameters.
type FlockConfig struct {
	Size             int     `yaml:"size"`
	VisionRadius     float64 `yaml:"vision_radius"`
	SeparationRadius float64 `yaml:"separation_radius"`
	AlignWeight      float64 `yaml:"align_weight"`
	CohesionWeight   float64 `yaml:"cohesion_weight"`
	SeparationWeight float64 `yaml:"separation_weight"`
	MaxForce         float64 `yaml:"max_force"`
}

// OptimizationsConfig is the flat set of dimension toggles and thresholds.
// The orchestrator reads it exactly once per tick at its sync point; no
// dimension reads configuration on its own.
type OptimizationsConfig struct {
	Spatial    SpatialConfig    `yaml:"spatial"`
	CacheOrder CacheOrderConfig `yaml:"cache_order"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Hierarchy  HierarchyConfig  `yaml:"hierarchy"`
	Perception PerceptionConfig `yaml:"perception"`
	Influence  InfluenceConfig  `yaml:"influence"`
	Field      FieldConfig      `yaml:"field"`
	Batching   BatchingConfig   `yaml:"batching"`
}

// SpatialConfig holds spatial partition parameters.
type SpatialConfig struct {
	Enabled  bool    `yaml:"enabled"`
	CellSize float64 `yaml:"cell_size"`
}

// CacheOrderConfig holds the Morton traversal toggle.
type CacheOrderConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SchedulerConfig holds flat time-wheel parameters.
type SchedulerConfig struct {
	Enabled bool `yaml:"enabled"`
	Slots   int  `yaml:"slots"`
}

// HierarchyConfig holds hierarchical scheduler parameters.
// Thresholds are passed through unvalidated; a zero or negative
// slow_after demotes every idle boid straight to the slowest level.
type HierarchyConfig struct {
	Enabled           bool    `yaml:"enabled"`
	ActivityThreshold float64 `yaml:"activity_threshold"` // EMA speed at/above which a boid stays fast
	MediumAfter       int     `yaml:"medium_after"`       // low-activity ticks before demotion to medium
	SlowAfter         int     `yaml:"slow_after"`         // low-activity ticks before demotion to slow
}

// PerceptionConfig holds directional filter parameters (degrees in the file).
type PerceptionConfig struct {
	Enabled      bool    `yaml:"enabled"`
	FOVDeg       float64 `yaml:"fov_deg"`
	BlindSpotDeg float64 `yaml:"blind_spot_deg"`
}

// InfluenceConfig holds influence falloff parameters.
type InfluenceConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Steepness float64 `yaml:"steepness"`
}

// FieldConfig holds environmental force field parameters.
// Overlays are additive; any parameter change triggers a clear-and-replay
// of every overlay, so the struct must stay comparable.
type FieldConfig struct {
	Enabled            bool    `yaml:"enabled"`
	Cols               int     `yaml:"cols"`
	Rows               int     `yaml:"rows"`
	Strength           float64 `yaml:"strength"` // global multiplier applied at sample time
	Smooth             bool    `yaml:"smooth"`   // bilinear sampling instead of nearest cell
	WindDirectionDeg   float64 `yaml:"wind_direction_deg"`
	WindStrength       float64 `yaml:"wind_strength"`
	ThermalStrength    float64 `yaml:"thermal_strength"`
	ThermalRadius      float64 `yaml:"thermal_radius"`
	VortexStrength     float64 `yaml:"vortex_strength"`
	VortexRadius       float64 `yaml:"vortex_radius"`
	TurbulenceScale    float64 `yaml:"turbulence_scale"`
	TurbulenceStrength float64 `yaml:"turbulence_strength"`
	Seed               int64   `yaml:"seed"`
}

// BatchingConfig holds the render-batch classifier toggle.
type BatchingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// InteractionConfig holds pointer and explosion interaction parameters.
type InteractionConfig struct {
	PointerRadius     float64 `yaml:"pointer_radius"`
	PointerStrength   float64 `yaml:"pointer_strength"`
	ExplosionRadius   float64 `yaml:"explosion_radius"`
	ExplosionStrength float64 `yaml:"explosion_strength"`
	ExplosionTicks    int     `yaml:"explosion_ticks"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow    int `yaml:"perf_window"`    // ticks per perf rolling window
	MetricsWindow int `yaml:"metrics_window"` // samples per dimension rolling average
	ReportEvery   int `yaml:"report_every"`   // ticks between CSV/log reports (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32
	MinSpeed  float32
	MaxSpeed  float32
	Drag      float32
	WorldW32  float32
	WorldH32  float32
	VisionSq  float32 // vision_radius squared
	Bounce    bool    // boundary == "bounce"
	FOVRad    float32
	BlindRad  float32
	WindRad   float32 // wind direction in radians
	ScreenW32 float32
	ScreenH32 float32
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ComputeDerived()
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// ComputeDerived calculates values derived from loaded config. Call again
// after mutating parameters at runtime (the UI panel does this).
func (c *Config) ComputeDerived() {
	const degToRad = 3.14159265358979 / 180.0

	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.MinSpeed = float32(c.Physics.MinSpeed)
	c.Derived.MaxSpeed = float32(c.Physics.MaxSpeed)
	c.Derived.Drag = float32(c.Physics.Drag)
	c.Derived.Bounce = c.Physics.Boundary == "bounce"

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	vr := float32(c.Flock.VisionRadius)
	c.Derived.VisionSq = vr * vr

	c.Derived.FOVRad = float32(c.Optimizations.Perception.FOVDeg * degToRad)
	c.Derived.BlindRad = float32(c.Optimizations.Perception.BlindSpotDeg * degToRad)
	c.Derived.WindRad = float32(c.Optimizations.Field.WindDirectionDeg * degToRad)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
