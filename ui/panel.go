// Package ui renders the in-game control panel for the optimization stack.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/config"
)

const (
	rowHeight    = 22
	sliderHeight = 16
	padding      = 10
)

// Panel is a raygui settings panel that mutates the live config in place.
// The caller recomputes derived values when Draw reports a change.
type Panel struct {
	x, y, width float32

	cursorY float32
	height  float32
	changed bool
}

// NewPanel creates a panel anchored at the given screen position.
func NewPanel(x, y, width float32) *Panel {
	return &Panel{x: x, y: y, width: width}
}

// Contains reports whether a screen point is inside the panel area.
func (p *Panel) Contains(x, y float32) bool {
	return x >= p.x && x <= p.x+p.width && y >= p.y && y <= p.y+p.height
}

// Draw renders the panel and returns true if any parameter changed.
func (p *Panel) Draw(cfg *config.Config) bool {
	p.changed = false
	p.cursorY = p.y + padding

	// Background sized from the previous frame's layout.
	if p.height > 0 {
		rl.DrawRectangle(int32(p.x)-padding, int32(p.y),
			int32(p.width)+padding*2, int32(p.height), rl.Color{R: 20, G: 22, B: 34, A: 235})
	}

	p.header("Flock")
	p.sliderInt("size", &cfg.Flock.Size, 100, 10000)
	p.slider("vision", &cfg.Flock.VisionRadius, 8, 200)

	opt := &cfg.Optimizations

	p.header("Spatial grid")
	p.checkbox("enabled", &opt.Spatial.Enabled)
	if opt.Spatial.Enabled {
		p.slider("cell size", &opt.Spatial.CellSize, 8, 256)
	}

	p.header("Cache order")
	p.checkbox("morton traversal", &opt.CacheOrder.Enabled)

	p.header("Scheduler")
	p.checkbox("time wheel", &opt.Scheduler.Enabled)
	if opt.Scheduler.Enabled {
		p.sliderInt("slots", &opt.Scheduler.Slots, 2, 64)
	}

	p.header("Hierarchy")
	p.checkbox("3-level wheels", &opt.Hierarchy.Enabled)
	if opt.Hierarchy.Enabled {
		p.slider("fast speed", &opt.Hierarchy.ActivityThreshold, 0, 100)
		p.sliderInt("medium after", &opt.Hierarchy.MediumAfter, 1, 300)
		p.sliderInt("slow after", &opt.Hierarchy.SlowAfter, 1, 1200)
	}

	p.header("Perception")
	p.checkbox("fov filter", &opt.Perception.Enabled)
	if opt.Perception.Enabled {
		p.slider("fov deg", &opt.Perception.FOVDeg, 30, 360)
		p.slider("blind deg", &opt.Perception.BlindSpotDeg, 0, 180)
	}

	p.header("Influence")
	p.checkbox("logistic falloff", &opt.Influence.Enabled)
	if opt.Influence.Enabled {
		p.slider("steepness", &opt.Influence.Steepness, 1, 40)
	}

	p.header("Force field")
	p.checkbox("enabled", &opt.Field.Enabled)
	if opt.Field.Enabled {
		p.slider("strength", &opt.Field.Strength, 0, 5)
		p.slider("wind dir", &opt.Field.WindDirectionDeg, 0, 360)
		p.slider("wind", &opt.Field.WindStrength, 0, 50)
		p.slider("thermal", &opt.Field.ThermalStrength, 0, 50)
		p.slider("vortex", &opt.Field.VortexStrength, 0, 50)
		p.slider("turbulence", &opt.Field.TurbulenceStrength, 0, 50)
	}

	p.header("Batching")
	p.checkbox("render batches", &opt.Batching.Enabled)

	p.height = p.cursorY - p.y + padding
	return p.changed
}

func (p *Panel) header(text string) {
	p.cursorY += 6
	rl.DrawText(text, int32(p.x), int32(p.cursorY), 16, rl.SkyBlue)
	p.cursorY += rowHeight
}

func (p *Panel) checkbox(label string, v *bool) {
	bounds := rl.Rectangle{X: p.x, Y: p.cursorY, Width: 16, Height: 16}
	next := gui.CheckBox(bounds, label, *v)
	if next != *v {
		*v = next
		p.changed = true
	}
	p.cursorY += rowHeight
}

func (p *Panel) slider(label string, v *float64, minVal, maxVal float32) {
	rl.DrawText(label, int32(p.x), int32(p.cursorY), 12, rl.Gray)
	p.cursorY += 14

	bounds := rl.Rectangle{X: p.x, Y: p.cursorY, Width: p.width - 60, Height: sliderHeight}
	next := gui.SliderBar(bounds,
		fmt.Sprintf("%.0f", minVal), fmt.Sprintf("%.0f", maxVal),
		float32(*v), minVal, maxVal)
	rl.DrawText(fmt.Sprintf("%.1f", *v), int32(p.x+p.width-52), int32(p.cursorY+2), 12, rl.LightGray)

	if float64(next) != *v {
		*v = float64(next)
		p.changed = true
	}
	p.cursorY += rowHeight
}

func (p *Panel) sliderInt(label string, v *int, minVal, maxVal float32) {
	rl.DrawText(label, int32(p.x), int32(p.cursorY), 12, rl.Gray)
	p.cursorY += 14

	bounds := rl.Rectangle{X: p.x, Y: p.cursorY, Width: p.width - 60, Height: sliderHeight}
	next := gui.SliderBar(bounds,
		fmt.Sprintf("%.0f", minVal), fmt.Sprintf("%.0f", maxVal),
		float32(*v), minVal, maxVal)
	rl.DrawText(fmt.Sprintf("%d", *v), int32(p.x+p.width-52), int32(p.cursorY+2), 12, rl.LightGray)

	if int(next) != *v {
		*v = int(next)
		p.changed = true
	}
	p.cursorY += rowHeight
}
