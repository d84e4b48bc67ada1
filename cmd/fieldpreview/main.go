// Force field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

// FieldParams holds the overlay parameters.
type FieldParams struct {
	WindDirDeg    float32
	WindStrength  float32
	Thermal       float32
	ThermalRadius float32
	Vortex        float32
	VortexRadius  float32
	TurbScale     float32
	TurbStrength  float32
	Seed          int64
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Force Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	const cols, rows = 32, 32
	const worldSize = float32(previewSize)

	params := FieldParams{
		WindDirDeg:    0,
		WindStrength:  8,
		Thermal:       0,
		ThermalRadius: worldSize / 3,
		Vortex:        12,
		VortexRadius:  worldSize / 2,
		TurbScale:     0.08,
		TurbStrength:  6,
		Seed:          1,
	}

	field := systems.NewForceField(cols, rows, worldSize, worldSize)
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			regenerate(field, params, worldSize)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 14, B: 24, A: 255})

		drawField(field, worldSize)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Force Field Overlays", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		slider := func(label string, value *float32, minVal, maxVal float32) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf("%.1f", minVal), fmt.Sprintf("%.1f", maxVal),
				*value, minVal, maxVal,
			)
			rl.DrawText(fmt.Sprintf("%.2f", *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
			if next != *value {
				*value = next
				needsRegen = true
			}
			panelY += 35
		}

		slider("Wind direction (deg)", &params.WindDirDeg, 0, 360)
		slider("Wind strength", &params.WindStrength, 0, 50)
		slider("Thermal strength", &params.Thermal, 0, 50)
		slider("Thermal radius", &params.ThermalRadius, 10, worldSize)
		slider("Vortex strength", &params.Vortex, 0, 50)
		slider("Vortex radius", &params.VortexRadius, 10, worldSize)
		slider("Turbulence scale", &params.TurbScale, 0.01, 0.5)
		slider("Turbulence strength", &params.TurbStrength, 0, 50)

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Next Seed") {
			params.Seed++
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = FieldParams{
				ThermalRadius: worldSize / 3,
				VortexRadius:  worldSize / 2,
				TurbScale:     0.08,
				Seed:          1,
			}
			needsRegen = true
		}
		panelY += 40

		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX), int32(panelY), 16, rl.Gray)

		rl.EndDrawing()
	}
}

// regenerate replays every overlay from a cleared field, exactly the way the
// simulation sync point does it.
func regenerate(field *systems.ForceField, p FieldParams, worldSize float32) {
	field.Clear()
	field.AddWind(p.WindDirDeg*math.Pi/180, p.WindStrength)
	field.AddThermal(worldSize/2, worldSize/2, p.ThermalRadius, p.Thermal)
	field.AddVortex(worldSize/2, worldSize/2, p.VortexRadius, p.Vortex)
	field.AddTurbulence(p.TurbScale, p.TurbStrength, p.Seed)
}

// drawField renders one arrow per cell, colored by magnitude.
func drawField(field *systems.ForceField, worldSize float32) {
	cellW := worldSize / float32(field.Cols())
	cellH := worldSize / float32(field.Rows())

	// Find the max magnitude for color scaling.
	var maxMag float32
	for row := 0; row < field.Rows(); row++ {
		for col := 0; col < field.Cols(); col++ {
			v := field.Sample(float32(col)*cellW+cellW/2, float32(row)*cellH+cellH/2)
			if m := systems.Magnitude(v.X, v.Y); m > maxMag {
				maxMag = m
			}
		}
	}

	for row := 0; row < field.Rows(); row++ {
		for col := 0; col < field.Cols(); col++ {
			cx := float32(col)*cellW + cellW/2
			cy := float32(row)*cellH + cellH/2
			v := field.Sample(cx, cy)

			mag := systems.Magnitude(v.X, v.Y)
			if mag == 0 {
				continue
			}

			t := float32(1)
			if maxMag > 0 {
				t = mag / maxMag
			}
			color := rl.ColorFromHSV(210-180*t, 0.8, 0.9)

			// Arrow scaled to cell size regardless of magnitude.
			scale := cellW * 0.45 / mag
			x0, y0 := 10+cx, 10+cy
			x1, y1 := x0+v.X*scale, y0+v.Y*scale
			rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, 1.5, color)
			rl.DrawCircleV(rl.Vector2{X: x1, Y: y1}, 1.8, color)
		}
	}
}
