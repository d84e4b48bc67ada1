package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/systems"
)

// Draw renders the simulation.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 24, A: 255})

	if g.batcher.Enabled {
		g.drawBatched()
	} else {
		g.drawPerBoid()
	}

	g.drawHUD()

	if g.showPanel && g.panel != nil {
		if g.panel.Draw(g.cfg) {
			g.cfg.ComputeDerived()
			if g.cfg.Flock.Size != len(g.byIndex) {
				g.ResizePopulation(g.cfg.Flock.Size)
			}
		}
	}

	rl.EndDrawing()
}

// drawBatched renders group by group: one color lookup per batch key instead
// of one per boid.
func (g *Game) drawBatched() {
	for _, key := range g.batcher.Keys() {
		h, s, v := systems.BatchColorHSL(key)
		color := rl.ColorFromHSV(h, s, v)

		for _, e := range g.batcher.Group(key) {
			pos := g.posMap.Get(e)
			vel := g.velMap.Get(e)
			drawBoidTriangle(pos.X, pos.Y, vel.X, vel.Y, color)
		}
	}
}

// drawPerBoid is the unbatched path: color from each boid's own speed.
func (g *Game) drawPerBoid() {
	maxSpeed := g.cfg.Derived.MaxSpeed

	query := g.boidFilter.Query()
	for query.Next() {
		pos, vel, _, _ := query.Get()

		ratio := float32(0)
		if maxSpeed > 0 {
			ratio = systems.Clamp01(systems.Magnitude(vel.X, vel.Y) / maxSpeed)
		}
		color := rl.ColorFromHSV(210, 0.8, 0.55+0.45*ratio)
		drawBoidTriangle(pos.X, pos.Y, vel.X, vel.Y, color)
	}
}

// drawBoidTriangle draws a small triangle pointing along the velocity.
func drawBoidTriangle(x, y, vx, vy float32, color rl.Color) {
	const size = 5.0

	heading := float32(math.Atan2(float64(vy), float64(vx)))
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	front := rl.Vector2{X: x + cos*size*1.6, Y: y + sin*size*1.6}

	backAngle := heading + math.Pi*0.8
	backLeft := rl.Vector2{
		X: x + float32(math.Cos(float64(backAngle)))*size,
		Y: y + float32(math.Sin(float64(backAngle)))*size,
	}
	backAngle = heading - math.Pi*0.8
	backRight := rl.Vector2{
		X: x + float32(math.Cos(float64(backAngle)))*size,
		Y: y + float32(math.Sin(float64(backAngle)))*size,
	}

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
}

// drawHUD renders the status lines and per-dimension impact summary.
func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("Tick: %d", g.tick), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Boids: %d  FPS: %d  Speed: %dx [</>]",
		len(g.byIndex), rl.GetFPS(), g.stepsPerUpdate), 10, 35, 20, rl.White)

	y := int32(60)
	for _, d := range activeDimensionLabels(g) {
		rl.DrawText(fmt.Sprintf("%s: %s", d.name, d.impact), 10, y, 16, rl.LightGray)
		y += 20
	}

	if g.mode == schedHierarchy {
		hs := g.hierarchy.Stats()
		rl.DrawText(fmt.Sprintf("levels: %d/%d/%d  cap x%.0f",
			hs.Counts[0], hs.Counts[1], hs.Counts[2], hs.CapacityMultiplier), 10, y, 16, rl.LightGray)
		y += 20
	}

	rl.DrawText("[Tab] panel  [1-8] toggles  [RMB] attract  [LMB] blast", 10, y, 16, rl.Gray)

	if g.paused {
		rl.DrawText("PAUSED", 10, y+25, 20, rl.Yellow)
	}
}
