package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.showPanel = !g.showPanel
	}

	// Dimension hotkeys mirror the panel checkboxes.
	opt := &g.cfg.Optimizations
	if rl.IsKeyPressed(rl.KeyOne) {
		opt.Spatial.Enabled = !opt.Spatial.Enabled
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		opt.CacheOrder.Enabled = !opt.CacheOrder.Enabled
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		opt.Scheduler.Enabled = !opt.Scheduler.Enabled
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		opt.Hierarchy.Enabled = !opt.Hierarchy.Enabled
	}
	if rl.IsKeyPressed(rl.KeyFive) {
		opt.Perception.Enabled = !opt.Perception.Enabled
	}
	if rl.IsKeyPressed(rl.KeySix) {
		opt.Influence.Enabled = !opt.Influence.Enabled
	}
	if rl.IsKeyPressed(rl.KeySeven) {
		opt.Field.Enabled = !opt.Field.Enabled
	}
	if rl.IsKeyPressed(rl.KeyEight) {
		opt.Batching.Enabled = !opt.Batching.Enabled
	}

	// Right mouse held: attract the flock toward the pointer.
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		g.PointAttract(mouse.X, mouse.Y)
	} else {
		g.PointRelease()
	}

	// Left click: radial blast. Skip clicks that land on the panel.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !(g.showPanel && g.panelContains(mouse.X, mouse.Y)) {
		g.Explode(mouse.X, mouse.Y)
	}
}
