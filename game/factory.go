package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/systems"
)

// spawnInitialPopulation creates the starting flock.
func (g *Game) spawnInitialPopulation() {
	for i := 0; i < g.cfg.Flock.Size; i++ {
		g.spawnBoid()
	}
}

// spawnBoid creates one boid at a random position with a random heading and
// schedules it with whichever structure currently owns the population.
func (g *Game) spawnBoid() ecs.Entity {
	d := &g.cfg.Derived
	index := int32(len(g.byIndex))

	pos := components.Position{
		X: g.rng.Float32() * d.WorldW32,
		Y: g.rng.Float32() * d.WorldH32,
	}
	vel := g.randomHeadingVelocity()
	acc := components.Acceleration{}
	boid := components.Boid{Index: index, LastTick: -1}

	e := g.boidMapper.NewEntity(&pos, &vel, &acc, &boid)
	g.byIndex = append(g.byIndex, e)

	switch g.mode {
	case schedWheel:
		g.wheel.Insert(e, index)
	case schedHierarchy:
		g.hierarchy.Insert(e, index, systems.LevelFast)
	}
	return e
}

// despawnBoid removes the highest-index boid. Removing from the top keeps
// Boid.Index equal to the byIndex position without any renumbering.
func (g *Game) despawnBoid() {
	n := len(g.byIndex)
	if n == 0 {
		return
	}
	e := g.byIndex[n-1]
	g.byIndex = g.byIndex[:n-1]

	g.wheel.Remove(e)
	g.hierarchy.Remove(e)
	g.world.RemoveEntity(e)
}

// ResizePopulation grows or shrinks the flock to the target size and keeps
// the config in step so the next spawn cycle uses the same number.
func (g *Game) ResizePopulation(target int) {
	if target < 0 {
		target = 0
	}

	for len(g.byIndex) < target {
		g.spawnBoid()
	}
	for len(g.byIndex) > target {
		g.despawnBoid()
	}

	g.cfg.Flock.Size = target
}
