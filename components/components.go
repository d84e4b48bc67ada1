// Package components defines ECS components for the flock simulation.
package components

import "github.com/mlange-42/ark/ecs"

// NeighborCap is the fixed capacity of the per-boid neighbor caches.
// Caches are overwritten each full update and never shrunk, so steady-state
// neighbor gathering allocates nothing.
const NeighborCap = 64

// Position represents a boid's world position.
type Position struct {
	X, Y float32
}

// Velocity represents a boid's velocity.
type Velocity struct {
	X, Y float32
}

// Acceleration accumulates forces for one tick and is reset before the next.
type Acceleration struct {
	X, Y float32
}

// Boid holds flocking state. The Index is stable for the boid's lifetime and
// drives scheduler slot assignment; it is independent of any traversal order.
type Boid struct {
	Index  int32
	Stress float32 // crowding signal in [0,1], feeds the render-batch key

	BatchKey uint8 // last classification result, read by the renderer

	// LastTick is the tick that last ran full physics for this boid.
	// The orchestrator extrapolates position linearly for every other tick.
	LastTick int64

	// Parallel neighbor caches tracked by NeighborCount, never resized.
	// NeighborDist holds effective (weight-scaled) squared distances.
	Neighbors     [NeighborCap]ecs.Entity
	NeighborDist  [NeighborCap]float32
	NeighborCount int
}

// CacheNeighbor appends a neighbor to the caches. Returns false once the
// caches are full; callers stop gathering at that point.
func (b *Boid) CacheNeighbor(e ecs.Entity, effDistSq float32) bool {
	if b.NeighborCount >= NeighborCap {
		return false
	}
	b.Neighbors[b.NeighborCount] = e
	b.NeighborDist[b.NeighborCount] = effDistSq
	b.NeighborCount++
	return true
}
