package systems

import (
	"math"

	"github.com/pthm-cable/flock/components"
)

// Integration kernels. These mirror the batch physics semantics of the
// simulation core: velocity picks up acceleration and drag, speed is clamped
// to a [min, max] band (square roots only when outside the band), and the
// position advances by the post-clamp velocity.

// Integrate advances one boid by dt.
func Integrate(pos *components.Position, vel *components.Velocity, acc components.Acceleration, dt, minSpeed, maxSpeed, drag float32) {
	dragFactor := 1 - drag

	vx := (vel.X + acc.X*dt) * dragFactor
	vy := (vel.Y + acc.Y*dt) * dragFactor
	vx, vy = clampSpeed(vx, vy, minSpeed, maxSpeed)

	vel.X, vel.Y = vx, vy
	pos.X += vx * dt
	pos.Y += vy * dt
}

// Extrapolate advances a boid that receives no full update this tick:
// position moves linearly along the existing velocity, nothing else changes.
func Extrapolate(pos *components.Position, vel components.Velocity, dt float32) {
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
}

// clampSpeed folds a velocity into the [minSpeed, maxSpeed] band. Velocities
// near zero (below the 0.0001 squared floor) are left alone rather than
// scaled up, matching the reference behavior.
func clampSpeed(vx, vy, minSpeed, maxSpeed float32) (float32, float32) {
	speedSq := vx*vx + vy*vy
	maxSq := maxSpeed * maxSpeed
	minSq := minSpeed * minSpeed

	if speedSq > maxSq {
		scale := maxSpeed / float32(math.Sqrt(float64(speedSq)))
		return vx * scale, vy * scale
	}
	if speedSq < minSq && speedSq > 0.0001 {
		scale := minSpeed / float32(math.Sqrt(float64(speedSq)))
		return vx * scale, vy * scale
	}
	return vx, vy
}

// ClampSpeed is the exported single-boid variant used outside integration.
func ClampSpeed(vel *components.Velocity, minSpeed, maxSpeed float32) {
	vel.X, vel.Y = clampSpeed(vel.X, vel.Y, minSpeed, maxSpeed)
}

// WrapPosition folds a position back into [0, w) x [0, h) toroidally.
func WrapPosition(pos *components.Position, w, h float32) {
	if pos.X < 0 {
		pos.X += w
	} else if pos.X >= w {
		pos.X -= w
	}
	if pos.Y < 0 {
		pos.Y += h
	} else if pos.Y >= h {
		pos.Y -= h
	}
}

// BouncePosition reflects a boid off the world edges, nudging it just inside
// the far border so it cannot sit exactly on the boundary.
func BouncePosition(pos *components.Position, vel *components.Velocity, w, h float32) {
	if pos.X < 0 {
		pos.X = 0
		vel.X = abs32(vel.X)
	} else if pos.X >= w {
		pos.X = w - 0.001
		vel.X = -abs32(vel.X)
	}
	if pos.Y < 0 {
		pos.Y = 0
		vel.Y = abs32(vel.Y)
	} else if pos.Y >= h {
		pos.Y = h - 0.001
		vel.Y = -abs32(vel.Y)
	}
}

// LimitForce caps the magnitude of an accumulated steering force.
func LimitForce(fx, fy, maxForce float32) (float32, float32) {
	magSq := fx*fx + fy*fy
	if magSq <= maxForce*maxForce || magSq == 0 {
		return fx, fy
	}
	scale := maxForce / float32(math.Sqrt(float64(magSq)))
	return fx * scale, fy * scale
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
