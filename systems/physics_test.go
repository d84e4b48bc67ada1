package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/components"
)

func TestIntegrate_AdvancesPosition(t *testing.T) {
	pos := components.Position{X: 10, Y: 20}
	vel := components.Velocity{X: 3, Y: 4}
	Integrate(&pos, &vel, components.Acceleration{}, 1, 1, 100, 0)

	if pos.X != 13 || pos.Y != 24 {
		t.Errorf("position = (%f,%f), want (13,24)", pos.X, pos.Y)
	}
	if vel.X != 3 || vel.Y != 4 {
		t.Errorf("velocity changed without force or drag: (%f,%f)", vel.X, vel.Y)
	}
}

func TestIntegrate_AppliesAccelerationAndDrag(t *testing.T) {
	pos := components.Position{}
	vel := components.Velocity{X: 10, Y: 0}
	Integrate(&pos, &vel, components.Acceleration{X: 10}, 1, 0, 100, 0.1)

	// (10 + 10*1) * 0.9 = 18
	if math.Abs(float64(vel.X-18)) > 1e-4 {
		t.Errorf("velocity = %f, want 18", vel.X)
	}
	if math.Abs(float64(pos.X-18)) > 1e-4 {
		t.Errorf("position moved by pre-clamp velocity: %f, want 18", pos.X)
	}
}

func TestClampSpeed_Band(t *testing.T) {
	// Above the band: scaled down to maxSpeed.
	vel := components.Velocity{X: 30, Y: 40}
	ClampSpeed(&vel, 1, 5)
	if math.Abs(float64(Magnitude(vel.X, vel.Y)-5)) > 1e-4 {
		t.Errorf("fast velocity clamped to %f, want 5", Magnitude(vel.X, vel.Y))
	}
	if math.Abs(float64(vel.X-3)) > 1e-4 || math.Abs(float64(vel.Y-4)) > 1e-4 {
		t.Errorf("clamp changed direction: (%f,%f)", vel.X, vel.Y)
	}

	// Below the band: scaled up to minSpeed.
	vel = components.Velocity{X: 0.3, Y: 0.4}
	ClampSpeed(&vel, 1, 5)
	if math.Abs(float64(Magnitude(vel.X, vel.Y)-1)) > 1e-4 {
		t.Errorf("slow velocity raised to %f, want 1", Magnitude(vel.X, vel.Y))
	}

	// Inside the band: untouched.
	vel = components.Velocity{X: 3, Y: 0}
	ClampSpeed(&vel, 1, 5)
	if vel.X != 3 || vel.Y != 0 {
		t.Errorf("in-band velocity changed: (%f,%f)", vel.X, vel.Y)
	}
}

func TestClampSpeed_NearZeroStaysPut(t *testing.T) {
	// Below the squared floor a stationary boid is not blown up to minSpeed.
	vel := components.Velocity{X: 0.001, Y: 0}
	ClampSpeed(&vel, 1, 5)
	if vel.X != 0.001 {
		t.Errorf("near-zero velocity scaled to %f", vel.X)
	}
}

func TestExtrapolate(t *testing.T) {
	pos := components.Position{X: 5, Y: 5}
	Extrapolate(&pos, components.Velocity{X: 2, Y: -1}, 0.5)
	if pos.X != 6 || pos.Y != 4.5 {
		t.Errorf("extrapolated position = (%f,%f), want (6,4.5)", pos.X, pos.Y)
	}
}

func TestWrapPosition_Toroidal(t *testing.T) {
	pos := components.Position{X: -1, Y: 101}
	WrapPosition(&pos, 100, 100)
	if pos.X != 99 || pos.Y != 1 {
		t.Errorf("wrapped position = (%f,%f), want (99,1)", pos.X, pos.Y)
	}

	pos = components.Position{X: 100, Y: 50}
	WrapPosition(&pos, 100, 100)
	if pos.X != 0 {
		t.Errorf("position at the far edge wrapped to %f, want 0", pos.X)
	}
}

func TestBouncePosition_ReflectsVelocity(t *testing.T) {
	pos := components.Position{X: -2, Y: 50}
	vel := components.Velocity{X: -3, Y: 1}
	BouncePosition(&pos, &vel, 100, 100)
	if pos.X != 0 || vel.X != 3 {
		t.Errorf("left bounce: pos=%f vel=%f, want 0 and 3", pos.X, vel.X)
	}

	pos = components.Position{X: 50, Y: 105}
	vel = components.Velocity{X: 0, Y: 4}
	BouncePosition(&pos, &vel, 100, 100)
	if pos.Y != 100-0.001 || vel.Y != -4 {
		t.Errorf("bottom bounce: pos=%f vel=%f, want 99.999 and -4", pos.Y, vel.Y)
	}
}

func TestLimitForce(t *testing.T) {
	fx, fy := LimitForce(30, 40, 5)
	if math.Abs(float64(Magnitude(fx, fy)-5)) > 1e-4 {
		t.Errorf("limited force magnitude = %f, want 5", Magnitude(fx, fy))
	}

	fx, fy = LimitForce(1, 1, 5)
	if fx != 1 || fy != 1 {
		t.Errorf("in-limit force changed: (%f,%f)", fx, fy)
	}

	fx, fy = LimitForce(0, 0, 5)
	if fx != 0 || fy != 0 {
		t.Errorf("zero force changed: (%f,%f)", fx, fy)
	}
}
