package systems

import (
	"math"
	"testing"
)

func TestCheckPerception_BlindSpot(t *testing.T) {
	// Observer at origin heading along +x with a 90 degree blind spot.
	const blind = float32(math.Pi / 2)
	fov := float32(3 * math.Pi / 2)

	// Directly behind: invisible.
	p := CheckPerception(0, 0, 1, 0, -10, 0, fov, blind)
	if p.Visible {
		t.Error("candidate directly behind is visible")
	}
	if p.Weight != 0 {
		t.Errorf("invisible candidate weight = %f, want 0", p.Weight)
	}

	// Directly ahead: visible, near full weight.
	p = CheckPerception(0, 0, 1, 0, 10, 0, fov, blind)
	if !p.Visible {
		t.Fatal("candidate directly ahead is invisible")
	}
	if p.Weight <= 0.9 {
		t.Errorf("ahead weight = %f, want > 0.9", p.Weight)
	}
	if p.RelAngle != 0 {
		t.Errorf("ahead relative angle = %f, want 0", p.RelAngle)
	}
}

func TestCheckPerception_WeightDecaysWithAngle(t *testing.T) {
	const blind = float32(math.Pi / 2)
	fov := float32(3 * math.Pi / 2)

	ahead := CheckPerception(0, 0, 1, 0, 10, 0, fov, blind)
	side := CheckPerception(0, 0, 1, 0, 0, 10, fov, blind)
	back := CheckPerception(0, 0, 1, 0, -5, 1, fov, blind)

	if !(ahead.Weight > side.Weight) {
		t.Errorf("weight not decreasing: ahead=%f side=%f", ahead.Weight, side.Weight)
	}
	if side.Weight < 0.1 {
		t.Errorf("visible weight %f below the 0.1 floor", side.Weight)
	}
	if back.Visible {
		t.Error("candidate just inside the blind spot is visible")
	}
}

func TestCheckPerception_RelAngleNormalized(t *testing.T) {
	// Observer heading -x, candidate along +y: bearing pi/2, heading pi,
	// raw difference -pi/2 stays in range; a wrap case follows.
	p := CheckPerception(0, 0, -1, 0, 0, 10, float32(2*math.Pi), 0)
	if p.RelAngle < -math.Pi || p.RelAngle > math.Pi {
		t.Errorf("relative angle %f outside [-pi, pi]", p.RelAngle)
	}
	if math.Abs(float64(p.RelAngle)+math.Pi/2) > 1e-5 {
		t.Errorf("relative angle = %f, want -pi/2", p.RelAngle)
	}
}

func TestCheckPerception_FullBlindSpot(t *testing.T) {
	// A blind spot of 2*pi leaves no visible arc at all.
	p := CheckPerception(0, 0, 1, 0, 10, 0, 0, float32(2*math.Pi))
	if p.Visible {
		t.Error("candidate visible with a full-circle blind spot")
	}
}
