package systems

import (
	"math"
	"testing"
)

func TestForceField_WindIsExactEverywhere(t *testing.T) {
	f := NewForceField(8, 8, 800, 800)
	f.AddWind(0, 5)

	for row := 0; row < f.Rows(); row++ {
		for col := 0; col < f.Cols(); col++ {
			v := f.Sample(float32(col)*100+50, float32(row)*100+50)
			if v.X != 5 || v.Y != 0 {
				t.Fatalf("cell (%d,%d) = (%f,%f), want (5,0)", row, col, v.X, v.Y)
			}
		}
	}
}

func TestForceField_OverlaysAreAdditive(t *testing.T) {
	f := NewForceField(4, 4, 400, 400)
	f.AddWind(0, 3)
	f.AddWind(float32(math.Pi/2), 4)

	v := f.Sample(200, 200)
	if math.Abs(float64(v.X-3)) > 1e-5 || math.Abs(float64(v.Y-4)) > 1e-5 {
		t.Errorf("stacked winds = (%f,%f), want (3,4)", v.X, v.Y)
	}
}

func TestForceField_ZeroStrengthOverlayIsNoop(t *testing.T) {
	f := NewForceField(4, 4, 400, 400)
	f.AddWind(1, 0)
	f.AddThermal(200, 200, 100, 0)
	f.AddVortex(200, 200, 100, 0)
	f.AddTurbulence(0.01, 0, 1)

	for x := float32(50); x < 400; x += 100 {
		for y := float32(50); y < 400; y += 100 {
			if v := f.Sample(x, y); v.X != 0 || v.Y != 0 {
				t.Fatalf("cell at (%f,%f) = (%f,%f), want zero", x, y, v.X, v.Y)
			}
		}
	}
}

func TestForceField_ThermalPushesOutward(t *testing.T) {
	// 5x5 cells of 100: centers at 50..450, and (250,250) is a cell center.
	f := NewForceField(5, 5, 500, 500)
	f.AddThermal(250, 250, 400, 10)

	// A cell to the right of the center must be pushed further right.
	v := f.Sample(450, 250)
	if v.X <= 0 {
		t.Errorf("thermal force east of center has X=%f, want > 0", v.X)
	}
	if math.Abs(float64(v.Y)) > 1e-4 {
		t.Errorf("thermal force east of center has Y=%f, want ~0", v.Y)
	}

	// Strength fades with distance from the center.
	near := f.Sample(350, 250)
	far := f.Sample(450, 250)
	if Magnitude(far.X, far.Y) >= Magnitude(near.X, near.Y) {
		t.Error("thermal strength does not fade with distance")
	}
}

func TestForceField_VortexIsTangential(t *testing.T) {
	f := NewForceField(5, 5, 500, 500)
	f.AddVortex(250, 250, 400, 10)

	// East of center, a counterclockwise swirl points north (+y here).
	v := f.Sample(450, 250)
	if v.Y <= 0 {
		t.Errorf("vortex force east of center has Y=%f, want > 0", v.Y)
	}
	if math.Abs(float64(v.X)) > 1e-4 {
		t.Errorf("vortex force east of center has X=%f, want ~0", v.X)
	}
}

func TestForceField_SampleClampsToBounds(t *testing.T) {
	f := NewForceField(4, 4, 400, 400)
	f.AddWind(0, 2)

	for _, p := range [][2]float32{{-50, -50}, {1000, 1000}, {-1, 399}, {450, -3}} {
		v := f.Sample(p[0], p[1])
		if v.X != 2 || v.Y != 0 {
			t.Errorf("out-of-bounds sample at %v = (%f,%f), want (2,0)", p, v.X, v.Y)
		}
	}
}

func TestForceField_SampleSmoothInterpolates(t *testing.T) {
	f := NewForceField(2, 1, 200, 100)
	// Left cell (2,0), right cell (4,0): halfway between centers reads 3.
	f.vecs[0] = Vec2{X: 2}
	f.vecs[1] = Vec2{X: 4}

	v := f.SampleSmooth(100, 50)
	if math.Abs(float64(v.X-3)) > 1e-4 {
		t.Errorf("midpoint smooth sample = %f, want 3", v.X)
	}

	// At a cell center the smooth sample equals the cell value.
	v = f.SampleSmooth(50, 50)
	if math.Abs(float64(v.X-2)) > 1e-4 {
		t.Errorf("cell-center smooth sample = %f, want 2", v.X)
	}
}

func TestForceField_ClearThenReplay(t *testing.T) {
	f := NewForceField(4, 4, 400, 400)
	f.AddWind(0, 5)
	f.Clear()

	if v := f.Sample(200, 200); v.X != 0 || v.Y != 0 {
		t.Fatalf("field not zero after Clear: (%f,%f)", v.X, v.Y)
	}

	// Parameter changes replay overlays from a cleared field.
	f.AddWind(0, 1)
	if v := f.Sample(200, 200); v.X != 1 {
		t.Errorf("replayed wind = %f, want 1", v.X)
	}
}

func TestForceField_TurbulenceIsDeterministic(t *testing.T) {
	a := NewForceField(6, 6, 600, 600)
	b := NewForceField(6, 6, 600, 600)
	a.AddTurbulence(0.01, 2, 99)
	b.AddTurbulence(0.01, 2, 99)

	for x := float32(50); x < 600; x += 100 {
		va, vb := a.Sample(x, x), b.Sample(x, x)
		if va != vb {
			t.Fatalf("same seed produced different turbulence at %f", x)
		}
	}

	c := NewForceField(6, 6, 600, 600)
	c.AddTurbulence(0.01, 2, 100)
	diff := false
	for x := float32(50); x < 600; x += 100 {
		if a.Sample(x, x) != c.Sample(x, x) {
			diff = true
		}
	}
	if !diff {
		t.Error("different seeds produced identical turbulence")
	}
}
