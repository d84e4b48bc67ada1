package systems

import "math"

// Perception is the result of a directional visibility test.
type Perception struct {
	Visible  bool
	Weight   float32
	RelAngle float32 // bearing to candidate minus observer heading, in [-Pi, Pi]
}

// DirectionalFilter models a rear blind spot: candidates behind the observer
// are invisible, and visible candidates are weighted by how far off the
// heading they sit. When disabled the orchestrator treats every candidate as
// visible with weight 1.
type DirectionalFilter struct {
	Enabled   bool
	FOV       float32 // field of view, radians
	BlindSpot float32 // rear blind spot, radians
}

// NewDirectionalFilter creates a filter with the given angles in radians.
func NewDirectionalFilter(fov, blindSpot float32) *DirectionalFilter {
	return &DirectionalFilter{FOV: fov, BlindSpot: blindSpot}
}

// Reset clears accumulated state (dimension contract). The filter is
// stateless, so this only exists to satisfy the shared dimension shape.
func (f *DirectionalFilter) Reset() {}

// Check runs the perception test against this filter's configured angles.
func (f *DirectionalFilter) Check(obsX, obsY, velX, velY, candX, candY float32) Perception {
	return CheckPerception(obsX, obsY, velX, velY, candX, candY, f.FOV, f.BlindSpot)
}

// CheckPerception tests whether a candidate at (candX, candY) is visible to
// an observer at (obsX, obsY) heading along its velocity. Visibility is
// |relAngle| < Pi - blindSpot/2; the weight decays linearly from 1.0 dead
// ahead to a floor of 0.1 at the blind-spot boundary.
func CheckPerception(obsX, obsY, velX, velY, candX, candY, fov, blindSpot float32) Perception {
	heading := float32(math.Atan2(float64(velY), float64(velX)))
	bearing := float32(math.Atan2(float64(candY-obsY), float64(candX-obsX)))
	rel := NormalizeAngle(bearing - heading)

	limit := float32(math.Pi) - blindSpot/2
	if limit <= 0 {
		// Blind spot covers the full circle.
		return Perception{RelAngle: rel}
	}

	abs := rel
	if abs < 0 {
		abs = -abs
	}
	if abs >= limit {
		return Perception{RelAngle: rel}
	}

	return Perception{
		Visible:  true,
		Weight:   1 - 0.9*abs/limit,
		RelAngle: rel,
	}
}
