package systems

import "math"

// DefaultSteepness gives a sharp but not binary near/far transition.
const DefaultSteepness = 10

// InfluenceFalloff re-weights neighbor contributions by distance through a
// logistic curve centered at maxDistance/2: close neighbors weigh ~1, those
// past the midpoint fall quickly toward 0. Steepness controls how binary the
// transition is.
type InfluenceFalloff struct {
	Enabled   bool
	Steepness float32
}

// NewInfluenceFalloff creates a falloff with the given steepness
// (DefaultSteepness if zero or negative).
func NewInfluenceFalloff(steepness float32) *InfluenceFalloff {
	if steepness <= 0 {
		steepness = DefaultSteepness
	}
	return &InfluenceFalloff{Steepness: steepness}
}

// Reset clears accumulated state (dimension contract); stateless.
func (f *InfluenceFalloff) Reset() {}

// Weight evaluates the falloff for a plain distance.
func (f *InfluenceFalloff) Weight(distance, maxDistance float32) float32 {
	return Influence(distance, maxDistance, f.Steepness)
}

// WeightSq evaluates the falloff for squared inputs.
func (f *InfluenceFalloff) WeightSq(distSq, maxDistSq float32) float32 {
	return InfluenceSq(distSq, maxDistSq, f.Steepness)
}

// Influence maps a distance to a weight in [0, 1] via a logistic curve
// centered at maxDistance/2. A non-positive maxDistance yields 0, never NaN
// or infinity.
func Influence(distance, maxDistance, steepness float32) float32 {
	if maxDistance <= 0 {
		return 0
	}
	if distance < 0 {
		distance = 0
	}
	t := distance/maxDistance - 0.5
	return 1 / (1 + exp32(steepness*t))
}

// InfluenceSq is the squared-distance variant: it spares the caller a square
// root at the cost of taking two internally.
func InfluenceSq(distSq, maxDistSq, steepness float32) float32 {
	if maxDistSq <= 0 {
		return 0
	}
	if distSq < 0 {
		distSq = 0
	}
	d := float32(math.Sqrt(float64(distSq)))
	maxD := float32(math.Sqrt(float64(maxDistSq)))
	return Influence(d, maxD, steepness)
}
