// Package systems provides the toggleable optimization dimensions and the
// shared physics/math helpers the orchestrator composes each tick.
package systems

import "math"

// Vec2 is a plain 2D vector. Boids hold position/velocity/acceleration as
// separate components; Vec2 is for scratch values and field cells.
type Vec2 struct {
	X, Y float32
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Clamp01 clamps a float32 value to the [0, 1] range.
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// DistanceSq returns the squared distance between two points.
func DistanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// Magnitude returns the length of a vector.
func Magnitude(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}

// wrapIndex folds i into [0, n) for any i, including negatives.
func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// exp32 is a float32 convenience around math.Exp.
func exp32(x float32) float32 {
	return float32(math.Exp(float64(x)))
}
