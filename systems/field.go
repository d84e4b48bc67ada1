package systems

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// ForceField is a 2D grid of environmental force vectors. Overlays (wind,
// thermal, vortex, turbulence) are purely additive and do not support
// incremental removal: on any parameter change the owner clears the field
// and replays every overlay from scratch.
type ForceField struct {
	Enabled bool

	cols, rows     int
	cellW, cellH   float32
	worldW, worldH float32

	vecs []Vec2
}

// NewForceField creates a cleared field of cols x rows cells spanning the
// given world dimensions.
func NewForceField(cols, rows int, worldW, worldH float32) *ForceField {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	f := &ForceField{
		cols: cols, rows: rows,
		worldW: worldW, worldH: worldH,
		vecs: make([]Vec2, cols*rows),
	}
	f.cellW = worldW / float32(cols)
	f.cellH = worldH / float32(rows)
	return f
}

// Cols returns the column count.
func (f *ForceField) Cols() int { return f.cols }

// Rows returns the row count.
func (f *ForceField) Rows() int { return f.rows }

// Clear zeroes every cell.
func (f *ForceField) Clear() {
	for i := range f.vecs {
		f.vecs[i] = Vec2{}
	}
}

// Reset clears accumulated state (dimension contract).
func (f *ForceField) Reset() {
	f.Clear()
}

// Sample returns the owning cell's vector in O(1). Positions outside the
// world clamp to the border cells.
func (f *ForceField) Sample(x, y float32) Vec2 {
	col := clampInt(int(x/f.cellW), 0, f.cols-1)
	row := clampInt(int(y/f.cellH), 0, f.rows-1)
	return f.vecs[row*f.cols+col]
}

// SampleSmooth bilinearly interpolates across the four cells surrounding
// the position, measured between cell centers.
func (f *ForceField) SampleSmooth(x, y float32) Vec2 {
	gx := x/f.cellW - 0.5
	gy := y/f.cellH - 0.5

	col0 := clampInt(int(math.Floor(float64(gx))), 0, f.cols-1)
	row0 := clampInt(int(math.Floor(float64(gy))), 0, f.rows-1)
	col1 := clampInt(col0+1, 0, f.cols-1)
	row1 := clampInt(row0+1, 0, f.rows-1)

	tx := Clamp01(gx - float32(col0))
	ty := Clamp01(gy - float32(row0))

	v00 := f.vecs[row0*f.cols+col0]
	v10 := f.vecs[row0*f.cols+col1]
	v01 := f.vecs[row1*f.cols+col0]
	v11 := f.vecs[row1*f.cols+col1]

	top := Vec2{lerp(v00.X, v10.X, tx), lerp(v00.Y, v10.Y, tx)}
	bot := Vec2{lerp(v01.X, v11.X, tx), lerp(v01.Y, v11.Y, tx)}
	return Vec2{lerp(top.X, bot.X, ty), lerp(top.Y, bot.Y, ty)}
}

// AddWind adds a uniform vector of the given bearing (radians) and strength
// to every cell. Zero strength is a no-op.
func (f *ForceField) AddWind(direction, strength float32) {
	if strength == 0 {
		return
	}
	wx := strength * float32(math.Cos(float64(direction)))
	wy := strength * float32(math.Sin(float64(direction)))
	for i := range f.vecs {
		f.vecs[i].X += wx
		f.vecs[i].Y += wy
	}
}

// AddThermal adds a radial outward push centered at (cx, cy), fading
// linearly to zero at the given radius.
func (f *ForceField) AddThermal(cx, cy, radius, strength float32) {
	if strength == 0 || radius <= 0 {
		return
	}
	f.eachCellWithin(cx, cy, radius, func(i int, dx, dy, dist float32) {
		mag := strength * (1 - dist/radius)
		f.vecs[i].X += dx / dist * mag
		f.vecs[i].Y += dy / dist * mag
	})
}

// AddVortex adds a tangential swirl around (cx, cy), fading linearly to zero
// at the given radius. Positive strength swirls counterclockwise.
func (f *ForceField) AddVortex(cx, cy, radius, strength float32) {
	if strength == 0 || radius <= 0 {
		return
	}
	f.eachCellWithin(cx, cy, radius, func(i int, dx, dy, dist float32) {
		mag := strength * (1 - dist/radius)
		f.vecs[i].X += -dy / dist * mag
		f.vecs[i].Y += dx / dist * mag
	})
}

// AddTurbulence adds Perlin-noise-driven directional noise: each cell gets a
// unit vector whose bearing comes from the noise value at the cell center,
// scaled by strength. Zero strength is a no-op.
func (f *ForceField) AddTurbulence(scale, strength float32, seed int64) {
	if strength == 0 {
		return
	}
	p := perlin.NewPerlin(2, 2, 3, seed)
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			cx := (float32(col) + 0.5) * f.cellW
			cy := (float32(row) + 0.5) * f.cellH
			n := p.Noise2D(float64(cx*scale), float64(cy*scale))
			angle := n * 2 * math.Pi
			i := row*f.cols + col
			f.vecs[i].X += strength * float32(math.Cos(angle))
			f.vecs[i].Y += strength * float32(math.Sin(angle))
		}
	}
}

// eachCellWithin visits cells whose center lies within radius of (cx, cy),
// passing the flat index, delta from center, and distance (always > 0).
func (f *ForceField) eachCellWithin(cx, cy, radius float32, visit func(i int, dx, dy, dist float32)) {
	radiusSq := radius * radius
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			dx := (float32(col)+0.5)*f.cellW - cx
			dy := (float32(row)+0.5)*f.cellH - cy
			distSq := dx*dx + dy*dy
			if distSq > radiusSq || distSq == 0 {
				continue
			}
			visit(row*f.cols+col, dx, dy, float32(math.Sqrt(float64(distSq))))
		}
	}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
