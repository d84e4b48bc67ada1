package systems

import "sort"

// CacheOrder produces a space-filling-curve traversal order over grid cells.
// Walking cells in ascending Morton code keeps spatially adjacent buckets
// close in iteration order, which improves locality of neighbor access.
// It only reorders traversal; it never filters or drops cells.
type CacheOrder struct {
	Enabled bool

	rows, cols int
	order      []int32 // cell indices (row*cols+col) sorted by Morton code
}

// NewCacheOrder creates an empty cache-order index.
func NewCacheOrder() *CacheOrder {
	return &CacheOrder{}
}

// MortonEncode interleaves the low 16 bits of x and y into a single code.
func MortonEncode(x, y uint32) uint32 {
	return part1By1(x) | part1By1(y)<<1
}

// MortonDecode is the exact inverse of MortonEncode for 16-bit inputs.
func MortonDecode(code uint32) (x, y uint32) {
	return compact1By1(code), compact1By1(code >> 1)
}

// part1By1 spreads the low 16 bits of v into the even bit positions.
func part1By1(v uint32) uint32 {
	v &= 0x0000ffff
	v = (v | v<<8) & 0x00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return v
}

// compact1By1 gathers the even bit positions of v back into the low 16 bits.
func compact1By1(v uint32) uint32 {
	v &= 0x55555555
	v = (v | v>>1) & 0x33333333
	v = (v | v>>2) & 0x0f0f0f0f
	v = (v | v>>4) & 0x00ff00ff
	v = (v | v>>8) & 0x0000ffff
	return v
}

// Rebuild memoizes the full cell ordering. It is a no-op while the grid
// shape is unchanged.
func (c *CacheOrder) Rebuild(rows, cols int) {
	if rows == c.rows && cols == c.cols && c.order != nil {
		return
	}
	c.rows = rows
	c.cols = cols

	c.order = make([]int32, rows*cols)
	for i := range c.order {
		c.order[i] = int32(i)
	}
	sort.Slice(c.order, func(i, j int) bool {
		a, b := c.order[i], c.order[j]
		ca := MortonEncode(uint32(a)%uint32(cols), uint32(a)/uint32(cols))
		cb := MortonEncode(uint32(b)%uint32(cols), uint32(b)/uint32(cols))
		return ca < cb
	})
}

// Iterate visits every (row, col) cell exactly once: in ascending Morton
// code order when enabled, in plain row-major order otherwise.
func (c *CacheOrder) Iterate(rows, cols int, visit func(row, col int)) {
	if !c.Enabled {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				visit(row, col)
			}
		}
		return
	}

	c.Rebuild(rows, cols)
	for _, idx := range c.order {
		visit(int(idx)/cols, int(idx)%cols)
	}
}

// Reset drops the memoized ordering so the next Iterate rebuilds it.
func (c *CacheOrder) Reset() {
	c.rows, c.cols = 0, 0
	c.order = nil
}
