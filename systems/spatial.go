package systems

import "github.com/mlange-42/ark/ecs"

// Grid is a sparse cell hash over world space: O(1) amortized insert and
// O(k) neighbor queries over the 3x3 bucket neighborhood of a point.
//
// Cell keys wrap modulo the grid dimensions, so on small or non-square grids
// distant cells can alias into the same bucket. That is a deliberate
// simplification inherited from the reference behavior: query results are
// candidates, not neighbors, and every caller confirms them with an exact
// distance test.
type Grid struct {
	Enabled bool

	cellSize float32
	width    float32
	height   float32
	cols     int
	rows     int

	cells  map[int32][]ecs.Entity
	active []int32 // keys with at least one entity, for O(active) clearing

	queryBuf [9][]ecs.Entity
}

// NewGrid creates a spatial grid covering the given world size.
func NewGrid(cellSize, width, height float32) *Grid {
	g := &Grid{cells: make(map[int32][]ecs.Entity, 256)}
	g.Resize(cellSize, width, height)
	return g
}

// Resize reconfigures the grid and reports whether the shape changed.
// A shape change drops all buckets; callers rebuild by re-inserting.
func (g *Grid) Resize(cellSize, width, height float32) bool {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	if cellSize == g.cellSize && cols == g.cols && rows == g.rows {
		g.width = width
		g.height = height
		return false
	}

	g.cellSize = cellSize
	g.width = width
	g.height = height
	g.cols = cols
	g.rows = rows
	g.cells = make(map[int32][]ecs.Entity, 256)
	g.active = g.active[:0]
	return true
}

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Clear empties every active bucket without touching untouched cells.
func (g *Grid) Clear() {
	for _, key := range g.active {
		g.cells[key] = g.cells[key][:0]
	}
	g.active = g.active[:0]
}

// Reset clears accumulated state (dimension contract).
func (g *Grid) Reset() {
	g.Clear()
}

// Insert adds an entity at the given position.
func (g *Grid) Insert(e ecs.Entity, x, y float32) {
	key := g.cellKey(int(x/g.cellSize), int(y/g.cellSize))
	bucket := g.cells[key]
	if len(bucket) == 0 {
		g.active = append(g.active, key)
	}
	g.cells[key] = append(bucket, e)
}

// QueryNearby returns the non-empty buckets of the 3x3 cell neighborhood
// around the query point. Buckets are returned unflattened to avoid an
// allocation; the backing array is reused by the next call.
func (g *Grid) QueryNearby(x, y float32) [][]ecs.Entity {
	centerCol := int(x / g.cellSize)
	centerRow := int(y / g.cellSize)

	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			bucket := g.cells[g.cellKey(centerCol+dc, centerRow+dr)]
			if len(bucket) > 0 {
				g.queryBuf[n] = bucket
				n++
			}
		}
	}
	return g.queryBuf[:n]
}

// CountNearby returns the number of candidates in the 3x3 neighborhood.
func (g *Grid) CountNearby(x, y float32) int {
	count := 0
	for _, bucket := range g.QueryNearby(x, y) {
		count += len(bucket)
	}
	return count
}

// CellAt returns the bucket for a (row, col) pair; used by the cache-order
// traversal. Out-of-range coordinates wrap like every other key computation.
func (g *Grid) CellAt(row, col int) []ecs.Entity {
	return g.cells[g.cellKey(col, row)]
}

// cellKey folds any column/row into range by modulo and flattens to
// row*cols+col. The modulo fold is the documented aliasing source.
func (g *Grid) cellKey(col, row int) int32 {
	col = wrapIndex(col, g.cols)
	row = wrapIndex(row, g.rows)
	return int32(row*g.cols + col)
}
