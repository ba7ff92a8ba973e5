package zraster

// FarDepth is the value every depth cell holds after Reset.
const FarDepth uint8 = 255

// DepthBuffer records the nearest depth painted so far for each cell.
// Cells are stored row-major with 8-bit clamped depths.
type DepthBuffer struct {
	cols  int
	rows  int
	cells []uint8
}

// NewDepthBuffer creates a depth buffer of cols x rows cells, all at
// FarDepth. Negative sizes are treated as zero.
func NewDepthBuffer(cols, rows int) *DepthBuffer {
	cols = max(cols, 0)
	rows = max(rows, 0)
	d := &DepthBuffer{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
	d.Reset()
	return d
}

// Cols returns the number of cell columns.
func (d *DepthBuffer) Cols() int { return d.cols }

// Rows returns the number of cell rows.
func (d *DepthBuffer) Rows() int { return d.rows }

// Reset sets every cell to FarDepth.
func (d *DepthBuffer) Reset() {
	for i := range d.cells {
		d.cells[i] = FarDepth
	}
}

// Contains reports whether (x, y) addresses a cell of the buffer.
func (d *DepthBuffer) Contains(x, y int) bool {
	return x >= 0 && x < d.cols && y >= 0 && y < d.rows
}

// At returns the stored depth of a cell. Cells outside the buffer report
// FarDepth.
func (d *DepthBuffer) At(x, y int) uint8 {
	if !d.Contains(x, y) {
		return FarDepth
	}
	return d.cells[y*d.cols+x]
}

// Test performs the depth test for a candidate at cell (x, y).
// It reports whether the candidate is strictly nearer than what is stored;
// when it is, the clamped depth is written. Ties keep the stored value and
// non-finite depths never pass.
func (d *DepthBuffer) Test(x, y int, z float64) bool {
	if !d.Contains(x, y) || !isFinite(z) {
		return false
	}
	i := y*d.cols + x
	if float64(d.cells[i]) <= z {
		return false
	}
	d.cells[i] = clampRound(z)
	return true
}

// Data returns the raw depth cells in row-major order.
func (d *DepthBuffer) Data() []uint8 {
	return d.cells
}
