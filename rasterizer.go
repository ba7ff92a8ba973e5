package zraster

import (
	"image"
	"math"
)

// Stats counts what a render did.
type Stats struct {
	// VerticesPainted is the number of vertex dots that passed the depth test.
	VerticesPainted int

	// CellsPainted is the number of triangle cells that passed the depth test.
	CellsPainted int

	// CellsOccluded is the number of triangle cells rejected by the depth test.
	CellsOccluded int

	// TrianglesSkipped counts triangles referencing a missing vertex.
	TrianglesSkipped int

	// TrianglesDegenerate counts triangles whose vertices are collinear or
	// not finite. They paint nothing.
	TrianglesDegenerate int
}

// Render rasterizes a model into a new framebuffer.
//
// The framebuffer is cleared to the background color and a fresh depth
// buffer is allocated. Every vertex is painted as a single cell, then every
// triangle is filled in model order with barycentric color interpolation.
// A cell is painted only when its depth is strictly nearer than what is
// already there, so on exact ties the first painted element wins.
//
// Render never fails: malformed geometry paints nothing.
func Render(m Model, opts ...Option) *Pixmap {
	pm, _ := RenderWithStats(m, opts...)
	return pm
}

// RenderWithStats is like Render and also returns render statistics.
func RenderWithStats(m Model, opts ...Option) (*Pixmap, Stats) {
	o := resolveOptions(opts)

	fb := NewPixmap(o.Width, o.Height)
	fb.Clear(o.Background)
	depth := NewDepthBuffer(o.Grid())

	st := Draw(fb, depth, m, o.CellSize)

	Logger().Debug("zraster: render",
		"width", o.Width,
		"height", o.Height,
		"cell", o.CellSize,
		"vertices_painted", st.VerticesPainted,
		"cells_painted", st.CellsPainted,
		"cells_occluded", st.CellsOccluded,
		"triangles_skipped", st.TrianglesSkipped,
		"triangles_degenerate", st.TrianglesDegenerate)

	return fb, st
}

// Draw paints a model into an existing framebuffer and depth buffer without
// clearing either. cellSize is the pixel size of one depth cell; values
// below 1 are treated as 1.
//
// Draw lets a caller keep buffers between frames; the caller owns both
// buffers and must not share them across goroutines during the call.
func Draw(fb *Pixmap, depth *DepthBuffer, m Model, cellSize int) Stats {
	cellSize = max(cellSize, 1)
	var st Stats

	for _, v := range m.Vertices {
		cx, cy, ok := cellOf(depth, v.X, v.Y)
		if !ok {
			continue
		}
		if paintCell(fb, depth, cellSize, cx, cy, float64(v.Z), v.Color) {
			st.VerticesPainted++
		}
	}

	for i := range m.Triangles {
		a, b, c, ok := m.Triangle(i)
		if !ok {
			st.TrianglesSkipped++
			continue
		}
		drawTriangle(fb, depth, cellSize, a, b, c, &st)
	}

	return st
}

// drawTriangle fills the cells of triangle abc.
//
// Each cell (x, y) is expressed in the basis u = b-a, v = c-a; the two
// coordinates are the weights of b and c. A collinear triangle has a
// singular basis whose inverse is not finite, so every weight test fails
// and nothing is painted.
func drawTriangle(fb *Pixmap, depth *DepthBuffer, cellSize int, a, b, c Vertex, st *Stats) {
	if !a.Pos().IsFinite() || !b.Pos().IsFinite() || !c.Pos().IsFinite() {
		st.TrianglesDegenerate++
		return
	}

	box, ok := cellBounds(depth, a, b, c)
	if !ok {
		return
	}

	basis := Columns(b.Pos().Sub(a.Pos()), c.Pos().Sub(a.Pos()))
	if basis.Det() == 0 {
		st.TrianglesDegenerate++
	}
	inv := basis.Inverse()

	za, zb, zc := float64(a.Z), float64(b.Z), float64(c.Z)

	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			w := inv.MulVec(V2(float64(x), float64(y)).Sub(a.Pos()))
			wb, wc := w.X, w.Y
			wa := 1 - wb - wc

			if !inUnit(wa) || !inUnit(wb) || !inUnit(wc) {
				continue
			}

			z := wa*za + wb*zb + wc*zc
			col := Mix3(a.Color, b.Color, c.Color, wa, wb, wc)
			if paintCell(fb, depth, cellSize, x, y, z, col) {
				st.CellsPainted++
			} else {
				st.CellsOccluded++
			}
		}
	}
}

// inUnit reports whether f lies in the half-open range [0, 1).
// NaN is never inside.
func inUnit(f float64) bool {
	return f >= 0 && f < 1
}

// paintCell is the depth-tested paint shared by the vertex and triangle
// passes. The candidate at cell (cx, cy) is dropped when the stored depth
// is less than or equal to z; otherwise the depth is stored and the
// cellSize x cellSize pixel block is filled with c.
func paintCell(fb *Pixmap, depth *DepthBuffer, cellSize, cx, cy int, z float64, c RGB) bool {
	if !depth.Test(cx, cy, z) {
		return false
	}
	fb.FillRect(image.Rect(cx*cellSize, cy*cellSize, (cx+1)*cellSize, (cy+1)*cellSize), c)
	return true
}

// cellOf returns the cell containing the point (x, y), if it is on the grid.
func cellOf(depth *DepthBuffer, x, y float64) (cx, cy int, ok bool) {
	fx, fy := math.Floor(x), math.Floor(y)
	if !(fx >= 0 && fx < float64(depth.Cols()) && fy >= 0 && fy < float64(depth.Rows())) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// cellBounds returns the cells whose sample points can fall inside
// triangle abc, clamped to the depth buffer. ok is false when the triangle
// lies entirely off the grid.
func cellBounds(depth *DepthBuffer, a, b, c Vertex) (image.Rectangle, bool) {
	minX := math.Ceil(math.Max(min(a.X, b.X, c.X), 0))
	minY := math.Ceil(math.Max(min(a.Y, b.Y, c.Y), 0))
	maxX := math.Floor(math.Min(max(a.X, b.X, c.X), float64(depth.Cols()-1)))
	maxY := math.Floor(math.Min(max(a.Y, b.Y, c.Y), float64(depth.Rows()-1)))

	if minX > maxX || minY > maxY {
		return image.Rectangle{}, false
	}
	return image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1), true
}
