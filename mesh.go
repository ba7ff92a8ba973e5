package zraster

import (
	"image"
	"math"
)

// Vertex is a colored point of a mesh.
//
// X and Y are canvas coordinates measured in cells and may lie outside the
// canvas. Z is the depth; lower values are nearer to the viewer.
type Vertex struct {
	X, Y  float64
	Z     int
	Color RGB
}

// NewVertex creates a vertex, flooring z to an integer depth.
// A non-finite z produces a vertex that is never painted.
func NewVertex(x, y, z float64, c RGB) Vertex {
	return Vertex{X: x, Y: y, Z: floorDepth(z), Color: c}
}

// Pos returns the vertex position in cell space.
func (v Vertex) Pos() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// noDepth marks a depth that could not be represented as an integer.
// It is far beyond any 8-bit depth, so the depth test always rejects it.
const noDepth = math.MaxInt32

func floorDepth(z float64) int {
	if !isFinite(z) {
		return noDepth
	}
	f := math.Floor(z)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return noDepth
	}
	return int(f)
}

// Triangle is an ordered triple of 1-based indices into Model.Vertices.
type Triangle [3]int

// Model is a list of vertices and the triangles connecting them.
type Model struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// Triangle resolves the i-th triangle (0-based) to its three vertices.
// ok is false when i is out of range or the triangle references a vertex
// index outside [1, len(Vertices)].
func (m Model) Triangle(i int) (a, b, c Vertex, ok bool) {
	if i < 0 || i >= len(m.Triangles) {
		return Vertex{}, Vertex{}, Vertex{}, false
	}
	t := m.Triangles[i]
	for _, idx := range t {
		if idx < 1 || idx > len(m.Vertices) {
			return Vertex{}, Vertex{}, Vertex{}, false
		}
	}
	return m.Vertices[t[0]-1], m.Vertices[t[1]-1], m.Vertices[t[2]-1], true
}

// Bounds returns the smallest cell rectangle containing every vertex with
// finite coordinates. It returns the empty rectangle when there is none.
func (m Model) Bounds() image.Rectangle {
	var r image.Rectangle
	first := true
	for _, v := range m.Vertices {
		if !v.Pos().IsFinite() {
			continue
		}
		cell := image.Rect(
			int(math.Floor(v.X)), int(math.Floor(v.Y)),
			int(math.Floor(v.X))+1, int(math.Floor(v.Y))+1,
		)
		if first {
			r = cell
			first = false
			continue
		}
		r = r.Union(cell)
	}
	return r
}
