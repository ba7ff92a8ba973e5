package zraster

import (
	"math"
	"math/rand/v2"
	"testing"
)

// cornerModel is the triangle with a red corner at the origin, a green
// corner on the x axis and a blue corner on the y axis, all at depth z.
func cornerModel(z float64) Model {
	return Model{
		Vertices: []Vertex{
			NewVertex(0, 0, z, Red),
			NewVertex(10, 0, z, Green),
			NewVertex(0, 10, z, Blue),
		},
		Triangles: []Triangle{{1, 2, 3}},
	}
}

func smallCanvas() []Option {
	return []Option{WithSize(20, 20), WithCellSize(1)}
}

func TestRenderCornerTriangle(t *testing.T) {
	pm, st := RenderWithStats(cornerModel(0), smallCanvas()...)

	if pm.Width() != 20 || pm.Height() != 20 {
		t.Fatalf("size = %dx%d, want 20x20", pm.Width(), pm.Height())
	}

	// Vertex cells come from the point pass.
	if got := pm.GetPixel(0, 0); got != Red {
		t.Errorf("origin = %v, want pure red", got)
	}
	if got := pm.GetPixel(10, 0); got != Green {
		t.Errorf("(10,0) = %v, want pure green", got)
	}
	if got := pm.GetPixel(0, 10); got != Blue {
		t.Errorf("(0,10) = %v, want pure blue", got)
	}

	// Edge midpoints are even blends; 127.5 rounds half to even.
	if got := pm.GetPixel(5, 0); got != (RGB{128, 128, 0}) {
		t.Errorf("bottom edge midpoint = %v, want (128,128,0)", got)
	}
	if got := pm.GetPixel(0, 5); got != (RGB{128, 0, 128}) {
		t.Errorf("left edge midpoint = %v, want (128,0,128)", got)
	}

	// Red falls and green rises along the bottom edge.
	for x := 1; x < 10; x++ {
		prev, cur := pm.GetPixel(x-1, 0), pm.GetPixel(x, 0)
		if cur.R > prev.R || cur.G < prev.G || cur.B != 0 {
			t.Errorf("bottom edge not a red to green gradient at x=%d: %v then %v", x, prev, cur)
		}
	}

	for y := range 20 {
		for x := range 20 {
			switch {
			case x+y <= 8:
				if pm.GetPixel(x, y) == Paper {
					t.Errorf("interior cell (%d,%d) left unpainted", x, y)
				}
			case x+y >= 11:
				if got := pm.GetPixel(x, y); got != Paper {
					t.Errorf("cell (%d,%d) beyond the hypotenuse = %v, want background", x, y, got)
				}
			}
		}
	}

	if st.VerticesPainted != 3 || st.TrianglesSkipped != 0 || st.TrianglesDegenerate != 0 {
		t.Errorf("stats = %+v", st)
	}
	if st.CellsPainted == 0 {
		t.Error("no triangle cells painted")
	}
}

func TestRenderDefaultCanvas(t *testing.T) {
	pm := Render(Model{Vertices: []Vertex{NewVertex(1, 2, 0, Red)}})

	if pm.Width() != DefaultWidth || pm.Height() != DefaultHeight {
		t.Fatalf("size = %dx%d", pm.Width(), pm.Height())
	}
	// Vertex (1,2) fills the 10x10 block at pixel (10,20).
	for _, p := range [][2]int{{10, 20}, {19, 29}} {
		if got := pm.GetPixel(p[0], p[1]); got != Red {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
	for _, p := range [][2]int{{9, 20}, {20, 29}, {10, 30}, {0, 0}} {
		if got := pm.GetPixel(p[0], p[1]); got != Paper {
			t.Errorf("pixel %v = %v, want background", p, got)
		}
	}
}

func TestRenderEmptyModel(t *testing.T) {
	pm := Render(Model{}, WithSize(8, 8), WithBackground(White))
	want := NewPixmap(8, 8)
	want.Clear(White)
	if !pm.Equal(want) {
		t.Error("empty model is not a plain background")
	}
}

func TestRenderDegenerateTriangle(t *testing.T) {
	tests := []struct {
		name   string
		verts  []Vertex
		dots   int
		wantDg int
	}{
		{
			name: "coincident vertices",
			verts: []Vertex{
				NewVertex(2, 2, 0, Red),
				NewVertex(2, 2, 0, Green),
				NewVertex(8, 8, 0, Blue),
			},
			dots:   2,
			wantDg: 1,
		},
		{
			name: "collinear vertices",
			verts: []Vertex{
				NewVertex(1, 1, 0, Red),
				NewVertex(5, 5, 0, Green),
				NewVertex(9, 9, 0, Blue),
			},
			dots:   3,
			wantDg: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Model{Vertices: tt.verts, Triangles: []Triangle{{1, 2, 3}}}
			pm, st := RenderWithStats(m, smallCanvas()...)

			if n := countNot(pm, Paper); n != tt.dots {
				t.Errorf("painted %d cells, want only the %d vertex dots", n, tt.dots)
			}
			if st.CellsPainted != 0 || st.TrianglesDegenerate != tt.wantDg {
				t.Errorf("stats = %+v", st)
			}
		})
	}
}

func TestRenderOcclusionIndependentOfOrder(t *testing.T) {
	near := cornerModel(3).Vertices
	far := cornerModel(5).Vertices
	for i := range far {
		far[i].Color = RGB{200, 200, 0}
	}
	for i := range near {
		near[i].Color = RGB{0, 0, 200}
	}
	verts := append(append([]Vertex(nil), far...), near...)

	farFirst := Render(Model{Vertices: verts, Triangles: []Triangle{{1, 2, 3}, {4, 5, 6}}}, smallCanvas()...)
	nearFirst := Render(Model{Vertices: verts, Triangles: []Triangle{{4, 5, 6}, {1, 2, 3}}}, smallCanvas()...)

	if !farFirst.Equal(nearFirst) {
		t.Error("triangle order changed the result of a strict depth difference")
	}
	for _, p := range [][2]int{{0, 0}, {2, 2}, {5, 0}, {0, 9}} {
		if got := farFirst.GetPixel(p[0], p[1]); got != (RGB{0, 0, 200}) {
			t.Errorf("cell %v = %v, want the nearer triangle's color", p, got)
		}
	}
}

func TestRenderDepthTieFirstWins(t *testing.T) {
	first := cornerModel(4).Vertices
	second := cornerModel(4).Vertices
	for i := range first {
		first[i].Color = RGB{200, 0, 0}
		second[i].Color = RGB{0, 200, 0}
	}
	verts := append(append([]Vertex(nil), first...), second...)

	pm := Render(Model{Vertices: verts, Triangles: []Triangle{{1, 2, 3}, {4, 5, 6}}}, smallCanvas()...)
	if got := pm.GetPixel(2, 2); got != (RGB{200, 0, 0}) {
		t.Errorf("tied cell = %v, want first triangle", got)
	}

	pm = Render(Model{Vertices: verts, Triangles: []Triangle{{4, 5, 6}, {1, 2, 3}}}, smallCanvas()...)
	if got := pm.GetPixel(2, 2); got != (RGB{0, 200, 0}) {
		t.Errorf("tied cell = %v, want first triangle", got)
	}

	// The point pass runs first, so vertex dots win ties against triangles.
	if got := pm.GetPixel(0, 0); got != (RGB{200, 0, 0}) {
		t.Errorf("vertex cell = %v, want the first vertex", got)
	}
}

func TestDrawOffCanvasTriangleLeavesBuffersUntouched(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		c    Vec2
	}{
		{"right", V2(100, 100), V2(110, 100), V2(100, 110)},
		{"left", V2(-30, 2), V2(-20, 2), V2(-30, 12)},
		{"above", V2(2, -30), V2(12, -30), V2(2, -20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Model{
				Vertices: []Vertex{
					NewVertex(tt.a.X, tt.a.Y, 0, Red),
					NewVertex(tt.b.X, tt.b.Y, 0, Green),
					NewVertex(tt.c.X, tt.c.Y, 0, Blue),
				},
				Triangles: []Triangle{{1, 2, 3}},
			}

			fb := NewPixmap(20, 20)
			fb.Clear(Paper)
			before := fb.Clone()
			depth := NewDepthBuffer(20, 20)

			st := Draw(fb, depth, m, 1)

			if !fb.Equal(before) {
				t.Error("framebuffer modified")
			}
			for i, d := range depth.Data() {
				if d != FarDepth {
					t.Fatalf("depth cell %d = %d", i, d)
				}
			}
			if st != (Stats{}) {
				t.Errorf("stats = %+v", st)
			}
		})
	}
}

func TestRenderPartiallyOffCanvas(t *testing.T) {
	m := Model{
		Vertices: []Vertex{
			NewVertex(-5, -5, 0, Red),
			NewVertex(40, -5, 0, Red),
			NewVertex(-5, 40, 0, Red),
		},
		Triangles: []Triangle{{1, 2, 3}},
	}
	pm := Render(m, smallCanvas()...)
	for _, p := range [][2]int{{0, 0}, {19, 0}, {0, 19}, {10, 10}} {
		if got := pm.GetPixel(p[0], p[1]); got != Red {
			t.Errorf("cell %v = %v, want red", p, got)
		}
	}
}

func TestRenderPartialEdgeCell(t *testing.T) {
	// 25x25 with 10 px cells: the third column and row are 5 px wide.
	m := Model{Vertices: []Vertex{NewVertex(2, 2, 0, Red)}}
	pm := Render(m, WithSize(25, 25), WithCellSize(10))

	if pm.Width() != 25 || pm.Height() != 25 {
		t.Fatalf("size = %dx%d", pm.Width(), pm.Height())
	}
	for _, p := range [][2]int{{20, 20}, {24, 24}} {
		if got := pm.GetPixel(p[0], p[1]); got != Red {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
	if got := pm.GetPixel(19, 19); got != Paper {
		t.Errorf("pixel (19,19) = %v, want background", got)
	}
}

func TestRenderIdempotent(t *testing.T) {
	m := demoModel()
	a := Render(m)
	b := Render(m)
	if !a.Equal(b) {
		t.Error("two renders of the same model differ")
	}
}

func TestRenderSkipsInvalidTriangles(t *testing.T) {
	m := cornerModel(0)
	m.Triangles = append(m.Triangles, Triangle{0, 1, 2}, Triangle{1, 2, 4}, Triangle{-3, 1, 2})

	pm, st := RenderWithStats(m, smallCanvas()...)
	if st.TrianglesSkipped != 3 {
		t.Errorf("TrianglesSkipped = %d, want 3", st.TrianglesSkipped)
	}
	if !pm.Equal(Render(cornerModel(0), smallCanvas()...)) {
		t.Error("invalid triangles changed the image")
	}
}

func TestRenderNonFiniteVertices(t *testing.T) {
	m := Build(
		"x, 0, 0, #ff0000\n10, 0, 0, #00ff00\n0, 10, 0, #0000ff\n3, 3, nope, #ffffff\n",
		"1, 2, 3\n2, 3, 4\n",
	)

	pm, st := RenderWithStats(m, smallCanvas()...)

	// Only the two finite-depth, finite-position vertices are dotted.
	if st.VerticesPainted != 2 {
		t.Errorf("VerticesPainted = %d, want 2", st.VerticesPainted)
	}
	if st.TrianglesDegenerate != 1 {
		t.Errorf("TrianglesDegenerate = %d, want 1", st.TrianglesDegenerate)
	}
	// Away from its finite-depth edge the second triangle is too deep to pass.
	if got := pm.GetPixel(3, 3); got == White {
		t.Error("vertex with non-numeric depth was painted")
	}
}

func TestDrawKeepsBuffersBetweenCalls(t *testing.T) {
	fb := NewPixmap(20, 20)
	fb.Clear(Paper)
	depth := NewDepthBuffer(20, 20)

	first := Draw(fb, depth, cornerModel(0), 1)
	second := Draw(fb, depth, cornerModel(0), 1)

	if first.CellsPainted == 0 {
		t.Fatal("first draw painted nothing")
	}
	if second.VerticesPainted != 0 || second.CellsPainted != 0 {
		t.Errorf("second draw over the same depth painted %+v", second)
	}
	if second.CellsOccluded != first.CellsPainted {
		t.Errorf("CellsOccluded = %d, want %d", second.CellsOccluded, first.CellsPainted)
	}
	if depth.At(0, 0) != 0 {
		t.Errorf("depth at origin = %d, want 0", depth.At(0, 0))
	}
}

// TestRenderPaintsOnlyInsideTriangles checks painted cells against an
// independent edge-function test on pseudo-random triangles.
func TestRenderPaintsOnlyInsideTriangles(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	const size = 32

	for iter := range 50 {
		m := Model{Triangles: []Triangle{{1, 2, 3}}}
		for range 3 {
			m.Vertices = append(m.Vertices, NewVertex(
				r.Float64()*size*1.4-size*0.2,
				r.Float64()*size*1.4-size*0.2,
				float64(r.IntN(255)),
				RGB{uint8(100 + r.IntN(156)), uint8(r.IntN(256)), uint8(r.IntN(256))},
			))
		}

		pm := Render(m, WithSize(size, size), WithCellSize(1), WithBackground(Black))

		a, b, c := m.Vertices[0].Pos(), m.Vertices[1].Pos(), m.Vertices[2].Pos()
		area := b.Sub(a).Cross(c.Sub(a))
		const eps = 1e-9

		for y := range size {
			for x := range size {
				if pm.GetPixel(x, y) == Black || isVertexCell(m, x, y) {
					continue
				}
				p := V2(float64(x), float64(y))
				wb := p.Sub(a).Cross(c.Sub(a)) / area
				wc := b.Sub(a).Cross(p.Sub(a)) / area
				wa := 1 - wb - wc
				for _, w := range []float64{wa, wb, wc} {
					if math.IsNaN(w) || w < -eps || w > 1+eps {
						t.Fatalf("iter %d: cell (%d,%d) painted with weights (%v, %v, %v)", iter, x, y, wa, wb, wc)
					}
				}
			}
		}
	}
}

func isVertexCell(m Model, x, y int) bool {
	for _, v := range m.Vertices {
		if int(math.Floor(v.X)) == x && int(math.Floor(v.Y)) == y {
			return true
		}
	}
	return false
}

func countNot(pm *Pixmap, c RGB) int {
	n := 0
	for y := range pm.Height() {
		for x := range pm.Width() {
			if pm.GetPixel(x, y) != c {
				n++
			}
		}
	}
	return n
}

func demoModel() Model {
	return Build(
		"10, 10, 10, #770055\n40, 23, 0, #ff00ff\n5, 34, 5, #aa0099\n"+
			"3, 22, 0, #ffff00\n55, 5, 15, #996600\n15, 45, 10, #aa8800\n",
		"1, 2, 3\n4, 5, 6\n",
	)
}

func BenchmarkRenderDemo(b *testing.B) {
	m := demoModel()
	b.ReportAllocs()
	for b.Loop() {
		_ = Render(m)
	}
}

func BenchmarkDrawLargeTriangle(b *testing.B) {
	m := Model{
		Vertices: []Vertex{
			NewVertex(0, 0, 10, Red),
			NewVertex(63, 0, 10, Green),
			NewVertex(0, 47, 10, Blue),
		},
		Triangles: []Triangle{{1, 2, 3}},
	}
	fb := NewPixmap(DefaultWidth, DefaultHeight)
	depth := NewDepthBuffer(64, 48)
	b.ReportAllocs()
	for b.Loop() {
		depth.Reset()
		Draw(fb, depth, m, DefaultCellSize)
	}
}
