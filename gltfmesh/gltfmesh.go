// Package gltfmesh imports triangle meshes from glTF 2.0 files into a
// zraster.Model.
//
// Positions are projected orthographically: X and Y are scaled and offset
// into cell space (Y is flipped, since glTF is Y-up and the canvas is
// Y-down) and Z is scaled and offset into the 8-bit depth range. The first
// vertex color set (COLOR_0) becomes the vertex color; vertices without one
// are white.
package gltfmesh

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/gogpu/zraster"
)

// ErrNoTriangles is returned when a document holds no triangle primitives.
var ErrNoTriangles = errors.New("gltfmesh: no triangle primitives")

// Options controls the projection from model space to cell space.
type Options struct {
	// Scale multiplies X and Y.
	Scale float64
	// OffsetX and OffsetY are added after scaling.
	OffsetX, OffsetY float64

	// DepthScale multiplies Z; DepthOffset is added after. Model-space
	// +Z points toward the viewer, so a negative DepthScale makes nearer
	// geometry win the depth test.
	DepthScale, DepthOffset float64
}

// DefaultOptions maps a unit-sized model centered on the origin onto the
// default 64x48 cell canvas.
func DefaultOptions() Options {
	return Options{
		Scale:       20,
		OffsetX:     32,
		OffsetY:     24,
		DepthScale:  -100,
		DepthOffset: 127,
	}
}

// Load reads a .gltf or .glb file.
// Passing nil for opts uses DefaultOptions.
func Load(path string, opts *Options) (zraster.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return zraster.Model{}, fmt.Errorf("gltfmesh: open %s: %w", path, err)
	}
	return FromDocument(doc, opts)
}

// Decode reads a glTF document from r. Buffers must be embedded, either as
// data URIs or in a binary .glb chunk.
func Decode(r io.Reader, opts *Options) (zraster.Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return zraster.Model{}, fmt.Errorf("gltfmesh: decode: %w", err)
	}
	return FromDocument(doc, opts)
}

// FromDocument converts every triangle primitive of every mesh in doc.
// Primitives are appended in document order; their indices are rebased so
// that the result is one Model.
func FromDocument(doc *gltf.Document, opts *Options) (zraster.Model, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}

	var m zraster.Model
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				zraster.Logger().Debug("gltfmesh: skipping primitive",
					"mesh", mi, "primitive", pi, "mode", prim.Mode)
				continue
			}
			if err := appendPrimitive(&m, doc, prim, o); err != nil {
				return zraster.Model{}, fmt.Errorf("gltfmesh: mesh %d primitive %d: %w", mi, pi, err)
			}
		}
	}

	if len(m.Triangles) == 0 {
		return zraster.Model{}, ErrNoTriangles
	}

	zraster.Logger().Debug("gltfmesh: imported",
		"vertices", len(m.Vertices),
		"triangles", len(m.Triangles))

	return m, nil
}

func appendPrimitive(m *zraster.Model, doc *gltf.Document, prim *gltf.Primitive, o Options) error {
	posAccessor, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return errors.New("missing POSITION attribute")
	}

	posBuffer := [][3]float32{}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], posBuffer)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var colors [][4]uint16
	if colorAccessor, ok := prim.Attributes[gltf.COLOR_0]; ok {
		vcBuffer := [][4]uint16{}
		colors, err = modeler.ReadColor64(doc, doc.Accessors[colorAccessor], vcBuffer)
		if err != nil {
			return fmt.Errorf("read colors: %w", err)
		}
	}

	base := len(m.Vertices)
	for i, p := range positions {
		c := zraster.White
		if i < len(colors) {
			c = zraster.RGB{
				R: uint8(colors[i][0] >> 8),
				G: uint8(colors[i][1] >> 8),
				B: uint8(colors[i][2] >> 8),
			}
		}
		m.Vertices = append(m.Vertices, project(p, c, o))
	}

	var indices []uint32
	if prim.Indices != nil {
		indexBuffer := []uint32{}
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], indexBuffer)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	// Triangles are 1-based in a Model.
	for i := 0; i+2 < len(indices); i += 3 {
		m.Triangles = append(m.Triangles, zraster.Triangle{
			base + int(indices[i]) + 1,
			base + int(indices[i+1]) + 1,
			base + int(indices[i+2]) + 1,
		})
	}
	return nil
}

func project(p [3]float32, c zraster.RGB, o Options) zraster.Vertex {
	x := float64(p[0])*o.Scale + o.OffsetX
	y := -float64(p[1])*o.Scale + o.OffsetY
	z := float64(p[2])*o.DepthScale + o.DepthOffset
	// Snap float32 noise before flooring so 0.1*-100 lands on -10, not -11.
	return zraster.NewVertex(x, y, math.Round(z*1e4)/1e4, c)
}
