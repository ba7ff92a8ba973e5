// Package zraster renders small colored triangle meshes into blocky raster
// images with a depth buffer.
//
// # Overview
//
// zraster is a Pure Go software rasterizer. A mesh is described as two
// plain-text blocks, a vertex list and a face list, which are parsed into a
// [Model] and rasterized into a [Pixmap] using orthographic projection,
// barycentric color interpolation and per-cell depth testing.
//
// # Quick Start
//
//	import "github.com/gogpu/zraster"
//
//	m := zraster.Build(
//	    "0, 0, 0, #ff0000\n10, 0, 0, #00ff00\n0, 10, 0, #0000ff",
//	    "1, 2, 3",
//	)
//
//	pm := zraster.Render(m, zraster.WithSize(200, 200), zraster.WithCellSize(10))
//	pm.SavePNG("output.png")
//
// # Input Grammar
//
// One vertex per line:
//
//	x, y, z, #RRGGBB
//
// One triangle per line, as 1-based indices into the vertices:
//
//	i, j, k
//
// Malformed lines are dropped individually. Use [BuildWithReport] to see
// which lines were dropped and why.
//
// # Coordinate System
//
//   - Vertex X and Y are measured in cells, not pixels
//   - Origin (0,0) at top-left, X increases right, Y increases down
//   - Z is depth: lower values are nearer and win the depth test
//   - One cell covers CellSize x CellSize pixels, giving a blocky look
//
// # Depth Buffer
//
// Depths are stored per cell as 8-bit clamped values initialized to 255.
// A candidate is painted only when strictly nearer than the stored depth, so
// exact ties keep whatever was painted first: vertices before triangles,
// triangles in model order.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Build, Render, Model, Pixmap, DepthBuffer, options
//   - gltfmesh: import of glTF meshes into a Model
//   - internal/parallel: worker pool behind RenderBatch
//   - cmd/zraster, cmd/zview: headless renderer and live viewer
package zraster

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
