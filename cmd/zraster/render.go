package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"

	"github.com/gogpu/zraster"
	"github.com/gogpu/zraster/gltfmesh"
	"github.com/gogpu/zraster/internal/watch"
)

type renderJob struct {
	cfg     config
	stdout  io.Writer
	preview bool
}

// loadModel reads the configured inputs. A missing vertex or face file is
// an error; malformed lines inside them are only logged.
func (j *renderJob) loadModel() (zraster.Model, error) {
	if j.cfg.GLTF != "" {
		return gltfmesh.Load(j.cfg.GLTF, nil)
	}

	vertexText, err := readOptional(j.cfg.Vertices)
	if err != nil {
		return zraster.Model{}, err
	}
	triText, err := readOptional(j.cfg.Faces)
	if err != nil {
		return zraster.Model{}, err
	}

	m, rep := zraster.BuildWithReport(vertexText, triText)
	for _, le := range rep.SkippedVertices {
		zraster.Logger().Warn("skipped vertex", "file", j.cfg.Vertices, "line", le.Line, "reason", le.Err)
	}
	for _, le := range rep.SkippedTriangles {
		zraster.Logger().Warn("skipped face", "file", j.cfg.Faces, "line", le.Line, "reason", le.Err)
	}
	return m, nil
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

// once loads, renders and writes the image.
func (j *renderJob) once() error {
	m, err := j.loadModel()
	if err != nil {
		return err
	}
	opts, err := j.cfg.Render.Options()
	if err != nil {
		return err
	}

	pm, st := zraster.RenderWithStats(m, zraster.WithOptions(opts))

	if err := j.write(pm); err != nil {
		return err
	}
	zraster.Logger().Info("image written",
		"output", j.cfg.Output,
		"size", fmt.Sprintf("%dx%d", pm.Width()*j.cfg.Scale, pm.Height()*j.cfg.Scale),
		"vertices", len(m.Vertices),
		"triangles", len(m.Triangles),
		"degenerate", st.TrianglesDegenerate,
		"skipped", st.TrianglesSkipped)

	if j.preview {
		return writePreview(j.stdout, pm, opts.CellSize, termProfile())
	}
	return nil
}

// write encodes pm to the output file, upscaled by the configured factor.
func (j *renderJob) write(pm *zraster.Pixmap) error {
	format, err := j.cfg.format()
	if err != nil {
		return err
	}

	out := pm
	if s := j.cfg.Scale; s > 1 {
		scaled := transform.Resize(pm, pm.Width()*s, pm.Height()*s, transform.NearestNeighbor)
		out = zraster.FromImage(scaled)
	}

	switch format {
	case "bmp":
		return out.SaveBMP(j.cfg.Output)
	default:
		return out.SavePNG(j.cfg.Output)
	}
}

// watch re-renders whenever an input changes, until ctx is done.
// Failed re-renders are logged and the previous image is kept.
func (j *renderJob) watch(ctx context.Context) error {
	paths := j.cfg.inputs()
	zraster.Logger().Info("watching for changes", "files", paths)

	return watch.Files(ctx, paths, watch.DefaultDebounce,
		func() {
			if err := j.once(); err != nil {
				zraster.Logger().Warn("re-render failed", "err", err)
			}
		},
		func(err error) {
			zraster.Logger().Warn("watch error", "err", err)
		})
}
