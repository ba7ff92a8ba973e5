// Command zview shows a rendered text mesh in a window and redraws it
// whenever the vertex or face file changes.
//
// Usage:
//
//	zview -vertices verts.txt -faces faces.txt [-cell 10] [-zoom 2]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/zraster"
	"github.com/gogpu/zraster/internal/watch"
)

func main() {
	var (
		vertices = flag.String("vertices", "", "vertex list file")
		faces    = flag.String("faces", "", "face list file")
		width    = flag.Int("width", zraster.DefaultWidth, "canvas width")
		height   = flag.Int("height", zraster.DefaultHeight, "canvas height")
		cell     = flag.Int("cell", zraster.DefaultCellSize, "cell size in pixels")
		zoom     = flag.Int("zoom", 1, "window scale factor")
	)
	flag.Parse()

	zraster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *vertices == "" && *faces == "" {
		fmt.Fprintln(os.Stderr, "zview: give -vertices and/or -faces")
		os.Exit(2)
	}

	v := &viewer{
		vertices: *vertices,
		faces:    *faces,
		opts: []zraster.Option{
			zraster.WithSize(*width, *height),
			zraster.WithCellSize(*cell),
		},
	}
	if err := v.reload(); err != nil {
		fmt.Fprintln(os.Stderr, "zview:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := watch.Files(ctx, v.inputs(), watch.DefaultDebounce,
			func() {
				if err := v.reload(); err != nil {
					zraster.Logger().Warn("reload failed", "err", err)
				}
			},
			func(err error) { zraster.Logger().Warn("watch error", "err", err) })
		if err != nil {
			zraster.Logger().Warn("watching disabled", "err", err)
		}
	}()

	ebiten.SetWindowTitle("zview: " + filepath.Base(*vertices))
	ebiten.SetWindowSize(max(*width, 1)*max(*zoom, 1), max(*height, 1)*max(*zoom, 1))
	if err := ebiten.RunGame(v); err != nil {
		fmt.Fprintln(os.Stderr, "zview:", err)
		os.Exit(1)
	}
}

// viewer is an ebiten.Game that displays the latest render.
type viewer struct {
	vertices, faces string
	opts            []zraster.Option

	mu    sync.Mutex
	pm    *zraster.Pixmap
	dirty bool

	img *ebiten.Image
}

func (v *viewer) inputs() []string {
	var paths []string
	for _, p := range []string{v.vertices, v.faces} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// reload re-reads the inputs and swaps in a fresh render.
func (v *viewer) reload() error {
	vertexText, err := readOptional(v.vertices)
	if err != nil {
		return err
	}
	triText, err := readOptional(v.faces)
	if err != nil {
		return err
	}

	m, rep := zraster.BuildWithReport(vertexText, triText)
	if n := rep.Skipped(); n > 0 {
		zraster.Logger().Warn("skipped malformed lines", "count", n)
	}
	pm := zraster.Render(m, v.opts...)

	v.mu.Lock()
	v.pm = pm
	v.dirty = true
	v.mu.Unlock()
	return nil
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (v *viewer) Update() error {
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	pm, dirty := v.pm, v.dirty
	v.dirty = false
	v.mu.Unlock()

	if pm == nil || pm.Width() == 0 || pm.Height() == 0 {
		return
	}
	if v.img == nil || v.img.Bounds().Dx() != pm.Width() || v.img.Bounds().Dy() != pm.Height() {
		if v.img != nil {
			v.img.Deallocate()
		}
		v.img = ebiten.NewImage(pm.Width(), pm.Height())
		dirty = true
	}
	if dirty {
		v.img.WritePixels(pm.Data())
	}
	screen.DrawImage(v.img, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pm == nil || v.pm.Width() == 0 || v.pm.Height() == 0 {
		return outsideWidth, outsideHeight
	}
	return v.pm.Width(), v.pm.Height()
}
