// Command zraster renders a text mesh to an image file.
//
// Usage:
//
//	zraster -vertices verts.txt -faces faces.txt -o out.png
//	zraster -config scene.toml -preview
//	zraster -gltf model.glb -cell 4 -o model.bmp
//	zraster -vertices verts.txt -faces faces.txt -watch
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/zraster"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "zraster:", err)
		os.Exit(1)
	}
}

// run parses args, renders once and, with -watch, keeps re-rendering
// until ctx is done.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("zraster", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "TOML config file")
		vertices   = fs.String("vertices", "", "vertex list file (x, y, z, #RRGGBB per line)")
		faces      = fs.String("faces", "", "face list file (i, j, k per line)")
		gltfPath   = fs.String("gltf", "", "glTF/GLB mesh to render instead of text files")
		width      = fs.Int("width", zraster.DefaultWidth, "image width")
		height     = fs.Int("height", zraster.DefaultHeight, "image height")
		cell       = fs.Int("cell", zraster.DefaultCellSize, "cell size in pixels")
		bg         = fs.String("bg", zraster.Paper.Hex(), "background color #RRGGBB")
		output     = fs.String("o", "output.png", "output file")
		format     = fs.String("format", "", "output format: png or bmp (default from extension)")
		scale      = fs.Int("scale", 1, "integer upscale factor for the written image")
		preview    = fs.Bool("preview", false, "print the image to the terminal")
		watchFlag  = fs.Bool("watch", false, "re-render when an input file changes")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	zraster.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vertices":
			cfg.Vertices = *vertices
		case "faces":
			cfg.Faces = *faces
		case "gltf":
			cfg.GLTF = *gltfPath
		case "width":
			cfg.Render.Width = *width
		case "height":
			cfg.Render.Height = *height
		case "cell":
			cfg.Render.CellSize = *cell
		case "bg":
			cfg.Render.Background = *bg
		case "o":
			cfg.Output = *output
		case "format":
			cfg.Format = *format
		case "scale":
			cfg.Scale = *scale
		}
	})

	if err := cfg.validate(); err != nil {
		return err
	}

	job := &renderJob{cfg: cfg, stdout: stdout, preview: *preview}
	if err := job.once(); err != nil {
		return err
	}

	if !*watchFlag {
		return nil
	}
	return job.watch(ctx)
}
