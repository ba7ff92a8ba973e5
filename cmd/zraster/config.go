package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/zraster"
)

// config is the zraster command configuration file.
//
//	vertices = "verts.txt"
//	faces = "faces.txt"
//	output = "out.png"
//	scale = 2
//
//	[render]
//	width = 640
//	height = 480
//	cell_size = 10
//	background = "#fafafa"
type config struct {
	Render   zraster.Config `toml:"render"`
	Vertices string         `toml:"vertices"`
	Faces    string         `toml:"faces"`
	GLTF     string         `toml:"gltf"`
	Output   string         `toml:"output"`
	Format   string         `toml:"format"`
	Scale    int            `toml:"scale"`
}

func defaultConfig() config {
	return config{
		Render: zraster.DefaultConfig(),
		Output: "output.png",
		Scale:  1,
	}
}

// loadConfig reads a config file over the defaults. Relative input and
// output paths are resolved against the config file's directory.
func loadConfig(path string) (config, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := defaultConfig()
	if err := zraster.DecodeConfigInto(f, &cfg); err != nil {
		return config{}, err
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.Vertices, &cfg.Faces, &cfg.GLTF, &cfg.Output} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg, nil
}

var errNoInput = errors.New("no input: give -vertices and -faces, or -gltf")

func (c config) validate() error {
	if c.GLTF == "" && c.Vertices == "" && c.Faces == "" {
		return errNoInput
	}
	if c.GLTF != "" && (c.Vertices != "" || c.Faces != "") {
		return errors.New("-gltf cannot be combined with -vertices or -faces")
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale %d must be at least 1", c.Scale)
	}
	if _, err := c.format(); err != nil {
		return err
	}
	_, err := c.Render.Options()
	return err
}

// format returns the output encoding, from the explicit setting or the
// output file extension.
func (c config) format() (string, error) {
	f := strings.ToLower(c.Format)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Output)), ".")
	}
	switch f {
	case "png", "bmp":
		return f, nil
	case "":
		return "png", nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want png or bmp)", f)
	}
}

// inputs lists the files a render reads.
func (c config) inputs() []string {
	if c.GLTF != "" {
		return []string{c.GLTF}
	}
	var paths []string
	for _, p := range []string{c.Vertices, c.Faces} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
