package zraster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("zraster: invalid config")

// Config is the file form of the render options.
//
// Example TOML:
//
//	width = 640
//	height = 480
//	cell_size = 10
//	background = "#fafafa"
type Config struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	CellSize   int    `toml:"cell_size"`
	Background string `toml:"background"`
}

// DefaultConfig returns the configuration matching DefaultOptions.
func DefaultConfig() Config {
	o := DefaultOptions()
	return Config{
		Width:      o.Width,
		Height:     o.Height,
		CellSize:   o.CellSize,
		Background: o.Background.Hex(),
	}
}

// DecodeConfig reads a TOML configuration from r. Keys absent from the
// document keep their default values; unknown keys are an error.
func DecodeConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	if err := DecodeConfigInto(r, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DecodeConfigInto decodes TOML from r into v, rejecting unknown keys.
// v is usually a *Config or a struct embedding one under its own table.
func DecodeConfigInto(r io.Reader, v any) error {
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	if err := d.Decode(v); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("zraster: config: unknown keys:\n%s", strict.String())
		}
		return fmt.Errorf("zraster: config: %w", err)
	}
	return nil
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("zraster: open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeConfig(f)
}

// Validate checks that the sizes are usable and the background parses.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size %d must be positive", ErrInvalidConfig, c.CellSize)
	}
	if _, ok := ParseHex(c.Background); !ok {
		return fmt.Errorf("%w: background %q is not #RRGGBB", ErrInvalidConfig, c.Background)
	}
	return nil
}

// Options validates the configuration and converts it to render options.
func (c Config) Options() (Options, error) {
	if err := c.Validate(); err != nil {
		return Options{}, err
	}
	bg, _ := ParseHex(c.Background)
	return Options{
		Width:      c.Width,
		Height:     c.Height,
		CellSize:   c.CellSize,
		Background: bg,
	}, nil
}
