package zraster

// Option configures a render.
// Use functional options to customize the canvas.
//
// Example:
//
//	// Default 640x480 canvas with 10x10 pixel cells
//	pm := zraster.Render(model)
//
//	// Small canvas, one pixel per cell, white background
//	pm := zraster.Render(model,
//	    zraster.WithSize(20, 20),
//	    zraster.WithCellSize(1),
//	    zraster.WithBackground(zraster.White))
type Option func(*Options)

// Options holds the render configuration.
type Options struct {
	// Width and Height are the framebuffer extents in pixels.
	Width, Height int

	// CellSize is the edge length in pixels of one depth cell.
	// Sizes that do not divide the canvas leave a partial block at the
	// right and bottom edges.
	CellSize int

	// Background is the color the framebuffer is cleared to.
	Background RGB
}

// Default canvas configuration.
const (
	DefaultWidth    = 640
	DefaultHeight   = 480
	DefaultCellSize = 10
)

// DefaultOptions returns the default render options.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		CellSize:   DefaultCellSize,
		Background: Paper,
	}
}

// WithSize sets the framebuffer size in pixels.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithCellSize sets the pixel size of one depth cell.
// Values below 1 are treated as 1.
func WithCellSize(n int) Option {
	return func(o *Options) {
		o.CellSize = n
	}
}

// WithBackground sets the clear color.
func WithBackground(c RGB) Option {
	return func(o *Options) {
		o.Background = c
	}
}

// WithOptions replaces the whole configuration.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}

// resolveOptions applies opts over the defaults and normalizes the result
// so that rendering can never index out of range.
func resolveOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.Width = max(o.Width, 0)
	o.Height = max(o.Height, 0)
	o.CellSize = max(o.CellSize, 1)
	return o
}

// Grid returns the depth-buffer size in cells for these options.
// Partial blocks at the edges count as full cells.
func (o Options) Grid() (cols, rows int) {
	n := max(o.CellSize, 1)
	return (max(o.Width, 0) + n - 1) / n, (max(o.Height, 0) + n - 1) / n
}
