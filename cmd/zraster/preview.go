package main

import (
	"bufio"
	"io"
	"os"

	"github.com/muesli/termenv"

	"github.com/gogpu/zraster"
)

// termProfile returns the color profile of the terminal on stdout.
func termProfile() termenv.Profile {
	return termenv.NewOutput(os.Stdout).EnvColorProfile()
}

// writePreview prints one colored two-character block per cell, sampling
// each cell at its top-left pixel.
func writePreview(w io.Writer, pm *zraster.Pixmap, cellSize int, profile termenv.Profile) error {
	cellSize = max(cellSize, 1)

	bw := bufio.NewWriter(w)
	out := termenv.NewOutput(bw, termenv.WithProfile(profile))

	for y := 0; y < pm.Height(); y += cellSize {
		for x := 0; x < pm.Width(); x += cellSize {
			c := pm.GetPixel(x, y)
			if _, err := bw.WriteString(out.String("  ").Background(out.Color(c.Hex())).String()); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
