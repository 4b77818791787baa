// Package export renders layout snapshots to PNG, SVG, and plain text.
package export

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/grid"
)

const (
	cellPx   = 32
	gapPx    = 4
	marginPx = 16
)

// LevelRGB maps an LED level to the amber glow ramp. Zero stays a
// near-black key so unlit cells still read as hardware.
func LevelRGB(level int) (r, g, b float64) {
	t := float64(level) / float64(grid.LevelMax)
	return 0.08 + 0.92*t, 0.07 + 0.58*t, 0.06 + 0.14*t
}

func pixelSize(w, h int) (int, int) {
	return marginPx*2 + w*cellPx + (w-1)*gapPx,
		marginPx*2 + h*cellPx + (h-1)*gapPx
}

func cellOrigin(x, y int) (float64, float64) {
	return float64(marginPx + x*(cellPx+gapPx)),
		float64(marginPx + y*(cellPx+gapPx))
}

// WritePNG renders the frame as an illuminated button field with the
// control IDs lettered over their first vertex.
func WritePNG(path string, f *grid.Frame, snap editor.Snapshot) error {
	w, h := pixelSize(f.Width, f.Height)
	dc := gg.NewContext(w, h)
	dc.SetRGB(0.04, 0.04, 0.04)
	dc.Clear()

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			px, py := cellOrigin(x, y)
			dc.SetRGB(LevelRGB(f.At(x, y)))
			dc.DrawRoundedRectangle(px, py, cellPx, cellPx, 4)
			dc.Fill()
		}
	}

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("export: parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    11,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetRGB(0.95, 0.95, 0.95)
	for _, cv := range snap.Controls {
		if len(cv.Points) == 0 {
			continue
		}
		px, py := cellOrigin(cv.Points[0].X, cv.Points[0].Y)
		dc.DrawStringAnchored(cv.ID, px+cellPx/2, py+cellPx/2, 0.5, 0.5)
	}

	return dc.SavePNG(path)
}
