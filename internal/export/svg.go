package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/grid"
)

// FrameSVG converts a frame and its snapshot to an SVG document, one
// rounded rect per cell plus a text label per control.
func FrameSVG(f *grid.Frame, snap editor.Snapshot) string {
	w, h := pixelSize(f.Width, f.Height)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, w, h, w, h))

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			px, py := cellOrigin(x, y)
			sb.WriteString(fmt.Sprintf(`<rect x="%.0f" y="%.0f" width="%d" height="%d" rx="4" fill="%s"/>
`, px, py, cellPx, cellPx, LevelHex(f.At(x, y))))
		}
	}

	for _, cv := range snap.Controls {
		if len(cv.Points) == 0 {
			continue
		}
		px, py := cellOrigin(cv.Points[0].X, cv.Points[0].Y)
		sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" font-family="monospace" font-size="9" fill="#e8e8e8" text-anchor="middle">%s</text>
`, px+cellPx/2, py+cellPx/2+3, cv.ID))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes FrameSVG output to path.
func WriteSVG(path string, f *grid.Frame, snap editor.Snapshot) error {
	return os.WriteFile(path, []byte(FrameSVG(f, snap)), 0644)
}

// LevelHex is the amber ramp as a web color, shared by the SVG export
// and the terminal simulator so both match the PNG palette.
func LevelHex(level int) string {
	r, g, b := LevelRGB(level)
	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}
