package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/export"
	"github.com/johnmatter/gridui/internal/geom"
)

// Key field geometry in pixels.
const (
	cellPx   = 56
	gapPx    = 8
	marginPx = 40
	hudPx    = 96
)

// Theme colors (monochrome chrome around the amber key field).
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func levelColor(level int) rl.Color {
	r, g, b := export.LevelRGB(level)
	return rl.NewColor(uint8(r*255), uint8(g*255), uint8(b*255), 255)
}

func (d *Device) pixelWidth() int {
	return marginPx*2 + d.width*cellPx + (d.width-1)*gapPx
}

func (d *Device) pixelHeight() int {
	return marginPx*2 + d.height*cellPx + (d.height-1)*gapPx + hudPx
}

func (d *Device) cellOrigin(x, y int) (int32, int32) {
	return int32(marginPx + x*(cellPx+gapPx)), int32(marginPx + y*(cellPx+gapPx))
}

// cellAt maps a window position to a key. Clicks landing in the gaps
// between keys miss.
func (d *Device) cellAt(mouse rl.Vector2) (geom.Point, bool) {
	x := int(mouse.X) - marginPx
	y := int(mouse.Y) - marginPx
	if x < 0 || y < 0 {
		return geom.Point{}, false
	}
	cx := x / (cellPx + gapPx)
	cy := y / (cellPx + gapPx)
	if cx >= d.width || cy >= d.height {
		return geom.Point{}, false
	}
	if x%(cellPx+gapPx) >= cellPx || y%(cellPx+gapPx) >= cellPx {
		return geom.Point{}, false
	}
	return geom.Point{X: cx, Y: cy}, true
}

func (d *Device) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	d.mu.Lock()
	f := d.frame
	d.mu.Unlock()

	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			level := 0
			if f != nil {
				level = f.At(x, y)
			}
			px, py := d.cellOrigin(x, y)
			cell := rl.NewRectangle(float32(px), float32(py), cellPx, cellPx)
			rl.DrawRectangleRounded(cell, 0.18, 6, levelColor(level))
		}
	}

	var snap editor.Snapshot
	if d.hooks.Snapshot != nil {
		snap = d.hooks.Snapshot()
	}
	d.drawLabels(snap)
	d.drawHUD(snap)

	rl.EndDrawing()
}

func (d *Device) drawLabels(snap editor.Snapshot) {
	for _, cv := range snap.Controls {
		if len(cv.Points) == 0 {
			continue
		}
		px, py := d.cellOrigin(cv.Points[0].X, cv.Points[0].Y)
		d.drawText(cv.ID, int(px)+4, int(py)+cellPx/2-8, 14, ColText)

		if cv.ID == snap.Selected {
			lo, hi := boundsOf(cv.Points)
			ox, oy := d.cellOrigin(lo.X, lo.Y)
			w := int32((hi.X-lo.X+1)*(cellPx+gapPx) - gapPx)
			h := int32((hi.Y-lo.Y+1)*(cellPx+gapPx) - gapPx)
			rl.DrawRectangleLines(ox-3, oy-3, w+6, h+6, ColSelect)
		}
	}
}

func boundsOf(pts []geom.Point) (geom.Point, geom.Point) {
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
	}
	return lo, hi
}

func (d *Device) drawHUD(snap editor.Snapshot) {
	baseY := d.pixelHeight() - hudPx + 14

	d.drawText("gridui", marginPx, baseY, 24, ColSelect)
	mode, col := "NORMAL", ColText
	if snap.Meta {
		mode, col = "META", levelColor(15)
	}
	d.drawText(mode, marginPx+130, baseY+6, 16, col)

	info := fmt.Sprintf("controls %d", len(snap.Controls))
	if snap.Selected != "" {
		info += "  sel " + snap.Selected
	}
	if snap.HasClipboard {
		info += "  clip *"
	}
	d.drawText(info, marginPx+240, baseY+6, 16, ColText)

	if d.status != "" {
		d.drawText(d.status, marginPx, baseY+32, 14, ColText)
	}

	footY := d.pixelHeight() - 30
	d.drawText("[LMB] KEY  [DRAG] SKETCH  [RMB/M] META  [T] VARIANT  [P] PNG  [ESC] QUIT", marginPx, footY, 14, ColTextDim)
	d.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), d.pixelWidth()-110, footY, 14, ColTextDim)
}

func (d *Device) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(d.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
