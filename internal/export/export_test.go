package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnmatter/gridui/internal/control"
	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/geom"
	"github.com/johnmatter/gridui/internal/grid"
)

func testLayout() (*grid.Frame, editor.Snapshot) {
	f := grid.NewFrame(8, 8)
	f.Set(1, 1, 15)
	f.Set(2, 1, 15)
	f.Set(0, 7, 4)
	snap := editor.Snapshot{
		Width:  8,
		Height: 8,
		Ready:  true,
		Controls: []editor.ControlView{
			{
				ID:      "AB12CD",
				Variant: control.Toggle,
				Kind:    geom.KindRectangle,
				Points:  []geom.Point{{X: 1, Y: 1}, {X: 2, Y: 1}},
				State:   1,
				Base:    3,
				Peak:    15,
			},
		},
	}
	return f, snap
}

func TestWritePNG(t *testing.T) {
	f, snap := testLayout()
	path := filepath.Join(t.TempDir(), "layout.png")

	if err := WritePNG(path, f, snap); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG file")
	}
}

func TestFrameSVG(t *testing.T) {
	f, snap := testLayout()
	svg := FrameSVG(f, snap)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if got := strings.Count(svg, "<rect"); got != 8*8+1 {
		t.Errorf("rect count = %d, want %d", got, 8*8+1)
	}
	if !strings.Contains(svg, ">AB12CD</text>") {
		t.Error("missing control label")
	}
	// Lit and unlit cells get different fills.
	if LevelHex(15) == LevelHex(0) {
		t.Error("level ramp is flat")
	}
}

func TestWriteSVG(t *testing.T) {
	f, snap := testLayout()
	path := filepath.Join(t.TempDir(), "layout.svg")

	if err := WriteSVG(path, f, snap); err != nil {
		t.Fatalf("WriteSVG() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("output is not closed SVG")
	}
}

func TestLayoutText(t *testing.T) {
	_, snap := testLayout()
	text := LayoutText(snap)

	if !strings.HasPrefix(text, "grid 8x8, 1 controls\n") {
		t.Errorf("header = %q", strings.SplitN(text, "\n", 2)[0])
	}
	if !strings.Contains(text, "AB12CD") {
		t.Error("missing control ID")
	}
	if !strings.Contains(text, "rectangle") || !strings.Contains(text, "toggle") {
		t.Error("missing kind or variant")
	}
	if !strings.Contains(text, "(1,1) (2,1)") {
		t.Error("missing vertex list")
	}
}
