package monitor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/johnmatter/gridui/internal/grid"
)

type recordSink struct {
	frames int
	err    error
}

func (s *recordSink) Render(f *grid.Frame) error {
	s.frames++
	return s.err
}

func TestTee_ForwardsAndMirrors(t *testing.T) {
	sink := &recordSink{}
	var buf bytes.Buffer
	m := Tee(sink, &buf, 1000)

	f := grid.NewFrame(8, 8)
	f.Set(0, 0, 15)
	if err := m.Render(f); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if sink.frames != 1 {
		t.Errorf("inner sink saw %d frames, want 1", sink.frames)
	}
	out := buf.String()
	if !strings.Contains(out, "grid 8x8") {
		t.Error("missing header")
	}
	if !strings.Contains(out, "@@") {
		t.Error("missing full-level cell")
	}
}

func TestTee_PropagatesSinkError(t *testing.T) {
	wire := errors.New("wire down")
	sink := &recordSink{err: wire}
	var buf bytes.Buffer
	m := Tee(sink, &buf, 1000)

	if err := m.Render(grid.NewFrame(4, 4)); !errors.Is(err, wire) {
		t.Errorf("Render() error = %v, want wire error", err)
	}
	if buf.Len() == 0 {
		t.Error("mirror skipped on sink error")
	}
}

func TestTee_ThrottlesMirror(t *testing.T) {
	sink := &recordSink{}
	var buf bytes.Buffer
	m := Tee(sink, &buf, 1)

	f := grid.NewFrame(4, 4)
	m.Render(f)
	m.Render(f)
	if sink.frames != 2 {
		t.Errorf("inner sink saw %d frames, want 2", sink.frames)
	}
	if got := strings.Count(buf.String(), "grid 4x4"); got != 1 {
		t.Errorf("mirror drew %d frames inside one interval, want 1", got)
	}
}
