// Package journal appends control touch events to a JSON-lines file,
// one object per line, append-only.
package journal

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/logging"
)

// Entry is one journaled touch.
type Entry struct {
	Time    time.Time `json:"time"`
	ID      string    `json:"id"`
	Variant string    `json:"variant"`
	Pressed bool      `json:"pressed"`
	State   float64   `json:"state"`
}

// Writer journals editor touches. It implements editor.Observer.
type Writer struct {
	mu  sync.Mutex
	w   io.WriteCloser
	enc *json.Encoder
}

// Open appends to the journal at path, creating it if needed.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return NewWriter(f), nil
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{w: w, enc: json.NewEncoder(w)}
}

// ControlTouched appends one entry. A write failure is logged and
// dropped so a full disk cannot stall the event path.
func (j *Writer) ControlTouched(ev editor.TouchEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	err := j.enc.Encode(Entry{
		Time:    ev.Time,
		ID:      ev.ID,
		Variant: ev.Variant.String(),
		Pressed: ev.Pressed,
		State:   ev.State,
	})
	if err != nil {
		logging.Logger().Warn("journal write failed", "err", err)
	}
}

func (j *Writer) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.w.Close()
}
