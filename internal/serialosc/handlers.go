package serialosc

import (
	"github.com/hypebeast/go-osc/osc"

	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/logging"
)

func (d *Device) handleDeviceAnswer(msg *osc.Message) {
	id, ok1 := argString(msg, 0)
	port, ok2 := argInt(msg, 2)
	if !ok1 || !ok2 {
		logging.Logger().Warn("malformed device answer", "args", len(msg.Arguments))
		return
	}
	if d.wantID != "" && id != d.wantID {
		logging.Logger().Debug("device skipped", "id", id, "want", d.wantID)
		return
	}
	d.attach(id, port)
}

// attach claims the device and runs the /sys handshake. The size reply
// turns into the ready event.
func (d *Device) attach(id string, port int) {
	d.mu.Lock()
	if d.remote != nil {
		d.mu.Unlock()
		return
	}
	remote := osc.NewClient(d.host, port)
	d.remote = remote
	d.deviceID = id
	d.ready = false
	d.mu.Unlock()

	logging.Logger().Info("grid attached", "id", id, "port", port)
	for _, m := range []*osc.Message{
		osc.NewMessage("/sys/host", d.localIP),
		osc.NewMessage("/sys/port", int32(d.localPort)),
		osc.NewMessage("/sys/prefix", d.prefix),
		osc.NewMessage("/sys/info"),
	} {
		if err := remote.Send(m); err != nil {
			logging.Logger().Warn("handshake send failed", "addr", m.Address, "err", err)
			return
		}
	}
}

func (d *Device) handleDeviceAdded(msg *osc.Message) {
	id, _ := argString(msg, 0)
	logging.Logger().Info("device appeared", "id", id)
	if err := d.requestList(); err != nil {
		logging.Logger().Warn("device list refresh failed", "err", err)
	}
}

func (d *Device) handleDeviceRemoved(msg *osc.Message) {
	id, ok := argString(msg, 0)
	if !ok {
		return
	}
	d.mu.Lock()
	gone := d.remote != nil && d.deviceID == id
	if gone {
		d.remote = nil
		d.deviceID = ""
		d.ready = false
	}
	d.mu.Unlock()

	logging.Logger().Info("device removed", "id", id, "attached", gone)
	if gone {
		d.emit(grid.DisconnectEvent{})
	}
	// Re-arm notifications either way so a replug is seen.
	if err := d.requestList(); err != nil {
		logging.Logger().Warn("device list refresh failed", "err", err)
	}
}

// handleSize announces the session. A size change on a live device,
// for example after a rotation, starts a fresh session.
func (d *Device) handleSize(msg *osc.Message) {
	w, ok1 := argInt(msg, 0)
	h, ok2 := argInt(msg, 1)
	if !ok1 || !ok2 || w <= 0 || h <= 0 {
		logging.Logger().Warn("malformed size reply", "args", len(msg.Arguments))
		return
	}
	d.mu.Lock()
	fresh := !d.ready || w != d.width || h != d.height
	d.width, d.height = w, h
	d.ready = true
	d.mu.Unlock()
	if fresh {
		logging.Logger().Info("grid size", "width", w, "height", h)
		d.emit(grid.ReadyEvent{Width: w, Height: h})
	}
}

func (d *Device) handleSysEcho(msg *osc.Message) {
	logging.Logger().Debug("sys reply", "addr", msg.Address, "args", msg.Arguments)
}

func (d *Device) handleKey(msg *osc.Message) {
	x, ok1 := argInt(msg, 0)
	y, ok2 := argInt(msg, 1)
	s, ok3 := argInt(msg, 2)
	if !ok1 || !ok2 || !ok3 {
		logging.Logger().Warn("malformed key message", "args", len(msg.Arguments))
		return
	}
	d.emit(grid.KeyEvent{X: x, Y: y, Pressed: s == 1})
}

func argInt(msg *osc.Message, i int) (int, bool) {
	if i >= len(msg.Arguments) {
		return 0, false
	}
	switch n := msg.Arguments[i].(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	}
	return 0, false
}

func argString(msg *osc.Message, i int) (string, bool) {
	if i >= len(msg.Arguments) {
		return "", false
	}
	s, ok := msg.Arguments[i].(string)
	return s, ok
}
