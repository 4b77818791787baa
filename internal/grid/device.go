package grid

// Event is the closed set of notifications a device delivers to the
// session: key state changes, readiness (dimensions known), and loss of
// the device.
type Event interface {
	isEvent()
}

// KeyEvent reports one physical key transition.
type KeyEvent struct {
	X       int
	Y       int
	Pressed bool
}

// ReadyEvent announces that the device is connected and sized. The
// session starts (or restarts) an editing session on receipt.
type ReadyEvent struct {
	Width  int
	Height int
}

// DisconnectEvent announces that the device went away. The session
// stops rendering and resets editor state; a later ReadyEvent resumes.
type DisconnectEvent struct{}

func (KeyEvent) isEvent()        {}
func (ReadyEvent) isEvent()      {}
func (DisconnectEvent) isEvent() {}

// Device is a connected LED grid: an event stream in, frames out.
//
// Events is closed when the device shuts down for good. Render pushes
// one frame; it may block briefly on transport but must not assume the
// caller holds any editor lock. Close releases the transport and causes
// Events to close.
type Device interface {
	Events() <-chan Event
	Render(f *Frame) error
	Close() error
}
