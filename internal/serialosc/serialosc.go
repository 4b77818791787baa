// Package serialosc attaches to a monome-style grid through the
// serialosc daemon: UDP discovery on the daemon port, a /sys handshake
// with the device app port, key events in, LED level maps out.
package serialosc

import (
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/hypebeast/go-osc/osc"

	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/logging"
)

// Device is a grid reached over OSC. Dial starts discovery; the first
// matching device that answers is attached and announced with a ready
// event once its size is known.
type Device struct {
	host      string
	prefix    string
	wantID    string
	localIP   string
	localPort int

	daemon *osc.Client
	conn   net.PacketConn
	server *osc.Server

	events chan grid.Event
	done   chan struct{}

	mu       sync.Mutex
	remote   *osc.Client
	deviceID string
	width    int
	height   int
	ready    bool

	wg sync.WaitGroup
}

// Dial binds a receive socket, starts the OSC server, and asks the
// serialosc daemon at host:discoveryPort for devices. wantID narrows
// the attach to one device ID; empty accepts the first answer.
func Dial(host string, discoveryPort int, prefix, wantID string) (*Device, error) {
	conn, err := net.ListenPacket("udp", ":0")
	if err != nil {
		return nil, fmt.Errorf("serialosc: bind receive socket: %w", err)
	}
	localPort := conn.LocalAddr().(*net.UDPAddr).Port

	d := &Device{
		host:   host,
		prefix: prefix,
		wantID: wantID,
		daemon: osc.NewClient(host, discoveryPort),
		conn:   conn,
		events: make(chan grid.Event, 64),
		done:   make(chan struct{}),
	}

	disp := osc.NewStandardDispatcher()
	addErr := func(e error) {
		if e != nil && err == nil {
			err = e
		}
	}
	addErr(disp.AddMsgHandler("/serialosc/device", d.handleDeviceAnswer))
	addErr(disp.AddMsgHandler("/serialosc/add", d.handleDeviceAdded))
	addErr(disp.AddMsgHandler("/serialosc/remove", d.handleDeviceRemoved))
	addErr(disp.AddMsgHandler("/sys/size", d.handleSize))
	addErr(disp.AddMsgHandler("/sys/id", d.handleSysEcho))
	addErr(disp.AddMsgHandler("/sys/host", d.handleSysEcho))
	addErr(disp.AddMsgHandler("/sys/port", d.handleSysEcho))
	addErr(disp.AddMsgHandler("/sys/prefix", d.handleSysEcho))
	addErr(disp.AddMsgHandler("/sys/rotation", d.handleSysEcho))
	addErr(disp.AddMsgHandler(prefix+"/grid/key", d.handleKey))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("serialosc: register handlers: %w", err)
	}

	d.server = &osc.Server{Dispatcher: disp}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.server.Serve(conn)
	}()

	localIP, err := localIPFor(host, discoveryPort)
	if err != nil {
		conn.Close()
		d.wg.Wait()
		return nil, err
	}
	d.localIP = localIP
	d.localPort = localPort

	if err := d.requestList(); err != nil {
		conn.Close()
		d.wg.Wait()
		return nil, err
	}
	logging.Logger().Info("serialosc discovery started",
		"daemon", fmt.Sprintf("%s:%d", host, discoveryPort), "listen", localPort)
	return d, nil
}

// localIPFor returns the source address the OS picks to reach host.
func localIPFor(host string, port int) (string, error) {
	conn, err := net.Dial("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return "", fmt.Errorf("serialosc: resolve local address: %w", err)
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

// requestList asks the daemon for current devices and re-arms change
// notifications. serialosc forgets a notify subscription after each
// delivery, so this runs again on every add or remove.
func (d *Device) requestList() error {
	list := osc.NewMessage("/serialosc/list", d.localIP, int32(d.localPort))
	if err := d.daemon.Send(list); err != nil {
		return fmt.Errorf("serialosc: device list request: %w", err)
	}
	notify := osc.NewMessage("/serialosc/notify", d.localIP, int32(d.localPort))
	if err := d.daemon.Send(notify); err != nil {
		return fmt.Errorf("serialosc: notify request: %w", err)
	}
	return nil
}

// Events returns the device event stream. The channel closes when the
// device is closed.
func (d *Device) Events() <-chan grid.Event { return d.events }

// Render pushes one frame as 8x8 level-map quads. Cells past the
// frame edge fill with zero.
func (d *Device) Render(f *grid.Frame) error {
	d.mu.Lock()
	remote := d.remote
	d.mu.Unlock()
	if remote == nil {
		return ErrNotAttached
	}
	if allDark(f) {
		// One message clears the whole grid.
		msg := osc.NewMessage(d.prefix + "/grid/led/level/all")
		msg.Append(int32(0))
		if err := remote.Send(msg); err != nil {
			return fmt.Errorf("serialosc: send level all: %w", err)
		}
		return nil
	}
	for _, msg := range quadMessages(d.prefix, f) {
		if err := remote.Send(msg); err != nil {
			return fmt.Errorf("serialosc: send level map: %w", err)
		}
	}
	return nil
}

// Close stops the OSC server and closes the event stream.
func (d *Device) Close() error {
	select {
	case <-d.done:
		return nil
	default:
	}
	close(d.done)
	err := d.conn.Close()
	d.wg.Wait()
	close(d.events)
	logging.Logger().Info("serialosc device closed")
	return err
}

func (d *Device) emit(ev grid.Event) {
	select {
	case d.events <- ev:
	case <-d.done:
	}
}
