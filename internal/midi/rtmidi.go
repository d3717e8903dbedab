package midi

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go.uber.org/zap"
)

// RtmidiDevice adapts the rtmidi driver to the Device contract.
type RtmidiDevice struct {
	log *zap.Logger

	mu     sync.Mutex
	drv    *rtmididrv.Driver
	inPort drivers.In
	stopFn func()
}

// NewRtmidiDevice initializes the rtmidi driver. Failure here means no MIDI
// subsystem is available at all and is fatal to the caller.
func NewRtmidiDevice(log *zap.Logger) (*RtmidiDevice, error) {
	drv, err := rtmididrv.New()
	if nil != err {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	return &RtmidiDevice{log: log, drv: drv}, nil
}

func (d *RtmidiDevice) Ports() ([]Port, error) {
	ins, err := d.drv.Ins()
	if nil != err {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	ports := make([]Port, 0, len(ins))
	for i, in := range ins {
		ports = append(ports, Port{Index: i, Name: in.String()})
	}
	return ports, nil
}

func (d *RtmidiDevice) Connect(port Port, onFrame FrameFunc, onLost func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Switching devices closes the old connection first. Stale events
	// already queued are harmless; they carry no connection identity.
	d.closeConn()

	ins, err := d.drv.Ins()
	if nil != err {
		return fmt.Errorf("list inputs: %w", err)
	}
	if port.Index < 0 || port.Index >= len(ins) {
		return fmt.Errorf("input port %d not found", port.Index)
	}
	in := ins[port.Index]
	if err := in.Open(); nil != err {
		return fmt.Errorf("open %q: %w", in.String(), err)
	}

	name := in.String()
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		// msg is the raw byte frame; translation happens on the other
		// side of the bridge, not on the driver goroutine.
		onFrame(uint64(timestampms), []byte(msg))
	}, midi.HandleError(func(listenErr error) {
		d.log.Warn("midi: listener error, device likely disconnected",
			zap.String("device", name), zap.Error(listenErr))
		// closeConn stops the listener, so it must not run on the
		// listener goroutine itself.
		go func() {
			d.mu.Lock()
			d.closeConn()
			d.mu.Unlock()
			if nil != onLost {
				onLost()
			}
		}()
	}))
	if nil != err {
		_ = in.Close()
		return fmt.Errorf("listen %q: %w", name, err)
	}

	d.inPort = in
	d.stopFn = stop
	d.log.Info("midi: connected", zap.String("device", name))
	return nil
}

func (d *RtmidiDevice) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeConn()
}

func (d *RtmidiDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeConn()
	return d.drv.Close()
}

// closeConn assumes d.mu is held.
func (d *RtmidiDevice) closeConn() {
	if nil != d.stopFn {
		d.stopFn()
		d.stopFn = nil
	}
	if nil != d.inPort {
		_ = d.inPort.Close()
		d.inPort = nil
	}
}
