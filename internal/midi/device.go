package midi

// Port identifies a connectable MIDI input.
type Port struct {
	Index int
	Name  string
}

// FrameFunc receives one raw device frame on the driver goroutine. The
// timestamp is device-relative milliseconds. Implementations must not
// block.
type FrameFunc func(timestamp uint64, data []byte)

// Device is the hardware boundary. The connection is owned exclusively by
// the adapter; everything observable crosses outward through the callbacks.
type Device interface {
	// Ports lists the currently available inputs.
	Ports() ([]Port, error)

	// Connect opens the given port and starts delivering frames. Any prior
	// connection is closed first. onLost is invoked from a background
	// goroutine if the device disappears.
	Connect(port Port, onFrame FrameFunc, onLost func()) error

	// Disconnect closes the active connection, if any.
	Disconnect()

	// Close releases the connection and the underlying driver.
	Close() error
}
