package game

// EventKind is the closed set of key transitions a device can report.
type EventKind int

const (
	Pressed EventKind = iota
	Released
	Holding
)

func (k EventKind) String() string {
	switch k {
	case Pressed:
		return "Pressed"
	case Released:
		return "Released"
	case Holding:
		return "Holding"
	}
	return "Unknown"
}

// KeyEvent is one observed hardware transition. Created on the driver
// goroutine, consumed exactly once by the input bridge, immutable after
// creation.
type KeyEvent struct {
	Timestamp uint64 // device-relative, monotonically non-decreasing
	Kind      EventKind
	Key       uint8 // device key number, not remapped to octave
	Velocity  uint8 // 0-127
}
