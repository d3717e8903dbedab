package input

import (
	"keyfall/internal/game"

	"go.uber.org/zap"
)

// Raw frame status bytes recognized by Decode.
const (
	statusPressed  = 144
	statusReleased = 128
	statusHolding  = 160
)

// Decode translates a raw device frame [status, key, velocity] into a typed
// event. Frames shorter than three bytes are noise and are discarded. An
// unrecognized status byte is treated as a press; devices disagree here and
// a spurious press is the least harmful reading.
func Decode(timestamp uint64, frame []byte) (game.KeyEvent, bool) {
	if len(frame) < 3 {
		return game.KeyEvent{}, false
	}
	kind := game.Pressed
	switch frame[0] {
	case statusPressed:
		kind = game.Pressed
	case statusReleased:
		kind = game.Released
	case statusHolding:
		kind = game.Holding
	}
	return game.KeyEvent{
		Timestamp: timestamp,
		Kind:      kind,
		Key:       frame[1],
		Velocity:  frame[2],
	}, true
}

type messageKind int

const (
	msgEvent messageKind = iota
	msgConnected
	msgDisconnected
)

type message struct {
	kind  messageKind
	event game.KeyEvent
}

// Bridge carries events from the device driver goroutine to the simulation
// tick. The producer side never blocks: if the consumer falls behind the
// buffer, events are dropped with a log line rather than stalling the
// driver callback.
type Bridge struct {
	ch  chan message
	log *zap.Logger
}

func NewBridge(log *zap.Logger) *Bridge {
	return &Bridge{
		ch:  make(chan message, 256),
		log: log,
	}
}

// Frame accepts a raw device frame from the driver goroutine. Safe to call
// concurrently with Drain; never blocks.
func (b *Bridge) Frame(timestamp uint64, data []byte) {
	ev, ok := Decode(timestamp, data)
	if !ok {
		return
	}
	b.send(message{kind: msgEvent, event: ev})
}

// Connected and Disconnected flip the state's connectivity flag at the next
// drain.
func (b *Bridge) Connected()    { b.send(message{kind: msgConnected}) }
func (b *Bridge) Disconnected() { b.send(message{kind: msgDisconnected}) }

func (b *Bridge) send(m message) {
	select {
	case b.ch <- m:
	default:
		b.log.Warn("input queue full, dropping message")
	}
}

// Drain applies every pending message to the state and returns the key
// events in arrival order. Called once per simulation tick by the single
// consumer; events arriving after the drain are deferred to the next tick.
func (b *Bridge) Drain(state *State) []game.KeyEvent {
	var events []game.KeyEvent
	for {
		select {
		case m := <-b.ch:
			switch m.kind {
			case msgEvent:
				state.Push(m.event)
				events = append(events, m.event)
			case msgConnected:
				state.Connected = true
			case msgDisconnected:
				state.Connected = false
			}
		default:
			return events
		}
	}
}
