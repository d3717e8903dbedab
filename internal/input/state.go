package input

import (
	"keyfall/internal/config"
	"keyfall/internal/game"
)

// State is the process-wide input state. It has a single writer, the
// bridge's per-tick drain, and is read by judgment and presentation on the
// same goroutine, so it carries no lock.
type State struct {
	Connected bool
	Octave    int

	recent []game.KeyEvent
	held   map[uint8]bool
}

func NewState(octave int) *State {
	return &State{
		Octave: octave,
		recent: make([]game.KeyEvent, 0, config.KeyHistory),
		held:   make(map[uint8]bool),
	}
}

// Push records an event in the bounded history ring, oldest evicted first,
// and updates the held-key set used for key highlighting.
func (s *State) Push(ev game.KeyEvent) {
	for len(s.recent) >= config.KeyHistory {
		s.recent = s.recent[1:]
	}
	s.recent = append(s.recent, ev)

	switch ev.Kind {
	case game.Pressed, game.Holding:
		s.held[ev.Key] = true
	case game.Released:
		delete(s.held, ev.Key)
	}
}

// Recent returns the event history, oldest first. The returned slice is a
// copy; insertion order is meaningful for display only.
func (s *State) Recent() []game.KeyEvent {
	out := make([]game.KeyEvent, len(s.recent))
	copy(out, s.recent)
	return out
}

// Held reports whether a device key is currently down.
func (s *State) Held(deviceKey uint8) bool {
	return s.held[deviceKey]
}

// OctaveOffset is the current logical-to-device key offset.
func (s *State) OctaveOffset() int {
	return game.OctaveOffset(s.Octave)
}
