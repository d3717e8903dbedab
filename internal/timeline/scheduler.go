package timeline

import (
	"time"

	"keyfall/internal/config"
	"keyfall/internal/game"
)

// Scheduler walks an ordered chart against a running clock, spawning a
// falling note when its item comes due and despawning notes that fall past
// the bottom of the field. The cursor only moves forward; Reset is the one
// way back.
type Scheduler struct {
	chart  *game.Chart
	layout game.Layout

	clock    Clock
	current  int
	complete bool
	notes    *game.NoteArena
	missed   uint64
}

func NewScheduler(chart *game.Chart, layout game.Layout) *Scheduler {
	return &Scheduler{
		chart:  chart,
		layout: layout,
		notes:  game.NewNoteArena(),
	}
}

// Session control surface. Start, Pause and Resume only touch the clock;
// they are applied between ticks, never concurrently with Tick.
func (s *Scheduler) Start()  { s.clock.Start() }
func (s *Scheduler) Pause()  { s.clock.Pause() }
func (s *Scheduler) Resume() { s.clock.Resume() }

// Reset returns the scheduler to idle: clock zeroed, cursor rewound, every
// live note cleared. The caller owns zeroing the session score alongside.
func (s *Scheduler) Reset() {
	s.clock.Reset()
	s.current = 0
	s.complete = false
	s.missed = 0
	s.notes.Clear()
}

func (s *Scheduler) Playing() bool          { return s.clock.Running() }
func (s *Scheduler) Complete() bool         { return s.complete }
func (s *Scheduler) Current() int           { return s.current }
func (s *Scheduler) Elapsed() time.Duration { return s.clock.Elapsed() }
func (s *Scheduler) Notes() *game.NoteArena { return s.notes }

// Missed counts notes that reached the bottom unstruck. They never mutate
// the score; whether a miss should cost points is a product decision this
// engine does not take.
func (s *Scheduler) Missed() uint64 { return s.missed }

// Finished reports that every item has spawned and no note is live.
func (s *Scheduler) Finished() bool {
	return s.complete && s.notes.Len() == 0
}

// PositionY computes a note's height purely from its scheduled time and the
// clock. A note sits at Top when its time arrives and reaches Bottom
// FallTime later. Deriving position from elapsed time alone means a paused
// and resumed run reproduces an uninterrupted one exactly.
func PositionY(scheduled, elapsed time.Duration) float64 {
	return (scheduled-elapsed).Seconds()*config.Top/config.FallTime.Seconds() + config.Top
}

// Tick runs one simulation step: advance the clock, spawn due items, then
// recompute every live position and despawn what fell through. octave is
// the current input octave setting, sampled at spawn time to fix each
// note's logical key.
func (s *Scheduler) Tick(dt time.Duration, octave int) {
	if !s.clock.Running() {
		return
	}
	s.clock.Advance(dt)
	elapsed := s.clock.Elapsed()

	offset := game.OctaveOffset(octave)
	for s.current < len(s.chart.Items) {
		item := s.chart.Items[s.current]
		if elapsed < item.Time {
			break
		}
		logical := int(item.Note) - offset
		if key, ok := s.layout.Key(logical); ok {
			s.notes.Spawn(item.Time, logical, key.Type, key.X, PositionY(item.Time, elapsed))
		}
		// An item remapped off the keyboard still consumes its slot.
		s.current++
	}
	if s.current == len(s.chart.Items) {
		s.complete = true
	}

	for _, n := range s.notes.All() {
		n.PositionY = PositionY(n.Scheduled, elapsed)
		if n.PositionY <= config.Bottom {
			s.notes.Remove(n.ID)
			s.missed++
		}
	}
}
