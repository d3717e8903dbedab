package timeline

import (
	"math"
	"testing"
	"time"

	"keyfall/internal/config"
	"keyfall/internal/game"
)

func testChart() *game.Chart {
	return &game.Chart{
		Name: "test",
		Items: []game.TimelineItem{
			{Time: 1 * time.Second, Note: 38, Length: 3 * time.Second},
			{Time: 2 * time.Second, Note: 40},
			{Time: 2500 * time.Millisecond, Note: 41},
		},
	}
}

func newTestScheduler(chart *game.Chart) *Scheduler {
	return NewScheduler(chart, game.NewLayout(config.NumKeys))
}

func TestSpawnRemapsLogicalKey(t *testing.T) {
	s := newTestScheduler(testChart())
	s.Start()
	s.Tick(time.Second, 0) // octave 0, offset 36

	notes := s.Notes().All()
	if len(notes) != 1 {
		t.Fatal("expected 1 note at clock=1s, got", len(notes))
	}
	n := notes[0]
	if n.Key != 2 {
		t.Fatal("device key 38 with offset 36 should spawn logical key 2, got", n.Key)
	}
	if n.Scheduled != time.Second {
		t.Fail()
	}
	// Just spawned: sitting at the top of the field.
	if math.Abs(n.PositionY-config.Top) > 1e-9 {
		t.Fatal("spawn height", n.PositionY)
	}
	// Logical key 2 is the second white key.
	if n.Type != game.White || n.X != 1.0 {
		t.Log("key geometry", n.Type, n.X)
		t.Fail()
	}
}

func TestCursorMonotonicAndComplete(t *testing.T) {
	s := newTestScheduler(testChart())
	s.Start()

	last := 0
	for i := 0; i < 40; i++ {
		s.Tick(100*time.Millisecond, 0)
		if s.Current() < last {
			t.Fatal("cursor went backwards:", s.Current(), "<", last)
		}
		last = s.Current()
		if s.Complete() != (s.Current() == 3) {
			t.Fatal("complete flag out of sync at cursor", s.Current())
		}
	}
	if !s.Complete() {
		t.Fatal("chart never completed; cursor at", s.Current())
	}

	// Ticking an exhausted chart is a guarded no-op, not an error.
	s.Tick(100*time.Millisecond, 0)
	if s.Current() != 3 {
		t.Fail()
	}
}

func TestPositionDeterministicAcrossPause(t *testing.T) {
	chart := &game.Chart{Items: []game.TimelineItem{{Time: time.Second, Note: 38}}}

	// Run A: straight through to clock=2s.
	a := newTestScheduler(chart)
	a.Start()
	for i := 0; i < 20; i++ {
		a.Tick(100*time.Millisecond, 0)
	}

	// Run B: same active time, paused and resumed in the middle.
	b := newTestScheduler(chart)
	b.Start()
	for i := 0; i < 7; i++ {
		b.Tick(100*time.Millisecond, 0)
	}
	b.Pause()
	for i := 0; i < 50; i++ {
		b.Tick(100*time.Millisecond, 0) // no active time accumulates
	}
	b.Resume()
	for i := 0; i < 13; i++ {
		b.Tick(100*time.Millisecond, 0)
	}

	na, nb := a.Notes().All(), b.Notes().All()
	if len(na) != 1 || len(nb) != 1 {
		t.Fatal("note counts", len(na), len(nb))
	}
	if na[0].PositionY != nb[0].PositionY {
		t.Log("uninterrupted", na[0].PositionY)
		t.Log("paused/resumed", nb[0].PositionY)
		t.Fail()
	}

	// And both match the closed form exactly.
	want := PositionY(time.Second, 2*time.Second)
	if math.Abs(na[0].PositionY-want) > 1e-9 {
		t.Log("position", na[0].PositionY, "want", want)
		t.Fail()
	}
}

func TestPositionFormula(t *testing.T) {
	tests := map[time.Duration]float64{
		1 * time.Second:         config.Top,             // spawn instant
		2 * time.Second:         config.Top * 2.0 / 3.0, // one third down
		2500 * time.Millisecond: config.Top / 2.0,       // halfway
		4 * time.Second:         config.Bottom,          // touch down
	}
	for elapsed, want := range tests {
		got := PositionY(time.Second, elapsed)
		if math.Abs(got-want) > 1e-9 {
			t.Log("elapsed ", elapsed)
			t.Log("got     ", got)
			t.Log("expected", want)
			t.Fail()
		}
	}
}

func TestMissedNoteDespawns(t *testing.T) {
	chart := &game.Chart{Items: []game.TimelineItem{{Time: time.Second, Note: 38}}}
	s := newTestScheduler(chart)
	s.Start()

	// Past scheduled + FallTime the note has fallen through.
	for i := 0; i < 45; i++ {
		s.Tick(100*time.Millisecond, 0)
	}
	if s.Notes().Len() != 0 {
		t.Fatal("fallen note still live")
	}
	if s.Missed() != 1 {
		t.Fatal("missed count", s.Missed())
	}
	if !s.Finished() {
		t.Fail()
	}
}

func TestOffKeyboardItemSkipped(t *testing.T) {
	// Device key 10 with offset 36 remaps to logical -26: no key to fall on.
	chart := &game.Chart{Items: []game.TimelineItem{
		{Time: time.Second, Note: 10},
		{Time: 2 * time.Second, Note: 38},
	}}
	s := newTestScheduler(chart)
	s.Start()
	s.Tick(time.Second, 0)
	if s.Notes().Len() != 0 {
		t.Fatal("off-keyboard item spawned a note")
	}
	if s.Current() != 1 {
		t.Fatal("cursor did not consume the skipped item:", s.Current())
	}
	s.Tick(time.Second, 0)
	if s.Notes().Len() != 1 || !s.Complete() {
		t.Fail()
	}
}

func TestEmptyChartTick(t *testing.T) {
	// The parser rejects empty charts, but the scheduler should not
	// assume its input came through the parser.
	s := newTestScheduler(&game.Chart{Name: "empty"})
	s.Start()
	s.Tick(time.Second, 0)
	if !s.Complete() || !s.Finished() {
		t.Fail()
	}
	if s.Notes().Len() != 0 || s.Missed() != 0 {
		t.Fail()
	}
}

func TestIdleTickIsNoOp(t *testing.T) {
	s := newTestScheduler(testChart())
	s.Tick(10*time.Second, 0)
	if s.Current() != 0 || s.Notes().Len() != 0 || s.Elapsed() != 0 {
		t.Fail()
	}
}

func TestReset(t *testing.T) {
	s := newTestScheduler(testChart())
	s.Start()
	for i := 0; i < 25; i++ {
		s.Tick(100*time.Millisecond, 0)
	}
	if s.Notes().Len() == 0 || s.Current() == 0 {
		t.Fatal("session did not get going before reset")
	}

	s.Reset()
	if s.Current() != 0 {
		t.Fail()
	}
	if s.Complete() || s.Playing() {
		t.Fail()
	}
	if s.Elapsed() != 0 || s.Notes().Len() != 0 || s.Missed() != 0 {
		t.Fail()
	}
}
