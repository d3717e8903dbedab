package score

import (
	"testing"
	"time"

	"keyfall/internal/config"
	"keyfall/internal/game"
	"keyfall/internal/testdata"
	"keyfall/internal/timeline"
)

// Drives a session over the canned chart through the real scheduler: one
// note struck exactly on the strike line, everything else left to fall
// through.
func TestSessionOverCannedChart(t *testing.T) {
	chart, err := testdata.GetChart()
	if nil != err {
		t.Fatal("unable to decode chart", err)
	}

	s := timeline.NewScheduler(chart, game.NewLayout(config.NumKeys))
	s.Start()

	// elapsed = scheduled + (Top-WhiteKeyHeight)/Top * FallTime puts the
	// first note (1.0s, device key 38) exactly on the strike line.
	s.Tick(3450*time.Millisecond, 0)

	var j Judge
	res, ok := j.Apply(press(38), 0, s.Notes())
	if !ok {
		t.Fatal("press on the strike line did not match")
	}
	if res.Error > 1e-9 || res.Delta != config.BaseScore {
		t.Log("result", res)
		t.Fail()
	}

	for i := 0; !s.Finished() && i < 200; i++ {
		s.Tick(100*time.Millisecond, 0)
	}
	if !s.Finished() {
		t.Fatal("session never finished; cursor at", s.Current())
	}
	if j.Hits != 1 || j.Score != config.BaseScore {
		t.Log("hits", j.Hits, "score", j.Score)
		t.Fail()
	}
	if s.Missed() != uint64(len(chart.Items)-1) {
		t.Fatal("missed", s.Missed(), "of", len(chart.Items), "items")
	}
}
