package score

import (
	"math"

	"keyfall/internal/config"
	"keyfall/internal/game"
)

// Judge resolves key events against the live falling notes and accumulates
// the session score. Single writer: only judgment mutates the score.
type Judge struct {
	Score int64
	Hits  uint64

	sumError float64
}

// Result describes one resolved hit.
type Result struct {
	Note     game.FallingNote
	Error    float64 // vertical distance past the strike line
	Accuracy float64
	Delta    int64
}

// Apply judges one input event. Released events never score; they only
// matter to key highlighting. A press matching no live note is a no-op, not
// an error: wrong notes into empty air are free. On a match the note is
// despawned and the score delta applied.
func (j *Judge) Apply(ev game.KeyEvent, octave int, notes *game.NoteArena) (Result, bool) {
	if ev.Kind == game.Released {
		return Result{}, false
	}

	offset := game.OctaveOffset(octave)
	device := int(ev.Key)

	// Among candidates on the same device key, take the one nearest the
	// strike line rather than the oldest.
	var best *game.FallingNote
	bestDistance := math.MaxFloat64
	for _, n := range notes.All() {
		if n.Key+offset != device {
			continue
		}
		if config.EarlyWindow >= 0 && n.PositionY > config.WhiteKeyHeight+config.EarlyWindow {
			// Still too far above the line to be strikeable.
			continue
		}
		d := math.Abs(n.PositionY - config.WhiteKeyHeight)
		if d < bestDistance {
			bestDistance = d
			best = n
		}
	}
	if best == nil {
		return Result{}, false
	}

	// Distance past the line. A hit at or above the line is perfect;
	// negative distances are not penalized.
	errDist := math.Max(0, config.WhiteKeyHeight-best.PositionY)
	accuracy := errDist / config.MaxErrorWindow
	if config.ClampAccuracy && accuracy > 1 {
		accuracy = 1
	}
	delta := int64(math.Round(config.BaseScore * (1 - accuracy)))
	if delta < 0 {
		delta = 0
	}

	j.Score += delta
	j.Hits++
	j.sumError += errDist

	res := Result{Note: *best, Error: errDist, Accuracy: accuracy, Delta: delta}
	notes.Remove(best.ID)
	return res, true
}

// MeanError is the average strike-line error across all hits this session.
func (j *Judge) MeanError() float64 {
	if j.Hits == 0 {
		return 0
	}
	return j.sumError / float64(j.Hits)
}

func (j *Judge) Reset() {
	*j = Judge{}
}
