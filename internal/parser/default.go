package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"keyfall/internal/game"
)

// DefaultParser reads a chart from a JSON data table:
//
//	{"name": "...", "notes": [{"time": 1.0, "note": 38, "length": 3.0}, ...]}
//
// Times are seconds from timeline start and must be strictly increasing;
// the scheduler walks the list forward only and never re-sorts it.
type DefaultParser struct{}

type chartFile struct {
	Name  string      `json:"name"`
	Notes []chartNote `json:"notes"`
}

type chartNote struct {
	Time   float64 `json:"time"`
	Note   int     `json:"note"`
	Length float64 `json:"length"`
}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read chart: %w", err)
	}
	chart, err := Decode(data)
	if nil != err {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return chart, nil
}

// Decode parses and validates raw chart data.
func Decode(data []byte) (*game.Chart, error) {
	var cf chartFile
	if err := json.Unmarshal(data, &cf); nil != err {
		return nil, fmt.Errorf("unable to parse chart: %w", err)
	}
	if len(cf.Notes) == 0 {
		return nil, fmt.Errorf("chart %q has no notes", cf.Name)
	}

	items := make([]game.TimelineItem, len(cf.Notes))
	last := math.Inf(-1)
	for i, n := range cf.Notes {
		if n.Time <= last {
			return nil, fmt.Errorf("chart %q: note %d at %vs is not after %vs", cf.Name, i, n.Time, last)
		}
		last = n.Time
		if n.Note < 0 || n.Note > 127 {
			return nil, fmt.Errorf("chart %q: note %d key %d out of range", cf.Name, i, n.Note)
		}
		if n.Length < 0 {
			return nil, fmt.Errorf("chart %q: note %d has negative length", cf.Name, i)
		}
		items[i] = game.TimelineItem{
			Time:   secondsToDuration(n.Time),
			Note:   uint8(n.Note),
			Length: secondsToDuration(n.Length),
		}
	}

	return &game.Chart{Name: cf.Name, Items: items}, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
