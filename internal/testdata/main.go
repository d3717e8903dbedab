package testdata

import (
	"keyfall/internal/game"
	"keyfall/internal/parser"
)

// GetChart returns a short fixed chart, an octave run around middle C as a
// 61-key device reports it at octave 0.
func GetChart() (*game.Chart, error) {
	return parser.Decode([]byte(data))
}

const data = `{
  "name": "scale",
  "notes": [
    {"time": 1.0, "note": 38, "length": 3.0},
    {"time": 1.5, "note": 40, "length": 0},
    {"time": 2.0, "note": 41, "length": 0},
    {"time": 2.5, "note": 43, "length": 0},
    {"time": 3.0, "note": 45, "length": 0},
    {"time": 3.5, "note": 47, "length": 0},
    {"time": 4.0, "note": 48, "length": 0},
    {"time": 4.5, "note": 50, "length": 1.0},
    {"time": 5.25, "note": 48, "length": 0},
    {"time": 6.0, "note": 43, "length": 0},
    {"time": 6.75, "note": 38, "length": 2.0}
  ]
}`
