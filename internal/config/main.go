package config

import (
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Chart       = kingpin.Flag("chart", "Chart file to play").Short('c').Required().ExistingFile()
	Audio       = kingpin.Flag("audio", "Backing track (mp3)").Short('a').String()
	Delay       = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("8ms").Short('p').Duration()
	Octave      = kingpin.Flag("octave", "Initial octave setting").Default("0").Short('o').Int()
	Port        = kingpin.Flag("port", "MIDI input port index, -1 to select at startup").Default("-1").Int()
	Virtual     = kingpin.Flag("virtual", "Play with the computer keyboard instead of a device").Bool()
	Database    = kingpin.Flag("database", "Score database path").Default("./scores.db").String()
	Debug       = kingpin.Flag("debug", "Debug logging").Bool()
)

const (
	// NumKeys is the size of the virtual keyboard, a 61 key piano.
	NumKeys = 61

	// KeyHistory is the capacity of the recent input ring.
	KeyHistory = 10

	// BaseScore is the score for a hit exactly on the strike line.
	BaseScore = 1000
)

// Fall geometry. A note spawns at Top at its scheduled time and reaches
// Bottom FallTime later. Position is always derived from the clock, never
// integrated, so a paused and resumed run matches an uninterrupted one.
const (
	Top            = 30.0
	Bottom         = 0.0
	WhiteKeyHeight = 5.5
	MaxErrorWindow = 5.0
)

// FallTime is the time a note takes to travel from Top to Bottom.
var FallTime = 3 * time.Second

// EarlyWindow rejects presses while the matching note is still more than
// this many units above the strike line. Negative disables the gate.
var EarlyWindow = MaxErrorWindow

// ClampAccuracy bounds judged accuracy to [0,1].
var ClampAccuracy = true

// Judgement names an accuracy band for display.
type Judgement struct {
	Error float64
	Name  string
}

// Judgements must stay ordered by Error ascending.
var Judgements = []Judgement{
	{0.5, "Perfect"},
	{1.5, "Great"},
	{3.0, "Good"},
	{MaxErrorWindow, "Okay"},
}

// JudgementFor maps a strike-line error to its display band.
func JudgementFor(err float64) Judgement {
	for _, j := range Judgements {
		if err <= j.Error {
			return j
		}
	}
	return Judgement{Error: -1, Name: "Late"}
}

func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
