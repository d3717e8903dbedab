package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"keyfall/internal/config"
	"keyfall/internal/game"
	"keyfall/internal/input"
	"keyfall/internal/midi"
	"keyfall/internal/parser"
	"keyfall/internal/render"
	"keyfall/internal/score"
	"keyfall/internal/theme"
	"keyfall/internal/timeline"

	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"
)

type Program struct {
	Log      *zap.Logger
	Parser   parser.Parser
	Theme    theme.Theme
	Renderer render.Renderer

	chart     *game.Chart
	layout    game.Layout
	state     *input.State
	bridge    *input.Bridge
	device    midi.Device
	scheduler *timeline.Scheduler
	judge     score.Judge
	store     *score.Store
	best      score.SessionResult
	hasBest   bool

	keyChannel <-chan keyboard.KeyEvent
	audio      beep.StreamSeekCloser
	started    bool

	virtualClock uint64
	lastDuration time.Duration
	lastHit      string
	hitFrames    int
	saved        bool
	quit         bool
}

func (p *Program) Init() error {
	p.Parser = &parser.DefaultParser{}
	p.Theme = &theme.DefaultTheme{}
	p.Renderer = &render.DefaultRenderer{}

	chart, err := p.Parser.Parse(*config.Chart)
	if nil != err {
		return err
	}
	p.chart = chart

	p.layout = game.NewLayout(config.NumKeys)
	p.state = input.NewState(*config.Octave)
	p.bridge = input.NewBridge(p.Log)
	p.scheduler = timeline.NewScheduler(chart, p.layout)

	store, err := score.NewStore(*config.Database, p.Log)
	if nil != err {
		return err
	}
	p.store = store
	p.best, p.hasBest = store.Best(chart)

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	p.keyChannel = keyChannel

	if !*config.Virtual {
		device, err := midi.NewRtmidiDevice(p.Log)
		if nil != err {
			// No MIDI subsystem at all.
			return err
		}
		p.device = device
		// A failed connect is recoverable: the session runs with the
		// indicator off.
		if err := p.connectDevice(); nil != err {
			p.Log.Warn("no device connected", zap.Error(err))
		}
	}

	if *config.Audio != "" {
		if err := p.openAudio(*config.Audio); nil != err {
			return err
		}
	}

	return p.Renderer.Init()
}

func (p *Program) Deinit() {
	if !p.saved && p.judge.Hits > 0 {
		p.saveResult()
	}
	if nil != p.audio {
		p.audio.Close()
	}
	if nil != p.device {
		p.device.Close()
	}
	if nil != p.store {
		p.store.Close()
	}
	if err := keyboard.Close(); nil != err {
		p.Log.Warn("unable to close keyboard", zap.Error(err))
	}
	if err := p.Renderer.Deinit(); nil != err {
		p.Log.Warn("unable to restore terminal", zap.Error(err))
	}
}

// connectDevice opens the MIDI input before the simulation loop starts, so
// the blocking connect call never contends with a tick.
func (p *Program) connectDevice() error {
	ports, err := p.device.Ports()
	if nil != err {
		return err
	}
	if len(ports) == 0 {
		return fmt.Errorf("no MIDI inputs available")
	}

	index := *config.Port
	if index < 0 {
		for _, port := range ports {
			fmt.Printf("%2v) %v\r\n", port.Index, port.Name)
		}
		fmt.Printf("select a device\r\n")
		key := <-p.keyChannel
		index = int(key.Rune - '0')
	}
	if index < 0 || index >= len(ports) {
		return fmt.Errorf("invalid input port %d selected", index)
	}

	err = p.device.Connect(ports[index],
		p.bridge.Frame,
		p.bridge.Disconnected,
	)
	if nil != err {
		return err
	}
	p.bridge.Connected()
	return nil
}

func (p *Program) openAudio(file string) error {
	f, err := os.Open(file)
	if nil != err {
		return err
	}
	streamer, format, err := mp3.Decode(f)
	if nil != err {
		return err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); nil != err {
		streamer.Close()
		return err
	}
	p.audio = streamer
	return nil
}

// Frame is one pass of the render loop: apply control keys, drain the input
// bridge, judge, advance the timeline, draw.
func (p *Program) Frame(startTime time.Time, duration time.Duration) bool {
	dt := duration - p.lastDuration
	p.lastDuration = duration
	if dt < 0 {
		dt = 0 // still inside the start delay
	}

	p.handleKeys()
	if p.quit {
		return false
	}

	for _, ev := range p.bridge.Drain(p.state) {
		res, ok := p.judge.Apply(ev, p.state.Octave, p.scheduler.Notes())
		if !ok {
			continue
		}
		p.lastHit = config.JudgementFor(res.Error).Name
		p.hitFrames = 45
	}

	p.scheduler.Tick(dt, p.state.Octave)

	if p.scheduler.Finished() && !p.saved {
		p.saveResult()
	}

	p.draw()
	return true
}

// handleKeys drains the terminal key channel: session controls always, and
// in virtual mode the note keys become synthetic device frames.
func (p *Program) handleKeys() {
	for i := 0; i < len(p.keyChannel); i++ {
		key := <-p.keyChannel
		switch {
		case key.Key == keyboard.KeyEsc || key.Key == keyboard.KeyCtrlC:
			p.quit = true
		case key.Key == keyboard.KeySpace:
			p.togglePlaying()
		case key.Rune == 'r' && !*config.Virtual:
			p.reset()
		case key.Rune == '-':
			p.shiftOctave(-1)
		case key.Rune == '=':
			p.shiftOctave(+1)
		default:
			if *config.Virtual {
				if note, ok := midi.VirtualNote(key.Rune); ok {
					// The terminal reports no key-up, so each tap is a
					// press and an immediate release.
					p.virtualClock++
					p.bridge.Frame(p.virtualClock, []byte{144, note, 100})
					p.virtualClock++
					p.bridge.Frame(p.virtualClock, []byte{128, note, 0})
				} else if key.Rune == '0' {
					p.reset()
				}
			}
		}
	}
}

func (p *Program) togglePlaying() {
	if p.scheduler.Playing() {
		p.scheduler.Pause()
		return
	}
	p.scheduler.Resume()
	if nil != p.audio && !p.started {
		speaker.Play(p.audio)
	}
	p.started = true
}

func (p *Program) reset() {
	p.scheduler.Reset()
	p.judge.Reset()
	p.saved = false
	p.lastHit = ""
	p.hitFrames = 0
	if nil != p.audio {
		if err := p.audio.Seek(0); nil != err {
			p.Log.Warn("unable to rewind audio", zap.Error(err))
		}
	}
}

func (p *Program) shiftOctave(by int) {
	octave := p.state.Octave + by
	if octave < -3 {
		octave = -3
	}
	if octave > 3 {
		octave = 3
	}
	p.state.Octave = octave
}

func (p *Program) saveResult() {
	result := score.SessionResult{
		Score:     p.judge.Score,
		Hits:      p.judge.Hits,
		Misses:    p.scheduler.Missed(),
		MeanError: p.judge.MeanError(),
		PlayedAt:  time.Now(),
	}
	p.store.Save(p.chart, result)
	if !p.hasBest || result.Score > p.best.Score {
		p.best = result
		p.hasBest = true
	}
	p.saved = true
}

// Drawing. The field maps note height 0..Top onto the rows above the
// keyboard; two terminal columns per white key unit.
func (p *Program) draw() {
	rows, _ := p.Renderer.Size()
	p.Renderer.Clear()

	keyRow := rows - 2
	fieldTop := 3
	scale := float64(keyRow-1-fieldTop) / config.Top
	rowFor := func(y float64) int {
		return keyRow - 1 - int(math.Round(y*scale))
	}
	colFor := func(x float64) int {
		return 3 + int(math.Round(x*2))
	}

	p.drawHeader()

	// Strike line across the keyboard width.
	strikeRow := rowFor(config.WhiteKeyHeight)
	width := colFor(p.layout.Keys[len(p.layout.Keys)-1].X) + 2
	for col := colFor(0); col <= width; col++ {
		p.Renderer.Fill(strikeRow, col, p.Theme.StrikeGlyph())
	}

	// Live falling notes.
	for _, n := range p.scheduler.Notes().All() {
		row := rowFor(n.PositionY)
		if row < fieldTop || row >= keyRow {
			continue
		}
		p.Renderer.FillColor(row, colFor(n.X), p.Theme.NoteColor(n.Type), p.Theme.NoteGlyph(n.Type))
	}

	// The keyboard: white keys on the bottom row, black keys raised.
	offset := p.state.OctaveOffset()
	for _, key := range p.layout.Keys {
		row := keyRow
		if key.Type == game.Black {
			row = keyRow - 1
		}
		deviceKey := key.Index + offset
		held := deviceKey >= 0 && deviceKey < 128 && p.state.Held(uint8(deviceKey))
		p.Renderer.FillColor(row, colFor(key.X), p.Theme.KeyColor(key.Type, held), p.Theme.KeyGlyph(key.Type))
	}

	if p.hitFrames > 0 {
		p.hitFrames--
		p.Renderer.Fill(strikeRow-1, width+4, p.lastHit)
	}

	p.drawStats(width + 4)
}

func (p *Program) drawHeader() {
	status := "○ disconnected"
	if *config.Virtual {
		status = "● virtual"
	} else if p.state.Connected {
		status = "● connected"
	}

	mode := "idle"
	switch {
	case p.scheduler.Playing():
		mode = "playing"
	case p.scheduler.Finished():
		mode = "done"
	case p.scheduler.Elapsed() > 0:
		mode = "paused"
	}

	p.Renderer.Fill(1, 3, fmt.Sprintf("%v  [%v]  %v  octave %+d",
		p.chart.Name, mode, status, p.state.Octave))
}

func (p *Program) drawStats(col int) {
	p.Renderer.Fill(4, col, fmt.Sprintf("Score:  %6v", p.judge.Score))
	p.Renderer.Fill(5, col, fmt.Sprintf(" Hits:  %6v", p.judge.Hits))
	p.Renderer.Fill(6, col, fmt.Sprintf(" Miss:  %6v", p.scheduler.Missed()))
	p.Renderer.Fill(7, col, fmt.Sprintf("Error:  %6.2f", p.judge.MeanError()))
	if p.hasBest {
		p.Renderer.Fill(9, col, fmt.Sprintf(" Best:  %6v", p.best.Score))
	}

	// Input history, newest at the bottom, display only.
	recent := p.state.Recent()
	for i, ev := range recent {
		p.Renderer.Fill(12+i, col, fmt.Sprintf("%8v  key %3v  vel %3v", ev.Kind, ev.Key, ev.Velocity))
	}
}
