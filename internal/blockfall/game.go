// Package blockfall adapts the falling-block rules engine to the
// platform's game interface: fixed-tick stepping, action mapping,
// replay capture and rendering.
package blockfall

import (
	"github.com/vovakirdan/tui-blockfall/internal/blockfall/core"
	platformcore "github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/registry"
)

// PreviewCount is the default number of upcoming pieces the side panel
// shows.
const PreviewCount = 3

// Options controls presentation features that the rules engine does not
// own.
type Options struct {
	Ghost    bool // draw the drop-target outline
	Previews int  // upcoming pieces in the side panel
}

// DefaultOptions returns the stock presentation settings.
func DefaultOptions() Options {
	return Options{Ghost: true, Previews: PreviewCount}
}

// announceSeconds is how long a clear announcement stays on the HUD.
const announceSeconds = 2

func init() {
	registry.Register("blockfall", func() registry.Game {
		return New()
	})
}

// Game drives one session per the platform contract. In live mode it
// records every accepted input with simulation timestamps; in playback
// mode it feeds a finished record back into a fresh session instead of
// reading the keyboard.
type Game struct {
	session  *core.Session
	recorder core.Recorder
	playback *core.Playback
	opts     Options

	dtMs    float64
	screenW int
	screenH int
	seed    int64

	paused bool

	// Playback speed multiplier and the scaled-time budget it feeds.
	// The session itself always advances in whole dtMs ticks so replayed
	// inputs land at their recorded simulation timestamps.
	speed     float64
	pendingMs float64

	announcement  string
	announceTicks int

	// finished holds the completed replay until the platform takes it.
	finished *core.Record
}

// New creates a live game with default options. Reset must be called
// before stepping.
func New() *Game {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a live game with the given presentation
// settings.
func NewWithOptions(opts Options) *Game {
	if opts.Previews < 1 {
		opts.Previews = 1
	}
	if opts.Previews > core.PeekLimit {
		opts.Previews = core.PeekLimit
	}
	return &Game{opts: opts}
}

// NewReplay creates a game that replays a finished record instead of
// accepting play input.
func NewReplay(rec core.Record) *Game {
	g := NewWithOptions(DefaultOptions())
	g.playback = core.NewPlayback(rec)
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "blockfall"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockfall"
}

// Reset starts a new session. In live mode the configured seed (or the
// clock, for zero) seeds the sequencer and a fresh recording begins; in
// playback mode the record's own seed is used so the session re-derives
// the original piece order.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.dtMs = 1000.0 / float64(rate)

	g.paused = false
	g.speed = 1
	g.pendingMs = 0
	g.announcement = ""
	g.announceTicks = 0
	g.finished = nil

	if g.playback != nil {
		g.playback = core.NewPlayback(g.playback.Record)
		g.session = core.NewSession(g.playback.Record.Seed)
		return
	}

	g.seed = cfg.Seed
	g.session = core.NewSession(g.seed)
	g.recorder.Start(g.session.Seed())
}

// Watching reports whether this game is replaying a record.
func (g *Game) Watching() bool {
	return g.playback != nil
}

// TakeRecord returns the finished replay of a completed live session,
// once. Nil while the session is still running, in playback mode, or
// if the record was already taken.
func (g *Game) TakeRecord() *core.Record {
	rec := g.finished
	g.finished = nil
	return rec
}

// PlaybackProgress returns replay position as 0-100, or 0 in live mode.
func (g *Game) PlaybackProgress() float64 {
	if g.playback == nil {
		return 0
	}
	return g.playback.Progress()
}

// clampSpeed keeps the playback multiplier in a usable range.
func clampSpeed(speed float64) float64 {
	if speed < 0.25 {
		return 0.25
	}
	if speed > 4 {
		return 4
	}
	return speed
}

// actionInput maps a platform action to a session input token.
func actionInput(a platformcore.Action) (core.Input, bool) {
	switch a {
	case platformcore.ActionLeft:
		return core.InputLeft, true
	case platformcore.ActionRight:
		return core.InputRight, true
	case platformcore.ActionSoftDrop:
		return core.InputSoftDrop, true
	case platformcore.ActionHardDrop:
		return core.InputHardDrop, true
	case platformcore.ActionRotateCW:
		return core.InputRotateCW, true
	case platformcore.ActionRotateCCW:
		return core.InputRotateCCW, true
	case platformcore.ActionHold:
		return core.InputHold, true
	}
	return 0, false
}

// Step advances the game by one fixed tick. Inputs are applied before
// the session tick so lock-delay resets observe them; PlayActions gives
// a stable application order when several arrive in one frame, which
// replays depend on.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionRestart) && g.session != nil && g.session.Over() {
		g.Reset(platformcore.RuntimeConfig{
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: int(1000.0/g.dtMs + 0.5),
			Seed:     0,
		})
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}

	if g.playback != nil {
		if in.Has(platformcore.ActionSpeedUp) {
			g.speed = clampSpeed(g.speed * 2)
		}
		if in.Has(platformcore.ActionSpeedDown) {
			g.speed = clampSpeed(g.speed / 2)
		}
	}

	if g.session == nil || g.paused || g.session.Over() {
		return platformcore.StepResult{State: g.State()}
	}

	var label string
	if g.playback != nil {
		// The speed multiplier scales wall time into a tick budget;
		// the session itself only ever advances by whole dtMs ticks,
		// each fed its due inputs first, so the replayed timeline is
		// the recorded timeline at any speed.
		g.pendingMs += g.dtMs * g.speed
		for g.pendingMs >= g.dtMs && !g.session.Over() {
			g.pendingMs -= g.dtMs
			for _, input := range g.playback.Update(g.dtMs) {
				g.session.Apply(input)
			}
			res := g.session.Tick(g.dtMs)
			g.noteTick(res.Label)
			if res.Label != "" {
				label = res.Label
			}
		}
	} else {
		g.recorder.Advance(g.dtMs)
		for _, a := range platformcore.PlayActions {
			if !in.Has(a) {
				continue
			}
			input, ok := actionInput(a)
			if !ok {
				continue
			}
			if g.session.Apply(input) {
				g.recorder.Record(input)
			}
		}

		res := g.session.Tick(g.dtMs)
		g.noteTick(res.Label)
		label = res.Label

		if res.GameOver && g.recorder.Recording() {
			scores := g.session.Scores()
			rec := g.recorder.Stop(scores.Score, scores.Level, scores.TotalLines)
			g.finished = &rec
		}
	}

	return platformcore.StepResult{
		State:        g.State(),
		Announcement: label,
	}
}

// noteTick updates the HUD announcement for one simulation tick.
func (g *Game) noteTick(label string) {
	if label != "" {
		g.announcement = label
		g.announceTicks = int(float64(announceSeconds) * 1000.0 / g.dtMs)
		return
	}
	if g.announceTicks > 0 {
		g.announceTicks--
		if g.announceTicks == 0 {
			g.announcement = ""
		}
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{Level: 1, Paused: g.paused}
	if g.session == nil {
		return st
	}
	scores := g.session.Scores()
	st.Score = scores.Score
	st.Level = scores.Level
	st.Lines = scores.TotalLines
	st.GameOver = g.session.Over()
	return st
}
