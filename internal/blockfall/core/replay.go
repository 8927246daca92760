package core

import (
	"time"

	"github.com/google/uuid"
)

// TimedInput is one replay log entry: an input token and when it was
// applied, in milliseconds of simulated time since recording started.
type TimedInput struct {
	AtMs  float64 `json:"at"`
	Input Input   `json:"input"`
}

// Record is a finished replay: the sequencer seed plus the full
// timestamped input log, enough to re-derive the session bit for bit.
// Immutable once created; persistence happens elsewhere.
type Record struct {
	ID         string       `json:"id"`
	Seed       int64        `json:"seed"`
	Actions    []TimedInput `json:"actions"`
	FinalScore int          `json:"finalScore"`
	FinalLevel int          `json:"finalLevel"`
	FinalLines int          `json:"finalLines"`
	DurationMs float64      `json:"durationMs"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Recorder captures a session's input stream. Time is simulation time:
// the session driver advances the recorder with the same deltas it
// feeds the session, so recorded timestamps are independent of the wall
// clock and identical across replays.
type Recorder struct {
	recording bool
	seed      int64
	elapsedMs float64
	actions   []TimedInput
}

// Start resets the recorder and begins a new log for the given seed.
func (r *Recorder) Start(seed int64) {
	r.recording = true
	r.seed = seed
	r.elapsedMs = 0
	r.actions = nil
}

// Recording reports whether a log is currently being captured.
func (r *Recorder) Recording() bool {
	return r.recording
}

// Advance moves recorded time forward. Negative deltas are ignored.
func (r *Recorder) Advance(dtMs float64) {
	if r.recording && dtMs > 0 {
		r.elapsedMs += dtMs
	}
}

// Record appends an input at the current recorded time. No-op while not
// recording.
func (r *Recorder) Record(in Input) {
	if !r.recording {
		return
	}
	r.actions = append(r.actions, TimedInput{AtMs: r.elapsedMs, Input: in})
}

// Stop snapshots the log into a Record with a fresh unique id and stops
// recording. Stopping a recorder that was never started yields an empty
// default record rather than failing.
func (r *Recorder) Stop(finalScore, finalLevel, finalLines int) Record {
	rec := Record{
		ID:         uuid.NewString(),
		Seed:       r.seed,
		Actions:    append([]TimedInput(nil), r.actions...),
		FinalScore: finalScore,
		FinalLevel: finalLevel,
		FinalLines: finalLines,
		DurationMs: r.elapsedMs,
		CreatedAt:  time.Now(),
	}
	r.recording = false
	r.actions = nil
	r.elapsedMs = 0
	return rec
}

// Playback drains a record's input log against advancing playback time.
type Playback struct {
	Record    Record
	ElapsedMs float64
	NextIndex int
	Paused    bool
	Speed     float64
	Finished  bool
}

// NewPlayback initializes playback state at the start of the record,
// unpaused, at normal speed.
func NewPlayback(rec Record) *Playback {
	return &Playback{Record: rec, Speed: 1}
}

// Update advances playback by dtMs (scaled by Speed) and returns, in
// log order, every input whose recorded timestamp has been reached.
// A paused, finished, or negative-delta update is a strict no-op.
// Playback finishes once the log is exhausted and elapsed time has
// reached the record's duration; the exact boundary counts as finished.
func (p *Playback) Update(dtMs float64) []Input {
	if p.Paused || p.Finished || dtMs < 0 {
		return nil
	}

	p.ElapsedMs += dtMs * p.Speed

	var due []Input
	for p.NextIndex < len(p.Record.Actions) {
		entry := p.Record.Actions[p.NextIndex]
		if entry.AtMs > p.ElapsedMs {
			break
		}
		due = append(due, entry.Input)
		p.NextIndex++
	}

	if p.NextIndex >= len(p.Record.Actions) && p.ElapsedMs >= p.Record.DurationMs {
		p.Finished = true
	}
	return due
}

// SetSpeed changes the playback speed multiplier.
func (p *Playback) SetSpeed(speed float64) {
	p.Speed = speed
}

// Pause halts playback time.
func (p *Playback) Pause() { p.Paused = true }

// Resume continues playback time.
func (p *Playback) Resume() { p.Paused = false }

// TogglePause flips the paused flag.
func (p *Playback) TogglePause() { p.Paused = !p.Paused }

// Progress returns playback position as 0-100, clamped. A zero-duration
// record is complete immediately.
func (p *Playback) Progress() float64 {
	if p.Record.DurationMs <= 0 {
		return 100
	}
	pct := p.ElapsedMs / p.Record.DurationMs * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
