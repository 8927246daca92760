package core

// Input is the closed set of action tokens the session consumes. The
// platform layer maps keys to these; the replay log stores them.
type Input int

const (
	InputLeft Input = iota
	InputRight
	InputSoftDrop
	InputHardDrop
	InputRotateCW
	InputRotateCCW
	InputHold
)

// InputCount bounds the valid Input values; anything outside [0,
// InputCount) is malformed and must be rejected at the storage boundary
// before it ever reaches a session.
const InputCount = 7

// String returns a stable name for the input token.
func (in Input) String() string {
	switch in {
	case InputLeft:
		return "left"
	case InputRight:
		return "right"
	case InputSoftDrop:
		return "soft-drop"
	case InputHardDrop:
		return "hard-drop"
	case InputRotateCW:
		return "rotate-cw"
	case InputRotateCCW:
		return "rotate-ccw"
	case InputHold:
		return "hold"
	default:
		return "unknown"
	}
}

// Valid reports whether the token is one of the defined inputs.
func (in Input) Valid() bool {
	return in >= 0 && in < InputCount
}

// Session timing and spawn constants.
const (
	SpawnX = 3              // box origin column at spawn
	SpawnY = BufferRows - 2 // spawn cells sit in the hidden band
	// LockDelayMs is how long a grounded piece may keep moving before
	// it locks. Successful moves and rotations while grounded reset it.
	LockDelayMs = 500.0
)

// TickResult reports what one simulation tick did.
type TickResult struct {
	Spawned  bool
	Locked   bool
	Cleared  int
	Spin     SpinTier
	Points   int
	Label    string // announcement text for a notable clear, else empty
	GameOver bool
}

// Session is the per-game state machine: it owns the grid, the active
// piece, the sequencer, the hold slot and the scoreboard, and advances
// them on a fixed timestep supplied by the external driver. All inputs
// for a tick must be applied (Apply) before that tick's Tick call so
// lock-delay resets observe them.
//
// Everything here is single-writer and deterministic: given the same
// seed, the same ordered inputs and the same per-tick deltas, two
// sessions reach identical grid and score state.
type Session struct {
	grid   *Grid
	bag    *Bag
	scores *Scoreboard

	active *Piece // nil while no piece is in play

	held     Kind
	hasHeld  bool
	holdUsed bool

	lockRemainMs float64
	gravityMs    float64

	lastRotation  bool
	lastKickTrial int

	// lastResult carries lock information from a hard drop applied in
	// the input phase into the same tick's Tick result.
	lastResult TickResult

	over bool
}

// NewSession creates a session seeded for its sequencer. A zero seed
// draws one from the clock; Seed exposes whichever was used.
func NewSession(seed int64) *Session {
	return &Session{
		grid:         NewGrid(),
		bag:          NewBag(seed),
		scores:       NewScoreboard(),
		lockRemainMs: LockDelayMs,
	}
}

// Seed returns the sequencer seed of this session.
func (s *Session) Seed() int64 { return s.bag.Seed() }

// Grid exposes the playfield for rendering and tests.
func (s *Session) Grid() *Grid { return s.grid }

// Scores exposes the scoreboard.
func (s *Session) Scores() *Scoreboard { return s.scores }

// Bag exposes the sequencer, e.g. for next-piece previews.
func (s *Session) Bag() *Bag { return s.bag }

// Active returns the piece in play, nil if none.
func (s *Session) Active() *Piece { return s.active }

// Held returns the held kind and whether one is held.
func (s *Session) Held() (Kind, bool) { return s.held, s.hasHeld }

// HoldUsed reports whether hold was already consumed this spawn.
func (s *Session) HoldUsed() bool { return s.holdUsed }

// Over reports whether the session has reached its terminal state.
func (s *Session) Over() bool { return s.over }

// Ghost returns a copy of the active piece at its drop target, for
// ghost-piece rendering. Nil when no piece is active.
func (s *Session) Ghost() *Piece {
	if s.active == nil {
		return nil
	}
	g := s.active.Clone()
	target := s.grid.DropTarget(g)
	g.SetPosition(target.X, target.Y)
	return g
}

// grounded reports whether the active piece cannot descend one row.
func (s *Session) grounded() bool {
	if s.active == nil {
		return false
	}
	probe := s.active.Clone()
	probe.Move(0, 1)
	return !s.grid.CanPlace(probe)
}

// Apply feeds one input token into the session, before the current
// tick's gravity step. It returns whether the action took effect; a
// rejected action leaves every piece of state untouched.
func (s *Session) Apply(in Input) bool {
	if s.over || s.active == nil {
		return false
	}

	switch in {
	case InputLeft:
		return s.shift(-1)
	case InputRight:
		return s.shift(1)
	case InputSoftDrop:
		return s.softDrop()
	case InputHardDrop:
		s.hardDrop()
		return true
	case InputRotateCW:
		return s.rotate(Clockwise)
	case InputRotateCCW:
		return s.rotate(CounterClockwise)
	case InputHold:
		return s.hold()
	}
	return false
}

// shift moves the piece one column sideways. A successful horizontal
// move clears the rotation flag and, while grounded, resets the lock
// delay.
func (s *Session) shift(dx int) bool {
	probe := s.active.Clone()
	probe.Move(dx, 0)
	if !s.grid.CanPlace(probe) {
		return false
	}
	s.active.Move(dx, 0)
	s.lastRotation = false
	if s.grounded() {
		s.lockRemainMs = LockDelayMs
	}
	return true
}

// softDrop moves the piece one row down for a point, resetting the
// gravity timer so the manual step replaces the scheduled one.
func (s *Session) softDrop() bool {
	probe := s.active.Clone()
	probe.Move(0, 1)
	if !s.grid.CanPlace(probe) {
		return false
	}
	s.active.Move(0, 1)
	s.lastRotation = false
	s.scores.AddSoftDrop(1)
	s.gravityMs = 0
	return true
}

// hardDrop teleports the piece to its drop target and locks it at once.
// The drop only counts as a flag-clearing movement when the piece
// actually falls; locking in place right after a rotation keeps the
// rotation flag so the spin detector can see it.
func (s *Session) hardDrop() {
	target := s.grid.DropTarget(s.active)
	if dy := target.Y - s.active.Y; dy > 0 {
		s.scores.AddHardDrop(dy)
		s.active.SetPosition(target.X, target.Y)
		s.lastRotation = false
	}
	s.lastResult = s.lockActive()
}

// rotate delegates to the kick resolver. On success the rotation flag
// and trial index are recorded for spin detection, and a grounded piece
// gets its lock delay back.
func (s *Session) rotate(d Direction) bool {
	res := Rotate(s.grid, s.active, d)
	if !res.Applied {
		return false
	}
	s.lastRotation = true
	s.lastKickTrial = res.Trial
	if s.grounded() {
		s.lockRemainMs = LockDelayMs
	}
	return true
}

// hold swaps the active piece with the hold slot, once per spawn. The
// first hold banks the active kind and draws from the sequencer; later
// holds swap with the banked kind, bypassing the sequencer.
func (s *Session) hold() bool {
	if s.holdUsed {
		return false
	}
	prev := s.active.Kind
	if s.hasHeld {
		s.spawnPiece(s.held)
	} else {
		s.hasHeld = true
		s.spawnPiece(s.bag.Next())
	}
	s.held = prev
	s.holdUsed = true // spawnPiece cleared it; hold still counts as consumed
	return true
}

// Tick advances the session by dtMs milliseconds of simulated time:
// spawn if no piece is active, otherwise run lock-delay countdown when
// grounded and gravity when not.
func (s *Session) Tick(dtMs float64) TickResult {
	if pending := s.lastResult; pending.Locked {
		// A hard drop inside this tick's input phase already ran the
		// lock sequence; surface its result instead of double-stepping.
		s.lastResult = TickResult{}
		pending.GameOver = s.over
		return pending
	}

	if s.over {
		return TickResult{GameOver: true}
	}

	if s.active == nil {
		s.spawnPiece(s.bag.Next())
		return TickResult{Spawned: true, GameOver: s.over}
	}

	if s.grounded() {
		s.lockRemainMs -= dtMs
		if s.lockRemainMs <= 0 {
			res := s.lockActive()
			res.GameOver = s.over
			return res
		}
		return TickResult{}
	}

	s.lockRemainMs = LockDelayMs
	s.gravityMs += dtMs
	if s.gravityMs >= s.scores.FallInterval() {
		s.gravityMs = 0
		probe := s.active.Clone()
		probe.Move(0, 1)
		if s.grid.CanPlace(probe) {
			s.active.Move(0, 1)
			s.lastRotation = false
		}
	}
	return TickResult{}
}

// spawnPiece replaces the active piece with a fresh one of the given
// kind at the spawn position and resets per-spawn state. A spawn that
// does not fit ends the session (block-out).
func (s *Session) spawnPiece(k Kind) {
	s.active = NewPiece(k, SpawnX, SpawnY)
	s.lockRemainMs = LockDelayMs
	s.gravityMs = 0
	s.lastRotation = false
	s.lastKickTrial = 0
	s.holdUsed = false
	if !s.grid.CanPlace(s.active) {
		s.active = nil
		s.over = true
	}
}

// lockActive runs the lock sequence: spin detection against the
// pre-lock grid, the lock itself, row clears, scoring, the overflow
// game-over test, and the next spawn.
func (s *Session) lockActive() TickResult {
	spin := DetectSpin(s.grid, s.active, s.lastRotation, s.lastKickTrial)
	s.grid.Lock(s.active)
	cleared := s.grid.ClearFullRows()
	outcome := s.scores.ProcessClear(LineClear{Lines: cleared, Spin: spin})
	s.active = nil

	res := TickResult{
		Locked:  true,
		Cleared: cleared,
		Spin:    spin,
		Points:  outcome.Points,
		Label:   outcome.Label,
	}

	if s.grid.IsOverflowing() {
		s.over = true
		res.GameOver = true
		return res
	}

	s.spawnPiece(s.bag.Next())
	res.Spawned = true
	res.GameOver = s.over
	return res
}
