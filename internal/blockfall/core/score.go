package core

// LineClear is the transient result handed from lock processing to the
// scoreboard: how many rows cleared and which spin tier applied.
type LineClear struct {
	Lines int
	Spin  SpinTier
}

// ClearAction is the closed set of scorable lock outcomes. Keeping this
// an enumeration (rather than string keys) makes the base-value mapping
// exhaustive: an unmapped combination cannot silently score zero.
type ClearAction int

const (
	ActionNothing ClearAction = iota
	ActionSingle
	ActionDouble
	ActionTriple
	ActionQuad
	ActionSpinMini
	ActionSpinMiniSingle
	ActionSpinMiniDouble
	ActionSpin
	ActionSpinSingle
	ActionSpinDouble
	ActionSpinTriple
)

// classify maps a line-clear result to its action, base point value,
// display label, and whether it counts as difficult. Quads and any spin
// clear that removes at least one line are difficult; difficult clears
// feed the back-to-back chain.
func classify(c LineClear) (action ClearAction, base int, label string, difficult bool) {
	if c.Lines >= 4 {
		return ActionQuad, 800, "Quad", true
	}
	switch c.Spin {
	case SpinMini:
		switch c.Lines {
		case 0:
			return ActionSpinMini, 100, "T-Spin Mini", false
		case 1:
			return ActionSpinMiniSingle, 200, "T-Spin Mini Single", true
		default:
			return ActionSpinMiniDouble, 400, "T-Spin Mini Double", true
		}
	case SpinFull:
		switch c.Lines {
		case 0:
			return ActionSpin, 400, "T-Spin", false
		case 1:
			return ActionSpinSingle, 800, "T-Spin Single", true
		case 2:
			return ActionSpinDouble, 1200, "T-Spin Double", true
		default:
			return ActionSpinTriple, 1600, "T-Spin Triple", true
		}
	}
	switch c.Lines {
	case 1:
		return ActionSingle, 100, "Single", false
	case 2:
		return ActionDouble, 300, "Double", false
	case 3:
		return ActionTriple, 500, "Triple", false
	}
	return ActionNothing, 0, "", false
}

// ClearOutcome is what processing one lock produced.
type ClearOutcome struct {
	Action ClearAction
	Points int
	Label  string // display/announcement text, empty for a plain lock
}

// NoCombo is the combo counter's sentinel for "no streak running".
const NoCombo = -1

// gravityTable maps level (1-based) to milliseconds per gravity row.
// Monotone non-increasing; levels beyond the table clamp to the last
// entry.
var gravityTable = []float64{
	800, 720, 630, 550, 470,
	380, 300, 220, 130, 100,
	80, 80, 70, 70, 60,
	60, 50, 50, 40, 30,
}

// Scoreboard tracks score, combo streak, back-to-back state, level and
// cleared lines for one session. It is a state machine over clears, not
// piece locks: a lock that clears nothing and carries no spin tier
// resets the combo but leaves back-to-back alone.
type Scoreboard struct {
	Score      int
	Level      int
	TotalLines int
	Combo      int
	BackToBack bool
}

// NewScoreboard returns a scoreboard in its session-start state.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{Level: 1, Combo: NoCombo}
}

// ProcessClear consumes one lock's line-clear result and returns the
// outcome. Point math, in order: base value from the action table, the
// 1.5x back-to-back bonus (floored) for difficult actions, the level
// multiplier, then the 50 x combo x level combo bonus for clears.
//
// A spin with zero lines scores but changes neither combo nor
// back-to-back. A plain zero-line lock resets the combo to its sentinel
// and awards nothing.
func (s *Scoreboard) ProcessClear(c LineClear) ClearOutcome {
	action, base, label, difficult := classify(c)

	if action == ActionNothing {
		s.Combo = NoCombo
		return ClearOutcome{Action: ActionNothing}
	}

	if difficult && s.BackToBack {
		base = base * 3 / 2
		label = "Back-to-Back " + label
	}
	points := base * s.Level

	if c.Lines >= 1 {
		s.Combo++
		if s.Combo > 0 {
			points += 50 * s.Combo * s.Level
		}
		s.BackToBack = difficult
	}

	s.Score += points
	s.TotalLines += c.Lines
	if lvl := s.TotalLines/10 + 1; lvl > s.Level {
		s.Level = lvl
	}

	return ClearOutcome{Action: action, Points: points, Label: label}
}

// AddSoftDrop awards the flat soft-drop bonus: one point per cell
// descended. Bypasses the clear pipeline entirely.
func (s *Scoreboard) AddSoftDrop(cells int) {
	if cells > 0 {
		s.Score += cells
	}
}

// AddHardDrop awards the flat hard-drop bonus: two points per cell.
func (s *Scoreboard) AddHardDrop(cells int) {
	if cells > 0 {
		s.Score += 2 * cells
	}
}

// FallInterval returns the gravity interval in milliseconds for the
// current level.
func (s *Scoreboard) FallInterval() float64 {
	idx := s.Level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(gravityTable) {
		idx = len(gravityTable) - 1
	}
	return gravityTable[idx]
}
