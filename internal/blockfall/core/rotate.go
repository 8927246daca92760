package core

// Direction selects the rotation sense.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	if d == Clockwise {
		return "CW"
	}
	return "CCW"
}

// RotationResult reports the outcome of a rotation attempt. Trial is the
// index of the kick trial that succeeded (0 is the in-place rotation,
// 1-4 are the compensating kicks) or -1 on failure. The trial index is
// surfaced because the spin bonus detector needs it, not just a boolean.
type RotationResult struct {
	Applied bool
	Trial   int
	Offset  Coord
}

// Kick tables follow the standard guideline rotation system: five
// ordered positional trials per (kind class, transition), the first
// always the zero offset. Offsets are in screen coordinates, y growing
// downward. Indexed by the rotation state being left.
var (
	kicksCommonCW = [4][5]Coord{
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},  // 0 -> 1
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // 1 -> 2
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},     // 2 -> 3
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 3 -> 0
	}
	kicksCommonCCW = [4][5]Coord{
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},     // 0 -> 3
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // 1 -> 0
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},  // 2 -> 1
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 3 -> 2
	}
	kicksICW = [4][5]Coord{
		{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},   // 0 -> 1
		{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},   // 1 -> 2
		{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},   // 2 -> 3
		{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},   // 3 -> 0
	}
	kicksICCW = [4][5]Coord{
		{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},   // 0 -> 3
		{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},   // 1 -> 0
		{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},   // 2 -> 1
		{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},   // 3 -> 2
	}
)

// kickTrials returns the ordered trial list for a kind leaving the given
// rotation state in the given direction.
func kickTrials(k Kind, from Rotation, d Direction) [5]Coord {
	if k == KindI {
		if d == Clockwise {
			return kicksICW[from&3]
		}
		return kicksICCW[from&3]
	}
	if d == Clockwise {
		return kicksCommonCW[from&3]
	}
	return kicksCommonCCW[from&3]
}

// Rotate attempts to rotate the piece on the grid. Each kick trial is
// tested on a scratch copy; the first one the grid accepts is committed
// to the piece and reported. If every trial collides the piece is left
// untouched and Trial is -1.
//
// The O kind has identical shapes in all four states, so it trivially
// succeeds in place with no state change.
func Rotate(g *Grid, p *Piece, d Direction) RotationResult {
	if p.Kind == KindO {
		return RotationResult{Applied: true, Trial: 0}
	}

	target := p.Rot.CW()
	if d == CounterClockwise {
		target = p.Rot.CCW()
	}

	trials := kickTrials(p.Kind, p.Rot, d)
	for i, off := range trials {
		probe := p.Clone()
		probe.RotateTo(target)
		probe.Move(off.X, off.Y)
		if g.CanPlace(probe) {
			p.RotateTo(target)
			p.Move(off.X, off.Y)
			return RotationResult{Applied: true, Trial: i, Offset: off}
		}
	}
	return RotationResult{Applied: false, Trial: -1}
}
