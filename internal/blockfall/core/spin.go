package core

// SpinTier classifies the rotation bonus awarded when a T piece locks
// in a pocket it was rotated into.
type SpinTier int

const (
	SpinNone SpinTier = iota
	SpinMini          // minor: pocket found but the easier variant
	SpinFull          // major: both leading corners filled, genuine kick
)

// String returns a human-readable name for the tier.
func (t SpinTier) String() string {
	switch t {
	case SpinMini:
		return "T-Spin Mini"
	case SpinFull:
		return "T-Spin"
	default:
		return "None"
	}
}

// spinCorners assigns, per rotation state, the two corners flanking the
// T piece's nose (leading) and the two behind it (trailing), as offsets
// from the pivot cell at box origin + (1,1). State 0 points the nose up,
// each clockwise rotation turns it a quarter right.
var spinCorners = [4]struct {
	Leading  [2]Coord
	Trailing [2]Coord
}{
	{Leading: [2]Coord{{-1, -1}, {1, -1}}, Trailing: [2]Coord{{-1, 1}, {1, 1}}},   // nose up
	{Leading: [2]Coord{{1, -1}, {1, 1}}, Trailing: [2]Coord{{-1, -1}, {-1, 1}}},   // nose right
	{Leading: [2]Coord{{-1, 1}, {1, 1}}, Trailing: [2]Coord{{-1, -1}, {1, -1}}},   // nose down
	{Leading: [2]Coord{{-1, -1}, {-1, 1}}, Trailing: [2]Coord{{1, -1}, {1, 1}}},   // nose left
}

// cornerFilled treats out-of-bounds corners as filled: walls, the floor
// and the hidden band above all count, which is required for correct
// wall and floor pockets.
func cornerFilled(g *Grid, x, y int) bool {
	cell, ok := g.CellAt(x, y)
	if !ok {
		return true
	}
	return cell.Filled
}

// DetectSpin classifies the spin bonus for a piece about to lock. It
// must be called with the grid still in its pre-lock state.
//
// Only the T kind qualifies, and only when the last successful action
// was a rotation (any translation or drop since clears that). The three
// corner rule applies around the pivot; SpinFull additionally requires
// both leading corners filled and a kick trial below the last (index 4).
// A rotation that needed the final kick is always SpinMini.
func DetectSpin(g *Grid, p *Piece, lastWasRotation bool, kickTrial int) SpinTier {
	if p.Kind != KindT || !lastWasRotation {
		return SpinNone
	}

	px, py := p.X+1, p.Y+1
	corners := spinCorners[p.Rot&3]

	leading := 0
	for _, off := range corners.Leading {
		if cornerFilled(g, px+off.X, py+off.Y) {
			leading++
		}
	}
	trailing := 0
	for _, off := range corners.Trailing {
		if cornerFilled(g, px+off.X, py+off.Y) {
			trailing++
		}
	}

	if leading+trailing < 3 {
		return SpinNone
	}
	if leading == 2 && kickTrial < 4 {
		return SpinFull
	}
	return SpinMini
}
