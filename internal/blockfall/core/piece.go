// Package core implements the rules engine of the blockfall game:
// board state, piece shapes and rotation with wall kicks, spin bonus
// detection, scoring, the bag sequencer, the per-tick session controller
// and replay recording/playback. This package is UI-agnostic and
// deterministic: no I/O, no wall clock inside the simulation.
package core

// Kind identifies one of the seven piece shapes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

// String returns the conventional one-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// ColorTag returns the color name associated with the kind. The engine
// treats colors as opaque tags; the platform maps them to terminal colors.
func (k Kind) ColorTag() string {
	switch k {
	case KindI:
		return "cyan"
	case KindO:
		return "yellow"
	case KindT:
		return "magenta"
	case KindS:
		return "green"
	case KindZ:
		return "red"
	case KindJ:
		return "blue"
	case KindL:
		return "orange"
	default:
		return ""
	}
}

// Rotation is one of the four rotation states, 0 = spawn orientation,
// incremented by clockwise rotation.
type Rotation int

// CW returns the state after one clockwise rotation.
func (r Rotation) CW() Rotation {
	return (r + 1) % 4
}

// CCW returns the state after one counter-clockwise rotation.
func (r Rotation) CCW() Rotation {
	return (r + 3) % 4
}

// Coord is a grid coordinate. X grows rightward, Y grows downward.
type Coord struct {
	X, Y int
}

// shapeSource defines each kind's four rotation states as 4x4 masks.
// Rows are top to bottom; 'X' marks an occupied cell. Every mask has
// exactly four occupied cells. The O kind's four states are identical,
// so rotating it is a pure state change.
var shapeSource = [KindCount][4][4]string{
	KindI: {
		{"....", "XXXX", "....", "...."},
		{"..X.", "..X.", "..X.", "..X."},
		{"....", "....", "XXXX", "...."},
		{".X..", ".X..", ".X..", ".X.."},
	},
	KindO: {
		{".XX.", ".XX.", "....", "...."},
		{".XX.", ".XX.", "....", "...."},
		{".XX.", ".XX.", "....", "...."},
		{".XX.", ".XX.", "....", "...."},
	},
	KindT: {
		{".X..", "XXX.", "....", "...."},
		{".X..", ".XX.", ".X..", "...."},
		{"....", "XXX.", ".X..", "...."},
		{".X..", "XX..", ".X..", "...."},
	},
	KindS: {
		{".XX.", "XX..", "....", "...."},
		{".X..", ".XX.", "..X.", "...."},
		{"....", ".XX.", "XX..", "...."},
		{"X...", "XX..", ".X..", "...."},
	},
	KindZ: {
		{"XX..", ".XX.", "....", "...."},
		{"..X.", ".XX.", ".X..", "...."},
		{"....", "XX..", ".XX.", "...."},
		{".X..", "XX..", "X...", "...."},
	},
	KindJ: {
		{"X...", "XXX.", "....", "...."},
		{".XX.", ".X..", ".X..", "...."},
		{"....", "XXX.", "..X.", "...."},
		{".X..", ".X..", "XX..", "...."},
	},
	KindL: {
		{"..X.", "XXX.", "....", "...."},
		{".X..", ".X..", ".XX.", "...."},
		{"....", "XXX.", "X...", "...."},
		{"XX..", ".X..", ".X..", "...."},
	},
}

// shapes holds the parsed cell offsets, indexed by kind and rotation.
// Loaded once at package init and shared by every piece instance.
var shapes [KindCount][4][]Coord

func init() {
	for k := range shapeSource {
		for r := range shapeSource[k] {
			cells := make([]Coord, 0, 4)
			for y, row := range shapeSource[k][r] {
				for x, ch := range row {
					if ch == 'X' {
						cells = append(cells, Coord{X: x, Y: y})
					}
				}
			}
			shapes[k][r] = cells
		}
	}
}

// ShapeCells returns the occupied offsets of a kind's shape within its
// 4x4 bounding box for the given rotation state. The returned slice is
// shared and must not be modified.
func ShapeCells(k Kind, r Rotation) []Coord {
	return shapes[k][r&3]
}

// Piece is a live piece instance: a kind plus the top-left position of
// its 4x4 bounding box and a rotation state. It has no collision
// awareness; the grid decides what placements are legal.
type Piece struct {
	Kind Kind
	X, Y int
	Rot  Rotation
}

// NewPiece creates a piece of the given kind at the given box origin,
// in spawn orientation.
func NewPiece(k Kind, x, y int) *Piece {
	return &Piece{Kind: k, X: x, Y: y}
}

// Cells returns the absolute grid coordinates occupied by the piece.
func (p *Piece) Cells() []Coord {
	offsets := ShapeCells(p.Kind, p.Rot)
	cells := make([]Coord, len(offsets))
	for i, off := range offsets {
		cells[i] = Coord{X: p.X + off.X, Y: p.Y + off.Y}
	}
	return cells
}

// Move shifts the piece by the given delta.
func (p *Piece) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// SetPosition moves the piece's bounding box origin to (x, y).
func (p *Piece) SetPosition(x, y int) {
	p.X = x
	p.Y = y
}

// RotateTo sets the rotation state directly.
func (p *Piece) RotateTo(r Rotation) {
	p.Rot = r & 3
}

// Clone returns an independent copy, used for speculative placement
// checks that must not disturb the live piece.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}
