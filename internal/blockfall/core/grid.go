package core

// Board dimensions. Fixed by the competitive ruleset; deliberately not
// configurable.
const (
	Width         = 10 // Columns in the playfield
	VisibleHeight = 20 // Rows shown to the player
	BufferRows    = 4  // Hidden rows above the visible area
	TotalRows     = VisibleHeight + BufferRows
)

// Cell is a single playfield cell. Color holds the color tag of the
// piece that filled it, empty for vacant cells.
type Cell struct {
	Filled bool
	Color  string
}

// Grid is the playfield: Width columns by TotalRows rows, stored in
// row-major order. Row 0 is the topmost hidden row; the visible area
// starts at row BufferRows. The grid owns all cells; pieces only become
// part of the grid through Lock.
type Grid struct {
	cells []Cell
}

// NewGrid creates an empty playfield.
func NewGrid() *Grid {
	return &Grid{cells: make([]Cell, Width*TotalRows)}
}

func (g *Grid) index(x, y int) int {
	return y*Width + x
}

// InBounds reports whether (x, y) addresses a cell, hidden rows included.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < TotalRows
}

// CellAt returns the cell at (x, y). The second result is false when the
// coordinate is out of range; callers must check it before trusting the
// cell value.
func (g *Grid) CellAt(x, y int) (Cell, bool) {
	if !g.InBounds(x, y) {
		return Cell{}, false
	}
	return g.cells[g.index(x, y)], true
}

// SetCell writes a cell at (x, y). Returns false without mutating
// anything when the coordinate is out of range.
func (g *Grid) SetCell(x, y int, filled bool, color string) bool {
	if !g.InBounds(x, y) {
		return false
	}
	if !filled {
		color = ""
	}
	g.cells[g.index(x, y)] = Cell{Filled: filled, Color: color}
	return true
}

// CanPlace reports whether every cell of the piece is in bounds and
// vacant. Used both for live collision checks and for speculative
// placements (rotation trials, drop probing, grounded detection).
func (g *Grid) CanPlace(p *Piece) bool {
	for _, c := range p.Cells() {
		if !g.InBounds(c.X, c.Y) {
			return false
		}
		if g.cells[g.index(c.X, c.Y)].Filled {
			return false
		}
	}
	return true
}

// Lock marks the piece's cells as filled with its color. Fails without
// mutation if the piece does not fit.
func (g *Grid) Lock(p *Piece) bool {
	if !g.CanPlace(p) {
		return false
	}
	color := p.Kind.ColorTag()
	for _, c := range p.Cells() {
		g.cells[g.index(c.X, c.Y)] = Cell{Filled: true, Color: color}
	}
	return true
}

// IsRowFull reports whether every cell in row y is filled.
// Out-of-range rows are never full.
func (g *Grid) IsRowFull(y int) bool {
	if y < 0 || y >= TotalRows {
		return false
	}
	for x := 0; x < Width; x++ {
		if !g.cells[g.index(x, y)].Filled {
			return false
		}
	}
	return true
}

// ClearRow removes row y and inserts a fresh empty row at the top.
// Rows above y shift down by one; rows below are untouched.
func (g *Grid) ClearRow(y int) {
	if y < 0 || y >= TotalRows {
		return
	}
	copy(g.cells[Width:(y+1)*Width], g.cells[:y*Width])
	for x := 0; x < Width; x++ {
		g.cells[x] = Cell{}
	}
}

// ClearFullRows removes every full row and returns how many were
// cleared. Scans bottom to top, re-examining an index after a clear
// since new content shifts into it. At most four rows can clear at once.
func (g *Grid) ClearFullRows() int {
	cleared := 0
	for y := TotalRows - 1; y >= 0; {
		if g.IsRowFull(y) {
			g.ClearRow(y)
			cleared++
			continue // same index now holds the row from above
		}
		y--
	}
	return cleared
}

// IsOverflowing reports whether any cell in the hidden buffer rows is
// filled. Checked after every lock: a filled buffer cell ends the session.
func (g *Grid) IsOverflowing() bool {
	for i := 0; i < Width*BufferRows; i++ {
		if g.cells[i].Filled {
			return true
		}
	}
	return false
}

// DropTarget returns the box origin the piece would occupy after
// falling as far as it can from its current position. The x coordinate
// is preserved. Does not mutate the piece.
func (g *Grid) DropTarget(p *Piece) Coord {
	probe := p.Clone()
	for {
		probe.Move(0, 1)
		if !g.CanPlace(probe) {
			probe.Move(0, -1)
			break
		}
	}
	return Coord{X: probe.X, Y: probe.Y}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{cells: cells}
}

// Equal reports whether two grids hold identical content.
func (g *Grid) Equal(other *Grid) bool {
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a copy of the playfield as rows of cells. When
// includeHidden is false only the visible rows are returned, topmost
// visible row first.
func (g *Grid) Rows(includeHidden bool) [][]Cell {
	start := BufferRows
	if includeHidden {
		start = 0
	}
	rows := make([][]Cell, 0, TotalRows-start)
	for y := start; y < TotalRows; y++ {
		row := make([]Cell, Width)
		copy(row, g.cells[y*Width:(y+1)*Width])
		rows = append(rows, row)
	}
	return rows
}
