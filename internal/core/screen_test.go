package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 6)

	if s.Width() != 12 || s.Height() != 6 {
		t.Fatalf("NewScreen(12, 6) = %dx%d", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Rune != ' ' || cell.Color != ColorDefault {
				t.Fatalf("cell (%d,%d) = %+v, expected blank default", x, y, cell)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '█', ColorMagenta)

	cell := s.GetCell(3, 4)
	if cell.Rune != '█' {
		t.Errorf("Rune = %q, expected '█'", cell.Rune)
	}
	if cell.Color != ColorMagenta {
		t.Errorf("Color = %d, expected ColorMagenta", cell.Color)
	}

	// Plain Set keeps the default color
	s.Set(0, 0, 'X')
	if c := s.GetCell(0, 0); c.Color != ColorDefault {
		t.Errorf("Set should use ColorDefault, got %d", c.Color)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(5, 5)

	// Writes outside the buffer must be silent no-ops
	s.Set(-1, 0, 'A')
	s.Set(5, 0, 'A')
	s.SetColored(0, -1, 'A', ColorRed)
	s.SetColored(0, 5, 'A', ColorRed)

	if s.Get(-1, 0) != ' ' || s.Get(5, 0) != ' ' {
		t.Error("out-of-bounds Get should return space")
	}
	if c := s.GetCell(0, 99); c.Color != ColorDefault {
		t.Error("out-of-bounds GetCell should return a default cell")
	}
}

func TestScreenDrawTextClipped(t *testing.T) {
	s := NewScreen(5, 2)

	s.DrawTextColored(3, 0, "abcdef", ColorCyan)

	if got := s.Row(0); got != "   ab" {
		t.Errorf("Row(0) = %q, expected %q", got, "   ab")
	}
	if c := s.GetCell(4, 0); c.Color != ColorCyan {
		t.Errorf("clipped text lost its color: %d", c.Color)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(8, 4)
	s.SetColored(2, 2, '#', ColorGreen)

	s.Resize(16, 8)

	if c := s.GetCell(2, 2); c.Rune != '#' || c.Color != ColorGreen {
		t.Errorf("resize dropped content: %+v", c)
	}

	s.Resize(2, 2)
	if c := s.GetCell(2, 2); c.Rune != ' ' {
		t.Errorf("shrink should discard out-of-range content, got %+v", c)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(0, 1, 'c', ColorYellow)

	got := s.String()
	want := "ab \nc  "
	if got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("String() should join rows with single newlines")
	}
}
