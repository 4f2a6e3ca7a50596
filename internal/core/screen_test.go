package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenSetCellColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetCell(1, 2, '█', ColorGreen)

	cell := s.GetCell(1, 2)
	if cell.Rune != '█' || cell.Color != ColorGreen {
		t.Errorf("GetCell = %+v, expected green block", cell)
	}

	s.Clear()
	if s.GetCell(1, 2).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenFill(t *testing.T) {
	s := NewScreen(5, 5)
	s.Fill('#', ColorCyan)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '#' || c.Color != ColorCyan {
				t.Errorf("After Fill, expected cyan '#' at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 3, 3, 2), '=', ColorOrange)

	if s.Get(2, 3) != '=' || s.Get(4, 4) != '=' {
		t.Error("DrawRect should fill its area")
	}
	if s.Get(5, 3) != ' ' || s.Get(2, 5) != ' ' {
		t.Error("DrawRect should not draw outside its area")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorDefault)

	if s.Row(0) != "    abc    " {
		t.Errorf("centered row = %q", s.Row(0))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	row0 := s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	row0 = s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if len(row) != 10 {
		t.Errorf("Row length should be 10, got %d", len(row))
	}

	outOfBounds := s.Row(-1)
	if outOfBounds != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", outOfBounds)
	}
}
