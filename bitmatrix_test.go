package qrtext

import (
	"errors"
	"testing"
)

func TestNewBitMatrixFromRows(t *testing.T) {
	t.Parallel()

	rows := [][]bool{
		{true, false, false},
		{false, true, true},
	}
	m, err := NewBitMatrixFromRows(rows)
	if err != nil {
		t.Fatalf("NewBitMatrixFromRows failed: %v", err)
	}
	if m.Width() != 3 || m.Height() != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", m.Width(), m.Height())
	}
	for y, row := range rows {
		for x, want := range row {
			if got := m.At(x, y); got != want {
				t.Errorf("At(%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
	if m.DarkCount() != 3 {
		t.Errorf("Expected 3 dark cells, got %d", m.DarkCount())
	}

	// The matrix must not alias the caller's rows.
	rows[0][0] = false
	if !m.At(0, 0) {
		t.Error("Mutating input rows changed the matrix")
	}
	row := m.Row(1)
	row[0] = true
	if m.At(0, 1) {
		t.Error("Mutating Row result changed the matrix")
	}
}

func TestBitMatrixOutOfBoundsIsLight(t *testing.T) {
	t.Parallel()

	m, err := NewBitMatrixFromRows([][]bool{{true}})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}} {
		if m.At(p[0], p[1]) {
			t.Errorf("At(%d,%d) outside the matrix should be light", p[0], p[1])
		}
	}
	if got := m.Row(5); len(got) != 1 || got[0] {
		t.Errorf("Row outside the matrix should be all light, got %v", got)
	}
}

func TestNewBitMatrixFromRowsEmpty(t *testing.T) {
	t.Parallel()

	for _, rows := range [][][]bool{nil, {}, {{}, {}}} {
		m, err := NewBitMatrixFromRows(rows)
		if err != nil {
			t.Fatalf("Unexpected error for %v: %v", rows, err)
		}
		if m.Width() != 0 || m.DarkCount() != 0 {
			t.Errorf("Expected empty matrix, got %dx%d", m.Width(), m.Height())
		}
	}
}

func TestNewBitMatrixFromRowsRagged(t *testing.T) {
	t.Parallel()

	_, err := NewBitMatrixFromRows([][]bool{{true, false}, {true}})
	var dimErr *InvalidDimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("Expected *InvalidDimensionError, got %v", err)
	}
}

func TestNewBitMatrixNegative(t *testing.T) {
	t.Parallel()

	_, err := newBitMatrix(-1, 4)
	var dimErr *InvalidDimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("Expected *InvalidDimensionError, got %v", err)
	}
	if dimErr.Width != -1 || dimErr.Height != 4 {
		t.Errorf("Expected error to carry -1x4, got %dx%d", dimErr.Width, dimErr.Height)
	}
}

// mustMatrix parses rows of '#' (dark) and '.' (light).
func mustMatrix(t *testing.T, rows ...string) *BitMatrix {
	t.Helper()
	bits := make([][]bool, len(rows))
	for y, row := range rows {
		bits[y] = make([]bool, len(row))
		for x, c := range row {
			bits[y][x] = c == '#'
		}
	}
	m, err := NewBitMatrixFromRows(bits)
	if err != nil {
		t.Fatalf("NewBitMatrixFromRows failed: %v", err)
	}
	return m
}
