package qrtext

// BitMatrix is an immutable grid of dark (true) and light (false) cells.
//
// Cells are addressed as (x, y) where x is the column and y the row, with
// (0, 0) in the top-left corner. Storage is row-major.
type BitMatrix struct {
	width  int
	height int
	bits   []bool
}

// newBitMatrix allocates an all-light matrix. It is unexported so that a
// matrix is only ever filled in by the package before being handed out.
func newBitMatrix(width, height int) (*BitMatrix, error) {
	if width < 0 || height < 0 {
		return nil, &InvalidDimensionError{Width: width, Height: height}
	}
	return &BitMatrix{
		width:  width,
		height: height,
		bits:   make([]bool, width*height),
	}, nil
}

// NewBitMatrixFromRows builds a matrix from rows[y][x]. All rows must have
// the same length; a nil or empty slice gives an empty matrix.
func NewBitMatrixFromRows(rows [][]bool) (*BitMatrix, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	for _, row := range rows {
		if len(row) != width {
			return nil, &InvalidDimensionError{Width: len(row), Height: height}
		}
	}
	m, err := newBitMatrix(width, height)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		copy(m.bits[y*width:(y+1)*width], row)
	}
	return m, nil
}

// Width returns the number of columns.
func (m *BitMatrix) Width() int { return m.width }

// Height returns the number of rows.
func (m *BitMatrix) Height() int { return m.height }

// At reports whether the cell at column x, row y is dark. Coordinates
// outside the matrix are light.
func (m *BitMatrix) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Row returns a copy of row y.
func (m *BitMatrix) Row(y int) []bool {
	row := make([]bool, m.width)
	if y >= 0 && y < m.height {
		copy(row, m.bits[y*m.width:(y+1)*m.width])
	}
	return row
}

// DarkCount returns the number of dark cells.
func (m *BitMatrix) DarkCount() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

func (m *BitMatrix) set(x, y int, v bool) {
	m.bits[y*m.width+x] = v
}
