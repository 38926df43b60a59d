package sweep

import (
	"strconv"
	"strings"
)

// Cell placeholders.
const (
	Blank         = " "
	FailureMarker = "ERR"
)

// Matrix is a rectangular grid of rendered cell values.
// Before transposition it is indexed [r][e].
type Matrix [][]string

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Columns returns the width of the first row, or 0 for an empty matrix.
func (m Matrix) Columns() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Transpose returns a new matrix with rows and columns swapped,
// so that Transpose()[e][r] == m[r][e].
func (m Matrix) Transpose() Matrix {
	rows, cols := m.Rows(), m.Columns()
	t := make(Matrix, cols)
	for c := range t {
		t[c] = make([]string, rows)
		for r := 0; r < rows; r++ {
			t[c][r] = m[r][c]
		}
	}
	return t
}

// FormatValue renders a statistic in its default textual form: the shortest
// decimal that round-trips, keeping ".0" on integral values.
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}
