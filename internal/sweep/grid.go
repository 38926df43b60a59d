package sweep

// Valid reports whether cell (r, e) is simulated.
// The endgame reach distance may never be below the normal one.
func Valid(r, e int) bool {
	return e >= r
}

// Row describes one normal reach distance of the grid.
type Row struct {
	R int

	// Leading is the number of invalid columns before the first valid one.
	Leading int

	// Valid lists the endgame reach distances simulated for this row,
	// in increasing order.
	Valid []int
}

// Width is the number of columns the row occupies.
func (r Row) Width() int {
	return r.Leading + len(r.Valid)
}

// Enumerate lists the rows r = 0..normalMax of a grid whose columns are
// e = 0..endgameMax.
//
// Rows with r > endgameMax have no valid cells; their Leading covers the
// full endgameMax+1 columns.
func Enumerate(normalMax, endgameMax int) []Row {
	columns := endgameMax + 1
	rows := make([]Row, 0, normalMax+1)
	for r := 0; r <= normalMax; r++ {
		row := Row{R: r, Leading: min(r, columns)}
		for e := 0; e <= endgameMax; e++ {
			if Valid(r, e) {
				row.Valid = append(row.Valid, e)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
