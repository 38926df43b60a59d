package report

import (
	"io"
)

// JSONRenderer writes each table as one line of canonical JSON:
//
//	{"columns":4,"outcome":"excellent","player_count":1,"rows":[["42.5"," "," "," "],...],"scenario":"solo","title":"..."}
//
// Rows are transposed exactly as in the text layout.
type JSONRenderer struct{}

// Render writes t to w.
func (JSONRenderer) Render(w io.Writer, t Table) error {
	rows := t.Matrix.Transpose()

	data, err := marshalCanonical(map[string]any{
		"scenario":     t.Scenario,
		"player_count": t.PlayerCount,
		"outcome":      t.Outcome,
		"title":        t.Title,
		"columns":      rows.Columns(),
		"rows":         [][]string(rows),
	})
	if err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))
	return err
}
