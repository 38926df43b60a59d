package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// TextRenderer writes the Markdown-style table layout.
type TextRenderer struct{}

// Render writes t to w: heading, header, separator, one line per endgame
// reach distance, and a trailing blank line.
func (TextRenderer) Render(w io.Writer, t Table) error {
	rows := t.Matrix.Transpose()
	columns := rows.Columns()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "## %d %s: %s\n", t.PlayerCount, players(t.PlayerCount), t.Title)

	labels := make([]string, columns)
	for i := range labels {
		labels[i] = fmt.Sprint(i)
	}
	fmt.Fprintf(&buf, "| reach distance (normal) | %s |\n", strings.Join(labels, " | "))
	fmt.Fprintf(&buf, "| reach distance (endgame) %s|\n", strings.Repeat("| ", columns))

	for i, row := range rows {
		fmt.Fprintf(&buf, "| %d | %s |\n", i, strings.Join(row, " | "))
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

func players(n int) string {
	if n > 1 {
		return "players"
	}
	return "player"
}
