package export

import (
	"bufio"
	"io"
	"strings"

	"duandigest/lib/scrapers/jandan"
)

const textHeader = "id author text like unlike"

// RenderText writes a header line followed by one space separated row per entry.
func RenderText(w io.Writer, entries []jandan.Entry) error {
	buf := bufio.NewWriter(w)
	buf.WriteString(textHeader)
	buf.WriteByte('\n')
	for _, entry := range entries {
		buf.WriteString(TextRow(entry))
		buf.WriteByte('\n')
	}
	return buf.Flush()
}

// TextRow is the row of a single entry in the text export.
func TextRow(entry jandan.Entry) string {
	return strings.Join(entry.Fields(), " ")
}
