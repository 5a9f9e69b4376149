package export

import (
	"fmt"
	"strings"
)

// Format is the kind of export attached to a digest.
type Format int

const (
	FormatText Format = iota
	FormatHTML
	FormatMarkdown
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatHTML, FormatMarkdown}

// ParseFormat maps a format name to a Format, unknown names fall back to
// FormatText.
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html", "htm":
		return FormatHTML
	case "md", "markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "md"
	default:
		return "txt"
	}
}

// Extension is the file extension of the format, without a leading dot.
func (f Format) Extension() string {
	return f.String()
}

// Filename returns the export filename for a base name, "duan" -> "duan.html".
func (f Format) Filename(basename string) string {
	return fmt.Sprintf("%s.%s", basename, f.Extension())
}

// RenderError wraps any failure to render or write an export.
type RenderError struct {
	Format Format
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s export: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
