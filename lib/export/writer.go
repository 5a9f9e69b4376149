package export

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"duandigest/lib/scrapers/jandan"
)

// DefaultBasename is the file name, without extension, of every export.
const DefaultBasename = "duan"

// Writer writes exports into a directory.
type Writer struct {
	Directory string
	Basename  string
	// Title is the heading of the html and markdown exports.
	Title string
}

func (w Writer) basename() string {
	if w.Basename == "" {
		return DefaultBasename
	}
	return w.Basename
}

// Path returns where the export for `format` is written.
func (w Writer) Path(format Format) string {
	return filepath.Join(w.Directory, format.Filename(w.basename()))
}

func (w Writer) render(out io.Writer, format Format, entries []jandan.Entry) error {
	switch format {
	case FormatHTML:
		return RenderHTML(out, w.Title, entries)
	case FormatMarkdown:
		return RenderMarkdown(out, w.Title, entries)
	default:
		return RenderText(out, entries)
	}
}

// WriteFile renders the entries in one format, replacing any previous export.
func (w Writer) WriteFile(format Format, entries []jandan.Entry) (string, error) {
	path := w.Path(format)
	if w.Directory != "" {
		err := os.MkdirAll(w.Directory, 0777)
		if err != nil {
			return "", &RenderError{Format: format, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &RenderError{Format: format, Err: err}
	}
	buf := bufio.NewWriter(f)
	err = w.render(buf, format, entries)
	if err == nil {
		err = buf.Flush()
	}
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return "", &RenderError{Format: format, Err: fmt.Errorf("%s: %w", path, err)}
	}

	slog.Debug("wrote export", "format", format.String(), "path", path, "entries", len(entries))
	return path, nil
}

// Write always writes the text export, and the export for `format` as well
// when it is not text. It returns the path of every written export.
func (w Writer) Write(format Format, entries []jandan.Entry) (map[Format]string, error) {
	paths := map[Format]string{}

	path, err := w.WriteFile(FormatText, entries)
	if err != nil {
		return nil, err
	}
	paths[FormatText] = path

	if format != FormatText {
		path, err = w.WriteFile(format, entries)
		if err != nil {
			return nil, err
		}
		paths[format] = path
	}

	return paths, nil
}
