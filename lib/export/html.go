package export

import (
	_ "embed"
	"html/template"
	"io"

	"duandigest/lib/scrapers/jandan"
)

//go:embed templates/digest.html.tmpl
var digestTemplateSource string

var digestTemplate = template.Must(template.New("digest").Parse(digestTemplateSource))

// DefaultTitle is the heading of the html export.
const DefaultTitle = "jandan 段子"

type htmlPage struct {
	Title   string
	Entries []jandan.Entry
}

// RenderHTML writes every entry into a fixed page shell, values are escaped.
func RenderHTML(w io.Writer, title string, entries []jandan.Entry) error {
	if title == "" {
		title = DefaultTitle
	}
	return digestTemplate.Execute(w, htmlPage{Title: title, Entries: entries})
}
