package export

import (
	"bytes"
	"io"

	"duandigest/lib/scrapers/jandan"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

var converter = md.NewConverter("", true, nil)

// RenderMarkdown renders the html export and converts its body to markdown.
func RenderMarkdown(w io.Writer, title string, entries []jandan.Entry) error {
	var page bytes.Buffer
	err := RenderHTML(&page, title, entries)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(&page)
	if err != nil {
		return err
	}
	rendered := converter.Convert(doc.Find("body"))
	_, err = io.WriteString(w, rendered+"\n")
	return err
}
