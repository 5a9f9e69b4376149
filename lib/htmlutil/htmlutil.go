package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Dd:         true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Fieldset:   true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Main:       true,
	atom.Nav:        true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Table:      true,
	atom.Tr:         true,
	atom.Ul:         true,
}

var innerWhitespace = regexp.MustCompile(`  +`)

// NormalizeLine turns every unicode space into an ASCII space, drops
// non-printable runes, collapses runs of spaces and trims the result.
func NormalizeLine(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

type lineWriter struct {
	lines   []string
	current strings.Builder
}

func (w *lineWriter) flush() {
	line := NormalizeLine(w.current.String())
	w.current.Reset()
	if line != "" {
		w.lines = append(w.lines, line)
	}
}

func (w *lineWriter) walk(node *html.Node) {
	switch node.Type {
	case html.TextNode:
		w.current.WriteString(node.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		switch node.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		case atom.Br:
			w.flush()
			return
		}
	}

	block := node.Type == html.ElementNode && blockElements[node.DataAtom]
	if block {
		w.flush()
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		w.walk(child)
	}
	if block {
		w.flush()
	}
}

// InnerText renders `node` the way a browser lays its text out in lines:
// block elements and <br> break lines, inline elements do not. Every line is
// normalized with NormalizeLine and blank lines are dropped.
func InnerText(node *html.Node) string {
	if node == nil {
		return ""
	}
	w := &lineWriter{}
	w.walk(node)
	w.flush()
	return strings.Join(w.lines, "\n")
}
