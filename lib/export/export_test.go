package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"duandigest/lib/scrapers/jandan"

	"github.com/stretchr/testify/require"
)

var testEntries = []jandan.Entry{
	{ID: "3936569", Author: "Alice", Text: "Helloworld", LikeCount: "12", UnlikeCount: "3"},
	{ID: "3936570", Author: "Bob", Text: "<b>not bold</b> & more", LikeCount: "0", UnlikeCount: "1"},
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		name     string
		expected Format
	}{
		{name: "txt", expected: FormatText},
		{name: "html", expected: FormatHTML},
		{name: " HTML ", expected: FormatHTML},
		{name: "md", expected: FormatMarkdown},
		{name: "markdown", expected: FormatMarkdown},
		{name: "pdf", expected: FormatText},
		{name: "", expected: FormatText},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ParseFormat(test.name), test.name)
	}

	for _, format := range Formats {
		require.Equal(t, format, ParseFormat(format.String()))
	}
}

func TestFormatFilename(t *testing.T) {
	require.Equal(t, "new_10.txt", FormatText.Filename("new_10"))
	require.Equal(t, "new_10.html", FormatHTML.Filename("new_10"))
	require.Equal(t, "new_10.md", FormatMarkdown.Filename("new_10"))
}

func TestRenderText(t *testing.T) {
	var out bytes.Buffer
	err := RenderText(&out, testEntries)
	require.NoError(t, err)

	require.Equal(t, strings.Join([]string{
		"id author text like unlike",
		"3936569 Alice Helloworld 12 3",
		"3936570 Bob <b>not bold</b> & more 0 1",
		"",
	}, "\n"), out.String())
}

func TestTextRowRoundTrip(t *testing.T) {
	entry := jandan.Entry{ID: "1", Author: "a", Text: "single", LikeCount: "5", UnlikeCount: "6"}
	row := TextRow(entry)
	require.NotContains(t, row, "\n")
	require.Equal(t, entry.Fields(), strings.Split(row, " "))
	require.Equal(t, row, strings.Join(strings.Split(row, " "), " "))
}

func TestRenderHTML(t *testing.T) {
	var out bytes.Buffer
	err := RenderHTML(&out, "", testEntries)
	require.NoError(t, err)

	page := out.String()
	require.Contains(t, page, "<title>"+DefaultTitle+"</title>")
	require.Contains(t, page, `<p class="author">Alice</p>`)
	require.Contains(t, page, `<p class="text">Helloworld</p>`)
	require.Contains(t, page, "OO 12 XX 3")
	require.Contains(t, page, "&lt;b&gt;not bold&lt;/b&gt; &amp; more")
	require.NotContains(t, page, "<b>not bold</b>")
	require.Less(t, strings.Index(page, "Alice"), strings.Index(page, "Bob"))
	require.Equal(t, 2, strings.Count(page, `<div class="duan">`))
}

func TestRenderMarkdown(t *testing.T) {
	var out bytes.Buffer
	err := RenderMarkdown(&out, "Digest", testEntries[:1])
	require.NoError(t, err)

	rendered := out.String()
	require.Contains(t, rendered, "# Digest")
	require.Contains(t, rendered, "Alice")
	require.Contains(t, rendered, "Helloworld")
	require.Contains(t, rendered, "OO 12 XX 3")
	require.NotContains(t, rendered, "<p")
	require.NotContains(t, rendered, "font-family")
}

func TestWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := Writer{Directory: dir, Basename: "new_10"}

	paths, err := w.Write(FormatHTML, testEntries)
	require.NoError(t, err)
	require.Equal(t, map[Format]string{
		FormatText: filepath.Join(dir, "new_10.txt"),
		FormatHTML: filepath.Join(dir, "new_10.html"),
	}, paths)

	text, err := os.ReadFile(paths[FormatText])
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(text), textHeader+"\n"))

	_, err = os.Stat(filepath.Join(dir, "new_10.md"))
	require.True(t, os.IsNotExist(err))
}

func TestWriterWriteTextOnly(t *testing.T) {
	w := Writer{Directory: t.TempDir()}
	paths, err := w.Write(FormatText, nil)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	text, err := os.ReadFile(paths[FormatText])
	require.NoError(t, err)
	require.Equal(t, textHeader+"\n", string(text))
	require.Equal(t, "duan.txt", filepath.Base(paths[FormatText]))
}

func TestWriterRenderError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	w := Writer{Directory: filepath.Join(blocker, "nested")}
	_, err := w.Write(FormatMarkdown, testEntries)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	require.Equal(t, FormatText, renderErr.Format)
}
