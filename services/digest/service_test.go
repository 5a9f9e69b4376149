package digest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"duandigest/lib/export"
	"duandigest/lib/mailer"
	"duandigest/lib/scrapers/jandan"

	"github.com/stretchr/testify/require"
)

type fakeCrawler struct {
	entries []jandan.Entry
	err     error
	calls   []int
}

func (c *fakeCrawler) Crawl(ctx context.Context, pageCount int) (*jandan.Aggregate, error) {
	c.calls = append(c.calls, pageCount)
	if c.err != nil {
		return nil, c.err
	}
	aggregate := jandan.NewAggregate()
	for _, e := range c.entries {
		aggregate.Put(e)
	}
	return aggregate, nil
}

type fakeSender struct {
	err  error
	sent []mailer.Message
}

func (s *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

var testEntries = []jandan.Entry{
	{ID: "123", Author: "Alice", Text: "Helloworld", LikeCount: "12", UnlikeCount: "3"},
	{ID: "124", Author: "Bob", Text: "<b>bold</b>", LikeCount: "0", UnlikeCount: "1"},
}

func fixedNow() time.Time {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	return time.Date(2024, time.March, 9, 8, 0, 5, 0, loc)
}

func newTestService(t *testing.T, crawler Crawler, sender Sender) (Service, export.Writer) {
	t.Helper()
	writer := export.Writer{Directory: t.TempDir()}
	return NewService(crawler, writer, sender, Options{Now: fixedNow}), writer
}

func TestRun(t *testing.T) {
	testCases := []struct {
		format        export.Format
		expectWritten []export.Format
	}{
		{format: export.FormatText, expectWritten: []export.Format{export.FormatText}},
		{format: export.FormatHTML, expectWritten: []export.Format{export.FormatText, export.FormatHTML}},
		{format: export.FormatMarkdown, expectWritten: []export.Format{export.FormatText, export.FormatMarkdown}},
	}

	for _, test := range testCases {
		t.Run(test.format.String(), func(t *testing.T) {
			crawler := &fakeCrawler{entries: testEntries}
			sender := &fakeSender{}
			svc, writer := newTestService(t, crawler, sender)

			result, err := svc.Run(context.Background(), 2, test.format)
			require.NoError(t, err)
			require.Equal(t, []int{2}, crawler.calls)
			require.Len(t, result.RunID, 8)
			require.Equal(t, 2, result.Entries)
			require.Len(t, result.Exports, len(test.expectWritten))

			for _, format := range test.expectWritten {
				require.Equal(t, writer.Path(format), result.Exports[format])
				require.FileExists(t, result.Exports[format])
			}

			require.Len(t, sender.sent, 1)
			msg := sender.sent[0]
			require.Equal(t, "jandan每日新段 - 2024-03-09 08:00:05", msg.Subject)
			require.Equal(t, DefaultTip, msg.Body)
			require.Equal(t, writer.Path(test.format), msg.Attachment)
		})
	}
}

func TestRunTextExportContents(t *testing.T) {
	sender := &fakeSender{}
	svc, writer := newTestService(t, &fakeCrawler{entries: testEntries}, sender)

	_, err := svc.Run(context.Background(), 1, export.FormatHTML)
	require.NoError(t, err)

	contents, err := os.ReadFile(writer.Path(export.FormatText))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(contents), "\n"), "\n")
	require.Equal(t, []string{
		"id author text like unlike",
		"123 Alice Helloworld 12 3",
		"124 Bob <b>bold</b> 0 1",
	}, lines)
}

func TestRunCrawlFailure(t *testing.T) {
	cause := &jandan.PageLocatorError{URL: "http://jandan.test/duan/", Reason: "indicator missing"}
	sender := &fakeSender{}
	svc, writer := newTestService(t, &fakeCrawler{err: cause}, sender)

	result, err := svc.Run(context.Background(), 2, export.FormatText)
	var locatorErr *jandan.PageLocatorError
	require.ErrorAs(t, err, &locatorErr)
	require.NotEmpty(t, result.RunID)
	require.Empty(t, sender.sent)
	require.NoFileExists(t, writer.Path(export.FormatText))
}

func TestRunExportFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	sender := &fakeSender{}
	svc := NewService(
		&fakeCrawler{entries: testEntries},
		export.Writer{Directory: blocker},
		sender,
		Options{Now: fixedNow},
	)

	_, err := svc.Run(context.Background(), 1, export.FormatText)
	var renderErr *export.RenderError
	require.ErrorAs(t, err, &renderErr)
	require.Empty(t, sender.sent)
}

func TestRunMailFailureKeepsExports(t *testing.T) {
	cause := &mailer.SendError{Server: "smtp.example.com:465", Err: errors.New("connection refused")}
	sender := &fakeSender{err: cause}
	svc, writer := newTestService(t, &fakeCrawler{entries: testEntries}, sender)

	result, err := svc.Run(context.Background(), 1, export.FormatHTML)
	var sendErr *mailer.SendError
	require.ErrorAs(t, err, &sendErr)
	require.Equal(t, 2, result.Entries)
	require.FileExists(t, writer.Path(export.FormatText))
	require.FileExists(t, writer.Path(export.FormatHTML))
}

func TestRunEmptyAggregate(t *testing.T) {
	sender := &fakeSender{}
	svc, writer := newTestService(t, &fakeCrawler{}, sender)

	result, err := svc.Run(context.Background(), 1, export.FormatText)
	require.NoError(t, err)
	require.Zero(t, result.Entries)

	contents, err := os.ReadFile(writer.Path(export.FormatText))
	require.NoError(t, err)
	require.Equal(t, "id author text like unlike\n", string(contents))
	require.Len(t, sender.sent, 1)
}

func TestSubject(t *testing.T) {
	svc := NewService(nil, export.Writer{}, nil, Options{SubjectPrefix: "daily"})
	require.Equal(t, "daily - 2024-03-09 08:00:05", svc.Subject(fixedNow()))
}
