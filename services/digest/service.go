package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"duandigest/lib/export"
	"duandigest/lib/mailer"
	"duandigest/lib/scrapers/jandan"
	"duandigest/lib/timezone"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultSubjectPrefix = "jandan每日新段"
	DefaultTip           = "热乎的段子又来啦!详情请见附件呦喂～～"

	subjectTimeLayout = "2006-01-02 15:04:05"
)

type Crawler interface {
	Crawl(ctx context.Context, pageCount int) (*jandan.Aggregate, error)
}

type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type Options struct {
	SubjectPrefix string
	Tip           string
	// defaults to timezone.Now
	Now func() time.Time
}

// Service runs one digest cycle: crawl, export, mail.
type Service struct {
	crawler Crawler
	writer  export.Writer
	sender  Sender
	opts    Options
}

func NewService(crawler Crawler, writer export.Writer, sender Sender, opts Options) Service {
	if opts.SubjectPrefix == "" {
		opts.SubjectPrefix = DefaultSubjectPrefix
	}
	if opts.Tip == "" {
		opts.Tip = DefaultTip
	}
	if opts.Now == nil {
		opts.Now = timezone.Now
	}
	return Service{
		crawler: crawler,
		writer:  writer,
		sender:  sender,
		opts:    opts,
	}
}

// Subject formats the mail subject for a digest sent at `now`.
func (s Service) Subject(now time.Time) string {
	return fmt.Sprintf("%s - %s", s.opts.SubjectPrefix, now.Format(subjectTimeLayout))
}

type Result struct {
	RunID   string
	Entries int
	Subject string
	// Exports maps every written format to its path.
	Exports map[export.Format]string
}

// Run crawls `pageCount` pages, writes the exports and mails the export for
// `format`. Exports are written before mail is attempted so they stay on disk
// when sending fails.
func (s Service) Run(ctx context.Context, pageCount int, format export.Format) (Result, error) {
	ctx, span := tracer.Start(ctx, "digest:Run")
	defer span.End()

	runID, err := random.String(8)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate run id")
		return Result{}, err
	}
	span.SetAttributes(
		attribute.String("run_id", runID),
		attribute.Int("page_count", pageCount),
		attribute.String("format", format.String()),
	)
	logger := slog.With("run_id", runID)

	fail := func(stage string, err error) (Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("%s failed", stage))
		runsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", stage+"_failed")))
		logger.ErrorContext(ctx, "digest run failed", "stage", stage, "err", err)
		return Result{RunID: runID}, err
	}

	logger.InfoContext(ctx, "starting digest run", "page_count", pageCount, "format", format.String())

	aggregate, err := s.crawler.Crawl(ctx, pageCount)
	if err != nil {
		return fail("crawl", err)
	}
	entries := aggregate.Entries()

	paths, err := s.writer.Write(format, entries)
	if err != nil {
		return fail("export", err)
	}

	result := Result{
		RunID:   runID,
		Entries: len(entries),
		Subject: s.Subject(s.opts.Now()),
		Exports: paths,
	}
	err = s.sender.Send(ctx, mailer.Message{
		Subject:    result.Subject,
		Body:       s.opts.Tip,
		Attachment: paths[format],
	})
	if err != nil {
		failed, err := fail("mail", err)
		failed.Entries = result.Entries
		failed.Exports = result.Exports
		return failed, err
	}

	runsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	logger.InfoContext(ctx, "digest sent", "entries", result.Entries, "subject", result.Subject, "attachment", paths[format])
	return result, nil
}
