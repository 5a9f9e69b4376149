package jandan

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type CrawlOptions struct {
	// BasePath is both the index url and the prefix of page urls.
	BasePath  string
	PageCount int
	// Strict makes the first malformed entry abort the crawl instead of
	// being skipped.
	Strict bool
}

// Crawl locates the current page and walks PageCount pages backwards from it,
// merging every extracted entry into a fresh Aggregate. Pages are fetched one
// at a time, newest first, entries are merged in document order.
func Crawl(ctx context.Context, fetcher Fetcher, opts CrawlOptions) (*Aggregate, error) {
	ctx, span := tracer.Start(ctx, "Crawl")
	defer span.End()

	if opts.PageCount <= 0 {
		err := fmt.Errorf("page count must be positive, got %d", opts.PageCount)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	current, err := LocateCurrentPage(ctx, fetcher, opts.BasePath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to locate current page")
		return nil, err
	}
	slog.InfoContext(ctx, "located current page", "page", current, "page_count", opts.PageCount)

	aggregate := NewAggregate()
	skipped := 0
	for i := 0; i < opts.PageCount; i++ {
		page := current - i
		if page < 1 {
			slog.WarnContext(ctx, "ran out of pages before page count was reached", "current", current, "page_count", opts.PageCount)
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		blocks, err := FetchEntries(ctx, fetcher, BuildURL(opts.BasePath, page))
		if err != nil {
			span.SetStatus(codes.Error, "failed to fetch page")
			return nil, err
		}

		for idx, block := range blocks {
			entry, err := Extract(block)
			if err != nil {
				if opts.Strict {
					span.RecordError(err)
					span.SetStatus(codes.Error, "malformed entry")
					return nil, fmt.Errorf("page %d, entry %d: %w", page, idx, err)
				}
				skipped++
				entriesSkipped.Add(ctx, 1)
				slog.WarnContext(ctx, "skipping malformed entry", "page", page, "index", idx, "err", err)
				continue
			}

			entriesExtracted.Add(ctx, 1)
			if aggregate.Put(entry) {
				slog.DebugContext(ctx, "entry overwritten by a later page", "id", entry.ID, "page", page)
			}
		}
		slog.DebugContext(ctx, "crawled page", "page", page, "blocks", len(blocks))
	}

	span.SetAttributes(
		attribute.Int("current_page", current),
		attribute.Int("entries", aggregate.Len()),
		attribute.Int("skipped", skipped),
	)
	return aggregate, nil
}

// Crawler binds a Fetcher and crawl settings so a crawl can be started with
// only a page count.
type Crawler struct {
	Fetcher  Fetcher
	BasePath string
	Strict   bool
}

func (c Crawler) Crawl(ctx context.Context, pageCount int) (*Aggregate, error) {
	basePath := c.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}
	return Crawl(ctx, c.Fetcher, CrawlOptions{
		BasePath:  basePath,
		PageCount: pageCount,
		Strict:    c.Strict,
	})
}
