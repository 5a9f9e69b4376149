package jandan

import (
	"context"

	"duandigest/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// EntrySelector matches every entry element of a page in document order.
const EntrySelector = "ol.commentlist > li"

// FetchEntries fetches a page and returns the raw block of each entry on it,
// a page without entries yields an empty slice.
func FetchEntries(ctx context.Context, fetcher Fetcher, url string) ([]RawBlock, error) {
	ctx, span := tracer.Start(ctx, "FetchEntries")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	doc, err := fetcher.Fetch(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return nil, err
	}
	pagesFetched.Add(ctx, 1)

	blocks := ParseEntries(doc)
	span.SetAttributes(attribute.Int("blocks", len(blocks)))
	return blocks, nil
}

// ParseEntries returns the raw blocks of a page that has already been fetched.
func ParseEntries(doc *goquery.Document) []RawBlock {
	selection := doc.Find(EntrySelector)
	blocks := make([]RawBlock, 0, selection.Length())
	for _, node := range selection.Nodes {
		blocks = append(blocks, RawBlock(htmlutil.InnerText(node)))
	}
	return blocks
}
