package jandan

import (
	"context"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CurrentPageSelector matches the current page indicator, e.g. "[75]".
// the source renders it twice (above and below the comment list).
const CurrentPageSelector = "span.current-comment-page"

// LocateCurrentPage fetches the index and returns the highest page number the
// source currently reports.
func LocateCurrentPage(ctx context.Context, fetcher Fetcher, indexUrl string) (int, error) {
	ctx, span := tracer.Start(ctx, "LocateCurrentPage")
	defer span.End()

	doc, err := fetcher.Fetch(ctx, indexUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch index")
		return 0, err
	}

	indicator := doc.Find(CurrentPageSelector).First()
	if indicator.Length() == 0 {
		span.SetStatus(codes.Error, "page indicator not found")
		return 0, &PageLocatorError{URL: indexUrl, Reason: "page indicator not found"}
	}

	text := strings.NewReplacer("[", "", "]", "").Replace(indicator.Text())
	page, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "page indicator is not a number")
		return 0, &PageLocatorError{URL: indexUrl, Reason: "page indicator is not a number", Err: err}
	}

	span.SetAttributes(attribute.Int("page", page))
	return page, nil
}
