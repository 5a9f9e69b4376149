package jandan

import (
	"fmt"
)

// FetchError is returned when a document could not be retrieved from the source.
type FetchError struct {
	URL string
	// StatusCode is 0 when the request never got a response.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PageLocatorError is returned when the current page indicator is missing or
// cannot be parsed, the crawl cannot start without it.
type PageLocatorError struct {
	URL    string
	Reason string
	Err    error
}

func (e *PageLocatorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("locate current page at %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("locate current page at %s: %s", e.URL, e.Reason)
}

func (e *PageLocatorError) Unwrap() error {
	return e.Err
}

// ExtractionError is returned when a raw block does not have the expected
// line/token layout.
type ExtractionError struct {
	Reason string
	Lines  int
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract entry (%d lines): %s", e.Lines, e.Reason)
}
