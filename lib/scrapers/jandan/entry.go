package jandan

import (
	"fmt"
	"strings"
)

// Entry is a single duan parsed from a page.
type Entry struct {
	ID     string
	Author string
	// Text is every content line of the entry joined without a separator.
	Text string
	// like/unlike counts are kept as they are rendered by the source
	LikeCount   string
	UnlikeCount string
}

// Fields returns the entry in export column order: id, author, text, like, unlike.
func (e Entry) Fields() []string {
	return []string{e.ID, e.Author, e.Text, e.LikeCount, e.UnlikeCount}
}

// RawBlock is the line-oriented text of a single entry element.
//
//	line 0       author
//	line 1       site metadata (ignored)
//	line 2       id
//	lines 3..n-1 content
//	line n       votes, "[report] OO [like] XX [unlike] ..."
type RawBlock string

const (
	minBlockLines = 5
	minVoteTokens = 5

	likeTokenIdx   = 2
	unlikeTokenIdx = 4
)

func stripBrackets(s string) string {
	return strings.NewReplacer("[", "", "]", "").Replace(s)
}

// Extract parses a raw block into an Entry, it fails with an *ExtractionError
// when the block does not follow the layout documented on RawBlock.
func Extract(raw RawBlock) (Entry, error) {
	lines := strings.Split(string(raw), "\n")
	if len(lines) < minBlockLines {
		return Entry{}, &ExtractionError{
			Reason: fmt.Sprintf("expected at least %d lines", minBlockLines),
			Lines:  len(lines),
		}
	}

	votes := strings.Split(lines[len(lines)-1], " ")
	if len(votes) < minVoteTokens {
		return Entry{}, &ExtractionError{
			Reason: fmt.Sprintf("vote line has %d tokens, expected at least %d", len(votes), minVoteTokens),
			Lines:  len(lines),
		}
	}

	entry := Entry{
		Author:      lines[0],
		ID:          lines[2],
		Text:        strings.Join(lines[3:len(lines)-1], ""),
		LikeCount:   stripBrackets(votes[likeTokenIdx]),
		UnlikeCount: stripBrackets(votes[unlikeTokenIdx]),
	}

	switch {
	case entry.Author == "":
		return Entry{}, &ExtractionError{Reason: "empty author", Lines: len(lines)}
	case entry.ID == "":
		return Entry{}, &ExtractionError{Reason: "empty id", Lines: len(lines)}
	case entry.Text == "":
		return Entry{}, &ExtractionError{Reason: "empty text", Lines: len(lines)}
	}

	return entry, nil
}
