package jandan

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const testBase = "http://jandan.test/duan/"

type fakeFetcher struct {
	pages     map[string]string
	errs      map[string]error
	requested []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: map[string]string{},
		errs:  map[string]error{},
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	f.requested = append(f.requested, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.pages[url]
	if !ok {
		return nil, &FetchError{URL: url, StatusCode: 404}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

type testEntry struct {
	id      string
	author  string
	content []string
	like    string
	unlike  string
}

func (e testEntry) html() string {
	var paragraphs []string
	for _, line := range e.content {
		paragraphs = append(paragraphs, fmt.Sprintf("<p>%s</p>", line))
	}
	return fmt.Sprintf(`
<li id="comment-%[1]s">
	<div><div class="row">
		<div class="author"><strong title="防伪码：f00">%[2]s</strong><br><small><a href="#footer">@10 hours ago</a></small></div>
		<div class="text"><span class="righttext"><a href="/t/%[1]s">%[1]s</a></span>%[3]s</div>
		<div class="jandan-vote">
			<span class="tucao-report"><a href="javascript:;">[举报]</a></span>
			<span class="comment-like like">OO</span> [<span>%[4]s</span>]
			<span class="comment-unlike unlike">XX</span> [<span>%[5]s</span>]
			<a href="javascript:;" class="tucao-btn">吐槽 [0]</a>
		</div>
	</div></div>
</li>`, e.id, e.author, strings.Join(paragraphs, ""), e.like, e.unlike)
}

func (e testEntry) entry() Entry {
	return Entry{
		ID:          e.id,
		Author:      e.author,
		Text:        strings.Join(e.content, ""),
		LikeCount:   e.like,
		UnlikeCount: e.unlike,
	}
}

func pageHTML(current int, items ...string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>段子</title><script>var x = "[1]";</script></head>
<body>
<div id="comments">
	<div class="cp-pagenavi"><span class="current-comment-page">[%[1]d]</span></div>
	<ol class="commentlist">%[2]s</ol>
	<div class="cp-pagenavi"><span class="current-comment-page">[%[1]d]</span></div>
</div>
</body></html>`, current, strings.Join(items, "\n"))
}
