package jandan

import "fmt"

// DefaultBasePath is the index of the duan section, it also serves as the
// prefix of every page url.
const DefaultBasePath = "http://jandan.net/duan/"

// BuildURL returns the url of a page of the source, the page number is not validated.
func BuildURL(basePath string, page int) string {
	return fmt.Sprintf("%spage-%d#comments", basePath, page)
}
