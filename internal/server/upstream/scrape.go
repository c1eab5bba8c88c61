package upstream

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dmitrijs2005/vitibrasil/internal/common"
)

// Stage names reported to the Observer.
const (
	StageScrape = "scrape"
	StageFetch  = "fetch"
)

// StatusError reports a non-success HTTP status from the site.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return common.ErrFetch
}

// resolveMarkerLink finds the first element matching selector and resolves
// the href of its nearest enclosing anchor against base.
func resolveMarkerLink(doc *goquery.Document, selector string, base *url.URL) (string, error) {
	marker := doc.Find(selector).First()
	if marker.Length() == 0 {
		return "", fmt.Errorf("%w: no %q on %s", common.ErrMarkerNotFound, selector, base)
	}

	anchor := marker.Closest("a")
	href, ok := anchor.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", fmt.Errorf("%w: %q on %s has no enclosing link", common.ErrMarkerNotFound, selector, base)
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("%w: bad href %q on %s: %v", common.ErrMarkerNotFound, href, base, err)
	}

	return base.ResolveReference(ref).String(), nil
}
