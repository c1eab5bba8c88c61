// Package upstream talks to the statistics site: it scrapes a category page
// for its CSV download link and fetches the linked file.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dmitrijs2005/vitibrasil/internal/common"
	"github.com/go-resty/resty/v2"
)

// DefaultMarkerSelector matches the small label the site renders inside the
// CSV download link of every category tab.
const DefaultMarkerSelector = "span.spn_small"

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Observer receives the duration and outcome of each upstream request.
type Observer interface {
	ObserveUpstream(stage string, started time.Time, err error)
}

type ClientOptions struct {
	// Timeout bounds every request. Zero means 30 seconds.
	Timeout time.Duration

	// MarkerSelector overrides DefaultMarkerSelector.
	MarkerSelector string

	Observer Observer
}

type Client struct {
	http     *resty.Client
	marker   string
	observer Observer
}

func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MarkerSelector == "" {
		opts.MarkerSelector = DefaultMarkerSelector
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &Client{http: client, marker: opts.MarkerSelector, observer: opts.Observer}
}

// get performs a bounded GET and returns the buffered body of a 2xx response.
func (c *Client) get(ctx context.Context, link string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", common.ErrFetch, link, err)
	}
	if !res.IsSuccess() {
		return nil, &StatusError{URL: link, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}

// ResolveDownloadURL fetches the category page at sourceURL, locates the
// download marker and returns the absolute URL of its enclosing link.
func (c *Client) ResolveDownloadURL(ctx context.Context, sourceURL string) (link string, err error) {
	started := time.Now()
	defer func() { c.observe(StageScrape, started, err) }()

	base, err := url.Parse(sourceURL)
	if err != nil {
		return "", fmt.Errorf("%w: parse source url: %v", common.ErrFetch, err)
	}

	body, err := c.get(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: parse html of %s: %v", common.ErrFetch, sourceURL, err)
	}

	return resolveMarkerLink(doc, c.marker, base)
}

// Fetch downloads the file at downloadURL and returns its bytes.
func (c *Client) Fetch(ctx context.Context, downloadURL string) (body []byte, err error) {
	started := time.Now()
	defer func() { c.observe(StageFetch, started, err) }()

	return c.get(ctx, downloadURL)
}

func (c *Client) observe(stage string, started time.Time, err error) {
	if c.observer != nil {
		c.observer.ObserveUpstream(stage, started, err)
	}
}
