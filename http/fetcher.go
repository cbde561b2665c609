// Package http provides HTTP implementations of ceu.Fetcher,
// ceu.RobotsPolicy, and ceu.SitemapService for static provider sites.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/tasanda/ceu"
)

// Fetch defaults.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (compatible; CEUCrawler/2.0; Educational Research)"

	// maxBodyBytes caps the size of a fetched page.
	maxBodyBytes = 10 << 20
)

var _ ceu.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// JavaScript is not executed.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url.
// Returns ENOTFOUND for 404 and 410, EINVALID for other client errors and
// non-HTML content, and EINTERNAL for server errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*ceu.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ceu.Errorf(ceu.EINVALID, "bad request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, url); err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return nil, ceu.Errorf(ceu.EINVALID, "unsupported content type %q for %s", contentType, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	return &ceu.FetchResult{
		URL:         resp.Request.URL.String(),
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}, nil
}

func checkStatus(code int, url string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return ceu.Errorf(ceu.ENOTFOUND, "HTTP %d for %s", code, url)
	case code >= 400 && code < 500:
		return ceu.Errorf(ceu.EINVALID, "HTTP %d for %s", code, url)
	default:
		return ceu.Errorf(ceu.EINTERNAL, "HTTP %d for %s", code, url)
	}
}

// isHTML reports whether a Content-Type header names an HTML document.
// A missing header is accepted.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
