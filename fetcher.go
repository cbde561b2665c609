package ceu

import "context"

// FetchResult is a fetched page.
type FetchResult struct {
	// URL is the final URL after redirects.
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
}

// Fetcher retrieves HTML from URLs. JavaScript is not executed.
type Fetcher interface {
	// Fetch returns the page body. Non-2xx responses and non-HTML content
	// types are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// RobotsPolicy decides whether a crawler may fetch a URL.
type RobotsPolicy interface {
	Allowed(ctx context.Context, url string) bool
}

// SitemapService discovers page URLs from a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns every URL listed in the sitemaps of baseURL's host.
	// Returns an empty slice when the site has no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// HTMLArchive keeps a copy of crawled HTML outside the database.
type HTMLArchive interface {
	Save(provider, url, html string) (path string, err error)
	Load(provider, url string) (string, error)

	// Exists reports whether a page is archived.
	Exists(provider, url string) bool
}
