package mock

import (
	"context"

	"github.com/tasanda/ceu"
)

var _ ceu.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of ceu.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*ceu.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*ceu.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ ceu.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of ceu.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) bool
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) bool {
	return p.AllowedFn(ctx, url)
}

var _ ceu.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of ceu.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ ceu.HTMLArchive = (*HTMLArchive)(nil)

// HTMLArchive is a mock implementation of ceu.HTMLArchive.
type HTMLArchive struct {
	SaveFn   func(provider, url, html string) (string, error)
	LoadFn   func(provider, url string) (string, error)
	ExistsFn func(provider, url string) bool
}

func (a *HTMLArchive) Save(provider, url, html string) (string, error) {
	return a.SaveFn(provider, url, html)
}

func (a *HTMLArchive) Load(provider, url string) (string, error) {
	return a.LoadFn(provider, url)
}

func (a *HTMLArchive) Exists(provider, url string) bool {
	return a.ExistsFn(provider, url)
}
