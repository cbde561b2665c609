package main_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasanda/ceu"
	main "github.com/tasanda/ceu/cmd/ceu"
	"github.com/tasanda/ceu/crawl"
	"github.com/tasanda/ceu/mock"
)

func acmeProvider() *ceu.Provider {
	p := ceu.NewProvider("acme")
	p.DisplayName = "Acme CE"
	p.Active = true
	p.Domains = []ceu.Domain{{BaseURL: "https://www.acme-ce.com", Primary: true}}
	p.Crawl.StartURLs = []string{"https://www.acme-ce.com/courses"}
	p.Crawl.DownloadDelay = 0
	p.Crawl.RobotsTxtObey = false
	p.Crawl.Patterns.Listing = []string{"/courses$"}
	p.Crawl.Patterns.CourseDetail = []string{`/course/\d+`}
	return p
}

func newCrawler(saved *[]*ceu.RawPage) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*ceu.FetchResult, error) {
				if url == "https://www.acme-ce.com/course/404" {
					return nil, ceu.Errorf(ceu.ENOTFOUND, "HTTP 404")
				}
				return &ceu.FetchResult{URL: url, HTML: "<html></html>", StatusCode: 200}, nil
			},
		},
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(_, baseURL string, _ *ceu.Provider) ([]ceu.DiscoveredLink, error) {
				if baseURL != "https://www.acme-ce.com/courses" {
					return nil, nil
				}
				return []ceu.DiscoveredLink{
					{URL: "https://www.acme-ce.com/course/1", Priority: ceu.PriorityCourse},
					{URL: "https://www.acme-ce.com/course/404", Priority: ceu.PriorityCourse},
				}, nil
			},
		},
		RawPages: &mock.RawPageService{
			SaveRawPageFn: func(_ context.Context, page *ceu.RawPage) (bool, error) {
				*saved = append(*saved, page)
				return true, nil
			},
		},
		Concurrency: 1,
		RetryDelays: []time.Duration{0},
	}
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls provider and prints summary", func(t *testing.T) {
		t.Parallel()

		var saved []*ceu.RawPage
		deps, stdout, stderr := newDeps()
		deps.Providers = ceu.NewProviderRegistry(acmeProvider())
		deps.Crawler = newCrawler(&saved)

		err := (&main.CrawlCmd{Provider: "acme", Verbose: true}).Run(deps)

		require.NoError(t, err)
		assert.Len(t, saved, 2)
		out := stdout.String()
		assert.Contains(t, out, "Crawling Acme CE (https://www.acme-ce.com)")
		assert.Contains(t, out, "[course_detail] https://www.acme-ce.com/course/1")
		assert.Contains(t, out, "2 fetched, 2 stored, 0 unchanged, 1 failed, 0 blocked")
		assert.Contains(t, out, "listing:")
		assert.Contains(t, stderr.String(), "fail https://www.acme-ce.com/course/404")
	})

	t.Run("dry run stores nothing", func(t *testing.T) {
		t.Parallel()

		var saved []*ceu.RawPage
		deps, stdout, _ := newDeps()
		deps.Providers = ceu.NewProviderRegistry(acmeProvider())
		deps.Crawler = newCrawler(&saved)

		err := (&main.CrawlCmd{Provider: "acme", DryRun: true}).Run(deps)

		require.NoError(t, err)
		assert.Empty(t, saved)
		assert.Contains(t, stdout.String(), "Dry run")
	})

	t.Run("returns error for unknown provider", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Providers = ceu.NewProviderRegistry(acmeProvider())

		err := (&main.CrawlCmd{Provider: "nope"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, ceu.ENOTFOUND, ceu.ErrorCode(err))
		assert.Contains(t, stderr.String(), "ceu providers")
	})

	t.Run("warns about inactive provider", func(t *testing.T) {
		t.Parallel()

		p := acmeProvider()
		p.Active = false
		var saved []*ceu.RawPage
		deps, _, stderr := newDeps()
		deps.Providers = ceu.NewProviderRegistry(p)
		deps.Crawler = newCrawler(&saved)

		err := (&main.CrawlCmd{Provider: "acme"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "inactive")
	})

	t.Run("prints partial result when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var saved []*ceu.RawPage
		deps, stdout, _ := newDeps()
		deps.Ctx = ctx
		deps.Providers = ceu.NewProviderRegistry(acmeProvider())
		deps.Crawler = newCrawler(&saved)

		err := (&main.CrawlCmd{Provider: "acme"}).Run(deps)

		require.True(t, errors.Is(err, context.Canceled))
		assert.Contains(t, stdout.String(), "fetched")
	})
}
