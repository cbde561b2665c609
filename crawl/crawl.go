// Package crawl collects provider pages for later extraction.
// It coordinates the URL frontier, politeness delays, robots.txt checks,
// fetching, page classification, and raw page storage.
package crawl

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/tasanda/ceu"
)

// DefaultMaxPages caps a crawl when Options.MaxPages is zero.
const DefaultMaxPages = 1000

// Crawler crawls a provider's site and stores each fetched page as a
// pending raw page.
type Crawler struct {
	Fetcher  ceu.Fetcher
	Links    ceu.LinkExtractor
	RawPages ceu.RawPageService

	// Optional collaborators. Nil disables the feature.
	Robots   ceu.RobotsPolicy
	Sitemaps ceu.SitemapService
	Archive  ceu.HTMLArchive

	// RateLimiter defaults to a DomainLimiter built from the provider's
	// download delay.
	RateLimiter ceu.DomainLimiter

	// NewFrontier returns an empty queue for one crawl. Defaults to a
	// Bloom-filtered priority Frontier.
	NewFrontier func() ceu.URLFrontier

	// Concurrency defaults to the provider's concurrent_requests.
	Concurrency int
	RetryDelays []time.Duration
}

// Options controls a single crawl.
type Options struct {
	// MaxPages limits the number of URLs fetched. Zero means DefaultMaxPages.
	MaxPages int
	// DryRun fetches and classifies pages without storing them.
	DryRun bool
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Fetched   int
	Stored    int
	Unchanged int
	Failed    int
	Blocked   int
	Bytes     int
	ByType    map[ceu.PageType]int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	URL       string
	PageType  ceu.PageType
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressBlocked
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	link       ceu.DiscoveredLink
	fetch      *ceu.FetchResult
	pageType   ceu.PageType
	discovered []ceu.DiscoveredLink
	blocked    bool
	err        error
}

// Crawl crawls provider p starting from its start URLs.
// Returns EINVALID if the provider configuration is unusable.
func (c *Crawler) Crawl(ctx context.Context, p *ceu.Provider, opts Options, progress ProgressFunc) (*Result, error) {
	if problems := p.Validate(); len(problems) > 0 {
		return nil, ceu.Errorf(ceu.EINVALID, "provider %s: %s", p.Name, strings.Join(problems, "; "))
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	limiter := c.RateLimiter
	if limiter == nil {
		limiter = NewDomainLimiter(p.Crawl.Delay(), p.Crawl.RandomizeDelay)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = p.Crawl.ConcurrentRequests
	}

	w := &providerWalk{
		crawler:    c,
		provider:   p,
		classifier: NewClassifier(p),
		limiter:    limiter,
		opts:       opts,
		progress:   progress,
		result:     &Result{ByType: make(map[ceu.PageType]int)},
	}

	frontier := c.newFrontier()
	for _, u := range p.Crawl.StartURLs {
		frontier.Push(ceu.DiscoveredLink{URL: u, Priority: ceu.PriorityStart})
	}
	w.seedSitemap(ctx, frontier)

	w.emit(ProgressEvent{Type: ProgressStarted})
	walkFrontier(ctx, frontier, concurrency, maxPages, w.processURL, w.handleResult)
	w.emit(ProgressEvent{Type: ProgressFinished, Completed: w.completed})

	if err := ctx.Err(); err != nil {
		return w.result, err
	}
	return w.result, nil
}

// providerWalk is the state of one provider crawl. Fields other than
// result and completed are read-only once the walk starts; result and
// completed are only touched on the coordinator goroutine.
type providerWalk struct {
	crawler    *Crawler
	provider   *ceu.Provider
	classifier *Classifier
	limiter    ceu.DomainLimiter
	opts       Options
	progress   ProgressFunc

	result    *Result
	completed int
}

func (w *providerWalk) emit(event ProgressEvent) {
	if w.progress != nil {
		w.progress(event)
	}
}

func (c *Crawler) newFrontier() ceu.URLFrontier {
	if c.NewFrontier != nil {
		return c.NewFrontier()
	}
	return NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
}

// seedSitemap pushes the provider's sitemap URLs when enabled.
// Sitemap failures are reported but do not stop the crawl.
func (w *providerWalk) seedSitemap(ctx context.Context, frontier ceu.URLFrontier) {
	if !w.provider.Crawl.Sitemap || w.crawler.Sitemaps == nil {
		return
	}
	base := w.provider.BaseURL()
	urls, err := w.crawler.Sitemaps.DiscoverURLs(ctx, base)
	if err != nil {
		w.emit(ProgressEvent{Type: ProgressFailed, URL: base, Error: err})
		return
	}
	for _, u := range urls {
		if !w.inScope(u) {
			continue
		}
		priority := ceu.PriorityFallback
		if w.classifier.Classify(u) == ceu.PageTypeCourseDetail {
			priority = ceu.PriorityCourse
		}
		frontier.Push(ceu.DiscoveredLink{URL: u, Priority: priority, Depth: 1, Referrer: base})
	}
}

// inScope reports whether rawURL is on a provider domain and not skipped.
func (w *providerWalk) inScope(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return w.provider.AllowedHost(u.Host) && w.classifier.ShouldFollow(rawURL)
}

// processURL fetches a single URL and collects the links to follow.
func (w *providerWalk) processURL(ctx context.Context, link ceu.DiscoveredLink) crawlResult {
	result := crawlResult{link: link}

	linkURL, err := url.Parse(link.URL)
	if err != nil {
		result.err = err
		return result
	}

	if w.provider.Crawl.RobotsTxtObey && w.crawler.Robots != nil && !w.crawler.Robots.Allowed(ctx, link.URL) {
		result.blocked = true
		return result
	}

	if err := w.limiter.Wait(ctx, linkURL.Host); err != nil {
		result.err = err
		return result
	}

	delays := w.crawler.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetched, err := FetchWithRetryDelays(ctx, link.URL, w.crawler.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}
	if fetched.URL == "" {
		fetched.URL = link.URL
	}
	result.fetch = fetched
	result.pageType = w.classifier.Classify(fetched.URL)

	depthLimit := w.provider.Crawl.DepthLimit
	if !FollowsLinks(result.pageType) || (depthLimit > 0 && link.Depth >= depthLimit) {
		return result
	}

	links, err := w.crawler.Links.ExtractLinks(fetched.HTML, fetched.URL, w.provider)
	if err != nil {
		return result
	}
	for _, l := range links {
		if !w.inScope(l.URL) {
			continue
		}
		l.Depth = link.Depth + 1
		l.Referrer = fetched.URL
		result.discovered = append(result.discovered, l)
	}
	return result
}

// handleResult records a completed fetch and stores the page.
func (w *providerWalk) handleResult(res *crawlResult, frontier ceu.URLFrontier) {
	for _, l := range res.discovered {
		frontier.Push(l)
	}

	w.completed++
	r := w.result

	switch {
	case res.blocked:
		r.Blocked++
		w.emit(ProgressEvent{Type: ProgressBlocked, Completed: w.completed, URL: res.link.URL})
		return
	case res.err != nil:
		r.Failed++
		w.emit(ProgressEvent{Type: ProgressFailed, Completed: w.completed, URL: res.link.URL, Error: res.err})
		return
	}

	r.Fetched++
	r.Bytes += len(res.fetch.HTML)
	r.ByType[res.pageType]++

	if !w.opts.DryRun {
		if err := w.store(res); err != nil {
			r.Failed++
			w.emit(ProgressEvent{Type: ProgressFailed, Completed: w.completed, URL: res.fetch.URL, Error: err})
			return
		}
	}

	w.emit(ProgressEvent{
		Type:      ProgressCompleted,
		Completed: w.completed,
		URL:       res.fetch.URL,
		PageType:  res.pageType,
	})
}

// store saves the fetched page and archives it when its content changed.
func (w *providerWalk) store(res *crawlResult) error {
	// Storage runs after the walk's context may have been canceled; the
	// pages already fetched are still worth keeping.
	ctx := context.Background()

	page := &ceu.RawPage{
		Provider:    w.provider.Name,
		URL:         res.fetch.URL,
		SourceURL:   res.link.Referrer,
		HTML:        res.fetch.HTML,
		HTTPStatus:  res.fetch.StatusCode,
		ContentType: res.fetch.ContentType,
		PageType:    res.pageType,
	}
	changed, err := w.crawler.RawPages.SaveRawPage(ctx, page)
	if err != nil {
		return err
	}
	if !changed {
		w.result.Unchanged++
		return nil
	}
	w.result.Stored++

	if w.crawler.Archive != nil {
		if _, err := w.crawler.Archive.Save(w.provider.Name, page.URL, page.HTML); err != nil {
			return err
		}
	}
	return nil
}
