package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/tasanda/ceu"
)

// Frontier sizing for a single provider crawl.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// drainTimeout bounds how long in-flight results are awaited after cancellation.
	drainTimeout = 5 * time.Second
)

// walkProcessor fetches a link and returns a crawlResult. It runs on worker goroutines.
type walkProcessor func(ctx context.Context, link ceu.DiscoveredLink) crawlResult

// walkResultHandler handles a completed crawlResult on the coordinator goroutine.
// It may push newly discovered links to the frontier.
type walkResultHandler func(result *crawlResult, frontier ceu.URLFrontier)

// walkFrontier pops links from frontier and hands them to concurrency
// workers until the frontier is empty, maxURLs links have been dispatched,
// or ctx is canceled. Results are handled one at a time on the calling
// goroutine, so handleResult needs no locking.
// Returns the number of links dispatched.
func walkFrontier(
	ctx context.Context,
	frontier ceu.URLFrontier,
	concurrency int,
	maxURLs int,
	processURL walkProcessor,
	handleResult walkResultHandler,
) int {
	if concurrency <= 0 {
		concurrency = 1
	}

	workCh := make(chan ceu.DiscoveredLink, concurrency)
	resultCh := make(chan crawlResult)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range workCh {
				result := processURL(ctx, link)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	dispatched := 0
	pending := 0
	var nextLink *ceu.DiscoveredLink

	if link, ok := frontier.Pop(); ok {
		nextLink = &link
	}

coordinatorLoop:
	for {
		if (nextLink == nil || dispatched >= maxURLs) && pending == 0 {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		if nextLink != nil && dispatched < maxURLs {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *nextLink:
				dispatched++
				pending++
				nextLink = nil
			case res := <-resultCh:
				pending--
				handleResult(&res, frontier)
			}
		} else {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handleResult(&res, frontier)
			}
		}

		if nextLink == nil && dispatched < maxURLs {
			if link, ok := frontier.Pop(); ok {
				nextLink = &link
			}
		}
	}

	close(workCh)

	timeout := time.After(drainTimeout)
drainLoop:
	for {
		select {
		case res, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			handleResult(&res, frontier)
		case <-timeout:
			break drainLoop
		}
	}

	return dispatched
}
