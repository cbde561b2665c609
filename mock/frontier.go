package mock

import (
	"context"

	"github.com/tasanda/ceu"
)

var _ ceu.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of ceu.URLFrontier.
type URLFrontier struct {
	PushFn func(link ceu.DiscoveredLink) bool
	PopFn  func() (ceu.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link ceu.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (ceu.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ ceu.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ceu.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
