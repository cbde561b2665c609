package crawl

import (
	"container/heap"
	"sync"

	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/bloom"
)

// Compile-time interface verification.
var _ ceu.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with priority queue and Bloom filter deduplication.
// Links of equal priority are popped in the order they were pushed.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
	seq   uint64
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier.
// Returns false if the URL, in canonical form, has already been seen.
func (f *Frontier) Push(link ceu.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestAndAdd(link.URL) {
		return false
	}

	link.URL = bloom.Canonical(link.URL)
	heap.Push(f.queue, queued{link: link, seq: f.seq})
	f.seq++
	return true
}

// Pop returns the next link by priority.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (ceu.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return ceu.DiscoveredLink{}, false
	}
	q, _ := heap.Pop(f.queue).(queued)
	return q.link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(rawURL)
}

type queued struct {
	link ceu.DiscoveredLink
	seq  uint64
}

// linkHeap implements heap.Interface for the link priority queue.
// Higher priority links are popped first, then older ones.
type linkHeap []queued

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].link.Priority != h[j].link.Priority {
		return h[i].link.Priority > h[j].link.Priority
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	q, _ := x.(queued)
	*h = append(*h, q)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
