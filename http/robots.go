package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/tasanda/ceu"
	"github.com/temoto/robotstxt"
)

var _ ceu.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy answers robots.txt questions for a user agent, fetching each
// host's robots.txt once. It is safe for concurrent use.
type RobotsPolicy struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData
}

// NewRobotsPolicy creates a RobotsPolicy for userAgent.
// If client is nil, http.DefaultClient is used.
func NewRobotsPolicy(client *http.Client, userAgent string) *RobotsPolicy {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &RobotsPolicy{
		client:    client,
		userAgent: userAgent,
		hosts:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether the user agent may fetch rawURL.
// A missing or unreachable robots.txt allows everything; a robots.txt
// answering with a server error disallows everything.
func (p *RobotsPolicy) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	data := p.robots(ctx, u)
	if data == nil {
		return true
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, p.userAgent)
}

func (p *RobotsPolicy) robots(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	key := u.Scheme + "://" + u.Host

	p.mu.Lock()
	data, ok := p.hosts[key]
	p.mu.Unlock()
	if ok {
		return data
	}

	data = p.fetch(ctx, key+"/robots.txt")

	// A canceled fetch is not cached so a later crawl can retry it.
	if ctx.Err() == nil {
		p.mu.Lock()
		p.hosts[key] = data
		p.mu.Unlock()
	}
	return data
}

func (p *RobotsPolicy) fetch(ctx context.Context, robotsURL string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}
	return data
}
