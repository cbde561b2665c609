package ceu

import (
	"net/url"
	"slices"
	"sort"
	"strings"
	"time"
)

// Provider describes a course provider site and how to crawl it.
type Provider struct {
	Name        string         `yaml:"name" json:"name" validate:"required"`
	DisplayName string         `yaml:"display_name" json:"displayName"`
	Active      bool           `yaml:"active" json:"active"`
	Domains     []Domain       `yaml:"domains" json:"domains" validate:"required,min=1,dive"`
	Crawl       CrawlConfig    `yaml:"crawl" json:"crawl"`
	Selectors   Selectors      `yaml:"selectors" json:"selectors"`
	Metadata    map[string]any `yaml:"metadata" json:"metadata,omitempty"`
}

// Domain is one site a provider serves courses from.
type Domain struct {
	BaseURL string `yaml:"base_url" json:"baseUrl" validate:"required,url"`
	Primary bool   `yaml:"primary" json:"primary"`
}

// CrawlConfig controls how a provider is crawled.
type CrawlConfig struct {
	StartURLs          []string    `yaml:"start_urls" json:"startUrls" validate:"required,min=1,dive,url"`
	DownloadDelay      float64     `yaml:"download_delay" json:"downloadDelay" validate:"gte=0"`
	RandomizeDelay     bool        `yaml:"randomize_download_delay" json:"randomizeDownloadDelay"`
	ConcurrentRequests int         `yaml:"concurrent_requests" json:"concurrentRequests" validate:"gte=0"`
	DepthLimit         int         `yaml:"depth_limit" json:"depthLimit" validate:"gte=0"`
	RobotsTxtObey      bool        `yaml:"robotstxt_obey" json:"robotstxtObey"`
	Sitemap            bool        `yaml:"sitemap" json:"sitemap"`
	Patterns           URLPatterns `yaml:"patterns" json:"patterns"`
}

// URLPatterns holds regular expressions matched against page URLs.
type URLPatterns struct {
	Listing      []string `yaml:"listing" json:"listing"`
	CourseDetail []string `yaml:"course_detail" json:"courseDetail"`
	Skip         []string `yaml:"skip" json:"skip"`
}

// Selectors holds CSS selectors used when following links.
type Selectors struct {
	CourseLinks SelectorPair `yaml:"course_links" json:"courseLinks"`
	Pagination  SelectorPair `yaml:"pagination" json:"pagination"`
}

// SelectorPair is a primary CSS selector with an optional fallback.
type SelectorPair struct {
	CSS         string `yaml:"css" json:"css"`
	FallbackCSS string `yaml:"fallback_css" json:"fallbackCss"`
}

// Delay returns DownloadDelay as a duration.
func (c CrawlConfig) Delay() time.Duration {
	return time.Duration(c.DownloadDelay * float64(time.Second))
}

// Crawl defaults applied to fields left unset in configuration.
const (
	DefaultDownloadDelay      = 5.0
	DefaultConcurrentRequests = 1
	DefaultDepthLimit         = 3
)

// NewProvider returns a provider named name with crawl defaults applied.
func NewProvider(name string) *Provider {
	return &Provider{
		Name:        name,
		DisplayName: name,
		Crawl: CrawlConfig{
			DownloadDelay:      DefaultDownloadDelay,
			RandomizeDelay:     true,
			ConcurrentRequests: DefaultConcurrentRequests,
			DepthLimit:         DefaultDepthLimit,
			RobotsTxtObey:      true,
		},
	}
}

// BaseURL returns the primary domain's base URL, else the first domain's.
func (p *Provider) BaseURL() string {
	for _, d := range p.Domains {
		if d.Primary {
			return d.BaseURL
		}
	}
	if len(p.Domains) > 0 {
		return p.Domains[0].BaseURL
	}
	return ""
}

// BaseDomain returns the host of BaseURL, e.g. "www.pesi.com".
func (p *Provider) BaseDomain() string {
	u, err := url.Parse(p.BaseURL())
	if err != nil {
		return ""
	}
	return u.Host
}

// AllowedHost reports whether host belongs to one of the provider's domains.
func (p *Provider) AllowedHost(host string) bool {
	for _, d := range p.Domains {
		u, err := url.Parse(d.BaseURL)
		if err != nil {
			continue
		}
		if strings.EqualFold(u.Host, host) {
			return true
		}
	}
	return false
}

// Validate returns the semantic problems with the provider configuration.
// An empty slice means the provider is usable.
func (p *Provider) Validate() []string {
	var problems []string
	if len(p.Crawl.StartURLs) == 0 {
		problems = append(problems, "Missing required field: crawl.start_urls")
	}
	if len(p.Domains) == 0 {
		problems = append(problems, "Missing required field: domains")
	}
	for _, u := range p.Crawl.StartURLs {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			problems = append(problems, "Invalid start URL: "+u)
		}
	}
	return problems
}

// ProviderRegistry is an immutable set of providers keyed by name.
// Build one at startup and pass it to whatever needs provider lookups.
type ProviderRegistry struct {
	providers map[string]*Provider
}

// NewProviderRegistry returns a registry holding the given providers.
// Later entries replace earlier ones with the same name.
func NewProviderRegistry(providers ...*Provider) *ProviderRegistry {
	m := make(map[string]*Provider, len(providers))
	for _, p := range providers {
		m[p.Name] = p
	}
	return &ProviderRegistry{providers: m}
}

// Get returns the named provider.
// Returns ENOTFOUND if no provider has that name.
func (r *ProviderRegistry) Get(name string) (*Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "provider %q not found", name)
	}
	return p, nil
}

// List returns all providers sorted by name.
func (r *ProviderRegistry) List() []*Provider {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]*Provider, 0, len(names))
	for _, name := range names {
		list = append(list, r.providers[name])
	}
	return list
}

// Active returns the active providers sorted by name.
func (r *ProviderRegistry) Active() []*Provider {
	return slices.DeleteFunc(r.List(), func(p *Provider) bool { return !p.Active })
}

// Len returns the number of providers.
func (r *ProviderRegistry) Len() int {
	return len(r.providers)
}
