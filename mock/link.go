package mock

import "github.com/tasanda/ceu"

var _ ceu.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of ceu.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string, provider *ceu.Provider) ([]ceu.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string, provider *ceu.Provider) ([]ceu.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL, provider)
}

var _ ceu.ContentPreviewer = (*ContentPreviewer)(nil)

// ContentPreviewer is a mock implementation of ceu.ContentPreviewer.
type ContentPreviewer struct {
	PreviewFn func(html string) (*ceu.ContentPreview, error)
}

func (p *ContentPreviewer) Preview(html string) (*ceu.ContentPreview, error) {
	return p.PreviewFn(html)
}

var _ ceu.PageAnalyzer = (*PageAnalyzer)(nil)

// PageAnalyzer is a mock implementation of ceu.PageAnalyzer.
type PageAnalyzer struct {
	AnalyzeFn         func(html, url string) (*ceu.PageAnalysis, error)
	SuggestProviderFn func(html, url, name string) (*ceu.Provider, error)
}

func (a *PageAnalyzer) Analyze(html, url string) (*ceu.PageAnalysis, error) {
	return a.AnalyzeFn(html, url)
}

func (a *PageAnalyzer) SuggestProvider(html, url, name string) (*ceu.Provider, error) {
	return a.SuggestProviderFn(html, url, name)
}
