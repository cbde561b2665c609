package ceu

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
)

// RawPageStatus is the processing state of a crawled page.
type RawPageStatus string

// Raw page statuses.
const (
	StatusPending    RawPageStatus = "pending"
	StatusProcessing RawPageStatus = "processing"
	StatusCompleted  RawPageStatus = "completed"
	StatusFailed     RawPageStatus = "failed"
	StatusSkipped    RawPageStatus = "skipped"
)

// RawPage is a crawled HTML page waiting for, or finished with, extraction.
type RawPage struct {
	ID          string   `json:"id"`
	Provider    string   `json:"provider"`
	URL         string   `json:"url"`
	SourceURL   string   `json:"sourceUrl"`
	HTML        string   `json:"html"`
	ContentHash string   `json:"contentHash"`
	HTTPStatus  int      `json:"httpStatus"`
	ContentType string   `json:"contentType"`
	PageType    PageType `json:"pageType"`

	Status      RawPageStatus `json:"status"`
	CrawledAt   time.Time     `json:"crawledAt"`
	ProcessedAt *time.Time    `json:"processedAt"`

	// Set by processing.
	ExtractedData   *CourseData     `json:"extractedData"`
	ExtractionMeta  *ExtractionMeta `json:"extractionMeta"`
	ProcessingError string          `json:"processingError"`
	CourseID        string          `json:"courseId"`
}

// Validate returns an error if the page contains invalid fields.
func (p *RawPage) Validate() error {
	if p.Provider == "" {
		return Errorf(EINVALID, "raw page provider required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "raw page URL required")
	}
	return nil
}

// HashContent returns the hex xxHash of content, used to detect changed pages.
func HashContent(content string) string {
	var b [8]byte
	h := xxhash.Sum64String(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// RawPageService represents a service for managing crawled pages.
type RawPageService interface {
	// SaveRawPage inserts a page, or replaces the stored HTML of the page
	// with the same provider and URL. A replaced page whose content hash
	// changed is reset to pending and its extraction results are cleared.
	// Reports whether the stored content changed.
	SaveRawPage(ctx context.Context, page *RawPage) (changed bool, err error)

	// FindRawPageByID retrieves a page by ID.
	// Returns ENOTFOUND if the page does not exist.
	FindRawPageByID(ctx context.Context, id string) (*RawPage, error)

	// FindRawPages retrieves pages matching the filter, newest crawl first.
	FindRawPages(ctx context.Context, filter RawPageFilter) ([]*RawPage, error)

	// UpdateRawPage updates an existing page.
	// Returns ENOTFOUND if the page does not exist.
	UpdateRawPage(ctx context.Context, id string, upd RawPageUpdate) (*RawPage, error)

	// CountRawPages returns page counts grouped by the given dimension.
	CountRawPages(ctx context.Context, by CountDimension) (map[string]int, error)
}

// CountDimension selects the grouping for CountRawPages.
type CountDimension string

// Count dimensions.
const (
	CountByStatus   CountDimension = "status"
	CountByProvider CountDimension = "provider"
	CountByPageType CountDimension = "page_type"
)

// RawPageFilter represents a filter for FindRawPages.
type RawPageFilter struct {
	ID       *string        `json:"id"`
	Provider *string        `json:"provider"`
	URL      *string        `json:"url"`
	Status   *RawPageStatus `json:"status"`

	// OmitHTML skips loading page bodies for listings.
	OmitHTML bool `json:"omitHtml"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RawPageUpdate represents fields that can be updated on a raw page.
type RawPageUpdate struct {
	Status          *RawPageStatus  `json:"status"`
	ProcessedAt     *time.Time      `json:"processedAt"`
	ExtractedData   *CourseData     `json:"extractedData"`
	ExtractionMeta  *ExtractionMeta `json:"extractionMeta"`
	ProcessingError *string         `json:"processingError"`
	CourseID        *string         `json:"courseId"`
}
