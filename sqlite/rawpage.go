package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasanda/ceu"
)

// Compile-time interface verification.
var _ ceu.RawPageService = (*RawPageService)(nil)

// RawPageService implements ceu.RawPageService using SQLite.
type RawPageService struct {
	db *DB
}

// NewRawPageService creates a new RawPageService.
func NewRawPageService(db *DB) *RawPageService {
	return &RawPageService{db: db}
}

const rawPageColumns = `id, provider, url, source_url, %s, content_hash, http_status, content_type,
	page_type, status, crawled_at, processed_at, extracted_data, extraction_meta, processing_error, course_id`

// selectRawPages returns the SELECT clause, replacing the HTML column with
// an empty string when omitHTML is set.
func selectRawPages(omitHTML bool) string {
	html := "html"
	if omitHTML {
		html = "'' AS html"
	}
	return "SELECT " + fmt.Sprintf(rawPageColumns, html) + " FROM raw_pages"
}

// SaveRawPage inserts page, or replaces the stored copy of the page with the
// same provider and URL when its content hash changed.
func (s *RawPageService) SaveRawPage(ctx context.Context, page *ceu.RawPage) (bool, error) {
	if err := page.Validate(); err != nil {
		return false, err
	}

	page.ContentHash = ceu.HashContent(page.HTML)
	if page.CrawledAt.IsZero() {
		page.CrawledAt = time.Now().UTC()
	}
	if page.PageType == "" {
		page.PageType = ceu.PageTypeUnknown
	}

	var id, hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash FROM raw_pages WHERE provider = ? AND url = ?
	`, page.Provider, page.URL).Scan(&id, &hash)

	switch {
	case err == sql.ErrNoRows:
		return true, s.insert(ctx, page)
	case err != nil:
		return false, err
	}

	page.ID = id
	if hash == page.ContentHash {
		return false, nil
	}

	page.Status = ceu.StatusPending
	page.ProcessedAt = nil
	page.ExtractedData = nil
	page.ExtractionMeta = nil
	page.ProcessingError = ""
	page.CourseID = ""

	_, err = s.db.ExecContext(ctx, `
		UPDATE raw_pages
		SET source_url = ?, html = ?, content_hash = ?, http_status = ?, content_type = ?,
			page_type = ?, status = ?, crawled_at = ?, processed_at = NULL,
			extracted_data = NULL, extraction_meta = NULL, processing_error = '', course_id = ''
		WHERE id = ?
	`, page.SourceURL, page.HTML, page.ContentHash, page.HTTPStatus, page.ContentType,
		page.PageType, page.Status, formatTime(&page.CrawledAt), id)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RawPageService) insert(ctx context.Context, page *ceu.RawPage) error {
	page.ID = uuid.New().String()
	page.Status = ceu.StatusPending

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO raw_pages (id, provider, url, source_url, html, content_hash, http_status,
			content_type, page_type, status, crawled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.Provider, page.URL, page.SourceURL, page.HTML, page.ContentHash,
		page.HTTPStatus, page.ContentType, page.PageType, page.Status, formatTime(&page.CrawledAt))
	if isUniqueViolation(err) {
		return ceu.Errorf(ceu.ECONFLICT, "raw page already exists: %s", page.URL)
	}
	return err
}

// FindRawPageByID retrieves a page by ID.
func (s *RawPageService) FindRawPageByID(ctx context.Context, id string) (*ceu.RawPage, error) {
	page, err := scanRawPage(s.db.QueryRowContext(ctx, selectRawPages(false)+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, ceu.Errorf(ceu.ENOTFOUND, "raw page not found")
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

// FindRawPages retrieves pages matching the filter, newest crawl first.
func (s *RawPageService) FindRawPages(ctx context.Context, filter ceu.RawPageFilter) ([]*ceu.RawPage, error) {
	var query strings.Builder
	var args []any

	query.WriteString(selectRawPages(filter.OmitHTML))
	query.WriteString(" WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Provider != nil {
		query.WriteString(" AND provider = ?")
		args = append(args, *filter.Provider)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY crawled_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*ceu.RawPage
	for rows.Next() {
		page, err := scanRawPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// UpdateRawPage updates an existing page.
func (s *RawPageService) UpdateRawPage(ctx context.Context, id string, upd ceu.RawPageUpdate) (*ceu.RawPage, error) {
	page, err := s.FindRawPageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		page.Status = *upd.Status
	}
	if upd.ProcessedAt != nil {
		t := upd.ProcessedAt.UTC()
		page.ProcessedAt = &t
	}
	if upd.ExtractedData != nil {
		page.ExtractedData = upd.ExtractedData
	}
	if upd.ExtractionMeta != nil {
		page.ExtractionMeta = upd.ExtractionMeta
	}
	if upd.ProcessingError != nil {
		page.ProcessingError = *upd.ProcessingError
	}
	if upd.CourseID != nil {
		page.CourseID = *upd.CourseID
	}

	extracted, err := marshalJSON(page.ExtractedData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extracted_data: %w", err)
	}
	meta, err := marshalJSON(page.ExtractionMeta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction_meta: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE raw_pages
		SET status = ?, processed_at = ?, extracted_data = ?, extraction_meta = ?,
			processing_error = ?, course_id = ?
		WHERE id = ?
	`, page.Status, formatTime(page.ProcessedAt), extracted, meta,
		page.ProcessingError, page.CourseID, id)
	if err != nil {
		return nil, err
	}

	return page, nil
}

// countColumns maps count dimensions to their column.
var countColumns = map[ceu.CountDimension]string{
	ceu.CountByStatus:   "status",
	ceu.CountByProvider: "provider",
	ceu.CountByPageType: "page_type",
}

// CountRawPages returns page counts grouped by the given dimension.
func (s *RawPageService) CountRawPages(ctx context.Context, by ceu.CountDimension) (map[string]int, error) {
	column, ok := countColumns[by]
	if !ok {
		return nil, ceu.Errorf(ceu.EINVALID, "unknown count dimension: %s", by)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT "+column+", COUNT(*) FROM raw_pages GROUP BY "+column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}

	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRawPage(row scanner) (*ceu.RawPage, error) {
	var page ceu.RawPage
	var crawledAt string
	var processedAt, extracted, meta sql.NullString

	if err := row.Scan(&page.ID, &page.Provider, &page.URL, &page.SourceURL, &page.HTML,
		&page.ContentHash, &page.HTTPStatus, &page.ContentType, &page.PageType, &page.Status,
		&crawledAt, &processedAt, &extracted, &meta, &page.ProcessingError, &page.CourseID); err != nil {
		return nil, err
	}

	var err error
	if page.CrawledAt, err = parseRFC3339(crawledAt, "crawled_at"); err != nil {
		return nil, err
	}
	if page.ProcessedAt, err = parseNullTime(processedAt, "processed_at"); err != nil {
		return nil, err
	}
	if page.ExtractedData, err = unmarshalJSON[ceu.CourseData](extracted, "extracted_data"); err != nil {
		return nil, err
	}
	if page.ExtractionMeta, err = unmarshalJSON[ceu.ExtractionMeta](meta, "extraction_meta"); err != nil {
		return nil, err
	}

	return &page, nil
}
