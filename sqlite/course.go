package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasanda/ceu"
)

// Compile-time interface verification.
var _ ceu.CourseService = (*CourseService)(nil)

// CourseService implements ceu.CourseService using SQLite.
type CourseService struct {
	db *DB
}

// NewCourseService creates a new CourseService.
func NewCourseService(db *DB) *CourseService {
	return &CourseService{db: db}
}

const courseColumns = `id, provider, title, url, description, instructors, credits, credits_string,
	price, price_string, original_price, duration, duration_string, course_type, field, start_date,
	accreditations, structured_data, created_at, scraped_at`

// UpsertCourse creates the course, or overwrites the course with the same URL.
func (s *CourseService) UpsertCourse(ctx context.Context, course *ceu.Course) (bool, error) {
	if err := course.Validate(); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	if course.ScrapedAt.IsZero() {
		course.ScrapedAt = now
	}
	if course.CourseType == "" {
		course.CourseType = ceu.CourseTypeOnDemand
	}
	if course.Field == "" {
		course.Field = ceu.FieldOther
	}

	args, err := courseArgs(course)
	if err != nil {
		return false, err
	}

	var id, createdAt string
	err = s.db.QueryRowContext(ctx, "SELECT id, created_at FROM courses WHERE url = ?", course.URL).Scan(&id, &createdAt)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}

	if err == sql.ErrNoRows {
		course.ID = uuid.New().String()
		course.CreatedAt = now

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO courses (`+courseColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, append([]any{course.ID}, append(args, formatTime(&course.CreatedAt), formatTime(&course.ScrapedAt))...)...)
		if isUniqueViolation(err) {
			return false, ceu.Errorf(ceu.ECONFLICT, "course already exists: %s", course.URL)
		}
		return err == nil, err
	}

	course.ID = id
	if course.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return false, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE courses
		SET provider = ?, title = ?, url = ?, description = ?, instructors = ?, credits = ?,
			credits_string = ?, price = ?, price_string = ?, original_price = ?, duration = ?,
			duration_string = ?, course_type = ?, field = ?, start_date = ?, accreditations = ?,
			structured_data = ?, scraped_at = ?
		WHERE id = ?
	`, append(args, formatTime(&course.ScrapedAt), id)...)
	return false, err
}

// courseArgs returns the column values from provider to structured_data.
func courseArgs(c *ceu.Course) ([]any, error) {
	instructors, err := json.Marshal(nonNil(c.Instructors))
	if err != nil {
		return nil, fmt.Errorf("failed to encode instructors: %w", err)
	}
	accreditations, err := json.Marshal(nonNil(c.Accreditations))
	if err != nil {
		return nil, fmt.Errorf("failed to encode accreditations: %w", err)
	}
	structured := c.StructuredData
	if structured == nil {
		structured = map[string]any{}
	}
	structuredJSON, err := json.Marshal(structured)
	if err != nil {
		return nil, fmt.Errorf("failed to encode structured_data: %w", err)
	}

	return []any{
		c.Provider, c.Title, c.URL, c.Description, string(instructors),
		nullFloat(c.Credits), c.CreditsString,
		nullFloat(c.Price), c.PriceString, nullFloat(c.OriginalPrice),
		nullInt(c.DurationMinutes), c.DurationString,
		c.CourseType, c.Field, c.StartDate,
		string(accreditations), string(structuredJSON),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// FindCourseByID retrieves a course by ID.
func (s *CourseService) FindCourseByID(ctx context.Context, id string) (*ceu.Course, error) {
	course, err := scanCourse(s.db.QueryRowContext(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, ceu.Errorf(ceu.ENOTFOUND, "course not found")
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

// FindCourses retrieves courses matching the filter, most recently scraped first.
func (s *CourseService) FindCourses(ctx context.Context, filter ceu.CourseFilter) ([]*ceu.Course, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + courseColumns + " FROM courses WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Provider != nil {
		query.WriteString(" AND provider = ?")
		args = append(args, *filter.Provider)
	}
	if filter.Field != nil {
		query.WriteString(" AND field = ?")
		args = append(args, *filter.Field)
	}

	query.WriteString(" ORDER BY scraped_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*ceu.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func scanCourse(row scanner) (*ceu.Course, error) {
	var c ceu.Course
	var instructors, accreditations, structured, createdAt, scrapedAt string
	var credits, price, originalPrice sql.NullFloat64
	var duration sql.NullInt64

	if err := row.Scan(&c.ID, &c.Provider, &c.Title, &c.URL, &c.Description, &instructors,
		&credits, &c.CreditsString, &price, &c.PriceString, &originalPrice, &duration,
		&c.DurationString, &c.CourseType, &c.Field, &c.StartDate, &accreditations, &structured,
		&createdAt, &scrapedAt); err != nil {
		return nil, err
	}

	c.Credits = floatPtr(credits)
	c.Price = floatPtr(price)
	c.OriginalPrice = floatPtr(originalPrice)
	c.DurationMinutes = intPtr(duration)

	if err := json.Unmarshal([]byte(instructors), &c.Instructors); err != nil {
		return nil, fmt.Errorf("failed to decode instructors: %w", err)
	}
	if err := json.Unmarshal([]byte(accreditations), &c.Accreditations); err != nil {
		return nil, fmt.Errorf("failed to decode accreditations: %w", err)
	}
	if err := json.Unmarshal([]byte(structured), &c.StructuredData); err != nil {
		return nil, fmt.Errorf("failed to decode structured_data: %w", err)
	}

	var err error
	if c.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if c.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}

	return &c, nil
}
