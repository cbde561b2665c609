package ceu

import (
	"context"
	"time"
)

// Course is a stored course record, unique by URL.
type Course struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
	ScrapedAt time.Time `json:"scrapedAt"`
	CourseData
}

// Validate returns an error if the course contains invalid fields.
func (c *Course) Validate() error {
	if c.Title == "" {
		return Errorf(EINVALID, "course title required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "course URL required")
	}
	return nil
}

// CourseService represents a service for managing courses.
type CourseService interface {
	// UpsertCourse creates the course, or overwrites the course with the
	// same URL keeping its ID and CreatedAt. Sets course.ID. Reports whether
	// a new course was created.
	UpsertCourse(ctx context.Context, course *Course) (created bool, err error)

	// FindCourseByID retrieves a course by ID.
	// Returns ENOTFOUND if the course does not exist.
	FindCourseByID(ctx context.Context, id string) (*Course, error)

	// FindCourses retrieves courses matching the filter.
	FindCourses(ctx context.Context, filter CourseFilter) ([]*Course, error)
}

// CourseFilter represents a filter for FindCourses.
type CourseFilter struct {
	ID       *string `json:"id"`
	URL      *string `json:"url"`
	Provider *string `json:"provider"`
	Field    *Field  `json:"field"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
