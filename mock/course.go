package mock

import (
	"context"

	"github.com/tasanda/ceu"
)

var _ ceu.CourseService = (*CourseService)(nil)

// CourseService is a mock implementation of ceu.CourseService.
type CourseService struct {
	UpsertCourseFn   func(ctx context.Context, course *ceu.Course) (bool, error)
	FindCourseByIDFn func(ctx context.Context, id string) (*ceu.Course, error)
	FindCoursesFn    func(ctx context.Context, filter ceu.CourseFilter) ([]*ceu.Course, error)
}

func (s *CourseService) UpsertCourse(ctx context.Context, course *ceu.Course) (bool, error) {
	return s.UpsertCourseFn(ctx, course)
}

func (s *CourseService) FindCourseByID(ctx context.Context, id string) (*ceu.Course, error) {
	return s.FindCourseByIDFn(ctx, id)
}

func (s *CourseService) FindCourses(ctx context.Context, filter ceu.CourseFilter) ([]*ceu.Course, error) {
	return s.FindCoursesFn(ctx, filter)
}
