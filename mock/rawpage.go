package mock

import (
	"context"

	"github.com/tasanda/ceu"
)

var _ ceu.RawPageService = (*RawPageService)(nil)

// RawPageService is a mock implementation of ceu.RawPageService.
type RawPageService struct {
	SaveRawPageFn     func(ctx context.Context, page *ceu.RawPage) (bool, error)
	FindRawPageByIDFn func(ctx context.Context, id string) (*ceu.RawPage, error)
	FindRawPagesFn    func(ctx context.Context, filter ceu.RawPageFilter) ([]*ceu.RawPage, error)
	UpdateRawPageFn   func(ctx context.Context, id string, upd ceu.RawPageUpdate) (*ceu.RawPage, error)
	CountRawPagesFn   func(ctx context.Context, by ceu.CountDimension) (map[string]int, error)
}

func (s *RawPageService) SaveRawPage(ctx context.Context, page *ceu.RawPage) (bool, error) {
	return s.SaveRawPageFn(ctx, page)
}

func (s *RawPageService) FindRawPageByID(ctx context.Context, id string) (*ceu.RawPage, error) {
	return s.FindRawPageByIDFn(ctx, id)
}

func (s *RawPageService) FindRawPages(ctx context.Context, filter ceu.RawPageFilter) ([]*ceu.RawPage, error) {
	return s.FindRawPagesFn(ctx, filter)
}

func (s *RawPageService) UpdateRawPage(ctx context.Context, id string, upd ceu.RawPageUpdate) (*ceu.RawPage, error) {
	return s.UpdateRawPageFn(ctx, id, upd)
}

func (s *RawPageService) CountRawPages(ctx context.Context, by ceu.CountDimension) (map[string]int, error) {
	return s.CountRawPagesFn(ctx, by)
}
