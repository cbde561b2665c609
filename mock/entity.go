package mock

import (
	"context"

	"github.com/tasanda/ceu"
)

var _ ceu.EntityTagger = (*EntityTagger)(nil)

// EntityTagger is a mock implementation of ceu.EntityTagger.
type EntityTagger struct {
	TagFn func(ctx context.Context, text string) ([]ceu.TaggedEntity, error)
}

func (t *EntityTagger) Tag(ctx context.Context, text string) ([]ceu.TaggedEntity, error) {
	return t.TagFn(ctx, text)
}

var _ ceu.EntityRecognizer = (*EntityRecognizer)(nil)

// EntityRecognizer is a mock implementation of ceu.EntityRecognizer.
type EntityRecognizer struct {
	RecognizeFn func(ctx context.Context, text string) *ceu.EntityBundle
}

func (r *EntityRecognizer) Recognize(ctx context.Context, text string) *ceu.EntityBundle {
	return r.RecognizeFn(ctx, text)
}
