package ceu_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasanda/ceu"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code of application error", func(t *testing.T) {
		t.Parallel()
		err := ceu.Errorf(ceu.ENOTFOUND, "raw page %q not found", "abc")
		assert.Equal(t, ceu.ENOTFOUND, ceu.ErrorCode(err))
		assert.Equal(t, `raw page "abc" not found`, ceu.ErrorMessage(err))
	})

	t.Run("unwraps wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("loading: %w", ceu.Errorf(ceu.EINVALID, "bad"))
		assert.Equal(t, ceu.EINVALID, ceu.ErrorCode(err))
		assert.Equal(t, "bad", ceu.ErrorMessage(err))
	})

	t.Run("returns internal for other errors", func(t *testing.T) {
		t.Parallel()
		err := errors.New("boom")
		assert.Equal(t, ceu.EINTERNAL, ceu.ErrorCode(err))
		assert.Equal(t, "Internal error.", ceu.ErrorMessage(err))
	})

	t.Run("returns empty for nil", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ceu.ErrorCode(nil))
		assert.Empty(t, ceu.ErrorMessage(nil))
	})
}
