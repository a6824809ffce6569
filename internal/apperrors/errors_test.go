package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesCategory(t *testing.T) {
	err := apperrors.NewValidationError(apperrors.KindUnbalanced, "debits 10 do not equal credits 9")
	wrapped := fmt.Errorf("post entry: %w", err)

	assert.ErrorIs(t, wrapped, apperrors.ErrValidation)
	assert.NotErrorIs(t, wrapped, apperrors.ErrNotFound)

	kind, reason := apperrors.KindOf(wrapped)
	assert.Equal(t, apperrors.KindUnbalanced, kind)
	assert.Equal(t, "debits 10 do not equal credits 9", reason)
}

func TestStorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewStorageError("failed to insert entry", cause)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAsStorageError(t *testing.T) {
	assert.NoError(t, apperrors.AsStorageError("x", nil))

	notFound := apperrors.NewNotFoundError(apperrors.KindUnknownEntry, "entry 7 not found")
	assert.Same(t, notFound, apperrors.AsStorageError("x", notFound))

	plain := errors.New("disk full")
	err := apperrors.AsStorageError("failed to commit", plain)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KindStorage, kind)
}

func TestKindOfPlainError(t *testing.T) {
	kind, reason := apperrors.KindOf(errors.New("boom"))
	assert.Equal(t, apperrors.KindStorage, kind)
	assert.Equal(t, "internal error", reason)
}
