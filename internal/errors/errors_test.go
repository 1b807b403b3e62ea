package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskErrorFormatting(t *testing.T) {
	err := NewValidationError("Title is required", "create task").
		WithContext("field", "title")

	assert.Equal(t, "VALIDATION: Title is required (operation: create task) field=title", err.Error())
	assert.Equal(t, "Title is required", Detail(err))
}

func TestTaskErrorUnwrap(t *testing.T) {
	root := stderrors.New("disk full")
	err := NewStorageError("insert task", root)

	assert.ErrorIs(t, err, root)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCategoryPredicates(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
	}{
		{"validation", NewValidationError("bad", "op"), true, false},
		{"not found", NewNotFoundError("abc", "get task"), false, true},
		{"wrapped not found", fmt.Errorf("load: %w", NewNotFoundError("abc", "get task")), false, true},
		{"plain", stderrors.New("boom"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
		})
	}
}

func TestDetailFallsBackToErrorText(t *testing.T) {
	assert.Equal(t, "", Detail(nil))
	assert.Equal(t, "boom", Detail(stderrors.New("boom")))
	assert.Equal(t, MsgTaskNotFound, Detail(fmt.Errorf("x: %w", NewNotFoundError("1", "get"))))
}
