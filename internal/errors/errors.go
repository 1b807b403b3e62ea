// Package errors defines the structured error taxonomy shared by the task
// service, the REST layer and the admin panel.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCategory represents the category of error
type ErrorCategory string

const (
	// CategoryValidation marks a missing or invalid field.
	CategoryValidation ErrorCategory = "VALIDATION"
	// CategoryNotFound marks a task id that does not exist.
	CategoryNotFound ErrorCategory = "NOT_FOUND"
	// CategoryNetwork marks a failed request to a remote task service.
	CategoryNetwork ErrorCategory = "NETWORK"
	// CategoryStorage marks a failure of the backing database.
	CategoryStorage ErrorCategory = "STORAGE"
	// CategoryConfiguration marks an unusable configuration.
	CategoryConfiguration ErrorCategory = "CONFIGURATION"
)

// MsgTaskNotFound is the detail reported for unknown task ids.
const MsgTaskNotFound = "Task not found"

// TaskError represents a structured error with context
type TaskError struct {
	Category      ErrorCategory
	Message       string
	Operation     string
	Context       map[string]interface{}
	OriginalError error
}

// Error implements the error interface
func (e *TaskError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", e.Category, e.Message))
	if e.Operation != "" {
		sb.WriteString(fmt.Sprintf(" (operation: %s)", e.Operation))
	}
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf(" %s=%v", k, e.Context[k]))
		}
	}
	if e.OriginalError != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.OriginalError))
	}
	return sb.String()
}

// Unwrap returns the original error for error chain compatibility
func (e *TaskError) Unwrap() error {
	return e.OriginalError
}

// NewTaskError creates a new error with the specified parameters
func NewTaskError(category ErrorCategory, message, operation string) *TaskError {
	return &TaskError{
		Category:  category,
		Message:   message,
		Operation: operation,
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *TaskError) WithContext(key string, value interface{}) *TaskError {
	e.Context[key] = value
	return e
}

// WithOriginalError adds the original error
func (e *TaskError) WithOriginalError(err error) *TaskError {
	e.OriginalError = err
	return e
}

func NewValidationError(message, operation string) *TaskError {
	return NewTaskError(CategoryValidation, message, operation)
}

func NewNotFoundError(id, operation string) *TaskError {
	return NewTaskError(CategoryNotFound, MsgTaskNotFound, operation).WithContext("id", id)
}

func NewNetworkError(operation string, err error) *TaskError {
	return NewTaskError(CategoryNetwork, "Task service is unreachable", operation).WithOriginalError(err)
}

func NewStorageError(operation string, err error) *TaskError {
	return NewTaskError(CategoryStorage, "Task storage failed", operation).WithOriginalError(err)
}

func NewConfigurationError(message string) *TaskError {
	return NewTaskError(CategoryConfiguration, message, "load configuration")
}

// CategoryOf returns the category of the first TaskError in err's chain, or
// the empty category.
func CategoryOf(err error) ErrorCategory {
	var te *TaskError
	if stderrors.As(err, &te) {
		return te.Category
	}
	return ""
}

func IsValidation(err error) bool { return CategoryOf(err) == CategoryValidation }
func IsNotFound(err error) bool   { return CategoryOf(err) == CategoryNotFound }

// Detail returns the human-readable message a user should see for err.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var te *TaskError
	if stderrors.As(err, &te) {
		return te.Message
	}
	return err.Error()
}
