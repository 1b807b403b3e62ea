// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"

	"taskpanel/internal/task"
)

// DefaultLimit is the page size used when a read asks for no limit.
const DefaultLimit = 100

// Service is implemented by the local store and by the REST client.
// The panel never talks to a database or to HTTP directly.
type Service interface {
	// ListTasks returns up to limit tasks starting at skip, in creation
	// order, plus the total number of tasks held by the service.
	ListTasks(ctx context.Context, skip, limit int) (task.Page, error)

	// GetTask returns a task by id or a not-found error.
	GetTask(ctx context.Context, id string) (task.Task, error)

	// CreateTask validates in, fills defaults and stores a new task.
	CreateTask(ctx context.Context, in task.CreateInput) (task.Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, id string, in task.UpdateInput) (task.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error
}

// NormalizeWindow clamps skip and limit to the values a backend should use.
func NormalizeWindow(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return skip, limit
}
