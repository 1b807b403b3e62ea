// Package testutil provides testing utilities.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskpanel/internal/task"
)

// MockService is a testify mock of service.Service.
type MockService struct {
	mock.Mock
}

func (m *MockService) ListTasks(ctx context.Context, skip, limit int) (task.Page, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).(task.Page), args.Error(1)
}

func (m *MockService) GetTask(ctx context.Context, id string) (task.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockService) CreateTask(ctx context.Context, in task.CreateInput) (task.Task, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockService) UpdateTask(ctx context.Context, id string, in task.UpdateInput) (task.Task, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockService) DeleteTask(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
