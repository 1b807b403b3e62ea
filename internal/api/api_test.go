package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "taskpanel/internal/errors"
	"taskpanel/internal/storage"
	"taskpanel/internal/task"
	"taskpanel/internal/testutil"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()
	st, err := storage.Open(storage.DriverSQLite, filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ts := httptest.NewServer(NewServer(st, 100).Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestCreateAndList(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+BasePath, map[string]string{"title": "Buy milk"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var created task.Task
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, task.StatusPending, created.Status)
	assert.Equal(t, task.PriorityMedium, created.Priority)

	resp, body = doJSON(t, http.MethodGet, ts.URL+BasePath+"?skip=0&limit=100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page task.Page
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1, page.Count)
	require.Len(t, page.Data, 1)
	assert.Equal(t, created.ID, page.Data[0].ID)
}

func TestListEmptyIsArray(t *testing.T) {
	ts, _ := newTestServer(t)
	_, body := doJSON(t, http.MethodGet, ts.URL+BasePath, nil)
	assert.JSONEq(t, `{"data":[],"count":0}`, string(body))
}

func TestErrorResponses(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		code   int
		detail string
	}{
		{"missing task", http.MethodGet, BasePath + "/nope", nil, http.StatusNotFound, "Task not found"},
		{"delete missing", http.MethodDelete, BasePath + "/nope", nil, http.StatusNotFound, "Task not found"},
		{"update missing", http.MethodPut, BasePath + "/nope", map[string]string{"title": "x"}, http.StatusNotFound, "Task not found"},
		{"empty title", http.MethodPost, BasePath, map[string]string{"title": ""}, http.StatusBadRequest, "Title is required"},
		{"bad status", http.MethodPost, BasePath, map[string]string{"title": "x", "status": "all"}, http.StatusBadRequest, "Invalid status"},
		{"bad skip", http.MethodGet, BasePath + "?skip=abc", nil, http.StatusBadRequest, "Invalid skip"},
		{"bad format", http.MethodGet, BasePath + "/export?format=xlsx", nil, http.StatusBadRequest, "Unsupported export format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, tt.method, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.code, resp.StatusCode)
			var eb errorBody
			require.NoError(t, json.Unmarshal(body, &eb))
			assert.Equal(t, tt.detail, eb.Detail)
		})
	}
}

func TestMalformedBody(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Post(ts.URL+BasePath, "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStorageFailureIs500(t *testing.T) {
	svc := &testutil.MockService{}
	svc.On("ListTasks", mock.Anything, 0, 100).Return(task.Page{}, apperrors.NewStorageError("list tasks", errors.New("disk full")))
	ts := httptest.NewServer(NewServer(svc, 100).Handler())
	defer ts.Close()

	resp, body := doJSON(t, http.MethodGet, ts.URL+BasePath, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Task storage failed"}`, string(body))
}

func TestExportCSV(t *testing.T) {
	ts, st := newTestServer(t)
	ctx := context.Background()
	_, err := st.CreateTask(ctx, task.CreateInput{Title: "a", Status: task.StatusCompleted})
	require.NoError(t, err)
	_, err = st.CreateTask(ctx, task.CreateInput{Title: "b"})
	require.NoError(t, err)

	resp, body := doJSON(t, http.MethodGet, ts.URL+BasePath+"/export?format=csv&status=completed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), ",a,")
	assert.NotContains(t, string(body), ",b,")
}

func TestClientRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)
	c := NewClient(ts.URL+"/", nil)
	ctx := context.Background()

	desc := "two litres"
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	created, err := c.CreateTask(ctx, task.CreateInput{Title: "Buy milk", Description: &desc, DueDate: &due, Priority: task.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, task.PriorityHigh, created.Priority)

	got, err := c.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))

	status := task.StatusInProgress
	updated, err := c.UpdateTask(ctx, created.ID, task.UpdateInput{Status: &status, ClearDescription: true})
	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, updated.Status)
	assert.Nil(t, updated.Description)
	assert.Equal(t, "Buy milk", updated.Title)

	page, err := c.ListTasks(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)

	require.NoError(t, c.DeleteTask(ctx, created.ID))
	err = c.DeleteTask(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Task not found", apperrors.Detail(err))
}

func TestClientValidationError(t *testing.T) {
	ts, _ := newTestServer(t)
	_, err := NewClient(ts.URL, nil).CreateTask(context.Background(), task.CreateInput{Title: " "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Title is required", apperrors.Detail(err))
}

func TestClientUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewClient(url, nil).ListTasks(context.Background(), 0, 10)
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryNetwork, apperrors.CategoryOf(err))
}
