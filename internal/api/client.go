package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "taskpanel/internal/errors"
	"taskpanel/internal/service"
	"taskpanel/internal/task"
)

var _ service.Service = (*Client)(nil)

// Client is a service.Service backed by a remote task API.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for the server at baseURL. A nil hc uses a
// client with a 15 second timeout.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) ListTasks(ctx context.Context, skip, limit int) (task.Page, error) {
	skip, limit = service.NormalizeWindow(skip, limit)
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var page task.Page
	err := c.do(ctx, http.MethodGet, BasePath+"/?"+q.Encode(), nil, &page, "list tasks", "")
	return page, err
}

func (c *Client) GetTask(ctx context.Context, id string) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, http.MethodGet, taskPath(id), nil, &t, "get task", id)
	return t, err
}

func (c *Client) CreateTask(ctx context.Context, in task.CreateInput) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, http.MethodPost, BasePath+"/", in, &t, "create task", "")
	return t, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, in task.UpdateInput) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, http.MethodPut, taskPath(id), in, &t, "update task", id)
	return t, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, "delete task", id)
}

func taskPath(id string) string {
	return BasePath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, op, id string) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return apperrors.NewNetworkError(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return responseError(resp, op, id)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewNetworkError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func responseError(resp *http.Response, op, id string) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)
	status := fmt.Errorf("HTTP %d", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		e := apperrors.NewNotFoundError(id, op).WithOriginalError(status)
		if eb.Detail != "" {
			e.Message = eb.Detail
		}
		return e
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		msg := eb.Detail
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return apperrors.NewValidationError(msg, op).WithOriginalError(status)
	}
	e := apperrors.NewNetworkError(op, status)
	if eb.Detail != "" {
		e.Message = eb.Detail
	}
	return e
}
