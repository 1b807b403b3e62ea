// Package task holds the Task entity, its closed status and priority
// enumerations and the create/update payloads accepted by the task service.
package task

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "taskpanel/internal/errors"
)

const (
	MaxTitleLen       = 255
	MaxDescriptionLen = 1024

	// DateLayout is the calendar-date form used by forms, the CLI and storage.
	DateLayout = "2006-01-02"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

func ParseStatus(v string) (Status, bool) {
	for _, s := range Statuses {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	_, ok := ParsePriority(string(p))
	return ok
}

func ParsePriority(v string) (Priority, bool) {
	for _, p := range Priorities {
		if string(p) == v {
			return p, true
		}
	}
	return "", false
}

const (
	DefaultStatus   = StatusPending
	DefaultPriority = PriorityMedium
)

// Task is the managed entity. Description and DueDate are nil when absent.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Page is one read from the task service: a bounded slice of tasks plus the
// number of tasks the service holds in total.
type Page struct {
	Data  []Task `json:"data"`
	Count int    `json:"count"`
}

// CreateInput is the payload for creating a task. Zero Status and Priority
// select the defaults.
type CreateInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
}

// Validate trims the input, fills defaults and checks every field.
func (in CreateInput) Validate() (CreateInput, error) {
	const op = "create task"
	in.Title = strings.TrimSpace(in.Title)
	if err := checkTitle(in.Title, op); err != nil {
		return in, err
	}
	in.Description = normalizeDescription(in.Description)
	if err := checkDescription(in.Description, op); err != nil {
		return in, err
	}
	if in.DueDate != nil {
		d := DateOf(*in.DueDate)
		in.DueDate = &d
	}
	if in.Status == "" {
		in.Status = DefaultStatus
	}
	if !in.Status.Valid() {
		return in, apperrors.NewValidationError("Invalid status", op).WithContext("status", in.Status)
	}
	if in.Priority == "" {
		in.Priority = DefaultPriority
	}
	if !in.Priority.Valid() {
		return in, apperrors.NewValidationError("Invalid priority", op).WithContext("priority", in.Priority)
	}
	return in, nil
}

// UpdateInput is a partial update: nil fields are left untouched. The Clear
// flags remove an optional field.
type UpdateInput struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	ClearDescription bool       `json:"clear_description,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	ClearDueDate     bool       `json:"clear_due_date,omitempty"`
	Status           *Status    `json:"status,omitempty"`
	Priority         *Priority  `json:"priority,omitempty"`
}

func (in UpdateInput) Validate() (UpdateInput, error) {
	const op = "update task"
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := checkTitle(title, op); err != nil {
			return in, err
		}
		in.Title = &title
	}
	if in.Description != nil {
		in.Description = normalizeDescription(in.Description)
		if in.Description == nil {
			in.ClearDescription = true
		}
		if err := checkDescription(in.Description, op); err != nil {
			return in, err
		}
	}
	if in.DueDate != nil {
		d := DateOf(*in.DueDate)
		in.DueDate = &d
	}
	if in.Status != nil && !in.Status.Valid() {
		return in, apperrors.NewValidationError("Invalid status", op).WithContext("status", *in.Status)
	}
	if in.Priority != nil && !in.Priority.Valid() {
		return in, apperrors.NewValidationError("Invalid priority", op).WithContext("priority", *in.Priority)
	}
	return in, nil
}

// Apply returns t with the update applied. in must already be validated.
func (in UpdateInput) Apply(t Task) Task {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.ClearDescription {
		t.Description = nil
	} else if in.Description != nil {
		d := *in.Description
		t.Description = &d
	}
	if in.ClearDueDate {
		t.DueDate = nil
	} else if in.DueDate != nil {
		d := *in.DueDate
		t.DueDate = &d
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	return t
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func checkTitle(title, op string) error {
	if title == "" {
		return apperrors.NewValidationError("Title is required", op).WithContext("field", "title")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return apperrors.NewValidationError("Title must be at most 255 characters", op).WithContext("field", "title")
	}
	return nil
}

func checkDescription(desc *string, op string) error {
	if desc != nil && utf8.RuneCountInString(*desc) > MaxDescriptionLen {
		return apperrors.NewValidationError("Description must be at most 1024 characters", op).WithContext("field", "description")
	}
	return nil
}

func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	v := strings.TrimSpace(*desc)
	if v == "" {
		return nil
	}
	return &v
}
