package form

import (
	"errors"
	"strings"
	"time"

	apperrors "taskpanel/internal/errors"
	"taskpanel/internal/task"
)

var ErrNotConfirmed = errors.New("delete not confirmed")

// CreateForm holds the raw text of the create dialog. Blank optional fields
// fall back to absent values or defaults.
type CreateForm struct {
	Title       string
	Description string
	DueDate     string
	Status      string
	Priority    string
}

func (f CreateForm) Validate() (task.CreateInput, error) {
	const op = "create task"
	in := task.CreateInput{Title: f.Title}
	if strings.TrimSpace(f.Description) != "" {
		desc := f.Description
		in.Description = &desc
	}
	due, err := parseDue(f.DueDate, op)
	if err != nil {
		return in, err
	}
	in.DueDate = due
	if v := strings.TrimSpace(f.Status); v != "" {
		in.Status = task.Status(v)
	}
	if v := strings.TrimSpace(f.Priority); v != "" {
		in.Priority = task.Priority(v)
	}
	return in.Validate()
}

// EditForm is the edit dialog, pre-populated from the task being edited.
type EditForm struct {
	ID          string
	Title       string
	Description string
	DueDate     string
	Status      string
	Priority    string

	orig task.Task
}

func NewEditForm(t task.Task) EditForm {
	f := EditForm{
		ID:       t.ID,
		Title:    t.Title,
		DueDate:  task.FormatDate(t.DueDate),
		Status:   string(t.Status),
		Priority: string(t.Priority),
		orig:     t,
	}
	if t.Description != nil {
		f.Description = *t.Description
	}
	return f
}

// Validate builds a partial update holding only the fields that changed.
// A due date before the calendar date of now is rejected; an unchanged past
// due date is kept.
func (f EditForm) Validate(now time.Time) (task.UpdateInput, error) {
	const op = "update task"
	var in task.UpdateInput

	if title := strings.TrimSpace(f.Title); title != f.orig.Title {
		in.Title = &title
	}

	desc := strings.TrimSpace(f.Description)
	switch {
	case desc == "" && f.orig.Description != nil:
		in.ClearDescription = true
	case desc != "" && (f.orig.Description == nil || *f.orig.Description != desc):
		in.Description = &desc
	}

	due, err := parseDue(f.DueDate, op)
	if err != nil {
		return in, err
	}
	switch {
	case due == nil && f.orig.DueDate != nil:
		in.ClearDueDate = true
	case due != nil && (f.orig.DueDate == nil || !task.DateOf(*f.orig.DueDate).Equal(*due)):
		if due.Before(task.DateOf(now)) {
			return in, apperrors.NewValidationError("Due date cannot be in the past", op).WithContext("field", "due_date")
		}
		in.DueDate = due
	}

	if s := task.Status(strings.TrimSpace(f.Status)); s != f.orig.Status {
		in.Status = &s
	}
	if p := task.Priority(strings.TrimSpace(f.Priority)); p != f.orig.Priority {
		in.Priority = &p
	}
	return in.Validate()
}

// DeleteForm guards a delete behind an explicit confirmation.
type DeleteForm struct {
	target    task.Task
	pending   bool
	confirmed bool
}

// RequestDelete selects t and waits for confirmation.
func (f *DeleteForm) RequestDelete(t task.Task) {
	f.target = t
	f.pending = true
	f.confirmed = false
}

func (f *DeleteForm) Pending() bool { return f.pending }

func (f *DeleteForm) Target() task.Task { return f.target }

func (f *DeleteForm) Confirm() {
	if f.pending {
		f.confirmed = true
	}
}

func (f *DeleteForm) Reset() { *f = DeleteForm{} }

// Submit returns the id to delete. Without a prior Confirm it returns
// ErrNotConfirmed and nothing may be sent.
func (f *DeleteForm) Submit() (string, error) {
	if !f.pending || !f.confirmed {
		return "", ErrNotConfirmed
	}
	id := f.target.ID
	f.Reset()
	return id, nil
}

func parseDue(v, op string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	d, err := task.ParseDate(v)
	if err != nil {
		return nil, apperrors.NewValidationError("Due date must be YYYY-MM-DD", op).
			WithContext("field", "due_date").
			WithOriginalError(err)
	}
	return &d, nil
}
