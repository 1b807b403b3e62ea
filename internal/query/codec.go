// Package query holds the navigable state of the task list and the pure
// derivation of the visible page from a fetched batch.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"taskpanel/internal/task"
)

const (
	ParamPage     = "page"
	ParamStatus   = "status"
	ParamPriority = "priority"
)

// ViewState is the page and filter selection of the task list. Values built
// through Decode or the With* transitions are always inside their domains.
type ViewState struct {
	Page     int
	Status   task.StatusFilter
	Priority task.PriorityFilter
}

func Default() ViewState {
	return ViewState{Page: 1, Status: task.AllStatuses, Priority: task.AllPriorities}
}

// Decode reads a ViewState from string parameters. Missing or out-of-domain
// values fall back to the field default; decoding never fails.
func Decode(raw map[string]string) ViewState {
	s := Default()
	if v, ok := raw[ParamPage]; ok {
		s.Page = parsePage(v)
	}
	if v, ok := raw[ParamStatus]; ok {
		if f, ok := task.ParseStatusFilter(strings.TrimSpace(v)); ok {
			s.Status = f
		}
	}
	if v, ok := raw[ParamPriority]; ok {
		if f, ok := task.ParsePriorityFilter(strings.TrimSpace(v)); ok {
			s.Priority = f
		}
	}
	return s
}

// Encode is the inverse of Decode for valid states.
func Encode(s ViewState) map[string]string {
	return map[string]string{
		ParamPage:     strconv.Itoa(s.Page),
		ParamStatus:   string(s.Status),
		ParamPriority: string(s.Priority),
	}
}

// DecodeValues decodes URL query parameters, using the first value of each key.
func DecodeValues(v url.Values) ViewState {
	raw := make(map[string]string, 3)
	for _, k := range []string{ParamPage, ParamStatus, ParamPriority} {
		if vals, ok := v[k]; ok && len(vals) > 0 {
			raw[k] = vals[0]
		}
	}
	return Decode(raw)
}

func EncodeValues(s ViewState) url.Values {
	v := url.Values{}
	for k, val := range Encode(s) {
		v.Set(k, val)
	}
	return v
}

// WithStatus changes the status filter and resets the page.
func (s ViewState) WithStatus(f task.StatusFilter) ViewState {
	if _, ok := task.ParseStatusFilter(string(f)); !ok {
		f = task.AllStatuses
	}
	s.Status = f
	s.Page = 1
	return s
}

// WithPriority changes the priority filter and resets the page.
func (s ViewState) WithPriority(f task.PriorityFilter) ViewState {
	if _, ok := task.ParsePriorityFilter(string(f)); !ok {
		f = task.AllPriorities
	}
	s.Priority = f
	s.Page = 1
	return s
}

func (s ViewState) WithPage(page int) ViewState {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// Filtered reports whether any filter narrows the list.
func (s ViewState) Filtered() bool {
	return !s.Status.IsAll() || !s.Priority.IsAll()
}

func (s ViewState) Matches(t task.Task) bool {
	return s.Status.Matches(t.Status) && s.Priority.Matches(t.Priority)
}

func parsePage(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
