package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskpanel/internal/task"
)

func TestDecodeDefaults(t *testing.T) {
	assert.Equal(t, ViewState{Page: 1, Status: "all", Priority: "all"}, Decode(map[string]string{}))
	assert.Equal(t, Default(), Decode(nil))
}

func TestDecodeCoercesInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]string
		want ViewState
	}{
		{"negative page", map[string]string{"page": "-3"}, Default()},
		{"zero page", map[string]string{"page": "0"}, Default()},
		{"non numeric page", map[string]string{"page": "two"}, Default()},
		{"float page", map[string]string{"page": "2.5"}, Default()},
		{"unknown status", map[string]string{"status": "done"}, Default()},
		{"unknown priority", map[string]string{"priority": "urgent"}, Default()},
		{
			"valid values",
			map[string]string{"page": "4", "status": "in_progress", "priority": "high"},
			ViewState{Page: 4, Status: task.FilterStatus(task.StatusInProgress), Priority: task.FilterPriority(task.PriorityHigh)},
		},
		{
			"mixed valid and invalid",
			map[string]string{"page": " 2 ", "status": "bogus", "priority": "low"},
			ViewState{Page: 2, Status: task.AllStatuses, Priority: task.FilterPriority(task.PriorityLow)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.raw))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, so := range task.StatusOptions {
		for _, po := range task.PriorityOptions {
			for _, page := range []int{1, 2, 17} {
				s := ViewState{Page: page, Status: task.StatusFilter(so.Value), Priority: task.PriorityFilter(po.Value)}
				assert.Equal(t, s, Decode(Encode(s)))
				assert.Equal(t, s, DecodeValues(EncodeValues(s)))
			}
		}
	}
}

func TestDecodeValuesUsesFirstValue(t *testing.T) {
	v := url.Values{"page": {"3", "9"}, "status": {"completed"}}
	got := DecodeValues(v)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, task.FilterStatus(task.StatusCompleted), got.Status)
	assert.True(t, got.Priority.IsAll())
}

func TestFilterChangeResetsPage(t *testing.T) {
	s := Default().WithPage(3)
	assert.Equal(t, 3, s.Page)

	s = s.WithStatus(task.FilterStatus(task.StatusCompleted))
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, task.FilterStatus(task.StatusCompleted), s.Status)

	s = s.WithPage(2).WithPriority(task.FilterPriority(task.PriorityHigh))
	assert.Equal(t, 1, s.Page)
}

func TestTransitionsStayInDomain(t *testing.T) {
	s := Default().WithStatus("bogus").WithPriority("bogus").WithPage(-1)
	assert.Equal(t, Default(), s)
}

func TestFiltered(t *testing.T) {
	assert.False(t, Default().Filtered())
	assert.True(t, Default().WithStatus(task.FilterStatus(task.StatusPending)).Filtered())
	assert.True(t, Default().WithPriority(task.FilterPriority(task.PriorityLow)).Filtered())
}
