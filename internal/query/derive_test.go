package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskpanel/internal/task"
)

func sampleBatch() []task.Task {
	return []task.Task{
		{ID: "0", Title: "zero", Status: task.StatusPending, Priority: task.PriorityLow},
		{ID: "1", Title: "one", Status: task.StatusCompleted, Priority: task.PriorityHigh},
		{ID: "2", Title: "two", Status: task.StatusPending, Priority: task.PriorityHigh},
	}
}

func ids(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func pendingState(page int) ViewState {
	return ViewState{Page: page, Status: task.FilterStatus(task.StatusPending), Priority: task.AllPriorities}
}

func TestDeriveFiltersInBatchOrder(t *testing.T) {
	got := Derive(sampleBatch(), pendingState(1), 5)

	assert.Equal(t, []string{"0", "2"}, ids(got.Tasks))
	assert.Equal(t, 2, got.Total)
}

func TestDerivePaginationBoundary(t *testing.T) {
	batch := sampleBatch()

	page2 := Derive(batch, pendingState(2), 1)
	assert.Equal(t, []string{"2"}, ids(page2.Tasks))
	assert.Equal(t, 2, page2.Total)

	page3 := Derive(batch, pendingState(3), 1)
	assert.Empty(t, page3.Tasks)
	assert.NotNil(t, page3.Tasks)
	assert.Equal(t, 2, page3.Total)
}

func TestDeriveIsPure(t *testing.T) {
	batch := sampleBatch()
	snapshot := sampleBatch()
	state := pendingState(1)

	first := Derive(batch, state, 5)
	second := Derive(batch, state, 5)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, batch)

	// mutating a result must not reach back into the batch
	first.Tasks[0].Title = "changed"
	assert.Equal(t, "zero", batch[0].Title)
}

func TestDeriveCombinedFilters(t *testing.T) {
	tests := []struct {
		name      string
		state     ViewState
		wantIDs   []string
		wantTotal int
	}{
		{"all", Default(), []string{"0", "1", "2"}, 3},
		{"high only", Default().WithPriority(task.FilterPriority(task.PriorityHigh)), []string{"1", "2"}, 2},
		{"pending high", pendingState(1).WithPriority(task.FilterPriority(task.PriorityHigh)), []string{"2"}, 1},
		{"cancelled", Default().WithStatus(task.FilterStatus(task.StatusCancelled)), []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(sampleBatch(), tt.state, 5)
			assert.Equal(t, tt.wantIDs, ids(got.Tasks))
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}
}

func TestDeriveEmptyBatch(t *testing.T) {
	got := Derive(nil, Default(), 5)
	assert.Empty(t, got.Tasks)
	assert.Zero(t, got.Total)
}

func TestDeriveDefaultPageSize(t *testing.T) {
	batch := make([]task.Task, 12)
	for i := range batch {
		batch[i] = task.Task{Status: task.StatusPending, Priority: task.PriorityMedium}
	}
	got := Derive(batch, Default(), 0)
	assert.Len(t, got.Tasks, DefaultPageSize)
	assert.Equal(t, 12, got.Total)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, PageCount(0, 5))
	assert.Equal(t, 1, PageCount(5, 5))
	assert.Equal(t, 2, PageCount(6, 5))
	assert.Equal(t, 3, PageCount(3, 1))
}
