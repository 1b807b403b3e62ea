package query

import "taskpanel/internal/task"

const DefaultPageSize = 5

// DerivedPage is the visible slice of the filtered batch plus the number of
// filtered tasks across the whole batch.
type DerivedPage struct {
	Tasks []task.Task
	Total int
}

// Filter keeps the tasks matching state's filters, in batch order. The batch
// is not modified.
func Filter(batch []task.Task, state ViewState) []task.Task {
	out := make([]task.Task, 0, len(batch))
	for _, t := range batch {
		if state.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Derive computes the page of batch selected by state. A page beyond the end
// yields no tasks rather than an error. pageSize below 1 uses DefaultPageSize.
func Derive(batch []task.Task, state ViewState, pageSize int) DerivedPage {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	filtered := Filter(batch, state)
	visible := slicePage(filtered, state.Page, pageSize)

	tasks := make([]task.Task, len(visible))
	copy(tasks, visible)
	return DerivedPage{Tasks: tasks, Total: len(filtered)}
}

// PageCount is the number of pages needed for total tasks, at least one.
func PageCount(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

func slicePage(tasks []task.Task, page, pageSize int) []task.Task {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset >= len(tasks) {
		return nil
	}
	end := offset + pageSize
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[offset:end]
}
