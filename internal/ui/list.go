package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"taskpanel/internal/query"
	"taskpanel/internal/task"
)

const (
	msgNoTasks         = "No tasks yet. Press 'a' to add one."
	msgNoFilterMatches = "No tasks found with the selected filters."
	placeholderNA      = "N/A"
)

func listColumns(width int) []table.Column {
	title, desc := 24, 30
	if width > 100 {
		extra := width - 100
		title += extra / 3
		desc += extra - extra/3
	}
	return []table.Column{
		{Title: "Title", Width: title},
		{Title: "Description", Width: desc},
		{Title: "Due Date", Width: 10},
		{Title: "Status", Width: 11},
		{Title: "Priority", Width: 8},
	}
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up, m.keys.Down):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	case key.Matches(msg, m.keys.NextPage):
		if m.state.Page >= query.PageCount(m.page.Total, m.cfg.PageSize) {
			return m, nil
		}
		m.state = m.state.WithPage(m.state.Page + 1)
		m.table.SetCursor(0)
		return m.load()
	case key.Matches(msg, m.keys.PrevPage):
		if m.state.Page <= 1 {
			return m, nil
		}
		m.state = m.state.WithPage(m.state.Page - 1)
		m.table.SetCursor(0)
		return m.load()
	case key.Matches(msg, m.keys.StatusFilter):
		m.state = m.state.WithStatus(task.NextStatusFilter(m.state.Status, 1))
		m.table.SetCursor(0)
		return m.load()
	case key.Matches(msg, m.keys.PriorityFilter):
		m.state = m.state.WithPriority(task.NextPriorityFilter(m.state.Priority, 1))
		m.table.SetCursor(0)
		return m.load()
	case key.Matches(msg, m.keys.Refresh):
		m.gw.Invalidate()
		return m.load()
	case key.Matches(msg, m.keys.ToggleView):
		m.mode = modeCalendar
		m.status = "Calendar view"
		return m, nil
	case key.Matches(msg, m.keys.Settings):
		return m.openSettings()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Detail):
		m.hideDetail = !m.hideDetail
		return m, nil
	case key.Matches(msg, m.keys.Add):
		return m.openCreate()
	}

	t, ok := m.selected()
	if !ok {
		if key.Matches(msg, m.keys.Edit, m.keys.Delete, m.keys.Toggle, m.keys.PriorityUp, m.keys.PriorityDown) {
			m.status = "No task selected"
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		return m.openEdit(t)
	case key.Matches(msg, m.keys.Delete):
		if m.deleting {
			return m, nil
		}
		m.del.RequestDelete(t)
		m.status = fmt.Sprintf("Delete \"%s\"? This cannot be undone. y/n", t.Title)
	case key.Matches(msg, m.keys.Toggle, m.keys.PriorityUp, m.keys.PriorityDown) && m.updating:
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		next := task.StatusCompleted
		if t.Status == task.StatusCompleted {
			next = task.StatusPending
		}
		m.updating = true
		return m, m.updateCmd(mutationQuick, t.ID, task.UpdateInput{Status: &next})
	case key.Matches(msg, m.keys.PriorityUp, m.keys.PriorityDown):
		delta := 1
		if key.Matches(msg, m.keys.PriorityDown) {
			delta = -1
		}
		next, changed := shiftPriority(t.Priority, delta)
		if !changed {
			return m, nil
		}
		m.updating = true
		return m, m.updateCmd(mutationQuick, t.ID, task.UpdateInput{Priority: &next})
	}
	return m, nil
}

// syncTable rebuilds the rows from the last applied batch and the current
// view state.
func (m *Model) syncTable() {
	data, _ := m.q.Data()
	m.page = query.Derive(data.Tasks, m.state, m.cfg.PageSize)

	rows := make([]table.Row, 0, len(m.page.Tasks))
	for _, t := range m.page.Tasks {
		desc := placeholderNA
		if t.Description != nil {
			desc = firstLine(*t.Description)
		}
		due := task.FormatDate(t.DueDate)
		if due == "" {
			due = placeholderNA
		}
		rows = append(rows, table.Row{
			t.Title,
			desc,
			due,
			task.StatusLabel(string(t.Status)),
			task.PriorityLabel(string(t.Priority)),
		})
	}
	m.table.SetRows(rows)
	m.table.SetStyles(m.theme.tableStyles(m.q.Stale()))
	m.table.SetCursor(clampCursor(m.table.Cursor(), len(rows)))
}

func (m Model) selected() (task.Task, bool) {
	if len(m.page.Tasks) == 0 {
		return task.Task{}, false
	}
	return m.page.Tasks[clampCursor(m.table.Cursor(), len(m.page.Tasks))], true
}

func (m Model) renderList() string {
	if _, ok := m.q.Data(); !ok {
		if m.q.Loading() {
			return m.spinner.View() + " Loading tasks..."
		}
		return ""
	}
	if len(m.page.Tasks) == 0 {
		if m.page.Total == 0 {
			if m.state.Filtered() {
				return m.theme.muted.Render(msgNoFilterMatches)
			}
			return m.theme.muted.Render(msgNoTasks)
		}
		return m.theme.muted.Render(fmt.Sprintf("Page %d is empty.", m.state.Page))
	}

	var b strings.Builder
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.theme.muted.Render(fmt.Sprintf("Page %d of %d  (%d tasks)",
		m.state.Page, query.PageCount(m.page.Total, m.cfg.PageSize), m.page.Total)))
	return b.String()
}

func (m Model) renderDetail() string {
	t, ok := m.selected()
	if !ok || m.hideDetail {
		return ""
	}
	desc := placeholderNA
	if t.Description != nil {
		desc = *t.Description
	}
	due := placeholderNA
	if t.DueDate != nil {
		due = fmt.Sprintf("%s (%s)", task.FormatDate(t.DueDate), humanize.Time(*t.DueDate))
	}

	rows := []string{
		m.theme.title.Render(t.Title),
		m.theme.label.Render("Status") + m.theme.statusBadge(t.Status) + " " + m.theme.label.Render("Priority") + m.theme.priorityBadge(t.Priority),
		m.theme.label.Render("Due") + due,
		m.theme.label.Render("Created") + humanize.Time(t.CreatedAt),
		m.theme.label.Render("Notes") + desc,
	}
	return m.theme.pane.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func shiftPriority(p task.Priority, delta int) (task.Priority, bool) {
	idx := 0
	for i, v := range task.Priorities {
		if v == p {
			idx = i
		}
	}
	next := idx + delta
	if next < 0 || next >= len(task.Priorities) {
		return p, false
	}
	return task.Priorities[next], true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}
