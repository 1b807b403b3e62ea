package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskpanel/internal/calendar"
	"taskpanel/internal/query"
	"taskpanel/internal/task"
)

const (
	calCellWidth  = 14
	calCellEvents = 2
)

func (m Model) updateCalendarMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPage):
		m.calYear, m.calMonth = calendar.Shift(m.calYear, m.calMonth, 1)
	case key.Matches(msg, m.keys.PrevPage):
		m.calYear, m.calMonth = calendar.Shift(m.calYear, m.calMonth, -1)
	case msg.String() == "t":
		now := m.now()
		m.calYear, m.calMonth = now.Year(), now.Month()
	case key.Matches(msg, m.keys.ToggleView):
		m.mode = modeList
		m.status = "List view"
	case key.Matches(msg, m.keys.StatusFilter):
		m.state = m.state.WithStatus(task.NextStatusFilter(m.state.Status, 1))
		return m.load()
	case key.Matches(msg, m.keys.PriorityFilter):
		m.state = m.state.WithPriority(task.NextPriorityFilter(m.state.Priority, 1))
		return m.load()
	case key.Matches(msg, m.keys.Refresh):
		m.gw.Invalidate()
		return m.load()
	case key.Matches(msg, m.keys.Add):
		return m.openCreate()
	case key.Matches(msg, m.keys.Settings):
		return m.openSettings()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// monthGrid lays out every task of the fetched batch that matches the
// filters, regardless of the list page.
func (m Model) monthGrid() calendar.Grid {
	data, _ := m.q.Data()
	events := calendar.Project(query.Filter(data.Tasks, m.state))
	return calendar.Month(m.calYear, m.calMonth, events)
}

func (m Model) renderCalendar() string {
	if _, ok := m.q.Data(); !ok && m.q.Loading() {
		return m.spinner.View() + " Loading tasks..."
	}
	g := m.monthGrid()
	today := task.DateOf(m.now())

	cell := lipgloss.NewStyle().Width(calCellWidth).Height(calCellEvents + 1)
	if m.q.Stale() {
		cell = cell.Faint(true)
	}

	var b strings.Builder
	b.WriteString(m.theme.title.Render(fmt.Sprintf("%s %d", g.Month, g.Year)))
	b.WriteString("\n")

	var head []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		head = append(head, lipgloss.NewStyle().Width(calCellWidth).Render(m.theme.muted.Render(d.String()[:3])))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, head...))
	b.WriteString("\n")

	for _, week := range g.Weeks {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, cell.Render(m.renderDay(day, today)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.muted.Render(fmt.Sprintf("%d tasks due this month  %s/%s month  t today",
		g.Count(), m.cfg.Keys.PrevPage, m.cfg.Keys.NextPage)))
	return b.String()
}

func (m Model) renderDay(day calendar.Day, today time.Time) string {
	num := fmt.Sprintf("%2d", day.Date.Day())
	switch {
	case !day.InMonth:
		num = m.theme.outside.Render(num)
	case day.Date.Equal(today):
		num = m.theme.today.Render(num)
	}

	lines := []string{num}
	for i, e := range day.Events {
		if i == calCellEvents {
			lines[len(lines)-1] = fmt.Sprintf("+%d more", len(day.Events)-calCellEvents+1)
			break
		}
		title := truncate(e.Title, calCellWidth-3)
		if day.InMonth {
			lines = append(lines, m.eventMarker(e)+" "+title)
		} else {
			lines = append(lines, m.theme.outside.Render("• "+title))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) eventMarker(e calendar.Event) string {
	c := m.theme.p.orange
	if e.Status == task.StatusCompleted {
		c = m.theme.p.green
	}
	return lipgloss.NewStyle().Foreground(c).Render("•")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
