// Package calendar projects dated tasks onto all-day events and lays them out
// as a month grid.
package calendar

import (
	"sort"
	"time"

	"taskpanel/internal/task"
)

// Event is one task placed on the calendar. Every event is all-day and spans
// a single date.
type Event struct {
	TaskID   string
	Title    string
	Date     time.Time
	End      time.Time
	AllDay   bool
	Status   task.Status
	Priority task.Priority
}

// Project returns one event per task with a due date, in input order.
// Undated tasks are skipped and tasks sharing a date are not merged.
func Project(tasks []task.Task) []Event {
	events := make([]Event, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		day := task.DateOf(*t.DueDate)
		events = append(events, Event{
			TaskID:   t.ID,
			Title:    t.Title,
			Date:     day,
			End:      day,
			AllDay:   true,
			Status:   t.Status,
			Priority: t.Priority,
		})
	}
	return events
}

type Day struct {
	Date    time.Time
	InMonth bool
	Events  []Event
}

// Grid is a month laid out in Sunday-first weeks. Leading and trailing days
// from neighbouring months fill the first and last week.
type Grid struct {
	Year  int
	Month time.Month
	Weeks [][7]Day
}

// Month builds the grid for year/month and attaches the events that fall on
// each visible day.
func Month(year int, month time.Month, events []Event) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	byDate := make(map[time.Time][]Event)
	for _, e := range events {
		d := task.DateOf(e.Date)
		byDate[d] = append(byDate[d], e)
	}
	for d := range byDate {
		evs := byDate[d]
		sort.SliceStable(evs, func(i, j int) bool { return evs[i].Title < evs[j].Title })
	}

	g := Grid{Year: first.Year(), Month: first.Month()}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		var week [7]Day
		for i := range week {
			day := d.AddDate(0, 0, i)
			week[i] = Day{Date: day, InMonth: day.Month() == first.Month(), Events: byDate[day]}
		}
		g.Weeks = append(g.Weeks, week)
	}
	return g
}

// Shift moves year/month by delta months.
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

// Count returns the number of events placed on in-month days.
func (g Grid) Count() int {
	n := 0
	for _, w := range g.Weeks {
		for _, d := range w {
			if d.InMonth {
				n += len(d.Events)
			}
		}
	}
	return n
}
