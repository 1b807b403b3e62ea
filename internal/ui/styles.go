package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"taskpanel/internal/config"
	"taskpanel/internal/task"
)

type palette struct {
	fg, muted, accent, border       lipgloss.Color
	green, orange, red, yellow, blue lipgloss.Color
}

var (
	darkPalette = palette{
		fg: "252", muted: "243", accent: "212", border: "238",
		green: "42", orange: "214", red: "203", yellow: "220", blue: "75",
	}
	lightPalette = palette{
		fg: "235", muted: "245", accent: "127", border: "250",
		green: "28", orange: "166", red: "160", yellow: "136", blue: "25",
	}
)

type theme struct {
	name    string
	dark    bool
	p       palette
	title   lipgloss.Style
	muted   lipgloss.Style
	status  lipgloss.Style
	banner  lipgloss.Style
	warning lipgloss.Style
	pane    lipgloss.Style
	label   lipgloss.Style
	badge   lipgloss.Style
	today   lipgloss.Style
	outside lipgloss.Style
}

// themeFor resolves an appearance setting. "system" follows the terminal
// background.
func themeFor(appearance string) theme {
	var dark bool
	switch appearance {
	case config.AppearanceLight:
		dark = false
	case config.AppearanceDark:
		dark = true
	default:
		dark = lipgloss.HasDarkBackground()
	}
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return theme{
		name:    appearance,
		dark:    dark,
		p:       p,
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		muted:   lipgloss.NewStyle().Foreground(p.muted),
		status:  lipgloss.NewStyle().Foreground(p.fg),
		banner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(p.red).Padding(0, 1),
		warning: lipgloss.NewStyle().Foreground(p.orange),
		pane:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		label:   lipgloss.NewStyle().Foreground(p.muted).Width(10),
		badge:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("231")),
		today:   lipgloss.NewStyle().Bold(true).Foreground(p.accent).Underline(true),
		outside: lipgloss.NewStyle().Foreground(p.border),
	}
}

func (t theme) statusBadge(s task.Status) string {
	c := t.p.orange
	if s == task.StatusCompleted {
		c = t.p.green
	}
	return t.badge.Background(c).Render(task.StatusLabel(string(s)))
}

func (t theme) priorityBadge(p task.Priority) string {
	var c lipgloss.Color
	switch p {
	case task.PriorityHigh:
		c = t.p.red
	case task.PriorityMedium:
		c = t.p.yellow
	default:
		c = t.p.blue
	}
	return t.badge.Background(c).Render(task.PriorityLabel(string(p)))
}

// tableStyles dims every row while a newer request is pending.
func (t theme) tableStyles(stale bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.p.border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("231")).Background(t.p.accent).Bold(false)
	if stale {
		s.Cell = s.Cell.Foreground(t.p.muted).Faint(true)
		s.Selected = s.Selected.Faint(true)
	}
	return s
}
