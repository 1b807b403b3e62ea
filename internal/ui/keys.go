package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"

	"taskpanel/internal/config"
)

type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	Add            key.Binding
	Edit           key.Binding
	Detail         key.Binding
	Delete         key.Binding
	Toggle         key.Binding
	PriorityUp     key.Binding
	PriorityDown   key.Binding
	NextPage       key.Binding
	PrevPage       key.Binding
	StatusFilter   key.Binding
	PriorityFilter key.Binding
	ToggleView     key.Binding
	Settings       key.Binding
	Refresh        key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Up:             binding("move up", k.Up, "up"),
		Down:           binding("move down", k.Down, "down"),
		Add:            binding("add", k.Add),
		Edit:           binding("edit", k.Edit),
		Detail:         binding("details", k.Detail),
		Delete:         binding("delete", k.Delete),
		Toggle:         binding("toggle done", k.Toggle),
		PriorityUp:     binding("priority up", k.PriorityUp),
		PriorityDown:   binding("priority down", k.PriorityDown),
		NextPage:       binding("next page", k.NextPage, "right"),
		PrevPage:       binding("prev page", k.PrevPage, "left"),
		StatusFilter:   binding("status filter", k.StatusFilter),
		PriorityFilter: binding("priority filter", k.PriorityFilter),
		ToggleView:     binding("list/calendar", k.ToggleView),
		Settings:       binding("settings", k.Settings),
		Refresh:        binding("refresh", k.Refresh),
		Help:           binding("help", k.Help),
		Quit:           binding("quit", k.Quit, "ctrl+c"),
	}
}

// binding builds a key binding from configured keys, skipping blanks. A
// configured space also matches the "space" name.
func binding(desc string, keys ...string) key.Binding {
	var ks []string
	for _, k := range keys {
		if k == "" {
			continue
		}
		ks = append(ks, k)
		if k == " " {
			ks = append(ks, "space")
		}
	}
	helpKey := ""
	if len(ks) > 0 {
		helpKey = ks[0]
		if helpKey == " " {
			helpKey = "space"
		}
	}
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(helpKey, desc))
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.StatusFilter, k.PriorityFilter, k.ToggleView, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Detail},
		{k.Add, k.Edit, k.Delete, k.Toggle, k.PriorityUp, k.PriorityDown},
		{k.StatusFilter, k.PriorityFilter, k.ToggleView, k.Refresh},
		{k.Settings, k.Help, k.Quit},
	}
}

func (k keyMap) tableKeys() table.KeyMap {
	return table.KeyMap{LineUp: k.Up, LineDown: k.Down}
}
