package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskpanel/internal/config"
	"taskpanel/internal/logger"
)

var appearanceLabels = map[string]string{
	config.AppearanceSystem: "System",
	config.AppearanceLight:  "Light Mode",
	config.AppearanceDark:   "Dark Mode",
}

type settingsState struct {
	cursor int
	saving bool
}

func newSettingsState(appearance string) settingsState {
	return settingsState{cursor: appearanceIndex(appearance)}
}

func appearanceIndex(v string) int {
	for i, a := range config.Appearances {
		if a == v {
			return i
		}
	}
	return 0
}

func (m Model) openSettings() (tea.Model, tea.Cmd) {
	m.prevMode = m.mode
	m.mode = modeSettings
	m.settings = newSettingsState(m.cfg.Appearance)
	m.status = "Appearance: up/down to choose, enter to save, esc to go back"
	return m, nil
}

func (m Model) updateSettingsMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case m.cfg.Keys.Cancel, "esc", m.cfg.Keys.Settings:
		m.mode = m.prevMode
		m.status = "Settings closed"
	case m.cfg.Keys.Up, "up":
		m.settings.cursor = wrapIndex(m.settings.cursor-1, len(config.Appearances))
	case m.cfg.Keys.Down, "down":
		m.settings.cursor = wrapIndex(m.settings.cursor+1, len(config.Appearances))
	case m.cfg.Keys.Confirm, "enter", " ", "space":
		if m.settings.saving {
			return m, nil
		}
		m.settings.saving = true
		choice := config.Appearances[m.settings.cursor]
		m.status = "Saving appearance..."
		return m, m.saveSettingsCmd(choice)
	}
	return m, nil
}

func (m Model) handleSettingsSaved(msg settingsSavedMsg) (tea.Model, tea.Cmd) {
	m.settings.saving = false
	if msg.err != nil {
		logger.L().WithError(msg.err).Warn("save settings failed")
		m.status = "Failed to save settings: " + msg.err.Error()
		return m, nil
	}
	m.cfg.Appearance = msg.appearance
	m.theme = themeFor(msg.appearance)
	m.syncTable()
	m.status = "Appearance set to " + appearanceLabels[msg.appearance]
	return m, nil
}

func (m Model) renderSettings() string {
	var b strings.Builder
	b.WriteString(m.theme.title.Render("Appearance"))
	b.WriteString("\n\n")
	for i, a := range config.Appearances {
		cursor := " "
		if i == m.settings.cursor {
			cursor = ">"
		}
		radio := "( )"
		if a == m.cfg.Appearance {
			radio = "(•)"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, radio, appearanceLabels[a]))
	}
	if m.settings.saving {
		b.WriteString("\n" + m.spinner.View() + " Saving...")
	}
	return m.theme.pane.Render(b.String())
}
