package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskpanel/internal/config"
	"taskpanel/internal/gateway"
	"taskpanel/internal/task"
)

const requestTimeout = 15 * time.Second

type refreshMsg struct{}

type fetchedMsg struct {
	gen uint64
	res gateway.Result
	err error
}

type mutation int

const (
	mutationCreate mutation = iota
	mutationUpdate
	mutationQuick
)

type savedMsg struct {
	kind mutation
	task task.Task
	err  error
}

type deletedMsg struct {
	id  string
	err error
}

type settingsSavedMsg struct {
	appearance string
	err        error
}

func (m Model) fetchCmd(gen uint64, key gateway.Key) tea.Cmd {
	gw, parent := m.gw, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, requestTimeout)
		defer cancel()
		res, err := gw.Fetch(ctx, key)
		return fetchedMsg{gen: gen, res: res, err: err}
	}
}

func (m Model) createCmd(in task.CreateInput) tea.Cmd {
	svc, parent := m.svc, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, requestTimeout)
		defer cancel()
		t, err := svc.CreateTask(ctx, in)
		return savedMsg{kind: mutationCreate, task: t, err: err}
	}
}

func (m Model) updateCmd(kind mutation, id string, in task.UpdateInput) tea.Cmd {
	svc, parent := m.svc, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, requestTimeout)
		defer cancel()
		t, err := svc.UpdateTask(ctx, id, in)
		return savedMsg{kind: kind, task: t, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	svc, parent := m.svc, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, requestTimeout)
		defer cancel()
		return deletedMsg{id: id, err: svc.DeleteTask(ctx, id)}
	}
}

func (m Model) saveSettingsCmd(appearance string) tea.Cmd {
	cfg, path := m.cfg, m.configPath
	cfg.Appearance = appearance
	return func() tea.Msg {
		if path == "" {
			return settingsSavedMsg{appearance: appearance}
		}
		return settingsSavedMsg{appearance: appearance, err: config.Save(path, cfg)}
	}
}

func refresh() tea.Msg { return refreshMsg{} }
