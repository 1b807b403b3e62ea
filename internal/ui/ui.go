package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpanel/internal/config"
	apperrors "taskpanel/internal/errors"
	"taskpanel/internal/form"
	"taskpanel/internal/gateway"
	"taskpanel/internal/logger"
	"taskpanel/internal/query"
	"taskpanel/internal/service"
	"taskpanel/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeCalendar
	modeForm
	modeSettings
)

type Model struct {
	ctx        context.Context
	svc        service.Service
	gw         *gateway.Gateway
	cfg        config.Config
	configPath string
	now        func() time.Time

	mode     mode
	prevMode mode
	state    query.ViewState
	q        gateway.Query
	page     query.DerivedPage

	table   table.Model
	input   textinput.Model
	area    textarea.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	theme   theme

	editor   *editorState
	dialog   form.Dialog
	del      form.DeleteForm
	deleting bool
	updating bool
	settings settingsState

	calYear  int
	calMonth time.Month

	status     string
	width      int
	hideDetail bool
}

// New builds the panel over svc, starting at state.
func New(ctx context.Context, svc service.Service, cfg config.Config, configPath string, state query.ViewState) Model {
	if cfg.PageSize < 1 {
		cfg.PageSize = query.DefaultPageSize
	}
	keys := newKeyMap(cfg.Keys)
	th := themeFor(cfg.Appearance)

	tbl := table.New(
		table.WithColumns(listColumns(0)),
		table.WithHeight(cfg.PageSize+1),
		table.WithFocused(true),
		table.WithKeyMap(keys.tableKeys()),
	)
	tbl.SetStyles(th.tableStyles(false))

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	ta := textarea.New()
	ta.CharLimit = 1024
	ta.SetWidth(60)
	ta.SetHeight(4)
	ta.ShowLineNumbers = false

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	now := time.Now()
	return Model{
		ctx:        ctx,
		svc:        svc,
		gw:         gateway.New(svc, gateway.NewCache(ttl), cfg.BatchLimit),
		cfg:        cfg,
		configPath: configPath,
		now:        time.Now,
		mode:       modeList,
		state:      state,
		table:      tbl,
		input:      ti,
		area:       ta,
		spinner:    sp,
		help:       help.New(),
		keys:       keys,
		theme:      th,
		settings:   newSettingsState(cfg.Appearance),
		calYear:    now.Year(),
		calMonth:   now.Month(),
		status:     fmt.Sprintf("Press '%s' to add, '%s' for help.", cfg.Keys.Add, cfg.Keys.Help),
	}
}

func Run(ctx context.Context, svc service.Service, cfg config.Config, configPath string, state query.ViewState) error {
	program := tea.NewProgram(New(ctx, svc, cfg, configPath, state), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, refresh)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.del.Pending() {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeForm:
			return m.updateFormMode(msg)
		case modeSettings:
			return m.updateSettingsMode(msg.String())
		case modeCalendar:
			return m.updateCalendarMode(msg)
		}
		return m.updateListMode(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(20, msg.Width-20)
		m.area.SetWidth(max(20, msg.Width-20))
		m.table.SetColumns(listColumns(msg.Width))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case refreshMsg:
		return m.load()
	case fetchedMsg:
		if !m.q.Resolve(msg.gen, msg.res, msg.err) {
			logger.L().WithField("gen", msg.gen).Debug("discarded superseded task fetch")
			return m, nil
		}
		m.syncTable()
	case savedMsg:
		return m.handleSaved(msg)
	case deletedMsg:
		return m.handleDeleted(msg)
	case settingsSavedMsg:
		return m.handleSettingsSaved(msg)
	}
	return m, nil
}

// load starts a fetch for the current view state. Previous rows stay on
// screen, dimmed, until it resolves.
func (m Model) load() (Model, tea.Cmd) {
	key := gateway.KeyFor(m.state)
	gen := m.q.Begin(key)
	m.syncTable()
	return m, m.fetchCmd(gen, key)
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.kind == mutationQuick {
		m.updating = false
		if msg.err != nil {
			m.status = "Update failed: " + apperrors.Detail(msg.err)
			return m, nil
		}
		m.gw.Invalidate()
		m.status = fmt.Sprintf("Updated \"%s\"", msg.task.Title)
		return m.load()
	}

	if msg.err != nil {
		_ = m.dialog.Fail(msg.err)
		m.status = "Save failed: " + apperrors.Detail(msg.err)
		return m, nil
	}
	_ = m.dialog.Succeed()
	m.closeForm()
	m.gw.Invalidate()
	if msg.kind == mutationCreate {
		m.status = "Task created successfully"
	} else {
		m.status = "Task updated successfully"
	}
	return m.load()
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "n", "N", "esc":
		m.del.Reset()
		m.status = "Delete cancelled"
		return m, nil
	case "y", "Y":
		m.del.Confirm()
		id, err := m.del.Submit()
		if err != nil {
			m.status = "Nothing to delete"
			return m, nil
		}
		m.deleting = true
		m.status = "Deleting..."
		return m, m.deleteCmd(id)
	default:
		return m, nil
	}
}

func (m Model) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	m.deleting = false
	if msg.err != nil {
		logger.L().WithField("id", msg.id).WithError(msg.err).Warn("delete task failed")
		m.status = "Failed to delete task. Please try again."
		return m, nil
	}
	m.gw.Invalidate()
	m.status = "Task deleted successfully"
	return m.load()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if err := m.q.Err(); err != nil {
		b.WriteString(m.theme.banner.Render("Failed to load tasks: " + apperrors.Detail(err)))
		b.WriteString(m.theme.muted.Render(fmt.Sprintf("  press '%s' to retry", m.cfg.Keys.Refresh)))
		b.WriteString("\n\n")
	}
	if data, ok := m.q.Data(); ok && data.Truncated {
		b.WriteString(m.theme.warning.Render(fmt.Sprintf("Showing the first %d of %d tasks", len(data.Tasks), data.Count)))
		b.WriteString("\n\n")
	}

	switch m.mode {
	case modeSettings:
		b.WriteString(m.renderSettings())
	case modeCalendar:
		b.WriteString(m.renderCalendar())
	case modeForm:
		if m.prevMode == modeCalendar {
			b.WriteString(m.renderCalendar())
		} else {
			b.WriteString(m.renderList())
		}
		b.WriteString("\n")
		b.WriteString(m.renderForm())
	default:
		b.WriteString(m.renderList())
		b.WriteString("\n")
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.status.Render(m.status))
	b.WriteString("\n")
	if m.mode == modeList || m.mode == modeCalendar {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	title := "Tasks"
	if m.mode == modeCalendar || (m.mode == modeForm && m.prevMode == modeCalendar) {
		title = "Calendar"
	}
	if m.mode == modeSettings {
		title = "Settings"
	}
	filters := fmt.Sprintf("Status: %s  Priority: %s",
		task.StatusLabel(string(m.state.Status)), task.PriorityLabel(string(m.state.Priority)))
	line := m.theme.title.Render(title) + "  " + m.theme.muted.Render(filters)
	if m.q.Loading() {
		line += "  " + m.spinner.View()
	}
	return line
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
