package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "taskpanel/internal/errors"
	"taskpanel/internal/form"
	"taskpanel/internal/task"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldStatus
	fieldPriority
	fieldCount
)

func fieldLabels() []string {
	return []string{"Title", "Description", "Due date (YYYY-MM-DD)", "Status", "Priority"}
}

// editorState holds the raw values of the create or edit dialog. One field
// is active at a time.
type editorState struct {
	editing bool
	orig    task.Task
	values  [fieldCount]string
	index   int
}

func (e *editorState) isChoice() bool {
	return e.index == fieldStatus || e.index == fieldPriority
}

func (m Model) openCreate() (tea.Model, tea.Cmd) {
	if err := m.dialog.Open(); err != nil {
		return m, nil
	}
	m.editor = &editorState{}
	m.editor.values[fieldStatus] = string(task.DefaultStatus)
	m.editor.values[fieldPriority] = string(task.DefaultPriority)
	return m.enterForm("Add task: tab to move, enter to advance, esc to cancel")
}

func (m Model) openEdit(t task.Task) (tea.Model, tea.Cmd) {
	if err := m.dialog.Open(); err != nil {
		return m, nil
	}
	f := form.NewEditForm(t)
	m.editor = &editorState{editing: true, orig: t}
	m.editor.values = [fieldCount]string{f.Title, f.Description, f.DueDate, f.Status, f.Priority}
	return m.enterForm(fmt.Sprintf("Editing \"%s\": tab to move, enter to advance, esc to cancel", t.Title))
}

func (m Model) enterForm(status string) (tea.Model, tea.Cmd) {
	if m.mode != modeForm {
		m.prevMode = m.mode
	}
	m.mode = modeForm
	m.status = status
	cmd := m.loadField()
	return m, cmd
}

func (m *Model) closeForm() {
	m.editor = nil
	m.mode = m.prevMode
	m.input.Blur()
	m.area.Blur()
}

// loadField moves the active field's value into its widget.
func (m *Model) loadField() tea.Cmd {
	m.input.Blur()
	m.area.Blur()
	switch m.editor.index {
	case fieldDescription:
		m.area.SetValue(m.editor.values[fieldDescription])
		return m.area.Focus()
	case fieldTitle, fieldDue:
		m.input.SetValue(m.editor.values[m.editor.index])
		m.input.Placeholder = fieldLabels()[m.editor.index]
		m.input.CursorEnd()
		return m.input.Focus()
	}
	return nil
}

func (m *Model) storeField() {
	switch m.editor.index {
	case fieldDescription:
		m.editor.values[fieldDescription] = m.area.Value()
	case fieldTitle, fieldDue:
		m.editor.values[m.editor.index] = m.input.Value()
	}
}

func (m Model) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editor == nil {
		m.mode = modeList
		return m, nil
	}
	if m.dialog.Submitting() {
		m.status = "Saving..."
		return m, nil
	}

	switch msg.String() {
	case m.cfg.Keys.Cancel, "esc":
		if err := m.dialog.Cancel(); err != nil {
			return m, nil
		}
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		return m.moveField(1)
	case "shift+tab", "up":
		return m.moveField(-1)
	case "ctrl+s":
		m.storeField()
		return m.submitForm()
	case m.cfg.Keys.Confirm, "enter":
		m.storeField()
		if m.editor.index >= fieldCount-1 {
			return m.submitForm()
		}
		return m.moveField(1)
	}

	if m.editor.isChoice() {
		switch msg.String() {
		case "left", "h", "shift+left":
			m.cycleChoice(-1)
		case "right", "l", " ", "space":
			m.cycleChoice(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.editor.index == fieldDescription {
		m.area, cmd = m.area.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) moveField(delta int) (tea.Model, tea.Cmd) {
	m.storeField()
	m.editor.index = wrapIndex(m.editor.index+delta, fieldCount)
	cmd := m.loadField()
	return m, cmd
}

func (m *Model) cycleChoice(delta int) {
	i := m.editor.index
	var opts []string
	if i == fieldStatus {
		for _, s := range task.Statuses {
			opts = append(opts, string(s))
		}
	} else {
		for _, p := range task.Priorities {
			opts = append(opts, string(p))
		}
	}
	cur := 0
	for j, o := range opts {
		if o == m.editor.values[i] {
			cur = j
		}
	}
	m.editor.values[i] = opts[wrapIndex(cur+delta, len(opts))]
}

// submitForm validates the dialog and sends the request. Validation errors
// keep the dialog open with its values.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	v := m.editor.values
	if m.editor.editing {
		f := form.NewEditForm(m.editor.orig)
		f.Title, f.Description, f.DueDate, f.Status, f.Priority = v[fieldTitle], v[fieldDescription], v[fieldDue], v[fieldStatus], v[fieldPriority]
		in, err := f.Validate(m.now())
		if err != nil {
			m.status = apperrors.Detail(err)
			return m, nil
		}
		if err := m.dialog.Submit(); err != nil {
			return m, nil
		}
		m.status = "Saving..."
		return m, m.updateCmd(mutationUpdate, m.editor.orig.ID, in)
	}

	f := form.CreateForm{
		Title:       v[fieldTitle],
		Description: v[fieldDescription],
		DueDate:     v[fieldDue],
		Status:      v[fieldStatus],
		Priority:    v[fieldPriority],
	}
	in, err := f.Validate()
	if err != nil {
		m.status = apperrors.Detail(err)
		return m, nil
	}
	if err := m.dialog.Submit(); err != nil {
		return m, nil
	}
	m.status = "Saving..."
	return m, m.createCmd(in)
}

func (m Model) renderForm() string {
	if m.editor == nil {
		return ""
	}
	title := "New task"
	if m.editor.editing {
		title = "Edit task"
	}
	var b strings.Builder
	b.WriteString(m.theme.title.Render(title))
	b.WriteString("\n\n")
	for i, name := range fieldLabels() {
		prefix := " "
		if i == m.editor.index {
			prefix = ">"
		}
		var val string
		switch {
		case i == m.editor.index && i == fieldDescription:
			val = "\n" + m.area.View()
		case i == m.editor.index && (i == fieldTitle || i == fieldDue):
			val = m.input.View()
		case i == fieldStatus:
			val = "< " + m.theme.statusBadge(task.Status(m.editor.values[i])) + " >"
		case i == fieldPriority:
			val = "< " + m.theme.priorityBadge(task.Priority(m.editor.values[i])) + " >"
		default:
			val = m.editor.values[i]
			if strings.TrimSpace(val) == "" {
				val = m.theme.muted.Render("(empty)")
			}
		}
		b.WriteString(fmt.Sprintf("%s %-22s : %s\n", prefix, name, val))
	}
	if m.dialog.Submitting() {
		b.WriteString("\n" + m.spinner.View() + " Saving...")
	} else if err := m.dialog.Err(); err != nil {
		b.WriteString("\n" + m.theme.warning.Render(apperrors.Detail(err)))
	}
	return m.theme.pane.Render(b.String())
}
