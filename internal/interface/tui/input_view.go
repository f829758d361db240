package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/utsavm/nexus/internal/core/commands"
)

func (m Model) openInput(mode inputMode, placeholder string) Model {
	m.input = mode
	m.inputStage = 0
	m.inputFirst = ""
	m.inputErr = ""
	m.inputField = newField(placeholder)
	return m
}

func newField(placeholder string) textinput.Model {
	f := textinput.New()
	f.Placeholder = placeholder
	f.Focus()
	return f
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = inputNone
		return m, nil

	case "enter":
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.inputField, cmd = m.inputField.Update(msg)
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.inputField.Value()

	switch m.input {
	case inputNewTask:
		if m.inputStage == 0 {
			if strings.TrimSpace(value) == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			m.inputFirst = value
			m.inputStage = 1
			m.inputErr = ""
			m.inputField = newField("Description (optional)")
			return m, nil
		}
		m.input = inputNone
		return m, createTask(m.app.Store, m.inputFirst, value)

	case inputNewProject:
		if strings.TrimSpace(value) == "" {
			m.inputErr = "Name cannot be empty"
			return m, nil
		}
		m.input = inputNone
		return m, createProject(m.app.Store, value)

	case inputConfirmDelete:
		project, ok := m.app.Store.Board.ActiveProject()
		if !ok {
			m.input = inputNone
			return m, nil
		}
		// The typed name must match exactly, whitespace included. The
		// store enforces this too; checking here gives inline feedback
		// instead of a notification.
		if value != project.Name {
			m.inputErr = "Name does not match, nothing deleted"
			return m, nil
		}
		m.input = inputNone
		m.cardIdx = 0
		return m, deleteProject(m.app.Store, project.ID, value)

	case inputReminder:
		at, text, err := commands.ParseReminder(value, time.Now())
		if err != nil {
			m.inputErr = "Could not find a time in that, try \"in 20 minutes stand up\""
			return m, nil
		}
		m.app.Scheduler.Schedule(at, text)
		m.input = inputNone
		return m, nil
	}

	m.input = inputNone
	return m, nil
}

func (m Model) overlayInput(body string) string {
	var title string
	switch m.input {
	case inputNewTask:
		title = "New Task"
		if m.inputStage == 1 {
			title = "New Task: " + m.inputFirst
		}
	case inputNewProject:
		title = "New Project"
	case inputConfirmDelete:
		if project, ok := m.app.Store.Board.ActiveProject(); ok {
			title = "Delete project " + project.Name + "?"
		}
	case inputReminder:
		title = "Remind me..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(m.inputField.View() + "\n")
	if m.inputErr != "" {
		b.WriteString(errorStyle.Render(m.inputErr) + "\n")
	}
	b.WriteString(helpStyle.Render("enter confirm  esc cancel"))

	box := paletteStyle.Render(b.String())
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}
