package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/utsavm/nexus/internal/core/models"
)

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.laneIdx > 0 {
			m.laneIdx--
			m.clampBoardCursor()
		}
		return m, nil

	case "right", "l":
		if m.laneIdx < len(models.TaskStatuses)-1 {
			m.laneIdx++
			m.clampBoardCursor()
		}
		return m, nil

	case "up", "k":
		if m.cardIdx > 0 {
			m.cardIdx--
		}
		return m, nil

	case "down", "j":
		m.cardIdx++
		m.clampBoardCursor()
		return m, nil

	case "H", "L":
		// Move the selected task one lane over. The store applies the
		// change optimistically and reverts it if the backend refuses.
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		target := m.laneIdx - 1
		if msg.String() == "L" {
			target = m.laneIdx + 1
		}
		if target < 0 || target >= len(models.TaskStatuses) {
			return m, nil
		}
		m.laneIdx = target
		return m, changeStatus(m.app.Store, task.ID, models.TaskStatuses[target])

	case "[", "]":
		return m.cycleProject(msg.String() == "]")

	case "n":
		return m.openInput(inputNewTask, "Task title"), nil

	case "N":
		return m.openInput(inputNewProject, "Project name"), nil

	case "x":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, deleteTask(m.app.Store, task.ID)

	case "X":
		if _, ok := m.app.Store.Board.ActiveProject(); !ok {
			return m, nil
		}
		return m.openInput(inputConfirmDelete, "Type the project name to confirm deletion"), nil

	case "r":
		return m, loadBoard(m.app.Store)
	}

	return m, nil
}

func (m Model) cycleProject(forward bool) (tea.Model, tea.Cmd) {
	projects := m.app.Store.Board.Projects()
	if len(projects) < 2 {
		return m, nil
	}
	active := m.app.Store.Board.ActiveProjectID()
	idx := 0
	for i, p := range projects {
		if p.ID == active {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(projects)
	} else {
		idx = (idx - 1 + len(projects)) % len(projects)
	}
	m.cardIdx = 0
	return m, selectProject(m.app.Store, projects[idx].ID)
}

func (m *Model) selectedTask() (models.Task, bool) {
	lane := m.app.Store.Board.TasksByStatus(models.TaskStatuses[m.laneIdx])
	if m.cardIdx >= len(lane) {
		return models.Task{}, false
	}
	return lane[m.cardIdx], true
}

func (m *Model) clampBoardCursor() {
	lane := m.app.Store.Board.TasksByStatus(models.TaskStatuses[m.laneIdx])
	if m.cardIdx >= len(lane) {
		m.cardIdx = len(lane) - 1
	}
	if m.cardIdx < 0 {
		m.cardIdx = 0
	}
}

func laneTitle(status models.TaskStatus) string {
	switch status {
	case models.StatusTodo:
		return "To Do"
	case models.StatusInProgress:
		return "In Progress"
	case models.StatusBlocked:
		return "Blocked"
	case models.StatusDone:
		return "Done"
	}
	return string(status)
}

func (m Model) viewBoard() string {
	var b strings.Builder

	project, ok := m.app.Store.Board.ActiveProject()
	if !ok {
		b.WriteString(titleStyle.Render("Task Board") + "\n\n")
		b.WriteString(helpStyle.Render("No projects yet. Press N to create one.\n"))
		return b.String()
	}

	b.WriteString(titleStyle.Render("Task Board") + "  " + project.Name)
	if n := len(m.app.Store.Board.Projects()); n > 1 {
		b.WriteString(statusBarStyle.Render(fmt.Sprintf("  (%d projects, [/] to switch)", n)))
	}
	b.WriteString("\n\n")

	laneWidth := 28
	if m.width > 0 {
		laneWidth = max(m.width/len(models.TaskStatuses)-3, 16)
	}

	lanes := make([]string, 0, len(models.TaskStatuses))
	for li, status := range models.TaskStatuses {
		tasks := m.app.Store.Board.TasksByStatus(status)

		var lane strings.Builder
		lane.WriteString(laneHeaderStyle.Render(fmt.Sprintf("%s (%d)", laneTitle(status), len(tasks))))
		lane.WriteString("\n")
		for ti, task := range tasks {
			line := task.Title
			if len(line) > laneWidth-4 {
				line = line[:laneWidth-7] + "..."
			}
			marker := priorityStyles[task.Priority].Render("*")
			if li == m.laneIdx && ti == m.cardIdx {
				lane.WriteString(selectedCardStyle.Render("> " + line))
			} else {
				lane.WriteString(cardStyle.Render(marker + " " + line))
			}
			lane.WriteString("\n")
		}
		if len(tasks) == 0 {
			lane.WriteString(helpStyle.Render("  empty\n"))
		}
		lanes = append(lanes, laneStyle.Width(laneWidth).Render(lane.String()))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lanes...))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("h/l lanes  j/k cards  H/L move task  n new task  x delete  N new project  X delete project  r refresh"))
	return b.String()
}
