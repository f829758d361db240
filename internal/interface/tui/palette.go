package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/utsavm/nexus/internal/core/commands"
)

// registry rebuilds the palette commands against the current store
// state. Command closures write their effect into m.action; Update
// applies it after Run returns.
func (m *Model) registry() *commands.Registry {
	activeProject := ""
	if p, ok := m.app.Store.Board.ActiveProject(); ok {
		activeProject = p.Name
	}
	action := m.action
	return commands.Build(commands.Bindings{
		Navigate:   func(view string) { action.navigate = view },
		NewSession: func() { action.newSession = true },
		Compose: func(prompt, taskType string) {
			action.prompt = prompt
			action.taskType = taskType
			action.composed = true
		},
		Remind: func() { action.remind = true },
	}, activeProject)
}

func (m Model) openPalette() (tea.Model, tea.Cmd) {
	m.paletteOpen = true
	m.paletteIdx = 0
	m.paletteInput = newField("Type a command...")
	return m, nil
}

func (m Model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+k":
		m.paletteOpen = false
		return m, nil

	case "up", "ctrl+p":
		if m.paletteIdx > 0 {
			m.paletteIdx--
		}
		return m, nil

	case "down", "ctrl+n":
		filtered := m.registry().Filter(m.paletteInput.Value())
		if m.paletteIdx < len(filtered)-1 {
			m.paletteIdx++
		}
		return m, nil

	case "enter":
		filtered := m.registry().Filter(m.paletteInput.Value())
		if len(filtered) == 0 {
			return m, nil
		}
		idx := m.paletteIdx
		if idx >= len(filtered) {
			idx = 0
		}
		m.paletteOpen = false
		return m.runCommand(filtered[idx])
	}

	var cmd tea.Cmd
	prev := m.paletteInput.Value()
	m.paletteInput, cmd = m.paletteInput.Update(msg)
	if m.paletteInput.Value() != prev {
		m.paletteIdx = 0
	}
	return m, cmd
}

func (m Model) runCommand(cmd commands.Command) (tea.Model, tea.Cmd) {
	*m.action = pendingAction{}
	if cmd.Run != nil {
		cmd.Run()
	}
	act := *m.action

	var teaCmd tea.Cmd
	if act.navigate != "" {
		switch act.navigate {
		case "chat":
			m.mode = chatView
		case "board":
			m.mode = boardView
			teaCmd = loadBoard(m.app.Store)
		case "sessions":
			m.mode = sessionsView
			teaCmd = loadSessions(m.app.Client)
		case "notifications":
			m.mode = notificationsView
		case "settings":
			m.mode = settingsView
		}
	}
	if act.newSession {
		m.app.Store.Chat.Clear()
		m.taskType = ""
		m.mode = chatView
		m.syncTranscript()
	}
	if act.composed {
		m.mode = chatView
		m.composer.SetValue(act.prompt)
		m.composer.CursorEnd()
		m.taskType = act.taskType
	}
	if act.remind {
		m = m.openInput(inputReminder, "in 20 minutes stand up")
	}
	return m, teaCmd
}

func (m Model) overlayPalette(body string) string {
	var b strings.Builder
	b.WriteString(m.paletteInput.View() + "\n\n")

	filtered := m.registry().Filter(m.paletteInput.Value())
	if len(filtered) == 0 {
		b.WriteString(helpStyle.Render("No matching commands"))
	}

	// Flat selection index walks the grouped rendering in order
	flat := 0
	for _, group := range commands.GroupByCategory(filtered) {
		b.WriteString(paletteCategoryStyle.Render(string(group.Category)) + "\n")
		for _, cmd := range group.Commands {
			if flat == m.paletteIdx {
				b.WriteString(paletteSelectedStyle.Render("> "+cmd.Label) + "\n")
			} else {
				b.WriteString("  " + cmd.Label + "\n")
			}
			flat++
		}
	}

	box := paletteStyle.Width(max(m.width/2, 40)).Render(b.String())
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}
