package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

func (m Model) updateSessions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.sessionIdx > 0 {
			m.sessionIdx--
		}
		return m, nil

	case "down", "j":
		if m.sessionIdx < len(m.sessions)-1 {
			m.sessionIdx++
		}
		return m, nil

	case "enter":
		if m.sessionIdx < len(m.sessions) {
			return m, adoptSession(m.app.Store, m.app.Client, m.sessions[m.sessionIdx].SessionID)
		}
		return m, nil

	case "x":
		if m.sessionIdx < len(m.sessions) {
			id := m.sessions[m.sessionIdx].SessionID
			if m.sessionIdx > 0 {
				m.sessionIdx--
			}
			return m, deleteSession(m.app.Client, id)
		}
		return m, nil

	case "r":
		return m, loadSessions(m.app.Client)

	case "esc":
		m.mode = chatView
		return m, nil
	}

	return m, nil
}

func (m Model) viewSessions() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sessions") + "\n\n")

	if len(m.sessions) == 0 {
		b.WriteString(helpStyle.Render("No past sessions on the server.\n"))
		return b.String()
	}

	for i, s := range m.sessions {
		line := fmt.Sprintf("%s  %s  %s",
			shortID(s.SessionID),
			s.AgentName,
			plural(len(s.Messages), "message"))
		if !s.LastActive.IsZero() {
			line += "  " + timestampStyle.Render(humanize.Time(s.LastActive))
		}
		if i == m.sessionIdx {
			b.WriteString(paletteSelectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("enter resume  x delete  r refresh  esc back"))
	return b.String()
}
