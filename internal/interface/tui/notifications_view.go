package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

func (m Model) updateNotifications(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.app.Store.Notifications.Items()

	switch msg.String() {
	case "up", "k":
		if m.notifIdx > 0 {
			m.notifIdx--
		}
		return m, nil

	case "down", "j":
		if m.notifIdx < len(items)-1 {
			m.notifIdx++
		}
		return m, nil

	case "enter":
		if m.notifIdx < len(items) {
			n := items[m.notifIdx]
			if n.Action != nil && n.Action.Trigger != nil {
				n.Action.Trigger()
			}
		}
		return m, nil

	case "x":
		if m.notifIdx < len(items) {
			m.app.Store.Notifications.Dismiss(items[m.notifIdx].ID)
			if m.notifIdx > 0 {
				m.notifIdx--
			}
		}
		return m, nil

	case "a":
		m.app.Store.Notifications.MarkAllRead()
		return m, nil

	case "esc":
		m.mode = chatView
		return m, nil
	}

	return m, nil
}

func (m Model) viewNotifications() string {
	items := m.app.Store.Notifications.Items()

	var b strings.Builder
	header := "Notifications"
	if unread := m.app.Store.Notifications.Unread(); unread > 0 {
		header = fmt.Sprintf("Notifications (%d unread)", unread)
	}
	b.WriteString(titleStyle.Render(header) + "\n\n")

	if len(items) == 0 {
		b.WriteString(helpStyle.Render("All quiet.\n"))
		return b.String()
	}

	for i, n := range items {
		marker := " "
		if !n.Read {
			marker = levelStyles[n.Level].Render("*")
		}
		line := fmt.Sprintf("%s %s  %s",
			marker,
			levelStyles[n.Level].Render(n.Title),
			timestampStyle.Render(humanize.Time(n.CreatedAt)))
		if i == m.notifIdx {
			b.WriteString(paletteSelectedStyle.Render(">") + line + "\n")
		} else {
			b.WriteString(" " + line + "\n")
		}
		if n.Body != "" {
			b.WriteString("    " + n.Body + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("x dismiss  a mark all read  enter act  esc back"))
	return b.String()
}
