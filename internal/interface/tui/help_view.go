package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = chatView
	}
	return m, nil
}

func (m Model) viewHelp() string {
	help := `
NEXUS - Help
════════════

EVERYWHERE
──────────
  ctrl+k       Command palette
  tab          Next view
  shift+tab    Previous view
  ctrl+c       Quit

CHAT
────
  Enter        Send message
  ctrl+n       New session
  ctrl+y       Copy last response
  ↑/↓          Scroll transcript
  esc          Notifications

BOARD
─────
  h/l          Move between lanes
  j/k          Move between cards
  H/L          Move task to adjacent lane
  [/]          Switch project
  n            New task
  N            New project
  x            Delete task
  X            Delete project (retype its name)
  r            Refresh

SESSIONS
────────
  Enter        Resume session
  x            Delete session

NOTIFICATIONS
─────────────
  x            Dismiss
  a            Mark all read

Press esc to go back
`
	return helpStyle.Render(help)
}
