package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.mode = chatView
	}
	return m, nil
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n\n")

	b.WriteString(fmt.Sprintf("  Version:   %s\n", m.app.Version))

	backend := offlineStyle.Render("unreachable")
	if m.app.Monitor.BackendOnline() {
		backend = onlineStyle.Render("connected")
	}
	b.WriteString("  Backend:   " + backend + "\n")

	runtime := offlineStyle.Render("disconnected")
	if m.app.Monitor.ModelOnline() {
		runtime = onlineStyle.Render("connected")
	}
	b.WriteString("  Ollama:    " + runtime + "\n")

	if m.app.Poller == nil {
		b.WriteString("  Telegram:  " + helpStyle.Render("not configured") + "\n")
	} else {
		tg := offlineStyle.Render("disconnected")
		if m.app.Poller.Connected() {
			tg = onlineStyle.Render("connected")
		}
		b.WriteString("  Telegram:  " + tg + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("Settings live in ~/.config/nexus/config.toml\nesc back"))
	return b.String()
}
