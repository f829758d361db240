package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/utsavm/nexus/internal/core/models"
	"github.com/utsavm/nexus/internal/core/store"
)

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.composer.Value())
		if text == "" || m.app.Store.Chat.Busy() {
			return m, nil
		}
		m.composer.Reset()
		taskType := m.taskType
		m.taskType = ""
		m.syncTranscript()
		return m, sendChat(m.app.Store, text, taskType)

	case "ctrl+n":
		m.app.Store.Chat.Clear()
		m.taskType = ""
		m.syncTranscript()
		return m, nil

	case "ctrl+y":
		m.copyLastResponse()
		return m, nil

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case "esc":
		m.mode = notificationsView
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

// copyLastResponse puts the newest assistant message on the clipboard
func (m *Model) copyLastResponse() {
	messages := m.app.Store.Chat.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleAssistant && !messages[i].Streaming {
			if err := clipboard.WriteAll(messages[i].Content); err == nil {
				m.app.Store.Notifications.Push(models.Notification{
					Level: models.LevelSuccess,
					Title: "Copied",
					Body:  "Response copied to clipboard",
				})
			}
			return
		}
	}
}

func (m *Model) syncTranscript() {
	if m.transcript.Width == 0 {
		return
	}
	m.transcript.SetContent(m.renderTranscript())
}

func (m Model) renderTranscript() string {
	messages := m.app.Store.Chat.Messages()
	if len(messages) == 0 {
		return helpStyle.Render("\n  Start a conversation. NEXUS routes your message to the right agent.\n")
	}

	var b strings.Builder
	for _, msg := range messages {
		switch {
		case msg.Role == models.RoleUser:
			b.WriteString(userStyle.Render("You"))
		case msg.Streaming:
			b.WriteString(streamingStyle.Render("..."))
		default:
			style, ok := agentStyles[msg.Agent]
			if !ok {
				style = agentStyles[models.AgentNexus]
			}
			b.WriteString(style.Render(strings.ToUpper(string(msg.Agent))))
		}
		if !msg.CreatedAt.IsZero() {
			b.WriteString(timestampStyle.Render("  " + msg.CreatedAt.Format("15:04")))
		}
		b.WriteString("\n")
		if msg.Streaming {
			b.WriteString(streamingStyle.Render(m.spin.View() + "thinking"))
		} else {
			b.WriteString(msg.Content)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) viewChat() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("NEXUS"))
	if id := m.app.Store.Chat.SessionID(); id != "" {
		b.WriteString(timestampStyle.Render("  session " + shortID(id)))
	}
	if agent := m.app.Store.Chat.LastAgent(); agent != "" {
		style, ok := agentStyles[agent]
		if ok {
			b.WriteString("  " + style.Render(strings.ToUpper(string(agent))))
		}
	}
	if m.taskType != "" {
		b.WriteString(timestampStyle.Render("  [" + m.taskType + "]"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.transcript.View())
	b.WriteString("\n")

	if !m.app.Monitor.BackendOnline() {
		b.WriteString(offlineStyle.Render(store.OfflineNotice) + "\n")
	}
	b.WriteString(m.composer.View())
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
