package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// overlayToasts stacks active toasts under the current view. The queue
// owns toast lifetimes; this only renders whatever projection it
// returns on this frame.
func (m Model) overlayToasts(body string) string {
	toasts := m.app.Store.Notifications.Toasts()
	if len(toasts) == 0 {
		return body
	}

	var rendered []string
	for _, t := range toasts {
		line := levelStyles[t.Level].Render(t.Title)
		if t.Body != "" {
			line += "\n" + t.Body
		}
		if t.Exiting {
			rendered = append(rendered, toastExitingStyle.Render(line))
		} else {
			rendered = append(rendered, toastStyle.Render(line))
		}
	}

	stack := strings.Join(rendered, "\n")
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Right, stack)
}
