package store

import (
	"os/exec"
	"runtime"
)

// DesktopNotifier delivers native notifications by shelling out to
// whatever the platform provides. Delivery is best-effort: a missing
// tool or failed command is silently ignored.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(title, body string) {
	switch runtime.GOOS {
	case "darwin":
		script := "display notification " + appleQuote(body) + " with title " + appleQuote(title)
		_ = exec.Command("osascript", "-e", script).Start()
	default:
		if _, err := exec.LookPath("notify-send"); err != nil {
			return
		}
		_ = exec.Command("notify-send", title, body).Start()
	}
}

func appleQuote(s string) string {
	quoted := make([]rune, 0, len(s)+2)
	quoted = append(quoted, '"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			quoted = append(quoted, '\\')
		}
		quoted = append(quoted, r)
	}
	return string(append(quoted, '"'))
}
