package models

import "time"

// NotificationLevel categorizes a notification for display
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
	LevelAgent   NotificationLevel = "agent"
)

// NotificationAction is an optional follow-up the user can trigger from a
// notification (e.g. "View" jumping to the relevant view).
type NotificationAction struct {
	Label   string
	Trigger func()
}

// Notification is a system event surfaced to the user. Read state is
// monotonic: it flips false to true and never back.
type Notification struct {
	ID        string
	Level     NotificationLevel
	Title     string
	Body      string
	Agent     Agent
	CreatedAt time.Time
	Read      bool
	Action    *NotificationAction
}
