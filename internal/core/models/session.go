package models

import (
	"errors"
	"time"
)

// Session is a conversation thread. The backend issues the SessionID on
// the first chat exchange; the client never invents one.
type Session struct {
	SessionID  string
	AgentName  string
	Messages   []Message
	CreatedAt  time.Time
	LastActive time.Time
}

// Validate checks if the session has required fields
func (s *Session) Validate() error {
	if s.SessionID == "" {
		return errors.New("session_id is required")
	}
	return nil
}

// MessageCount returns the number of messages in the session
func (s *Session) MessageCount() int {
	return len(s.Messages)
}
