package api

import (
	"context"
	"time"

	"github.com/utsavm/nexus/internal/core/models"
)

type sessionPayload struct {
	ID         string           `json:"id"`
	AltID      string           `json:"_id"`
	SessionID  string           `json:"session_id"`
	AgentName  string           `json:"agent_name"`
	Messages   []messagePayload `json:"messages"`
	CreatedAt  string           `json:"created_at"`
	LastActive string           `json:"last_active"`
}

type messagePayload struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Agent     string `json:"agent"`
	Timestamp string `json:"timestamp"`
}

func (s sessionPayload) normalize() models.Session {
	session := models.Session{
		SessionID:  s.SessionID,
		AgentName:  s.AgentName,
		CreatedAt:  parseTime(s.CreatedAt),
		LastActive: parseTime(s.LastActive),
	}
	if session.SessionID == "" {
		// Older sessions predate the session_id column
		session.SessionID = s.ID
		if session.SessionID == "" {
			session.SessionID = s.AltID
		}
	}
	for _, m := range s.Messages {
		session.Messages = append(session.Messages, models.Message{
			Role:      models.Role(m.Role),
			Content:   m.Content,
			Agent:     models.Agent(m.Agent),
			CreatedAt: parseTime(m.Timestamp),
		})
	}
	return session
}

func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ListSessions returns all conversation threads, most recent first
func (c *Client) ListSessions(ctx context.Context) ([]models.Session, error) {
	var payload []sessionPayload
	if err := c.get(ctx, "/sessions", &payload); err != nil {
		return nil, err
	}
	sessions := make([]models.Session, 0, len(payload))
	for _, s := range payload {
		sessions = append(sessions, s.normalize())
	}
	return sessions, nil
}

// GetSession returns one thread with its full message history
func (c *Client) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var payload sessionPayload
	if err := c.get(ctx, "/sessions/"+escape(sessionID), &payload); err != nil {
		return nil, err
	}
	session := payload.normalize()
	return &session, nil
}

// DeleteSession removes a thread server-side. The client never deletes
// sessions on its own; this is always an explicit user action.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.delete(ctx, "/sessions/"+escape(sessionID))
}
