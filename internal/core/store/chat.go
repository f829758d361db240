package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/utsavm/nexus/internal/core/api"
	"github.com/utsavm/nexus/internal/core/models"
)

// OfflineNotice replaces a pending reply when the backend is unreachable.
// The failure path never surfaces an error to the view.
const OfflineNotice = "NEXUS backend is unreachable. Check that the server is running and try again."

// ChatAPI is the slice of the backend the chat store needs
type ChatAPI interface {
	Chat(ctx context.Context, message, sessionID, taskType string) (*api.ChatResult, error)
}

// ChatStore holds the active conversation: the ordered message list, the
// backend-issued session id, and the busy flag gating the composer.
type ChatStore struct {
	mu  sync.Mutex
	api ChatAPI
	log *zap.Logger
	now func() time.Time

	sessionID string
	messages  []models.Message
	busy      bool
	lastAgent models.Agent
}

// NewChatStore creates an empty conversation
func NewChatStore(chatAPI ChatAPI, log *zap.Logger) *ChatStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatStore{api: chatAPI, log: log, now: time.Now}
}

// SetClock overrides the store's time source (tests only)
func (s *ChatStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Send appends the user message and a streaming placeholder, then
// resolves the placeholder in place once the backend answers. The
// placeholder is found by its id, never by list position, so a late
// response resolves the right message even if another send landed in
// between. On failure the placeholder becomes the offline notice; Send
// never propagates the error. The busy flag is always cleared.
func (s *ChatStore) Send(ctx context.Context, text, taskType string) models.Message {
	s.mu.Lock()
	now := s.now()
	user := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   text,
		CreatedAt: now,
	}
	placeholder := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		CreatedAt: now,
		Streaming: true,
	}
	s.messages = append(s.messages, user, placeholder)
	s.busy = true
	sessionID := s.sessionID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	result, err := s.api.Chat(ctx, text, sessionID, taskType)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexByIDLocked(placeholder.ID)
	if idx < 0 {
		// Conversation was cleared while the request was in flight
		return models.Message{}
	}

	if err != nil {
		s.log.Warn("chat send failed", zap.Error(err))
		s.messages[idx].Content = OfflineNotice
		s.messages[idx].Streaming = false
		return s.messages[idx]
	}

	if s.sessionID == "" {
		s.sessionID = result.SessionID
	}
	s.messages[idx].Content = result.Response
	s.messages[idx].Agent = result.Agent
	s.messages[idx].Streaming = false
	s.lastAgent = result.Agent
	return s.messages[idx]
}

func (s *ChatStore) indexByIDLocked(id string) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

// Clear starts a fresh conversation. Server-side history is untouched.
func (s *ChatStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.sessionID = ""
	s.lastAgent = ""
}

// Adopt replaces the conversation with a session loaded from the backend
func (s *ChatStore) Adopt(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = session.SessionID
	s.messages = make([]models.Message, len(session.Messages))
	copy(s.messages, session.Messages)
	for i := range s.messages {
		if s.messages[i].ID == "" {
			s.messages[i].ID = uuid.NewString()
		}
	}
}

// Messages returns a snapshot of the conversation in append order
func (s *ChatStore) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SessionID returns the backend-issued session id, or "" before the
// first successful exchange
func (s *ChatStore) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Busy reports whether a send is in flight
func (s *ChatStore) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// LastAgent returns the persona that produced the latest reply
func (s *ChatStore) LastAgent() models.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAgent
}
