package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/utsavm/nexus/internal/core/api"
	"github.com/utsavm/nexus/internal/core/models"
)

type fakeChatAPI struct {
	mu      sync.Mutex
	results []*api.ChatResult
	errs    []error
	calls   int
	block   chan struct{} // if non-nil, Chat waits until closed
}

func (f *fakeChatAPI) Chat(ctx context.Context, message, sessionID, taskType string) (*api.ChatResult, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return &api.ChatResult{Response: "ok", Agent: models.AgentNexus, SessionID: "sess-default"}, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition never met")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSendSuccess(t *testing.T) {
	fake := &fakeChatAPI{results: []*api.ChatResult{
		{Response: "hello back", Agent: models.AgentAtlas, SessionID: "sess-1"},
	}}
	s := NewChatStore(fake, nil)

	reply := s.Send(context.Background(), "hello", "general")

	if reply.Content != "hello back" {
		t.Errorf("reply.Content = %q", reply.Content)
	}
	if reply.Streaming {
		t.Error("reply still streaming")
	}

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("messages[0] = %+v", msgs[0])
	}
	if msgs[1].Role != models.RoleAssistant || msgs[1].Agent != models.AgentAtlas {
		t.Errorf("messages[1] = %+v", msgs[1])
	}
	if s.SessionID() != "sess-1" {
		t.Errorf("SessionID() = %q, want adopted sess-1", s.SessionID())
	}
	if s.Busy() {
		t.Error("Busy() = true after send resolved")
	}
}

func TestSendFailureLeavesOfflineNotice(t *testing.T) {
	fake := &fakeChatAPI{errs: []error{errors.New("connection refused")}}
	s := NewChatStore(fake, nil)

	s.Send(context.Background(), "hello", "")

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want 2 (user + assistant) on failure", len(msgs))
	}
	assistant := msgs[1]
	if assistant.Role != models.RoleAssistant {
		t.Fatalf("messages[1].Role = %q", assistant.Role)
	}
	if assistant.Streaming {
		t.Error("failed placeholder still streaming")
	}
	if assistant.Content != OfflineNotice {
		t.Errorf("Content = %q, want offline notice", assistant.Content)
	}
	if s.Busy() {
		t.Error("Busy() = true after failed send")
	}
	if s.SessionID() != "" {
		t.Errorf("SessionID() = %q, must stay empty on failure", s.SessionID())
	}
}

func TestSendKeepsExistingSessionID(t *testing.T) {
	fake := &fakeChatAPI{results: []*api.ChatResult{
		{Response: "first", Agent: models.AgentNexus, SessionID: "sess-1"},
		{Response: "second", Agent: models.AgentNexus, SessionID: "sess-other"},
	}}
	s := NewChatStore(fake, nil)

	s.Send(context.Background(), "one", "")
	s.Send(context.Background(), "two", "")

	if s.SessionID() != "sess-1" {
		t.Errorf("SessionID() = %q, must keep first adopted id", s.SessionID())
	}
	if len(s.Messages()) != 4 {
		t.Errorf("len(messages) = %d, want 4", len(s.Messages()))
	}
}

func TestSendResolvesByPlaceholderID(t *testing.T) {
	// A send whose response lands after the conversation moved on must
	// resolve its own placeholder, not whatever is last in the list.
	block := make(chan struct{})
	fake := &fakeChatAPI{
		block: block,
		results: []*api.ChatResult{
			{Response: "slow reply", Agent: models.AgentOracle, SessionID: "sess-1"},
		},
	}
	s := NewChatStore(fake, nil)

	done := make(chan models.Message)
	go func() {
		done <- s.Send(context.Background(), "slow question", "")
	}()

	// Wait for the placeholder to appear, then append more messages
	// behind it before releasing the response.
	waitFor(t, func() bool { return len(s.Messages()) >= 2 })
	s.mu.Lock()
	s.messages = append(s.messages, models.Message{
		ID:   "tail",
		Role: models.RoleUser, Content: "unrelated tail",
	})
	s.mu.Unlock()

	close(block)
	reply := <-done

	if reply.Content != "slow reply" {
		t.Fatalf("reply.Content = %q", reply.Content)
	}
	msgs := s.Messages()
	if msgs[len(msgs)-1].Content != "unrelated tail" {
		t.Errorf("tail message was overwritten: %+v", msgs[len(msgs)-1])
	}
	if msgs[1].Content != "slow reply" || msgs[1].Streaming {
		t.Errorf("placeholder not resolved in place: %+v", msgs[1])
	}
}

func TestSendAfterClearDropsResolution(t *testing.T) {
	block := make(chan struct{})
	fake := &fakeChatAPI{block: block}
	s := NewChatStore(fake, nil)

	done := make(chan models.Message)
	go func() {
		done <- s.Send(context.Background(), "hello", "")
	}()
	waitFor(t, func() bool { return len(s.Messages()) >= 2 })

	s.Clear()
	close(block)
	reply := <-done

	if reply.ID != "" {
		t.Errorf("resolution after Clear returned %+v, want zero message", reply)
	}
	if len(s.Messages()) != 0 {
		t.Errorf("len(messages) = %d after Clear", len(s.Messages()))
	}
	if s.Busy() {
		t.Error("Busy() = true after resolution")
	}
}

func TestClearResetsSession(t *testing.T) {
	fake := &fakeChatAPI{}
	s := NewChatStore(fake, nil)
	s.Send(context.Background(), "hi", "")

	s.Clear()
	if s.SessionID() != "" {
		t.Errorf("SessionID() = %q after Clear", s.SessionID())
	}
	if len(s.Messages()) != 0 {
		t.Errorf("messages not cleared")
	}
}

func TestAdopt(t *testing.T) {
	s := NewChatStore(&fakeChatAPI{}, nil)
	s.Adopt(models.Session{
		SessionID: "sess-9",
		Messages: []models.Message{
			{Role: models.RoleUser, Content: "old question"},
			{Role: models.RoleAssistant, Content: "old answer", Agent: models.AgentForge},
		},
	})

	if s.SessionID() != "sess-9" {
		t.Errorf("SessionID() = %q", s.SessionID())
	}
	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d", len(msgs))
	}
	for _, m := range msgs {
		if m.ID == "" {
			t.Error("adopted message missing id")
		}
	}
}
