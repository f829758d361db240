package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/bot123:abc/getUpdates") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("offset"); got != "8" {
			t.Errorf("offset = %q, want 8", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":8,"message":{"from":{"id":1,"first_name":"Utsav"},"chat":{"id":42},"text":"hello","date":1700000000}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("123:abc")
	c.BaseURL = srv.URL

	updates, err := c.GetUpdates(context.Background(), 8)
	if err != nil {
		t.Fatalf("GetUpdates() error = %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("len(updates) = %d", len(updates))
	}
	u := updates[0]
	if u.UpdateID != 8 || u.Message == nil || u.Message.Text != "hello" || u.Message.Chat.ID != 42 {
		t.Errorf("update = %+v", u)
	}
}

func TestGetUpdatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	c := NewClient("bad-token")
	c.BaseURL = srv.URL

	_, err := c.GetUpdates(context.Background(), 0)
	if err == nil || !strings.Contains(err.Error(), "Unauthorized") {
		t.Errorf("err = %v, want description surfaced", err)
	}
}

func TestSendMessageTruncates(t *testing.T) {
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotText = r.URL.Query().Get("text")
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	c := NewClient("123:abc")
	c.BaseURL = srv.URL

	long := strings.Repeat("x", 5000)
	if err := c.SendMessage(context.Background(), "42", long); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if len(gotText) > maxMessageLen+len("\n\n[truncated]") {
		t.Errorf("sent %d chars, want truncated", len(gotText))
	}
	if !strings.HasSuffix(gotText, "[truncated]") {
		t.Error("missing truncation marker")
	}
}
