package commands

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/utsavm/nexus/internal/core/models"
	"github.com/utsavm/nexus/internal/core/store"
)

func testRegistry() *Registry {
	return NewRegistry(
		Command{ID: "nav-chat", Label: "Go to Chat", Category: CategoryNavigate, Keywords: []string{"conversation"}},
		Command{ID: "nav-board", Label: "Go to Board", Category: CategoryNavigate, Keywords: []string{"kanban", "tasks"}},
		Command{ID: "ask-atlas", Label: "Ask ATLAS for a project status", Category: CategoryAgents, Keywords: []string{"pm"}},
		Command{ID: "session-new", Label: "New Session", Category: CategorySession, Keywords: []string{"clear"}},
	)
}

func TestFilterSubstring(t *testing.T) {
	r := testRegistry()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query matches all", "", []string{"nav-chat", "nav-board", "ask-atlas", "session-new"}},
		{"label substring", "board", []string{"nav-board"}},
		{"case insensitive", "BOARD", []string{"nav-board"}},
		{"keyword only", "kanban", []string{"nav-board"}},
		{"mid-word substring", "onversat", []string{"nav-chat"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Filter(tt.query)
			var ids []string
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("Filter(%q) = %v, want %v", tt.query, ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("Filter(%q)[%d] = %q, want %q", tt.query, i, ids[i], tt.want[i])
				}
			}
		})
	}
}

func TestFirstAcceptsKeywordOnlyMatch(t *testing.T) {
	r := testRegistry()

	// "kanban" appears in no label, only in keywords; the accept key
	// must still resolve to the board command.
	cmd, ok := r.First("kanban")
	if !ok {
		t.Fatal("First(kanban) found nothing")
	}
	if cmd.ID != "nav-board" {
		t.Errorf("First(kanban) = %q, want nav-board", cmd.ID)
	}

	if _, ok := r.First("zzz"); ok {
		t.Error("First(zzz) should find nothing")
	}
}

func TestGroupByCategoryPreservesOrder(t *testing.T) {
	r := testRegistry()
	groups := GroupByCategory(r.All())

	want := []Category{CategoryNavigate, CategoryAgents, CategorySession}
	if len(groups) != len(want) {
		t.Fatalf("len(groups) = %d, want %d", len(groups), len(want))
	}
	for i, g := range groups {
		if g.Category != want[i] {
			t.Errorf("groups[%d] = %q, want %q", i, g.Category, want[i])
		}
	}
	if len(groups[0].Commands) != 2 {
		t.Errorf("Navigate group has %d commands, want 2", len(groups[0].Commands))
	}
}

func TestBuildWiresBindings(t *testing.T) {
	var navigated []string
	var composed string
	var composedType string
	newSession := false

	r := Build(Bindings{
		Navigate:   func(view string) { navigated = append(navigated, view) },
		NewSession: func() { newSession = true },
		Compose:    func(prompt, taskType string) { composed, composedType = prompt, taskType },
	}, "Apollo")

	if cmd, ok := r.First("kanban"); !ok {
		t.Fatal("board command missing")
	} else {
		cmd.Run()
	}
	if len(navigated) != 1 || navigated[0] != "board" {
		t.Errorf("navigated = %v", navigated)
	}

	if cmd, ok := r.First("atlas"); !ok {
		t.Fatal("atlas command missing")
	} else {
		cmd.Run()
	}
	if !strings.Contains(composed, "Apollo") {
		t.Errorf("quick prompt = %q, want active project name rendered in", composed)
	}
	if composedType != "general" {
		t.Errorf("task type = %q", composedType)
	}

	if cmd, ok := r.First("fresh"); !ok {
		t.Fatal("new session command missing")
	} else {
		cmd.Run()
	}
	if !newSession {
		t.Error("NewSession binding not invoked")
	}
}

func TestQuickPromptRendersProject(t *testing.T) {
	got, err := QuickPrompt(models.AgentAtlas, map[string]any{"project": "Apollo"})
	if err != nil {
		t.Fatalf("QuickPrompt() error = %v", err)
	}
	if !strings.Contains(got, "Apollo") {
		t.Errorf("prompt = %q", got)
	}

	got, err = QuickPrompt(models.AgentAtlas, map[string]any{"project": ""})
	if err != nil {
		t.Fatalf("QuickPrompt() error = %v", err)
	}
	if !strings.Contains(got, "my projects") {
		t.Errorf("prompt without project = %q", got)
	}

	if _, err := QuickPrompt(models.Agent("nobody"), nil); err == nil {
		t.Error("unknown agent should error")
	}
}

func TestParseReminder(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	at, text, err := ParseReminder("in 20 minutes stand up", now)
	if err != nil {
		t.Fatalf("ParseReminder() error = %v", err)
	}
	if want := now.Add(20 * time.Minute); !at.Equal(want) {
		t.Errorf("at = %v, want %v", at, want)
	}
	if text != "stand up" {
		t.Errorf("text = %q, want %q", text, "stand up")
	}

	if _, _, err := ParseReminder("no time in here", now); err == nil {
		t.Error("input without a time expression should error")
	}
}

type fakeOutbound struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeOutbound) SendMessage(_ context.Context, chatID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, chatID+": "+text)
	return nil
}

func TestReminderSchedulerFires(t *testing.T) {
	queue := store.NewQueue(nil)
	s := NewReminderScheduler(queue)
	defer s.Stop()

	outbound := &fakeOutbound{}
	s.SetOutbound(outbound, "42")

	s.Schedule(time.Now().Add(5*time.Millisecond), "check oven")

	deadline := time.Now().Add(time.Second)
	for queue.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("reminder never fired")
		}
		time.Sleep(time.Millisecond)
	}
	items := queue.Items()
	if items[0].Body != "check oven" {
		t.Errorf("notification body = %q", items[0].Body)
	}

	deadline = time.Now().Add(time.Second)
	for {
		outbound.mu.Lock()
		n := len(outbound.sent)
		outbound.mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("reminder never copied to outbound")
		}
		time.Sleep(time.Millisecond)
	}
	if got := outbound.sent[0]; got != "42: Reminder: check oven" {
		t.Errorf("outbound = %q", got)
	}
}
