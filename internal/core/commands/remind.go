package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/utsavm/nexus/internal/core/models"
	"github.com/utsavm/nexus/internal/core/store"
)

var whenParser = func() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}()

// ParseReminder extracts a time expression from natural-language input
// like "in 20 minutes stand up" or "tomorrow at 9am review PRs" and
// returns the remaining text as the reminder body.
func ParseReminder(input string, now time.Time) (time.Time, string, error) {
	result, err := whenParser.Parse(input, now)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to parse time: %w", err)
	}
	if result == nil {
		return time.Time{}, "", fmt.Errorf("no time expression in %q", input)
	}

	text := strings.TrimSpace(input[:result.Index] + input[result.Index+len(result.Text):])
	if text == "" {
		text = "Reminder"
	}
	return result.Time, text, nil
}

// Outbound is an optional side channel reminders are copied to, so a
// reminder still reaches the user when the terminal is closed.
type Outbound interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// ReminderScheduler fires local notifications at a future time. Timers
// live for the process lifetime; there is no persistence.
type ReminderScheduler struct {
	mu       sync.Mutex
	queue    *store.Queue
	outbound Outbound
	chatID   string
	timers   []*time.Timer
}

// NewReminderScheduler creates a scheduler pushing into queue
func NewReminderScheduler(queue *store.Queue) *ReminderScheduler {
	return &ReminderScheduler{queue: queue}
}

// SetOutbound adds a delivery side channel (telegram)
func (s *ReminderScheduler) SetOutbound(outbound Outbound, chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbound = outbound
	s.chatID = chatID
}

// Schedule arms a reminder. Times in the past fire immediately.
func (s *ReminderScheduler) Schedule(at time.Time, text string) {
	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers = append(s.timers, time.AfterFunc(d, func() {
		s.queue.Push(models.Notification{
			Level: models.LevelInfo,
			Title: "Reminder",
			Body:  text,
		})
		s.mu.Lock()
		outbound, chatID := s.outbound, s.chatID
		s.mu.Unlock()
		if outbound != nil && chatID != "" {
			// Best effort: a failed delivery still leaves the local
			// notification in the queue.
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = outbound.SendMessage(ctx, chatID, "Reminder: "+text)
		}
	}))
}

// Stop cancels every pending reminder
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}
