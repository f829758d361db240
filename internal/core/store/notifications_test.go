package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/utsavm/nexus/internal/core/models"
)

type recordingNotifier struct {
	titles []string
}

func (r *recordingNotifier) Notify(title, body string) {
	r.titles = append(r.titles, title)
}

func TestPushBoundedAtCap(t *testing.T) {
	q := NewQueue(nil)
	for i := 0; i < QueueCap+20; i++ {
		q.Push(models.Notification{
			Level: models.LevelInfo,
			Title: fmt.Sprintf("event %d", i),
		})
	}

	if q.Len() != QueueCap {
		t.Fatalf("Len() = %d, want %d", q.Len(), QueueCap)
	}

	items := q.Items()
	// Newest first: head is the last push, tail is the oldest survivor
	if items[0].Title != fmt.Sprintf("event %d", QueueCap+19) {
		t.Errorf("head = %q", items[0].Title)
	}
	if items[len(items)-1].Title != "event 20" {
		t.Errorf("tail = %q, want event 20", items[len(items)-1].Title)
	}
	if q.Unread() != QueueCap {
		t.Errorf("Unread() = %d, want %d", q.Unread(), QueueCap)
	}
}

func TestDismissIdempotent(t *testing.T) {
	q := NewQueue(nil)
	n := q.Push(models.Notification{Title: "one"})
	q.Push(models.Notification{Title: "two"})

	q.Dismiss(n.ID)
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	if q.Unread() != 1 {
		t.Fatalf("Unread() = %d, want 1", q.Unread())
	}

	// Second dismiss of the same id is a no-op
	q.Dismiss(n.ID)
	if q.Len() != 1 || q.Unread() != 1 {
		t.Errorf("second Dismiss changed state: len=%d unread=%d", q.Len(), q.Unread())
	}

	// Unknown id is a no-op too
	q.Dismiss("no-such-id")
	if q.Len() != 1 {
		t.Errorf("Dismiss(unknown) changed state: len=%d", q.Len())
	}
}

func TestDismissReadEntryRecomputesUnread(t *testing.T) {
	q := NewQueue(nil)
	a := q.Push(models.Notification{Title: "a"})
	q.Push(models.Notification{Title: "b"})
	q.MarkAllRead()
	c := q.Push(models.Notification{Title: "c"})

	if q.Unread() != 1 {
		t.Fatalf("Unread() = %d, want 1", q.Unread())
	}

	// Dismissing the read entry must not disturb the unread count
	q.Dismiss(a.ID)
	if q.Unread() != 1 {
		t.Errorf("Unread() after dismissing read entry = %d, want 1", q.Unread())
	}

	q.Dismiss(c.ID)
	if q.Unread() != 0 {
		t.Errorf("Unread() after dismissing unread entry = %d, want 0", q.Unread())
	}
}

func TestMarkAllReadIdempotent(t *testing.T) {
	q := NewQueue(nil)
	q.Push(models.Notification{Title: "a"})
	q.Push(models.Notification{Title: "b"})

	q.MarkAllRead()
	if q.Unread() != 0 {
		t.Fatalf("Unread() = %d, want 0", q.Unread())
	}
	q.MarkAllRead()
	if q.Unread() != 0 {
		t.Errorf("Unread() after second MarkAllRead = %d, want 0", q.Unread())
	}
	for _, n := range q.Items() {
		if !n.Read {
			t.Errorf("notification %q still unread", n.Title)
		}
	}
}

func TestToastLifecycle(t *testing.T) {
	q := NewQueue(nil)
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	q.SetClock(func() time.Time { return current })

	n := q.Push(models.Notification{Title: "fresh"})

	if got := q.Toasts(); len(got) != 1 || got[0].Exiting {
		t.Fatalf("Toasts() = %+v, want one active toast", got)
	}

	// Just before the TTL the toast is still active
	current = current.Add(ToastTTL - time.Millisecond)
	if got := q.Toasts(); len(got) != 1 || got[0].Exiting {
		t.Fatalf("Toasts() before TTL = %+v", got)
	}

	// Past the TTL it enters the exit grace window
	current = current.Add(2 * time.Millisecond)
	got := q.Toasts()
	if len(got) != 1 || !got[0].Exiting {
		t.Fatalf("Toasts() in grace window = %+v, want exiting toast", got)
	}

	// Past the grace window it is gone from the projection
	current = current.Add(ToastExitGrace)
	if got := q.Toasts(); len(got) != 0 {
		t.Fatalf("Toasts() after grace = %+v, want none", got)
	}

	// The queue itself is untouched
	if q.Len() != 1 {
		t.Errorf("Len() = %d, toast expiry must not remove queue entries", q.Len())
	}
	if q.Unread() != 1 {
		t.Errorf("Unread() = %d, toast expiry must not mark read", q.Unread())
	}
	_ = n
}

func TestDismissToastEarly(t *testing.T) {
	q := NewQueue(nil)
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	q.SetClock(func() time.Time { return current })

	n := q.Push(models.Notification{Title: "early out"})

	current = current.Add(time.Second)
	q.DismissToast(n.ID)

	// Immediately after dismissal the toast is exiting
	if got := q.Toasts(); len(got) != 1 || !got[0].Exiting {
		t.Fatalf("Toasts() right after DismissToast = %+v", got)
	}

	current = current.Add(ToastExitGrace + time.Millisecond)
	if got := q.Toasts(); len(got) != 0 {
		t.Fatalf("Toasts() after grace = %+v, want none", got)
	}

	if q.Len() != 1 {
		t.Errorf("DismissToast must not remove the queue entry")
	}
}

func TestToastsLimitAndUnreadOnly(t *testing.T) {
	q := NewQueue(nil)
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	q.SetClock(func() time.Time { return current })

	read := q.Push(models.Notification{Title: "read me"})
	q.MarkAllRead()
	_ = read

	for i := 0; i < 6; i++ {
		q.Push(models.Notification{Title: fmt.Sprintf("t%d", i)})
	}

	got := q.Toasts()
	if len(got) != ToastLimit {
		t.Fatalf("len(Toasts()) = %d, want %d", len(got), ToastLimit)
	}
	// Most recent first
	if got[0].Title != "t5" {
		t.Errorf("Toasts()[0] = %q, want t5", got[0].Title)
	}
	for _, toast := range got {
		if toast.Read {
			t.Errorf("read notification %q projected as toast", toast.Title)
		}
	}
}

func TestPushTriggersNotifier(t *testing.T) {
	rec := &recordingNotifier{}
	q := NewQueue(rec)
	q.Push(models.Notification{Title: "ping"})

	if len(rec.titles) != 1 || rec.titles[0] != "ping" {
		t.Errorf("notifier got %v, want [ping]", rec.titles)
	}
}
