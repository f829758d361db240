// Package store holds the client-side application state: chat sessions,
// the task board, and the notification queue. Views receive a *Store
// explicitly; there are no package-level singletons. Each sub-store is a
// single writer guarded by its own mutex, and reads return snapshots.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utsavm/nexus/internal/core/models"
)

const (
	// QueueCap bounds the notification log; pushing past it evicts the oldest entries
	QueueCap = 50

	// ToastLimit is the most toasts shown at once
	ToastLimit = 4

	// ToastTTL is how long a toast stays on screen before self-dismissing
	ToastTTL = 5 * time.Second

	// ToastExitGrace keeps a dismissed toast around for its exit animation
	ToastExitGrace = 250 * time.Millisecond
)

// Notifier is the native notification side channel. Implementations must
// be best-effort: a failed delivery never propagates to the caller.
type Notifier interface {
	Notify(title, body string)
}

// Queue is the append-only, capacity-bounded notification log.
// Items are kept newest first.
type Queue struct {
	mu       sync.Mutex
	now      func() time.Time
	notifier Notifier // nil disables the desktop side channel
	items    []models.Notification
	unread   int

	// Ephemeral toast bookkeeping, keyed by notification id. Entries here
	// never affect the queue itself.
	toastBorn      map[string]time.Time
	toastDismissed map[string]time.Time
}

// NewQueue creates an empty queue. notifier may be nil.
func NewQueue(notifier Notifier) *Queue {
	return &Queue{
		now:            time.Now,
		notifier:       notifier,
		toastBorn:      make(map[string]time.Time),
		toastDismissed: make(map[string]time.Time),
	}
}

// SetClock overrides the queue's time source (tests only)
func (q *Queue) SetClock(now func() time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.now = now
}

// Push inserts a notification at the head, assigning id, timestamp, and
// read=false. The queue is truncated to QueueCap, silently dropping the
// oldest surplus. Push never fails the caller.
func (q *Queue) Push(n models.Notification) models.Notification {
	q.mu.Lock()
	n.ID = uuid.NewString()
	n.CreatedAt = q.now()
	n.Read = false

	q.items = append([]models.Notification{n}, q.items...)
	q.unread++
	q.toastBorn[n.ID] = n.CreatedAt

	for len(q.items) > QueueCap {
		evicted := q.items[len(q.items)-1]
		q.items = q.items[:len(q.items)-1]
		if !evicted.Read {
			q.unread--
		}
		delete(q.toastBorn, evicted.ID)
		delete(q.toastDismissed, evicted.ID)
	}
	notifier := q.notifier
	q.mu.Unlock()

	if notifier != nil {
		notifier.Notify(n.Title, n.Body)
	}
	return n
}

// MarkAllRead marks every entry read and zeroes the unread counter
func (q *Queue) MarkAllRead() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		q.items[i].Read = true
	}
	q.unread = 0
}

// Dismiss removes an entry by id. The unread counter is recomputed from
// the remaining entries so dismissing a read entry stays consistent.
// Unknown ids are a no-op.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	found := false
	for _, n := range q.items {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return
	}
	q.items = kept
	delete(q.toastBorn, id)
	delete(q.toastDismissed, id)

	unread := 0
	for _, n := range q.items {
		if !n.Read {
			unread++
		}
	}
	q.unread = unread
}

// Toast is the ephemeral projection of a recent unread notification.
// Exiting is true during the post-dismissal grace window.
type Toast struct {
	models.Notification
	Exiting bool
}

// Toasts derives up to ToastLimit of the most recent unread entries.
// A toast lives for ToastTTL after its push (or until DismissToast),
// then lingers Exiting for ToastExitGrace. Expiry never mutates the
// queue itself.
func (q *Queue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	var toasts []Toast
	for _, n := range q.items {
		if len(toasts) >= ToastLimit {
			break
		}
		if n.Read {
			continue
		}
		born, ok := q.toastBorn[n.ID]
		if !ok {
			continue
		}
		deadline := born.Add(ToastTTL)
		if dismissed, ok := q.toastDismissed[n.ID]; ok && dismissed.Before(deadline) {
			deadline = dismissed
		}
		switch {
		case now.Before(deadline):
			toasts = append(toasts, Toast{Notification: n})
		case now.Before(deadline.Add(ToastExitGrace)):
			toasts = append(toasts, Toast{Notification: n, Exiting: true})
		}
	}
	return toasts
}

// DismissToast ends a toast early. Only the ephemeral projection is
// affected; the underlying notification stays in the queue.
func (q *Queue) DismissToast(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.toastBorn[id]; !ok {
		return
	}
	if _, already := q.toastDismissed[id]; !already {
		q.toastDismissed[id] = q.now()
	}
}

// Items returns a snapshot of the queue, newest first
func (q *Queue) Items() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Unread returns the unread counter
func (q *Queue) Unread() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.unread
}

// Len returns the queue length
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
