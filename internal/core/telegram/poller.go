package telegram

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/utsavm/nexus/internal/core/models"
	"github.com/utsavm/nexus/internal/core/store"
)

// Transport is what the poller needs from the Bot API
type Transport interface {
	GetUpdates(ctx context.Context, offset int64) ([]Update, error)
}

// Poller ingests inbound bot messages on a short interval and raises a
// notification for each one. Re-delivery is prevented purely by cursor
// advancement: after every batch the offset becomes max(update_id)+1, so
// there is no dedup set to grow or leak.
type Poller struct {
	mu        sync.Mutex
	transport Transport
	queue     *store.Queue
	log       *zap.Logger
	interval  time.Duration
	chatID    int64 // 0 accepts any chat

	offset    int64
	connected bool
	inbound   []IncomingMessage

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller. chatID restricts ingestion to one
// chat when non-empty (unparsable values disable the restriction).
func NewPoller(transport Transport, queue *store.Queue, chatID string, interval time.Duration, log *zap.Logger) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	id, _ := strconv.ParseInt(chatID, 10, 64)
	return &Poller{
		transport: transport,
		queue:     queue,
		log:       log,
		interval:  interval,
		chatID:    id,
	}
}

// Start launches the polling loop until Stop or ctx cancellation
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	p.mu.Unlock()

	go func() {
		defer close(p.done)
		p.Poll(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Poll(ctx)
			}
		}
	}()
}

// Stop tears the loop down
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

// Poll runs one getUpdates pass. Failures flip the connected flag and
// are logged, never notified. Transient connectivity loss must not spam
// the queue.
func (p *Poller) Poll(ctx context.Context) {
	p.mu.Lock()
	offset := p.offset
	p.mu.Unlock()

	updates, err := p.transport.GetUpdates(ctx, offset)
	if err != nil {
		p.mu.Lock()
		wasConnected := p.connected
		p.connected = false
		p.mu.Unlock()
		if wasConnected {
			p.log.Info("telegram poll failed", zap.Error(err))
		}
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected = true

	maxID := int64(-1)
	var fresh []IncomingMessage
	for _, u := range updates {
		if u.UpdateID > maxID {
			maxID = u.UpdateID
		}
		if u.Message == nil {
			continue
		}
		if p.chatID != 0 && u.Message.Chat.ID != p.chatID {
			continue
		}
		fresh = append(fresh, *u.Message)
	}
	if maxID >= 0 {
		p.offset = maxID + 1
	}

	p.inbound = append(p.inbound, fresh...)

	if p.queue != nil {
		for _, m := range fresh {
			sender := m.From.FirstName
			if sender == "" {
				sender = m.From.Username
			}
			p.queue.Push(models.Notification{
				Level: models.LevelAgent,
				Title: "Telegram message from " + sender,
				Body:  m.Text,
			})
		}
	}
}

// Offset returns the current cursor
func (p *Poller) Offset() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

// Connected reports whether the last poll reached the Bot API
func (p *Poller) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// Inbound returns a snapshot of every ingested message, oldest first
func (p *Poller) Inbound() []IncomingMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]IncomingMessage, len(p.inbound))
	copy(out, p.inbound)
	return out
}
