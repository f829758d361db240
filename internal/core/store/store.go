package store

import (
	"go.uber.org/zap"

	"github.com/utsavm/nexus/internal/core/api"
)

// Store is the process-wide state container. It is created once at
// startup and handed to every interface explicitly.
type Store struct {
	Chat          *ChatStore
	Board         *BoardStore
	Notifications *Queue
}

// New wires the sub-stores to the backend client. notifier may be nil to
// disable the desktop side channel.
func New(client *api.Client, notifier Notifier, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	queue := NewQueue(notifier)
	return &Store{
		Chat:          NewChatStore(client, log.Named("chat")),
		Board:         NewBoardStore(client, queue, log.Named("board")),
		Notifications: queue,
	}
}
