package controller

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type iConnRepo interface {
	Add(*websocket.Conn) error
	Remove(*websocket.Conn) error
	List() []*websocket.Conn
}

// Broadcaster fans engine events out to every attached UI socket. It
// implements the session notifier.
type Broadcaster struct {
	connRepo iConnRepo
	logger   *slog.Logger
	mu       sync.Mutex
}

func NewBroadcaster(connRepo iConnRepo, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		connRepo: connRepo,
		logger:   logger,
	}
}

func (b *Broadcaster) Notify(kind string, payload any) {
	b.broadcast(&Output{Type: kind, Payload: payload})
}

func (b *Broadcaster) broadcast(out *Output) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, conn := range b.connRepo.List() {
		if err := conn.WriteJSON(out); err != nil {
			b.logger.Debug("failed to write to ui socket", "error", err)
		}
	}
}
