package inmemory

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/cineroom/client/internal/repository/connection"
)

// repo tracks the UI sockets attached to this engine instance.
type repo struct {
	conns map[*websocket.Conn]struct{}
	mu    sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (r *repo) Add(conn *websocket.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn]; ok {
		return connection.ErrAlreadyExists
	}

	r.conns[conn] = struct{}{}

	return nil
}

func (r *repo) Remove(conn *websocket.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn]; !ok {
		return connection.ErrNotFound
	}

	delete(r.conns, conn)

	return nil
}

func (r *repo) List() []*websocket.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*websocket.Conn, 0, len(r.conns))
	for conn := range r.conns {
		conns = append(conns, conn)
	}

	return conns
}
