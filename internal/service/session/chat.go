package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cineroom/client/internal/repository/room"
)

// SendMessage appends a chat message. Delivery is whatever the store
// provides; failures are returned once and never retried.
func (s *service) SendMessage(ctx context.Context, author, text string) error {
	if s.roomId == "" {
		return ErrNotJoined
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if author == "" {
		author = s.displayName
	}

	if err := s.roomRepo.AddMessage(ctx, &room.AddMessageParams{
		RoomId: s.roomId,
		Author: author,
		Text:   text,
		SentAt: time.Now().UnixMilli(),
	}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
