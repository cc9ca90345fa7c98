package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cineroom/client/internal/repository/room"
)

func (r repo) AddMessage(ctx context.Context, params *room.AddMessageParams) error {
	messagesKey := r.getMessagesKey(params.RoomId)

	message := room.Message{
		Author: params.Author,
		Text:   params.Text,
		SentAt: params.SentAt,
	}
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := r.rc.RPush(ctx, messagesKey, data).Err(); err != nil {
		return fmt.Errorf("failed to add message: %w", err)
	}

	r.rc.Expire(ctx, messagesKey, r.expireDuration)

	return r.publish(ctx, params.RoomId, room.EventMessageAdded, message)
}

// GetMessages returns the most recent limit messages in append order. Older
// entries stay in the store but are never replayed.
func (r repo) GetMessages(ctx context.Context, roomId string, limit int) ([]room.Message, error) {
	messagesKey := r.getMessagesKey(roomId)

	entries, err := r.rc.LRange(ctx, messagesKey, int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	r.rc.Expire(ctx, messagesKey, r.expireDuration)

	messages := make([]room.Message, 0, len(entries))
	for _, entry := range entries {
		var message room.Message
		if err := json.Unmarshal([]byte(entry), &message); err != nil {
			// malformed entries are skipped, not fatal
			continue
		}
		messages = append(messages, message)
	}

	return messages, nil
}
