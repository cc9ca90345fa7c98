package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cineroom/client/internal/repository/room"
)

func (r repo) publish(ctx context.Context, roomId, kind string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	event, err := json.Marshal(room.Event{Kind: kind, Payload: data})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := r.rc.Publish(ctx, r.getEventsKey(roomId), event).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (r repo) executePipe(ctx context.Context, pipe redis.Pipeliner) error {
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		for _, cmd := range cmds {
			if err := cmd.Err(); err != nil {
				return err
			}
		}

		return err
	}

	return nil
}
