package redis

import (
	"context"
	"encoding/json"

	"github.com/cineroom/client/internal/repository/room"
)

// Subscribe delivers every event published to the room until the context is
// cancelled. Undecodable payloads are dropped; the next event carries the
// latest truth anyway.
func (r repo) Subscribe(ctx context.Context, roomId string) (<-chan room.Event, error) {
	pubsub := r.rc.Subscribe(ctx, r.getEventsKey(roomId))

	// Force the subscription to be established before returning so callers
	// never miss events published right after Subscribe.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	events := make(chan room.Event)
	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event room.Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}

				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
