package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cineroom/client/internal/repository/room"
)

func (r repo) GetQueue(ctx context.Context, roomId string) (room.Queue, error) {
	queueKey := r.getQueueKey(roomId)

	fields, err := r.rc.HGetAll(ctx, queueKey).Result()
	if err != nil {
		return room.Queue{}, fmt.Errorf("failed to get queue: %w", err)
	}

	r.rc.Expire(ctx, queueKey, r.expireDuration)

	// An absent document is an empty queue at version 0.
	if len(fields) == 0 {
		return room.Queue{}, nil
	}

	var queue room.Queue
	if items := fields["items"]; items != "" {
		if err := json.Unmarshal([]byte(items), &queue.Items); err != nil {
			return room.Queue{}, fmt.Errorf("failed to unmarshal queue items: %w", err)
		}
	}
	queue.CurrentIndex, _ = strconv.Atoi(fields["current_index"])
	queue.Version, _ = strconv.ParseInt(fields["version"], 10, 64)

	return queue, nil
}

// SetQueue replaces the whole queue document and returns the new version.
// The write is last-write-wins; a returned version greater than
// ExpectedVersion+1 means a concurrent write was overwritten.
func (r repo) SetQueue(ctx context.Context, params *room.SetQueueParams) (int64, error) {
	queueKey := r.getQueueKey(params.RoomId)

	items := params.Items
	if items == nil {
		items = []room.QueueItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal queue items: %w", err)
	}

	res, err := r.rc.EvalSha(ctx, r.setQueueScript, []string{queueKey}, data, params.CurrentIndex).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to set queue: %w", err)
	}

	version, ok := res.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected set queue script result: %v", res)
	}

	r.rc.Expire(ctx, queueKey, r.expireDuration)

	if err := r.publish(ctx, params.RoomId, room.EventQueueUpdated, room.Queue{
		Items:        items,
		CurrentIndex: params.CurrentIndex,
		Version:      version,
	}); err != nil {
		return version, err
	}

	return version, nil
}
