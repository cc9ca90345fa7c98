package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cineroom/client/internal/repository/room"
)

// CreateRoom writes the room record unless one already exists. The creator
// field is written with HSETNX, so of two concurrent creators exactly one is
// recorded. Returns whether this call created the room.
func (r repo) CreateRoom(ctx context.Context, params *room.CreateRoomParams) (bool, error) {
	roomKey := r.getRoomKey(params.RoomId)

	created, err := r.rc.HSetNX(ctx, roomKey, "creator_id", params.CreatorId).Result()
	if err != nil {
		return false, fmt.Errorf("failed to create room: %w", err)
	}

	if created {
		if err := r.rc.HSet(ctx, roomKey, "created_at", strconv.FormatInt(params.CreatedAt, 10)).Err(); err != nil {
			return false, fmt.Errorf("failed to set room created_at: %w", err)
		}
	}

	r.rc.Expire(ctx, roomKey, r.expireDuration)

	return created, nil
}

func (r repo) GetRoom(ctx context.Context, roomId string) (room.Room, error) {
	roomKey := r.getRoomKey(roomId)

	var rec room.Room
	if err := r.rc.HGetAll(ctx, roomKey).Scan(&rec); err != nil {
		return room.Room{}, fmt.Errorf("failed to get room: %w", err)
	}

	if rec.CreatorId == "" {
		return room.Room{}, room.ErrRoomNotFound
	}

	r.rc.Expire(ctx, roomKey, r.expireDuration)

	return rec, nil
}
