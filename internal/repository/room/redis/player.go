package redis

import (
	"context"
	"fmt"

	"github.com/cineroom/client/internal/repository/room"
)

func (r repo) SetPlayer(ctx context.Context, params *room.SetPlayerParams) error {
	playerKey := r.getPlayerKey(params.RoomId)

	player := room.Player{
		CurrentTime: params.CurrentTime,
		IsPlaying:   params.IsPlaying,
		UpdatedAt:   params.UpdatedAt,
		OriginTag:   params.OriginTag,
	}
	if err := r.rc.HSet(ctx, playerKey,
		"current_time", params.CurrentTime,
		"is_playing", params.IsPlaying,
		"updated_at", params.UpdatedAt,
		"origin_tag", params.OriginTag,
	).Err(); err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	r.rc.Expire(ctx, playerKey, r.expireDuration)

	return r.publish(ctx, params.RoomId, room.EventPlayerUpdated, player)
}

func (r repo) GetPlayer(ctx context.Context, roomId string) (room.Player, error) {
	playerKey := r.getPlayerKey(roomId)

	res, err := r.rc.Exists(ctx, playerKey).Result()
	if err != nil {
		return room.Player{}, fmt.Errorf("failed to check if player exists: %w", err)
	}
	if res == 0 {
		return room.Player{}, room.ErrPlayerNotFound
	}

	var player room.Player
	if err := r.rc.HGetAll(ctx, playerKey).Scan(&player); err != nil {
		return room.Player{}, fmt.Errorf("failed to get player: %w", err)
	}

	r.rc.Expire(ctx, playerKey, r.expireDuration)

	return player, nil
}
