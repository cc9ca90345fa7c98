package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cineroom/client/internal/repository/room"
)

// reactionsKeep bounds the reaction log. Reactions expire client-side within
// seconds, so the log only needs enough depth to absorb a burst.
const reactionsKeep = 100

func (r repo) AddReaction(ctx context.Context, params *room.AddReactionParams) error {
	reactionsKey := r.getReactionsKey(params.RoomId)

	reaction := room.Reaction{
		Kind:   params.Kind,
		SentAt: params.SentAt,
	}
	data, err := json.Marshal(reaction)
	if err != nil {
		return fmt.Errorf("failed to marshal reaction: %w", err)
	}

	pipe := r.rc.TxPipeline()
	pipe.RPush(ctx, reactionsKey, data)
	pipe.LTrim(ctx, reactionsKey, -reactionsKeep, -1)
	pipe.Expire(ctx, reactionsKey, r.expireDuration)
	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to add reaction: %w", err)
	}

	return r.publish(ctx, params.RoomId, room.EventReactionAdded, reaction)
}
