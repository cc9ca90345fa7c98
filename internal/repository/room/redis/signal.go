package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cineroom/client/internal/repository/room"
)

// Signaling payloads are one-shot: they live in a short-lived per-recipient
// inbox, separate from room state, and are removed when read.
const signalsExpire = time.Minute

func (r repo) AddSignal(ctx context.Context, params *room.AddSignalParams) error {
	signalsKey := r.getSignalsKey(params.RoomId, params.To)

	signal := room.Signal{
		From:    params.From,
		Kind:    params.Kind,
		Payload: params.Payload,
		SentAt:  params.SentAt,
	}
	data, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("failed to marshal signal: %w", err)
	}

	pipe := r.rc.TxPipeline()
	pipe.RPush(ctx, signalsKey, data)
	pipe.Expire(ctx, signalsKey, signalsExpire)
	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to add signal: %w", err)
	}

	return r.publish(ctx, params.RoomId, room.EventSignalReceived, room.SignalNotice{To: params.To})
}

// PopSignals drains the recipient's inbox and deletes it.
func (r repo) PopSignals(ctx context.Context, params *room.PopSignalsParams) ([]room.Signal, error) {
	signalsKey := r.getSignalsKey(params.RoomId, params.ClientId)

	pipe := r.rc.TxPipeline()
	entriesCmd := pipe.LRange(ctx, signalsKey, 0, -1)
	pipe.Del(ctx, signalsKey)
	if err := r.executePipe(ctx, pipe); err != nil {
		return nil, fmt.Errorf("failed to pop signals: %w", err)
	}

	entries := entriesCmd.Val()
	signals := make([]room.Signal, 0, len(entries))
	for _, entry := range entries {
		var signal room.Signal
		if err := json.Unmarshal([]byte(entry), &signal); err != nil {
			continue
		}
		signals = append(signals, signal)
	}

	return signals, nil
}
