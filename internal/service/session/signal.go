package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cineroom/client/internal/repository/room"
)

type SendSignalParams struct {
	To      string
	Kind    string
	Payload json.RawMessage
}

// SendSignal relays an opaque connection-negotiation payload to another
// client in the room. The engine never inspects the payload.
func (s *service) SendSignal(ctx context.Context, params *SendSignalParams) error {
	if s.roomId == "" {
		return ErrNotJoined
	}
	if params.To == "" {
		return ErrUnknownRecipient
	}

	if err := s.roomRepo.AddSignal(ctx, &room.AddSignalParams{
		RoomId:  s.roomId,
		To:      params.To,
		From:    s.deviceId,
		Kind:    params.Kind,
		Payload: params.Payload,
		SentAt:  time.Now().UnixMilli(),
	}); err != nil {
		return fmt.Errorf("failed to send signal: %w", err)
	}

	return nil
}

// drainSignals consumes this client's signal inbox and forwards each payload
// to the UI. Entries are removed from the store as they are read.
func (s *service) drainSignals(ctx context.Context) {
	signals, err := s.roomRepo.PopSignals(ctx, &room.PopSignalsParams{
		RoomId:   s.roomId,
		ClientId: s.deviceId,
	})
	if err != nil {
		s.logger.DebugContext(ctx, "failed to pop signals", "error", err)
		return
	}

	for _, signal := range signals {
		s.notifier.Notify(NotifySignalReceived, Signal(signal))
	}
}
