package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cineroom/client/internal/repository/room"
)

// Run drives the session until the context is cancelled: it consumes store
// notifications and fires the heartbeat and progress timers. All
// cross-client communication stays asynchronous; nothing here blocks local
// playback.
func (s *service) Run(ctx context.Context) error {
	if s.roomId == "" {
		return ErrNotJoined
	}

	events, err := s.roomRepo.Subscribe(ctx, s.roomId)
	if err != nil {
		return fmt.Errorf("failed to subscribe to room: %w", err)
	}

	// deliver whatever was queued for us while offline
	s.drainSignals(ctx)

	heartbeat := time.NewTicker(s.heartbeatInterval)
	defer heartbeat.Stop()
	progress := time.NewTicker(s.progressInterval)
	defer progress.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			s.handleEvent(ctx, event)
		case <-heartbeat.C:
			s.heartbeat(ctx)
		case <-progress.C:
			s.reportProgress(ctx)
		}
	}
}

func (s *service) handleEvent(ctx context.Context, event room.Event) {
	switch event.Kind {
	case room.EventPlayerUpdated:
		var remote room.Player
		if err := json.Unmarshal(event.Payload, &remote); err != nil {
			s.logger.DebugContext(ctx, "ignoring undecodable player event", "error", err)
			return
		}
		s.reconcile(ctx, remote)

	case room.EventQueueUpdated:
		var queue room.Queue
		if err := json.Unmarshal(event.Payload, &queue); err != nil {
			s.logger.DebugContext(ctx, "ignoring undecodable queue event", "error", err)
			return
		}
		s.applyQueueUpdate(queue)

	case room.EventMessageAdded:
		var message room.Message
		if err := json.Unmarshal(event.Payload, &message); err != nil {
			s.logger.DebugContext(ctx, "ignoring undecodable message event", "error", err)
			return
		}
		s.notifier.Notify(NotifyMessageAdded, messageFromRepo(message))

	case room.EventReactionAdded:
		var reaction room.Reaction
		if err := json.Unmarshal(event.Payload, &reaction); err != nil {
			s.logger.DebugContext(ctx, "ignoring undecodable reaction event", "error", err)
			return
		}
		s.handleReaction(ctx, reaction)

	case room.EventSignalReceived:
		var notice room.SignalNotice
		if err := json.Unmarshal(event.Payload, &notice); err != nil {
			s.logger.DebugContext(ctx, "ignoring undecodable signal notice", "error", err)
			return
		}
		if notice.To == s.deviceId {
			s.drainSignals(ctx)
		}

	default:
		s.logger.DebugContext(ctx, "ignoring unknown event", "kind", event.Kind)
	}
}

// applyQueueUpdate refreshes the local queue snapshot. Updates older than
// the snapshot are ignored; the transport only promises the latest value.
func (s *service) applyQueueUpdate(queue room.Queue) {
	s.mu.Lock()
	if queue.Version < s.queue.Version {
		s.mu.Unlock()
		return
	}
	s.queue = queue
	s.mu.Unlock()

	s.notifier.Notify(NotifyQueueUpdated, queueFromRepo(queue))
}
