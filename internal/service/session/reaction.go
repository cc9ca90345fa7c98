package session

import (
	"context"
	"fmt"
	"time"

	"github.com/cineroom/client/internal/repository/room"
)

// SendReaction appends an ephemeral reaction to the room's reaction log.
func (s *service) SendReaction(ctx context.Context, kind string) error {
	if s.roomId == "" {
		return ErrNotJoined
	}

	if err := s.roomRepo.AddReaction(ctx, &room.AddReactionParams{
		RoomId: s.roomId,
		Kind:   kind,
		SentAt: time.Now().UnixMilli(),
	}); err != nil {
		return fmt.Errorf("failed to send reaction: %w", err)
	}

	return nil
}

// handleReaction forwards a live reaction to the UI. Anything older than the
// TTL at receipt time is dropped, which also guards against a backlog
// replaying on (re)join.
func (s *service) handleReaction(ctx context.Context, reaction room.Reaction) {
	if validationErrs, ok := s.validate.Validate(reaction); !ok {
		s.logger.DebugContext(ctx, "ignoring malformed reaction", "errors", validationErrs)
		return
	}

	age := time.Now().UnixMilli() - reaction.SentAt
	if age > s.reactionTTL.Milliseconds() {
		return
	}

	s.notifier.Notify(NotifyReactionAdded, Reaction(reaction))
}
