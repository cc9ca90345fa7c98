package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cineroom/client/internal/repository/room"
)

// Play starts local playback. The authority also broadcasts the transition;
// a follower's local transition is overwritten by the next remote update.
func (s *service) Play(ctx context.Context) error {
	s.player.Play()
	return s.publishPlayerState(ctx)
}

func (s *service) Pause(ctx context.Context) error {
	s.player.Pause()
	return s.publishPlayerState(ctx)
}

func (s *service) Seek(ctx context.Context, seconds float64) error {
	s.player.Seek(seconds)
	return s.publishPlayerState(ctx)
}

// publishPlayerState snapshots the local player and publishes it as the
// session's playback truth. Only the authority writes.
func (s *service) publishPlayerState(ctx context.Context) error {
	if s.role != RoleAuthority {
		return nil
	}

	currentTime, playing := s.player.Position()
	if err := s.roomRepo.SetPlayer(ctx, &room.SetPlayerParams{
		RoomId:      s.roomId,
		CurrentTime: currentTime,
		IsPlaying:   playing,
		UpdatedAt:   time.Now().UnixMilli(),
		OriginTag:   s.sessionTag,
	}); err != nil {
		return fmt.Errorf("failed to publish player state: %w", err)
	}

	return nil
}

func (s *service) heartbeat(ctx context.Context) {
	if s.role != RoleAuthority {
		return
	}
	if _, playing := s.player.Position(); !playing {
		return
	}

	if err := s.publishPlayerState(ctx); err != nil {
		// transient; the next heartbeat re-synchronizes
		s.logger.DebugContext(ctx, "heartbeat publish failed", "error", err)
	}
}

// reconcile applies a remote player state to the local player. The algorithm
// is idempotent: applying the same state twice, or skipping intermediate
// broadcasts, converges on the same local playback.
func (s *service) reconcile(ctx context.Context, remote room.Player) {
	if validationErrs, ok := s.validate.Validate(remote); !ok {
		s.logger.DebugContext(ctx, "ignoring malformed player state", "errors", validationErrs)
		return
	}

	// echo suppression: never react to our own broadcast
	if remote.OriginTag == s.sessionTag {
		return
	}

	s.mu.Lock()
	inCooldown := time.Now().Before(s.cooldownUntil)
	s.mu.Unlock()
	if inCooldown {
		return
	}

	localTime, playing := s.player.Position()

	if remote.IsPlaying && !playing {
		s.player.Play()
	}
	if !remote.IsPlaying && playing {
		s.player.Pause()
	}

	// tolerate normal broadcast jitter, seek only on real drift
	if math.Abs(localTime-remote.CurrentTime) > s.driftTolerance {
		s.player.Seek(remote.CurrentTime)

		// let the local player's own state events settle before the next
		// inbound update is evaluated
		s.mu.Lock()
		s.cooldownUntil = time.Now().Add(s.seekCooldown)
		s.mu.Unlock()
	}

	s.notifier.Notify(NotifyPlayerUpdated, playerFromRepo(remote))
}
