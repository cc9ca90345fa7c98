package session

import (
	"context"
	"time"

	"github.com/cineroom/client/internal/repository/catalog"
)

// reportProgress writes watch progress for the current item to the external
// catalog. Single attempt, failures logged; the sync protocol never depends
// on these writes.
func (s *service) reportProgress(ctx context.Context) {
	item, ok := s.CurrentItem()
	if !ok || item.ExternalRef == "" {
		return
	}

	position, playing := s.player.Position()
	if !playing {
		return
	}

	var percent float64
	if duration := s.player.Duration(); duration > 0 {
		percent = position / duration * 100
	}

	// first progress write for an item moves its catalog status to watching
	s.mu.Lock()
	firstWrite := s.watchingRef != item.ExternalRef
	if firstWrite {
		s.watchingRef = item.ExternalRef
	}
	s.mu.Unlock()
	if firstWrite {
		s.setCatalogStatus(ctx, item.ExternalRef, catalog.StatusWatching)
	}

	if err := s.catalogRepo.UpdateProgress(ctx, &catalog.UpdateProgressParams{
		ItemRef:         item.ExternalRef,
		WatchProgress:   position,
		ProgressPercent: percent,
		LastWatched:     time.Now().UnixMilli(),
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to report watch progress",
			"item_ref", item.ExternalRef,
			"error", err,
		)
	}
}

// MarkCompleted records the current item as completed in the external
// catalog. No-op when the item has no catalog record.
func (s *service) MarkCompleted(ctx context.Context) error {
	if s.roomId == "" {
		return ErrNotJoined
	}

	item, ok := s.CurrentItem()
	if !ok || item.ExternalRef == "" {
		return nil
	}

	s.setCatalogStatus(ctx, item.ExternalRef, catalog.StatusCompleted)
	return nil
}

func (s *service) setCatalogStatus(ctx context.Context, itemRef, status string) {
	if err := s.catalogRepo.UpdateStatus(ctx, itemRef, status); err != nil {
		s.logger.WarnContext(ctx, "failed to update catalog status",
			"item_ref", itemRef,
			"status", status,
			"error", err,
		)
	}
}
