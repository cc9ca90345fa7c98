package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/cineroom/client/internal/repository/catalog"
	"github.com/cineroom/client/internal/repository/room"
	"github.com/cineroom/client/pkg/mediadata"
)

// mutateQueue runs a read-modify-write cycle on the whole queue document.
// The mutation returns false to signal a no-op. The write itself is
// last-write-wins; a version jump is logged as a lost update.
func (s *service) mutateQueue(ctx context.Context, mutate func(queue *room.Queue) bool) error {
	if s.roomId == "" {
		return ErrNotJoined
	}

	queue, err := s.roomRepo.GetQueue(ctx, s.roomId)
	if err != nil {
		return fmt.Errorf("failed to get queue: %w", err)
	}

	if !mutate(&queue) {
		return nil
	}

	version, err := s.roomRepo.SetQueue(ctx, &room.SetQueueParams{
		RoomId:          s.roomId,
		Items:           queue.Items,
		CurrentIndex:    queue.CurrentIndex,
		ExpectedVersion: queue.Version,
	})
	if err != nil {
		return fmt.Errorf("failed to set queue: %w", err)
	}

	if version != queue.Version+1 {
		s.logger.WarnContext(ctx, "queue write overwrote a concurrent update",
			"expected_version", queue.Version+1,
			"actual_version", version,
		)
	}

	queue.Version = version
	s.mu.Lock()
	s.queue = queue
	s.mu.Unlock()

	return nil
}

type AppendItemParams struct {
	Title       string
	URL         string
	Thumbnail   string
	ExternalRef string
}

// AppendItem adds an item to the end of the queue. Unlike the other queue
// mutations this is open to followers as well. Recognized video URLs are
// stored in their embeddable form, ready for the UI's player element.
func (s *service) AppendItem(ctx context.Context, params *AppendItemParams) (QueueItem, error) {
	item := room.QueueItem{
		Id:          uuid.NewString(),
		Title:       params.Title,
		URL:         mediadata.EmbedURL(params.URL),
		Thumbnail:   params.Thumbnail,
		ExternalRef: params.ExternalRef,
	}

	err := s.mutateQueue(ctx, func(queue *room.Queue) bool {
		queue.Items = append(queue.Items, item)
		return true
	})
	if err != nil {
		return QueueItem{}, err
	}

	if item.ExternalRef != "" {
		s.setCatalogStatus(ctx, item.ExternalRef, catalog.StatusWatchlist)
	}

	return QueueItem(item), nil
}

// RemoveItem removes the item at index. Follower calls and attempts to
// remove the playing item are no-ops.
func (s *service) RemoveItem(ctx context.Context, index int) error {
	if s.role != RoleAuthority {
		s.logger.DebugContext(ctx, "remove item ignored", "role", s.role)
		return nil
	}

	return s.mutateQueue(ctx, func(queue *room.Queue) bool {
		if index < 0 || index >= len(queue.Items) {
			return false
		}
		if index == queue.CurrentIndex {
			s.logger.DebugContext(ctx, "refusing to remove the playing item", "index", index)
			return false
		}

		queue.Items = slices.Delete(queue.Items, index, index+1)

		// keep the pointer on the same logical item
		if index < queue.CurrentIndex {
			queue.CurrentIndex--
		}
		queue.CurrentIndex = clampIndex(queue.CurrentIndex, len(queue.Items))

		return true
	})
}

// SetCurrentIndex moves the current-item pointer, clamped to the queue
// bounds. Follower calls are no-ops.
func (s *service) SetCurrentIndex(ctx context.Context, index int) error {
	if s.role != RoleAuthority {
		s.logger.DebugContext(ctx, "set current index ignored", "role", s.role)
		return nil
	}

	return s.mutateQueue(ctx, func(queue *room.Queue) bool {
		index = clampIndex(index, len(queue.Items))
		if index == queue.CurrentIndex {
			return false
		}

		queue.CurrentIndex = index
		return true
	})
}

// Advance moves to the next queue item and marks the outgoing one completed
// in the external catalog when it is linked to a record there.
func (s *service) Advance(ctx context.Context) error {
	if s.role != RoleAuthority {
		s.logger.DebugContext(ctx, "advance ignored", "role", s.role)
		return nil
	}

	var outgoingRef string
	err := s.mutateQueue(ctx, func(queue *room.Queue) bool {
		if queue.CurrentIndex >= len(queue.Items)-1 {
			return false
		}

		outgoingRef = queue.Items[queue.CurrentIndex].ExternalRef
		queue.CurrentIndex++
		return true
	})
	if err != nil {
		return err
	}

	if outgoingRef != "" {
		s.setCatalogStatus(ctx, outgoingRef, catalog.StatusCompleted)
	}

	return nil
}

// CurrentItem returns the item the pointer rests on, if any.
func (s *service) CurrentItem() (QueueItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue.Items) == 0 || s.queue.CurrentIndex < 0 || s.queue.CurrentIndex >= len(s.queue.Items) {
		return QueueItem{}, false
	}

	return QueueItem(s.queue.Items[s.queue.CurrentIndex]), true
}

func clampIndex(index, length int) int {
	if length == 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index > length-1 {
		return length - 1
	}
	return index
}
