package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cineroom/client/internal/repository/catalog"
)

type repo struct {
	rc             *redis.Client
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *repo {
	return &repo{
		rc:             rc,
		expireDuration: expireDuration,
	}
}

func (r repo) getItemKey(itemRef string) string {
	return "catalog:item:" + itemRef
}

func (r repo) UpdateStatus(ctx context.Context, itemRef, status string) error {
	itemKey := r.getItemKey(itemRef)

	if err := r.rc.HSet(ctx, itemKey, "status", status).Err(); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	r.rc.Expire(ctx, itemKey, r.expireDuration)

	return nil
}

func (r repo) UpdateProgress(ctx context.Context, params *catalog.UpdateProgressParams) error {
	itemKey := r.getItemKey(params.ItemRef)

	if err := r.rc.HSet(ctx, itemKey,
		"watch_progress", params.WatchProgress,
		"watch_progress_percent", params.ProgressPercent,
		"last_watched", params.LastWatched,
	).Err(); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	r.rc.Expire(ctx, itemKey, r.expireDuration)

	return nil
}
