package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cineroom/client/internal/repository/catalog"
)

func joinWithCatalogItem(t *testing.T, ts *testSession) {
	t.Helper()
	ctx := context.Background()

	_, err := ts.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{})
	require.NoError(t, err)
	_, err = ts.service.AppendItem(ctx, &AppendItemParams{
		Title:       "Movie",
		URL:         "https://example.com/movie.mp4",
		ExternalRef: "cat-1",
	})
	require.NoError(t, err)
}

func TestReportProgressWritesCatalog(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	joinWithCatalogItem(t, a)

	a.player.position = 30
	a.player.playing = true
	a.player.duration = 120

	a.service.reportProgress(ctx)

	entries := a.catalog.progressEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "cat-1", entries[0].ItemRef)
	assert.Equal(t, 30.0, entries[0].WatchProgress)
	assert.Equal(t, 25.0, entries[0].ProgressPercent)
	assert.Greater(t, entries[0].LastWatched, int64(0))
}

func TestReportProgressMarksWatchingOnce(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	joinWithCatalogItem(t, a)

	a.player.position = 30
	a.player.playing = true
	a.player.duration = 120

	a.service.reportProgress(ctx)
	a.service.reportProgress(ctx)

	assert.Len(t, a.catalog.progressEntries(), 2)
	assert.Equal(t, 1, a.catalog.statusWrites("cat-1", catalog.StatusWatching),
		"the watching transition happens on the first write only")
}

func TestReportProgressWithoutDuration(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	joinWithCatalogItem(t, a)

	a.player.position = 30
	a.player.playing = true

	a.service.reportProgress(ctx)

	entries := a.catalog.progressEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, 0.0, entries[0].ProgressPercent, "unknown duration reports zero percent")
}

func TestReportProgressSkipsWhilePaused(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	joinWithCatalogItem(t, a)

	a.player.position = 30
	a.player.duration = 120

	a.service.reportProgress(ctx)

	assert.Empty(t, a.catalog.progressEntries(), "paused playback reports nothing")
}

func TestReportProgressSkipsWithoutCatalogRef(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	_, err := a.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{})
	require.NoError(t, err)
	_, err = a.service.AppendItem(ctx, &AppendItemParams{Title: "Clip", URL: "https://example.com/clip.mp4"})
	require.NoError(t, err)

	a.player.position = 30
	a.player.playing = true
	a.player.duration = 120

	a.service.reportProgress(ctx)

	assert.Empty(t, a.catalog.progressEntries(), "items without a catalog record report nothing")
}

func TestProgressTickerReports(t *testing.T) {
	rc := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newTestSession(t, rc, "device-a")
	joinWithCatalogItem(t, a)

	a.player.position = 30
	a.player.playing = true
	a.player.duration = 120
	a.service.progressInterval = 20 * time.Millisecond

	go a.service.Run(ctx)

	require.Eventually(t, func() bool {
		return len(a.catalog.progressEntries()) >= 2
	}, 2*time.Second, 10*time.Millisecond, "the ticker must keep reporting while playing")
}
