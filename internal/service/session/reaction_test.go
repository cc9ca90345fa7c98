package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cineroom/client/internal/repository/room"
)

func TestHandleReactionDropsExpired(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")

	a.service.handleReaction(ctx, room.Reaction{
		Kind:   "laugh",
		SentAt: time.Now().Add(-6 * time.Second).UnixMilli(),
	})
	assert.Equal(t, 0, a.notifier.count(NotifyReactionAdded), "stale reactions must not replay")

	a.service.handleReaction(ctx, room.Reaction{
		Kind:   "laugh",
		SentAt: time.Now().UnixMilli(),
	})
	assert.Equal(t, 1, a.notifier.count(NotifyReactionAdded))
}

func TestSignalRoundTrip(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	joined, err := a.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{})
	require.NoError(t, err)

	b := newTestSession(t, rc, "device-b")
	_, err = b.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{RoomCode: joined.RoomId})
	require.NoError(t, err)

	err = a.service.SendSignal(ctx, &SendSignalParams{Kind: "offer"})
	assert.ErrorIs(t, err, ErrUnknownRecipient)

	require.NoError(t, a.service.SendSignal(ctx, &SendSignalParams{
		To:      "device-b",
		Kind:    "offer",
		Payload: []byte(`{"sdp":"v=0"}`),
	}))

	// the inbox is drained on delivery and again on the next session start
	b.service.drainSignals(ctx)
	assert.Equal(t, 1, b.notifier.count(NotifySignalReceived))

	b.service.drainSignals(ctx)
	assert.Equal(t, 1, b.notifier.count(NotifySignalReceived), "a drained inbox stays empty")
}
