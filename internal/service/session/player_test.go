package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cineroom/client/internal/repository/room"
)

func remotePlayer(currentTime float64, playing bool, originTag string) room.Player {
	return room.Player{
		CurrentTime: currentTime,
		IsPlaying:   playing,
		UpdatedAt:   time.Now().UnixMilli(),
		OriginTag:   originTag,
	}
}

func TestReconcileConverges(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	a.service.reconcile(ctx, remotePlayer(120, true, "remote-tag"))

	position, playing, seeks := a.player.state()
	assert.Equal(t, 120.0, position, "drift beyond tolerance must seek")
	assert.True(t, playing, "remote playing must start local playback")
	assert.Equal(t, 1, seeks)
	assert.Equal(t, 1, a.notifier.count(NotifyPlayerUpdated))
}

func TestReconcileIsIdempotent(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	a.service.seekCooldown = 0

	a.service.reconcile(ctx, remotePlayer(120, true, "remote-tag"))

	// same state again: already converged, no further seek
	a.service.mu.Lock()
	a.service.cooldownUntil = time.Time{}
	a.service.mu.Unlock()
	a.service.reconcile(ctx, remotePlayer(120, true, "remote-tag"))

	position, playing, seeks := a.player.state()
	assert.Equal(t, 120.0, position)
	assert.True(t, playing)
	assert.Equal(t, 1, seeks, "applying the same state twice must not seek again")
}

func TestReconcileSuppressesOwnEcho(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	a.service.reconcile(ctx, remotePlayer(120, true, a.service.SessionTag()))

	position, playing, seeks := a.player.state()
	assert.Equal(t, 0.0, position, "own broadcast must be ignored")
	assert.False(t, playing)
	assert.Equal(t, 0, seeks)
	assert.Equal(t, 0, a.notifier.count(NotifyPlayerUpdated))
}

func TestReconcileToleratesSmallDrift(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	a.player.position = 119
	a.player.playing = true

	a.service.reconcile(ctx, remotePlayer(120, true, "remote-tag"))

	position, _, seeks := a.player.state()
	assert.Equal(t, 119.0, position, "drift within tolerance must not seek")
	assert.Equal(t, 0, seeks)
}

func TestReconcileCooldownAfterSeek(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")

	a.service.reconcile(ctx, remotePlayer(120, true, "remote-tag"))
	a.service.reconcile(ctx, remotePlayer(300, true, "remote-tag"))

	position, _, seeks := a.player.state()
	assert.Equal(t, 120.0, position, "updates during the cooldown must be ignored")
	assert.Equal(t, 1, seeks)
}

func TestReconcileIgnoresMalformedState(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")

	// missing origin tag
	a.service.reconcile(ctx, room.Player{
		CurrentTime: 120,
		IsPlaying:   true,
		UpdatedAt:   time.Now().UnixMilli(),
	})

	position, playing, seeks := a.player.state()
	assert.Equal(t, 0.0, position)
	assert.False(t, playing)
	assert.Equal(t, 0, seeks)
}

func TestAuthoritySeekConvergesFollower(t *testing.T) {
	rc := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newTestSession(t, rc, "device-a")
	joined, err := a.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{
		InitialItem: &QueueItem{Title: "First", URL: "https://youtu.be/a"},
	})
	require.NoError(t, err)
	require.Equal(t, RoleAuthority, joined.Role)

	b := newTestSession(t, rc, "device-b")
	joinedB, err := b.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{RoomCode: joined.RoomId})
	require.NoError(t, err)
	require.Equal(t, RoleFollower, joinedB.Role)

	go b.service.Run(ctx)
	// let the follower's subscription settle
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, a.service.Play(ctx))
	require.NoError(t, a.service.Seek(ctx, 120))

	require.Eventually(t, func() bool {
		position, playing := b.player.Position()
		return playing && position == 120
	}, 2*time.Second, 10*time.Millisecond, "follower must converge on the authority's state")
}

func TestFollowerTransitionsAreNotBroadcast(t *testing.T) {
	rc := newTestRedis(t)
	ctx := context.Background()

	a := newTestSession(t, rc, "device-a")
	joined, err := a.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{})
	require.NoError(t, err)

	b := newTestSession(t, rc, "device-b")
	_, err = b.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{RoomCode: joined.RoomId})
	require.NoError(t, err)

	require.NoError(t, b.service.Play(ctx))

	_, playing := b.player.Position()
	assert.True(t, playing, "local playback still starts")

	_, err = a.service.GetRoomState(ctx)
	require.NoError(t, err)
	state, err := b.service.GetRoomState(ctx)
	require.NoError(t, err)
	assert.Nil(t, state.Player, "follower transitions must not be published")
}

func TestHeartbeatConvergesDriftedFollower(t *testing.T) {
	rc := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newTestSession(t, rc, "device-a")
	joined, err := a.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{})
	require.NoError(t, err)
	require.Equal(t, RoleAuthority, joined.Role)

	b := newTestSession(t, rc, "device-b")
	_, err = b.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{RoomCode: joined.RoomId})
	require.NoError(t, err)

	go b.service.Run(ctx)
	// let the follower's subscription settle
	time.Sleep(50 * time.Millisecond)

	// no explicit transition is sent; the ticker alone must re-synchronize
	a.player.position = 200
	a.player.playing = true
	a.service.heartbeatInterval = 20 * time.Millisecond
	go a.service.Run(ctx)

	require.Eventually(t, func() bool {
		position, playing := b.player.Position()
		return playing && position == 200
	}, 2*time.Second, 10*time.Millisecond, "the heartbeat must pull a drifted follower back")
}

func TestHeartbeatSilentWhilePaused(t *testing.T) {
	rc := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newTestSession(t, rc, "device-a")
	_, err := a.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{})
	require.NoError(t, err)

	a.player.position = 200
	a.service.heartbeatInterval = 20 * time.Millisecond
	go a.service.Run(ctx)

	time.Sleep(150 * time.Millisecond)

	state, err := a.service.GetRoomState(ctx)
	require.NoError(t, err)
	assert.Nil(t, state.Player, "a paused authority must not broadcast")
}

func TestHeartbeatFollowerNeverPublishes(t *testing.T) {
	rc := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newTestSession(t, rc, "device-a")
	joined, err := a.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{})
	require.NoError(t, err)

	b := newTestSession(t, rc, "device-b")
	_, err = b.service.JoinOrCreateRoom(ctx, &JoinOrCreateRoomParams{RoomCode: joined.RoomId})
	require.NoError(t, err)

	b.player.position = 50
	b.player.playing = true
	b.service.heartbeatInterval = 20 * time.Millisecond
	go b.service.Run(ctx)

	time.Sleep(150 * time.Millisecond)

	state, err := a.service.GetRoomState(ctx)
	require.NoError(t, err)
	assert.Nil(t, state.Player, "a playing follower must not broadcast")
}
