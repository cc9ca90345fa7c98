package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cineroom/client/internal/controller"
	catalogredis "github.com/cineroom/client/internal/repository/catalog/redis"
	"github.com/cineroom/client/internal/repository/connection/inmemory"
	devicefile "github.com/cineroom/client/internal/repository/device/file"
	roomredis "github.com/cineroom/client/internal/repository/room/redis"
	"github.com/cineroom/client/internal/service/session"
)

func TestTwoClientSession(t *testing.T) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	t.Cleanup(func() { rc.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broadcaster1 := controller.NewBroadcaster(inmemory.NewRepo(), slog.Default())
	player1 := controller.NewBridgePlayer(broadcaster1)
	svc1 := session.NewService(
		roomredis.NewRepo(rc, time.Hour),
		catalogredis.NewRepo(rc, time.Hour),
		devicefile.NewRepo(filepath.Join(t.TempDir(), "client1", "device-id")),
		player1,
		broadcaster1,
		&session.Config{DisplayName: "client1"},
		slog.Default(),
	)

	broadcaster2 := controller.NewBroadcaster(inmemory.NewRepo(), slog.Default())
	player2 := controller.NewBridgePlayer(broadcaster2)
	svc2 := session.NewService(
		roomredis.NewRepo(rc, time.Hour),
		catalogredis.NewRepo(rc, time.Hour),
		devicefile.NewRepo(filepath.Join(t.TempDir(), "client2", "device-id")),
		player2,
		broadcaster2,
		&session.Config{DisplayName: "client2"},
		slog.Default(),
	)

	// client 1 starts a room with a seeded video
	joined1, err := svc1.JoinOrCreateRoom(ctx, &session.JoinOrCreateRoomParams{
		InitialItem: &session.QueueItem{Title: "First", URL: "https://youtu.be/a"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, joined1.RoomId, "room id is empty")
	assert.Equal(t, session.RoleAuthority, joined1.Role)
	t.Log("room created")

	// client 2 joins with the shared code
	joined2, err := svc2.JoinOrCreateRoom(ctx, &session.JoinOrCreateRoomParams{
		RoomCode: joined1.RoomId,
	})
	require.NoError(t, err)
	assert.Equal(t, session.RoleFollower, joined2.Role)
	t.Log("client 2 joined")

	go svc2.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	// authority starts playback mid-video
	player1.ReportTime(0, false, 300)
	require.NoError(t, svc1.Play(ctx))
	require.NoError(t, svc1.Seek(ctx, 120))

	require.Eventually(t, func() bool {
		position, playing := player2.Position()
		return playing && position >= 120 && position < 122
	}, 2*time.Second, 10*time.Millisecond, "follower must converge")
	t.Log("playback converged")

	// chat flows through the shared store
	require.NoError(t, svc2.SendMessage(ctx, "", "hello"))
	state, err := svc1.GetRoomState(ctx)
	require.NoError(t, err)
	require.Len(t, state.Messages, 1)
	assert.Equal(t, "client2", state.Messages[0].Author)
	t.Log("message delivered")

	t.Log(rc.Keys(ctx, "*").Val())
}
