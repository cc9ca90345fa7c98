package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/cineroom/client/internal/service/session"
	"github.com/cineroom/client/pkg/validator"
	"github.com/cineroom/client/pkg/wsrouter"
)

type iSessionService interface {
	GetRoomState(context.Context) (session.RoomState, error)
	Play(context.Context) error
	Pause(context.Context) error
	Seek(ctx context.Context, seconds float64) error
	AppendItem(context.Context, *session.AppendItemParams) (session.QueueItem, error)
	RemoveItem(ctx context.Context, index int) error
	SetCurrentIndex(ctx context.Context, index int) error
	Advance(context.Context) error
	MarkCompleted(context.Context) error
	SendMessage(ctx context.Context, author, text string) error
	SendReaction(ctx context.Context, kind string) error
	SendSignal(context.Context, *session.SendSignalParams) error
}

// controller is the local bridge between the engine and whatever renders
// it: a chi route upgrades the UI's connection to a websocket, commands come
// in through the message router, engine events fan out to every socket.
type controller struct {
	sessionService iSessionService
	player         *BridgePlayer
	broadcaster    *Broadcaster
	connRepo       iConnRepo
	upgrader       websocket.Upgrader
	validate       *validator.Validator
	wsmux          *wsrouter.WSRouter
	logger         *slog.Logger
}

func NewController(sessionService iSessionService, player *BridgePlayer, broadcaster *Broadcaster, connRepo iConnRepo, logger *slog.Logger) *controller {
	c := controller{
		sessionService: sessionService,
		player:         player,
		broadcaster:    broadcaster,
		connRepo:       connRepo,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// the bridge binds to loopback; the UI runs on any local port
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
	}
	c.wsmux = c.getWSRouter()

	return &c
}
