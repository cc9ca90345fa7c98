package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cineroom/client/internal/repository/catalog"
	"github.com/cineroom/client/internal/repository/room"
	"github.com/cineroom/client/pkg/randstr"
	"github.com/cineroom/client/pkg/validator"
)

var (
	ErrNotJoined        = errors.New("not joined to a room")
	ErrEmptyMessage     = errors.New("empty message")
	ErrUnknownRecipient = errors.New("unknown signal recipient")
)

const roomCodeLength = 6

type iRoomRepo interface {
	CreateRoom(context.Context, *room.CreateRoomParams) (bool, error)
	GetRoom(context.Context, string) (room.Room, error)
	GetQueue(context.Context, string) (room.Queue, error)
	SetQueue(context.Context, *room.SetQueueParams) (int64, error)
	SetPlayer(context.Context, *room.SetPlayerParams) error
	GetPlayer(context.Context, string) (room.Player, error)
	AddMessage(context.Context, *room.AddMessageParams) error
	GetMessages(ctx context.Context, roomId string, limit int) ([]room.Message, error)
	AddReaction(context.Context, *room.AddReactionParams) error
	AddSignal(context.Context, *room.AddSignalParams) error
	PopSignals(context.Context, *room.PopSignalsParams) ([]room.Signal, error)
	Subscribe(ctx context.Context, roomId string) (<-chan room.Event, error)
}

type iCatalogRepo interface {
	UpdateStatus(ctx context.Context, itemRef, status string) error
	UpdateProgress(context.Context, *catalog.UpdateProgressParams) error
}

type iDeviceRepo interface {
	EnsureDeviceId() (string, error)
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

// Player is the local playback surface the engine drives. Playback runs on
// its own clock; none of these calls may block on the network.
type Player interface {
	Play()
	Pause()
	Seek(seconds float64)
	// Position returns the player's current time and whether it is playing.
	Position() (float64, bool)
	Duration() float64
}

// Notifier receives engine events destined for the UI layer.
type Notifier interface {
	Notify(kind string, payload any)
}

type Config struct {
	DisplayName       string
	ChatWindow        int
	HeartbeatInterval time.Duration
	ProgressInterval  time.Duration
	SeekCooldown      time.Duration
	DriftTolerance    float64
	ReactionTTL       time.Duration
}

type service struct {
	roomRepo    iRoomRepo
	catalogRepo iCatalogRepo
	deviceRepo  iDeviceRepo
	player      Player
	notifier    Notifier
	generator   iGenerator
	validate    *validator.Validator
	logger      *slog.Logger

	displayName       string
	chatWindow        int
	heartbeatInterval time.Duration
	progressInterval  time.Duration
	seekCooldown      time.Duration
	driftTolerance    float64
	reactionTTL       time.Duration

	// fixed per session
	deviceId   string
	sessionTag string
	roomId     string
	role       Role

	mu            sync.Mutex
	queue         room.Queue
	cooldownUntil time.Time
	watchingRef   string
}

func NewService(roomRepo iRoomRepo, catalogRepo iCatalogRepo, deviceRepo iDeviceRepo, player Player, notifier Notifier, cfg *Config, logger *slog.Logger) *service {
	s := service{
		roomRepo:          roomRepo,
		catalogRepo:       catalogRepo,
		deviceRepo:        deviceRepo,
		player:            player,
		notifier:          notifier,
		validate:          validator.NewValidator(),
		logger:            logger,
		displayName:       cfg.DisplayName,
		chatWindow:        cfg.ChatWindow,
		heartbeatInterval: cfg.HeartbeatInterval,
		progressInterval:  cfg.ProgressInterval,
		seekCooldown:      cfg.SeekCooldown,
		driftTolerance:    cfg.DriftTolerance,
		reactionTTL:       cfg.ReactionTTL,
		// regenerated on every engine start so restarted sessions never
		// suppress each other's broadcasts
		sessionTag: uuid.NewString(),
		role:       RoleFollower,
	}

	if s.chatWindow <= 0 {
		s.chatWindow = 50
	}
	if s.heartbeatInterval <= 0 {
		s.heartbeatInterval = time.Second
	}
	if s.progressInterval <= 0 {
		s.progressInterval = 5 * time.Second
	}
	if s.seekCooldown <= 0 {
		s.seekCooldown = 500 * time.Millisecond
	}
	if s.driftTolerance <= 0 {
		s.driftTolerance = 2.0
	}
	if s.reactionTTL <= 0 {
		s.reactionTTL = 5 * time.Second
	}

	letterBytes := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
	s.generator = randstr.New(letterBytes)

	return &s
}

// SessionTag is the per-connection origin tag attached to every player
// broadcast from this engine instance.
func (s *service) SessionTag() string {
	return s.sessionTag
}

func (s *service) DeviceId() string {
	return s.deviceId
}

func (s *service) Role() Role {
	return s.role
}

func (s *service) RoomId() string {
	return s.roomId
}
