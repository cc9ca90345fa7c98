package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cineroom/client/internal/repository/room"
	"github.com/cineroom/client/pkg/mediadata"
)

type JoinOrCreateRoomParams struct {
	// RoomCode is the shareable short code. Empty means start a new room.
	RoomCode string
	// InitialItem seeds the queue when it arrives from a deep link and the
	// queue is still empty.
	InitialItem *QueueItem
}

type JoinOrCreateRoomResponse struct {
	RoomId   string
	DeviceId string
	Role     Role
}

// JoinOrCreateRoom establishes the client identity, resolves or creates the
// room record, and derives the authority role. Two clients racing on a fresh
// code both attempt the create; the store records exactly one creator and
// the role derivation follows whatever it recorded.
func (s *service) JoinOrCreateRoom(ctx context.Context, params *JoinOrCreateRoomParams) (JoinOrCreateRoomResponse, error) {
	deviceId, err := s.deviceRepo.EnsureDeviceId()
	if err != nil {
		return JoinOrCreateRoomResponse{}, fmt.Errorf("failed to ensure device id: %w", err)
	}
	s.deviceId = deviceId

	roomId := params.RoomCode
	if roomId == "" {
		roomId = s.generator.GenerateRandomString(roomCodeLength)
	}

	created, err := s.roomRepo.CreateRoom(ctx, &room.CreateRoomParams{
		RoomId:    roomId,
		CreatorId: deviceId,
		CreatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return JoinOrCreateRoomResponse{}, fmt.Errorf("failed to create room: %w", err)
	}

	rec, err := s.roomRepo.GetRoom(ctx, roomId)
	if err != nil {
		return JoinOrCreateRoomResponse{}, fmt.Errorf("failed to get room: %w", err)
	}

	s.roomId = roomId
	s.role = RoleFollower
	if rec.CreatorId == deviceId {
		s.role = RoleAuthority
	}

	if params.InitialItem != nil {
		if err := s.seedQueue(ctx, params.InitialItem); err != nil {
			return JoinOrCreateRoomResponse{}, fmt.Errorf("failed to seed queue: %w", err)
		}
	}

	queue, err := s.roomRepo.GetQueue(ctx, roomId)
	if err != nil {
		return JoinOrCreateRoomResponse{}, fmt.Errorf("failed to get queue: %w", err)
	}
	s.mu.Lock()
	s.queue = queue
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "joined room",
		"room_id", roomId,
		"device_id", deviceId,
		"role", s.role,
		"created", created,
	)

	return JoinOrCreateRoomResponse{
		RoomId:   roomId,
		DeviceId: deviceId,
		Role:     s.role,
	}, nil
}

func (s *service) seedQueue(ctx context.Context, item *QueueItem) error {
	queue, err := s.roomRepo.GetQueue(ctx, s.roomId)
	if err != nil {
		return err
	}
	if len(queue.Items) > 0 {
		return nil
	}

	seeded := room.QueueItem(*item)
	if seeded.Id == "" {
		seeded.Id = uuid.NewString()
	}
	seeded.URL = mediadata.EmbedURL(seeded.URL)

	if _, err := s.roomRepo.SetQueue(ctx, &room.SetQueueParams{
		RoomId:          s.roomId,
		Items:           []room.QueueItem{seeded},
		CurrentIndex:    0,
		ExpectedVersion: queue.Version,
	}); err != nil {
		return err
	}

	return nil
}

// GetRoomState assembles the snapshot handed to a UI that just attached.
func (s *service) GetRoomState(ctx context.Context) (RoomState, error) {
	if s.roomId == "" {
		return RoomState{}, ErrNotJoined
	}

	queue, err := s.roomRepo.GetQueue(ctx, s.roomId)
	if err != nil {
		return RoomState{}, fmt.Errorf("failed to get queue: %w", err)
	}

	state := RoomState{
		RoomId:   s.roomId,
		DeviceId: s.deviceId,
		Role:     s.role,
		Queue:    queueFromRepo(queue),
	}

	player, err := s.roomRepo.GetPlayer(ctx, s.roomId)
	if err != nil {
		if !errors.Is(err, room.ErrPlayerNotFound) {
			return RoomState{}, fmt.Errorf("failed to get player: %w", err)
		}
		// no broadcast yet, playback starts from rest
	} else {
		playerState := playerFromRepo(player)
		state.Player = &playerState
	}

	messages, err := s.roomRepo.GetMessages(ctx, s.roomId, s.chatWindow)
	if err != nil {
		return RoomState{}, fmt.Errorf("failed to get messages: %w", err)
	}
	state.Messages = make([]Message, 0, len(messages))
	for _, message := range messages {
		state.Messages = append(state.Messages, messageFromRepo(message))
	}

	return state, nil
}
