package session

import (
	"encoding/json"

	"github.com/cineroom/client/internal/repository/room"
)

// Role is fixed at room-join time and never changes during a session.
type Role string

const (
	RoleAuthority Role = "authority"
	RoleFollower  Role = "follower"
)

// Notification kinds delivered to the UI layer.
const (
	NotifyPlayerUpdated  = "PLAYER_UPDATED"
	NotifyQueueUpdated   = "QUEUE_UPDATED"
	NotifyMessageAdded   = "MESSAGE_ADDED"
	NotifyReactionAdded  = "REACTION_ADDED"
	NotifySignalReceived = "SIGNAL_RECEIVED"
)

type QueueItem struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	ExternalRef string `json:"external_ref,omitempty"`
}

type Queue struct {
	Items        []QueueItem `json:"items"`
	CurrentIndex int         `json:"current_index"`
	Version      int64       `json:"version"`
}

// PlayerState timestamps are milliseconds since epoch.
type PlayerState struct {
	CurrentTime float64 `json:"current_time"`
	IsPlaying   bool    `json:"is_playing"`
	UpdatedAt   int64   `json:"updated_at"`
	OriginTag   string  `json:"origin_tag"`
}

type Message struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	SentAt int64  `json:"sent_at"`
}

type Reaction struct {
	Kind   string `json:"kind"`
	SentAt int64  `json:"sent_at"`
}

type Signal struct {
	From    string          `json:"from"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
	SentAt  int64           `json:"sent_at"`
}

type RoomState struct {
	RoomId   string       `json:"room_id"`
	DeviceId string       `json:"device_id"`
	Role     Role         `json:"role"`
	Queue    Queue        `json:"queue"`
	Player   *PlayerState `json:"player"`
	Messages []Message    `json:"messages"`
}

func queueFromRepo(q room.Queue) Queue {
	items := make([]QueueItem, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, QueueItem(item))
	}

	return Queue{
		Items:        items,
		CurrentIndex: q.CurrentIndex,
		Version:      q.Version,
	}
}

func playerFromRepo(p room.Player) PlayerState {
	return PlayerState{
		CurrentTime: p.CurrentTime,
		IsPlaying:   p.IsPlaying,
		UpdatedAt:   p.UpdatedAt,
		OriginTag:   p.OriginTag,
	}
}

func messageFromRepo(m room.Message) Message {
	return Message(m)
}
