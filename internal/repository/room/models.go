package room

import "encoding/json"

// Room is the root record of a session. The creator id never changes once
// written; the authority role is derived from it, not stored.
type Room struct {
	CreatorId string `redis:"creator_id" json:"creator_id"`
	CreatedAt int64  `redis:"created_at" json:"created_at"`
}

type QueueItem struct {
	Id          string `json:"id" validate:"required"`
	Title       string `json:"title"`
	URL         string `json:"url" validate:"required"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	ExternalRef string `json:"external_ref,omitempty"`
}

// Queue is replaced as a whole document on every mutation. Version grows by
// one per write so a read-modify-write cycle can detect a lost update.
type Queue struct {
	Items        []QueueItem `json:"items"`
	CurrentIndex int         `json:"current_index"`
	Version      int64       `json:"version"`
}

type Player struct {
	CurrentTime float64 `redis:"current_time" json:"current_time"`
	IsPlaying   bool    `redis:"is_playing" json:"is_playing"`
	UpdatedAt   int64   `redis:"updated_at" json:"updated_at" validate:"required"`
	OriginTag   string  `redis:"origin_tag" json:"origin_tag" validate:"required"`
}

type Message struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	SentAt int64  `json:"sent_at"`
}

type Reaction struct {
	Kind   string `json:"kind" validate:"required"`
	SentAt int64  `json:"sent_at" validate:"required"`
}

// Signal is an opaque connection-negotiation payload relayed between two
// clients. The engine never interprets the payload.
type Signal struct {
	From    string          `json:"from"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
	SentAt  int64           `json:"sent_at"`
}
