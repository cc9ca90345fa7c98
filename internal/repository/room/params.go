package room

import "encoding/json"

type CreateRoomParams struct {
	RoomId    string
	CreatorId string
	CreatedAt int64
}

type SetQueueParams struct {
	RoomId       string
	Items        []QueueItem
	CurrentIndex int
	// ExpectedVersion is the version the writer read before mutating. The
	// write always succeeds; the returned version tells the writer whether
	// a concurrent write was overwritten.
	ExpectedVersion int64
}

type SetPlayerParams struct {
	RoomId      string
	CurrentTime float64
	IsPlaying   bool
	UpdatedAt   int64
	OriginTag   string
}

type AddMessageParams struct {
	RoomId string
	Author string
	Text   string
	SentAt int64
}

type AddReactionParams struct {
	RoomId string
	Kind   string
	SentAt int64
}

type AddSignalParams struct {
	RoomId  string
	To      string
	From    string
	Kind    string
	Payload json.RawMessage
	SentAt  int64
}

type PopSignalsParams struct {
	RoomId   string
	ClientId string
}
