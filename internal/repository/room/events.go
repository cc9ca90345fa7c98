package room

import "encoding/json"

// Event kinds published to the room channel on every mutation.
const (
	EventPlayerUpdated  = "PLAYER_UPDATED"
	EventQueueUpdated   = "QUEUE_UPDATED"
	EventMessageAdded   = "MESSAGE_ADDED"
	EventReactionAdded  = "REACTION_ADDED"
	EventSignalReceived = "SIGNAL_RECEIVED"
)

// Event is the envelope delivered to room subscribers. The transport only
// guarantees that subscribers eventually observe the latest written value;
// consumers must treat every payload as the newest available truth.
type Event struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// SignalNotice is the payload of EventSignalReceived. The signal body stays
// in the recipient's inbox; the notice only says whose inbox grew.
type SignalNotice struct {
	To string `json:"to"`
}
