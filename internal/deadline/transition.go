package deadline

import (
	"encoding/json"

	"dcportal/internal/queue"
)

// Record kinds carried by transition messages.
const (
	KindComplaint = "complaint"
	KindMeeting   = "meeting"
)

// MessageType marks transition messages on the queue.
const MessageType = "transition"

// Transition describes one automatic status change proposed by the sweep.
type Transition struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Target string `json:"target"`
}

// IdempotencyKey identifies this transition for all time: the sweep claims
// it before publishing so repeated ticks over the same record publish once.
func (t Transition) IdempotencyKey() string {
	return "auto:" + t.Kind + ":" + t.ID + ":" + t.Target
}

// DecodeTransition unpacks a transition from a queue message body.
func DecodeTransition(msg queue.Message) (Transition, error) {
	var t Transition
	err := json.Unmarshal(msg.Body, &t)
	return t, err
}
