package dice

import (
	chatmessage "github.com/KirkDiggler/simulacrum/internal/repositories/chat_message"
)

// RollActionInput identifies the action an actor rolls
type RollActionInput struct {
	ActorID string
	ItemID  string
}

// RollActionOutput defines the response for rolling an action. Message is
// nil when the roll was gated off.
type RollActionOutput struct {
	Message *chatmessage.ChatMessage
	// Reason explains a gated roll
	Reason string
}

// Rolled reports whether a roll was made
func (o *RollActionOutput) Rolled() bool {
	return o != nil && o.Message != nil
}

// ListMessagesInput defines the request for an actor's chat log
type ListMessagesInput struct {
	ActorID string
	Limit   int
}

// ListMessagesOutput defines the response for an actor's chat log
type ListMessagesOutput struct {
	Messages []*chatmessage.ChatMessage
}
