// Package chatmessage provides repository interface and types for roll
// results posted to the chat log
package chatmessage

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=chatmessagemock github.com/KirkDiggler/simulacrum/internal/repositories/chat_message Repository

// ChatMessage is one roll result attributed to an actor
type ChatMessage struct {
	ID string

	// Speaker is the actor the roll is attributed to
	Speaker Speaker

	// Flavor is the header line, the rolled item's name
	Flavor string

	// Roll is the evaluated dice expression
	Roll Roll

	// When this message was created
	CreatedAt time.Time

	// When this message expires
	ExpiresAt time.Time
}

// Speaker identifies who a message is attributed to
type Speaker struct {
	ActorID string
	Alias   string
}

// Roll is an evaluated formula such as "3d6"
type Roll struct {
	Formula     string
	Dice        []int
	Total       int
	Description string
}

// CreateInput contains parameters for creating a chat message
type CreateInput struct {
	Message *ChatMessage
	TTL     time.Duration // How long the message should live
}

// CreateOutput contains the result of creating a chat message
type CreateOutput struct {
	Message *ChatMessage
}

// ListBySpeakerInput contains parameters for listing an actor's messages
type ListBySpeakerInput struct {
	ActorID string
	// Limit caps the number of newest messages returned, 0 for all
	Limit int
}

// ListBySpeakerOutput contains an actor's messages, oldest first
type ListBySpeakerOutput struct {
	Messages []*ChatMessage
}

// Repository defines the interface for chat message storage operations
type Repository interface {
	// Create stores a new message with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// ListBySpeaker returns the live messages attributed to an actor
	ListBySpeaker(ctx context.Context, input ListBySpeakerInput) (*ListBySpeakerOutput, error)
}
