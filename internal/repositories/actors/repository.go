// Package actors provides the interface for actor persistence
package actors

//go:generate mockgen -destination=mock/mock_repository.go -package=actorsmock github.com/KirkDiggler/simulacrum/internal/repositories/actors Repository

import (
	"context"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
)

// Repository defines the interface for actor persistence
type Repository interface {
	// Create creates a new actor
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if an actor with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an actor by ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if the actor doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves every actor, optionally filtered by type
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Update replaces an existing actor
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the actor doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes an actor by ID
	// Returns errors.NotFound if the actor doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating an actor
type CreateInput struct {
	Actor *simulacrum.Actor
}

// CreateOutput defines the output for creating an actor
type CreateOutput struct {
	Actor *simulacrum.Actor
}

// GetInput defines the input for getting an actor
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an actor
type GetOutput struct {
	Actor *simulacrum.Actor
}

// ListInput defines the input for listing actors
type ListInput struct {
	Type simulacrum.ActorType
}

// ListOutput defines the output for listing actors
type ListOutput struct {
	Actors []*simulacrum.Actor
}

// UpdateInput defines the input for updating an actor
type UpdateInput struct {
	Actor *simulacrum.Actor
}

// UpdateOutput defines the output for updating an actor
type UpdateOutput struct {
	Actor *simulacrum.Actor
}

// DeleteInput defines the input for deleting an actor
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting an actor
type DeleteOutput struct {
	// Empty for now, can be extended later
}
