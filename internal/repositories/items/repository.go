// Package items provides the interface for item persistence
package items

//go:generate mockgen -destination=mock/mock_repository.go -package=itemsmock github.com/KirkDiggler/simulacrum/internal/repositories/items Repository

import (
	"context"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
)

// Repository defines the interface for item persistence. Items are stored
// under their owner: an actor id for embedded items or
// simulacrum.WorldOwnerID for world items.
type Repository interface {
	// Create creates a new item
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if an item with the same owner and ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an item by owner and ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the item doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves every item of an owner, optionally filtered by type
	// Returns errors.InvalidArgument for an empty owner
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Update replaces an existing item
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the item doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes items of one owner. IDs that don't exist are skipped.
	// Returns errors.InvalidArgument for an empty owner
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// DeleteOwner deletes every item of an owner together with its indexes
	DeleteOwner(ctx context.Context, input DeleteOwnerInput) (*DeleteOwnerOutput, error)

	// FindInstance looks up the copy of a canonical action held by an owner
	// Returns errors.NotFound if the owner holds no live copy
	FindInstance(ctx context.Context, input FindInstanceInput) (*FindInstanceOutput, error)

	// Apply writes a changeset in one transaction
	// Returns errors.InvalidArgument if an item belongs to another owner
	Apply(ctx context.Context, input ApplyInput) (*ApplyOutput, error)
}

// Changeset is a group of writes against one owner that is stored atomically.
// Creates must not exist yet, Updates must; neither is checked inside the
// transaction.
type Changeset struct {
	OwnerID string
	Creates []*simulacrum.Item
	Updates []*simulacrum.Item
	Deletes []*simulacrum.Item
}

// Empty reports whether the changeset writes nothing
func (c *Changeset) Empty() bool {
	return len(c.Creates) == 0 && len(c.Updates) == 0 && len(c.Deletes) == 0
}

// CreateInput defines the input for creating an item
type CreateInput struct {
	Item *simulacrum.Item
}

// CreateOutput defines the output for creating an item
type CreateOutput struct {
	Item *simulacrum.Item
}

// GetInput defines the input for getting an item
type GetInput struct {
	OwnerID string
	ID      string
}

// GetOutput defines the output for getting an item
type GetOutput struct {
	Item *simulacrum.Item
}

// ListInput defines the input for listing items
type ListInput struct {
	OwnerID string
	// Type filters the result when set
	Type simulacrum.ItemType
}

// ListOutput defines the output for listing items
type ListOutput struct {
	Items []*simulacrum.Item
}

// UpdateInput defines the input for updating an item
type UpdateInput struct {
	Item *simulacrum.Item
}

// UpdateOutput defines the output for updating an item
type UpdateOutput struct {
	Item *simulacrum.Item
}

// DeleteInput defines the input for deleting items
type DeleteInput struct {
	OwnerID string
	IDs     []string
}

// DeleteOutput defines the output for deleting items
type DeleteOutput struct {
	// Deleted holds the ids that existed and were removed
	Deleted []string
}

// DeleteOwnerInput defines the input for deleting all items of an owner
type DeleteOwnerInput struct {
	OwnerID string
}

// DeleteOwnerOutput defines the output for deleting all items of an owner
type DeleteOwnerOutput struct {
	Deleted int
}

// FindInstanceInput defines the input for an instance index lookup
type FindInstanceInput struct {
	OwnerID      string
	OriginalUUID string
}

// FindInstanceOutput defines the output for an instance index lookup
type FindInstanceOutput struct {
	Item *simulacrum.Item
}

// ApplyInput defines the input for applying a changeset
type ApplyInput struct {
	Changeset *Changeset
}

// ApplyOutput defines the output for applying a changeset
type ApplyOutput struct {
	Created int
	Updated int
	Deleted int
}
