package documents

import (
	"github.com/KirkDiggler/simulacrum/internal/config"
	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
)

// CreateActorInput defines the request for creating an actor. An empty ID is
// generated.
type CreateActorInput struct {
	Actor *simulacrum.Actor
}

// CreateActorOutput defines the response for creating an actor
type CreateActorOutput struct {
	Actor *simulacrum.Actor
}

// GetActorInput defines the request for getting an actor
type GetActorInput struct {
	ActorID string
}

// GetActorOutput defines the response for getting an actor
type GetActorOutput struct {
	Actor *simulacrum.Actor
}

// ListActorsInput defines the request for listing actors
type ListActorsInput struct {
	Type simulacrum.ActorType
}

// ListActorsOutput defines the response for listing actors
type ListActorsOutput struct {
	Actors []*simulacrum.Actor
}

// UpdateActorInput defines the request for updating an actor
type UpdateActorInput struct {
	ActorID string
	Changes *simulacrum.ActorChanges
}

// UpdateActorOutput defines the response for updating an actor
type UpdateActorOutput struct {
	Actor *simulacrum.Actor
}

// DeleteActorInput defines the request for deleting an actor
type DeleteActorInput struct {
	ActorID string
}

// DeleteActorOutput defines the response for deleting an actor
type DeleteActorOutput struct {
	// ItemsDeleted counts the owned items removed with the actor
	ItemsDeleted int
}

// GetActorSheetInput defines the request for an actor sheet
type GetActorSheetInput struct {
	ActorID string
}

// GetActorSheetOutput defines the response for an actor sheet
type GetActorSheetOutput struct {
	Sheet *ActorSheet
}

// ActorSheet is the data a character or node sheet renders
type ActorSheet struct {
	Actor   *simulacrum.Actor
	Skills  []*SheetItem
	Tools   []*SheetItem
	Actions []*SheetItem

	// NodeTypeLabel is the display label of the actor's node type
	NodeTypeLabel string
	// NodeTypes are the choices a node sheet offers
	NodeTypes []config.Label
}

// SheetItem is an item as a sheet shows it
type SheetItem struct {
	Item *simulacrum.Item
	// Editable is false for action copies held by an equipped item
	Editable bool
	// Parents names the skills and tools holding an action
	Parents []string
}

// CreateItemInput defines the request for creating an item. An empty
// OwnerID creates a world item and an empty ID is generated.
type CreateItemInput struct {
	Item *simulacrum.Item
}

// CreateItemOutput defines the response for creating an item
type CreateItemOutput struct {
	Item *simulacrum.Item
}

// GetItemInput defines the request for getting an item
type GetItemInput struct {
	OwnerID string
	ItemID  string
}

// GetItemOutput defines the response for getting an item
type GetItemOutput struct {
	Item *simulacrum.Item
}

// UpdateItemInput defines the request for updating an item
type UpdateItemInput struct {
	OwnerID string
	ItemID  string
	Changes *simulacrum.ItemChanges
}

// UpdateItemOutput defines the response for updating an item
type UpdateItemOutput struct {
	Item *simulacrum.Item
}

// DeleteItemInput defines the request for deleting an item
type DeleteItemInput struct {
	OwnerID string
	ItemID  string
}

// DeleteItemOutput defines the response for deleting an item
type DeleteItemOutput struct {
	Deleted bool
}

// AttachActionInput defines the request for attaching an action to a skill
// or tool
type AttachActionInput struct {
	OwnerID string
	ItemID  string
	// UUID identifies the action in a pack or the store
	UUID string
}

// AttachActionOutput defines the response for attaching an action
type AttachActionOutput struct {
	Item *simulacrum.Item
	// Attached is false when the action was already present
	Attached bool
}
