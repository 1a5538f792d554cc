package equipment

import (
	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
)

// Event types published on the event bus
const (
	EventActionsEquipped   = "equipment.actions_equipped"
	EventActionsUnequipped = "equipment.actions_unequipped"
)

// Keys set on the context of published events
const (
	EventKeyActorID  = "actor_id"
	EventKeyChildren = "children"
	EventKeyCreated  = "created"
	EventKeyDeleted  = "deleted"
)

// EquipInput identifies the skill or tool to equip
type EquipInput struct {
	ActorID string
	ItemID  string
}

// EquipOutput reports what equipping changed
type EquipOutput struct {
	Item *simulacrum.Item
	// Created holds the new action copies
	Created []*simulacrum.Item
	// Shared holds existing copies whose counter was incremented
	Shared []*simulacrum.Item
	// Skipped holds action identifiers that did not resolve to an action
	Skipped []string
}

// UnequipInput identifies the skill or tool to unequip
type UnequipInput struct {
	ActorID string
	ItemID  string
}

// UnequipOutput reports what unequipping changed
type UnequipOutput struct {
	Item *simulacrum.Item
	// Deleted holds the ids of copies that were released for the last time
	Deleted []string
	// Decremented holds copies still shared with other items
	Decremented []*simulacrum.Item
	// Missing holds child ids that no longer existed
	Missing []string
}

// ParentItemsInput identifies an action copy on an actor
type ParentItemsInput struct {
	ActorID  string
	ActionID string
}

// ParentItemsOutput lists the skills and tools holding the action
type ParentItemsOutput struct {
	Parents []*simulacrum.Item
}

// IsEditableInput identifies an item on an actor
type IsEditableInput struct {
	ActorID string
	ItemID  string
}

// IsEditableOutput reports whether sheets may edit the item
type IsEditableOutput struct {
	Editable bool
}
