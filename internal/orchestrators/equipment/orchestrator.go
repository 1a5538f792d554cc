// Package equipment instantiates and releases the action copies that equipped
// skills and tools grant their actor
package equipment

//go:generate mockgen -destination=mock/mock_service.go -package=equipmentmock github.com/KirkDiggler/simulacrum/internal/orchestrators/equipment Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/simulacrum/internal/compendium"
	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/pkg/idgen"
	"github.com/KirkDiggler/simulacrum/internal/pkg/keylock"
	"github.com/KirkDiggler/simulacrum/internal/repositories/items"
)

// Service equips and unequips skills and tools. Every action copy is shared
// by all equipped items of its actor that reference the same canonical
// action; its bonusDice flag counts the extra holders.
type Service interface {
	// Equip instantiates or shares the item's actions. An item that already
	// holds children is left as is.
	Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error)

	// Unequip releases every child of the item. Copies held by no other item
	// are deleted.
	Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error)

	// ParentItems returns the skills and tools holding an action copy
	ParentItems(ctx context.Context, input *ParentItemsInput) (*ParentItemsOutput, error)

	// IsEditable reports whether sheets may edit an item. Action copies
	// held by a skill or tool are read-only.
	IsEditable(ctx context.Context, input *IsEditableInput) (*IsEditableOutput, error)
}

// Config holds the dependencies for the equipment orchestrator
type Config struct {
	ItemRepo    items.Repository
	Resolver    compendium.Resolver
	IDGenerator idgen.Generator
	EventBus    events.EventBus

	// Locks serializes work per actor. Share it with every other writer of
	// the actor's items. A private set is created when nil.
	Locks *keylock.Locks
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

// Orchestrator implements Service
type Orchestrator struct {
	itemRepo items.Repository
	resolver compendium.Resolver
	idGen    idgen.Generator
	eventBus events.EventBus
	locks    *keylock.Locks
}

// New creates a new equipment orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	locks := cfg.Locks
	if locks == nil {
		locks = keylock.New()
	}

	return &Orchestrator{
		itemRepo: cfg.ItemRepo,
		resolver: cfg.Resolver,
		idGen:    cfg.IDGenerator,
		eventBus: cfg.EventBus,
		locks:    locks,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

func (o *Orchestrator) Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.ActorID, input.ItemID); err != nil {
		return nil, err
	}

	if input.ActorID == simulacrum.WorldOwnerID {
		slog.DebugContext(ctx, "ignoring equip of world item", "item_id", input.ItemID)
		return &EquipOutput{}, nil
	}

	unlock := o.locks.Lock(input.ActorID)
	defer unlock()

	return o.equip(ctx, input)
}

// equip does the work of Equip. The caller holds the actor lock.
func (o *Orchestrator) equip(ctx context.Context, input *EquipInput) (*EquipOutput, error) {
	item, err := o.getItem(ctx, input.ActorID, input.ItemID)
	if err != nil {
		return nil, err
	}

	output := &EquipOutput{Item: item}
	if !item.Type.Equippable() {
		slog.DebugContext(ctx, "ignoring equip of non equippable item",
			"actor_id", input.ActorID,
			"item_id", item.ID,
			"type", item.Type)
		return output, nil
	}
	if len(item.Children()) > 0 {
		slog.DebugContext(ctx, "item already holds its actions",
			"actor_id", input.ActorID,
			"item_id", item.ID,
			"children", item.Children())
		return output, nil
	}

	cs := &items.Changeset{OwnerID: input.ActorID}
	children := make([]string, 0, len(item.System.Actions))
	seen := make(map[string]bool, len(item.System.Actions))

	for _, uuid := range item.System.Actions {
		if seen[uuid] {
			continue
		}
		seen[uuid] = true

		action, err := o.resolver.Resolve(ctx, uuid)
		if err != nil {
			if !errors.IsMissingReference(err) && !errors.IsInvalidArgument(err) {
				return nil, errors.Wrapf(err, "failed to resolve action %s", uuid)
			}
			slog.WarnContext(ctx, "skipping unresolved action",
				"actor_id", input.ActorID,
				"item_id", item.ID,
				"uuid", uuid,
				"error", err.Error())
			output.Skipped = append(output.Skipped, uuid)
			continue
		}
		if action.Type != simulacrum.ItemTypeAction {
			slog.WarnContext(ctx, "skipping reference that is not an action",
				"actor_id", input.ActorID,
				"item_id", item.ID,
				"uuid", uuid,
				"type", action.Type)
			output.Skipped = append(output.Skipped, uuid)
			continue
		}

		canonical := canonicalUUID(action)
		if seen[canonical] && canonical != uuid {
			continue
		}
		seen[canonical] = true

		instance, err := o.itemRepo.FindInstance(ctx, items.FindInstanceInput{
			OwnerID:      input.ActorID,
			OriginalUUID: canonical,
		})
		switch {
		case err == nil:
			shared := instance.Item
			shared.SetBonusDice(shared.BonusDice() + 1)
			cs.Updates = append(cs.Updates, shared)
			output.Shared = append(output.Shared, shared)
			children = append(children, shared.ID)
		case errors.IsNotFound(err):
			created := o.instantiate(input.ActorID, canonical, action)
			cs.Creates = append(cs.Creates, created)
			output.Created = append(output.Created, created)
			children = append(children, created.ID)
		default:
			return nil, errors.Wrapf(err, "failed to look up instance of %s", canonical)
		}
	}

	item.SetChildren(children)
	item.System.Equipped = true
	cs.Updates = append(cs.Updates, item)

	if _, err := o.itemRepo.Apply(ctx, items.ApplyInput{Changeset: cs}); err != nil {
		return nil, errors.Wrapf(err, "failed to equip item %s", item.ID)
	}

	slog.InfoContext(ctx, "equipped item",
		"actor_id", input.ActorID,
		"item_id", item.ID,
		"created", len(output.Created),
		"shared", len(output.Shared),
		"skipped", len(output.Skipped))

	o.publish(ctx, EventActionsEquipped, item, map[string]any{
		EventKeyActorID:  input.ActorID,
		EventKeyChildren: children,
		EventKeyCreated:  itemIDs(output.Created),
	})

	return output, nil
}

func (o *Orchestrator) Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.ActorID, input.ItemID); err != nil {
		return nil, err
	}

	if input.ActorID == simulacrum.WorldOwnerID {
		slog.DebugContext(ctx, "ignoring unequip of world item", "item_id", input.ItemID)
		return &UnequipOutput{}, nil
	}

	unlock := o.locks.Lock(input.ActorID)
	defer unlock()

	return o.unequip(ctx, input)
}

// unequip does the work of Unequip. The caller holds the actor lock.
func (o *Orchestrator) unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error) {
	item, err := o.getItem(ctx, input.ActorID, input.ItemID)
	if err != nil {
		return nil, err
	}

	output := &UnequipOutput{Item: item}
	if !item.Type.Equippable() {
		slog.DebugContext(ctx, "ignoring unequip of non equippable item",
			"actor_id", input.ActorID,
			"item_id", item.ID,
			"type", item.Type)
		return output, nil
	}

	cs := &items.Changeset{OwnerID: input.ActorID}
	for _, childID := range item.Children() {
		out, err := o.itemRepo.Get(ctx, items.GetInput{OwnerID: input.ActorID, ID: childID})
		if err != nil {
			if !errors.IsNotFound(err) {
				return nil, errors.Wrapf(err, "failed to get child %s", childID)
			}
			slog.WarnContext(ctx, "skipping missing child",
				"actor_id", input.ActorID,
				"item_id", item.ID,
				"child_id", childID)
			output.Missing = append(output.Missing, childID)
			continue
		}

		child := out.Item
		if n := child.BonusDice(); n > 0 {
			child.SetBonusDice(n - 1)
			cs.Updates = append(cs.Updates, child)
			output.Decremented = append(output.Decremented, child)
			continue
		}
		cs.Deletes = append(cs.Deletes, child)
		output.Deleted = append(output.Deleted, child.ID)
	}

	if len(item.Children()) == 0 && !item.System.Equipped {
		return output, nil
	}

	item.SetChildren(nil)
	item.System.Equipped = false
	cs.Updates = append(cs.Updates, item)

	if _, err := o.itemRepo.Apply(ctx, items.ApplyInput{Changeset: cs}); err != nil {
		return nil, errors.Wrapf(err, "failed to unequip item %s", item.ID)
	}

	slog.InfoContext(ctx, "unequipped item",
		"actor_id", input.ActorID,
		"item_id", item.ID,
		"deleted", len(output.Deleted),
		"decremented", len(output.Decremented),
		"missing", len(output.Missing))

	o.publish(ctx, EventActionsUnequipped, item, map[string]any{
		EventKeyActorID: input.ActorID,
		EventKeyDeleted: output.Deleted,
	})

	return output, nil
}

func (o *Orchestrator) ParentItems(ctx context.Context, input *ParentItemsInput) (*ParentItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.ActorID, input.ActionID); err != nil {
		return nil, err
	}

	out, err := o.itemRepo.List(ctx, items.ListInput{OwnerID: input.ActorID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list items of %s", input.ActorID)
	}

	parents := make([]*simulacrum.Item, 0)
	for _, item := range out.Items {
		if item.Type.Equippable() && item.HasChild(input.ActionID) {
			parents = append(parents, item)
		}
	}

	return &ParentItemsOutput{Parents: parents}, nil
}

func (o *Orchestrator) IsEditable(ctx context.Context, input *IsEditableInput) (*IsEditableOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateTarget(input.ActorID, input.ItemID); err != nil {
		return nil, err
	}

	item, err := o.getItem(ctx, input.ActorID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Type != simulacrum.ItemTypeAction || !item.IsOwned() {
		return &IsEditableOutput{Editable: true}, nil
	}

	parents, err := o.ParentItems(ctx, &ParentItemsInput{ActorID: input.ActorID, ActionID: item.ID})
	if err != nil {
		return nil, err
	}

	return &IsEditableOutput{Editable: len(parents.Parents) == 0}, nil
}

// instantiate clones a canonical action into a new copy owned by the actor
func (o *Orchestrator) instantiate(actorID, canonical string, action *simulacrum.Item) *simulacrum.Item {
	copied := action.Clone()
	copied.ID = o.idGen.Generate()
	copied.OwnerID = actorID
	copied.Pack = ""
	copied.System.Equipped = false
	copied.UnsetFlag(simulacrum.FlagChildren)
	copied.UnsetFlag(simulacrum.FlagBonusDice)
	copied.SetOriginalUUID(canonical)
	return copied
}

func (o *Orchestrator) getItem(ctx context.Context, actorID, itemID string) (*simulacrum.Item, error) {
	out, err := o.itemRepo.Get(ctx, items.GetInput{OwnerID: actorID, ID: itemID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get item %s", itemID)
	}
	return out.Item, nil
}

func (o *Orchestrator) publish(ctx context.Context, eventType string, item *simulacrum.Item, values map[string]any) {
	event := events.NewGameEvent(eventType, item, nil)
	for k, v := range values {
		event.Context().Set(k, v)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish equipment event",
			"event_type", eventType,
			"item_id", item.ID,
			"error", err.Error())
	}
}

// canonicalUUID is the identifier copies of action are indexed under. A
// copy resolves to the action it was cloned from.
func canonicalUUID(action *simulacrum.Item) string {
	if orig := action.OriginalUUID(); orig != "" {
		return orig
	}
	return action.DocumentUUID()
}

func validateTarget(actorID, itemID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("actorID", actorID, vb)
	errors.ValidateRequired("itemID", itemID, vb)
	return vb.Build()
}

func itemIDs(list []*simulacrum.Item) []string {
	ids := make([]string, len(list))
	for i, item := range list {
		ids[i] = item.ID
	}
	return ids
}
