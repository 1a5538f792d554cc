package documents

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/repositories/actors"
	"github.com/KirkDiggler/simulacrum/internal/repositories/items"
)

var targetStats = []string{
	simulacrum.StatResilience,
	simulacrum.StatInsight,
	simulacrum.StatSensitivity,
}

func (o *Orchestrator) CreateItem(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error) {
	if input == nil || input.Item == nil {
		return nil, errors.InvalidArgument("item is required")
	}

	item := input.Item.Clone()
	item.Pack = ""
	if item.OwnerID == "" {
		item.OwnerID = simulacrum.WorldOwnerID
	}
	// Equipment bookkeeping is only ever written by equip and unequip
	item.UnsetFlag(simulacrum.FlagChildren)
	item.UnsetFlag(simulacrum.FlagBonusDice)
	item.UnsetFlag(simulacrum.FlagOriginalUUID)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", item.Name, vb)
	errors.ValidateEnum("type", string(item.Type), simulacrum.ItemTypes(), vb)
	validateItemSystem(item.System, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lockOwner(item.OwnerID)
	defer unlock()

	if item.IsOwned() {
		if _, err := o.actorRepo.Get(ctx, actors.GetInput{ID: item.OwnerID}); err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.FailedPreconditionf("owner %s does not exist", item.OwnerID)
			}
			return nil, errors.Wrapf(err, "failed to get owner %s", item.OwnerID)
		}
	}

	if item.ID == "" {
		item.ID = o.idGen.Generate()
	}
	if err := o.hooks.PreCreateItem(ctx, item); err != nil {
		return nil, errors.Wrap(err, "pre-create hook failed")
	}

	out, err := o.itemRepo.Create(ctx, items.CreateInput{Item: item})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}

	slog.InfoContext(ctx, "Item created",
		"owner_id", out.Item.OwnerID,
		"item_id", out.Item.ID,
		"type", out.Item.Type,
	)

	return &CreateItemOutput{Item: o.prepareItem(out.Item)}, nil
}

func (o *Orchestrator) GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	item, err := o.getItem(ctx, input.OwnerID, input.ItemID)
	if err != nil {
		return nil, err
	}

	return &GetItemOutput{Item: o.prepareItem(item)}, nil
}

func (o *Orchestrator) UpdateItem(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	unlock := o.lockOwner(input.OwnerID)
	defer unlock()

	item, err := o.getItem(ctx, input.OwnerID, input.ItemID)
	if err != nil {
		return nil, err
	}

	changes := input.Changes
	if changes.Empty() {
		return &UpdateItemOutput{Item: o.prepareItem(item)}, nil
	}
	if changes.TargetStat != nil && *changes.TargetStat != "" {
		vb := errors.NewValidationBuilder()
		errors.ValidateEnum("target_stat", *changes.TargetStat, targetStats, vb)
		if err := vb.Build(); err != nil {
			return nil, err
		}
	}
	if changes.SuccessDie != nil && *changes.SuccessDie < 0 {
		return nil, errors.InvalidArgumentf("success die cannot be negative: %d", *changes.SuccessDie)
	}

	// Only a flip of equipped reaches the post-update hooks. An equipped item
	// whose equip failed before creating children may equip again.
	if changes.Equipped != nil && *changes.Equipped == item.System.Equipped && !equipPending(item) {
		changes.Equipped = nil
	}

	if err := o.hooks.PreUpdateItem(ctx, item, changes); err != nil {
		return nil, errors.Wrap(err, "pre-update hook failed")
	}
	changes.Apply(item)

	out, err := o.itemRepo.Update(ctx, items.UpdateInput{Item: item})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update item")
	}

	if err := o.hooks.OnUpdateItem(ctx, out.Item, changes); err != nil {
		return nil, errors.Wrapf(err, "item %s updated but post-update hook failed", item.ID)
	}

	// Hooks may have written the item again
	stored, err := o.getItem(ctx, input.OwnerID, input.ItemID)
	if err != nil {
		return nil, err
	}

	return &UpdateItemOutput{Item: o.prepareItem(stored)}, nil
}

func (o *Orchestrator) DeleteItem(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	unlock := o.lockOwner(input.OwnerID)
	defer unlock()

	item, err := o.getItem(ctx, input.OwnerID, input.ItemID)
	if err != nil {
		return nil, err
	}

	if err := o.hooks.PreDeleteItem(ctx, item); err != nil {
		return nil, errors.Wrap(err, "pre-delete hook failed")
	}

	out, err := o.itemRepo.Delete(ctx, items.DeleteInput{OwnerID: item.OwnerID, IDs: []string{item.ID}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete item")
	}

	return &DeleteItemOutput{Deleted: len(out.Deleted) > 0}, nil
}

func (o *Orchestrator) AttachAction(ctx context.Context, input *AttachActionInput) (*AttachActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.UUID == "" {
		return nil, errors.InvalidArgument("action uuid is required")
	}

	unlock := o.lockOwner(input.OwnerID)
	defer unlock()

	item, err := o.getItem(ctx, input.OwnerID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Type.Equippable() {
		return nil, errors.InvalidArgumentf("%s items cannot hold actions", item.Type)
	}

	action, err := o.resolver.Resolve(ctx, input.UUID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", input.UUID)
	}
	if action.Type != simulacrum.ItemTypeAction {
		return nil, errors.InvalidArgumentf("%s is a %s, only actions can be attached", input.UUID, action.Type)
	}

	canonical := action.OriginalUUID()
	if canonical == "" {
		canonical = action.DocumentUUID()
	}
	if item.HasAction(canonical) {
		return &AttachActionOutput{Item: o.prepareItem(item)}, nil
	}

	item.System.Actions = append(item.System.Actions, canonical)
	out, err := o.itemRepo.Update(ctx, items.UpdateInput{Item: item})
	if err != nil {
		return nil, errors.Wrap(err, "failed to attach action")
	}

	slog.InfoContext(ctx, "Action attached",
		"owner_id", item.OwnerID,
		"item_id", item.ID,
		"action", canonical,
	)

	return &AttachActionOutput{Item: o.prepareItem(out.Item), Attached: true}, nil
}

func (o *Orchestrator) getItem(ctx context.Context, ownerID, itemID string) (*simulacrum.Item, error) {
	if ownerID == "" {
		ownerID = simulacrum.WorldOwnerID
	}
	if itemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	out, err := o.itemRepo.Get(ctx, items.GetInput{OwnerID: ownerID, ID: itemID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get item %s", itemID)
	}
	return out.Item, nil
}

// lockOwner takes the lock shared with the equipment orchestrator. Hooks
// run while it is held, so they must not take it again.
func (o *Orchestrator) lockOwner(ownerID string) func() {
	if ownerID == "" {
		ownerID = simulacrum.WorldOwnerID
	}
	return o.locks.Lock(ownerID)
}

// equipPending reports whether an equipped item still has to instantiate
// its actions
func equipPending(item *simulacrum.Item) bool {
	return item.System.Equipped && len(item.Children()) == 0 && len(item.System.Actions) > 0
}

func validateItemSystem(system simulacrum.ItemSystem, vb *errors.ValidationBuilder) {
	if system.TargetStat != "" {
		errors.ValidateEnum("target_stat", system.TargetStat, targetStats, vb)
	}
	if system.SuccessDie < 0 {
		vb.Field("success_die", "cannot be negative")
	}
	if system.BaseDice < 0 {
		vb.Field("base_dice", "cannot be negative")
	}
}
