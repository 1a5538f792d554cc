package equipment

import (
	"context"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/hooks"
)

// Hooks runs equip and unequip from the document lifecycle: after an update
// that flips equipped, and before an equipped item is deleted. The document
// layer calls them with the owner's lock from Config.Locks already held.
func (o *Orchestrator) Hooks() hooks.Hooks {
	return &equipmentHooks{orchestrator: o}
}

type equipmentHooks struct {
	hooks.Nop
	orchestrator *Orchestrator
}

func (h *equipmentHooks) OnUpdateItem(
	ctx context.Context,
	item *simulacrum.Item,
	changes *simulacrum.ItemChanges,
) error {
	if changes == nil || changes.Equipped == nil || !managed(item) {
		return nil
	}

	if *changes.Equipped {
		_, err := h.orchestrator.equip(ctx, &EquipInput{ActorID: item.OwnerID, ItemID: item.ID})
		return err
	}
	_, err := h.orchestrator.unequip(ctx, &UnequipInput{ActorID: item.OwnerID, ItemID: item.ID})
	return err
}

func (h *equipmentHooks) PreDeleteItem(ctx context.Context, item *simulacrum.Item) error {
	if !managed(item) || len(item.Children()) == 0 {
		return nil
	}

	_, err := h.orchestrator.unequip(ctx, &UnequipInput{ActorID: item.OwnerID, ItemID: item.ID})
	return err
}

// managed reports whether equip state of item has consequences
func managed(item *simulacrum.Item) bool {
	return item != nil && item.IsOwned() && item.Type.Equippable()
}
