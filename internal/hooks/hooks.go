// Package hooks defines the document lifecycle callbacks the document
// adapter invokes around every write
package hooks

//go:generate mockgen -destination=mock/mock_hooks.go -package=hooksmock github.com/KirkDiggler/simulacrum/internal/hooks Hooks

import (
	"context"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
)

// Hooks receives document lifecycle callbacks. Pre hooks may mutate the
// document or the incoming changes before they are stored; an error aborts
// the write. OnUpdateItem runs after the update is stored and sees the stored
// item.
type Hooks interface {
	PreCreateActor(ctx context.Context, actor *simulacrum.Actor) error
	PreUpdateActor(ctx context.Context, actor *simulacrum.Actor, changes *simulacrum.ActorChanges) error
	PreCreateItem(ctx context.Context, item *simulacrum.Item) error
	PreUpdateItem(ctx context.Context, item *simulacrum.Item, changes *simulacrum.ItemChanges) error
	OnUpdateItem(ctx context.Context, item *simulacrum.Item, changes *simulacrum.ItemChanges) error
	PreDeleteItem(ctx context.Context, item *simulacrum.Item) error
}

// Nop implements every hook as a no-op. Embed it to implement only the hooks
// you need.
type Nop struct{}

// PreCreateActor does nothing
func (Nop) PreCreateActor(context.Context, *simulacrum.Actor) error { return nil }

// PreUpdateActor does nothing
func (Nop) PreUpdateActor(context.Context, *simulacrum.Actor, *simulacrum.ActorChanges) error {
	return nil
}

// PreCreateItem does nothing
func (Nop) PreCreateItem(context.Context, *simulacrum.Item) error { return nil }

// PreUpdateItem does nothing
func (Nop) PreUpdateItem(context.Context, *simulacrum.Item, *simulacrum.ItemChanges) error {
	return nil
}

// OnUpdateItem does nothing
func (Nop) OnUpdateItem(context.Context, *simulacrum.Item, *simulacrum.ItemChanges) error {
	return nil
}

// PreDeleteItem does nothing
func (Nop) PreDeleteItem(context.Context, *simulacrum.Item) error { return nil }

// Chain runs hooks in order and stops at the first error
type Chain []Hooks

// PreCreateActor runs every PreCreateActor hook
func (c Chain) PreCreateActor(ctx context.Context, actor *simulacrum.Actor) error {
	for _, h := range c {
		if err := h.PreCreateActor(ctx, actor); err != nil {
			return err
		}
	}
	return nil
}

// PreUpdateActor runs every PreUpdateActor hook
func (c Chain) PreUpdateActor(ctx context.Context, actor *simulacrum.Actor, changes *simulacrum.ActorChanges) error {
	for _, h := range c {
		if err := h.PreUpdateActor(ctx, actor, changes); err != nil {
			return err
		}
	}
	return nil
}

// PreCreateItem runs every PreCreateItem hook
func (c Chain) PreCreateItem(ctx context.Context, item *simulacrum.Item) error {
	for _, h := range c {
		if err := h.PreCreateItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// PreUpdateItem runs every PreUpdateItem hook
func (c Chain) PreUpdateItem(ctx context.Context, item *simulacrum.Item, changes *simulacrum.ItemChanges) error {
	for _, h := range c {
		if err := h.PreUpdateItem(ctx, item, changes); err != nil {
			return err
		}
	}
	return nil
}

// OnUpdateItem runs every OnUpdateItem hook
func (c Chain) OnUpdateItem(ctx context.Context, item *simulacrum.Item, changes *simulacrum.ItemChanges) error {
	for _, h := range c {
		if err := h.OnUpdateItem(ctx, item, changes); err != nil {
			return err
		}
	}
	return nil
}

// PreDeleteItem runs every PreDeleteItem hook
func (c Chain) PreDeleteItem(ctx context.Context, item *simulacrum.Item) error {
	for _, h := range c {
		if err := h.PreDeleteItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Hooks = Nop{}
	_ Hooks = Chain(nil)
)
