// Package compendium resolves document identifiers to items, reading
// read-only library packs and the live item store
package compendium

//go:generate mockgen -destination=mock/mock_resolver.go -package=compendiummock github.com/KirkDiggler/simulacrum/internal/compendium Resolver

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/repositories/items"
)

// Resolver turns a document identifier into the item it names
type Resolver interface {
	// Resolve fetches the item behind uuid. Library items come back with
	// Pack set, live items with their OwnerID. The result is a copy the
	// caller may modify.
	// Returns errors.InvalidArgument for malformed identifiers
	// Returns errors.NotFound if the pack or item doesn't exist
	Resolve(ctx context.Context, uuid string) (*simulacrum.Item, error)
}

// ResolverConfig holds the dependencies of the resolver
type ResolverConfig struct {
	Library  *Library
	ItemRepo items.Repository
}

// Validate ensures all required dependencies are provided
func (c *ResolverConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Library == nil {
		vb.RequiredField("Library")
	}
	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}

	return vb.Build()
}

type resolver struct {
	library  *Library
	itemRepo items.Repository
	fetches  singleflight.Group
}

// NewResolver creates a resolver over a library and the item store
func NewResolver(cfg *ResolverConfig) (Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &resolver{
		library:  cfg.Library,
		itemRepo: cfg.ItemRepo,
	}, nil
}

func (r *resolver) Resolve(ctx context.Context, uuid string) (*simulacrum.Item, error) {
	ref, err := simulacrum.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	if !ref.IsCompendium() {
		out, err := r.itemRepo.Get(ctx, items.GetInput{OwnerID: ref.OwnerID(), ID: ref.ItemID})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %s", uuid)
		}
		return out.Item, nil
	}

	// Concurrent equips of items sharing an action fetch the template once
	v, err, shared := r.fetches.Do(ref.String(), func() (any, error) {
		return r.fetchFromPack(ref)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.DebugContext(ctx, "coalesced library fetch", "uuid", ref.String())
	}

	return v.(*simulacrum.Item).Clone(), nil
}

func (r *resolver) fetchFromPack(ref simulacrum.DocumentRef) (*simulacrum.Item, error) {
	pack, ok := r.library.Pack(ref.Pack)
	if !ok {
		return nil, errors.NotFoundf("pack %s not found", ref.Pack)
	}

	item, ok := pack.Get(ref.ItemID)
	if !ok {
		return nil, errors.NotFoundf("item %s not found in pack %s", ref.ItemID, ref.Pack)
	}
	return item, nil
}
