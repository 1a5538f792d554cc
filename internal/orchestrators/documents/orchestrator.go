// Package documents is the lifecycle layer for actor and item documents. It
// runs hooks around every write and serves documents with derived values
// filled in.
package documents

//go:generate mockgen -destination=mock/mock_service.go -package=documentsmock github.com/KirkDiggler/simulacrum/internal/orchestrators/documents Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/simulacrum/internal/compendium"
	"github.com/KirkDiggler/simulacrum/internal/config"
	"github.com/KirkDiggler/simulacrum/internal/engine"
	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/hooks"
	"github.com/KirkDiggler/simulacrum/internal/pkg/idgen"
	"github.com/KirkDiggler/simulacrum/internal/pkg/keylock"
	"github.com/KirkDiggler/simulacrum/internal/repositories/actors"
	"github.com/KirkDiggler/simulacrum/internal/repositories/items"
)

// Service defines the document operations
type Service interface {
	CreateActor(ctx context.Context, input *CreateActorInput) (*CreateActorOutput, error)
	GetActor(ctx context.Context, input *GetActorInput) (*GetActorOutput, error)
	ListActors(ctx context.Context, input *ListActorsInput) (*ListActorsOutput, error)
	UpdateActor(ctx context.Context, input *UpdateActorInput) (*UpdateActorOutput, error)
	// DeleteActor removes the actor and every item it owns
	DeleteActor(ctx context.Context, input *DeleteActorInput) (*DeleteActorOutput, error)
	GetActorSheet(ctx context.Context, input *GetActorSheetInput) (*GetActorSheetOutput, error)

	CreateItem(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error)
	GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error)
	// UpdateItem stores the changes then runs OnUpdateItem, which equips or
	// unequips when equipped flips
	UpdateItem(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error)
	// DeleteItem runs PreDeleteItem, which releases held actions, then
	// deletes the item
	DeleteItem(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error)
	// AttachAction adds an action identifier to a skill or tool
	// Returns errors.InvalidArgument if the target can't hold actions or the
	// identifier doesn't name an action
	AttachAction(ctx context.Context, input *AttachActionInput) (*AttachActionOutput, error)
}

// Config holds the dependencies for the document orchestrator
type Config struct {
	ActorRepo   actors.Repository
	ItemRepo    items.Repository
	Engine      engine.Engine
	Resolver    compendium.Resolver
	Hooks       hooks.Hooks
	IDGenerator idgen.Generator

	// Locks is held per owner around every item write and its hooks. It
	// must be the set the equipment orchestrator was built with.
	Locks *keylock.Locks
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ActorRepo == nil {
		vb.RequiredField("ActorRepo")
	}
	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Hooks == nil {
		vb.RequiredField("Hooks")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Locks == nil {
		vb.RequiredField("Locks")
	}

	return vb.Build()
}

// Orchestrator implements Service
type Orchestrator struct {
	actorRepo actors.Repository
	itemRepo  items.Repository
	engine    engine.Engine
	resolver  compendium.Resolver
	hooks     hooks.Hooks
	idGen     idgen.Generator
	locks     *keylock.Locks
}

// New creates a document orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		actorRepo: cfg.ActorRepo,
		itemRepo:  cfg.ItemRepo,
		engine:    cfg.Engine,
		resolver:  cfg.Resolver,
		hooks:     cfg.Hooks,
		idGen:     cfg.IDGenerator,
		locks:     cfg.Locks,
	}, nil
}

var _ Service = (*Orchestrator)(nil)

func (o *Orchestrator) CreateActor(ctx context.Context, input *CreateActorInput) (*CreateActorOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.InvalidArgument("actor is required")
	}

	actor := input.Actor.Clone()
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", actor.Name, vb)
	errors.ValidateEnum("type", string(actor.Type), simulacrum.ActorTypes(), vb)
	if actor.System.NodeType != "" && !actor.System.NodeType.Valid() {
		vb.Fieldf("node_type", "unknown node type %q", actor.System.NodeType)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if actor.ID == "" {
		actor.ID = o.idGen.Generate()
	}
	if err := o.hooks.PreCreateActor(ctx, actor); err != nil {
		return nil, errors.Wrap(err, "pre-create hook failed")
	}

	out, err := o.actorRepo.Create(ctx, actors.CreateInput{Actor: actor})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create actor")
	}

	slog.InfoContext(ctx, "Actor created",
		"actor_id", out.Actor.ID,
		"type", out.Actor.Type,
	)

	return &CreateActorOutput{Actor: o.prepareActor(out.Actor)}, nil
}

func (o *Orchestrator) GetActor(ctx context.Context, input *GetActorInput) (*GetActorOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	actor, err := o.getActor(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	return &GetActorOutput{Actor: o.prepareActor(actor)}, nil
}

func (o *Orchestrator) ListActors(ctx context.Context, input *ListActorsInput) (*ListActorsOutput, error) {
	if input == nil {
		input = &ListActorsInput{}
	}
	if input.Type != "" && !input.Type.Valid() {
		return nil, errors.InvalidArgumentf("unknown actor type %q", input.Type)
	}

	out, err := o.actorRepo.List(ctx, actors.ListInput{Type: input.Type})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list actors")
	}

	for _, actor := range out.Actors {
		o.prepareActor(actor)
	}

	return &ListActorsOutput{Actors: out.Actors}, nil
}

func (o *Orchestrator) UpdateActor(ctx context.Context, input *UpdateActorInput) (*UpdateActorOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	actor, err := o.getActor(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	changes := input.Changes
	if changes == nil {
		return &UpdateActorOutput{Actor: o.prepareActor(actor)}, nil
	}
	if changes.NodeType != nil && *changes.NodeType != "" && !changes.NodeType.Valid() {
		return nil, errors.InvalidArgumentf("unknown node type %q", *changes.NodeType)
	}

	if err := o.hooks.PreUpdateActor(ctx, actor, changes); err != nil {
		return nil, errors.Wrap(err, "pre-update hook failed")
	}
	changes.Apply(actor)

	out, err := o.actorRepo.Update(ctx, actors.UpdateInput{Actor: actor})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update actor")
	}

	return &UpdateActorOutput{Actor: o.prepareActor(out.Actor)}, nil
}

func (o *Orchestrator) DeleteActor(ctx context.Context, input *DeleteActorInput) (*DeleteActorOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	unlock := o.lockOwner(input.ActorID)
	defer unlock()

	if _, err := o.actorRepo.Delete(ctx, actors.DeleteInput{ID: input.ActorID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete actor")
	}

	out, err := o.itemRepo.DeleteOwner(ctx, items.DeleteOwnerInput{OwnerID: input.ActorID})
	if err != nil {
		return nil, errors.Wrapf(err, "actor %s deleted but its items were not", input.ActorID)
	}

	slog.InfoContext(ctx, "Actor deleted",
		"actor_id", input.ActorID,
		"items_deleted", out.Deleted,
	)

	return &DeleteActorOutput{ItemsDeleted: out.Deleted}, nil
}

func (o *Orchestrator) GetActorSheet(ctx context.Context, input *GetActorSheetInput) (*GetActorSheetOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	actor, err := o.getActor(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	out, err := o.itemRepo.List(ctx, items.ListInput{OwnerID: actor.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list items of %s", actor.ID)
	}

	return &GetActorSheetOutput{Sheet: o.buildSheet(o.prepareActor(actor), out.Items)}, nil
}

func (o *Orchestrator) buildSheet(actor *simulacrum.Actor, list []*simulacrum.Item) *ActorSheet {
	sheet := &ActorSheet{
		Actor:   actor,
		Skills:  []*SheetItem{},
		Tools:   []*SheetItem{},
		Actions: []*SheetItem{},
	}
	if actor.Type == simulacrum.ActorTypeNode {
		sheet.NodeTypes = config.NodeTypeLabels()
		if actor.System.NodeType != "" {
			sheet.NodeTypeLabel = config.NodeTypeLabel(actor.System.NodeType)
		}
	}

	parents := make(map[string][]string)
	for _, item := range list {
		if !item.Type.Equippable() {
			continue
		}
		for _, child := range item.Children() {
			parents[child] = append(parents[child], item.Name)
		}
	}

	for _, item := range list {
		entry := &SheetItem{Item: o.prepareItem(item), Editable: true}
		switch item.Type {
		case simulacrum.ItemTypeSkill:
			sheet.Skills = append(sheet.Skills, entry)
		case simulacrum.ItemTypeTool:
			sheet.Tools = append(sheet.Tools, entry)
		case simulacrum.ItemTypeAction:
			entry.Parents = parents[item.ID]
			entry.Editable = len(entry.Parents) == 0
			sheet.Actions = append(sheet.Actions, entry)
		}
	}

	return sheet
}

func (o *Orchestrator) getActor(ctx context.Context, actorID string) (*simulacrum.Actor, error) {
	out, err := o.actorRepo.Get(ctx, actors.GetInput{ID: actorID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get actor %s", actorID)
	}
	return out.Actor, nil
}

func (o *Orchestrator) prepareActor(actor *simulacrum.Actor) *simulacrum.Actor {
	o.engine.PrepareActor(actor)
	return actor
}

func (o *Orchestrator) prepareItem(item *simulacrum.Item) *simulacrum.Item {
	o.engine.PrepareItem(item)
	return item
}
