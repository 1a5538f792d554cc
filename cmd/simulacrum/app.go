package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/simulacrum/internal/compendium"
	"github.com/KirkDiggler/simulacrum/internal/config"
	"github.com/KirkDiggler/simulacrum/internal/engine"
	"github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/hooks"
	"github.com/KirkDiggler/simulacrum/internal/orchestrators/dice"
	"github.com/KirkDiggler/simulacrum/internal/orchestrators/documents"
	"github.com/KirkDiggler/simulacrum/internal/orchestrators/equipment"
	"github.com/KirkDiggler/simulacrum/internal/pkg/clock"
	"github.com/KirkDiggler/simulacrum/internal/pkg/idgen"
	"github.com/KirkDiggler/simulacrum/internal/pkg/keylock"
	redisclient "github.com/KirkDiggler/simulacrum/internal/redis"
	"github.com/KirkDiggler/simulacrum/internal/repositories/actors"
	chatmessage "github.com/KirkDiggler/simulacrum/internal/repositories/chat_message"
	"github.com/KirkDiggler/simulacrum/internal/repositories/items"
)

// app is the wired set of services a command runs against
type app struct {
	client    redisclient.Client
	engine    engine.Engine
	documents documents.Service
	equipment equipment.Service
	dice      dice.Service
}

func newApp(cfg *config.Config, client redisclient.Client) (*app, error) {
	actorRepo, err := actors.NewRedis(&actors.RedisConfig{Client: client})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create actor repository")
	}
	itemRepo, err := items.NewRedis(&items.RedisConfig{Client: client})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create item repository")
	}
	chatRepo, err := chatmessage.NewRedisRepository(&chatmessage.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chat repository")
	}

	library, err := compendium.LoadDir(cfg.PacksDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load compendium packs")
	}
	slog.Debug("loaded compendium", "dir", cfg.PacksDir, "packs", library.Names())

	resolver, err := compendium.NewResolver(&compendium.ResolverConfig{
		Library:  library,
		ItemRepo: itemRepo,
	})
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(&engine.Config{})
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	for _, eventType := range []string{equipment.EventActionsEquipped, equipment.EventActionsUnequipped} {
		bus.SubscribeFunc(eventType, 0, logEvent)
	}

	ids := idgen.NewDocument()
	locks := keylock.New()
	equip, err := equipment.New(&equipment.Config{
		ItemRepo:    itemRepo,
		Resolver:    resolver,
		IDGenerator: ids,
		EventBus:    bus,
		Locks:       locks,
	})
	if err != nil {
		return nil, err
	}

	docs, err := documents.New(&documents.Config{
		ActorRepo:   actorRepo,
		ItemRepo:    itemRepo,
		Engine:      eng,
		Resolver:    resolver,
		Hooks:       hooks.Chain{engine.Hooks(eng), equip.Hooks()},
		IDGenerator: ids,
		Locks:       locks,
	})
	if err != nil {
		return nil, err
	}

	rolls, err := dice.NewOrchestrator(&dice.Config{
		ActorRepo:   actorRepo,
		ItemRepo:    itemRepo,
		ChatRepo:    chatRepo,
		IDGenerator: idgen.NewUUID("msg"),
		MessageTTL:  cfg.ChatTTL,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		client:    client,
		engine:    eng,
		documents: docs,
		equipment: equip,
		dice:      rolls,
	}, nil
}

// Close releases the store connection
func (a *app) Close() error {
	return a.client.Close()
}

func logEvent(ctx context.Context, e events.Event) error {
	attrs := []any{"event_type", e.Type()}
	if src := e.Source(); src != nil {
		attrs = append(attrs, "item_id", src.GetID())
	}
	if actorID, ok := e.Context().Get(equipment.EventKeyActorID); ok {
		attrs = append(attrs, "actor_id", actorID)
	}
	slog.DebugContext(ctx, "equipment event", attrs...)
	return nil
}
