// Package dice resolves action rolls and records them in the chat log
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/simulacrum/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/pkg/idgen"
	"github.com/KirkDiggler/simulacrum/internal/repositories/actors"
	chatmessage "github.com/KirkDiggler/simulacrum/internal/repositories/chat_message"
	"github.com/KirkDiggler/simulacrum/internal/repositories/items"
)

// DefaultMessageTTL is how long a roll stays in the chat log
const DefaultMessageTTL = 24 * time.Hour

// Reasons a roll is gated off
const (
	ReasonWorldItem = "item is not owned by an actor"
	ReasonNotAction = "item is not an action"
	ReasonNoActor   = "owning actor not found"
	ReasonNoDice    = "no dice to roll"
)

var (
	// Regex for parsing simple dice notation like "2d6", "1d20", "3d8"
	diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)$`)
)

// Service defines the interface for action rolls
type Service interface {
	// RollAction rolls an owned action and posts the result to the chat log.
	// A roll that fails its preconditions is a no-op and returns an output
	// without a message.
	// Returns errors.InvalidArgument for missing ids
	// Returns errors.NotFound if the item doesn't exist
	RollAction(ctx context.Context, input *RollActionInput) (*RollActionOutput, error)

	// ListMessages returns the chat log of an actor, oldest first
	ListMessages(ctx context.Context, input *ListMessagesInput) (*ListMessagesOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	ActorRepo   actors.Repository
	ItemRepo    items.Repository
	ChatRepo    chatmessage.Repository
	IDGenerator idgen.Generator

	// Roller defaults to dice.DefaultRoller
	Roller dice.Roller
	// MessageTTL defaults to DefaultMessageTTL
	MessageTTL time.Duration
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
	if c.ChatRepo == nil {
		vb.RequiredField("ChatRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	actorRepo actors.Repository
	itemRepo  items.Repository
	chatRepo  chatmessage.Repository
	idGen     idgen.Generator
	roller    dice.Roller
	ttl       time.Duration
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	ttl := cfg.MessageTTL
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}

	return &orchestrator{
		actorRepo: cfg.ActorRepo,
		itemRepo:  cfg.ItemRepo,
		chatRepo:  cfg.ChatRepo,
		idGen:     cfg.IDGenerator,
		roller:    roller,
		ttl:       ttl,
	}, nil
}

// parseDiceNotation parses simple dice notation like "2d6" and returns count and size
func parseDiceNotation(notation string) (count, size int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(notation))
	if len(matches) != 3 {
		return 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}

	size, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}

	if count <= 0 || size <= 0 {
		return 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}

	return count, size, nil
}

// actionFormula is the formula an action rolls: its success die plus every
// equipped source sharing it
func actionFormula(item *simulacrum.Item) (string, int) {
	count := item.System.SuccessDie + item.BonusDice()
	return fmt.Sprintf("%dd%d", count, simulacrum.ActionDieSize), count
}

// evaluate rolls notation and describes it in the "+2d6[3,4]=7" form
func (o *orchestrator) evaluate(notation string) (*chatmessage.Roll, error) {
	count, size, err := parseDiceNotation(notation)
	if err != nil {
		return nil, err
	}

	values, err := o.roller.RollN(count, size)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to roll dice")
	}

	total := 0
	faces := make([]string, len(values))
	for i, v := range values {
		total += v
		faces[i] = strconv.Itoa(v)
	}

	return &chatmessage.Roll{
		Formula:     notation,
		Dice:        values,
		Total:       total,
		Description: fmt.Sprintf("+%s[%s]=%d", notation, strings.Join(faces, ","), total),
	}, nil
}

// RollAction rolls an actor's action
func (o *orchestrator) RollAction(ctx context.Context, input *RollActionInput) (*RollActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.ActorID == "" {
		vb.RequiredField("ActorID")
	}
	if input.ItemID == "" {
		vb.RequiredField("ItemID")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if input.ActorID == simulacrum.WorldOwnerID {
		return o.gated(ctx, input, ReasonWorldItem), nil
	}

	itemOut, err := o.itemRepo.Get(ctx, items.GetInput{OwnerID: input.ActorID, ID: input.ItemID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get item %s", input.ItemID)
	}
	item := itemOut.Item

	if item.Type != simulacrum.ItemTypeAction {
		return o.gated(ctx, input, ReasonNotAction), nil
	}

	actorOut, err := o.actorRepo.Get(ctx, actors.GetInput{ID: input.ActorID})
	if err != nil {
		if errors.IsNotFound(err) {
			return o.gated(ctx, input, ReasonNoActor), nil
		}
		return nil, errors.Wrapf(err, "failed to get actor %s", input.ActorID)
	}
	actor := actorOut.Actor

	formula, count := actionFormula(item)
	if count <= 0 {
		return o.gated(ctx, input, ReasonNoDice), nil
	}

	roll, err := o.evaluate(formula)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", item.Name)
	}

	created, err := o.chatRepo.Create(ctx, chatmessage.CreateInput{
		Message: &chatmessage.ChatMessage{
			ID:      o.idGen.Generate(),
			Speaker: chatmessage.Speaker{ActorID: actor.ID, Alias: actor.Name},
			Flavor:  item.Name,
			Roll:    *roll,
		},
		TTL: o.ttl,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record roll")
	}

	slog.InfoContext(ctx, "Action rolled",
		"actor_id", actor.ID,
		"item_id", item.ID,
		"formula", roll.Formula,
		"total", roll.Total,
		"message_id", created.Message.ID,
	)

	return &RollActionOutput{Message: created.Message}, nil
}

func (o *orchestrator) gated(ctx context.Context, input *RollActionInput, reason string) *RollActionOutput {
	slog.DebugContext(ctx, "Roll skipped",
		"actor_id", input.ActorID,
		"item_id", input.ItemID,
		"reason", reason,
	)
	return &RollActionOutput{Reason: reason}
}

// ListMessages returns an actor's chat log
func (o *orchestrator) ListMessages(ctx context.Context, input *ListMessagesInput) (*ListMessagesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgumentf("limit cannot be negative: %d", input.Limit)
	}

	out, err := o.chatRepo.ListBySpeaker(ctx, chatmessage.ListBySpeakerInput{
		ActorID: input.ActorID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	return &ListMessagesOutput{Messages: out.Messages}, nil
}
