package engine

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/hooks"
)

type engine struct {
}

// Config holds engine options. There are none yet; the struct keeps the
// constructor shape of the other components.
type Config struct {
}

// Validate validates the config
func (cfg *Config) Validate() error {
	return nil
}

// New creates an engine
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &engine{}, nil
}

// Sensitivity is the mean of resilience and insight. The result is not
// rounded; odd sums keep their half.
func (e *engine) Sensitivity(resilience, insight int) float64 {
	return float64(resilience+insight) / 2
}

func (e *engine) ClampControl(control int) int {
	switch {
	case control < simulacrum.ControlMin:
		return simulacrum.ControlMin
	case control > simulacrum.ControlMax:
		return simulacrum.ControlMax
	default:
		return control
	}
}

// ParseDice reads the leading integer of raw the way parseInt does: leading
// spaces and a sign are accepted, anything after the digits is ignored.
// Input without leading digits reads as 0, and so does a negative count.
func (e *engine) ParseDice(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (e *engine) PrepareActor(actor *simulacrum.Actor) {
	if actor == nil || actor.Type != simulacrum.ActorTypeNode {
		return
	}
	attrs := &actor.System.Attributes
	attrs.Sensitivity = e.Sensitivity(attrs.Resilience, attrs.Insight)
}

// PrepareItem sets value to baseValue + bonuses on skills and tools. Zero
// means "no override": a zero sum or zero bonuses leave value unset and
// sheets show baseValue.
func (e *engine) PrepareItem(item *simulacrum.Item) {
	if item == nil || !item.Type.Equippable() {
		return
	}

	value := item.System.BaseValue + item.System.Bonuses
	if value == 0 || item.System.Bonuses == 0 {
		item.System.Value = nil
		return
	}
	item.System.Value = &value
}

func (e *engine) PrepareActorCreate(actor *simulacrum.Actor) {
	if actor == nil {
		return
	}
	if actor.Type == simulacrum.ActorTypePlayer {
		actor.PrototypeToken.ActorLink = true
	}
	actor.System.Attributes.Control = e.ClampControl(actor.System.Attributes.Control)
}

// PrepareItemCreate starts every skill and tool unequipped. Copies of
// actions never carry an equipped state.
func (e *engine) PrepareItemCreate(item *simulacrum.Item) {
	if item == nil {
		return
	}
	item.System.Equipped = false
}

func (e *engine) NormalizeActorChanges(changes *simulacrum.ActorChanges) {
	if changes == nil || changes.Control == nil {
		return
	}
	clamped := e.ClampControl(*changes.Control)
	changes.Control = &clamped
}

func (e *engine) NormalizeItemChanges(changes *simulacrum.ItemChanges) {
	if changes == nil || changes.BaseDice == nil {
		return
	}
	parsed := e.ParseDice(*changes.BaseDice)
	changes.ParsedBaseDice = &parsed
}

// Hooks exposes the engine's pre-write rules as lifecycle hooks
func Hooks(e Engine) hooks.Hooks {
	return &engineHooks{engine: e}
}

type engineHooks struct {
	hooks.Nop
	engine Engine
}

func (h *engineHooks) PreCreateActor(ctx context.Context, actor *simulacrum.Actor) error {
	h.engine.PrepareActorCreate(actor)
	return nil
}

func (h *engineHooks) PreUpdateActor(
	ctx context.Context,
	actor *simulacrum.Actor,
	changes *simulacrum.ActorChanges,
) error {
	if changes != nil && changes.Control != nil {
		before := *changes.Control
		h.engine.NormalizeActorChanges(changes)
		if *changes.Control != before {
			slog.DebugContext(ctx, "clamped control",
				"actor_id", actor.ID,
				"requested", before,
				"control", *changes.Control,
			)
		}
	}
	return nil
}

func (h *engineHooks) PreCreateItem(ctx context.Context, item *simulacrum.Item) error {
	h.engine.PrepareItemCreate(item)
	return nil
}

func (h *engineHooks) PreUpdateItem(
	ctx context.Context,
	item *simulacrum.Item,
	changes *simulacrum.ItemChanges,
) error {
	h.engine.NormalizeItemChanges(changes)
	return nil
}
