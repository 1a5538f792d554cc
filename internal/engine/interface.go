// Package engine computes derived attributes and normalizes incoming changes
// for simulacrum documents
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/simulacrum/internal/engine Engine

import (
	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
)

// Engine provides the ruleset calculations. Every method is pure apart from
// writing into the document or changes it is given.
type Engine interface {
	// PrepareActor fills derived actor attributes
	PrepareActor(actor *simulacrum.Actor)
	// PrepareItem fills derived item values
	PrepareItem(item *simulacrum.Item)

	// PrepareActorCreate applies creation defaults to a new actor
	PrepareActorCreate(actor *simulacrum.Actor)
	// PrepareItemCreate applies creation defaults to a new item
	PrepareItemCreate(item *simulacrum.Item)

	// NormalizeActorChanges clamps incoming actor changes into range
	NormalizeActorChanges(changes *simulacrum.ActorChanges)
	// NormalizeItemChanges coerces raw incoming item changes
	NormalizeItemChanges(changes *simulacrum.ItemChanges)

	// Sensitivity is the derived sensitivity of a node
	Sensitivity(resilience, insight int) float64
	// ClampControl forces a control value into range
	ClampControl(control int) int
	// ParseDice reads a die count the way sheet inputs are read
	ParseDice(raw string) int
}
