package testutils

import (
	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
)

// TestPlayerName is the default player name for test fixtures
const TestPlayerName = "Vex"

// CreateTestPlayer creates a player actor with sensible defaults
func CreateTestPlayer(id string) *simulacrum.Actor {
	return &simulacrum.Actor{
		ID:   id,
		Name: TestPlayerName,
		Type: simulacrum.ActorTypePlayer,
		System: simulacrum.ActorSystem{
			Attributes: simulacrum.Attributes{Resilience: 2, Insight: 3, Control: 5},
		},
		PrototypeToken: simulacrum.PrototypeToken{ActorLink: true},
	}
}

// CreateTestNode creates a node actor of the given kind
func CreateTestNode(id string, nodeType simulacrum.NodeType, resilience, insight int) *simulacrum.Actor {
	return &simulacrum.Actor{
		ID:   id,
		Name: "Node " + id,
		Type: simulacrum.ActorTypeNode,
		System: simulacrum.ActorSystem{
			Attributes: simulacrum.Attributes{Resilience: resilience, Insight: insight},
			NodeType:   nodeType,
		},
	}
}

// CreateTestSkill creates an unequipped skill holding the given action
// identifiers
func CreateTestSkill(ownerID, id string, actions ...string) *simulacrum.Item {
	return &simulacrum.Item{
		ID:      id,
		OwnerID: ownerID,
		Name:    "Skill " + id,
		Type:    simulacrum.ItemTypeSkill,
		System: simulacrum.ItemSystem{
			TargetStat: simulacrum.StatInsight,
			Actions:    actions,
		},
	}
}

// CreateTestAction creates an action rolling successDie dice
func CreateTestAction(ownerID, id, name string, successDie int) *simulacrum.Item {
	return &simulacrum.Item{
		ID:      id,
		OwnerID: ownerID,
		Name:    name,
		Type:    simulacrum.ItemTypeAction,
		System:  simulacrum.ItemSystem{SuccessDie: successDie},
	}
}
