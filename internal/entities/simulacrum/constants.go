// Package simulacrum holds the document types of the simulacrum ruleset
package simulacrum

// SystemID is the namespace the ruleset stores its flags under
const SystemID = "simulacrum"

// WorldOwnerID owns items that live in the world rather than on an actor
const WorldOwnerID = "world"

// Entity types reported through core.Entity
const (
	EntityTypeActor = "actor"
	EntityTypeItem  = "item"
)

// ActorType is the kind of an actor document
type ActorType string

// Actor types
const (
	ActorTypePlayer ActorType = "player"
	ActorTypeNode   ActorType = "node"
)

// Valid reports whether t is a known actor type
func (t ActorType) Valid() bool {
	return t == ActorTypePlayer || t == ActorTypeNode
}

// ActorTypes lists every actor type as strings, for validation messages
func ActorTypes() []string {
	return []string{string(ActorTypePlayer), string(ActorTypeNode)}
}

// ItemType is the kind of an item document
type ItemType string

// Item types
const (
	ItemTypeSkill  ItemType = "skill"
	ItemTypeTool   ItemType = "tool"
	ItemTypeAction ItemType = "action"
)

// Valid reports whether t is a known item type
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeSkill, ItemTypeTool, ItemTypeAction:
		return true
	}
	return false
}

// Equippable reports whether items of this type carry actions and can be
// equipped
func (t ItemType) Equippable() bool {
	return t == ItemTypeSkill || t == ItemTypeTool
}

// ItemTypes lists every item type as strings, for validation messages
func ItemTypes() []string {
	return []string{string(ItemTypeSkill), string(ItemTypeTool), string(ItemTypeAction)}
}

// NodeType is the kind of system a node actor represents
type NodeType string

// Node types
const (
	NodeTypeDesktop      NodeType = "desktop"
	NodeTypeServer       NodeType = "server"
	NodeTypeDomain       NodeType = "domain"
	NodeTypeHypervisor   NodeType = "hypervisor"
	NodeTypeNetworking   NodeType = "networking"
	NodeTypeFirewall     NodeType = "firewall"
	NodeTypeIDS          NodeType = "ids"
	NodeTypeService      NodeType = "service"
	NodeTypeStorage      NodeType = "storage"
	NodeTypeApplication  NodeType = "application"
	NodeTypeCloudStorage NodeType = "cStorage"
	NodeTypeCloudService NodeType = "cService"
	NodeTypeCloudSystem  NodeType = "cSystem"
)

// NodeTypes lists node types in display order
func NodeTypes() []NodeType {
	return []NodeType{
		NodeTypeDesktop,
		NodeTypeServer,
		NodeTypeDomain,
		NodeTypeHypervisor,
		NodeTypeNetworking,
		NodeTypeFirewall,
		NodeTypeIDS,
		NodeTypeService,
		NodeTypeStorage,
		NodeTypeApplication,
		NodeTypeCloudStorage,
		NodeTypeCloudService,
		NodeTypeCloudSystem,
	}
}

// Valid reports whether n is a known node type
func (n NodeType) Valid() bool {
	for _, known := range NodeTypes() {
		if n == known {
			return true
		}
	}
	return false
}

// Target stats a skill or tool can roll against
const (
	StatResilience  = "resilience"
	StatInsight     = "insight"
	StatSensitivity = "sensitivity"
)

// Flag keys under SystemID
const (
	FlagChildren     = "children"
	FlagBonusDice    = "bonusDice"
	FlagOriginalUUID = "originalUuid"
)

// Attribute bounds
const (
	ControlMin = 0
	ControlMax = 10
)

// ActionDieSize is the die every action rolls
const ActionDieSize = 6
