package simulacrum

// Actor is a player character or a network node
type Actor struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Type           ActorType      `json:"type"`
	System         ActorSystem    `json:"system"`
	PrototypeToken PrototypeToken `json:"prototype_token"`
	Flags          Flags          `json:"flags,omitempty"`
}

// ActorSystem is the ruleset data of an actor
type ActorSystem struct {
	Attributes Attributes `json:"attributes"`
	NodeType   NodeType   `json:"node_type,omitempty"`
}

// Attributes are the numeric stats of an actor. Sensitivity is derived and
// only meaningful on nodes.
type Attributes struct {
	Resilience  int     `json:"resilience"`
	Insight     int     `json:"insight"`
	Sensitivity float64 `json:"sensitivity"`
	Control     int     `json:"control"`
}

// PrototypeToken holds the token defaults of an actor
type PrototypeToken struct {
	ActorLink bool `json:"actor_link"`
}

// GetID returns the actor's id
func (a *Actor) GetID() string {
	return a.ID
}

// GetType returns the entity type for rpg-toolkit
func (a *Actor) GetType() string {
	return EntityTypeActor
}

// Clone returns a deep copy of the actor
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}
	out := *a
	out.Flags = a.Flags.Clone()
	return &out
}

// ActorChanges is an incoming partial update to an actor. Nil fields are
// unchanged.
type ActorChanges struct {
	Name       *string
	Resilience *int
	Insight    *int
	Control    *int
	NodeType   *NodeType
}

// Apply writes the changes onto actor
func (c *ActorChanges) Apply(actor *Actor) {
	if c == nil {
		return
	}
	if c.Name != nil {
		actor.Name = *c.Name
	}
	if c.Resilience != nil {
		actor.System.Attributes.Resilience = *c.Resilience
	}
	if c.Insight != nil {
		actor.System.Attributes.Insight = *c.Insight
	}
	if c.Control != nil {
		actor.System.Attributes.Control = *c.Control
	}
	if c.NodeType != nil {
		actor.System.NodeType = *c.NodeType
	}
}
