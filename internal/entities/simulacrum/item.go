package simulacrum

// Item is a skill, tool or action document
type Item struct {
	ID      string     `json:"id"`
	OwnerID string     `json:"owner_id"`
	Name    string     `json:"name"`
	Type    ItemType   `json:"type"`
	System  ItemSystem `json:"system"`
	Flags   Flags      `json:"flags,omitempty"`

	// Pack is set on items served from a compendium pack and never stored
	Pack string `json:"-"`
}

// ItemSystem is the ruleset data of an item. Skill and tool fields are zero
// on actions and the reverse.
type ItemSystem struct {
	Description string `json:"description,omitempty"`

	// Skill and tool
	BaseValue  float64  `json:"base_value,omitempty"`
	Bonuses    float64  `json:"bonuses,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	BaseDice   int      `json:"base_dice,omitempty"`
	TargetStat string   `json:"target_stat,omitempty"`
	Actions    []string `json:"actions,omitempty"`
	Equipped   bool     `json:"equipped"`

	// Action
	SuccessDie int `json:"success_die,omitempty"`
}

// GetID returns the item's id
func (i *Item) GetID() string {
	return i.ID
}

// GetType returns the entity type for rpg-toolkit
func (i *Item) GetType() string {
	return EntityTypeItem
}

// IsOwned reports whether the item belongs to an actor
func (i *Item) IsOwned() bool {
	return i.OwnerID != "" && i.OwnerID != WorldOwnerID
}

// GetFlag returns a flag stored under the ruleset namespace
func (i *Item) GetFlag(key string) (any, bool) {
	return i.Flags.Get(SystemID, key)
}

// SetFlag stores a flag under the ruleset namespace
func (i *Item) SetFlag(key string, value any) {
	i.Flags.Set(SystemID, key, value)
}

// UnsetFlag removes a flag from the ruleset namespace
func (i *Item) UnsetFlag(key string) {
	i.Flags.Unset(SystemID, key)
}

// Children returns the ids of the action copies this item holds
func (i *Item) Children() []string {
	v, ok := i.GetFlag(FlagChildren)
	if !ok {
		return nil
	}
	return flagStrings(v)
}

// SetChildren replaces the children flag; an empty list removes it
func (i *Item) SetChildren(ids []string) {
	if len(ids) == 0 {
		i.UnsetFlag(FlagChildren)
		return
	}
	i.SetFlag(FlagChildren, append([]string(nil), ids...))
}

// HasChild reports whether id is among the item's children
func (i *Item) HasChild(id string) bool {
	for _, child := range i.Children() {
		if child == id {
			return true
		}
	}
	return false
}

// BonusDice returns the share counter of an action copy, 0 when unset
func (i *Item) BonusDice() int {
	v, ok := i.GetFlag(FlagBonusDice)
	if !ok {
		return 0
	}
	n, ok := flagInt(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// SetBonusDice stores the share counter. Zero removes the flag.
func (i *Item) SetBonusDice(n int) {
	if n <= 0 {
		i.UnsetFlag(FlagBonusDice)
		return
	}
	i.SetFlag(FlagBonusDice, n)
}

// OriginalUUID returns the canonical action this copy was cloned from
func (i *Item) OriginalUUID() string {
	v, ok := i.GetFlag(FlagOriginalUUID)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SetOriginalUUID stamps the canonical action identifier on a copy
func (i *Item) SetOriginalUUID(uuid string) {
	i.SetFlag(FlagOriginalUUID, uuid)
}

// HasAction reports whether uuid is already attached
func (i *Item) HasAction(uuid string) bool {
	for _, a := range i.System.Actions {
		if a == uuid {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the item
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	out := *i
	out.System.Actions = append([]string(nil), i.System.Actions...)
	if i.System.Value != nil {
		v := *i.System.Value
		out.System.Value = &v
	}
	out.Flags = i.Flags.Clone()
	return &out
}

// ItemChanges is an incoming partial update to an item. Nil fields are
// unchanged. BaseDice arrives raw and is normalized before it is applied.
type ItemChanges struct {
	Name        *string
	Description *string
	BaseValue   *float64
	Bonuses     *float64
	BaseDice    *string
	TargetStat  *string
	SuccessDie  *int
	Actions     *[]string
	Equipped    *bool

	// ParsedBaseDice is filled in by normalization from BaseDice
	ParsedBaseDice *int
}

// Empty reports whether the changes touch nothing
func (c *ItemChanges) Empty() bool {
	return c == nil || (c.Name == nil && c.Description == nil && c.BaseValue == nil &&
		c.Bonuses == nil && c.BaseDice == nil && c.TargetStat == nil && c.SuccessDie == nil &&
		c.Actions == nil && c.Equipped == nil && c.ParsedBaseDice == nil)
}

// Apply writes the changes onto item. BaseDice is only applied once parsed.
func (c *ItemChanges) Apply(item *Item) {
	if c == nil {
		return
	}
	if c.Name != nil {
		item.Name = *c.Name
	}
	if c.Description != nil {
		item.System.Description = *c.Description
	}
	if c.BaseValue != nil {
		item.System.BaseValue = *c.BaseValue
	}
	if c.Bonuses != nil {
		item.System.Bonuses = *c.Bonuses
	}
	if c.ParsedBaseDice != nil {
		item.System.BaseDice = *c.ParsedBaseDice
	}
	if c.TargetStat != nil {
		item.System.TargetStat = *c.TargetStat
	}
	if c.SuccessDie != nil {
		item.System.SuccessDie = *c.SuccessDie
	}
	if c.Actions != nil {
		item.System.Actions = append([]string(nil), (*c.Actions)...)
	}
	if c.Equipped != nil {
		item.System.Equipped = *c.Equipped
	}
}
