package simulacrum

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/simulacrum/internal/errors"
)

const (
	uuidCompendium = "Compendium"
	uuidActor      = "Actor"
	uuidItem       = "Item"
)

// DocumentRef is a parsed document identifier. Exactly one form is set:
// Pack for library items, ActorID for embedded items, neither for world items.
type DocumentRef struct {
	Pack    string
	ActorID string
	ItemID  string
}

// IsCompendium reports whether the reference points into a library pack
func (r DocumentRef) IsCompendium() bool {
	return r.Pack != ""
}

// OwnerID returns the store owner the referenced item lives under. Library
// references have none.
func (r DocumentRef) OwnerID() string {
	switch {
	case r.IsCompendium():
		return ""
	case r.ActorID != "":
		return r.ActorID
	default:
		return WorldOwnerID
	}
}

// String renders the canonical form of the reference
func (r DocumentRef) String() string {
	switch {
	case r.IsCompendium():
		return fmt.Sprintf("%s.%s.%s.%s", uuidCompendium, r.Pack, uuidItem, r.ItemID)
	case r.ActorID != "":
		return fmt.Sprintf("%s.%s.%s.%s", uuidActor, r.ActorID, uuidItem, r.ItemID)
	default:
		return fmt.Sprintf("%s.%s", uuidItem, r.ItemID)
	}
}

// ParseUUID parses one of
//
//	Compendium.<scope>.<pack>.Item.<id>
//	Compendium.<scope>.<pack>.<id>
//	Item.<id>
//	Actor.<actor>.Item.<id>
func ParseUUID(uuid string) (DocumentRef, error) {
	parts := strings.Split(uuid, ".")
	for _, p := range parts {
		if p == "" {
			return DocumentRef{}, errors.InvalidArgumentf("malformed document uuid %q", uuid)
		}
	}

	switch {
	case parts[0] == uuidCompendium && len(parts) == 5 && parts[3] == uuidItem:
		return DocumentRef{Pack: parts[1] + "." + parts[2], ItemID: parts[4]}, nil
	case parts[0] == uuidCompendium && len(parts) == 4:
		return DocumentRef{Pack: parts[1] + "." + parts[2], ItemID: parts[3]}, nil
	case parts[0] == uuidItem && len(parts) == 2:
		return DocumentRef{ItemID: parts[1]}, nil
	case parts[0] == uuidActor && len(parts) == 4 && parts[2] == uuidItem:
		return DocumentRef{ActorID: parts[1], ItemID: parts[3]}, nil
	}

	return DocumentRef{}, errors.InvalidArgumentf("unsupported document uuid %q", uuid)
}

// DocumentUUID returns the canonical identifier of the item
func (i *Item) DocumentUUID() string {
	ref := DocumentRef{ItemID: i.ID}
	switch {
	case i.Pack != "":
		ref.Pack = i.Pack
	case i.IsOwned():
		ref.ActorID = i.OwnerID
	}
	return ref.String()
}
