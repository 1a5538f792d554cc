package simulacrum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
)

func TestParseUUID(t *testing.T) {
	testCases := []struct {
		name      string
		uuid      string
		expected  simulacrum.DocumentRef
		canonical string
		owner     string
	}{
		{
			name:      "compendium with document type",
			uuid:      "Compendium.simulacrum.actions.Item.scan01",
			expected:  simulacrum.DocumentRef{Pack: "simulacrum.actions", ItemID: "scan01"},
			canonical: "Compendium.simulacrum.actions.Item.scan01",
			owner:     "",
		},
		{
			name:      "legacy compendium",
			uuid:      "Compendium.simulacrum.actions.scan01",
			expected:  simulacrum.DocumentRef{Pack: "simulacrum.actions", ItemID: "scan01"},
			canonical: "Compendium.simulacrum.actions.Item.scan01",
			owner:     "",
		},
		{
			name:      "world item",
			uuid:      "Item.abc",
			expected:  simulacrum.DocumentRef{ItemID: "abc"},
			canonical: "Item.abc",
			owner:     simulacrum.WorldOwnerID,
		},
		{
			name:      "embedded item",
			uuid:      "Actor.a1.Item.abc",
			expected:  simulacrum.DocumentRef{ActorID: "a1", ItemID: "abc"},
			canonical: "Actor.a1.Item.abc",
			owner:     "a1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := simulacrum.ParseUUID(tc.uuid)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ref)
			assert.Equal(t, tc.canonical, ref.String())
			assert.Equal(t, tc.owner, ref.OwnerID())
		})
	}
}

func TestParseUUIDRejectsMalformed(t *testing.T) {
	for _, uuid := range []string{"", "Item", "Item..x", "Actor.a1.abc", "Scene.s1", "Compendium.simulacrum"} {
		_, err := simulacrum.ParseUUID(uuid)
		assert.True(t, errors.IsInvalidArgument(err), "uuid %q", uuid)
	}
}

func TestItemDocumentUUID(t *testing.T) {
	assert.Equal(t, "Item.x", (&simulacrum.Item{ID: "x", OwnerID: simulacrum.WorldOwnerID}).DocumentUUID())
	assert.Equal(t, "Item.x", (&simulacrum.Item{ID: "x"}).DocumentUUID())
	assert.Equal(t, "Actor.a.Item.x", (&simulacrum.Item{ID: "x", OwnerID: "a"}).DocumentUUID())
	assert.Equal(t, "Compendium.s.p.Item.x", (&simulacrum.Item{ID: "x", Pack: "s.p"}).DocumentUUID())
}
