package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/simulacrum/internal/pkg/idgen"
)

func TestDocumentGenerator(t *testing.T) {
	gen := idgen.NewDocument()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		assert.Len(t, id, idgen.DocumentIDLength)
		assert.False(t, strings.ContainsAny(id, ".:_-"), "id %q must not contain separators", id)
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("item")
	assert.Equal(t, "item_1", gen.Generate())
	assert.Equal(t, "item_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID("msg").Generate()
	assert.True(t, strings.HasPrefix(id, "msg_"))
	assert.Len(t, id, len("msg_")+36)
}
