// Package idgen provides ID generation utilities
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/simulacrum/internal/pkg/idgen Generator

// DocumentIDLength is the length of generated document ids
const DocumentIDLength = 16

const documentAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// DocumentGenerator generates fixed-length alphanumeric document ids, the
// shape actors and items carry in their identifiers.
type DocumentGenerator struct{}

// NewDocument creates a document id generator
func NewDocument() *DocumentGenerator {
	return &DocumentGenerator{}
}

// Generate creates a new random document id
func (g *DocumentGenerator) Generate() string {
	limit := big.NewInt(int64(len(documentAlphabet)))
	out := make([]byte, DocumentIDLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand only fails when the system entropy source is broken
			panic(fmt.Sprintf("crypto/rand.Int failed: %v", err))
		}
		out[i] = documentAlphabet[n.Int64()]
	}
	return string(out)
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}
