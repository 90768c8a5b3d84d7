// Package idgen generates identifiers for stored levels
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/rpg-levelgen/internal/pkg/idgen Generator

// Generator hands out identifiers; implementations must be safe for concurrent use
type Generator interface {
	Generate() string
}

// UUIDGenerator produces random v4 UUIDs, optionally as prefix_uuid
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a UUID generator; an empty prefix yields bare UUIDs
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns a fresh UUID based id
func (g *UUIDGenerator) Generate() string {
	return withPrefix(g.prefix, uuid.NewString())
}

// SequentialGenerator counts up from 1. Ids are only unique per generator,
// which suits tests and one-shot CLI runs.
type SequentialGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequential creates a sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next id in sequence
func (g *SequentialGenerator) Generate() string {
	return withPrefix(g.prefix, fmt.Sprintf("%d", g.counter.Add(1)))
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

var (
	_ Generator = (*UUIDGenerator)(nil)
	_ Generator = (*SequentialGenerator)(nil)
)
