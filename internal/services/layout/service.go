// Package layout provides the raw layout producer consumed by the level generator.
package layout

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

//go:generate mockgen -destination=mock/mock_producer.go -package=layoutmock github.com/KirkDiggler/rpg-levelgen/internal/services/layout Producer

// Producer turns a size, a style and a seeded roller into a raw floor/wall layout
type Producer interface {
	Produce(ctx context.Context, input *ProduceInput) (*ProduceOutput, error)
}

// =============================================================================
// Producer Input/Output Types
// =============================================================================

// ProduceInput contains raw layout parameters
type ProduceInput struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Style  string      `json:"style"` // dungeon, cave, outdoor or hybrid
	Roller dice.Roller `json:"-"`     // Required: every random draw goes through it
}

// ProduceOutput contains the raw layout
type ProduceOutput struct {
	Grid        entities.Grid    `json:"grid"`
	Rooms       []*entities.Room `json:"rooms"`
	SpawnPoints []entities.Point `json:"spawn_points"` // first entry is the player spawn
}
