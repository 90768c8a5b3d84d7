// Package levels provides the interface for generated level persistence
package levels

//go:generate mockgen -destination=mock/mock_repository.go -package=levelsmock github.com/KirkDiggler/rpg-levelgen/internal/repositories/levels Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

// Repository defines the interface for level persistence
type Repository interface {
	// Create stores a new level
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a level with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a level by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the level doesn't exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a level and its world index entry
	// Returns errors.NotFound if the level doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByWorld retrieves every stored level of a world seed, ordered by level index
	ListByWorld(ctx context.Context, input ListByWorldInput) (*ListByWorldOutput, error)
}

// CreateInput defines the input for storing a level
type CreateInput struct {
	Level *entities.Level
}

// CreateOutput defines the output for storing a level
type CreateOutput struct {
	Level *entities.Level
}

// GetInput defines the input for getting a level
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a level
type GetOutput struct {
	Level *entities.Level
}

// DeleteInput defines the input for deleting a level
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a level
type DeleteOutput struct{}

// ListByWorldInput defines the input for listing the levels of a world
type ListByWorldInput struct {
	WorldSeed int64
}

// ListByWorldOutput defines the output for listing the levels of a world
type ListByWorldOutput struct {
	Levels []*entities.Level
}
