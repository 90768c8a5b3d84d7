package levels

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage.
// Levels are kept in their JSON form so callers never share state with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string][]byte
	world map[int64][]string
}

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string][]byte),
		world: make(map[int64][]string),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a level
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Level == nil {
		return nil, errors.InvalidArgument(errLevelNil)
	}
	if input.Level.ID == "" {
		return nil, errors.InvalidArgument(errLevelIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Level.ID]; exists {
		return nil, errors.AlreadyExistsf("level with ID %s already exists", input.Level.ID)
	}

	if input.Level.CreatedAt.IsZero() {
		input.Level.CreatedAt = r.clock.Now()
	}

	data, err := json.Marshal(input.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal level")
	}

	r.store[input.Level.ID] = data
	r.world[input.Level.WorldSeed] = append(r.world[input.Level.WorldSeed], input.Level.ID)

	return &CreateOutput{Level: input.Level}, nil
}

// Get retrieves a level by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errLevelIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	level, err := r.load(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Level: level}, nil
}

// Delete removes a level
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errLevelIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	level, err := r.load(input.ID)
	if err != nil {
		return nil, err
	}

	delete(r.store, input.ID)
	ids := r.world[level.WorldSeed]
	for i, id := range ids {
		if id == input.ID {
			r.world[level.WorldSeed] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}

	return &DeleteOutput{}, nil
}

// ListByWorld retrieves the levels of a world seed ordered by level index
func (r *InMemoryRepository) ListByWorld(_ context.Context, input ListByWorldInput) (*ListByWorldOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.world[input.WorldSeed]
	levels := make([]*entities.Level, 0, len(ids))
	for _, id := range ids {
		level, err := r.load(id)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	sortLevels(levels)

	return &ListByWorldOutput{Levels: levels}, nil
}

func (r *InMemoryRepository) load(id string) (*entities.Level, error) {
	data, exists := r.store[id]
	if !exists {
		return nil, errors.NotFoundf("level with ID %s not found", id)
	}

	var level entities.Level
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal level")
	}
	return &level, nil
}
