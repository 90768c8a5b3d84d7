// Package terrain implements the terrain registry: terrain ids resolve to tags
// carrying a base surface category and modifier labels.
package terrain

import (
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
)

// Base is the coarse surface category of a terrain
type Base string

// Base categories
const (
	BasePlatform Base = "platform"
	BaseFloor    Base = "floor"
	BaseWall     Base = "wall"
	BaseWater    Base = "water"
)

// Modifier is a descriptive label on top of a base
type Modifier string

// Modifiers
const (
	ModSticky Modifier = "sticky"
	ModIcy    Modifier = "icy"
	ModFire   Modifier = "fire"
)

// Movement is how an entity traverses terrain
type Movement string

// Movement kinds
const (
	MovementGround     Movement = "ground"
	MovementFlying     Movement = "flying"
	MovementAmphibious Movement = "amphibious"
)

// Tag is the resolved form of a terrain id
type Tag struct {
	ID        string     `json:"id"`
	Base      Base       `json:"base"`
	Modifiers []Modifier `json:"modifiers,omitempty"`
}

// HasModifier reports whether the tag carries a modifier
func (t Tag) HasModifier(m Modifier) bool {
	return slices.Contains(t.Modifiers, m)
}

func (t Tag) equal(o Tag) bool {
	return t.ID == o.ID && t.Base == o.Base && slices.Equal(t.Modifiers, o.Modifiers)
}

// Registry is the catalog of terrain ids. Build one at startup and share it;
// all methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	bases     map[Base]struct{}
	modifiers map[Modifier]modifierRule
	tags      map[string]Tag
	walkable  map[Movement][]Base
}

type modifierRule struct {
	allowed   []Base
	hazardous bool
}

// NewRegistry creates an empty registry with no bases, modifiers or ids
func NewRegistry() *Registry {
	return &Registry{
		bases:     make(map[Base]struct{}),
		modifiers: make(map[Modifier]modifierRule),
		tags:      make(map[string]Tag),
		walkable:  make(map[Movement][]Base),
	}
}

// NewDefaultRegistry creates a registry loaded with the default terrain set
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterDefaults()
	return r
}

// RegisterBase adds a base category
func (r *Registry) RegisterBase(b Base) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bases[b] = struct{}{}
}

// RegisterModifier adds a modifier restricted to the given bases
func (r *Registry) RegisterModifier(m Modifier, hazardous bool, allowed ...Base) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modifiers[m] = modifierRule{allowed: slices.Clone(allowed), hazardous: hazardous}
}

// SetWalkableBases declares which bases a movement kind can stand on
func (r *Registry) SetWalkableBases(m Movement, bases ...Base) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.walkable[m] = slices.Clone(bases)
}

// Register adds a terrain id. Registering an identical tag again is a no-op;
// redefining an id with a different tag is rejected.
func (r *Registry) Register(tag Tag) error {
	if tag.ID == "" {
		return errors.InvalidArgument("terrain id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bases[tag.Base]; !ok {
		return errors.InvalidArgumentf("terrain %q uses unregistered base %q", tag.ID, tag.Base)
	}
	for _, m := range tag.Modifiers {
		rule, ok := r.modifiers[m]
		if !ok {
			return errors.InvalidArgumentf("terrain %q uses unregistered modifier %q", tag.ID, m)
		}
		if !slices.Contains(rule.allowed, tag.Base) {
			return errors.InvalidArgumentf("modifier %q is not allowed on base %q", m, tag.Base)
		}
	}

	if existing, ok := r.tags[tag.ID]; ok {
		if existing.equal(tag) {
			return nil
		}
		return errors.AlreadyExistsf("terrain %q already registered with a different tag", tag.ID)
	}

	tag.Modifiers = slices.Clone(tag.Modifiers)
	r.tags[tag.ID] = tag
	return nil
}

// Define is shorthand for Register(Tag{...})
func (r *Registry) Define(id string, base Base, mods ...Modifier) error {
	return r.Register(Tag{ID: id, Base: base, Modifiers: mods})
}

// Resolve returns the tag for a terrain id, or NotFound
func (r *Registry) Resolve(id string) (Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tag, ok := r.tags[id]
	if !ok {
		return Tag{}, errors.NotFoundf("unknown terrain id %q", id).WithMeta(errors.MetaTerrainID, id)
	}
	return tag, nil
}

// MustResolve is Resolve for ids known to be registered; it panics otherwise
func (r *Registry) MustResolve(id string) Tag {
	tag, err := r.Resolve(id)
	if err != nil {
		panic(err)
	}
	return tag
}

// IDs lists registered terrain ids in sorted order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.tags))
	for id := range r.tags {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsPlatformLike is the "safe to stand on" predicate: floor or platform base
func (r *Registry) IsPlatformLike(tag Tag) bool {
	return tag.Base == BaseFloor || tag.Base == BasePlatform
}

// IsWalkable reports whether a movement kind can stand on the tag.
// Unknown movement kinds fall back to platform-like.
func (r *Registry) IsWalkable(tag Tag, m Movement) bool {
	r.mu.RLock()
	bases, ok := r.walkable[m]
	r.mu.RUnlock()

	if !ok {
		return r.IsPlatformLike(tag)
	}
	return slices.Contains(bases, tag.Base)
}

// IsHazardous reports whether any modifier on the tag is hazardous
func (r *Registry) IsHazardous(tag Tag) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range tag.Modifiers {
		if r.modifiers[m].hazardous {
			return true
		}
	}
	return false
}

// SupportsEnemy reports whether an enemy with the given traits can spawn on the tag
func (r *Registry) SupportsEnemy(tag Tag, traits []string) bool {
	switch {
	case slices.Contains(traits, entities.TraitFlying) || slices.Contains(traits, entities.TraitAir):
		return true
	case slices.Contains(traits, entities.TraitAmphibious):
		return r.IsWalkable(tag, MovementAmphibious)
	default:
		return r.IsWalkable(tag, MovementGround)
	}
}

// MovementFor picks the movement kind implied by enemy traits
func MovementFor(traits []string) Movement {
	switch {
	case slices.Contains(traits, entities.TraitFlying) || slices.Contains(traits, entities.TraitAir):
		return MovementFlying
	case slices.Contains(traits, entities.TraitAmphibious):
		return MovementAmphibious
	default:
		return MovementGround
	}
}

// Lookup adapts a terrain grid to a tile lookup function
func (r *Registry) Lookup(grid [][]string) func(x, y int) (Tag, error) {
	return func(x, y int) (Tag, error) {
		if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
			return Tag{}, errors.OutOfRangef("tile (%d,%d) is outside the terrain grid", x, y)
		}
		return r.Resolve(grid[y][x])
	}
}

func (r *Registry) mustDefine(id string, base Base, mods ...Modifier) {
	if err := r.Define(id, base, mods...); err != nil {
		slog.Error("Failed to register default terrain", "terrain_id", id, "error", err)
		panic(err)
	}
}
