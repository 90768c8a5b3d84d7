package areas

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
)

// Registry is the catalog of zone types, bound to the terrain registry used
// to resolve terrain grids during validation.
type Registry struct {
	mu       sync.RWMutex
	types    map[string]*TypeDefinition
	terrains *terrain.Registry
}

// NewRegistry creates an empty zone-type registry
func NewRegistry(terrains *terrain.Registry) *Registry {
	return &Registry{
		types:    make(map[string]*TypeDefinition),
		terrains: terrains,
	}
}

// NewDefaultRegistry creates a registry holding the default zone types
func NewDefaultRegistry(terrains *terrain.Registry) *Registry {
	r := NewRegistry(terrains)
	r.RegisterDefaults()
	return r
}

// Register adds or replaces a zone type by name
func (r *Registry) Register(def *TypeDefinition) error {
	if def == nil {
		return errors.InvalidArgument("area type definition is required")
	}
	if def.Name == "" {
		return errors.InvalidArgument("area type name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[def.Name] = def
	return nil
}

// Get returns a zone type, or NotFound for unregistered names
func (r *Registry) Get(name string) (*TypeDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.types[name]
	if !ok {
		return nil, errors.NotFoundf("unknown area type %q", name).WithMeta(errors.MetaAreaType, name)
	}
	return def, nil
}

// Types lists registered zone type names in sorted order
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Terrains returns the terrain registry the zone types validate against
func (r *Registry) Terrains() *terrain.Registry {
	return r.terrains
}

// ValidateArea checks one zone instance: size bounds, then the first tile
// whose base is outside the required set, then forbidden spawns, then the
// extra rules in order. Rule failures become issues.
func (r *Registry) ValidateArea(area *entities.Area, ctx *Context, lookup TerrainLookup) []string {
	def, err := r.Get(area.Type)
	if err != nil {
		return []string{fmt.Sprintf("Area '%s' has unknown type '%s'", area.ID, area.Type)}
	}

	var issues []string
	label := fmt.Sprintf("Area '%s' (%s)", area.ID, area.Type)

	if area.Width < def.MinSize.Width || area.Height < def.MinSize.Height {
		issues = append(issues, fmt.Sprintf("%s is too small: %dx%d (minimum %dx%d)",
			label, area.Width, area.Height, def.MinSize.Width, def.MinSize.Height))
	}
	if def.MaxSize != nil && (area.Width > def.MaxSize.Width || area.Height > def.MaxSize.Height) {
		issues = append(issues, fmt.Sprintf("%s is too large: %dx%d (maximum %dx%d)",
			label, area.Width, area.Height, def.MaxSize.Width, def.MaxSize.Height))
	}

	if len(def.RequiredBases) > 0 && lookup != nil {
		if issue := r.firstBaseViolation(label, def, area, lookup); issue != "" {
			issues = append(issues, issue)
		}
	}

	for _, sp := range ctx.SpawnsIn(area) {
		if def.Forbids(sp.Label) {
			issues = append(issues, fmt.Sprintf("%s contains forbidden spawn '%s' at (%d,%d)",
				label, sp.Label, sp.X, sp.Y))
		}
	}

	for _, rule := range def.Rules {
		issues = append(issues, evaluateRule(label, rule, ctx, area, lookup)...)
	}

	return issues
}

// ValidateLevelAreas validates every area of a level. Without a terrain grid
// there is nothing to check against and no issues are reported.
func (r *Registry) ValidateLevelAreas(m *entities.AreaMap, ctx *Context, terrainGrid [][]string) []string {
	if len(terrainGrid) == 0 || m == nil {
		return nil
	}

	lookup := TerrainLookup(r.terrains.Lookup(terrainGrid))
	var issues []string
	for _, area := range m.Areas() {
		issues = append(issues, r.ValidateArea(area, ctx, lookup)...)
	}
	return issues
}

func (r *Registry) firstBaseViolation(label string, def *TypeDefinition, area *entities.Area, lookup TerrainLookup) string {
	for _, p := range area.Tiles() {
		tag, err := lookup(p.X, p.Y)
		if err != nil {
			return fmt.Sprintf("%s has unresolvable terrain at (%d,%d): %s", label, p.X, p.Y, errors.GetMessage(err))
		}
		if !def.requiresBase(tag.Base) {
			return fmt.Sprintf("%s has tile (%d,%d) with base '%s' (requires %s)",
				label, p.X, p.Y, tag.Base, def.requiredBasesString())
		}
	}
	return ""
}

// evaluateRule isolates a rule: returned errors and panics become one issue
func evaluateRule(label string, rule Rule, ctx *Context, area *entities.Area, lookup TerrainLookup) (issues []string) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("Area rule panicked", "rule", rule.Name(), "area_id", area.ID, "panic", rec)
			issues = []string{fmt.Sprintf("%s rule '%s' failed: %v", label, rule.Name(), rec)}
		}
	}()

	out, err := rule.Evaluate(ctx, area, lookup)
	if err != nil {
		return []string{fmt.Sprintf("%s rule '%s' failed: %v", label, rule.Name(), err)}
	}
	return out
}
