package entities

import (
	"encoding/json"
	"slices"
)

// Area is a rectangular zone instance in tile coordinates
type Area struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Rect
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Tiles lists the area's cells in row-major order
func (a *Area) Tiles() []Point {
	out := make([]Point, 0, max(0, a.Area()))
	for y := a.Y; y < a.Y+a.Height; y++ {
		for x := a.X; x < a.X+a.Width; x++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}

// AreaMap is an ordered set of areas with a lazily rebuilt tile index.
// Add marks the index dirty; the next lookup rebuilds it.
type AreaMap struct {
	areas []*Area
	index map[Point][]*Area
	dirty bool
}

// NewAreaMap creates a map holding the given areas in order
func NewAreaMap(areas ...*Area) *AreaMap {
	m := &AreaMap{}
	for _, a := range areas {
		m.Add(a)
	}
	return m
}

// Add appends an area and invalidates the index
func (m *AreaMap) Add(a *Area) {
	if a == nil {
		return
	}
	m.areas = append(m.areas, a)
	m.dirty = true
}

// Areas returns the areas in insertion order
func (m *AreaMap) Areas() []*Area {
	if m == nil {
		return nil
	}
	return slices.Clone(m.areas)
}

// Len returns the number of areas
func (m *AreaMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.areas)
}

// At returns the areas covering a tile, in insertion order
func (m *AreaMap) At(x, y int) []*Area {
	if m == nil {
		return nil
	}
	if m.dirty || m.index == nil {
		m.rebuild()
	}
	return m.index[Point{X: x, Y: y}]
}

// AtType reports whether any area of the given type covers a tile
func (m *AreaMap) AtType(x, y int, areaType string) bool {
	for _, a := range m.At(x, y) {
		if a.Type == areaType {
			return true
		}
	}
	return false
}

// OfType returns every area with the given type
func (m *AreaMap) OfType(areaType string) []*Area {
	if m == nil {
		return nil
	}
	var out []*Area
	for _, a := range m.areas {
		if a.Type == areaType {
			out = append(out, a)
		}
	}
	return out
}

// Clone deep copies the areas; the index is rebuilt on demand
func (m *AreaMap) Clone() *AreaMap {
	if m == nil {
		return nil
	}
	out := &AreaMap{}
	for _, a := range m.areas {
		cp := *a
		if a.Attributes != nil {
			cp.Attributes = make(map[string]string, len(a.Attributes))
			for k, v := range a.Attributes {
				cp.Attributes[k] = v
			}
		}
		out.Add(&cp)
	}
	return out
}

func (m *AreaMap) rebuild() {
	m.index = make(map[Point][]*Area)
	for _, a := range m.areas {
		for _, p := range a.Tiles() {
			m.index[p] = append(m.index[p], a)
		}
	}
	m.dirty = false
}

// MarshalJSON encodes the map as its ordered list of area records
func (m *AreaMap) MarshalJSON() ([]byte, error) {
	if m == nil || m.areas == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m.areas)
}

// UnmarshalJSON decodes an ordered list of area records
func (m *AreaMap) UnmarshalJSON(data []byte) error {
	var records []*Area
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	*m = AreaMap{}
	for _, a := range records {
		m.Add(a)
	}
	return nil
}
