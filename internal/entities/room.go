package entities

// Spawn labels used by rooms and zone rules
const (
	LabelPlayer          = "player"
	LabelObjective       = "objective"
	LabelEnemyGround     = "enemy_ground"
	LabelEnemyFlying     = "enemy_flying"
	LabelEnemyWater      = "enemy_water"
	LabelEnemyAmphibious = "enemy_amphibious"
	LabelMerchant        = "merchant"
)

// EntitySpawn is a labelled spawn descriptor in tile coordinates
type EntitySpawn struct {
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// Room is a rectangle carved by the layout producer
type Room struct {
	Rect
	IsStart     bool          `json:"is_start,omitempty"`
	IsObjective bool          `json:"is_objective,omitempty"`
	Spawns      []EntitySpawn `json:"spawns,omitempty"`
}

// Clone returns a deep copy
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	out := *r
	out.Spawns = append([]EntitySpawn(nil), r.Spawns...)
	return &out
}

// CloneRooms deep copies a room list
func CloneRooms(rooms []*Room) []*Room {
	if rooms == nil {
		return nil
	}
	out := make([]*Room, len(rooms))
	for i, r := range rooms {
		out[i] = r.Clone()
	}
	return out
}
