package levelmap

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

// Summary is the human readable digest of a level
type Summary struct {
	ID            string          `yaml:"id,omitempty"`
	WorldSeed     int64           `yaml:"world_seed"`
	LevelIndex    int             `yaml:"level_index"`
	Seed          uint64          `yaml:"seed"`
	Style         string          `yaml:"style"`
	Difficulty    int             `yaml:"difficulty"`
	Width         int             `yaml:"width"`
	Height        int             `yaml:"height"`
	Spawn         *entities.Point `yaml:"spawn,omitempty"`
	Objective     *entities.Point `yaml:"objective_tile,omitempty"`
	Rooms         int             `yaml:"rooms"`
	Doors         int             `yaml:"doors"`
	Enemies       []EnemyLine     `yaml:"enemies,omitempty"`
	Zones         []ZoneLine      `yaml:"zones,omitempty"`
	Valid         bool            `yaml:"valid"`
	Issues        []string        `yaml:"issues,omitempty"`
	Attempts      int             `yaml:"validation_attempts"`
	Repairs       int             `yaml:"repair_attempts"`
	RepairHistory []string        `yaml:"repair_history,omitempty"`
}

// EnemyLine is one enemy in tile space
type EnemyLine struct {
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// ZoneLine is one zone
type ZoneLine struct {
	ID     string `yaml:"id"`
	Type   string `yaml:"type"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Summarize digests a level and the repair history of its generation
func Summarize(level *entities.Level, history []string) *Summary {
	if level == nil {
		return &Summary{}
	}

	s := &Summary{
		ID:            level.ID,
		WorldSeed:     level.WorldSeed,
		LevelIndex:    level.LevelIndex,
		Seed:          level.Seed,
		Style:         level.Style,
		Difficulty:    level.Difficulty,
		Width:         level.Grid.Width(),
		Height:        level.Grid.Height(),
		Rooms:         len(level.Rooms),
		Doors:         len(level.Doors),
		RepairHistory: history,
	}
	if len(level.SpawnPoints) > 0 {
		sp := level.SpawnPoints[0]
		s.Spawn = &sp
	}

	ts := max(1, level.TileSize)
	if level.Objective != nil {
		s.Objective = &entities.Point{X: level.Objective.X / ts, Y: level.Objective.Y / ts}
	}
	for _, e := range level.Enemies {
		t := e.Tile(ts)
		s.Enemies = append(s.Enemies, EnemyLine{Type: e.Type, X: t.X, Y: t.Y})
	}
	for _, a := range level.Areas.Areas() {
		s.Zones = append(s.Zones, ZoneLine{ID: a.ID, Type: a.Type, X: a.X, Y: a.Y, Width: a.Width, Height: a.Height})
	}
	if level.Report != nil {
		s.Valid = level.Report.Valid
		s.Issues = level.Report.Issues
		s.Attempts = level.Report.ValidationAttempts
		s.Repairs = level.Report.RepairAttempts
	}
	return s
}

// WriteYAML writes the summary of a level as YAML
func WriteYAML(w io.Writer, level *entities.Level, history []string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Summarize(level, history)); err != nil {
		return err
	}
	return enc.Close()
}
