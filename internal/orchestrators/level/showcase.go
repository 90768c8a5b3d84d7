package level

import (
	"github.com/KirkDiggler/rpg-levelgen/internal/areas"
	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/terrain"
	"github.com/KirkDiggler/rpg-levelgen/internal/validator"
)

// Showcase dimensions
const (
	showcaseWidth  = 40
	showcaseHeight = 30
	showcaseDivide = 19
	showcaseDoor   = 15
)

// swatch paints a terrain id over a tile rect
type swatch struct {
	id   string
	rect entities.Rect
}

var showcaseSwatches = []swatch{
	{terrain.FloorSticky, entities.Rect{X: 6, Y: 2, Width: 3, Height: 3}},
	{terrain.FloorIcy, entities.Rect{X: 10, Y: 2, Width: 3, Height: 3}},
	{terrain.FloorFire, entities.Rect{X: 14, Y: 2, Width: 3, Height: 3}},
	{terrain.PlatformNormal, entities.Rect{X: 21, Y: 2, Width: 3, Height: 3}},
	{terrain.PlatformSticky, entities.Rect{X: 25, Y: 2, Width: 3, Height: 3}},
	{terrain.PlatformIcy, entities.Rect{X: 29, Y: 2, Width: 3, Height: 3}},
	{terrain.PlatformFire, entities.Rect{X: 33, Y: 2, Width: 3, Height: 3}},
	{terrain.Water, entities.Rect{X: 4, Y: 20, Width: 8, Height: 5}},
	{terrain.PlatformNormal, entities.Rect{X: 33, Y: 24, Width: 3, Height: 3}},
}

// TerrainTestLevel builds a fixed 40x30 hybrid level holding every default
// terrain id and one zone of every default type. Two halves joined by a
// single door tile give it two combat areas. It passes full validation with
// the default registries and thresholds.
func TerrainTestLevel(terrains *terrain.Registry, tileSize int) *entities.Level {
	if tileSize <= 0 {
		tileSize = validator.DefaultTileSize
	}

	grid := entities.NewGrid(showcaseWidth, showcaseHeight, entities.TileFloor)
	sealBoundary(grid)
	for y := 1; y < showcaseHeight-1; y++ {
		if y != showcaseDoor {
			grid[y][showcaseDivide] = entities.TileWall
		}
	}

	tg := make([][]string, showcaseHeight)
	for y := range tg {
		tg[y] = make([]string, showcaseWidth)
		for x := range tg[y] {
			if grid[y][x] == entities.TileWall {
				tg[y][x] = terrain.WallSolid
			} else {
				tg[y][x] = terrain.FloorNormal
			}
		}
	}
	for _, s := range showcaseSwatches {
		for y := s.rect.Y; y < s.rect.Y+s.rect.Height; y++ {
			for x := s.rect.X; x < s.rect.X+s.rect.Width; x++ {
				tg[y][x] = s.id
			}
		}
	}

	spawn := entities.Point{X: 3, Y: 3}
	objective := entities.Point{X: 34, Y: 25}
	merchant := entities.Point{X: 31, Y: 11}

	rooms := []*entities.Room{
		{
			Rect:    entities.Rect{X: 1, Y: 1, Width: showcaseDivide - 1, Height: showcaseHeight - 2},
			IsStart: true,
			Spawns:  []entities.EntitySpawn{{Label: entities.LabelPlayer, X: spawn.X, Y: spawn.Y}},
		},
		{
			Rect:        entities.Rect{X: showcaseDivide + 1, Y: 1, Width: showcaseWidth - showcaseDivide - 2, Height: showcaseHeight - 2},
			IsObjective: true,
		},
	}

	zones := entities.NewAreaMap(
		&entities.Area{ID: "player_start", Type: areas.TypePlayerStart, Rect: entities.Rect{X: 2, Y: 2, Width: 3, Height: 3}},
		&entities.Area{ID: "objective_zone", Type: areas.TypeObjectiveZone, Rect: entities.Rect{X: 33, Y: 24, Width: 3, Height: 3}},
		&entities.Area{ID: "ground_enemies", Type: areas.TypeGroundEnemyZone, Rect: entities.Rect{X: 4, Y: 10, Width: 6, Height: 4}},
		&entities.Area{ID: "flying_enemies", Type: areas.TypeFlyingEnemyZone, Rect: entities.Rect{X: 22, Y: 10, Width: 6, Height: 4}},
		&entities.Area{ID: "merchant", Type: areas.TypeMerchantZone, Rect: entities.Rect{X: 30, Y: 10, Width: 4, Height: 3}},
	)
	for _, water := range areas.BuildWaterZones(tg, areas.TerrainLookup(terrains.Lookup(tg))) {
		zones.Add(water)
	}

	objectivePx := entities.Point{X: objective.X * tileSize, Y: objective.Y * tileSize}
	return &entities.Level{
		Style:       entities.StyleHybrid,
		Difficulty:  entities.DifficultyNormal,
		Grid:        grid,
		TerrainGrid: tg,
		Areas:       zones,
		Rooms:       rooms,
		SpawnPoints: []entities.Point{spawn},
		Solids:      solids(grid, tileSize),
		Enemies: []*entities.Enemy{
			entities.NewEnemyAt("enemy_0", "Bug", entities.Point{X: 6, Y: 11}, tileSize),
			entities.NewEnemyAt("enemy_1", "Bee", entities.Point{X: 24, Y: 11}, tileSize),
			entities.NewEnemyAt("enemy_2", "Frog", entities.Point{X: 6, Y: 22}, tileSize),
		},
		Doors:          doors(grid, rooms, tileSize),
		Start:          entities.Point{X: spawn.X * tileSize, Y: spawn.Y * tileSize},
		Objective:      &objectivePx,
		MerchantSpawns: []entities.Point{merchant},
		TileSize:       tileSize,
		PixelWidth:     showcaseWidth * tileSize,
		PixelHeight:    showcaseHeight * tileSize,
	}
}

// LevelData converts a stored or generated level back into validation input
func LevelData(level *entities.Level) *validator.LevelData {
	if level == nil {
		return nil
	}
	return &validator.LevelData{
		Grid:           level.Grid,
		TerrainGrid:    level.TerrainGrid,
		Rooms:          level.Rooms,
		SpawnPoints:    level.SpawnPoints,
		Areas:          level.Areas,
		ObjectivePos:   level.Objective,
		Enemies:        level.Enemies,
		MerchantSpawns: level.MerchantSpawns,
		Style:          level.Style,
	}
}
