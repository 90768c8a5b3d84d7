package layout

import (
	"context"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/rng"
)

// Config configures the default producer
type Config struct {
	MinWidth            int `yaml:"min_width" json:"min_width"`
	MinHeight           int `yaml:"min_height" json:"min_height"`
	LeafSize            int `yaml:"leaf_size" json:"leaf_size"` // smallest BSP partition edge
	MaxDepth            int `yaml:"max_depth" json:"max_depth"`
	MinRoomSize         int `yaml:"min_room_size" json:"min_room_size"`
	CaveFillPercent     int `yaml:"cave_fill_percent" json:"cave_fill_percent"`
	SmoothingIterations int `yaml:"smoothing_iterations" json:"smoothing_iterations"`
	WallThreshold       int `yaml:"wall_threshold" json:"wall_threshold"` // wall neighbours (of 8) that make a cell wall
}

// DefaultConfig returns the stock producer settings
func DefaultConfig() *Config {
	return &Config{
		MinWidth:            10,
		MinHeight:           10,
		LeafSize:            8,
		MaxDepth:            5,
		MinRoomSize:         4,
		CaveFillPercent:     45,
		SmoothingIterations: 4,
		WallThreshold:       5,
	}
}

// Validate checks the producer settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("MinWidth", c.MinWidth, 5, 1000, vb)
	errors.ValidateRange("MinHeight", c.MinHeight, 5, 1000, vb)
	errors.ValidatePositive("MaxDepth", c.MaxDepth, vb)
	errors.ValidateRange("MinRoomSize", c.MinRoomSize, 2, 50, vb)
	if c.LeafSize < c.MinRoomSize+2 {
		vb.Fieldf("LeafSize", "must be at least MinRoomSize+2 (%d)", c.MinRoomSize+2)
	}
	errors.ValidateRange("CaveFillPercent", c.CaveFillPercent, 0, 100, vb)
	if c.SmoothingIterations < 0 {
		vb.Field("SmoothingIterations", "must not be negative")
	}
	errors.ValidateRange("WallThreshold", c.WallThreshold, 1, 8, vb)

	return vb.Build()
}

type producer struct {
	cfg *Config
}

// NewProducer creates the default BSP/cellular automata producer
func NewProducer(cfg *Config) (Producer, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &producer{cfg: cfg}, nil
}

var _ Producer = (*producer)(nil)

// build holds the state of one Produce call
type build struct {
	grid      entities.Grid
	roller    dice.Roller
	protected mapset.Set[entities.Point]
	caverns   []entities.Rect
}

func (p *producer) Produce(ctx context.Context, input *ProduceInput) (*ProduceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContext(err, "produce cancelled")
	}

	style := input.Style
	if style == "" {
		style = entities.StyleDungeon
	}

	vb := errors.NewValidationBuilder()
	if input.Width < p.cfg.MinWidth {
		vb.Fieldf("Width", "must be at least %d", p.cfg.MinWidth)
	}
	if input.Height < p.cfg.MinHeight {
		vb.Fieldf("Height", "must be at least %d", p.cfg.MinHeight)
	}
	errors.ValidateEnum("Style", style, entities.Styles(), vb)
	if input.Roller == nil {
		vb.RequiredField("Roller")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	b := &build{
		grid:      entities.NewGrid(input.Width, input.Height, entities.TileWall),
		roller:    input.Roller,
		protected: mapset.New[entities.Point](),
	}

	leafSize := p.cfg.LeafSize
	if style == entities.StyleOutdoor {
		leafSize = p.cfg.LeafSize * 3 / 2
	}
	interior := entities.Rect{X: 1, Y: 1, Width: input.Width - 2, Height: input.Height - 2}

	var leaves []entities.Rect
	p.split(b.roller, interior, 0, leafSize, &leaves)

	rooms := p.placeRooms(b, leaves, style)
	if len(rooms) == 0 {
		rect := interior.Inflate(-1, -1)
		if rect.Width < 1 || rect.Height < 1 {
			rect = interior
		}
		rooms = []*entities.Room{{Rect: rect}}
	}

	for i, room := range rooms {
		b.carveRoom(room.Rect)
		if style == entities.StyleCave || (style == entities.StyleHybrid && i%2 == 1) {
			b.caverns = append(b.caverns, room.Rect)
		}
	}

	corridorWidth := 1
	if style == entities.StyleOutdoor {
		corridorWidth = 2
	}
	for i := 0; i+1 < len(rooms); i++ {
		b.corridor(rooms[i].Center(), rooms[i+1].Center(), corridorWidth)
	}
	for range len(rooms) / 3 {
		a := rooms[rng.Intn(b.roller, len(rooms))]
		c := rooms[rng.Intn(b.roller, len(rooms))]
		if a != c {
			b.corridor(a.Center(), c.Center(), corridorWidth)
		}
	}

	if len(b.caverns) > 0 {
		b.roughen(p.cfg.CaveFillPercent)
		for range p.cfg.SmoothingIterations {
			b.smooth(p.cfg.WallThreshold)
		}
	}
	seal(b.grid)

	start := rooms[0]
	start.IsStart = true
	if goal := farthestRoom(b.roller, rooms, start); goal != nil {
		goal.IsObjective = true
	}
	spawn := start.Center()
	start.Spawns = append(start.Spawns, entities.EntitySpawn{Label: entities.LabelPlayer, X: spawn.X, Y: spawn.Y})

	slog.Debug("Produced layout",
		"style", style,
		"width", input.Width,
		"height", input.Height,
		"leaves", len(leaves),
		"rooms", len(rooms),
		"caverns", len(b.caverns))

	return &ProduceOutput{
		Grid:        b.grid,
		Rooms:       rooms,
		SpawnPoints: []entities.Point{spawn},
	}, nil
}

// split partitions node recursively and appends the leaves in tree order
func (p *producer) split(r dice.Roller, node entities.Rect, depth, leafSize int, out *[]entities.Rect) {
	if depth >= p.cfg.MaxDepth {
		*out = append(*out, node)
		return
	}

	var horizontal bool
	switch {
	case node.Width*4 > node.Height*5:
		horizontal = false
	case node.Height*4 > node.Width*5:
		horizontal = true
	default:
		horizontal = rng.Intn(r, 2) == 0
	}

	size := node.Width
	if horizontal {
		size = node.Height
	}
	if size < 2*leafSize {
		*out = append(*out, node)
		return
	}

	at := leafSize + rng.Intn(r, size-2*leafSize+1)
	first, second := node, node
	if horizontal {
		first.Height = at
		second.Y += at
		second.Height -= at
	} else {
		first.Width = at
		second.X += at
		second.Width -= at
	}
	p.split(r, first, depth+1, leafSize, out)
	p.split(r, second, depth+1, leafSize, out)
}

// placeRooms picks one room per leaf, leaving a one tile margin inside the leaf
func (p *producer) placeRooms(b *build, leaves []entities.Rect, style string) []*entities.Room {
	var rooms []*entities.Room
	for _, leaf := range leaves {
		maxW, maxH := leaf.Width-2, leaf.Height-2
		if maxW < p.cfg.MinRoomSize || maxH < p.cfg.MinRoomSize {
			continue
		}
		minW, minH := p.cfg.MinRoomSize, p.cfg.MinRoomSize
		if style == entities.StyleOutdoor {
			minW = max(minW, maxW*3/4)
			minH = max(minH, maxH*3/4)
		}
		w := minW + rng.Intn(b.roller, maxW-minW+1)
		h := minH + rng.Intn(b.roller, maxH-minH+1)
		x := leaf.X + 1 + rng.Intn(b.roller, maxW-w+1)
		y := leaf.Y + 1 + rng.Intn(b.roller, maxH-h+1)
		rooms = append(rooms, &entities.Room{Rect: entities.Rect{X: x, Y: y, Width: w, Height: h}})
	}
	return rooms
}

func (b *build) carve(x, y int) {
	if b.grid.IsInterior(x, y) {
		b.grid[y][x] = entities.TileFloor
	}
}

// carveRoom opens the room and protects the 3x3 block around its centre
func (b *build) carveRoom(rect entities.Rect) {
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			b.carve(x, y)
		}
	}
	c := rect.Center()
	for y := c.Y - 1; y <= c.Y+1; y++ {
		for x := c.X - 1; x <= c.X+1; x++ {
			if rect.Contains(x, y) && b.grid.IsInterior(x, y) {
				b.protected.Put(entities.Point{X: x, Y: y})
			}
		}
	}
}

// corridor carves an L shaped, protected passage between two points
func (b *build) corridor(from, to entities.Point, width int) {
	horizontalFirst := rng.Percent(b.roller, 50)

	open := func(x, y int, vertical bool) {
		for i := range width {
			cx, cy := x, y
			if vertical {
				cx += i
			} else {
				cy += i
			}
			if b.grid.IsInterior(cx, cy) {
				b.carve(cx, cy)
				b.protected.Put(entities.Point{X: cx, Y: cy})
			}
		}
	}
	runX := func(y, x1, x2 int) {
		for x := min(x1, x2); x <= max(x1, x2); x++ {
			open(x, y, false)
		}
	}
	runY := func(x, y1, y2 int) {
		for y := min(y1, y2); y <= max(y1, y2); y++ {
			open(x, y, true)
		}
	}

	if horizontalFirst {
		runX(from.Y, from.X, to.X)
		runY(to.X, from.Y, to.Y)
	} else {
		runY(from.X, from.Y, to.Y)
		runX(to.Y, from.X, to.X)
	}
}

// roughen scatters walls over the unprotected cells of every cavern
func (b *build) roughen(fillPercent int) {
	for _, rect := range b.caverns {
		for y := rect.Y; y < rect.Y+rect.Height; y++ {
			for x := rect.X; x < rect.X+rect.Width; x++ {
				p := entities.Point{X: x, Y: y}
				if !b.grid.IsInterior(x, y) || b.protected.Has(p) {
					continue
				}
				if rng.Percent(b.roller, fillPercent) {
					b.grid[y][x] = entities.TileWall
				} else {
					b.grid[y][x] = entities.TileFloor
				}
			}
		}
	}
}

// smooth runs one cellular automata step over the caverns, reading from a snapshot
func (b *build) smooth(threshold int) {
	snapshot := b.grid.Clone()
	for _, rect := range b.caverns {
		for y := rect.Y; y < rect.Y+rect.Height; y++ {
			for x := rect.X; x < rect.X+rect.Width; x++ {
				if !b.grid.IsInterior(x, y) || b.protected.Has(entities.Point{X: x, Y: y}) {
					continue
				}
				if wallNeighbours(snapshot, x, y) >= threshold {
					b.grid[y][x] = entities.TileWall
				} else {
					b.grid[y][x] = entities.TileFloor
				}
			}
		}
	}
}

// wallNeighbours counts walls among the 8 neighbours; out of bounds counts as wall
func wallNeighbours(grid entities.Grid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && grid.IsWall(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

func seal(grid entities.Grid) {
	h, w := grid.Height(), grid.Width()
	for x := range w {
		grid[0][x] = entities.TileWall
		grid[h-1][x] = entities.TileWall
	}
	for y := range h {
		grid[y][0] = entities.TileWall
		grid[y][w-1] = entities.TileWall
	}
}

// farthestRoom picks at random from the farthest quarter of rooms measured from start
func farthestRoom(r dice.Roller, rooms []*entities.Room, start *entities.Room) *entities.Room {
	type ranked struct {
		room *entities.Room
		dist int
	}
	sc := start.Center()
	var others []ranked
	for _, room := range rooms {
		if room == start {
			continue
		}
		c := room.Center()
		dx, dy := c.X-sc.X, c.Y-sc.Y
		others = append(others, ranked{room: room, dist: dx*dx + dy*dy})
	}
	if len(others) == 0 {
		return nil
	}
	slices.SortStableFunc(others, func(a, b ranked) int {
		return b.dist - a.dist
	})
	quarter := others[:max(1, len(others)/4)]
	return quarter[rng.Intn(r, len(quarter))].room
}
