package validator

import (
	"fmt"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

const (
	bytesPerTile        = 4
	bytesPerTerrainCell = 20
	bytesPerMB          = 1024 * 1024
)

// complexity is the wall ratio scaled by the level's size relative to the
// reference dimensions
func (v *Validator) complexity(grid entities.Grid) float64 {
	total := grid.Width() * grid.Height()
	if total == 0 {
		return 0
	}
	wallRatio := float64(grid.Count(entities.TileWall)) / float64(total)
	sizeFactor := float64(total) / float64(v.thresholds.ReferenceWidth*v.thresholds.ReferenceHeight)
	return wallRatio * sizeFactor
}

func memoryMB(grid entities.Grid, terrainGrid [][]string) float64 {
	bytes := grid.Width() * grid.Height() * bytesPerTile
	if len(terrainGrid) > 0 {
		bytes += len(terrainGrid) * len(terrainGrid[0]) * bytesPerTerrainCell
	}
	return float64(bytes) / bytesPerMB
}

func (v *Validator) checkPerformance(p *pass) {
	p.metrics.ComplexityScore = v.complexity(p.data.Grid)
	if p.metrics.ComplexityScore > v.thresholds.MaxComplexity {
		p.add(fmt.Sprintf("Level complexity too high: %.2f", p.metrics.ComplexityScore))
	}

	p.metrics.MemoryMB = memoryMB(p.data.Grid, p.data.TerrainGrid)
	if p.metrics.MemoryMB > v.thresholds.MaxMemoryMB {
		p.add(fmt.Sprintf("High memory usage: %.1fMB", p.metrics.MemoryMB))
	}
}

func (v *Validator) finalMetrics(p *pass) {
	grid := p.data.Grid
	total := float64(grid.Width() * grid.Height())
	floor := float64(grid.Count(entities.TileFloor))

	p.metrics.FloorRatio = floor / total
	p.metrics.WallRatio = (total - floor) / total
	p.metrics.IsolatedRatio = float64(len(isolatedTiles(grid))) / total
}
