package engine

import (
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// Cell holds the entities occupying one index cell
// Sized to fit exactly into 128 bytes (2 cache lines) when Entity is uint64:
// 1 (Count) + 7 (Padding) + 15 * 8 (Entities) = 128 bytes
type Cell struct {
	Count    uint8
	_        [7]byte // Explicit padding to ensure 8-byte alignment for Entities
	Entities [parameter.MaxEntitiesPerCell]core.Entity
}

// SpatialIndex is a dense 3D cell grid for radius queries without allocation
// Cell size is 2^CellShift world units; coordinates are Q32.32 fixed-point
type SpatialIndex struct {
	CellsX int
	CellsY int
	CellsZ int
	Cells  []Cell // 1D array: index = (z*CellsY + y)*CellsX + x
}

// NewSpatialIndex creates an index covering a volume of the given
// dimensions in world units
func NewSpatialIndex(width, height, depth int) *SpatialIndex {
	cx := cellSpan(width)
	cy := cellSpan(height)
	cz := cellSpan(depth)
	return &SpatialIndex{
		CellsX: cx,
		CellsY: cy,
		CellsZ: cz,
		Cells:  make([]Cell, cx*cy*cz),
	}
}

func cellSpan(units int) int {
	span := (units + (1 << parameter.CellShift) - 1) >> parameter.CellShift
	if span < 1 {
		span = 1
	}
	return span
}

// cellCoord maps one Q32.32 world coordinate to a cell ordinate
// Arithmetic shift floors negatives so border entities land in edge cells
func cellCoord(q int64) int {
	return int(q>>vmath.Shift) >> parameter.CellShift
}

func (g *SpatialIndex) cellIndex(cx, cy, cz int) (int, bool) {
	if cx < 0 || cx >= g.CellsX || cy < 0 || cy >= g.CellsY || cz < 0 || cz >= g.CellsZ {
		return 0, false
	}
	return (cz*g.CellsY+cy)*g.CellsX + cx, true
}

// Insert adds an entity at the given position
// O(1), returns false if out of bounds or the cell is full (soft clip)
func (g *SpatialIndex) Insert(e core.Entity, pos vmath.Vec3) bool {
	idx, ok := g.cellIndex(cellCoord(pos.X), cellCoord(pos.Y), cellCoord(pos.Z))
	if !ok {
		return false
	}

	cell := &g.Cells[idx] // Get pointer to avoid copy
	if cell.Count < parameter.MaxEntitiesPerCell {
		cell.Entities[cell.Count] = e
		cell.Count++
		return true
	}
	return false
}

// Remove deletes an entity from the cell containing pos
// O(k) where k <= 15. Uses swap-remove to maintain dense packing
func (g *SpatialIndex) Remove(e core.Entity, pos vmath.Vec3) {
	idx, ok := g.cellIndex(cellCoord(pos.X), cellCoord(pos.Y), cellCoord(pos.Z))
	if !ok {
		return
	}

	cell := &g.Cells[idx]
	for i := uint8(0); i < cell.Count; i++ {
		if cell.Entities[i] == e {
			cell.Count--
			if i < cell.Count {
				cell.Entities[i] = cell.Entities[cell.Count]
			}
			cell.Entities[cell.Count] = 0
			return
		}
	}
}

// Move relocates an entity between cells, skipping the work when both
// positions map to the same cell
func (g *SpatialIndex) Move(e core.Entity, oldPos, newPos vmath.Vec3) {
	oldIdx, oldOK := g.cellIndex(cellCoord(oldPos.X), cellCoord(oldPos.Y), cellCoord(oldPos.Z))
	newIdx, newOK := g.cellIndex(cellCoord(newPos.X), cellCoord(newPos.Y), cellCoord(newPos.Z))

	if oldOK && newOK && oldIdx == newIdx {
		return
	}
	if oldOK {
		g.Remove(e, oldPos)
	}
	if newOK {
		g.Insert(e, newPos)
	}
}

// CollectInRadius appends every entity in cells overlapping the sphere
// at origin with the given Q32.32 radius. Over-collects at cell
// granularity; callers apply the exact distance filter
func (g *SpatialIndex) CollectInRadius(origin vmath.Vec3, radius int64, out []core.Entity) []core.Entity {
	minX := clampCell(cellCoord(origin.X-radius), g.CellsX)
	maxX := clampCell(cellCoord(origin.X+radius), g.CellsX)
	minY := clampCell(cellCoord(origin.Y-radius), g.CellsY)
	maxY := clampCell(cellCoord(origin.Y+radius), g.CellsY)
	minZ := clampCell(cellCoord(origin.Z-radius), g.CellsZ)
	maxZ := clampCell(cellCoord(origin.Z+radius), g.CellsZ)

	for cz := minZ; cz <= maxZ; cz++ {
		for cy := minY; cy <= maxY; cy++ {
			rowBase := (cz*g.CellsY + cy) * g.CellsX
			for cx := minX; cx <= maxX; cx++ {
				cell := &g.Cells[rowBase+cx]
				for i := uint8(0); i < cell.Count; i++ {
					out = append(out, cell.Entities[i])
				}
			}
		}
	}
	return out
}

func clampCell(c, span int) int {
	if c < 0 {
		return 0
	}
	if c >= span {
		return span - 1
	}
	return c
}

// Clear removes all entities from all cells
func (g *SpatialIndex) Clear() {
	for i := range g.Cells {
		g.Cells[i].Count = 0
	}
}
