package autopas

import "math"

// LinkedCellsContainer is a 3D grid of cells with a one-cell halo layer on
// every side (§4.3). Cell side length is at least cutoff*cellSizeFactor.
// Insertion maps a position to a cell index by truncation; UpdateContainer
// re-bins particles that crossed cell boundaries.
type LinkedCellsContainer struct {
	boxMin, boxMax [3]float64
	cutoff, skin   float64
	cellSizeFactor float64

	cellSize [3]float64
	dims     [3]int // interior cell counts, excluding halo layer
	cells    []*FullCell
}

func newLinkedCellsContainer(boxMin, boxMax [3]float64, cutoff, skin, cellSizeFactor float64) *LinkedCellsContainer {
	if cellSizeFactor <= 0 {
		cellSizeFactor = 1
	}
	c := &LinkedCellsContainer{
		boxMin: boxMin, boxMax: boxMax, cutoff: cutoff, skin: skin, cellSizeFactor: cellSizeFactor,
	}
	c.rebuildGrid()
	return c
}

func (c *LinkedCellsContainer) rebuildGrid() {
	targetSize := c.cutoff * c.cellSizeFactor
	for d := 0; d < 3; d++ {
		side := c.boxMax[d] - c.boxMin[d]
		n := int(math.Floor(side / targetSize))
		if n < 1 {
			n = 1
		}
		c.dims[d] = n
		c.cellSize[d] = side / float64(n)
	}
	total := (c.dims[0] + 2) * (c.dims[1] + 2) * (c.dims[2] + 2)
	c.cells = make([]*FullCell, total)
	for i := range c.cells {
		c.cells[i] = NewFullCell()
	}
}

// cellIndex3D maps a position to its (ix,iy,iz) cell coordinate, including
// the halo layer: interior cells are [1, dims[d]], halo cells are index 0
// and dims[d]+1 on each axis. Positions far outside the halo clamp to the
// outermost halo cell rather than panicking.
func (c *LinkedCellsContainer) cellIndex3D(pos [3]float64) [3]int {
	var idx [3]int
	for d := 0; d < 3; d++ {
		rel := (pos[d] - c.boxMin[d]) / c.cellSize[d]
		i := int(math.Floor(rel)) + 1 // +1 to shift into the halo-inclusive range
		if i < 0 {
			i = 0
		}
		if i > c.dims[d]+1 {
			i = c.dims[d] + 1
		}
		idx[d] = i
	}
	return idx
}

func (c *LinkedCellsContainer) flatIndex(idx [3]int) int {
	ny := c.dims[1] + 2
	nz := c.dims[2] + 2
	return (idx[0]*ny+idx[1])*nz + idx[2]
}

func (c *LinkedCellsContainer) cellAt(pos [3]float64) *FullCell {
	return c.cells[c.flatIndex(c.cellIndex3D(pos))]
}

func (c *LinkedCellsContainer) Kind() ContainerOption { return ContainerLinkedCells }

func (c *LinkedCellsContainer) AddParticle(p Particle) error {
	if !inBox(p.Position, c.boxMin, c.boxMax) {
		return newError(OutOfBoundsInsert, "addParticle: position %v outside box [%v,%v)", p.Position, c.boxMin, c.boxMax)
	}
	p.Owned = true
	c.cellAt(p.Position).Add(p)
	return nil
}

func (c *LinkedCellsContainer) AddHaloParticle(p Particle) error {
	if inBox(p.Position, c.boxMin, c.boxMax) {
		return newError(OutOfBoundsInsert, "addHaloParticle: position %v is inside the box", p.Position)
	}
	p.Owned = false
	c.cellAt(p.Position).Add(p)
	return nil
}

func (c *LinkedCellsContainer) UpdateHaloParticle(p Particle) error {
	cell := c.cellAt(p.Position)
	for i := 0; i < cell.Size(); i++ {
		cur := cell.At(i).Get()
		if cur.ID != p.ID || cur.Owned {
			continue
		}
		if distance(cur.Position, p.Position) <= c.skin/2 {
			proxy := cell.At(i)
			np := cur
			np.Position = p.Position
			proxy.Set(np)
			proxy.Close()
			return nil
		}
		return haloUpdateDistanceError(cur.Position, p.Position, c.boxMin, c.boxMax, c.cutoff, c.skin)
	}
	// Not found in the cell the new position maps to: search every cell,
	// since the old position may be in a different cell than the new one.
	for _, other := range c.cells {
		for i := 0; i < other.Size(); i++ {
			cur := other.At(i).Get()
			if cur.ID != p.ID || cur.Owned {
				continue
			}
			if distance(cur.Position, p.Position) <= c.skin/2 {
				proxy := other.At(i)
				np := cur
				np.Position = p.Position
				proxy.Set(np)
				proxy.Close()
				return nil
			}
			return haloUpdateDistanceError(cur.Position, p.Position, c.boxMin, c.boxMax, c.cutoff, c.skin)
		}
	}
	return newHaloError(HaloNotFound, "no halo particle with id %d found near %v", p.ID, p.Position)
}

func (c *LinkedCellsContainer) Cells() []Cell {
	out := make([]Cell, len(c.cells))
	for i, cell := range c.cells {
		out[i] = cell
	}
	return out
}

func (c *LinkedCellsContainer) UpdateContainer() []Particle {
	var leaving []Particle
	for _, cell := range c.cells {
		for i := 0; i < cell.Size(); {
			p := cell.At(i).Get()
			if !p.Owned {
				i++
				continue
			}
			target := c.cellIndex3D(p.Position)
			if c.cells[c.flatIndex(target)] == cell {
				i++
				continue
			}
			cell.RemoveSwapBack(i)
			if !inBox(p.Position, c.boxMin, c.boxMax) {
				leaving = append(leaving, p)
				continue
			}
			c.cells[c.flatIndex(target)].Add(p)
		}
	}
	return leaving
}

func (c *LinkedCellsContainer) DeleteHaloParticles() {
	for _, cell := range c.cells {
		for i := 0; i < cell.Size(); {
			if cell.At(i).Get().Owned {
				i++
				continue
			}
			cell.RemoveSwapBack(i)
		}
	}
}

func (c *LinkedCellsContainer) DeleteAllParticles() {
	for _, cell := range c.cells {
		cell.Clear()
	}
}

func (c *LinkedCellsContainer) NumParticles() int {
	n := 0
	for _, cell := range c.cells {
		n += cell.Size()
	}
	return n
}

func (c *LinkedCellsContainer) Iterator(behavior IteratorBehavior) *ParticleIterator {
	return newParticleIterator(c.Cells(), behavior)
}

func (c *LinkedCellsContainer) RegionIterator(lo, hi [3]float64, behavior IteratorBehavior) *ParticleIterator {
	loIdx := c.cellIndex3D(lo)
	hiIdx := c.cellIndex3D(hi)
	var candidates []Cell
	for ix := loIdx[0]; ix <= hiIdx[0]; ix++ {
		for iy := loIdx[1]; iy <= hiIdx[1]; iy++ {
			for iz := loIdx[2]; iz <= hiIdx[2]; iz++ {
				candidates = append(candidates, c.cells[c.flatIndex([3]int{ix, iy, iz})])
			}
		}
	}
	return newRegionIterator(candidates, lo, hi, behavior)
}

func (c *LinkedCellsContainer) NeedsRebuild() bool { return false }

func (c *LinkedCellsContainer) CutoffAndSkin() (float64, float64) { return c.cutoff, c.skin }
func (c *LinkedCellsContainer) Box() ([3]float64, [3]float64)     { return c.boxMin, c.boxMax }

// interiorCells returns every cell whose 3D index is strictly within the
// halo layer, i.e. the cells the C08 traversal visits as base cells.
func (c *LinkedCellsContainer) interiorCells() [][3]int {
	var out [][3]int
	for ix := 1; ix <= c.dims[0]; ix++ {
		for iy := 1; iy <= c.dims[1]; iy++ {
			for iz := 1; iz <= c.dims[2]; iz++ {
				out = append(out, [3]int{ix, iy, iz})
			}
		}
	}
	return out
}
