package autopas

import (
	"errors"
	"testing"
)

func newTestLinkedCells() *LinkedCellsContainer {
	return newLinkedCellsContainer([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 2.0, 0.3, 1.0)
}

func TestLinkedCellsGridDimsCoverBox(t *testing.T) {
	c := newTestLinkedCells()
	for d := 0; d < 3; d++ {
		if c.dims[d] < 1 {
			t.Fatalf("dims[%d] = %d, want >= 1", d, c.dims[d])
		}
		if c.cellSize[d]*float64(c.dims[d]) < 10-1e-9 {
			t.Errorf("cellSize[%d]*dims[%d] = %v, want >= box side 10", d, d, c.cellSize[d]*float64(c.dims[d]))
		}
	}
	wantTotal := (c.dims[0] + 2) * (c.dims[1] + 2) * (c.dims[2] + 2)
	if len(c.cells) != wantTotal {
		t.Errorf("len(cells) = %d, want %d", len(c.cells), wantTotal)
	}
}

func TestLinkedCellsAddParticlePlacesInInteriorCell(t *testing.T) {
	c := newTestLinkedCells()
	if err := c.AddParticle(NewParticle(1, [3]float64{5, 5, 5})); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}
	idx := c.cellIndex3D([3]float64{5, 5, 5})
	for d := 0; d < 3; d++ {
		if idx[d] < 1 || idx[d] > c.dims[d] {
			t.Errorf("interior particle mapped to halo index %v", idx)
		}
	}
	if c.NumParticles() != 1 {
		t.Fatalf("NumParticles() = %d, want 1", c.NumParticles())
	}
}

func TestLinkedCellsAddHaloParticlePlacesInHaloCell(t *testing.T) {
	c := newTestLinkedCells()
	if err := c.AddHaloParticle(NewHaloParticle(1, [3]float64{-0.1, 5, 5})); err != nil {
		t.Fatalf("AddHaloParticle: %v", err)
	}
	idx := c.cellIndex3D([3]float64{-0.1, 5, 5})
	if idx[0] != 0 {
		t.Errorf("halo particle x-index = %d, want 0", idx[0])
	}
}

func TestLinkedCellsCellIndex3DClampsFarOutsidePositions(t *testing.T) {
	c := newTestLinkedCells()
	idx := c.cellIndex3D([3]float64{-1000, -1000, -1000})
	if idx != ([3]int{0, 0, 0}) {
		t.Errorf("cellIndex3D far outside = %v, want {0,0,0}", idx)
	}
	idx = c.cellIndex3D([3]float64{1000, 1000, 1000})
	want := [3]int{c.dims[0] + 1, c.dims[1] + 1, c.dims[2] + 1}
	if idx != want {
		t.Errorf("cellIndex3D far outside = %v, want %v", idx, want)
	}
}

func TestLinkedCellsUpdateContainerRebins(t *testing.T) {
	c := newTestLinkedCells()
	if err := c.AddParticle(NewParticle(1, [3]float64{0.5, 0.5, 0.5})); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}
	oldCell := c.cellAt([3]float64{0.5, 0.5, 0.5})

	proxy := oldCell.At(0)
	p := proxy.Get()
	p.Position = [3]float64{9.5, 9.5, 9.5}
	proxy.Set(p)
	proxy.Close()

	leaving := c.UpdateContainer()
	if len(leaving) != 0 {
		t.Fatalf("UpdateContainer leaving = %v, want none (still in box)", leaving)
	}

	newCell := c.cellAt([3]float64{9.5, 9.5, 9.5})
	if newCell.Size() != 1 {
		t.Errorf("new cell size = %d, want 1", newCell.Size())
	}
	if oldCell.Size() != 0 {
		t.Errorf("old cell size = %d, want 0", oldCell.Size())
	}
}

func TestLinkedCellsUpdateContainerReportsLeavingParticles(t *testing.T) {
	c := newTestLinkedCells()
	c.AddParticle(NewParticle(1, [3]float64{9.9, 5, 5}))

	cell := c.cellAt([3]float64{9.9, 5, 5})
	proxy := cell.At(0)
	p := proxy.Get()
	p.Position = [3]float64{20, 5, 5}
	proxy.Set(p)
	proxy.Close()

	leaving := c.UpdateContainer()
	if len(leaving) != 1 || leaving[0].ID != 1 {
		t.Fatalf("leaving = %v, want [{ID:1}]", leaving)
	}
}

func TestLinkedCellsUpdateHaloParticleNotFoundReturnsHaloNotFound(t *testing.T) {
	c := newTestLinkedCells()
	err := c.UpdateHaloParticle(Particle{ID: 42, Position: [3]float64{-0.1, 5, 5}})
	var coreErr *CoreError
	if !errors.As(err, &coreErr) || coreErr.Reason != HaloNotFound {
		t.Errorf("UpdateHaloParticle on missing id = %v, want HaloNotFound", err)
	}
}

func TestLinkedCellsDeleteHaloAndAllParticles(t *testing.T) {
	c := newTestLinkedCells()
	c.AddParticle(NewParticle(1, [3]float64{5, 5, 5}))
	c.AddHaloParticle(NewHaloParticle(2, [3]float64{-0.1, 5, 5}))

	c.DeleteHaloParticles()
	if c.NumParticles() != 1 {
		t.Fatalf("NumParticles() after DeleteHaloParticles = %d, want 1", c.NumParticles())
	}

	c.DeleteAllParticles()
	if c.NumParticles() != 0 {
		t.Fatalf("NumParticles() after DeleteAllParticles = %d, want 0", c.NumParticles())
	}
}

func TestLinkedCellsRegionIteratorCoversRequestedRange(t *testing.T) {
	c := newTestLinkedCells()
	c.AddParticle(NewParticle(1, [3]float64{1, 1, 1}))
	c.AddParticle(NewParticle(2, [3]float64{5, 5, 5}))
	c.AddParticle(NewParticle(3, [3]float64{9, 9, 9}))

	it := c.RegionIterator([3]float64{4, 4, 4}, [3]float64{6, 6, 6}, IterateOwnedAndHalo)
	found := map[uint64]bool{}
	for !it.Done() {
		found[it.Get().ID] = true
		it.Next()
	}
	if !found[2] {
		t.Errorf("region iterator missed particle 2 inside the requested region")
	}
	if found[1] || found[3] {
		t.Errorf("region iterator returned particles outside the requested region: %v", found)
	}
}

func TestLinkedCellsColorBaseCellsPartitionsEveryInteriorCellOnce(t *testing.T) {
	c := newTestLinkedCells()
	colors := c.colorBaseCells()

	seen := map[[3]int]int{}
	for _, class := range colors {
		for _, idx := range class {
			seen[idx]++
		}
	}
	interior := c.interiorCells()
	if len(seen) != len(interior) {
		t.Fatalf("colorBaseCells covered %d distinct cells, want %d", len(seen), len(interior))
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("cell %v appears in %d color classes, want exactly 1", idx, count)
		}
	}
}

func TestLinkedCellsNeedsRebuildAlwaysFalse(t *testing.T) {
	c := newTestLinkedCells()
	if c.NeedsRebuild() {
		t.Errorf("LinkedCellsContainer.NeedsRebuild() = true, want false (cell grid never staled by drift alone)")
	}
}
