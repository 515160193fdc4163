package autopas

// ParticleIterator is a lazy, single-threaded, polymorphic particle
// iterator (§4.10). It walks a container's cells in order, filters by
// IteratorBehavior, and skips dummy particles unconditionally.
//
// It is grounded on the teacher's PointIndexIterator/ShapeIndexIterator
// pair: a plain cursor over an ordered backing store, advanced by Next,
// tested by Done.
type ParticleIterator struct {
	cells      []Cell
	behavior   IteratorBehavior
	cellIdx    int
	particleIdx int
	region     *regionFilter
}

type regionFilter struct {
	lo, hi [3]float64
}

func (r *regionFilter) contains(pos [3]float64) bool {
	for d := 0; d < 3; d++ {
		if pos[d] < r.lo[d] || pos[d] > r.hi[d] {
			return false
		}
	}
	return true
}

// newParticleIterator returns an iterator positioned at the first visible
// particle in cells.
func newParticleIterator(cells []Cell, behavior IteratorBehavior) *ParticleIterator {
	it := &ParticleIterator{cells: cells, behavior: behavior}
	it.advanceToValid()
	return it
}

// newRegionIterator returns an iterator over cells restricted to a region.
// Per §4.10 the region test is a superset filter applied at the cell
// level by the caller (LinkedCells/VerletClusterLists select candidate
// cells); the iterator itself additionally filters by exact position so
// the exposed stream never contains a particle outside [lo,hi] once the
// caller has pre-selected candidate cells. Region iterators may still
// return a superset relative to the *cells* they were given, by design.
func newRegionIterator(cells []Cell, lo, hi [3]float64, behavior IteratorBehavior) *ParticleIterator {
	it := &ParticleIterator{cells: cells, behavior: behavior, region: &regionFilter{lo: lo, hi: hi}}
	it.advanceToValid()
	return it
}

// Done reports whether the iterator has been exhausted.
func (it *ParticleIterator) Done() bool {
	return it.cellIdx >= len(it.cells)
}

// Get returns the particle currently under the cursor.
func (it *ParticleIterator) Get() Particle {
	return it.cells[it.cellIdx].At(it.particleIdx).Get()
}

// Next advances the cursor to the next visible particle.
func (it *ParticleIterator) Next() {
	it.particleIdx++
	it.advanceToValid()
}

// DeleteCurrent removes the particle under the cursor via a
// swap-with-last-and-pop on the containing cell (§4.10), then leaves the
// cursor positioned so a following Next() does not skip the particle that
// was swapped into this slot.
func (it *ParticleIterator) DeleteCurrent() {
	it.cells[it.cellIdx].RemoveSwapBack(it.particleIdx)
	// The slot at particleIdx now holds whatever was swapped in from the
	// back (or the cell shrank past it); advanceToValid re-checks this
	// same index before moving on, so no particle is skipped.
	it.advanceToValid()
}

func (it *ParticleIterator) advanceToValid() {
	for it.cellIdx < len(it.cells) {
		cell := it.cells[it.cellIdx]
		for it.particleIdx < cell.Size() {
			p := cell.At(it.particleIdx).Get()
			if !p.IsDummy() && it.behavior.matches(p.Owned) && it.regionOK(p.Position) {
				return
			}
			it.particleIdx++
		}
		it.cellIdx++
		it.particleIdx = 0
	}
}

func (it *ParticleIterator) regionOK(pos [3]float64) bool {
	if it.region == nil {
		return true
	}
	return it.region.contains(pos)
}
