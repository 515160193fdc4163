package autopas

import "testing"

func cellsOf(particleSets ...[]Particle) []Cell {
	cells := make([]Cell, len(particleSets))
	for i, ps := range particleSets {
		c := NewFullCell()
		for _, p := range ps {
			c.Add(p)
		}
		cells[i] = c
	}
	return cells
}

func TestParticleIteratorVisitsEveryOwnedAndHaloParticle(t *testing.T) {
	cells := cellsOf(
		[]Particle{NewParticle(1, [3]float64{0, 0, 0}), NewHaloParticle(2, [3]float64{1, 1, 1})},
		[]Particle{NewParticle(3, [3]float64{2, 2, 2})},
	)

	it := newParticleIterator(cells, IterateOwnedAndHalo)
	var ids []uint64
	for !it.Done() {
		ids = append(ids, it.Get().ID)
		it.Next()
	}
	if len(ids) != 3 {
		t.Fatalf("visited %d particles, want 3 (got ids %v)", len(ids), ids)
	}
}

func TestParticleIteratorSkipsDummies(t *testing.T) {
	dummy := newDummyParticle([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 1.0)
	cells := cellsOf([]Particle{NewParticle(1, [3]float64{0, 0, 0}), dummy})

	it := newParticleIterator(cells, IterateOwnedAndHalo)
	count := 0
	for !it.Done() {
		if it.Get().IsDummy() {
			t.Errorf("iterator visited a dummy particle")
		}
		count++
		it.Next()
	}
	if count != 1 {
		t.Errorf("visited %d particles, want 1 (dummy filtered out)", count)
	}
}

func TestParticleIteratorEmptyIsImmediatelyDone(t *testing.T) {
	it := newParticleIterator(nil, IterateOwnedAndHalo)
	if !it.Done() {
		t.Errorf("Done() on empty iterator = false, want true")
	}
}

func TestParticleIteratorDeleteCurrentDoesNotSkipSwappedParticle(t *testing.T) {
	cells := cellsOf([]Particle{
		NewParticle(1, [3]float64{0, 0, 0}),
		NewParticle(2, [3]float64{1, 1, 1}),
		NewParticle(3, [3]float64{2, 2, 2}),
	})

	it := newParticleIterator(cells, IterateOwnedAndHalo)
	var visited []uint64
	for !it.Done() {
		p := it.Get()
		if p.ID == 1 {
			it.DeleteCurrent()
			continue
		}
		visited = append(visited, p.ID)
		it.Next()
	}
	if len(visited) != 2 {
		t.Fatalf("visited %v after deleting id 1, want 2 remaining particles", visited)
	}
	seen := map[uint64]bool{}
	for _, id := range visited {
		seen[id] = true
	}
	if !seen[2] || !seen[3] {
		t.Errorf("DeleteCurrent skipped a surviving particle: visited %v", visited)
	}
}

func TestRegionIteratorFiltersByPosition(t *testing.T) {
	cells := cellsOf([]Particle{
		NewParticle(1, [3]float64{0, 0, 0}),
		NewParticle(2, [3]float64{5, 5, 5}),
		NewParticle(3, [3]float64{9, 9, 9}),
	})

	it := newRegionIterator(cells, [3]float64{4, 4, 4}, [3]float64{6, 6, 6}, IterateOwnedAndHalo)
	var ids []uint64
	for !it.Done() {
		ids = append(ids, it.Get().ID)
		it.Next()
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("region iterator visited %v, want [2]", ids)
	}
}

func TestIteratorBehaviorHaloOnly(t *testing.T) {
	cells := cellsOf([]Particle{
		NewParticle(1, [3]float64{0, 0, 0}),
		NewHaloParticle(2, [3]float64{1, 1, 1}),
	})

	it := newParticleIterator(cells, IterateHaloOnly)
	count := 0
	for !it.Done() {
		if it.Get().Owned {
			t.Errorf("IterateHaloOnly visited an owned particle")
		}
		count++
		it.Next()
	}
	if count != 1 {
		t.Errorf("IterateHaloOnly visited %d particles, want 1", count)
	}
}
