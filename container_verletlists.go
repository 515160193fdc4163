package autopas

// particleRef locates a single particle's storage slot so the Verlet
// traversal can mutate the force actually stored in a cell, rather than a
// disconnected copy taken at neighbor-list build time.
type particleRef struct {
	cell  *FullCell
	index int
}

// VerletListsContainer builds a LinkedCells substrate plus a per-owned-
// particle neighbor list of every particle within cutoff+skin (§4.4).
// Neighbor lists and the owned snapshot are stored by id; resolving an id
// back to its live storage slot goes through locator, which is rebuilt
// alongside the lists so the traversal mutates the real particle, not a
// copy.
type VerletListsContainer struct {
	linked            *LinkedCellsContainer
	rebuildFrequency  int
	stepsSinceRebuild int
	neighborLists     [][]uint64 // parallel to ownedIDs: neighbor ids per owned particle
	ownedIDs          []uint64
	locator           map[uint64]particleRef
	listsValid        bool
}

func newVerletListsContainer(boxMin, boxMax [3]float64, cutoff, skin, cellSizeFactor float64, rebuildFrequency int) *VerletListsContainer {
	if rebuildFrequency < 1 {
		rebuildFrequency = 1
	}
	return &VerletListsContainer{
		linked:           newLinkedCellsContainer(boxMin, boxMax, cutoff, skin, cellSizeFactor),
		rebuildFrequency: rebuildFrequency,
	}
}

func (c *VerletListsContainer) Kind() ContainerOption { return ContainerVerletLists }

func (c *VerletListsContainer) AddParticle(p Particle) error {
	c.listsValid = false
	return c.linked.AddParticle(p)
}

func (c *VerletListsContainer) AddHaloParticle(p Particle) error {
	c.listsValid = false
	return c.linked.AddHaloParticle(p)
}

// UpdateHaloParticle moves the halo particle with p's id to p's position
// when the move is at most skin/2. A larger move fails with
// HaloTooFarInside if the new position lies within cutoff+skin/2 of the
// box, and with HaloTooFarOutside otherwise; an id with no halo particle
// fails with HaloNotFound. A successful update marks the neighbor lists
// invalid.
func (c *VerletListsContainer) UpdateHaloParticle(p Particle) error {
	err := c.linked.UpdateHaloParticle(p)
	if err == nil {
		c.listsValid = false
	}
	return err
}

func (c *VerletListsContainer) Cells() []Cell { return c.linked.Cells() }

func (c *VerletListsContainer) UpdateContainer() []Particle {
	c.listsValid = false
	return c.linked.UpdateContainer()
}

func (c *VerletListsContainer) DeleteHaloParticles() {
	c.listsValid = false
	c.linked.DeleteHaloParticles()
}

func (c *VerletListsContainer) DeleteAllParticles() {
	c.listsValid = false
	c.linked.DeleteAllParticles()
}

func (c *VerletListsContainer) NumParticles() int { return c.linked.NumParticles() }

func (c *VerletListsContainer) Iterator(behavior IteratorBehavior) *ParticleIterator {
	return c.linked.Iterator(behavior)
}

func (c *VerletListsContainer) RegionIterator(lo, hi [3]float64, behavior IteratorBehavior) *ParticleIterator {
	return c.linked.RegionIterator(lo, hi, behavior)
}

// NeedsRebuild implements the validity predicate of §4.4: the container
// (and therefore its neighbor lists) needs a rebuild unless the lists are
// marked valid and we're still within the rebuild-frequency window. The
// AutoTuner's willRebuild() reads this, and LogicHandler combines the
// tuner's answer with its own valid flag and step counter. A
// configuration switch builds a new container, whose lists start invalid.
func (c *VerletListsContainer) NeedsRebuild() bool {
	return !c.listsValid || c.stepsSinceRebuild >= c.rebuildFrequency
}

func (c *VerletListsContainer) CutoffAndSkin() (float64, float64) { return c.linked.CutoffAndSkin() }
func (c *VerletListsContainer) Box() ([3]float64, [3]float64)     { return c.linked.Box() }

// RebuildNeighborLists lists, for every owned particle, every particle
// (owned or halo) within cutoff+skin. It compares each owned particle
// with every stored particle; the LinkedCells grid does not narrow the
// search to adjacent cells. It also rebuilds the id->storage
// locator so the traversal can mutate the particle actually stored in its
// cell.
func (c *VerletListsContainer) RebuildNeighborLists() {
	interactionSq := (c.linked.cutoff + c.linked.skin)
	interactionSq *= interactionSq

	locator := make(map[uint64]particleRef)
	var all []Particle
	for _, cell := range c.linked.cells {
		for i, p := range cell.Particles() {
			if p.IsDummy() {
				continue
			}
			locator[p.ID] = particleRef{cell: cell, index: i}
			all = append(all, p)
		}
	}

	var ownedIDs []uint64
	lists := make([][]uint64, 0, len(all))
	for _, p := range all {
		if !p.Owned {
			continue
		}
		var neighbors []uint64
		for _, q := range all {
			if q.ID != p.ID && distanceSquared(p.Position, q.Position) <= interactionSq {
				neighbors = append(neighbors, q.ID)
			}
		}
		ownedIDs = append(ownedIDs, p.ID)
		lists = append(lists, neighbors)
	}

	c.ownedIDs = ownedIDs
	c.neighborLists = lists
	c.locator = locator
	c.listsValid = true
	c.stepsSinceRebuild = 0
}

// NeighborLists returns the neighbor id list built at the last rebuild,
// parallel to OwnedIDs().
func (c *VerletListsContainer) NeighborLists() [][]uint64 { return c.neighborLists }

// OwnedIDs returns the owned-particle ids the neighbor lists are indexed
// against.
func (c *VerletListsContainer) OwnedIDs() []uint64 { return c.ownedIDs }

// Resolve returns a pointer to the live particle with the given id, as
// stored in its owning cell, or nil if the id is unknown (e.g. the
// particle left the container since the last rebuild).
func (c *VerletListsContainer) Resolve(id uint64) *Particle {
	ref, ok := c.locator[id]
	if !ok {
		return nil
	}
	ps := ref.cell.particles
	if ref.index >= len(ps) || ps[ref.index].ID != id {
		return nil
	}
	return &ps[ref.index]
}

// AdvanceStep increments the rebuild countdown; called once per
// iteratePairwise when the lists were not rebuilt this step.
func (c *VerletListsContainer) AdvanceStep() { c.stepsSinceRebuild++ }
