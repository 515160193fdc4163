package autopas

import (
	"math"
	"sort"
)

const defaultClusterSize = 32

// cluster is a fixed-size group of spatially nearby particles (§3.3,
// §4.5), padded to ClusterSize with dummy particles.
type cluster struct {
	particles []Particle
	boxMin    [3]float64
	boxMax    [3]float64

	soa      *SoA
	soaValid bool
}

// VerletClusterListsContainer groups particles into fixed-size clusters
// projected onto a 2D xy-grid (z collapsed to one layer per grid cell's
// column), with cluster-to-cluster neighbor edges recorded whenever two
// clusters' bounding boxes are within interactionLength in the L-infinity
// sense (§4.5).
type VerletClusterListsContainer struct {
	boxMin, boxMax   [3]float64
	cutoff, skin     float64
	clusterSize      int
	rebuildFrequency int
	stepsSinceRebuild int

	clusters     []*cluster
	neighborEdges map[int][]int // cluster index -> neighbor cluster indices
	gridSide     float64
	valid        bool

	owned, halo *FullCell // scratch cells used only by the plain Container surface
}

func newVerletClusterListsContainer(boxMin, boxMax [3]float64, cutoff, skin float64, rebuildFrequency int) *VerletClusterListsContainer {
	if rebuildFrequency < 1 {
		rebuildFrequency = 1
	}
	return &VerletClusterListsContainer{
		boxMin: boxMin, boxMax: boxMax, cutoff: cutoff, skin: skin,
		clusterSize: defaultClusterSize, rebuildFrequency: rebuildFrequency,
		owned: NewFullCell(), halo: NewFullCell(),
	}
}

func (c *VerletClusterListsContainer) Kind() ContainerOption { return ContainerVerletClusterLists }

func (c *VerletClusterListsContainer) AddParticle(p Particle) error {
	if !inBox(p.Position, c.boxMin, c.boxMax) {
		return newError(OutOfBoundsInsert, "addParticle: position %v outside box [%v,%v)", p.Position, c.boxMin, c.boxMax)
	}
	p.Owned = true
	c.owned.Add(p)
	c.valid = false
	return nil
}

func (c *VerletClusterListsContainer) AddHaloParticle(p Particle) error {
	if inBox(p.Position, c.boxMin, c.boxMax) {
		return newError(OutOfBoundsInsert, "addHaloParticle: position %v is inside the box", p.Position)
	}
	p.Owned = false
	c.halo.Add(p)
	c.valid = false
	return nil
}

func (c *VerletClusterListsContainer) UpdateHaloParticle(p Particle) error {
	for i := 0; i < c.halo.Size(); i++ {
		cur := c.halo.At(i).Get()
		if cur.ID != p.ID {
			continue
		}
		if distance(cur.Position, p.Position) <= c.skin/2 {
			proxy := c.halo.At(i)
			np := cur
			np.Position = p.Position
			proxy.Set(np)
			proxy.Close()
			c.valid = false
			return nil
		}
		return haloUpdateDistanceError(cur.Position, p.Position, c.boxMin, c.boxMax, c.cutoff, c.skin)
	}
	return newHaloError(HaloNotFound, "no halo particle with id %d found near %v", p.ID, p.Position)
}

// Cells exposes the pre-clustering owned/halo cells for the plain
// Container surface (iteration, counting). The cluster structure itself
// is consulted directly by the verlet-cluster-cells traversal via
// Clusters()/NeighborEdges().
func (c *VerletClusterListsContainer) Cells() []Cell { return []Cell{c.owned, c.halo} }

func (c *VerletClusterListsContainer) UpdateContainer() []Particle {
	c.valid = false
	var leaving []Particle
	for i := 0; i < c.owned.Size(); {
		p := c.owned.At(i).Get()
		if inBox(p.Position, c.boxMin, c.boxMax) {
			i++
			continue
		}
		leaving = append(leaving, p)
		c.owned.RemoveSwapBack(i)
	}
	return leaving
}

func (c *VerletClusterListsContainer) DeleteHaloParticles() { c.halo.Clear(); c.valid = false }
func (c *VerletClusterListsContainer) DeleteAllParticles() {
	c.owned.Clear()
	c.halo.Clear()
	c.clusters = nil
	c.valid = false
}

func (c *VerletClusterListsContainer) NumParticles() int { return c.owned.Size() + c.halo.Size() }

func (c *VerletClusterListsContainer) Iterator(behavior IteratorBehavior) *ParticleIterator {
	if !c.valid {
		return newParticleIterator(c.Cells(), behavior)
	}
	return newParticleIterator(c.clusterCells(), behavior)
}

// RegionIterator intersects the query region with the xy-grid to find
// candidate columns, then filters by z (§4.5). When the container is not
// in the valid clustered state it falls back to scanning every cell.
func (c *VerletClusterListsContainer) RegionIterator(lo, hi [3]float64, behavior IteratorBehavior) *ParticleIterator {
	if !c.valid || c.gridSide == 0 {
		return newRegionIterator(c.Cells(), lo, hi, behavior)
	}
	var candidates []Cell
	for _, cl := range c.clusters {
		if cl.boxMax[0] < lo[0] || cl.boxMin[0] > hi[0] {
			continue
		}
		if cl.boxMax[1] < lo[1] || cl.boxMin[1] > hi[1] {
			continue
		}
		candidates = append(candidates, clusterCell{cl})
	}
	return newRegionIterator(candidates, lo, hi, behavior)
}

func (c *VerletClusterListsContainer) NeedsRebuild() bool {
	return !c.valid || c.stepsSinceRebuild >= c.rebuildFrequency
}

// AdvanceStep counts one traversal against the current cluster structure,
// mirroring VerletListsContainer.AdvanceStep so rebuildFrequency also
// forces a periodic rebuild here even when IsUpdateNeeded sees no drift.
func (c *VerletClusterListsContainer) AdvanceStep() { c.stepsSinceRebuild++ }

func (c *VerletClusterListsContainer) CutoffAndSkin() (float64, float64) { return c.cutoff, c.skin }
func (c *VerletClusterListsContainer) Box() ([3]float64, [3]float64)     { return c.boxMin, c.boxMax }

// clusterCells adapts each cluster to the Cell interface read-only, for
// iteration once the container is in its valid clustered state.
func (c *VerletClusterListsContainer) clusterCells() []Cell {
	out := make([]Cell, len(c.clusters))
	for i, cl := range c.clusters {
		out[i] = clusterCell{cl}
	}
	return out
}

// clusterCell adapts *cluster to Cell so cluster members can be iterated
// the same way as any other cell's particles. Add, RemoveSwapBack and
// Clear edit the cluster's particle slice directly. At returns a proxy
// with no backing cell, so a Set through it is not written back. Rebuild
// replaces every cluster wholesale.
type clusterCell struct{ c *cluster }

func (cc clusterCell) Add(p Particle)                   { cc.c.particles = append(cc.c.particles, p) }
func (cc clusterCell) Size() int                         { return len(cc.c.particles) }
func (cc clusterCell) At(i int) *ParticleProxy           { return &ParticleProxy{cell: nil, index: i, value: cc.c.particles[i]} }
func (cc clusterCell) RemoveSwapBack(i int) {
	last := len(cc.c.particles) - 1
	cc.c.particles[i] = cc.c.particles[last]
	cc.c.particles = cc.c.particles[:last]
}
func (cc clusterCell) Clear()                { cc.c.particles = cc.c.particles[:0] }
func (cc clusterCell) Particles() []Particle { return cc.c.particles }

// SoA returns the cluster's persistent SoA buffer, rebuilding it from the
// AoS side first if it isn't already current. Mirrors FullCell.SoA so a
// functor's SoA-side force writes survive past the call that produced
// them instead of landing in a throwaway buffer.
func (cc clusterCell) SoA() *SoA {
	if !cc.c.soaValid {
		cc.LoadSoA()
	}
	return cc.c.soa
}

func (cc clusterCell) LoadSoA() {
	if cc.c.soa == nil {
		cc.c.soa = NewSoA()
	}
	cc.c.soa.FromAoS(cc.c.particles)
	cc.c.soaValid = true
}

func (cc clusterCell) StoreSoA() {
	if cc.c.soa != nil {
		cc.c.particles = cc.c.soa.ToAoS()
	}
	cc.c.soaValid = true
}

// Clusters returns every cluster built by the last Rebuild call.
func (c *VerletClusterListsContainer) Clusters() []*cluster { return c.clusters }

// NeighborEdges returns, for cluster index i, the indices of every
// cluster whose bounding box is within interactionLength (L-infinity) of
// cluster i's bounding box.
func (c *VerletClusterListsContainer) NeighborEdges(i int) []int { return c.neighborEdges[i] }

// Rebuild implements the §4.5 algorithm: collect non-dummy particles,
// estimate density, choose an xy-grid side length, bin by column, sort
// each column by z, pad to a multiple of ClusterSize with dummies, compute
// per-cluster bounding boxes, and record cluster-pair neighbor edges.
func (c *VerletClusterListsContainer) Rebuild() {
	var all []Particle
	it := newParticleIterator(c.Cells(), IterateOwnedAndHalo)
	for !it.Done() {
		all = append(all, it.Get())
		it.Next()
	}

	n := len(all)
	volume := 1.0
	for d := 0; d < 3; d++ {
		volume *= c.boxMax[d] - c.boxMin[d]
	}
	density := float64(n) / math.Max(volume, 1e-12)
	gridSide := math.Cbrt(float64(c.clusterSize) / math.Max(density, 1e-12))
	if gridSide <= 0 || math.IsNaN(gridSide) || math.IsInf(gridSide, 0) {
		gridSide = c.cutoff + c.skin
	}
	c.gridSide = gridSide

	columns := map[[2]int][]Particle{}
	for _, p := range all {
		col := [2]int{
			int(math.Floor((p.Position[0] - c.boxMin[0]) / gridSide)),
			int(math.Floor((p.Position[1] - c.boxMin[1]) / gridSide)),
		}
		columns[col] = append(columns[col], p)
	}

	var keys [][2]int
	for k := range columns {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	var clusters []*cluster
	interactionLength := c.cutoff + c.skin
	for _, k := range keys {
		members := columns[k]
		sort.Slice(members, func(i, j int) bool { return members[i].Position[2] < members[j].Position[2] })

		pad := (c.clusterSize - len(members)%c.clusterSize) % c.clusterSize
		for i := 0; i < pad; i++ {
			members = append(members, newDummyParticle(c.boxMin, c.boxMax, interactionLength))
		}

		for off := 0; off < len(members); off += c.clusterSize {
			group := members[off : off+c.clusterSize]
			cl := &cluster{particles: append([]Particle(nil), group...)}
			cl.boxMin, cl.boxMax = clusterBounds(cl.particles)
			clusters = append(clusters, cl)
		}
	}

	edges := make(map[int][]int, len(clusters))
	for i := range clusters {
		for j := i + 1; j < len(clusters); j++ {
			if boundsWithinLInf(clusters[i].boxMin, clusters[i].boxMax, clusters[j].boxMin, clusters[j].boxMax, interactionLength) {
				edges[i] = append(edges[i], j)
				edges[j] = append(edges[j], i)
			}
		}
	}

	c.clusters = clusters
	c.neighborEdges = edges
	c.valid = true
	c.stepsSinceRebuild = 0
}

// IsUpdateNeeded returns true if any non-dummy particle has drifted
// outside the union of its cluster's bounding box and skin (§4.5).
func (c *VerletClusterListsContainer) IsUpdateNeeded() bool {
	if !c.valid {
		return true
	}
	for _, cl := range c.clusters {
		for _, p := range cl.particles {
			if p.IsDummy() {
				continue
			}
			if !withinExpandedBounds(p.Position, cl.boxMin, cl.boxMax, c.skin) {
				return true
			}
		}
	}
	return false
}

func clusterBounds(particles []Particle) (min, max [3]float64) {
	if len(particles) == 0 {
		return
	}
	min, max = particles[0].Position, particles[0].Position
	for _, p := range particles[1:] {
		if p.IsDummy() {
			continue
		}
		for d := 0; d < 3; d++ {
			if p.Position[d] < min[d] {
				min[d] = p.Position[d]
			}
			if p.Position[d] > max[d] {
				max[d] = p.Position[d]
			}
		}
	}
	return
}

func boundsWithinLInf(aMin, aMax, bMin, bMax [3]float64, dist float64) bool {
	for d := 0; d < 3; d++ {
		if aMin[d]-dist > bMax[d] || bMin[d]-dist > aMax[d] {
			return false
		}
	}
	return true
}

func withinExpandedBounds(pos, boxMin, boxMax [3]float64, skin float64) bool {
	for d := 0; d < 3; d++ {
		if pos[d] < boxMin[d]-skin || pos[d] > boxMax[d]+skin {
			return false
		}
	}
	return true
}
