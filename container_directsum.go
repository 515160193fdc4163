package autopas

import "math"

// DirectSumContainer is the degenerate two-cell container (§4.2): all
// owned particles live in cell 0, all halo particles in cell 1. Its
// traversal is O(N^2) and needs no spatial bookkeeping at all, which
// makes it the reference container every other container's forces are
// checked against (§8.1 "single-traversal parity").
type DirectSumContainer struct {
	boxMin, boxMax [3]float64
	cutoff, skin   float64
	owned          *FullCell
	halo           *FullCell
}

func newDirectSumContainer(boxMin, boxMax [3]float64, cutoff, skin float64) *DirectSumContainer {
	return &DirectSumContainer{
		boxMin: boxMin, boxMax: boxMax, cutoff: cutoff, skin: skin,
		owned: NewFullCell(), halo: NewFullCell(),
	}
}

func (c *DirectSumContainer) Kind() ContainerOption { return ContainerDirectSum }

func (c *DirectSumContainer) AddParticle(p Particle) error {
	if !inBox(p.Position, c.boxMin, c.boxMax) {
		return newError(OutOfBoundsInsert, "addParticle: position %v outside box [%v,%v)", p.Position, c.boxMin, c.boxMax)
	}
	p.Owned = true
	c.owned.Add(p)
	return nil
}

func (c *DirectSumContainer) AddHaloParticle(p Particle) error {
	if inBox(p.Position, c.boxMin, c.boxMax) {
		return newError(OutOfBoundsInsert, "addHaloParticle: position %v is inside the box", p.Position)
	}
	p.Owned = false
	c.halo.Add(p)
	return nil
}

func (c *DirectSumContainer) UpdateHaloParticle(p Particle) error {
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
			return nil
		}
		return haloUpdateDistanceError(cur.Position, p.Position, c.boxMin, c.boxMax, c.cutoff, c.skin)
	}
	return newHaloError(HaloNotFound, "no halo particle with id %d found near %v", p.ID, p.Position)
}

func (c *DirectSumContainer) Cells() []Cell { return []Cell{c.owned, c.halo} }

func (c *DirectSumContainer) UpdateContainer() []Particle {
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

func (c *DirectSumContainer) DeleteHaloParticles() { c.halo.Clear() }
func (c *DirectSumContainer) DeleteAllParticles()  { c.owned.Clear(); c.halo.Clear() }

func (c *DirectSumContainer) NumParticles() int { return c.owned.Size() + c.halo.Size() }

func (c *DirectSumContainer) Iterator(behavior IteratorBehavior) *ParticleIterator {
	return newParticleIterator(c.Cells(), behavior)
}

func (c *DirectSumContainer) RegionIterator(lo, hi [3]float64, behavior IteratorBehavior) *ParticleIterator {
	return newRegionIterator(c.Cells(), lo, hi, behavior)
}

func (c *DirectSumContainer) NeedsRebuild() bool { return false }

func (c *DirectSumContainer) CutoffAndSkin() (float64, float64) { return c.cutoff, c.skin }
func (c *DirectSumContainer) Box() ([3]float64, [3]float64)     { return c.boxMin, c.boxMax }

// haloUpdateDistanceError classifies a failed halo update per §4.4: if
// the new position lies within cutoff+skin/2 of the box it's "too far
// inside" (should have become owned instead), otherwise the id simply
// wasn't found nearby and the skin is too small to track it.
func haloUpdateDistanceError(oldPos, newPos, boxMin, boxMax [3]float64, cutoff, skin float64) error {
	if distanceToBox(newPos, boxMin, boxMax) <= cutoff+skin/2 {
		return newHaloError(HaloTooFarInside, "halo particle moved too far toward the box interior: %v -> %v", oldPos, newPos)
	}
	return newHaloError(HaloTooFarOutside, "halo particle moved too far from its last known position: %v -> %v (skin too small)", oldPos, newPos)
}

// distanceToBox returns the Euclidean distance from pos to the nearest
// point of the axis-aligned box [boxMin,boxMax], 0 if pos is inside.
func distanceToBox(pos, boxMin, boxMax [3]float64) float64 {
	var sumSq float64
	for d := 0; d < 3; d++ {
		if pos[d] < boxMin[d] {
			diff := boxMin[d] - pos[d]
			sumSq += diff * diff
		} else if pos[d] > boxMax[d] {
			diff := pos[d] - boxMax[d]
			sumSq += diff * diff
		}
	}
	if sumSq == 0 {
		return 0
	}
	return math.Sqrt(sumSq)
}
