package autopas

// Container is the common capability set every spatial container
// implements (§9): load/store the data layout is delegated to
// DataLayoutConverter, but every container must expose its cells, support
// particle insertion/removal, and report whether it needs rebuilding.
//
// Containers are modeled as tagged variants dispatched through the
// ContainerOption enum (see Kind) rather than an inheritance hierarchy.
type Container interface {
	// Kind identifies which ContainerOption this value implements.
	Kind() ContainerOption

	// AddParticle inserts an owned particle. Returns an OutOfBoundsInsert
	// CoreError if pos is outside [boxMin, boxMax).
	AddParticle(p Particle) error
	// AddHaloParticle inserts a halo particle. Returns an
	// OutOfBoundsInsert CoreError if pos is inside [boxMin, boxMax).
	AddHaloParticle(p Particle) error
	// UpdateHaloParticle updates an existing halo particle's position in
	// place by id, or returns a HaloUpdateFailed CoreError (§4.4).
	UpdateHaloParticle(p Particle) error

	// Cells returns every cell the container currently holds, in
	// traversal order. Callers must not retain the slice past the next
	// mutation.
	Cells() []Cell

	// UpdateContainer re-bins particles that have crossed cell
	// boundaries and returns those that now lie outside the box.
	UpdateContainer() []Particle

	// DeleteHaloParticles removes every halo particle.
	DeleteHaloParticles()
	// DeleteAllParticles empties the container.
	DeleteAllParticles()

	// NumParticles returns the total particle count, owned and halo,
	// dummies excluded.
	NumParticles() int

	// Iterator returns a particle iterator over every cell.
	Iterator(behavior IteratorBehavior) *ParticleIterator
	// RegionIterator returns a particle iterator restricted to a
	// (possibly superset) region, per §4.10.
	RegionIterator(lo, hi [3]float64, behavior IteratorBehavior) *ParticleIterator

	// NeedsRebuild reports whether internal bookkeeping (e.g. a
	// neighbor list) has gone stale and the container should be handed
	// back through the AutoTuner's rebuild path before the next
	// traversal (§3.4, §4.4, §4.5).
	NeedsRebuild() bool

	// CutoffAndSkin returns the cutoff radius and verlet skin this
	// container instance was built with.
	CutoffAndSkin() (cutoff, skin float64)
	// Box returns boxMin, boxMax.
	Box() ([3]float64, [3]float64)
}

// newContainer builds a fresh Container of the given kind. It is the one
// place containers are constructed. Callers do still reach concrete types
// where they need them: the AutoTuner type-asserts the two Verlet
// containers for their rebuild and step bookkeeping, and newTraversal
// asserts the container type each traversal runs on.
func newContainer(kind ContainerOption, boxMin, boxMax [3]float64, cutoff, skin float64, cellSizeFactor float64, rebuildFrequency int) (Container, error) {
	if err := validateBox(boxMin, boxMax, cutoff, skin); err != nil {
		return nil, err
	}
	switch kind {
	case ContainerDirectSum:
		return newDirectSumContainer(boxMin, boxMax, cutoff, skin), nil
	case ContainerLinkedCells:
		return newLinkedCellsContainer(boxMin, boxMax, cutoff, skin, cellSizeFactor), nil
	case ContainerVerletLists:
		return newVerletListsContainer(boxMin, boxMax, cutoff, skin, cellSizeFactor, rebuildFrequency), nil
	case ContainerVerletClusterLists:
		return newVerletClusterListsContainer(boxMin, boxMax, cutoff, skin, rebuildFrequency), nil
	default:
		return nil, newError(InvalidConfiguration, "unknown container kind %v", kind)
	}
}

func validateBox(boxMin, boxMax [3]float64, cutoff, skin float64) error {
	minSide := boxMax[0] - boxMin[0]
	for d := 1; d < 3; d++ {
		if side := boxMax[d] - boxMin[d]; side < minSide {
			minSide = side
		}
	}
	if minSide < cutoff+skin {
		return newError(BoxTooSmall, "box side %.6g is smaller than cutoff+skin %.6g", minSide, cutoff+skin)
	}
	return nil
}

// drainAllParticles pulls every owned and halo particle out of a
// container via its iterator, used by the AutoTuner's rebuild path
// (§4.8.2) to move particles from an old container into a fresh one.
func drainAllParticles(c Container) []Particle {
	var out []Particle
	it := c.Iterator(IterateOwnedAndHalo)
	for !it.Done() {
		out = append(out, it.Get())
		it.Next()
	}
	return out
}
