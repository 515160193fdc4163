package autopas

// Functor is the pairwise-interaction kernel contract (§6.1). A concrete
// functor implements whichever subset of these methods its physics needs;
// the core queries AllowsNewton3/AllowsNonNewton3 to filter the
// configuration space and GetNeededAttr/GetComputedAttr to drive the
// DataLayoutConverter.
//
// Cutoff radius is owned by the functor, not the core.
type Functor interface {
	// AoSFunctor adds a pairwise force contribution to pi; if newton3 is
	// set it also subtracts the same force from pj.
	AoSFunctor(pi, pj *Particle, newton3 bool)

	// SoAFunctorSingle processes every intra-cell pair of soa.
	SoAFunctorSingle(soa *SoA, newton3 bool)

	// SoAFunctorPair processes every cross-cell pair between soaA and soaB.
	SoAFunctorPair(soaA, soaB *SoA, newton3 bool)

	// SoAFunctorVerlet processes neighbor-list pairs for particle indices
	// in [iFrom, iTo) of soa, using neighborLists[i] as the neighbor index
	// list for row i.
	SoAFunctorVerlet(soa *SoA, neighborLists [][]int, iFrom, iTo int, newton3 bool)

	// InitTraversal resets any global accumulator (energy, virial) before
	// a traversal begins.
	InitTraversal()

	// EndTraversal finalizes global accumulators after a traversal
	// completes. newton3 tells the functor whether pair contributions
	// were counted once (true) or twice (false), so accumulators can
	// correct for double counting.
	EndTraversal(newton3 bool)

	// AllowsNewton3 reports whether this functor supports being run with
	// Newton's third law optimization enabled.
	AllowsNewton3() bool
	// AllowsNonNewton3 reports whether this functor supports being run
	// with Newton's third law optimization disabled.
	AllowsNonNewton3() bool

	// GetNeededAttr lists the SoA columns this functor reads.
	GetNeededAttr() []AttributeID
	// GetComputedAttr lists the SoA columns this functor writes.
	GetComputedAttr() []AttributeID
}
