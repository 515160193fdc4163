package autopas

// Traversal is the common capability set every traversal implements
// (§4.6, §9): load the data layout, visit interacting pairs, store the
// data layout. Every traversal declares its signature (traversal id, data
// layout, Newton3) and the container kind it requires; the AutoTuner only
// ever dispatches through this interface, never a concrete traversal type.
type Traversal interface {
	// Option identifies which TraversalOption this value implements.
	Option() TraversalOption
	// DataLayout reports the layout this traversal requires while it runs.
	DataLayout() DataLayoutOption
	// UseNewton3 reports whether this traversal instance applies Newton's
	// third law optimization.
	UseNewton3() bool
	// RequiredContainer reports which container this traversal can run
	// against; the AutoTuner filters it out of the configuration space
	// for any other container kind (§6.4, §7.5 TraversalTypeMismatch).
	RequiredContainer() ContainerOption

	// InitTraversal loads the data layout this traversal requires (§4.7).
	InitTraversal(cells []Cell)
	// TraverseParticlePairs invokes the functor on every interacting
	// pair or cell, exactly once per pair if Newton3 is on, exactly
	// twice if off (§5).
	TraverseParticlePairs(functor Functor)
	// EndTraversal stores the data layout back (§4.7).
	EndTraversal(cells []Cell)
}

// TraversalSignature is the (traversalId, dataLayout, useNewton3) tuple
// the AutoTuner uses to identify a configuration (§4.6).
type TraversalSignature struct {
	Traversal  TraversalOption
	DataLayout DataLayoutOption
	Newton3    bool
}

// newTraversal builds a fresh Traversal for the given signature bound to
// a specific container instance. This is the dispatch table spec §9
// calls for: a pair of enums plus a table, no inheritance.
func newTraversal(sig TraversalSignature, container Container, functor Functor, pool *workerPool) (Traversal, error) {
	switch sig.Traversal {
	case TraversalDirectSum:
		if container.Kind() != ContainerDirectSum {
			return nil, newError(TraversalTypeMismatch, "directSum traversal requires a DirectSum container, got %v", container.Kind())
		}
		return newDirectSumTraversal(container.(*DirectSumContainer), sig, functor), nil
	case TraversalC08:
		if container.Kind() != ContainerLinkedCells {
			return nil, newError(TraversalTypeMismatch, "c08 traversal requires a LinkedCells container, got %v", container.Kind())
		}
		return newC08Traversal(container.(*LinkedCellsContainer), sig, functor, pool), nil
	case TraversalSliced:
		if container.Kind() != ContainerLinkedCells {
			return nil, newError(TraversalTypeMismatch, "sliced traversal requires a LinkedCells container, got %v", container.Kind())
		}
		return newSlicedTraversal(container.(*LinkedCellsContainer), sig, functor, pool), nil
	case TraversalVerlet:
		if container.Kind() != ContainerVerletLists {
			return nil, newError(TraversalTypeMismatch, "verlet traversal requires a VerletLists container, got %v", container.Kind())
		}
		return newVerletTraversal(container.(*VerletListsContainer), sig, functor, pool), nil
	case TraversalVerletCluster:
		if container.Kind() != ContainerVerletClusterLists {
			return nil, newError(TraversalTypeMismatch, "verletCluster traversal requires a VerletClusterLists container, got %v", container.Kind())
		}
		return newVerletClusterTraversal(container.(*VerletClusterListsContainer), sig, functor), nil
	default:
		return nil, newError(InvalidConfiguration, "unknown traversal option %v", sig.Traversal)
	}
}
