package autopas

// Configuration pins down every axis a tuning strategy searches over:
// which container, which traversal, which data layout, whether Newton3 is
// applied, and which cell size factor (§4.8 bullet 1).
type Configuration struct {
	Container   ContainerOption
	Traversal   TraversalOption
	DataLayout  DataLayoutOption
	Newton3     Newton3Option
	CellSizeFactor float64
}

func (c Configuration) String() string {
	return c.Container.String() + "/" + c.Traversal.String() + "/" + c.DataLayout.String() + "/" + c.Newton3.String()
}

// configurationSpace builds the cross product of every allowed option
// along each axis, then drops every combination a traversal or container
// cannot actually run (§4.8 bullet 1): a traversal that traversalFitsContainer
// rejects for the container, and any Newton3 value newton3Allowed rejects
// (it accepts both Newton3Enabled and Newton3Disabled for every traversal).
// Filtering by the functor's AllowsNewton3/AllowsNonNewton3 happens in
// applicable.
func configurationSpace(containers []ContainerOption, traversals []TraversalOption, layouts []DataLayoutOption, newton3s []Newton3Option, cellSizeFactors []float64) []Configuration {
	var out []Configuration
	for _, container := range containers {
		for _, traversal := range traversals {
			if !traversalFitsContainer(traversal, container) {
				continue
			}
			for _, layout := range layouts {
				for _, n3 := range newton3s {
					if !newton3Allowed(traversal, n3) {
						continue
					}
					for _, csf := range cellSizeFactors {
						out = append(out, Configuration{
							Container:      container,
							Traversal:      traversal,
							DataLayout:     layout,
							Newton3:        n3,
							CellSizeFactor: csf,
						})
					}
				}
			}
		}
	}
	return out
}

// traversalFitsContainer reports whether traversal is ever applicable to
// container, independent of any particular functor.
func traversalFitsContainer(traversal TraversalOption, container ContainerOption) bool {
	switch traversal {
	case TraversalDirectSum:
		return container == ContainerDirectSum
	case TraversalC08, TraversalSliced:
		return container == ContainerLinkedCells
	case TraversalVerlet:
		return container == ContainerVerletLists
	case TraversalVerletCluster:
		return container == ContainerVerletClusterLists
	default:
		return false
	}
}

// newton3Allowed reports whether a configuration's Newton3 setting is one
// the traversal kind can execute at all (the functor-specific check in
// §6.1 happens later, per call, once a functor is known).
func newton3Allowed(traversal TraversalOption, n3 Newton3Option) bool {
	_ = traversal
	return n3 == Newton3Enabled || n3 == Newton3Disabled
}

// applicable filters a configuration space down to configurations whose
// traversal the given functor actually supports (§4.8 bullet 1, §6.1).
func applicable(space []Configuration, functor Functor) []Configuration {
	out := make([]Configuration, 0, len(space))
	for _, cfg := range space {
		if cfg.Newton3 == Newton3Enabled && !functor.AllowsNewton3() {
			continue
		}
		if cfg.Newton3 == Newton3Disabled && !functor.AllowsNonNewton3() {
			continue
		}
		out = append(out, cfg)
	}
	return out
}
