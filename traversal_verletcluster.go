package autopas

// VerletClusterTraversal invokes the functor on every cluster pair in the
// neighbor graph built by VerletClusterListsContainer.Rebuild, plus a
// per-cluster self-interaction (§4.6.5).
type VerletClusterTraversal struct {
	container *VerletClusterListsContainer
	sig       TraversalSignature
	functor   Functor
}

func newVerletClusterTraversal(container *VerletClusterListsContainer, sig TraversalSignature, functor Functor) *VerletClusterTraversal {
	return &VerletClusterTraversal{container: container, sig: sig, functor: functor}
}

func (t *VerletClusterTraversal) Option() TraversalOption           { return TraversalVerletCluster }
func (t *VerletClusterTraversal) DataLayout() DataLayoutOption       { return t.sig.DataLayout }
func (t *VerletClusterTraversal) UseNewton3() bool                   { return t.sig.Newton3 }
func (t *VerletClusterTraversal) RequiredContainer() ContainerOption { return ContainerVerletClusterLists }

// InitTraversal and EndTraversal ignore the cells argument: the container's
// plain Cells() are the pre-clustering owned/halo scratch cells, not the
// clusters this traversal actually interacts over, so the SoA side is
// loaded/stored on each cluster's own persistent buffer directly.
func (t *VerletClusterTraversal) InitTraversal(cells []Cell) {
	if t.sig.DataLayout == DataLayoutSoA {
		for _, cl := range t.container.Clusters() {
			clusterCell{cl}.LoadSoA()
		}
	}
	t.functor.InitTraversal()
}

func (t *VerletClusterTraversal) EndTraversal(cells []Cell) {
	if t.sig.DataLayout == DataLayoutSoA {
		for _, cl := range t.container.Clusters() {
			clusterCell{cl}.StoreSoA()
		}
	}
	t.functor.EndTraversal(t.sig.Newton3)
}

func (t *VerletClusterTraversal) TraverseParticlePairs(functor Functor) {
	clusters := t.container.Clusters()
	for i, cl := range clusters {
		cellI := clusterCell{cl}
		if t.sig.DataLayout == DataLayoutSoA {
			functor.SoAFunctorSingle(cellI.SoA(), t.sig.Newton3)
		} else {
			traverseIntraCellAoS(cellI, functor, t.sig.Newton3)
		}

		for _, j := range t.container.NeighborEdges(i) {
			if j <= i {
				continue // each unordered cluster pair processed once
			}
			cellJ := clusterCell{clusters[j]}
			if t.sig.DataLayout == DataLayoutSoA {
				functor.SoAFunctorPair(cellI.SoA(), cellJ.SoA(), t.sig.Newton3)
			} else {
				traverseInterCellAoS(cellI, cellJ, functor, t.sig.Newton3)
			}
		}
	}
}
