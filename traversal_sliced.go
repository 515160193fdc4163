package autopas

import (
	"math"
	"sync"
)

// slabBoundary is the vector of `overlap` locks shared between slab i and
// slab i+1 (§4.6.2). Slab i locks them (one per layer, layer by layer) as
// it finishes its last `overlap` layers; slab i+1 must acquire the same
// lock, in the same layer order, before it may process its corresponding
// first `overlap` layers — so the maximum concurrent wait is bounded by
// overlap.
type slabBoundary struct {
	locks []sync.Mutex
}

// SlicedTraversal slices the longest axis of the cell grid into T slabs
// (T <= worker count) and assigns one thread per slab (§4.6.2).
type SlicedTraversal struct {
	container *LinkedCellsContainer
	sig       TraversalSignature
	functor   Functor
	pool      *workerPool

	axis    int
	overlap int
}

func newSlicedTraversal(container *LinkedCellsContainer, sig TraversalSignature, functor Functor, pool *workerPool) *SlicedTraversal {
	axis := longestAxis(container.dims)
	cellSide := container.cellSize[axis]
	overlap := int(math.Ceil(container.cutoff / cellSide))
	if overlap < 1 {
		overlap = 1
	}
	return &SlicedTraversal{container: container, sig: sig, functor: functor, pool: pool, axis: axis, overlap: overlap}
}

func longestAxis(dims [3]int) int {
	axis := 0
	for d := 1; d < 3; d++ {
		if dims[d] > dims[axis] {
			axis = d
		}
	}
	return axis
}

func (t *SlicedTraversal) Option() TraversalOption           { return TraversalSliced }
func (t *SlicedTraversal) DataLayout() DataLayoutOption       { return t.sig.DataLayout }
func (t *SlicedTraversal) UseNewton3() bool                   { return t.sig.Newton3 }
func (t *SlicedTraversal) RequiredContainer() ContainerOption { return ContainerLinkedCells }

func (t *SlicedTraversal) InitTraversal(cells []Cell) {
	loadDataLayout(cells, t.sig.DataLayout, t.pool)
	t.functor.InitTraversal()
}

func (t *SlicedTraversal) EndTraversal(cells []Cell) {
	storeDataLayout(cells, t.sig.DataLayout, t.pool)
	t.functor.EndTraversal(t.sig.Newton3)
}

// slab is one contiguous range of interior layer indices [lo,hi) along
// the sliced axis.
type slab struct{ lo, hi int }

func (t *SlicedTraversal) planSlabs() []slab {
	c := t.container
	total := c.dims[t.axis]
	minThickness := t.overlap + 1

	numSlabs := t.pool.numWorkers
	if maxSlabs := total / minThickness; maxSlabs < numSlabs {
		numSlabs = maxSlabs
	}
	if numSlabs < 1 {
		numSlabs = 1
	}

	chunk := (total + numSlabs - 1) / numSlabs
	var slabs []slab
	for lo := 1; lo <= total; lo += chunk {
		hi := lo + chunk
		if hi > total+1 {
			hi = total + 1
		}
		slabs = append(slabs, slab{lo: lo, hi: hi})
	}
	return slabs
}

func (t *SlicedTraversal) TraverseParticlePairs(functor Functor) {
	slabs := t.planSlabs()
	if len(slabs) <= 1 {
		for _, s := range slabs {
			t.processSlab(s, nil, nil, functor)
		}
		return
	}

	boundaries := make([]*slabBoundary, len(slabs)-1)
	for i := range boundaries {
		boundaries[i] = &slabBoundary{locks: make([]sync.Mutex, t.overlap)}
	}

	var wg sync.WaitGroup
	for i, s := range slabs {
		var prev, next *slabBoundary
		if i > 0 {
			prev = boundaries[i-1]
		}
		if i < len(boundaries) {
			next = boundaries[i]
		}
		wg.Add(1)
		go func(s slab, prev, next *slabBoundary) {
			defer wg.Done()
			t.processSlab(s, prev, next, functor)
		}(s, prev, next)
	}
	wg.Wait()
}

// processSlab runs the full C08-style stencil (self plus 13 forward
// offsets) over every layer in [s.lo, s.hi) of the sliced axis, taking
// the boundary locks described in slabBoundary when entering/leaving the
// overlap region shared with a neighboring slab.
func (t *SlicedTraversal) processSlab(s slab, prev, next *slabBoundary, functor Functor) {
	c := t.container

	for layer := s.lo; layer < s.hi; layer++ {
		firstOverlapIdx := layer - s.lo
		enteringPredecessor := prev != nil && firstOverlapIdx < t.overlap
		lastOverlapIdx := (s.hi - 1) - layer
		enteringSuccessor := next != nil && lastOverlapIdx < t.overlap

		if enteringPredecessor {
			prev.locks[firstOverlapIdx].Lock()
		}
		if enteringSuccessor {
			next.locks[lastOverlapIdx].Lock()
		}

		t.processLayer(layer, functor)

		if enteringPredecessor {
			prev.locks[firstOverlapIdx].Unlock()
		}
		if enteringSuccessor {
			next.locks[lastOverlapIdx].Unlock()
		}
	}
}

func (t *SlicedTraversal) processLayer(layer int, functor Functor) {
	c := t.container
	var a, b int
	switch t.axis {
	case 0:
		a, b = c.dims[1], c.dims[2]
	case 1:
		a, b = c.dims[0], c.dims[2]
	default:
		a, b = c.dims[0], c.dims[1]
	}

	for i := 1; i <= a; i++ {
		for j := 1; j <= b; j++ {
			base := axisIndex(t.axis, layer, i, j)
			baseCell := c.cells[c.flatIndex(base)]

			if t.sig.DataLayout == DataLayoutSoA {
				functor.SoAFunctorSingle(baseCell.SoA(), t.sig.Newton3)
			} else {
				traverseIntraCellAoS(baseCell, functor, t.sig.Newton3)
			}

			for _, off := range c08Offsets {
				n := [3]int{base[0] + off[0], base[1] + off[1], base[2] + off[2]}
				if n[0] < 0 || n[1] < 0 || n[2] < 0 ||
					n[0] > c.dims[0]+1 || n[1] > c.dims[1]+1 || n[2] > c.dims[2]+1 {
					continue
				}
				neighborCell := c.cells[c.flatIndex(n)]
				if t.sig.DataLayout == DataLayoutSoA {
					functor.SoAFunctorPair(baseCell.SoA(), neighborCell.SoA(), t.sig.Newton3)
				} else {
					traverseInterCellAoS(baseCell, neighborCell, functor, t.sig.Newton3)
				}
			}
		}
	}
}

// axisIndex builds a 3D cell index given a fixed coordinate along `axis`
// and the other two free coordinates in their natural order.
func axisIndex(axis, fixed, a, b int) [3]int {
	switch axis {
	case 0:
		return [3]int{fixed, a, b}
	case 1:
		return [3]int{a, fixed, b}
	default:
		return [3]int{a, b, fixed}
	}
}
