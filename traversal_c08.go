package autopas

// c08Offsets are the 13 neighbor-cell offsets a C08 base cell interacts
// with, chosen so that every interacting pair (c, c') in the grid is
// visited exactly once across the whole traversal (§4.6.1).
var c08Offsets = [13][3]int{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{1, 1, 0}, {1, -1, 0},
	{1, 0, 1}, {1, 0, -1},
	{0, 1, 1}, {0, 1, -1},
	{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
}

// C08Traversal visits every interior cell as a base cell and interacts it
// with itself plus its 13 forward neighbors (§4.6.1). Parallel safety
// comes from an eight-coloring of base cells with stride (2,2,2): within
// one color no two base-cell stencils overlap, so all cells of one color
// run concurrently on the shared worker pool and colors run one after
// another.
type C08Traversal struct {
	container *LinkedCellsContainer
	sig       TraversalSignature
	functor   Functor
	pool      *workerPool
}

func newC08Traversal(container *LinkedCellsContainer, sig TraversalSignature, functor Functor, pool *workerPool) *C08Traversal {
	return &C08Traversal{container: container, sig: sig, functor: functor, pool: pool}
}

func (t *C08Traversal) Option() TraversalOption           { return TraversalC08 }
func (t *C08Traversal) DataLayout() DataLayoutOption       { return t.sig.DataLayout }
func (t *C08Traversal) UseNewton3() bool                   { return t.sig.Newton3 }
func (t *C08Traversal) RequiredContainer() ContainerOption { return ContainerLinkedCells }

func (t *C08Traversal) InitTraversal(cells []Cell) {
	loadDataLayout(cells, t.sig.DataLayout, t.pool)
	t.functor.InitTraversal()
}

func (t *C08Traversal) EndTraversal(cells []Cell) {
	storeDataLayout(cells, t.sig.DataLayout, t.pool)
	t.functor.EndTraversal(t.sig.Newton3)
}

func (t *C08Traversal) TraverseParticlePairs(functor Functor) {
	c := t.container
	colors := c.colorBaseCells()

	for _, baseCells := range colors {
		if len(baseCells) == 0 {
			continue
		}
		t.pool.forEach(len(baseCells), func(k int) {
			base := baseCells[k]
			t.interactBaseCell(base, functor)
		})
	}
}

func (t *C08Traversal) interactBaseCell(base [3]int, functor Functor) {
	c := t.container
	baseCell := c.cells[c.flatIndex(base)]

	if t.sig.DataLayout == DataLayoutSoA {
		functor.SoAFunctorSingle(baseCell.SoA(), t.sig.Newton3)
	} else {
		traverseIntraCellAoS(baseCell, functor, t.sig.Newton3)
	}

	for _, off := range c08Offsets {
		neighbor := [3]int{base[0] + off[0], base[1] + off[1], base[2] + off[2]}
		if neighbor[0] < 0 || neighbor[1] < 0 || neighbor[2] < 0 ||
			neighbor[0] > c.dims[0]+1 || neighbor[1] > c.dims[1]+1 || neighbor[2] > c.dims[2]+1 {
			continue
		}
		neighborCell := c.cells[c.flatIndex(neighbor)]
		if t.sig.DataLayout == DataLayoutSoA {
			functor.SoAFunctorPair(baseCell.SoA(), neighborCell.SoA(), t.sig.Newton3)
		} else {
			traverseInterCellAoS(baseCell, neighborCell, functor, t.sig.Newton3)
		}
	}
}

// colorBaseCells partitions every interior cell into 8 color classes by
// the parity of its 3D index, so that within one class no two base-cell
// stencils (self + the 13 forward offsets) can overlap.
func (c *LinkedCellsContainer) colorBaseCells() [8][][3]int {
	var colors [8][][3]int
	for _, idx := range c.interiorCells() {
		color := (idx[0] & 1) | ((idx[1] & 1) << 1) | ((idx[2] & 1) << 2)
		colors[color] = append(colors[color], idx)
	}
	return colors
}
