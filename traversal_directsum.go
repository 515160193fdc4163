package autopas

// DirectSumTraversal calls the functor once on (cellDomain, cellDomain)
// for intra-cell pairs, and once on (cellDomain, cellHalo) for cross-cell
// pairs (§4.6.3).
type DirectSumTraversal struct {
	container *DirectSumContainer
	sig       TraversalSignature
	functor   Functor
}

func newDirectSumTraversal(container *DirectSumContainer, sig TraversalSignature, functor Functor) *DirectSumTraversal {
	return &DirectSumTraversal{container: container, sig: sig, functor: functor}
}

func (t *DirectSumTraversal) Option() TraversalOption          { return TraversalDirectSum }
func (t *DirectSumTraversal) DataLayout() DataLayoutOption      { return t.sig.DataLayout }
func (t *DirectSumTraversal) UseNewton3() bool                  { return t.sig.Newton3 }
func (t *DirectSumTraversal) RequiredContainer() ContainerOption { return ContainerDirectSum }

func (t *DirectSumTraversal) InitTraversal(cells []Cell) {
	if t.sig.DataLayout == DataLayoutSoA {
		for _, c := range cells {
			c.LoadSoA()
		}
	}
	t.functor.InitTraversal()
}

func (t *DirectSumTraversal) EndTraversal(cells []Cell) {
	if t.sig.DataLayout == DataLayoutSoA {
		for _, c := range cells {
			c.StoreSoA()
		}
	}
	t.functor.EndTraversal(t.sig.Newton3)
}

func (t *DirectSumTraversal) TraverseParticlePairs(functor Functor) {
	owned, halo := t.container.owned, t.container.halo
	if t.sig.DataLayout == DataLayoutSoA {
		functor.SoAFunctorSingle(owned.SoA(), t.sig.Newton3)
		functor.SoAFunctorPair(owned.SoA(), halo.SoA(), t.sig.Newton3)
		return
	}
	traverseIntraCellAoS(owned, functor, t.sig.Newton3)
	traverseInterCellAoS(owned, halo, functor, t.sig.Newton3)
}

// particlesAccessor is implemented by every Cell variant whose backing
// array can be mutated in place through a plain Go slice, which is what
// lets a functor's AoSFunctor write a force directly into cell storage
// without going through the ParticleProxy write-back path.
type particlesAccessor interface {
	Particles() []Particle
}

// traverseIntraCellAoS invokes functor on every unordered pair within a
// single cell. With Newton3 on, each pair is visited once and the functor
// applies the reaction force to both sides itself. With Newton3 off, each
// pair is visited twice with swapped operands so both ps[i] and ps[j]
// independently accumulate their own contribution.
func traverseIntraCellAoS(cell Cell, functor Functor, newton3 bool) {
	accessor, ok := cell.(particlesAccessor)
	if !ok {
		return
	}
	ps := accessor.Particles()
	for i := 0; i < len(ps); i++ {
		if ps[i].IsDummy() {
			continue
		}
		for j := i + 1; j < len(ps); j++ {
			if ps[j].IsDummy() {
				continue
			}
			functor.AoSFunctor(&ps[i], &ps[j], newton3)
			if !newton3 {
				functor.AoSFunctor(&ps[j], &ps[i], newton3)
			}
		}
	}
}

// traverseInterCellAoS invokes functor on every pair (a,b) with a in
// cellA and b in cellB. With Newton3 on, each pair is visited once. With
// Newton3 off, each pair is visited twice with swapped operands so both
// as[i] and bs[j] independently accumulate their own contribution,
// matching §5's "exactly twice if off".
func traverseInterCellAoS(cellA, cellB Cell, functor Functor, newton3 bool) {
	a, okA := cellA.(particlesAccessor)
	b, okB := cellB.(particlesAccessor)
	if !okA || !okB {
		return
	}
	as, bs := a.Particles(), b.Particles()
	for i := range as {
		if as[i].IsDummy() {
			continue
		}
		for j := range bs {
			if bs[j].IsDummy() {
				continue
			}
			functor.AoSFunctor(&as[i], &bs[j], newton3)
			if !newton3 {
				functor.AoSFunctor(&bs[j], &as[i], newton3)
			}
		}
	}
}
