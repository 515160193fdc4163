package autopas

// Cell owns a contiguous particle region. FullCell keeps both an AoS
// slice and a parallel SoA buffer (either may be authoritative depending
// on the current data-layout phase, §4.7); ReducedCell keeps only the SoA
// buffer and materializes AoS views on demand.
type Cell interface {
	// Add appends a particle to the cell.
	Add(p Particle)
	// Size returns the number of particles currently stored, dummies
	// included.
	Size() int
	// At returns a write-back proxy for particle i. The caller must call
	// Close on the returned proxy (or use it via a for-range loop helper)
	// before the mutation is guaranteed visible to other cell views.
	At(i int) *ParticleProxy
	// RemoveSwapBack deletes particle i by swapping it with the last
	// element and truncating (§4.10 "swap-with-last-and-pop").
	RemoveSwapBack(i int)
	// Clear empties the cell.
	Clear()
	// SoA returns the cell's SoA view, building it from the AoS side if
	// the AoS side is currently authoritative.
	SoA() *SoA
	// LoadSoA forces the SoA buffer to be rebuilt from the AoS side.
	LoadSoA()
	// StoreSoA writes the SoA buffer back to the AoS side and marks SoA
	// no longer authoritative.
	StoreSoA()
}

// ParticleProxy is a scoped write-back handle to one particle stored in a
// cell. Deref reads the current value; Set stages a new value that is
// written back when Close is called. This models the "reduced-memory cell
// iterator" design note (§9): the AoS view is a transient reservoir, never
// a raw reference that outlives the scope holding it.
type ParticleProxy struct {
	cell  Cell
	index int
	value Particle
}

// Get returns the particle's current value.
func (p *ParticleProxy) Get() Particle { return p.value }

// Set stages a new value; it becomes visible to the cell on Close.
func (p *ParticleProxy) Set(v Particle) { p.value = v }

// Close writes the staged value back to the owning cell.
func (p *ParticleProxy) Close() {
	switch c := p.cell.(type) {
	case *FullCell:
		c.particles[p.index] = p.value
		c.soaValid = false
	case *ReducedCell:
		c.soa.WriteMultiple(p.index, AllAttributes(), particleToRow(p.value))
	}
}

func particleToRow(p Particle) []float64 {
	owned := float64(0)
	if p.Owned {
		owned = 1
	}
	return []float64{
		float64(p.ID), p.Position[0], p.Position[1], p.Position[2],
		p.Force[0], p.Force[1], p.Force[2], owned, float64(p.TypeID),
	}
}

// FullCell stores particles as both an AoS slice and a parallel SoA
// buffer. This is the default cell used by DirectSum, LinkedCells and
// VerletLists.
type FullCell struct {
	particles []Particle
	soa       *SoA
	soaValid  bool // true once soa reflects particles
}

// NewFullCell returns an empty FullCell.
func NewFullCell() *FullCell {
	return &FullCell{soa: NewSoA(), soaValid: true}
}

func (c *FullCell) Add(p Particle) {
	c.particles = append(c.particles, p)
	c.soaValid = false
}

func (c *FullCell) Size() int { return len(c.particles) }

func (c *FullCell) At(i int) *ParticleProxy {
	return &ParticleProxy{cell: c, index: i, value: c.particles[i]}
}

func (c *FullCell) RemoveSwapBack(i int) {
	last := len(c.particles) - 1
	c.particles[i] = c.particles[last]
	c.particles = c.particles[:last]
	c.soaValid = false
}

func (c *FullCell) Clear() {
	c.particles = c.particles[:0]
	c.soa.Clear()
	c.soaValid = true
}

func (c *FullCell) SoA() *SoA {
	if !c.soaValid {
		c.LoadSoA()
	}
	return c.soa
}

func (c *FullCell) LoadSoA() {
	c.soa.FromAoS(c.particles)
	c.soaValid = true
}

func (c *FullCell) StoreSoA() {
	c.particles = c.soa.ToAoS()
	c.soaValid = true
}

// Particles exposes the raw AoS slice for callers (containers, iterators)
// that need direct access without going through the proxy interface.
func (c *FullCell) Particles() []Particle { return c.particles }

// ReducedCell stores only the SoA buffer. AoS views materialize a
// transient particle on demand and write it back through the proxy.
type ReducedCell struct {
	soa *SoA
}

// NewReducedCell returns an empty ReducedCell.
func NewReducedCell() *ReducedCell { return &ReducedCell{soa: NewSoA()} }

func (c *ReducedCell) Add(p Particle) { c.soa.Push(p) }

func (c *ReducedCell) Size() int { return c.soa.Len() }

func (c *ReducedCell) At(i int) *ParticleProxy {
	return &ParticleProxy{cell: c, index: i, value: c.soa.At(i)}
}

func (c *ReducedCell) RemoveSwapBack(i int) {
	last := c.soa.Len() - 1
	c.soa.Swap(i, last)
	c.soa.PopBack()
}

func (c *ReducedCell) Clear() { c.soa.Clear() }

func (c *ReducedCell) SoA() *SoA { return c.soa }

func (c *ReducedCell) LoadSoA() {} // already the authoritative store

func (c *ReducedCell) StoreSoA() {} // no AoS side to flush to
