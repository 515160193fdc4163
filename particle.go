package autopas

import "math"

// DummyID marks a padding slot in a fixed-size cluster (§3.4). Dummy
// particles must never be visible to a functor or an iterator.
const DummyID = ^uint64(0)

// Particle is the per-particle record the core operates on: a stable id,
// position, velocity, force accumulator, an owned flag, and an optional
// type id for multi-species kernels.
//
// id is unique per particle across the lifetime of the simulation. owned
// mirrors spatial position until the next call to updateContainer.
// Position may drift up to verletSkin/2 between neighbor-list rebuilds.
type Particle struct {
	ID       uint64
	Position [3]float64
	Velocity [3]float64
	Force    [3]float64
	Owned    bool
	TypeID   uint64
}

// NewParticle constructs an owned particle at the given position with zero
// velocity and force.
func NewParticle(id uint64, position [3]float64) Particle {
	return Particle{ID: id, Position: position, Owned: true}
}

// NewHaloParticle constructs a halo particle (owned == false).
func NewHaloParticle(id uint64, position [3]float64) Particle {
	return Particle{ID: id, Position: position, Owned: false}
}

// IsDummy reports whether this particle is a cluster padding marker. Dummy
// particles hold ID == DummyID and a position that lies outside the box by
// at least 8x the interaction length, so spatial queries never return them.
func (p *Particle) IsDummy() bool {
	return p.ID == DummyID
}

func newDummyParticle(boxMin, boxMax [3]float64, interactionLength float64) Particle {
	const kOutside = 8.0
	pos := [3]float64{
		boxMin[0] - kOutside*interactionLength,
		boxMin[1] - kOutside*interactionLength,
		boxMin[2] - kOutside*interactionLength,
	}
	_ = boxMax
	return Particle{ID: DummyID, Position: pos, Owned: false}
}

// AddForce accumulates a force contribution. Used by functors implementing
// AoSFunctor(pi, pj, newton3): the pair calls AddForce on pi and, when
// newton3 is set, SubForce with the same vector on pj.
func (p *Particle) AddForce(f [3]float64) {
	p.Force[0] += f[0]
	p.Force[1] += f[1]
	p.Force[2] += f[2]
}

// SubForce is AddForce's Newton-3 counterpart.
func (p *Particle) SubForce(f [3]float64) {
	p.Force[0] -= f[0]
	p.Force[1] -= f[1]
	p.Force[2] -= f[2]
}

// ResetForce zeroes the force accumulator, typically called once per
// iteration before a traversal.
func (p *Particle) ResetForce() {
	p.Force = [3]float64{}
}

func distanceSquared(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

// inBox reports whether position lies in [boxMin, boxMax) on every axis.
func inBox(pos, boxMin, boxMax [3]float64) bool {
	for d := 0; d < 3; d++ {
		if pos[d] < boxMin[d] || pos[d] >= boxMax[d] {
			return false
		}
	}
	return true
}

// distance is a small helper kept close to Particle since it is used by
// every container's boundary and skin checks.
func distance(a, b [3]float64) float64 {
	return math.Sqrt(distanceSquared(a, b))
}
