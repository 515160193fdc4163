package autopas

// LJFunctor is a reference Lennard-Jones functor implementing the full
// Functor Contract (§6.1). It is a supplemental feature grounded on
// original_source/src/autopas/molecularDynamics/LJFunctor.h: the core
// does not own physics kernels, but ships one concrete functor so the
// end-to-end scenarios in §8.2 have something to run against.
//
// V(r) = 4*epsilon*((sigma/r)^12 - (sigma/r)^6)
// F(r) = 24*epsilon*(2*(sigma/r)^12 - (sigma/r)^6) / r^2 * (ri - rj)
type LJFunctor struct {
	Epsilon float64
	Sigma   float64
	Cutoff  float64

	sigma6    float64
	epsilon24 float64
	cutoffSq  float64

	upot   float64
	virial [3]float64
}

// NewLJFunctor returns a Lennard-Jones functor for the given parameters.
func NewLJFunctor(epsilon, sigma, cutoff float64) *LJFunctor {
	f := &LJFunctor{Epsilon: epsilon, Sigma: sigma, Cutoff: cutoff}
	f.sigma6 = pow6(sigma)
	f.epsilon24 = 24 * epsilon
	f.cutoffSq = cutoff * cutoff
	return f
}

func pow6(x float64) float64 { x2 := x * x; return x2 * x2 * x2 }

func (f *LJFunctor) AoSFunctor(pi, pj *Particle, newton3 bool) {
	distSq := distanceSquared(pi.Position, pj.Position)
	if distSq > f.cutoffSq || distSq == 0 {
		return
	}
	invDistSq := 1 / distSq
	lj6 := f.sigma6 * invDistSq * invDistSq * invDistSq
	lj12 := lj6 * lj6
	scalar := f.epsilon24 * (2*lj12 - lj6) * invDistSq

	force := [3]float64{
		scalar * (pi.Position[0] - pj.Position[0]),
		scalar * (pi.Position[1] - pj.Position[1]),
		scalar * (pi.Position[2] - pj.Position[2]),
	}
	pi.AddForce(force)
	if newton3 {
		pj.SubForce(force)
	}

	f.accumulateEnergy(lj12, lj6, force, pi.Position, pj.Position, newton3)
}

func (f *LJFunctor) accumulateEnergy(lj12, lj6 float64, force, ri, rj [3]float64, newton3 bool) {
	energy := 4 * f.Epsilon * (lj12 - lj6)
	if newton3 {
		f.upot += energy
	} else {
		f.upot += energy / 2 // pair visited from both sides; halve to avoid double counting
	}
	for d := 0; d < 3; d++ {
		v := force[d] * (ri[d] - rj[d])
		if newton3 {
			f.virial[d] += v
		} else {
			f.virial[d] += v / 2
		}
	}
}

func (f *LJFunctor) SoAFunctorSingle(soa *SoA, newton3 bool) {
	n := soa.Len()
	xs, ys, zs := soa.PosXYZ()
	fx, fy, fz := soa.ForceXYZ()
	for i := 0; i < n; i++ {
		if soa.ids[soa.viewStart+i] == DummyID {
			continue
		}
		neighXs := xs[i+1:]
		neighYs := ys[i+1:]
		neighZs := zs[i+1:]
		neighFx := make([]float64, len(neighXs))
		neighFy := make([]float64, len(neighXs))
		neighFz := make([]float64, len(neighXs))
		BatchLennardJonesForce(xs[i], ys[i], zs[i], neighXs, neighYs, neighZs, f.sigma6, f.epsilon24, f.cutoffSq, neighFx, neighFy, neighFz)
		for k := range neighFx {
			if soa.ids[soa.viewStart+i+1+k] == DummyID {
				continue
			}
			fx[i] += neighFx[k]
			fy[i] += neighFy[k]
			fz[i] += neighFz[k]
			if newton3 {
				fx[i+1+k] -= neighFx[k]
				fy[i+1+k] -= neighFy[k]
				fz[i+1+k] -= neighFz[k]
			}
		}

		if newton3 || i == 0 {
			continue
		}
		// Without Newton3 the pass above only covers neighbors ahead of i;
		// the pair (j,i) for j<i is computed here from i's own
		// perspective, symmetric with the forward pass, so i accumulates
		// its full contribution without ever writing to another row.
		backXs := xs[:i]
		backYs := ys[:i]
		backZs := zs[:i]
		backFx := make([]float64, i)
		backFy := make([]float64, i)
		backFz := make([]float64, i)
		BatchLennardJonesForce(xs[i], ys[i], zs[i], backXs, backYs, backZs, f.sigma6, f.epsilon24, f.cutoffSq, backFx, backFy, backFz)
		for k := range backFx {
			if soa.ids[soa.viewStart+k] == DummyID {
				continue
			}
			fx[i] += backFx[k]
			fy[i] += backFy[k]
			fz[i] += backFz[k]
		}
	}
}

func (f *LJFunctor) SoAFunctorPair(soaA, soaB *SoA, newton3 bool) {
	na := soaA.Len()
	axs, ays, azs := soaA.PosXYZ()
	afx, afy, afz := soaA.ForceXYZ()
	bxs, bys, bzs := soaB.PosXYZ()
	bfx, bfy, bfz := soaB.ForceXYZ()

	nb := soaB.Len()
	scratchX := make([]float64, nb)
	scratchY := make([]float64, nb)
	scratchZ := make([]float64, nb)

	for i := 0; i < na; i++ {
		if soaA.ids[soaA.viewStart+i] == DummyID {
			continue
		}
		BatchLennardJonesForce(axs[i], ays[i], azs[i], bxs, bys, bzs, f.sigma6, f.epsilon24, f.cutoffSq, scratchX, scratchY, scratchZ)
		for j := 0; j < nb; j++ {
			if soaB.ids[soaB.viewStart+j] == DummyID {
				continue
			}
			afx[i] += scratchX[j]
			afy[i] += scratchY[j]
			afz[i] += scratchZ[j]
			if newton3 {
				bfx[j] -= scratchX[j]
				bfy[j] -= scratchY[j]
				bfz[j] -= scratchZ[j]
			}
		}
	}

	if newton3 {
		return
	}

	// Without Newton3 side B independently computes its own contribution
	// against every particle in A, mirroring side A's pass above so both
	// sides end up with the same force an ordered-pair traversal would
	// give them, without either side writing into the other's row.
	scratchX = make([]float64, na)
	scratchY = make([]float64, na)
	scratchZ = make([]float64, na)
	for j := 0; j < nb; j++ {
		if soaB.ids[soaB.viewStart+j] == DummyID {
			continue
		}
		BatchLennardJonesForce(bxs[j], bys[j], bzs[j], axs, ays, azs, f.sigma6, f.epsilon24, f.cutoffSq, scratchX, scratchY, scratchZ)
		for i := 0; i < na; i++ {
			if soaA.ids[soaA.viewStart+i] == DummyID {
				continue
			}
			bfx[j] += scratchX[i]
			bfy[j] += scratchY[i]
			bfz[j] += scratchZ[i]
		}
	}
}

func (f *LJFunctor) SoAFunctorVerlet(soa *SoA, neighborLists [][]int, iFrom, iTo int, newton3 bool) {
	xs, ys, zs := soa.PosXYZ()
	fx, fy, fz := soa.ForceXYZ()

	for i := iFrom; i < iTo; i++ {
		if soa.ids[soa.viewStart+i] == DummyID {
			continue
		}
		rows := neighborLists[i]
		neighXs := make([]float64, len(rows))
		neighYs := make([]float64, len(rows))
		neighZs := make([]float64, len(rows))
		for k, r := range rows {
			neighXs[k], neighYs[k], neighZs[k] = xs[r], ys[r], zs[r]
		}
		outFx := make([]float64, len(rows))
		outFy := make([]float64, len(rows))
		outFz := make([]float64, len(rows))
		BatchLennardJonesForce(xs[i], ys[i], zs[i], neighXs, neighYs, neighZs, f.sigma6, f.epsilon24, f.cutoffSq, outFx, outFy, outFz)
		for k, r := range rows {
			if soa.ids[soa.viewStart+r] == DummyID {
				continue
			}
			fx[i] += outFx[k]
			fy[i] += outFy[k]
			fz[i] += outFz[k]
			if newton3 {
				fx[r] -= outFx[k]
				fy[r] -= outFy[k]
				fz[r] -= outFz[k]
			}
		}
	}
}

func (f *LJFunctor) InitTraversal() {
	f.upot = 0
	f.virial = [3]float64{}
}

func (f *LJFunctor) EndTraversal(newton3 bool) {}

func (f *LJFunctor) AllowsNewton3() bool    { return true }
func (f *LJFunctor) AllowsNonNewton3() bool { return true }

func (f *LJFunctor) GetNeededAttr() []AttributeID {
	return []AttributeID{AttrID, AttrPosX, AttrPosY, AttrPosZ, AttrOwned}
}

func (f *LJFunctor) GetComputedAttr() []AttributeID {
	return []AttributeID{AttrForceX, AttrForceY, AttrForceZ}
}

// Upot returns the accumulated potential energy since the last
// InitTraversal call.
func (f *LJFunctor) Upot() float64 { return f.upot }

// Virial returns the accumulated per-axis virial since the last
// InitTraversal call.
func (f *LJFunctor) Virial() [3]float64 { return f.virial }
