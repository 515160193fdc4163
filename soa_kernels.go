package autopas

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// Batch pairwise force kernels (Structure of Arrays)
//
// A Verlet-list or C08 traversal ultimately reduces to "given one base
// particle and a stream of neighbor positions, compute a pairwise force
// contribution per neighbor". Doing this with SIMD over SoA-laid-out
// neighbor columns is the same shape as the teacher's batch dot-product
// and batch min-distance kernels, generalized from "closest point" to
// "sum of pairwise forces".

// BatchDistanceSquared computes the squared distance from a fixed base
// point to every neighbor position in xs/ys/zs (SoA layout), writing the
// result into dst. No container or functor in this package calls it: the
// neighbor-list builds use the scalar distanceSquared, and
// BatchLennardJonesForce applies its own cutoff test.
func BatchDistanceSquared[T hwy.Floats](
	baseX, baseY, baseZ T,
	xs, ys, zs []T,
	dst []T,
) {
	size := min(len(xs), len(ys), len(zs), len(dst))

	vBx := hwy.Set(baseX)
	vBy := hwy.Set(baseY)
	vBz := hwy.Set(baseZ)

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vx := hwy.Load(xs[offset:])
			vy := hwy.Load(ys[offset:])
			vz := hwy.Load(zs[offset:])

			dx := hwy.Sub(vx, vBx)
			dy := hwy.Sub(vy, vBy)
			dz := hwy.Sub(vz, vBz)

			sum := hwy.Mul(dx, dx)
			sum = hwy.FMA(dy, dy, sum)
			sum = hwy.FMA(dz, dz, sum)

			hwy.Store(sum, dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			vx := hwy.MaskLoad(mask, xs[offset:])
			vy := hwy.MaskLoad(mask, ys[offset:])
			vz := hwy.MaskLoad(mask, zs[offset:])

			dx := hwy.Sub(vx, vBx)
			dy := hwy.Sub(vy, vBy)
			dz := hwy.Sub(vz, vBz)

			sum := hwy.Mul(dx, dx)
			sum = hwy.FMA(dy, dy, sum)
			sum = hwy.FMA(dz, dz, sum)

			hwy.MaskStore(mask, sum, dst[offset:])
		},
	)
}

// BatchLennardJonesForce computes the Lennard-Jones force a fixed base
// particle receives from every neighbor in xs/ys/zs whose squared
// distance is at most cutoffSq, writing the per-neighbor force components
// into fx/fy/fz (zero where the neighbor is outside the cutoff). The
// caller folds fx/fy/fz into the base particle's force; LJFunctor adds
// the entries one by one, skipping dummy rows.
//
// force(r) = 24*eps * (2*(sigma/r)^12 - (sigma/r)^6) / r^2 * (baseVec - neighborVec)
func BatchLennardJonesForce[T hwy.Floats](
	baseX, baseY, baseZ T,
	xs, ys, zs []T,
	sigma6, epsilon24, cutoffSq T,
	fx, fy, fz []T,
) {
	size := min(len(xs), len(ys), len(zs), len(fx), len(fy), len(fz))

	vBx := hwy.Set(baseX)
	vBy := hwy.Set(baseY)
	vBz := hwy.Set(baseZ)
	vSigma6 := hwy.Set(sigma6)
	vEps24 := hwy.Set(epsilon24)
	vCutoffSq := hwy.Set(cutoffSq)
	vZero := hwy.Set(T(0))

	compute := func(vx, vy, vz T) (T, T, T) {
		dx := hwy.Sub(vBx, vx)
		dy := hwy.Sub(vBy, vy)
		dz := hwy.Sub(vBz, vz)

		distSq := hwy.Mul(dx, dx)
		distSq = hwy.FMA(dy, dy, distSq)
		distSq = hwy.FMA(dz, dz, distSq)

		inCutoff := hwy.Le(distSq, vCutoffSq)

		invDistSq := hwy.Div(hwy.Set(T(1)), distSq)
		lj6 := hwy.Mul(vSigma6, hwy.Mul(invDistSq, hwy.Mul(invDistSq, invDistSq)))
		lj12 := hwy.Mul(lj6, lj6)
		scalar := hwy.Mul(vEps24, hwy.Mul(hwy.Sub(hwy.Mul(hwy.Set(T(2)), lj12), lj6), invDistSq))

		rfx := hwy.IfThenElse(inCutoff, hwy.Mul(scalar, dx), vZero)
		rfy := hwy.IfThenElse(inCutoff, hwy.Mul(scalar, dy), vZero)
		rfz := hwy.IfThenElse(inCutoff, hwy.Mul(scalar, dz), vZero)
		return rfx, rfy, rfz
	}

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vx := hwy.Load(xs[offset:])
			vy := hwy.Load(ys[offset:])
			vz := hwy.Load(zs[offset:])

			rfx, rfy, rfz := compute(vx, vy, vz)

			hwy.Store(rfx, fx[offset:])
			hwy.Store(rfy, fy[offset:])
			hwy.Store(rfz, fz[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			vx := hwy.MaskLoad(mask, xs[offset:])
			vy := hwy.MaskLoad(mask, ys[offset:])
			vz := hwy.MaskLoad(mask, zs[offset:])

			rfx, rfy, rfz := compute(vx, vy, vz)

			hwy.MaskStore(mask, rfx, fx[offset:])
			hwy.MaskStore(mask, rfy, fy[offset:])
			hwy.MaskStore(mask, rfz, fz[offset:])
		},
	)
}

// ReduceForceSum horizontally sums a force component column. The functors
// in this package do not call it.
func ReduceForceSum[T hwy.Floats](values []T) T {
	var sum T
	hwy.ProcessWithTail[T](len(values),
		func(offset int) {
			v := hwy.Load(values[offset:])
			sum += hwy.ReduceSum(v)
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			v := hwy.MaskLoad(mask, values[offset:])
			v = hwy.IfThenElse(mask, v, hwy.Set(T(0)))
			sum += hwy.ReduceSum(v)
		},
	)
	return sum
}
