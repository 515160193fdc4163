package autopas

import (
	"runtime"
	"sync"
)

// workerPool is a fixed-size goroutine pool shared by every traversal and
// by bulk data-layout conversion. The number of worker threads is fixed
// at process start (§5): there is no task stealing from user code into
// the core, and nothing in the core spawns unbounded goroutines per call.
//
// Grounded on the job-channel-plus-WaitGroup-barrier pool in
// other_examples/Distortions81-Acoustic-Space-Rendering__worker.go,
// generalized from render tiles to index ranges (colors, slabs, cell
// indices).
type workerPool struct {
	numWorkers int
	numCPUs    int
}

// newWorkerPool returns a pool with the given fixed number of workers. A
// value <= 1 runs everything on the caller's goroutine with no pool at
// all, which keeps single-threaded test runs deterministic.
func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &workerPool{numWorkers: numWorkers, numCPUs: NumConfiguredCPUs()}
}

// pinWorker locks the calling goroutine to its OS thread and asks the
// scheduler to keep that thread on worker index's CPU, per the fixed
// thread-count/fixed-core-mapping design in affinity_linux.go. Pinning is
// best-effort: a failure is never surfaced, since it only affects cache
// locality between iterations, not correctness.
func (p *workerPool) pinWorker(workerIdx int) {
	if p.numCPUs <= 0 {
		return
	}
	runtime.LockOSThread()
	_ = PinWorkerAffinity([]int{workerIdx % p.numCPUs})
}

// forEach calls fn(i) for every i in [0,n), distributed across the pool's
// workers, and blocks until every call has returned. C08 colors, the
// Newton3-off Verlet AoS pass and every bulk layout conversion go through
// this barrier; forEachIndexed and the sliced traversal's per-slab
// goroutines are the other places the core fans out.
func (p *workerPool) forEach(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	if p.numWorkers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + p.numWorkers - 1) / p.numWorkers
	worker := 0
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(lo, hi, idx int) {
			defer wg.Done()
			p.pinWorker(idx)
			defer runtime.UnlockOSThread()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(start, end, worker)
		worker++
	}
	wg.Wait()
}

// forEachIndexed is like forEach but hands each worker its partition
// bounds directly, so one call covers a whole contiguous index range. The
// Newton3-off Verlet SoA pass uses it to give each SoAFunctorVerlet call
// one [lo,hi) range.
func (p *workerPool) forEachIndexed(n int, fn func(lo, hi, slabIdx int)) {
	if n == 0 {
		return
	}
	workers := p.numWorkers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n, 0)
		return
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	slab := 0
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(lo, hi, idx int) {
			defer wg.Done()
			p.pinWorker(idx)
			defer runtime.UnlockOSThread()
			fn(lo, hi, idx)
		}(start, end, slab)
		slab++
	}
	wg.Wait()
}
