//go:build linux

package autopas

import "golang.org/x/sys/unix"

// PinWorkerAffinity binds the calling goroutine's underlying OS thread to
// the given CPU set. It is meant to be called from inside a workerPool
// worker goroutine wrapped in runtime.LockOSThread, so that the fixed
// thread count §5 requires also gets a fixed, non-migrating core mapping —
// useful once a traversal's per-slab or per-color partitioning is stable
// enough that cache locality between iterations starts to matter.
//
// This has no effect on correctness; it is purely a scheduling hint, and
// an error here should never abort a traversal.
func PinWorkerAffinity(cpus []int) error {
	var set unix.CPUSet
	set.Zero()
	for _, cpu := range cpus {
		set.Set(cpu)
	}
	return unix.SchedSetaffinity(0, &set)
}

// NumConfiguredCPUs reports the number of CPUs the calling process could
// be scheduled on, used as the default workerPool size when the caller
// doesn't specify one explicitly.
func NumConfiguredCPUs() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 1
	}
	return set.Count()
}
