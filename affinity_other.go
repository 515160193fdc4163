//go:build !linux

package autopas

import "runtime"

// PinWorkerAffinity is a no-op outside Linux; core correctness never
// depends on it.
func PinWorkerAffinity(cpus []int) error { return nil }

// NumConfiguredCPUs falls back to runtime.NumCPU where no OS-level
// affinity query is available.
func NumConfiguredCPUs() int { return runtime.NumCPU() }
