package autopas

// measurement records the runtime of a configuration, as fed to a
// TuningStrategy by the AutoTuner: the median of its samples, reported
// once samplesPerConfig samples have been taken (§4.8.1).
type measurement struct {
	config  Configuration
	nanos   int64
}

// TuningStrategy picks the next configuration to sample and remembers
// past samples well enough to report the best one found so far (§4.8).
// Implementations are not expected to be safe for concurrent use; the
// AutoTuner drives each one from a single goroutine.
type TuningStrategy interface {
	// Reset (re)starts a tuning phase over the given configuration space.
	Reset(space []Configuration)

	// Next returns the configuration to sample next, and false once the
	// strategy has nothing left to try this tuning phase.
	Next() (Configuration, bool)

	// Report records a completed sample's runtime for the configuration
	// most recently returned by Next.
	Report(m measurement)

	// BestSoFar returns the best configuration observed this phase, and
	// false if no sample has been reported yet.
	BestSoFar() (Configuration, bool)

	Option() TuningStrategyOption
}
