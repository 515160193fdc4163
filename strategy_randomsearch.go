package autopas

import "math/rand"

// RandomSearchStrategy draws a fixed-size random sample (without
// replacement) from the configuration space each tuning phase, trading
// exhaustiveness for a tuning phase whose length doesn't grow with the
// space (§4.8 bullet 2, "random search").
type RandomSearchStrategy struct {
	rng       *rand.Rand
	sampleSize int

	order   []int
	cursor  int
	space   []Configuration

	best      Configuration
	bestNanos int64
	bestSet   bool
}

// NewRandomSearchStrategy returns a strategy that samples up to
// sampleSize distinct configurations per tuning phase, seeded from seed.
func NewRandomSearchStrategy(sampleSize int, seed int64) *RandomSearchStrategy {
	if sampleSize < 1 {
		sampleSize = 1
	}
	return &RandomSearchStrategy{rng: rand.New(rand.NewSource(seed)), sampleSize: sampleSize}
}

func (s *RandomSearchStrategy) Option() TuningStrategyOption { return StrategyRandomSearch }

func (s *RandomSearchStrategy) Reset(space []Configuration) {
	s.space = space
	s.bestSet = false

	n := len(space)
	perm := s.rng.Perm(n)
	k := s.sampleSize
	if k > n {
		k = n
	}
	s.order = perm[:k]
	s.cursor = 0
}

func (s *RandomSearchStrategy) Next() (Configuration, bool) {
	if s.cursor >= len(s.order) {
		return Configuration{}, false
	}
	cfg := s.space[s.order[s.cursor]]
	s.cursor++
	return cfg, true
}

func (s *RandomSearchStrategy) Report(m measurement) {
	if !s.bestSet || m.nanos < s.bestNanos {
		s.best = m.config
		s.bestNanos = m.nanos
		s.bestSet = true
	}
}

func (s *RandomSearchStrategy) BestSoFar() (Configuration, bool) {
	return s.best, s.bestSet
}
