package autopas

// FullSearchStrategy samples every configuration in the space exactly
// once, in a fixed order, and reports whichever ran fastest (§4.8 bullet
// 2, "full search").
type FullSearchStrategy struct {
	space   []Configuration
	cursor  int
	current Configuration
	have    bool

	best     Configuration
	bestNanos int64
	bestSet  bool
}

// NewFullSearchStrategy returns a strategy with an empty space; Reset
// must be called before Next.
func NewFullSearchStrategy() *FullSearchStrategy { return &FullSearchStrategy{} }

func (s *FullSearchStrategy) Option() TuningStrategyOption { return StrategyFullSearch }

func (s *FullSearchStrategy) Reset(space []Configuration) {
	s.space = space
	s.cursor = 0
	s.bestSet = false
}

func (s *FullSearchStrategy) Next() (Configuration, bool) {
	if s.cursor >= len(s.space) {
		s.have = false
		return Configuration{}, false
	}
	s.current = s.space[s.cursor]
	s.cursor++
	s.have = true
	return s.current, true
}

func (s *FullSearchStrategy) Report(m measurement) {
	if !s.bestSet || m.nanos < s.bestNanos {
		s.best = m.config
		s.bestNanos = m.nanos
		s.bestSet = true
	}
}

func (s *FullSearchStrategy) BestSoFar() (Configuration, bool) {
	return s.best, s.bestSet
}
