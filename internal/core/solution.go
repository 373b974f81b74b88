package core

// Solution is the final output of a Solve call: a timed path per agent
// plus the runtime statistics the orchestrator collected along the way.
type Solution struct {
	Paths    []SinglePath
	Found    bool
	Cost     float64
	Flowtime float64
	Makespan float64
	Runtime  float64

	HLExpansions int
	LLSearches   int
	LLExpanded   int
}

// ComputeAggregates fills Cost, Flowtime and Makespan from Paths. Cost and
// Flowtime are both the sum of per-agent costs (sum-of-costs); Makespan is
// the maximum end time across agents.
func (s *Solution) ComputeAggregates() {
	var sum, maxEnd float64
	for _, p := range s.Paths {
		sum += p.Cost
		if end := p.EndTime(); end > maxEnd {
			maxEnd = end
		}
	}
	s.Cost = sum
	s.Flowtime = sum
	s.Makespan = maxEnd
}
