package models

// Schedule is an ordered sequence of Matches plus an optional cached fitness
// value. The order of the underlying slice carries no meaning — a Schedule
// is conceptually a multiset of matches keyed by (directed matchup, round) —
// but Go slices are what the GA clones and mutates in place, so order is
// preserved for allocation-efficiency reasons only.
type Schedule struct {
	Matches []Match

	fitness    float64
	hasFitness bool
}

// NewSchedule wraps matches into a Schedule with no cached fitness.
func NewSchedule(matches []Match) Schedule {
	return Schedule{Matches: matches}
}

// Fitness returns the cached fitness value and whether one has been set.
// A Schedule produced by a seeder or operator has no cached fitness until
// the evaluator scores it.
func (s Schedule) Fitness() (float64, bool) {
	return s.fitness, s.hasFitness
}

// WithFitness returns a copy of the schedule with the given fitness cached.
func (s Schedule) WithFitness(f float64) Schedule {
	s.fitness = f
	s.hasFitness = true
	return s
}

// ClearFitness returns a copy of the schedule with no cached fitness. Used
// whenever an operator produces a new individual from this one — the cache
// is only valid for the exact match sequence it was computed for.
func (s Schedule) ClearFitness() Schedule {
	s.fitness = 0
	s.hasFitness = false
	return s
}

// Clone returns a deep copy: a new backing array for Matches (Match itself
// has no reference fields, so a value copy of each element suffices) with
// the fitness cache cleared, since the clone is destined to be mutated by an
// operator before it is re-evaluated.
func (s Schedule) Clone() Schedule {
	matches := make([]Match, len(s.Matches))
	copy(matches, s.Matches)
	return Schedule{Matches: matches}
}

// MatchesInRound returns every match scheduled in round r, in slice order.
func (s Schedule) MatchesInRound(r int) []Match {
	var out []Match
	for _, m := range s.Matches {
		if m.Round == r {
			out = append(out, m)
		}
	}
	return out
}

// MatchesForTeam returns every match involving teamID, in slice order.
func (s Schedule) MatchesForTeam(teamID int) []Match {
	var out []Match
	for _, m := range s.Matches {
		if m.HasTeam(teamID) {
			out = append(out, m)
		}
	}
	return out
}

// HomeMatches returns the matches in which teamID plays at home.
func (s Schedule) HomeMatches(teamID int) []Match {
	var out []Match
	for _, m := range s.Matches {
		if m.HomeTeamID == teamID {
			out = append(out, m)
		}
	}
	return out
}

// AwayMatches returns the matches in which teamID plays away.
func (s Schedule) AwayMatches(teamID int) []Match {
	var out []Match
	for _, m := range s.Matches {
		if m.AwayTeamID == teamID {
			out = append(out, m)
		}
	}
	return out
}

// TotalRounds returns the highest round number present in the schedule, or 0
// if every match is unassigned.
func (s Schedule) TotalRounds() int {
	max := 0
	for _, m := range s.Matches {
		if m.Round > max {
			max = m.Round
		}
	}
	return max
}

// MatchupCounts tallies how many times each directed matchup (home, away)
// appears in the schedule.
func (s Schedule) MatchupCounts() map[DirectedKey]int {
	counts := make(map[DirectedKey]int, len(s.Matches))
	for _, m := range s.Matches {
		counts[m.DirectedKey()]++
	}
	return counts
}
