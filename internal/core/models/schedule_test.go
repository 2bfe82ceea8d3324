package models

import "testing"

func fourTeamSchedule() Schedule {
	return NewSchedule([]Match{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 2, StadiumID: 1, Round: 1},
		{ID: 2, HomeTeamID: 3, AwayTeamID: 4, StadiumID: 3, Round: 1},
		{ID: 3, HomeTeamID: 1, AwayTeamID: 3, StadiumID: 1, Round: 2},
		{ID: 4, HomeTeamID: 2, AwayTeamID: 4, StadiumID: 2, Round: 2},
	})
}

func TestScheduleDerivedQueries(t *testing.T) {
	s := fourTeamSchedule()

	if got := len(s.MatchesInRound(1)); got != 2 {
		t.Errorf("MatchesInRound(1) has %d matches, want 2", got)
	}
	if got := len(s.MatchesForTeam(1)); got != 2 {
		t.Errorf("MatchesForTeam(1) has %d matches, want 2", got)
	}
	if got := len(s.HomeMatches(1)); got != 2 {
		t.Errorf("HomeMatches(1) has %d matches, want 2", got)
	}
	if got := len(s.AwayMatches(1)); got != 0 {
		t.Errorf("AwayMatches(1) has %d matches, want 0", got)
	}
	if got := s.TotalRounds(); got != 2 {
		t.Errorf("TotalRounds() = %d, want 2", got)
	}
}

func TestScheduleClone(t *testing.T) {
	s := fourTeamSchedule().WithFitness(42)
	clone := s.Clone()

	if _, ok := clone.Fitness(); ok {
		t.Errorf("clone should not carry over the fitness cache")
	}

	clone.Matches[0].Round = 99
	if s.Matches[0].Round == 99 {
		t.Errorf("mutating the clone's matches should not affect the original")
	}
}

func TestScheduleFitnessCache(t *testing.T) {
	s := fourTeamSchedule()
	if _, ok := s.Fitness(); ok {
		t.Errorf("a fresh schedule should have no cached fitness")
	}

	s = s.WithFitness(10)
	f, ok := s.Fitness()
	if !ok || f != 10 {
		t.Errorf("Fitness() = %v, %v; want 10, true", f, ok)
	}

	s = s.ClearFitness()
	if _, ok := s.Fitness(); ok {
		t.Errorf("ClearFitness should drop the cache")
	}
}

func TestScheduleMatchupCounts(t *testing.T) {
	s := fourTeamSchedule()
	counts := s.MatchupCounts()
	if counts[DirectedKey{Home: 1, Away: 2}] != 1 {
		t.Errorf("expected exactly one (1,2) matchup")
	}
	if counts[DirectedKey{Home: 2, Away: 1}] != 0 {
		t.Errorf("(2,1) should not be counted from a (1,2) match")
	}
}
