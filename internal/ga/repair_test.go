package ga

import (
	"math/rand"
	"testing"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
)

func TestEnsureAllMatchupsFillsEveryMissingMatchup(t *testing.T) {
	league := newTestLeague(6)
	rng := rand.New(rand.NewSource(30))
	r := NewRepairer(50)

	s := models.NewSchedule([]models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, StadiumID: league.HomeStadiumOf(1), Round: 1},
	})

	out := r.ensureAllMatchups(league, s, rng)
	counts := out.MatchupCounts()
	for _, a := range league.Teams {
		for _, b := range league.Teams {
			if a.ID == b.ID {
				continue
			}
			if counts[models.DirectedKey{Home: a.ID, Away: b.ID}] < 1 {
				t.Fatalf("matchup (%d,%d) still missing after ensureAllMatchups", a.ID, b.ID)
			}
		}
	}
}

func TestFixOneMatchPerRoundEliminatesDoubleBooking(t *testing.T) {
	league := newTestLeague(6)
	rng := rand.New(rand.NewSource(31))
	r := NewRepairer(100)

	s := models.NewSchedule([]models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, StadiumID: league.HomeStadiumOf(1), Round: 1},
		{HomeTeamID: 3, AwayTeamID: 1, StadiumID: league.HomeStadiumOf(3), Round: 1}, // team 1 double-booked in round 1
	})

	out := r.fixOneMatchPerRound(league, s, rng)
	byRound := teamCountsByRound(out)
	for round, counts := range byRound {
		for team, count := range counts {
			if count > 1 {
				t.Fatalf("round %d: team %d still double-booked (count %d) after fixOneMatchPerRound", round, team, count)
			}
		}
	}
}

func TestQuickRepairOnlyFixesOneMatchPerRound(t *testing.T) {
	league := newTestLeague(6)
	rng := rand.New(rand.NewSource(32))
	r := NewRepairer(50)

	s := models.NewSchedule([]models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, StadiumID: league.HomeStadiumOf(1), Round: 1},
		{HomeTeamID: 2, AwayTeamID: 1, StadiumID: league.HomeStadiumOf(2), Round: 2}, // consecutive-opponent violation, left alone by quick_repair
	})

	out := r.QuickRepair(league, s, rng)
	e := NewEvaluation(league, out)
	if v := newNoConsecutiveConstraint().Violations(e); v == 0 {
		t.Error("expected quick_repair to leave the no_consecutive violation untouched")
	}
}

func TestFixNoConsecutiveOpponentsSeparatesRepeats(t *testing.T) {
	league := newTestLeague(6)
	rng := rand.New(rand.NewSource(33))
	r := NewRepairer(100)

	s := models.NewSchedule([]models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, StadiumID: league.HomeStadiumOf(1), Round: 1},
		{HomeTeamID: 2, AwayTeamID: 1, StadiumID: league.HomeStadiumOf(2), Round: 2},
	})

	out := r.fixNoConsecutiveOpponents(league, s, rng)
	e := NewEvaluation(league, out)
	if v := newNoConsecutiveConstraint().Violations(e); v != 0 {
		t.Errorf("no_consecutive violations after repair = %d, want 0", v)
	}
}

func TestFixStadiumConflictsSeparatesSharedStadiumUse(t *testing.T) {
	league := newTestLeague(6)
	rng := rand.New(rand.NewSource(34))
	r := NewRepairer(100)

	s := models.NewSchedule([]models.Match{
		{HomeTeamID: 1, AwayTeamID: 3, StadiumID: league.HomeStadiumOf(1), Round: 1},
		{HomeTeamID: 2, AwayTeamID: 4, StadiumID: league.HomeStadiumOf(2), Round: 1},
		{HomeTeamID: 5, AwayTeamID: 6, StadiumID: league.HomeStadiumOf(5), Round: 2},
	})

	out := r.fixStadiumConflicts(league, s, rng)
	e := NewEvaluation(league, out)
	if v := newStadiumConflictConstraint().Violations(e); v != 0 {
		t.Errorf("stadium_conflict violations after repair = %d, want 0", v)
	}
}

func TestFullRepairDrivesAllHardConstraintsToZeroFromSeedRandom(t *testing.T) {
	league := newTestLeague(8)
	rng := rand.New(rand.NewSource(35))
	s := SeedRandom(league, rng)
	r := NewRepairer(500)

	repaired := r.Repair(league, s, rng)
	e := NewEvaluation(league, repaired)
	for _, c := range DefaultHardConstraints() {
		if v := c.Violations(e); v != 0 {
			t.Errorf("%s: %d violations remain after full repair", c.Name(), v)
		}
	}
}

func TestRepairDoesNotMutateInputSchedule(t *testing.T) {
	league := newTestLeague(6)
	rng := rand.New(rand.NewSource(36))
	r := NewRepairer(50)
	s := models.NewSchedule([]models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, StadiumID: league.HomeStadiumOf(1), Round: 1},
	})
	snapshot := s.Clone()

	_ = r.Repair(league, s, rng)

	if len(s.Matches) != len(snapshot.Matches) {
		t.Fatalf("Repair must not mutate its input schedule's match slice length")
	}
	for i := range snapshot.Matches {
		if s.Matches[i] != snapshot.Matches[i] {
			t.Fatalf("Repair must not mutate its input schedule in place")
		}
	}
}
