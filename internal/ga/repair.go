package ga

import (
	"math/rand"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
)

// Repairer restores structural feasibility to a schedule via four
// fixed-order phases, each bounded by maxIterations. A phase is not
// required to reach zero violations; later phases may even reintroduce
// violations an earlier phase fixed. GA selection pressure is relied upon
// to finish the job across generations.
type Repairer struct {
	maxIterations int
}

// NewRepairer builds a Repairer that runs each phase for at most
// maxIterations passes.
func NewRepairer(maxIterations int) *Repairer {
	if maxIterations < 1 {
		maxIterations = 1
	}
	return &Repairer{maxIterations: maxIterations}
}

// Repair runs all four phases, in order, against schedule and returns a new,
// more-feasible schedule. The input is not modified.
func (r *Repairer) Repair(league *models.League, schedule models.Schedule, rng *rand.Rand) models.Schedule {
	s := schedule.Clone()
	s = r.ensureAllMatchups(league, s, rng)
	s = r.fixOneMatchPerRound(league, s, rng)
	s = r.fixNoConsecutiveOpponents(league, s, rng)
	s = r.fixStadiumConflicts(league, s, rng)
	return s
}

// QuickRepair runs only phase 2 (one_match_per_round) — the cheap pass the
// driver applies to every offspring every generation.
func (r *Repairer) QuickRepair(league *models.League, schedule models.Schedule, rng *rand.Rand) models.Schedule {
	s := schedule.Clone()
	return r.fixOneMatchPerRound(league, s, rng)
}

// ensureAllMatchups mints a new match for every directed matchup missing
// from the schedule, at a random round and the home team's home stadium.
// Surplus matchups are left for fitness pressure to select against.
func (r *Repairer) ensureAllMatchups(league *models.League, s models.Schedule, rng *rand.Rand) models.Schedule {
	rounds := league.Rounds()
	counts := s.MatchupCounts()

	for _, a := range league.Teams {
		for _, b := range league.Teams {
			if a.ID == b.ID {
				continue
			}
			key := models.DirectedKey{Home: a.ID, Away: b.ID}
			if counts[key] > 0 {
				continue
			}
			s.Matches = append(s.Matches, models.Match{
				HomeTeamID: a.ID,
				AwayTeamID: b.ID,
				StadiumID:  a.HomeStadium,
				Round:      rng.Intn(rounds) + 1,
			})
			counts[key] = 1
		}
	}
	return s
}

func teamCountsByRound(s models.Schedule) map[int]map[int]int {
	byRound := make(map[int]map[int]int)
	for _, m := range s.Matches {
		if byRound[m.Round] == nil {
			byRound[m.Round] = make(map[int]int)
		}
		byRound[m.Round][m.HomeTeamID]++
		byRound[m.Round][m.AwayTeamID]++
	}
	return byRound
}

// fixOneMatchPerRound repeatedly finds a team double-booked in some round
// and relocates one of its extra matches to a round where neither of its
// teams currently plays (or a uniformly random round if no such round
// exists), up to maxIterations passes.
func (r *Repairer) fixOneMatchPerRound(league *models.League, s models.Schedule, rng *rand.Rand) models.Schedule {
	rounds := league.Rounds()

	for iter := 0; iter < r.maxIterations; iter++ {
		byRound := teamCountsByRound(s)

		offenderIdx := -1
		for round, counts := range byRound {
			for team, count := range counts {
				if count <= 1 {
					continue
				}
				offenderIdx = findSecondOccurrence(s, round, team)
				if offenderIdx >= 0 {
					break
				}
			}
			if offenderIdx >= 0 {
				break
			}
		}
		if offenderIdx < 0 {
			break
		}

		m := s.Matches[offenderIdx]
		target := -1
		for cand := 1; cand <= rounds; cand++ {
			occ := byRound[cand]
			if occ[m.HomeTeamID] == 0 && occ[m.AwayTeamID] == 0 {
				target = cand
				break
			}
		}
		if target < 0 {
			target = rng.Intn(rounds) + 1
		}
		s.Matches[offenderIdx].Round = target
	}
	return s
}

func findSecondOccurrence(s models.Schedule, round, team int) int {
	seen := false
	for i, m := range s.Matches {
		if m.Round != round || !m.HasTeam(team) {
			continue
		}
		if seen {
			return i
		}
		seen = true
	}
	return -1
}

// fixNoConsecutiveOpponents repeatedly finds an unordered matchup appearing
// in two adjacent rounds and relocates the later occurrence to a round at
// least two rounds after the earlier one (or a uniformly random round if no
// such round exists), up to maxIterations passes.
func (r *Repairer) fixNoConsecutiveOpponents(league *models.League, s models.Schedule, rng *rand.Rand) models.Schedule {
	rounds := league.Rounds()

	for iter := 0; iter < r.maxIterations; iter++ {
		offenderIdx := -1
		offenderRound := 0
		for rr := 1; rr < rounds; rr++ {
			cur := roundKeys(s, rr)
			next := roundKeys(s, rr+1)
			for key := range cur {
				if next[key] {
					offenderIdx = findMatchByRoundAndKey(s, rr+1, key)
					offenderRound = rr
					break
				}
			}
			if offenderIdx >= 0 {
				break
			}
		}
		if offenderIdx < 0 {
			break
		}

		target := -1
		if offenderRound+2 <= rounds {
			target = offenderRound + 2 + rng.Intn(rounds-(offenderRound+2)+1)
		} else {
			target = rng.Intn(rounds) + 1
		}
		s.Matches[offenderIdx].Round = target
	}
	return s
}

func roundKeys(s models.Schedule, round int) map[models.UnorderedKey]bool {
	out := make(map[models.UnorderedKey]bool)
	for _, m := range s.Matches {
		if m.Round == round {
			out[m.UnorderedKey()] = true
		}
	}
	return out
}

func findMatchByRoundAndKey(s models.Schedule, round int, key models.UnorderedKey) int {
	for i, m := range s.Matches {
		if m.Round == round && m.UnorderedKey() == key {
			return i
		}
	}
	return -1
}

// fixStadiumConflicts repeatedly finds a round in which a shared stadium
// hosts more than one home match and relocates the extras to a round where
// the stadium and both teams are free (or a uniformly random round if no
// such round exists), up to maxIterations passes.
func (r *Repairer) fixStadiumConflicts(league *models.League, s models.Schedule, rng *rand.Rand) models.Schedule {
	rounds := league.Rounds()
	shared := league.SharedStadiums()
	if len(shared) == 0 {
		return s
	}

	for iter := 0; iter < r.maxIterations; iter++ {
		stadiumUseByRound := make(map[int]map[int][]int) // round -> stadiumID -> match indices
		for i, m := range s.Matches {
			if stadiumUseByRound[m.Round] == nil {
				stadiumUseByRound[m.Round] = make(map[int][]int)
			}
			stadiumUseByRound[m.Round][m.StadiumID] = append(stadiumUseByRound[m.Round][m.StadiumID], i)
		}

		offenderIdx := -1
		for round, byStadium := range stadiumUseByRound {
			for stadiumID, idxs := range byStadium {
				if _, isShared := shared[stadiumID]; !isShared {
					continue
				}
				if len(idxs) > 1 {
					offenderIdx = idxs[1]
					_ = round
					break
				}
			}
			if offenderIdx >= 0 {
				break
			}
		}
		if offenderIdx < 0 {
			break
		}

		m := s.Matches[offenderIdx]
		target := -1
		for cand := 1; cand <= rounds; cand++ {
			if stadiumUseByRound[cand] != nil && len(stadiumUseByRound[cand][m.StadiumID]) > 0 {
				continue
			}
			teamsBusy := false
			for _, idxs := range stadiumUseByRound[cand] {
				for _, idx := range idxs {
					if s.Matches[idx].HasTeam(m.HomeTeamID) || s.Matches[idx].HasTeam(m.AwayTeamID) {
						teamsBusy = true
						break
					}
				}
			}
			if teamsBusy {
				continue
			}
			target = cand
			break
		}
		if target < 0 {
			target = rng.Intn(rounds) + 1
		}
		s.Matches[offenderIdx].Round = target
	}
	return s
}
