package ga

import (
	"sort"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
)

// Evaluation precomputes every draw-wide structure the hard and soft
// constraints need, once per call to Evaluator.Evaluate, so that the twelve
// constraints below reuse them in O(1) instead of each re-scanning the
// match slice — the same amortization the teacher's ConstraintEngine
// performs in AnalyzeDraw.
type Evaluation struct {
	League   *models.League
	Schedule models.Schedule

	rounds          int
	matchesPerRound int

	matchesByRound        map[int][]models.Match
	teamCountByRound       map[int]map[int]int
	roundsByTeam          map[int][]int
	directedCounts        map[models.DirectedKey]int
	unorderedByRound      map[int]map[models.UnorderedKey]bool
	homeStadiumUseByRound map[int]map[int]int
}

// NewEvaluation builds an Evaluation for schedule against league. This is
// the single pass every constraint call amortizes against.
func NewEvaluation(league *models.League, schedule models.Schedule) *Evaluation {
	e := &Evaluation{
		League:                league,
		Schedule:              schedule,
		rounds:                league.Rounds(),
		matchesPerRound:       league.MatchesPerRound(),
		matchesByRound:        make(map[int][]models.Match),
		teamCountByRound:      make(map[int]map[int]int),
		roundsByTeam:          make(map[int][]int),
		directedCounts:        make(map[models.DirectedKey]int, len(schedule.Matches)),
		unorderedByRound:      make(map[int]map[models.UnorderedKey]bool),
		homeStadiumUseByRound: make(map[int]map[int]int),
	}

	for _, m := range schedule.Matches {
		e.matchesByRound[m.Round] = append(e.matchesByRound[m.Round], m)

		if e.teamCountByRound[m.Round] == nil {
			e.teamCountByRound[m.Round] = make(map[int]int)
		}
		e.teamCountByRound[m.Round][m.HomeTeamID]++
		e.teamCountByRound[m.Round][m.AwayTeamID]++

		e.roundsByTeam[m.HomeTeamID] = append(e.roundsByTeam[m.HomeTeamID], m.Round)
		e.roundsByTeam[m.AwayTeamID] = append(e.roundsByTeam[m.AwayTeamID], m.Round)

		e.directedCounts[m.DirectedKey()]++

		if e.unorderedByRound[m.Round] == nil {
			e.unorderedByRound[m.Round] = make(map[models.UnorderedKey]bool)
		}
		e.unorderedByRound[m.Round][m.UnorderedKey()] = true

		if e.homeStadiumUseByRound[m.Round] == nil {
			e.homeStadiumUseByRound[m.Round] = make(map[int]int)
		}
		e.homeStadiumUseByRound[m.Round][m.StadiumID]++
	}

	for team := range e.roundsByTeam {
		sort.Ints(e.roundsByTeam[team])
	}

	return e
}

// teamIDs returns every team id appearing in the schedule, in ascending
// order, for constraints that need to iterate "every team".
func (e *Evaluation) teamIDs() []int {
	seen := make(map[int]bool)
	for _, m := range e.Schedule.Matches {
		seen[m.HomeTeamID] = true
		seen[m.AwayTeamID] = true
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
