package ga

import (
	"math"
	"sort"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
)

func dirKey(home, away int) models.DirectedKey {
	return models.DirectedKey{Home: home, Away: away}
}

// Constraint is the common surface both hard and soft constraints share:
// a stable name (used to key weights in Config) and whether the constraint
// is hard (an integer violation tally) or soft (a [0,100] score).
type Constraint interface {
	Name() string
	IsHard() bool
}

// HardConstraint counts structural violations in a schedule. Zero across
// every hard constraint means the schedule is feasible.
type HardConstraint interface {
	Constraint
	Violations(e *Evaluation) int
}

// SoftConstraint scores how well a schedule satisfies a soft preference, on
// a [0,100] scale where higher is better.
type SoftConstraint interface {
	Constraint
	Score(e *Evaluation) float64
}

type baseConstraint struct {
	name string
	hard bool
}

func (b baseConstraint) Name() string { return b.name }
func (b baseConstraint) IsHard() bool { return b.hard }

func newHardBase(name string) baseConstraint { return baseConstraint{name: name, hard: true} }
func newSoftBase(name string) baseConstraint { return baseConstraint{name: name, hard: false} }

// --- Hard constraints -------------------------------------------------

type allMatchupsConstraint struct{ baseConstraint }

func newAllMatchupsConstraint() *allMatchupsConstraint {
	return &allMatchupsConstraint{newHardBase(HardAllMatchups)}
}

// Violations sums |count(a,b)-1| over every ordered pair of distinct teams
// in the league, not merely those appearing in the schedule — a matchup
// absent from the schedule entirely contributes |0-1| = 1.
func (c *allMatchupsConstraint) Violations(e *Evaluation) int {
	teams := e.League.Teams
	total := 0
	for _, a := range teams {
		for _, b := range teams {
			if a.ID == b.ID {
				continue
			}
			count := e.directedCounts[dirKey(a.ID, b.ID)]
			total += abs(count - 1)
		}
	}
	return total
}

type noConsecutiveConstraint struct{ baseConstraint }

func newNoConsecutiveConstraint() *noConsecutiveConstraint {
	return &noConsecutiveConstraint{newHardBase(HardNoConsecutive)}
}

// Violations counts, for each adjacent round pair, how many unordered
// matchups appear in both rounds.
func (c *noConsecutiveConstraint) Violations(e *Evaluation) int {
	total := 0
	for r := 1; r < e.rounds; r++ {
		cur := e.unorderedByRound[r]
		next := e.unorderedByRound[r+1]
		for key := range cur {
			if next[key] {
				total++
			}
		}
	}
	return total
}

type oneMatchPerRoundConstraint struct{ baseConstraint }

func newOneMatchPerRoundConstraint() *oneMatchPerRoundConstraint {
	return &oneMatchPerRoundConstraint{newHardBase(HardOneMatchPerRound)}
}

// Violations sums |count-1| over every (team, round) pair, per spec.md's
// exact formula — this also penalises a team missing from a round
// entirely, not only a team double-booked in one.
func (c *oneMatchPerRoundConstraint) Violations(e *Evaluation) int {
	total := 0
	for _, team := range e.League.Teams {
		for r := 1; r <= e.rounds; r++ {
			count := e.teamCountByRound[r][team.ID]
			total += abs(count - 1)
		}
	}
	return total
}

type stadiumConflictConstraint struct{ baseConstraint }

func newStadiumConflictConstraint() *stadiumConflictConstraint {
	return &stadiumConflictConstraint{newHardBase(HardStadiumConflict)}
}

// Violations sums, for each round, max(0, home-uses-1) over every shared
// stadium (a stadium that is more than one team's home ground).
func (c *stadiumConflictConstraint) Violations(e *Evaluation) int {
	shared := e.League.SharedStadiums()
	total := 0
	for r := 1; r <= e.rounds; r++ {
		byStadium := e.homeStadiumUseByRound[r]
		for stadiumID := range shared {
			uses := byStadium[stadiumID]
			if uses > 1 {
				total += uses - 1
			}
		}
	}
	return total
}

type correctStadiumConstraint struct{ baseConstraint }

func newCorrectStadiumConstraint() *correctStadiumConstraint {
	return &correctStadiumConstraint{newHardBase(HardCorrectStadium)}
}

// Violations counts matches whose stadium is not the home team's home
// stadium.
func (c *correctStadiumConstraint) Violations(e *Evaluation) int {
	total := 0
	for _, m := range e.Schedule.Matches {
		if m.StadiumID != e.League.HomeStadiumOf(m.HomeTeamID) {
			total++
		}
	}
	return total
}

type totalMatchesConstraint struct{ baseConstraint }

func newTotalMatchesConstraint() *totalMatchesConstraint {
	return &totalMatchesConstraint{newHardBase(HardTotalMatches)}
}

func (c *totalMatchesConstraint) Violations(e *Evaluation) int {
	return abs(len(e.Schedule.Matches) - e.League.TotalMatches())
}

type matchesPerRoundConstraint struct{ baseConstraint }

func newMatchesPerRoundConstraint() *matchesPerRoundConstraint {
	return &matchesPerRoundConstraint{newHardBase(HardMatchesPerRound)}
}

func (c *matchesPerRoundConstraint) Violations(e *Evaluation) int {
	total := 0
	for r := 1; r <= e.rounds; r++ {
		total += abs(len(e.matchesByRound[r]) - e.matchesPerRound)
	}
	return total
}

// --- Soft constraints ---------------------------------------------------

type homeAwayBalanceConstraint struct{ baseConstraint }

func newHomeAwayBalanceConstraint() *homeAwayBalanceConstraint {
	return &homeAwayBalanceConstraint{newSoftBase(SoftHomeAwayBalance)}
}

// Score averages, over every team, 100 minus 5 per unit that the longest
// consecutive home or away run exceeds 3 rounds.
func (c *homeAwayBalanceConstraint) Score(e *Evaluation) float64 {
	teams := e.teamIDs()
	if len(teams) == 0 {
		return 100
	}
	total := 0.0
	for _, team := range teams {
		total += homeAwayScoreForTeam(e, team)
	}
	return total / float64(len(teams))
}

func homeAwayScoreForTeam(e *Evaluation, team int) float64 {
	type ro struct {
		round  int
		isHome bool
	}
	var seq []ro
	for _, m := range e.Schedule.Matches {
		if m.HomeTeamID == team {
			seq = append(seq, ro{round: m.Round, isHome: true})
		} else if m.AwayTeamID == team {
			seq = append(seq, ro{round: m.Round, isHome: false})
		}
	}
	sort.Slice(seq, func(i, j int) bool { return seq[i].round < seq[j].round })

	longestHome, longestAway := 0, 0
	curHome, curAway := 0, 0
	for _, r := range seq {
		if r.isHome {
			curHome++
			curAway = 0
		} else {
			curAway++
			curHome = 0
		}
		if curHome > longestHome {
			longestHome = curHome
		}
		if curAway > longestAway {
			longestAway = curAway
		}
	}
	worst := longestHome
	if longestAway > worst {
		worst = longestAway
	}
	score := 100.0 - 5.0*float64(maxInt(0, worst-3))
	return math.Max(0, score)
}

type travelDistanceConstraint struct{ baseConstraint }

func newTravelDistanceConstraint() *travelDistanceConstraint {
	return &travelDistanceConstraint{newSoftBase(SoftTravelDistance)}
}

// expectedTravelPerMatch is the assumed average one-way travel distance (in
// kilometres) that anchors the travel_distance soft constraint's acceptance
// threshold E. The source this was distilled from hard-codes E to 182000
// for its N=14 league; that value is exactly 2*500*(N*(N-1)) for N=14, so
// the threshold here is expressed generically in terms of N rather than as
// a magic constant, while still reproducing the anchor exactly at N=14.
const expectedTravelPerMatch = 500

func (c *travelDistanceConstraint) Score(e *Evaluation) float64 {
	total := 0.0
	for _, m := range e.Schedule.Matches {
		home, ok := e.League.Team(m.HomeTeamID)
		if !ok {
			continue
		}
		away, ok := e.League.Team(m.AwayTeamID)
		if !ok {
			continue
		}
		total += 2 * e.League.Distance(away.City, home.City)
	}

	n := e.League.N()
	expected := 2 * expectedTravelPerMatch * float64(n*(n-1))
	if expected == 0 {
		return 100
	}
	if total <= expected {
		return 100
	}
	score := 100 - 50*(total-expected)/expected
	return math.Max(0, score)
}

type competitiveBalanceConstraint struct{ baseConstraint }

func newCompetitiveBalanceConstraint() *competitiveBalanceConstraint {
	return &competitiveBalanceConstraint{newSoftBase(SoftCompetitiveBalance)}
}

// Score averages, over every team, 100 minus 5 per sliding window of 3
// consecutive opponents (in round order) that all share one region.
func (c *competitiveBalanceConstraint) Score(e *Evaluation) float64 {
	teams := e.teamIDs()
	if len(teams) == 0 {
		return 100
	}
	total := 0.0
	for _, team := range teams {
		total += competitiveBalanceScoreForTeam(e, team)
	}
	return total / float64(len(teams))
}

func competitiveBalanceScoreForTeam(e *Evaluation, team int) float64 {
	type ro struct {
		round    int
		opponent int
	}
	var seq []ro
	for _, m := range e.Schedule.Matches {
		if opp, ok := m.Opponent(team); ok {
			seq = append(seq, ro{round: m.Round, opponent: opp})
		}
	}
	sort.Slice(seq, func(i, j int) bool { return seq[i].round < seq[j].round })

	violations := 0
	for i := 0; i+2 < len(seq); i++ {
		r1 := regionOfOpponent(e, seq[i].opponent)
		r2 := regionOfOpponent(e, seq[i+1].opponent)
		r3 := regionOfOpponent(e, seq[i+2].opponent)
		if r1 == r2 && r2 == r3 {
			violations++
		}
	}
	score := 100.0 - 5.0*float64(violations)
	return math.Max(0, score)
}

func regionOfOpponent(e *Evaluation, teamID int) string {
	team, ok := e.League.Team(teamID)
	if !ok {
		return string(e.League.RegionOf(""))
	}
	return string(e.League.RegionOf(team.City))
}

type restDaysFairnessConstraint struct{ baseConstraint }

func newRestDaysFairnessConstraint() *restDaysFairnessConstraint {
	return &restDaysFairnessConstraint{newSoftBase(SoftRestDaysFairness)}
}

// Score averages, over every team, 100 minus 5 per adjacent gap greater
// than 1 round between that team's consecutive appearances.
func (c *restDaysFairnessConstraint) Score(e *Evaluation) float64 {
	teams := e.teamIDs()
	if len(teams) == 0 {
		return 100
	}
	total := 0.0
	for _, team := range teams {
		total += restDaysScoreForTeam(e, team)
	}
	return total / float64(len(teams))
}

func restDaysScoreForTeam(e *Evaluation, team int) float64 {
	rounds := append([]int(nil), e.roundsByTeam[team]...)
	if len(rounds) < 2 {
		return 100
	}
	violations := 0
	for i := 1; i < len(rounds); i++ {
		if rounds[i]-rounds[i-1] > 1 {
			violations++
		}
	}
	return math.Max(0, 100.0-5.0*float64(violations))
}

type derbyDistributionConstraint struct{ baseConstraint }

func newDerbyDistributionConstraint() *derbyDistributionConstraint {
	return &derbyDistributionConstraint{newSoftBase(SoftDerbyDistribution)}
}

// Score starts at 100 and subtracts 10 for every adjacent pair of derby
// rounds (across every derby pairing, pooled and sorted together) that are
// fewer than 3 rounds apart. A league with no derby pairs scores 100.
func (c *derbyDistributionConstraint) Score(e *Evaluation) float64 {
	if len(e.League.DerbyPairs) == 0 {
		return 100
	}
	var rounds []int
	for _, m := range e.Schedule.Matches {
		if e.League.IsDerby(m.HomeTeamID, m.AwayTeamID) {
			rounds = append(rounds, m.Round)
		}
	}
	if len(rounds) < 2 {
		return 100
	}
	sort.Ints(rounds)
	violations := 0
	for i := 1; i < len(rounds); i++ {
		if rounds[i]-rounds[i-1] < 3 {
			violations++
		}
	}
	return math.Max(0, 100.0-10.0*float64(violations))
}

// DefaultHardConstraints returns the seven hard constraints in the order
// they are presented in the specification.
func DefaultHardConstraints() []HardConstraint {
	return []HardConstraint{
		newAllMatchupsConstraint(),
		newNoConsecutiveConstraint(),
		newOneMatchPerRoundConstraint(),
		newStadiumConflictConstraint(),
		newCorrectStadiumConstraint(),
		newTotalMatchesConstraint(),
		newMatchesPerRoundConstraint(),
	}
}

// DefaultSoftConstraints returns the five soft constraints in the order
// they are presented in the specification.
func DefaultSoftConstraints() []SoftConstraint {
	return []SoftConstraint{
		newHomeAwayBalanceConstraint(),
		newTravelDistanceConstraint(),
		newCompetitiveBalanceConstraint(),
		newRestDaysFairnessConstraint(),
		newDerbyDistributionConstraint(),
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
