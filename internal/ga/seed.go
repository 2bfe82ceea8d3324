package ga

import (
	"math/rand"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
)

// SeedFunc produces one structurally-diverse candidate Schedule. A seeder
// may leave I3/I4 violated (round imbalance, a team double-booked or
// missing from a round) — those are repaired downstream. It must never
// violate I5: every match's stadium is the home team's home stadium.
type SeedFunc func(league *models.League, rng *rand.Rand) models.Schedule

// strategyOrder is the canonical, deterministic ordering of seeder
// strategies used when splitting a population across Config.InitStrategies
// shares — the last strategy in this order absorbs the integer-division
// remainder, per the mixing policy.
var strategyOrder = []string{StrategyRandom, StrategyRoundRobin, StrategyBalanced, StrategyStadiumAware}

var seederRegistry = map[string]SeedFunc{
	StrategyRandom:       SeedRandom,
	StrategyRoundRobin:   SeedRoundRobin,
	StrategyBalanced:     SeedBalanced,
	StrategyStadiumAware: SeedStadiumAware,
}

// allDirectedMatches enumerates every ordered pair (a,b), a != b, across
// league's teams as an unscheduled Match (round 0, stadium = a's home
// stadium).
func allDirectedMatches(league *models.League) []models.Match {
	teams := league.Teams
	matches := make([]models.Match, 0, len(teams)*(len(teams)-1))
	for _, a := range teams {
		for _, b := range teams {
			if a.ID == b.ID {
				continue
			}
			matches = append(matches, models.Match{
				HomeTeamID: a.ID,
				AwayTeamID: b.ID,
				StadiumID:  a.HomeStadium,
				Round:      0,
			})
		}
	}
	return matches
}

func shuffleMatches(rng *rand.Rand, matches []models.Match) {
	rng.Shuffle(len(matches), func(i, j int) { matches[i], matches[j] = matches[j], matches[i] })
}

// SeedRandom enumerates all directed matchups, shuffles them, then scans
// forward assigning each to the current round so long as neither of its
// teams is already playing in that round; once a round holds N/2 matches it
// advances. Matches that cannot be placed under this single greedy pass are
// dropped — the repairer reintroduces them in its first phase.
func SeedRandom(league *models.League, rng *rand.Rand) models.Schedule {
	pool := allDirectedMatches(league)
	shuffleMatches(rng, pool)

	rounds := league.Rounds()
	perRound := league.MatchesPerRound()

	out := make([]models.Match, 0, len(pool))
	round := 1
	countInRound := 0
	busy := make(map[int]bool)

	for _, m := range pool {
		if round > rounds {
			break
		}
		if countInRound == perRound {
			round++
			countInRound = 0
			busy = make(map[int]bool)
			if round > rounds {
				break
			}
		}
		if busy[m.HomeTeamID] || busy[m.AwayTeamID] {
			continue
		}
		m.Round = round
		busy[m.HomeTeamID] = true
		busy[m.AwayTeamID] = true
		countInRound++
		out = append(out, m)
	}

	return models.NewSchedule(out)
}

// SeedRoundRobin is the classic circle-method double round-robin: team 0 is
// fixed, the remaining N-1 positions rotate one step each round. Round
// parity decides which side of each pair is home in the first leg; the
// second leg mirrors every first-leg match with home/away reversed. This
// seeder is structurally feasible by construction for even N.
func SeedRoundRobin(league *models.League, rng *rand.Rand) models.Schedule {
	n := league.N()
	if n < 2 || n%2 != 0 {
		return models.NewSchedule(nil)
	}

	positions := make([]int, n)
	for i, t := range league.Teams {
		positions[i] = t.ID
	}

	firstLeg := make([]models.Match, 0, n*(n-1)/2)

	for round := 1; round <= n-1; round++ {
		for i := 0; i < n/2; i++ {
			left := positions[i]
			right := positions[n-1-i]

			var home, away int
			if round%2 == 0 {
				home, away = left, right
			} else {
				home, away = right, left
			}

			firstLeg = append(firstLeg, models.Match{
				HomeTeamID: home,
				AwayTeamID: away,
				StadiumID:  league.HomeStadiumOf(home),
				Round:      round,
			})
		}

		rotated := make([]int, n)
		rotated[0] = positions[0]
		for i := 1; i < n; i++ {
			rotated[1+(i%(n-1))] = positions[i]
		}
		positions = rotated
	}

	out := make([]models.Match, 0, n*(n-1))
	out = append(out, firstLeg...)
	for _, m := range firstLeg {
		out = append(out, models.Match{
			HomeTeamID: m.AwayTeamID,
			AwayTeamID: m.HomeTeamID,
			StadiumID:  league.HomeStadiumOf(m.AwayTeamID),
			Round:      m.Round + (n - 1),
		})
	}

	return models.NewSchedule(out)
}

// SeedBalanced gives each team an independent shuffled queue of opponents it
// still needs to host and an independent shuffled queue of opponents it
// still needs to visit, then greedily fills each round: a random half of
// the teams are "home-priority" for that round and are offered a home
// fixture first (falling back to an away fixture), the rest the reverse.
func SeedBalanced(league *models.League, rng *rand.Rand) models.Schedule {
	n := league.N()
	rounds := league.Rounds()
	perRound := league.MatchesPerRound()

	teamIDs := make([]int, n)
	for i, t := range league.Teams {
		teamIDs[i] = t.ID
	}

	remainingHome := make(map[int][]int, n) // opponents this team must still host
	remainingAway := make(map[int][]int, n) // opponents this team must still visit
	for _, t := range teamIDs {
		home := make([]int, 0, n-1)
		away := make([]int, 0, n-1)
		for _, o := range teamIDs {
			if o == t {
				continue
			}
			home = append(home, o)
			away = append(away, o)
		}
		rng.Shuffle(len(home), func(i, j int) { home[i], home[j] = home[j], home[i] })
		rng.Shuffle(len(away), func(i, j int) { away[i], away[j] = away[j], away[i] })
		remainingHome[t] = home
		remainingAway[t] = away
	}

	removeOpponent := func(list []int, opponent int) []int {
		for i, o := range list {
			if o == opponent {
				return append(list[:i], list[i+1:]...)
			}
		}
		return list
	}

	var out []models.Match

	for r := 1; r <= rounds; r++ {
		shuffledTeams := append([]int(nil), teamIDs...)
		rng.Shuffle(len(shuffledTeams), func(i, j int) { shuffledTeams[i], shuffledTeams[j] = shuffledTeams[j], shuffledTeams[i] })

		homePriority := make(map[int]bool, n/2)
		for _, t := range shuffledTeams[:n/2] {
			homePriority[t] = true
		}

		scheduled := make(map[int]bool, n)
		placed := 0

		tryHome := func(t int) bool {
			for idx, opp := range remainingHome[t] {
				if scheduled[opp] {
					continue
				}
				remainingHome[t] = append(remainingHome[t][:idx], remainingHome[t][idx+1:]...)
				remainingAway[opp] = removeOpponent(remainingAway[opp], t)
				out = append(out, models.Match{HomeTeamID: t, AwayTeamID: opp, StadiumID: league.HomeStadiumOf(t), Round: r})
				scheduled[t] = true
				scheduled[opp] = true
				return true
			}
			return false
		}
		tryAway := func(t int) bool {
			for idx, opp := range remainingAway[t] {
				if scheduled[opp] {
					continue
				}
				remainingAway[t] = append(remainingAway[t][:idx], remainingAway[t][idx+1:]...)
				remainingHome[opp] = removeOpponent(remainingHome[opp], t)
				out = append(out, models.Match{HomeTeamID: opp, AwayTeamID: t, StadiumID: league.HomeStadiumOf(opp), Round: r})
				scheduled[t] = true
				scheduled[opp] = true
				return true
			}
			return false
		}

		for _, t := range shuffledTeams {
			if scheduled[t] || placed == perRound {
				continue
			}
			var ok bool
			if homePriority[t] {
				ok = tryHome(t) || tryAway(t)
			} else {
				ok = tryAway(t) || tryHome(t)
			}
			if ok {
				placed++
			}
		}
	}

	return models.NewSchedule(out)
}

// SeedStadiumAware shuffles the full directed-matchup pool once, then for
// each round scans forward through the remaining (unused) matches and takes
// the first whose home team, away team and stadium are all still free that
// round, stopping once the round holds N/2 matches.
func SeedStadiumAware(league *models.League, rng *rand.Rand) models.Schedule {
	pool := allDirectedMatches(league)
	shuffleMatches(rng, pool)
	used := make([]bool, len(pool))

	rounds := league.Rounds()
	perRound := league.MatchesPerRound()

	var out []models.Match

	for r := 1; r <= rounds; r++ {
		occupiedTeams := make(map[int]bool)
		occupiedStadiums := make(map[int]bool)
		placed := 0

		for i := range pool {
			if placed == perRound {
				break
			}
			if used[i] {
				continue
			}
			m := pool[i]
			if occupiedTeams[m.HomeTeamID] || occupiedTeams[m.AwayTeamID] || occupiedStadiums[m.StadiumID] {
				continue
			}
			used[i] = true
			m.Round = r
			occupiedTeams[m.HomeTeamID] = true
			occupiedTeams[m.AwayTeamID] = true
			occupiedStadiums[m.StadiumID] = true
			out = append(out, m)
			placed++
		}
	}

	return models.NewSchedule(out)
}

// InitializePopulation builds a population of size popSize by mixing the
// seeders named in shares. Per-strategy counts floor to their share of
// popSize; the last strategy in the canonical strategyOrder absorbs
// whatever remainder integer division leaves behind.
func InitializePopulation(league *models.League, shares map[string]float64, popSize int, rng *rand.Rand) []models.Schedule {
	counts := make(map[string]int, len(strategyOrder))
	assigned := 0
	var last string
	for _, name := range strategyOrder {
		share, ok := shares[name]
		if !ok {
			continue
		}
		last = name
		count := int(float64(popSize) * share)
		counts[name] = count
		assigned += count
	}
	if last != "" {
		counts[last] += popSize - assigned
	}

	population := make([]models.Schedule, 0, popSize)
	for _, name := range strategyOrder {
		count := counts[name]
		seeder := seederRegistry[name]
		if seeder == nil || count <= 0 {
			continue
		}
		for i := 0; i < count; i++ {
			population = append(population, seeder(league, rng))
		}
	}
	return population
}
