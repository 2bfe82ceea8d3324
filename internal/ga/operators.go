package ga

import (
	"math/rand"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
)

// CrossoverKind closes the set of crossover operators to the three the
// specification names.
type CrossoverKind string

const (
	CrossoverRoundSwap    CrossoverKind = "round_swap"
	CrossoverUniform      CrossoverKind = "uniform"
	CrossoverSinglePoint  CrossoverKind = "single_point"
)

// MutationKind closes the set of mutation operators to the five the
// specification names.
type MutationKind string

const (
	MutationSwapMatches    MutationKind = "swap_matches"
	MutationSwapRounds     MutationKind = "swap_rounds"
	MutationShuffleRound   MutationKind = "shuffle_round"
	MutationReverseHomeAway MutationKind = "reverse_home_away"
	MutationMoveMatch      MutationKind = "move_match"
)

var allMutationKinds = []MutationKind{
	MutationSwapMatches,
	MutationSwapRounds,
	MutationShuffleRound,
	MutationReverseHomeAway,
	MutationMoveMatch,
}

// Crossover applies the named crossover to two parents, returning two new
// offspring. Parents are never modified.
func Crossover(kind CrossoverKind, rounds int, parent1, parent2 models.Schedule, rng *rand.Rand) (models.Schedule, models.Schedule) {
	switch kind {
	case CrossoverUniform:
		return uniformCrossover(parent1, parent2, rng)
	case CrossoverSinglePoint:
		cut := rng.Intn(rounds-1) + 1
		return cutBasedCrossover(parent1, parent2, cut)
	default:
		return roundSwapCrossover(rounds, parent1, parent2, rng)
	}
}

func roundSwapCrossover(rounds int, parent1, parent2 models.Schedule, rng *rand.Rand) (models.Schedule, models.Schedule) {
	size := rng.Intn(rounds-1) + 1
	order := rng.Perm(rounds)
	inS := make(map[int]bool, size)
	for _, r := range order[:size] {
		inS[r+1] = true
	}
	return buildFromRoundSet(inS, parent1, parent2), buildFromRoundSet(inS, parent2, parent1)
}

func cutBasedCrossover(parent1, parent2 models.Schedule, cut int) (models.Schedule, models.Schedule) {
	inS := make(map[int]bool, cut)
	for r := 1; r <= cut; r++ {
		inS[r] = true
	}
	return buildFromRoundSet(inS, parent1, parent2), buildFromRoundSet(inS, parent2, parent1)
}

// buildFromRoundSet takes every match of primary whose round is in inS, then
// fills in every unordered matchup not yet used from secondary, keeping
// secondary's own round/stadium for those.
func buildFromRoundSet(inS map[int]bool, primary, secondary models.Schedule) models.Schedule {
	used := make(map[models.UnorderedKey]bool)
	out := make([]models.Match, 0, len(primary.Matches)+len(secondary.Matches))

	for _, m := range primary.Matches {
		if inS[m.Round] {
			out = append(out, m)
			used[m.UnorderedKey()] = true
		}
	}
	for _, m := range secondary.Matches {
		key := m.UnorderedKey()
		if used[key] {
			continue
		}
		used[key] = true
		out = append(out, m)
	}
	return models.NewSchedule(out)
}

func uniformCrossover(parent1, parent2 models.Schedule, rng *rand.Rand) (models.Schedule, models.Schedule) {
	map1 := make(map[models.DirectedKey]models.Match, len(parent1.Matches))
	for _, m := range parent1.Matches {
		map1[m.DirectedKey()] = m
	}
	map2 := make(map[models.DirectedKey]models.Match, len(parent2.Matches))
	for _, m := range parent2.Matches {
		map2[m.DirectedKey()] = m
	}

	keys := make(map[models.DirectedKey]bool, len(map1)+len(map2))
	for k := range map1 {
		keys[k] = true
	}
	for k := range map2 {
		keys[k] = true
	}

	off1 := make([]models.Match, 0, len(keys))
	off2 := make([]models.Match, 0, len(keys))

	for k := range keys {
		m1, ok1 := map1[k]
		m2, ok2 := map2[k]
		switch {
		case ok1 && ok2:
			if rng.Intn(2) == 0 {
				off1 = append(off1, m1)
				off2 = append(off2, m2)
			} else {
				off1 = append(off1, m2)
				off2 = append(off2, m1)
			}
		case ok1:
			off1 = append(off1, m1)
			off2 = append(off2, m1)
		default:
			off1 = append(off1, m2)
			off2 = append(off2, m2)
		}
	}

	return models.NewSchedule(off1), models.NewSchedule(off2)
}

// Mutate applies, with probability p_m, one uniformly-chosen mutation to a
// clone of schedule; otherwise it returns the clone unchanged. rounds is the
// league's total round count (R), used to bound round reassignment.
func Mutate(schedule models.Schedule, rounds int, p float64, rng *rand.Rand) models.Schedule {
	clone := schedule.Clone()
	if rng.Float64() >= p {
		return clone
	}
	kind := allMutationKinds[rng.Intn(len(allMutationKinds))]
	return applyMutation(kind, clone, rounds, rng)
}

// applyMutation mutates clone in place and returns it; it is the caller's
// responsibility to have already cloned.
func applyMutation(kind MutationKind, clone models.Schedule, rounds int, rng *rand.Rand) models.Schedule {
	switch kind {
	case MutationSwapRounds:
		mutateSwapRounds(clone, rounds, rng)
	case MutationShuffleRound:
		mutateShuffleRound(clone, rounds, rng)
	case MutationReverseHomeAway:
		mutateReverseHomeAway(clone, rng)
	case MutationMoveMatch:
		mutateMoveMatch(clone, rounds, rng)
	default:
		mutateSwapMatches(clone, rng)
	}
	return clone
}

func mutateSwapMatches(s models.Schedule, rng *rand.Rand) {
	n := len(s.Matches)
	if n < 2 {
		return
	}
	i := rng.Intn(n)
	j := rng.Intn(n)
	for j == i {
		j = rng.Intn(n)
	}
	s.Matches[i].Round, s.Matches[j].Round = s.Matches[j].Round, s.Matches[i].Round
}

func mutateSwapRounds(s models.Schedule, rounds int, rng *rand.Rand) {
	if rounds < 2 {
		return
	}
	r1 := rng.Intn(rounds) + 1
	r2 := rng.Intn(rounds) + 1
	for r2 == r1 {
		r2 = rng.Intn(rounds) + 1
	}
	for i := range s.Matches {
		switch s.Matches[i].Round {
		case r1:
			s.Matches[i].Round = r2
		case r2:
			s.Matches[i].Round = r1
		}
	}
}

func mutateShuffleRound(s models.Schedule, rounds int, rng *rand.Rand) {
	if rounds < 2 {
		return
	}
	r1 := rng.Intn(rounds) + 1
	r2 := rng.Intn(rounds) + 1
	for r2 == r1 {
		r2 = rng.Intn(rounds) + 1
	}

	idx1 := indicesInRound(s, r1)
	idx2 := indicesInRound(s, r2)
	if len(idx1) == 0 || len(idx2) == 0 {
		return
	}
	i := idx1[rng.Intn(len(idx1))]
	j := idx2[rng.Intn(len(idx2))]
	s.Matches[i].Round, s.Matches[j].Round = s.Matches[j].Round, s.Matches[i].Round
}

func indicesInRound(s models.Schedule, round int) []int {
	var out []int
	for i, m := range s.Matches {
		if m.Round == round {
			out = append(out, i)
		}
	}
	return out
}

func mutateReverseHomeAway(s models.Schedule, rng *rand.Rand) {
	n := len(s.Matches)
	if n == 0 {
		return
	}
	i := rng.Intn(n)
	m := s.Matches[i]
	for j := range s.Matches {
		if j == i {
			continue
		}
		other := s.Matches[j]
		if other.HomeTeamID == m.AwayTeamID && other.AwayTeamID == m.HomeTeamID {
			s.Matches[i].Round, s.Matches[j].Round = s.Matches[j].Round, s.Matches[i].Round
			return
		}
	}
}

func mutateMoveMatch(s models.Schedule, rounds int, rng *rand.Rand) {
	n := len(s.Matches)
	if n == 0 || rounds < 1 {
		return
	}
	i := rng.Intn(n)
	s.Matches[i].Round = rng.Intn(rounds) + 1
}
