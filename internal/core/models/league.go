package models

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CityPair is an unordered pair of city names, used as a distance-matrix
// key. Always stored with the lexicographically smaller name first.
type CityPair struct {
	A, B string
}

func cityPair(a, b string) CityPair {
	if a <= b {
		return CityPair{A: a, B: b}
	}
	return CityPair{A: b, B: a}
}

// TeamPair is an unordered pair of team ids, used to key the derby set.
// Always stored with the smaller id first.
type TeamPair struct {
	A, B int
}

func teamPair(a, b int) TeamPair {
	if a <= b {
		return TeamPair{A: a, B: b}
	}
	return TeamPair{A: b, B: a}
}

// League bundles the immutable, caller-supplied inputs an optimizer run
// needs: the team roster, the stadiums they play at, inter-city distances,
// the distinguished derby pairs, and the city->region classification used by
// the competitive_balance soft constraint. A League is validated once at
// construction and is never mutated afterwards; optimizer runs only read it.
type League struct {
	Teams      []Team
	Stadiums   []Stadium
	Distances  map[CityPair]float64
	DerbyPairs map[TeamPair]struct{}
	Regions    map[string]Region

	// SpecialDates is opaque to the core — it is accepted here only so
	// downstream, out-of-core schedulers that attach calendar dates to
	// rounds have somewhere to read it from. The GA never inspects it.
	SpecialDates []string

	teamsByID    map[int]Team
	stadiumsByID map[int]Stadium
}

// NewLeague builds a League and computes its derived indices. Call Validate
// before using it for optimization; NewLeague itself does not validate so
// that callers may inspect a partially-built League while debugging.
func NewLeague(teams []Team, stadiums []Stadium, distances map[CityPair]float64, derbyPairs []TeamPair, regions map[string]Region, specialDates []string) *League {
	l := &League{
		Teams:        teams,
		Stadiums:     stadiums,
		Distances:    distances,
		DerbyPairs:   make(map[TeamPair]struct{}, len(derbyPairs)),
		Regions:      regions,
		SpecialDates: specialDates,
	}
	for _, p := range derbyPairs {
		l.DerbyPairs[teamPair(p.A, p.B)] = struct{}{}
	}
	l.reindex()
	return l
}

func (l *League) reindex() {
	l.teamsByID = make(map[int]Team, len(l.Teams))
	for _, t := range l.Teams {
		l.teamsByID[t.ID] = t
	}
	l.stadiumsByID = make(map[int]Stadium, len(l.Stadiums))
	for _, s := range l.Stadiums {
		l.stadiumsByID[s.ID] = s
	}
}

// N is the number of teams in the league.
func (l *League) N() int {
	return len(l.Teams)
}

// Rounds is the number of rounds in a full double round-robin: 2*(N-1).
func (l *League) Rounds() int {
	return 2 * (l.N() - 1)
}

// MatchesPerRound is N/2, the number of simultaneous fixtures each round.
func (l *League) MatchesPerRound() int {
	return l.N() / 2
}

// TotalMatches is N*(N-1), the number of directed matchups in a complete
// double round-robin.
func (l *League) TotalMatches() int {
	return l.N() * (l.N() - 1)
}

// Team looks up a team by id. The second return is false if no such team
// exists in this league.
func (l *League) Team(id int) (Team, bool) {
	t, ok := l.teamsByID[id]
	return t, ok
}

// Stadium looks up a stadium by id. The second return is false if no such
// stadium exists in this league.
func (l *League) Stadium(id int) (Stadium, bool) {
	s, ok := l.stadiumsByID[id]
	return s, ok
}

// HomeStadiumOf returns the id of teamID's home stadium. It panics if
// teamID is not a member of this league — per the error handling design,
// the core trusts its inputs and treats an unknown id as a data-contract
// violation.
func (l *League) HomeStadiumOf(teamID int) int {
	t, ok := l.teamsByID[teamID]
	if !ok {
		panic(fmt.Sprintf("models: unknown team id %d", teamID))
	}
	return t.HomeStadium
}

// Distance returns the distance in kilometres between two cities. Missing
// pairs default to 0 — the distance matrix is supplied pre-validated per the
// external interfaces contract, so a missing entry is treated as "no
// distance recorded" rather than an error.
func (l *League) Distance(cityA, cityB string) float64 {
	if cityA == cityB {
		return 0
	}
	return l.Distances[cityPair(cityA, cityB)]
}

// IsDerby reports whether (a, b) is a distinguished derby pairing.
func (l *League) IsDerby(a, b int) bool {
	_, ok := l.DerbyPairs[teamPair(a, b)]
	return ok
}

// RegionOf classifies a city into a region, defaulting to RegionUnknown for
// any city absent from the caller-supplied assignment.
func (l *League) RegionOf(city string) Region {
	if r, ok := l.Regions[city]; ok {
		return r
	}
	return RegionUnknown
}

// SharedStadiums returns, for every stadium that is the home ground of two
// or more teams, the set of team ids sharing it. Stadiums used by exactly
// one team are omitted, per the "shared_stadiums" derived structure in the
// data model.
func (l *League) SharedStadiums() map[int][]int {
	byStadium := make(map[int][]int)
	for _, t := range l.Teams {
		byStadium[t.HomeStadium] = append(byStadium[t.HomeStadium], t.ID)
	}
	shared := make(map[int][]int)
	for stadiumID, teamIDs := range byStadium {
		if len(teamIDs) > 1 {
			shared[stadiumID] = teamIDs
		}
	}
	return shared
}

// Validate checks every structural requirement a League must satisfy before
// it can seed or optimize a schedule, aggregating every violation found
// rather than stopping at the first.
func (l *League) Validate() error {
	var result *multierror.Error

	if l.N() == 0 {
		result = multierror.Append(result, fmt.Errorf("league: no teams supplied"))
	}
	if l.N()%2 != 0 {
		result = multierror.Append(result, fmt.Errorf("league: team count must be even, got %d", l.N()))
	}

	seenTeamIDs := make(map[int]bool, len(l.Teams))
	for _, t := range l.Teams {
		if err := t.Validate(); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if seenTeamIDs[t.ID] {
			result = multierror.Append(result, fmt.Errorf("league: duplicate team id %d", t.ID))
		}
		seenTeamIDs[t.ID] = true
		if _, ok := l.stadiumsByID[t.HomeStadium]; !ok {
			result = multierror.Append(result, fmt.Errorf("team %d (%s): home stadium %d is not in the stadium list", t.ID, t.Name, t.HomeStadium))
		}
	}

	seenStadiumIDs := make(map[int]bool, len(l.Stadiums))
	for _, s := range l.Stadiums {
		if err := s.Validate(); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if seenStadiumIDs[s.ID] {
			result = multierror.Append(result, fmt.Errorf("league: duplicate stadium id %d", s.ID))
		}
		seenStadiumIDs[s.ID] = true
	}

	for pair, km := range l.Distances {
		if km < 0 {
			result = multierror.Append(result, fmt.Errorf("league: negative distance between %s and %s", pair.A, pair.B))
		}
	}

	for pair := range l.DerbyPairs {
		if _, ok := seenTeamIDs[pair.A]; !ok {
			result = multierror.Append(result, fmt.Errorf("league: derby pair references unknown team id %d", pair.A))
		}
		if _, ok := seenTeamIDs[pair.B]; !ok {
			result = multierror.Append(result, fmt.Errorf("league: derby pair references unknown team id %d", pair.B))
		}
	}

	for city, region := range l.Regions {
		switch region {
		case RegionNorth, RegionCentral, RegionSouth, RegionUnknown:
		default:
			result = multierror.Append(result, fmt.Errorf("league: city %s has unrecognised region %q", city, region))
		}
	}

	return result.ErrorOrNil()
}
