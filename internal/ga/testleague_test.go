package ga

import (
	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
)

// newTestLeague builds a small, fully-connected league of n teams (n even)
// with one shared stadium so stadium_conflict has something to fire on, a
// non-trivial distance matrix, one derby pair, and a region assignment — the
// union of everything the twelve constraints look at.
func newTestLeague(n int) *models.League {
	var teams []models.Team
	var stadiums []models.Stadium

	const sharedStadiumID = 100
	stadiums = append(stadiums, models.Stadium{ID: sharedStadiumID, Name: "Shared Park", City: "Alpha", Capacity: 10000, Surface: models.SurfaceNatural})

	for i := 1; i <= n; i++ {
		stadiumID := 1000 + i
		city := cityFor(i)
		if i <= 2 {
			// First two teams share a stadium so stadium_conflict has a
			// nonzero denominator to test against.
			stadiumID = sharedStadiumID
		} else {
			stadiums = append(stadiums, models.Stadium{ID: stadiumID, Name: city + " Ground", City: city, Capacity: 20000, Surface: models.SurfaceNatural})
		}
		teams = append(teams, models.Team{ID: i, Name: "Team " + city, ShortName: city[:3], City: city, HomeStadium: stadiumID})
	}

	distances := make(map[models.CityPair]float64)
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			distances[cityPairOf(cityFor(i), cityFor(j))] = float64(100 * (j - i))
		}
	}

	var derbies []models.TeamPair
	if n >= 2 {
		derbies = append(derbies, models.TeamPair{A: 1, B: 2})
	}

	regions := make(map[string]models.Region)
	for i := 1; i <= n; i++ {
		switch i % 3 {
		case 0:
			regions[cityFor(i)] = models.RegionNorth
		case 1:
			regions[cityFor(i)] = models.RegionCentral
		default:
			regions[cityFor(i)] = models.RegionSouth
		}
	}

	return models.NewLeague(teams, stadiums, distances, derbies, regions, nil)
}

func cityFor(i int) string {
	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel",
		"India", "Juliet", "Kilo", "Lima", "Mike", "November", "Oscar", "Papa"}
	if i-1 < len(names) {
		return names[i-1]
	}
	return "City" + string(rune('A'+i))
}

func cityPairOf(a, b string) models.CityPair {
	if a <= b {
		return models.CityPair{A: a, B: b}
	}
	return models.CityPair{A: b, B: a}
}
