package models

import "testing"

func fourTeamLeague() *League {
	teams := []Team{
		{ID: 1, Name: "Hanoi", ShortName: "HAN", City: "Hanoi", HomeStadium: 1},
		{ID: 2, Name: "Saigon", ShortName: "SGN", City: "Saigon", HomeStadium: 2},
		{ID: 3, Name: "Danang", ShortName: "DAN", City: "Danang", HomeStadium: 3},
		{ID: 4, Name: "Hue", ShortName: "HUE", City: "Hue", HomeStadium: 3},
	}
	stadiums := []Stadium{
		{ID: 1, Name: "Stadium 1", City: "Hanoi", Capacity: 1000, Surface: SurfaceNatural},
		{ID: 2, Name: "Stadium 2", City: "Saigon", Capacity: 1000, Surface: SurfaceNatural},
		{ID: 3, Name: "Stadium 3", City: "Danang", Capacity: 1000, Surface: SurfaceArtificial},
	}
	distances := map[CityPair]float64{
		cityPair("Hanoi", "Saigon"): 1600,
		cityPair("Hanoi", "Danang"): 800,
		cityPair("Saigon", "Danang"): 900,
	}
	regions := map[string]Region{
		"Hanoi":  RegionNorth,
		"Saigon": RegionSouth,
		"Danang": RegionCentral,
		"Hue":    RegionCentral,
	}
	return NewLeague(teams, stadiums, distances, []TeamPair{{A: 1, B: 2}}, regions, nil)
}

func TestLeagueDerivedCounts(t *testing.T) {
	l := fourTeamLeague()
	if l.N() != 4 {
		t.Errorf("N() = %d, want 4", l.N())
	}
	if l.Rounds() != 6 {
		t.Errorf("Rounds() = %d, want 6", l.Rounds())
	}
	if l.MatchesPerRound() != 2 {
		t.Errorf("MatchesPerRound() = %d, want 2", l.MatchesPerRound())
	}
	if l.TotalMatches() != 12 {
		t.Errorf("TotalMatches() = %d, want 12", l.TotalMatches())
	}
}

func TestLeagueSharedStadiums(t *testing.T) {
	l := fourTeamLeague()
	shared := l.SharedStadiums()
	if _, ok := shared[3]; !ok {
		t.Errorf("stadium 3 is shared by teams 3 and 4, expected it in SharedStadiums()")
	}
	if _, ok := shared[1]; ok {
		t.Errorf("stadium 1 is used by only one team, should not appear in SharedStadiums()")
	}
}

func TestLeagueDistanceIsSymmetric(t *testing.T) {
	l := fourTeamLeague()
	if l.Distance("Hanoi", "Saigon") != l.Distance("Saigon", "Hanoi") {
		t.Errorf("distance lookup should be symmetric")
	}
	if l.Distance("Hanoi", "Hanoi") != 0 {
		t.Errorf("distance from a city to itself should be 0")
	}
}

func TestLeagueIsDerby(t *testing.T) {
	l := fourTeamLeague()
	if !l.IsDerby(1, 2) || !l.IsDerby(2, 1) {
		t.Errorf("(1,2) should be a derby regardless of order")
	}
	if l.IsDerby(1, 3) {
		t.Errorf("(1,3) is not a configured derby")
	}
}

func TestLeagueRegionOfDefaultsToUnknown(t *testing.T) {
	l := fourTeamLeague()
	if l.RegionOf("Hanoi") != RegionNorth {
		t.Errorf("Hanoi should be classified North")
	}
	if l.RegionOf("Nowhere") != RegionUnknown {
		t.Errorf("unrecognised city should default to Unknown")
	}
}

func TestLeagueValidateRejectsOddTeamCount(t *testing.T) {
	l := fourTeamLeague()
	l.Teams = append(l.Teams, Team{ID: 5, Name: "Extra", ShortName: "EXT", City: "Hue", HomeStadium: 3})
	l.reindex()
	if err := l.Validate(); err == nil {
		t.Errorf("expected validation error for an odd number of teams")
	}
}

func TestLeagueValidateRejectsUnknownHomeStadium(t *testing.T) {
	l := fourTeamLeague()
	l.Teams[0].HomeStadium = 999
	l.reindex()
	if err := l.Validate(); err == nil {
		t.Errorf("expected validation error for a team referencing an unknown stadium")
	}
}

func TestLeagueValidateAcceptsWellFormedLeague(t *testing.T) {
	l := fourTeamLeague()
	if err := l.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLeagueHomeStadiumOfPanicsOnUnknownTeam(t *testing.T) {
	l := fourTeamLeague()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected a panic for an unknown team id")
		}
	}()
	l.HomeStadiumOf(999)
}
