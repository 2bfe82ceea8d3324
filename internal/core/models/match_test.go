package models

import "testing"

func TestMatchValidate(t *testing.T) {
	if err := (Match{ID: 1, HomeTeamID: 1, AwayTeamID: 2, StadiumID: 1, Round: 1}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Match{ID: 1, HomeTeamID: 1, AwayTeamID: 1, StadiumID: 1, Round: 1}).Validate(); err == nil {
		t.Errorf("expected error for home == away")
	}
	if err := (Match{ID: 1, HomeTeamID: 1, AwayTeamID: 2, StadiumID: 1, Round: -1}).Validate(); err == nil {
		t.Errorf("expected error for negative round")
	}
}

func TestMatchIsScheduled(t *testing.T) {
	if (Match{Round: 0}).IsScheduled() {
		t.Errorf("round 0 should not be scheduled")
	}
	if !(Match{Round: 1}).IsScheduled() {
		t.Errorf("round 1 should be scheduled")
	}
}

func TestMatchOpponentAndIsHome(t *testing.T) {
	m := Match{HomeTeamID: 1, AwayTeamID: 2}

	opp, ok := m.Opponent(1)
	if !ok || opp != 2 {
		t.Errorf("Opponent(1) = %d, %v; want 2, true", opp, ok)
	}
	opp, ok = m.Opponent(2)
	if !ok || opp != 1 {
		t.Errorf("Opponent(2) = %d, %v; want 1, true", opp, ok)
	}
	if _, ok = m.Opponent(99); ok {
		t.Errorf("Opponent(99) should not be found")
	}

	isHome, ok := m.IsHome(1)
	if !ok || !isHome {
		t.Errorf("IsHome(1) = %v, %v; want true, true", isHome, ok)
	}
	isHome, ok = m.IsHome(2)
	if !ok || isHome {
		t.Errorf("IsHome(2) = %v, %v; want false, true", isHome, ok)
	}
	if _, ok = m.IsHome(99); ok {
		t.Errorf("IsHome(99) should not be found")
	}
}

func TestMatchKeys(t *testing.T) {
	m1 := Match{HomeTeamID: 1, AwayTeamID: 2}
	m2 := Match{HomeTeamID: 2, AwayTeamID: 1}

	if m1.DirectedKey() == m2.DirectedKey() {
		t.Errorf("directed keys of reversed matches should differ")
	}
	if m1.UnorderedKey() != m2.UnorderedKey() {
		t.Errorf("unordered keys of reversed matches should match")
	}
}
