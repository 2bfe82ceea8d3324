package models

import "fmt"

// Match is a single fixture: a home team hosting an away team at a stadium,
// in a given round. Round is mutable via the GA's operators; every other
// field is fixed once the match is minted.
//
// Round 0 means "unassigned" — seeders may emit matches in this state before
// the repairer or a later operator places them into [1, R].
type Match struct {
	ID         int
	HomeTeamID int
	AwayTeamID int
	StadiumID  int
	Round      int
}

// Validate checks the structural requirements of a Match record in
// isolation; it does not check that the team/stadium ids refer to records
// that actually exist — that is a data-contract the core trusts its caller
// to uphold (see error handling design).
func (m Match) Validate() error {
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match %d: home and away team must differ (both %d)", m.ID, m.HomeTeamID)
	}
	if m.Round < 0 {
		return fmt.Errorf("match %d: round must be >= 0, got %d", m.ID, m.Round)
	}
	return nil
}

// IsScheduled reports whether this match has been assigned a round.
func (m Match) IsScheduled() bool {
	return m.Round > 0
}

// HasTeam reports whether teamID plays in this match, as either side.
func (m Match) HasTeam(teamID int) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// Opponent returns the id of the team playing against teamID in this match.
// The second return value is false if teamID does not play in this match.
func (m Match) Opponent(teamID int) (int, bool) {
	switch teamID {
	case m.HomeTeamID:
		return m.AwayTeamID, true
	case m.AwayTeamID:
		return m.HomeTeamID, true
	default:
		return 0, false
	}
}

// IsHome reports whether teamID is the home side of this match. The second
// return value is false if teamID does not play in this match at all.
func (m Match) IsHome(teamID int) (bool, bool) {
	switch teamID {
	case m.HomeTeamID:
		return true, true
	case m.AwayTeamID:
		return false, true
	default:
		return false, false
	}
}

// DirectedKey is the (home, away) ordered pair identifying this matchup.
// There are exactly N*(N-1) distinct directed keys in a complete schedule.
type DirectedKey struct {
	Home, Away int
}

// DirectedKey returns this match's directed matchup key.
func (m Match) DirectedKey() DirectedKey {
	return DirectedKey{Home: m.HomeTeamID, Away: m.AwayTeamID}
}

// UnorderedKey is the unordered {a,b} pair identifying this matchup,
// regardless of which side is home. Always stored with the smaller id first
// so it can be used as a map key.
type UnorderedKey struct {
	A, B int
}

// UnorderedKey returns this match's unordered matchup key.
func (m Match) UnorderedKey() UnorderedKey {
	if m.HomeTeamID < m.AwayTeamID {
		return UnorderedKey{A: m.HomeTeamID, B: m.AwayTeamID}
	}
	return UnorderedKey{A: m.AwayTeamID, B: m.HomeTeamID}
}

// Clone returns a value copy of the match. Match has no reference fields, so
// this is only a named convenience for call sites that want to make the copy
// explicit (e.g. operators building offspring from parent matches).
func (m Match) Clone() Match {
	return m
}
