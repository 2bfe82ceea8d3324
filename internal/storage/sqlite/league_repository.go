package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
)

// LeagueRepository implements storage.LeagueRepository using SQLite. A
// league's teams, stadiums, distances, derby pairs and regions are spread
// across five tables besides leagues; Create and Get touch all six in one
// call.
type LeagueRepository struct {
	db DBExecutor
}

// NewLeagueRepository creates a new league repository.
func NewLeagueRepository(db DBExecutor) *LeagueRepository {
	return &LeagueRepository{db: db}
}

// Create persists a league and every record it references. It does not open
// its own transaction — callers that need atomicity across the six tables
// should go through Repositories.BeginTx first.
func (r *LeagueRepository) Create(ctx context.Context, name string, league *models.League) (int, error) {
	result, err := r.db.ExecContext(ctx, `INSERT INTO leagues (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("creating league: %w", err)
	}
	id64, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	leagueID := int(id64)

	stadiumIDs := make(map[int]int, len(league.Stadiums))
	for _, s := range league.Stadiums {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO stadiums (league_id, external_id, name, city, capacity, has_lighting, surface)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, leagueID, s.ID, s.Name, s.City, s.Capacity, s.HasLighting, string(s.Surface))
		if err != nil {
			return 0, fmt.Errorf("creating stadium %d: %w", s.ID, err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("getting stadium row id: %w", err)
		}
		stadiumIDs[s.ID] = int(rowID)
	}

	for _, t := range league.Teams {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO teams (league_id, external_id, name, short_name, city, home_stadium_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`, leagueID, t.ID, t.Name, t.ShortName, t.City, t.HomeStadium); err != nil {
			return 0, fmt.Errorf("creating team %d: %w", t.ID, err)
		}
	}

	for pair, km := range league.Distances {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO distances (league_id, city_a, city_b, km) VALUES (?, ?, ?, ?)
		`, leagueID, pair.A, pair.B, km); err != nil {
			return 0, fmt.Errorf("creating distance %s-%s: %w", pair.A, pair.B, err)
		}
	}

	for pair := range league.DerbyPairs {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO derby_pairs (league_id, team_a, team_b) VALUES (?, ?, ?)
		`, leagueID, pair.A, pair.B); err != nil {
			return 0, fmt.Errorf("creating derby pair %d-%d: %w", pair.A, pair.B, err)
		}
	}

	for city, region := range league.Regions {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO regions (league_id, city, region) VALUES (?, ?, ?)
		`, leagueID, city, string(region)); err != nil {
			return 0, fmt.Errorf("creating region %s: %w", city, err)
		}
	}

	return leagueID, nil
}

// Get reassembles a league from its six constituent tables.
func (r *LeagueRepository) Get(ctx context.Context, id int) (*models.League, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM leagues WHERE id = ?`, id).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("league not found")
	}
	if err != nil {
		return nil, fmt.Errorf("getting league: %w", err)
	}

	stadiums, err := r.loadStadiums(ctx, id)
	if err != nil {
		return nil, err
	}
	teams, err := r.loadTeams(ctx, id)
	if err != nil {
		return nil, err
	}
	distances, err := r.loadDistances(ctx, id)
	if err != nil {
		return nil, err
	}
	derbyPairs, err := r.loadDerbyPairs(ctx, id)
	if err != nil {
		return nil, err
	}
	regions, err := r.loadRegions(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.NewLeague(teams, stadiums, distances, derbyPairs, regions, nil), nil
}

func (r *LeagueRepository) loadStadiums(ctx context.Context, leagueID int) ([]models.Stadium, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT external_id, name, city, capacity, has_lighting, surface
		FROM stadiums WHERE league_id = ? ORDER BY external_id
	`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("listing stadiums: %w", err)
	}
	defer rows.Close()

	var stadiums []models.Stadium
	for rows.Next() {
		var s models.Stadium
		var surface string
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.Capacity, &s.HasLighting, &surface); err != nil {
			return nil, fmt.Errorf("scanning stadium: %w", err)
		}
		s.Surface = models.Surface(surface)
		stadiums = append(stadiums, s)
	}
	return stadiums, rows.Err()
}

func (r *LeagueRepository) loadTeams(ctx context.Context, leagueID int) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT external_id, name, short_name, city, home_stadium_id
		FROM teams WHERE league_id = ? ORDER BY external_id
	`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.ShortName, &t.City, &t.HomeStadium); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *LeagueRepository) loadDistances(ctx context.Context, leagueID int) (map[models.CityPair]float64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT city_a, city_b, km FROM distances WHERE league_id = ?`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("listing distances: %w", err)
	}
	defer rows.Close()

	distances := make(map[models.CityPair]float64)
	for rows.Next() {
		var a, b string
		var km float64
		if err := rows.Scan(&a, &b, &km); err != nil {
			return nil, fmt.Errorf("scanning distance: %w", err)
		}
		distances[models.CityPair{A: a, B: b}] = km
	}
	return distances, rows.Err()
}

func (r *LeagueRepository) loadDerbyPairs(ctx context.Context, leagueID int) ([]models.TeamPair, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT team_a, team_b FROM derby_pairs WHERE league_id = ?`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("listing derby pairs: %w", err)
	}
	defer rows.Close()

	var pairs []models.TeamPair
	for rows.Next() {
		var a, b int
		if err := rows.Scan(&a, &b); err != nil {
			return nil, fmt.Errorf("scanning derby pair: %w", err)
		}
		pairs = append(pairs, models.TeamPair{A: a, B: b})
	}
	return pairs, rows.Err()
}

func (r *LeagueRepository) loadRegions(ctx context.Context, leagueID int) (map[string]models.Region, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT city, region FROM regions WHERE league_id = ?`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	defer rows.Close()

	regions := make(map[string]models.Region)
	for rows.Next() {
		var city, region string
		if err := rows.Scan(&city, &region); err != nil {
			return nil, fmt.Errorf("scanning region: %w", err)
		}
		regions[city] = models.Region(region)
	}
	return regions, rows.Err()
}

// List returns the ids of every stored league.
func (r *LeagueRepository) List(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM leagues ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing leagues: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning league id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes a league; stadiums, teams, distances, derby pairs, regions
// and jobs cascade per the foreign key constraints.
func (r *LeagueRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leagues WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting league: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("league not found")
	}
	return nil
}
