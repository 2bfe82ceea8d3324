package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
	"github.com/hatruonggiang/vleague-scheduler/internal/ga"
	"github.com/hatruonggiang/vleague-scheduler/internal/storage"
)

// JobRepository implements storage.JobRepository using SQLite. It persists
// jobrunner.Job metadata and, once a run finishes, the winning schedule's
// matches.
type JobRepository struct {
	db DBExecutor
}

// NewJobRepository creates a new job repository.
func NewJobRepository(db DBExecutor) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job row with its GA configuration serialized to JSON.
func (r *JobRepository) Create(ctx context.Context, job *storage.JobRecord) error {
	cfgJSON, err := json.Marshal(job.Config)
	if err != nil {
		return fmt.Errorf("marshaling job config: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, league_id, status, config_json, error, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.LeagueID, job.Status, string(cfgJSON), job.Error, job.StartedAt, job.CompletedAt)
	if err != nil {
		return fmt.Errorf("creating job: %w", err)
	}
	return nil
}

// UpdateStatus updates a job's lifecycle status, optional error message and
// completion timestamp.
func (r *JobRepository) UpdateStatus(ctx context.Context, id, status, errMsg string, completedAt *time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = ?, error = ?, completed_at = ? WHERE id = ?
	`, status, errMsg, completedAt, id)
	if err != nil {
		return fmt.Errorf("updating job status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found")
	}
	return nil
}

// SaveResult persists the winning schedule's matches for a completed job.
func (r *JobRepository) SaveResult(ctx context.Context, id string, best models.Schedule) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_matches WHERE job_id = ?`, id); err != nil {
		return fmt.Errorf("clearing previous result: %w", err)
	}

	for _, m := range best.Matches {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO schedule_matches (job_id, home_team_id, away_team_id, stadium_id, round)
			VALUES (?, ?, ?, ?, ?)
		`, id, m.HomeTeamID, m.AwayTeamID, m.StadiumID, m.Round); err != nil {
			return fmt.Errorf("saving match: %w", err)
		}
	}
	return nil
}

// Get retrieves a job by id along with its best schedule, if one has been
// saved.
func (r *JobRepository) Get(ctx context.Context, id string) (*storage.JobRecord, error) {
	job := &storage.JobRecord{ID: id}
	var cfgJSON string
	var completedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT league_id, status, config_json, error, started_at, completed_at
		FROM jobs WHERE id = ?
	`, id).Scan(&job.LeagueID, &job.Status, &cfgJSON, &job.Error, &job.StartedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}

	var cfg ga.Config
	if err := json.Unmarshal([]byte(cfgJSON), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling job config: %w", err)
	}
	job.Config = cfg

	matches, err := r.loadMatches(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		s := models.NewSchedule(matches)
		job.Best = &s
	}

	return job, nil
}

func (r *JobRepository) loadMatches(ctx context.Context, jobID string) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT home_team_id, away_team_id, stadium_id, round
		FROM schedule_matches WHERE job_id = ? ORDER BY round, id
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.HomeTeamID, &m.AwayTeamID, &m.StadiumID, &m.Round); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ListByLeague returns every job started against a league, most recent first.
func (r *JobRepository) ListByLeague(ctx context.Context, leagueID int) ([]*storage.JobRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM jobs WHERE league_id = ? ORDER BY started_at DESC
	`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning job id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	jobs := make([]*storage.JobRecord, 0, len(ids))
	for _, id := range ids {
		job, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Delete removes a job; its saved schedule matches cascade.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found")
	}
	return nil
}
