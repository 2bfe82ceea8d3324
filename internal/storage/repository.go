package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
	"github.com/hatruonggiang/vleague-scheduler/internal/ga"
)

// Common errors
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// LeagueRepository defines methods for league storage. A league bundles its
// teams, stadiums, distance matrix, derby pairs and region map, so
// persisting one writes rows across several tables in a single call.
type LeagueRepository interface {
	Create(ctx context.Context, name string, league *models.League) (int, error)
	Get(ctx context.Context, id int) (*models.League, error)
	List(ctx context.Context) ([]int, error)
	Delete(ctx context.Context, id int) error
}

// JobRecord is the persisted view of a jobrunner.Job: its identity, status
// and (once finished) its winning schedule.
type JobRecord struct {
	ID          string
	LeagueID    int
	Status      string
	Config      ga.Config
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
	Best        *models.Schedule
}

// JobRepository defines methods for job storage.
type JobRepository interface {
	Create(ctx context.Context, job *JobRecord) error
	UpdateStatus(ctx context.Context, id, status, errMsg string, completedAt *time.Time) error
	SaveResult(ctx context.Context, id string, best models.Schedule) error
	Get(ctx context.Context, id string) (*JobRecord, error)
	ListByLeague(ctx context.Context, leagueID int) ([]*JobRecord, error)
	Delete(ctx context.Context, id string) error
}

// Repositories aggregates every repository this service needs.
type Repositories interface {
	Leagues() LeagueRepository
	Jobs() JobRepository

	// Transaction support
	BeginTx(ctx context.Context) (Repositories, error)
	Commit() error
	Rollback() error
}
