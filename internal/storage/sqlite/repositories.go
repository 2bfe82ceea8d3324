package sqlite

import (
	"context"
	"database/sql"

	"github.com/hatruonggiang/vleague-scheduler/internal/storage"
)

// Repositories implements storage.Repositories using SQLite
type Repositories struct {
	db      *sql.DB
	tx      *sql.Tx
	leagues *LeagueRepository
	jobs    *JobRepository
}

// NewRepositories creates a new repositories instance
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		db:      db,
		leagues: NewLeagueRepository(db),
		jobs:    NewJobRepository(db),
	}
}

// Leagues returns the league repository
func (r *Repositories) Leagues() storage.LeagueRepository {
	return r.leagues
}

// Jobs returns the job repository
func (r *Repositories) Jobs() storage.JobRepository {
	return r.jobs
}

// BeginTx starts a transaction and returns a new repositories instance
func (r *Repositories) BeginTx(ctx context.Context) (storage.Repositories, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		db:      r.db,
		tx:      tx,
		leagues: NewTxLeagueRepository(tx),
		jobs:    NewTxJobRepository(tx),
	}, nil
}

// Commit commits the transaction
func (r *Repositories) Commit() error {
	if r.tx == nil {
		return nil
	}
	return r.tx.Commit()
}

// Rollback rolls back the transaction
func (r *Repositories) Rollback() error {
	if r.tx == nil {
		return nil
	}
	return r.tx.Rollback()
}

// NewTxLeagueRepository creates a league repository that uses a transaction
func NewTxLeagueRepository(tx *sql.Tx) *LeagueRepository {
	return NewLeagueRepository(tx)
}

// NewTxJobRepository creates a job repository that uses a transaction
func NewTxJobRepository(tx *sql.Tx) *JobRepository {
	return NewJobRepository(tx)
}
