package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
	"github.com/hatruonggiang/vleague-scheduler/internal/ga"
	"github.com/hatruonggiang/vleague-scheduler/internal/storage"
)

func createTestLeagueID(t *testing.T, db *DB) int {
	t.Helper()
	leagues := NewLeagueRepository(db.Conn())
	id, err := leagues.Create(context.Background(), "Job Test League", testLeague())
	if err != nil {
		t.Fatalf("creating league fixture: %v", err)
	}
	return id
}

func TestJobRepositoryCreateAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	leagueID := createTestLeagueID(t, db)
	repo := NewJobRepository(db.Conn())
	ctx := context.Background()

	cfg := ga.QuickTestConfig()
	record := &storage.JobRecord{
		ID:        "job_1",
		LeagueID:  leagueID,
		Status:    "pending",
		Config:    cfg,
		StartedAt: time.Now().Truncate(time.Second),
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.Get(ctx, "job_1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.LeagueID != leagueID {
		t.Errorf("expected league id %d, got %d", leagueID, got.LeagueID)
	}
	if got.Status != "pending" {
		t.Errorf("expected status pending, got %s", got.Status)
	}
	if got.Config.PopulationSize != cfg.PopulationSize {
		t.Errorf("expected population size %d, got %d", cfg.PopulationSize, got.Config.PopulationSize)
	}
	if got.Best != nil {
		t.Error("expected no result before SaveResult is called")
	}
}

func TestJobRepositoryUpdateStatusAndSaveResult(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	leagueID := createTestLeagueID(t, db)
	repo := NewJobRepository(db.Conn())
	ctx := context.Background()

	record := &storage.JobRecord{
		ID:        "job_2",
		LeagueID:  leagueID,
		Status:    "pending",
		Config:    ga.QuickTestConfig(),
		StartedAt: time.Now().Truncate(time.Second),
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	completed := time.Now().Truncate(time.Second)
	if err := repo.UpdateStatus(ctx, "job_2", "completed", "", &completed); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	best := models.NewSchedule([]models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, StadiumID: 1, Round: 1},
		{HomeTeamID: 3, AwayTeamID: 4, StadiumID: 2, Round: 1},
	})
	if err := repo.SaveResult(ctx, "job_2", best); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	got, err := repo.Get(ctx, "job_2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != "completed" {
		t.Errorf("expected status completed, got %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Fatal("expected completed_at to be set")
	}
	if got.Best == nil || len(got.Best.Matches) != 2 {
		t.Fatalf("expected 2 saved matches, got %+v", got.Best)
	}

	// Saving again replaces the previous result rather than appending to it.
	best2 := models.NewSchedule([]models.Match{
		{HomeTeamID: 1, AwayTeamID: 3, StadiumID: 1, Round: 1},
	})
	if err := repo.SaveResult(ctx, "job_2", best2); err != nil {
		t.Fatalf("second SaveResult failed: %v", err)
	}
	got, err = repo.Get(ctx, "job_2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Best.Matches) != 1 {
		t.Fatalf("expected SaveResult to replace the prior result, got %d matches", len(got.Best.Matches))
	}
}

func TestJobRepositoryListByLeagueAndDelete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	leagueID := createTestLeagueID(t, db)
	repo := NewJobRepository(db.Conn())
	ctx := context.Background()

	for _, id := range []string{"job_a", "job_b"} {
		record := &storage.JobRecord{
			ID: id, LeagueID: leagueID, Status: "pending",
			Config: ga.QuickTestConfig(), StartedAt: time.Now().Truncate(time.Second),
		}
		if err := repo.Create(ctx, record); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	jobs, err := repo.ListByLeague(ctx, leagueID)
	if err != nil {
		t.Fatalf("ListByLeague failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	if err := repo.Delete(ctx, "job_a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, "job_a"); err == nil {
		t.Error("expected deleted job to be gone")
	}

	if err := repo.UpdateStatus(ctx, "missing_job", "failed", "boom", nil); err == nil {
		t.Error("expected an error updating a missing job")
	}
}
