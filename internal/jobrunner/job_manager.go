// Package jobrunner drives ga.Optimizer runs as asynchronous, cancellable
// jobs, keyed by id, so an HTTP caller can start an optimization and poll or
// watch it without blocking the request that started it. It knows nothing
// about HTTP or websockets itself — Manager is driven from internal/api.
package jobrunner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
	"github.com/hatruonggiang/vleague-scheduler/internal/ga"
)

// Status is the lifecycle state of a Job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Job is a single optimization run: its current status, latest progress
// snapshot, and — once finished — its result.
type Job struct {
	ID          string
	LeagueID    int
	Status      Status
	Progress    ga.Progress
	Result      *ga.Result
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time

	cancel context.CancelFunc
	gen    *atomic.Int64
}

// CurrentGeneration returns the latest generation reported for the job. It
// reads an atomic counter, so callers do not take the Manager's job-map lock.
func (j *Job) CurrentGeneration() int64 {
	return j.gen.Load()
}

// ProgressBroadcaster is notified of every progress tick and terminal
// outcome for a job. internal/api's websocket hub implements this.
type ProgressBroadcaster interface {
	BroadcastProgress(jobID string, leagueID int, progress ga.Progress)
	BroadcastCompleted(jobID string, leagueID int, result *ga.Result, duration time.Duration)
	BroadcastFailed(jobID string, leagueID int, err error)
}

// Manager owns every job started in this process. One Manager is shared by
// every HTTP handler that can start, poll or cancel a job.
type Manager struct {
	jobs        map[string]*Job
	mutex       sync.RWMutex
	broadcaster ProgressBroadcaster
}

// NewManager creates an empty job manager.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]*Job)}
}

// SetBroadcaster wires a websocket hub (or any other sink) to receive
// progress and terminal-outcome notifications.
func (m *Manager) SetBroadcaster(b ProgressBroadcaster) {
	m.broadcaster = b
}

// Start validates cfg, builds an Optimizer for league, and runs it on its
// own goroutine, returning the new job's id immediately.
func (m *Manager) Start(leagueID int, league *models.League, cfg ga.Config) (string, error) {
	optimizer, err := ga.NewOptimizer(league, cfg)
	if err != nil {
		return "", fmt.Errorf("starting optimization job: %w", err)
	}

	jobID := fmt.Sprintf("job_%d_%d", leagueID, time.Now().UnixNano())
	ctx, cancel := context.WithCancel(context.Background())

	job := &Job{
		ID:        jobID,
		LeagueID:  leagueID,
		Status:    StatusPending,
		StartedAt: time.Now(),
		cancel:    cancel,
		gen:       atomic.NewInt64(0),
	}

	m.mutex.Lock()
	m.jobs[jobID] = job
	m.mutex.Unlock()

	go m.run(ctx, job, optimizer, cfg)

	return jobID, nil
}

// run executes the optimizer and records its eventual outcome. A panic
// inside the optimizer (a data-contract violation, per the core's error
// handling design) is recovered here and surfaces as a failed job rather
// than taking down the process.
func (m *Manager) run(ctx context.Context, job *Job, optimizer *ga.Optimizer, cfg ga.Config) {
	m.setStatus(job.ID, StatusRunning)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			m.fail(job, fmt.Errorf("optimizer panicked: %v", r))
		}
	}()

	result := optimizer.Run(ctx, func(p ga.Progress) {
		job.gen.Store(int64(p.Generation))
		m.setProgress(job.ID, p)
		if m.broadcaster != nil {
			m.broadcaster.BroadcastProgress(job.ID, job.LeagueID, p)
		}
	})

	select {
	case <-ctx.Done():
		m.setStatus(job.ID, StatusCancelled)
		return
	default:
	}

	m.mutex.Lock()
	job.Status = StatusCompleted
	job.Result = result
	completedAt := time.Now()
	job.CompletedAt = &completedAt
	m.mutex.Unlock()

	if m.broadcaster != nil {
		m.broadcaster.BroadcastCompleted(job.ID, job.LeagueID, result, time.Since(start))
	}
}

func (m *Manager) fail(job *Job, err error) {
	m.mutex.Lock()
	job.Status = StatusFailed
	job.Error = err.Error()
	completedAt := time.Now()
	job.CompletedAt = &completedAt
	m.mutex.Unlock()

	if m.broadcaster != nil {
		m.broadcaster.BroadcastFailed(job.ID, job.LeagueID, err)
	}
}

// Get returns the job with the given id.
func (m *Manager) Get(jobID string) (*Job, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %s not found", jobID)
	}
	return job, nil
}

// Cancel requests cancellation of a running job. The job halts at the next
// generation boundary the optimizer checks.
func (m *Manager) Cancel(jobID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return fmt.Errorf("job %s not found", jobID)
	}
	if job.Status == StatusRunning || job.Status == StatusPending {
		job.cancel()
	}
	return nil
}

// List returns every job, optionally filtered by status. An empty status
// returns every job regardless of state.
func (m *Manager) List(status Status) []*Job {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var out []*Job
	for _, job := range m.jobs {
		if status == "" || job.Status == status {
			out = append(out, job)
		}
	}
	return out
}

// ListByLeague returns every job started against the given league.
func (m *Manager) ListByLeague(leagueID int) []*Job {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var out []*Job
	for _, job := range m.jobs {
		if job.LeagueID == leagueID {
			out = append(out, job)
		}
	}
	return out
}

// CleanupCompleted removes terminal jobs that finished before maxAge ago.
func (m *Manager) CleanupCompleted(maxAge time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for id, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, id)
		}
	}
}

func (m *Manager) setStatus(jobID string, status Status) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if job, ok := m.jobs[jobID]; ok {
		job.Status = status
	}
}

func (m *Manager) setProgress(jobID string, p ga.Progress) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if job, ok := m.jobs[jobID]; ok {
		job.Progress = p
	}
}

// Statistics summarises every job currently held by the manager.
type Statistics struct {
	Total     int
	Pending   int
	Running   int
	Completed int
	Cancelled int
	Failed    int
}

// Stats computes job counts by status.
func (m *Manager) Stats() Statistics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stats := Statistics{Total: len(m.jobs)}
	for _, job := range m.jobs {
		switch job.Status {
		case StatusPending:
			stats.Pending++
		case StatusRunning:
			stats.Running++
		case StatusCompleted:
			stats.Completed++
		case StatusCancelled:
			stats.Cancelled++
		case StatusFailed:
			stats.Failed++
		}
	}
	return stats
}
