package websocket

import "time"

// Message types for WebSocket communication
const (
	JobStarted   = "job_started"
	JobProgress  = "job_progress"
	JobCompleted = "job_completed"
	JobFailed    = "job_failed"
	JobCancelled = "job_cancelled"

	SystemStatus = "system_status"
	ClientCount  = "client_count"
)

// JobStartedData is the payload of a job_started event.
type JobStartedData struct {
	JobID     string    `json:"job_id"`
	LeagueID  int       `json:"league_id"`
	StartedAt time.Time `json:"started_at"`
}

// JobProgressData is the payload of a job_progress event, emitted once per
// generation.
type JobProgressData struct {
	JobID        string  `json:"job_id"`
	LeagueID     int     `json:"league_id"`
	Generation   int     `json:"generation"`
	NGenerations int     `json:"n_generations"`
	BestFitness  float64 `json:"best_fitness"`
	ProgressPct  float64 `json:"progress_pct"`
	ElapsedMs    int64   `json:"elapsed_ms"`
}

// JobCompletedData is the payload of a job_completed event.
type JobCompletedData struct {
	JobID       string        `json:"job_id"`
	LeagueID    int           `json:"league_id"`
	CompletedAt time.Time     `json:"completed_at"`
	Duration    time.Duration `json:"duration"`
	BestFitness float64       `json:"best_fitness"`
	Generations int           `json:"generations"`
}

// JobFailedData is the payload of a job_failed event.
type JobFailedData struct {
	JobID    string    `json:"job_id"`
	LeagueID int       `json:"league_id"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// SystemStatusData is the payload of a system_status event.
type SystemStatusData struct {
	Status           string    `json:"status"`
	ActiveJobs       int       `json:"active_jobs"`
	ConnectedClients int       `json:"connected_clients"`
	Timestamp        time.Time `json:"timestamp"`
}

// ClientCountData is the payload of a client_count event.
type ClientCountData struct {
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}
