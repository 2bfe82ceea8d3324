package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hatruonggiang/vleague-scheduler/internal/api/middleware"
	"github.com/hatruonggiang/vleague-scheduler/internal/jobrunner"
	"github.com/hatruonggiang/vleague-scheduler/internal/storage"
	"github.com/hatruonggiang/vleague-scheduler/pkg/apitypes"
)

// JobHandler handles optimization job HTTP requests: starting a GA run
// against a stored league, polling its progress, and cancelling it.
type JobHandler struct {
	manager *jobrunner.Manager
	leagues storage.LeagueRepository
	jobs    storage.JobRepository
}

// NewJobHandler creates a new job handler.
func NewJobHandler(manager *jobrunner.Manager, leagues storage.LeagueRepository, jobs storage.JobRepository) *JobHandler {
	return &JobHandler{manager: manager, leagues: leagues, jobs: jobs}
}

// StartJob starts a GA optimization run for a league.
// POST /api/v1/leagues/:id/jobs
func (h *JobHandler) StartJob(c *gin.Context) {
	leagueID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "league id must be an integer")
		return
	}

	league, err := h.leagues.Get(c.Request.Context(), leagueID)
	if err != nil {
		middleware.NotFound(c, "league not found")
		return
	}

	var req apitypes.StartJobRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		middleware.BadRequest(c, "invalid job request: "+err.Error())
		return
	}
	cfg := req.ToConfig()

	jobID, err := h.manager.Start(leagueID, league, cfg)
	if err != nil {
		middleware.BadRequest(c, "starting job: "+err.Error())
		return
	}

	if h.jobs != nil {
		record := &storage.JobRecord{
			ID: jobID, LeagueID: leagueID, Status: string(jobrunner.StatusPending),
			Config: cfg, StartedAt: time.Now(),
		}
		if err := h.jobs.Create(c.Request.Context(), record); err == nil {
			go h.persistWhenDone(jobID)
		}
	}

	c.JSON(http.StatusAccepted, apitypes.StartJobResponse{JobID: jobID, Status: string(jobrunner.StatusPending)})
}

// persistWhenDone polls an in-memory job until it reaches a terminal state
// and writes its final status and schedule to storage. The job manager
// itself is purely in-memory, so a completed job's result would otherwise
// vanish on restart.
func (h *JobHandler) persistWhenDone(jobID string) {
	ctx := context.Background()
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		job, err := h.manager.Get(jobID)
		if err != nil {
			return
		}
		switch job.Status {
		case jobrunner.StatusCompleted, jobrunner.StatusFailed, jobrunner.StatusCancelled:
			_ = h.jobs.UpdateStatus(ctx, jobID, string(job.Status), job.Error, job.CompletedAt)
			if job.Result != nil {
				_ = h.jobs.SaveResult(ctx, jobID, job.Result.Best)
			}
			return
		}
	}
}

// GetJob returns the live status of a job, including its progress and (once
// finished) its result.
// GET /api/v1/jobs/:jobId
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := h.manager.Get(jobID)
	if err != nil {
		middleware.NotFound(c, "job not found")
		return
	}

	resp := apitypes.JobResponse{
		JobID:       job.ID,
		LeagueID:    job.LeagueID,
		Status:      string(job.Status),
		Progress:    job.Progress,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
		Result:      apitypes.JobResultToResponse(job.Result),
	}
	if job.Error != "" {
		resp.Error = &job.Error
	}

	c.JSON(http.StatusOK, resp)
}

// CancelJob requests cancellation of a pending or running job.
// POST /api/v1/jobs/:jobId/cancel
func (h *JobHandler) CancelJob(c *gin.Context) {
	jobID := c.Param("jobId")

	if err := h.manager.Cancel(jobID); err != nil {
		middleware.NotFound(c, "job not found")
		return
	}

	c.JSON(http.StatusOK, apitypes.SuccessResponse{Success: true, Message: "cancellation requested"})
}

// ListJobsByLeague lists every job started against a league.
// GET /api/v1/leagues/:id/jobs
func (h *JobHandler) ListJobsByLeague(c *gin.Context) {
	leagueID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "league id must be an integer")
		return
	}

	jobs := h.manager.ListByLeague(leagueID)
	resp := make([]apitypes.JobResponse, len(jobs))
	for i, job := range jobs {
		r := apitypes.JobResponse{
			JobID: job.ID, LeagueID: job.LeagueID, Status: string(job.Status),
			Progress: job.Progress, StartedAt: job.StartedAt, CompletedAt: job.CompletedAt,
			Result: apitypes.JobResultToResponse(job.Result),
		}
		if job.Error != "" {
			r.Error = &job.Error
		}
		resp[i] = r
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resp})
}

// GetStatistics returns aggregate job counts by status.
// GET /api/v1/jobs/statistics
func (h *JobHandler) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Stats())
}

// RegisterRoutes registers job routes with the Gin router.
func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/leagues/:id/jobs", h.StartJob)
	router.GET("/leagues/:id/jobs", h.ListJobsByLeague)
	router.GET("/jobs/:jobId", h.GetJob)
	router.POST("/jobs/:jobId/cancel", h.CancelJob)
	router.GET("/jobs/statistics", h.GetStatistics)
}
