package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hatruonggiang/vleague-scheduler/internal/api/middleware"
	"github.com/hatruonggiang/vleague-scheduler/internal/storage"
	"github.com/hatruonggiang/vleague-scheduler/pkg/apitypes"
)

// LeagueHandler handles league-related HTTP requests.
type LeagueHandler struct {
	leagues storage.LeagueRepository
}

// NewLeagueHandler creates a new league handler.
func NewLeagueHandler(leagues storage.LeagueRepository) *LeagueHandler {
	return &LeagueHandler{leagues: leagues}
}

// CreateLeague creates a new league from its teams, stadiums, distances,
// derby pairs and regions.
// POST /api/v1/leagues
func (h *LeagueHandler) CreateLeague(c *gin.Context) {
	var req apitypes.CreateLeagueRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		middleware.BadRequest(c, "invalid league payload: "+err.Error())
		return
	}

	league := req.ToLeague()
	if err := league.Validate(); err != nil {
		middleware.BadRequest(c, "league failed validation: "+err.Error())
		return
	}

	id, err := h.leagues.Create(c.Request.Context(), req.Name, league)
	if err != nil {
		middleware.InternalError(c, "creating league: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, apitypes.LeagueToResponse(id, req.Name, league))
}

// GetLeague retrieves a league by id.
// GET /api/v1/leagues/:id
func (h *LeagueHandler) GetLeague(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "league id must be an integer")
		return
	}

	league, err := h.leagues.Get(c.Request.Context(), id)
	if err != nil {
		middleware.NotFound(c, "league not found")
		return
	}

	c.JSON(http.StatusOK, apitypes.LeagueToResponse(id, "", league))
}

// ListLeagues returns every stored league id.
// GET /api/v1/leagues
func (h *LeagueHandler) ListLeagues(c *gin.Context) {
	ids, err := h.leagues.List(c.Request.Context())
	if err != nil {
		middleware.InternalError(c, "listing leagues: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"league_ids": ids})
}

// DeleteLeague removes a league and every job run against it.
// DELETE /api/v1/leagues/:id
func (h *LeagueHandler) DeleteLeague(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "league id must be an integer")
		return
	}

	if err := h.leagues.Delete(c.Request.Context(), id); err != nil {
		middleware.NotFound(c, "league not found")
		return
	}

	c.JSON(http.StatusOK, apitypes.SuccessResponse{Success: true, Message: "league deleted"})
}

// RegisterRoutes registers league routes with the Gin router.
func (h *LeagueHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/leagues", h.CreateLeague)
	router.GET("/leagues", h.ListLeagues)
	router.GET("/leagues/:id", h.GetLeague)
	router.DELETE("/leagues/:id", h.DeleteLeague)
}
