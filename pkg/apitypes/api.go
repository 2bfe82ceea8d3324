// Package apitypes holds the request/response DTOs exchanged over the HTTP
// and WebSocket APIs. Keeping these separate from internal/core/models and
// internal/ga lets the wire format evolve independently of the optimizer's
// internal representation.
package apitypes

import (
	"time"

	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
	"github.com/hatruonggiang/vleague-scheduler/internal/ga"
)

// League API types

type TeamInput struct {
	ID          int    `json:"id" validate:"required,min=1"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	ShortName   string `json:"short_name" validate:"required,min=1,max=10"`
	City        string `json:"city" validate:"required,min=1,max=100"`
	HomeStadium int    `json:"home_stadium" validate:"required,min=1"`
}

type StadiumInput struct {
	ID          int    `json:"id" validate:"required,min=1"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	City        string `json:"city" validate:"required,min=1,max=100"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
	HasLighting bool   `json:"has_lighting"`
	Surface     string `json:"surface" validate:"required,oneof=natural artificial"`
}

type DistanceInput struct {
	CityA string  `json:"city_a" validate:"required"`
	CityB string  `json:"city_b" validate:"required"`
	Km    float64 `json:"km" validate:"min=0"`
}

type DerbyPairInput struct {
	TeamA int `json:"team_a" validate:"required,min=1"`
	TeamB int `json:"team_b" validate:"required,min=1"`
}

type CreateLeagueRequest struct {
	Name       string            `json:"name" validate:"required,min=1,max=100"`
	Teams      []TeamInput       `json:"teams" validate:"required,min=2,dive"`
	Stadiums   []StadiumInput    `json:"stadiums" validate:"required,min=1,dive"`
	Distances  []DistanceInput   `json:"distances,omitempty" validate:"dive"`
	DerbyPairs []DerbyPairInput  `json:"derby_pairs,omitempty" validate:"dive"`
	Regions    map[string]string `json:"regions,omitempty"`
}

type LeagueResponse struct {
	ID              int `json:"id"`
	Name            string `json:"name"`
	TeamCount       int `json:"team_count"`
	Rounds          int `json:"rounds"`
	MatchesPerRound int `json:"matches_per_round"`
	TotalMatches    int `json:"total_matches"`
}

func LeagueToResponse(id int, name string, league *models.League) LeagueResponse {
	return LeagueResponse{
		ID:              id,
		Name:            name,
		TeamCount:       league.N(),
		Rounds:          league.Rounds(),
		MatchesPerRound: league.MatchesPerRound(),
		TotalMatches:    league.TotalMatches(),
	}
}

func (r CreateLeagueRequest) ToLeague() *models.League {
	teams := make([]models.Team, len(r.Teams))
	for i, t := range r.Teams {
		teams[i] = models.Team{ID: t.ID, Name: t.Name, ShortName: t.ShortName, City: t.City, HomeStadium: t.HomeStadium}
	}

	stadiums := make([]models.Stadium, len(r.Stadiums))
	for i, s := range r.Stadiums {
		stadiums[i] = models.Stadium{
			ID: s.ID, Name: s.Name, City: s.City, Capacity: s.Capacity,
			HasLighting: s.HasLighting, Surface: models.Surface(s.Surface),
		}
	}

	distances := make(map[models.CityPair]float64, len(r.Distances))
	for _, d := range r.Distances {
		if d.CityA <= d.CityB {
			distances[models.CityPair{A: d.CityA, B: d.CityB}] = d.Km
		} else {
			distances[models.CityPair{A: d.CityB, B: d.CityA}] = d.Km
		}
	}

	derbyPairs := make([]models.TeamPair, len(r.DerbyPairs))
	for i, p := range r.DerbyPairs {
		derbyPairs[i] = models.TeamPair{A: p.TeamA, B: p.TeamB}
	}

	regions := make(map[string]models.Region, len(r.Regions))
	for city, region := range r.Regions {
		regions[city] = models.Region(region)
	}

	return models.NewLeague(teams, stadiums, distances, derbyPairs, regions, nil)
}

// Job API types

type StartJobRequest struct {
	PopulationSize int                `json:"population_size,omitempty" validate:"omitempty,min=4"`
	NGenerations   int                `json:"n_generations,omitempty" validate:"omitempty,min=1"`
	CrossoverProb  *float64           `json:"crossover_prob,omitempty" validate:"omitempty,min=0,max=1"`
	MutationProb   *float64           `json:"mutation_prob,omitempty" validate:"omitempty,min=0,max=1"`
	RandomSeed     *int64             `json:"random_seed,omitempty"`
	Preset         string             `json:"preset,omitempty" validate:"omitempty,oneof=default quick_test production"`
}

// ToConfig builds a ga.Config from the request, starting from the named
// preset (default is ga.DefaultConfig) and applying any overrides supplied.
func (r StartJobRequest) ToConfig() ga.Config {
	var cfg ga.Config
	switch r.Preset {
	case "quick_test":
		cfg = ga.QuickTestConfig()
	case "production":
		cfg = ga.ProductionConfig()
	default:
		cfg = ga.DefaultConfig()
	}

	if r.PopulationSize > 0 {
		cfg.PopulationSize = r.PopulationSize
	}
	if r.NGenerations > 0 {
		cfg.NGenerations = r.NGenerations
	}
	if r.CrossoverProb != nil {
		cfg.CrossoverProb = *r.CrossoverProb
	}
	if r.MutationProb != nil {
		cfg.MutationProb = *r.MutationProb
	}
	if r.RandomSeed != nil {
		cfg.RandomSeed = r.RandomSeed
	}
	return cfg
}

type StartJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type MatchResponse struct {
	HomeTeamID int `json:"home_team_id"`
	AwayTeamID int `json:"away_team_id"`
	StadiumID  int `json:"stadium_id"`
	Round      int `json:"round"`
}

type ScheduleResponse struct {
	Matches []MatchResponse `json:"matches"`
}

func ScheduleToResponse(s models.Schedule) ScheduleResponse {
	matches := make([]MatchResponse, len(s.Matches))
	for i, m := range s.Matches {
		matches[i] = MatchResponse{HomeTeamID: m.HomeTeamID, AwayTeamID: m.AwayTeamID, StadiumID: m.StadiumID, Round: m.Round}
	}
	return ScheduleResponse{Matches: matches}
}

type JobResultResponse struct {
	Best        ScheduleResponse    `json:"best"`
	BestReport  *ga.Report          `json:"best_report"`
	History     []ga.HistoryEntry   `json:"history"`
	Generations int                 `json:"generations"`
	StoppedEarly bool               `json:"stopped_early"`
}

func JobResultToResponse(r *ga.Result) *JobResultResponse {
	if r == nil {
		return nil
	}
	return &JobResultResponse{
		Best:         ScheduleToResponse(r.Best),
		BestReport:   r.BestReport,
		History:      r.History,
		Generations:  r.Generations,
		StoppedEarly: r.StoppedEarly,
	}
}

type JobResponse struct {
	JobID       string             `json:"job_id"`
	LeagueID    int                `json:"league_id"`
	Status      string             `json:"status"`
	Progress    ga.Progress        `json:"progress"`
	StartedAt   time.Time          `json:"started_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	Error       *string            `json:"error,omitempty"`
	Result      *JobResultResponse `json:"result,omitempty"`
}

// Generic API response types

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
