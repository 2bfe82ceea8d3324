package api

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"

	"github.com/hatruonggiang/vleague-scheduler/internal/api/handlers"
	"github.com/hatruonggiang/vleague-scheduler/internal/api/middleware"
	"github.com/hatruonggiang/vleague-scheduler/internal/api/websocket"
	"github.com/hatruonggiang/vleague-scheduler/internal/jobrunner"
	"github.com/hatruonggiang/vleague-scheduler/internal/storage/sqlite"
)

// Server wires together the GA job runner, SQLite-backed storage, and the
// HTTP/WebSocket transport that exposes them.
type Server struct {
	router   *gin.Engine
	db       *sql.DB
	repos    *sqlite.Repositories
	validate *validator.Validate
	jobs     *jobrunner.Manager
	wsHub    *websocket.Hub
}

// NewServer builds a Server backed by db. Migrations are expected to have
// already been applied by the caller.
func NewServer(db *sql.DB) *Server {
	repos := sqlite.NewRepositories(db)
	validate := validator.New()

	wsHub := websocket.NewHub()
	jobs := jobrunner.NewManager()
	jobs.SetBroadcaster(wsHub)

	server := &Server{
		router:   gin.New(),
		db:       db,
		repos:    repos,
		validate: validate,
		jobs:     jobs,
		wsHub:    wsHub,
	}

	go wsHub.Run()

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())

	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	s.router.Use(middleware.ErrorHandler())
	s.router.Use(middleware.RequestValidator(s.validate))
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")

	leagueHandler := handlers.NewLeagueHandler(s.repos.Leagues())
	leagueHandler.RegisterRoutes(api)

	jobHandler := handlers.NewJobHandler(s.jobs, s.repos.Leagues(), s.repos.Jobs())
	jobHandler.RegisterRoutes(api)

	s.router.GET("/ws", func(c *gin.Context) {
		s.wsHub.ServeWS(c.Writer, c.Request)
	})

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	log.Printf("Starting server on %s", addr)
	return s.router.Run(addr)
}

// GetRouter exposes the underlying gin engine, mainly for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// GetWebSocketHub exposes the websocket hub, mainly for tests.
func (s *Server) GetWebSocketHub() *websocket.Hub {
	return s.wsHub
}
