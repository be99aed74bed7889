package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"trading-analysis-bot/internal/analysis"
	"trading-analysis-bot/internal/auth"
	"trading-analysis-bot/internal/database"
	"trading-analysis-bot/internal/engine"
	"trading-analysis-bot/internal/notification"
)

// RiskBounds are the request-surface limits applied before the core runs
type RiskBounds struct {
	DefaultRiskPercent float64
	MinRiskPercent     float64
	MaxRiskPercent     float64
	MinLot             float64
	MaxLot             float64
	DefaultBalance     float64
}

// Server is the HTTP surface over the analysis core
type Server struct {
	router    *gin.Engine
	analyzer  *engine.Analyzer
	sessions  *analysis.SessionEngine
	scheduler *notification.Scheduler
	users     *database.UserRepository
	passwords *auth.PasswordManager
	jwt       *auth.JWTManager
	hub       *WSHub
	bounds    RiskBounds
	logger    zerolog.Logger
	srv       *http.Server
}

// ServerOpts bundles the server's collaborators
type ServerOpts struct {
	Analyzer  *engine.Analyzer
	Sessions  *analysis.SessionEngine
	Scheduler *notification.Scheduler
	Users     *database.UserRepository
	Passwords *auth.PasswordManager
	JWT       *auth.JWTManager
	Bounds    RiskBounds
	Logger    zerolog.Logger
}

// NewServer creates the HTTP server and registers routes
func NewServer(opts ServerOpts) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		router:    router,
		analyzer:  opts.Analyzer,
		sessions:  opts.Sessions,
		scheduler: opts.Scheduler,
		users:     opts.Users,
		passwords: opts.Passwords,
		jwt:       opts.JWT,
		hub:       NewWSHub(opts.Logger),
		bounds:    opts.Bounds,
		logger:    opts.Logger,
	}

	s.registerRoutes()
	go s.hub.Run()

	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		api.GET("/analyze", s.handleAnalyze)
		api.GET("/scan", s.handleScan)
		api.GET("/market/status", s.handleMarketStatus)
		api.GET("/recheck/:symbol", s.handlePendingRecheck)

		users := api.Group("/users")
		{
			users.POST("/register", s.handleRegister)
			users.POST("/login", s.handleLogin)

			if s.jwt != nil {
				authed := users.Group("")
				authed.Use(auth.Middleware(s.jwt))
				authed.GET("/me", s.handleMe)
			}
		}
	}
}

// Start runs the HTTP server until the context is cancelled
func (s *Server) Start(ctx context.Context, host string, port int) error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("HTTP server listening")
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMarketStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.sessions.Status())
}

func (s *Server) handlePendingRecheck(c *gin.Context) {
	if s.scheduler == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recheck scheduling is not enabled"})
		return
	}

	advisory, err := s.scheduler.Pending(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read recheck state"})
		return
	}
	if advisory == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending recheck for symbol"})
		return
	}

	c.JSON(http.StatusOK, advisory)
}
