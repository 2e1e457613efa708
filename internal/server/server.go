// Package server exposes the learning services over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/assessment"
	"github.com/abhisek/levelup/internal/catalog"
	"github.com/abhisek/levelup/internal/config"
	"github.com/abhisek/levelup/internal/feedback"
	"github.com/abhisek/levelup/internal/metrics"
	"github.com/abhisek/levelup/internal/progress"
	"github.com/abhisek/levelup/internal/quiz"
)

// Services are the use cases behind the routes.
type Services struct {
	Catalog     *catalog.Service
	Assessments *assessment.Service
	Quizzes     *quiz.Service
	Feedback    *feedback.Service
	Progress    *progress.Service
}

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP front end.
type Server struct {
	cfg     config.ServerConfig
	svc     Services
	metrics *metrics.Metrics
	health  Pinger
	logger  *zap.Logger
	limiter *userLimiter
	engine  *gin.Engine
}

func New(cfg config.ServerConfig, svc Services, m *metrics.Metrics, health Pinger, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	s := &Server{
		cfg:     cfg,
		svc:     svc,
		metrics: m,
		health:  health,
		logger:  logger.Named("http"),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = newUserLimiter(cfg.RateLimit, burst)
	}
	s.engine = s.routes()
	return s
}

// Handler returns the routed engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger), s.metrics.Middleware())

	r.GET("/healthz", s.healthz)
	if s.metrics != nil {
		r.GET("/metrics", s.metrics.Handler())
	}

	api := r.Group("/api", requireUser())
	generate := s.limiter.middleware()

	api.GET("/subjects", s.listSubjects)
	api.GET("/subjects/:id", s.getSubject)
	api.GET("/subjects/:id/assessments", s.listAssessments)
	api.POST("/subjects/:id/assessments", generate, s.startAssessment)
	api.GET("/assessments/:id", s.getAssessment)
	api.POST("/assessments/:id", s.submitAssessment)

	api.PATCH("/users/me/subjects/:id", s.setCurrentLevel)
	api.GET("/stats", s.stats)

	api.GET("/quizzes", s.listQuizzes)
	api.POST("/quizzes", generate, s.createQuiz)
	api.GET("/quizzes/:id", s.getQuiz)
	api.POST("/quizzes/:id/attempts", s.submitAttempt)

	api.GET("/attempts", s.listAttempts)
	api.GET("/attempts/:id", s.getAttempt)
	api.POST("/attempts/:id/feedback", generate, s.attemptFeedback)

	admin := api.Group("/admin", requireAdmin())
	admin.POST("/fix-incomplete-attempts", s.repairAttempts)

	return r
}

func (s *Server) healthz(c *gin.Context) {
	if s.health != nil {
		if err := s.health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case now := <-ticker.C:
			if s.limiter != nil {
				s.limiter.sweep(now)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			s.logger.Info("shutting down")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		}
	}
}
