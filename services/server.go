package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prodvi/backend/ml"
	"github.com/prodvi/backend/models"
	"github.com/prodvi/backend/repository"
	"gorm.io/gorm"
)

// Server holds all server dependencies
type Server struct {
	config           *Config
	gormDB           *repository.GORMRepository
	rawDB            *gorm.DB
	classifier       *ml.QuestionClassifier
	brain            *ml.Brain
	analysisService  *ReviewAnalysisService
	narrativeService NarrativeGenerator
	aggregator       *SummaryAggregator
	formEndpoints    *FormEndpoints
	reviewEndpoints  *ReviewEndpoints
	summaryEndpoints *SummaryEndpoints
}

// NewServer creates a new server instance
func NewServer(config *Config) *Server {
	return &Server{config: config}
}

// SetDatabase sets the database connection
func (s *Server) SetDatabase(db *repository.GORMRepository, rawDB *gorm.DB) {
	s.gormDB = db
	s.rawDB = rawDB
}

// InitializeServices initializes all server services. Classifier training is
// the one hard requirement: without the question dataset the pipeline cannot
// run at all.
func (s *Server) InitializeServices() error {
	s.classifier = ml.NewQuestionClassifier(s.config.ML.QuestionSetPath)
	if err := s.classifier.Train(); err != nil {
		return fmt.Errorf("failed to train question classifier: %w", err)
	}

	s.brain = ml.NewBrain(s.config.ML.CommentDataPath)
	s.analysisService = NewReviewAnalysisService(s.classifier, s.brain)
	slog.Info("Review analysis service initialized")

	if s.config.AI.GeminiAPIKey != "" {
		s.narrativeService = NewGeminiNarrativeService(s.config.AI.GeminiAPIKey)
		slog.Info("Gemini narrative service initialized")
	} else {
		slog.Warn("Gemini API key not configured, narrative generation disabled")
		s.narrativeService = disabledNarrative{}
	}

	if s.gormDB != nil {
		s.aggregator = NewSummaryAggregator(s.gormDB, s.narrativeService, s.config.Media.Dir)
		s.formEndpoints = NewFormEndpoints(s.gormDB)
		s.reviewEndpoints = NewReviewEndpoints(s.gormDB, s.analysisService, s.aggregator)
		s.summaryEndpoints = NewSummaryEndpoints(s.gormDB, s.aggregator)
		slog.Info("Review endpoints initialized")
	} else {
		slog.Warn("Database not configured, running analysis endpoints only")
	}

	return nil
}

// SetupRoutes configures all HTTP routes
func (s *Server) SetupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health endpoint
	r.Get("/health", s.healthHandler)

	// API v1 route group
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.apiV1Handler)

		if s.reviewEndpoints != nil {
			s.reviewEndpoints.RegisterRoutes(r)
		}
		if s.summaryEndpoints != nil {
			s.summaryEndpoints.RegisterRoutes(r)
		}
		if s.formEndpoints != nil {
			s.formEndpoints.RegisterRoutes(r)
		}
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() {
	port := s.config.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.SetupRoutes(),
	}

	// Graceful shutdown
	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "not configured"

	if s.rawDB != nil {
		if sqlDB, err := s.rawDB.DB(); err == nil {
			if err := sqlDB.Ping(); err != nil {
				dbStatus = "down"
				status = "degraded"
			} else {
				dbStatus = "up"
			}
		} else {
			dbStatus = "down"
			status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"` + status + `","database":"` + dbStatus + `"}`))

	slog.Info("Health check", "status", status, "database", dbStatus)
}

func (s *Server) apiV1Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"API v1","version":"1.0.0"}`))

	slog.Info("API v1 accessed")
}

// disabledNarrative stands in when no API key is configured so the document
// assembly path still works; every generation attempt reports failure.
type disabledNarrative struct{}

func (disabledNarrative) Generate(ctx context.Context, doc *models.FeedbackDocument) (string, error) {
	return "", fmt.Errorf("narrative generation is not configured")
}
