// Package server provides the HTTP API for cancerqa.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/cancerqa/internal/config"
	"github.com/hyperjump/cancerqa/internal/corpus"
	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/pkg/utils"
)

// SampleQuestions are offered to clients as starting points.
var SampleQuestions = []string{
	"What are the early signs of breast cancer?",
	"স্তন ক্যান্সারের প্রাথমিক লক্ষণগুলি কী?",
	"How HPV transmitted?",
	"কীভাবে এইচপিভি সংক্রমণিত?",
}

// Answerer resolves a raw question to an answer.
type Answerer interface {
	Resolve(ctx context.Context, question string) (models.MatchResult, error)
}

// CorpusSource exposes the corpus snapshot and reload control. *corpus.Store implements it.
type CorpusSource interface {
	Current() *corpus.Corpus
	Reload(ctx context.Context) error
	LastError() error
}

// Server is the HTTP server for the cancerqa API.
type Server struct {
	answerer  Answerer
	corpus    CorpusSource
	config    *config.ServerConfig
	threshold float64
	// historySize is how many turns a chat history request returns by default.
	historySize int
	logger      *zap.Logger
	server      *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithHistorySize sets the default number of turns returned by chat history requests.
func WithHistorySize(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.historySize = n
		}
	}
}

// NewServer creates a server with the given dependencies. threshold is reported by the status endpoint.
func NewServer(answerer Answerer, src CorpusSource, cfg *config.ServerConfig, threshold float64, logger *zap.Logger, opts ...ServerOption) *Server {
	s := &Server{
		answerer:    answerer,
		corpus:      src,
		config:      cfg,
		threshold:   threshold,
		historySize: 5,
		logger:      utils.OrNop(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors(s.config.CORSOrigins))

	// The chat socket is long-lived and stays outside the request timeout.
	r.Get("/api/v1/chat", s.handleChat)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", s.handleRoot)
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)
		r.Post("/ask", s.handleAsk)

		r.Post("/api/v1/ask", s.handleAsk)
		r.Get("/api/v1/status", s.handleStatus)
		r.Post("/api/v1/reload", s.handleReload)
		r.Get("/api/v1/samples", s.handleSamples)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
