package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tariqak/tariqak/internal/config"
	"github.com/tariqak/tariqak/internal/domain"
)

// Server exposes the status, query and messages endpoints.
type Server struct {
	cfg        *config.Config
	cache      *domain.StatusCache
	queries    *domain.QueryService
	repo       domain.PostRepository
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates the HTTP server around the given services.
func NewServer(cfg *config.Config, cache *domain.StatusCache, queries *domain.QueryService, repo domain.PostRepository, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		cache:   cache,
		queries: queries,
		repo:    repo,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("GET /messages", s.handleMessages)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     withLogging(logger, withCORS(mux)),
		ReadTimeout: 10 * time.Second,
		// Must outlast the inference-service timeout on a cold cache.
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests. It blocks until the server is
// shut down or an error occurs.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": "tariqak"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.cache.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("failed to compute status snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to compute status")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type queryRequest struct {
	Question string `json:"question"`
}

type queryResponse struct {
	Answer       string `json:"answer"`
	SourcesCount int    `json:"sources_count"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "question is required")
		return
	}

	answer, sources, err := s.queries.Answer(r.Context(), req.Question)
	if err != nil {
		s.logger.Error("failed to answer query", "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to answer question")
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Answer: answer, SourcesCount: sources})
}

type messageResponse struct {
	Channel   string    `json:"channel_name"`
	MessageID int64     `json:"message_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > 200 {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	posts, err := s.repo.ListPosts(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list messages", "error", err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to list messages")
		return
	}

	out := make([]messageResponse, len(posts))
	for i, p := range posts {
		out[i] = messageResponse{
			Channel:   p.Channel,
			MessageID: p.MessageID,
			Text:      p.Text,
			Timestamp: p.Timestamp,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errType,
		"message": message,
	})
}

// withCORS allows any origin; the dashboard frontend is served elsewhere.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
