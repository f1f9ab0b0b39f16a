package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reelid/internal/config"
	"reelid/internal/history"
	"reelid/internal/identification"
	"reelid/internal/logging"
	"reelid/internal/services"
)

// Pipeline is the slice of the identification pipeline the server consumes.
type Pipeline interface {
	Identify(ctx context.Context, rawURL string) (*identification.Result, error)
}

// Server exposes the identification pipeline over a small JSON API.
type Server struct {
	bind     string
	version  string
	cfg      *config.Config
	pipeline Pipeline
	store    *history.Store
	logger   *slog.Logger
	metrics  *metrics

	listener net.Listener
	server   *http.Server
}

// New builds the API server. store may be nil when history is disabled.
func New(cfg *config.Config, version string, pipeline Pipeline, store *history.Store, logger *slog.Logger) (*Server, error) {
	if cfg == nil || pipeline == nil {
		return nil, errors.New("server: config and pipeline required")
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("server: api bind address required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	srv := &Server{
		bind:     bind,
		version:  version,
		cfg:      cfg,
		pipeline: pipeline,
		store:    store,
		logger:   logging.WithComponent(logger, "api-server"),
		metrics:  newMetrics(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/identify", srv.handleIdentify)
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/history", srv.handleHistory)
	mux.Handle("/metrics", promhttp.HandlerFor(srv.metrics.registry, promhttp.HandlerOpts{}))

	srv.server = &http.Server{
		Handler:           srv.withRequestID(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Handler returns the configured HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving and shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down outside of context cancellation.
func (s *Server) Stop() {
	if s == nil || s.server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(services.WithRequestID(r.Context(), requestID)))
	})
}

type identifyRequest struct {
	URL string `json:"url"`
}

type identifyResponse struct {
	Movie          identification.MovieMatch          `json:"movie"`
	VideoThumbnail string                             `json:"video_thumbnail"`
	Matches        []identification.MovieMatch        `json:"matches"`
	Streaming      []identification.StreamingProvider `json:"streaming"`
	Similar        []identification.SimilarTitle      `json:"similar"`
	Reasoning      string                             `json:"reasoning"`
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req identifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.identifyRequests.WithLabelValues("input_error").Inc()
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.metrics.identifyRequests.WithLabelValues("input_error").Inc()
		s.writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	started := time.Now()
	result, err := s.pipeline.Identify(r.Context(), req.URL)
	s.metrics.identifyDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		s.metrics.identifyRequests.WithLabelValues(outcomeLabel(err)).Inc()
		s.writeIdentifyError(w, err)
		return
	}
	s.metrics.identifyRequests.WithLabelValues("match").Inc()

	best := result.Best()
	s.recordHistory(r.Context(), req.URL, result)
	s.writeJSON(w, http.StatusOK, identifyResponse{
		Movie:          *best,
		VideoThumbnail: result.Metadata.Thumbnail,
		Matches:        result.Matches,
		Streaming:      result.Enrichment.Providers,
		Similar:        result.Enrichment.Similar,
		Reasoning:      result.Reasoning,
	})
}

// writeIdentifyError maps pipeline errors onto status codes. A no-match still
// carries the model's best guess so clients can show it.
func (s *Server) writeIdentifyError(w http.ResponseWriter, err error) {
	status := services.HTTPStatus(err)
	var noMatch *identification.NoMatchError
	if errors.As(err, &noMatch) {
		s.writeJSON(w, status, map[string]string{
			"error":      "no confident match found",
			"suggestion": noMatch.TopGuess,
			"reasoning":  noMatch.Reasoning,
		})
		return
	}
	s.logger.Warn("identify failed", logging.Int("status", status), logging.Error(err))
	s.writeError(w, status, err.Error())
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, services.ErrInput):
		return "input_error"
	case errors.Is(err, services.ErrNoMatch):
		return "no_match"
	case errors.Is(err, services.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, services.ErrQuota):
		return "quota"
	default:
		return "error"
	}
}

func (s *Server) recordHistory(ctx context.Context, url string, result *identification.Result) {
	if s.store == nil {
		return
	}
	best := result.Best()
	entry := history.NewEntry(result.VideoID, url, best.Title, best.Year, best.Poster, best.Confidence)
	if err := s.store.Record(ctx, history.CollectionHistory, entry); err != nil {
		s.logger.Warn("history record failed", logging.Error(err))
	}
}

type statusResponse struct {
	Service        string `json:"service"`
	Version        string `json:"version"`
	Model          string `json:"model"`
	WatchRegion    string `json:"watch_region"`
	YouTubeAPI     bool   `json:"youtube_api_configured"`
	HistoryEnabled bool   `json:"history_enabled"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, statusResponse{
		Service:        "reelid",
		Version:        s.version,
		Model:          s.cfg.LLM.Model,
		WatchRegion:    s.cfg.TMDB.WatchRegion,
		YouTubeAPI:     s.cfg.YouTube.APIKey != "",
		HistoryEnabled: s.store != nil,
	})
}

type historyResponse struct {
	Collection string           `json:"collection"`
	Entries    history.Snapshot `json:"entries"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "history is disabled")
		return
	}
	collection := strings.TrimSpace(r.URL.Query().Get("collection"))
	if collection == "" {
		collection = history.CollectionHistory
	}

	switch r.Method {
	case http.MethodGet:
		snapshot, err := s.store.Load(r.Context(), collection)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, historyResponse{Collection: collection, Entries: snapshot})
	case http.MethodDelete:
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		var err error
		if id == "" {
			err = s.store.Clear(r.Context(), collection)
		} else {
			err = s.store.Delete(r.Context(), collection, id)
		}
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
