// Package web serves the score leaderboard over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Scores is the part of the store the API reads.
type Scores interface {
	TopScores(limit int) ([]storage.ScoreEntry, error)
	PlayerScores(player string, limit int) ([]storage.ScoreEntry, error)
	HighScore() (float64, error)
	Stats(player string) (*storage.PlayerStats, error)
}

// SetupRoutes configures all routes and returns the router.
func SetupRoutes(scores Scores, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	h := &scoreHandler{scores: scores}

	r.Route("/api", func(r chi.Router) {
		r.Get("/scores", h.ListScores)
		r.Get("/scores/best", h.Best)
		r.Get("/players/{player}/scores", h.PlayerScores)
		r.Get("/players/{player}/stats", h.PlayerStats)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

type scoreHandler struct {
	scores Scores
}

// ListScores returns the overall leaderboard.
func (h *scoreHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.scores.TopScores(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	respondJSON(w, http.StatusOK, nonNil(entries))
}

// Best returns the best score on record.
func (h *scoreHandler) Best(w http.ResponseWriter, r *http.Request) {
	best, err := h.scores.HighScore()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cannot load high score")
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"score": best})
}

// PlayerScores returns one player's best runs.
func (h *scoreHandler) PlayerScores(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.scores.PlayerScores(chi.URLParam(r, "player"), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	respondJSON(w, http.StatusOK, nonNil(entries))
}

// PlayerStats returns aggregated statistics for one player.
func (h *scoreHandler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	stats, err := h.scores.Stats(player)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}
	if stats.Runs == 0 {
		respondError(w, http.StatusNotFound, fmt.Sprintf("no runs for %s", player))
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// parseLimit reads the optional limit query parameter.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, nil
}

func nonNil(entries []storage.ScoreEntry) []storage.ScoreEntry {
	if entries == nil {
		return []storage.ScoreEntry{}
	}
	return entries
}

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Headers are already written
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Server is the leaderboard HTTP server.
type Server struct {
	http   *http.Server
	logger *log.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, scores Scores, logger *log.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           SetupRoutes(scores, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// ListenAndServe serves until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting HTTP server", "address", s.http.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
