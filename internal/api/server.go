package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/MJE43/arena-go/internal/games"
	"github.com/MJE43/arena-go/internal/store"
)

// Server is the read-only replay API over a recorded episode database. It
// inspects what was played; it is not a play transport.
type Server struct {
	db        store.DB
	log       zerolog.Logger
	startTime time.Time
}

// NewServer creates a replay API server.
func NewServer(db store.DB, log zerolog.Logger) *Server {
	return &Server{
		db:        db,
		log:       log,
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/games", s.handleGames)
	r.Get("/episodes", s.handleListEpisodes)
	r.Get("/episodes/{id}", s.handleGetEpisode)
	r.Get("/episodes/{id}/events", s.handleGetEvents)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"uptime":          time.Since(s.startTime).String(),
		"games_available": len(games.List()),
	})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"games": games.List()})
}

func (s *Server) handleListEpisodes(w http.ResponseWriter, r *http.Request) {
	q := store.EpisodesQuery{
		Game:    r.URL.Query().Get("game"),
		Page:    intQuery(r, "page", 1),
		PerPage: intQuery(r, "perPage", 50),
	}
	list, err := s.db.ListEpisodes(q)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "failed to list episodes", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetEpisode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ep, err := s.db.GetEpisode(id)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, "episode not found", err)
		return
	}
	writeJSON(w, http.StatusOK, ep)
}

func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	events, err := s.db.GetEvents(id, intQuery(r, "limit", 500), intQuery(r, "offset", 0))
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "failed to load events", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"episode_id": id, "events": events})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func intQuery(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
