// Package api serves league tables, standings and refresh requests over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/repository"
	service "github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/app"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/types"
)

const defaultRateBurst = 100

// Dependencies required by HTTP handlers.
type Dependencies interface {
	RequestRefresh(ctx context.Context, leagueID string, reason model.RefreshReason) (types.RefreshAck, error)

	Leagues(ctx context.Context) []string
	History(ctx context.Context, leagueID string) ([]repository.BuildSummary, error)
	Players(ctx context.Context, leagueID string, q service.TableQuery) (types.Table, error)
	Teams(ctx context.Context, leagueID string, q service.TableQuery) (types.Table, error)
	Standings(ctx context.Context, leagueID, pool string) (types.Standings, error)
	Rank(ctx context.Context, leagueID, kind, name, stat, mode string) (types.RankResult, error)
	Review(ctx context.Context, leagueID string) (types.Review, error)
}

// Server wires HTTP routes for the stats API.
type Server struct {
	deps  Dependencies
	stats StatsProvider

	rateRPS   float64
	rateBurst int
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit limits requests to rps with the given burst. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.rateRPS = rps
		if burst > 0 {
			s.rateBurst = burst
		}
	}
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, stats StatsProvider, opts ...Option) *Server {
	s := &Server{deps: deps, stats: stats, rateBurst: defaultRateBurst}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the router with every endpoint and middleware attached.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, NewKind("api.route", ErrNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Code: "method_not_allowed", Message: http.StatusText(http.StatusMethodNotAllowed)})
	})

	r.Use(metricsMiddleware)
	r.Use(recoverPanic)

	r.Get("/healthz", handleHealth)
	r.Get("/stats", s.handleStats)

	r.Group(func(r chi.Router) {
		if s.rateRPS > 0 {
			r.Use(rateLimit(s.rateRPS, s.rateBurst))
		}
		r.Get("/leagues", s.handleLeagues)
		r.Route("/leagues/{leagueID}", func(r chi.Router) {
			r.Post("/refresh", s.handleRefresh)
			r.Get("/history", s.handleHistory)
			r.Get("/players", s.handlePlayers)
			r.Get("/teams", s.handleTeams)
			r.Get("/standings", s.handleStandings)
			r.Get("/rank", s.handleRank)
			r.Get("/review", s.handleReview)
		})
	})
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusOf(err)
	msg := http.StatusText(status)
	if err != nil && status != http.StatusInternalServerError {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// readInt returns def when key is absent and an error when it is not an integer.
func readInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, err
	}
	return n, nil
}
