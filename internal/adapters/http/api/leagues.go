package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	service "github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/app"
)

func (s *Server) handleLeagues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"leagues": s.deps.Leagues(r.Context())})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.history"
	h, err := s.deps.History(r.Context(), chi.URLParam(r, "leagueID"))
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// handlePlayers handles GET /leagues/{leagueID}/players?stat=&mode=&limit=.
func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.players"
	q, err := tableQuery(r)
	if err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	table, err := s.deps.Players(r.Context(), chi.URLParam(r, "leagueID"), q)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// handleTeams handles GET /leagues/{leagueID}/teams?stat=&mode=&limit=.
func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.teams"
	q, err := tableQuery(r)
	if err != nil {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	table, err := s.deps.Teams(r.Context(), chi.URLParam(r, "leagueID"), q)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func tableQuery(r *http.Request) (service.TableQuery, error) {
	qs := r.URL.Query()
	limit, err := readInt(r, "limit", 0)
	if err != nil {
		return service.TableQuery{}, errLimit
	}
	if limit < 0 {
		return service.TableQuery{}, errLimit
	}
	return service.TableQuery{Stat: qs.Get("stat"), Mode: qs.Get("mode"), Limit: limit}, nil
}

// handleStandings handles GET /leagues/{leagueID}/standings?pool=.
func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	const op = "api.standings"
	st, err := s.deps.Standings(r.Context(), chi.URLParam(r, "leagueID"), r.URL.Query().Get("pool"))
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleRank handles GET /leagues/{leagueID}/rank?kind=&name=&stat=&mode=.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.rank"
	qs := r.URL.Query()
	res, err := s.deps.Rank(r.Context(), chi.URLParam(r, "leagueID"),
		qs.Get("kind"), qs.Get("name"), qs.Get("stat"), qs.Get("mode"))
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleReview handles GET /leagues/{leagueID}/review.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	const op = "api.review"
	rv, err := s.deps.Review(r.Context(), chi.URLParam(r, "leagueID"))
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rv)
}
