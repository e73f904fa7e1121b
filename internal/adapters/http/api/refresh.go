package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/types"
)

const maxRefreshBody = 1 << 10

type refreshRequest struct {
	Reason string `json:"reason"`
}

// handleRefresh handles POST /leagues/{leagueID}/refresh. The body is optional.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.refresh"
	leagueID := chi.URLParam(r, "leagueID")

	req := refreshRequest{Reason: string(model.ReasonManual)}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRefreshBody))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	reason := model.RefreshReason(strings.TrimSpace(req.Reason))
	if reason == "" {
		reason = model.ReasonManual
	}

	ack, err := s.deps.RequestRefresh(r.Context(), leagueID, reason)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	status := http.StatusAccepted
	if ack.Status == types.StatusCoalesced {
		status = http.StatusOK
	}
	writeJSON(w, status, ack)
}
