package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tuanvumaihuynh/graphql-crm/internal/apperr"
	"github.com/tuanvumaihuynh/graphql-crm/internal/http/apierr"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	ok, err := s.health.IsHealthy(r.Context())
	if err == nil && !ok {
		err = errors.New("database is not healthy")
	}
	if err != nil {
		s.logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
		s.writeJSON(w, r, http.StatusServiceUnavailable, apierr.New(apperr.UnavailableErr.WrapParent(err)))
		return
	}

	s.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Service) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WarnContext(r.Context(), "error encoding response", slog.Any("error", err))
	}
}
