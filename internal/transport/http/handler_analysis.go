package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appanalysis "github.com/gabe-silva/poker-analyzer/internal/app/analysis"
)

type AnalysisHandlers struct {
	svc *appanalysis.Service
}

func NewAnalysisHandlers(svc *appanalysis.Service) *AnalysisHandlers {
	return &AnalysisHandlers{svc: svc}
}

// Analyze accepts a hand-history batch in the request body and profiles
// the player named in the player_id query parameter.
func (h *AnalysisHandlers) Analyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("player_id")
		resp, err := h.svc.Analyze(r.Body, playerID)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Players lists every player present in the uploaded batch.
func (h *AnalysisHandlers) Players() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Players(r.Body)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appanalysis.ErrPlayerNotFound):
		WriteHTTPError(w, http.StatusNotFound, "player_not_found")
	case errors.Is(err, appanalysis.ErrNoHands):
		WriteHTTPError(w, http.StatusBadRequest, "no_hands")
	case errors.Is(err, appanalysis.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
