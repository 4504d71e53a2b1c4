package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apptrainer "github.com/gabe-silva/poker-analyzer/internal/app/trainer"
	"github.com/gabe-silva/poker-analyzer/internal/ev"
	"github.com/gabe-silva/poker-analyzer/internal/scenario"
)

type TrainerHandlers struct {
	svc *apptrainer.Service
}

func NewTrainerHandlers(svc *apptrainer.Service) *TrainerHandlers {
	return &TrainerHandlers{svc: svc}
}

func (h *TrainerHandlers) Generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg scenario.Config
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		scn, err := h.svc.GenerateScenario(r.Context(), cfg)
		if err != nil {
			writeTrainerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(scn)
	}
}

func (h *TrainerHandlers) GetScenario() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scn, err := h.svc.GetScenario(r.Context(), chi.URLParam(r, "scenario_id"))
		if err != nil {
			writeTrainerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(scn)
	}
}

func (h *TrainerHandlers) Evaluate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Decision         ev.Decision `json:"decision"`
			FreeResponseText string      `json:"free_response_text"`
			Trials           int         `json:"trials"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		resp, err := h.svc.Evaluate(r.Context(), apptrainer.EvaluateRequest{
			ScenarioID:       chi.URLParam(r, "scenario_id"),
			Decision:         req.Decision,
			FreeResponseText: req.FreeResponseText,
			Trials:           req.Trials,
		})
		if err != nil {
			writeTrainerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *TrainerHandlers) GetAttempt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := h.svc.GetAttempt(r.Context(), chi.URLParam(r, "attempt_id"))
		if err != nil {
			writeTrainerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

func (h *TrainerHandlers) RecentAttempts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := ParseLimit(r, 20, 200)
		resp, err := h.svc.RecentAttempts(r.Context(), limit)
		if err != nil {
			writeTrainerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *TrainerHandlers) Progress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Progress(r.Context(), r.URL.Query().Get("by"))
		if err != nil {
			writeTrainerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writeTrainerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apptrainer.ErrScenarioNotFound):
		WriteHTTPError(w, http.StatusNotFound, "scenario_not_found")
	case errors.Is(err, apptrainer.ErrAttemptNotFound):
		WriteHTTPError(w, http.StatusNotFound, "attempt_not_found")
	case errors.Is(err, apptrainer.ErrSessionNotFound):
		WriteHTTPError(w, http.StatusNotFound, "session_not_found")
	case errors.Is(err, apptrainer.ErrDecisionNotInTable):
		WriteHTTPError(w, http.StatusUnprocessableEntity, "decision_not_in_table")
	case errors.Is(err, apptrainer.ErrIllegalAction):
		WriteHTTPError(w, http.StatusUnprocessableEntity, "illegal_action")
	case errors.Is(err, apptrainer.ErrInvalidRequest),
		errors.Is(err, scenario.ErrInvalidTableSize),
		errors.Is(err, scenario.ErrInvalidStreet),
		errors.Is(err, scenario.ErrInvalidNodeType),
		errors.Is(err, scenario.ErrInvalidActionContext):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
