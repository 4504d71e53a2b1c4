package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apptrainer "github.com/gabe-silva/poker-analyzer/internal/app/trainer"
	"github.com/gabe-silva/poker-analyzer/internal/live"
)

type LiveHandlers struct {
	svc *apptrainer.Service
}

func NewLiveHandlers(svc *apptrainer.Service) *LiveHandlers {
	return &LiveHandlers{svc: svc}
}

func (h *LiveHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg live.MatchConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		st := h.svc.CreateLiveSession(cfg)
		_ = json.NewEncoder(w).Encode(st)
	}
}

func (h *LiveHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := h.svc.GetLiveSession(chi.URLParam(r, "session_id"))
		if err != nil {
			writeTrainerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(st)
	}
}

func (h *LiveHandlers) Action() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Action string   `json:"action"`
			SizeBB *float64 `json:"size_bb"`
			Intent string   `json:"intent"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		st, err := h.svc.LiveAction(chi.URLParam(r, "session_id"), req.Action, req.SizeBB, req.Intent)
		if err != nil {
			writeTrainerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(st)
	}
}

func (h *LiveHandlers) NextHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := h.svc.LiveNextHand(chi.URLParam(r, "session_id"))
		if err != nil {
			writeTrainerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(st)
	}
}
