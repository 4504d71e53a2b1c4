// Package httptransport wires the analyzer and trainer services into
// the HTTP API.
package httptransport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	appanalysis "github.com/gabe-silva/poker-analyzer/internal/app/analysis"
	apptrainer "github.com/gabe-silva/poker-analyzer/internal/app/trainer"
	"github.com/gabe-silva/poker-analyzer/internal/config"
	"github.com/gabe-silva/poker-analyzer/internal/store"
)

func NewRouter(st *store.Store, cfg config.ServerConfig, trainerSvc *apptrainer.Service, analysisSvc *appanalysis.Service) *chi.Mux {
	trainerHandlers := NewTrainerHandlers(trainerSvc)
	analysisHandlers := NewAnalysisHandlers(analysisSvc)
	liveHandlers := NewLiveHandlers(trainerSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", healthHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Use(BodyCaptureMiddleware(cfg.BodyCaptureBytes))

		r.Post("/analyze", analysisHandlers.Analyze())
		r.Post("/analyze/players", analysisHandlers.Players())

		r.Post("/scenarios", trainerHandlers.Generate())
		r.Get("/scenarios/{scenario_id}", trainerHandlers.GetScenario())
		r.Post("/scenarios/{scenario_id}/evaluate", trainerHandlers.Evaluate())
		r.Get("/attempts", trainerHandlers.RecentAttempts())
		r.Get("/attempts/{attempt_id}", trainerHandlers.GetAttempt())
		r.Get("/progress", trainerHandlers.Progress())

		r.Post("/live/sessions", liveHandlers.Create())
		r.Get("/live/sessions/{session_id}", liveHandlers.Get())
		r.Post("/live/sessions/{session_id}/actions", liveHandlers.Action())
		r.Post("/live/sessions/{session_id}/next-hand", liveHandlers.NextHand())
	})

	return r
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"ok":false,"db":"down"}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"db":"up"}`)
	}
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
