package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/gabe-silva/poker-analyzer/internal/app/analysis"
	apptrainer "github.com/gabe-silva/poker-analyzer/internal/app/trainer"
	"github.com/gabe-silva/poker-analyzer/internal/config"
	"github.com/gabe-silva/poker-analyzer/internal/store"
)

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()
	st, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	cfg := config.ServerConfig{HTTPAddr: ":0", DBPath: ":memory:", BodyCaptureBytes: 4096}
	return NewRouter(st, cfg, apptrainer.NewService(st, 120), appanalysis.NewService())
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func TestHealthz(t *testing.T) {
	r := testRouter(t)
	rec, out := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if out["ok"] != true || out["db"] != "up" {
		t.Fatalf("body = %v", out)
	}
}

func TestScenarioLifecycle(t *testing.T) {
	r := testRouter(t)

	rec, out := doJSON(t, r, http.MethodPost, "/api/scenarios", map[string]any{"seed": 42})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d body = %s", rec.Code, rec.Body.String())
	}
	id, _ := out["scenario_id"].(string)
	if id == "" {
		t.Fatalf("no scenario_id in %v", out)
	}

	rec, _ = doJSON(t, r, http.MethodGet, "/api/scenarios/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec, out = doJSON(t, r, http.MethodGet, "/api/scenarios/missing", nil)
	if rec.Code != http.StatusNotFound || out["error"] != "scenario_not_found" {
		t.Fatalf("miss status = %d body = %v", rec.Code, out)
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	r := testRouter(t)

	_, out := doJSON(t, r, http.MethodPost, "/api/scenarios", map[string]any{"seed": 42})
	id := out["scenario_id"].(string)

	rec, out := doJSON(t, r, http.MethodPost, "/api/scenarios/"+id+"/evaluate",
		map[string]any{
			"decision":           map[string]any{"action": "fold"},
			"free_response_text": "not enough equity against the bettor's range",
		})
	if rec.Code != http.StatusOK {
		t.Fatalf("evaluate status = %d body = %s", rec.Code, rec.Body.String())
	}
	attemptID, _ := out["attempt_id"].(string)
	if attemptID == "" {
		t.Fatalf("no attempt_id in %v", out)
	}

	rec, out = doJSON(t, r, http.MethodGet, "/api/attempts/"+attemptID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("attempt status = %d", rec.Code)
	}
	if out["FreeResponse"] != "not enough equity against the bettor's range" {
		t.Fatalf("attempt body dropped the free response: %v", out)
	}

	rec, out = doJSON(t, r, http.MethodPost, "/api/scenarios/"+id+"/evaluate",
		map[string]any{"decision": map[string]any{"action": "timebank"}})
	if rec.Code != http.StatusUnprocessableEntity || out["error"] != "decision_not_in_table" {
		t.Fatalf("bad decision status = %d body = %v", rec.Code, out)
	}

	rec, out = doJSON(t, r, http.MethodGet, "/api/progress?by=street", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("progress status = %d", rec.Code)
	}
	if out["dimension"] != "street" {
		t.Fatalf("progress body = %v", out)
	}

	rec, _ = doJSON(t, r, http.MethodGet, "/api/attempts?limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("attempts status = %d", rec.Code)
	}
}

const analyzeBatch = `{"hands":[{
	"id": "h1", "dealerSeat": 1,
	"players": [{"id": "alice", "seat": 1, "stack": 200}, {"id": "bob", "seat": 2, "stack": 180}],
	"events": [
		{"payload": {"type": 3, "seat": 1, "amount": 0.5}},
		{"payload": {"type": 2, "seat": 2, "amount": 1}},
		{"payload": {"type": 11, "seat": 1}}
	]
}]}`

func TestAnalyzeEndpoint(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze?player_id=alice", strings.NewReader(analyzeBatch))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze status = %d body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/analyze?player_id=mallory", strings.NewReader(analyzeBatch))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown player status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/analyze/players", strings.NewReader(analyzeBatch))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("players status = %d", rec.Code)
	}
}

func TestLiveEndpoints(t *testing.T) {
	r := testRouter(t)

	rec, out := doJSON(t, r, http.MethodPost, "/api/live/sessions", map[string]any{"seed": 77})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d body = %s", rec.Code, rec.Body.String())
	}
	id, _ := out["session_id"].(string)
	if id == "" {
		t.Fatalf("no session_id in %v", out)
	}

	rec, _ = doJSON(t, r, http.MethodGet, "/api/live/sessions/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec, _ = doJSON(t, r, http.MethodPost, "/api/live/sessions/"+id+"/actions", map[string]any{"action": "fold"})
	if rec.Code != http.StatusOK {
		t.Fatalf("action status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, r, http.MethodPost, "/api/live/sessions/"+id+"/next-hand", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("next hand status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec, out = doJSON(t, r, http.MethodGet, "/api/live/sessions/missing", nil)
	if rec.Code != http.StatusNotFound || out["error"] != "session_not_found" {
		t.Fatalf("miss status = %d body = %v", rec.Code, out)
	}
}

func TestRegisteredRoutes(t *testing.T) {
	r := testRouter(t)
	var routes []string
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, fmt.Sprintf("%s %s", method, route))
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	sort.Strings(routes)
	want := []string{
		"GET /healthz",
		"GET /api/progress",
		"POST /api/analyze",
		"POST /api/scenarios",
		"POST /api/live/sessions",
	}
	joined := strings.Join(routes, "\n")
	for _, w := range want {
		if !strings.Contains(joined, w) {
			t.Fatalf("route %q missing in:\n%s", w, joined)
		}
	}
}
