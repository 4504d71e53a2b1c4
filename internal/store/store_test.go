package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestScenarioRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := NewID()
	payload := map[string]any{"street": "flop", "pot_bb": 14.5}
	created := time.Now().UTC().Truncate(time.Second)
	if err := s.SaveScenario(ctx, id, created, payload); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetScenario(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ScenarioID != id {
		t.Fatalf("id = %q, want %q", got.ScenarioID, id)
	}
	if len(got.Payload) == 0 {
		t.Fatal("payload empty")
	}
}

func TestGetScenarioMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetScenario(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAttemptRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	scnID := NewID()
	if err := s.SaveScenario(ctx, scnID, time.Now(), map[string]any{}); err != nil {
		t.Fatalf("save scenario: %v", err)
	}

	a := &Attempt{
		AttemptID:    NewID(),
		ScenarioID:   scnID,
		CreatedAt:    time.Now().UTC(),
		HeroPosition: "BTN",
		Street:       "flop",
		NodeType:     "single_raised_pot",
		EVLossBB:     0.42,
		Verdict:      "Good",
		FreeResponse: "pot odds are fine but the range is capped",
		Decision:     []byte(`{"action":"call"}`),
		Result:       []byte(`{}`),
	}
	if err := s.SaveAttempt(ctx, a); err != nil {
		t.Fatalf("save attempt: %v", err)
	}

	got, err := s.GetAttempt(ctx, a.AttemptID)
	if err != nil {
		t.Fatalf("get attempt: %v", err)
	}
	if got.Verdict != "Good" || got.EVLossBB != 0.42 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.FreeResponse != a.FreeResponse {
		t.Fatalf("free response = %q, want %q", got.FreeResponse, a.FreeResponse)
	}

	if _, err := s.GetAttempt(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProgressRollup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	scnID := NewID()
	if err := s.SaveScenario(ctx, scnID, time.Now(), map[string]any{}); err != nil {
		t.Fatalf("save scenario: %v", err)
	}

	rows := []struct {
		position string
		street   string
		loss     float64
		verdict  string
	}{
		{"BTN", "flop", 0.1, "Excellent"},
		{"BTN", "flop", 1.0, "Leak"},
		{"SB", "turn", 2.0, "Major Leak"},
	}
	for _, r := range rows {
		a := &Attempt{
			AttemptID:    NewID(),
			ScenarioID:   scnID,
			CreatedAt:    time.Now().UTC(),
			HeroPosition: r.position,
			Street:       r.street,
			NodeType:     "single_raised_pot",
			EVLossBB:     r.loss,
			Verdict:      r.verdict,
			Decision:     []byte(`{}`),
			Result:       []byte(`{}`),
		}
		if err := s.SaveAttempt(ctx, a); err != nil {
			t.Fatalf("save attempt: %v", err)
		}
	}

	buckets, err := s.Progress(ctx, "hero_position")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 position buckets, got %d", len(buckets))
	}
	// sorted by key: BTN then SB
	btn := buckets[0]
	if btn.Key != "BTN" || btn.Attempts != 2 {
		t.Fatalf("BTN bucket wrong: %+v", btn)
	}
	if btn.LeakCount != 1 || btn.LeakRate != 0.5 {
		t.Fatalf("BTN leak stats wrong: %+v", btn)
	}

	if _, err := s.Progress(ctx, "bogus"); err == nil {
		t.Fatal("expected error for unknown dimension")
	}
}

func TestRecentAttemptsOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	scnID := NewID()
	if err := s.SaveScenario(ctx, scnID, time.Now(), map[string]any{}); err != nil {
		t.Fatalf("save scenario: %v", err)
	}
	base := time.Now().UTC()
	var ids []string
	for i := 0; i < 3; i++ {
		a := &Attempt{
			AttemptID:    NewID(),
			ScenarioID:   scnID,
			CreatedAt:    base.Add(time.Duration(i) * time.Second),
			HeroPosition: "BTN",
			Street:       "flop",
			NodeType:     "single_raised_pot",
			Verdict:      "Good",
			Decision:     []byte(`{}`),
			Result:       []byte(`{}`),
		}
		if err := s.SaveAttempt(ctx, a); err != nil {
			t.Fatalf("save: %v", err)
		}
		ids = append(ids, a.AttemptID)
	}

	got, err := s.RecentAttempts(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("limit not applied, got %d", len(got))
	}
	if got[0].AttemptID != ids[2] {
		t.Fatalf("newest first expected, got %q", got[0].AttemptID)
	}
}

func TestNewIDsAreSortableUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 26 {
			t.Fatalf("unexpected id length: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
