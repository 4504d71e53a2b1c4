package analysis

import (
	"strings"
	"testing"
)

const sampleBatch = `{"hands":[{
	"id": "h1",
	"dealerSeat": 1,
	"players": [
		{"id": "alice", "seat": 1, "stack": 200},
		{"id": "bob", "seat": 2, "stack": 180},
		{"id": "carol", "seat": 3, "stack": 150}
	],
	"events": [
		{"payload": {"type": 3, "seat": 2, "amount": 0.5}},
		{"payload": {"type": 2, "seat": 3, "amount": 1}},
		{"payload": {"type": 8, "seat": 1, "amount": 3}},
		{"payload": {"type": 11, "seat": 2}},
		{"payload": {"type": 11, "seat": 3}}
	]
}]}`

func TestAnalyzeKnownPlayer(t *testing.T) {
	svc := NewService()
	resp, err := svc.Analyze(strings.NewReader(sampleBatch), "alice")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if resp.HandsParsed != 1 || resp.HandsPlayed != 1 {
		t.Fatalf("hands = %d/%d, want 1/1", resp.HandsParsed, resp.HandsPlayed)
	}
	if resp.Analysis == nil || resp.Analysis.Profile == nil {
		t.Fatal("expected a profile")
	}
	if resp.Analysis.Profile.PlayerID != "alice" {
		t.Fatalf("PlayerID = %q", resp.Analysis.Profile.PlayerID)
	}
	// one hand is far under every sample gate
	if resp.Analysis.Profile.VPIP != nil {
		t.Fatal("VPIP should be gated out on a single hand")
	}
	if resp.Matches != nil {
		t.Fatal("no archetype matches without gated core stats")
	}
}

func TestAnalyzeUnknownPlayer(t *testing.T) {
	svc := NewService()
	if _, err := svc.Analyze(strings.NewReader(sampleBatch), "mallory"); err != ErrPlayerNotFound {
		t.Fatalf("err = %v, want ErrPlayerNotFound", err)
	}
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	svc := NewService()
	if _, err := svc.Analyze(strings.NewReader(`{"hands":[]}`), "alice"); err != ErrNoHands {
		t.Fatalf("err = %v, want ErrNoHands", err)
	}
}

func TestAnalyzeMissingPlayerID(t *testing.T) {
	svc := NewService()
	if _, err := svc.Analyze(strings.NewReader(sampleBatch), ""); err != ErrInvalidRequest {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestPlayersListing(t *testing.T) {
	svc := NewService()
	resp, err := svc.Players(strings.NewReader(sampleBatch))
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("players = %d, want 3", len(resp.Items))
	}
	// equal hand counts fall back to id order
	if resp.Items[0].PlayerID != "alice" {
		t.Fatalf("first player = %q", resp.Items[0].PlayerID)
	}
}
