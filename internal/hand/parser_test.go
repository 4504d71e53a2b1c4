package hand

import (
	"strings"
	"testing"

	"github.com/gabe-silva/poker-analyzer/internal/poker"
)

const threeWayHand = `{
	"id": "h1",
	"dealerSeat": 1,
	"players": [
		{"id": "alice", "seat": 1, "stack": 200, "cards": ["Ah", "Kh"]},
		{"id": "bob", "seat": 2, "stack": 180},
		{"id": "carol", "seat": 3, "stack": 150}
	],
	"events": [
		{"payload": {"type": 3, "seat": 2, "amount": 0.5}},
		{"payload": {"type": 2, "seat": 3, "amount": 1}},
		{"payload": {"type": 8, "seat": 1, "amount": 3}},
		{"payload": {"type": 11, "seat": 2}},
		{"payload": {"type": 7, "seat": 3, "amount": 2}},
		{"payload": {"type": 9, "cards": ["Qs", "7h", "2d"]}},
		{"payload": {"type": 0, "seat": 3}},
		{"payload": {"type": 8, "seat": 1, "amount": 4}},
		{"payload": {"type": 11, "seat": 3}},
		{"payload": {"type": 10, "seat": 1, "amount": 7.5}}
	]
}`

func parseOneHand(t *testing.T, body string) *Record {
	t.Helper()
	res, err := NewParser().ParseBytes([]byte("[" + body + "]"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.ParseErrors != 0 || len(res.Hands) != 1 {
		t.Fatalf("expected 1 clean hand, got %d hands %d errors", len(res.Hands), res.ParseErrors)
	}
	return res.Hands[0]
}

func TestParseBareListAndWrapped(t *testing.T) {
	p := NewParser()
	bare, err := p.ParseBytes([]byte("[" + threeWayHand + "]"))
	if err != nil {
		t.Fatalf("bare list: %v", err)
	}
	wrapped, err := p.ParseBytes([]byte(`{"hands":[` + threeWayHand + `]}`))
	if err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if len(bare.Hands) != 1 || len(wrapped.Hands) != 1 {
		t.Fatalf("hands = %d / %d, want 1 / 1", len(bare.Hands), len(wrapped.Hands))
	}
	if bare.Hands[0].HandID != "h1" {
		t.Fatalf("HandID = %q", bare.Hands[0].HandID)
	}
}

func TestParseBuildsActionsAndBoard(t *testing.T) {
	rec := parseOneHand(t, threeWayHand)

	if got := len(rec.Board); got != 3 {
		t.Fatalf("board cards = %d, want 3", got)
	}
	if rec.Board[0] != "Qs" {
		t.Fatalf("board[0] = %q", rec.Board[0])
	}
	if rec.SmallBlind != 0.5 || rec.BigBlind != 1 {
		t.Fatalf("blinds = %v/%v", rec.SmallBlind, rec.BigBlind)
	}

	flop := rec.ActionsOn(poker.StreetFlop)
	if len(flop) != 3 {
		t.Fatalf("flop actions = %d, want 3", len(flop))
	}
	if flop[1].Kind != ActionBetRaise || flop[1].Amount != 4 {
		t.Fatalf("flop bet = %+v", flop[1])
	}
	// pot before the flop bet: 0.5 + 1 + 3 + 2
	if flop[1].PotBefore != 6.5 {
		t.Fatalf("PotBefore = %v, want 6.5", flop[1].PotBefore)
	}
}

func TestParseAssignsDealerRelativePositions(t *testing.T) {
	rec := parseOneHand(t, threeWayHand)

	alice, _ := rec.PlayerByID("alice")
	bob, _ := rec.PlayerByID("bob")
	carol, _ := rec.PlayerByID("carol")
	if alice.Position != 0 || !alice.IsDealer {
		t.Fatalf("alice = %+v, want dealer at position 0", alice)
	}
	if bob.Position != 1 || carol.Position != 2 {
		t.Fatalf("positions bob=%d carol=%d, want 1 and 2", bob.Position, carol.Position)
	}
	if len(alice.HoleCards) != 2 || alice.HoleCards[0] != "Ah" {
		t.Fatalf("hole cards = %v", alice.HoleCards)
	}
}

func TestParseResults(t *testing.T) {
	rec := parseOneHand(t, threeWayHand)

	if !rec.WonPot("alice") {
		t.Fatal("alice should have won the pot")
	}
	res := rec.Results["alice"]
	if res.AmountWon != 7.5 {
		t.Fatalf("AmountWon = %v, want 7.5", res.AmountWon)
	}
	// carol folded the flop before the award, so she never showed down
	if rec.ReachedShowdown("carol") {
		t.Fatal("carol folded, no showdown")
	}
}

func TestAmountFallsBackToValueField(t *testing.T) {
	body := strings.Replace(threeWayHand, `"type": 8, "seat": 1, "amount": 3`, `"type": 8, "seat": 1, "value": 3`, 1)
	rec := parseOneHand(t, body)

	pre := rec.ActionsOn(poker.StreetPreflop)
	var raise *ActionEvent
	for i := range pre {
		if pre[i].PlayerID == "alice" && pre[i].Kind == ActionBetRaise {
			raise = &pre[i]
		}
	}
	if raise == nil || raise.Amount != 3 {
		t.Fatalf("raise amount not read from value field: %+v", raise)
	}
}

func TestUnknownEventTypeWarnsButKeepsHand(t *testing.T) {
	body := strings.Replace(threeWayHand, `{"payload": {"type": 0, "seat": 3}},`, `{"payload": {"type": 99, "seat": 3}},`, 1)
	res, err := NewParser().ParseBytes([]byte("[" + body + "]"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(res.Hands) != 1 {
		t.Fatalf("hand should survive an unknown event, got %d hands", len(res.Hands))
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for the unknown event type")
	}
}

func TestMalformedHandSkippedNotFatal(t *testing.T) {
	res, err := NewParser().ParseBytes([]byte(`["garbage", ` + threeWayHand + `]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.ParseErrors != 1 || len(res.Hands) != 1 {
		t.Fatalf("got %d hands %d errors, want 1 and 1", len(res.Hands), res.ParseErrors)
	}
}

func TestResolveAmountOrder(t *testing.T) {
	a, v := 5.0, 7.0
	if got := ResolveAmount(&a, &v); got != 5 {
		t.Fatalf("amount should win, got %v", got)
	}
	if got := ResolveAmount(nil, &v); got != 7 {
		t.Fatalf("value fallback, got %v", got)
	}
	if got := ResolveAmount(nil, nil); got != 0 {
		t.Fatalf("zero fallback, got %v", got)
	}
}
