package stats

import (
	"testing"

	"github.com/gabe-silva/poker-analyzer/internal/hand"
	"github.com/gabe-silva/poker-analyzer/internal/poker"
)

func raiseHand(id string) *hand.Record {
	return &hand.Record{
		HandID: id,
		Players: []hand.Player{
			{PlayerID: "hero", Seat: 0},
			{PlayerID: "villain", Seat: 1},
		},
		BigBlind: 2,
		Actions: []hand.ActionEvent{
			{PlayerID: "villain", Kind: hand.ActionSmallBlind, Street: poker.StreetPreflop, Amount: 1},
			{PlayerID: "hero", Kind: hand.ActionBigBlind, Street: poker.StreetPreflop, Amount: 2},
			{PlayerID: "hero", Kind: hand.ActionBetRaise, Street: poker.StreetPreflop, Amount: 6, PotBefore: 3},
			{PlayerID: "villain", Kind: hand.ActionFold, Street: poker.StreetPreflop},
		},
	}
}

func callHand(id string) *hand.Record {
	return &hand.Record{
		HandID: id,
		Players: []hand.Player{
			{PlayerID: "hero", Seat: 0},
			{PlayerID: "villain", Seat: 1},
		},
		BigBlind: 2,
		Actions: []hand.ActionEvent{
			{PlayerID: "villain", Kind: hand.ActionBetRaise, Street: poker.StreetPreflop, Amount: 6, PotBefore: 3},
			{PlayerID: "hero", Kind: hand.ActionCall, Street: poker.StreetPreflop, Amount: 6, PotBefore: 9},
		},
	}
}

func foldHand(id string) *hand.Record {
	return &hand.Record{
		HandID: id,
		Players: []hand.Player{
			{PlayerID: "hero", Seat: 0},
			{PlayerID: "villain", Seat: 1},
		},
		BigBlind: 2,
		Actions: []hand.ActionEvent{
			{PlayerID: "villain", Kind: hand.ActionBetRaise, Street: poker.StreetPreflop, Amount: 6, PotBefore: 3},
			{PlayerID: "hero", Kind: hand.ActionFold, Street: poker.StreetPreflop},
		},
	}
}

func repeat(n int, build func(string) *hand.Record) []*hand.Record {
	out := make([]*hand.Record, n)
	for i := range out {
		out[i] = build(string(rune('a' + i%26)))
	}
	return out
}

func TestSmallSampleIsUnknown(t *testing.T) {
	hands := repeat(19, raiseHand)
	p := BuildProfile("hero", hands)
	if got := ClassifyStyle(p); got != StyleUnknown {
		t.Fatalf("expected Unknown below minimum sample, got %s", got)
	}
	if p.VPIP != nil {
		t.Fatalf("vpip should be gated out at %d hands", p.HandsPlayed)
	}
}

func TestRatesStayInRange(t *testing.T) {
	var hands []*hand.Record
	hands = append(hands, repeat(15, raiseHand)...)
	hands = append(hands, repeat(10, callHand)...)
	hands = append(hands, repeat(10, foldHand)...)
	p := BuildProfile("hero", hands)

	for name, v := range map[string]*float64{
		"vpip": p.VPIP, "pfr": p.PFR, "limp": p.LimpRate,
	} {
		if v == nil {
			t.Fatalf("%s should be published at %d hands", name, p.HandsPlayed)
		}
		if *v < 0 || *v > 1 {
			t.Fatalf("%s out of range: %f", name, *v)
		}
	}
	if p.Gap() < 0 {
		t.Fatalf("gap must be clamped at zero, got %f", p.Gap())
	}
}

func TestClassifyManiac(t *testing.T) {
	p := &Profile{HandsPlayed: 200}
	p.Counts.VPIP = Counter{Hits: 100, Opps: 200}
	p.Counts.PFR = Counter{Hits: 70, Opps: 200}
	af := 4.2
	p.AF = &af
	if got := ClassifyStyle(p); got != StyleManiac {
		t.Fatalf("expected Maniac, got %s", got)
	}
}

func TestClassifyNit(t *testing.T) {
	p := &Profile{HandsPlayed: 200}
	p.Counts.VPIP = Counter{Hits: 24, Opps: 200}
	p.Counts.PFR = Counter{Hits: 16, Opps: 200}
	af := 1.8
	p.AF = &af
	if got := ClassifyStyle(p); got != StyleNit {
		t.Fatalf("expected Nit, got %s", got)
	}
}

func TestClassifyQuadrants(t *testing.T) {
	cases := []struct {
		name       string
		vpip, pfr  int
		af         float64
		want       Style
	}{
		{"tag", 36, 32, 2.6, StyleTightAggro},           // 18/16
		{"rock", 32, 20, 1.2, StyleTightPassive},        // 16/10
		{"lag", 66, 48, 2.8, StyleLooseAggro},           // 33/24
		{"station", 70, 20, 1.1, StyleLoosePassive},     // 35/10
		{"mid-aggressive", 44, 40, 2.4, StyleTightAggro}, // 22/20 under the 24% midpoint
		{"mid-loose-aggressive", 52, 46, 2.4, StyleLooseAggro}, // 26/23 over the midpoint
	}
	for _, tc := range cases {
		p := &Profile{HandsPlayed: 200}
		p.Counts.VPIP = Counter{Hits: tc.vpip, Opps: 200}
		p.Counts.PFR = Counter{Hits: tc.pfr, Opps: 200}
		af := tc.af
		p.AF = &af
		if got := ClassifyStyle(p); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestFoldToThreeBetRuleNeedsSample(t *testing.T) {
	build := func(opps int) *Profile {
		p := &Profile{HandsPlayed: 100}
		p.Counts.FoldTo3Bet = Counter{Hits: opps, Opps: opps} // folds every time
		p.FoldTo3Bet = p.Counts.FoldTo3Bet.Gated(MinFoldToThreeBetOpps)
		return p
	}

	fires := func(p *Profile) bool {
		for _, e := range Exploits(p) {
			if e.Confidence == 0.82 && e.Category == "preflop" {
				return true
			}
		}
		return false
	}

	if fires(build(14)) {
		t.Fatalf("fold-to-3bet exploit must not fire at 14 opportunities")
	}
	if !fires(build(15)) {
		t.Fatalf("fold-to-3bet exploit should fire at 15 opportunities")
	}
}

func TestExploitsCoverThreeStreets(t *testing.T) {
	p := BuildProfile("hero", repeat(25, raiseHand))
	streets := map[string]bool{}
	for _, e := range Exploits(p) {
		streets[e.Category] = true
		if e.Confidence > maxExploitConfidence {
			t.Fatalf("confidence above cap: %f", e.Confidence)
		}
	}
	if len(streets) < 3 {
		t.Fatalf("expected at least 3 streets covered, got %v", streets)
	}
}

func TestAggressionFactorWithoutCalls(t *testing.T) {
	agg := &Aggregate{}
	agg.Flop.Bets = 5
	if got := agg.AFRaw(); got != 5 {
		t.Fatalf("zero-call aggression factor should degrade to the bet count, got %f", got)
	}
}

func TestConfidenceTiers(t *testing.T) {
	cases := map[int]string{
		0:    ConfidenceLow,
		99:   ConfidenceLow,
		100:  ConfidenceMedium,
		299:  ConfidenceMedium,
		300:  ConfidenceHigh,
		999:  ConfidenceHigh,
		1000: ConfidenceVeryHigh,
	}
	for hands, want := range cases {
		if got := ConfidenceTier(hands); got != want {
			t.Fatalf("tier(%d): expected %s, got %s", hands, want, got)
		}
	}
}

func TestThreeBetDetection(t *testing.T) {
	rec := &hand.Record{
		HandID: "h1",
		Players: []hand.Player{
			{PlayerID: "hero", Seat: 0},
			{PlayerID: "villain", Seat: 1},
		},
		BigBlind: 2,
		Actions: []hand.ActionEvent{
			{PlayerID: "villain", Kind: hand.ActionBetRaise, Street: poker.StreetPreflop, Amount: 5, PotBefore: 3},
			{PlayerID: "hero", Kind: hand.ActionBetRaise, Street: poker.StreetPreflop, Amount: 16, PotBefore: 8},
		},
	}
	agg := Accumulate("hero", []*hand.Record{rec})
	if agg.ThreeBet.Opps != 1 || agg.ThreeBet.Hits != 1 {
		t.Fatalf("expected one 3-bet in one opportunity, got %d/%d", agg.ThreeBet.Hits, agg.ThreeBet.Opps)
	}
	if agg.Limp.Hits != 0 {
		t.Fatalf("a 3-bet is not a limp")
	}
}

func TestCBetTracking(t *testing.T) {
	rec := &hand.Record{
		HandID: "h2",
		Players: []hand.Player{
			{PlayerID: "hero", Seat: 0},
			{PlayerID: "villain", Seat: 1},
		},
		BigBlind: 2,
		Actions: []hand.ActionEvent{
			{PlayerID: "hero", Kind: hand.ActionBetRaise, Street: poker.StreetPreflop, Amount: 6, PotBefore: 3},
			{PlayerID: "villain", Kind: hand.ActionCall, Street: poker.StreetPreflop, Amount: 6, PotBefore: 9},
			{PlayerID: "hero", Kind: hand.ActionBetRaise, Street: poker.StreetFlop, Amount: 8, PotBefore: 13},
			{PlayerID: "villain", Kind: hand.ActionFold, Street: poker.StreetFlop},
		},
	}
	agg := Accumulate("hero", []*hand.Record{rec})
	if agg.Flop.CBet.Opps != 1 || agg.Flop.CBet.Hits != 1 {
		t.Fatalf("expected a c-bet hit, got %d/%d", agg.Flop.CBet.Hits, agg.Flop.CBet.Opps)
	}
	vAgg := Accumulate("villain", []*hand.Record{rec})
	if vAgg.Flop.FacedBet.Opps != 1 || vAgg.Flop.FacedBet.Hits != 1 {
		t.Fatalf("villain should be counted as folding to a flop bet, got %d/%d",
			vAgg.Flop.FacedBet.Hits, vAgg.Flop.FacedBet.Opps)
	}
}
