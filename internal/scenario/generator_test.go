package scenario

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/gabe-silva/poker-analyzer/internal/archetype"
	"github.com/gabe-silva/poker-analyzer/internal/poker"
)

type catalogueAdapter struct{}

func (catalogueAdapter) Label(key string) (string, bool) {
	a, ok := archetype.ByKey(key)
	if !ok {
		return "", false
	}
	return a.Label, true
}

func testGenerator() *Generator {
	n := 0
	return NewGenerator(catalogueAdapter{}, func() string {
		n++
		return fmt.Sprintf("scn_%06d", n)
	})
}

func TestSameSeedSameScenario(t *testing.T) {
	g := testGenerator()
	cfg := Config{Seed: 42, NumPlayers: 6, Street: poker.StreetFlop, HeroPosition: "BTN"}

	a, err := g.Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := g.Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !reflect.DeepEqual(a.Board, b.Board) {
		t.Fatalf("boards differ: %v vs %v", a.Board, b.Board)
	}
	if !reflect.DeepEqual(a.HeroHand, b.HeroHand) {
		t.Fatalf("hero hands differ: %v vs %v", a.HeroHand, b.HeroHand)
	}
	if !reflect.DeepEqual(a.ActionHistory, b.ActionHistory) {
		t.Fatalf("histories differ: %v vs %v", a.ActionHistory, b.ActionHistory)
	}
	if !reflect.DeepEqual(a.LegalActions, b.LegalActions) {
		t.Fatalf("legal actions differ: %v vs %v", a.LegalActions, b.LegalActions)
	}
	if a.PotBB != b.PotBB || a.ToCallBB != b.ToCallBB {
		t.Fatalf("pot state differs")
	}
}

func TestTableSizeBounds(t *testing.T) {
	g := testGenerator()
	for _, n := range []int{1, 8} {
		if _, err := g.Generate(Config{Seed: 1, NumPlayers: n}); err != ErrInvalidTableSize {
			t.Fatalf("num_players=%d: expected ErrInvalidTableSize, got %v", n, err)
		}
	}
	for n := 2; n <= 7; n++ {
		s, err := g.Generate(Config{Seed: 1, NumPlayers: n})
		if err != nil {
			t.Fatalf("num_players=%d: %v", n, err)
		}
		if len(s.Seats) != n {
			t.Fatalf("num_players=%d: got %d seats", n, len(s.Seats))
		}
	}
}

func TestBoardMatchesStreet(t *testing.T) {
	g := testGenerator()
	for street, count := range map[poker.Street]int{
		poker.StreetPreflop: 0,
		poker.StreetFlop:    3,
		poker.StreetTurn:    4,
		poker.StreetRiver:   5,
	} {
		s, err := g.Generate(Config{Seed: 7, NumPlayers: 6, Street: street})
		if err != nil {
			t.Fatalf("%s: %v", street, err)
		}
		if len(s.Board) != count {
			t.Fatalf("%s: expected %d board cards, got %d", street, count, len(s.Board))
		}
		if len(s.HeroHand) != 2 {
			t.Fatalf("%s: expected 2 hero cards", street)
		}
	}
}

func TestNoDuplicateCards(t *testing.T) {
	g := testGenerator()
	s, err := g.Generate(Config{Seed: 99, NumPlayers: 6, Street: poker.StreetRiver})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	seen := map[string]bool{}
	for _, c := range append(append([]string{}, s.HeroHand...), s.Board...) {
		if seen[c] {
			t.Fatalf("duplicate card %s", c)
		}
		seen[c] = true
	}
}

func TestFacingBetMenusAndRoles(t *testing.T) {
	g := testGenerator()
	s, err := g.Generate(Config{
		Seed: 5, NumPlayers: 6, Street: poker.StreetFlop,
		HeroPosition: "BTN", ActionContext: ContextFacingBet,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.ActionContext != ContextFacingBet {
		t.Fatalf("expected facing_bet, got %s", s.ActionContext)
	}
	if s.ToCallBB <= 0 {
		t.Fatalf("facing a bet must have a positive to_call, got %f", s.ToCallBB)
	}
	if !reflect.DeepEqual(s.LegalActions, []string{"fold", "call", "raise"}) {
		t.Fatalf("unexpected legal actions %v", s.LegalActions)
	}
	if len(s.RaiseSizeOptions) == 0 {
		t.Fatalf("raise menu must not be empty")
	}
	if len(s.BetSizeOptions) != 0 {
		t.Fatalf("bet menu must be empty when facing a bet")
	}

	bettors := 0
	for _, seat := range s.Seats {
		if seat.Role == RoleBettor {
			bettors++
		}
		if seat.IsHero && seat.Role != RoleHeroToAct {
			t.Fatalf("hero seat role should be hero_to_act, got %s", seat.Role)
		}
	}
	if bettors != 1 {
		t.Fatalf("expected exactly one bettor, got %d", bettors)
	}
}

func TestCheckedToHeroMenus(t *testing.T) {
	g := testGenerator()
	s, err := g.Generate(Config{
		Seed: 5, NumPlayers: 6, Street: poker.StreetFlop,
		HeroPosition: "BTN", ActionContext: ContextCheckedToHero,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.ToCallBB != 0 {
		t.Fatalf("checked to hero means nothing to call, got %f", s.ToCallBB)
	}
	if !reflect.DeepEqual(s.LegalActions, []string{"check", "bet"}) {
		t.Fatalf("unexpected legal actions %v", s.LegalActions)
	}
	if len(s.BetSizeOptions) == 0 {
		t.Fatalf("bet menu must not be empty")
	}
}

func TestContextDegradesWithoutActorsAhead(t *testing.T) {
	// Heads-up preflop with hero first to act: nobody can have bet yet.
	g := testGenerator()
	s, err := g.Generate(Config{
		Seed: 3, NumPlayers: 2, Street: poker.StreetPreflop,
		HeroPosition: "BTN", ActionContext: ContextFacingBetCall,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.ActionContext != ContextCheckedToHero {
		t.Fatalf("expected degradation to checked_to_hero, got %s", s.ActionContext)
	}
	if s.Requested != ContextFacingBetCall {
		t.Fatalf("requested context should be preserved, got %s", s.Requested)
	}
}

func TestStackClamps(t *testing.T) {
	g := testGenerator()
	stack := 900.0
	eq := false
	s, err := g.Generate(Config{
		Seed: 11, NumPlayers: 3, EqualStacks: &eq,
		Seats: []SeatOverride{{Position: "SB", StackBB: &stack}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, seat := range s.Seats {
		if seat.StackBB < 10 || seat.StackBB > 500 {
			t.Fatalf("stack out of bounds: %f", seat.StackBB)
		}
	}
}

func TestSeatOverridePinsArchetype(t *testing.T) {
	g := testGenerator()
	s, err := g.Generate(Config{
		Seed: 21, NumPlayers: 6, HeroPosition: "BTN",
		Seats: []SeatOverride{{Position: "SB", ArchetypeKey: "calling_station"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, seat := range s.Seats {
		if seat.Position == "SB" && seat.ArchetypeKey != "calling_station" {
			t.Fatalf("override ignored, got %s", seat.ArchetypeKey)
		}
	}
}

func TestHeroProfileDefaults(t *testing.T) {
	p := ParseHeroProfile(nil)
	if p.VPIP != 0.30 || p.PFR != 0.22 || p.AF != 2.8 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestHeroProfilePercentNormalization(t *testing.T) {
	v := 30.0
	p := ParseHeroProfile(&HeroProfileInput{VPIP: &v})
	if p.VPIP != 0.30 {
		t.Fatalf("percent input should normalize to decimal, got %f", p.VPIP)
	}
}

func TestGuidanceTargets(t *testing.T) {
	p := ParseHeroProfile(nil)
	g := p.GuidanceFor("BTN", poker.StreetFlop)
	if g.TargetOpenVPIPRange != [2]float64{0.44, 0.60} {
		t.Fatalf("unexpected BTN open band: %v", g.TargetOpenVPIPRange)
	}
	if len(g.Notes) == 0 {
		t.Fatalf("BTN guidance should carry notes")
	}
}

func TestFacingBetCoveringStackIsShoveDecision(t *testing.T) {
	g := testGenerator()
	eq := false
	short := 10.0
	covered := 0
	for seed := int64(1); seed <= 40; seed++ {
		s, err := g.Generate(Config{
			Seed: seed, NumPlayers: 6, Street: poker.StreetRiver,
			NodeType: NodeFourBet, ActionContext: ContextFacingBet,
			HeroPosition: "BTN", EqualStacks: &eq,
			Seats: []SeatOverride{{Position: "BTN", StackBB: &short}},
		})
		if err != nil {
			t.Fatalf("generate seed %d: %v", seed, err)
		}
		if s.ToCallBB > s.EffectiveStackBB {
			t.Fatalf("seed %d: to_call %f exceeds effective stack %f", seed, s.ToCallBB, s.EffectiveStackBB)
		}
		if s.ToCallBB == s.EffectiveStackBB {
			covered++
			if !reflect.DeepEqual(s.LegalActions, []string{"fold", "call"}) {
				t.Fatalf("seed %d: legal actions facing an all in = %v", seed, s.LegalActions)
			}
			if len(s.RaiseSizeOptions) != 0 {
				t.Fatalf("seed %d: raise menu offered against an all in: %v", seed, s.RaiseSizeOptions)
			}
		}
	}
	if covered == 0 {
		t.Fatalf("no generated spot had the bet covering the stack")
	}
}

func TestBlindDefaultsAreBigBlindDenominated(t *testing.T) {
	g := testGenerator()
	s, err := g.Generate(Config{Seed: 9, NumPlayers: 6})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.SB != 0.5 || s.BB != 1.0 {
		t.Fatalf("default blinds = %v/%v, want 0.5/1.0", s.SB, s.BB)
	}

	s, err = g.Generate(Config{Seed: 9, NumPlayers: 6, SB: 1, BB: 2})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.SB != 1 || s.BB != 2 {
		t.Fatalf("explicit blinds = %v/%v, want 1/2", s.SB, s.BB)
	}
}
