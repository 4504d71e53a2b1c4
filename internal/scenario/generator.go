package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/gabe-silva/poker-analyzer/internal/poker"
)

// SeatState is one seat in a generated scenario.
type SeatState struct {
	Seat           int     `json:"seat"`
	Position       string  `json:"position"`
	IsHero         bool    `json:"is_hero"`
	ArchetypeKey   string  `json:"archetype_key"`
	ArchetypeLabel string  `json:"archetype_label"`
	StackBB        float64 `json:"stack_bb"`
	InHand         bool    `json:"in_hand"`
	Role           string  `json:"role"`
}

// SeatOverride pins a specific seat's setup in the request.
type SeatOverride struct {
	Position     string   `json:"position"`
	ArchetypeKey string   `json:"archetype_key"`
	StackBB      *float64 `json:"stack_bb"`
	InHand       *bool    `json:"in_hand"`
}

// Config is the generation request. Zero values fall back to the
// documented defaults during validation.
type Config struct {
	Seed          int64          `json:"seed"`
	NumPlayers    int            `json:"num_players"`
	Street        poker.Street   `json:"street"`
	NodeType      NodeType       `json:"node_type"`
	ActionContext ActionContext  `json:"action_context"`
	HeroPosition  string         `json:"hero_position"`
	PlayersInHand int            `json:"players_in_hand"`

	EqualStacks    *bool   `json:"equal_stacks"`
	DefaultStackBB float64 `json:"default_stack_bb"`
	SB             float64 `json:"sb"`
	BB             float64 `json:"bb"`

	RandomizeHeroProfile bool              `json:"randomize_hero_profile"`
	RandomizeArchetypes  bool              `json:"randomize_archetypes"`
	HeroProfile          *HeroProfileInput `json:"hero_profile"`
	Seats                []SeatOverride    `json:"seats"`
}

// Scenario is the generated decision point. Immutable once returned.
type Scenario struct {
	ID        string    `json:"scenario_id"`
	CreatedAt time.Time `json:"created_at"`
	Seed      int64     `json:"seed"`

	NumPlayers    int           `json:"num_players"`
	PlayersInHand int           `json:"players_in_hand"`
	Street        poker.Street  `json:"street"`
	NodeType      NodeType      `json:"node_type"`
	ActionContext ActionContext `json:"action_context"`
	Requested     ActionContext `json:"action_context_requested"`

	SB float64 `json:"sb"`
	BB float64 `json:"bb"`

	HeroPosition string   `json:"hero_position"`
	HeroHand     []string `json:"hero_hand"`
	Board        []string `json:"board"`

	PotBB            float64 `json:"pot_bb"`
	ToCallBB         float64 `json:"to_call_bb"`
	EffectiveStackBB float64 `json:"effective_stack_bb"`

	LegalActions     []string  `json:"legal_actions"`
	BetSizeOptions   []float64 `json:"bet_size_options_bb"`
	RaiseSizeOptions []float64 `json:"raise_size_options_bb"`

	ActionHistory []string    `json:"action_history"`
	Seats         []SeatState `json:"seats"`

	HeroProfile HeroProfile      `json:"hero_profile"`
	Guidance    PositionGuidance `json:"position_guidance"`

	DecisionPrompt string `json:"decision_prompt"`
}

// VillainArchetypes lists the archetype keys still contesting the pot.
func (s *Scenario) VillainArchetypes() []string {
	var out []string
	for _, seat := range s.Seats {
		if seat.InHand && !seat.IsHero {
			out = append(out, seat.ArchetypeKey)
		}
	}
	return out
}

// HeroSeat returns the hero's seat state.
func (s *Scenario) HeroSeat() SeatState {
	for _, seat := range s.Seats {
		if seat.IsHero {
			return seat
		}
	}
	return SeatState{}
}

// ArchetypeCatalogue supplies villain model lookups so the generator
// does not fix the library it draws labels from.
type ArchetypeCatalogue interface {
	Label(key string) (string, bool)
}

// Generator builds scenarios. Safe for concurrent use; each generation
// owns its own rng.
type Generator struct {
	catalogue ArchetypeCatalogue
	newID     func() string
}

// NewGenerator wires the villain catalogue and the id allocator.
func NewGenerator(catalogue ArchetypeCatalogue, newID func() string) *Generator {
	return &Generator{catalogue: catalogue, newID: newID}
}

// Generate builds one scenario from the config. The same (seed, config)
// pair always produces the identical spot; every random draw comes from
// one seeded stream consumed in a fixed, documented order: hero profile,
// per-seat archetypes, in-hand adjustment shuffle, pot, to-call, hero
// cards, board.
func (g *Generator) Generate(cfg Config) (*Scenario, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63n(10_000_000) + 1
	}
	rng := rand.New(rand.NewSource(seed))

	numPlayers := cfg.NumPlayers
	if numPlayers == 0 {
		numPlayers = 6
	}
	positions, err := PositionsForTable(numPlayers)
	if err != nil {
		return nil, err
	}

	street := cfg.Street
	if street == "" {
		street = poker.StreetFlop
	}
	if !street.Valid() {
		return nil, ErrInvalidStreet
	}

	nodeType := cfg.NodeType
	if nodeType == "" {
		nodeType = NodeSingleRaised
	}
	if _, ok := nodeTypes[nodeType]; !ok {
		return nil, ErrInvalidNodeType
	}

	requested := cfg.ActionContext
	if requested == "" {
		requested = ContextFacingBet
	}
	switch requested {
	case ContextCheckedToHero, ContextFacingBet, ContextFacingBetCall:
	default:
		return nil, ErrInvalidActionContext
	}

	heroPosition := cfg.HeroPosition
	if !containsString(positions, heroPosition) {
		heroPosition = positions[0]
	}

	equalStacks := true
	if cfg.EqualStacks != nil {
		equalStacks = *cfg.EqualStacks
	}
	defaultStack := cfg.DefaultStackBB
	if defaultStack == 0 {
		defaultStack = defaultStackBB
	}
	defaultStack = clamp(defaultStack, 20, 400)

	sb, bb := cfg.SB, cfg.BB
	if sb <= 0 || bb <= 0 || sb >= bb {
		sb, bb = defaultSB, defaultBB
	}

	var heroProfile HeroProfile
	if cfg.RandomizeHeroProfile {
		heroProfile = RandomizeHeroProfile(rng)
	} else {
		heroProfile = ParseHeroProfile(cfg.HeroProfile)
	}

	overrides := map[string]SeatOverride{}
	for _, s := range cfg.Seats {
		if s.Position != "" {
			overrides[s.Position] = s
		}
	}

	seats := make([]SeatState, 0, len(positions))
	for idx, position := range positions {
		isHero := position == heroPosition
		override := overrides[position]

		key, label := "hero", "Hero"
		if !isHero {
			if cfg.RandomizeArchetypes || override.ArchetypeKey == "" {
				key = g.defaultArchetypeFor(position, rng)
			} else {
				key = override.ArchetypeKey
			}
			var ok bool
			if label, ok = g.catalogue.Label(key); !ok {
				key = "tag_reg"
				label, _ = g.catalogue.Label(key)
			}
		}

		stack := defaultStack
		if !equalStacks && override.StackBB != nil {
			stack = *override.StackBB
		}
		stack = clamp(stack, 10, 500)

		inHand := true
		if override.InHand != nil {
			inHand = *override.InHand
		}
		if isHero {
			inHand = true
		}

		seats = append(seats, SeatState{
			Seat:           idx + 1,
			Position:       position,
			IsHero:         isHero,
			ArchetypeKey:   key,
			ArchetypeLabel: label,
			StackBB:        stack,
			InHand:         inHand,
			Role:           RoleOut,
		})
	}

	playersTarget := cfg.PlayersInHand
	if playersTarget == 0 {
		playersTarget = minInt(numPlayers, 3)
	}
	applyInHandTarget(seats, playersTarget, heroPosition, rng)

	var activePositions []string
	for _, s := range seats {
		if s.InHand {
			activePositions = append(activePositions, s.Position)
		}
	}
	activeOrder := activeActingOrder(positions, activePositions, street)
	roles, resolved := assignRoles(requested, activeOrder, heroPosition)
	for i := range seats {
		if seats[i].InHand {
			if r, ok := roles[seats[i].Position]; ok {
				seats[i].Role = r
			} else {
				seats[i].Role = RoleWaiting
			}
		}
	}

	pot := potForSpot(nodeType, street, len(activePositions), rng)

	toCall := 0.0
	switch resolved {
	case ContextFacingBet:
		toCall = round1(pot * uniform(rng, 0.22, 0.62))
	case ContextFacingBetCall:
		toCall = round1(pot * uniform(rng, 0.16, 0.45))
	}

	var effective float64
	for _, s := range seats {
		if s.IsHero {
			effective = s.StackBB
		}
	}
	for _, s := range seats {
		if s.InHand && !s.IsHero && s.StackBB < effective {
			effective = s.StackBB
		}
	}

	deck := poker.NewDeck()
	deck.Shuffle(rng)
	heroCards := []poker.Card{deck.Deal(), deck.Deal()}
	boardCards := make([]poker.Card, 0, street.BoardCount())
	for i := 0; i < street.BoardCount(); i++ {
		boardCards = append(boardCards, deck.Deal())
	}

	var legal []string
	var betOptions, raiseOptions []float64
	if toCall >= effective && toCall > 0 {
		// The bet covers the effective stack: calling is all in and no
		// raise exists. ToCallBB is capped at what hero can put in.
		toCall = round1(effective)
		legal = []string{"fold", "call"}
	} else if toCall > 0 {
		legal = []string{"fold", "call", "raise"}
		var opts []float64
		for _, p := range betSizePcts {
			opts = append(opts, toCall+pot*p)
		}
		opts = append(opts, toCall*2)
		raiseOptions = roundOptions(opts, math.Max(toCall*2, toCall+1), math.Max(2, effective))
		if len(raiseOptions) == 0 {
			raiseOptions = []float64{round1(math.Max(2, math.Min(effective, toCall*2)))}
		}
	} else {
		legal = []string{"check", "bet"}
		var opts []float64
		for _, p := range betSizePcts {
			opts = append(opts, pot*p)
		}
		betOptions = roundOptions(opts, 1, math.Max(2, effective))
		if len(betOptions) == 0 {
			betOptions = []float64{round1(math.Max(1, effective*0.3))}
		}
	}

	history := buildActionHistory(street, nodeType, activeOrder, resolved, toCall, pot, heroPosition)

	return &Scenario{
		ID:               g.newID(),
		CreatedAt:        time.Now().UTC(),
		Seed:             seed,
		NumPlayers:       numPlayers,
		PlayersInHand:    len(activePositions),
		Street:           street,
		NodeType:         nodeType,
		ActionContext:    resolved,
		Requested:        requested,
		SB:               sb,
		BB:               bb,
		HeroPosition:     heroPosition,
		HeroHand:         poker.CardStrings(heroCards),
		Board:            poker.CardStrings(boardCards),
		PotBB:            round2(pot),
		ToCallBB:         round2(toCall),
		EffectiveStackBB: round2(effective),
		LegalActions:     legal,
		BetSizeOptions:   betOptions,
		RaiseSizeOptions: raiseOptions,
		ActionHistory:    history,
		Seats:            seats,
		HeroProfile:      heroProfile,
		Guidance:         heroProfile.GuidanceFor(heroPosition, street),
		DecisionPrompt: fmt.Sprintf(
			"Hero (%s) to act on %s. Choose one move and explain your exploit logic.",
			heroPosition, street),
	}, nil
}

// defaultArchetypeFor draws a position-weighted villain so generated
// pools look like real lineups.
func (g *Generator) defaultArchetypeFor(position string, rng *rand.Rand) string {
	var pool []string
	switch position {
	case "SB", "BB":
		pool = []string{"calling_station", "weak_tight", "tag_reg", "overcaller_preflop", "lag_reg"}
	case "UTG", "LJ":
		pool = []string{"tag_reg", "nit", "weak_tight", "trappy"}
	default:
		pool = []string{"tag_reg", "lag_reg", "one_and_done", "fit_or_fold", "calling_station"}
	}
	return pool[rng.Intn(len(pool))]
}

func applyInHandTarget(seats []SeatState, target int, heroPosition string, rng *rand.Rand) {
	if target < 2 {
		target = 2
	}
	if target > len(seats) {
		target = len(seats)
	}
	for i := range seats {
		if seats[i].Position == heroPosition {
			seats[i].InHand = true
		}
	}

	var current []int
	for i, s := range seats {
		if s.InHand {
			current = append(current, i)
		}
	}

	if len(current) > target {
		var removable []int
		for _, i := range current {
			if !seats[i].IsHero {
				removable = append(removable, i)
			}
		}
		rng.Shuffle(len(removable), func(a, b int) {
			removable[a], removable[b] = removable[b], removable[a]
		})
		for _, i := range removable[:len(current)-target] {
			seats[i].InHand = false
		}
	} else if len(current) < target {
		var available []int
		for i, s := range seats {
			if !s.InHand && !s.IsHero {
				available = append(available, i)
			}
		}
		rng.Shuffle(len(available), func(a, b int) {
			available[a], available[b] = available[b], available[a]
		})
		for _, i := range available[:target-len(current)] {
			seats[i].InHand = true
		}
	}
}

// preflopOrder is the canonical ring-game preflop action order.
func preflopOrder(positions []string) []string {
	canonical := []string{"UTG", "LJ", "HJ", "CO", "BTN", "SB", "BB"}
	var ordered []string
	for _, p := range canonical {
		if containsString(positions, p) {
			ordered = append(ordered, p)
		}
	}
	for _, p := range positions {
		if !containsString(ordered, p) {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// postflopOrder starts left of the button: SB first if present, BB
// first heads-up.
func postflopOrder(positions []string) []string {
	if i := indexOf(positions, "SB"); i >= 0 {
		return append(append([]string{}, positions[i:]...), positions[:i]...)
	}
	if len(positions) == 2 && containsString(positions, "BB") && containsString(positions, "BTN") {
		return []string{"BB", "BTN"}
	}
	if i := indexOf(positions, "BB"); i >= 0 {
		return append(append([]string{}, positions[i:]...), positions[:i]...)
	}
	return positions
}

func activeActingOrder(tablePositions, activePositions []string, street poker.Street) []string {
	var base []string
	if street == poker.StreetPreflop {
		base = preflopOrder(tablePositions)
	} else {
		base = postflopOrder(tablePositions)
	}
	var out []string
	for _, p := range base {
		if containsString(activePositions, p) {
			out = append(out, p)
		}
	}
	return out
}

// assignRoles places bettor/caller ahead of hero in legal order so hero
// always acts next. A context that cannot be staged with the seats
// available degrades toward checked_to_hero.
func assignRoles(requested ActionContext, activeOrder []string, heroPosition string) (map[string]string, ActionContext) {
	roles := map[string]string{}
	for _, p := range activeOrder {
		roles[p] = RoleWaiting
	}
	roles[heroPosition] = RoleHeroToAct

	heroIdx := indexOf(activeOrder, heroPosition)
	if heroIdx < 0 {
		return roles, ContextCheckedToHero
	}
	prefix := activeOrder[:heroIdx]

	switch requested {
	case ContextFacingBetCall:
		if len(prefix) >= 2 {
			roles[prefix[len(prefix)-2]] = RoleBettor
			roles[prefix[len(prefix)-1]] = RoleCaller
			return roles, ContextFacingBetCall
		}
		if len(prefix) >= 1 {
			roles[prefix[len(prefix)-1]] = RoleBettor
			return roles, ContextFacingBet
		}
		return roles, ContextCheckedToHero
	case ContextFacingBet:
		if len(prefix) >= 1 {
			roles[prefix[len(prefix)-1]] = RoleBettor
			return roles, ContextFacingBet
		}
		return roles, ContextCheckedToHero
	}
	return roles, ContextCheckedToHero
}

func nodePreflopPot(nodeType NodeType) float64 {
	switch nodeType {
	case NodeSingleRaised:
		return 6.5
	case NodeThreeBet:
		return 18.0
	}
	return 33.0
}

func potForSpot(nodeType NodeType, street poker.Street, playersInHand int, rng *rand.Rand) float64 {
	base := nodePreflopPot(nodeType)
	if street == poker.StreetPreflop {
		return base
	}
	pot := base
	pot *= uniform(rng, 1.1, 1.45)
	if street == poker.StreetTurn || street == poker.StreetRiver {
		pot *= uniform(rng, 1.2, 1.6)
	}
	if street == poker.StreetRiver {
		pot *= uniform(rng, 1.15, 1.55)
	}
	extra := playersInHand - 2
	if extra > 0 {
		pot *= 1.0 + float64(extra)*0.16
	}
	return round2(math.Max(5.0, pot))
}

func buildActionHistory(
	street poker.Street,
	nodeType NodeType,
	activeOrder []string,
	resolved ActionContext,
	toCall, pot float64,
	heroPosition string,
) []string {
	history := []string{fmt.Sprintf("Preflop setup: %s.", nodeTypes[nodeType])}

	heroIdx := indexOf(activeOrder, heroPosition)
	if heroIdx < 0 {
		history = append(history, fmt.Sprintf("Hero (%s) now faces decision.", heroPosition))
		return history
	}
	prefix := activeOrder[:heroIdx]

	if street == poker.StreetPreflop && len(prefix) == 0 {
		history = append(history, fmt.Sprintf("Hero (%s) now faces preflop decision.", heroPosition))
		return history
	}

	switch {
	case resolved == ContextFacingBetCall && len(prefix) >= 2:
		for _, pos := range prefix[:len(prefix)-2] {
			history = append(history, fmt.Sprintf("%s checks.", pos))
		}
		history = append(history,
			fmt.Sprintf("%s bets %.1fbb into %.1fbb.", prefix[len(prefix)-2], toCall, pot),
			fmt.Sprintf("%s calls %.1fbb.", prefix[len(prefix)-1], toCall))
	case resolved == ContextFacingBet && len(prefix) >= 1:
		for _, pos := range prefix[:len(prefix)-1] {
			history = append(history, fmt.Sprintf("%s checks.", pos))
		}
		history = append(history,
			fmt.Sprintf("%s bets %.1fbb into %.1fbb.", prefix[len(prefix)-1], toCall, pot))
	default:
		for _, pos := range prefix {
			history = append(history, fmt.Sprintf("%s checks.", pos))
		}
		history = append(history, "Action checks to Hero.")
	}
	return history
}

func roundOptions(options []float64, minValue, maxValue float64) []float64 {
	if maxValue <= 0 {
		return nil
	}
	seen := map[float64]struct{}{}
	var out []float64
	for _, v := range options {
		r := round1(clamp(v, minValue, maxValue))
		if r < minValue || r > maxValue {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Float64s(out)
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func indexOf(ss []string, s string) int {
	for i, x := range ss {
		if x == s {
			return i
		}
	}
	return -1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
