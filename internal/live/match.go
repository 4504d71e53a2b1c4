package live

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/gabe-silva/poker-analyzer/internal/poker"
	"github.com/gabe-silva/poker-analyzer/internal/scenario"
)

var (
	ErrHandOver      = errors.New("hand_over")
	ErrIllegalAction = errors.New("illegal_action")
	ErrSizeRequired  = errors.New("size_required")
)

// Hand is one heads-up hand in progress. Board reveals lazily from the
// pre-dealt full runout.
type Hand struct {
	HandNo        int             `json:"hand_no"`
	HeroPosition  string          `json:"hero_position"`
	ButtonOnHero  bool            `json:"-"`
	Street        poker.Street    `json:"street"`
	Board         []string        `json:"board"`
	HeroHand      []string        `json:"hero_hand"`
	PotBB         float64         `json:"pot_bb"`
	ToCallBB      float64         `json:"to_call_bb"`
	ActionContext string          `json:"action_context"`
	LegalActions  []string        `json:"legal_actions"`
	SizeOptionsBB []float64       `json:"size_options_bb"`
	ActionHistory []string        `json:"action_history"`
	HeroRemaining float64         `json:"hero_remaining_bb"`
	VillRemaining float64         `json:"villain_remaining_bb"`
	HandOver      bool            `json:"hand_over"`
	HeroDeltaBB   float64         `json:"hero_delta_bb"`
	Showdown      *ShowdownResult `json:"showdown,omitempty"`
	VillainHand   []string        `json:"villain_hand,omitempty"`

	fullBoard    []poker.Card
	heroHand     []poker.Card
	villainHand  []poker.Card
	heroInvested float64
	villInvested float64
	preflopAggr  string
	heroFirst    bool
	heroPhase    string
}

// ShowdownResult describes how a hand ended.
type ShowdownResult struct {
	Winner              string   `json:"winner"`
	Reason              string   `json:"reason,omitempty"`
	HeroHandCategory    string   `json:"hero_hand_category,omitempty"`
	VillainHandCategory string   `json:"villain_hand_category,omitempty"`
	HeroShare           float64  `json:"hero_share"`
	HeroDeltaBB         float64  `json:"hero_delta_bb"`
	Board               []string `json:"board"`
}

// heroStats tracks the observable shape of the hero's play; the villain
// policy reads it as a table image.
type heroStats struct {
	total       int
	aggressive  int
	raises      int
	bluffs      int
	sizeSum     float64
	sizeSamples int
	recent      []int
}

// Match is one stateful heads-up session. Not safe for concurrent use;
// the registry serializes access per session.
type Match struct {
	SessionID     string  `json:"session_id"`
	Seed          int64   `json:"seed"`
	StartStackBB  float64 `json:"starting_stack_bb"`
	SB            float64 `json:"sb"`
	BB            float64 `json:"bb"`
	HandsPlayed   int     `json:"hands_played"`
	HeroNetBB     float64 `json:"hero_net_bb"`
	Opponent      Profile `json:"opponent"`
	Current       *Hand   `json:"hand"`

	rng       *rand.Rand
	adherence float64
	hero      heroStats
}

// MatchConfig is the session request.
type MatchConfig struct {
	Opponent     *ProfileInput `json:"opponent_profile"`
	Seed         int64         `json:"seed"`
	StartStackBB float64       `json:"starting_stack_bb"`
	SB           float64       `json:"sb"`
	BB           float64       `json:"bb"`
}

// NewMatch seeds the session and deals its first hand.
func NewMatch(id string, cfg MatchConfig) *Match {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63n(10_000_000) + 1
	}
	stack := cfg.StartStackBB
	if stack == 0 {
		stack = 100
	}
	sb := cfg.SB
	if sb == 0 {
		sb = 0.5
	}
	bb := cfg.BB
	if bb == 0 {
		bb = 1.0
	}
	m := &Match{
		SessionID:    id,
		Seed:         seed,
		StartStackBB: clamp(stack, 20, 400),
		SB:           clamp(sb, 0.1, 10),
		BB:           clamp(bb, clamp(sb, 0.1, 10)+0.1, 20),
		Opponent:     ParseProfile(cfg.Opponent),
		rng:          rand.New(rand.NewSource(seed)),
	}
	m.adherence = m.rangeAdherence()
	m.StartNextHand()
	return m
}

// rangeAdherence scores how closely the villain tracks its stat-derived
// strategy versus style noise. Wide passive gaps play loose of their
// ranges; disciplined regulars stay near them.
func (m *Match) rangeAdherence() float64 {
	p := m.Opponent
	gap := max0(p.VPIP - p.PFR)
	afOver := max0(p.AF - 2.3)
	passiveBonus := max0(1.9-p.AF) * 0.05
	base := 0.84 - gap*0.58 - afOver*0.08 + passiveBonus
	style := strings.ToLower(p.StyleLabel)
	if strings.Contains(style, "calling station") || strings.Contains(style, "loose-passive") {
		base -= 0.06
	}
	if strings.Contains(style, "tag") {
		base += 0.05
	}
	return clamp(base, 0.35, 0.93)
}

// StartNextHand deals a fresh hand, alternating the button.
func (m *Match) StartNextHand() *Hand {
	m.HandsPlayed++
	buttonOnHero := m.HandsPlayed%2 == 1
	heroPosition := "BB"
	if buttonOnHero {
		heroPosition = "BTN"
	}

	deck := poker.NewDeck()
	deck.Shuffle(m.rng)
	draw := func(n int) []poker.Card {
		out := make([]poker.Card, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, deck.Deal())
		}
		return out
	}
	heroHand := draw(2)
	villainHand := draw(2)
	fullBoard := draw(5)

	h := &Hand{
		HandNo:        m.HandsPlayed,
		HeroPosition:  heroPosition,
		ButtonOnHero:  buttonOnHero,
		Street:        poker.StreetPreflop,
		Board:         []string{},
		HeroHand:      poker.CardStrings(heroHand),
		fullBoard:     fullBoard,
		heroHand:      heroHand,
		villainHand:   villainHand,
		ActionContext: string(scenario.ContextCheckedToHero),
		ActionHistory: []string{},
		HeroRemaining: m.StartStackBB,
		VillRemaining: m.StartStackBB,
		preflopAggr:   "none",
		heroPhase:     "initial",
	}
	h.heroFirst = m.heroFirstOnStreet(h, poker.StreetPreflop)
	m.Current = h
	h.ActionHistory = append(h.ActionHistory, fmt.Sprintf(
		"Hand %d: Hero (%s) vs %s (%s).", h.HandNo, heroPosition, m.Opponent.Name, m.Opponent.StyleLabel))

	if buttonOnHero {
		heroSB := m.heroCommit(m.SB)
		villBB := m.villainCommit(m.BB)
		h.ActionHistory = append(h.ActionHistory,
			fmt.Sprintf("Hero posts SB %.1fbb.", heroSB),
			fmt.Sprintf("Villain posts BB %.1fbb.", villBB))
		h.ToCallBB = round1bb(max0(m.BB - m.SB))
		h.ActionContext = string(scenario.ContextFacingBet)
	} else {
		villSB := m.villainCommit(m.SB)
		heroBB := m.heroCommit(m.BB)
		h.ActionHistory = append(h.ActionHistory,
			fmt.Sprintf("Villain posts SB %.1fbb.", villSB),
			fmt.Sprintf("Hero posts BB %.1fbb.", heroBB))
		m.villainPreflopFirstAction()
	}

	if !h.HandOver {
		m.updateLegalOptions()
	}
	return h
}

// HeroAction applies the hero's move and runs the villain's reply chain
// until the hero is next to act or the hand ends.
func (m *Match) HeroAction(action string, sizeBB *float64, intent string) error {
	h := m.Current
	if h == nil || h.HandOver {
		return ErrHandOver
	}
	act := strings.ToLower(strings.TrimSpace(action))
	if !containsString(h.LegalActions, act) {
		return fmt.Errorf("%w: %s", ErrIllegalAction, act)
	}

	size := 0.0
	if act == "bet" || act == "raise" {
		if sizeBB == nil || *sizeBB <= 0 {
			return ErrSizeRequired
		}
		// snap to the nearest published option
		size = *sizeBB
		if len(h.SizeOptionsBB) > 0 {
			nearest := h.SizeOptionsBB[0]
			for _, opt := range h.SizeOptionsBB {
				if abs(opt-size) < abs(nearest-size) {
					nearest = opt
				}
			}
			size = nearest
		}
	}

	m.recordHeroAction(act, size, intent)

	switch act {
	case "fold":
		h.ActionHistory = append(h.ActionHistory, "Hero folds.")
		m.endByFold("villain", "Hero folded.")

	case "call":
		commit := m.heroCommit(h.ToCallBB)
		h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("Hero calls %.1fbb.", commit))
		h.ToCallBB = 0
		if m.isAllIn() {
			m.resolveShowdown()
		} else {
			m.advanceStreet()
		}

	case "check":
		h.ActionHistory = append(h.ActionHistory, "Hero checks.")
		if h.heroFirst && h.heroPhase == "initial" {
			m.villainAfterHeroCheck()
		} else {
			m.advanceStreet()
		}

	case "bet":
		commit := m.heroCommit(size)
		h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("Hero bets %.1fbb (%s).", commit, intentOrValue(intent)))
		m.setPreflopAggressor("hero")
		m.villainResponseToAggression(commit, 0, false)

	case "raise":
		prevToCall := h.ToCallBB
		commit := m.heroCommit(size)
		h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("Hero raises %.1fbb (%s).", commit, intentOrValue(intent)))
		m.setPreflopAggressor("hero")
		m.villainResponseToAggression(commit, prevToCall, true)

	default:
		return fmt.Errorf("%w: %s", ErrIllegalAction, act)
	}
	return nil
}

func intentOrValue(intent string) string {
	intent = strings.ToLower(strings.TrimSpace(intent))
	if intent == "" {
		return "value"
	}
	return intent
}

func (m *Match) heroFirstOnStreet(h *Hand, street poker.Street) bool {
	if street == poker.StreetPreflop {
		return h.ButtonOnHero
	}
	return !h.ButtonOnHero
}

func (m *Match) recordHeroAction(action string, sizeBB float64, intent string) {
	h := m.Current
	if h == nil {
		return
	}
	m.hero.total++
	isAggr := action == "bet" || action == "raise"
	if isAggr {
		m.hero.aggressive++
		if action == "raise" {
			m.hero.raises++
		}
		if strings.EqualFold(intent, "bluff") {
			m.hero.bluffs++
		}
		if sizeBB > 0 {
			pot := maxf(1, h.PotBB)
			m.hero.sizeSum += clamp(sizeBB/pot, 0, 3)
			m.hero.sizeSamples++
		}
	}
	flag := 0
	if isAggr {
		flag = 1
	}
	m.hero.recent = append(m.hero.recent, flag)
	if len(m.hero.recent) > 12 {
		m.hero.recent = m.hero.recent[1:]
	}
}

// heroImageScore is the villain's 0..1 read of hero aggression, built
// from observed action shape and declared bluffs.
func (m *Match) heroImageScore() float64 {
	s := m.hero
	total := maxInt(1, s.total)
	aggRate := float64(s.aggressive) / float64(total)
	raiseRate := float64(s.raises) / float64(total)
	bluffRate := float64(s.bluffs) / float64(maxInt(1, s.aggressive))
	avgSize := s.sizeSum / float64(maxInt(1, s.sizeSamples))
	recentRate := 0.0
	if len(s.recent) > 0 {
		sum := 0
		for _, f := range s.recent {
			sum += f
		}
		recentRate = float64(sum) / float64(len(s.recent))
	}
	score := 0.24 + aggRate*0.36 + raiseRate*0.14 + bluffRate*0.14 + clamp(avgSize, 0, 2)*0.08 + recentRate*0.10
	return clamp(score, 0.05, 0.95)
}

func (m *Match) heroCommit(amount float64) float64 {
	h := m.Current
	amt := round1bb(minf(max0(amount), h.HeroRemaining))
	h.HeroRemaining = round1bb(h.HeroRemaining - amt)
	h.heroInvested = round1bb(h.heroInvested + amt)
	h.PotBB = round1bb(h.PotBB + amt)
	return amt
}

func (m *Match) villainCommit(amount float64) float64 {
	h := m.Current
	amt := round1bb(minf(max0(amount), h.VillRemaining))
	h.VillRemaining = round1bb(h.VillRemaining - amt)
	h.villInvested = round1bb(h.villInvested + amt)
	h.PotBB = round1bb(h.PotBB + amt)
	return amt
}

func (m *Match) setPreflopAggressor(who string) {
	if m.Current.Street == poker.StreetPreflop {
		m.Current.preflopAggr = who
	}
}

func (m *Match) isAllIn() bool {
	h := m.Current
	return h.HeroRemaining <= 0.01 || h.VillRemaining <= 0.01
}

func (m *Match) advanceStreet() {
	h := m.Current
	if h == nil || h.HandOver {
		return
	}
	next, ok := h.Street.Next()
	if !ok {
		m.resolveShowdown()
		return
	}
	h.Street = next
	h.Board = poker.CardStrings(h.fullBoard[:next.BoardCount()])
	h.ToCallBB = 0
	h.ActionContext = string(scenario.ContextCheckedToHero)
	h.heroPhase = "initial"
	h.heroFirst = m.heroFirstOnStreet(h, next)
	h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("--- %s ---", strings.ToUpper(string(next))))

	if h.heroFirst {
		m.updateLegalOptions()
		return
	}
	m.villainPostflopOpenAction()
	if !h.HandOver {
		m.updateLegalOptions()
	}
}

func (m *Match) resolveShowdown() {
	h := m.Current
	if h == nil || h.HandOver {
		return
	}
	h.Board = poker.CardStrings(h.fullBoard)
	board := h.fullBoard
	heroRank := poker.EvaluateBest(append(append([]poker.Card{}, h.heroHand...), board...))
	villRank := poker.EvaluateBest(append(append([]poker.Card{}, h.villainHand...), board...))

	heroShare := 0.5
	winner := "split"
	switch {
	case heroRank.BetterThan(villRank):
		heroShare, winner = 1.0, "hero"
	case villRank.BetterThan(heroRank):
		heroShare, winner = 0.0, "villain"
	}

	heroDelta := h.PotBB*heroShare - h.heroInvested
	m.finishHand(heroDelta, "showdown")
	h.Showdown = &ShowdownResult{
		Winner:              winner,
		HeroHandCategory:    heroRank.CategoryName(),
		VillainHandCategory: villRank.CategoryName(),
		HeroShare:           heroShare,
		HeroDeltaBB:         round3(heroDelta),
		Board:               h.Board,
	}
	h.VillainHand = poker.CardStrings(h.villainHand)
	h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("Showdown: %s. Hero delta %.2fbb.", winner, heroDelta))
}

func (m *Match) endByFold(winner, reason string) {
	h := m.Current
	if h == nil || h.HandOver {
		return
	}
	heroWin := 0.0
	if winner == "hero" {
		heroWin = h.PotBB
	}
	heroDelta := heroWin - h.heroInvested
	m.finishHand(heroDelta, "hand_over")
	h.Showdown = &ShowdownResult{
		Winner:      winner,
		Reason:      reason,
		HeroDeltaBB: round3(heroDelta),
		Board:       h.Board,
	}
	h.VillainHand = poker.CardStrings(h.villainHand)
	h.ActionHistory = append(h.ActionHistory, "Hand ends: "+reason)
}

func (m *Match) finishHand(heroDelta float64, context string) {
	h := m.Current
	h.HeroDeltaBB = round3(heroDelta)
	m.HeroNetBB = round3(m.HeroNetBB + h.HeroDeltaBB)
	h.HandOver = true
	h.LegalActions = nil
	h.SizeOptionsBB = nil
	h.ToCallBB = 0
	h.ActionContext = context
}

func (m *Match) updateLegalOptions() {
	h := m.Current
	if h == nil || h.HandOver {
		return
	}
	effective := max0(minf(h.HeroRemaining, h.VillRemaining))
	toCall := max0(h.ToCallBB)

	if toCall > 0 {
		legal := []string{"fold", "call"}
		opts := m.raiseSizeOptions(toCall, effective, h.PotBB)
		if len(opts) > 0 {
			legal = append(legal, "raise")
		}
		h.LegalActions = legal
		h.SizeOptionsBB = opts
		h.ActionContext = string(scenario.ContextFacingBet)
		return
	}
	legal := []string{"check"}
	opts := m.betSizeOptions(effective, h.PotBB)
	if len(opts) > 0 {
		legal = append(legal, "bet")
	}
	h.LegalActions = legal
	h.SizeOptionsBB = opts
	h.ActionContext = string(scenario.ContextCheckedToHero)
}

func (m *Match) betSizeOptions(effective, pot float64) []float64 {
	if effective <= 0.05 {
		return nil
	}
	base := []float64{pot * 0.33, pot * 0.5, pot * 0.75, pot * 1.25, pot}
	set := map[float64]bool{}
	for _, v := range base {
		if v <= 0 {
			continue
		}
		set[round1bb(clamp(v, 1.0, effective))] = true
	}
	if effective >= 1.0 {
		set[round1bb(effective)] = true
	}
	var out []float64
	for v := range set {
		if v >= 0.8 && v <= effective+1e-9 {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	if len(out) > 6 {
		out = out[:6]
	}
	return out
}

func (m *Match) raiseSizeOptions(toCall, effective, pot float64) []float64 {
	if effective <= toCall+0.05 {
		return nil
	}
	minRaise := maxf(toCall*2.0, toCall+1.0)
	base := []float64{minRaise, toCall + pot*0.5, toCall + pot*0.75, toCall + pot*1.25, effective}
	set := map[float64]bool{}
	for _, v := range base {
		if v <= toCall {
			continue
		}
		set[round1bb(clamp(v, minRaise, effective))] = true
	}
	var out []float64
	for v := range set {
		if v > toCall+0.1 && v <= effective+1e-9 {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	if len(out) > 6 {
		out = out[:6]
	}
	return out
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func round1bb(v float64) float64 {
	if v < 0 {
		v = 0
	}
	return float64(int(v*10+0.5)) / 10
}

func round3(v float64) float64 {
	neg := v < 0
	if neg {
		v = -v
	}
	out := float64(int(v*1000+0.5)) / 1000
	if neg {
		return -out
	}
	return out
}
