package live

import (
	"fmt"
	"strings"

	"github.com/gabe-silva/poker-analyzer/internal/poker"
	"github.com/gabe-silva/poker-analyzer/internal/scenario"
)

// The villain plays a blend of two policies: a strength-driven read of
// its actual holding, and a style-noise distribution shaped purely by
// the opponent profile. Range adherence weights the blend, so loose
// erratic profiles lean on noise while disciplined ones play their
// cards.

func (m *Match) villainPreflopFirstAction() {
	h := m.Current
	if h == nil || h.HandOver {
		return
	}
	toCallPrev := round1bb(max0(m.BB - m.SB))
	if h.VillRemaining <= 0 {
		h.ToCallBB = 0
		h.ActionContext = string(scenario.ContextCheckedToHero)
		return
	}

	dist := m.villainDistribution([]string{"fold", "call", "raise"}, toCallPrev, false, false)
	switch m.sampleAction(dist) {
	case "fold":
		h.ActionHistory = append(h.ActionHistory, "Villain folds from SB.")
		m.endByFold("hero", "Villain folded preflop.")

	case "raise":
		strengthQ := m.villainStrength()
		base := m.uniform(3.1, 5.7)*m.BB/2.0 + strengthQ*0.8
		base += max0(m.Opponent.AF-2.8) * 0.15
		base -= m.Opponent.LimpRate * 0.35
		amount := round1bb(clamp(base, toCallPrev+1.2, h.VillRemaining))
		commit := m.villainCommit(amount)
		h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("Villain raises %.1fbb from SB.", commit))
		h.ToCallBB = round1bb(max0(commit - toCallPrev))
		h.ActionContext = string(scenario.ContextFacingBet)
		h.preflopAggr = "villain"

	default:
		callAmt := round1bb(minf(toCallPrev, h.VillRemaining))
		commit := m.villainCommit(callAmt)
		h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("Villain limps/calls %.1fbb.", commit))
		h.ToCallBB = 0
		h.ActionContext = string(scenario.ContextCheckedToHero)
	}
}

func (m *Match) villainPostflopOpenAction() {
	h := m.Current
	if h == nil || h.HandOver {
		return
	}
	dist := m.villainDistribution([]string{"check", "bet"}, 0, false, false)
	if h.VillRemaining <= 0 || m.sampleAction(dist) == "check" {
		h.ActionHistory = append(h.ActionHistory, "Villain checks.")
		h.ToCallBB = 0
		h.ActionContext = string(scenario.ContextCheckedToHero)
		h.heroPhase = "initial"
		return
	}
	commit := m.villainCommit(m.villainBetSize())
	h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("Villain bets %.1fbb.", commit))
	h.ToCallBB = commit
	h.ActionContext = string(scenario.ContextFacingBet)
	h.heroPhase = "initial"
}

func (m *Match) villainAfterHeroCheck() {
	h := m.Current
	if h == nil || h.HandOver {
		return
	}
	dist := m.villainDistribution([]string{"check", "bet"}, 0, true, false)
	if h.VillRemaining <= 0 || m.sampleAction(dist) == "check" {
		h.ActionHistory = append(h.ActionHistory, "Villain checks behind.")
		m.advanceStreet()
		return
	}
	commit := m.villainCommit(m.villainBetSize())
	h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("Villain bets %.1fbb after check.", commit))
	h.ToCallBB = commit
	h.ActionContext = string(scenario.ContextFacingBet)
	h.heroPhase = "response"
	m.updateLegalOptions()
}

func (m *Match) villainResponseToAggression(heroAmount, previousToCall float64, isRaise bool) {
	h := m.Current
	if h == nil || h.HandOver {
		return
	}
	callAmount := round1bb(max0(heroAmount - previousToCall))
	if callAmount <= 0 {
		m.advanceStreet()
		return
	}

	dist := m.villainDistribution([]string{"fold", "call"}, callAmount, false, isRaise)
	if m.sampleAction(dist) == "fold" {
		h.ActionHistory = append(h.ActionHistory, "Villain folds.")
		m.endByFold("hero", "Villain folded to aggression.")
		return
	}
	commit := m.villainCommit(callAmount)
	h.ActionHistory = append(h.ActionHistory, fmt.Sprintf("Villain calls %.1fbb.", commit))
	h.ToCallBB = 0
	if m.isAllIn() {
		m.resolveShowdown()
	} else {
		m.advanceStreet()
	}
}

// villainDistribution blends the strength policy with style noise under
// the adherence weight and normalizes.
func (m *Match) villainDistribution(actions []string, callAmount float64, heroChecked, isRaise bool) map[string]float64 {
	actual := m.strengthDistribution(actions, callAmount, heroChecked, isRaise)
	noise := m.styleNoiseDistribution(actions, callAmount, heroChecked)

	out := make(map[string]float64, len(actions))
	for _, a := range actions {
		out[a] = m.adherence*actual[a] + (1.0-m.adherence)*noise[a]
	}
	return normalizeDistribution(actions, out)
}

// strengthDistribution reads the villain's actual holding.
func (m *Match) strengthDistribution(actions []string, callAmount float64, heroChecked, isRaise bool) map[string]float64 {
	h := m.Current
	out := make(map[string]float64, len(actions))
	for _, a := range actions {
		out[a] = 0.01
	}
	strength := m.villainStrength()

	if _, ok := out["fold"]; ok {
		out["fold"] += m.villainFoldProbability(callAmount, isRaise)
	}
	if _, ok := out["call"]; ok {
		out["call"] += clamp(0.30+strength*0.55-callAmount/maxf(1, h.PotBB)*0.15, 0.02, 0.95)
	}
	if _, ok := out["raise"]; ok {
		out["raise"] += clamp(max0(strength-0.55)*1.3+m.Opponent.ThreeBet*0.8, 0.01, 0.85)
	}
	if _, ok := out["bet"]; ok {
		bet := m.villainBetProbability(heroChecked)
		out["bet"] += clamp(bet+max0(strength-0.5)*0.35, 0.02, 0.95)
	}
	if _, ok := out["check"]; ok {
		out["check"] += clamp(0.55-max0(strength-0.5)*0.5, 0.05, 0.9)
	}
	return normalizeDistribution(actions, out)
}

// styleNoiseDistribution plays the profile's stats blind to the cards.
func (m *Match) styleNoiseDistribution(actions []string, callAmount float64, heroChecked bool) map[string]float64 {
	h := m.Current
	p := m.Opponent
	out := make(map[string]float64, len(actions))
	for _, a := range actions {
		out[a] = 0.01
	}
	pot := maxf(1, h.PotBB)
	imageAdj := m.heroImageScore() - 0.5

	if h.Street == poker.StreetPreflop {
		if _, ok := out["raise"]; ok {
			out["raise"] += p.PFR*0.95 + p.ThreeBet*0.20
		}
		if _, ok := out["call"]; ok {
			out["call"] += maxf(0.03, p.VPIP-p.PFR) + p.LimpRate*0.35 + imageAdj*(0.10+p.WTSD*0.16)
		}
		if _, ok := out["fold"]; ok {
			out["fold"] += maxf(0.02, 1.0-p.VPIP) - imageAdj*0.12
		}
		if _, ok := out["check"]; ok {
			out["check"] += 0.30
		}
		return normalizeDistribution(actions, out)
	}

	if _, ok := out["bet"]; ok {
		baseCbet := p.FlopCBet
		switch h.Street {
		case poker.StreetTurn:
			baseCbet = p.TurnCBet
		case poker.StreetRiver:
			baseCbet = p.RiverCBet
		}
		bonus := 0.0
		if heroChecked {
			bonus = 0.10
		}
		out["bet"] += baseCbet*0.70 + p.AggFreq*0.25 + bonus - imageAdj*0.07
	}
	if _, ok := out["check"]; ok {
		out["check"] += 0.42 + p.WTSD*0.20 + imageAdj*0.06
	}
	if _, ok := out["call"]; ok {
		pressure := callAmount / pot
		out["call"] += p.WTSD*0.55 + (p.VPIP-p.PFR)*0.62 - pressure*0.15 + imageAdj*(0.12+p.WTSD*0.20)
	}
	if _, ok := out["raise"]; ok {
		out["raise"] += p.CheckRaise*0.80 + max0(p.AF-2.6)*0.08
	}
	if _, ok := out["fold"]; ok {
		pressure := callAmount / pot
		out["fold"] += 0.34 + pressure*0.28 - p.WTSD*0.20 - imageAdj*0.16
	}
	return normalizeDistribution(actions, out)
}

func (m *Match) sampleAction(dist map[string]float64) string {
	// iterate in a fixed order so the rng stream is reproducible
	order := []string{"fold", "check", "call", "bet", "raise"}
	r := m.rng.Float64()
	cumulative := 0.0
	last := ""
	for _, a := range order {
		p, ok := dist[a]
		if !ok {
			continue
		}
		last = a
		cumulative += p
		if r <= cumulative {
			return a
		}
	}
	return last
}

func (m *Match) villainBetProbability(heroChecked bool) float64 {
	h := m.Current
	p := m.Opponent
	boardCards, _ := poker.ParseCards(h.Board)
	texture := poker.BoardTexture(boardCards)

	var base float64
	switch h.Street {
	case poker.StreetFlop:
		if h.preflopAggr == "villain" {
			base = p.FlopCBet
		} else {
			base = 0.20 + p.AggFreq*0.40
		}
	case poker.StreetTurn:
		if h.preflopAggr == "villain" {
			base = p.TurnCBet
		} else {
			base = 0.16 + p.AggFreq*0.34
		}
	case poker.StreetRiver:
		if h.preflopAggr == "villain" {
			base = p.RiverCBet
		} else {
			base = 0.12 + p.AggFreq*0.28
		}
	default:
		base = 0.26 + p.PFR*0.25
	}

	if heroChecked {
		base += 0.12
	}
	base += max0(p.AF-2.0) * 0.04
	if h.Street == poker.StreetTurn || h.Street == poker.StreetRiver {
		base -= texture * 0.03
	}
	return clamp(base, 0.05, 0.92)
}

func (m *Match) villainBetSize() float64 {
	h := m.Current
	p := m.Opponent
	pot := maxf(1, h.PotBB)
	boardCards, _ := poker.ParseCards(h.Board)
	texture := poker.BoardTexture(boardCards)
	strength := m.villainStrength()

	var ratio float64
	switch {
	case p.AF < 1.2:
		ratio = m.uniform(0.38, 0.78)
	case p.AF > 3.2:
		ratio = m.uniform(0.42, 1.20)
	default:
		ratio = m.uniform(0.34, 0.98)
	}
	ratio += max0(strength-0.52) * 0.28
	if texture > 1.4 {
		ratio += 0.10
	}
	if styleContains(p.StyleLabel, "calling station") {
		ratio += 0.05
	}
	raw := pot * clamp(ratio, 0.25, 1.35)
	return round1bb(clamp(raw, 1.0, h.VillRemaining))
}

// villainStrength scores the actual holding: preflop by hand-shaping
// score, postflop by made-hand category with a light draw bonus.
func (m *Match) villainStrength() float64 {
	h := m.Current
	if h.Street == poker.StreetPreflop {
		return clamp(poker.PreflopStrength(h.villainHand[0], h.villainHand[1])/100.0, 0, 1)
	}
	board := h.fullBoard[:h.Street.BoardCount()]
	rank := poker.EvaluateBest(append(append([]poker.Card{}, h.villainHand...), board...))
	category := float64(rank.Category) / 8.0
	kicker := 0.0
	if len(rank.Ranks) > 0 {
		kicker = float64(rank.Ranks[0]) / 14.0
	}
	drawBonus := 0.0
	if len(board) < 5 {
		texture := poker.BoardTexture(board)
		broadway := 0
		for _, c := range h.villainHand {
			if int(c.Rank) >= 10 {
				broadway++
			}
		}
		drawBonus = float64(broadway)*0.04 + texture*0.03
	}
	return clamp(category*0.78+kicker*0.14+drawBonus, 0, 1.2)
}

func (m *Match) villainFoldProbability(callAmount float64, isRaise bool) float64 {
	h := m.Current
	p := m.Opponent
	pot := maxf(1, h.PotBB)
	potOdds := callAmount / (pot + callAmount)
	strength := m.villainStrength()
	gap := max0(p.VPIP - p.PFR)
	sticky := clamp(0.22+p.WTSD*0.45+gap*0.68-p.AF*0.05, 0.05, 0.96)
	pressure := callAmount / pot
	fold := 0.48 + pressure*0.24 + potOdds*0.25 - strength*0.52 - sticky*0.34
	if isRaise && h.Street == poker.StreetPreflop {
		fold += p.FoldTo3Bet * 0.42
	}
	if styleContains(p.StyleLabel, "calling") {
		fold -= 0.10
	}
	return clamp(fold, 0.02, 0.92)
}

func (m *Match) uniform(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}

func normalizeDistribution(actions []string, weights map[string]float64) map[string]float64 {
	total := 0.0
	for _, a := range actions {
		total += max0(weights[a])
	}
	out := make(map[string]float64, len(actions))
	if total <= 0 {
		n := float64(len(actions))
		for _, a := range actions {
			out[a] = 1.0 / n
		}
		return out
	}
	for _, a := range actions {
		out[a] = max0(weights[a]) / total
	}
	return out
}

func styleContains(label, needle string) bool {
	return strings.Contains(strings.ToLower(label), needle)
}
