package ev

import (
	"math"
	"math/rand"

	"github.com/gabe-silva/poker-analyzer/internal/archetype"
	"github.com/gabe-silva/poker-analyzer/internal/poker"
	"github.com/gabe-silva/poker-analyzer/internal/scenario"
)

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// madeHandScore normalizes the current made-hand category plus top
// kicker to roughly [0, 1.3].
func madeHandScore(hole, board []poker.Card) float64 {
	if len(board) < 3 {
		return 0
	}
	rank := poker.EvaluateBest(append(append([]poker.Card{}, hole...), board...))
	score := float64(rank.Category) / 8.0
	if len(rank.Ranks) > 0 {
		score += 0.3 * float64(rank.Ranks[0]) / 14.0
	}
	return score
}

// roleTightness shifts the acceptance target for the seat's role in the
// spot: the bettor represents strength, a waiting player very little.
func roleTightness(role string) float64 {
	switch role {
	case scenario.RoleBettor:
		return 0.10
	case scenario.RoleCaller:
		return 0.02
	case scenario.RoleWaiting:
		return -0.05
	}
	return 0
}

// handWeight is the acceptance probability for one candidate hand in a
// villain's range: a sigmoid over the gap between hand quality and the
// archetype's continue target.
func handWeight(c1, c2 poker.Card, board []poker.Card, street poker.Street, arch archetype.Archetype, role string, pressure float64) float64 {
	pre := poker.PreflopStrength(c1, c2) / 100.0
	post := 0.0
	if street != poker.StreetPreflop && len(board) >= 3 {
		post = madeHandScore([]poker.Card{c1, c2}, board)
	}
	quality := 0.6*pre + 0.4*post
	target := arch.PreflopTightness + roleTightness(role) + pressure*0.30
	target -= (arch.BluffFactor - 0.4) * 0.15
	return sigmoid((quality - target) * 7.0)
}

// villainRange is one villain's probability-weighted combo multiset
// over the live deck. Degenerate reports that the narrowed range
// collapsed and the archetype's un-narrowed range was substituted.
type villainRange struct {
	combos     [][2]poker.Card
	cumulative []float64
	total      float64
	Degenerate bool
}

// buildRange enumerates the weighted range. If the narrowing target
// zeroes every combo, it rebuilds without role or pressure shaping so
// the simulation always has a range to draw from.
func buildRange(deck []poker.Card, board []poker.Card, street poker.Street, arch archetype.Archetype, role string, pressure float64) villainRange {
	rc := enumerateRange(deck, board, street, arch, role, pressure)
	if rc.total <= 0 {
		rc = enumerateRange(deck, board, street, arch, "", 0)
		rc.Degenerate = true
	}
	return rc
}

func enumerateRange(deck []poker.Card, board []poker.Card, street poker.Street, arch archetype.Archetype, role string, pressure float64) villainRange {
	var rc villainRange
	for i := 0; i < len(deck); i++ {
		for j := i + 1; j < len(deck); j++ {
			w := handWeight(deck[i], deck[j], board, street, arch, role, pressure)
			if w < 1e-6 {
				continue
			}
			rc.combos = append(rc.combos, [2]poker.Card{deck[i], deck[j]})
			rc.total += w
			rc.cumulative = append(rc.cumulative, rc.total)
		}
	}
	return rc
}

// sample draws one combo in proportion to its weight.
func (rc villainRange) sample(rng *rand.Rand) [2]poker.Card {
	target := rng.Float64() * rc.total
	lo, hi := 0, len(rc.cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if rc.cumulative[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return rc.combos[lo]
}

// continueProbability estimates how often the archetype continues
// against a hero bet or raise of the given pot-relative size.
func continueProbability(arch archetype.Archetype, street poker.Street, actionKind string, sizePotRatio float64, role string) float64 {
	var base float64
	if actionKind == "raise" {
		base = arch.ContinueVsRaise
	} else {
		switch street {
		case poker.StreetFlop:
			base = 1.0 - arch.FoldToFlopBet
		case poker.StreetTurn:
			base = 1.0 - arch.FoldToTurnBet
		case poker.StreetRiver:
			base = 1.0 - arch.FoldToRiverBet
		default:
			base = 1.0 - arch.FoldToRaise
		}
	}

	sizePenalty := max0(sizePotRatio-0.5) * 0.20
	if street == poker.StreetRiver {
		sizePenalty *= 1.25
	}
	roleAdj := map[string]float64{
		scenario.RoleBettor:  0.08,
		scenario.RoleCaller:  0.05,
		scenario.RoleWaiting: -0.03,
	}[role]
	aggressionAdj := (arch.Aggression - 0.5) * 0.14

	return clamp(base-sizePenalty+roleAdj+aggressionAdj, 0.05, 0.95)
}

// streetFoldRate is the archetype's fold rate facing a bet on a street,
// with fold-to-raise standing in preflop.
func streetFoldRate(arch archetype.Archetype, street poker.Street) float64 {
	switch street {
	case poker.StreetFlop:
		return arch.FoldToFlopBet
	case poker.StreetTurn:
		return arch.FoldToTurnBet
	case poker.StreetRiver:
		return arch.FoldToRiverBet
	}
	return arch.FoldToRaise
}
