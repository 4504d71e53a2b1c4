// Package ev estimates per-action expected value for a generated
// scenario: Monte Carlo equity against archetype-shaped villain ranges,
// fold-equity modeling, and a leak decomposition of the gap between the
// chosen and best lines.
package ev

import "math"

// RequiredEquityToCall is the break-even equity for a call,
// call / (pot + call).
func RequiredEquityToCall(potBeforeCall, callAmount float64) float64 {
	pot := max0(potBeforeCall)
	call := max0(callAmount)
	if call <= 0 {
		return 0
	}
	return call / maxf(1e-9, pot+call)
}

// MinimumDefenseFrequency against a pure bluffing strategy,
// pot / (pot + bet).
func MinimumDefenseFrequency(potBeforeBet, betSize float64) float64 {
	pot := max0(potBeforeBet)
	bet := max0(betSize)
	if bet <= 0 {
		return 1
	}
	return clamp(pot/maxf(1e-9, pot+bet), 0, 1)
}

// BreakEvenBluffFoldFrequency is the fold rate a zero-equity bluff
// needs, risk / (risk + reward).
func BreakEvenBluffFoldFrequency(risk, reward float64) float64 {
	r := max0(risk)
	w := max0(reward)
	if r <= 0 {
		return 0
	}
	return clamp(r/maxf(1e-9, r+w), 0, 1)
}

// PolarizedBluffShare is the bluff share of a polarized betting range,
// b / (1 + b) with b = bet/pot.
func PolarizedBluffShare(betToPotRatio float64) float64 {
	b := max0(betToPotRatio)
	if b <= 0 {
		return 0
	}
	return clamp(b/(1+b), 0, 1)
}

// BluffToValueRatio under a one-street polarized model equals bet/pot.
func BluffToValueRatio(betToPotRatio float64) float64 {
	return max0(betToPotRatio)
}

// StackToPotRatio is effective stack over pot.
func StackToPotRatio(effectiveStack, potSize float64) float64 {
	return max0(effectiveStack) / maxf(1e-9, potSize)
}

// SPRBand is a rule-of-thumb stack-to-pot planning band.
type SPRBand struct {
	Label string   `json:"label"`
	Notes []string `json:"notes"`
}

// ClassifySPR buckets an SPR into its planning band.
func ClassifySPR(spr float64) SPRBand {
	s := max0(spr)
	switch {
	case s < 2.0:
		return SPRBand{
			Label: "Very Low SPR",
			Notes: []string{
				"Commitment threshold is low; value edges realize quickly.",
				"Avoid high-frequency pure bluffs unless fold equity is clear.",
			},
		}
	case s < 4.5:
		return SPRBand{
			Label: "Low SPR",
			Notes: []string{
				"One-pair plus strong draws gain stack-off value more often.",
				"Pressure lines should be size-disciplined to avoid over-investing weak bluff-catchers.",
			},
		}
	case s < 8.0:
		return SPRBand{
			Label: "Medium SPR",
			Notes: []string{
				"Mix value and pressure; future-street realization matters.",
				"Favor hands with redraws/blockers when building aggressive lines.",
			},
		}
	}
	return SPRBand{
		Label: "High SPR",
		Notes: []string{
			"Nutted potential rises in value; medium made hands become thinner stacks-off.",
			"Use selective aggression and protect against reverse implied odds.",
		},
	}
}

// MDFEntry is one row of the quick-lookup MDF table.
type MDFEntry struct {
	BetToPot float64 `json:"bet_to_pot"`
	MDF      float64 `json:"mdf"`
}

// MDFReference tabulates MDF for the common bet sizes.
func MDFReference() []MDFEntry {
	sizes := []float64{0.25, 0.33, 0.5, 0.66, 0.75, 1.0, 1.5}
	out := make([]MDFEntry, 0, len(sizes))
	for _, b := range sizes {
		out = append(out, MDFEntry{BetToPot: b, MDF: round4(MinimumDefenseFrequency(1.0, b))})
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
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

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
