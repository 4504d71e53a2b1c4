package stats

import "fmt"

// Style is the coarse behavioral bucket a profile resolves to.
type Style string

const (
	StyleUnknown        Style = "Unknown"
	StyleTightPassive   Style = "Tight-Passive (Rock)"
	StyleTightAggro     Style = "Tight-Aggressive (TAG)"
	StyleLoosePassive   Style = "Loose-Passive (Calling Station)"
	StyleLooseAggro     Style = "Loose-Aggressive (LAG)"
	StyleManiac         Style = "Maniac"
	StyleNit            Style = "Nit"
)

// Classification thresholds.
const (
	vpipTight      = 0.20
	vpipLoose      = 0.28
	vpipMidCutoff  = 0.24
	pfrPassive     = 0.14
	pfrAggressive  = 0.22
	afAggressive   = 2.0
	afPassiveCeil  = 1.5
	maniacVPIP     = 0.45
	maniacAF       = 3.5
	nitVPIP        = 0.14
	nitPFR         = 0.10
	minStyleSample = 20
)

// ClassifyStyle walks the rule ladder top to bottom and returns the
// first match. Extreme profiles are resolved before the quadrant
// buckets so a maniac never reads as a plain LAG.
func ClassifyStyle(p *Profile) Style {
	if p.HandsPlayed < minStyleSample {
		return StyleUnknown
	}

	vpip := p.VPIPRaw()
	pfr := p.PFRRaw()
	af := p.AFValue()

	if vpip > maniacVPIP && af > maniacAF {
		return StyleManiac
	}
	if vpip < nitVPIP && pfr < nitPFR {
		return StyleNit
	}

	loose := vpip > vpipLoose
	tight := vpip < vpipTight
	aggressive := pfr > pfrAggressive || af > afAggressive
	passive := pfr < pfrPassive && af < afPassiveCeil

	switch {
	case tight && aggressive:
		return StyleTightAggro
	case tight && passive:
		return StyleTightPassive
	case loose && aggressive:
		return StyleLooseAggro
	case loose && passive:
		return StyleLoosePassive
	}

	// Middling VPIP: aggression decides the axis, the midpoint cutoff
	// decides tight versus loose.
	if aggressive {
		if vpip < vpipMidCutoff {
			return StyleTightAggro
		}
		return StyleLooseAggro
	}
	if vpip < vpipMidCutoff {
		return StyleTightPassive
	}
	return StyleLoosePassive
}

// Tendencies renders human-readable observations from the gated rates.
// Gated-out statistics produce no line at all.
func Tendencies(p *Profile) []string {
	var out []string
	add := func(format string, args ...any) {
		out = append(out, fmt.Sprintf(format, args...))
	}

	if p.VPIP != nil {
		if *p.VPIP > 0.33 {
			add("Plays very loose preflop (VPIP > 33%%)")
		} else if *p.VPIP < 0.17 {
			add("Plays very tight preflop (VPIP < 17%%)")
		}
		if gap := p.Gap(); gap > 0.10 {
			add("Large VPIP-PFR gap (%.1f%%), calls too much", gap*100)
		}
	}
	if p.LimpRate != nil && *p.LimpRate > 0.08 {
		add("Limps frequently (%.1f%%)", *p.LimpRate*100)
	}
	if p.ThreeBet != nil {
		if *p.ThreeBet > 0.10 {
			add("Aggressive 3-bettor")
		} else if *p.ThreeBet < 0.03 && p.Counts.ThreeBet.Opps >= 20 {
			add("Rarely 3-bets (value-heavy range)")
		}
	}

	if p.CBetFlop != nil {
		if *p.CBetFlop > 0.70 {
			add("C-bets very frequently (easy to float)")
		} else if *p.CBetFlop < 0.45 {
			add("Rarely c-bets (honest betting)")
		}
	}
	if p.DoubleBarrel != nil {
		if *p.DoubleBarrel > 0.60 {
			add("Barrels aggressively on turn")
		} else if *p.DoubleBarrel < 0.35 {
			add("Gives up easily on turn")
		}
	}
	if p.AF != nil {
		if *p.AF > 3.0 {
			add("Highly aggressive postflop")
		} else if *p.AF < 1.2 {
			add("Passive postflop (rarely bets without value)")
		}
	}
	if p.OverbetRate != nil && *p.OverbetRate > 0.10 {
		add("Uses overbets frequently")
	}

	if p.WTSD != nil {
		if *p.WTSD > 0.33 {
			add("Goes to showdown frequently (sticky)")
		} else if *p.WTSD < 0.22 {
			add("Rarely goes to showdown (folds a lot)")
		}
	}
	if p.WSD != nil {
		if *p.WSD > 0.54 {
			add("Wins at showdown frequently (selective)")
		} else if *p.WSD < 0.45 {
			add("Loses at showdown often (overvalues hands)")
		}
	}
	if p.RiverValueRate != nil {
		if *p.RiverValueRate > 0.70 {
			add("River bets are highly value-weighted")
		} else if 1-*p.RiverValueRate > 0.35 {
			add("Bluffs frequently on river")
		}
	}
	return out
}

// ConditionalRule is an observed if/then pattern with its sample size.
type ConditionalRule struct {
	Condition  string  `json:"condition"`
	Conclusion string  `json:"conclusion"`
	Confidence float64 `json:"confidence"`
	SampleSize int     `json:"sample_size"`
}

// Rules derives conditional if/then reads from the counters.
func Rules(p *Profile) []ConditionalRule {
	var rules []ConditionalRule

	if p.Counts.RiverValue.Opps >= MinRiverBetShowdowns {
		vr := p.Counts.RiverValue.Raw()
		rules = append(rules, ConditionalRule{
			Condition:  "they bet the river",
			Conclusion: fmt.Sprintf("value hand (two pair+) %.0f%% of time", vr*100),
			Confidence: vr,
			SampleSize: p.Counts.RiverValue.Opps,
		})
	}

	if p.Counts.FacedFlop.Opps >= 20 {
		fr := p.Counts.FacedFlop.Raw()
		if fr > 0.50 {
			rules = append(rules, ConditionalRule{
				Condition:  "we c-bet flop",
				Conclusion: fmt.Sprintf("they fold %.0f%% of time", fr*100),
				Confidence: fr,
				SampleSize: p.Counts.FacedFlop.Opps,
			})
		}
	}

	if p.Counts.FoldTo3Bet.Opps >= MinFoldToThreeBetOpps {
		fr := p.Counts.FoldTo3Bet.Raw()
		rules = append(rules, ConditionalRule{
			Condition:  "we 3-bet their open",
			Conclusion: fmt.Sprintf("they fold %.0f%% of time", fr*100),
			Confidence: fr,
			SampleSize: p.Counts.FoldTo3Bet.Opps,
		})
	}

	if p.Counts.DoubleBarrel.Opps >= 20 {
		giveUp := 1 - p.Counts.DoubleBarrel.Raw()
		if giveUp > 0.40 {
			rules = append(rules, ConditionalRule{
				Condition:  "they c-bet flop and we call",
				Conclusion: fmt.Sprintf("they check turn %.0f%% of time", giveUp*100),
				Confidence: giveUp,
				SampleSize: p.Counts.DoubleBarrel.Opps,
			})
		}
	}

	return rules
}
