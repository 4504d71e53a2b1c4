package archetype

import (
	"sort"
	"strings"
)

// Observation is the stat vector a profile reduces to for matching. The
// style label is optional corroborating evidence; an empty label only
// disables the label-keyed adjustment rules.
type Observation struct {
	VPIP       float64
	PFR        float64
	AF         float64
	StyleLabel string
}

// Gap is VPIP minus PFR clamped at zero. Negative gaps only arise from
// sampling noise and carry no signal.
func (o Observation) Gap() float64 {
	g := o.VPIP - o.PFR
	if g < 0 {
		return 0
	}
	return g
}

// Per-dimension scale constants. Each dimension's typical spread is
// divided out so no single statistic dominates the distance.
const (
	scaleVPIP = 0.18
	scalePFR  = 0.13
	scaleAF   = 2.2
	scaleGap  = 0.15
)

// adjustRule discounts the distance to the named archetypes when the
// observation corroborates them. Rules apply in order and stack
// multiplicatively.
type adjustRule struct {
	applies    func(Observation) bool
	keys       []string
	multiplier float64
}

var adjustRules = []adjustRule{
	{
		applies: func(o Observation) bool {
			l := strings.ToLower(o.StyleLabel)
			return strings.Contains(l, "calling") || strings.Contains(l, "loose-passive")
		},
		keys:       []string{"calling_station"},
		multiplier: 0.72,
	},
	{
		applies:    func(o Observation) bool { return o.Gap() > 0.20 },
		keys:       []string{"overcaller_preflop"},
		multiplier: 0.78,
	},
	{
		applies:    func(o Observation) bool { return o.AF >= 3.8 },
		keys:       []string{"maniac"},
		multiplier: 0.70,
	},
	{
		applies:    func(o Observation) bool { return o.AF >= 3.8 },
		keys:       []string{"lag_reg"},
		multiplier: 0.82,
	},
	{
		applies:    func(o Observation) bool { return o.VPIP > 0 && o.VPIP <= 0.20 },
		keys:       []string{"nit", "weak_tight"},
		multiplier: 0.80,
	},
	{
		applies: func(o Observation) bool {
			return strings.Contains(strings.ToLower(o.StyleLabel), "tight-aggressive")
		},
		keys:       []string{"tag_reg"},
		multiplier: 0.80,
	},
	{
		applies: func(o Observation) bool {
			l := strings.ToLower(o.StyleLabel)
			return strings.Contains(l, "loose-aggressive") || strings.Contains(l, "lag")
		},
		keys:       []string{"lag_reg"},
		multiplier: 0.78,
	},
	{
		applies: func(o Observation) bool {
			return strings.Contains(strings.ToLower(o.StyleLabel), "maniac")
		},
		keys:       []string{"maniac"},
		multiplier: 0.68,
	},
	{
		applies: func(o Observation) bool {
			return strings.Contains(strings.ToLower(o.StyleLabel), "nit")
		},
		keys:       []string{"nit"},
		multiplier: 0.74,
	},
	{
		applies: func(o Observation) bool {
			return strings.Contains(strings.ToLower(o.StyleLabel), "rock")
		},
		keys:       []string{"weak_tight", "nit"},
		multiplier: 0.84,
	},
}

// MatchScore is one archetype's adjusted distance to the observation.
type MatchScore struct {
	Archetype Archetype `json:"archetype"`
	Distance  float64   `json:"distance"`
}

func baseDistance(o Observation, a Archetype) float64 {
	dv := (o.VPIP - a.VPIP) / scaleVPIP
	dp := (o.PFR - a.PFR) / scalePFR
	da := (o.AF - a.AF) / scaleAF
	dg := (o.Gap() - a.Gap()) / scaleGap
	return dv*dv + dp*dp + da*da + dg*dg
}

// Rank scores every catalogue entry against the observation and returns
// them by ascending adjusted distance. Equal distances keep catalogue
// order.
func Rank(o Observation) []MatchScore {
	mult := map[string]float64{}
	for _, r := range adjustRules {
		if !r.applies(o) {
			continue
		}
		for _, k := range r.keys {
			if _, ok := mult[k]; !ok {
				mult[k] = 1
			}
			mult[k] *= r.multiplier
		}
	}

	scores := make([]MatchScore, len(Catalogue))
	for i, a := range Catalogue {
		d := baseDistance(o, a)
		if m, ok := mult[a.Key]; ok {
			d *= m
		}
		scores[i] = MatchScore{Archetype: a, Distance: d}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Distance < scores[j].Distance
	})
	return scores
}

// Match returns the nearest archetype.
func Match(o Observation) Archetype {
	return Rank(o)[0].Archetype
}
