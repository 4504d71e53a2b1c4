// Package live runs interactive heads-up matches against a simulated
// opponent whose play is driven by an aggregated statistical profile.
package live

import (
	"github.com/gabe-silva/poker-analyzer/internal/stats"
)

// Profile is the normalized opponent model used by the villain policy.
// Rates are decimals in [0,1]; AF uses the usual aggression-factor scale.
type Profile struct {
	Name          string `json:"name"`
	StyleLabel    string `json:"style_label"`
	Source        string `json:"source"`
	HandsAnalyzed int    `json:"hands_analyzed"`

	VPIP       float64 `json:"vpip"`
	PFR        float64 `json:"pfr"`
	ThreeBet   float64 `json:"three_bet"`
	FoldTo3Bet float64 `json:"fold_to_3bet"`
	LimpRate   float64 `json:"limp_rate"`
	AF         float64 `json:"af"`
	AggFreq    float64 `json:"aggression_frequency"`

	FlopCBet   float64 `json:"flop_cbet"`
	TurnCBet   float64 `json:"turn_cbet"`
	RiverCBet  float64 `json:"river_cbet"`
	CheckRaise float64 `json:"check_raise"`
	WTSD       float64 `json:"wtsd"`
	WSD        float64 `json:"w_sd"`

	Tendencies []string `json:"tendencies,omitempty"`
}

// ProfileInput carries optional overrides; nil fields keep the pool
// defaults, and values above 1.0 are read as percentages.
type ProfileInput struct {
	Name          string `json:"name"`
	StyleLabel    string `json:"style_label"`
	HandsAnalyzed int    `json:"hands_analyzed"`

	VPIP       *float64 `json:"vpip"`
	PFR        *float64 `json:"pfr"`
	ThreeBet   *float64 `json:"three_bet"`
	FoldTo3Bet *float64 `json:"fold_to_3bet"`
	LimpRate   *float64 `json:"limp_rate"`
	AF         *float64 `json:"af"`
	AggFreq    *float64 `json:"aggression_frequency"`

	FlopCBet   *float64 `json:"flop_cbet"`
	TurnCBet   *float64 `json:"turn_cbet"`
	RiverCBet  *float64 `json:"river_cbet"`
	CheckRaise *float64 `json:"check_raise"`
	WTSD       *float64 `json:"wtsd"`
	WSD        *float64 `json:"w_sd"`
}

func rate(raw *float64, def float64) float64 {
	if raw == nil {
		return def
	}
	out := *raw
	if out > 1.0 {
		out /= 100.0
	}
	return clamp(out, 0, 1)
}

// ParseProfile fills the pool-average defaults for anything the caller
// left unset.
func ParseProfile(in *ProfileInput) Profile {
	if in == nil {
		in = &ProfileInput{}
	}
	name := in.Name
	if name == "" {
		name = "Villain"
	}
	style := in.StyleLabel
	if style == "" {
		style = "Unknown"
	}
	af := 2.2
	if in.AF != nil {
		af = clamp(*in.AF, 0.3, 8.0)
	}
	return Profile{
		Name:          name,
		StyleLabel:    style,
		Source:        "custom",
		HandsAnalyzed: in.HandsAnalyzed,

		VPIP:       rate(in.VPIP, 0.32),
		PFR:        rate(in.PFR, 0.21),
		ThreeBet:   rate(in.ThreeBet, 0.08),
		FoldTo3Bet: rate(in.FoldTo3Bet, 0.45),
		LimpRate:   rate(in.LimpRate, 0.12),
		AF:         af,
		AggFreq:    rate(in.AggFreq, 0.38),

		FlopCBet:   rate(in.FlopCBet, 0.58),
		TurnCBet:   rate(in.TurnCBet, 0.44),
		RiverCBet:  rate(in.RiverCBet, 0.32),
		CheckRaise: rate(in.CheckRaise, 0.09),
		WTSD:       rate(in.WTSD, 0.30),
		WSD:        rate(in.WSD, 0.51),
	}
}

// ProfileFromAnalysis turns an aggregated player analysis into a live
// opponent. Gated rates that never cleared their minimum keep the pool
// defaults; turn and river c-bet fall back to the barrel rates.
func ProfileFromAnalysis(a *stats.Analysis) Profile {
	p := ParseProfile(&ProfileInput{
		Name:          a.Profile.PlayerID,
		StyleLabel:    string(a.Style),
		HandsAnalyzed: a.Profile.HandsPlayed,
		VPIP:          a.Profile.VPIP,
		PFR:           a.Profile.PFR,
		ThreeBet:      a.Profile.ThreeBet,
		FoldTo3Bet:    a.Profile.FoldTo3Bet,
		LimpRate:      a.Profile.LimpRate,
		AF:            a.Profile.AF,
		FlopCBet:      a.Profile.CBetFlop,
		TurnCBet:      a.Profile.DoubleBarrel,
		RiverCBet:     a.Profile.TripleBarrel,
		CheckRaise:    a.Profile.CheckRaiseRate,
		WTSD:          a.Profile.WTSD,
		WSD:           a.Profile.WSD,
	})
	p.Source = "analysis"
	p.Tendencies = a.Tendencies
	if p.AF > 0 {
		p.AggFreq = clamp(p.AF/(p.AF+2.5), 0, 1)
	}
	return p
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
