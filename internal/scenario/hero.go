package scenario

import (
	"math/rand"

	"github.com/gabe-silva/poker-analyzer/internal/poker"
)

// HeroProfile is the hero's own style image, used for positional
// guidance and EV realization adjustments.
type HeroProfile struct {
	VPIP       float64 `json:"vpip"`
	PFR        float64 `json:"pfr"`
	AF         float64 `json:"af"`
	ThreeBet   float64 `json:"three_bet"`
	FoldTo3Bet float64 `json:"fold_to_3bet"`
}

// HeroProfileInput carries optional user overrides. Nil fields fall back
// to the documented defaults; values above 1.0 are read as percentages.
type HeroProfileInput struct {
	VPIP       *float64 `json:"vpip"`
	PFR        *float64 `json:"pfr"`
	AF         *float64 `json:"af"`
	ThreeBet   *float64 `json:"three_bet"`
	FoldTo3Bet *float64 `json:"fold_to_3bet"`
}

// positionOpenTargets are the recommended opening VPIP bands per
// position. BB has no open range; it closes the preflop action.
var positionOpenTargets = map[string][2]float64{
	"UTG": {0.17, 0.23},
	"LJ":  {0.20, 0.27},
	"HJ":  {0.22, 0.30},
	"CO":  {0.30, 0.39},
	"BTN": {0.44, 0.60},
	"SB":  {0.35, 0.48},
	"BB":  {0.00, 0.00},
}

func normalizeRate(raw *float64, def float64) float64 {
	if raw == nil {
		return def
	}
	v := *raw
	if v > 1.0 {
		v /= 100.0
	}
	return clamp(v, 0, 1)
}

// ParseHeroProfile normalizes user-supplied overrides onto the default
// profile.
func ParseHeroProfile(in *HeroProfileInput) HeroProfile {
	if in == nil {
		in = &HeroProfileInput{}
	}
	af := 2.8
	if in.AF != nil {
		af = *in.AF
	}
	return HeroProfile{
		VPIP:       normalizeRate(in.VPIP, 0.30),
		PFR:        normalizeRate(in.PFR, 0.22),
		AF:         clamp(af, 0.4, 8.0),
		ThreeBet:   normalizeRate(in.ThreeBet, 0.09),
		FoldTo3Bet: normalizeRate(in.FoldTo3Bet, 0.54),
	}
}

// RandomizeHeroProfile draws a broad profile from the rng so drills
// cover tight, balanced, and high-pressure images. Draw order is fixed:
// vpip, gap, pfr, af, three_bet, fold_to_3bet, then the conditional
// adjustment draws.
func RandomizeHeroProfile(rng *rand.Rand) HeroProfile {
	uniform := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }

	vpip := uniform(0.13, 0.56)
	maxPFR := vpip - uniform(0.01, 0.14)
	if maxPFR < 0.08 {
		maxPFR = 0.08
	}
	if maxPFR > 0.44 {
		maxPFR = 0.44
	}
	pfr := uniform(0.08, maxPFR)
	af := uniform(0.9, 6.3)
	threeBet := uniform(0.025, 0.19)
	foldTo3Bet := uniform(0.20, 0.82)

	// Tight players rarely carry a wide 3-bet range; heavy raisers
	// rarely carry a thin one.
	if vpip < 0.20 {
		ceil := uniform(0.02, 0.10)
		if threeBet > ceil {
			threeBet = ceil
		}
	}
	if pfr > 0.30 {
		floor := uniform(0.08, 0.17)
		if threeBet < floor {
			threeBet = floor
		}
	}

	return HeroProfile{
		VPIP:       clamp(vpip, 0.08, 0.65),
		PFR:        clamp(pfr, 0.05, 0.50),
		AF:         clamp(af, 0.4, 8.0),
		ThreeBet:   clamp(threeBet, 0.01, 0.30),
		FoldTo3Bet: clamp(foldTo3Bet, 0.10, 0.90),
	}
}

// Gap is VPIP minus PFR clamped at zero.
func (h HeroProfile) Gap() float64 {
	g := h.VPIP - h.PFR
	if g < 0 {
		return 0
	}
	return g
}

// PreflopAggressionRatio is PFR over VPIP.
func (h HeroProfile) PreflopAggressionRatio() float64 {
	if h.VPIP <= 0 {
		return 0
	}
	return h.PFR / h.VPIP
}

// ImageBluffiness estimates how bluff-heavy villains perceive hero,
// on a 0-1 scale.
func (h HeroProfile) ImageBluffiness() float64 {
	afNorm := clamp(h.AF/5.0, 0, 1)
	ratioNorm := clamp(h.PreflopAggressionRatio(), 0, 1)
	return clamp(0.42*h.VPIP+0.34*h.PFR+0.14*afNorm+0.10*ratioNorm, 0, 1)
}

// StyleLabel buckets the hero image into a coarse description.
func (h HeroProfile) StyleLabel() string {
	switch {
	case h.VPIP < 0.17 && h.PFR < 0.13:
		return "Nit / Tight-Passive"
	case h.VPIP < 0.24 && h.PFR >= 0.16 && h.AF >= 2.0:
		return "TAG"
	case h.VPIP >= 0.28 && h.PFR >= 0.20 && h.AF >= 2.2:
		return "LAG"
	case h.VPIP >= 0.30 && h.PFR < 0.17:
		return "Loose-Passive"
	case h.AF >= 4.0 && h.VPIP >= 0.35:
		return "Maniac / Over-aggressive"
	}
	return "Hybrid / Transitional"
}

// LeakFlags lists the structural leaks visible in the profile itself.
func (h HeroProfile) LeakFlags() []string {
	var flags []string
	if h.Gap() > 0.10 {
		flags = append(flags, "Large VPIP-PFR gap: likely overcalling preflop.")
	}
	if h.PreflopAggressionRatio() < 0.62 && h.VPIP > 0.25 {
		flags = append(flags, "Low raise-to-play ratio: not converting enough opens to raises.")
	}
	if h.AF > 4.0 {
		flags = append(flags, "Very high AF: likely over-bluffing late streets.")
	}
	if h.FoldTo3Bet > 0.65 {
		flags = append(flags, "High fold to 3-bet: opponents can re-raise light.")
	}
	if h.ThreeBet < 0.05 {
		flags = append(flags, "Low 3-bet rate: value-heavy and potentially face-up.")
	}
	return flags
}

// PositionGuidance is the per-spot coaching block attached to every
// generated scenario.
type PositionGuidance struct {
	Position            string     `json:"position"`
	Street              string     `json:"street"`
	TargetOpenVPIPRange [2]float64 `json:"target_open_vpip_range"`
	StyleLabel          string     `json:"style_label"`
	Notes               []string   `json:"notes"`
}

// GuidanceFor renders the positional guidance for one spot.
func (h HeroProfile) GuidanceFor(position string, street poker.Street) PositionGuidance {
	band, ok := positionOpenTargets[position]
	if !ok {
		band = [2]float64{0.22, 0.30}
	}
	var notes []string
	switch position {
	case "BTN":
		notes = append(notes, "Apply widest pressure here; isolate stations with larger sizings.")
	case "SB", "BB":
		notes = append(notes, "OOP penalty is real: reduce low-equity bluffs and avoid bloating marginal pots.")
	case "UTG", "LJ", "HJ":
		notes = append(notes, "Use tighter value-heavy opens; preserve EV by avoiding dominated offsuit broadways.")
	}
	if (street == poker.StreetTurn || street == poker.StreetRiver) && h.AF > 3.6 {
		notes = append(notes, "Your AF is high: tighten river bluffs and keep value density high.")
	}
	if h.Gap() > 0.10 {
		notes = append(notes, "You call too much versus your opens: convert best call candidates into raises.")
	}
	return PositionGuidance{
		Position:            position,
		Street:              string(street),
		TargetOpenVPIPRange: band,
		StyleLabel:          h.StyleLabel(),
		Notes:               notes,
	}
}
