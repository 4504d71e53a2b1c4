// Package archetype defines the library of opponent behavioral models
// used to drive synthetic villains, and matches observed profiles to
// the nearest model.
package archetype

// Archetype is one opponent behavioral model. Rates are decimals in
// [0,1] except AF, which is the usual aggression-factor scale.
type Archetype struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`

	VPIP float64 `json:"vpip"`
	PFR  float64 `json:"pfr"`
	AF   float64 `json:"af"`

	PreflopTightness float64 `json:"preflop_tightness"`

	FoldToFlopBet  float64 `json:"fold_to_flop_bet"`
	FoldToTurnBet  float64 `json:"fold_to_turn_bet"`
	FoldToRiverBet float64 `json:"fold_to_river_bet"`
	FoldToRaise    float64 `json:"fold_to_raise"`

	ContinueVsRaise float64 `json:"continue_vs_raise"`
	CheckRaiseRate  float64 `json:"check_raise_rate"`
	Aggression      float64 `json:"aggression"`
	BluffFactor     float64 `json:"bluff_factor"`
}

// FoldToBet returns the street-specific fold-to-bet rate.
func (a Archetype) FoldToBet(street string) float64 {
	switch street {
	case "turn":
		return a.FoldToTurnBet
	case "river":
		return a.FoldToRiverBet
	}
	return a.FoldToFlopBet
}

// Gap is VPIP minus PFR, the share of hands played passively preflop.
func (a Archetype) Gap() float64 {
	g := a.VPIP - a.PFR
	if g < 0 {
		return 0
	}
	return g
}

// Catalogue is the fixed archetype library, in canonical order. Matching
// ties break toward the earlier entry.
var Catalogue = []Archetype{
	{
		Key:              "nit",
		Label:            "Nit",
		Description:      "Plays very few hands and gives up without a strong holding.",
		VPIP:             0.14,
		PFR:              0.11,
		AF:               1.7,
		PreflopTightness: 0.82,
		FoldToFlopBet:    0.58,
		FoldToTurnBet:    0.62,
		FoldToRiverBet:   0.68,
		FoldToRaise:      0.63,
		ContinueVsRaise:  0.28,
		CheckRaiseRate:   0.06,
		Aggression:       0.32,
		BluffFactor:      0.24,
	},
	{
		Key:              "tag_reg",
		Label:            "TAG Regular",
		Description:      "Solid tight-aggressive regular with disciplined ranges.",
		VPIP:             0.22,
		PFR:              0.19,
		AF:               2.6,
		PreflopTightness: 0.67,
		FoldToFlopBet:    0.44,
		FoldToTurnBet:    0.48,
		FoldToRiverBet:   0.53,
		FoldToRaise:      0.47,
		ContinueVsRaise:  0.43,
		CheckRaiseRate:   0.11,
		Aggression:       0.56,
		BluffFactor:      0.41,
	},
	{
		Key:              "lag_reg",
		Label:            "LAG Regular",
		Description:      "Loose-aggressive regular who applies relentless pressure.",
		VPIP:             0.34,
		PFR:              0.27,
		AF:               3.4,
		PreflopTightness: 0.46,
		FoldToFlopBet:    0.34,
		FoldToTurnBet:    0.39,
		FoldToRiverBet:   0.47,
		FoldToRaise:      0.39,
		ContinueVsRaise:  0.55,
		CheckRaiseRate:   0.17,
		Aggression:       0.78,
		BluffFactor:      0.67,
	},
	{
		Key:              "calling_station",
		Label:            "Calling Station",
		Description:      "Calls far too wide on every street and rarely raises.",
		VPIP:             0.46,
		PFR:              0.11,
		AF:               1.1,
		PreflopTightness: 0.34,
		FoldToFlopBet:    0.23,
		FoldToTurnBet:    0.31,
		FoldToRiverBet:   0.42,
		FoldToRaise:      0.26,
		ContinueVsRaise:  0.71,
		CheckRaiseRate:   0.04,
		Aggression:       0.21,
		BluffFactor:      0.19,
	},
	{
		Key:              "maniac",
		Label:            "Maniac",
		Description:      "Hyper-aggressive on every street with a huge bluffing range.",
		VPIP:             0.52,
		PFR:              0.37,
		AF:               4.4,
		PreflopTightness: 0.27,
		FoldToFlopBet:    0.28,
		FoldToTurnBet:    0.35,
		FoldToRiverBet:   0.43,
		FoldToRaise:      0.34,
		ContinueVsRaise:  0.62,
		CheckRaiseRate:   0.23,
		Aggression:       0.91,
		BluffFactor:      0.83,
	},
	{
		Key:              "weak_tight",
		Label:            "Weak-Tight",
		Description:      "Tight preflop but folds too readily against aggression.",
		VPIP:             0.19,
		PFR:              0.13,
		AF:               1.6,
		PreflopTightness: 0.73,
		FoldToFlopBet:    0.53,
		FoldToTurnBet:    0.61,
		FoldToRiverBet:   0.66,
		FoldToRaise:      0.58,
		ContinueVsRaise:  0.31,
		CheckRaiseRate:   0.05,
		Aggression:       0.28,
		BluffFactor:      0.22,
	},
	{
		Key:              "fit_or_fold",
		Label:            "Fit-or-Fold",
		Description:      "Continues only when the flop connects, folds everything else.",
		VPIP:             0.26,
		PFR:              0.19,
		AF:               2.0,
		PreflopTightness: 0.57,
		FoldToFlopBet:    0.59,
		FoldToTurnBet:    0.48,
		FoldToRiverBet:   0.50,
		FoldToRaise:      0.52,
		ContinueVsRaise:  0.36,
		CheckRaiseRate:   0.08,
		Aggression:       0.44,
		BluffFactor:      0.31,
	},
	{
		Key:              "one_and_done",
		Label:            "One-and-Done",
		Description:      "Takes one stab at the pot and shuts down when called.",
		VPIP:             0.24,
		PFR:              0.20,
		AF:               2.2,
		PreflopTightness: 0.61,
		FoldToFlopBet:    0.42,
		FoldToTurnBet:    0.58,
		FoldToRiverBet:   0.59,
		FoldToRaise:      0.49,
		ContinueVsRaise:  0.40,
		CheckRaiseRate:   0.10,
		Aggression:       0.53,
		BluffFactor:      0.36,
	},
	{
		Key:              "trappy",
		Label:            "Trappy",
		Description:      "Slow-plays strong hands and under-represents its range.",
		VPIP:             0.23,
		PFR:              0.16,
		AF:               1.7,
		PreflopTightness: 0.64,
		FoldToFlopBet:    0.38,
		FoldToTurnBet:    0.43,
		FoldToRiverBet:   0.50,
		FoldToRaise:      0.44,
		ContinueVsRaise:  0.47,
		CheckRaiseRate:   0.13,
		Aggression:       0.36,
		BluffFactor:      0.27,
	},
	{
		Key:              "overfolder_3bet",
		Label:            "3-Bet Overfolder",
		Description:      "Opens normally but surrenders to raises far too often.",
		VPIP:             0.25,
		PFR:              0.20,
		AF:               2.1,
		PreflopTightness: 0.60,
		FoldToFlopBet:    0.43,
		FoldToTurnBet:    0.47,
		FoldToRiverBet:   0.52,
		FoldToRaise:      0.61,
		ContinueVsRaise:  0.33,
		CheckRaiseRate:   0.09,
		Aggression:       0.49,
		BluffFactor:      0.34,
	},
	{
		Key:              "overcaller_preflop",
		Label:            "Preflop Overcaller",
		Description:      "Flats too many opens and arrives postflop with a weak range.",
		VPIP:             0.37,
		PFR:              0.16,
		AF:               2.0,
		PreflopTightness: 0.45,
		FoldToFlopBet:    0.36,
		FoldToTurnBet:    0.45,
		FoldToRiverBet:   0.54,
		FoldToRaise:      0.41,
		ContinueVsRaise:  0.51,
		CheckRaiseRate:   0.10,
		Aggression:       0.41,
		BluffFactor:      0.29,
	},
	{
		Key:              "short_stack_jammer",
		Label:            "Short-Stack Jammer",
		Description:      "Plays a shove-heavy game that polarizes decisions early.",
		VPIP:             0.29,
		PFR:              0.22,
		AF:               3.0,
		PreflopTightness: 0.55,
		FoldToFlopBet:    0.32,
		FoldToTurnBet:    0.37,
		FoldToRiverBet:   0.46,
		FoldToRaise:      0.30,
		ContinueVsRaise:  0.64,
		CheckRaiseRate:   0.16,
		Aggression:       0.74,
		BluffFactor:      0.44,
	},
}

// ByKey returns the archetype with the given key.
func ByKey(key string) (Archetype, bool) {
	for _, a := range Catalogue {
		if a.Key == key {
			return a, true
		}
	}
	return Archetype{}, false
}

// Keys lists the catalogue keys in canonical order.
func Keys() []string {
	out := make([]string, len(Catalogue))
	for i, a := range Catalogue {
		out[i] = a.Key
	}
	return out
}
