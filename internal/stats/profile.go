package stats

import (
	"github.com/gabe-silva/poker-analyzer/internal/hand"
)

// Profile is the gated snapshot of a player's observed tendencies. Rates
// stay nil until their opportunity count clears the documented minimum,
// so consumers can tell "no evidence yet" from "observed zero".
type Profile struct {
	PlayerID    string `json:"player_id"`
	HandsPlayed int    `json:"hands_played"`
	Confidence  string `json:"confidence"`

	VPIP       *float64 `json:"vpip"`
	PFR        *float64 `json:"pfr"`
	LimpRate   *float64 `json:"limp_rate"`
	ThreeBet   *float64 `json:"three_bet"`
	FoldTo3Bet *float64 `json:"fold_to_three_bet"`
	AF         *float64 `json:"aggression_factor"`

	CBetFlop       *float64 `json:"cbet_flop"`
	FoldToFlopBet  *float64 `json:"fold_to_flop_bet"`
	FoldToTurnBet  *float64 `json:"fold_to_turn_bet"`
	FoldToRiverBet *float64 `json:"fold_to_river_bet"`
	CheckRaiseRate *float64 `json:"check_raise_rate"`
	DoubleBarrel   *float64 `json:"double_barrel"`
	TripleBarrel   *float64 `json:"triple_barrel"`
	OverbetRate    *float64 `json:"overbet_rate"`

	WTSD           *float64 `json:"wtsd"`
	WSD            *float64 `json:"wsd"`
	RiverValueRate *float64 `json:"river_value_rate"`

	// Raw counters travel with the snapshot so downstream rules can
	// apply their own opportunity thresholds.
	Counts Counts `json:"counts"`
}

// Counts carries the underlying hit/opportunity pairs.
type Counts struct {
	VPIP         Counter `json:"vpip"`
	PFR          Counter `json:"pfr"`
	Limp         Counter `json:"limp"`
	ThreeBet     Counter `json:"three_bet"`
	FoldTo3Bet   Counter `json:"fold_to_three_bet"`
	CBetFlop     Counter `json:"cbet_flop"`
	FacedFlop    Counter `json:"faced_flop_bet"`
	FacedTurn    Counter `json:"faced_turn_bet"`
	FacedRiver   Counter `json:"faced_river_bet"`
	CheckRaise   Counter `json:"check_raise"`
	Overbet      Counter `json:"overbet"`
	WTSD         Counter `json:"wtsd"`
	WSD          Counter `json:"wsd"`
	RiverValue   Counter `json:"river_value"`
	DoubleBarrel Counter `json:"double_barrel"`
	TripleBarrel Counter `json:"triple_barrel"`
}

// VPIPRaw returns the ungated VPIP, zero when nothing is on record.
func (p *Profile) VPIPRaw() float64 { return p.Counts.VPIP.Raw() }

// PFRRaw returns the ungated PFR.
func (p *Profile) PFRRaw() float64 { return p.Counts.PFR.Raw() }

// Gap is VPIP minus PFR, clamped at zero.
func (p *Profile) Gap() float64 {
	g := p.VPIPRaw() - p.PFRRaw()
	if g < 0 {
		return 0
	}
	return g
}

// AFValue returns the aggression factor or a neutral default when the
// sample is too thin to publish one.
func (p *Profile) AFValue() float64 {
	if p.AF != nil {
		return *p.AF
	}
	return 1.0
}

// BuildProfile aggregates the player's hands and emits the gated
// snapshot.
func BuildProfile(playerID string, hands []*hand.Record) *Profile {
	return profileFrom(Accumulate(playerID, hands))
}

func profileFrom(agg *Aggregate) *Profile {
	p := &Profile{
		PlayerID:    agg.PlayerID,
		HandsPlayed: agg.HandsPlayed,
		Confidence:  ConfidenceTier(agg.HandsPlayed),
	}

	preflopGate := MinHandsForPreflopRates
	if agg.HandsPlayed >= preflopGate {
		p.VPIP = agg.VPIP.Gated(preflopGate)
		p.PFR = agg.PFR.Gated(preflopGate)
		p.LimpRate = agg.Limp.Gated(preflopGate)
	}
	p.ThreeBet = agg.ThreeBet.Gated(MinThreeBetOpps)
	p.FoldTo3Bet = agg.FoldTo3Bet.Gated(MinFoldToThreeBetOpps)
	p.AF = agg.AFGated()

	p.CBetFlop = agg.Flop.CBet.Gated(MinCBetOpps)
	p.FoldToFlopBet = agg.Flop.FacedBet.Gated(MinFacedBetOpps)
	p.FoldToTurnBet = agg.Turn.FacedBet.Gated(MinFacedBetOpps)
	p.FoldToRiverBet = agg.River.FacedBet.Gated(MinFacedBetOpps)
	p.CheckRaiseRate = agg.CheckRaise.Gated(MinCheckRaiseOpps)
	p.DoubleBarrel = agg.DoubleBarrel.Gated(MinBarrelOpps)
	p.TripleBarrel = agg.TripleBarrel.Gated(MinBarrelOpps)
	p.OverbetRate = agg.Overbet.Gated(MinOverbetBets)

	if agg.HandsPlayed >= MinHandsForWTSD {
		p.WTSD = agg.WTSD.Gated(1)
	}
	p.WSD = agg.WSD.Gated(MinShowdownsForWSD)
	p.RiverValueRate = agg.RiverValue.Gated(MinRiverBetShowdowns)

	p.Counts = Counts{
		VPIP:         agg.VPIP,
		PFR:          agg.PFR,
		Limp:         agg.Limp,
		ThreeBet:     agg.ThreeBet,
		FoldTo3Bet:   agg.FoldTo3Bet,
		CBetFlop:     agg.Flop.CBet,
		FacedFlop:    agg.Flop.FacedBet,
		FacedTurn:    agg.Turn.FacedBet,
		FacedRiver:   agg.River.FacedBet,
		CheckRaise:   agg.CheckRaise,
		Overbet:      agg.Overbet,
		WTSD:         agg.WTSD,
		WSD:          agg.WSD,
		RiverValue:   agg.RiverValue,
		DoubleBarrel: agg.DoubleBarrel,
		TripleBarrel: agg.TripleBarrel,
	}
	return p
}

// BuildProfiles maps every player that appears in the batch to a
// snapshot.
func BuildProfiles(hands []*hand.Record) map[string]*Profile {
	seen := map[string]struct{}{}
	for _, rec := range hands {
		for _, pl := range rec.Players {
			seen[pl.PlayerID] = struct{}{}
		}
	}
	out := make(map[string]*Profile, len(seen))
	for id := range seen {
		out[id] = BuildProfile(id, hands)
	}
	return out
}
