package stats

import (
	"github.com/gabe-silva/poker-analyzer/internal/hand"
	"github.com/gabe-silva/poker-analyzer/internal/poker"
)

// StreetCounts accumulates one street's action mix for a player.
type StreetCounts struct {
	Opportunities int `json:"opportunities"`
	Bets          int `json:"bets"`
	Raises        int `json:"raises"`
	Calls         int `json:"calls"`
	Checks        int `json:"checks"`
	Folds         int `json:"folds"`

	CBet     Counter `json:"cbet"`
	FacedBet Counter `json:"faced_bet"` // hits are folds to the bet

	BetSizes []float64 `json:"-"`
}

func (s StreetCounts) aggressive() int { return s.Bets + s.Raises }

// Aggregate is the full per-player accumulation across a batch of hands.
// It is rebuilt wholesale on every aggregation; nothing patches it in
// place.
type Aggregate struct {
	PlayerID    string
	HandsPlayed int

	// Preflop
	VPIP        Counter
	PFR         Counter
	Limp        Counter
	ThreeBet    Counter
	FoldTo3Bet  Counter
	ColdCalls   int
	OpenRaises  int
	OpenSizesBB []float64

	// Postflop
	Flop  StreetCounts
	Turn  StreetCounts
	River StreetCounts

	DoubleBarrel Counter
	TripleBarrel Counter
	CheckRaise   Counter
	Overbet      Counter // opportunities are sized bets, hits are >100% pot

	// Showdown
	SawFlop Counter // opportunity: hand played; hit: saw the flop
	WTSD    Counter // opportunity: saw the flop; hit: reached showdown
	WSD     Counter // opportunity: reached showdown; hit: won the pot

	// River bets that went to showdown with known hole cards; hits are
	// two pair or better.
	RiverValue Counter
}

func (a *Aggregate) street(s poker.Street) *StreetCounts {
	switch s {
	case poker.StreetFlop:
		return &a.Flop
	case poker.StreetTurn:
		return &a.Turn
	case poker.StreetRiver:
		return &a.River
	}
	return nil
}

// AFRaw is the postflop aggression factor, (bets+raises)/calls. With
// aggressive actions but zero calls on record it degrades to the
// aggressive-action count, which keeps very aggressive small samples
// classified as aggressive without producing an infinity.
func (a *Aggregate) AFRaw() float64 {
	aggr := a.Flop.aggressive() + a.Turn.aggressive() + a.River.aggressive()
	calls := a.Flop.Calls + a.Turn.Calls + a.River.Calls
	if calls == 0 {
		return float64(aggr)
	}
	return float64(aggr) / float64(calls)
}

func (a *Aggregate) postflopActions() int {
	total := 0
	for _, s := range []StreetCounts{a.Flop, a.Turn, a.River} {
		total += s.Bets + s.Raises + s.Calls + s.Checks
	}
	return total
}

// AFGated emits AF only once enough postflop actions are on record.
func (a *Aggregate) AFGated() *float64 {
	if a.postflopActions() < MinPostflopActionsForAF {
		return nil
	}
	v := a.AFRaw()
	return &v
}

// VPIPPFRGap is clamped at zero; PFR exceeding VPIP only happens through
// sampling noise and a negative gap has no behavioral meaning.
func (a *Aggregate) VPIPPFRGap() float64 {
	gap := a.VPIP.Raw() - a.PFR.Raw()
	if gap < 0 {
		return 0
	}
	return gap
}

// Accumulate folds the hands a player appears in into the aggregate.
func Accumulate(playerID string, hands []*hand.Record) *Aggregate {
	agg := &Aggregate{PlayerID: playerID}
	for _, rec := range hands {
		if _, ok := rec.PlayerByID(playerID); !ok {
			continue
		}
		preflop := rec.ActionsOn(poker.StreetPreflop)
		mine := actionsFor(preflop, playerID)
		if len(mine) == 0 {
			continue
		}
		agg.HandsPlayed++
		accumulatePreflop(agg, playerID, preflop, rec.BigBlind)
		accumulatePostflop(agg, playerID, rec)
		accumulateShowdown(agg, playerID, rec)
	}
	return agg
}

func actionsFor(actions []hand.ActionEvent, playerID string) []hand.ActionEvent {
	out := make([]hand.ActionEvent, 0, len(actions))
	for _, a := range actions {
		if a.PlayerID == playerID {
			out = append(out, a)
		}
	}
	return out
}

func accumulatePreflop(agg *Aggregate, playerID string, preflop []hand.ActionEvent, bigBlind float64) {
	agg.VPIP.Opportunity()
	agg.PFR.Opportunity()
	agg.Limp.Opportunity()

	voluntary := false
	raised := false
	limped := false
	raisesBeforeUs := 0 // count at our first non-blind action
	othersRaises := 0
	firstActionSeen := false
	ourRaises := 0

	for _, a := range preflop {
		if a.Kind == hand.ActionSmallBlind || a.Kind == hand.ActionBigBlind {
			continue
		}
		if a.PlayerID != playerID {
			if a.Kind == hand.ActionBetRaise {
				othersRaises++
				if !firstActionSeen {
					raisesBeforeUs++
				}
			}
			continue
		}
		firstActionSeen = true
		switch a.Kind {
		case hand.ActionBetRaise:
			voluntary = true
			raised = true
			ourRaises++
			if othersRaises == 0 && ourRaises == 1 {
				agg.OpenRaises++
				if bigBlind > 0 {
					agg.OpenSizesBB = append(agg.OpenSizesBB, a.Amount/bigBlind)
				}
			} else if raisesBeforeUs == 1 && ourRaises == 1 {
				agg.ThreeBet.Hit()
			}
		case hand.ActionCall:
			voluntary = true
			if othersRaises == 0 {
				if !limped {
					limped = true
					agg.Limp.Hit()
				}
			} else if !raised && !limped {
				agg.ColdCalls++
			}
		}
	}

	if voluntary {
		agg.VPIP.Hit()
	}
	if raised {
		agg.PFR.Hit()
	}
	// Facing exactly one raise at our first act is a 3-bet spot.
	if raisesBeforeUs == 1 {
		agg.ThreeBet.Opportunity()
	}

	if ourRaises > 0 {
		faced3Bet := false
		pastOurRaise := false
		for _, a := range preflop {
			if a.Kind == hand.ActionSmallBlind || a.Kind == hand.ActionBigBlind {
				continue
			}
			if a.PlayerID == playerID && a.Kind == hand.ActionBetRaise {
				pastOurRaise = true
				continue
			}
			if pastOurRaise && a.PlayerID != playerID && a.Kind == hand.ActionBetRaise {
				faced3Bet = true
				break
			}
		}
		if faced3Bet {
			agg.FoldTo3Bet.Opportunity()
			for _, a := range preflop {
				if a.PlayerID == playerID && a.Kind == hand.ActionFold {
					agg.FoldTo3Bet.Hit()
					break
				}
			}
		}
	}
}

func accumulatePostflop(agg *Aggregate, playerID string, rec *hand.Record) {
	aggressor := preflopAggressor(rec)
	prevAggressor := aggressor

	for _, street := range []poker.Street{poker.StreetFlop, poker.StreetTurn, poker.StreetRiver} {
		actions := rec.ActionsOn(street)
		if len(actions) == 0 {
			break
		}
		if foldedBefore(rec, playerID, street) {
			break
		}
		sc := agg.street(street)
		sc.Opportunities++
		analyzeStreet(agg, sc, actions, playerID, prevAggressor == playerID)
		prevAggressor = lastAggressorOn(actions, prevAggressor)
	}

	accumulateBarrels(agg, playerID, rec)
	accumulateCheckRaises(agg, playerID, rec)
}

func preflopAggressor(rec *hand.Record) string {
	aggressor := ""
	for _, a := range rec.ActionsOn(poker.StreetPreflop) {
		if a.Kind == hand.ActionBetRaise {
			aggressor = a.PlayerID
		}
	}
	return aggressor
}

func lastAggressorOn(actions []hand.ActionEvent, current string) string {
	for _, a := range actions {
		if a.Kind == hand.ActionBetRaise {
			current = a.PlayerID
		}
	}
	return current
}

func foldedBefore(rec *hand.Record, playerID string, street poker.Street) bool {
	for _, a := range rec.Actions {
		if a.Street == street {
			break
		}
		if a.PlayerID == playerID && a.Kind == hand.ActionFold {
			return true
		}
	}
	return false
}

func analyzeStreet(agg *Aggregate, sc *StreetCounts, actions []hand.ActionEvent, playerID string, wasAggressor bool) {
	var firstAction *hand.ActionEvent
	facedBetBeforeActing := false
	firstToAct := true
	betSeen := false

	for i := range actions {
		a := actions[i]
		if a.PlayerID != playerID {
			switch a.Kind {
			case hand.ActionBetRaise:
				if firstAction == nil {
					facedBetBeforeActing = true
				}
				firstToAct = false
				betSeen = true
			case hand.ActionCheck:
				firstToAct = false
			}
			continue
		}
		if firstAction == nil {
			firstAction = &actions[i]
		}
		switch a.Kind {
		case hand.ActionBetRaise:
			if betSeen {
				sc.Raises++
			} else {
				sc.Bets++
			}
			betSeen = true
			if a.PotBefore > 0 && a.Amount > 0 {
				ratio := a.Amount / a.PotBefore
				sc.BetSizes = append(sc.BetSizes, ratio)
				agg.Overbet.Opportunity()
				if ratio > 1.0 {
					agg.Overbet.Hit()
				}
			}
		case hand.ActionCall:
			sc.Calls++
		case hand.ActionCheck:
			sc.Checks++
		case hand.ActionFold:
			sc.Folds++
		}
	}

	// C-bet spot: prior-street aggressor, first to act, and acted.
	if wasAggressor && firstToAct && firstAction != nil {
		sc.CBet.Opportunity()
		if firstAction.Kind == hand.ActionBetRaise {
			sc.CBet.Hit()
		}
	}
	if facedBetBeforeActing && firstAction != nil {
		sc.FacedBet.Opportunity()
		if firstAction.Kind == hand.ActionFold {
			sc.FacedBet.Hit()
		}
	}
}

func accumulateBarrels(agg *Aggregate, playerID string, rec *hand.Record) {
	betOn := func(street poker.Street) bool {
		for _, a := range rec.ActionsOn(street) {
			if a.PlayerID == playerID && a.Kind == hand.ActionBetRaise {
				return true
			}
		}
		return false
	}

	if !betOn(poker.StreetFlop) {
		return
	}
	turnActions := rec.ActionsOn(poker.StreetTurn)
	if len(turnActions) == 0 || foldedBefore(rec, playerID, poker.StreetTurn) {
		return
	}
	agg.DoubleBarrel.Opportunity()
	if !betOn(poker.StreetTurn) {
		return
	}
	agg.DoubleBarrel.Hit()

	riverActions := rec.ActionsOn(poker.StreetRiver)
	if len(riverActions) == 0 || foldedBefore(rec, playerID, poker.StreetRiver) {
		return
	}
	agg.TripleBarrel.Opportunity()
	if betOn(poker.StreetRiver) {
		agg.TripleBarrel.Hit()
	}
}

func accumulateCheckRaises(agg *Aggregate, playerID string, rec *hand.Record) {
	for _, street := range []poker.Street{poker.StreetFlop, poker.StreetTurn, poker.StreetRiver} {
		checkedFirst := false
		opponentBetAfter := false
		raisedAfter := false
		for _, a := range rec.ActionsOn(street) {
			if a.PlayerID == playerID {
				if !checkedFirst && a.Kind == hand.ActionCheck {
					checkedFirst = true
				} else if checkedFirst && opponentBetAfter && a.Kind == hand.ActionBetRaise {
					raisedAfter = true
					break
				}
			} else if checkedFirst && a.Kind == hand.ActionBetRaise {
				opponentBetAfter = true
			}
		}
		if checkedFirst && opponentBetAfter {
			agg.CheckRaise.Opportunity()
			if raisedAfter {
				agg.CheckRaise.Hit()
			}
		}
	}
}

func accumulateShowdown(agg *Aggregate, playerID string, rec *hand.Record) {
	agg.SawFlop.Opportunity()
	sawFlop := len(rec.ActionsOn(poker.StreetFlop)) > 0 && !foldedBefore(rec, playerID, poker.StreetFlop)
	if !sawFlop {
		return
	}
	agg.SawFlop.Hit()
	agg.WTSD.Opportunity()
	if !rec.ReachedShowdown(playerID) {
		return
	}
	agg.WTSD.Hit()
	agg.WSD.Opportunity()
	if rec.WonPot(playerID) {
		agg.WSD.Hit()
	}
	accumulateRiverBetStrength(agg, playerID, rec)
}

func accumulateRiverBetStrength(agg *Aggregate, playerID string, rec *hand.Record) {
	pl, ok := rec.PlayerByID(playerID)
	if !ok || len(pl.HoleCards) < 2 || len(rec.Board) < 5 {
		return
	}
	bet := false
	for _, a := range rec.ActionsOn(poker.StreetRiver) {
		if a.PlayerID == playerID && a.Kind == hand.ActionBetRaise {
			bet = true
			break
		}
	}
	if !bet {
		return
	}
	cards, err := poker.ParseCards(append(append([]string{}, pl.HoleCards...), rec.Board...))
	if err != nil {
		return
	}
	agg.RiverValue.Opportunity()
	if poker.EvaluateBest(cards).Category >= 2 {
		agg.RiverValue.Hit()
	}
}
