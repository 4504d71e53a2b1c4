// Package hand loads raw hand-history records and turns them into typed,
// ordered action sequences keyed by player and street.
package hand

import (
	"github.com/gabe-silva/poker-analyzer/internal/poker"
)

// ActionKind classifies one event in a hand history. The numeric wire
// codes live in parser.go; once parsed, everything downstream works in
// terms of these kinds.
type ActionKind string

const (
	ActionCheck      ActionKind = "check"
	ActionCall       ActionKind = "call"
	ActionBetRaise   ActionKind = "bet_raise"
	ActionFold       ActionKind = "fold"
	ActionSmallBlind ActionKind = "post_small_blind"
	ActionBigBlind   ActionKind = "post_big_blind"
	ActionBoardDealt ActionKind = "board_dealt"
	ActionPotAwarded ActionKind = "pot_awarded"
)

// Voluntary reports whether the action voluntarily put chips in the pot.
func (k ActionKind) Voluntary() bool {
	return k == ActionCall || k == ActionBetRaise
}

// Aggressive reports whether the action is a bet or raise.
func (k ActionKind) Aggressive() bool {
	return k == ActionBetRaise
}

// ActionEvent is one player action, derived at parse time and never
// mutated afterwards.
type ActionEvent struct {
	PlayerID  string
	Seat      int
	Kind      ActionKind
	Street    poker.Street
	Amount    float64
	PotBefore float64
	AllIn     bool
}

// PotRatio is the bet amount relative to the pot before the action.
func (a ActionEvent) PotRatio() float64 {
	if a.PotBefore <= 0 {
		return 0
	}
	return a.Amount / a.PotBefore
}

// Player is one seat's participation in a single hand.
type Player struct {
	PlayerID  string
	Seat      int
	Stack     float64
	HoleCards []string
	// Position is relative to the dealer: 0 dealer, 1 SB, 2 BB, ...
	Position int
	IsDealer bool
}

// Result is the outcome of a hand for one player.
type Result struct {
	PlayerID        string
	ReachedShowdown bool
	WonPot          bool
	AmountWon       float64
}

// Record is a fully parsed hand. Immutable once returned by the parser.
type Record struct {
	HandID     string
	Players    []Player
	Actions    []ActionEvent
	Board      []string
	DealerSeat int
	SmallBlind float64
	BigBlind   float64
	Results    map[string]Result
}

func (r *Record) PlayerByID(id string) (Player, bool) {
	for _, p := range r.Players {
		if p.PlayerID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (r *Record) ActionsOn(street poker.Street) []ActionEvent {
	out := make([]ActionEvent, 0, len(r.Actions))
	for _, a := range r.Actions {
		if a.Street == street {
			out = append(out, a)
		}
	}
	return out
}

func (r *Record) ActionsBy(playerID string) []ActionEvent {
	out := make([]ActionEvent, 0, len(r.Actions))
	for _, a := range r.Actions {
		if a.PlayerID == playerID {
			out = append(out, a)
		}
	}
	return out
}

func (r *Record) ReachedShowdown(playerID string) bool {
	res, ok := r.Results[playerID]
	return ok && res.ReachedShowdown
}

func (r *Record) WonPot(playerID string) bool {
	res, ok := r.Results[playerID]
	return ok && res.WonPot
}
