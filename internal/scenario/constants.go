// Package scenario builds seeded synthetic decision points: table setup,
// cards, pot state, action history, and the legal action menu for one
// hero decision.
package scenario

import "errors"

// NodeType describes how the preflop betting went before the spot.
type NodeType string

const (
	NodeSingleRaised NodeType = "single_raised_pot"
	NodeThreeBet     NodeType = "three_bet_pot"
	NodeFourBet      NodeType = "four_bet_pot"
)

var nodeTypes = map[NodeType]string{
	NodeSingleRaised: "single-raised pot",
	NodeThreeBet:     "3-bet pot",
	NodeFourBet:      "4-bet pot",
}

// ActionContext describes what hero is facing when the decision starts.
type ActionContext string

const (
	ContextCheckedToHero   ActionContext = "checked_to_hero"
	ContextFacingBet       ActionContext = "facing_bet"
	ContextFacingBetCall   ActionContext = "facing_bet_and_call"
)

// Role of a seat inside the generated spot.
const (
	RoleHeroToAct = "hero_to_act"
	RoleBettor    = "bettor"
	RoleCaller    = "caller"
	RoleWaiting   = "waiting"
	RoleOut       = "out"
)

// positionSets maps table size to the ordered position labels, button
// first.
var positionSets = map[int][]string{
	2: {"BTN", "BB"},
	3: {"BTN", "SB", "BB"},
	4: {"BTN", "SB", "BB", "UTG"},
	5: {"BTN", "SB", "BB", "UTG", "CO"},
	6: {"BTN", "SB", "BB", "UTG", "HJ", "CO"},
	7: {"BTN", "SB", "BB", "UTG", "LJ", "HJ", "CO"},
}

// betSizePcts is the pot-fraction preset menu for bet and raise sizing.
var betSizePcts = []float64{0.33, 0.5, 0.75, 1.25}

const (
	defaultSB      = 0.5
	defaultBB      = 1.0
	defaultStackBB = 100.0
)

var (
	ErrInvalidTableSize     = errors.New("num_players must be between 2 and 7")
	ErrInvalidStreet        = errors.New("invalid street")
	ErrInvalidNodeType      = errors.New("invalid node_type")
	ErrInvalidActionContext = errors.New("invalid action_context")
)

// PositionsForTable returns the ordered position labels for a table
// size.
func PositionsForTable(numPlayers int) ([]string, error) {
	ps, ok := positionSets[numPlayers]
	if !ok {
		return nil, ErrInvalidTableSize
	}
	return ps, nil
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
