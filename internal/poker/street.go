package poker

type Street string

const (
	StreetPreflop Street = "preflop"
	StreetFlop    Street = "flop"
	StreetTurn    Street = "turn"
	StreetRiver   Street = "river"
)

var Streets = []Street{StreetPreflop, StreetFlop, StreetTurn, StreetRiver}

// BoardCount is how many community cards are on display for a street.
func (s Street) BoardCount() int {
	switch s {
	case StreetFlop:
		return 3
	case StreetTurn:
		return 4
	case StreetRiver:
		return 5
	}
	return 0
}

// StreetForBoard maps revealed-card count to the street being entered:
// 0 preflop, 3 flop, 4 turn, 5 river.
func StreetForBoard(cards int) Street {
	switch {
	case cards >= 5:
		return StreetRiver
	case cards == 4:
		return StreetTurn
	case cards == 3:
		return StreetFlop
	}
	return StreetPreflop
}

func (s Street) Next() (Street, bool) {
	switch s {
	case StreetPreflop:
		return StreetFlop, true
	case StreetFlop:
		return StreetTurn, true
	case StreetTurn:
		return StreetRiver, true
	}
	return s, false
}

func (s Street) Valid() bool {
	switch s {
	case StreetPreflop, StreetFlop, StreetTurn, StreetRiver:
		return true
	}
	return false
}
