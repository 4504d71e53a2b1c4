package poker

import (
	"fmt"
	"math/rand"
	"strings"
)

type Suit int

type Rank int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

type Card struct {
	Rank Rank
	Suit Suit
}

var rankToChar = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

var charToRank = map[byte]Rank{
	'2': Two, '3': Three, '4': Four, '5': Five, '6': Six, '7': Seven, '8': Eight, '9': Nine, 'T': Ten, 'J': Jack, 'Q': Queen, 'K': King, 'A': Ace,
}

var suitToChar = map[Suit]string{Spades: "s", Hearts: "h", Diamonds: "d", Clubs: "c"}

var charToSuit = map[byte]Suit{'s': Spades, 'h': Hearts, 'd': Diamonds, 'c': Clubs}

func (c Card) String() string {
	return rankToChar[c.Rank] + suitToChar[c.Suit]
}

// ParseCard accepts "Ah", "AH", "ah" and the unicode-suit variants
// ("A♥") seen in some hand-history exports.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("bad card %q", s)
	}
	r, ok := charToRank[strings.ToUpper(s[:1])[0]]
	if !ok {
		return Card{}, fmt.Errorf("bad card rank %q", s)
	}
	var suit Suit
	switch {
	case strings.HasSuffix(s, "♠"):
		suit = Spades
	case strings.HasSuffix(s, "♥"):
		suit = Hearts
	case strings.HasSuffix(s, "♦"):
		suit = Diamonds
	case strings.HasSuffix(s, "♣"):
		suit = Clubs
	default:
		suit, ok = charToSuit[strings.ToLower(s[len(s)-1:])[0]]
		if !ok {
			return Card{}, fmt.Errorf("bad card suit %q", s)
		}
	}
	return Card{Rank: r, Suit: suit}, nil
}

// MustCard panics on a malformed card string. Test and catalogue use only.
func MustCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func ParseCards(ss []string) ([]Card, error) {
	out := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func CardStrings(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

type Deck struct {
	cards []Card
}

func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for s := Spades; s <= Clubs; s++ {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return &Deck{cards: cards}
}

// Shuffle uses the caller's source so seeded callers stay reproducible.
func (d *Deck) Shuffle(rnd *rand.Rand) {
	rnd.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Deal() Card {
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Remove strips the given cards from the deck, preserving order.
func (d *Deck) Remove(cards ...Card) {
	used := make(map[Card]bool, len(cards))
	for _, c := range cards {
		used[c] = true
	}
	kept := d.cards[:0]
	for _, c := range d.cards {
		if !used[c] {
			kept = append(kept, c)
		}
	}
	d.cards = kept
}

func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
