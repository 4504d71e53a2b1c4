package hand

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gabe-silva/poker-analyzer/internal/poker"
)

// Wire codes for event payload "type" as observed in exported histories.
const (
	codeCheck      = 0
	codeBigBlind   = 2
	codeSmallBlind = 3
	codeCall       = 7
	codeBetRaise   = 8
	codeBoardDealt = 9
	codePotAwarded = 10
	codeFold       = 11
)

var wireKinds = map[int]ActionKind{
	codeCheck:      ActionCheck,
	codeBigBlind:   ActionBigBlind,
	codeSmallBlind: ActionSmallBlind,
	codeCall:       ActionCall,
	codeBetRaise:   ActionBetRaise,
	codeBoardDealt: ActionBoardDealt,
	codePotAwarded: ActionPotAwarded,
	codeFold:       ActionFold,
}

type rawFile struct {
	Hands []json.RawMessage `json:"hands"`
}

type rawHand struct {
	ID         json.RawMessage `json:"id"`
	DealerSeat int             `json:"dealerSeat"`
	Players    []rawPlayer     `json:"players"`
	Events     []rawEvent      `json:"events"`
}

type rawPlayer struct {
	ID        json.RawMessage `json:"id"`
	PlayerID  json.RawMessage `json:"playerId"`
	Seat      int             `json:"seat"`
	Stack     *float64        `json:"stack"`
	Chips     *float64        `json:"chips"`
	Cards     json.RawMessage `json:"cards"`
	HoleCards json.RawMessage `json:"holeCards"`
}

type rawEvent struct {
	Payload *rawPayload `json:"payload"`
	// Some exports put the payload fields at the event top level.
	rawPayload
}

type rawPayload struct {
	Type *int `json:"type"`
	Seat *int `json:"seat"`
	// The amount may arrive under either field name. Both are kept as
	// tagged optionals so the fallback order is explicit; see
	// ResolveAmount.
	Amount *float64        `json:"amount"`
	Value  *float64        `json:"value"`
	Cards  json.RawMessage `json:"cards"`
}

// ResolveAmount returns the first present, non-null monetary field:
// amount, then value, then zero. Reading only one of the two fields is a
// known way to make every bet in a batch silently read as zero, so the
// fallback order is part of the parser's contract.
func ResolveAmount(amount, value *float64) float64 {
	if amount != nil {
		return *amount
	}
	if value != nil {
		return *value
	}
	return 0
}

// Result of one parse run. Malformed hands are skipped and counted; a
// single bad record never aborts the batch.
type ParseResult struct {
	Hands       []*Record
	ParseErrors int
	Warnings    []string
}

// Parser decodes raw hand-history JSON into Records.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hand history: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

func (p *Parser) Parse(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read hand history: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes accepts either {"hands":[...]} or a bare top-level list.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	var raws []json.RawMessage
	var file rawFile
	if err := json.Unmarshal(data, &file); err == nil && file.Hands != nil {
		raws = file.Hands
	} else if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode hand history: %w", err)
	}

	res := &ParseResult{}
	for i, raw := range raws {
		rec, warn, err := parseOne(raw, i)
		if warn != "" {
			res.Warnings = append(res.Warnings, warn)
		}
		if err != nil {
			res.ParseErrors++
			log.Warn().Int("hand_index", i).Err(err).Msg("skipping malformed hand")
			continue
		}
		res.Hands = append(res.Hands, rec)
	}
	return res, nil
}

func parseOne(raw json.RawMessage, index int) (*Record, string, error) {
	var rh rawHand
	if err := json.Unmarshal(raw, &rh); err != nil {
		return nil, "", fmt.Errorf("hand %d: %w", index, err)
	}

	handID := decodeStringOr(rh.ID, fmt.Sprintf("hand_%d", index))
	players, err := parsePlayers(rh.Players, rh.DealerSeat)
	if err != nil {
		return nil, "", fmt.Errorf("hand %s: %w", handID, err)
	}
	if len(players) == 0 {
		return nil, "", fmt.Errorf("hand %s: no players", handID)
	}
	if len(rh.Events) == 0 {
		return nil, "", fmt.Errorf("hand %s: no events", handID)
	}

	rec := &Record{
		HandID:     handID,
		Players:    players,
		DealerSeat: rh.DealerSeat,
		Results:    map[string]Result{},
	}
	warn := parseEvents(rec, rh.Events)
	return rec, warn, nil
}

func parsePlayers(raws []rawPlayer, dealerSeat int) ([]Player, error) {
	players := make([]Player, 0, len(raws))
	for _, rp := range raws {
		id := decodeStringOr(rp.ID, "")
		if id == "" {
			id = decodeStringOr(rp.PlayerID, "")
		}
		stack := 0.0
		if rp.Stack != nil {
			stack = *rp.Stack
		} else if rp.Chips != nil {
			stack = *rp.Chips
		}
		cards := rp.Cards
		if cards == nil {
			cards = rp.HoleCards
		}
		players = append(players, Player{
			PlayerID:  id,
			Seat:      rp.Seat,
			Stack:     stack,
			HoleCards: decodeCards(cards),
			IsDealer:  rp.Seat == dealerSeat,
		})
	}
	assignPositions(players, dealerSeat)
	return players, nil
}

// assignPositions numbers players clockwise from the dealer: 0 dealer,
// 1 SB, 2 BB, and so on.
func assignPositions(players []Player, dealerSeat int) {
	seats := make([]int, 0, len(players))
	for _, p := range players {
		seats = append(seats, p.Seat)
	}
	sort.Ints(seats)
	dealerIdx := 0
	for i, s := range seats {
		if s == dealerSeat {
			dealerIdx = i
			break
		}
	}
	n := len(seats)
	seatIdx := map[int]int{}
	for i, s := range seats {
		seatIdx[s] = i
	}
	for i := range players {
		players[i].Position = ((seatIdx[players[i].Seat] - dealerIdx) % n + n) % n
	}
}

func parseEvents(rec *Record, events []rawEvent) string {
	seatTo := map[int]*Player{}
	stacks := map[int]float64{}
	for i := range rec.Players {
		p := &rec.Players[i]
		seatTo[p.Seat] = p
		stacks[p.Seat] = p.Stack
	}

	var warnings []string
	street := poker.StreetPreflop
	pot := 0.0

	for _, ev := range events {
		payload := ev.Payload
		if payload == nil {
			payload = &ev.rawPayload
		}
		if payload.Type == nil {
			continue
		}
		kind, ok := wireKinds[*payload.Type]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("hand %s: unknown event type %d", rec.HandID, *payload.Type))
			continue
		}
		amount := ResolveAmount(payload.Amount, payload.Value)

		switch kind {
		case ActionBoardDealt:
			rec.Board = append(rec.Board, decodeCards(payload.Cards)...)
			street = poker.StreetForBoard(len(rec.Board))
			continue
		case ActionPotAwarded:
			if payload.Seat != nil {
				if p, ok := seatTo[*payload.Seat]; ok {
					rec.Results[p.PlayerID] = Result{
						PlayerID:        p.PlayerID,
						ReachedShowdown: true,
						WonPot:          true,
						AmountWon:       amount,
					}
				}
			}
			continue
		}

		if payload.Seat == nil {
			continue
		}
		p, ok := seatTo[*payload.Seat]
		if !ok {
			continue
		}

		switch kind {
		case ActionSmallBlind:
			rec.SmallBlind = amount
		case ActionBigBlind:
			rec.BigBlind = amount
		}

		allIn := amount > 0 && amount >= stacks[p.Seat]
		rec.Actions = append(rec.Actions, ActionEvent{
			PlayerID:  p.PlayerID,
			Seat:      p.Seat,
			Kind:      kind,
			Street:    street,
			Amount:    amount,
			PotBefore: pot,
			AllIn:     allIn,
		})
		if amount > 0 {
			pot += amount
			stacks[p.Seat] -= amount
			if stacks[p.Seat] < 0 {
				stacks[p.Seat] = 0
			}
		}
	}

	markLosingShowdowns(rec)
	return strings.Join(warnings, "; ")
}

// markLosingShowdowns records showdown participation for players who were
// still in at the end of a hand someone else won.
func markLosingShowdowns(rec *Record) {
	if len(rec.Results) == 0 {
		return
	}
	folded := map[string]bool{}
	for _, a := range rec.Actions {
		if a.Kind == ActionFold {
			folded[a.PlayerID] = true
		}
	}
	for _, p := range rec.Players {
		if folded[p.PlayerID] {
			continue
		}
		if _, ok := rec.Results[p.PlayerID]; ok {
			continue
		}
		rec.Results[p.PlayerID] = Result{
			PlayerID:        p.PlayerID,
			ReachedShowdown: true,
		}
	}
}

func decodeStringOr(raw json.RawMessage, fallback string) string {
	if raw == nil {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return fallback
}

// decodeCards handles the formats seen in the wild: a list of strings,
// a space-separated string, or a list of {rank,suit} objects.
func decodeCards(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := decodeOneCard(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		fields := strings.Fields(s)
		out := make([]string, 0, len(fields))
		for _, f := range fields {
			if c := normalizeCard(f); c != "" {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

func decodeOneCard(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return normalizeCard(s)
	}
	var obj struct {
		Rank string `json:"rank"`
		R    string `json:"r"`
		Suit string `json:"suit"`
		S    string `json:"s"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		rank := obj.Rank
		if rank == "" {
			rank = obj.R
		}
		suit := obj.Suit
		if suit == "" {
			suit = obj.S
		}
		return normalizeCard(rank + suit)
	}
	return ""
}

func normalizeCard(s string) string {
	c, err := poker.ParseCard(s)
	if err != nil {
		return ""
	}
	return c.String()
}
