// Package analysis exposes hand-history uploads as player reads: it
// parses the batch, builds the behavioral profile, and ranks the
// nearest villain archetypes.
package analysis

import (
	"io"
	"sort"

	"github.com/gabe-silva/poker-analyzer/internal/archetype"
	"github.com/gabe-silva/poker-analyzer/internal/hand"
	"github.com/gabe-silva/poker-analyzer/internal/stats"
)

const matchesReturned = 3

type Service struct {
	parser *hand.Parser
}

func NewService() *Service {
	return &Service{parser: hand.NewParser()}
}

// Analyze parses the hand-history batch and profiles one player.
func (s *Service) Analyze(r io.Reader, playerID string) (*AnalyzeResponse, error) {
	if playerID == "" {
		return nil, ErrInvalidRequest
	}
	res, err := s.parser.Parse(r)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	if len(res.Hands) == 0 {
		return nil, ErrNoHands
	}

	played := 0
	for _, rec := range res.Hands {
		if _, ok := rec.PlayerByID(playerID); ok {
			played++
		}
	}
	if played == 0 {
		return nil, ErrPlayerNotFound
	}

	a := stats.Analyze(playerID, res.Hands)
	return &AnalyzeResponse{
		PlayerID:    playerID,
		HandsParsed: len(res.Hands),
		HandsPlayed: played,
		ParseErrors: res.ParseErrors,
		Warnings:    res.Warnings,
		Analysis:    a,
		Matches:     matchArchetypes(a),
	}, nil
}

// Players parses the batch and lists every player seen, most hands
// first.
func (s *Service) Players(r io.Reader) (*PlayersResponse, error) {
	res, err := s.parser.Parse(r)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	counts := map[string]int{}
	for _, rec := range res.Hands {
		for _, p := range rec.Players {
			counts[p.PlayerID]++
		}
	}
	items := make([]PlayerItem, 0, len(counts))
	for id, n := range counts {
		items = append(items, PlayerItem{PlayerID: id, Hands: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Hands != items[j].Hands {
			return items[i].Hands > items[j].Hands
		}
		return items[i].PlayerID < items[j].PlayerID
	})
	return &PlayersResponse{
		HandsParsed: len(res.Hands),
		ParseErrors: res.ParseErrors,
		Items:       items,
	}, nil
}

// matchArchetypes ranks the catalogue against the profile. Matching
// needs the core preflop stats; below the sample gate there is nothing
// to match on.
func matchArchetypes(a *stats.Analysis) []archetype.MatchScore {
	p := a.Profile
	if p == nil || p.VPIP == nil || p.PFR == nil {
		return nil
	}
	obs := archetype.Observation{
		VPIP: *p.VPIP,
		PFR:  *p.PFR,
		// Neutral aggression when the postflop sample is too thin to
		// gate AF in; zero would read as extreme passivity.
		AF:         2.0,
		StyleLabel: string(a.Style),
	}
	if p.AF != nil {
		obs.AF = *p.AF
	}
	ranked := archetype.Rank(obs)
	if len(ranked) > matchesReturned {
		ranked = ranked[:matchesReturned]
	}
	return ranked
}
