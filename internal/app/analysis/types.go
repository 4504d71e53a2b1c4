package analysis

import (
	"github.com/gabe-silva/poker-analyzer/internal/archetype"
	"github.com/gabe-silva/poker-analyzer/internal/stats"
)

type AnalyzeResponse struct {
	PlayerID    string   `json:"player_id"`
	HandsParsed int      `json:"hands_parsed"`
	HandsPlayed int      `json:"hands_played"`
	ParseErrors int      `json:"parse_errors"`
	Warnings    []string `json:"warnings,omitempty"`

	Analysis *stats.Analysis        `json:"analysis"`
	Matches  []archetype.MatchScore `json:"archetype_matches,omitempty"`
}

type PlayersResponse struct {
	HandsParsed int          `json:"hands_parsed"`
	ParseErrors int          `json:"parse_errors"`
	Items       []PlayerItem `json:"items"`
}

type PlayerItem struct {
	PlayerID string `json:"player_id"`
	Hands    int    `json:"hands"`
}
