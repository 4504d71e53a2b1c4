package stats

import "github.com/gabe-silva/poker-analyzer/internal/hand"

// Analysis is the full behavioral read on one player.
type Analysis struct {
	Profile    *Profile          `json:"profile"`
	Style      Style             `json:"style"`
	Tendencies []string          `json:"tendencies"`
	Rules      []ConditionalRule `json:"rules"`
	Exploits   []Exploit         `json:"exploits"`
}

// Analyze builds the profile from the batch and derives the style,
// tendencies, conditional rules, and exploit plan from it.
func Analyze(playerID string, hands []*hand.Record) *Analysis {
	p := BuildProfile(playerID, hands)
	return &Analysis{
		Profile:    p,
		Style:      ClassifyStyle(p),
		Tendencies: Tendencies(p),
		Rules:      Rules(p),
		Exploits:   Exploits(p),
	}
}
