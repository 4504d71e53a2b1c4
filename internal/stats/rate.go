// Package stats accumulates opportunity/hit counters per player across
// hands and derives gated rate statistics, a style classification, and
// exploit recommendations.
package stats

// Counter is one opportunity/hit pair. The denominator only moves when
// the player actually had the chance the statistic measures.
type Counter struct {
	Hits int `json:"hits"`
	Opps int `json:"opportunities"`
}

func (c *Counter) Opportunity() { c.Opps++ }

func (c *Counter) Hit() { c.Hits++ }

// Raw rate with no gate applied. Internal callers only; anything emitted
// outward goes through Gated so small samples stay undefined.
func (c Counter) Raw() float64 {
	if c.Opps == 0 {
		return 0
	}
	return float64(c.Hits) / float64(c.Opps)
}

// Gated returns the rate once the opportunity count reaches min, else
// nil. An undefined statistic is never coerced to zero.
func (c Counter) Gated(min int) *float64 {
	if c.Opps < min {
		return nil
	}
	v := c.Raw()
	return &v
}

// Documented opportunity minimums. A statistic below its minimum is
// reported as undefined, and exploit rules keyed on it do not fire.
const (
	MinHandsForPreflopRates = 20
	MinThreeBetOpps         = 10
	MinFoldToThreeBetOpps   = 15
	MinCBetOpps             = 12
	MinFacedBetOpps         = 15
	MinCheckRaiseOpps       = 12
	MinBarrelOpps           = 12
	MinOverbetBets          = 10
	MinPostflopActionsForAF = 20
	MinHandsForWTSD         = 20
	MinShowdownsForWSD      = 8
	MinRiverBetShowdowns    = 8
)

// Confidence tiers by sample size.
const (
	ConfidenceLow      = "Low"
	ConfidenceMedium   = "Medium"
	ConfidenceHigh     = "High"
	ConfidenceVeryHigh = "Very High"
)

func ConfidenceTier(hands int) string {
	switch {
	case hands < 100:
		return ConfidenceLow
	case hands < 300:
		return ConfidenceMedium
	case hands < 1000:
		return ConfidenceHigh
	}
	return ConfidenceVeryHigh
}
