package stats

import (
	"fmt"
	"sort"
	"strings"
)

// Exploit is one actionable weakness with the counter-strategy for it.
type Exploit struct {
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	CounterStrategy string  `json:"counter_strategy"`
	Confidence      float64 `json:"confidence"`
}

const maxExploitConfidence = 0.95

// Exploits runs the rule table over the profile and returns the hits,
// highest confidence first. Every rule requires its statistic to clear
// the opportunity minimum before it can fire, and at least three streets
// are always represented so the output reads as a game plan rather than
// a single note.
func Exploits(p *Profile) []Exploit {
	b := &exploitBuilder{seen: map[string]struct{}{}}

	preflopExploits(b, p)
	flopExploits(b, p)
	turnExploits(b, p)
	riverExploits(b, p)
	b.ensureStreetCoverage()

	sort.SliceStable(b.out, func(i, j int) bool {
		return b.out[i].Confidence > b.out[j].Confidence
	})
	return b.out
}

type exploitBuilder struct {
	out  []Exploit
	seen map[string]struct{}
}

func (b *exploitBuilder) add(category, description, counter string, confidence float64) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = "postflop"
	}
	description = strings.TrimSpace(description)
	counter = strings.TrimSpace(counter)
	if description == "" || counter == "" {
		return
	}
	key := category + "|" + strings.ToLower(description) + "|" + strings.ToLower(counter)
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	if confidence > maxExploitConfidence {
		confidence = maxExploitConfidence
	}
	if confidence < 0 {
		confidence = 0
	}
	b.out = append(b.out, Exploit{
		Category:        category,
		Description:     description,
		CounterStrategy: counter,
		Confidence:      confidence,
	})
}

func (b *exploitBuilder) hasCategory(cat string) bool {
	for _, e := range b.out {
		if e.Category == cat {
			return true
		}
	}
	return false
}

func preflopExploits(b *exploitBuilder, p *Profile) {
	if p.FoldTo3Bet != nil && *p.FoldTo3Bet > 0.70 && p.Counts.FoldTo3Bet.Opps >= MinFoldToThreeBetOpps {
		b.add("preflop",
			fmt.Sprintf("Folds to 3-bets %.0f%% of the time", *p.FoldTo3Bet*100),
			"3-bet bluff their opens at a higher frequency, especially in position.",
			0.82)
	}
	if p.LimpRate != nil && *p.LimpRate > 0.12 {
		b.add("preflop",
			fmt.Sprintf("Limps %.0f%% of hands", *p.LimpRate*100),
			"Isolate limps aggressively and punish weak capped ranges preflop.",
			0.74)
	}
	if p.VPIP != nil {
		if gap := p.Gap(); gap > 0.12 {
			b.add("preflop",
				fmt.Sprintf("Large VPIP-PFR gap (%.1f%%)", gap*100),
				"Expect wide calling ranges; value bet wider preflop and postflop.",
				0.78)
		}
	}
	if p.ThreeBet != nil && *p.ThreeBet > 0.11 && p.Counts.ThreeBet.Opps >= 20 {
		b.add("preflop",
			fmt.Sprintf("3-bets aggressively (%.0f%%)", *p.ThreeBet*100),
			"Tighten marginal opens OOP and favor value-heavy 4-bets over loose flats.",
			0.72)
	}
	if p.VPIP != nil && *p.VPIP < 0.17 && p.HandsPlayed >= 40 {
		b.add("preflop",
			fmt.Sprintf("Very tight VPIP (%.0f%%)", *p.VPIP*100),
			"Steal blinds more often and pressure capped defend ranges with position.",
			0.70)
	}
	if !b.hasCategory("preflop") {
		if p.VPIP != nil && p.Gap() > 0.08 {
			b.add("preflop",
				"Calls preflop wider than they raise",
				"Use thinner value opens/isolations and reduce pure preflop bluffs.",
				0.62)
		} else {
			b.add("preflop",
				"Preflop mix appears relatively balanced",
				"Default to position-first preflop decisions and adjust once more hands are collected.",
				0.55)
		}
	}
}

func flopExploits(b *exploitBuilder, p *Profile) {
	if p.CBetFlop != nil && p.Counts.CBetFlop.Opps >= 20 {
		if *p.CBetFlop > 0.70 {
			b.add("flop",
				fmt.Sprintf("C-bets %.0f%% of flops", *p.CBetFlop*100),
				"Float more flops in position and add selective bluff raises on dry textures.",
				0.74)
		}
		if *p.CBetFlop < 0.45 {
			b.add("flop",
				fmt.Sprintf("Checks frequently as preflop aggressor (c-bet %.0f%%)", *p.CBetFlop*100),
				"Stab more often when checked to on flop, especially with backdoor equity.",
				0.72)
		}
	}
	if p.FoldToFlopBet != nil && p.Counts.FacedFlop.Opps >= 20 {
		if *p.FoldToFlopBet > 0.55 {
			b.add("flop",
				fmt.Sprintf("Folds to flop bets %.0f%%", *p.FoldToFlopBet*100),
				"Run more flop probes and c-bet bluffs, then shut down when called on bad runouts.",
				0.81)
		}
		if *p.FoldToFlopBet < 0.35 {
			b.add("flop",
				fmt.Sprintf("Continues vs flop bets at a high rate (%.0f%%)", (1-*p.FoldToFlopBet)*100),
				"Bluff less on flop and size up value hands that can bet multiple streets.",
				0.77)
		}
	}
	if p.CheckRaiseRate != nil && *p.CheckRaiseRate > 0.15 && p.Counts.CheckRaise.Opps >= 15 {
		b.add("flop",
			fmt.Sprintf("Check-raises frequently (%.0f%%)", *p.CheckRaiseRate*100),
			"Do not call flop raises too light; continue mainly with strong made hands or robust draws.",
			0.73)
	}
	if !b.hasCategory("flop") {
		if p.FoldToFlopBet != nil && *p.FoldToFlopBet >= 0.5 {
			b.add("flop",
				"Flop decisions trend toward overfolding under pressure",
				"Use small frequent flop stabs in position and track whether turn resistance increases.",
				0.60)
		} else {
			b.add("flop",
				"Flop continue rates are relatively sticky",
				"Prioritize value-heavy flop betting and avoid low-equity one-and-done bluffs.",
				0.58)
		}
	}
}

func turnExploits(b *exploitBuilder, p *Profile) {
	if p.DoubleBarrel != nil && p.Counts.DoubleBarrel.Opps >= 20 {
		if *p.DoubleBarrel < 0.40 {
			b.add("turn",
				fmt.Sprintf("Double barrels only %.0f%%", *p.DoubleBarrel*100),
				"Call flop wider when ranges permit, then attack turn checks aggressively.",
				0.78)
		}
		if *p.DoubleBarrel > 0.62 {
			b.add("turn",
				fmt.Sprintf("Fires second barrel often (%.0f%%)", *p.DoubleBarrel*100),
				"Defend turn mainly with stronger equity and avoid marginal flop floats without turn plans.",
				0.73)
		}
	}
	if p.FoldToTurnBet != nil && p.Counts.FacedTurn.Opps >= 15 {
		if *p.FoldToTurnBet > 0.55 {
			b.add("turn",
				fmt.Sprintf("Overfolds turn after facing bets (%.0f%%)", *p.FoldToTurnBet*100),
				"Increase turn probes and delayed barrels when blockers favor your range.",
				0.74)
		}
		if *p.FoldToTurnBet < 0.35 {
			b.add("turn",
				fmt.Sprintf("Calls turn frequently (%.0f%%)", (1-*p.FoldToTurnBet)*100),
				"Slow down low-equity turn bluffs and lean toward high-equity semibluffs or value.",
				0.70)
		}
	}
	if !b.hasCategory("turn") {
		if p.Counts.DoubleBarrel.Opps >= 12 {
			b.add("turn",
				"Turn follow-through is a key inflection point for this profile",
				"Track flop-to-turn continuation in-session and adapt by either probing checks or respecting strong second barrels.",
				0.57)
		} else {
			b.add("turn",
				"Limited turn sample so far",
				"Use population-default turn strategy, then tighten adjustments once turn sample grows.",
				0.52)
		}
	}
}

func riverExploits(b *exploitBuilder, p *Profile) {
	if p.RiverValueRate != nil && p.Counts.RiverValue.Opps >= MinRiverBetShowdowns {
		if *p.RiverValueRate > 0.70 {
			b.add("river",
				fmt.Sprintf("River bets are heavily value-weighted (%.0f%%)", *p.RiverValueRate*100),
				"Overfold bluff-catchers to river aggression unless your blockers are exceptional.",
				0.86)
		}
		if bluff := 1 - *p.RiverValueRate; bluff > 0.35 {
			b.add("river",
				fmt.Sprintf("River bluff rate is elevated (%.0f%%)", bluff*100),
				"Widen river bluff-catch range versus missed draws and unblocked bluff combos.",
				0.77)
		}
	}
	if p.WTSD != nil && p.WSD != nil {
		if *p.WTSD > 0.33 && *p.WSD < 0.45 {
			b.add("river",
				"Goes to showdown often but wins too infrequently",
				"Value bet thinner on river and avoid unnecessary river bluffs versus this calling profile.",
				0.80)
		}
		if *p.WTSD < 0.22 && *p.WSD > 0.54 {
			b.add("river",
				"Arrives at showdown with a stronger-than-average range",
				"Use fewer thin bluff-catches and give more credit to large river bets.",
				0.72)
		}
	}
	if !b.hasCategory("river") {
		b.add("river",
			"River decision quality is a major edge spot versus this profile",
			"Base river calls/folds on line consistency and blocker effects, not only hand strength.",
			0.56)
	}
}

var streetFallbacks = map[string][2]string{
	"preflop": {
		"Preflop adjustments should be driven by position and opening frequencies",
		"Track who enters too many pots and widen value-isolation first.",
	},
	"flop": {
		"Flop strategy should adapt to this player's continue-versus-fold pattern",
		"Favor either high-frequency small stabs or value-heavy betting based on immediate folds.",
	},
	"turn": {
		"Turn actions reveal whether this player gives up or keeps applying pressure",
		"Plan flop calls with a clear turn response before putting chips in on flop.",
	},
	"river": {
		"River lines are often the highest-EV exploit spot",
		"Adjust bluff-catching and value-thin decisions to this player's showdown tendencies.",
	},
}

func (b *exploitBuilder) ensureStreetCoverage() {
	order := []string{"preflop", "flop", "turn", "river"}
	covered := map[string]bool{}
	for _, e := range b.out {
		covered[e.Category] = true
	}
	n := 0
	for _, s := range order {
		if covered[s] {
			n++
		}
	}
	for _, s := range order {
		if n >= 3 {
			return
		}
		if covered[s] {
			continue
		}
		fb := streetFallbacks[s]
		b.add(s, fb[0], fb[1], 0.50)
		covered[s] = true
		n++
	}
}
