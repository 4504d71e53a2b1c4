package ev

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gabe-silva/poker-analyzer/internal/archetype"
	"github.com/gabe-silva/poker-analyzer/internal/poker"
	"github.com/gabe-silva/poker-analyzer/internal/scenario"
)

// LeakFactor is one attributed share of a decision's EV loss.
type LeakFactor struct {
	Factor   string  `json:"factor"`
	ImpactBB float64 `json:"impact_bb"`
	SharePct float64 `json:"share_pct"`
	Detail   string  `json:"detail"`
}

// SpotMath collects the pot-odds and sizing baselines for one spot.
type SpotMath struct {
	PotBB                  float64  `json:"pot_bb"`
	ToCallBB               float64  `json:"to_call_bb"`
	SPR                    float64  `json:"spr"`
	SPRLabel               string   `json:"spr_label"`
	SPRNotes               []string `json:"spr_notes"`
	RequiredEquity         float64  `json:"required_equity"`
	MDF                    float64  `json:"mdf"`
	BetToPot               float64  `json:"bet_to_pot"`
	BreakEvenBluffFoldFreq float64  `json:"be_bluff_fold_freq"`
	TargetBluffShare       float64  `json:"target_bluff_share"`
	TargetBluffToValue     float64  `json:"target_bluff_to_value_ratio"`
	ChosenAction           string   `json:"chosen_action"`
	ChosenSizeBB           float64  `json:"chosen_size_bb"`
}

// BlockerSignals is a lightweight card-removal read for coaching text.
type BlockerSignals struct {
	FlushNutBlocker     bool   `json:"flush_nut_blocker"`
	BroadwayBlockers    int    `json:"broadway_blockers"`
	PairedBoardBlockers int    `json:"paired_board_blockers"`
	SignalText          string `json:"signal_text"`
}

// OpponentSnapshot summarizes the villain pool in one spot.
type OpponentSnapshot struct {
	ArchetypeMix          string  `json:"archetype_mix"`
	AverageStreetFoldRate float64 `json:"average_street_fold_rate"`
	PlayersInHand         int     `json:"players_in_hand"`
	TextureLabel          string  `json:"texture_label"`
}

// HeroAnalysis packages profile-aware coaching for one spot.
type HeroAnalysis struct {
	HeroProfile      scenario.HeroProfile      `json:"hero_profile"`
	PositionGuidance scenario.PositionGuidance `json:"position_guidance"`
	Recommendations  []string                  `json:"recommendations"`
	OpponentSnapshot OpponentSnapshot          `json:"opponent_snapshot"`
	SpotMath         SpotMath                  `json:"spot_math"`
}

// LeakReport decomposes one decision's EV loss into named factors.
type LeakReport struct {
	Summary             string       `json:"summary"`
	OptimalGapBB        float64      `json:"optimal_gap_bb"`
	FactorBreakdown     []LeakFactor `json:"factor_breakdown"`
	HeroProfileAnalysis HeroAnalysis `json:"hero_profile_analysis"`
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func textureLabel(texture float64) string {
	switch {
	case texture < 0.7:
		return "dry"
	case texture < 1.6:
		return "semi-wet"
	}
	return "wet"
}

func streetFoldRateByKey(archetypeKey string, street poker.Street) float64 {
	arch, ok := archetype.ByKey(archetypeKey)
	if !ok {
		return 0.45
	}
	return streetFoldRate(arch, street)
}

// summarizeArchetypeMix names the up-to-two most common villain
// archetypes, ties broken by catalogue order.
func summarizeArchetypeMix(villains []scenario.SeatState) string {
	if len(villains) == 0 {
		return "no active villains"
	}
	counts := map[string]int{}
	for _, v := range villains {
		counts[v.ArchetypeKey]++
	}
	keys := make([]string, 0, len(counts))
	for _, arch := range archetype.Catalogue {
		if counts[arch.Key] > 0 {
			keys = append(keys, arch.Key)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool { return counts[keys[i]] > counts[keys[j]] })
	if len(keys) > 2 {
		keys = keys[:2]
	}
	chunks := make([]string, 0, len(keys))
	for _, key := range keys {
		arch, _ := archetype.ByKey(key)
		chunks = append(chunks, fmt.Sprintf("%s x%d", arch.Label, counts[key]))
	}
	return strings.Join(chunks, ", ")
}

// bluffRiskReward approximates (risk, reward) for break-even bluff math.
func bluffRiskReward(scn *scenario.Scenario, row ActionRow) (float64, float64) {
	pot := scn.PotBB
	toCall := scn.ToCallBB
	size := 0.0
	if row.SizeBB != nil {
		size = *row.SizeBB
	}
	switch row.Action {
	case "bet":
		return size, max0(pot)
	case "raise":
		return maxf(0.1, size-toCall), max0(pot + toCall)
	}
	return 0, max0(pot)
}

func handBlockerSignals(heroHand, board []string) BlockerSignals {
	if len(heroHand) == 0 {
		return BlockerSignals{SignalText: "No blocker read available."}
	}
	hero, err := poker.ParseCards(heroHand)
	if err != nil {
		return BlockerSignals{SignalText: "No blocker read available."}
	}
	boardCards, err := poker.ParseCards(board)
	if err != nil {
		return BlockerSignals{SignalText: "No blocker read available."}
	}

	suitCounts := map[poker.Suit]int{}
	rankCounts := map[poker.Rank]int{}
	for _, c := range boardCards {
		suitCounts[c.Suit]++
		rankCounts[c.Rank]++
	}
	var flushSuit poker.Suit
	hasFlushSuit := false
	for suit, n := range suitCounts {
		if n >= 3 {
			flushSuit = suit
			hasFlushSuit = true
			break
		}
	}

	sig := BlockerSignals{}
	if hasFlushSuit {
		for _, c := range hero {
			if c.Suit == flushSuit && int(c.Rank) >= 13 {
				sig.FlushNutBlocker = true
			}
		}
	}
	for _, c := range hero {
		if int(c.Rank) >= 10 {
			sig.BroadwayBlockers++
		}
		if rankCounts[c.Rank] >= 2 {
			sig.PairedBoardBlockers++
		}
	}

	var notes []string
	if sig.FlushNutBlocker {
		notes = append(notes, "holds high flush blocker")
	}
	switch {
	case sig.BroadwayBlockers >= 2:
		notes = append(notes, "double broadway blockers")
	case sig.BroadwayBlockers == 1:
		notes = append(notes, "single broadway blocker")
	}
	if sig.PairedBoardBlockers > 0 {
		notes = append(notes, "blocks full-house combos on paired board")
	}
	if len(notes) == 0 {
		sig.SignalText = "blocker profile is neutral"
	} else {
		sig.SignalText = strings.Join(notes, ", ")
	}
	return sig
}

func spotMathSnapshot(scn *scenario.Scenario, chosen ActionRow) SpotMath {
	pot := scn.PotBB
	toCall := scn.ToCallBB
	spr := StackToPotRatio(scn.EffectiveStackBB, maxf(1.0, pot))
	band := ClassifySPR(spr)

	requiredEq := RequiredEquityToCall(pot, toCall)
	mdf := 1.0
	if toCall > 0 {
		mdf = MinimumDefenseFrequency(max0(pot-toCall), toCall)
	}

	size := 0.0
	if chosen.SizeBB != nil {
		size = *chosen.SizeBB
	}
	betToPot := 0.0
	beFold := 0.0
	if size > 0 {
		betToPot = size / maxf(1.0, pot)
		risk, reward := bluffRiskReward(scn, chosen)
		beFold = BreakEvenBluffFoldFrequency(risk, reward)
	}

	return SpotMath{
		PotBB:                  pot,
		ToCallBB:               toCall,
		SPR:                    spr,
		SPRLabel:               band.Label,
		SPRNotes:               band.Notes,
		RequiredEquity:         requiredEq,
		MDF:                    mdf,
		BetToPot:               betToPot,
		BreakEvenBluffFoldFreq: beFold,
		TargetBluffShare:       PolarizedBluffShare(betToPot),
		TargetBluffToValue:     BluffToValueRatio(betToPot),
		ChosenAction:           chosen.Action,
		ChosenSizeBB:           size,
	}
}

func mistakeTags(chosen, best ActionRow, evLoss float64) []string {
	tags := []string{}
	if evLoss < 0.3 {
		return tags
	}
	if chosen.Action == "fold" && best.Action != "fold" {
		tags = append(tags, "Overfold")
	}
	if chosen.Intent == IntentBluff && evLoss > 0.8 {
		tags = append(tags, "Overbluff")
	}
	if chosen.Intent == IntentValue && chosen.EVBB < 0 {
		tags = append(tags, "TooThinValue")
	}
	if (chosen.Action == "call" || chosen.Action == "check") && (best.Action == "raise" || best.Action == "bet") {
		tags = append(tags, "MissedValue")
	}
	if (chosen.Action == "raise" || chosen.Action == "bet") && chosen.Intent == IntentValue && best.Intent == IntentBluff {
		tags = append(tags, "Underbluff")
	}
	return tags
}

func activeVillainSeats(scn *scenario.Scenario) []scenario.SeatState {
	var out []scenario.SeatState
	for _, s := range scn.Seats {
		if s.InHand && !s.IsHero {
			out = append(out, s)
		}
	}
	return out
}

func decisionFromRow(row ActionRow) Decision {
	return Decision{Action: row.Action, SizeBB: row.SizeBB, Intent: row.Intent}
}

// counterfactualRowEV re-evaluates the same decision with part of the
// scenario swapped out. It reuses the fixed seed stream so the gap
// reflects the swap, not fresh simulation noise.
func counterfactualRowEV(scn scenario.Scenario, d Decision, trials int) (float64, bool) {
	calc, err := NewCalculator(&scn, trials)
	if err != nil {
		return 0, false
	}
	table, err := calc.ActionTable()
	if err != nil {
		return 0, false
	}
	row, ok := findRow(table, d)
	if !ok {
		return 0, false
	}
	return row.EVBB, true
}

func factorBreakdown(calc *Calculator, scn *scenario.Scenario, chosen, best ActionRow, table []ActionRow, evLoss float64) []LeakFactor {
	if evLoss <= 0.01 {
		return nil
	}

	chosenEV := chosen.EVBB
	aggressive := chosen.Action == "bet" || chosen.Action == "raise"
	spotMath := spotMathSnapshot(scn, chosen)
	villains := activeVillainSeats(scn)
	blockers := handBlockerSignals(scn.HeroHand, scn.Board)

	type rawFactor struct {
		name   string
		impact float64
		detail string
	}
	var raw []rawFactor
	add := func(name string, impact float64, detail string) {
		raw = append(raw, rawFactor{name: name, impact: impact, detail: detail})
	}

	bestInClass := ActionRow{EVBB: chosenEV}
	found := false
	for _, r := range table {
		if r.Action == chosen.Action && (!found || r.EVBB > bestInClass.EVBB) {
			bestInClass = r
			found = true
		}
	}
	if found {
		gap := max0(best.EVBB - bestInClass.EVBB)
		if gap > 0.02 {
			add("Action Choice", gap, fmt.Sprintf(
				"Best action class is %s (%.3fbb) while chosen class was %s (best in-class %.3fbb). Primary leak is line selection, not just sizing.",
				best.Action, best.EVBB, chosen.Action, bestInClass.EVBB))
		}
	}

	if chosen.Action == "call" && spotMath.ToCallBB > 0 {
		eqGap := max0(spotMath.RequiredEquity - chosen.Equity)
		if eqGap > 0.015 {
			add("Pot Odds Discipline", eqGap*(spotMath.PotBB+spotMath.ToCallBB)*0.8, fmt.Sprintf(
				"Call required about %.1f%% equity but line had %.1f%%. Calling below threshold leaks immediately unless implied odds are strong.",
				spotMath.RequiredEquity*100, chosen.Equity*100))
		}
	}

	if chosen.Action == "fold" && spotMath.ToCallBB > 0 && (best.Action == "call" || best.Action == "raise") {
		overfoldGap := max0(best.Equity - spotMath.RequiredEquity)
		if overfoldGap > 0.015 {
			add("Overfold vs Price", overfoldGap*(spotMath.PotBB+spotMath.ToCallBB)*0.7, fmt.Sprintf(
				"Pot odds asked for %.1f%% equity, while stronger continuing lines held about %.1f%%. Folding surrendered too much defendable equity.",
				spotMath.RequiredEquity*100, best.Equity*100))
		}
	}

	if aggressive {
		bestSameIntent := ActionRow{EVBB: chosenEV}
		foundIntent := false
		for _, r := range table {
			if r.Action == chosen.Action && r.Intent == chosen.Intent && (!foundIntent || r.EVBB > bestSameIntent.EVBB) {
				bestSameIntent = r
				foundIntent = true
			}
		}
		if foundIntent {
			sizingGap := max0(bestSameIntent.EVBB - chosenEV)
			if sizingGap > 0.02 {
				size := 0.0
				if bestSameIntent.SizeBB != nil {
					size = *bestSameIntent.SizeBB
				}
				add("Sizing", sizingGap, fmt.Sprintf(
					"Within %s/%s lines, better sizing existed (%.1fbb).", chosen.Action, chosen.Intent, size))
			}
		}

		if chosen.SizeBB != nil {
			altIntent := IntentValue
			if chosen.Intent == IntentValue {
				altIntent = IntentBluff
			}
			for _, r := range table {
				if r.Action != chosen.Action || r.Intent != altIntent || r.SizeBB == nil {
					continue
				}
				if round1(*r.SizeBB) != round1(*chosen.SizeBB) {
					continue
				}
				intentGap := max0(r.EVBB - chosenEV)
				if intentGap > 0.02 {
					add("Value/Bluff Mix", intentGap, fmt.Sprintf(
						"For the same size, tagging this line as %s performed better against these ranges.", altIntent))
				}
				break
			}
		}

		if chosen.Intent == IntentBluff {
			bluffMathGap := max0(spotMath.BreakEvenBluffFoldFreq - chosen.FoldEquity)
			if bluffMathGap > 0.03 {
				add("Bluff Economics", bluffMathGap*maxf(0.5, chosen.RiskBB), fmt.Sprintf(
					"Bluff needed %.1f%% folds at this risk/reward, model estimated %.1f%%.",
					spotMath.BreakEvenBluffFoldFreq*100, chosen.FoldEquity*100))
			}

			if !blockers.FlushNutBlocker && blockers.BroadwayBlockers == 0 {
				blockerGap := evLoss * 0.35
				if blockerGap > 0.22 {
					blockerGap = 0.22
				}
				if blockerGap > 0.02 {
					add("Blocker Quality", blockerGap,
						"Bluff line lacked high-card/nut blockers, so villain continues retained too many strong calls.")
				}
			}
		}
	}

	cfTrials := calc.trials / 2
	if cfTrials < 120 {
		cfTrials = 120
	}
	if cfTrials > 220 {
		cfTrials = 220
	}
	decision := decisionFromRow(chosen)

	neutralScn := *scn
	neutralScn.HeroProfile = scenario.HeroProfile{VPIP: 0.24, PFR: 0.19, AF: 2.3, ThreeBet: 0.08, FoldTo3Bet: 0.56}
	if neutralEV, ok := counterfactualRowEV(neutralScn, decision, cfTrials); ok {
		imageGap := max0(neutralEV - chosenEV)
		if imageGap > 0.02 {
			hero := scn.HeroProfile
			add("Hero Table Image (VPIP/PFR/AF)", imageGap, fmt.Sprintf(
				"Your current profile shifts villain continues versus this line (style=%s, image_bluffiness=%.2f); pool adjusted by calling lighter versus perceived aggression.",
				hero.StyleLabel(), hero.ImageBluffiness()))
		}
	}

	if scn.HeroPosition != "BTN" {
		btnScn := *scn
		btnScn.HeroPosition = "BTN"
		if btnEV, ok := counterfactualRowEV(btnScn, decision, cfTrials); ok {
			posGap := max0(btnEV-chosenEV) * 0.7
			if posGap > 0.02 {
				add("Position Leverage", posGap, fmt.Sprintf(
					"Same line as BTN estimated %.3fbb versus %.3fbb here; OOP realization and check-back denial reduced EV.",
					btnEV, chosenEV))
			}
		}
	}

	if scn.PlayersInHand > 2 && aggressive && chosen.Intent == IntentBluff {
		size := 0.0
		if chosen.SizeBB != nil {
			size = *chosen.SizeBB
		}
		sizeRatio := size / maxf(1.0, scn.PotBB)
		multiwayGap := float64(scn.PlayersInHand-2) * (0.12 + 0.18*sizeRatio)
		if multiwayGap > evLoss*0.8 {
			multiwayGap = evLoss * 0.8
		}
		if multiwayGap > 0.02 {
			add("Multiway Bluff Penalty", multiwayGap, fmt.Sprintf(
				"%d-way node reduced fold-chain reliability; multiway bluffs require stronger blocker/equity backup than heads-up nodes.",
				scn.PlayersInHand))
		}
	}

	if len(villains) > 0 {
		total := 0.0
		for _, v := range villains {
			total += streetFoldRateByKey(v.ArchetypeKey, scn.Street)
		}
		avgFold := total / float64(len(villains))
		mix := summarizeArchetypeMix(villains)

		exploitGap := 0.0
		detail := ""
		switch chosen.Intent {
		case IntentBluff:
			exploitGap = max0(0.44-avgFold) * 2.1
			detail = fmt.Sprintf("Pool (%s) folds too little on %s (avg %.2f) for this bluff frequency/size.", mix, scn.Street, avgFold)
		case IntentValue:
			exploitGap = max0(avgFold-0.60) * 1.2
			detail = fmt.Sprintf("Pool (%s) folds often (avg %.2f); value line likely needed smaller sizing or stronger value density.", mix, avgFold)
		}
		if exploitGap > 0.02 {
			add("Opponent Archetype Mismatch", exploitGap, detail)
		}
	}

	boardCards, _ := poker.ParseCards(scn.Board)
	texture := poker.BoardTexture(boardCards)
	if chosen.Intent == IntentBluff && texture >= 1.4 {
		textureGap := evLoss * 0.4
		if textureGap > 0.18*texture {
			textureGap = 0.18 * texture
		}
		if textureGap > 0.02 {
			add("Board Texture", textureGap, fmt.Sprintf(
				"%s texture (%.2f) lowers fold equity and increases natural continues from pair+draw holdings.",
				titleCase(textureLabel(texture)), texture))
		}
	}

	if spotMath.SPR >= 8.0 && aggressive && chosen.Intent == IntentBluff {
		sprGap := evLoss * 0.35
		if sprGap > 0.24 {
			sprGap = 0.24
		}
		if sprGap > 0.02 {
			add("SPR Planning", sprGap, fmt.Sprintf(
				"High SPR (%.1f) rewards nutted potential and selective aggression; line over-committed medium equity.",
				spotMath.SPR))
		}
	}

	if len(raw) == 0 {
		return nil
	}
	totalRaw := 0.0
	for _, f := range raw {
		totalRaw += f.impact
	}
	if totalRaw <= 0 {
		return nil
	}

	// Raw impacts are scaled so attributed shares sum to the EV loss;
	// anything left after rounding lands in the residual line.
	scale := evLoss / totalRaw
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].impact > raw[j].impact })
	factors := make([]LeakFactor, 0, len(raw)+1)
	remaining := evLoss
	for _, f := range raw {
		impact := round3(f.impact * scale)
		if capped := round3(max0(remaining)); impact > capped {
			impact = capped
		}
		remaining = round3(max0(remaining - impact))
		factors = append(factors, LeakFactor{
			Factor:   f.name,
			ImpactBB: impact,
			SharePct: round1(impact / evLoss * 100.0),
			Detail:   f.detail,
		})
	}
	if remaining > 0.04 {
		factors = append(factors, LeakFactor{
			Factor:   "Residual/Model Uncertainty",
			ImpactBB: round3(remaining),
			SharePct: round1(remaining / evLoss * 100.0),
			Detail:   "Remaining gap from interactions between factors and simulation variance.",
		})
	}
	return factors
}

// HeroProfileAnalysis builds the profile-aware coaching block for a
// spot, optionally anchored on the chosen and best rows.
func HeroProfileAnalysis(scn *scenario.Scenario, chosen, best *ActionRow) HeroAnalysis {
	hero := scn.HeroProfile
	guidance := hero.GuidanceFor(scn.HeroPosition, scn.Street)
	villains := activeVillainSeats(scn)
	boardCards, _ := poker.ParseCards(scn.Board)
	texture := poker.BoardTexture(boardCards)
	textureText := textureLabel(texture)
	mix := summarizeArchetypeMix(villains)

	chosenRow := ActionRow{Action: "check"}
	if chosen != nil {
		chosenRow = *chosen
	}
	spotMath := spotMathSnapshot(scn, chosenRow)
	blockers := handBlockerSignals(scn.HeroHand, scn.Board)

	var recs []string
	low, high := guidance.TargetOpenVPIPRange[0], guidance.TargetOpenVPIPRange[1]
	if hero.VPIP < low-0.02 {
		recs = append(recs, "VPIP is below positional target; widen in-position opens to avoid passing profitable steals.")
	}
	if hero.VPIP > high+0.06 {
		recs = append(recs, "VPIP is above positional target; prune weakest offsuit opens to reduce dominated postflop nodes.")
	}
	if hero.Gap() > 0.10 {
		recs = append(recs, "VPIP-PFR gap is large: replace marginal flats with more 3-bets/folds to avoid capped ranges.")
	}
	if hero.AF > 3.9 {
		recs = append(recs, "AF is very high: cap low-blocker river bluffs and retain more bluff-catchers in your checking range.")
	}
	if hero.FoldTo3Bet > 0.65 {
		recs = append(recs, "Fold-to-3bet is high: defend selected suited broadways and pocket pairs to reduce exploitability.")
	}

	if spotMath.ToCallBB > 0 {
		recs = append(recs, fmt.Sprintf(
			"Facing %.1fbb, call threshold is %.1f%% equity; baseline MDF is %.1f%% before exploit adjustments.",
			spotMath.ToCallBB, spotMath.RequiredEquity*100, spotMath.MDF*100))
	}

	sprNote := ""
	if len(spotMath.SPRNotes) > 0 {
		sprNote = spotMath.SPRNotes[0]
	}
	recs = append(recs, fmt.Sprintf("SPR is %.1f (%s): %s", spotMath.SPR, spotMath.SPRLabel, sprNote))

	switch scn.NodeType {
	case scenario.NodeSingleRaised:
		recs = append(recs, "SRP node: leverage range advantage on favorable boards with disciplined small-to-medium sizings.")
	case scenario.NodeThreeBet:
		recs = append(recs, "3-bet pot: tighten bluff density and prioritize blocker quality plus nut-advantage board classes.")
	default:
		recs = append(recs, "4-bet pot: very range-dense node, so shift toward high-card/blocker-driven decisions and lower pure-bluff frequency.")
	}

	switch scn.ActionContext {
	case scenario.ContextCheckedToHero:
		recs = append(recs, "Checked-to-hero node: run high-frequency stabs on dry boards, but retain check-back protection on medium-strength holdings.")
	case scenario.ContextFacingBet:
		recs = append(recs, "Facing-bet node: anchor decisions around pot-odds threshold, then adjust exploitively by villain fold/call profile.")
	default:
		recs = append(recs, "Facing bet+call node: weight value-heavy raises and reduce thin bluffs because at least one range has already continued.")
	}

	switch {
	case scn.PlayersInHand > 2:
		recs = append(recs, fmt.Sprintf(
			"Multiway (%d players) and %s board reduce bluff efficiency; keep bluffs blocker-driven and size-disciplined.",
			scn.PlayersInHand, textureText))
	case textureText == "dry":
		recs = append(recs, "Heads-up on dry texture supports higher small-size stab frequency, especially in position.")
	default:
		recs = append(recs, fmt.Sprintf("%s texture rewards equity-driven barreling over pure range-denial bluffs.", titleCase(textureText)))
	}

	avgFold := 0.45
	if len(villains) > 0 {
		total := 0.0
		for _, v := range villains {
			total += streetFoldRateByKey(v.ArchetypeKey, scn.Street)
		}
		avgFold = total / float64(len(villains))
	}
	hasKey := func(keys ...string) bool {
		for _, v := range villains {
			for _, k := range keys {
				if v.ArchetypeKey == k {
					return true
				}
			}
		}
		return false
	}
	if hasKey("calling_station", "overcaller_preflop") {
		recs = append(recs, "Pool includes calling-station tendencies: trim air bluffs and shift value sizing upward (about 60-100% pot) with top-pair+ hands.")
	}
	if hasKey("nit", "weak_tight", "fit_or_fold", "overfolder_3bet") {
		recs = append(recs, "Pool includes overfolders: increase frequent small stabs on dry boards and pressure capped ranges on scare-card turns.")
	}
	if hasKey("lag_reg", "maniac") {
		recs = append(recs, "Aggressive villains present: defend more bluff-catchers and avoid low-equity bluff-raises without strong blockers.")
	}
	if hasKey("trappy") {
		recs = append(recs, "Trappy profiles in pool: reduce auto-barrels on paired boards and protect your checking range with medium-strength value.")
	}

	recs = append(recs, fmt.Sprintf("Current villain mix (%s) has estimated %s fold rate of %.1f%%.", mix, scn.Street, avgFold*100))

	if chosen != nil && (chosen.Action == "bet" || chosen.Action == "raise") {
		recs = append(recs, fmt.Sprintf(
			"At %.2fx pot sizing, zero-equity bluff needs %.1f%% folds; polarized bluff share target is %.1f%% (ratio %.2f:1).",
			spotMath.BetToPot, spotMath.BreakEvenBluffFoldFreq*100, spotMath.TargetBluffShare*100, spotMath.TargetBluffToValue))
	}

	if blockers.SignalText != "blocker profile is neutral" {
		recs = append(recs, fmt.Sprintf("Blocker read: %s.", blockers.SignalText))
	} else {
		recs = append(recs, "Blocker read is neutral; prioritize line selection by range/nut advantage rather than pure blocker logic.")
	}

	if best != nil && chosen != nil {
		recs = append(recs, fmt.Sprintf(
			"Model best line is %s vs chosen %s; align future selections with that sizing/intent profile in similar nodes.",
			best.Label, chosen.Label))
	}

	if len(recs) > 12 {
		recs = recs[:12]
	}
	return HeroAnalysis{
		HeroProfile:      hero,
		PositionGuidance: guidance,
		Recommendations:  recs,
		OpponentSnapshot: OpponentSnapshot{
			ArchetypeMix:          mix,
			AverageStreetFoldRate: round4(avgFold),
			PlayersInHand:         scn.PlayersInHand,
			TextureLabel:          textureText,
		},
		SpotMath: SpotMath{
			PotBB:          spotMath.PotBB,
			ToCallBB:       spotMath.ToCallBB,
			RequiredEquity: round4(spotMath.RequiredEquity),
			MDF:            round4(spotMath.MDF),
			SPR:            round3(spotMath.SPR),
			SPRLabel:       spotMath.SPRLabel,
		},
	}
}

func buildLeakReport(calc *Calculator, scn *scenario.Scenario, chosen, best ActionRow, table []ActionRow, evLoss float64) LeakReport {
	spotMath := spotMathSnapshot(scn, chosen)
	boardCards, _ := poker.ParseCards(scn.Board)
	texture := poker.BoardTexture(boardCards)
	mix := summarizeArchetypeMix(activeVillainSeats(scn))
	factors := factorBreakdown(calc, scn, chosen, best, table, evLoss)

	topFactor := "No significant leak factors"
	if len(factors) > 0 {
		topFactor = factors[0].Factor
	}
	summary := fmt.Sprintf(
		"EV leak %.3fbb in %s %s spot (%d-way, SPR %.1f, %s board). "+
			"Pot-odds equity threshold %.1f%%, baseline MDF %.1f%%. "+
			"Best line: %s (%.3fbb) vs chosen %s (%.3fbb). "+
			"Primary driver: %s. Pool: %s.",
		evLoss, scn.Street, scn.HeroPosition, scn.PlayersInHand, spotMath.SPR, textureLabel(texture),
		spotMath.RequiredEquity*100, spotMath.MDF*100,
		best.Label, best.EVBB, chosen.Label, chosen.EVBB,
		topFactor, mix)

	return LeakReport{
		Summary:             summary,
		OptimalGapBB:        round3(evLoss),
		FactorBreakdown:     factors,
		HeroProfileAnalysis: HeroProfileAnalysis(scn, &chosen, &best),
	}
}
