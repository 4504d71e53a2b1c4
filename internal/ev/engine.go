package ev

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gabe-silva/poker-analyzer/internal/archetype"
	"github.com/gabe-silva/poker-analyzer/internal/poker"
	"github.com/gabe-silva/poker-analyzer/internal/scenario"
)

var (
	ErrNoLegalActions     = errors.New("no_legal_actions")
	ErrDecisionNotInTable = errors.New("decision_not_in_table")
	ErrUnknownArchetype   = errors.New("unknown_archetype")
)

// Intent tags an aggressive line by its purpose.
const (
	IntentValue = "value"
	IntentBluff = "bluff"
)

// Decision is the player's submitted choice for one scenario.
type Decision struct {
	Action string   `json:"action"`
	SizeBB *float64 `json:"size_bb"`
	Intent string   `json:"intent"`
}

func (d Decision) normalized() (string, float64, bool, string) {
	action := strings.ToLower(strings.TrimSpace(d.Action))
	hasSize := d.SizeBB != nil && *d.SizeBB != 0
	size := 0.0
	if hasSize {
		size = round1(*d.SizeBB)
	}
	intent := strings.ToLower(strings.TrimSpace(d.Intent))
	return action, size, hasSize, intent
}

// ActionRow is one evaluated line in the action table.
type ActionRow struct {
	Action          string   `json:"action"`
	SizeBB          *float64 `json:"size_bb"`
	Intent          string   `json:"intent,omitempty"`
	Label           string   `json:"label"`
	Equity          float64  `json:"equity"`
	FoldEquity      float64  `json:"fold_equity"`
	ExpectedCallers float64  `json:"expected_callers"`
	PotIfCalledBB   float64  `json:"pot_if_called_bb"`
	RiskBB          float64  `json:"risk_bb"`
	Realization     float64  `json:"realization"`
	EVBB            float64  `json:"ev_bb"`
	EVCIBB          float64  `json:"ev_ci_bb"`
}

func (r ActionRow) sizeRounded() (float64, bool) {
	if r.SizeBB == nil {
		return 0, false
	}
	return round1(*r.SizeBB), true
}

// actionOrder is the canonical tie-break ordering.
var actionOrder = map[string]int{
	"fold":  0,
	"check": 1,
	"call":  2,
	"bet":   3,
	"raise": 4,
}

// Calculator computes the EV action table for one scenario. Not safe
// for concurrent use; build one per evaluation.
type Calculator struct {
	scn         *scenario.Scenario
	trials      int
	baseSeed    uint64
	heroHand    []poker.Card
	board       []poker.Card
	cache       map[string]EquityEstimate
	heroProfile scenario.HeroProfile
	degenerate  bool
}

// NewCalculator parses the scenario's cards and fixes the simulation
// seed. The equity stream is derived from the scenario seed so repeat
// evaluations of the same scenario agree.
func NewCalculator(scn *scenario.Scenario, trials int) (*Calculator, error) {
	if trials <= 0 {
		trials = DefaultTrials
	}
	if trials < MinTrials {
		trials = MinTrials
	}
	if trials > MaxTrials {
		trials = MaxTrials
	}
	heroHand, err := poker.ParseCards(scn.HeroHand)
	if err != nil {
		return nil, err
	}
	board, err := poker.ParseCards(scn.Board)
	if err != nil {
		return nil, err
	}
	return &Calculator{
		scn:         scn,
		trials:      trials,
		baseSeed:    uint64(scn.Seed) + 173,
		heroHand:    heroHand,
		board:       board,
		cache:       map[string]EquityEstimate{},
		heroProfile: scn.HeroProfile,
	}, nil
}

// RangeCollapsed reports whether any equity run had to fall back to an
// un-narrowed villain range.
func (c *Calculator) RangeCollapsed() bool { return c.degenerate }

func (c *Calculator) activeVillains() ([]villainSpec, error) {
	var out []villainSpec
	for _, seat := range c.scn.Seats {
		if !seat.InHand || seat.IsHero {
			continue
		}
		arch, ok := archetype.ByKey(seat.ArchetypeKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownArchetype, seat.ArchetypeKey)
		}
		out = append(out, villainSpec{arch: arch, role: seat.Role, position: seat.Position})
	}
	return out, nil
}

func (c *Calculator) equity(villains []villainSpec, pressure float64) EquityEstimate {
	key := fmt.Sprintf("p%.3f/n%d", pressure, c.trials)
	for _, v := range villains {
		key += "|" + v.arch.Key + ":" + v.role + ":" + v.position
	}
	if est, ok := c.cache[key]; ok {
		return est
	}

	// Each distinct equity question gets its own sub-seed family so
	// cache order cannot change results.
	seed := c.baseSeed
	for _, b := range []byte(key) {
		seed = splitmix64(seed + uint64(b))
	}
	est := simulateEquity(c.heroHand, c.board, c.scn.Street, villains, pressure, c.trials, seed)
	if est.Degenerate {
		c.degenerate = true
	}
	c.cache[key] = est
	return est
}

func positionBonus(position string) float64 {
	return map[string]float64{
		"BTN": 0.08,
		"CO":  0.05,
		"HJ":  0.03,
		"LJ":  0.01,
		"UTG": -0.01,
		"SB":  -0.08,
		"BB":  -0.05,
	}[position]
}

func futureFactor(street poker.Street) float64 {
	switch street {
	case poker.StreetPreflop:
		return 2.2
	case poker.StreetFlop:
		return 1.45
	case poker.StreetTurn:
		return 1.2
	}
	return 1.0
}

// lineRealization estimates the share of raw equity the line converts
// into pot share, from position, street, intent, multiway pressure, and
// the hero's own image.
func (c *Calculator) lineRealization(intent string, callersEstimate float64) float64 {
	base := 0.82 + positionBonus(c.scn.HeroPosition)
	var streetAdj float64
	switch c.scn.Street {
	case poker.StreetPreflop:
		streetAdj = -0.05
	case poker.StreetTurn:
		streetAdj = 0.03
	case poker.StreetRiver:
		streetAdj = 0.06
	}
	var intentAdj float64
	switch intent {
	case IntentValue:
		intentAdj = 0.08
	case IntentBluff:
		intentAdj = -0.08
	}
	multiwayAdj := -0.04 * max0(callersEstimate-1.0)

	gapPenalty := -max0(c.heroProfile.Gap()-0.10) * 0.28
	afBluffPenalty := 0.0
	if intent == IntentBluff {
		afBluffPenalty = -max0(c.heroProfile.AF-3.8) * 0.025
	}
	pfrBonus := max0(c.heroProfile.PFR-0.20) * 0.08

	return clamp(base+streetAdj+intentAdj+multiwayAdj+gapPenalty+afBluffPenalty+pfrBonus, 0.45, 1.05)
}

// heroImageContinueAdjustment shifts villain continue frequency by how
// bluffy the hero's own stats look. Positive means villains continue
// more.
func (c *Calculator) heroImageContinueAdjustment(intent string) float64 {
	image := c.heroProfile.ImageBluffiness()
	if intent == IntentBluff {
		return (image - 0.5) * 0.22
	}
	return (image - 0.5) * 0.12
}

func (c *Calculator) foldRow() ActionRow {
	villains, _ := c.activeVillains()
	return ActionRow{
		Action:          "fold",
		Label:           "Fold",
		ExpectedCallers: float64(len(villains)),
		PotIfCalledBB:   c.scn.PotBB,
	}
}

// callLikeRow evaluates check or call: realize equity over the expected
// future pot, minus the call cost and a future-street tax.
func (c *Calculator) callLikeRow(action string) (ActionRow, error) {
	pot := c.scn.PotBB
	toCall := c.scn.ToCallBB
	villains, err := c.activeVillains()
	if err != nil {
		return ActionRow{}, err
	}

	equity := c.equity(villains, 0.30)
	realization := c.lineRealization("", float64(len(villains)))
	ff := futureFactor(c.scn.Street)

	var ev, expectedPot, risk float64
	if action == "check" {
		expectedPot = pot * ff
		futureCost := (ff - 1.0) * pot * 0.11
		ev = equity.Equity*realization*expectedPot - futureCost
	} else {
		expectedPot = (pot + toCall) * ff
		futureCost := (ff - 1.0) * (pot + toCall) * 0.14
		ev = equity.Equity*realization*expectedPot - toCall - futureCost
		risk = toCall
	}

	ci := 1.96 * equity.Stderr * expectedPot * realization
	return ActionRow{
		Action:          action,
		Label:           strings.ToUpper(action[:1]) + action[1:],
		Equity:          round4(equity.Equity),
		ExpectedCallers: float64(len(villains)),
		PotIfCalledBB:   round2(expectedPot),
		RiskBB:          round2(risk),
		Realization:     round3(realization),
		EVBB:            round3(ev),
		EVCIBB:          round3(ci),
	}, nil
}

// aggressiveRow evaluates a bet or raise of one size under one intent:
// fold-equity chain over per-villain continue probabilities, equity
// against the likeliest callers under pressure, and intent sanity
// penalties.
func (c *Calculator) aggressiveRow(action string, sizeBB float64, intent string) (ActionRow, error) {
	pot := c.scn.PotBB
	toCall := c.scn.ToCallBB
	villains, err := c.activeVillains()
	if err != nil {
		return ActionRow{}, err
	}

	actionKind := "raise"
	if action == "bet" {
		actionKind = "bet"
	}
	sizeRatio := sizeBB / maxf(1.0, pot)

	boardCards, _ := poker.ParseCards(c.scn.Board)
	texture := poker.BoardTexture(boardCards)
	textureAdj := 0.0
	if intent == IntentBluff {
		if texture >= 1.5 {
			textureAdj = -0.03
		} else {
			textureAdj = 0.03
		}
	}
	imageAdj := c.heroImageContinueAdjustment(intent)

	type villainContinue struct {
		spec villainSpec
		p    float64
	}
	continues := make([]villainContinue, 0, len(villains))
	for _, v := range villains {
		p := continueProbability(v.arch, c.scn.Street, actionKind, sizeRatio, v.role)
		p = clamp(p+textureAdj+imageAdj, 0.03, 0.97)
		continues = append(continues, villainContinue{spec: v, p: p})
	}

	pAllFold := 1.0
	expectedCallers := 0.0
	for _, vc := range continues {
		pAllFold *= 1.0 - vc.p
		expectedCallers += vc.p
	}

	targetCallers := int(expectedCallers + 0.5)
	if targetCallers < 1 {
		targetCallers = 1
	}
	if targetCallers > len(villains) {
		targetCallers = len(villains)
	}
	sort.SliceStable(continues, func(i, j int) bool { return continues[i].p > continues[j].p })
	callers := make([]villainSpec, 0, targetCallers)
	for _, vc := range continues[:targetCallers] {
		callers = append(callers, vc.spec)
	}

	pressure := clamp(0.38+sizeRatio*0.25, 0.25, 0.95)
	equity := c.equity(callers, pressure)
	realization := c.lineRealization(intent, maxf(1.0, expectedCallers))

	var potIfCalled float64
	if actionKind == "bet" {
		potIfCalled = pot + sizeBB + expectedCallers*sizeBB
	} else {
		callDelta := max0(sizeBB - toCall)
		potIfCalled = pot + sizeBB + expectedCallers*callDelta
	}
	risk := sizeBB

	ev := pAllFold*pot + (1.0-pAllFold)*(equity.Equity*realization*potIfCalled-risk)

	// Intent sanity: thin "value" and strong-hand "bluff" tags are
	// penalized so the table prefers coherent lines.
	if intent == IntentValue && equity.Equity < 0.45 {
		ev -= 0.7
	}
	if intent == IntentBluff && equity.Equity > 0.58 {
		ev -= 0.4
	}

	ci := 1.96 * equity.Stderr * potIfCalled * realization
	labelAction := "Raise"
	if action == "bet" {
		labelAction = "Bet"
	}
	size := round2(sizeBB)
	return ActionRow{
		Action:          action,
		SizeBB:          &size,
		Intent:          intent,
		Label:           fmt.Sprintf("%s %.1fbb (%s)", labelAction, sizeBB, strings.ToUpper(intent[:1])+intent[1:]),
		Equity:          round4(equity.Equity),
		FoldEquity:      round4(pAllFold),
		ExpectedCallers: round3(expectedCallers),
		PotIfCalledBB:   round2(potIfCalled),
		RiskBB:          round2(risk),
		Realization:     round3(realization),
		EVBB:            round3(ev),
		EVCIBB:          round3(ci),
	}, nil
}

// ActionTable evaluates every legal action crossed with size and intent,
// best EV first. Ties break toward the lower-variance row, then the
// canonical fold<check<call<bet<raise order.
func (c *Calculator) ActionTable() ([]ActionRow, error) {
	legal := map[string]bool{}
	for _, a := range c.scn.LegalActions {
		legal[a] = true
	}

	var table []ActionRow
	if legal["fold"] {
		table = append(table, c.foldRow())
	}
	for _, a := range []string{"check", "call"} {
		if legal[a] {
			row, err := c.callLikeRow(a)
			if err != nil {
				return nil, err
			}
			table = append(table, row)
		}
	}
	if legal["bet"] {
		for _, size := range c.scn.BetSizeOptions {
			for _, intent := range []string{IntentValue, IntentBluff} {
				row, err := c.aggressiveRow("bet", size, intent)
				if err != nil {
					return nil, err
				}
				table = append(table, row)
			}
		}
	}
	if legal["raise"] {
		for _, size := range c.scn.RaiseSizeOptions {
			for _, intent := range []string{IntentValue, IntentBluff} {
				row, err := c.aggressiveRow("raise", size, intent)
				if err != nil {
					return nil, err
				}
				table = append(table, row)
			}
		}
	}
	if len(table) == 0 {
		return nil, ErrNoLegalActions
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].EVBB != table[j].EVBB {
			return table[i].EVBB > table[j].EVBB
		}
		if table[i].EVCIBB != table[j].EVCIBB {
			return table[i].EVCIBB < table[j].EVCIBB
		}
		return actionOrder[table[i].Action] < actionOrder[table[j].Action]
	})
	return table, nil
}

// findRow locates the table row matching a normalized decision.
func findRow(table []ActionRow, d Decision) (ActionRow, bool) {
	action, size, hasSize, intent := d.normalized()
	for _, row := range table {
		if row.Action != action {
			continue
		}
		rowSize, rowHasSize := row.sizeRounded()
		if rowHasSize != hasSize || (hasSize && rowSize != size) {
			continue
		}
		rowIntent := strings.ToLower(row.Intent)
		if rowIntent != intent {
			continue
		}
		return row, true
	}
	return ActionRow{}, false
}

// EvaluationResult scores one submitted decision against the full table.
type EvaluationResult struct {
	ScenarioID   string      `json:"scenario_id"`
	BestAction   ActionRow   `json:"best_action"`
	ChosenAction ActionRow   `json:"chosen_action"`
	EVLossBB     float64     `json:"ev_loss_bb"`
	Verdict      string      `json:"verdict"`
	MistakeTags  []string    `json:"mistake_tags"`
	ActionTable  []ActionRow `json:"action_table"`
	LeakReport   LeakReport  `json:"leak_report"`
}

// Verdict bands for one decision's EV loss.
func verdictFor(evLoss float64) string {
	switch {
	case evLoss > 1.6:
		return "Major Leak"
	case evLoss > 0.8:
		return "Leak"
	case evLoss > 0.2:
		return "Good"
	}
	return "Excellent"
}

// checkLegal rejects a decision that cannot appear in the scenario's
// action table. Runs before any simulation work so illegal input never
// pays for a Monte Carlo pass.
func checkLegal(scn *scenario.Scenario, d Decision) error {
	action, size, hasSize, intent := d.normalized()
	legal := false
	for _, a := range scn.LegalActions {
		if a == action {
			legal = true
			break
		}
	}
	if !legal {
		return ErrDecisionNotInTable
	}
	switch action {
	case "bet", "raise":
		if intent != IntentValue && intent != IntentBluff {
			return ErrDecisionNotInTable
		}
		if !hasSize {
			return ErrDecisionNotInTable
		}
		menu := scn.BetSizeOptions
		if action == "raise" {
			menu = scn.RaiseSizeOptions
		}
		for _, opt := range menu {
			if round1(opt) == size {
				return nil
			}
		}
		return ErrDecisionNotInTable
	default:
		if hasSize || intent != "" {
			return ErrDecisionNotInTable
		}
	}
	return nil
}

// Evaluate computes the full action table, locates the chosen row, and
// builds the leak report. ev_loss is clamped at zero so evaluating the
// table's own best action reports no loss.
func Evaluate(scn *scenario.Scenario, d Decision, trials int) (*EvaluationResult, error) {
	if err := checkLegal(scn, d); err != nil {
		return nil, err
	}
	calc, err := NewCalculator(scn, trials)
	if err != nil {
		return nil, err
	}
	table, err := calc.ActionTable()
	if err != nil {
		return nil, err
	}

	best := table[0]
	chosen, ok := findRow(table, d)
	if !ok {
		return nil, ErrDecisionNotInTable
	}

	evLoss := round3(max0(best.EVBB - chosen.EVBB))
	return &EvaluationResult{
		ScenarioID:   scn.ID,
		BestAction:   best,
		ChosenAction: chosen,
		EVLossBB:     evLoss,
		Verdict:      verdictFor(evLoss),
		MistakeTags:  mistakeTags(chosen, best, evLoss),
		ActionTable:  table,
		LeakReport:   buildLeakReport(calc, scn, chosen, best, table, evLoss),
	}, nil
}
