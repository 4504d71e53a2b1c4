// Package report renders analyzer and trainer output as terminal
// tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gabe-silva/poker-analyzer/internal/app/analysis"
	"github.com/gabe-silva/poker-analyzer/internal/app/trainer"
	"github.com/gabe-silva/poker-analyzer/internal/ev"
	"github.com/gabe-silva/poker-analyzer/internal/scenario"
	"github.com/gabe-silva/poker-analyzer/internal/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func pct(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

func num(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *v)
}

// WriteProfile renders the full behavioral read for one player.
func WriteProfile(w io.Writer, resp *analysis.AnalyzeResponse) {
	p := resp.Analysis.Profile
	fmt.Fprintf(w, "\nPlayer: %s  |  Hands: %d  |  Confidence: %s  |  Style: %s\n\n",
		p.PlayerID, p.HandsPlayed, p.Confidence, resp.Analysis.Style)

	table := newTable(w)
	table.Header("STAT", "VALUE", "STAT", "VALUE")
	rows := [][4]string{
		{"VPIP", pct(p.VPIP), "C-Bet Flop", pct(p.CBetFlop)},
		{"PFR", pct(p.PFR), "Fold vs Flop Bet", pct(p.FoldToFlopBet)},
		{"Limp", pct(p.LimpRate), "Fold vs Turn Bet", pct(p.FoldToTurnBet)},
		{"3-Bet", pct(p.ThreeBet), "Fold vs River Bet", pct(p.FoldToRiverBet)},
		{"Fold to 3-Bet", pct(p.FoldTo3Bet), "Check-Raise", pct(p.CheckRaiseRate)},
		{"AF", num(p.AF), "Double Barrel", pct(p.DoubleBarrel)},
		{"WTSD", pct(p.WTSD), "Triple Barrel", pct(p.TripleBarrel)},
		{"W$SD", pct(p.WSD), "Overbet", pct(p.OverbetRate)},
		{"River Value", pct(p.RiverValueRate), "", ""},
	}
	for _, r := range rows {
		table.Append(r[0], r[1], r[2], r[3])
	}
	table.Render()

	if len(resp.Analysis.Tendencies) > 0 {
		fmt.Fprintln(w, "\nTendencies:")
		for _, tnd := range resp.Analysis.Tendencies {
			fmt.Fprintf(w, "  - %s\n", tnd)
		}
	}
	if len(resp.Analysis.Rules) > 0 {
		fmt.Fprintln(w, "\nConditional reads:")
		for _, r := range resp.Analysis.Rules {
			fmt.Fprintf(w, "  - %s: %s\n", r.Condition, r.Conclusion)
		}
	}
	WriteExploits(w, resp.Analysis.Exploits)
	WriteMatches(w, resp)
}

// WriteExploits renders the exploit plan.
func WriteExploits(w io.Writer, exploits []stats.Exploit) {
	if len(exploits) == 0 {
		return
	}
	fmt.Fprintln(w, "\nExploit plan:")
	table := newTable(w)
	table.Header("CATEGORY", "LEAK", "COUNTER", "CONF")
	for _, e := range exploits {
		table.Append(e.Category, e.Description, e.CounterStrategy, fmt.Sprintf("%.0f%%", e.Confidence*100))
	}
	table.Render()
}

// WriteMatches renders the nearest archetype matches.
func WriteMatches(w io.Writer, resp *analysis.AnalyzeResponse) {
	if len(resp.Matches) == 0 {
		return
	}
	fmt.Fprintln(w, "\nNearest archetypes:")
	table := newTable(w)
	table.Header("ARCHETYPE", "DISTANCE", "VPIP", "PFR", "AF")
	for _, m := range resp.Matches {
		a := m.Archetype
		table.Append(a.Label,
			fmt.Sprintf("%.2f", m.Distance),
			fmt.Sprintf("%.0f%%", a.VPIP*100),
			fmt.Sprintf("%.0f%%", a.PFR*100),
			fmt.Sprintf("%.1f", a.AF))
	}
	table.Render()
}

// WriteScenario renders the spot a drill presents.
func WriteScenario(w io.Writer, scn *scenario.Scenario) {
	fmt.Fprintf(w, "\nScenario %s  |  %s %s, %s\n", scn.ID, scn.Street, scn.NodeType, scn.ActionContext)
	fmt.Fprintf(w, "Hero: %s with %s  |  Board: %s\n",
		scn.HeroPosition, strings.Join(scn.HeroHand, " "), strings.Join(scn.Board, " "))
	fmt.Fprintf(w, "Pot %.1fbb, to call %.1fbb, effective %.1fbb\n\n", scn.PotBB, scn.ToCallBB, scn.EffectiveStackBB)

	table := newTable(w)
	table.Header("SEAT", "POS", "WHO", "ARCHETYPE", "STACK", "ROLE")
	for _, s := range scn.Seats {
		who := ""
		if s.IsHero {
			who = "HERO"
		}
		role := s.Role
		if !s.InHand {
			role = "out"
		}
		table.Append(strconv.Itoa(s.Seat), s.Position, who, s.ArchetypeLabel,
			fmt.Sprintf("%.0fbb", s.StackBB), role)
	}
	table.Render()

	if len(scn.ActionHistory) > 0 {
		fmt.Fprintln(w, "\nAction so far:")
		for _, line := range scn.ActionHistory {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	fmt.Fprintf(w, "\nLegal: %s\n", strings.Join(scn.LegalActions, ", "))
	if len(scn.BetSizeOptions) > 0 {
		fmt.Fprintf(w, "Bet sizes: %s\n", joinSizes(scn.BetSizeOptions))
	}
	if len(scn.RaiseSizeOptions) > 0 {
		fmt.Fprintf(w, "Raise sizes: %s\n", joinSizes(scn.RaiseSizeOptions))
	}
}

func joinSizes(sizes []float64) string {
	parts := make([]string, 0, len(sizes))
	for _, s := range sizes {
		parts = append(parts, fmt.Sprintf("%.1fbb", s))
	}
	return strings.Join(parts, ", ")
}

// WriteEvaluation renders the scored decision: verdict, the full action
// table, and the leak decomposition.
func WriteEvaluation(w io.Writer, resp *trainer.EvaluateResponse) {
	res := resp.Result
	fmt.Fprintf(w, "\nVerdict: %s  |  EV loss: %.3fbb\n", res.Verdict, res.EVLossBB)
	if len(res.MistakeTags) > 0 {
		fmt.Fprintf(w, "Mistakes: %s\n", strings.Join(res.MistakeTags, ", "))
	}
	fmt.Fprintln(w)

	WriteActionTable(w, res.ActionTable, res.ChosenAction.Label)

	if len(res.LeakReport.FactorBreakdown) > 0 {
		fmt.Fprintf(w, "\n%s\n\n", res.LeakReport.Summary)
		table := newTable(w)
		table.Header("FACTOR", "IMPACT", "SHARE", "DETAIL")
		for _, f := range res.LeakReport.FactorBreakdown {
			table.Append(f.Factor,
				fmt.Sprintf("%.3fbb", f.ImpactBB),
				fmt.Sprintf("%.0f%%", f.SharePct),
				f.Detail)
		}
		table.Render()
	}

	ha := res.LeakReport.HeroProfileAnalysis
	if len(ha.Recommendations) > 0 {
		fmt.Fprintln(w, "\nCoaching:")
		for _, rec := range ha.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
}

// WriteActionTable renders every candidate line; the chosen one is
// marked with ">".
func WriteActionTable(w io.Writer, rows []ev.ActionRow, chosenLabel string) {
	table := newTable(w)
	table.Header(" ", "LINE", "EQUITY", "FOLD_EQ", "CALLERS", "REAL", "EV(BB)", "±CI")
	for _, r := range rows {
		marker := " "
		if r.Label == chosenLabel {
			marker = ">"
		}
		table.Append(marker, r.Label,
			fmt.Sprintf("%.1f%%", r.Equity*100),
			fmt.Sprintf("%.1f%%", r.FoldEquity*100),
			fmt.Sprintf("%.1f", r.ExpectedCallers),
			fmt.Sprintf("%.2f", r.Realization),
			fmt.Sprintf("%+.3f", r.EVBB),
			fmt.Sprintf("%.3f", r.EVCIBB))
	}
	table.Render()
}

// WriteProgress renders the aggregate drill standings.
func WriteProgress(w io.Writer, resp *trainer.ProgressResponse) {
	fmt.Fprintf(w, "\nProgress by %s:\n", resp.Dimension)
	table := newTable(w)
	table.Header(strings.ToUpper(resp.Dimension), "ATTEMPTS", "AVG_LOSS", "LEAKS", "LEAK%", "TOTAL_LOSS")
	for _, b := range resp.Buckets {
		table.Append(b.Key,
			strconv.Itoa(b.Attempts),
			fmt.Sprintf("%.3fbb", b.AvgEVLossBB),
			strconv.Itoa(b.LeakCount),
			fmt.Sprintf("%.0f%%", b.LeakRate*100),
			fmt.Sprintf("%.2fbb", b.TotalLossBB))
	}
	table.Render()
}
