package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabe-silva/poker-analyzer/internal/archetype"
	"github.com/gabe-silva/poker-analyzer/internal/ev"
	"github.com/gabe-silva/poker-analyzer/internal/stats"
)

func section(w io.Writer, title string) {
	bar := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n", bar, title, bar)
}

// WriteThresholds prints every classification threshold and reference
// table the analyzer and trainer use. The classification numbers
// mirror the style ladder in the stats package.
func WriteThresholds(w io.Writer) {
	section(w, "PLAY STYLE CLASSIFICATION")
	fmt.Fprintln(w, "  VPIP Tight:     < 20%")
	fmt.Fprintln(w, "  VPIP Loose:     > 28%")
	fmt.Fprintln(w, "  PFR Passive:    < 14%")
	fmt.Fprintln(w, "  PFR Aggressive: > 22%")
	fmt.Fprintln(w, "  AF Aggressive:  > 2.0")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Extreme classifications:")
	fmt.Fprintln(w, "    - Maniac: VPIP > 45% AND AF > 3.5")
	fmt.Fprintln(w, "    - Nit:    VPIP < 14% AND PFR < 10%")

	section(w, "SAMPLE CONFIDENCE LEVELS")
	fmt.Fprintln(w, "  Low:        < 100 hands")
	fmt.Fprintln(w, "  Medium:     100-299 hands")
	fmt.Fprintln(w, "  High:       300-999 hands")
	fmt.Fprintln(w, "  Very High:  >= 1000 hands")

	section(w, "MINIMUM SAMPLE GATES")
	table := newTable(w)
	table.Header("STATISTIC", "MIN OPPORTUNITIES")
	gates := []struct {
		name string
		min  int
	}{
		{"VPIP / PFR / Limp", stats.MinHandsForPreflopRates},
		{"3-Bet", stats.MinThreeBetOpps},
		{"Fold to 3-Bet", stats.MinFoldToThreeBetOpps},
		{"C-Bet Flop", stats.MinCBetOpps},
		{"Fold vs Bet", stats.MinFacedBetOpps},
		{"Check-Raise", stats.MinCheckRaiseOpps},
		{"Double/Triple Barrel", stats.MinBarrelOpps},
		{"Overbet", stats.MinOverbetBets},
		{"Aggression Factor", stats.MinPostflopActionsForAF},
		{"WTSD", stats.MinHandsForWTSD},
		{"W$SD", stats.MinShowdownsForWSD},
		{"River Value Rate", stats.MinRiverBetShowdowns},
	}
	for _, g := range gates {
		table.Append(g.name, fmt.Sprintf("%d", g.min))
	}
	table.Render()

	section(w, "MDF QUICK REFERENCE")
	mdf := newTable(w)
	mdf.Header("BET SIZE", "MDF", "REQUIRED EQUITY")
	for _, e := range ev.MDFReference() {
		mdf.Append(fmt.Sprintf("%.0f%% pot", e.BetToPot*100),
			fmt.Sprintf("%.1f%%", e.MDF*100),
			fmt.Sprintf("%.1f%%", ev.RequiredEquityToCall(1.0+e.BetToPot, e.BetToPot)*100))
	}
	mdf.Render()

	section(w, "SPR PLANNING BANDS")
	for _, spr := range []float64{1.0, 3.0, 6.0, 12.0} {
		band := ev.ClassifySPR(spr)
		fmt.Fprintf(w, "  %s (around %.0f):\n", band.Label, spr)
		for _, note := range band.Notes {
			fmt.Fprintf(w, "    - %s\n", note)
		}
	}

	section(w, "VILLAIN ARCHETYPE CATALOGUE")
	cat := newTable(w)
	cat.Header("KEY", "LABEL", "VPIP", "PFR", "AF")
	for _, a := range archetype.Catalogue {
		cat.Append(a.Key, a.Label,
			fmt.Sprintf("%.0f%%", a.VPIP*100),
			fmt.Sprintf("%.0f%%", a.PFR*100),
			fmt.Sprintf("%.1f", a.AF))
	}
	cat.Render()

	section(w, "DECISION VERDICT BANDS")
	fmt.Fprintln(w, "  Excellent:   EV loss <= 0.2bb")
	fmt.Fprintln(w, "  Good:        EV loss <= 0.8bb")
	fmt.Fprintln(w, "  Leak:        EV loss <= 1.6bb")
	fmt.Fprintln(w, "  Major Leak:  EV loss >  1.6bb")
	fmt.Fprintln(w)
}
