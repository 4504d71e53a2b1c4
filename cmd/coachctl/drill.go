package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabe-silva/poker-analyzer/internal/app/trainer"
	"github.com/gabe-silva/poker-analyzer/internal/ev"
	"github.com/gabe-silva/poker-analyzer/internal/poker"
	"github.com/gabe-silva/poker-analyzer/internal/report"
	"github.com/gabe-silva/poker-analyzer/internal/scenario"
)

var (
	genSeed       int64
	genPlayers    int
	genStreet     string
	genNode       string
	genContext    string
	genPosition   string
	genRandomHero bool

	evalScenarioID string
	evalAction     string
	evalSize       float64
	evalIntent     string
	evalNotes      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one drill scenario from filters",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a decision against a stored scenario",
	Args:  cobra.NoArgs,
	RunE:  runEvaluate,
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "rng seed (0 = random)")
	generateCmd.Flags().IntVar(&genPlayers, "num-players", 0, "table size 2-7 (0 = 6)")
	generateCmd.Flags().StringVar(&genStreet, "street", "", "preflop, flop, turn, or river")
	generateCmd.Flags().StringVar(&genNode, "node", "", "single_raised_pot, three_bet_pot, or four_bet_pot")
	generateCmd.Flags().StringVar(&genContext, "context", "", "checked_to_hero, facing_bet, or facing_bet_and_call")
	generateCmd.Flags().StringVar(&genPosition, "position", "", "hero position, e.g. BTN")
	generateCmd.Flags().BoolVar(&genRandomHero, "random-hero", false, "randomize the hero's stat profile")

	evaluateCmd.Flags().StringVar(&evalScenarioID, "scenario", "", "scenario id (required)")
	evaluateCmd.Flags().StringVar(&evalAction, "action", "", "fold, check, call, bet, or raise (required)")
	evaluateCmd.Flags().Float64Var(&evalSize, "size", 0, "bet or raise size in bb")
	evaluateCmd.Flags().StringVar(&evalIntent, "intent", "", "value or bluff, for bets and raises")
	evaluateCmd.Flags().StringVar(&evalNotes, "notes", "", "free-form reasoning stored with the attempt")
	_ = evaluateCmd.MarkFlagRequired("scenario")
	_ = evaluateCmd.MarkFlagRequired("action")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := trainer.NewService(st, defaultTrials())
	scn, err := svc.GenerateScenario(context.Background(), scenario.Config{
		Seed:                 genSeed,
		NumPlayers:           genPlayers,
		Street:               poker.Street(genStreet),
		NodeType:             scenario.NodeType(genNode),
		ActionContext:        scenario.ActionContext(genContext),
		HeroPosition:         genPosition,
		RandomizeHeroProfile: genRandomHero,
	})
	if err != nil {
		return fmt.Errorf("generate scenario: %w", err)
	}
	report.WriteScenario(os.Stdout, scn)
	fmt.Fprintf(os.Stdout, "\nAnswer with: coachctl evaluate --scenario %s --action <action>\n", scn.ID)
	return nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var size *float64
	if evalSize > 0 {
		size = &evalSize
	}
	svc := trainer.NewService(st, defaultTrials())
	resp, err := svc.Evaluate(context.Background(), trainer.EvaluateRequest{
		ScenarioID:       evalScenarioID,
		Decision:         ev.Decision{Action: evalAction, SizeBB: size, Intent: evalIntent},
		FreeResponseText: evalNotes,
	})
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	report.WriteEvaluation(os.Stdout, resp)
	return nil
}
