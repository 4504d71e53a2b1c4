package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabe-silva/poker-analyzer/internal/app/analysis"
	"github.com/gabe-silva/poker-analyzer/internal/report"
)

var analyzePlayer string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <history.json>",
	Short: "Profile one player from a hand-history export",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var playersCmd = &cobra.Command{
	Use:   "players <history.json>",
	Short: "List the players present in a hand-history export",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayers,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePlayer, "player", "", "player id to profile (required)")
	_ = analyzeCmd.MarkFlagRequired("player")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	resp, err := analysis.NewService().Analyze(f, analyzePlayer)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", analyzePlayer, err)
	}
	report.WriteProfile(os.Stdout, resp)
	if resp.ParseErrors > 0 {
		fmt.Fprintf(os.Stdout, "\n%d malformed hands were skipped.\n", resp.ParseErrors)
	}
	return nil
}

func runPlayers(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	resp, err := analysis.NewService().Players(f)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n%d hands parsed, %d skipped.\n\n", resp.HandsParsed, resp.ParseErrors)
	for _, item := range resp.Items {
		fmt.Fprintf(os.Stdout, "  %-24s %d hands\n", item.PlayerID, item.Hands)
	}
	return nil
}
