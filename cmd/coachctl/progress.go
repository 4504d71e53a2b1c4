package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabe-silva/poker-analyzer/internal/app/trainer"
	"github.com/gabe-silva/poker-analyzer/internal/report"
)

var (
	progressBy    string
	attemptsLimit int
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show aggregate drill standings",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "List recent drill attempts",
	Args:  cobra.NoArgs,
	RunE:  runAttempts,
}

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Show every classification threshold and reference table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		report.WriteThresholds(os.Stdout)
	},
}

func init() {
	progressCmd.Flags().StringVar(&progressBy, "by", "street", "rollup dimension: street, hero_position, or node_type")
	attemptsCmd.Flags().IntVar(&attemptsLimit, "limit", 20, "number of attempts to show")
}

func runProgress(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := trainer.NewService(st, defaultTrials())
	resp, err := svc.Progress(context.Background(), progressBy)
	if err != nil {
		return fmt.Errorf("progress: %w", err)
	}
	if len(resp.Buckets) == 0 {
		fmt.Fprintln(os.Stdout, "No attempts recorded yet. Run 'coachctl generate' to start drilling.")
		return nil
	}
	report.WriteProgress(os.Stdout, resp)
	return nil
}

func runAttempts(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := trainer.NewService(st, defaultTrials())
	resp, err := svc.RecentAttempts(context.Background(), attemptsLimit)
	if err != nil {
		return fmt.Errorf("attempts: %w", err)
	}
	if len(resp.Items) == 0 {
		fmt.Fprintln(os.Stdout, "No attempts recorded yet.")
		return nil
	}
	for _, a := range resp.Items {
		fmt.Fprintf(os.Stdout, "  %s  %-4s %-7s %-18s loss %.3fbb  %s\n",
			a.CreatedAt.Format("2006-01-02 15:04"), a.HeroPosition, a.Street, a.NodeType, a.EVLossBB, a.Verdict)
		if a.FreeResponse != "" {
			fmt.Fprintf(os.Stdout, "      notes: %s\n", a.FreeResponse)
		}
	}
	return nil
}
