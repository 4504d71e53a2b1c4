package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabe-silva/poker-analyzer/internal/config"
	"github.com/gabe-silva/poker-analyzer/internal/logging"
	"github.com/gabe-silva/poker-analyzer/internal/store"
)

var (
	dbPath string
	trials int
)

var rootCmd = &cobra.Command{
	Use:   "coachctl",
	Short: "Poker hand-history analyzer and EV trainer",
	Long: `Analyze exported hand histories into behavioral profiles and
exploit plans, drill synthetic decision spots against modeled villains,
and track EV-loss progress over time.`,
}

func main() {
	logCfg, err := config.LoadLog()
	if err == nil {
		logging.Init(logCfg)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "coach.db", "path to the sqlite database")
	rootCmd.PersistentFlags().IntVar(&trials, "trials", 0, "equity trials per candidate line (0 = default)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(attemptsCmd)
	rootCmd.AddCommand(thresholdsCmd)
}

func openStore() (*store.Store, error) {
	st, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func defaultTrials() int {
	if trials > 0 {
		return trials
	}
	cfg, err := config.LoadTrainer()
	if err != nil {
		return 360
	}
	return cfg.DefaultTrials
}
