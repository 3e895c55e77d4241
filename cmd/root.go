package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared across subcommands
	configPath  string   // Optional YAML experiment config
	workdir     string   // Working directory for cache entries, checkpoints and charts
	logLevel    string   // Log verbosity level
	datasets    []string // Dataset ids to evaluate
	classifiers []string // Classifier ids to evaluate
	strategies  []string // Strategy ids to evaluate
	seed        int64    // Master seed for per-instance randomness derivation
	workers     int      // Worker pool size for parallel jobs
	startIndex  int      // First rejected instance of the evaluation window
	numIns      int      // Window length (0 = use the configured cap)
	forceRerun  bool     // Recompute jobs whose cache entry already exists
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "recourse-bench",
	Short: "Hyperparameter-sweep benchmark harness for recourse-generation strategies",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies the --log flag before any subcommand work.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML experiment config (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&workdir, "workdir", "results", "Working directory for cache entries, checkpoints and charts")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringSliceVar(&datasets, "datasets", []string{"synthesis"}, "Dataset ids")
	rootCmd.PersistentFlags().StringSliceVar(&classifiers, "classifiers", []string{"logit"}, "Classifier ids")
	rootCmd.PersistentFlags().StringSliceVar(&strategies, "methods", []string{"wachter", "dice", "frpd_quad"}, "Strategy ids")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Master seed for reproducible evaluation")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
}
