package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recourse-bench/recourse-bench/sweep"
	"github.com/recourse-bench/recourse-bench/sweep/recourse"
)

// runCmd executes the sweep jobs selected by the CLI flags.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hyperparameter sweep for the selected classifiers, datasets and strategies",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := loadConfig()
		if err != nil {
			logrus.Fatalf("config: %v", err)
		}
		store, err := sweep.NewStore(workdir)
		if err != nil {
			logrus.Fatalf("cache store: %v", err)
		}

		registry := sweep.NewRegistry()
		recourse.RegisterAll(registry)

		policy := sweep.SkipIfPresent
		if forceRerun {
			policy = sweep.ForceRerun
		}

		scheduler := &sweep.Scheduler{
			Config:    cfg,
			Store:     store,
			Registry:  registry,
			Providers: providers(cfg),
			Workers:   workers,
			Seed:      seed,
			Window:    sweep.Window{Start: startIndex, Count: numIns},
			Policy:    policy,
		}

		start := time.Now()
		outcomes, err := scheduler.RunAll(context.Background(), classifiers, datasets, strategies)
		if err != nil {
			logrus.Fatalf("scheduling: %v", err)
		}

		failed := sweep.Failed(outcomes)
		logrus.Infof("batch complete: %d jobs, %d failed, %s elapsed",
			len(outcomes), failed, time.Since(start).Round(time.Millisecond))
		for _, o := range outcomes {
			if o.Err != nil {
				logrus.Errorf("  failed: %s: %v", o.Job, o.Err)
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().IntVar(&workers, "workers", 4, "Parallel worker count")
	runCmd.Flags().IntVar(&startIndex, "start-index", 0, "First rejected instance of the evaluation window")
	runCmd.Flags().IntVar(&numIns, "num-ins", 0, "Evaluation window length (0 = one instance when --start-index is set, else the configured cap)")
	runCmd.Flags().BoolVar(&forceRerun, "rerun", false, "Recompute jobs whose cache entry already exists")
}
