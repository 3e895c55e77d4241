package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recourse-bench/recourse-bench/sweep"
	"github.com/recourse-bench/recourse-bench/sweep/plot"
)

var (
	xMetric string // Frontier x axis
	yMetric string // Frontier y axis
)

// reportCmd reduces cached sweep results into curves and renders the
// trade-off frontier charts. A missing cache entry fails only the
// (classifier, dataset) report that needs it.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble cached sweep results and render frontier charts",
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
		assembler := sweep.NewAssembler(store)
		dirs := cfg.DirectionTable()

		failures := 0
		for _, cname := range classifiers {
			for _, dname := range datasets {
				// Strategies excluded for this classifier have no cache
				// entry by construction; drop them from the report set.
				var selected []string
				for _, mname := range strategies {
					if !cfg.Excluded(cname, mname) {
						selected = append(selected, mname)
					}
				}

				curves, err := assembler.Assemble(cname, dname, selected)
				if err != nil {
					logrus.Errorf("report %s/%s: %v", cname, dname, err)
					failures++
					continue
				}

				joint, err := assembler.JointFeasibility(cname, dname, selected)
				if err != nil {
					logrus.Errorf("report %s/%s: %v", cname, dname, err)
					failures++
					continue
				}
				feasible := 0
				for _, ok := range joint {
					if ok {
						feasible++
					}
				}
				logrus.Infof("%s/%s: joint feasibility %d/%d instances", cname, dname, feasible, len(joint))

				base := fmt.Sprintf("%s_%s", cname, dname)
				title := fmt.Sprintf("%s on %s", cname, dname)
				frontierPath := filepath.Join(workdir, fmt.Sprintf("%s_%s_%s.html", base, xMetric, yMetric))
				if err := plot.Frontiers(frontierPath, title, curves, xMetric, yMetric, dirs); err != nil {
					logrus.Errorf("report %s/%s: %v", cname, dname, err)
					failures++
					continue
				}
				curvePath := filepath.Join(workdir, base+"_sweep.html")
				if err := plot.SweepCurves(curvePath, title, curves, yMetric); err != nil {
					logrus.Errorf("report %s/%s: %v", cname, dname, err)
					failures++
				}
			}
		}
		if failures > 0 {
			logrus.Fatalf("%d report(s) failed", failures)
		}
	},
}

func init() {
	reportCmd.Flags().StringVar(&xMetric, "x", sweep.MetricCost, "Frontier x-axis metric")
	reportCmd.Flags().StringVar(&yMetric, "y", sweep.MetricDiversity, "Frontier y-axis metric")
}
