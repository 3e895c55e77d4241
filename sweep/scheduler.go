package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RerunPolicy decides whether existing cache entries are kept or recomputed.
type RerunPolicy string

const (
	// SkipIfPresent omits jobs whose cache key already holds an entry.
	SkipIfPresent RerunPolicy = "skip"
	// ForceRerun recomputes and overwrites every enumerated job.
	ForceRerun RerunPolicy = "force"
)

// Outcome records the result of one enumerated job. The scheduler always
// returns the full outcome list; a failed job never aborts its siblings.
type Outcome struct {
	Job     Job
	Skipped bool
	Elapsed time.Duration
	Err     error
}

// Providers resolves dataset and classifier identifiers to live values.
// Both callbacks must be safe for concurrent use.
type Providers struct {
	Dataset    func(name string) (*Dataset, error)
	Classifier func(name string, ds *Dataset) (Classifier, error)
}

// Scheduler fans independent sweep jobs out across a bounded worker pool.
// Jobs share no mutable state and write disjoint cache keys, so they may run
// in any interleaving.
type Scheduler struct {
	Config    *Config
	Store     *Store
	Registry  *Registry
	Providers Providers
	Workers   int
	Seed      int64
	Window    Window
	Policy    RerunPolicy
}

// RunAll enumerates the classifiers × datasets × strategies product (minus
// configured incompatibilities), applies the rerun policy, dispatches the
// surviving jobs, and returns one Outcome per enumerated job. Configuration
// errors surface before any job is scheduled.
func (s *Scheduler) RunAll(ctx context.Context, classifiers, datasets, strategies []string) ([]Outcome, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	for _, name := range strategies {
		if _, err := s.Registry.Lookup(name); err != nil {
			return nil, err
		}
		if _, _, err := s.Config.GridFor(name); err != nil {
			return nil, err
		}
	}
	workers := s.Workers
	if workers <= 0 {
		workers = 1
	}

	// Datasets load once, up front; jobs only read them.
	tables := make(map[string]*Dataset, len(datasets))
	for _, name := range datasets {
		ds, err := s.Providers.Dataset(name)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", name, err)
		}
		tables[name] = ds
	}

	// Classifiers resolve up front too: an unknown classifier id is a
	// configuration error, not a pile of per-job failures.
	models := make(map[string]Classifier, len(classifiers)*len(datasets))
	for _, cname := range classifiers {
		for _, dname := range datasets {
			clf, err := s.Providers.Classifier(cname, tables[dname])
			if err != nil {
				return nil, fmt.Errorf("classifier %q on dataset %q: %w", cname, dname, err)
			}
			models[cname+"/"+dname] = clf
		}
	}

	var outcomes []Outcome
	for _, cname := range classifiers {
		for _, dname := range datasets {
			for _, mname := range strategies {
				if s.Config.Excluded(cname, mname) {
					logrus.Debugf("skipping %s on %s: declared incompatible", mname, cname)
					continue
				}
				job := Job{Classifier: cname, Dataset: dname, Strategy: mname}
				skipped := s.Policy == SkipIfPresent && s.Store.Exists(job.Key())
				outcomes = append(outcomes, Outcome{Job: job, Skipped: skipped})
			}
		}
	}

	runner := NewRunner(s.Config, s.Store)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range outcomes {
		if outcomes[i].Skipped {
			logrus.Infof("skipping %s: cache entry present", outcomes[i].Job)
			continue
		}
		out := &outcomes[i]
		g.Go(func() error {
			start := time.Now()
			clf := models[out.Job.Classifier+"/"+out.Job.Dataset]
			out.Err = s.runOne(ctx, runner, out.Job, tables[out.Job.Dataset], clf)
			out.Elapsed = time.Since(start)
			if out.Err != nil {
				logrus.Errorf("job failed: %s: %v", out.Job, out.Err)
			} else {
				logrus.Infof("done %s in %s", out.Job, out.Elapsed.Round(time.Millisecond))
			}
			// Failures are isolated: never cancel sibling jobs.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

func (s *Scheduler) runOne(ctx context.Context, runner *Runner, job Job, ds *Dataset, clf Classifier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	strategy, err := s.Registry.Lookup(job.Strategy)
	if err != nil {
		return err
	}
	_, err = runner.Run(job, clf, ds, strategy, s.Seed, s.Window)
	return err
}

// Failed counts the outcomes that carry an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
