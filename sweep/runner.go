package sweep

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Job identifies one (classifier, dataset, strategy) evaluation unit.
type Job struct {
	Classifier string
	Dataset    string
	Strategy   string
}

// Key returns the job's cache key.
func (j Job) Key() string {
	return Key(j.Classifier, j.Dataset, j.Strategy)
}

func (j Job) String() string {
	return fmt.Sprintf("classifier=%s dataset=%s strategy=%s", j.Classifier, j.Dataset, j.Strategy)
}

// Window restricts evaluation to the rejected-instance slice
// [Start, Start+Count). A start-only window (Start > 0, Count == 0) selects
// the single instance at Start. The zero Window means no windowing: the
// first Config.MaxInstances rejected instances are used instead.
type Window struct {
	Start int
	Count int
}

// Dataset is the split, encoded view of one dataset as the runner consumes
// it. Immutable for the duration of an experiment.
type Dataset struct {
	Name   string
	XTrain [][]float64
	YTrain []int
	XTest  [][]float64
	YTest  []int
	Schema *Schema
}

// Runner executes one sweep job: it iterates the strategy's hyperparameter
// grid in ascending order, evaluates every selected instance at every value,
// and persists the complete entry under the job's key.
type Runner struct {
	Config *Config
	Store  *Store
}

// NewRunner creates a Runner over a validated config and an open store.
func NewRunner(cfg *Config, store *Store) *Runner {
	return &Runner{Config: cfg, Store: store}
}

// Run evaluates the job and writes its CacheEntry, overwriting any prior
// entry for the key wholesale. A strategy error on any instance aborts the
// whole job; nothing partial is persisted.
func (r *Runner) Run(job Job, clf Classifier, ds *Dataset, strategy Strategy, seed int64, win Window) (*CacheEntry, error) {
	paramName, values, err := r.Config.GridFor(job.Strategy)
	if err != nil {
		return nil, err
	}

	rejected := r.selectRejected(clf, ds, win)
	logrus.Infof("running %s: %d grid values, %d rejected instances", job, len(values), len(rejected))

	entry := &CacheEntry{
		ParamName: paramName,
		Values:    values,
		Results:   make([][]EvaluationResult, 0, len(values)),
	}

	trainLabels := make([]int, len(ds.XTrain))
	for i, row := range ds.XTrain {
		trainLabels[i] = clf.Predict(row)
	}

	for _, value := range values {
		cfg := r.Config
		if paramName != NoSweptParam {
			cfg = cfg.WithOverride(job.Strategy, paramName, value)
		}
		logrus.Debugf("%s: varying %s = %g", job, paramName, value)

		params := &Params{
			TrainData:     ds.XTrain,
			TrainLabels:   trainLabels,
			Schema:        ds.Schema,
			K:             cfg.K,
			PerturbRadius: cfg.PerturbRadius[job.Dataset],
			Hyper:         cfg.HyperFor(job.Strategy),
		}

		results := make([]EvaluationResult, 0, len(rejected))
		for _, x0 := range rejected {
			// Every instance re-derives its randomness from the single
			// master seed, so reruns are exactly reproducible.
			rng := NewInstanceRNG(seed)
			plans, report, err := strategy.GenerateRecourse(x0, clf, rng, params)
			if err != nil {
				return nil, fmt.Errorf("%s at %s=%g: %w", job, paramName, value, err)
			}
			if report == nil || report.Feasible == nil {
				return nil, fmt.Errorf("%s at %s=%g: strategy report missing feasible flag", job, paramName, value)
			}
			results = append(results, Evaluate(clf, x0, plans, params, *report.Feasible))
		}
		entry.Results = append(entry.Results, results)
	}

	if err := r.Store.Put(job.Key(), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// selectRejected restricts the test split to instances the classifier
// currently rejects, then applies the instance window (or the configured
// cap when no window is requested).
func (r *Runner) selectRejected(clf Classifier, ds *Dataset, win Window) [][]float64 {
	rejected := make([][]float64, 0, len(ds.XTest))
	for _, x := range ds.XTest {
		if clf.Predict(x) == 0 {
			rejected = append(rejected, x)
		}
	}
	if win.Count > 0 || win.Start > 0 {
		count := win.Count
		if count == 0 {
			count = 1
		}
		lo := win.Start
		if lo > len(rejected) {
			lo = len(rejected)
		}
		hi := lo + count
		if hi > len(rejected) {
			hi = len(rejected)
		}
		return rejected[lo:hi]
	}
	if len(rejected) > r.Config.MaxInstances {
		rejected = rejected[:r.Config.MaxInstances]
	}
	return rejected
}
