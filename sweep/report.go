package sweep

import (
	"fmt"
)

// SweepCurve is one strategy's reduced sweep: for every hyperparameter value
// the mean of each metric across the evaluated instances. Values and the
// per-metric series are index-aligned and ordered ascending by value.
type SweepCurve struct {
	Strategy  string
	ParamName string
	Values    []float64
	Mean      map[string][]float64
}

// Series returns the mean series for one metric.
func (c *SweepCurve) Series(metric string) []float64 {
	return c.Mean[metric]
}

// Assembler reloads cached sweep results and reduces them into per-strategy
// curves ready for frontier extraction and plotting.
type Assembler struct {
	Store *Store
}

// NewAssembler creates an Assembler over an open store.
func NewAssembler(store *Store) *Assembler {
	return &Assembler{Store: store}
}

// Assemble loads the entry for every requested strategy under one
// (classifier, dataset) pair and mean-reduces it. A missing entry fails
// this report only; callers assembling several reports isolate the error.
func (a *Assembler) Assemble(classifier, dataset string, strategies []string) (map[string]*SweepCurve, error) {
	curves := make(map[string]*SweepCurve, len(strategies))
	for _, name := range strategies {
		entry, err := a.Store.Get(Key(classifier, dataset, name))
		if err != nil {
			return nil, err
		}
		curve := &SweepCurve{
			Strategy:  name,
			ParamName: entry.ParamName,
			Values:    entry.Values,
			Mean:      make(map[string][]float64, len(MetricNames)),
		}
		for _, metric := range MetricNames {
			series := make([]float64, len(entry.Values))
			for i := range entry.Values {
				series[i] = MeanMetric(entry.Results[i], metric)
			}
			curve.Mean[metric] = series
		}
		curves[name] = curve
	}
	return curves, nil
}

// JointFeasibility AND-reduces the feasibility vectors of every strategy at
// every sweep value for one (classifier, dataset) pair. The result is
// derived at report time and never persisted.
func (a *Assembler) JointFeasibility(classifier, dataset string, strategies []string) ([]bool, error) {
	var vectors [][]bool
	for _, name := range strategies {
		entry, err := a.Store.Get(Key(classifier, dataset, name))
		if err != nil {
			return nil, err
		}
		for i := range entry.Values {
			vectors = append(vectors, entry.FeasibilityVector(i))
		}
	}
	joint, err := JoinFeasibility(vectors)
	if err != nil {
		return nil, fmt.Errorf("join feasibility for %s on %s: %w", classifier, dataset, err)
	}
	return joint, nil
}
