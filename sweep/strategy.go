package sweep

import (
	"fmt"
	"sort"
)

// Classifier is the narrow view of a trained model that the evaluation
// protocol needs. Label 1 is acceptance, label 0 is rejection.
type Classifier interface {
	Predict(x []float64) int
}

// Plans is the set of candidate alternative feature vectors a strategy
// proposes for one instance. A strategy may legitimately return an empty
// set when it finds nothing; metrics then take their neutral values.
type Plans [][]float64

// Report carries a strategy's self-diagnostics for one invocation.
// Feasible states whether the strategy itself found a bounded/valid
// solution. A nil Feasible is a contract violation: the runner fails the
// job rather than assuming false.
type Report struct {
	Feasible *bool
}

// NewReport builds a Report with the feasible flag set.
func NewReport(feasible bool) *Report {
	return &Report{Feasible: &feasible}
}

// Params is the parameter map handed to a strategy for one invocation.
// Hyper is the strategy's own hyperparameter sub-map; strategies never see
// each other's parameters.
type Params struct {
	TrainData     [][]float64
	TrainLabels   []int // classifier predictions on TrainData
	Schema        *Schema
	K             int // plan count / neighbor count
	PerturbRadius float64
	Hyper         map[string]float64
}

// Strategy is the single-operation capability every recourse generator
// exposes. Implementations draw randomness only from rng so runs are
// reproducible for a given seed.
type Strategy interface {
	GenerateRecourse(x []float64, clf Classifier, rng *InstanceRNG, p *Params) (Plans, *Report, error)
}

// Registry maps strategy identifiers to implementations. Adding a strategy
// means registering a new implementer, not modifying dispatch logic.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Register binds a strategy implementation to an identifier.
// Re-registering an identifier replaces the previous binding.
func (r *Registry) Register(name string, s Strategy) {
	r.strategies[name] = s
}

// Lookup resolves a strategy identifier. Unknown identifiers are a
// configuration error.
func (r *Registry) Lookup(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (registered: %v)", name, r.Names())
	}
	return s, nil
}

// Names returns the registered identifiers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
