package recourse

import (
	"fmt"

	"github.com/recourse-bench/recourse-bench/sweep"
)

// Wachter proposes a single plan by gradient ascent on the classifier's
// acceptance score with a quadratic distance penalty pulling the plan back
// toward the query instance. Hyperparameters: lambda (distance penalty),
// lr (step size), max_iter (iteration budget).
//
// Deterministic: draws no randomness.
type Wachter struct{}

// GenerateRecourse implements sweep.Strategy. The classifier must expose a
// gradient; pairing this strategy with a non-differentiable classifier is a
// configuration error, not a silently-infeasible result.
func (Wachter) GenerateRecourse(x []float64, clf sweep.Classifier, _ *sweep.InstanceRNG, p *sweep.Params) (sweep.Plans, *sweep.Report, error) {
	gc, ok := clf.(GradientClassifier)
	if !ok {
		return nil, nil, fmt.Errorf("wachter requires a gradient-capable classifier, got %T", clf)
	}

	lambda := hyper(p, "lambda", 0.5)
	lr := hyper(p, "lr", 0.05)
	maxIter := int(hyper(p, "max_iter", 500))

	z := make([]float64, len(x))
	copy(z, x)
	for iter := 0; iter < maxIter; iter++ {
		if gc.Score(z) >= 0.5 {
			break
		}
		grad := gc.Gradient(z)
		for j := range z {
			z[j] += lr * (grad[j] - lambda*(z[j]-x[j]))
		}
	}

	feasible := gc.Score(z) >= 0.5
	if !feasible {
		// The penalty kept the search inside the rejection region; report
		// infeasible with no plans rather than an arbitrary point.
		return sweep.Plans{}, sweep.NewReport(false), nil
	}
	return sweep.Plans{z}, sweep.NewReport(true), nil
}
