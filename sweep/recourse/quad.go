package recourse

import (
	"math"

	"github.com/recourse-bench/recourse-bench/sweep"
)

// QuadGreedy proposes K plans drawn from the accepted region of the training
// data, selected greedily under a quadratic objective that trades proximity
// to the query instance against determinantal diversity of the selected set.
// Hyperparameters: theta (the swept proximity/diversity trade-off, 1 = pure
// proximity) and kernel (RBF kernel width for the similarity term).
//
// Deterministic: the candidate pool is the training data, no sampling.
type QuadGreedy struct{}

// GenerateRecourse implements sweep.Strategy.
func (QuadGreedy) GenerateRecourse(x []float64, clf sweep.Classifier, _ *sweep.InstanceRNG, p *sweep.Params) (sweep.Plans, *sweep.Report, error) {
	theta := hyper(p, "theta", 0.99)
	width := hyper(p, "kernel", 1.0)
	if width <= 0 {
		width = 1
	}

	// Candidate pool: training points the classifier accepts. TrainLabels
	// already holds the classifier's predictions on TrainData.
	var pool [][]float64
	for i, row := range p.TrainData {
		if p.TrainLabels[i] == 1 {
			pool = append(pool, row)
		}
	}
	if len(pool) == 0 {
		return sweep.Plans{}, sweep.NewReport(false), nil
	}

	chosen := greedySelect(pool, p.K, func(c []float64, selected [][]float64) float64 {
		d := sweep.LpDist(x, c, 2)
		proximity := math.Exp(-d * d / width)
		if len(selected) == 0 {
			return proximity
		}
		// Repulsion from the selected set stands in for the determinant
		// gain: the closer c sits to a chosen plan, the smaller the
		// volume it adds.
		nearest := minDist(c, selected)
		repulsion := 1 - math.Exp(-nearest*nearest/width)
		return theta*proximity + (1-theta)*repulsion
	})

	return chosen, sweep.NewReport(len(chosen) == p.K), nil
}
