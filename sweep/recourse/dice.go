package recourse

import (
	"math"

	"github.com/recourse-bench/recourse-bench/sweep"
)

// Dice proposes K diverse plans by sampling accepted candidates around the
// query instance and greedily selecting a set that trades proximity against
// mutual diversity. Hyperparameters: diversity_weight (the swept trade-off),
// proximity_weight, num_candidates.
//
// Randomness comes from the sampler source only, so runs are reproducible
// for a given master seed.
type Dice struct{}

// GenerateRecourse implements sweep.Strategy.
func (Dice) GenerateRecourse(x []float64, clf sweep.Classifier, rng *sweep.InstanceRNG, p *sweep.Params) (sweep.Plans, *sweep.Report, error) {
	divWeight := hyper(p, "diversity_weight", 1.0)
	proxWeight := hyper(p, "proximity_weight", 0.5)
	numCandidates := int(hyper(p, "num_candidates", 200))

	radius := p.PerturbRadius
	if radius <= 0 {
		radius = 0.5
	}

	// Sample candidates in growing shells around x, keeping the accepted
	// ones. The shell growth keeps the search bounded while still reaching
	// across the decision boundary for hard instances.
	sampler := rng.ForSource(sweep.SourceSampler)
	var accepted [][]float64
	for i := 0; i < numCandidates; i++ {
		scale := radius * (1 + 3*float64(i)/float64(numCandidates))
		c := make([]float64, len(x))
		for j := range c {
			span := scaleFor(p.Schema, j)
			c[j] = x[j] + sampler.NormFloat64()*scale*span
		}
		if clf.Predict(c) == 1 {
			accepted = append(accepted, c)
		}
	}
	if len(accepted) == 0 {
		return sweep.Plans{}, sweep.NewReport(false), nil
	}

	chosen := greedySelect(accepted, p.K, func(c []float64, selected [][]float64) float64 {
		score := -proxWeight * sweep.LpDist(x, c, 2)
		if len(selected) > 0 {
			score += divWeight * minDist(c, selected)
		}
		return score
	})

	return chosen, sweep.NewReport(len(chosen) == p.K), nil
}

// scaleFor gives the per-feature sampling scale; unit for degenerate ranges.
func scaleFor(schema *sweep.Schema, j int) float64 {
	if schema == nil || j >= len(schema.Ranges) || schema.Ranges[j] <= 0 {
		return 1
	}
	return schema.Ranges[j]
}

// minDist is the distance from c to its nearest already-selected plan.
func minDist(c []float64, selected [][]float64) float64 {
	best := math.Inf(1)
	for _, s := range selected {
		if d := sweep.LpDist(c, s, 2); d < best {
			best = d
		}
	}
	return best
}

// greedySelect picks up to k candidates, each maximizing the supplied
// marginal score given the already-selected set. Ties resolve to the
// earliest candidate, keeping selection deterministic.
func greedySelect(candidates [][]float64, k int, score func(c []float64, selected [][]float64) float64) sweep.Plans {
	selected := make(sweep.Plans, 0, k)
	used := make([]bool, len(candidates))
	for len(selected) < k {
		bestIdx := -1
		bestScore := math.Inf(-1)
		for i, c := range candidates {
			if used[i] {
				continue
			}
			if s := score(c, selected); s > bestScore {
				bestScore = s
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		used[bestIdx] = true
		selected = append(selected, candidates[bestIdx])
	}
	return selected
}
