// Package dataset produces the split, encoded sweep.Dataset values the
// experiment harness consumes: a built-in synthetic dataset and a CSV loader
// for external ones.
package dataset

import (
	"math/rand"

	"github.com/recourse-bench/recourse-bench/sweep"
)

// Synthetic data parameters: a fourth-degree polynomial decision boundary
// over a 2-D box. Points above the curve are accepted.
const (
	synthXMin = -2.0
	synthXMax = 4.0
	synthYMin = -2.0
	synthYMax = 7.0
)

func synthBoundary(x, y float64) bool {
	return y >= 1+x+2*x*x+x*x*x-x*x*x*x
}

// Synthesize generates the built-in 2-feature synthetic dataset and returns
// it already split. Deterministic for a given seed.
func Synthesize(numSamples int, seed int64) *sweep.Dataset {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, numSamples)
	y := make([]int, numSamples)
	for i := range X {
		fx := synthXMin + rng.Float64()*(synthXMax-synthXMin)
		fy := synthYMin + rng.Float64()*(synthYMax-synthYMin)
		X[i] = []float64{fx, fy}
		if synthBoundary(fx, fy) {
			y[i] = 1
		}
	}
	ds := Split("synthesis", X, y, 0.8, seed)
	ds.Schema = NewSchema([]string{"x", "y"}, nil, X)
	return ds
}

// Split shuffles deterministically and cuts an 80/20-style train/test split.
// The schema is left for the caller to attach (it should be computed on the
// full feature matrix, not one split).
func Split(name string, X [][]float64, y []int, trainFrac float64, seed int64) *sweep.Dataset {
	rng := rand.New(rand.NewSource(seed))
	order := rng.Perm(len(X))
	cut := int(float64(len(X)) * trainFrac)
	ds := &sweep.Dataset{Name: name}
	for i, idx := range order {
		if i < cut {
			ds.XTrain = append(ds.XTrain, X[idx])
			ds.YTrain = append(ds.YTrain, y[idx])
		} else {
			ds.XTest = append(ds.XTest, X[idx])
			ds.YTest = append(ds.YTest, y[idx])
		}
	}
	return ds
}

// NewSchema builds a feature schema from the full feature matrix: the
// categorical index set plus the per-column observed value ranges used to
// normalize numeric dissimilarity.
func NewSchema(names []string, categorical []int, X [][]float64) *sweep.Schema {
	if len(X) == 0 {
		return &sweep.Schema{Names: names, Categorical: categorical, Ranges: make([]float64, len(names))}
	}
	d := len(X[0])
	minV := make([]float64, d)
	maxV := make([]float64, d)
	copy(minV, X[0])
	copy(maxV, X[0])
	for _, row := range X[1:] {
		for j, v := range row {
			if v < minV[j] {
				minV[j] = v
			}
			if v > maxV[j] {
				maxV[j] = v
			}
		}
	}
	ranges := make([]float64, d)
	for j := range ranges {
		ranges[j] = maxV[j] - minV[j]
	}
	return &sweep.Schema{Names: names, Categorical: categorical, Ranges: ranges}
}
