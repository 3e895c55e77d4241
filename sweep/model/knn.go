package model

import (
	"fmt"
	"math"
	"sort"
)

// KNN is a k-nearest-neighbor majority classifier. It has no gradient, so
// gradient-based strategies are declared incompatible with it in the
// experiment config rather than special-cased in dispatch.
type KNN struct {
	X [][]float64 `json:"x"`
	Y []int       `json:"y"`
	K int         `json:"k"`
}

// TrainKNN memorizes the training set.
func TrainKNN(X [][]float64, y []int, k int) (*KNN, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("train knn: empty training set")
	}
	if k <= 0 || k > len(X) {
		return nil, fmt.Errorf("train knn: k=%d out of range for %d rows", k, len(X))
	}
	return &KNN{X: X, Y: y, K: k}, nil
}

// Predict returns the majority label among the K nearest neighbors.
// Ties break toward rejection (label 0).
func (m *KNN) Predict(x []float64) int {
	type neighbor struct {
		dist  float64
		label int
	}
	neighbors := make([]neighbor, len(m.X))
	for i, row := range m.X {
		sum := 0.0
		for j := range row {
			d := x[j] - row[j]
			sum += d * d
		}
		neighbors[i] = neighbor{dist: math.Sqrt(sum), label: m.Y[i]}
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].dist < neighbors[j].dist })
	accepts := 0
	for _, n := range neighbors[:m.K] {
		if n.label == 1 {
			accepts++
		}
	}
	if accepts*2 > m.K {
		return 1
	}
	return 0
}
