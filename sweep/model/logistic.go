// Package model provides the classifiers the experiment harness trains,
// checkpoints and hands to strategies through the sweep.Classifier view.
package model

import (
	"fmt"
	"math"
	"math/rand"
)

// Logistic is a logistic-regression classifier. It is differentiable, so
// gradient-based strategies can consume it through their gradient interface.
type Logistic struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Score returns the acceptance probability for x.
func (m *Logistic) Score(x []float64) float64 {
	z := m.Bias
	for i, w := range m.Weights {
		z += w * x[i]
	}
	return 1 / (1 + math.Exp(-z))
}

// Predict returns 1 (accept) when the acceptance probability reaches 0.5.
func (m *Logistic) Predict(x []float64) int {
	if m.Score(x) >= 0.5 {
		return 1
	}
	return 0
}

// Gradient returns the gradient of the acceptance score with respect to the
// input features at x.
func (m *Logistic) Gradient(x []float64) []float64 {
	s := m.Score(x)
	grad := make([]float64, len(m.Weights))
	for i, w := range m.Weights {
		grad[i] = s * (1 - s) * w
	}
	return grad
}

// TrainLogistic fits a logistic model by mini-batch-free gradient descent.
// Deterministic for a given seed (the seed only shuffles the visit order).
func TrainLogistic(X [][]float64, y []int, epochs int, lr float64, seed int64) (*Logistic, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("train logistic: empty training set")
	}
	d := len(X[0])
	m := &Logistic{Weights: make([]float64, d)}
	rng := rand.New(rand.NewSource(seed))
	order := rng.Perm(len(X))
	for epoch := 0; epoch < epochs; epoch++ {
		for _, i := range order {
			s := m.Score(X[i])
			err := float64(y[i]) - s
			for j := range m.Weights {
				m.Weights[j] += lr * err * X[i][j]
			}
			m.Bias += lr * err
		}
	}
	return m, nil
}
