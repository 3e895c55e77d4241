package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recourse-bench/recourse-bench/sweep"
)

// separable returns a trivially separable training set: accepted points sit
// at x > 0, rejected at x < 0.
func separable() ([][]float64, []int) {
	X := [][]float64{
		{2, 0.1}, {3, -0.2}, {2.5, 0.3}, {4, 0}, {1.5, -0.1},
		{-2, 0.2}, {-3, -0.1}, {-2.5, 0}, {-4, 0.3}, {-1.5, -0.3},
	}
	y := []int{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}
	return X, y
}

func TestTrainLogistic_SeparatesData(t *testing.T) {
	X, y := separable()
	m, err := TrainLogistic(X, y, 200, 0.1, 42)
	require.NoError(t, err)

	for i, x := range X {
		assert.Equal(t, y[i], m.Predict(x), "row %d misclassified", i)
	}
}

func TestTrainLogistic_Deterministic(t *testing.T) {
	X, y := separable()
	a, err := TrainLogistic(X, y, 50, 0.1, 42)
	require.NoError(t, err)
	b, err := TrainLogistic(X, y, 50, 0.1, 42)
	require.NoError(t, err)
	assert.Equal(t, a.Weights, b.Weights)
	assert.Equal(t, a.Bias, b.Bias)
}

func TestTrainLogistic_EmptyTrainingSet(t *testing.T) {
	_, err := TrainLogistic(nil, nil, 10, 0.1, 42)
	assert.Error(t, err)
}

func TestLogistic_GradientPointsTowardAcceptance(t *testing.T) {
	m := &Logistic{Weights: []float64{2, -1}, Bias: 0}
	x := []float64{-1, 0}

	grad := m.Gradient(x)
	require.Len(t, grad, 2)
	// Moving along the gradient must increase the score.
	eps := 1e-3
	moved := []float64{x[0] + eps*grad[0], x[1] + eps*grad[1]}
	assert.Greater(t, m.Score(moved), m.Score(x))
}

func TestLogistic_ScoreBounds(t *testing.T) {
	m := &Logistic{Weights: []float64{5}, Bias: 1}
	for _, v := range []float64{-100, -1, 0, 1, 100} {
		s := m.Score([]float64{v})
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestKNN_PredictMajority(t *testing.T) {
	X := [][]float64{{0}, {0.1}, {0.2}, {10}, {10.1}}
	y := []int{0, 0, 0, 1, 1}
	m, err := TrainKNN(X, y, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Predict([]float64{0.05}))
	assert.Equal(t, 1, m.Predict([]float64{10.05}))
}

func TestTrainKNN_Validation(t *testing.T) {
	_, err := TrainKNN(nil, nil, 3)
	assert.Error(t, err)

	_, err = TrainKNN([][]float64{{1}}, []int{1}, 5)
	assert.Error(t, err, "k larger than the training set")
}

func TestCheckpoint_RoundTrip(t *testing.T) {
	X, y := separable()
	m, err := TrainLogistic(X, y, 50, 0.1, 42)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "checkpoints", "logit_toy.json")
	require.NoError(t, Save(path, &Checkpoint{Kind: "logit", Logistic: m}))

	ckpt, err := Load(path)
	require.NoError(t, err)
	clf, err := ckpt.Classifier()
	require.NoError(t, err)

	for i, x := range X {
		assert.Equal(t, m.Predict(x), clf.Predict(x), "row %d", i)
	}
}

func TestCheckpoint_UnknownKind(t *testing.T) {
	_, err := (&Checkpoint{Kind: "transformer"}).Classifier()
	assert.Error(t, err)
}

func TestTrain_Kinds(t *testing.T) {
	X, y := separable()
	ds := &sweep.Dataset{Name: "toy", XTrain: X, YTrain: y}

	logit, err := Train("logit", ds, 3, 42)
	require.NoError(t, err)
	assert.Equal(t, "logit", logit.Kind)
	require.NotNil(t, logit.Logistic)

	knn, err := Train("knn", ds, 3, 42)
	require.NoError(t, err)
	require.NotNil(t, knn.KNN)
	assert.Equal(t, 3, knn.KNN.K)

	_, err = Train("forest", ds, 3, 42)
	assert.Error(t, err)
}
