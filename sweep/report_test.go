package sweep

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putEntry(t *testing.T, store *Store, strategy string, feasible [][]bool, costs [][]float64) {
	t.Helper()
	entry := &CacheEntry{ParamName: "alpha", Values: make([]float64, len(feasible))}
	for i := range feasible {
		entry.Values[i] = float64(i)
		results := make([]EvaluationResult, len(feasible[i]))
		for j := range feasible[i] {
			results[j] = EvaluationResult{
				Valid:    feasible[i][j],
				Cost:     costs[i][j],
				Feasible: feasible[i][j],
			}
		}
		entry.Results = append(entry.Results, results)
	}
	require.NoError(t, store.Put(Key("clf", "toy", strategy), entry))
}

func TestAssembler_MeanReduction(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	putEntry(t, store, "a",
		[][]bool{{true, true, false}, {true, false, false}},
		[][]float64{{1, 2, 3}, {4, 5, 6}})

	curves, err := NewAssembler(store).Assemble("clf", "toy", []string{"a"})
	require.NoError(t, err)
	curve := curves["a"]
	require.NotNil(t, curve)

	assert.Equal(t, "alpha", curve.ParamName)
	assert.Equal(t, []float64{0, 1}, curve.Values)
	assert.InDelta(t, 2.0, curve.Series(MetricCost)[0], 1e-12)
	assert.InDelta(t, 5.0, curve.Series(MetricCost)[1], 1e-12)
	assert.InDelta(t, 2.0/3.0, curve.Series(MetricValidity)[0], 1e-12)
	assert.InDelta(t, 1.0/3.0, curve.Series(MetricValidity)[1], 1e-12)
}

func TestAssembler_JointFeasibilityAcrossStrategies(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	// Strategy a: [true true false] at both values; strategy b flips the
	// second instance at its second value.
	putEntry(t, store, "a",
		[][]bool{{true, true, false}, {true, true, false}},
		[][]float64{{0, 0, 0}, {0, 0, 0}})
	putEntry(t, store, "b",
		[][]bool{{true, true, false}, {true, false, false}},
		[][]float64{{0, 0, 0}, {0, 0, 0}})

	joint, err := NewAssembler(store).JointFeasibility("clf", "toy", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, joint)

	// Strategy order must not matter.
	flipped, err := NewAssembler(store).JointFeasibility("clf", "toy", []string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, joint, flipped)
}

func TestAssembler_CacheMissIsFatalForThatReport(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	putEntry(t, store, "a", [][]bool{{true}}, [][]float64{{1}})

	assembler := NewAssembler(store)
	_, err = assembler.Assemble("clf", "toy", []string{"a", "missing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoEntry))

	// The present strategy still assembles on its own.
	curves, err := assembler.Assemble("clf", "toy", []string{"a"})
	require.NoError(t, err)
	assert.Contains(t, curves, "a")
}

func TestAssembler_MisalignedVectorsSurface(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	putEntry(t, store, "a", [][]bool{{true, true}}, [][]float64{{1, 2}})
	putEntry(t, store, "b", [][]bool{{true, true, true}}, [][]float64{{1, 2, 3}})

	_, err = NewAssembler(store).JointFeasibility("clf", "toy", []string{"a", "b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLengthMismatch), "misalignment must not be masked")
}
