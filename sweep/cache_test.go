package sweep

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() *CacheEntry {
	return &CacheEntry{
		ParamName: "theta",
		Values:    []float64{0.2, 1.0},
		Results: [][]EvaluationResult{
			{
				{Valid: true, Cost: 0.8, Diversity: 0.1, ManifoldDist: 0.3, DPP: 0.9, Feasible: true},
				{Valid: false, Cost: 0, Feasible: false},
			},
			{
				{Valid: true, Cost: 1.2, Feasible: true},
				{Valid: true, Cost: 0.4, Feasible: true},
			},
		},
	}
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	key := Key("logit", "synthesis", "frpd_quad")
	want := sampleEntry()
	require.NoError(t, store.Put(key, want))

	got, err := store.Get(key)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_ExistsAndMiss(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	key := Key("logit", "synthesis", "dice")
	assert.False(t, store.Exists(key))

	_, err = store.Get(key)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoEntry))

	require.NoError(t, store.Put(key, sampleEntry()))
	assert.True(t, store.Exists(key))
}

func TestStore_OverwriteIsWholesale(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	key := Key("logit", "synthesis", "dice")
	require.NoError(t, store.Put(key, sampleEntry()))

	smaller := &CacheEntry{ParamName: "diversity_weight", Values: []float64{0}, Results: [][]EvaluationResult{{}}}
	require.NoError(t, store.Put(key, smaller))

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "diversity_weight", got.ParamName)
	assert.Len(t, got.Values, 1, "old values must not leak into the rewritten entry")
}

func TestStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(Key("a", "b", "c"), sampleEntry()))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, f := range files {
		assert.False(t, strings.HasSuffix(f.Name(), ".tmp"), "temp file left behind: %s", f.Name())
	}
}

func TestStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCacheEntry_FeasibilityVector(t *testing.T) {
	entry := sampleEntry()
	assert.Equal(t, []bool{true, false}, entry.FeasibilityVector(0))
	assert.Equal(t, []bool{true, true}, entry.FeasibilityVector(1))
}

func TestEvaluationResult_MetricAccessor(t *testing.T) {
	r := EvaluationResult{Valid: true, Cost: 2, Diversity: 3, ManifoldDist: 4, DPP: 5}
	assert.Equal(t, 1.0, r.Metric(MetricValidity))
	assert.Equal(t, 2.0, r.Metric(MetricCost))
	assert.Equal(t, 3.0, r.Metric(MetricDiversity))
	assert.Equal(t, 4.0, r.Metric(MetricManifold))
	assert.Equal(t, 5.0, r.Metric(MetricDPP))
	assert.Panics(t, func() { r.Metric("nope") })
}
