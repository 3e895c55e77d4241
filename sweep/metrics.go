package sweep

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Metric name constants. These are the keys of cache entries, sweep curves
// and the direction table.
const (
	MetricCost      = "cost"
	MetricValidity  = "validity"
	MetricDiversity = "diversity"
	MetricManifold  = "manifold_dist"
	MetricDPP       = "dpp"
)

// MetricNames lists every metric in its canonical reporting order.
var MetricNames = []string{MetricCost, MetricValidity, MetricDiversity, MetricManifold, MetricDPP}

func knownMetric(name string) bool {
	for _, m := range MetricNames {
		if m == name {
			return true
		}
	}
	return false
}

// Schema describes the feature space: which columns are categorical and the
// observed value range of each column (for normalizing numeric distances).
type Schema struct {
	Names       []string  `json:"names"`
	Categorical []int     `json:"categorical"`
	Ranges      []float64 `json:"ranges"`
}

// IsCategorical reports whether column j carries a categorical feature.
func (s *Schema) IsCategorical(j int) bool {
	for _, c := range s.Categorical {
		if c == j {
			return true
		}
	}
	return false
}

// Validity reports whether the classifier accepts at least one plan entry.
// False for an empty plan set.
func Validity(clf Classifier, plans Plans) bool {
	for _, plan := range plans {
		if clf.Predict(plan) == 1 {
			return true
		}
	}
	return false
}

// Proximity is the cost objective: the minimum Lp distance from the query
// instance to any plan entry. Minimum (not mean) is the fixed aggregation: a
// plan set is as actionable as its cheapest entry, and the presence of
// far-but-diverse alternatives should not penalize it. Zero for an empty
// plan set.
func Proximity(x []float64, plans Plans, p float64) float64 {
	if len(plans) == 0 {
		return 0
	}
	best := math.Inf(1)
	for _, plan := range plans {
		if d := LpDist(x, plan, p); d < best {
			best = d
		}
	}
	return best
}

// LpDist computes the Lp distance between two equal-length vectors.
func LpDist(a, b []float64, p float64) float64 {
	sum := 0.0
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), p)
	}
	return math.Pow(sum, 1/p)
}

// Diversity is the mean pairwise dissimilarity across plan entries.
// Categorical features contribute a discrete mismatch term, numeric features
// a range-normalized absolute difference. Zero for fewer than two entries.
func Diversity(plans Plans, schema *Schema) float64 {
	n := len(plans)
	if n < 2 {
		return 0
	}
	total := 0.0
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			total += dissimilarity(plans[i], plans[j], schema)
			pairs++
		}
	}
	return total / float64(pairs)
}

// dissimilarity is the per-pair Gower-style mixed-feature distance.
func dissimilarity(a, b []float64, schema *Schema) float64 {
	d := len(a)
	sum := 0.0
	for j := 0; j < d; j++ {
		if schema.IsCategorical(j) {
			if a[j] != b[j] {
				sum++
			}
			continue
		}
		span := schema.Ranges[j]
		if span <= 0 {
			span = 1
		}
		sum += math.Abs(a[j]-b[j]) / span
	}
	return sum / float64(d)
}

// ManifoldDistance measures how far plan entries sit from the training-data
// manifold: for each entry, the mean Euclidean distance to its k nearest
// training rows, averaged across entries. Zero for an empty plan set.
func ManifoldDistance(plans Plans, train [][]float64, k int) float64 {
	if len(plans) == 0 || len(train) == 0 {
		return 0
	}
	if k > len(train) {
		k = len(train)
	}
	perEntry := make([]float64, len(plans))
	dists := make([]float64, len(train))
	for i, plan := range plans {
		for j, row := range train {
			dists[j] = LpDist(plan, row, 2)
		}
		sort.Float64s(dists)
		sum := 0.0
		for _, d := range dists[:k] {
			sum += d
		}
		perEntry[i] = sum / float64(k)
	}
	return stat.Mean(perEntry, nil)
}

// dppRidge keeps the similarity kernel away from singularity so the
// determinant is defined even for near-duplicate entries.
const dppRidge = 1e-8

// DPP is the determinantal diversity score: the determinant of the RBF
// similarity kernel over plan entries. Mutually distant entries drive the
// determinant toward 1, near-duplicates toward 0. Degenerate cases are
// defined, never NaN: 0 for an empty plan set, 1+ridge for a single entry.
func DPP(plans Plans) float64 {
	n := len(plans)
	if n == 0 {
		return 0
	}
	kernel := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d := LpDist(plans[i], plans[j], 2)
			sim := math.Exp(-d * d)
			if i == j {
				sim += dppRidge
			}
			kernel.SetSym(i, j, sim)
		}
	}
	return mat.Det(kernel)
}

// Evaluate runs the full metric suite for one instance's plan set and
// combines it with the strategy-reported feasibility flag.
func Evaluate(clf Classifier, x []float64, plans Plans, p *Params, feasible bool) EvaluationResult {
	return EvaluationResult{
		Valid:        Validity(clf, plans),
		Cost:         Proximity(x, plans, 2),
		Diversity:    Diversity(plans, p.Schema),
		ManifoldDist: ManifoldDistance(plans, p.TrainData, p.K),
		DPP:          DPP(plans),
		Feasible:     feasible,
	}
}

// MeanMetric reduces one metric across a result slice. Booleans reduce to
// the fraction of true values.
func MeanMetric(results []EvaluationResult, metric string) float64 {
	if len(results) == 0 {
		return math.NaN()
	}
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.Metric(metric)
	}
	return stat.Mean(values, nil)
}
