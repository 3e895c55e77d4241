package sweep

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ErrNoEntry signals a cache miss for a key that a reader required.
var ErrNoEntry = errors.New("no cache entry")

// EvaluationResult is the per-instance, per-sweep-value metric record.
type EvaluationResult struct {
	Valid        bool    `json:"valid"`
	Cost         float64 `json:"cost"`
	Diversity    float64 `json:"diversity"`
	ManifoldDist float64 `json:"manifold_dist"`
	DPP          float64 `json:"dpp"`
	Feasible     bool    `json:"feasible"`
}

// Metric returns one objective as a scalar; booleans map to 0/1 so they can
// be mean-reduced into rates.
func (r EvaluationResult) Metric(name string) float64 {
	switch name {
	case MetricCost:
		return r.Cost
	case MetricValidity:
		if r.Valid {
			return 1
		}
		return 0
	case MetricDiversity:
		return r.Diversity
	case MetricManifold:
		return r.ManifoldDist
	case MetricDPP:
		return r.DPP
	default:
		panic(fmt.Sprintf("unknown metric %q", name))
	}
}

// CacheEntry is the persisted result of one sweep job: the swept parameter,
// its ordered value list, and one EvaluationResult slice per value (aligned
// with the evaluated instance subset).
type CacheEntry struct {
	ParamName string               `json:"param_name"`
	Values    []float64            `json:"values"`
	Results   [][]EvaluationResult `json:"results"`
}

// FeasibilityVector extracts the per-instance feasibility flags for the
// i-th sweep value.
func (e *CacheEntry) FeasibilityVector(i int) []bool {
	vector := make([]bool, len(e.Results[i]))
	for j, r := range e.Results[i] {
		vector[j] = r.Feasible
	}
	return vector
}

// Store persists one JSON artifact per (classifier, dataset, strategy) key
// under a working directory. An entry for a key is either absent or
// complete: writes go to a temp file first and are installed with a rename,
// so partially-written entries are never observable. A rerun overwrites the
// whole entry; concurrent writers to the same key resolve last-writer-wins.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) a cache directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string {
	return s.dir
}

// Key builds the canonical cache key for a job triple.
func Key(classifier, dataset, strategy string) string {
	return fmt.Sprintf("%s_%s_%s", classifier, dataset, strategy)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Exists reports whether a complete entry is present for the key.
func (s *Store) Exists(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Put atomically replaces the entry for a key.
func (s *Store) Put(key string, entry *CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cache entry %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("install cache entry %s: %w", key, err)
	}
	logrus.Debugf("cached entry %s (%d values)", key, len(entry.Values))
	return nil
}

// Get loads the entry for a key. A missing entry returns ErrNoEntry.
func (s *Store) Get(key string) (*CacheEntry, error) {
	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoEntry, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return &entry, nil
}
