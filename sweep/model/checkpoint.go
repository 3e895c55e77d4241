package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/recourse-bench/recourse-bench/sweep"
)

// Checkpoint is the on-disk form of one trained classifier. Exactly one of
// the model fields is set, selected by Kind.
type Checkpoint struct {
	Kind     string    `json:"kind"` // "logit" or "knn"
	Logistic *Logistic `json:"logistic,omitempty"`
	KNN      *KNN      `json:"knn,omitempty"`
}

// Classifier unwraps the checkpoint into the classifier it holds.
func (c *Checkpoint) Classifier() (sweep.Classifier, error) {
	switch c.Kind {
	case "logit":
		if c.Logistic == nil {
			return nil, fmt.Errorf("checkpoint kind %q has no logistic payload", c.Kind)
		}
		return c.Logistic, nil
	case "knn":
		if c.KNN == nil {
			return nil, fmt.Errorf("checkpoint kind %q has no knn payload", c.Kind)
		}
		return c.KNN, nil
	default:
		return nil, fmt.Errorf("unknown checkpoint kind %q", c.Kind)
	}
}

// Save writes a checkpoint as JSON, creating parent directories as needed.
func Save(path string, c *Checkpoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create checkpoint dir: %w", err)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", path, err)
	}
	logrus.Debugf("saved checkpoint %s", path)
	return nil
}

// Load reads a checkpoint written by Save.
func Load(path string) (*Checkpoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint %s: %w", path, err)
	}
	var c Checkpoint
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode checkpoint %s: %w", path, err)
	}
	return &c, nil
}

// Train fits the named classifier kind on a dataset's training split.
// Training is deterministic for a given seed.
func Train(kind string, ds *sweep.Dataset, k int, seed int64) (*Checkpoint, error) {
	switch kind {
	case "logit":
		m, err := TrainLogistic(ds.XTrain, ds.YTrain, 200, 0.1, seed)
		if err != nil {
			return nil, err
		}
		return &Checkpoint{Kind: kind, Logistic: m}, nil
	case "knn":
		m, err := TrainKNN(ds.XTrain, ds.YTrain, k)
		if err != nil {
			return nil, err
		}
		return &Checkpoint{Kind: kind, KNN: m}, nil
	default:
		return nil, fmt.Errorf("unknown classifier %q (known: logit, knn)", kind)
	}
}
