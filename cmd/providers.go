package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/recourse-bench/recourse-bench/sweep"
	"github.com/recourse-bench/recourse-bench/sweep/dataset"
	"github.com/recourse-bench/recourse-bench/sweep/model"
)

// loadConfig resolves --config into a validated experiment config.
func loadConfig() (*sweep.Config, error) {
	if configPath == "" {
		return sweep.DefaultConfig(), nil
	}
	return sweep.LoadConfig(configPath)
}

// providers wires dataset and classifier resolution for the scheduler.
// Datasets: "synthesis" is generated in-process; any other id loads
// <workdir>/data/<id>.csv with a 0/1 "label" column. Classifiers: trained
// on demand and checkpointed under <workdir>/checkpoints so reruns reuse
// the exact same model.
func providers(cfg *sweep.Config) sweep.Providers {
	var mu sync.Mutex // serializes checkpoint train-and-save per key
	return sweep.Providers{
		Dataset: func(name string) (*sweep.Dataset, error) {
			if name == "synthesis" {
				return dataset.Synthesize(cfg.NumSamples, seed), nil
			}
			path := filepath.Join(workdir, "data", name+".csv")
			return dataset.FromCSV(name, path, "label", nil, seed)
		},
		Classifier: func(name string, ds *sweep.Dataset) (sweep.Classifier, error) {
			mu.Lock()
			defer mu.Unlock()
			path := filepath.Join(workdir, "checkpoints", fmt.Sprintf("%s_%s.json", name, ds.Name))
			if ckpt, err := model.Load(path); err == nil {
				return ckpt.Classifier()
			}
			ckpt, err := model.Train(name, ds, cfg.K, seed)
			if err != nil {
				return nil, err
			}
			if err := model.Save(path, ckpt); err != nil {
				return nil, err
			}
			return ckpt.Classifier()
		},
	}
}
