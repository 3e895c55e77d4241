package sweep

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// NoSweptParam marks a strategy that has no hyperparameter under sweep.
// Its "grid" collapses to a single placeholder point, so the strategy still
// yields one curve point under the uniform protocol.
const NoSweptParam = "none"

// GridSpec describes one hyperparameter sweep grid: the inclusive range
// [Min, Max] stepped by Step, plus the value used when the parameter is not
// under sweep.
type GridSpec struct {
	Default float64 `yaml:"default"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Step    float64 `yaml:"step"`
}

// Validate rejects malformed grids before any job is scheduled.
func (g GridSpec) Validate(name string) error {
	if g.Step <= 0 {
		return fmt.Errorf("grid %q: step must be positive, got %g", name, g.Step)
	}
	if g.Max < g.Min {
		return fmt.Errorf("grid %q: max (%g) < min (%g)", name, g.Max, g.Min)
	}
	return nil
}

// Values expands the grid to its ascending value list, inclusive of Max.
// A small epsilon absorbs the floating-point drift of repeated addition so
// the endpoint is never dropped.
func (g GridSpec) Values() []float64 {
	n := int(math.Floor((g.Max-g.Min)/g.Step+1e-9)) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = g.Min + float64(i)*g.Step
	}
	return values
}

// Config is the experiment configuration, loaded from YAML. It is treated
// as immutable once validated: sweeps never mutate it in place, they derive
// per-value copies via WithOverride.
type Config struct {
	// K is the plan count / neighbor count handed to strategies and the
	// manifold-distance metric.
	K int `yaml:"k"`

	// MaxInstances caps the evaluated instance subset when no explicit
	// window is requested.
	MaxInstances int `yaml:"max_instances"`

	// NumSamples sizes synthetic dataset generation.
	NumSamples int `yaml:"num_samples"`

	// PerturbRadius is the per-dataset sampling radius for perturbation-
	// based strategies.
	PerturbRadius map[string]float64 `yaml:"perturb_radius"`

	// Grids holds the named sweep grids (min, max, step, default).
	Grids map[string]GridSpec `yaml:"params_to_vary"`

	// ParamToVary maps each strategy to the name of the hyperparameter it
	// sweeps, or NoSweptParam. Data, not control flow.
	ParamToVary map[string]string `yaml:"param_to_vary"`

	// Hyper holds each strategy's private hyperparameter sub-map.
	Hyper map[string]map[string]float64 `yaml:"strategy_params"`

	// Incompatible maps a classifier id to the strategy ids excluded for
	// it (e.g. gradient-based strategies on non-differentiable models).
	Incompatible map[string][]string `yaml:"incompatible"`

	// Directions maps metric names to "min", "max" or "neutral" for
	// Pareto extraction.
	Directions map[string]string `yaml:"directions"`
}

// DefaultConfig returns the stock experiment configuration.
func DefaultConfig() *Config {
	return &Config{
		K:            3,
		MaxInstances: 20,
		NumSamples:   1000,
		PerturbRadius: map[string]float64{
			"synthesis": 0.4,
		},
		Grids: map[string]GridSpec{
			"theta": {
				Default: 0.5,
				Min:     0.2,
				Max:     1.0,
				Step:    0.04,
			},
			"diversity_weight": {
				Default: 1.0,
				Min:     0.0,
				Max:     10.0,
				Step:    0.5,
			},
		},
		ParamToVary: map[string]string{
			"wachter":   NoSweptParam,
			"dice":      "diversity_weight",
			"frpd_quad": "theta",
		},
		Hyper: map[string]map[string]float64{
			"wachter": {
				"lambda":   0.5,
				"lr":       0.05,
				"max_iter": 500,
			},
			"dice": {
				"proximity_weight": 0.5,
				"diversity_weight": 1.0,
				"num_candidates":   200,
			},
			"frpd_quad": {
				"theta":  0.99,
				"kernel": 1.0,
			},
		},
		Incompatible: map[string][]string{
			"knn": {"wachter"},
		},
		Directions: map[string]string{
			MetricCost:      "min",
			MetricValidity:  "max",
			MetricDiversity: "neutral",
			MetricManifold:  "min",
			MetricDPP:       "min",
		},
	}
}

// LoadConfig reads a Config from a YAML file and validates it.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dump writes the configuration as YAML.
func (c *Config) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate surfaces configuration errors before any job is scheduled.
func (c *Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	if c.MaxInstances <= 0 {
		return fmt.Errorf("max_instances must be positive, got %d", c.MaxInstances)
	}
	for name, grid := range c.Grids {
		if err := grid.Validate(name); err != nil {
			return err
		}
	}
	for strategy, param := range c.ParamToVary {
		if param == NoSweptParam {
			continue
		}
		if _, ok := c.Grids[param]; !ok {
			return fmt.Errorf("strategy %q sweeps unknown grid %q", strategy, param)
		}
	}
	for metric, dir := range c.Directions {
		if !knownMetric(metric) {
			return fmt.Errorf("direction table names unknown metric %q", metric)
		}
		if _, err := ParseDirection(dir); err != nil {
			return fmt.Errorf("metric %q: %w", metric, err)
		}
	}
	return nil
}

// GridFor resolves the swept parameter name and value list for a strategy.
// Strategies with no swept parameter get a single-point grid.
func (c *Config) GridFor(strategy string) (string, []float64, error) {
	param, ok := c.ParamToVary[strategy]
	if !ok {
		return "", nil, fmt.Errorf("strategy %q has no param_to_vary entry", strategy)
	}
	if param == NoSweptParam {
		return NoSweptParam, []float64{0}, nil
	}
	grid, ok := c.Grids[param]
	if !ok {
		return "", nil, fmt.Errorf("strategy %q sweeps unknown grid %q", strategy, param)
	}
	return param, grid.Values(), nil
}

// HyperFor returns a copy of a strategy's hyperparameter sub-map. The copy
// keeps strategies from aliasing each other's (or the base config's) maps.
func (c *Config) HyperFor(strategy string) map[string]float64 {
	hyper := make(map[string]float64, len(c.Hyper[strategy]))
	for k, v := range c.Hyper[strategy] {
		hyper[k] = v
	}
	return hyper
}

// WithOverride returns a structural copy of the configuration with exactly
// one hyperparameter of one strategy overwritten. The receiver is never
// mutated, so concurrent jobs cannot alias each other's configuration.
func (c *Config) WithOverride(strategy, param string, value float64) *Config {
	clone := *c
	clone.Hyper = make(map[string]map[string]float64, len(c.Hyper))
	for name, sub := range c.Hyper {
		subCopy := make(map[string]float64, len(sub))
		for k, v := range sub {
			subCopy[k] = v
		}
		clone.Hyper[name] = subCopy
	}
	if _, ok := clone.Hyper[strategy]; !ok {
		clone.Hyper[strategy] = make(map[string]float64, 1)
	}
	clone.Hyper[strategy][param] = value
	return &clone
}

// Excluded reports whether a strategy is declared incompatible with a
// classifier.
func (c *Config) Excluded(classifier, strategy string) bool {
	for _, s := range c.Incompatible[classifier] {
		if s == strategy {
			return true
		}
	}
	return false
}

// DirectionTable resolves the configured metric-direction table, falling
// back to DefaultDirections for metrics the config leaves unset.
func (c *Config) DirectionTable() map[string]Direction {
	table := make(map[string]Direction, len(DefaultDirections))
	for metric, dir := range DefaultDirections {
		table[metric] = dir
	}
	for metric, raw := range c.Directions {
		dir, err := ParseDirection(raw)
		if err != nil {
			continue // Validate already rejected these
		}
		table[metric] = dir
	}
	return table
}
