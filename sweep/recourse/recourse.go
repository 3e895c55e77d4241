// Package recourse provides the reference recourse-generation strategies.
// Each implements sweep.Strategy: given one rejected instance, propose one
// or more alternative feature vectors the classifier would accept.
package recourse

import (
	"github.com/recourse-bench/recourse-bench/sweep"
)

// GradientClassifier is the extra capability gradient-based strategies need:
// a differentiable acceptance score. Classifiers without it are excluded
// from those strategies via the experiment config's incompatibility table.
type GradientClassifier interface {
	sweep.Classifier
	Score(x []float64) float64
	Gradient(x []float64) []float64
}

// RegisterAll registers every reference strategy under its canonical id.
func RegisterAll(r *sweep.Registry) {
	r.Register("wachter", Wachter{})
	r.Register("dice", Dice{})
	r.Register("frpd_quad", QuadGreedy{})
}

// hyper reads a hyperparameter with a default for absent keys.
func hyper(p *sweep.Params, key string, def float64) float64 {
	if v, ok := p.Hyper[key]; ok {
		return v
	}
	return def
}
