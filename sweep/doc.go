// Package sweep orchestrates comparative hyperparameter-sweep experiments
// over recourse-generation strategies.
//
// # Reading Guide
//
// Start with these three files to understand the experiment kernel:
//   - runner.go: one (classifier, dataset, strategy) job — grid iteration,
//     per-instance evaluation, cache persistence
//   - scheduler.go: job enumeration, rerun policy, and parallel dispatch
//   - metrics.go: the objective functions (validity, cost, diversity,
//     manifold distance, determinantal diversity)
//
// # Architecture
//
// The sweep package defines interfaces and the evaluation protocol;
// implementations live in sub-packages:
//   - sweep/recourse/: reference recourse strategies
//   - sweep/model/: classifiers and checkpoint persistence
//   - sweep/dataset/: dataset synthesis, CSV loading, splits
//   - sweep/plot/: sweep-curve and Pareto-frontier rendering
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - Strategy: propose recourse plans for one rejected instance
//   - Classifier: predict the class label for one feature vector
//
// Adding a strategy means registering it on a Registry; dispatch never
// changes.
package sweep
