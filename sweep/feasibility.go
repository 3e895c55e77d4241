package sweep

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch signals feasibility vectors of unequal length: the
// instance subset is misaligned across strategies. This is an internal
// correctness bug and must never be silently truncated or padded.
var ErrLengthMismatch = errors.New("feasibility vectors have mismatched lengths")

// JoinFeasibility AND-reduces per-strategy feasibility vectors element-wise.
// The reduction is commutative and associative, so the result is independent
// of strategy iteration order. An empty input yields a nil vector.
func JoinFeasibility(vectors [][]bool) ([]bool, error) {
	if len(vectors) == 0 {
		return nil, nil
	}
	n := len(vectors[0])
	joint := make([]bool, n)
	copy(joint, vectors[0])
	for i, v := range vectors[1:] {
		if len(v) != n {
			return nil, fmt.Errorf("%w: vector 0 has %d entries, vector %d has %d",
				ErrLengthMismatch, n, i+1, len(v))
		}
		for j, ok := range v {
			joint[j] = joint[j] && ok
		}
	}
	return joint, nil
}
