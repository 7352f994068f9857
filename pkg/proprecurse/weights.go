package proprecurse

import "math"

// weightPrecision is the fixed denominator for converting a branch
// probability into the integer weight pair gen.Weighted expects.
const weightPrecision = 1_000_000_000

// floatToWeights converts a probability into a (branch, leaf) weight pair
// whose ratio approximates p. The conversion is monotonic in p and exact at
// the endpoints: p <= 0 yields (0, weightPrecision) and p >= 1 yields
// (weightPrecision, 0). In between, both weights stay nonzero, so a very
// small branch probability still makes the recursive alternative reachable
// instead of rounding it away.
func floatToWeights(p float64) (branchWeight, leafWeight int) {
	switch {
	case math.IsNaN(p) || p <= 0:
		return 0, weightPrecision
	case p >= 1:
		return weightPrecision, 0
	}
	w := int(math.Round(p * weightPrecision))
	if w < 1 {
		w = 1
	}
	if w > weightPrecision-1 {
		w = weightPrecision - 1
	}
	return w, weightPrecision - w
}
