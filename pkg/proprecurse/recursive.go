package proprecurse

import (
	"fmt"
	"math"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// maxBranchProbability caps the chance of the recursive alternative at any
// layer so the terminal case always remains selectable.
const maxBranchProbability = 0.9

// recursive holds the ingredients of a depth-bounded generator: the
// terminal-case generator, a one-step recursion function, and the sizing
// parameters. It is immutable after construction; the recursion function
// must be pure given its input, as it is invoked once per layer on every
// generation call.
type recursive struct {
	base               gopter.Gen
	recurse            func(gopter.Gen) gopter.Gen
	depth              uint
	desiredSize        uint
	expectedBranchSize uint
}

// String implements fmt.Stringer for diagnostics.
func (r *recursive) String() string {
	return fmt.Sprintf("Recursive(depth=%d, desiredSize=%d, expectedBranchSize=%d)",
		r.depth, r.desiredSize, r.expectedBranchSize)
}

// sample is the gopter.Gen for r. Each call unrolls the recursion into an
// explicit chain of approximations, deepest layer first: the approximation
// at layer i is a weighted choice between the approximation at layer i+1
// (the already-bounded, shallower alternative) and one recursion step
// applied to it. After depth layers the chain is sampled once. No call
// recursion happens at any point, so the depth bound holds regardless of
// the shape of the recursion function.
func (r *recursive) sample(params *gopter.GenParameters) *gopter.GenResult {
	probs := branchProbabilities(r.depth, r.desiredSize, r.expectedBranchSize)

	approx := r.base
	for i := len(probs) - 1; i >= 0; i-- {
		p := probs[i]
		if p <= 0 {
			// The recursive alternative would never be selected;
			// keep the shallower approximation as this layer.
			continue
		}
		branchWeight, leafWeight := floatToWeights(p)
		approx = gen.Weighted([]gen.WeightedGen{
			{Weight: leafWeight, Gen: approx},
			{Weight: branchWeight, Gen: r.recurse(approx)},
		})
	}

	return approx(params)
}

// branchProbabilities returns the per-layer probability of selecting the
// recursive alternative, outermost layer first, each already clamped to
// [0, maxBranchProbability].
//
// The accumulator k starts at 2*expectedBranchSize and is multiplied by the
// same factor per layer, saturating instead of wrapping so deep layers
// drive the probability toward zero rather than into undefined territory.
// k == 0 (expectedBranchSize == 0) maps to probability zero outright;
// dividing by it would read as certainty instead of the documented
// degrade-to-terminal behavior.
func branchProbabilities(depth, desiredSize, expectedBranchSize uint) []float64 {
	probs := make([]float64, 0, depth)
	factor := saturatingMul(uint64(expectedBranchSize), 2)
	k := factor
	for i := uint(0); i < depth; i++ {
		p := 0.0
		if k > 0 {
			p = math.Min(float64(desiredSize)/float64(k), maxBranchProbability)
		}
		probs = append(probs, p)
		k = saturatingMul(k, factor)
	}
	return probs
}

// saturatingMul multiplies a and b, sticking at the maximum uint64 on
// overflow instead of wrapping.
func saturatingMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}

// MutuallyRecursive turns base, the generator for T's terminal case, into a
// generator that also produces T's recursive cases, with recursion depth
// bounded by depth and expected size calibrated by desiredSize and
// expectedBranchSize (see the package documentation for the sizing model).
//
// branch performs one recursion step: it builds the generator for T's
// recursive case, requesting the generators it depends on from the set it
// is given. Before each invocation, that set is pre-populated with a
// strictly shallower approximation of T itself, so Get[T] inside branch
// resolves immediately instead of re-entering T's builder. Requests for
// other types go through ordinary memoization against a snapshot of set
// taken when MutuallyRecursive is called.
//
// The sizing parameters apply only to values of T; types generated inside
// branch are bounded by their own combinator calls. A nil set is treated
// as empty, for generators that are recursive but not mutually so.
func MutuallyRecursive[T any](base gopter.Gen, depth, desiredSize, expectedBranchSize uint, set *StrategySet, branch Builder) gopter.Gen {
	if set == nil {
		set = NewStrategySet()
	}
	key := typeKey[T]()
	snapshot := set.Clone()

	r := &recursive{
		base: base,
		recurse: func(nested gopter.Gen) gopter.Gen {
			bridged := snapshot.Clone()
			bridged.insert(key, nested)
			return branch(bridged)
		},
		depth:              depth,
		desiredSize:        desiredSize,
		expectedBranchSize: expectedBranchSize,
	}
	return r.sample
}
