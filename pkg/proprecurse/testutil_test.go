package proprecurse

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/stretchr/testify/require"
)

// testGenParameters returns deterministic generation parameters. MaxSize is
// kept small so generated slices stay in the 0..8 range the recursion
// fixtures are calibrated for.
func testGenParameters(seed int64) *gopter.GenParameters {
	params := gopter.DefaultGenParameters()
	params.MaxSize = 8
	params.Rng = rand.New(rand.NewSource(seed))
	return params
}

// sampleValue draws a single value from g with deterministic parameters.
func sampleValue(t *testing.T, g gopter.Gen) interface{} {
	t.Helper()
	result := g(testGenParameters(1))
	value, ok := result.Retrieve()
	require.True(t, ok, "generator produced no value")
	return value
}
