package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicksRejectsInvalid(t *testing.T) {
	_, err := NewTicks(0, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidTicks)

	_, err = NewTicks(1, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidTicks)

	_, err = NewTicks(1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidTicks)
}

func TestTicksGrid(t *testing.T) {
	ticks, err := NewTicks(2, 0.5, 4)
	require.NoError(t, err)

	assert.Equal(t, 5, ticks.KernelCount())
	assert.InDelta(t, 1.0, ticks.KernelPoint(2), 1e-9)
	assert.InDelta(t, 0.125, ticks.IntegralStep(), 1e-9)
	assert.Equal(t, 4, ticks.IntegralCount())
}

// TestConvolveSingleRegenerationIsIdentity checks that with a single
// regeneration and no global renewals (G all zero), P reduces to L
// (spec.md §4.5's Markov Renewal Equation degenerates to P = L when
// dG == 0 everywhere).
func TestConvolveSingleRegenerationIsIdentity(t *testing.T) {
	ticks, err := NewTicks(1, 0.5, 2)
	require.NoError(t, err)

	k := &Kernel{Ticks: ticks, Regens: []string{"r0"}, Markings: []string{"m0", "m1"}}
	k.ensureSize()
	for t := range k.L {
		k.L[t][0][0] = 0.1 * float64(t+1)
		k.L[t][0][1] = 0.05 * float64(t+1)
	}

	p := Convolve(k)
	for tick := range k.L {
		got, ok := StateProbability(p, tick, 0, 0)
		require.True(t, ok)
		assert.InDelta(t, k.L[tick][0][0], got, 1e-12)

		got1, ok := StateProbability(p, tick, 0, 1)
		require.True(t, ok)
		assert.InDelta(t, k.L[tick][0][1], got1, 1e-12)
	}
}

// TestConvolveTwoRegenerationPropagates checks that a global renewal from
// regeneration 0 into regeneration 1 at tick 1 carries regeneration 1's
// local mass forward into P for regeneration 0 at later ticks.
func TestConvolveTwoRegenerationPropagates(t *testing.T) {
	ticks, err := NewTicks(2, 1, 1)
	require.NoError(t, err)

	k := &Kernel{Ticks: ticks, Regens: []string{"r0", "r1"}, Markings: []string{"m0"}}
	k.ensureSize()

	// Regeneration 0 never directly occupies m0; it renews entirely into
	// regeneration 1 by tick 1, with no further renewals after that.
	k.G[1][0][1] = 1.0
	k.G[2][0][1] = 1.0

	// Regeneration 1 occupies m0 with mass 0.2 at every tick from its own
	// local entry.
	for tk := 0; tk < len(k.L); tk++ {
		k.L[tk][1][0] = 0.2
	}

	p := Convolve(k)

	// At tick 0, regeneration 0 has not yet renewed: P[0][0][0] == L[0][0][0] == 0.
	v0, ok := StateProbability(p, 0, 0, 0)
	require.True(t, ok)
	assert.InDelta(t, 0.0, v0, 1e-12)

	// At tick 2, regeneration 0 has renewed into regeneration 1 by tick 1
	// (dG[1] == 1.0) and regeneration 1 contributes its local mass at the
	// remaining one tick of elapsed time: P[2][0][0] == L[2][0][0] + 1.0*P[1][1][0].
	v2, ok := StateProbability(p, 2, 0, 0)
	require.True(t, ok)
	p1, ok := StateProbability(p, 1, 1, 0)
	require.True(t, ok)
	assert.InDelta(t, k.L[2][0][0]+1.0*p1, v2, 1e-12)
}

func TestRowMassAndNormalize(t *testing.T) {
	ticks, err := NewTicks(1, 1, 1)
	require.NoError(t, err)

	k := &Kernel{Ticks: ticks, Regens: []string{"r0"}, Markings: []string{"m0"}}
	k.ensureSize()
	k.L[1][0][0] = 0.3
	k.G[1][0][0] = 0.3

	assert.InDelta(t, 0.6, k.RowMass(1, 0), 1e-12)

	k.Normalize()
	assert.InDelta(t, 1.0, k.RowMass(1, 0), 1e-9)
}

func TestStateProbabilityOutOfRange(t *testing.T) {
	p := [][][]float64{{{0.5}}}
	_, ok := StateProbability(p, 5, 0, 0)
	assert.False(t, ok)
	_, ok = StateProbability(p, 0, 5, 0)
	assert.False(t, ok)
	_, ok = StateProbability(p, 0, 0, 5)
	assert.False(t, ok)
}
