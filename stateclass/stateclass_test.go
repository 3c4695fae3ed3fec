package stateclass_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/expoly"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/stateclass"
	"github.com/katalvlaran/stpn/term"
	"github.com/katalvlaran/stpn/zone"
)

// fakeMarking is a minimal token-count marking over a fixed place set, used
// only to exercise stateclass.Successor's wiring.
type fakeMarking map[string]int

func (m fakeMarking) Get(place string) int { return m[place] }

func (m fakeMarking) Equal(other petri.Marking) bool {
	o, ok := other.(fakeMarking)
	if !ok || len(o) != len(m) {
		return false
	}
	for k, v := range m {
		if o[k] != v {
			return false
		}
	}

	return true
}

func (m fakeMarking) Key() string {
	return fmt.Sprintf("%v", map[string]int(m))
}

// fakeNet is a two-transition race: "a" and "b" are both exponential until
// "a" fires, at which point "c" becomes newly enabled.
type fakeNet struct{}

const (
	transA petri.TransitionID = "a"
	transB petri.TransitionID = "b"
	transC petri.TransitionID = "c"

	varA term.Variable = "x_a"
	varB term.Variable = "x_b"
	varC term.Variable = "x_c"
)

func (fakeNet) Enabled(m petri.Marking) []petri.TransitionID {
	fm := m.(fakeMarking)
	var out []petri.TransitionID
	if fm["p0"] > 0 {
		out = append(out, transA, transB)
	}
	if fm["p1"] > 0 {
		out = append(out, transC)
	}

	return out
}

func (fakeNet) Fire(m petri.Marking, t petri.TransitionID) (petri.Marking, error) {
	fm := m.(fakeMarking)
	next := fakeMarking{}
	for k, v := range fm {
		next[k] = v
	}
	switch t {
	case transA:
		next["p0"] = 0
		next["p1"] = 1
	case transB:
		next["p0"] = 0
	case transC:
		next["p1"] = 0
	}

	return next, nil
}

func (fakeNet) Feature(m petri.Marking, t petri.TransitionID) (petri.StochasticTransitionFeature, error) {
	switch t {
	case transA:
		return petri.StochasticTransitionFeature{Kind: petri.DensityEXP, Rate: 1}, nil
	case transB:
		return petri.StochasticTransitionFeature{Kind: petri.DensityEXP, Rate: 2}, nil
	case transC:
		return petri.StochasticTransitionFeature{Kind: petri.DensityEXP, Rate: 3}, nil
	}

	return petri.StochasticTransitionFeature{}, fmt.Errorf("unknown transition %s", t)
}

func (fakeNet) Variable(t petri.TransitionID) term.Variable {
	switch t {
	case transA:
		return varA
	case transB:
		return varB
	case transC:
		return varC
	}

	return ""
}

// boxState builds a State over varA, varB with a uniform density on
// [0,1]x[0,1], standing in for the true exponential joint density: the box
// shape is exactly what the firing-zone construction produces, so it
// exercises eligibility, shift, and marginalization without needing a full
// bivariate exponential expolynomial fixture.
func boxState() stateclass.State {
	z := zone.New(varA, varB)
	_ = z.ImposeBound(varA, term.Ground, decimal.NewFromInt(1))
	_ = z.ImposeBound(varB, term.Ground, decimal.NewFromInt(1))
	_ = z.ImposeBound(term.Ground, varA, decimal.Zero())
	_ = z.ImposeBound(term.Ground, varB, decimal.Zero())
	_ = z.Normalize()

	pf := density.New(density.Piece{Zone: z, Fn: expoly.ConstantValue(decimal.NewFromInt(1))})

	return stateclass.State{
		Petri: stateclass.PetriFeature{
			Marking: fakeMarking{"p0": 1},
			Enabled: []petri.TransitionID{transA, transB},
		},
		Stochastic: &stateclass.StochasticFeature{
			Density:  pf,
			ExpRates: map[petri.TransitionID]float64{transA: 1, transB: 2},
		},
	}
}

func newPDFFor(id petri.TransitionID) (density.PartitionedFunction, error) {
	v := fakeNet{}.Variable(id)
	z := zone.New(v)
	if err := z.ImposeBound(v, term.Ground, decimal.NewFromInt(5)); err != nil {
		return density.PartitionedFunction{}, err
	}
	if err := z.ImposeBound(term.Ground, v, decimal.Zero()); err != nil {
		return density.PartitionedFunction{}, err
	}
	if err := z.Normalize(); err != nil {
		return density.PartitionedFunction{}, err
	}

	return density.New(density.Piece{Zone: z, Fn: expoly.ConstantValue(decimal.NewFromInt(1))}), nil
}

func TestSuccessorFiresEligibleTransition(t *testing.T) {
	net := fakeNet{}
	s := boxState()

	child, prob, err := stateclass.Successor(net, s, transA, newPDFFor)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, decimal.Compare(prob, decimal.Zero()), 0)
	assert.Equal(t, fakeMarking{"p0": 0, "p1": 1}, child.Petri.Marking)
	assert.Contains(t, child.Petri.Enabled, transC)
	assert.NotContains(t, child.Petri.Enabled, transA)
}

func TestSuccessorDetectsRegeneration(t *testing.T) {
	net := fakeNet{}
	s := boxState()

	child, _, err := stateclass.Successor(net, s, transA, newPDFFor)
	require.NoError(t, err)
	// transC is newly enabled and EXP, so the child has no non-EXP enabled
	// transitions and is trivially a regeneration point.
	assert.NotNil(t, child.Regen)
}

func TestKeyIsStableAndDiscriminating(t *testing.T) {
	s1 := boxState()
	s2 := boxState()
	assert.Equal(t, s1.Key(), s2.Key())

	s3 := boxState()
	s3.Petri.Marking = fakeMarking{"p0": 2}
	assert.NotEqual(t, s1.Key(), s3.Key())
}

func TestSuccessionGraphInternsByKey(t *testing.T) {
	g := stateclass.NewSuccessionGraph()
	id1 := g.Intern(boxState())
	id2 := g.Intern(boxState())
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, g.Len())

	net := fakeNet{}
	child, prob, err := stateclass.Successor(net, boxState(), transA, newPDFFor)
	require.NoError(t, err)
	id3 := g.Intern(child)
	require.NoError(t, g.AddEdge(id1, id3, transA, prob))
	assert.Len(t, g.Successors(id1), 1)
	assert.Equal(t, transA, g.Successors(id1)[0].Transition)
}

func TestImmediateBranchProbabilitiesNormalizesWeights(t *testing.T) {
	net := immNet{}
	s := stateclass.State{
		Petri: stateclass.PetriFeature{
			Marking: fakeMarking{"p0": 1},
			Enabled: []petri.TransitionID{"i1", "i2"},
		},
		Stochastic: &stateclass.StochasticFeature{IsVanishing: true},
	}

	probs, err := stateclass.ImmediateBranchProbabilities(net, s)
	require.NoError(t, err)
	total := decimal.Zero()
	for _, p := range probs {
		total, err = decimal.Add(total, p)
		require.NoError(t, err)
	}
	assert.True(t, decimal.Equal(total, decimal.NewFromInt(1)))
}

func TestImmediateBranchProbabilitiesTimeLock(t *testing.T) {
	net := zeroWeightNet{}
	s := stateclass.State{
		Petri:      stateclass.PetriFeature{Marking: fakeMarking{"p0": 1}, Enabled: []petri.TransitionID{"i1"}},
		Stochastic: &stateclass.StochasticFeature{IsVanishing: true},
	}

	_, err := stateclass.ImmediateBranchProbabilities(net, s)
	assert.ErrorIs(t, err, stateclass.ErrTimeLock)
}

// immNet enables two IMM transitions of unequal weight.
type immNet struct{ fakeNet }

func (immNet) Feature(m petri.Marking, t petri.TransitionID) (petri.StochasticTransitionFeature, error) {
	switch t {
	case "i1":
		return petri.StochasticTransitionFeature{Kind: petri.DensityIMM, Weight: 1}, nil
	case "i2":
		return petri.StochasticTransitionFeature{Kind: petri.DensityIMM, Weight: 3}, nil
	}

	return petri.StochasticTransitionFeature{}, fmt.Errorf("unknown transition %s", t)
}

// zeroWeightNet enables a single IMM transition with zero weight, forcing
// the time-lock branch.
type zeroWeightNet struct{ fakeNet }

func (zeroWeightNet) Feature(m petri.Marking, t petri.TransitionID) (petri.StochasticTransitionFeature, error) {
	return petri.StochasticTransitionFeature{Kind: petri.DensityIMM, Weight: 0}, nil
}
