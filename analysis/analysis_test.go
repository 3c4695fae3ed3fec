package analysis_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stpn/analysis"
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/expoly"
	"github.com/katalvlaran/stpn/onegen"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/reward"
	"github.com/katalvlaran/stpn/stateclass"
	"github.com/katalvlaran/stpn/term"
	"github.com/katalvlaran/stpn/zone"
)

// sampleMarking is a minimal token-count marking shared by every fixture
// net in this file, mirroring stateclass_test.go's fakeMarking.
type sampleMarking map[string]int

func (m sampleMarking) Get(p string) int { return m[p] }

func (m sampleMarking) Equal(other petri.Marking) bool {
	o, ok := other.(sampleMarking)
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

func (m sampleMarking) Key() string { return fmt.Sprintf("%v", map[string]int(m)) }

func boxPF(v term.Variable) density.PartitionedFunction {
	z := zone.New(v)
	_ = z.ImposeBound(v, term.Ground, decimal.NewFromInt(1))
	_ = z.ImposeBound(term.Ground, v, decimal.Zero())
	_ = z.Normalize()

	return density.New(density.Piece{Zone: z, Fn: expoly.ConstantValue(decimal.NewFromInt(1))})
}

// detPointMass is a DET transition's firing density: all mass pinned to a
// single point at AGE = delay.
func detPointMass(delay float64) density.PartitionedFunction {
	d := decimal.NewFromFloat(delay)
	z := zone.New(term.Age)
	_ = z.ImposeBound(term.Age, term.Ground, d)
	_ = z.ImposeBound(term.Ground, term.Age, decimal.Negate(d))
	_ = z.Normalize()

	return density.New(density.Piece{Zone: z, Fn: expoly.ConstantValue(decimal.NewFromInt(1))})
}

const (
	tExp petri.TransitionID = "a"
	vExp term.Variable      = "x_a"
)

// singleExpNet is a single EXP(1) transition p0 -> p1, p1 absorbing.
type singleExpNet struct{}

func (singleExpNet) Enabled(m petri.Marking) []petri.TransitionID {
	if m.(sampleMarking)["p0"] > 0 {
		return []petri.TransitionID{tExp}
	}

	return nil
}

func (singleExpNet) Fire(_ petri.Marking, t petri.TransitionID) (petri.Marking, error) {
	if t == tExp {
		return sampleMarking{"p1": 1}, nil
	}

	return nil, fmt.Errorf("unknown transition %s", t)
}

func (singleExpNet) Feature(petri.Marking, petri.TransitionID) (petri.StochasticTransitionFeature, error) {
	return petri.StochasticTransitionFeature{Kind: petri.DensityEXP, Rate: 1}, nil
}

func (singleExpNet) Variable(petri.TransitionID) term.Variable { return vExp }

func singleExpNewPDF(t petri.TransitionID) (density.PartitionedFunction, error) {
	return boxPF(singleExpNet{}.Variable(t)), nil
}

// TestAnalyzeGeneralSingleExpTransition is a smoke test of the general
// regenerative-kernel path (analyzeGeneral) end to end: Analyze,
// stateclass.Initial, kernel.BuildKernel and kernel.Convolve are all
// exercised together. Only the tick-0 boundary is asserted exactly
// (Convolve's P[0] reduces to L[0], which in turn reduces to the
// reaching-probability-weighted survivor at elapsed time 0 — independent
// of the entering-time density); every other tick is checked only for the
// probability-conservation invariants that must hold regardless of the
// kernel's discretization error.
func TestAnalyzeGeneralSingleExpTransition(t *testing.T) {
	net := singleExpNet{}
	initialMarking := sampleMarking{"p0": 1}

	ts, err := analysis.NewTransientAnalysis(
		analysis.WithTimeBound(3),
		analysis.WithTimeStep(1),
		analysis.WithTickRatio(10),
	).Analyze(net, initialMarking, singleExpNewPDF)
	require.NoError(t, err)

	require.Equal(t, 4, ts.Samples)
	require.Contains(t, ts.ColumnStates, sampleMarking{"p0": 1}.Key())
	require.Contains(t, ts.ColumnStates, sampleMarking{"p1": 1}.Key())

	p0Col := colIndex(t, ts.ColumnStates, sampleMarking{"p0": 1}.Key())
	p1Col := colIndex(t, ts.ColumnStates, sampleMarking{"p1": 1}.Key())

	assert.InDelta(t, 1.0, ts.Solution[0][0][p0Col], 1e-9)
	assert.InDelta(t, 0.0, ts.Solution[0][0][p1Col], 1e-9)

	for tick := 0; tick < ts.Samples; tick++ {
		for i := range ts.RowStates {
			sum := 0.0
			for j := range ts.ColumnStates {
				v := ts.Solution[tick][i][j]
				assert.GreaterOrEqualf(t, v, -1e-9, "tick %d row %d col %d", tick, i, j)
				assert.LessOrEqualf(t, v, 1+1e-9, "tick %d row %d col %d", tick, i, j)
				sum += v
			}
			assert.LessOrEqualf(t, sum, 1+1e-9, "tick %d row %d sum", tick, i)
		}
	}
}

func colIndex(t *testing.T, cols []string, key string) int {
	t.Helper()
	for i, c := range cols {
		if c == key {
			return i
		}
	}
	t.Fatalf("column %q not found in %v", key, cols)

	return -1
}

// raceMarking/raceNet/transGen mirror onegen's own race fixture (package
// onegen_test's identifiers are unexported and not reusable here).
type raceMarking map[string]int

func (m raceMarking) Get(p string) int { return m[p] }

func (m raceMarking) Equal(other petri.Marking) bool {
	o, ok := other.(raceMarking)
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

func (m raceMarking) Key() string { return fmt.Sprintf("%v", map[string]int(m)) }

const (
	raceExp petri.TransitionID = "a"
	raceGen petri.TransitionID = "gen"

	raceVarExp term.Variable = "x_a"
	raceVarGen term.Variable = "x_gen"
)

// raceNet is an EXP(1) transition racing a DET(2) "general" transition,
// each leading to its own terminal place (spec.md §9 S1/S6).
type raceNet struct{}

func (raceNet) Enabled(m petri.Marking) []petri.TransitionID {
	if m.(raceMarking)["p0"] > 0 {
		return []petri.TransitionID{raceExp, raceGen}
	}

	return nil
}

func (raceNet) Fire(_ petri.Marking, t petri.TransitionID) (petri.Marking, error) {
	switch t {
	case raceExp:
		return raceMarking{"p1": 1}, nil
	case raceGen:
		return raceMarking{"p2": 1}, nil
	}

	return nil, fmt.Errorf("unknown transition %s", t)
}

func (raceNet) Feature(_ petri.Marking, t petri.TransitionID) (petri.StochasticTransitionFeature, error) {
	switch t {
	case raceExp:
		return petri.StochasticTransitionFeature{Kind: petri.DensityEXP, Rate: 1}, nil
	case raceGen:
		return petri.StochasticTransitionFeature{Kind: petri.DensityDET, Delay: 2}, nil
	}

	return petri.StochasticTransitionFeature{}, fmt.Errorf("unknown transition %s", t)
}

func (raceNet) Variable(t petri.TransitionID) term.Variable {
	if t == raceExp {
		return raceVarExp
	}

	return raceVarGen
}

func raceNewPDF(t petri.TransitionID) (density.PartitionedFunction, error) {
	if t == raceGen {
		return detPointMass(2), nil
	}

	return boxPF(raceVarExp), nil
}

// TestAnalyzeOneGenDETRaceMatchesClosedForm is S1/S6 of spec.md §9: the
// OneGen fast path's synthetic two-regeneration kernel telescopes under
// kernel.Convolve to an exact closed form (unlike the general path, the
// OneGen path never routes through the regeneration-root Dirac quadrature
// of kernel/sample.go's convolveAtTime, so its output is checked exactly
// rather than by loose bounds): P[t][root][exited] = 1 - survivor(t), and
// P[t][root][s] = occupancy(t)[s] * survivor(t) for every embedded EXP
// state s.
func TestAnalyzeOneGenDETRaceMatchesClosedForm(t *testing.T) {
	net := raceNet{}
	marking := raceMarking{"p0": 1}

	ts, err := analysis.NewTransientAnalysis(
		analysis.WithOneGenPath(),
		analysis.WithTimeBound(4),
		analysis.WithTimeStep(0.5),
		analysis.WithTickRatio(20),
	).Analyze(net, marking, raceNewPDF)
	require.NoError(t, err)
	require.Equal(t, "exited", ts.ColumnStates[len(ts.ColumnStates)-1])

	initial, err := stateclass.Initial(net, marking, raceNewPDF)
	require.NoError(t, err)
	sub, err := onegen.BuildSubordinatedCTMC(net, initial, raceGen, raceNewPDF)
	require.NoError(t, err)
	ct, err := onegen.NewCTMCTransient(sub)
	require.NoError(t, err)

	pi0 := make([]float64, len(sub.States))
	pi0[sub.Initial] = 1
	exitedCol := len(ts.ColumnStates) - 1

	for tick := 0; tick < ts.Samples; tick++ {
		tm := float64(tick) * ts.TimeStep
		occ, err := ct.Occupancy(pi0, tm, 1e-9)
		require.NoError(t, err)
		surv, err := sub.GeneralSurvivor(tm)
		require.NoError(t, err)

		assert.InDeltaf(t, 1-surv, ts.Solution[tick][0][exitedCol], 1e-6, "tick %d root-exited", tick)
		for s, v := range occ {
			assert.InDeltaf(t, v*surv, ts.Solution[tick][0][s], 1e-6, "tick %d root-state %d", tick, s)
		}
		assert.InDeltaf(t, 1.0, ts.Solution[tick][1][exitedCol], 1e-9, "tick %d exited-regen exited", tick)
		for s := range occ {
			assert.InDeltaf(t, 0.0, ts.Solution[tick][1][s], 1e-9, "tick %d exited-regen state %d", tick, s)
		}
	}
}

const (
	cycleA petri.TransitionID = "a"
	cycleB petri.TransitionID = "b"

	cycleVarA term.Variable = "x_a"
	cycleVarB term.Variable = "x_b"
)

// cycleNet is a two-state EXP cycle p0 <-> p1, used to exercise
// NewSteadyStateAnalysis end to end.
type cycleNet struct{}

func (cycleNet) Enabled(m petri.Marking) []petri.TransitionID {
	switch {
	case m.(raceMarking)["p0"] > 0:
		return []petri.TransitionID{cycleA}
	case m.(raceMarking)["p1"] > 0:
		return []petri.TransitionID{cycleB}
	default:
		return nil
	}
}

func (cycleNet) Fire(_ petri.Marking, t petri.TransitionID) (petri.Marking, error) {
	switch t {
	case cycleA:
		return raceMarking{"p1": 1}, nil
	case cycleB:
		return raceMarking{"p0": 1}, nil
	}

	return nil, fmt.Errorf("unknown transition %s", t)
}

func (cycleNet) Feature(_ petri.Marking, t petri.TransitionID) (petri.StochasticTransitionFeature, error) {
	switch t {
	case cycleA:
		return petri.StochasticTransitionFeature{Kind: petri.DensityEXP, Rate: 1}, nil
	case cycleB:
		return petri.StochasticTransitionFeature{Kind: petri.DensityEXP, Rate: 2}, nil
	}

	return petri.StochasticTransitionFeature{}, fmt.Errorf("unknown transition %s", t)
}

func (cycleNet) Variable(t petri.TransitionID) term.Variable {
	if t == cycleA {
		return cycleVarA
	}

	return cycleVarB
}

func cycleNewPDF(t petri.TransitionID) (density.PartitionedFunction, error) {
	if t == cycleA {
		return boxPF(cycleVarA), nil
	}

	return boxPF(cycleVarB), nil
}

// TestNewSteadyStateAnalysisProbabilitiesSumToOne exercises
// NewSteadyStateAnalysis end to end. The steady-state probabilities are
// normalized by construction (numer[j] sums to denom across j), so Σ
// Probability == 1 is an exact invariant independent of any
// discretization error in the underlying kernel; individual marking
// probabilities are checked only for being well-formed.
func TestNewSteadyStateAnalysisProbabilitiesSumToOne(t *testing.T) {
	sol, err := analysis.NewSteadyStateAnalysis(
		analysis.WithTimeBound(20),
		analysis.WithTimeStep(1),
		analysis.WithTickRatio(10),
	).Analyze(cycleNet{}, raceMarking{"p0": 1}, cycleNewPDF)
	require.NoError(t, err)

	require.Equal(t, len(sol.MarkingStates), len(sol.Probability))
	total := 0.0
	for _, p := range sol.Probability {
		assert.GreaterOrEqual(t, p, -1e-9)
		assert.LessOrEqual(t, p, 1+1e-9)
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-6)

	_, ok := sol.ProbabilityOf(raceMarking{"p0": 1}.Key())
	assert.True(t, ok)
	_, ok = sol.ProbabilityOf(raceMarking{"p1": 1}.Key())
	assert.True(t, ok)
}

// TestFromArrayAndComputeIntegralSolution uses an integer-valued fixture
// so the trapezoidal running integral is exact in floating point,
// matching the spec's fromArray/computeIntegralSolution helpers.
func TestFromArrayAndComputeIntegralSolution(t *testing.T) {
	probs := [][]float64{{0}, {2}, {4}}
	statePos := map[string]int{"only": 0}

	ts, err := analysis.FromArray(probs, 1, statePos, "root")
	require.NoError(t, err)
	assert.Equal(t, 3, ts.Samples)
	assert.Equal(t, []string{"root"}, ts.RowStates)
	assert.Equal(t, []string{"only"}, ts.ColumnStates)
	assert.Equal(t, 2.0, ts.TimeBound)

	integral := ts.ComputeIntegralSolution()
	assert.Equal(t, 0.0, integral[0][0][0])
	assert.Equal(t, 1.0, integral[1][0][0])
	assert.Equal(t, 4.0, integral[2][0][0])
}

func TestFromArrayRejectsEmptyInput(t *testing.T) {
	_, err := analysis.FromArray(nil, 1, map[string]int{}, "root")
	assert.ErrorIs(t, err, analysis.ErrNoInitialState)
}

func TestFromArrayRejectsOutOfRangeStatePos(t *testing.T) {
	_, err := analysis.FromArray([][]float64{{1}}, 1, map[string]int{"only": 5}, "root")
	assert.ErrorIs(t, err, analysis.ErrUnknownState)
}

// TestComputeAggregateSolutionSumsMatchingColumns builds a TransientSolution
// directly (bypassing Analyze) to exercise ComputeAggregateSolution in
// isolation against a hand-picked marking condition.
func TestComputeAggregateSolutionSumsMatchingColumns(t *testing.T) {
	ts := &analysis.TransientSolution{
		Samples:      2,
		RowStates:    []string{"r0"},
		ColumnStates: []string{"atP0", "atP1"},
		Solution: [][][]float64{
			{{0.7, 0.3}},
			{{0.4, 0.6}},
		},
		StateMarkings: map[string]petri.Marking{
			"atP0": sampleMarking{"p0": 1},
			"atP1": sampleMarking{"p1": 1},
		},
	}

	agg, err := ts.ComputeAggregateSolution(map[string]reward.MarkingCondition{
		"inP0": func(m petri.Marking) bool { return m.Get("p0") > 0 },
	})
	require.NoError(t, err)
	require.Len(t, agg["inP0"], 2)
	assert.InDelta(t, 0.7, agg["inP0"][0], 1e-12)
	assert.InDelta(t, 0.4, agg["inP0"][1], 1e-12)
}

func TestComputeAggregateSolutionRequiresStateMarkings(t *testing.T) {
	ts := &analysis.TransientSolution{
		Samples:      1,
		RowStates:    []string{"r0"},
		ColumnStates: []string{"c"},
		Solution:     [][][]float64{{{1}}},
	}
	_, err := ts.ComputeAggregateSolution(map[string]reward.MarkingCondition{"x": reward.AlwaysFalse()})
	assert.ErrorIs(t, err, analysis.ErrUnknownState)
}

// TestComputeRewardsInstantaneousAndCumulative checks both the
// instantaneous expected-reward-rate reading and its trapezoidal
// cumulative integral against a hand-computed fixture.
func TestComputeRewardsInstantaneousAndCumulative(t *testing.T) {
	ts := &analysis.TransientSolution{
		TimeStep:     1,
		Samples:      3,
		RowStates:    []string{"r0"},
		ColumnStates: []string{"busy"},
		Solution:     [][][]float64{{{1}}, {{0.5}}, {{0.25}}},
	}
	rates := map[string]reward.Expression{
		"busy": reward.ExpressionFunc{
			Eval: func(decimal.ExactDecimal, petri.Marking) (float64, error) { return 2, nil },
		},
	}

	inst, err := ts.ComputeRewards(false, rates)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, inst[0], 1e-12)
	assert.InDelta(t, 1.0, inst[1], 1e-12)
	assert.InDelta(t, 0.5, inst[2], 1e-12)

	cum, err := ts.ComputeRewards(true, rates)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, cum[0], 1e-12)
	assert.InDelta(t, 1.5, cum[1], 1e-12)
	assert.InDelta(t, 2.25, cum[2], 1e-12)
}
