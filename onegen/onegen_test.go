package onegen_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/exmono"
	"github.com/katalvlaran/stpn/expoly"
	"github.com/katalvlaran/stpn/onegen"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/stateclass"
	"github.com/katalvlaran/stpn/term"
	"github.com/katalvlaran/stpn/zone"
)

// raceMarking is a minimal token-count marking, mirroring
// stateclass_test.go's fakeMarking.
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
	transExp petri.TransitionID = "a"
	transGen petri.TransitionID = "gen"

	varExp term.Variable = "x_a"
	varGen term.Variable = "x_gen"
)

// raceNet enables a single EXP(1) transition racing a single non-EXP
// "general" transition (DET or GEN, per generalKind), each firing to its
// own terminal place — the minimal fixture for S1/S2 of spec.md §9
// (DET+EXP and Uniform-vs-EXP races).
type raceNet struct{ generalKind petri.DensityKind }

func (raceNet) Enabled(m petri.Marking) []petri.TransitionID {
	fm := m.(raceMarking)
	if fm["p0"] > 0 {
		return []petri.TransitionID{transExp, transGen}
	}

	return nil
}

func (raceNet) Fire(m petri.Marking, t petri.TransitionID) (petri.Marking, error) {
	switch t {
	case transExp:
		return raceMarking{"p1": 1}, nil
	case transGen:
		return raceMarking{"p2": 1}, nil
	}

	return nil, fmt.Errorf("unknown transition %s", t)
}

func (n raceNet) Feature(_ petri.Marking, t petri.TransitionID) (petri.StochasticTransitionFeature, error) {
	switch t {
	case transExp:
		return petri.StochasticTransitionFeature{Kind: petri.DensityEXP, Rate: 1}, nil
	case transGen:
		return petri.StochasticTransitionFeature{Kind: n.generalKind}, nil
	}

	return petri.StochasticTransitionFeature{}, fmt.Errorf("unknown transition %s", t)
}

func (raceNet) Variable(t petri.TransitionID) term.Variable {
	if t == transExp {
		return varExp
	}

	return varGen
}

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

// uniformDensity is a constant-height density over AGE in [lo, hi].
func uniformDensity(lo, hi, height float64) density.PartitionedFunction {
	loD, hiD := decimal.NewFromFloat(lo), decimal.NewFromFloat(hi)
	z := zone.New(term.Age)
	_ = z.ImposeBound(term.Age, term.Ground, hiD)
	_ = z.ImposeBound(term.Ground, term.Age, decimal.Negate(loD))
	_ = z.Normalize()

	return density.New(density.Piece{Zone: z, Fn: expoly.ConstantValue(decimal.NewFromFloat(height))})
}

// newPDFRace routes the general transition to its given firing density and
// every EXP transition to a placeholder box density (EXP routing in
// onegen is driven entirely by the registered rate, not by this density).
func newPDFRace(general density.PartitionedFunction) func(petri.TransitionID) (density.PartitionedFunction, error) {
	return func(t petri.TransitionID) (density.PartitionedFunction, error) {
		if t == transGen {
			return general, nil
		}

		return boxPF(varExp), nil
	}
}

func raceInitial(t *testing.T, net raceNet, newPDF func(petri.TransitionID) (density.PartitionedFunction, error)) stateclass.State {
	t.Helper()
	s, err := stateclass.Initial(net, raceMarking{"p0": 1}, newPDF)
	require.NoError(t, err)

	return s
}

// TestBuildSubordinatedCTMCExcludesGeneralTransition verifies that
// BuildSubordinatedCTMC walks only the EXP-only chain, silently skipping
// the designated general transition rather than treating it as an error
// (spec.md §4.6).
func TestBuildSubordinatedCTMCExcludesGeneralTransition(t *testing.T) {
	net := raceNet{generalKind: petri.DensityDET}
	newPDF := newPDFRace(detPointMass(2))
	initial := raceInitial(t, net, newPDF)

	sub, err := onegen.BuildSubordinatedCTMC(net, initial, transGen, newPDF)
	require.NoError(t, err)

	require.Len(t, sub.States, 2)
	assert.Equal(t, 0, sub.Initial)
	assert.InDelta(t, 1.0, sub.ExitRate[sub.Initial], 1e-12)
	require.Len(t, sub.Edges[sub.Initial], 1)
	assert.InDelta(t, 1.0, sub.Edges[sub.Initial][0].Rate, 1e-12)

	target := sub.Edges[sub.Initial][0].To
	assert.InDelta(t, 0.0, sub.ExitRate[target], 1e-12)
}

// TestBuildSubordinatedCTMCRejectsSecondGeneral verifies the
// ErrMultipleGeneral guard: a second non-EXP transition enabled anywhere in
// the chain, other than the designated genID, is fatal (spec.md §7
// Structural).
func TestBuildSubordinatedCTMCRejectsSecondGeneral(t *testing.T) {
	net := raceNet{generalKind: petri.DensityDET}
	newPDF := newPDFRace(detPointMass(2))
	initial := raceInitial(t, net, newPDF)
	// Relabel transExp itself as a second non-EXP transition by feeding a
	// state whose ExpRates map does not record it as EXP.
	initial.Stochastic.ExpRates = map[petri.TransitionID]float64{}

	_, err := onegen.BuildSubordinatedCTMC(net, initial, transGen, newPDF)
	assert.ErrorIs(t, err, onegen.ErrMultipleGeneral)
}

// TestOccupancyAndGeneralSurvivorDETRace is S1 of spec.md §9: an EXP(1)
// transition racing a DET(2) transition. The embedded EXP-only chain's
// occupancy follows the textbook exponential decay e^{-t}, independent of
// the DET race; the DET transition's own survivor function is the step
// function 1{t < 2}, not an exponential.
func TestOccupancyAndGeneralSurvivorDETRace(t *testing.T) {
	net := raceNet{generalKind: petri.DensityDET}
	newPDF := newPDFRace(detPointMass(2))
	initial := raceInitial(t, net, newPDF)

	sub, err := onegen.BuildSubordinatedCTMC(net, initial, transGen, newPDF)
	require.NoError(t, err)
	require.Len(t, sub.States, 2)

	ct, err := onegen.NewCTMCTransient(sub)
	require.NoError(t, err)

	pi0 := make([]float64, len(sub.States))
	pi0[sub.Initial] = 1

	occ, err := ct.Occupancy(pi0, 2.0, 1e-9)
	require.NoError(t, err)
	require.Len(t, occ, 2)
	assert.InDelta(t, math.Exp(-2), occ[sub.Initial], 1e-6)
	absorbed := 1 - sub.Initial
	assert.InDelta(t, 1-math.Exp(-2), occ[absorbed], 1e-6)

	for _, c := range []struct{ t, want float64 }{
		{1.9, 1.0},
		{2.0, 0.0},
		{2.1, 0.0},
	} {
		surv, err := sub.GeneralSurvivor(c.t)
		require.NoError(t, err)
		assert.InDeltaf(t, c.want, surv, 1e-12, "GeneralSurvivor(%v)", c.t)
	}
}

// TestGeneralSurvivorUniformRace is S2 of spec.md §9: an EXP(1) transition
// racing a Uniform[1,3] general transition. Test points deliberately avoid
// the exact boundaries t=1 and t=3, where a zero-width probe zone pinned to
// a continuous density's own boundary is read as a point mass rather than
// zero continuous measure (the same convention Integrate and
// MarginalizeOut use for genuine Dirac pieces).
func TestGeneralSurvivorUniformRace(t *testing.T) {
	net := raceNet{generalKind: petri.DensityGEN}
	newPDF := newPDFRace(uniformDensity(1, 3, 0.5))
	initial := raceInitial(t, net, newPDF)

	sub, err := onegen.BuildSubordinatedCTMC(net, initial, transGen, newPDF)
	require.NoError(t, err)

	for _, c := range []struct{ t, want float64 }{
		{0.5, 1.0},
		{2.0, 0.5},
		{2.5, 0.25},
		{3.5, 0.0},
	} {
		surv, err := sub.GeneralSurvivor(c.t)
		require.NoError(t, err)
		assert.InDeltaf(t, c.want, surv, 1e-9, "GeneralSurvivor(%v)", c.t)
	}
}

// TestUniformRaceWinProbabilityMatchesDirectIntegral cross-checks
// GeneralSurvivor's step readings of S2 against the literal race-win
// closed form ∫_1^3 0.5·e^{-u} du = 0.5(e^{-1} - e^{-3}), computed directly
// via density.Integrate over a genuinely exponential-weighted piece
// (independent of GeneralSurvivor/cdfAt's own code path).
func TestUniformRaceWinProbabilityMatchesDirectIntegral(t *testing.T) {
	z := zone.New(term.Age)
	require.NoError(t, z.ImposeBound(term.Age, term.Ground, decimal.NewFromInt(3)))
	require.NoError(t, z.ImposeBound(term.Ground, term.Age, decimal.NewFromInt(-1)))
	require.NoError(t, z.Normalize())

	fn := expoly.New(exmono.New(decimal.NewFromFloat(0.5), nil, map[term.Variable]float64{term.Age: 1}))
	pf := density.New(density.Piece{Zone: z, Fn: fn})

	mass, err := pf.Integrate()
	require.NoError(t, err)

	want := 0.5 * (math.Exp(-1) - math.Exp(-3))
	assert.InDelta(t, want, mass.Float64(), 1e-9)
}

// TestIntervalScannerMatchesPerPointOccupancy verifies that Scan's single
// shared forward pass over several time points agrees with calling
// Occupancy independently at each point (spec.md §4.6 "IntervalScanner").
func TestIntervalScannerMatchesPerPointOccupancy(t *testing.T) {
	net := raceNet{generalKind: petri.DensityDET}
	newPDF := newPDFRace(detPointMass(2))
	initial := raceInitial(t, net, newPDF)

	sub, err := onegen.BuildSubordinatedCTMC(net, initial, transGen, newPDF)
	require.NoError(t, err)

	ct, err := onegen.NewCTMCTransient(sub)
	require.NoError(t, err)

	pi0 := make([]float64, len(sub.States))
	pi0[sub.Initial] = 1

	times := []float64{0, 0.5, 1.5, 3, 2}
	scanner := onegen.NewIntervalScanner(ct, 1e-9)
	scanned, err := scanner.Scan(pi0, times)
	require.NoError(t, err)
	require.Len(t, scanned, len(times))

	for i, tm := range times {
		direct, err := ct.Occupancy(pi0, tm, 1e-9)
		require.NoError(t, err)
		require.Len(t, scanned[i], len(direct))
		for s := range direct {
			assert.InDeltaf(t, direct[s], scanned[i][s], 1e-9, "time %v state %d", tm, s)
		}
	}
}

// TestNewCTMCTransientAbsorbingChainIsIdentity verifies the documented
// degenerate case: a subordinated chain with every exit rate zero (no
// embedded EXP transition at all) yields q=0 and leaves any distribution
// unchanged by Occupancy, for any t.
func TestNewCTMCTransientAbsorbingChainIsIdentity(t *testing.T) {
	sub := &onegen.SubordinatedCTMC{
		States:         []string{"only"},
		ExitRate:       []float64{0},
		Edges:          [][]onegen.Edge{nil},
		Initial:        0,
		GeneralDensity: detPointMass(1),
	}
	ct, err := onegen.NewCTMCTransient(sub)
	require.NoError(t, err)

	pi0 := []float64{1}
	occ, err := ct.Occupancy(pi0, 5, 1e-9)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, occ)
}
