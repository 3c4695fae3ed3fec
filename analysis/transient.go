package analysis

import (
	"fmt"

	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/kernel"
	"github.com/katalvlaran/stpn/onegen"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/stateclass"
)

// TransientAnalysisBuilder configures and runs a transient analysis
// (spec.md §6 item 1). The zero value is not usable; construct via
// NewTransientAnalysis.
type TransientAnalysisBuilder struct {
	cfg *Config
}

// NewTransientAnalysis returns a builder with spec.md-documented defaults,
// customized by opts (grounded on builder/config.go's functional-option
// constructor pattern).
func NewTransientAnalysis(opts ...Option) *TransientAnalysisBuilder {
	return &TransientAnalysisBuilder{cfg: newConfig(opts...)}
}

// Analyze drives the regenerative kernel discretization of spec.md §4.5
// (or, if WithOneGenPath was set, the restricted subordinated-CTMC path
// of §4.6) from initial, and solves the Markov Renewal Equation by
// trapezoidal convolution (package kernel), returning the discretized
// TransientSolution. newPDF builds the independent initial density for a
// transition newly enabled at any reached marking, exactly as
// stateclass.Successor requires it.
func (b *TransientAnalysisBuilder) Analyze(
	net petri.Net,
	initialMarking petri.Marking,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
) (*TransientSolution, error) {
	cfg := b.cfg
	if cfg.TimeBound <= 0 || cfg.TimeStep <= 0 {
		return nil, ErrInvalidTimeBound
	}
	if initialMarking == nil {
		return nil, ErrNoInitialState
	}

	ticks, err := kernel.NewTicks(cfg.TimeBound, cfg.TimeStep, cfg.TickRatio)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}

	initial, err := stateclass.Initial(net, initialMarking, newPDF)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}
	if initial.Regen == nil {
		return nil, ErrNotRegeneration
	}

	if cfg.ForceGeneral {
		return b.analyzeOneGen(net, initial, ticks, newPDF)
	}

	return b.analyzeGeneral(net, initial, ticks, newPDF)
}

func (b *TransientAnalysisBuilder) analyzeGeneral(
	net petri.Net,
	initial stateclass.State,
	ticks kernel.Ticks,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
) (*TransientSolution, error) {
	cfg := b.cfg
	cfg.Logger.Infof("analysis: building regenerative kernel over %d ticks", ticks.KernelCount())

	k, err := kernel.BuildKernel(net, newPDF, initial, ticks, cfg.Monitor)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}
	if cfg.NormalizeKernels {
		k.Normalize()
	}

	p := kernel.Convolve(k)

	ts := &TransientSolution{
		TimeBound:    ticks.Bound,
		TimeStep:     ticks.Step,
		Samples:      ticks.KernelCount(),
		InitialState: k.Regens[0],
		RowStates:    append([]string(nil), k.Regens...),
		ColumnStates: append([]string(nil), k.Markings...),
		Solution:     p,
	}
	ts.buildIndex()

	return ts, nil
}

// analyzeOneGen implements spec.md §4.6's fast path: it requires exactly
// one non-EXP transition enabled at initial (the designated "general"
// transition), builds the subordinated CTMC over the rest, and feeds its
// Fox–Glynn-uniformized occupancy directly into package kernel's
// L/G/Convolve machinery with a synthetic second regeneration
// representing "the general transition has fired" (spec.md §4.6
// "a single 'sink' absorbing outcome per firing").
func (b *TransientAnalysisBuilder) analyzeOneGen(
	net petri.Net,
	initial stateclass.State,
	ticks kernel.Ticks,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
) (*TransientSolution, error) {
	cfg := b.cfg
	genID, err := soleGeneralTransition(net, initial)
	if err != nil {
		return nil, err
	}

	sub, err := onegen.BuildSubordinatedCTMC(net, initial, genID, newPDF)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}
	ct, err := onegen.NewCTMCTransient(sub)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}

	n := ticks.KernelCount()
	times := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = ticks.KernelPoint(i)
	}
	pi0 := make([]float64, len(sub.States))
	pi0[sub.Initial] = 1

	scanner := onegen.NewIntervalScanner(ct, cfg.FoxGlynnEpsilon)
	occupancy, err := scanner.Scan(pi0, times)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}

	nm := len(sub.States) + 1
	exitedIdx := nm - 1
	markings := append(append([]string(nil), sub.States...), "exited")
	regens := []string{initial.Regen.R.Marking.Key(), "exited-regen"}

	l := make([][][]float64, n)
	g := make([][][]float64, n)
	for t := 0; t < n; t++ {
		survivor, genErr := sub.GeneralSurvivor(times[t])
		if genErr != nil {
			return nil, fmt.Errorf("analysis.Analyze: %w", genErr)
		}
		l[t] = make([][]float64, 2)
		g[t] = make([][]float64, 2)
		l[t][0] = make([]float64, nm)
		l[t][1] = make([]float64, nm)
		g[t][0] = make([]float64, 2)
		g[t][1] = make([]float64, 2)

		for j, occ := range occupancy[t] {
			l[t][0][j] = occ * survivor
		}
		g[t][0][1] = 1 - survivor
		l[t][1][exitedIdx] = 1
	}

	k := &kernel.Kernel{Ticks: ticks, Regens: regens, Markings: markings, L: l, G: g}
	if cfg.NormalizeKernels {
		k.Normalize()
	}
	p := kernel.Convolve(k)

	ts := &TransientSolution{
		TimeBound:    ticks.Bound,
		TimeStep:     ticks.Step,
		Samples:      n,
		InitialState: regens[0],
		RowStates:    regens,
		ColumnStates: markings,
		Solution:     p,
	}
	ts.buildIndex()

	return ts, nil
}

// soleGeneralTransition returns the single non-EXP transition enabled at
// initial, or ErrMultipleGeneralTransitions if there is not exactly one.
func soleGeneralTransition(net petri.Net, initial stateclass.State) (petri.TransitionID, error) {
	var found petri.TransitionID
	seen := false
	for _, t := range initial.Petri.Enabled {
		feat, err := net.Feature(initial.Petri.Marking, t)
		if err != nil {
			return "", fmt.Errorf("analysis.soleGeneralTransition: %w", err)
		}
		if feat.Kind == petri.DensityEXP {
			continue
		}
		if seen {
			return "", ErrMultipleGeneralTransitions
		}
		found = t
		seen = true
	}
	if !seen {
		return "", ErrMultipleGeneralTransitions
	}

	return found, nil
}
