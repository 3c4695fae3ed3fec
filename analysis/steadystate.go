package analysis

import (
	"fmt"

	"github.com/katalvlaran/stpn/ctmc"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/kernel"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/stateclass"
)

// SteadyStateAnalysisBuilder configures and runs a steady-state analysis
// (spec.md §6 item 1, §4.5 "Steady-state path"). The zero value is not
// usable; construct via NewSteadyStateAnalysis.
type SteadyStateAnalysisBuilder struct {
	cfg *Config
}

// NewSteadyStateAnalysis returns a builder with spec.md-documented
// defaults, customized by opts. TimeBound here plays the role of a
// horizon long enough that every local/global kernel has converged
// (spec.md §4.5's kernel "convergence horizon"), not an output sample
// count — the global kernel is read only at the final tick, while the
// local kernel is integrated over every tick up to it (meanSojourn).
func NewSteadyStateAnalysis(opts ...Option) *SteadyStateAnalysisBuilder {
	return &SteadyStateAnalysisBuilder{cfg: newConfig(opts...)}
}

// Analyze builds the regenerative kernel out to cfg.TimeBound, reads off
// the embedded DTMC's transition matrix as the converged global kernel
// (spec.md §4.5 "Σ_{t→∞} G[t][i][k]"), decomposes it into BSCCs, solves
// each BSCC's stationary distribution via LU, weights by the initial
// regeneration's absorption probability into each BSCC (spec.md §4.8),
// and combines with mean sojourn time per (regeneration, marking) to
// produce π(m) = Σ_i π_i · sojourn[i][m] / Σ_i π_i · total (spec.md
// §4.5's closing formula).
func (b *SteadyStateAnalysisBuilder) Analyze(
	net petri.Net,
	initialMarking petri.Marking,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
) (*SteadyStateSolution, error) {
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

	k, err := kernel.BuildKernel(net, newPDF, initial, ticks, cfg.Monitor)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}

	d := ctmc.New()
	for _, r := range k.Regens {
		d.AddState(r, 0)
	}
	lastTick := len(k.G) - 1
	for i := range k.Regens {
		for j := range k.Regens {
			w := k.G[lastTick][i][j]
			if w <= 0 {
				continue
			}
			if err := d.AddEdge(i, j, w); err != nil {
				return nil, fmt.Errorf("analysis.Analyze: %w", err)
			}
		}
	}

	piByRegen, err := stationaryOverRegens(d, 0)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}

	sojourn := meanSojourn(k)

	totals := make([]float64, len(k.Regens))
	for i := range k.Regens {
		for j := range k.Markings {
			totals[i] += sojourn[i][j]
		}
	}

	numer := make([]float64, len(k.Markings))
	denom := 0.0
	for i := range k.Regens {
		denom += piByRegen[i] * totals[i]
		for j := range k.Markings {
			numer[j] += piByRegen[i] * sojourn[i][j]
		}
	}
	if denom <= 0 {
		return nil, fmt.Errorf("analysis.Analyze: %w: zero total sojourn time, increase TimeBound", ErrInvalidTimeBound)
	}

	probs := make([]float64, len(k.Markings))
	for j := range probs {
		probs[j] = numer[j] / denom
	}

	return &SteadyStateSolution{MarkingStates: append([]string(nil), k.Markings...), Probability: probs}, nil
}

// stationaryOverRegens decomposes d into BSCCs, solves each BSCC's own
// stationary distribution, and combines them weighted by initialID's
// absorption probability into each BSCC (or, if initialID is itself
// inside a BSCC, weight 1 on that BSCC alone), returning one stationary
// mass per original state id (spec.md §4.8 + §4.5).
func stationaryOverRegens(d *ctmc.DTMC, initialID int) ([]float64, error) {
	n := d.NumStates()
	out := make([]float64, n)

	if n == 1 {
		out[0] = 1

		return out, nil
	}

	abs, err := d.DecomposeBSCC()
	if err != nil {
		return nil, err
	}

	weight := make([]float64, len(abs.BSCCs))
	transientIdx := -1
	for i, s := range abs.Transient {
		if s == initialID {
			transientIdx = i
		}
	}
	if transientIdx >= 0 {
		copy(weight, abs.Probs[transientIdx])
	} else {
		for bi, members := range abs.BSCCs {
			for _, s := range members {
				if s == initialID {
					weight[bi] = 1
				}
			}
		}
	}

	for bi, members := range abs.BSCCs {
		if weight[bi] <= 0 {
			continue
		}
		sub := ctmc.New()
		localOf := make(map[int]int, len(members))
		for li, s := range members {
			localOf[s] = li
			sub.AddState(d.State(s).Label, d.State(s).ExitRate)
		}
		for li, s := range members {
			for _, e := range d.Out(s) {
				if lj, ok := localOf[e.To]; ok {
					if err := sub.AddEdge(li, lj, e.Weight); err != nil {
						return nil, err
					}
				}
			}
		}
		pi, err := sub.Stationary()
		if err != nil {
			return nil, fmt.Errorf("stationaryOverRegens: BSCC %d: %w", bi, err)
		}
		for li, s := range members {
			out[s] += weight[bi] * pi[li]
		}
	}

	return out, nil
}

// meanSojourn returns, for each regeneration i and marking j, the mean
// time spent in (i, j) per visit to regeneration i before the next
// renewal, approximated by the trapezoidal integral of L[*][i][j] over
// the kernel's discretized horizon (spec.md §4.5 "compute the mean
// sojourn time in each (regeneration, marking) pair" — exact in the limit
// TimeBound → ∞ given L has converged to zero well before the horizon;
// callers are responsible for choosing a TimeBound long enough for that
// to hold).
func meanSojourn(k *kernel.Kernel) [][]float64 {
	nr := len(k.Regens)
	nm := len(k.Markings)
	out := make([][]float64, nr)
	for i := range out {
		out[i] = make([]float64, nm)
	}
	dt := k.Ticks.Step
	for t := 1; t < len(k.L); t++ {
		for i := 0; i < nr; i++ {
			for j := 0; j < nm; j++ {
				out[i][j] += dt * (k.L[t-1][i][j] + k.L[t][i][j]) / 2
			}
		}
	}

	return out
}
