package onegen

import "github.com/katalvlaran/stpn/density"

// Edge is one rate-weighted transition of the subordinated CTMC's
// generator (not yet uniformized).
type Edge struct {
	To   int
	Rate float64
}

// SubordinatedCTMC is the CTMC built from the first-epoch succession chain
// with the general transition excluded (spec.md §4.6 "SubordinatedCTMC").
// State ids index States, ExitRate, and Edges in parallel.
type SubordinatedCTMC struct {
	States   []string
	ExitRate []float64
	Edges    [][]Edge
	Initial  int

	// GeneralDensity is the excluded general transition's own firing-time
	// PDF, over term.Age, measured from the regeneration's start (the
	// general transition's clock runs independently of the embedded
	// EXP chain for the lifetime of one regeneration epoch).
	GeneralDensity density.PartitionedFunction
}

// KernelRowEvaluator computes a subordinated CTMC's local/global kernel
// contribution at one time point, compiled against a tick grid (spec.md
// §4.6 "KernelRow ... compiles a KernelRowEvaluator against a tick grid").
type KernelRowEvaluator func(stateID int, t float64) (local, global float64, err error)

// KernelRow exposes the symbolic formulas for one regeneration's kernel
// row and compiles them into a KernelRowEvaluator.
type KernelRow struct {
	sub *SubordinatedCTMC
	ct  *CTMCTransient
	eps float64
}

// NewKernelRow builds a KernelRow over sub, using ct for occupancy
// propagation and eps as the Fox-Glynn truncation error budget.
func NewKernelRow(sub *SubordinatedCTMC, ct *CTMCTransient, eps float64) *KernelRow {
	return &KernelRow{sub: sub, ct: ct, eps: eps}
}

// Compile returns a KernelRowEvaluator for this row: Local(i, t) is the
// probability of occupying EXP-state i at time t without the general
// transition having fired; Global(i, t) is the probability of having
// fired (the renewal event) by time t while the embedded chain was last
// in state i at the moment of firing. The two terms factor as
// occupancy(i, t) * survivor/CDF of the general transition's density,
// which holds because the general transition's clock is exogenous to
// the embedded EXP race (spec.md §4.6).
func (r *KernelRow) Compile() KernelRowEvaluator {
	return func(stateID int, t float64) (float64, float64, error) {
		pi0 := make([]float64, len(r.sub.States))
		pi0[r.sub.Initial] = 1
		occ, err := r.ct.Occupancy(pi0, t, r.eps)
		if err != nil {
			return 0, 0, err
		}
		if stateID < 0 || stateID >= len(occ) {
			return 0, 0, nil
		}

		cdf, err := cdfAt(r.sub.GeneralDensity, t)
		if err != nil {
			return 0, 0, err
		}

		p := occ[stateID]

		return p * (1 - cdf), p * cdf, nil
	}
}
