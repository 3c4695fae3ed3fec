package onegen

import (
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/term"
)

// GeneralSurvivor returns the probability that sub's excluded general
// transition has not yet fired by elapsed time t, 1 - CDF(t), evaluated
// against sub.GeneralDensity (spec.md §4.6's "firing PDF" term used by
// KernelRow.Compile and by callers assembling their own kernel rows
// directly from a SubordinatedCTMC).
func (sub *SubordinatedCTMC) GeneralSurvivor(t float64) (float64, error) {
	cdf, err := cdfAt(sub.GeneralDensity, t)
	if err != nil {
		return 0, err
	}

	return 1 - cdf, nil
}

// cdfAt returns the probability mass of a single-variable (over term.Age)
// PartitionedFunction on [0, t], via the same box-zone tightening
// convention package kernel uses against density.Integrate.
func cdfAt(pf density.PartitionedFunction, t float64) (float64, error) {
	if t <= 0 {
		return 0, nil
	}
	tDec := decimal.NewFromFloat(t)
	total := decimal.Zero()
	for _, p := range pf.Pieces {
		vars := p.Zone.Variables()
		if len(vars) != 1 {
			continue
		}
		z := p.Zone.Clone()
		if err := z.ImposeBound(vars[0], term.Ground, tDec); err != nil {
			return 0, err
		}
		if err := z.Normalize(); err != nil {
			return 0, err
		}
		if z.IsEmpty() {
			continue
		}
		mass, err := density.New(density.Piece{Zone: z, Fn: p.Fn}).Integrate()
		if err != nil {
			return 0, err
		}
		total, err = decimal.Add(total, mass)
		if err != nil {
			return 0, err
		}
	}

	return total.Float64(), nil
}
