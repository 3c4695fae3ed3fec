package density

import (
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/expoly"
	"github.com/katalvlaran/stpn/term"
)

// MarginalizeOut integrates variable v out of every piece, without
// rescaling: each resulting piece's density is the raw (possibly
// sub-unity) mass over the remaining variables. Used directly where a
// caller needs to combine several mass-weighted contributions before
// normalizing once at the end (e.g. firing probability accumulated across
// several zone pieces — see stateclass.Successor).
//
// A zero-width v (e.g. firing a DET transition, whose own variable is
// pinned to a single point by construction) is a Dirac mass, not a
// continuous interval: DefiniteIntegral over [lo,hi] with lo==hi always
// returns 0 by the fundamental theorem of calculus, so it is evaluated at
// the point instead, mirroring Integrate's isPointBound case.
func (pf PartitionedFunction) MarginalizeOut(v term.Variable) (PartitionedFunction, error) {
	out := make([]Piece, 0, len(pf.Pieces))
	for _, p := range pf.Pieces {
		if err := p.Zone.Normalize(); err != nil {
			return PartitionedFunction{}, err
		}
		lo, hi, err := boxBounds(p.Zone, v)
		if err != nil {
			return PartitionedFunction{}, fmt.Errorf("density.MarginalizeOut: %w", err)
		}
		var marginal expoly.Expolynomial
		if isPointBound(lo, hi) {
			marginal, err = p.Fn.EvaluateAt(v, lo)
		} else {
			marginal, err = p.Fn.DefiniteIntegral(v, lo, hi)
		}
		if err != nil {
			return PartitionedFunction{}, fmt.Errorf("density.MarginalizeOut: %w", err)
		}
		projected, err := p.Zone.Project(v)
		if err != nil {
			return PartitionedFunction{}, fmt.Errorf("density.MarginalizeOut: %w", err)
		}
		out = append(out, Piece{Zone: projected, Fn: marginal})
	}

	return PartitionedFunction{Pieces: out}, nil
}

// ConditionOnFiring implements spec.md §4.3 step 3's "density conditioning
// & integration": it computes the firing probability of t (the integral
// of pf over its own support), rescales pf to a proper density given t
// fired, then marginalizes t out, returning the resulting density over the
// remaining variables together with the firing probability. Returns
// ErrZeroFiringProbability if the firing zone carries no mass — per
// spec.md §4.3, dividing by it is a fatal logic error, not a recoverable
// one.
func (pf PartitionedFunction) ConditionOnFiring(t term.Variable) (PartitionedFunction, decimal.ExactDecimal, error) {
	prob, err := pf.Integrate()
	if err != nil {
		return PartitionedFunction{}, decimal.ExactDecimal{}, fmt.Errorf("density.ConditionOnFiring: %w", err)
	}
	if prob.IsZero() {
		return PartitionedFunction{}, decimal.ExactDecimal{}, ErrZeroFiringProbability
	}

	recip, err := decimal.Div(decimal.NewFromInt(1), prob)
	if err != nil {
		return PartitionedFunction{}, decimal.ExactDecimal{}, fmt.Errorf("density.ConditionOnFiring: %w", err)
	}

	marginal, err := pf.Scale(recip).MarginalizeOut(t)
	if err != nil {
		return PartitionedFunction{}, decimal.ExactDecimal{}, fmt.Errorf("density.ConditionOnFiring: %w", err)
	}

	return marginal, prob, nil
}
