package density

import (
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/expoly"
	"github.com/katalvlaran/stpn/term"
	"github.com/katalvlaran/stpn/zone"
)

// Integrate returns the total probability mass of pf: the sum, over every
// piece, of its density integrated over its own zone's support (spec.md
// §4.3 step 3, "the integral of the density over the firing zone"). A
// proper PDF integrates to 1 (spec.md §3 PartitionedFunction invariant).
//
// Each piece's zone is treated as a box over its variables, bounded by the
// Ground-relative entries of the (normalized) DBM — exact for the
// successively-constrained firing zones spec.md §4.3 produces, and a
// documented over-approximation for zones whose feasible region is not a
// box (cross-variable constraints beyond the Ground row/column are
// ignored by this integration).
func (pf PartitionedFunction) Integrate() (decimal.ExactDecimal, error) {
	total := decimal.Zero()
	for _, p := range pf.Pieces {
		v, err := integratePiece(p)
		if err != nil {
			return decimal.ExactDecimal{}, fmt.Errorf("density.Integrate: %w", err)
		}
		total, err = decimal.Add(total, v)
		if err != nil {
			return decimal.ExactDecimal{}, fmt.Errorf("density.Integrate: %w", err)
		}
	}

	return total, nil
}

func integratePiece(p Piece) (decimal.ExactDecimal, error) {
	if err := p.Zone.Normalize(); err != nil {
		return decimal.ExactDecimal{}, err
	}
	f := p.Fn
	for _, v := range p.Zone.Variables() {
		lo, hi, err := boxBounds(p.Zone, v)
		if err != nil {
			return decimal.ExactDecimal{}, err
		}
		if isPointBound(lo, hi) {
			// A zero-width box on v is a point mass, not a continuous
			// interval: F(hi)-F(lo) is trivially 0 for any antiderivative,
			// so pick off Fn's value at the point directly instead (this is
			// the convention diracAtZero-style pieces rely on).
			f, err = f.EvaluateAt(v, lo)
		} else {
			f, err = f.DefiniteIntegral(v, lo, hi)
		}
		if err != nil {
			return decimal.ExactDecimal{}, err
		}
	}
	value, err := f.Evaluate(nil)
	if err != nil {
		return decimal.ExactDecimal{}, err
	}

	return decimal.NewFromFloat(value), nil
}

// isPointBound reports whether lo and hi are the same pure-numeric bound,
// i.e. v is pinned to a single point rather than spanning an interval.
func isPointBound(lo, hi expoly.Bound) bool {
	return lo.OffsetVar == "" && hi.OffsetVar == "" && decimal.Equal(lo.Const, hi.Const)
}

// boxBounds reads v's Ground-relative lower/upper bound out of the
// (normalized) zone: v ≥ −c[Ground][v] and v ≤ c[v][Ground].
func boxBounds(z *zone.DBMZone, v term.Variable) (expoly.Bound, expoly.Bound, error) {
	upper, err := z.BoundBetween(v, term.Ground)
	if err != nil {
		return expoly.Bound{}, expoly.Bound{}, err
	}
	lowerNeg, err := z.BoundBetween(term.Ground, v)
	if err != nil {
		return expoly.Bound{}, expoly.Bound{}, err
	}
	lower := decimal.Negate(lowerNeg)

	return expoly.ConstBound(lower), expoly.ConstBound(upper), nil
}
