package density

import (
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/expoly"
	"github.com/katalvlaran/stpn/term"
)

// Scale multiplies every piece's density by factor, e.g. to renormalize
// after conditioning on a sub-region (spec.md §4.3 step 3).
func (pf PartitionedFunction) Scale(factor decimal.ExactDecimal) PartitionedFunction {
	out := make([]Piece, len(pf.Pieces))
	for i, p := range pf.Pieces {
		out[i] = Piece{Zone: p.Zone, Fn: expoly.Scale(p.Fn, factor)}
	}

	return PartitionedFunction{Pieces: out}
}

// CartesianProduct combines pf with other over their disjoint variable
// sets, producing the joint density of two independent random vectors:
// every combination of a piece from pf and a piece from other becomes one
// piece whose zone is their zone.CartesianProduct and whose density is
// their Fn.Multiply (spec.md §4.3 step 4, "newly enabled transitions").
func (pf PartitionedFunction) CartesianProduct(other PartitionedFunction) (PartitionedFunction, error) {
	out := make([]Piece, 0, len(pf.Pieces)*len(other.Pieces))
	for _, a := range pf.Pieces {
		for _, b := range other.Pieces {
			z, err := a.Zone.CartesianProduct(b.Zone)
			if err != nil {
				return PartitionedFunction{}, fmt.Errorf("density.CartesianProduct: zone: %w", err)
			}
			f, err := expoly.Multiply(a.Fn, b.Fn)
			if err != nil {
				return PartitionedFunction{}, fmt.Errorf("density.CartesianProduct: fn: %w", err)
			}
			out = append(out, Piece{Zone: z, Fn: f})
		}
	}

	return PartitionedFunction{Pieces: out}, nil
}

// Shift applies expoly's variable shift x := x + y to every piece's
// density, used when re-expressing remaining time-to-fire variables after
// a transition fires (spec.md §4.3 step 3).
func (pf PartitionedFunction) Shift(x, y term.Variable) (PartitionedFunction, error) {
	out := make([]Piece, len(pf.Pieces))
	for i, p := range pf.Pieces {
		shifted, err := p.Fn.Shift(x, y)
		if err != nil {
			return PartitionedFunction{}, fmt.Errorf("density.Shift: %w", err)
		}
		out[i] = Piece{Zone: p.Zone, Fn: shifted}
	}

	return PartitionedFunction{Pieces: out}, nil
}
