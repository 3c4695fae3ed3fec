package density

import (
	"github.com/katalvlaran/stpn/expoly"
	"github.com/katalvlaran/stpn/term"
	"github.com/katalvlaran/stpn/zone"
)

// Piece is one (support, density) pair of a PartitionedFunction.
type Piece struct {
	Zone *zone.DBMZone
	Fn   expoly.Expolynomial
}

// PartitionedFunction is a piecewise density: an ordered list of Pieces
// whose zone supports are pairwise disjoint (in the full-dimensional
// interior sense) and together cover the density's support.
type PartitionedFunction struct {
	Pieces []Piece
}

// New constructs a PartitionedFunction from the given pieces, in order.
func New(pieces ...Piece) PartitionedFunction {
	out := make([]Piece, len(pieces))
	copy(out, pieces)

	return PartitionedFunction{Pieces: out}
}

// Variables returns the union of variables ranged over by the function's
// zones, taken from the first piece (all pieces are required to share a
// variable set).
func (pf PartitionedFunction) Variables() []term.Variable {
	if len(pf.Pieces) == 0 {
		return nil
	}

	return pf.Pieces[0].Zone.Variables()
}
