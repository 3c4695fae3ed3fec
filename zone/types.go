package zone

import (
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/term"
)

// groundIndex is the fixed matrix row/column reserved for term.Ground.
const groundIndex = 0

// DBMZone is a Difference-Bound Matrix zone over a fixed variable set plus
// the reserved Ground variable. The zero value is not usable; construct
// via New.
type DBMZone struct {
	vars       []term.Variable          // non-ground variables, in index order (index i+1)
	index      map[term.Variable]int    // variable -> matrix row/col, Ground -> 0
	bound      [][]decimal.ExactDecimal // bound[i][j]: x_i - x_j <= bound[i][j]
	normalized bool
	empty      bool
}

// New constructs a DBMZone over the given non-ground variables, with every
// non-diagonal bound initialized to +∞ and every diagonal (including
// Ground) initialized to 0, the standard "unconstrained" starting zone.
func New(vars ...term.Variable) *DBMZone {
	n := len(vars) + 1
	idx := make(map[term.Variable]int, n)
	idx[term.Ground] = groundIndex
	for i, v := range vars {
		idx[v] = i + 1
	}

	bound := make([][]decimal.ExactDecimal, n)
	for i := range bound {
		bound[i] = make([]decimal.ExactDecimal, n)
		for j := range bound[i] {
			if i == j {
				bound[i][j] = decimal.Zero()
			} else {
				bound[i][j] = decimal.PositiveInfinity()
			}
		}
	}

	out := make([]term.Variable, len(vars))
	copy(out, vars)

	return &DBMZone{vars: out, index: idx, bound: bound}
}

// Variables returns the zone's non-ground variables in index order.
func (z *DBMZone) Variables() []term.Variable {
	out := make([]term.Variable, len(z.vars))
	copy(out, z.vars)

	return out
}

// dim returns the matrix dimension (len(vars)+1 for Ground).
func (z *DBMZone) dim() int { return len(z.vars) + 1 }

// at returns bound[i][j] for the given variables, erroring if either is
// unknown to this zone.
func (z *DBMZone) at(a, b term.Variable) (decimal.ExactDecimal, error) {
	i, ok := z.index[a]
	if !ok {
		return decimal.ExactDecimal{}, ErrUnknownVariable
	}
	j, ok := z.index[b]
	if !ok {
		return decimal.ExactDecimal{}, ErrUnknownVariable
	}

	return z.bound[i][j], nil
}

// BoundBetween returns the constraint bound c such that a − b ≤ c, for the
// given pair of variables (either of which may be term.Ground). Exported
// for collaborators (e.g. density) that need to read individual bounds
// without depending on the internal matrix layout.
func (z *DBMZone) BoundBetween(a, b term.Variable) (decimal.ExactDecimal, error) {
	return z.at(a, b)
}

// Clone returns a deep copy of z, including its normalized/empty flags.
func (z *DBMZone) Clone() *DBMZone {
	n := z.dim()
	bound := make([][]decimal.ExactDecimal, n)
	for i := range bound {
		bound[i] = make([]decimal.ExactDecimal, n)
		copy(bound[i], z.bound[i])
	}
	idx := make(map[term.Variable]int, len(z.index))
	for k, v := range z.index {
		idx[k] = v
	}
	vars := make([]term.Variable, len(z.vars))
	copy(vars, z.vars)

	return &DBMZone{vars: vars, index: idx, bound: bound, normalized: z.normalized, empty: z.empty}
}
