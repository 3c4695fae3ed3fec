package zone

import (
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/term"
)

// ImposeBound tightens the constraint a − b ≤ c, taking the pointwise
// minimum with the existing bound. Never loosens. Returns
// ErrNegativeInfinityBound if c is −∞ (spec.md §7), ErrUnknownVariable if
// either variable is not in the zone. Marks the zone as not normalized.
func (z *DBMZone) ImposeBound(a, b term.Variable, c decimal.ExactDecimal) error {
	if c.IsNegativeInfinity() {
		return ErrNegativeInfinityBound
	}
	i, ok := z.index[a]
	if !ok {
		return ErrUnknownVariable
	}
	j, ok := z.index[b]
	if !ok {
		return ErrUnknownVariable
	}

	z.bound[i][j] = decimal.Min(z.bound[i][j], c)
	z.normalized = false

	return nil
}

// Project eliminates variable v, returning a new DBMZone over the
// remaining variables. z is normalized first so the remaining constraints
// already reflect every path through v (spec.md §8 property 2: if a point
// over the remaining variables lies in Project(Z,v), some extension to v
// lies in Z). Returns ErrGroundProjection if v is term.Ground,
// ErrUnknownVariable if v is not in the zone.
func (z *DBMZone) Project(v term.Variable) (*DBMZone, error) {
	if v == term.Ground {
		return nil, ErrGroundProjection
	}
	if _, ok := z.index[v]; !ok {
		return nil, ErrUnknownVariable
	}
	if err := z.Normalize(); err != nil {
		return nil, err
	}

	remaining := make([]term.Variable, 0, len(z.vars))
	for _, u := range z.vars {
		if u != v {
			remaining = append(remaining, u)
		}
	}

	out := New(remaining...)
	for _, a := range append([]term.Variable{term.Ground}, remaining...) {
		for _, b := range append([]term.Variable{term.Ground}, remaining...) {
			c, err := z.at(a, b)
			if err != nil {
				return nil, err
			}
			i, j := out.index[a], out.index[b]
			out.bound[i][j] = c
		}
	}

	return out, nil
}

// CartesianProduct combines z with other over their disjoint variable sets
// (both may constrain Ground independently), producing a zone over the
// union. Returns ErrOverlappingVariables if the two share a non-ground
// variable.
func (z *DBMZone) CartesianProduct(other *DBMZone) (*DBMZone, error) {
	seen := make(map[term.Variable]struct{}, len(z.vars))
	for _, v := range z.vars {
		seen[v] = struct{}{}
	}
	for _, v := range other.vars {
		if _, ok := seen[v]; ok {
			return nil, ErrOverlappingVariables
		}
	}

	union := make([]term.Variable, 0, len(z.vars)+len(other.vars))
	union = append(union, z.vars...)
	union = append(union, other.vars...)
	out := New(union...)

	copyInto := func(src *DBMZone) error {
		all := append([]term.Variable{term.Ground}, src.vars...)
		for _, a := range all {
			for _, b := range all {
				c, err := src.at(a, b)
				if err != nil {
					return err
				}
				i, j := out.index[a], out.index[b]
				out.bound[i][j] = decimal.Min(out.bound[i][j], c)
			}
		}

		return nil
	}
	if err := copyInto(z); err != nil {
		return nil, err
	}
	if err := copyInto(other); err != nil {
		return nil, err
	}

	return out, nil
}

// Intersect returns the pointwise minimum of z and other's bounds. Both
// zones must have exactly the same variable set (spec.md §3). Returns
// ErrVariableSetMismatch otherwise.
func (z *DBMZone) Intersect(other *DBMZone) (*DBMZone, error) {
	if len(z.vars) != len(other.vars) {
		return nil, ErrVariableSetMismatch
	}
	out := z.Clone()
	out.normalized = false
	all := append([]term.Variable{term.Ground}, z.vars...)
	for _, a := range all {
		for _, b := range all {
			ob, err := other.at(a, b)
			if err != nil {
				return nil, ErrVariableSetMismatch
			}
			i, j := out.index[a], out.index[b]
			out.bound[i][j] = decimal.Min(out.bound[i][j], ob)
		}
	}

	return out, nil
}
