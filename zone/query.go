package zone

import (
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/term"
)

// ContainsPoint reports whether the given binding of every non-ground
// variable (Ground is implicitly 0) satisfies all of z's constraints.
func (z *DBMZone) ContainsPoint(point map[term.Variable]decimal.ExactDecimal) bool {
	values := make([]decimal.ExactDecimal, z.dim())
	values[groundIndex] = decimal.Zero()
	for _, v := range z.vars {
		p, ok := point[v]
		if !ok {
			return false
		}
		values[z.index[v]] = p
	}

	n := z.dim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			diff, err := decimal.Sub(values[i], values[j])
			if err != nil {
				return false
			}
			if decimal.Compare(diff, z.bound[i][j]) > 0 {
				return false
			}
		}
	}

	return true
}

// ContainsZone reports whether z ⊇ other: both are normalized and every
// bound of z is at least as loose as the corresponding bound of other
// (the standard DBM containment test). Requires identical variable sets.
func (z *DBMZone) ContainsZone(other *DBMZone) (bool, error) {
	if len(z.vars) != len(other.vars) {
		return false, ErrVariableSetMismatch
	}
	if err := z.Normalize(); err != nil {
		return false, err
	}
	if err := other.Normalize(); err != nil {
		return false, err
	}
	if other.IsEmpty() {
		return true, nil
	}
	if z.IsEmpty() {
		return false, nil
	}

	all := append([]term.Variable{term.Ground}, z.vars...)
	for _, a := range all {
		for _, b := range all {
			if a == b {
				continue
			}
			zb, err := z.at(a, b)
			if err != nil {
				return false, err
			}
			ob, err := other.at(a, b)
			if err != nil {
				return false, ErrVariableSetMismatch
			}
			if decimal.Compare(zb, ob) < 0 {
				return false, nil
			}
		}
	}

	return true, nil
}

// CanVariableBeLowestOrEqual reports whether the zone admits v ≤ x for
// every x in others, i.e. whether constraining v to be the minimum among
// others is consistent with z's existing constraints (spec.md §3). This
// holds iff, for every x in others, the lower bound on v−x (which is
// −c[x][v]) is ≤ 0, equivalently c[x][v] ≥ 0.
func (z *DBMZone) CanVariableBeLowestOrEqual(v term.Variable, others []term.Variable) (bool, error) {
	if _, ok := z.index[v]; !ok {
		return false, ErrUnknownVariable
	}
	if err := z.Normalize(); err != nil {
		return false, err
	}
	for _, x := range others {
		if x == v {
			continue
		}
		xv, err := z.at(x, v)
		if err != nil {
			return false, err
		}
		if xv.Float64() < 0 {
			return false, nil
		}
	}

	return true, nil
}

// Equal reports whether z and other describe the same feasible region, up
// to a permutation of variable ordering (spec.md §3: "Equality ignores
// variable ordering"). Both zones are normalized first.
func (z *DBMZone) Equal(other *DBMZone) (bool, error) {
	if len(z.vars) != len(other.vars) {
		return false, nil
	}
	zSet := make(map[term.Variable]struct{}, len(z.vars))
	for _, v := range z.vars {
		zSet[v] = struct{}{}
	}
	for _, v := range other.vars {
		if _, ok := zSet[v]; !ok {
			return false, nil
		}
	}
	if err := z.Normalize(); err != nil {
		return false, err
	}
	if err := other.Normalize(); err != nil {
		return false, err
	}
	if z.IsEmpty() && other.IsEmpty() {
		return true, nil
	}

	all := append([]term.Variable{term.Ground}, z.vars...)
	for _, a := range all {
		for _, b := range all {
			za, err := z.at(a, b)
			if err != nil {
				return false, err
			}
			ob, err := other.at(a, b)
			if err != nil {
				return false, err
			}
			if !decimal.Equal(za, ob) {
				return false, nil
			}
		}
	}

	return true, nil
}
