package zone

import "github.com/katalvlaran/stpn/decimal"

// Normalize puts z into canonical shortest-path form via Floyd–Warshall
// over the (+, min) semiring, skipping k∈{i,j} so a single relax step never
// feeds a not-yet-settled diagonal back into itself (spec.md §4, adapted
// from matrix/ops/floyd_warshal.go). Idempotent: normalize∘normalize =
// normalize (spec.md §8 property 1). After normalization, z.IsEmpty()
// reflects whether any diagonal went negative during relaxation, and every
// diagonal entry reads +∞ per spec.md §3's documented convention.
func (z *DBMZone) Normalize() error {
	if z.normalized {
		return nil
	}
	n := z.dim()

	// Stage 1: triple-nested relax, skipping k==i or k==j.
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			for j := 0; j < n; j++ {
				if j == k {
					continue
				}
				viaK, err := decimal.Add(z.bound[i][k], z.bound[k][j])
				if err != nil {
					continue // indeterminate (+inf+-inf can't occur with upper bounds only, but stay defensive)
				}
				if decimal.Compare(viaK, z.bound[i][j]) < 0 {
					z.bound[i][j] = viaK
				}
			}
		}
	}

	// Stage 2: detect emptiness from negative diagonal entries, then
	// reset the diagonal to +∞ per the documented post-normalization
	// convention (spec.md §3).
	empty := false
	for i := 0; i < n; i++ {
		if z.bound[i][i].Float64() < 0 {
			empty = true
		}
		z.bound[i][i] = decimal.PositiveInfinity()
	}

	z.normalized = true
	z.empty = empty

	return nil
}

// IsEmpty reports whether the zone's feasible region is empty. Normalizes
// first if needed.
func (z *DBMZone) IsEmpty() bool {
	_ = z.Normalize()

	return z.empty
}

// IsFullDimensional reports whether the zone has non-empty interior: every
// pair of distinct variables has strictly positive total width
// (c[i][j]+c[j][i] > 0), i.e. no pair is pinned to an exact difference.
func (z *DBMZone) IsFullDimensional() bool {
	if z.IsEmpty() {
		return false
	}
	n := z.dim()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum, err := decimal.Add(z.bound[i][j], z.bound[j][i])
			if err != nil {
				continue
			}
			if sum.Float64() <= 0 {
				return false
			}
		}
	}

	return true
}
