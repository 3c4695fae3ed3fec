package decimal

import (
	"fmt"
	"math"

	shop "github.com/shopspring/decimal"
)

const (
	posInf = math.MaxFloat64
	negInf = -math.MaxFloat64
)

// Add returns d + o.
//
// Contract (spec.md §4.1):
//   - +∞ + finite = +∞; −∞ + finite = −∞.
//   - +∞ + −∞ is indeterminate; resolved per the active IndeterminatePolicy.
//   - Neighborhoods combine: left⊕left stays left, right⊕right stays right,
//     left⊕right cancels to Exact (they represent opposing infinitesimal
//     offsets that sum to zero net offset).
func Add(d, o ExactDecimal) (ExactDecimal, error) {
	// Stage 1: handle infinities.
	if d.sign != Finite || o.sign != Finite {
		if d.sign != Finite && o.sign != Finite && d.sign != o.sign {
			return resolveIndeterminate()
		}
		if d.sign != Finite {
			return ExactDecimal{sign: d.sign}, nil
		}

		return ExactDecimal{sign: o.sign}, nil
	}

	// Stage 2: finite sum with combined neighborhood.
	return ExactDecimal{
		sign:  Finite,
		val:   d.val.Add(o.val),
		neigh: combineNeighborhoods(d.neigh, o.neigh),
	}, nil
}

// Negate returns −d, swapping Left↔Right neighborhoods (spec.md §4.1).
func Negate(d ExactDecimal) ExactDecimal {
	switch d.sign {
	case PosInf:
		return ExactDecimal{sign: NegInf}
	case NegInf:
		return ExactDecimal{sign: PosInf}
	default:
		return ExactDecimal{sign: Finite, val: d.val.Neg(), neigh: swapNeighborhood(d.neigh)}
	}
}

// Sub returns d − o, implemented via Negate + Add per spec.md §4.1.
func Sub(d, o ExactDecimal) (ExactDecimal, error) {
	return Add(d, Negate(o))
}

// Mul returns d * o.
//
// Contract: 0·±∞ is indeterminate, resolved per the active
// IndeterminatePolicy; ±∞ · finite-nonzero follows the usual sign rule.
func Mul(d, o ExactDecimal) (ExactDecimal, error) {
	dInf, oInf := d.sign != Finite, o.sign != Finite
	if dInf || oInf {
		if (dInf && o.IsZero()) || (oInf && d.IsZero()) {
			return resolveIndeterminate()
		}
		sign := infSignOfProduct(d, o)

		return ExactDecimal{sign: sign}, nil
	}

	return ExactDecimal{sign: Finite, val: d.val.Mul(o.val)}, nil
}

// infSignOfProduct determines the resulting infinite sign for a product
// where at least one operand is infinite and neither indeterminate branch
// applies.
func infSignOfProduct(d, o ExactDecimal) Sign {
	neg := false
	if d.sign == NegInf || (d.sign == Finite && d.val.IsNegative()) {
		neg = !neg
	}
	if o.sign == NegInf || (o.sign == Finite && o.val.IsNegative()) {
		neg = !neg
	}
	if neg {
		return NegInf
	}

	return PosInf
}

// Div returns d / o. Returns ErrDivideByZero if o is exact zero.
func Div(d, o ExactDecimal) (ExactDecimal, error) {
	if o.sign == Finite && o.val.IsZero() {
		return ExactDecimal{}, ErrDivideByZero
	}
	if o.sign != Finite {
		// finite / ±∞ = 0 (standard convention, not indeterminate).
		if d.sign == Finite {
			return Zero(), nil
		}
		// ±∞ / ±∞ is indeterminate under the same policy as +∞+−∞.
		return resolveIndeterminate()
	}
	if d.sign != Finite {
		sign := d.sign
		if o.val.IsNegative() {
			sign = flipSign(sign)
		}

		return ExactDecimal{sign: sign}, nil
	}

	q := d.val.DivRound(o.val, int32(shop.DivisionPrecision))

	return ExactDecimal{sign: Finite, val: q}, nil
}

// Pow raises d to a non-negative integer exponent n, 0 <= n <= 999_999_999
// per spec.md §4.1.
func Pow(d ExactDecimal, n int64) (ExactDecimal, error) {
	if n < 0 {
		return ExactDecimal{}, ErrNegativeExponent
	}
	if n > 999_999_999 {
		return ExactDecimal{}, ErrExponentTooLarge
	}
	if d.sign != Finite {
		if n == 0 {
			return NewFromInt(1), nil
		}
		sign := d.sign
		if sign == NegInf && n%2 == 0 {
			sign = PosInf
		}

		return ExactDecimal{sign: sign}, nil
	}

	return ExactDecimal{sign: Finite, val: d.val.Pow(shop.NewFromInt(n))}, nil
}

// Abs returns the absolute value of d.
func Abs(d ExactDecimal) ExactDecimal {
	if d.sign == NegInf {
		return ExactDecimal{sign: PosInf}
	}
	if d.sign == PosInf {
		return d
	}

	return ExactDecimal{sign: Finite, val: d.val.Abs()}
}

// Compare returns -1, 0, +1 following the usual ordering, with ±∞ sorting
// outside all finite values and Left < Exact < Right for equal finite
// mantissas (spec.md's neighborhood-as-strict-inequality convention).
func Compare(d, o ExactDecimal) int {
	if d.sign != o.sign {
		if rank(d.sign) < rank(o.sign) {
			return -1
		}

		return 1
	}
	if d.sign != Finite {
		return 0
	}
	if c := d.val.Cmp(o.val); c != 0 {
		return c
	}

	neighRank := func(n Neighborhood) int {
		switch n {
		case Left:
			return -1
		case Right:
			return 1
		default:
			return 0
		}
	}
	dn, on := neighRank(d.neigh), neighRank(o.neigh)
	switch {
	case dn < on:
		return -1
	case dn > on:
		return 1
	default:
		return 0
	}
}

// Equal reports whether d and o compare equal (scale-insensitive: 2.0 and
// 2.00 are equal per spec.md §3).
func Equal(d, o ExactDecimal) bool { return Compare(d, o) == 0 }

// Min returns the smaller of d and o.
func Min(d, o ExactDecimal) ExactDecimal {
	if Compare(d, o) <= 0 {
		return d
	}

	return o
}

// Max returns the larger of d and o.
func Max(d, o ExactDecimal) ExactDecimal {
	if Compare(d, o) >= 0 {
		return d
	}

	return o
}

// HashKey returns a canonical string usable as a map key such that two
// ExactDecimal values that compare Equal produce the same key, and ±∞
// values hash to fixed sentinels regardless of neighborhood (spec.md §4.1:
// "±∞ hash to fixed sentinels").
func (d ExactDecimal) HashKey() string {
	switch d.sign {
	case PosInf:
		return "+Inf"
	case NegInf:
		return "-Inf"
	default:
		r := d.val.Rat()

		return fmt.Sprintf("%s%s", r.RatString(), neighSuffix(d.neigh))
	}
}

func neighSuffix(n Neighborhood) string {
	switch n {
	case Left:
		return "|L"
	case Right:
		return "|R"
	default:
		return "|E"
	}
}

func rank(s Sign) int {
	switch s {
	case NegInf:
		return -1
	case PosInf:
		return 1
	default:
		return 0
	}
}

func flipSign(s Sign) Sign {
	switch s {
	case PosInf:
		return NegInf
	case NegInf:
		return PosInf
	default:
		return s
	}
}

func resolveIndeterminate() (ExactDecimal, error) {
	if activePolicy == PolicyZero {
		return Zero(), nil
	}

	return ExactDecimal{}, ErrIndeterminate
}

func combineNeighborhoods(a, b Neighborhood) Neighborhood {
	if a == Exact {
		return b
	}
	if b == Exact {
		return a
	}
	if a == b {
		return a
	}

	return Exact // Left cancels Right
}

func swapNeighborhood(n Neighborhood) Neighborhood {
	switch n {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return Exact
	}
}

// String renders d in a human-readable decimal form; ±∞ render as "+Inf"/
// "-Inf".
func (d ExactDecimal) String() string {
	switch d.sign {
	case PosInf:
		return "+Inf"
	case NegInf:
		return "-Inf"
	default:
		return d.val.String()
	}
}
