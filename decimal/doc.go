// Package decimal provides ExactDecimal, an arbitrary-precision signed
// decimal augmented with +∞, −∞, and a left/right neighborhood tag used to
// represent strict inequalities within closed-interval arithmetic.
//
// What & Why:
//
//	DBM zones and expolynomial coefficients both need exact (non-floating)
//	arithmetic that can also represent "the instant just after 2.0" or
//	"unbounded" without a separate boolean per bound. ExactDecimal folds
//	both needs into one value type: a shopspring/decimal.Decimal mantissa,
//	an infinity sign, and a Neighborhood tag.
//
// Invariants:
//
//	- An infinite ExactDecimal carries no decimal mantissa.
//	- 2.0 and 2.00 compare equal and hash equal (scale is not significant).
//	- Adding +∞ and −∞ is an indeterminate form; see WithIndeterminatePolicy.
//
// Complexity: all arithmetic operations run in the complexity of the
// underlying shopspring/decimal operation, O(1) beyond that for the
// infinity/neighborhood bookkeeping.
package decimal
