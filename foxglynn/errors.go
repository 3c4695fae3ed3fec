package foxglynn

import "errors"

// Sentinel errors for the foxglynn package.
var (
	// ErrNonPositiveLambda indicates Compute was called with λ ≤ 0.
	ErrNonPositiveLambda = errors.New("foxglynn: lambda must be positive")

	// ErrEpsilonOutOfRange indicates ε is not in the open interval (0, 1),
	// or is below the smallest normal float64 (0x1p-1022).
	ErrEpsilonOutOfRange = errors.New("foxglynn: epsilon out of range")

	// ErrUnderflow indicates the mode weight underflowed the safe log
	// range before normalization could be applied (λ too large for the
	// chosen ε, spec.md §7 "Fox–Glynn underflow or overflow").
	ErrUnderflow = errors.New("foxglynn: mode weight underflow")

	// ErrRightTailUnsafe indicates the analytic right bound exceeded the
	// documented safety margin mode+⌈(λ+1)/2⌉ and was clipped; returned
	// only when the clip still fails to cover the required tail mass.
	ErrRightTailUnsafe = errors.New("foxglynn: right tail exceeds safety margin")
)
