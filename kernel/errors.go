package kernel

import "errors"

// Sentinel errors for the kernel package.
var (
	// ErrInvalidTicks indicates NewTicks was called with a non-positive
	// bound/step or a ratio less than 1.
	ErrInvalidTicks = errors.New("kernel: invalid ticks configuration")

	// ErrStepNotDivisor indicates the requested integral-grid ratio does
	// not evenly divide the kernel step, violating spec.md §3's "the
	// ratio is a positive integer".
	ErrStepNotDivisor = errors.New("kernel: integral step does not evenly divide kernel step")

	// ErrUnknownRegeneration indicates a kernel query referenced a
	// regeneration id outside the discovered set.
	ErrUnknownRegeneration = errors.New("kernel: unknown regeneration id")
)
