package zone

import "errors"

// Sentinel errors for the zone package.
var (
	// ErrUnknownVariable indicates an operation referenced a Variable not
	// present in the zone's index.
	ErrUnknownVariable = errors.New("zone: unknown variable")

	// ErrNegativeInfinityBound indicates imposeBound was called with −∞,
	// which spec.md §7 forbids.
	ErrNegativeInfinityBound = errors.New("zone: -infinity bound not allowed")

	// ErrGroundProjection indicates an attempt to project out the
	// reserved Ground variable, which spec.md §7 forbids.
	ErrGroundProjection = errors.New("zone: cannot project the ground variable")

	// ErrVariableSetMismatch indicates Intersect was called on zones over
	// different variable sets (spec.md §3: "requires equal variable sets").
	ErrVariableSetMismatch = errors.New("zone: variable set mismatch")

	// ErrOverlappingVariables indicates CartesianProduct was called on
	// zones sharing a non-ground variable (spec.md §3: "disjoint variable
	// sets").
	ErrOverlappingVariables = errors.New("zone: overlapping variable sets")
)
