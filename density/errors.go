package density

import "errors"

var (
	// ErrOverlappingPieces indicates two pieces of a PartitionedFunction
	// have supports that are not disjoint.
	ErrOverlappingPieces = errors.New("density: overlapping piece supports")

	// ErrNoPieces indicates an operation was attempted on an empty PartitionedFunction.
	ErrNoPieces = errors.New("density: no pieces")

	// ErrVariableSetMismatch indicates pieces were combined whose zones
	// range over different variable sets.
	ErrVariableSetMismatch = errors.New("density: variable set mismatch between pieces")

	// ErrZeroFiringProbability indicates conditioning on a firing event
	// whose zone carries zero probability mass (spec.md §4.3: "Division by
	// a zero firing probability is a fatal logic error").
	ErrZeroFiringProbability = errors.New("density: zero firing probability")
)
