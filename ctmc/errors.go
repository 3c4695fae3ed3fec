package ctmc

import "errors"

// Sentinel errors for the ctmc package.
var (
	// ErrStateOutOfRange indicates an operation referenced a state id
	// outside [0, NumStates).
	ErrStateOutOfRange = errors.New("ctmc: state id out of range")

	// ErrNoStates indicates an operation requiring at least one state was
	// called on an empty DTMC.
	ErrNoStates = errors.New("ctmc: no states")

	// ErrSingularMatrix indicates the LU-based solve hit a numerically
	// singular system (spec.md §7 "LU singular matrix (reducible CTMC
	// where irreducibility was assumed)").
	ErrSingularMatrix = errors.New("ctmc: singular matrix in LU solve")

	// ErrNoBSCC indicates DecomposeBSCC found no bottom strongly connected
	// component, which is impossible for a non-empty finite chain and
	// indicates a malformed graph (a state with no reachable closed set).
	ErrNoBSCC = errors.New("ctmc: no bottom strongly connected component found")
)
