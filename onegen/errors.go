package onegen

import "errors"

// Sentinel errors for the onegen package.
var (
	// ErrMultipleGeneral indicates more than one non-EXP transition was
	// enabled in some reachable state, violating the OneGen precondition
	// (spec.md §7 "multiple general transitions enabled in the OneGen
	// path" — Structural, fatal).
	ErrMultipleGeneral = errors.New("onegen: multiple general transitions enabled")

	// ErrNoGeneralTransition indicates the designated general transition
	// never appears enabled anywhere in the first-epoch chain.
	ErrNoGeneralTransition = errors.New("onegen: general transition never enabled")

	// ErrEmptyChain indicates BuildSubordinatedCTMC was given an initial
	// state with no reachable EXP-only states.
	ErrEmptyChain = errors.New("onegen: empty subordinated chain")

	// ErrDimensionMismatch indicates an initial distribution vector whose
	// length does not match the subordinated chain's state count.
	ErrDimensionMismatch = errors.New("onegen: initial distribution dimension mismatch")
)
