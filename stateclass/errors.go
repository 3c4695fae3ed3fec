package stateclass

import "errors"

var (
	// ErrNotEligible indicates the fired transition is not eligible to
	// fire in the given state class (spec.md §4.3 step 1).
	ErrNotEligible = errors.New("stateclass: transition not eligible")

	// ErrEmptySuccessorZone indicates the successor zone collapsed to the
	// empty set; the child class is discarded (spec.md §4.3 "Failure
	// semantics").
	ErrEmptySuccessorZone = errors.New("stateclass: empty successor zone")

	// ErrNoStochasticFeature indicates a successor was requested on a
	// class with no StochasticFeature attached.
	ErrNoStochasticFeature = errors.New("stateclass: class has no stochastic feature")

	// ErrTimeLock indicates a vanishing-only cycle with total outgoing
	// weight zero was encountered while resolving an IMM firing
	// (spec.md §4.6, "a time lock — signaled as a fatal error").
	ErrTimeLock = errors.New("stateclass: time lock in vanishing class")
)
