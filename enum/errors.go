package enum

import "errors"

var (
	// ErrNoStochasticFeature indicates a greedy-policy frontier item carries
	// a state with no TransientStochasticFeature, so it has no reaching probability
	// to order by.
	ErrNoStochasticFeature = errors.New("enum: greedy policy requires a TransientStochasticFeature")

	// ErrEmptyFrontier indicates Pop was called on an empty policy.
	ErrEmptyFrontier = errors.New("enum: frontier is empty")
)
