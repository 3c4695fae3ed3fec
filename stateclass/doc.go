// Package stateclass implements the state-class feature bag (spec.md §3)
// and the transition successor transform (spec.md §4.3): eligibility,
// zone successor, density conditioning, newly-enabled composition, AGE
// update, and regeneration detection. States are addressed by an arena of
// integer ids inside a SuccessionGraph, mirroring the teacher's core.Graph
// arena pattern but single-threaded (spec.md §5 does not require
// concurrent mutation within one analysis).
package stateclass
