package petri

import "github.com/katalvlaran/stpn/term"

// TransitionID identifies a transition within a Net. Opaque to the engine
// beyond equality and use as a map key.
type TransitionID string

// Marking is an opaque mapping from place names to non-negative token
// counts, supplied by the Petri-net collaborator. The engine never
// constructs a Marking itself; it only compares, queries, and passes
// markings produced by Net.Fire.
type Marking interface {
	// Get returns the token count at place, or 0 if the place is absent.
	Get(place string) int

	// Equal reports whether m and other describe the same marking.
	Equal(other Marking) bool

	// Key returns a canonical string usable as a map key for value-based
	// hash-consing of markings across the succession graph.
	Key() string
}

// DensityKind tags the shape of a transition's firing-time distribution.
type DensityKind uint8

const (
	// DensityEXP is an exponential distribution with a marking-dependent rate.
	DensityEXP DensityKind = iota
	// DensityDET is a deterministic (fixed) delay.
	DensityDET
	// DensityIMM is a weighted immediate (zero-delay) transition.
	DensityIMM
	// DensityGEN is a piecewise-expolynomial general distribution.
	DensityGEN
)

// StochasticTransitionFeature describes the timing behavior of one
// transition: a marking-dependent clock rate, an IMM weight, and the
// density kind driving its firing-time distribution.
type StochasticTransitionFeature struct {
	Kind      DensityKind
	ClockRate float64 // must be 1 for non-EXP transitions outside rate-scaling paths
	Weight    float64 // IMM weight; unused otherwise
	Rate      float64 // EXP rate; unused otherwise
	Delay     float64 // DET delay; unused otherwise
}

// Net is the minimal Petri-net collaborator surface: enumerate enabled
// transitions at a marking, fire one to produce a successor marking, and
// query a transition's stochastic feature. The net's internal structure
// (places, arcs, guards) is entirely external to this module.
type Net interface {
	// Enabled returns the transitions enabled at m.
	Enabled(m Marking) []TransitionID

	// Fire returns the marking reached by firing t at m. The caller is
	// responsible for having checked t is enabled at m.
	Fire(m Marking, t TransitionID) (Marking, error)

	// Feature returns t's StochasticTransitionFeature, evaluated at m
	// where the feature is marking-dependent (e.g. clock rate).
	Feature(m Marking, t TransitionID) (StochasticTransitionFeature, error)

	// Variable returns the symbolic time-to-fire variable bound to t,
	// used as the zone/density dimension for t while it is enabled.
	Variable(t TransitionID) term.Variable
}
