package stateclass

import (
	"sort"
	"strings"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/term"
	"github.com/katalvlaran/stpn/zone"
)

// PetriFeature carries the current marking and its enabling information.
type PetriFeature struct {
	Marking      petri.Marking
	Enabled      []petri.TransitionID
	NewlyEnabled []petri.TransitionID
}

// StochasticFeature carries the joint density of enabled-transition
// time-to-fire variables, the registered EXP rates, and the vanishing/
// absorbing flags (spec.md §3).
type StochasticFeature struct {
	Density     density.PartitionedFunction
	ExpRates    map[petri.TransitionID]float64
	IsVanishing bool
	IsAbsorbing bool
}

// GetEXPRate returns the registered rate for an EXP-distributed
// transition, or (0, false) if t is not an EXP transition here.
func (f *StochasticFeature) GetEXPRate(t petri.TransitionID) (float64, bool) {
	r, ok := f.ExpRates[t]

	return r, ok
}

// TransientStochasticFeature carries transient-analysis bookkeeping: the
// probability of reaching this class and the entering-time density over
// the AGE variable (spec.md §3).
type TransientStochasticFeature struct {
	ReachingProbability decimal.ExactDecimal
	EnteringTimeDensity density.PartitionedFunction
}

// DeterministicEnablingState is the regeneration value R: a marking plus
// the deterministic enabling times of every non-EXP enabled transition
// (spec.md §3 "Regeneration").
type DeterministicEnablingState struct {
	Marking      petri.Marking
	EnablingTime map[petri.TransitionID]decimal.ExactDecimal
}

// Regeneration tags a class as a renewal point.
type Regeneration struct {
	R DeterministicEnablingState
}

// LocalStop tags a class as terminal for local computation (spec.md §3).
type LocalStop struct{}

// State is the feature-bag "state" of spec.md §3: a mandatory PetriFeature
// plus a set of optional features, each nil when absent. A state is
// created once, by computing a successor, and is never mutated after
// insertion into a SuccessionGraph (spec.md §3 "Lifecycle").
type State struct {
	Petri               PetriFeature
	Stochastic          *StochasticFeature
	TransientStochastic *TransientStochasticFeature
	Regen               *Regeneration
	Stop                *LocalStop
}

// Key returns a canonical identity string used for value-based
// hash-consing of states across the succession graph (spec.md §9): two
// states are considered identical iff they share a marking, an enabled-
// transition set, and a zone (the zone comparison ignores variable
// ordering, same as zone.DBMZone.Equal).
func (s State) Key() string {
	var b strings.Builder
	b.WriteString(s.Petri.Marking.Key())
	b.WriteByte('|')
	ids := make([]string, len(s.Petri.Enabled))
	for i, t := range s.Petri.Enabled {
		ids[i] = string(t)
	}
	sort.Strings(ids)
	b.WriteString(strings.Join(ids, ","))

	if s.Stochastic != nil {
		for _, p := range s.Stochastic.Density.Pieces {
			b.WriteByte('|')
			b.WriteString(zoneKey(p.Zone))
		}
	}

	return b.String()
}

// zoneKey renders a zone's bound matrix as an order-independent string,
// keyed by sorted variable name rather than internal index.
func zoneKey(z *zone.DBMZone) string {
	vars := z.Variables()
	sorted := make([]term.Variable, len(vars))
	copy(sorted, vars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	all := append([]term.Variable{term.Ground}, sorted...)
	var b strings.Builder
	for _, a := range all {
		for _, c := range all {
			bound, err := z.BoundBetween(a, c)
			if err != nil {
				continue
			}
			b.WriteString(bound.HashKey())
			b.WriteByte(';')
		}
	}

	return b.String()
}
