package stateclass

import (
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/petri"
)

// ImmediateBranchProbabilities implements spec.md §4.3 step 1's vanishing
// case: when s.Stochastic.IsVanishing, only the IMM transitions enabled at
// the maximum weight may fire, with probability proportional to weight
// among them (spec.md §4.6's N/R weight-weighted edge probabilities). A
// vanishing class none of whose IMM transitions carries positive total
// weight is a time lock (spec.md §4.6, §7 "Structural" errors).
func ImmediateBranchProbabilities(net petri.Net, s State) (map[petri.TransitionID]decimal.ExactDecimal, error) {
	type candidate struct {
		id     petri.TransitionID
		weight float64
	}
	var candidates []candidate
	maxWeight := 0.0
	for _, u := range s.Petri.Enabled {
		feat, err := net.Feature(s.Petri.Marking, u)
		if err != nil {
			return nil, fmt.Errorf("stateclass.ImmediateBranchProbabilities: %w", err)
		}
		if feat.Kind != petri.DensityIMM {
			continue
		}
		if feat.Weight > maxWeight {
			maxWeight = feat.Weight
			candidates = candidates[:0]
		}
		if feat.Weight == maxWeight {
			candidates = append(candidates, candidate{id: u, weight: feat.Weight})
		}
	}
	if maxWeight <= 0 {
		return nil, ErrTimeLock
	}

	total := 0.0
	for _, c := range candidates {
		total += c.weight
	}
	out := make(map[petri.TransitionID]decimal.ExactDecimal, len(candidates))
	for _, c := range candidates {
		out[c.id] = decimal.NewFromFloat(c.weight / total)
	}

	return out, nil
}

// SuccessorImmediate fires IMM transition t from s: since IMM transitions
// take zero time, the joint density and zone over the remaining timed
// variables are unchanged — only the marking, enabled set, newly-enabled
// composition, and regeneration status update (spec.md §4.3 steps 4 and 6
// reused; steps 2/3 are vacuous for a zero-delay firing).
func SuccessorImmediate(net petri.Net, s State, t petri.TransitionID, prob decimal.ExactDecimal, newPDF func(id petri.TransitionID) (density.PartitionedFunction, error)) (State, error) {
	if s.Stochastic == nil {
		return State{}, ErrNoStochasticFeature
	}

	newMarking, err := net.Fire(s.Petri.Marking, t)
	if err != nil {
		return State{}, err
	}
	newEnabled := net.Enabled(newMarking)

	stillEnabled := make(map[petri.TransitionID]bool, len(s.Petri.Enabled))
	for _, u := range s.Petri.Enabled {
		if u != t {
			stillEnabled[u] = true
		}
	}
	var newlyEnabled []petri.TransitionID
	for _, u := range newEnabled {
		if !stillEnabled[u] {
			newlyEnabled = append(newlyEnabled, u)
		}
	}

	finalDensity := s.Stochastic.Density
	expRates := make(map[petri.TransitionID]float64, len(newEnabled))
	for u, r := range s.Stochastic.ExpRates {
		if stillEnabled[u] {
			expRates[u] = r
		}
	}
	vanishing := false
	for _, ne := range newlyEnabled {
		feat, ferr := net.Feature(newMarking, ne)
		if ferr == nil && feat.Kind == petri.DensityIMM {
			vanishing = true

			continue
		}
		pdf, perr := newPDF(ne)
		if perr != nil {
			return State{}, fmt.Errorf("stateclass.SuccessorImmediate: newPDF(%s): %w", ne, perr)
		}
		finalDensity, err = finalDensity.CartesianProduct(pdf)
		if err != nil {
			return State{}, fmt.Errorf("stateclass.SuccessorImmediate: %w", err)
		}
		if ferr == nil && feat.Kind == petri.DensityEXP {
			expRates[ne] = feat.Rate
		}
	}

	var tsf *TransientStochasticFeature
	if s.TransientStochastic != nil {
		reaching, merr := decimal.Mul(s.TransientStochastic.ReachingProbability, prob)
		if merr != nil {
			return State{}, fmt.Errorf("stateclass.SuccessorImmediate: %w", merr)
		}
		tsf = &TransientStochasticFeature{ReachingProbability: reaching, EnteringTimeDensity: s.TransientStochastic.EnteringTimeDensity}
	}

	regen := detectRegeneration(net, newMarking, newEnabled, newlyEnabled)

	child := State{
		Petri: PetriFeature{Marking: newMarking, Enabled: newEnabled, NewlyEnabled: newlyEnabled},
		Stochastic: &StochasticFeature{
			Density:     finalDensity,
			ExpRates:    expRates,
			IsVanishing: vanishing,
			IsAbsorbing: len(newEnabled) == 0,
		},
		TransientStochastic: tsf,
	}
	if regen != nil && !vanishing {
		child.Regen = regen
	}
	if len(newEnabled) == 0 {
		child.Stop = &LocalStop{}
	}

	return child, nil
}
