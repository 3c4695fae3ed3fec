package stateclass

import (
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/expoly"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/term"
	"github.com/katalvlaran/stpn/zone"
)

// Initial builds the root State for marking m: every transition net
// reports enabled is treated as newly enabled (spec.md §4.3's "newly
// enabled" Cartesian-product step, applied here to the empty starting
// density rather than to a fired parent), the joint density is their
// independent PDFs' Cartesian product, and, unless an IMM transition is
// enabled (a vanishing class, which gets no Regeneration), the class is a
// regeneration by construction (spec.md §3 "Regeneration": a state reached with zero
// elapsed time on every non-EXP enabled transition). newPDF supplies each
// enabled transition's initial density exactly as stateclass.Successor
// requires it for newly-enabled transitions.
func Initial(net petri.Net, m petri.Marking, newPDF func(t petri.TransitionID) (density.PartitionedFunction, error)) (State, error) {
	enabled := net.Enabled(m)

	joint := density.New(density.Piece{Zone: zone.New(), Fn: expoly.ConstantValue(decimal.NewFromInt(1))})
	expRates := make(map[petri.TransitionID]float64, len(enabled))
	vanishing := false
	enabling := make(map[petri.TransitionID]decimal.ExactDecimal, len(enabled))

	for _, t := range enabled {
		feat, err := net.Feature(m, t)
		if err != nil {
			return State{}, fmt.Errorf("stateclass.Initial: %w", err)
		}
		if feat.Kind == petri.DensityIMM {
			vanishing = true

			continue
		}
		pdf, err := newPDF(t)
		if err != nil {
			return State{}, fmt.Errorf("stateclass.Initial: newPDF(%s): %w", t, err)
		}
		joint, err = joint.CartesianProduct(pdf)
		if err != nil {
			return State{}, fmt.Errorf("stateclass.Initial: %w", err)
		}
		if feat.Kind == petri.DensityEXP {
			expRates[t] = feat.Rate

			continue
		}
		enabling[t] = decimal.Zero()
	}

	s := State{
		Petri: PetriFeature{Marking: m, Enabled: enabled, NewlyEnabled: enabled},
		Stochastic: &StochasticFeature{
			Density:     joint,
			ExpRates:    expRates,
			IsVanishing: vanishing,
			IsAbsorbing: len(enabled) == 0,
		},
		TransientStochastic: &TransientStochasticFeature{
			ReachingProbability: decimal.NewFromInt(1),
			EnteringTimeDensity: diracAtZeroAge(),
		},
	}
	if !vanishing {
		s.Regen = &Regeneration{R: DeterministicEnablingState{Marking: m, EnablingTime: enabling}}
	}
	if len(enabled) == 0 {
		s.Stop = &LocalStop{}
	}

	return s, nil
}

// diracAtZeroAge returns a degenerate PartitionedFunction over term.Age
// whose entire mass sits at AGE=0, the entering-time density of a fresh
// root (spec.md §3 "Regeneration").
func diracAtZeroAge() density.PartitionedFunction {
	z := zone.New(term.Age)
	_ = z.ImposeBound(term.Age, term.Ground, decimal.Zero())
	_ = z.ImposeBound(term.Ground, term.Age, decimal.Zero())

	return density.New(density.Piece{Zone: z, Fn: expoly.ConstantValue(decimal.NewFromInt(1))})
}
