package stateclass

import (
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/term"
)

// Successor computes the child State reached by firing t from s, together
// with the firing probability, implementing spec.md §4.3's six-step
// transform. net supplies marking/enabling/firing and per-transition
// stochastic features; newPDF builds the independent initial density and
// zone for a transition newly enabled in the child marking (callers
// typically derive this from net.Feature's density kind: an exponential
// piece for EXP, a point mass at the delay for DET, a user-supplied
// piecewise density for GEN).
func Successor(net petri.Net, s State, t petri.TransitionID, newPDF func(id petri.TransitionID) (density.PartitionedFunction, error)) (State, decimal.ExactDecimal, error) {
	if s.Stochastic == nil {
		return State{}, decimal.ExactDecimal{}, ErrNoStochasticFeature
	}
	tVar := net.Variable(t)
	others := otherTimedVars(net, s, t)

	pieces, totalProb, err := fireAcrossPieces(s.Stochastic.Density, tVar, others)
	if err != nil {
		return State{}, decimal.ExactDecimal{}, err
	}
	if len(pieces) == 0 {
		return State{}, decimal.ExactDecimal{}, ErrNotEligible
	}

	recip, err := decimal.Div(decimal.NewFromInt(1), totalProb)
	if err != nil {
		return State{}, decimal.ExactDecimal{}, fmt.Errorf("stateclass.Successor: %w", err)
	}
	marginal := density.New(pieces...).Scale(recip)

	newMarking, err := net.Fire(s.Petri.Marking, t)
	if err != nil {
		return State{}, decimal.ExactDecimal{}, err
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

	// Step 4: Cartesian-product with independent PDFs of newly enabled transitions.
	finalDensity := marginal
	expRates := make(map[petri.TransitionID]float64, len(newEnabled))
	for u, r := range s.Stochastic.ExpRates {
		if stillEnabled[u] {
			expRates[u] = r
		}
	}
	for _, ne := range newlyEnabled {
		pdf, err := newPDF(ne)
		if err != nil {
			return State{}, decimal.ExactDecimal{}, fmt.Errorf("stateclass.Successor: newPDF(%s): %w", ne, err)
		}
		finalDensity, err = finalDensity.CartesianProduct(pdf)
		if err != nil {
			return State{}, decimal.ExactDecimal{}, fmt.Errorf("stateclass.Successor: %w", err)
		}
		if feat, ferr := net.Feature(newMarking, ne); ferr == nil && feat.Kind == petri.DensityEXP {
			expRates[ne] = feat.Rate
		}
	}

	// Step 5: AGE update (transient analysis only).
	var tsf *TransientStochasticFeature
	if s.TransientStochastic != nil {
		reaching, err := decimal.Mul(s.TransientStochastic.ReachingProbability, totalProb)
		if err != nil {
			return State{}, decimal.ExactDecimal{}, fmt.Errorf("stateclass.Successor: %w", err)
		}
		entering, err := s.TransientStochastic.EnteringTimeDensity.Shift(term.Age, tVar)
		if err != nil {
			return State{}, decimal.ExactDecimal{}, fmt.Errorf("stateclass.Successor: %w", err)
		}
		tsf = &TransientStochasticFeature{ReachingProbability: reaching, EnteringTimeDensity: entering}
	}

	// Step 6: regeneration detection.
	regen := detectRegeneration(net, newMarking, newEnabled, newlyEnabled)

	child := State{
		Petri: PetriFeature{Marking: newMarking, Enabled: newEnabled, NewlyEnabled: newlyEnabled},
		Stochastic: &StochasticFeature{
			Density:     finalDensity,
			ExpRates:    expRates,
			IsVanishing: false,
			IsAbsorbing: len(newEnabled) == 0,
		},
		TransientStochastic: tsf,
	}
	if regen != nil {
		child.Regen = regen
	}
	if len(newEnabled) == 0 {
		child.Stop = &LocalStop{}
	}

	return child, totalProb, nil
}

// otherTimedVars returns the time-to-fire variables of every other enabled
// non-immediate transition (spec.md §4.3 step 1 excludes IMM transitions
// from the "x_t ≤ x_u" race — those are resolved by SuccessorImmediate instead).
func otherTimedVars(net petri.Net, s State, t petri.TransitionID) []term.Variable {
	vars := make([]term.Variable, 0, len(s.Petri.Enabled))
	for _, u := range s.Petri.Enabled {
		if u == t {
			continue
		}
		feat, err := net.Feature(s.Petri.Marking, u)
		if err != nil || feat.Kind == petri.DensityIMM {
			continue
		}
		vars = append(vars, net.Variable(u))
	}

	return vars
}

// fireAcrossPieces applies spec.md §4.3 steps 2–3 independently to every
// piece of pf (each piece may carry a distinct zone), shifting the other
// variables by tVar before marginalizing tVar out, and returns the
// resulting (unnormalized, but individually proper) pieces plus their
// summed probability mass.
func fireAcrossPieces(pf density.PartitionedFunction, tVar term.Variable, others []term.Variable) ([]density.Piece, decimal.ExactDecimal, error) {
	var out []density.Piece
	total := decimal.Zero()

	for _, p := range pf.Pieces {
		eligible, err := p.Zone.CanVariableBeLowestOrEqual(tVar, others)
		if err != nil {
			return nil, decimal.ExactDecimal{}, err
		}
		if !eligible {
			continue
		}

		firingZone := p.Zone.Clone()
		for _, u := range others {
			if err := firingZone.ImposeBound(tVar, u, decimal.Zero()); err != nil {
				return nil, decimal.ExactDecimal{}, err
			}
		}
		if err := firingZone.Normalize(); err != nil {
			return nil, decimal.ExactDecimal{}, err
		}
		if firingZone.IsEmpty() {
			continue
		}

		shifted := p.Fn
		for _, u := range others {
			shifted, err = shifted.Shift(u, tVar)
			if err != nil {
				return nil, decimal.ExactDecimal{}, err
			}
		}

		piecePF := density.New(density.Piece{Zone: firingZone, Fn: shifted})
		marginalPF, err := piecePF.MarginalizeOut(tVar)
		if err != nil {
			return nil, decimal.ExactDecimal{}, err
		}
		mass, err := marginalPF.Integrate()
		if err != nil {
			return nil, decimal.ExactDecimal{}, err
		}
		if mass.IsZero() {
			continue
		}

		out = append(out, marginalPF.Pieces...)
		total, err = decimal.Add(total, mass)
		if err != nil {
			return nil, decimal.ExactDecimal{}, err
		}
	}

	if total.IsZero() {
		return nil, decimal.ExactDecimal{}, density.ErrZeroFiringProbability
	}

	return out, total, nil
}

// detectRegeneration implements spec.md §4.3 step 6: the child is a
// regeneration iff every non-EXP enabled transition in the new marking is
// newly enabled (zero elapsed time), i.e. the deterministic enabling-time
// vector is fully determined by the marking alone.
func detectRegeneration(net petri.Net, m petri.Marking, enabled, newlyEnabled []petri.TransitionID) *Regeneration {
	newSet := make(map[petri.TransitionID]bool, len(newlyEnabled))
	for _, u := range newlyEnabled {
		newSet[u] = true
	}
	enabling := make(map[petri.TransitionID]decimal.ExactDecimal, len(enabled))
	for _, u := range enabled {
		feat, err := net.Feature(m, u)
		if err != nil {
			return nil
		}
		if feat.Kind == petri.DensityEXP {
			continue
		}
		if !newSet[u] {
			return nil
		}
		enabling[u] = decimal.Zero()
	}

	return &Regeneration{R: DeterministicEnablingState{Marking: m, EnablingTime: enabling}}
}
