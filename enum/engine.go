package enum

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/stateclass"
)

// Enumerate drives spec.md §4.4's frontier expansion: starting from
// initial, pop states by policy, skip expansion where stop reports true,
// otherwise fire every enabled transition (racing the timed ones through
// stateclass.Successor, or resolving a vanishing class's IMM race through
// stateclass.ImmediateBranchProbabilities/SuccessorImmediate), intern each
// child, and record the firing edge. net and newPDF are threaded straight
// through to stateclass. monitor and stop may be nil (NoopMonitor and
// "never stop" respectively). errorBound is the greedy truncation
// threshold (spec.md §4.4 "Truncation policy (greedy)"); pass
// decimal.Zero() to disable early truncation and enumerate exhaustively.
func Enumerate(
	net petri.Net,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
	initial stateclass.State,
	policy Policy,
	monitor AnalysisMonitor,
	stop StopCriterion,
	errorBound decimal.ExactDecimal,
) (*stateclass.SuccessionGraph, TruncationReport, error) {
	if monitor == nil {
		monitor = NoopMonitor{}
	}
	if stop == nil {
		stop = func(int, decimal.ExactDecimal) bool { return false }
	}

	g := stateclass.NewSuccessionGraph()
	rootID := g.Intern(initial)
	frontierMass := reachingProbOf(initial)
	policy.Push(FrontierItem{ID: rootID, ReachingProb: frontierMass})

	var report TruncationReport

	for policy.Len() > 0 {
		if monitor.Interrupted() {
			monitor.Info("enum: interrupted, returning partial succession graph")
			report.Truncated = true

			break
		}
		if !errorBound.IsZero() && decimal.Compare(frontierMass, errorBound) < 0 {
			monitor.Info("enum: unexplored reaching probability below error bound, truncating")
			report.Truncated = true

			break
		}

		item, ok := policy.Pop()
		if !ok {
			break
		}
		var err error
		frontierMass, err = decimal.Sub(frontierMass, item.ReachingProb)
		if err != nil {
			return g, report, fmt.Errorf("enum.Enumerate: %w", err)
		}

		state := g.State(item.ID)
		if stop(item.ID, item.ReachingProb) {
			continue
		}

		for _, t := range state.Petri.Enabled {
			child, prob, fireErr := fireOne(net, newPDF, state, t)
			if errors.Is(fireErr, stateclass.ErrNotEligible) {
				continue
			}
			if fireErr != nil {
				return g, report, fmt.Errorf("enum.Enumerate: %w", fireErr)
			}

			childID := g.Intern(child)
			if err := g.AddEdge(item.ID, childID, t, prob); err != nil {
				return g, report, fmt.Errorf("enum.Enumerate: %w", err)
			}

			childReaching := reachingProbOf(child)
			policy.Push(FrontierItem{ID: childID, ReachingProb: childReaching})
			frontierMass, err = decimal.Add(frontierMass, childReaching)
			if err != nil {
				return g, report, fmt.Errorf("enum.Enumerate: %w", err)
			}
		}
	}
	report.UnexploredMass = frontierMass

	return g, report, nil
}

// fireOne dispatches a single transition firing to the timed-race
// successor rule or the vanishing-class IMM rule, depending on the
// popped state's StochasticFeature.
func fireOne(
	net petri.Net,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
	state stateclass.State,
	t petri.TransitionID,
) (stateclass.State, decimal.ExactDecimal, error) {
	if state.Stochastic != nil && state.Stochastic.IsVanishing {
		probs, err := stateclass.ImmediateBranchProbabilities(net, state)
		if err != nil {
			return stateclass.State{}, decimal.ExactDecimal{}, err
		}
		p, ok := probs[t]
		if !ok {
			return stateclass.State{}, decimal.ExactDecimal{}, stateclass.ErrNotEligible
		}
		child, err := stateclass.SuccessorImmediate(net, state, t, p, newPDF)

		return child, p, err
	}

	return stateclass.Successor(net, state, t, newPDF)
}

// reachingProbOf reads a state's reaching probability for frontier
// ordering and truncation accounting; states with no TransientStochastic
// feature (steady-state enumeration) are weighted zero, which leaves FIFO
// ordering and exhaustive (errorBound-disabled) enumeration unaffected.
func reachingProbOf(s stateclass.State) decimal.ExactDecimal {
	if s.TransientStochastic == nil {
		return decimal.Zero()
	}

	return s.TransientStochastic.ReachingProbability
}
