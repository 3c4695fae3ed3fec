package kernel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/enum"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/stateclass"
	"github.com/katalvlaran/stpn/term"
)

// pendingRegen is one not-yet-expanded regeneration root discovered while
// walking another regeneration's tree.
type pendingRegen struct {
	id    int
	state stateclass.State
}

// BuildKernel expands the regenerative forest of spec.md §4.5 starting
// from initial (itself a regeneration, per stateclass.State.Regen), and
// samples the local/global kernels on ticks. net and newPDF are threaded
// through to stateclass exactly as enum.Enumerate does. monitor may be
// nil. Every regeneration discovered is expanded once; none is skipped
// because of its elapsed enabling time, whatever ticks.Bound is.
func BuildKernel(
	net petri.Net,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
	initial stateclass.State,
	ticks Ticks,
	monitor enum.AnalysisMonitor,
) (*Kernel, error) {
	if monitor == nil {
		monitor = enum.NoopMonitor{}
	}
	if initial.Regen == nil {
		return nil, fmt.Errorf("kernel.BuildKernel: initial state is not a regeneration")
	}

	k := &Kernel{Ticks: ticks}
	rootKey := regenKey(initial.Regen.R)
	k.Regens = append(k.Regens, rootKey)
	k.ensureSize()

	queue := []pendingRegen{{id: 0, state: resetTransient(initial)}}
	for len(queue) > 0 {
		if monitor.Interrupted() {
			monitor.Info("kernel.BuildKernel: interrupted, returning partial kernel")

			break
		}
		root := queue[0]
		queue = queue[1:]
		more, err := walkTree(net, newPDF, root, ticks, k, monitor)
		if err != nil {
			return k, err
		}
		queue = append(queue, more...)
	}

	return k, nil
}

// resetTransient returns s with its TransientStochastic feature reset to
// a fresh regeneration root: reaching probability 1, entering-time density
// a Dirac point mass at AGE=0 (spec.md §3 "Regeneration" — future
// evolution is independent of the past given the marking).
func resetTransient(s stateclass.State) stateclass.State {
	s.TransientStochastic = &stateclass.TransientStochasticFeature{
		ReachingProbability: decimal.NewFromInt(1),
		EnteringTimeDensity: diracAtZero(),
	}

	return s
}

// diracAtZero returns a degenerate PartitionedFunction over AGE whose
// entire mass sits at AGE=0, used as the entering-time density of a fresh
// regeneration root.
func diracAtZero() density.PartitionedFunction {
	// A single-point zone [0,0] with constant density 1 integrates to 1
	// over that point under the box-zone convention density.Integrate
	// already uses elsewhere in this module (see density/integrate.go).
	z := zoneAtPoint(term.Age)

	return density.New(density.Piece{Zone: z, Fn: constantOne()})
}

// walkTree expands root's stochastic tree by firing every enabled
// transition of every non-regeneration node reached, recording local
// kernel contributions at each node and global kernel contributions (plus
// newly discovered regeneration roots) whenever a deeper regeneration is
// reached.
func walkTree(
	net petri.Net,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
	root pendingRegen,
	ticks Ticks,
	k *Kernel,
	monitor enum.AnalysisMonitor,
) ([]pendingRegen, error) {
	type node struct {
		state  stateclass.State
		isRoot bool
	}
	var discovered []pendingRegen
	frontier := []node{{state: root.state, isRoot: true}}

	for len(frontier) > 0 {
		if monitor.Interrupted() {
			break
		}
		cur := frontier[0]
		frontier = frontier[1:]
		s := cur.state

		if !cur.isRoot && s.Regen != nil {
			childKey := regenKey(s.Regen.R)
			childID := k.RegenIndex(childKey)
			if childID == -1 {
				childID = len(k.Regens)
				k.Regens = append(k.Regens, childKey)
				k.ensureSize()
				discovered = append(discovered, pendingRegen{id: childID, state: resetTransient(s)})
			}
			if err := contributeGlobal(k, ticks, root.id, childID, s); err != nil {
				return nil, err
			}

			continue
		}

		markKey := s.Petri.Marking.Key()
		markID := k.MarkingIndex(markKey)
		if markID == -1 {
			markID = len(k.Markings)
			k.Markings = append(k.Markings, markKey)
			k.ensureSize()
		}
		if err := contributeLocal(k, ticks, root.id, markID, s); err != nil {
			return nil, err
		}

		if s.Stop != nil || len(s.Petri.Enabled) == 0 {
			continue
		}

		for _, t := range s.Petri.Enabled {
			child, _, err := fireDispatch(net, newPDF, s, t)
			if err != nil {
				continue // not eligible this race, or this branch is not this transition's turn
			}
			frontier = append(frontier, node{state: child})
		}
	}

	return discovered, nil
}

// fireDispatch fires transition t from s, routing through the vanishing
// IMM-race rule or the timed-race rule exactly as enum.Enumerate's
// internal fireOne does.
func fireDispatch(
	net petri.Net,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
	s stateclass.State,
	t petri.TransitionID,
) (stateclass.State, decimal.ExactDecimal, error) {
	if s.Stochastic != nil && s.Stochastic.IsVanishing {
		probs, err := stateclass.ImmediateBranchProbabilities(net, s)
		if err != nil {
			return stateclass.State{}, decimal.ExactDecimal{}, err
		}
		p, ok := probs[t]
		if !ok {
			return stateclass.State{}, decimal.ExactDecimal{}, stateclass.ErrNotEligible
		}
		child, err := stateclass.SuccessorImmediate(net, s, t, p, newPDF)

		return child, p, err
	}

	return stateclass.Successor(net, s, t, newPDF)
}

// regenKey renders a DeterministicEnablingState as a canonical string for
// identity comparison across the regenerative forest.
func regenKey(r stateclass.DeterministicEnablingState) string {
	var b strings.Builder
	b.WriteString(r.Marking.Key())

	ids := make([]string, 0, len(r.EnablingTime))
	for id := range r.EnablingTime {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		b.WriteByte('|')
		b.WriteString(id)
		b.WriteByte('=')
		b.WriteString(r.EnablingTime[petri.TransitionID(id)].HashKey())
	}

	return b.String()
}
