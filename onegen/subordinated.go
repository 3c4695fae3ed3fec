package onegen

import (
	"fmt"

	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/stateclass"
)

// BuildSubordinatedCTMC walks the first-epoch succession chain from
// initial, firing every enabled transition except genID, and records the
// resulting states/rates as a SubordinatedCTMC generator (spec.md §4.6
// "Build the CTMC from the first-epoch succession chain, excluding the
// GEN transition"). genDensity is the excluded transition's own firing
// PDF, supplied by the caller's newPDF the same way stateclass does.
//
// initial must have exactly one non-EXP enabled transition (genID) or
// none; any other non-EXP transition found enabled while walking is
// reported as ErrMultipleGeneral.
func BuildSubordinatedCTMC(
	net petri.Net,
	initial stateclass.State,
	genID petri.TransitionID,
	newPDF func(t petri.TransitionID) (density.PartitionedFunction, error),
) (*SubordinatedCTMC, error) {
	genDensity, err := newPDF(genID)
	if err != nil {
		return nil, fmt.Errorf("onegen.BuildSubordinatedCTMC: %w", err)
	}

	sub := &SubordinatedCTMC{GeneralDensity: genDensity}
	index := map[string]int{}
	queue := []stateclass.State{initial}

	rootKey := initial.Petri.Marking.Key()
	index[rootKey] = 0
	sub.States = append(sub.States, rootKey)
	sub.ExitRate = append(sub.ExitRate, 0)
	sub.Edges = append(sub.Edges, nil)
	sub.Initial = 0

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		id := index[s.Petri.Marking.Key()]

		exitRate := 0.0
		for _, t := range s.Petri.Enabled {
			rate, isExp := exprate(s, t)
			if !isExp {
				if t != genID {
					return nil, fmt.Errorf("onegen.BuildSubordinatedCTMC: %w: %s", ErrMultipleGeneral, t)
				}

				continue
			}
			if t == genID {
				continue
			}

			childMarking, err := net.Fire(s.Petri.Marking, t)
			if err != nil {
				return nil, fmt.Errorf("onegen.BuildSubordinatedCTMC: %w", err)
			}
			child, err := stateclass.Initial(net, childMarking, newPDF)
			if err != nil {
				return nil, fmt.Errorf("onegen.BuildSubordinatedCTMC: %w", err)
			}
			childKey := child.Petri.Marking.Key()
			childID, ok := index[childKey]
			if !ok {
				childID = len(sub.States)
				index[childKey] = childID
				sub.States = append(sub.States, childKey)
				sub.ExitRate = append(sub.ExitRate, 0)
				sub.Edges = append(sub.Edges, nil)
				queue = append(queue, child)
			}

			sub.Edges[id] = append(sub.Edges[id], Edge{To: childID, Rate: rate})
			exitRate += rate
		}
		sub.ExitRate[id] = exitRate
	}

	if len(sub.States) == 0 {
		return nil, ErrEmptyChain
	}

	return sub, nil
}

// exprate reports s's registered EXP rate for t, if t is EXP-distributed.
func exprate(s stateclass.State, t petri.TransitionID) (float64, bool) {
	if s.Stochastic == nil {
		return 0, false
	}

	return s.Stochastic.GetEXPRate(t)
}
