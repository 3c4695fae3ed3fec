package stateclass

import (
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/petri"
)

// SuccessionEdge is a directed arc of a SuccessionGraph: firing Transition
// from the From state lands on the To state with probability Prob
// (spec.md §4.4 "state-class graph").
type SuccessionEdge struct {
	From       int
	To         int
	Transition petri.TransitionID
	Prob       decimal.ExactDecimal
}

// SuccessionGraph is an arena of value-based hash-consed states, addressed
// by integer id, with edges carrying the fired transition and its
// probability. Single-threaded: callers owning concurrent enumeration
// (spec.md §5 "enumeration engine") serialize their own access.
type SuccessionGraph struct {
	states []State
	keys   map[string]int
	edges  []SuccessionEdge
	out    map[int][]int // index into edges, by From id
}

// NewSuccessionGraph returns an empty graph.
func NewSuccessionGraph() *SuccessionGraph {
	return &SuccessionGraph{
		keys: make(map[string]int),
		out:  make(map[int][]int),
	}
}

// Intern inserts s if its Key() has not been seen before and returns its
// id; if an equal state already exists, its existing id is returned
// instead and s is discarded (value-based hash-consing, spec.md §9).
func (g *SuccessionGraph) Intern(s State) int {
	k := s.Key()
	if id, ok := g.keys[k]; ok {
		return id
	}
	id := len(g.states)
	g.states = append(g.states, s)
	g.keys[k] = id

	return id
}

// AddEdge records a fired transition from the state with id "from" to the
// state with id "to". Both ids must already have been produced by Intern.
func (g *SuccessionGraph) AddEdge(from, to int, t petri.TransitionID, prob decimal.ExactDecimal) error {
	if from < 0 || from >= len(g.states) {
		return fmt.Errorf("stateclass: AddEdge: from id %d out of range", from)
	}
	if to < 0 || to >= len(g.states) {
		return fmt.Errorf("stateclass: AddEdge: to id %d out of range", to)
	}
	idx := len(g.edges)
	g.edges = append(g.edges, SuccessionEdge{From: from, To: to, Transition: t, Prob: prob})
	g.out[from] = append(g.out[from], idx)

	return nil
}

// State returns the state stored at id.
func (g *SuccessionGraph) State(id int) State {
	return g.states[id]
}

// Len returns the number of interned states.
func (g *SuccessionGraph) Len() int {
	return len(g.states)
}

// Successors returns the outgoing edges of the state with id from.
func (g *SuccessionGraph) Successors(from int) []SuccessionEdge {
	idxs := g.out[from]
	out := make([]SuccessionEdge, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx]
	}

	return out
}

// Edges returns every edge in insertion order.
func (g *SuccessionGraph) Edges() []SuccessionEdge {
	return g.edges
}
