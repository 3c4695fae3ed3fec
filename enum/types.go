package enum

import (
	"container/heap"

	"github.com/katalvlaran/stpn/decimal"
)

// FrontierItem is one open node of the enumeration frontier: a state's
// SuccessionGraph id together with its reaching probability (zero for
// steady-state enumeration, where FIFO is the only sensible policy).
type FrontierItem struct {
	ID           int
	ReachingProb decimal.ExactDecimal
	seq          int // insertion order, used to break ties deterministically
}

// Policy orders the open frontier (spec.md §4.4 "Pop next by policy").
type Policy interface {
	Push(item FrontierItem)
	Pop() (FrontierItem, bool)
	Len() int
}

// NewFIFOPolicy returns a breadth-first frontier: insertion order (spec.md
// §4.4 "FIFO yields breadth-first expansion by insertion").
func NewFIFOPolicy() Policy {
	return &fifoPolicy{}
}

type fifoPolicy struct {
	items []FrontierItem
}

func (p *fifoPolicy) Push(item FrontierItem) { p.items = append(p.items, item) }

func (p *fifoPolicy) Pop() (FrontierItem, bool) {
	if len(p.items) == 0 {
		return FrontierItem{}, false
	}
	item := p.items[0]
	p.items = p.items[1:]

	return item, true
}

func (p *fifoPolicy) Len() int { return len(p.items) }

// NewGreedyPolicy returns a frontier ordered by decreasing reaching
// probability, ties broken by insertion order (spec.md §4.4 "greedy picks
// the frontier node with the largest reaching probability").
func NewGreedyPolicy() Policy {
	pq := &greedyHeap{}
	heap.Init(pq)

	return &greedyPolicy{heap: pq}
}

type greedyPolicy struct {
	heap *greedyHeap
	next int
}

func (p *greedyPolicy) Push(item FrontierItem) {
	item.seq = p.next
	p.next++
	heap.Push(p.heap, item)
}

func (p *greedyPolicy) Pop() (FrontierItem, bool) {
	if p.heap.Len() == 0 {
		return FrontierItem{}, false
	}

	return heap.Pop(p.heap).(FrontierItem), true
}

func (p *greedyPolicy) Len() int { return p.heap.Len() }

// greedyHeap implements container/heap.Interface as a max-heap by
// ReachingProb, ties broken by insertion order (lower seq popped first),
// mirroring the teacher's min-heap-by-distance Dijkstra priority queue with
// the comparison direction and payload inverted.
type greedyHeap []FrontierItem

func (h greedyHeap) Len() int { return len(h) }

func (h greedyHeap) Less(i, j int) bool {
	c := decimal.Compare(h[i].ReachingProb, h[j].ReachingProb)
	if c != 0 {
		return c > 0
	}

	return h[i].seq < h[j].seq
}

func (h greedyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *greedyHeap) Push(x interface{}) {
	*h = append(*h, x.(FrontierItem))
}

func (h *greedyHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// AnalysisMonitor is a cooperative cancellation hook polled at the
// checkpoints spec.md §5 names. Interrupted is checked before popping the
// next frontier item; Info receives a message immediately before the
// engine returns a partial result (spec.md §4.4 "Cancellation/timeouts").
type AnalysisMonitor interface {
	Interrupted() bool
	Info(msg string)
}

// NoopMonitor never interrupts and discards Info messages; the default
// when a builder is not given one (spec.md §3 "Logging" ambient-stack
// convention of a no-op default, not a global).
type NoopMonitor struct{}

func (NoopMonitor) Interrupted() bool { return false }
func (NoopMonitor) Info(string)       {}

// StopCriterion reports whether a state should not be expanded further
// (spec.md §4.4: "global monitor, local predicate, time bound,
// regeneration").
type StopCriterion func(id int, reachingProb decimal.ExactDecimal) bool

// AnyStop combines criteria with logical OR: expansion stops as soon as
// one criterion is satisfied.
func AnyStop(criteria ...StopCriterion) StopCriterion {
	return func(id int, reachingProb decimal.ExactDecimal) bool {
		for _, c := range criteria {
			if c(id, reachingProb) {
				return true
			}
		}

		return false
	}
}

// TruncationReport accounts for the greedy policy's error-bounded halting
// (spec.md §4.4 "Truncation policy (greedy)"): UnexploredMass is the sum of
// reaching probabilities still on the frontier when the engine stopped,
// and Truncated records whether the engine stopped before the frontier was
// exhausted — either because the unexplored mass fell below the configured
// error budget or because the monitor requested an interrupt.
type TruncationReport struct {
	UnexploredMass decimal.ExactDecimal
	Truncated      bool
}
