package ctmc

import "fmt"

// State is one CTMCState<M> of spec.md §3: a logic-state label M (opaque
// to this package beyond equality, carried as a string key produced by
// the caller's own M.Key()-shaped identity) plus an exit rate. Equality is
// by Label alone, matching spec.md's "equality by M".
type State struct {
	Label    string
	ExitRate float64
}

// Edge is a directed weighted arc of a DTMC: To is the target state id,
// Weight its transition probability (or, for a CTMC one-step builder, its
// unnormalized rate — callers that need probabilities normalize before
// calling Stationary/DecomposeBSCC).
type Edge struct {
	To     int
	Weight float64
}

// DTMC is spec.md §3's "directed weighted graph + list of initial states
// with initial probabilities". States are addressed by a dense integer id
// assigned on insertion (AddState), mirroring stateclass.SuccessionGraph's
// arena-of-ids identity discipline.
type DTMC struct {
	states  []State
	adj     [][]Edge
	initial map[int]float64
}

// New returns an empty DTMC.
func New() *DTMC {
	return &DTMC{initial: make(map[int]float64)}
}

// AddState appends a new state and returns its id.
func (d *DTMC) AddState(label string, exitRate float64) int {
	id := len(d.states)
	d.states = append(d.states, State{Label: label, ExitRate: exitRate})
	d.adj = append(d.adj, nil)

	return id
}

// AddEdge records a weighted arc from -> to. Both ids must already exist.
func (d *DTMC) AddEdge(from, to int, weight float64) error {
	if err := d.checkID(from); err != nil {
		return fmt.Errorf("ctmc.AddEdge: %w", err)
	}
	if err := d.checkID(to); err != nil {
		return fmt.Errorf("ctmc.AddEdge: %w", err)
	}
	d.adj[from] = append(d.adj[from], Edge{To: to, Weight: weight})

	return nil
}

// SetInitial assigns id an initial probability mass.
func (d *DTMC) SetInitial(id int, prob float64) error {
	if err := d.checkID(id); err != nil {
		return fmt.Errorf("ctmc.SetInitial: %w", err)
	}
	d.initial[id] = prob

	return nil
}

// NumStates returns the number of states in d.
func (d *DTMC) NumStates() int { return len(d.states) }

// State returns the State stored at id.
func (d *DTMC) State(id int) State { return d.states[id] }

// Out returns the outgoing edges of id, in insertion order.
func (d *DTMC) Out(id int) []Edge { return d.adj[id] }

// Initial returns the initial-probability mapping.
func (d *DTMC) Initial() map[int]float64 { return d.initial }

func (d *DTMC) checkID(id int) error {
	if id < 0 || id >= len(d.states) {
		return ErrStateOutOfRange
	}

	return nil
}

// AbsorptionProbs is spec.md §3's AbsorptionProbs<S>: the BSCC
// decomposition result. Transient lists transient state ids in discovery
// order (spec.md §8 S3: "order by reverse post-order"); BSCCs lists each
// bottom strongly connected component as a slice of state ids; Probs is
// the |Transient| x |BSCCs| absorption-probability matrix, Probs[i][k]
// being the probability of eventual absorption from Transient[i] into
// BSCCs[k].
type AbsorptionProbs struct {
	Transient []int
	BSCCs     [][]int
	Probs     [][]float64
}
