package ctmc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DecomposeBSCC runs the two-pass iterative DFS of spec.md §4.8: a reverse
// post-order pass over the reverse graph fixes a processing order, then a
// forward pass from roots in that order assigns each node to a strongly
// connected component; a component is a BSCC iff none of its members has
// an edge leaving the component, otherwise every member is transient.
// Absorption probabilities solve (I-T)X=B via LU (spec.md §4.8).
func (d *DTMC) DecomposeBSCC() (*AbsorptionProbs, error) {
	n := d.NumStates()
	if n == 0 {
		return nil, ErrNoStates
	}

	order := reversePostOrder(d)
	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	var components [][]int
	for _, root := range order {
		if comp[root] != -1 {
			continue
		}
		members := forwardDFS(d, root, comp, len(components))
		components = append(components, members)
	}

	isBSCC := make([]bool, len(components))
	for ci, members := range components {
		inComp := make(map[int]bool, len(members))
		for _, s := range members {
			inComp[s] = true
		}
		closed := true
		for _, s := range members {
			for _, e := range d.Out(s) {
				if !inComp[e.To] {
					closed = false

					break
				}
			}
			if !closed {
				break
			}
		}
		isBSCC[ci] = closed
	}

	result := &AbsorptionProbs{}
	transientIdx := make(map[int]int)
	for ci, members := range components {
		if isBSCC[ci] {
			result.BSCCs = append(result.BSCCs, members)
		} else {
			for _, s := range members {
				transientIdx[s] = len(result.Transient)
				result.Transient = append(result.Transient, s)
			}
		}
	}
	if len(result.BSCCs) == 0 {
		return nil, ErrNoBSCC
	}

	probs, err := absorptionProbabilities(d, result.Transient, transientIdx, result.BSCCs, comp)
	if err != nil {
		return nil, fmt.Errorf("ctmc.DecomposeBSCC: %w", err)
	}
	result.Probs = probs

	return result, nil
}

// reversePostOrder runs an iterative DFS over the reverse graph from every
// unvisited node, in ascending id order, and returns node ids in
// decreasing finish order (spec.md §4.8 "reverse post-order on the
// reverse graph").
func reversePostOrder(d *DTMC) []int {
	n := d.NumStates()
	radj := reverseAdjacency(d)
	visited := make([]bool, n)
	var finish []int

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		stack := []frame{{node: start, nextChild: 0}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.nextChild < len(radj[top.node]) {
				child := radj[top.node][top.nextChild]
				top.nextChild++
				if !visited[child] {
					visited[child] = true
					stack = append(stack, frame{node: child, nextChild: 0})
				}
				continue
			}
			finish = append(finish, top.node)
			stack = stack[:len(stack)-1]
		}
	}

	// Reverse to get decreasing finish order.
	for i, j := 0, len(finish)-1; i < j; i, j = i+1, j-1 {
		finish[i], finish[j] = finish[j], finish[i]
	}

	return finish
}

// frame is one iterative-DFS stack entry: the node being visited and the
// index of the next adjacency-list child to examine.
type frame struct {
	node      int
	nextChild int
}

// forwardDFS runs an iterative DFS over the forward graph from root,
// assigning every newly-reached node to component id compID, and returns
// the discovered members in visitation order.
func forwardDFS(d *DTMC, root int, comp []int, compID int) []int {
	comp[root] = compID
	members := []int{root}
	stack := []frame{{node: root, nextChild: 0}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		out := d.Out(top.node)
		if top.nextChild < len(out) {
			child := out[top.nextChild].To
			top.nextChild++
			if comp[child] == -1 {
				comp[child] = compID
				members = append(members, child)
				stack = append(stack, frame{node: child, nextChild: 0})
			}
			continue
		}
		stack = stack[:len(stack)-1]
	}

	return members
}

func reverseAdjacency(d *DTMC) [][]int {
	n := d.NumStates()
	radj := make([][]int, n)
	for from := 0; from < n; from++ {
		for _, e := range d.Out(from) {
			radj[e.To] = append(radj[e.To], from)
		}
	}

	return radj
}

// absorptionProbabilities solves (I-T)X=B via LU (spec.md §4.8), where T
// is the transient-to-transient submatrix (by weight) and B is the
// transient-to-BSCC submatrix, each BSCC's column aggregating every edge
// landing on any of its members.
func absorptionProbabilities(
	d *DTMC,
	transient []int,
	transientIdx map[int]int,
	bsccs [][]int,
	comp []int,
) ([][]float64, error) {
	nt := len(transient)
	nb := len(bsccs)
	if nt == 0 {
		return nil, nil
	}

	// Map each distinct component id to its BSCC index (comp ids are dense
	// over 0..len(components)-1; a BSCC's representative member's comp id
	// identifies the whole component).
	compToBSCC := make(map[int]int)
	for k, members := range bsccs {
		if len(members) > 0 {
			compToBSCC[comp[members[0]]] = k
		}
	}

	a := mat.NewDense(nt, nt, nil)
	b := mat.NewDense(nt, nb, nil)
	for i, s := range transient {
		a.Set(i, i, 1)
		for _, e := range d.Out(s) {
			if j, ok := transientIdx[e.To]; ok {
				a.Set(i, j, a.At(i, j)-e.Weight)

				continue
			}
			if k, ok := compToBSCC[comp[e.To]]; ok {
				b.Set(i, k, b.At(i, k)+e.Weight)
			}
		}
	}

	var lu mat.LU
	lu.Factorize(a)
	if c := lu.Cond(); c > 1e14 {
		return nil, ErrSingularMatrix
	}
	var x mat.Dense
	if err := lu.SolveTo(&x, false, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}

	probs := make([][]float64, nt)
	for i := 0; i < nt; i++ {
		row := make([]float64, nb)
		for k := 0; k < nb; k++ {
			row[k] = x.At(i, k)
		}
		probs[i] = row
	}

	return probs, nil
}
