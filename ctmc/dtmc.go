package ctmc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Stationary solves pi*P = pi, sum(pi) = 1 for the embedded DTMC (spec.md
// §4.5 "steady-state path ... solve its stationary distribution via LU
// (with row replacement by the normalization constraint Σπ=1)"). d must
// be irreducible (a single BSCC spanning every state); callers building
// the embedded chain from ctmc.DecomposeBSCC's G-kernel sums are
// responsible for restricting to one BSCC before calling Stationary.
func (d *DTMC) Stationary() ([]float64, error) {
	n := d.NumStates()
	if n == 0 {
		return nil, ErrNoStates
	}

	// Build A = (P^T - I) with the last row replaced by all-ones, and
	// b = e_{n-1} (the Σπ=1 constraint), then solve A*pi = b.
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, a.At(i, i)-1)
	}
	for from := 0; from < n; from++ {
		for _, e := range d.Out(from) {
			a.Set(e.To, from, a.At(e.To, from)+e.Weight)
		}
	}
	for j := 0; j < n; j++ {
		a.Set(n-1, j, 1)
	}
	b := mat.NewDense(n, 1, nil)
	b.Set(n-1, 0, 1)

	var lu mat.LU
	lu.Factorize(a)
	if c := lu.Cond(); c > 1e14 {
		return nil, ErrSingularMatrix
	}
	var x mat.Dense
	if err := lu.SolveTo(&x, false, b); err != nil {
		return nil, fmt.Errorf("ctmc.Stationary: %w: %v", ErrSingularMatrix, err)
	}

	pi := make([]float64, n)
	for i := 0; i < n; i++ {
		pi[i] = x.At(i, 0)
	}

	return pi, nil
}
