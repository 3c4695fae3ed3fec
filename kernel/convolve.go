package kernel

// Convolve solves the Markov Renewal Equation of spec.md §4.5,
// `P = L + dG * P`, on k's discretized kernels via the trapezoidal
// convolution recurrence
//
//	P[t][i][j] = L[t][i][j] + Σ_{u=1}^{t} Σ_k (G[u][i][k] - G[u-1][i][k]) * P[t-u][k][j]
//
// where i, k range over regenerations and j ranges over markings. Each
// P[t] depends only on already-computed P[0..t-1], so the recurrence is
// evaluated in increasing tick order and memoized in the returned slice
// (grounded on matrix/ops/floyd_warshal.go's relax-and-memoize loop
// shape, see kernel/doc.go).
func Convolve(k *Kernel) [][][]float64 {
	nt := len(k.L)
	nr := len(k.Regens)
	nm := len(k.Markings)

	p := make([][][]float64, nt)
	for t := 0; t < nt; t++ {
		p[t] = make([][]float64, nr)
		for i := 0; i < nr; i++ {
			p[t][i] = make([]float64, nm)
			for j := 0; j < nm; j++ {
				p[t][i][j] = k.L[t][i][j]
			}
			for u := 1; u <= t; u++ {
				for kk := 0; kk < nr; kk++ {
					dG := k.G[u][i][kk] - k.G[u-1][i][kk]
					if dG == 0 {
						continue
					}
					for j := 0; j < nm; j++ {
						p[t][i][j] += dG * p[t-u][kk][j]
					}
				}
			}
		}
	}

	return p
}

// StateProbability returns P[t][i][j] for the regeneration id i and
// marking id j at kernel tick t, or (0, false) if any index is out of
// range (spec.md §4.5's transient solution is read off this way given a
// fixed initial regeneration i=0).
func StateProbability(p [][][]float64, tick, regenID, markID int) (float64, bool) {
	if tick < 0 || tick >= len(p) {
		return 0, false
	}
	row := p[tick]
	if regenID < 0 || regenID >= len(row) {
		return 0, false
	}
	col := row[regenID]
	if markID < 0 || markID >= len(col) {
		return 0, false
	}

	return col[markID], true
}
