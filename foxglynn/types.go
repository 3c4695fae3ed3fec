package foxglynn

// Result is a Fox–Glynn Poisson truncation window (spec.md §4.7):
// Weights[i] holds the unnormalized weight of Poisson index Left+i, and
// dividing every entry by TotalWeight yields a probability mass function
// that approximates Pois(Lambda) within the requested ε after discarding
// the tails outside [Left, Right].
type Result struct {
	Left        int
	Right       int
	Weights     []float64
	TotalWeight float64
}

// Prob returns weights[i]/TotalWeight for Poisson index i, or 0 if i falls
// outside [Left, Right].
func (r Result) Prob(i int) float64 {
	if i < r.Left || i > r.Right {
		return 0
	}

	return r.Weights[i-r.Left] / r.TotalWeight
}
