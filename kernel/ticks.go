package kernel

import "math"

// Ticks is spec.md §3's pair of aligned time grids: a coarse kernel grid
// (the output time-points 0, Δ, 2Δ, ..., T) and a finer integral grid used
// as quadrature sub-steps, related by a positive integer Ratio (kernel
// step = Ratio * integral step).
type Ticks struct {
	Bound float64
	Step  float64
	Ratio int
}

// NewTicks validates and constructs a Ticks schedule. Bound and Step must
// be positive and Ratio >= 1 (spec.md §3 "the ratio is a positive
// integer").
func NewTicks(bound, step float64, ratio int) (Ticks, error) {
	if bound <= 0 || step <= 0 || ratio < 1 {
		return Ticks{}, ErrInvalidTicks
	}

	return Ticks{Bound: bound, Step: step, Ratio: ratio}, nil
}

// KernelCount returns the number of kernel grid points covering [0, Bound]
// inclusive (0, Δ, ..., N·Δ with N·Δ >= Bound).
func (t Ticks) KernelCount() int {
	return int(math.Ceil(t.Bound/t.Step)) + 1
}

// KernelPoint returns the i-th kernel grid point, i*Step.
func (t Ticks) KernelPoint(i int) float64 {
	return float64(i) * t.Step
}

// IntegralStep returns the fine quadrature sub-step, Step/Ratio.
func (t Ticks) IntegralStep() float64 {
	return t.Step / float64(t.Ratio)
}

// IntegralCount returns the number of integral-grid sub-steps within one
// kernel step (equal to Ratio).
func (t Ticks) IntegralCount() int {
	return t.Ratio
}
