package analysis_test

import (
	"fmt"

	"github.com/katalvlaran/stpn/analysis"
)

// ExampleTransientSolution_computeIntegralSolution builds a
// TransientSolution directly from a flat probability array and prints its
// trapezoidal running integral — the expected sojourn time accumulated up
// to each sample point (spec.md §6 item 2).
func ExampleTransientSolution_computeIntegralSolution() {
	probs := [][]float64{{0}, {2}, {4}}
	ts, err := analysis.FromArray(probs, 1, map[string]int{"busy": 0}, "root")
	if err != nil {
		fmt.Println(err)

		return
	}

	integral := ts.ComputeIntegralSolution()
	for t := range integral {
		fmt.Print(integral[t][0][0], " ")
	}
	fmt.Println()
	// Output: 0 1 4
}
