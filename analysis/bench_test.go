package analysis_test

import (
	"testing"

	"github.com/katalvlaran/stpn/analysis"
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/reward"
)

// BenchmarkComputeIntegralSolution measures the trapezoidal running
// integral over a synthetic multi-row, multi-column TransientSolution,
// the same shape Analyze produces for a modestly sized state space.
func BenchmarkComputeIntegralSolution(b *testing.B) {
	const rows, cols, samples = 4, 8, 200
	rowStates := make([]string, rows)
	colStates := make([]string, cols)
	for i := range rowStates {
		rowStates[i] = "row"
	}
	for j := range colStates {
		colStates[j] = "col"
	}
	solution := make([][][]float64, samples)
	for t := range solution {
		solution[t] = make([][]float64, rows)
		for i := range solution[t] {
			solution[t][i] = make([]float64, cols)
			for j := range solution[t][i] {
				solution[t][i][j] = float64(t+1) / float64(samples)
			}
		}
	}
	ts := &analysis.TransientSolution{
		TimeStep:     1,
		Samples:      samples,
		RowStates:    rowStates,
		ColumnStates: colStates,
		Solution:     solution,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ts.ComputeIntegralSolution()
	}
}

// BenchmarkComputeRewards measures ComputeRewards' cumulative pass over
// the same fixture shape.
func BenchmarkComputeRewards(b *testing.B) {
	const cols, samples = 8, 200
	colStates := make([]string, cols)
	rates := make(map[string]reward.Expression, cols)
	for j := range colStates {
		colStates[j] = "col"
		rates[colStates[j]] = reward.ExpressionFunc{
			Eval: func(decimal.ExactDecimal, petri.Marking) (float64, error) { return 1, nil },
		}
	}
	solution := make([][][]float64, samples)
	for t := range solution {
		solution[t] = [][]float64{make([]float64, cols)}
		for j := range solution[t][0] {
			solution[t][0][j] = 0.5
		}
	}
	ts := &analysis.TransientSolution{
		TimeStep:     1,
		Samples:      samples,
		RowStates:    []string{"row"},
		ColumnStates: colStates,
		Solution:     solution,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ts.ComputeRewards(true, rates)
	}
}
