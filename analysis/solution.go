package analysis

import (
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/petri"
	"github.com/katalvlaran/stpn/reward"
)

// TransientSolution is spec.md §6 item 2's result value: the discretized
// transient probability surface P[sample][row][col], row being a
// regeneration and col a marking (spec.md §4.5), sampled on the coarse
// kernel grid 0, Δ, ..., TimeBound.
type TransientSolution struct {
	TimeBound    float64
	TimeStep     float64
	Samples      int
	InitialState string
	RowStates    []string
	ColumnStates []string
	Solution     [][][]float64 // [sample][row][col]

	// StateMarkings optionally maps a column state key back to the
	// petri.Marking it denotes, for ComputeAggregateSolution/ComputeRewards
	// to evaluate reward.MarkingCondition/reward.Expression against. Nil
	// when the caller has no marking to attach (e.g. the OneGen path's
	// EXP-chain state labels, which are not themselves markings).
	StateMarkings map[string]petri.Marking

	// Partial is set when the analysis stopped early on a cooperative
	// cancellation request (spec.md §5 "Cancellation/timeouts") rather
	// than completing; the solution up to the point of interruption is
	// still well-defined and returned with a nil error.
	Partial bool

	rowIndex map[string]int
	colIndex map[string]int
}

// FromArray builds a TransientSolution from a flat [sample][state]
// probability array over a single row (spec.md §6 item 2 "fromArray(probs,
// step, statePos, initial)"), as produced by the OneGen path's single
// regeneration. statePos maps each state label to its column index in
// probs; initial is the label of the regeneration the analysis started
// from.
func FromArray(probs [][]float64, step float64, statePos map[string]int, initial string) (*TransientSolution, error) {
	if len(probs) == 0 {
		return nil, ErrNoInitialState
	}
	cols := make([]string, len(statePos))
	for key, idx := range statePos {
		if idx < 0 || idx >= len(cols) {
			return nil, fmt.Errorf("analysis.FromArray: %w: index %d for %q out of range", ErrUnknownState, idx, key)
		}
		cols[idx] = key
	}

	samples := len(probs)
	solution := make([][][]float64, samples)
	for t := 0; t < samples; t++ {
		row := make([]float64, len(cols))
		copy(row, probs[t])
		solution[t] = [][]float64{row}
	}

	ts := &TransientSolution{
		TimeBound:    step * float64(samples-1),
		TimeStep:     step,
		Samples:      samples,
		InitialState: initial,
		RowStates:    []string{initial},
		ColumnStates: cols,
		Solution:     solution,
	}
	ts.buildIndex()

	return ts, nil
}

func (ts *TransientSolution) buildIndex() {
	ts.rowIndex = make(map[string]int, len(ts.RowStates))
	for i, s := range ts.RowStates {
		ts.rowIndex[s] = i
	}
	ts.colIndex = make(map[string]int, len(ts.ColumnStates))
	for i, s := range ts.ColumnStates {
		ts.colIndex[s] = i
	}
}

// ComputeIntegralSolution returns, at every sample, the trapezoidal
// running integral of Solution over elapsed time from 0 to that sample's
// time point — e.g. expected sojourn time in each (row, col) pair up to
// time t (spec.md §6 item 2 "computeIntegralSolution()").
func (ts *TransientSolution) ComputeIntegralSolution() [][][]float64 {
	out := make([][][]float64, ts.Samples)
	for t := range out {
		out[t] = make([][]float64, len(ts.RowStates))
		for i := range out[t] {
			out[t][i] = make([]float64, len(ts.ColumnStates))
		}
	}
	if ts.Samples == 0 {
		return out
	}
	for i := range ts.RowStates {
		for j := range ts.ColumnStates {
			acc := 0.0
			for t := 1; t < ts.Samples; t++ {
				acc += ts.TimeStep * (ts.Solution[t-1][i][j] + ts.Solution[t][i][j]) / 2
				out[t][i][j] = acc
			}
		}
	}

	return out
}

// ComputeAggregateSolution sums, at every sample, the probability mass of
// every column whose marking satisfies each named condition (spec.md §6
// item 2 "computeAggregateSolution(conditions)"). Requires StateMarkings
// to be populated; columns without a recorded marking are skipped.
func (ts *TransientSolution) ComputeAggregateSolution(conditions map[string]reward.MarkingCondition) (map[string][]float64, error) {
	if ts.StateMarkings == nil {
		return nil, fmt.Errorf("analysis.ComputeAggregateSolution: %w: no state markings recorded", ErrUnknownState)
	}
	out := make(map[string][]float64, len(conditions))
	for name, cond := range conditions {
		series := make([]float64, ts.Samples)
		for t := 0; t < ts.Samples; t++ {
			sum := 0.0
			for j, colKey := range ts.ColumnStates {
				m, ok := ts.StateMarkings[colKey]
				if !ok || !cond(m) {
					continue
				}
				for i := range ts.RowStates {
					sum += ts.Solution[t][i][j]
				}
			}
			series[t] = sum
		}
		out[name] = series
	}

	return out, nil
}

// ComputeRewards evaluates rates (one reward.Expression per column state)
// against the solution's probability mass at every sample, returning
// either the instantaneous expected reward rate at each sample or, if
// cumulative, its trapezoidal running integral (spec.md §6 item 2
// "computeRewards(cumulative, rates)"). Columns with no entry in rates
// contribute zero.
func (ts *TransientSolution) ComputeRewards(cumulative bool, rates map[string]reward.Expression) ([]float64, error) {
	instantaneous := make([]float64, ts.Samples)
	for t := 0; t < ts.Samples; t++ {
		timeVal := decimal.NewFromFloat(float64(t) * ts.TimeStep)
		sum := 0.0
		for j, colKey := range ts.ColumnStates {
			expr, ok := rates[colKey]
			if !ok {
				continue
			}
			var m petri.Marking
			if ts.StateMarkings != nil {
				m = ts.StateMarkings[colKey]
			}
			value, err := expr.Evaluate(timeVal, m)
			if err != nil {
				return nil, fmt.Errorf("analysis.ComputeRewards: %w", err)
			}
			for i := range ts.RowStates {
				sum += value * ts.Solution[t][i][j]
			}
		}
		instantaneous[t] = sum
	}
	if !cumulative {
		return instantaneous, nil
	}

	cum := make([]float64, ts.Samples)
	acc := 0.0
	for t := 1; t < ts.Samples; t++ {
		acc += ts.TimeStep * (instantaneous[t-1] + instantaneous[t]) / 2
		cum[t] = acc
	}

	return cum, nil
}

// SteadyStateSolution is spec.md §4.5's steady-state result: the
// long-run probability of each marking, obtained from the embedded DTMC's
// stationary distribution weighted by mean sojourn time per (regeneration,
// marking) pair.
type SteadyStateSolution struct {
	MarkingStates []string
	Probability   []float64
}

// ProbabilityOf returns the steady-state probability of marking key, or
// (0, false) if key was not discovered during enumeration.
func (s *SteadyStateSolution) ProbabilityOf(key string) (float64, bool) {
	for i, k := range s.MarkingStates {
		if k == key {
			return s.Probability[i], true
		}
	}

	return 0, false
}
