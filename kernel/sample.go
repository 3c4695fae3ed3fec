package kernel

import (
	"fmt"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/density"
	"github.com/katalvlaran/stpn/expoly"
	"github.com/katalvlaran/stpn/stateclass"
	"github.com/katalvlaran/stpn/term"
	"github.com/katalvlaran/stpn/zone"
)

// zoneAtPoint returns a single-variable zone pinning v to exactly 0
// (v - Ground <= 0 and Ground - v <= 0).
func zoneAtPoint(v term.Variable) *zone.DBMZone {
	z := zone.New(v)
	_ = z.ImposeBound(v, term.Ground, decimal.Zero())
	_ = z.ImposeBound(term.Ground, v, decimal.Zero())

	return z
}

// constantOne returns the Expolynomial constant 1.
func constantOne() expoly.Expolynomial {
	return expoly.ConstantValue(decimal.NewFromInt(1))
}

// contributeLocal adds s's weighted local-kernel mass, at every kernel
// tick, to L[tick][rootID][markID] (spec.md §4.5 step 3's "L[t][i][j]"):
// the elapsed-time convolution of s's entering-time density against the
// survivor function of its joint remaining-enabled-time density, scaled
// by s's reaching probability.
func contributeLocal(k *Kernel, ticks Ticks, rootID, markID int, s stateclass.State) error {
	if s.TransientStochastic == nil || s.Stochastic == nil {
		return nil
	}
	reaching := s.TransientStochastic.ReachingProbability.Float64()
	if reaching <= 0 {
		return nil
	}
	entering := s.TransientStochastic.EnteringTimeDensity
	stoch := s.Stochastic.Density

	n := ticks.KernelCount()
	dt := ticks.IntegralStep()
	for ti := 0; ti < n; ti++ {
		t := ticks.KernelPoint(ti)
		mass, err := convolveAtTime(entering, stoch, t, dt)
		if err != nil {
			return fmt.Errorf("kernel.contributeLocal: %w", err)
		}
		k.L[ti][rootID][markID] += reaching * mass
	}

	return nil
}

// contributeGlobal adds s's weighted global-kernel mass, at every kernel
// tick, to G[tick][rootID][childID] (spec.md §4.5 step 3's "G[t][i][k]"):
// the reaching-probability-scaled CDF of s's entering-time density.
func contributeGlobal(k *Kernel, ticks Ticks, rootID, childID int, s stateclass.State) error {
	if s.TransientStochastic == nil {
		return nil
	}
	reaching := s.TransientStochastic.ReachingProbability.Float64()
	if reaching <= 0 {
		return nil
	}
	entering := s.TransientStochastic.EnteringTimeDensity

	n := ticks.KernelCount()
	for ti := 0; ti < n; ti++ {
		t := ticks.KernelPoint(ti)
		cdf, err := cdfAt(entering, t)
		if err != nil {
			return fmt.Errorf("kernel.contributeGlobal: %w", err)
		}
		k.G[ti][rootID][childID] += reaching * cdf
	}

	return nil
}

// convolveAtTime numerically integrates entering's density against
// stoch's survivor function over elapsed age in [0, t], via the
// trapezoidal rule on the integral sub-grid (spec.md §3 Ticks, §9
// "PrecalculatedTickEvaluations").
func convolveAtTime(entering density.PartitionedFunction, stoch density.PartitionedFunction, t, dt float64) (float64, error) {
	if t <= 0 {
		v, err := survivorAt(stoch, 0)

		return v, err
	}
	steps := int(t/dt + 0.5)
	if steps < 1 {
		steps = 1
	}
	h := t / float64(steps)

	acc := 0.0
	for i := 0; i <= steps; i++ {
		a := float64(i) * h
		pdf, err := densityValueAt(entering, term.Age, a)
		if err != nil {
			return 0, err
		}
		surv, err := survivorAt(stoch, t-a)
		if err != nil {
			return 0, err
		}
		weight := h
		if i == 0 || i == steps {
			weight = h / 2
		}
		acc += weight * pdf * surv
	}

	return acc, nil
}

// densityValueAt evaluates a single-variable PartitionedFunction at a
// point, returning 0 if x lies outside every piece's support.
func densityValueAt(pf density.PartitionedFunction, v term.Variable, x float64) (float64, error) {
	point := map[term.Variable]decimal.ExactDecimal{v: decimal.NewFromFloat(x)}
	for _, p := range pf.Pieces {
		if !p.Zone.ContainsPoint(point) {
			continue
		}

		return p.Fn.Evaluate(map[term.Variable]float64{v: x})
	}

	return 0, nil
}

// survivorAt returns the probability that every variable of stoch's joint
// density is still >= s, i.e. the class has not yet fired any transition
// by elapsed sojourn time s (spec.md §4.5 "integrate ... against
// elapsed-sojourn bounds"). Computed per piece by tightening each
// variable's lower zone bound to s and re-integrating, consistent with
// density.Integrate's box-zone convention.
func survivorAt(pf density.PartitionedFunction, s float64) (float64, error) {
	if s <= 0 {
		total, err := pf.Integrate()
		if err != nil {
			return 0, err
		}

		return total.Float64(), nil
	}

	sDec := decimal.NewFromFloat(s)
	total := decimal.Zero()
	for _, p := range pf.Pieces {
		z := p.Zone.Clone()
		for _, v := range z.Variables() {
			if err := z.ImposeBound(term.Ground, v, decimal.Negate(sDec)); err != nil {
				return 0, err
			}
		}
		if err := z.Normalize(); err != nil {
			return 0, err
		}
		if z.IsEmpty() {
			continue
		}
		mass, err := density.New(density.Piece{Zone: z, Fn: p.Fn}).Integrate()
		if err != nil {
			return 0, err
		}
		total, err = decimal.Add(total, mass)
		if err != nil {
			return 0, err
		}
	}

	return total.Float64(), nil
}

// cdfAt returns the probability mass of a single-variable
// PartitionedFunction over v in [0, t].
func cdfAt(pf density.PartitionedFunction, t float64) (float64, error) {
	if t <= 0 {
		return 0, nil
	}
	tDec := decimal.NewFromFloat(t)
	total := decimal.Zero()
	for _, p := range pf.Pieces {
		vars := p.Zone.Variables()
		if len(vars) != 1 {
			continue
		}
		v := vars[0]
		z := p.Zone.Clone()
		if err := z.ImposeBound(v, term.Ground, tDec); err != nil {
			return 0, err
		}
		if err := z.Normalize(); err != nil {
			return 0, err
		}
		if z.IsEmpty() {
			continue
		}
		mass, err := density.New(density.Piece{Zone: z, Fn: p.Fn}).Integrate()
		if err != nil {
			return 0, err
		}
		total, err = decimal.Add(total, mass)
		if err != nil {
			return 0, err
		}
	}

	return total.Float64(), nil
}
