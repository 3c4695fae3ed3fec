package analysis

import (
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/enum"
	"github.com/katalvlaran/stpn/reward"
)

// Logger is the minimal diagnostic hook threaded through Config (spec.md
// §3 "Global mutable state: none required ... thread the logger ...
// through an explicit configuration record"). The zero value of
// noopLogger is the default: no corpus repo examined imports a logging
// library for this shape of library code, so this module follows the
// teacher's own dependency-free diagnostics discipline instead of adding
// one.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}

// PolicyKind selects the enumeration frontier order of spec.md §6 item 1
// ("policy: FIFO|Greedy(ε, T)").
type PolicyKind uint8

const (
	// PolicyFIFO is breadth-first expansion by insertion order.
	PolicyFIFO PolicyKind = iota
	// PolicyGreedy expands by decreasing reaching probability, truncating
	// once the unexplored mass drops below the configured error.
	PolicyGreedy
)

// Config is the shared configuration record built by both
// TransientAnalysisBuilder and SteadyStateAnalysisBuilder (spec.md §6 item
// 1's recognized option set).
type Config struct {
	TimeBound        float64
	TimeStep         float64
	TickRatio        int
	Error            float64
	FoxGlynnEpsilon  float64
	Policy           PolicyKind
	StopOn           reward.MarkingCondition
	NormalizeKernels bool
	Monitor          enum.AnalysisMonitor
	Logger           Logger
	ForceGeneral     bool
}

// Option customizes a Config before an analysis runs, following the
// teacher's BuilderOption pattern (builder/config.go): a function that
// mutates the config in place, applied in order after defaults.
type Option func(cfg *Config)

// newConfig returns a Config with spec.md-documented defaults, then
// applies each opt in order (grounded on builder/config.go's
// newBuilderConfig "defaults, then apply options" shape).
func newConfig(opts ...Option) *Config {
	cfg := &Config{
		TimeBound:       10,
		TimeStep:        1,
		TickRatio:       10,
		Error:           0, // 0 disables greedy truncation (exhaustive FIFO-equivalent mass accounting)
		FoxGlynnEpsilon: 1e-9,
		Policy:          PolicyFIFO,
		StopOn:          reward.AlwaysFalse(),
		Monitor:         enum.NoopMonitor{},
		Logger:          noopLogger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithTimeBound sets the analysis horizon T.
func WithTimeBound(t float64) Option {
	return func(cfg *Config) { cfg.TimeBound = t }
}

// WithTimeStep sets the coarse kernel grid step Δ.
func WithTimeStep(step float64) Option {
	return func(cfg *Config) { cfg.TimeStep = step }
}

// WithTickRatio sets the integer ratio between the kernel grid and the
// finer integral quadrature grid (spec.md §3 Ticks).
func WithTickRatio(ratio int) Option {
	return func(cfg *Config) { cfg.TickRatio = ratio }
}

// WithError sets the greedy truncation error budget (spec.md §4.4
// "Truncation policy (greedy)").
func WithError(eps float64) Option {
	return func(cfg *Config) { cfg.Error = eps }
}

// WithFoxGlynnEpsilon sets the Poisson-truncation error budget used by the
// OneGen uniformization path (spec.md §4.7).
func WithFoxGlynnEpsilon(eps float64) Option {
	return func(cfg *Config) { cfg.FoxGlynnEpsilon = eps }
}

// WithPolicyFIFO selects breadth-first frontier expansion.
func WithPolicyFIFO() Option {
	return func(cfg *Config) { cfg.Policy = PolicyFIFO }
}

// WithPolicyGreedy selects greedy-by-reaching-probability expansion,
// truncating at errorBound (spec.md §6 item 1 "Greedy(ε, T)"; T is this
// builder's WithTimeBound).
func WithPolicyGreedy(errorBound float64) Option {
	return func(cfg *Config) {
		cfg.Policy = PolicyGreedy
		cfg.Error = errorBound
	}
}

// WithStopOn sets an additional local stop predicate over markings
// (spec.md §6 item 1 "stopOn: MarkingCondition|Predicate|AlwaysFalse").
func WithStopOn(cond reward.MarkingCondition) Option {
	return func(cfg *Config) {
		if cond != nil {
			cfg.StopOn = cond
		}
	}
}

// WithNormalizeKernels enables the optional global-kernel row
// normalization of spec.md §4.5.
func WithNormalizeKernels(normalize bool) Option {
	return func(cfg *Config) { cfg.NormalizeKernels = normalize }
}

// WithMonitor installs a cooperative cancellation monitor (spec.md §5).
func WithMonitor(m enum.AnalysisMonitor) Option {
	return func(cfg *Config) {
		if m != nil {
			cfg.Monitor = m
		}
	}
}

// WithLogger installs a diagnostic Logger.
func WithLogger(l Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithOneGenPath forces the OneGen fast path (spec.md §4.6), failing
// Analyze with ErrMultipleGeneralTransitions if the precondition does not
// hold, instead of silently falling back to the general regenerative
// kernel path.
func WithOneGenPath() Option {
	return func(cfg *Config) { cfg.ForceGeneral = true }
}

func (c *Config) errorBound() decimal.ExactDecimal {
	if c.Policy != PolicyGreedy {
		return decimal.Zero()
	}

	return decimal.NewFromFloat(c.Error)
}
