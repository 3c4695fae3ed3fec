// Package stpn is the analytic engine for Stochastic Time Petri Nets
// (STPNs): discrete-state, continuous-time stochastic models whose
// transitions fire after delays drawn from exponential or finite-support
// general distributions.
//
// The engine enumerates the stochastic state-class graph between
// regeneration points, represents each class by a multivariate piecewise
// expolynomial density over a difference-bound zone, and numerically solves
// the resulting Markov Renewal Equation on a discretized time grid. A
// secondary path handles the restricted case of one general transition
// enabled per state, where the state density reduces to a subordinated CTMC
// solved by uniformization.
//
// Subpackages, bottom-up:
//
//	decimal/    — arbitrary-precision signed decimal extended with ±∞ and
//	              left/right neighborhoods
//	term/       — atomic MonomialTerm / ExponentialTerm / Variable types
//	exmono/     — normalized exmonomial (constant × bag of atomic terms)
//	expoly/     — expolynomial algebra: add/sub/mul/div, substitute, shift,
//	              integrate, limit, textual round-trip
//	zone/       — Difference-Bound Matrix zones: normalize, project,
//	              Cartesian product, intersect, containment
//	density/    — PartitionedFunction: piecewise expolynomial over DBM
//	              zone domains
//	petri/      — collaborator interfaces onto the Petri-net structural
//	              layer (marking, enabling, firing) — consumed, not defined
//	stateclass/ — State feature bag, SuccessionGraph, and the successor
//	              transform for timed races between enabled transitions
//	enum/       — enumeration engine: frontier policies and stop criteria
//	              driving SuccessionGraph expansion
//	foxglynn/   — Fox–Glynn bounded-error Poisson truncation
//	ctmc/       — DTMC/CTMC state graphs, BSCC decomposition, stationary
//	              and absorption solves
//	onegen/     — the one-general-transition path: subordinated CTMC,
//	              kernel rows, Fox–Glynn uniformization
//	kernel/     — regenerative tree expansion, local/global kernel
//	              discretization, trapezoidal Markov Renewal convolution
//	reward/     — minimal marking/time reward expression interface
//	analysis/   — public builders (TransientAnalysis/SteadyStateAnalysis)
//	              and their solution value types
//
// Data flows bottom-up: numeric primitives → symbolic algebra →
// zone/density → state/succession → enumeration graph → kernel samples →
// solution vector. Control flows top-down from a user-configured analysis
// builder that drives the enumeration engine and then the numeric solver.
//
// The Petri-net structural layer, persistence, a marking-dependent rate
// expression language, plotting, and CLI/GUI front-ends are out of scope:
// this module addresses them only through the interfaces in petri/ and
// reward/.
package stpn
