// Package analysis is the public entry point of spec.md §6: functional-
// option builders that drive the enumeration engine (package enum),
// regenerative kernel discretization (package kernel), and the OneGen
// fast path (package onegen) or CTMC steady-state path (package ctmc) to
// produce a TransientSolution or SteadyStateSolution.
//
// Grounded on builder/config.go's BuilderOption pattern (unexported
// ...Config struct, newXConfig applying defaults then options in order)
// and on the teacher's hook-based (not global) configuration discipline
// (algorithms/bfs.go's OnVisit/OnEnqueue), generalized here to a Logger
// interface and an enum.AnalysisMonitor threaded explicitly through
// Config rather than held in a package-level variable.
package analysis
