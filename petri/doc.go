// Package petri declares the collaborator surface the analytic engine
// consumes but does not implement: markings, transition identities, and
// stochastic transition features. The net's structural layer (places,
// arcs, enabling rules) lives outside this module; only the shape the
// engine calls through is defined here, grounded on the dalzilio-nets
// marking/transition vocabulary.
package petri
