// Package density implements PartitionedFunction, a piecewise multivariate
// density: a list of (zone.DBMZone, expoly.Expolynomial) pieces with
// disjoint, fully-dimensional supports that together cover the support of
// the density. A proper probability density integrates to 1 across all
// pieces.
package density
