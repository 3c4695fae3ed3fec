// Package reward provides the minimal reward/marking-condition vocabulary
// the analysis layer needs (spec.md §6 item 4): a tiny arithmetic
// expression interface evaluated against time and a marking, and a
// marking-condition predicate used as a stop criterion or reward
// indicator. No expression parser is implemented — callers supply their
// own Expression and MarkingCondition values (closures are the common
// case, see the package's example).
package reward
