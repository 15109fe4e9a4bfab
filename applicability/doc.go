// Package applicability decides whether a checklist item applies to a
// given supplier and part context.
//
// A rule is an operator (ALL or ANY) over clauses testing the supplier's
// NMR rank or the PA ranks of its parts. Rank magnitude comparisons (GTE,
// LTE) are defined purely by position in an externally configured rank
// order list, not by string comparison. The evaluator is a pure function;
// the rank order and all facts are passed in explicitly.
package applicability
