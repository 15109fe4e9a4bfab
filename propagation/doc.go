// Package propagation pushes recalculated project schedule dates down to
// supplier-level tracked instances.
//
// Preview resolves the schedule once per supplier — each with its own
// completion facts — and classifies every instance as will-change or
// wont-change with a reason. Filter narrows the preview to the suppliers
// selected for application. Cascade runs preview/apply/reload rounds
// until the dates reach a fixed point, bounded by an iteration cap.
//
// The engines are pure with respect to storage: persistence happens only
// through caller-supplied hooks, and protected instances (locked,
// overridden, complete) are never touched when the policy says so.
package propagation
