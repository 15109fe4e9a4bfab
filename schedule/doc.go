// Package schedule resolves planned dates for a graph of checklist items
// whose due dates are anchored to fixed dates, other items, external
// project milestones, or completion events.
//
// Resolution is a fixed-point iteration: each wave settles every item
// whose dependencies already resolved, and a wave that makes no progress
// declares the remainder circular. The engine is a pure function over its
// inputs — no I/O, no retained state, safe to call from any goroutine.
//
//	resolved := schedule.Resolve(items, schedule.Options{
//	    BusinessDays:   true,
//	    MilestoneDates: map[string]string{"sop": "2025-06-02"},
//	})
//
// Validate runs the structural pre-save checks (dangling references,
// missing required fields, cycles) without computing any dates.
package schedule
