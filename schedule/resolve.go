package schedule

import (
	"fmt"

	"github.com/kbukum/supplysched/errors"
)

// Resolve computes a planned date for every item in the set. Items anchor
// on each other through SCHEDULE_ITEM and COMPLETION references, so
// resolution runs in waves: each pass resolves every item whose
// dependencies are already settled, until either everything is resolved
// or a wave makes no progress. Items left after a stalled wave are part
// of a cycle — or downstream of one — and come back with a null date and
// an error; acyclic items in the same batch still resolve normally.
//
// Inputs are never mutated, and the output order matches the input order.
func Resolve(items []Item, opts Options) []Resolved {
	resolved := make(map[string]string, len(items)) // id -> date, "" = resolved to no date
	done := make(map[string]bool, len(items))
	errs := make(map[string]error)

	remaining := len(items)
	for remaining > 0 {
		progressed := 0
		for i := range items {
			it := &items[i]
			if done[it.ID] {
				continue
			}
			date, ok, err := resolveOne(it, done, resolved, opts)
			if !ok {
				continue // deferred to a later wave
			}
			done[it.ID] = true
			progressed++
			if err != nil {
				errs[it.ID] = err
				continue
			}
			resolved[it.ID] = date
		}
		remaining -= progressed
		if progressed == 0 && remaining > 0 {
			// Stalled wave. Everything left is reported as circular,
			// including items that are merely downstream of the cycle.
			for i := range items {
				if !done[items[i].ID] {
					done[items[i].ID] = true
					errs[items[i].ID] = errors.CircularDependency(items[i].Name)
				}
			}
			remaining = 0
		}
	}

	out := make([]Resolved, len(items))
	for i, it := range items {
		out[i] = Resolved{Item: it, PlannedDate: resolved[it.ID], Err: errs[it.ID]}
	}
	return out
}

// resolveOne attempts to settle a single item against the dates resolved
// so far. The second return value is false when the item must wait for a
// later wave.
func resolveOne(it *Item, done map[string]bool, resolved map[string]string, opts Options) (string, bool, error) {
	// A manual override short-circuits every anchor type.
	if it.Override.Enabled && it.Override.Date != "" {
		return it.Override.Date, true, nil
	}

	switch it.Anchor.Type {
	case AnchorFixedDate:
		// A missing fixed date is a permanent null, not a pending state.
		return it.Anchor.FixedDate, true, nil

	case AnchorProjectMilestone:
		base := opts.MilestoneDates[it.Anchor.MilestoneRef]
		if base == "" {
			return "", true, nil
		}
		return shift(it, base, opts)

	case AnchorScheduleItem:
		if !done[it.Anchor.Ref] {
			return "", false, nil
		}
		base := resolved[it.Anchor.Ref]
		if base == "" {
			// Null propagates as null: pending or absent upstream data
			// is not an error for downstream items.
			return "", true, nil
		}
		return shift(it, base, opts)

	case AnchorCompletion:
		actual, tracked := opts.ActualDates[it.Anchor.Ref]
		if !tracked {
			// No completion record at all: wait. If one never appears
			// the stalled-wave handling reports the item.
			return "", false, nil
		}
		if actual == nil || *actual == "" {
			return "", true, nil // pending completion, not an error
		}
		return shift(it, *actual, opts)

	default:
		return "", true, errors.InvalidInput("anchor.type", fmt.Sprintf("unknown anchor type %q", it.Anchor.Type))
	}
}

func shift(it *Item, base string, opts Options) (string, bool, error) {
	date, err := AddDays(base, it.Anchor.OffsetDays, opts.BusinessDays)
	if err != nil {
		return "", true, err
	}
	return date, true, nil
}
