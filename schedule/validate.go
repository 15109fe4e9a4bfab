package schedule

import (
	"fmt"
	"strings"
)

// Validate performs the structural checks run before item definitions are
// saved: self-references, references to nonexistent items, fixed-date
// items with no date, milestone items with no milestone reference, and
// full cycle detection. It does not compute dates; it enumerates problems
// as human-readable messages for the caller to surface.
func Validate(items []Item) []string {
	var problems []string

	index := make(map[string]bool, len(items))
	for i := range items {
		index[items[i].ID] = true
	}

	for i := range items {
		it := &items[i]
		switch it.Anchor.Type {
		case AnchorScheduleItem, AnchorCompletion:
			if it.Anchor.Ref == it.ID {
				problems = append(problems, fmt.Sprintf("item %q references itself", it.Name))
				continue
			}
			if !index[it.Anchor.Ref] {
				problems = append(problems, fmt.Sprintf("item %q references unknown item %q", it.Name, it.Anchor.Ref))
			}
		case AnchorFixedDate:
			if it.Anchor.FixedDate == "" && !it.Override.Enabled {
				problems = append(problems, fmt.Sprintf("item %q has a fixed date anchor but no date", it.Name))
			}
		case AnchorProjectMilestone:
			if it.Anchor.MilestoneRef == "" {
				problems = append(problems, fmt.Sprintf("item %q has a project milestone anchor but no milestone reference", it.Name))
			}
		}
	}

	if stuck := findCycle(items); len(stuck) > 0 {
		problems = append(problems, fmt.Sprintf("circular dependency involving: %s", strings.Join(stuck, ", ")))
	}

	return problems
}

// findCycle runs Kahn's algorithm over the item-to-item anchor edges and
// returns the names of items left unprocessed: cycle members plus
// anything anchored downstream of them, in input order. Self-references
// and dangling references are excluded here; they get dedicated messages.
func findCycle(items []Item) []string {
	index := make(map[string]bool, len(items))
	for i := range items {
		index[items[i].ID] = true
	}

	inDegree := make(map[string]int, len(items))
	dependents := make(map[string][]string)
	for i := range items {
		inDegree[items[i].ID] = 0
	}
	for i := range items {
		it := &items[i]
		if it.Anchor.Type != AnchorScheduleItem && it.Anchor.Type != AnchorCompletion {
			continue
		}
		ref := it.Anchor.Ref
		if ref == it.ID || !index[ref] {
			continue
		}
		inDegree[it.ID]++
		dependents[ref] = append(dependents[ref], it.ID)
	}

	var queue []string
	for i := range items {
		if inDegree[items[i].ID] == 0 {
			queue = append(queue, items[i].ID)
		}
	}

	processed := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		processed++
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if processed == len(items) {
		return nil
	}

	var stuck []string
	for i := range items {
		if inDegree[items[i].ID] > 0 {
			stuck = append(stuck, items[i].Name)
		}
	}
	return stuck
}
