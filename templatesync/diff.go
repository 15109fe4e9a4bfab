package templatesync

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/supplysched/observability"
	"github.com/kbukum/supplysched/schedule"
)

// ChangeType classifies one divergence between a materialized schedule
// and its source template.
type ChangeType string

const (
	// ChangeAdd marks a template item with no materialized counterpart.
	ChangeAdd ChangeType = "add"
	// ChangeRemove marks a materialized item whose template item is gone.
	ChangeRemove ChangeType = "remove"
	// ChangeUpdate marks a linked pair whose definitions drifted apart.
	ChangeUpdate ChangeType = "update"
)

// Change is one entry in a template sync report.
type Change struct {
	Type     ChangeType `json:"type"`
	ItemName string     `json:"item_name"`
	// Detail lists the drifted fields for updates, "field: old -> new"
	// joined with "; ". Empty for adds and removes.
	Detail string `json:"detail,omitempty"`
}

// Diff reports how a materialized schedule has drifted from the template
// it was copied from. Items link through their origin id; materialized
// items without one were authored directly and are never reported for
// removal. The report is ordered template-first: adds and updates in
// template order, then removals in materialized order. Nothing is
// mutated — the report is advice for the caller to apply or ignore.
func Diff(ctx context.Context, current, template []schedule.Item) []Change {
	_, span := observability.StartSpan(ctx, observability.SpanTemplateDiff)
	defer span.End()

	byOrigin := make(map[string]*schedule.Item, len(current))
	originOf := make(map[string]string, len(current))
	for i := range current {
		if current[i].OriginID != "" {
			byOrigin[current[i].OriginID] = &current[i]
			originOf[current[i].ID] = current[i].OriginID
		}
	}

	var changes []Change
	templateIDs := make(map[string]struct{}, len(template))
	for i := range template {
		tpl := &template[i]
		templateIDs[tpl.ID] = struct{}{}

		cur, linked := byOrigin[tpl.ID]
		if !linked {
			changes = append(changes, Change{Type: ChangeAdd, ItemName: tpl.Name})
			continue
		}
		if detail := drift(cur, tpl, originOf); detail != "" {
			changes = append(changes, Change{Type: ChangeUpdate, ItemName: cur.Name, Detail: detail})
		}
	}

	for i := range current {
		cur := &current[i]
		if cur.OriginID == "" {
			continue
		}
		if _, ok := templateIDs[cur.OriginID]; !ok {
			changes = append(changes, Change{Type: ChangeRemove, ItemName: cur.Name})
		}
	}

	return changes
}

// drift lists the definition fields where cur no longer matches tpl.
// Anchor refs compare through the origin mapping, since a materialized
// anchor points at the local copy of the item the template anchor names.
// Planned-date state (override, resolution output) is deliberately not
// compared; sync is about definitions, not dates.
func drift(cur, tpl *schedule.Item, originOf map[string]string) string {
	var parts []string
	diffField := func(field, old, new string) {
		if old != new {
			parts = append(parts, fmt.Sprintf("%s: %s -> %s", field, display(old), display(new)))
		}
	}

	curRef := cur.Anchor.Ref
	if origin, ok := originOf[curRef]; ok {
		curRef = origin
	}

	diffField("name", cur.Name, tpl.Name)
	diffField("kind", string(cur.Kind), string(tpl.Kind))
	diffField("anchor", string(cur.Anchor.Type), string(tpl.Anchor.Type))
	diffField("anchor ref", curRef, tpl.Anchor.Ref)
	diffField("milestone ref", cur.Anchor.MilestoneRef, tpl.Anchor.MilestoneRef)
	diffField("fixed date", cur.Anchor.FixedDate, tpl.Anchor.FixedDate)
	if cur.Anchor.OffsetDays != tpl.Anchor.OffsetDays {
		parts = append(parts, fmt.Sprintf("offset: %d -> %d", cur.Anchor.OffsetDays, tpl.Anchor.OffsetDays))
	}

	return strings.Join(parts, "; ")
}

func display(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}
