package materialize

import (
	"github.com/google/uuid"

	"github.com/kbukum/supplysched/errors"
	"github.com/kbukum/supplysched/schedule"
)

// IDMap records which fresh id each source item received, keyed by the
// source item's id.
type IDMap map[string]string

// CopyItems clones template items into a fresh, independently editable
// set. Each copy gets a new id (from nextID, or random UUIDs when nil)
// and remembers its source through OriginID; intra-set anchor refs are
// rewired to the corresponding copies in a second pass, so the copies
// form a closed graph with the same shape as the source. A ref pointing
// outside the set is an error. The source items are never modified.
func CopyItems(items []schedule.Item, nextID func() string) ([]schedule.Item, IDMap, error) {
	if nextID == nil {
		nextID = uuid.NewString
	}

	ids := make(IDMap, len(items))
	copies := make([]schedule.Item, len(items))
	for i, src := range items {
		cp := src
		cp.ID = nextID()
		cp.OriginID = src.ID
		ids[src.ID] = cp.ID
		copies[i] = cp
	}

	for i := range copies {
		anchor := &copies[i].Anchor
		if anchor.Type != schedule.AnchorScheduleItem && anchor.Type != schedule.AnchorCompletion {
			continue
		}
		mapped, ok := ids[anchor.Ref]
		if !ok {
			return nil, nil, errors.DanglingReference(copies[i].Name, anchor.Ref)
		}
		anchor.Ref = mapped
	}

	return copies, ids, nil
}
