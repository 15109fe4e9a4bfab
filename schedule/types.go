package schedule

// ItemKind labels a schedule item as milestone-like or task-like. The
// resolver treats both identically; the kind is presentation data that
// travels with the item.
type ItemKind string

const (
	KindMilestone ItemKind = "milestone"
	KindTask      ItemKind = "task"
)

// AnchorType selects how an item's planned date is derived.
type AnchorType string

const (
	// AnchorFixedDate pins the item to a literal calendar date.
	AnchorFixedDate AnchorType = "FIXED_DATE"
	// AnchorScheduleItem derives the date from another item's planned date.
	AnchorScheduleItem AnchorType = "SCHEDULE_ITEM"
	// AnchorCompletion derives the date from another item's actual
	// completion date.
	AnchorCompletion AnchorType = "COMPLETION"
	// AnchorProjectMilestone derives the date from an external project
	// milestone.
	AnchorProjectMilestone AnchorType = "PROJECT_MILESTONE"
)

// Anchor declares the date rule for one schedule item. Only the fields
// matching Type are meaningful; the constructors build legal combinations.
type Anchor struct {
	Type AnchorType `json:"type" validate:"required,oneof=FIXED_DATE SCHEDULE_ITEM COMPLETION PROJECT_MILESTONE"`
	// Ref is the id of another schedule item in the same set
	// (SCHEDULE_ITEM and COMPLETION).
	Ref string `json:"ref,omitempty"`
	// MilestoneRef is the id of an external project milestone
	// (PROJECT_MILESTONE).
	MilestoneRef string `json:"milestone_ref,omitempty"`
	// FixedDate is a calendar date in YYYY-MM-DD form (FIXED_DATE).
	FixedDate string `json:"fixed_date,omitempty"`
	// OffsetDays shifts the anchor date. Zero when absent.
	OffsetDays int `json:"offset_days,omitempty"`
}

// FixedDate builds a FIXED_DATE anchor.
func FixedDate(date string) Anchor {
	return Anchor{Type: AnchorFixedDate, FixedDate: date}
}

// AnchoredTo builds a SCHEDULE_ITEM anchor on the item with the given id.
func AnchoredTo(ref string, offsetDays int) Anchor {
	return Anchor{Type: AnchorScheduleItem, Ref: ref, OffsetDays: offsetDays}
}

// OnCompletionOf builds a COMPLETION anchor on the item with the given id.
func OnCompletionOf(ref string, offsetDays int) Anchor {
	return Anchor{Type: AnchorCompletion, Ref: ref, OffsetDays: offsetDays}
}

// FromMilestone builds a PROJECT_MILESTONE anchor.
func FromMilestone(milestoneRef string, offsetDays int) Anchor {
	return Anchor{Type: AnchorProjectMilestone, MilestoneRef: milestoneRef, OffsetDays: offsetDays}
}

// Override is a manual date that supersedes all anchor logic when enabled.
type Override struct {
	Enabled bool   `json:"enabled"`
	Date    string `json:"date,omitempty"`
}

// Item is the unit the resolver works on.
type Item struct {
	ID string `json:"id" validate:"required"`
	// OriginID links a materialized copy back to the template item it was
	// copied from. Empty for items authored directly.
	OriginID string   `json:"template_item_id,omitempty"`
	Name     string   `json:"name" validate:"required"`
	Kind     ItemKind `json:"kind,omitempty" validate:"omitempty,oneof=milestone task"`
	Anchor   Anchor   `json:"anchor"`
	Override Override `json:"override"`
}

// Resolved pairs an input item with its computed planned date.
type Resolved struct {
	Item
	// PlannedDate is a YYYY-MM-DD date, or empty when the item resolved
	// to no date (pending completion or missing upstream data).
	PlannedDate string `json:"planned_date,omitempty"`
	// Err is set only for items stuck in a circular or otherwise
	// irresolvable dependency chain.
	Err error `json:"-"`
}

// Options carries the external inputs to a resolution run.
type Options struct {
	// BusinessDays switches offset arithmetic to skip weekends.
	BusinessDays bool
	// ActualDates maps item id to its completion date. A present key with
	// a nil (or empty) value means tracked but not yet complete — the
	// pending state. An absent key means completion is unknown here.
	ActualDates map[string]*string
	// MilestoneDates maps milestone id to its date. Absent or empty
	// entries mean the milestone has no date yet.
	MilestoneDates map[string]string
}
