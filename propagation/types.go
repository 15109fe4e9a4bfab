package propagation

// Policy controls which tracked instances a propagation run may touch
// and how offsets are counted. It is externally configured; callers pass
// it into every run explicitly.
type Policy struct {
	// SkipComplete protects instances already marked complete.
	SkipComplete bool `json:"skip_complete" mapstructure:"skip_complete"`
	// SkipLocked protects instances flagged locked.
	SkipLocked bool `json:"skip_locked" mapstructure:"skip_locked"`
	// SkipOverridden protects instances whose planned date was set by hand.
	SkipOverridden bool `json:"skip_overridden" mapstructure:"skip_overridden"`
	// BusinessDays switches offset arithmetic to skip weekends.
	BusinessDays bool `json:"business_days" mapstructure:"business_days"`
}

// Skip reasons. The protection reasons apply in precedence order:
// locked, then overridden, then complete, then no-change.
const (
	ReasonLocked           = "locked"
	ReasonOverridden       = "planned date overridden"
	ReasonComplete         = "complete"
	ReasonNoChange         = "no change"
	ReasonUnresolvable     = "not resolvable"
	ReasonItemMissing      = "schedule item not found"
	ReasonSupplierExcluded = "supplier excluded from propagation"
)

// Instance is one supplier-level tracked copy of a project schedule item.
type Instance struct {
	ID string `json:"id"`
	// ItemID is the project schedule item this instance tracks.
	ItemID string `json:"schedule_item_id"`
	// PlannedDate is the currently stored planned date, empty when unset.
	PlannedDate string `json:"planned_date,omitempty"`
	// ActualDate is the completion date, empty while the item is open.
	ActualDate string `json:"actual_date,omitempty"`
	Complete   bool   `json:"complete"`
	Locked     bool   `json:"locked"`
	// Overridden marks a planned date that was set manually.
	Overridden bool `json:"overridden"`
}

// SupplierBundle is one supplier's tracked instances plus a name lookup
// for the items they track.
type SupplierBundle struct {
	SupplierID   string            `json:"supplier_id"`
	SupplierName string            `json:"supplier_name"`
	Instances    []Instance        `json:"instances"`
	ItemNames    map[string]string `json:"item_names"`
}

// ChangeItem identifies an instance whose planned date would change.
type ChangeItem struct {
	InstanceID   string `json:"instance_id"`
	SupplierID   string `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	ItemID       string `json:"schedule_item_id"`
	ItemName     string `json:"schedule_item_name"`
	CurrentDate  string `json:"current_date,omitempty"`
	NewDate      string `json:"new_date,omitempty"`
}

// SkipItem identifies an instance left untouched and why.
type SkipItem struct {
	InstanceID   string `json:"instance_id"`
	SupplierID   string `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	ItemID       string `json:"schedule_item_id"`
	ItemName     string `json:"schedule_item_name"`
	CurrentDate  string `json:"current_date,omitempty"`
	Reason       string `json:"reason"`
}

// Result classifies every tracked instance of a propagation preview.
type Result struct {
	WillChange []ChangeItem `json:"will_change"`
	WontChange []SkipItem   `json:"wont_change"`
}

// ApplyPlan is the outcome of filtering a preview for application. The
// caller persists Updated — ideally inside one transaction — and reports
// Skipped and Errors as-is.
type ApplyPlan struct {
	Updated []ChangeItem     `json:"updated"`
	Skipped []SkipItem       `json:"skipped"`
	Errors  map[string]error `json:"-"`
}
