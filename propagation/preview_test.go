package propagation

import (
	"strings"
	"testing"

	"github.com/kbukum/supplysched/schedule"
)

func projectItems() []schedule.Item {
	return []schedule.Item{
		{ID: "a", Name: "Kickoff", Anchor: schedule.FixedDate("2025-01-01")},
		{ID: "b", Name: "Design Review", Anchor: schedule.AnchoredTo("a", 10)},
		{ID: "c", Name: "First Article", Anchor: schedule.OnCompletionOf("b", 5)},
	}
}

func bundle(supplierID string, instances ...Instance) SupplierBundle {
	names := map[string]string{"a": "Kickoff", "b": "Design Review", "c": "First Article"}
	return SupplierBundle{
		SupplierID:   supplierID,
		SupplierName: "Supplier " + supplierID,
		Instances:    instances,
		ItemNames:    names,
	}
}

func findChange(t *testing.T, res Result, instanceID string) ChangeItem {
	t.Helper()
	for _, c := range res.WillChange {
		if c.InstanceID == instanceID {
			return c
		}
	}
	t.Fatalf("instance %s not in willChange", instanceID)
	return ChangeItem{}
}

func findSkip(t *testing.T, res Result, instanceID string) SkipItem {
	t.Helper()
	for _, s := range res.WontChange {
		if s.InstanceID == instanceID {
			return s
		}
	}
	t.Fatalf("instance %s not in wontChange", instanceID)
	return SkipItem{}
}

func TestPreview_StaleDateWillChange(t *testing.T) {
	sup := bundle("s1",
		Instance{ID: "i-a", ItemID: "a", PlannedDate: "2025-01-01"},
		Instance{ID: "i-b", ItemID: "b", PlannedDate: "2025-01-05"},
	)

	res := Preview(projectItems(), nil, []SupplierBundle{sup}, Policy{})

	c := findChange(t, res, "i-b")
	if c.NewDate != "2025-01-11" {
		t.Errorf("expected new date 2025-01-11, got %q", c.NewDate)
	}
	if c.CurrentDate != "2025-01-05" {
		t.Errorf("expected current date to carry through, got %q", c.CurrentDate)
	}
	if c.ItemName != "Design Review" {
		t.Errorf("expected item name from bundle lookup, got %q", c.ItemName)
	}

	s := findSkip(t, res, "i-a")
	if s.Reason != ReasonNoChange {
		t.Errorf("expected no-change skip for i-a, got %q", s.Reason)
	}
}

func TestPreview_CompletionUsesInstanceActuals(t *testing.T) {
	sup := bundle("s1",
		Instance{ID: "i-b", ItemID: "b", PlannedDate: "2025-01-11", ActualDate: "2025-02-01", Complete: true},
		Instance{ID: "i-c", ItemID: "c"},
	)

	res := Preview(projectItems(), nil, []SupplierBundle{sup}, Policy{})

	c := findChange(t, res, "i-c")
	if c.NewDate != "2025-02-06" {
		t.Errorf("expected completion-shifted date 2025-02-06, got %q", c.NewDate)
	}
}

func TestPreview_OpenUpstreamLeavesDependentPending(t *testing.T) {
	// b is tracked but not complete, so c resolves to no date. With no
	// stored date either, c is a no-change skip rather than a change.
	sup := bundle("s1",
		Instance{ID: "i-b", ItemID: "b", PlannedDate: "2025-01-11"},
		Instance{ID: "i-c", ItemID: "c"},
	)

	res := Preview(projectItems(), nil, []SupplierBundle{sup}, Policy{})

	if s := findSkip(t, res, "i-c"); s.Reason != ReasonNoChange {
		t.Errorf("expected pending item with no stored date to skip, got %q", s.Reason)
	}
}

func TestPreview_PendingClearsStoredDate(t *testing.T) {
	sup := bundle("s1",
		Instance{ID: "i-b", ItemID: "b", PlannedDate: "2025-01-11"},
		Instance{ID: "i-c", ItemID: "c", PlannedDate: "2025-03-01"},
	)

	res := Preview(projectItems(), nil, []SupplierBundle{sup}, Policy{})

	c := findChange(t, res, "i-c")
	if c.NewDate != "" {
		t.Errorf("expected pending item to clear its stored date, got %q", c.NewDate)
	}
}

func TestPreview_ProtectionPrecedence(t *testing.T) {
	policy := Policy{SkipComplete: true, SkipLocked: true, SkipOverridden: true}
	cases := []struct {
		name string
		inst Instance
		want string
	}{
		{"locked beats all", Instance{ID: "i", ItemID: "b", Locked: true, Overridden: true, Complete: true}, ReasonLocked},
		{"overridden beats complete", Instance{ID: "i", ItemID: "b", Overridden: true, Complete: true}, ReasonOverridden},
		{"complete alone", Instance{ID: "i", ItemID: "b", Complete: true}, ReasonComplete},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Preview(projectItems(), nil, []SupplierBundle{bundle("s1", tc.inst)}, policy)
			if s := findSkip(t, res, "i"); s.Reason != tc.want {
				t.Errorf("expected reason %q, got %q", tc.want, s.Reason)
			}
		})
	}
}

func TestPreview_DisabledProtectionAllowsChange(t *testing.T) {
	sup := bundle("s1",
		Instance{ID: "i-b", ItemID: "b", PlannedDate: "2025-01-05", Locked: true, Overridden: true, Complete: true},
	)

	res := Preview(projectItems(), nil, []SupplierBundle{sup}, Policy{})

	if c := findChange(t, res, "i-b"); c.NewDate != "2025-01-11" {
		t.Errorf("expected change when policy flags are off, got %q", c.NewDate)
	}
}

func TestPreview_UnknownItemSkipped(t *testing.T) {
	sup := bundle("s1", Instance{ID: "i-x", ItemID: "ghost", PlannedDate: "2025-01-01"})

	res := Preview(projectItems(), nil, []SupplierBundle{sup}, Policy{})

	if s := findSkip(t, res, "i-x"); s.Reason != ReasonItemMissing {
		t.Errorf("expected missing-item skip, got %q", s.Reason)
	}
}

func TestPreview_UnresolvableItemSkipped(t *testing.T) {
	items := []schedule.Item{
		{ID: "x", Name: "X", Anchor: schedule.AnchoredTo("y", 0)},
		{ID: "y", Name: "Y", Anchor: schedule.AnchoredTo("x", 0)},
	}
	sup := SupplierBundle{
		SupplierID: "s1",
		Instances:  []Instance{{ID: "i-x", ItemID: "x", PlannedDate: "2025-01-01"}},
		ItemNames:  map[string]string{"x": "X"},
	}

	res := Preview(items, nil, []SupplierBundle{sup}, Policy{})

	s := findSkip(t, res, "i-x")
	if !strings.HasPrefix(s.Reason, ReasonUnresolvable) {
		t.Errorf("expected unresolvable skip reason, got %q", s.Reason)
	}
}

func TestPreview_SuppliersResolveIndependently(t *testing.T) {
	done := bundle("s-done",
		Instance{ID: "d-b", ItemID: "b", PlannedDate: "2025-01-11", ActualDate: "2025-02-01", Complete: true},
		Instance{ID: "d-c", ItemID: "c"},
	)
	open := bundle("s-open",
		Instance{ID: "o-b", ItemID: "b", PlannedDate: "2025-01-11"},
		Instance{ID: "o-c", ItemID: "c"},
	)

	res := Preview(projectItems(), nil, []SupplierBundle{done, open}, Policy{})

	if c := findChange(t, res, "d-c"); c.NewDate != "2025-02-06" {
		t.Errorf("expected completed supplier to shift, got %q", c.NewDate)
	}
	if s := findSkip(t, res, "o-c"); s.Reason != ReasonNoChange {
		t.Errorf("expected open supplier to stay pending, got %q", s.Reason)
	}
}

func TestPreview_MilestoneDatesFlowThrough(t *testing.T) {
	items := []schedule.Item{
		{ID: "m", Name: "PO Release", Anchor: schedule.FromMilestone("po", 3)},
	}
	sup := SupplierBundle{
		SupplierID: "s1",
		Instances:  []Instance{{ID: "i-m", ItemID: "m"}},
		ItemNames:  map[string]string{"m": "PO Release"},
	}

	res := Preview(items, map[string]string{"po": "2025-04-01"}, []SupplierBundle{sup}, Policy{})

	if c := findChange(t, res, "i-m"); c.NewDate != "2025-04-04" {
		t.Errorf("expected milestone-shifted date 2025-04-04, got %q", c.NewDate)
	}
}

func TestPreview_DoesNotMutateInputs(t *testing.T) {
	sup := bundle("s1", Instance{ID: "i-b", ItemID: "b", PlannedDate: "2025-01-05"})
	suppliers := []SupplierBundle{sup}

	Preview(projectItems(), nil, suppliers, Policy{})

	if suppliers[0].Instances[0].PlannedDate != "2025-01-05" {
		t.Error("preview must not rewrite stored planned dates")
	}
}
