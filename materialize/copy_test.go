package materialize

import (
	"fmt"
	"testing"

	"github.com/kbukum/supplysched/errors"
	"github.com/kbukum/supplysched/schedule"
)

// sequentialIDs returns a deterministic id generator for tests.
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func TestCopyItems_RewiresInternalRefs(t *testing.T) {
	src := []schedule.Item{
		{ID: "t-a", Name: "Kickoff", Anchor: schedule.FixedDate("2025-01-01")},
		{ID: "t-b", Name: "Design Review", Anchor: schedule.AnchoredTo("t-a", 10)},
		{ID: "t-c", Name: "First Article", Anchor: schedule.OnCompletionOf("t-b", 5)},
	}

	copies, ids, err := CopyItems(src, sequentialIDs("c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(copies) != 3 {
		t.Fatalf("expected 3 copies, got %d", len(copies))
	}
	if copies[1].Anchor.Ref != ids["t-a"] {
		t.Errorf("expected schedule-item ref rewired to %q, got %q", ids["t-a"], copies[1].Anchor.Ref)
	}
	if copies[2].Anchor.Ref != ids["t-b"] {
		t.Errorf("expected completion ref rewired to %q, got %q", ids["t-b"], copies[2].Anchor.Ref)
	}
}

func TestCopyItems_RecordsOrigin(t *testing.T) {
	src := []schedule.Item{
		{ID: "t-a", Name: "Kickoff", Anchor: schedule.FixedDate("2025-01-01")},
	}

	copies, ids, err := CopyItems(src, sequentialIDs("c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if copies[0].OriginID != "t-a" {
		t.Errorf("expected origin id t-a, got %q", copies[0].OriginID)
	}
	if copies[0].ID != "c1" || ids["t-a"] != "c1" {
		t.Errorf("expected fresh id c1 in both copy and map, got %q and %q", copies[0].ID, ids["t-a"])
	}
}

func TestCopyItems_ForwardRefResolves(t *testing.T) {
	// The anchored item precedes its anchor in the slice; the two-pass
	// rewrite must still connect them.
	src := []schedule.Item{
		{ID: "t-b", Name: "Design Review", Anchor: schedule.AnchoredTo("t-a", 10)},
		{ID: "t-a", Name: "Kickoff", Anchor: schedule.FixedDate("2025-01-01")},
	}

	copies, ids, err := CopyItems(src, sequentialIDs("c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if copies[0].Anchor.Ref != ids["t-a"] {
		t.Errorf("expected forward ref rewired, got %q", copies[0].Anchor.Ref)
	}
}

func TestCopyItems_DanglingRefFails(t *testing.T) {
	src := []schedule.Item{
		{ID: "t-b", Name: "Design Review", Anchor: schedule.AnchoredTo("t-missing", 10)},
	}

	_, _, err := CopyItems(src, sequentialIDs("c"))
	if !errors.HasCode(err, errors.ErrCodeDanglingReference) {
		t.Fatalf("expected dangling-reference error, got %v", err)
	}
}

func TestCopyItems_MilestoneRefsUntouched(t *testing.T) {
	src := []schedule.Item{
		{ID: "t-m", Name: "PO Release", Anchor: schedule.FromMilestone("po", 3)},
	}

	copies, _, err := CopyItems(src, sequentialIDs("c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if copies[0].Anchor.MilestoneRef != "po" {
		t.Errorf("milestone refs point outside the set and must not be rewired, got %q", copies[0].Anchor.MilestoneRef)
	}
}

func TestCopyItems_SourceNotMutated(t *testing.T) {
	src := []schedule.Item{
		{ID: "t-a", Name: "Kickoff", Anchor: schedule.FixedDate("2025-01-01")},
		{ID: "t-b", Name: "Design Review", Anchor: schedule.AnchoredTo("t-a", 10)},
	}

	if _, _, err := CopyItems(src, sequentialIDs("c")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src[0].ID != "t-a" || src[0].OriginID != "" {
		t.Error("source items must keep their ids")
	}
	if src[1].Anchor.Ref != "t-a" {
		t.Error("source anchor refs must stay untouched")
	}
}

func TestCopyItems_DefaultGeneratorYieldsUniqueIDs(t *testing.T) {
	src := []schedule.Item{
		{ID: "t-a", Name: "Kickoff", Anchor: schedule.FixedDate("2025-01-01")},
		{ID: "t-b", Name: "Design Review", Anchor: schedule.AnchoredTo("t-a", 10)},
	}

	copies, _, err := CopyItems(src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if copies[0].ID == "" || copies[0].ID == copies[1].ID {
		t.Errorf("expected distinct generated ids, got %q and %q", copies[0].ID, copies[1].ID)
	}
	if copies[0].ID == "t-a" {
		t.Error("copies must not reuse source ids")
	}
}
