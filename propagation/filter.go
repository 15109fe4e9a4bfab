package propagation

import "github.com/kbukum/supplysched/util"

// Filter narrows a preview to the suppliers the caller selected for
// application. A nil selection keeps every pending change; an empty
// non-nil selection keeps none. Changes for unselected suppliers move to
// Skipped with an exclusion reason, and the preview's wont-change entries
// carry through untouched.
func Filter(res Result, selectedSupplierIDs []string) ApplyPlan {
	plan := ApplyPlan{Errors: make(map[string]error)}

	if selectedSupplierIDs == nil {
		plan.Updated = append(plan.Updated, res.WillChange...)
	} else {
		for _, c := range res.WillChange {
			if util.Contains(selectedSupplierIDs, c.SupplierID) {
				plan.Updated = append(plan.Updated, c)
				continue
			}
			plan.Skipped = append(plan.Skipped, SkipItem{
				InstanceID:   c.InstanceID,
				SupplierID:   c.SupplierID,
				SupplierName: c.SupplierName,
				ItemID:       c.ItemID,
				ItemName:     c.ItemName,
				CurrentDate:  c.CurrentDate,
				Reason:       ReasonSupplierExcluded,
			})
		}
	}

	plan.Skipped = append(plan.Skipped, res.WontChange...)
	return plan
}
