package propagation

import (
	"fmt"

	"github.com/kbukum/supplysched/schedule"
)

// Preview resolves the project schedule once per supplier and classifies
// every tracked instance as will-change or wont-change. Each supplier is
// resolved with its own actual dates, so the same item can shift for one
// supplier and stay put for another. Nothing is mutated.
func Preview(items []schedule.Item, milestoneDates map[string]string, suppliers []SupplierBundle, policy Policy) Result {
	var res Result
	for i := range suppliers {
		previewSupplier(&res, items, milestoneDates, &suppliers[i], policy)
	}
	return res
}

func previewSupplier(res *Result, items []schedule.Item, milestoneDates map[string]string, sup *SupplierBundle, policy Policy) {
	// Every tracked instance contributes an actual-date entry, nil while
	// still open, so completion anchors can distinguish pending from
	// untracked.
	actuals := make(map[string]*string, len(sup.Instances))
	for i := range sup.Instances {
		inst := &sup.Instances[i]
		if inst.ActualDate != "" {
			d := inst.ActualDate
			actuals[inst.ItemID] = &d
		} else {
			actuals[inst.ItemID] = nil
		}
	}

	resolved := schedule.Resolve(items, schedule.Options{
		BusinessDays:   policy.BusinessDays,
		ActualDates:    actuals,
		MilestoneDates: milestoneDates,
	})
	byID := make(map[string]schedule.Resolved, len(resolved))
	for _, r := range resolved {
		byID[r.ID] = r
	}

	for i := range sup.Instances {
		inst := &sup.Instances[i]

		if reason, protected := protectionReason(inst, policy); protected {
			res.WontChange = append(res.WontChange, skipFor(inst, sup, reason))
			continue
		}

		r, ok := byID[inst.ItemID]
		switch {
		case !ok:
			res.WontChange = append(res.WontChange, skipFor(inst, sup, ReasonItemMissing))
		case r.Err != nil:
			res.WontChange = append(res.WontChange, skipFor(inst, sup, fmt.Sprintf("%s: %v", ReasonUnresolvable, r.Err)))
		case r.PlannedDate == inst.PlannedDate:
			res.WontChange = append(res.WontChange, skipFor(inst, sup, ReasonNoChange))
		default:
			res.WillChange = append(res.WillChange, ChangeItem{
				InstanceID:   inst.ID,
				SupplierID:   sup.SupplierID,
				SupplierName: sup.SupplierName,
				ItemID:       inst.ItemID,
				ItemName:     sup.ItemNames[inst.ItemID],
				CurrentDate:  inst.PlannedDate,
				NewDate:      r.PlannedDate,
			})
		}
	}
}

// protectionReason applies the policy's protection flags in precedence
// order: locked beats overridden beats complete.
func protectionReason(inst *Instance, policy Policy) (string, bool) {
	switch {
	case policy.SkipLocked && inst.Locked:
		return ReasonLocked, true
	case policy.SkipOverridden && inst.Overridden:
		return ReasonOverridden, true
	case policy.SkipComplete && inst.Complete:
		return ReasonComplete, true
	}
	return "", false
}

func skipFor(inst *Instance, sup *SupplierBundle, reason string) SkipItem {
	return SkipItem{
		InstanceID:   inst.ID,
		SupplierID:   sup.SupplierID,
		SupplierName: sup.SupplierName,
		ItemID:       inst.ItemID,
		ItemName:     sup.ItemNames[inst.ItemID],
		CurrentDate:  inst.PlannedDate,
		Reason:       reason,
	}
}
