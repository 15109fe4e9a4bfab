package propagation

import (
	"context"

	"github.com/kbukum/supplysched/errors"
	"github.com/kbukum/supplysched/logger"
	"github.com/kbukum/supplysched/observability"
	"github.com/kbukum/supplysched/schedule"
)

const defaultMaxIterations = 10

// Hooks connect a cascade run to the caller's storage. The engine itself
// never persists anything.
type Hooks struct {
	// Apply persists the new planned dates for one supplier's changes.
	// Required.
	Apply func(ctx context.Context, supplierID string, changes []ChangeItem) error
	// Reload returns fresh supplier bundles after an apply round, so
	// completion anchors can see the dates just written. Nil disables
	// cascading; the run stops after a single round.
	Reload func(ctx context.Context) ([]SupplierBundle, error)
}

// CascadeConfig configures an iterative propagation run.
type CascadeConfig struct {
	ProjectID      string
	ProjectItems   []schedule.Item
	MilestoneDates map[string]string
	Suppliers      []SupplierBundle
	Policy         Policy
	// SelectedSupplierIDs restricts applies to these suppliers; nil
	// selects all.
	SelectedSupplierIDs []string
	// MaxIterations bounds the fixed-point loop. Zero means the default
	// of 10.
	MaxIterations int
	Log           *logger.Logger
	Metrics       *observability.Metrics
}

// CascadeResult reports what an iterative run did. Skipped reflects the
// final round, the one that found nothing left to change.
type CascadeResult struct {
	Iterations int
	Updated    []ChangeItem
	Skipped    []SkipItem
	Errors     map[string]error
}

// Cascade previews, applies, reloads, and repeats until a round produces
// no pending change. One supplier's apply failure is recorded and does
// not abort the batch. If the loop has not reached a fixed point within
// MaxIterations rounds, the partial result is returned with a stalled
// error.
func Cascade(ctx context.Context, cfg CascadeConfig, hooks Hooks) (CascadeResult, error) {
	if hooks.Apply == nil {
		return CascadeResult{}, errors.MissingField("hooks.apply")
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("propagation")

	ctx, span := observability.StartSpan(ctx, observability.SpanCascade)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrProjectID, cfg.ProjectID)

	result := CascadeResult{Errors: make(map[string]error)}
	suppliers := cfg.Suppliers

	for result.Iterations < cfg.MaxIterations {
		result.Iterations++
		plan := runRound(ctx, &cfg, suppliers, result.Iterations, log)
		result.Skipped = plan.Skipped

		if len(plan.Updated) == 0 {
			observability.SetSpanAttribute(ctx, observability.AttrIteration, result.Iterations)
			return result, nil
		}

		for _, group := range groupBySupplier(plan.Updated) {
			if err := hooks.Apply(ctx, group.supplierID, group.changes); err != nil {
				appErr := errors.SupplierFailed(group.supplierID, err)
				result.Errors[group.supplierID] = appErr
				cfg.Metrics.RecordSupplierError(ctx, group.supplierID)
				observability.SetSpanError(ctx, appErr)
				log.Error("supplier apply failed", logger.ErrorFields("apply", appErr), logger.Fields(
					logger.FieldSupplierID, group.supplierID,
				))
				continue
			}
			result.Updated = append(result.Updated, group.changes...)
		}

		if hooks.Reload == nil {
			return result, nil
		}
		fresh, err := hooks.Reload(ctx)
		if err != nil {
			reloadErr := errors.Internal(err)
			observability.SetSpanError(ctx, reloadErr)
			return result, reloadErr
		}
		suppliers = fresh
	}

	stalled := errors.PropagationStalled(result.Iterations)
	observability.SetSpanError(ctx, stalled)
	log.Error("cascade did not converge", logger.Fields(
		logger.FieldIteration, result.Iterations,
	))
	return result, stalled
}

func runRound(ctx context.Context, cfg *CascadeConfig, suppliers []SupplierBundle, iteration int, log *logger.Logger) ApplyPlan {
	ctx, span := observability.StartSpan(ctx, observability.SpanPropagationRound)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrIteration, iteration)

	res := Preview(cfg.ProjectItems, cfg.MilestoneDates, suppliers, cfg.Policy)
	plan := Filter(res, cfg.SelectedSupplierIDs)

	observability.SetSpanAttribute(ctx, observability.AttrChanges, len(plan.Updated))
	observability.SetSpanAttribute(ctx, observability.AttrSkips, len(plan.Skipped))
	cfg.Metrics.RecordRound(ctx, len(plan.Updated), len(plan.Skipped))
	log.Info("propagation round", logger.Fields(
		logger.FieldIteration, iteration,
		logger.FieldChanges, len(plan.Updated),
		logger.FieldSkips, len(plan.Skipped),
	))
	return plan
}

// groupBySupplier batches changes per supplier, preserving first-seen
// supplier order.
type supplierChanges struct {
	supplierID string
	changes    []ChangeItem
}

func groupBySupplier(changes []ChangeItem) []supplierChanges {
	index := make(map[string]int)
	var groups []supplierChanges
	for _, c := range changes {
		i, ok := index[c.SupplierID]
		if !ok {
			i = len(groups)
			index[c.SupplierID] = i
			groups = append(groups, supplierChanges{supplierID: c.SupplierID})
		}
		groups[i].changes = append(groups[i].changes, c)
	}
	return groups
}
